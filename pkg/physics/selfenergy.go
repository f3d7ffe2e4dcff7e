package physics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/tbsim/tbsim/pkg/errors"
	"github.com/tbsim/tbsim/pkg/linalg"
)

// Numerical defaults for the decimation loop. The broadening keeps the
// surface Green function retarded; the tolerance is measured on the largest
// entry of the effective inter-cell coupling, which decays doubly
// exponentially once the loop converges.
const (
	defaultBroadening = 1e-8
	defaultTolerance  = 1e-10
	defaultMaxSteps   = 500
)

// Option adjusts the numerical parameters of the self-energy computation.
type Option func(*config)

type config struct {
	eta      float64
	tol      float64
	maxSteps int
}

// WithBroadening sets the imaginary part added to the energy.
func WithBroadening(eta float64) Option {
	return func(c *config) { c.eta = eta }
}

// WithTolerance sets the convergence tolerance of the decimation loop.
func WithTolerance(tol float64) Option {
	return func(c *config) { c.tol = tol }
}

// WithMaxSteps caps the number of decimation steps.
func WithMaxSteps(n int) Option {
	return func(c *config) { c.maxSteps = n }
}

func newConfig(opts []Option) config {
	c := config{eta: defaultBroadening, tol: defaultTolerance, maxSteps: defaultMaxSteps}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// SelfEnergy computes the retarded self-energy a semi-infinite lead induces
// on its interface at the given energy. hCell is the unit-cell Hamiltonian
// and hHop the hopping block between a cell and the next cell deeper into
// the lead (system.InfiniteSystem.InterCellHopping).
//
// The surface Green function is obtained by iterative decimation: each step
// folds two cells into one, so the effective coupling decays doubly
// exponentially until the propagating modes are resolved within the
// broadening. A lead with open channels yields a self-energy with a
// negative-semidefinite imaginary part.
func SelfEnergy(hCell, hHop *mat.CDense, energy float64, opts ...Option) (*mat.CDense, error) {
	cfg := newConfig(opts)

	n, c := hCell.Dims()
	if n != c {
		return nil, errors.New(errors.ErrCodeInternal, "lead cell Hamiltonian is %dx%d, want square", n, c)
	}

	z := complex(energy, cfg.eta)
	zI := linalg.Scale(z, linalg.Eye(n))

	eps := linalg.Clone(hCell)         // bulk effective Hamiltonian
	epsSurf := linalg.Clone(hCell)     // surface effective Hamiltonian
	alpha := linalg.Clone(hHop)        // coupling toward deeper cells
	beta := linalg.ConjTranspose(hHop) // coupling toward the surface

	for step := 0; step < cfg.maxSteps; step++ {
		if linalg.MaxAbs(alpha) < cfg.tol && linalg.MaxAbs(beta) < cfg.tol {
			gSurf, err := linalg.Solve(linalg.Sub(zI, epsSurf), linalg.Eye(n))
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeSolver, err, "surface green function at E=%g", energy)
			}
			sigma := linalg.Mul(hHop, linalg.Mul(gSurf, linalg.ConjTranspose(hHop)))
			return sigma, nil
		}

		g, err := linalg.Solve(linalg.Sub(zI, eps), linalg.Eye(n))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeSolver, err, "decimation step %d at E=%g", step, energy)
		}

		agb := linalg.Mul(alpha, linalg.Mul(g, beta))
		bga := linalg.Mul(beta, linalg.Mul(g, alpha))

		epsSurf = linalg.Add(epsSurf, agb)
		eps = linalg.Add(eps, linalg.Add(agb, bga))
		alpha = linalg.Mul(alpha, linalg.Mul(g, alpha))
		beta = linalg.Mul(beta, linalg.Mul(g, beta))
	}

	return nil, errors.New(errors.ErrCodeNoConvergence,
		"lead decimation did not converge in %d steps at E=%g", cfg.maxSteps, energy)
}

// Gamma returns the broadening matrix i(Σ - Σ†) of a self-energy.
func Gamma(sigma *mat.CDense) *mat.CDense {
	return linalg.Scale(1i, linalg.Sub(sigma, linalg.ConjTranspose(sigma)))
}
