package physics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/tbsim/tbsim/pkg/errors"
	"github.com/tbsim/tbsim/pkg/linalg"
	"github.com/tbsim/tbsim/pkg/system"
)

// Solution holds the retarded Green function of a finite system at one
// energy, with the lead self-energies folded in. It answers transmission
// queries between lead pairs.
type Solution struct {
	sys    *system.FiniteSystem
	energy float64
	g      *mat.CDense   // full retarded Green function
	gammas []*mat.CDense // per-lead broadening on the lead interface
}

// Solve computes the retarded Green function of the scattering region at
// the given energy and parameters. The system must have at least one
// attached lead; otherwise there is nothing to transport through.
func Solve(sys *system.FiniteSystem, energy float64, p system.Params, opts ...Option) (*Solution, error) {
	if sys.NumLeads() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "system has no leads attached")
	}

	n := sys.NumSites()
	h := sys.Hamiltonian(p)

	// m = E - H - sum of embedded lead self-energies.
	m := linalg.Sub(linalg.Scale(complex(energy, 0), linalg.Eye(n)), h)

	gammas := make([]*mat.CDense, sys.NumLeads())
	for li, lead := range sys.Leads() {
		hCell := lead.Cell.CellHamiltonian(p)
		hHop := lead.Cell.InterCellHopping(p)

		sigma, err := SelfEnergy(hCell, hHop, energy, opts...)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "lead %d", li)
		}
		gammas[li] = Gamma(sigma)

		for i, gi := range lead.Interface {
			for j, gj := range lead.Interface {
				m.Set(gi, gj, m.At(gi, gj)-sigma.At(i, j))
			}
		}
	}

	g, err := linalg.Solve(m, linalg.Eye(n))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSolver, err, "green function at E=%g", energy)
	}

	return &Solution{sys: sys, energy: energy, g: g, gammas: gammas}, nil
}

// Energy returns the energy the solution was computed at.
func (s *Solution) Energy() float64 { return s.energy }

// Transmission returns the transmission probability from lead `from` into
// lead `to` via the Fisher-Lee relation T = Tr[Γ_to G Γ_from G†], evaluated
// on the interface blocks of the Green function.
func (s *Solution) Transmission(to, from int) (float64, error) {
	if to == from {
		return 0, errors.New(errors.ErrCodeUnsupported,
			"reflection (lead %d into itself) is not supported; pick two distinct leads", to)
	}
	if to < 0 || to >= s.sys.NumLeads() || from < 0 || from >= s.sys.NumLeads() {
		return 0, errors.New(errors.ErrCodeInvalidInput,
			"lead index out of range: have %d leads", s.sys.NumLeads())
	}

	ifTo := s.sys.Leads()[to].Interface
	ifFrom := s.sys.Leads()[from].Interface

	// Submatrix of G connecting the two interfaces.
	gSub := mat.NewCDense(len(ifTo), len(ifFrom), nil)
	for i, gi := range ifTo {
		for j, gj := range ifFrom {
			gSub.Set(i, j, s.g.At(gi, gj))
		}
	}

	t := linalg.Mul(s.gammas[to], linalg.Mul(gSub, linalg.Mul(s.gammas[from], linalg.ConjTranspose(gSub))))
	return linalg.TraceReal(t), nil
}

// Conductance returns the two-terminal conductance from lead `from` into
// lead `to` in units of e²/h, which by Landauer equals the transmission.
func (s *Solution) Conductance(to, from int) (float64, error) {
	return s.Transmission(to, from)
}
