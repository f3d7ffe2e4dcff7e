package system

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/cmplx"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/tbsim/tbsim/pkg/lattice"
	"github.com/tbsim/tbsim/pkg/linalg"
)

// InterHopEntry is a hopping that crosses the cell boundary of a lead. Its
// value is the matrix element between site I of cell n and site J of cell
// n+1 (one period deeper into the lead).
type InterHopEntry struct {
	I, J int
	V    Value
}

// InfiniteSystem is one unit cell of a semi-infinite lead. Cell sites follow
// the same canonical (family, tag) order as finite systems. Cell indices
// grow away from the scattering region, so cell 0 is the surface cell.
type InfiniteSystem struct {
	sites  []lattice.Site
	onsite []Value
	intra  []HopEntry
	inter  []InterHopEntry
}

// NewInfiniteSystem assembles a lead cell from its parts; builder.FinalizeLead
// is the only intended caller.
func NewInfiniteSystem(sites []lattice.Site, onsite []Value, intra []HopEntry, inter []InterHopEntry) *InfiniteSystem {
	return &InfiniteSystem{sites: sites, onsite: onsite, intra: intra, inter: inter}
}

// Sites returns the cell sites in canonical order.
func (s *InfiniteSystem) Sites() []lattice.Site { return s.sites }

// NumSites returns the number of sites in one cell.
func (s *InfiniteSystem) NumSites() int { return len(s.sites) }

// CellHamiltonian assembles the intra-cell block H0 at the given parameters.
func (s *InfiniteSystem) CellHamiltonian(p Params) *mat.CDense {
	n := len(s.sites)
	h := mat.NewCDense(n, n, nil)
	for i, v := range s.onsite {
		h.Set(i, i, v(p))
	}
	for _, hop := range s.intra {
		v := hop.V(p)
		h.Set(hop.I, hop.J, h.At(hop.I, hop.J)+v)
		h.Set(hop.J, hop.I, h.At(hop.J, hop.I)+cmplx.Conj(v))
	}
	return h
}

// InterCellHopping assembles the hopping block A between adjacent cells:
// A[i][j] is the matrix element between site i of cell n and site j of cell
// n+1. This is the block the lead self-energy computation consumes.
func (s *InfiniteSystem) InterCellHopping(p Params) *mat.CDense {
	n := len(s.sites)
	a := mat.NewCDense(n, n, nil)
	for _, hop := range s.inter {
		a.Set(hop.I, hop.J, a.At(hop.I, hop.J)+hop.V(p))
	}
	return a
}

// Band returns the sorted Bloch eigenvalues at momentum k (in units where
// the lead period is 1): the spectrum of H0 + A e^{ik} + A† e^{-ik}.
func (s *InfiniteSystem) Band(k float64, p Params) ([]float64, error) {
	h0 := s.CellHamiltonian(p)
	a := s.InterCellHopping(p)
	ah := linalg.ConjTranspose(a)

	phase := cmplx.Exp(complex(0, k))
	hk := linalg.Add(h0, linalg.Add(linalg.Scale(phase, a), linalg.Scale(cmplx.Conj(phase), ah)))
	return linalg.EigenHermitian(linalg.Hermitize(hk))
}

// Bands evaluates Band over a momentum grid and returns one energy slice per
// momentum, each sorted ascending.
func (s *InfiniteSystem) Bands(ks []float64, p Params) ([][]float64, error) {
	out := make([][]float64, len(ks))
	for i, k := range ks {
		e, err := s.Band(k, p)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

// Fingerprint returns a stable content hash of the cell structure: sites and
// the intra- and inter-cell hopping graphs. Like FiniteSystem.Fingerprint it
// ignores parameter-dependent values.
func (s *InfiniteSystem) Fingerprint() string {
	var b strings.Builder
	for _, site := range s.sites {
		fmt.Fprintf(&b, "s:%s;", site)
	}
	for _, hop := range s.intra {
		fmt.Fprintf(&b, "h:%d-%d;", hop.I, hop.J)
	}
	for _, hop := range s.inter {
		fmt.Fprintf(&b, "i:%d-%d;", hop.I, hop.J)
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
