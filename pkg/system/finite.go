package system

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/cmplx"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/tbsim/tbsim/pkg/lattice"
)

// HopEntry is one hopping term between two sites of a finite system,
// identified by their indices in the canonical site order. Each hopping is
// stored once; assembly emits the Hermitian conjugate automatically.
type HopEntry struct {
	I, J int
	V    Value
}

// Lead is a semi-infinite lead attached to a finite system. Interface lists
// the finite-system site indices the lead couples to, aligned index-for-index
// with the lead cell's canonical site order.
type Lead struct {
	Cell      *InfiniteSystem
	Interface []int
}

// FiniteSystem is a finalized scattering region. Its site slice is totally
// ordered by (family, tag); repeated finalizations of the same builder
// contents produce the identical sequence.
type FiniteSystem struct {
	sites  []lattice.Site
	index  map[lattice.Site]int
	onsite []Value
	hops   []HopEntry
	leads  []*Lead
}

// NewFiniteSystem assembles a finalized system from its parts. The sites
// slice must already be in canonical order and onsite aligned with it;
// builder.Finalize is the only intended caller.
func NewFiniteSystem(sites []lattice.Site, onsite []Value, hops []HopEntry, leads []*Lead) *FiniteSystem {
	idx := make(map[lattice.Site]int, len(sites))
	for i, s := range sites {
		idx[s] = i
	}
	return &FiniteSystem{
		sites:  sites,
		index:  idx,
		onsite: onsite,
		hops:   hops,
		leads:  leads,
	}
}

// Sites returns the sites in canonical order. The slice must not be mutated.
func (s *FiniteSystem) Sites() []lattice.Site { return s.sites }

// NumSites returns the number of sites.
func (s *FiniteSystem) NumSites() int { return len(s.sites) }

// Index returns the index of a site in the canonical order.
func (s *FiniteSystem) Index(site lattice.Site) (int, bool) {
	i, ok := s.index[site]
	return i, ok
}

// Hoppings returns the stored hopping entries. Each pair appears once.
func (s *FiniteSystem) Hoppings() []HopEntry { return s.hops }

// Leads returns the attached leads in attachment order.
func (s *FiniteSystem) Leads() []*Lead { return s.leads }

// NumLeads returns the number of attached leads.
func (s *FiniteSystem) NumLeads() int { return len(s.leads) }

// Hamiltonian assembles the dense Hamiltonian of the scattering region at
// the given parameters. The result is Hermitian by construction: every
// stored hopping contributes its value at (i, j) and the conjugate at (j, i).
func (s *FiniteSystem) Hamiltonian(p Params) *mat.CDense {
	n := len(s.sites)
	h := mat.NewCDense(n, n, nil)
	for i, v := range s.onsite {
		h.Set(i, i, v(p))
	}
	for _, hop := range s.hops {
		v := hop.V(p)
		h.Set(hop.I, hop.J, h.At(hop.I, hop.J)+v)
		h.Set(hop.J, hop.I, h.At(hop.J, hop.I)+cmplx.Conj(v))
	}
	return h
}

// Fingerprint returns a stable content hash of the system structure: sites,
// hopping graph and lead geometry. Parameter-dependent values are not part
// of the fingerprint; sweeps include their parameter ranges separately when
// deriving cache keys.
func (s *FiniteSystem) Fingerprint() string {
	var b strings.Builder
	for _, site := range s.sites {
		fmt.Fprintf(&b, "s:%s;", site)
	}
	for _, hop := range s.hops {
		fmt.Fprintf(&b, "h:%d-%d;", hop.I, hop.J)
	}
	for _, lead := range s.leads {
		fmt.Fprintf(&b, "l:%v|", lead.Interface)
		for _, site := range lead.Cell.Sites() {
			fmt.Fprintf(&b, "%s;", site)
		}
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
