package builder

import (
	"math/cmplx"

	"github.com/tbsim/tbsim/pkg/errors"
	"github.com/tbsim/tbsim/pkg/lattice"
	"github.com/tbsim/tbsim/pkg/system"
)

// hopKey identifies a stored hopping. Sites are in canonical form: for
// finite builders offset is always 0 and Compare(a, b) < 0; for lead
// builders both sites live in the fundamental domain and offset is 0
// (intra-cell, Compare(a, b) < 0) or +1 (b sits one cell deeper).
type hopKey struct {
	a, b   lattice.Site
	offset int
}

// Builder accumulates sites and hoppings of a tight-binding system before
// finalization. The zero value is not usable; construct with New or NewLead.
type Builder struct {
	sym    *lattice.TranslationalSymmetry
	onsite map[lattice.Site]system.Value
	hops   map[hopKey]system.Value
	leads  []*Builder
}

// New creates an empty builder for a finite scattering region.
func New() *Builder {
	return &Builder{
		onsite: make(map[lattice.Site]system.Value),
		hops:   make(map[hopKey]system.Value),
	}
}

// NewLead creates an empty builder for a semi-infinite lead with the given
// translational symmetry. All sites set on the builder are reduced into the
// fundamental domain of the symmetry.
func NewLead(sym lattice.TranslationalSymmetry) *Builder {
	b := New()
	b.sym = &sym
	return b
}

// Symmetry returns the lead symmetry, or nil for a scattering region.
func (b *Builder) Symmetry() *lattice.TranslationalSymmetry { return b.sym }

// NumSites returns the number of sites currently in the builder (for leads,
// per unit cell).
func (b *Builder) NumSites() int { return len(b.onsite) }

// HasSite reports whether the site is present (leads reduce to the
// fundamental domain first).
func (b *Builder) HasSite(s lattice.Site) bool {
	s, err := b.reduce(s)
	if err != nil {
		return false
	}
	_, ok := b.onsite[s]
	return ok
}

// SetOnsite adds the site (if absent) and sets its onsite energy.
func (b *Builder) SetOnsite(s lattice.Site, v system.Value) error {
	s, err := b.reduce(s)
	if err != nil {
		return err
	}
	b.onsite[s] = v
	return nil
}

// SetHopping sets the hopping matrix element between sites a and b:
// v is the amplitude ⟨a|H|b⟩; the conjugate partner is implied and emitted
// during Hamiltonian assembly. Both endpoints must already be present.
//
// For lead builders the endpoints may lie in different unit cells; hoppings
// reaching further than one lead period are rejected.
func (b *Builder) SetHopping(a, c lattice.Site, v system.Value) error {
	ra, na, err := b.reduceCell(a)
	if err != nil {
		return err
	}
	rc, nc, err := b.reduceCell(c)
	if err != nil {
		return err
	}
	if _, ok := b.onsite[ra]; !ok {
		return errors.New(errors.ErrCodeUnknownSite, "hopping endpoint %v is not in the builder", a)
	}
	if _, ok := b.onsite[rc]; !ok {
		return errors.New(errors.ErrCodeUnknownSite, "hopping endpoint %v is not in the builder", c)
	}

	offset := nc - na
	switch {
	case offset == 0:
		if lattice.Compare(ra, rc) == 0 {
			return errors.New(errors.ErrCodeInvalidInput, "self-hopping on %v; use SetOnsite", a)
		}
		if lattice.Compare(ra, rc) > 0 {
			ra, rc = rc, ra
			v = conjValue(v)
		}
		b.hops[hopKey{a: ra, b: rc}] = v
	case offset == 1:
		b.hops[hopKey{a: ra, b: rc, offset: 1}] = v
	case offset == -1:
		b.hops[hopKey{a: rc, b: ra, offset: 1}] = conjValue(v)
	default:
		return errors.New(errors.ErrCodeLeadIncompatible,
			"hopping %v -> %v spans %d lead periods; only adjacent cells may couple", a, c, offset)
	}
	return nil
}

// AttachLead registers a lead builder on a scattering region and returns its
// lead index. The lead must carry a valid translational symmetry and at
// least one site; commensurability with the region is checked at Finalize.
func (b *Builder) AttachLead(lead *Builder) (int, error) {
	if b.sym != nil {
		return 0, errors.New(errors.ErrCodeLeadSymmetry, "cannot attach a lead to another lead")
	}
	if lead.sym == nil {
		return 0, errors.New(errors.ErrCodeLeadSymmetry, "lead builder has no translational symmetry")
	}
	if err := lead.sym.Validate(); err != nil {
		return 0, err
	}
	if len(lead.onsite) == 0 {
		return 0, errors.New(errors.ErrCodeEmptyShape, "lead builder has no sites")
	}
	b.leads = append(b.leads, lead)
	return len(b.leads) - 1, nil
}

// reduce maps a site into the fundamental domain for lead builders and is
// the identity for scattering regions.
func (b *Builder) reduce(s lattice.Site) (lattice.Site, error) {
	r, _, err := b.reduceCell(s)
	return r, err
}

// reduceCell reduces a site and also reports which unit cell it came from.
func (b *Builder) reduceCell(s lattice.Site) (lattice.Site, int, error) {
	if b.sym == nil {
		return s, 0, nil
	}
	return b.sym.ToFundamental(s)
}

// conjValue wraps a Value so it evaluates to the complex conjugate.
func conjValue(v system.Value) system.Value {
	return func(p system.Params) complex128 { return cmplx.Conj(v(p)) }
}
