package builder

import (
	"math/cmplx"
	"testing"

	"github.com/tbsim/tbsim/pkg/errors"
	"github.com/tbsim/tbsim/pkg/lattice"
	"github.com/tbsim/tbsim/pkg/system"
)

func TestFillRectangle(t *testing.T) {
	lat := lattice.Square(1.0)
	f := lat.Families()[0]

	b := New()
	n, err := b.Fill(lat, Rectangle(5, 3), f.Site(0, 0), system.Real(4))
	if err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	if n != 15 {
		t.Errorf("Fill() added %d sites, want 15", n)
	}

	hops, err := b.ConnectNeighbors(lat, system.Real(-1))
	if err != nil {
		t.Fatalf("ConnectNeighbors() error = %v", err)
	}
	// 5x3 grid: 4*3 horizontal + 5*2 vertical bonds.
	if hops != 22 {
		t.Errorf("ConnectNeighbors() set %d hoppings, want 22", hops)
	}
}

func TestFillSeedOutsideShape(t *testing.T) {
	lat := lattice.Square(1.0)
	f := lat.Families()[0]

	b := New()
	_, err := b.Fill(lat, Rectangle(5, 3), f.Site(10, 10), system.Real(4))
	if !errors.Is(err, errors.ErrCodeEmptyShape) {
		t.Errorf("Fill() error = %v, want code %v", err, errors.ErrCodeEmptyShape)
	}
}

func TestFillHoneycombDisc(t *testing.T) {
	lat, fa, _ := lattice.Honeycomb(1.0)

	b := New()
	n, err := b.Fill(lat, Circle(4), fa.Site(0, 0), system.Real(0))
	if err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	if n == 0 {
		t.Fatal("Fill() added no sites")
	}
	// Both sublattices must be populated.
	foundB := false
	for s := range b.onsite {
		if s.Family.Name() == "b" {
			foundB = true
			break
		}
	}
	if !foundB {
		t.Error("flood fill never reached the b sublattice")
	}
}

func TestSetHoppingUnknownSite(t *testing.T) {
	lat := lattice.Square(1.0)
	f := lat.Families()[0]

	b := New()
	if err := b.SetOnsite(f.Site(0, 0), system.Real(4)); err != nil {
		t.Fatalf("SetOnsite() error = %v", err)
	}
	err := b.SetHopping(f.Site(0, 0), f.Site(1, 0), system.Real(-1))
	if !errors.Is(err, errors.ErrCodeUnknownSite) {
		t.Errorf("SetHopping() error = %v, want code %v", err, errors.ErrCodeUnknownSite)
	}
}

func TestSetHoppingCanonicalizesWithConjugate(t *testing.T) {
	lat := lattice.Square(1.0)
	f := lat.Families()[0]

	b := New()
	_ = b.SetOnsite(f.Site(0, 0), system.Real(0))
	_ = b.SetOnsite(f.Site(1, 0), system.Real(0))

	// Set the hopping "backwards": from the larger site to the smaller.
	v := complex(0.5, 0.25)
	if err := b.SetHopping(f.Site(1, 0), f.Site(0, 0), system.Const(v)); err != nil {
		t.Fatalf("SetHopping() error = %v", err)
	}

	fsys, err := b.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	h := fsys.Hamiltonian(nil)
	// H(0,1) = <site(0,0)|H|site(1,0)> must be conj(v).
	if got := h.At(0, 1); cmplx.Abs(got-cmplx.Conj(v)) > 1e-14 {
		t.Errorf("H(0,1) = %v, want %v", got, cmplx.Conj(v))
	}
	if got := h.At(1, 0); cmplx.Abs(got-v) > 1e-14 {
		t.Errorf("H(1,0) = %v, want %v", got, v)
	}
}

func TestSelfHoppingRejected(t *testing.T) {
	lat := lattice.Square(1.0)
	f := lat.Families()[0]

	b := New()
	_ = b.SetOnsite(f.Site(0, 0), system.Real(0))
	err := b.SetHopping(f.Site(0, 0), f.Site(0, 0), system.Real(-1))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("SetHopping() error = %v, want code %v", err, errors.ErrCodeInvalidInput)
	}
}

func TestLeadHoppingBeyondOnePeriod(t *testing.T) {
	lat := lattice.Square(1.0)
	f := lat.Families()[0]

	lead := NewLead(lattice.TranslationalSymmetry{Period: lattice.Tag{-1, 0}})
	_ = lead.SetOnsite(f.Site(0, 0), system.Real(4))
	err := lead.SetHopping(f.Site(0, 0), f.Site(2, 0), system.Real(-1))
	if !errors.Is(err, errors.ErrCodeLeadIncompatible) {
		t.Errorf("SetHopping() error = %v, want code %v", err, errors.ErrCodeLeadIncompatible)
	}
}

func TestAttachLeadValidation(t *testing.T) {
	lat := lattice.Square(1.0)
	f := lat.Families()[0]

	b := New()
	_, _ = b.Fill(lat, Rectangle(3, 1), f.Site(0, 0), system.Real(4))

	t.Run("NoSymmetry", func(t *testing.T) {
		_, err := b.AttachLead(New())
		if !errors.Is(err, errors.ErrCodeLeadSymmetry) {
			t.Errorf("AttachLead() error = %v, want code %v", err, errors.ErrCodeLeadSymmetry)
		}
	})

	t.Run("EmptyLead", func(t *testing.T) {
		lead := NewLead(lattice.TranslationalSymmetry{Period: lattice.Tag{-1, 0}})
		_, err := b.AttachLead(lead)
		if !errors.Is(err, errors.ErrCodeEmptyShape) {
			t.Errorf("AttachLead() error = %v, want code %v", err, errors.ErrCodeEmptyShape)
		}
	})

	t.Run("DiagonalPeriod", func(t *testing.T) {
		lead := NewLead(lattice.TranslationalSymmetry{Period: lattice.Tag{1, 1}})
		_ = lead.SetOnsite(f.Site(0, 0), system.Real(4))
		_, err := b.AttachLead(lead)
		if !errors.Is(err, errors.ErrCodeLeadIncompatible) {
			t.Errorf("AttachLead() error = %v, want code %v", err, errors.ErrCodeLeadIncompatible)
		}
	})
}
