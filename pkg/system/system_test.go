package system

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/tbsim/tbsim/pkg/lattice"
	"github.com/tbsim/tbsim/pkg/linalg"
)

func twoSiteChain(hop Value) *FiniteSystem {
	lat := lattice.Square(1.0)
	f := lat.Families()[0]
	sites := []lattice.Site{f.Site(0, 0), f.Site(1, 0)}
	onsite := []Value{Real(4), Real(4)}
	hops := []HopEntry{{I: 0, J: 1, V: hop}}
	return NewFiniteSystem(sites, onsite, hops, nil)
}

func TestHamiltonianHermitian(t *testing.T) {
	// A complex hopping (Peierls phase) must still assemble to a Hermitian
	// matrix: the conjugate partner is emitted automatically.
	phase := cmplx.Exp(0.3i)
	sys := twoSiteChain(Const(-phase))

	h := sys.Hamiltonian(nil)
	if !linalg.IsHermitian(h, 1e-14) {
		t.Fatal("assembled Hamiltonian is not Hermitian")
	}
	if got := h.At(0, 1); cmplx.Abs(got+phase) > 1e-14 {
		t.Errorf("H(0,1) = %v, want %v", got, -phase)
	}
	if got := h.At(1, 0); cmplx.Abs(got+cmplx.Conj(phase)) > 1e-14 {
		t.Errorf("H(1,0) = %v, want %v", got, -cmplx.Conj(phase))
	}
}

func TestHamiltonianParams(t *testing.T) {
	sys := twoSiteChain(func(p Params) complex128 {
		return -cmplx.Exp(complex(0, p.Get("phi")))
	})

	h0 := sys.Hamiltonian(nil)
	h1 := sys.Hamiltonian(Params{"phi": math.Pi})

	if cmplx.Abs(h0.At(0, 1)-(-1)) > 1e-14 {
		t.Errorf("H(0,1) at phi=0 = %v, want -1", h0.At(0, 1))
	}
	if cmplx.Abs(h1.At(0, 1)-1) > 1e-12 {
		t.Errorf("H(0,1) at phi=pi = %v, want 1", h1.At(0, 1))
	}
}

func TestIndexFollowsSiteOrder(t *testing.T) {
	sys := twoSiteChain(Real(-1))
	for i, s := range sys.Sites() {
		got, ok := sys.Index(s)
		if !ok || got != i {
			t.Errorf("Index(%v) = %d, %v, want %d, true", s, got, ok, i)
		}
	}
	lat := lattice.Square(1.0)
	if _, ok := sys.Index(lat.Families()[0].Site(9, 9)); ok {
		t.Error("Index of absent site reported ok")
	}
}

func singleModeLeadCell() *InfiniteSystem {
	lat := lattice.Square(1.0)
	f := lat.Families()[0]
	sites := []lattice.Site{f.Site(0, 0)}
	onsite := []Value{Real(4)}
	inter := []InterHopEntry{{I: 0, J: 0, V: Real(-1)}}
	return NewInfiniteSystem(sites, onsite, nil, inter)
}

func TestBandSingleModeLead(t *testing.T) {
	// Width-1 square-lattice lead with onsite 4t and hopping -t (t = 1):
	// E(k) = 4 - 2 cos k.
	cell := singleModeLeadCell()

	tests := []struct {
		name string
		k    float64
		want float64
	}{
		{"BandBottom", 0, 2},
		{"MidBand", math.Pi / 2, 4},
		{"BandTop", math.Pi, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := cell.Band(tt.k, nil)
			if err != nil {
				t.Fatalf("Band() error = %v", err)
			}
			if len(e) != 1 {
				t.Fatalf("Band() returned %d values, want 1", len(e))
			}
			if math.Abs(e[0]-tt.want) > 1e-10 {
				t.Errorf("Band(%g) = %g, want %g", tt.k, e[0], tt.want)
			}
		})
	}
}

func TestBandsGrid(t *testing.T) {
	cell := singleModeLeadCell()
	ks := []float64{-math.Pi, 0, math.Pi}
	bands, err := cell.Bands(ks, nil)
	if err != nil {
		t.Fatalf("Bands() error = %v", err)
	}
	if len(bands) != 3 {
		t.Fatalf("Bands() returned %d slices, want 3", len(bands))
	}
	// The dispersion is symmetric in k.
	if math.Abs(bands[0][0]-bands[2][0]) > 1e-10 {
		t.Errorf("E(-pi) = %g, E(pi) = %g, want equal", bands[0][0], bands[2][0])
	}
}

func TestFingerprint(t *testing.T) {
	a := twoSiteChain(Real(-1))
	b := twoSiteChain(Real(-1))
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("identical structures hash differently")
	}

	lat := lattice.Square(1.0)
	f := lat.Families()[0]
	c := NewFiniteSystem(
		[]lattice.Site{f.Site(0, 0), f.Site(0, 1)},
		[]Value{Real(4), Real(4)},
		[]HopEntry{{I: 0, J: 1, V: Real(-1)}},
		nil,
	)
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("different structures hash identically")
	}
}
