package lattice

import "math"

// Hop describes a nearest-neighbor kind: sites of family From at tag t are
// coupled to sites of family To at tag t+Delta. The reversed pair is implied
// by hermiticity and is not listed separately.
type Hop struct {
	From, To *Family
	Delta    Tag
}

// Lattice is a two-dimensional Bravais lattice with a basis.
type Lattice struct {
	name      string
	a1, a2    [2]float64
	families  []*Family
	neighbors []Hop
}

// Name returns the lattice name.
func (l *Lattice) Name() string { return l.name }

// PrimitiveVectors returns the two primitive vectors.
func (l *Lattice) PrimitiveVectors() (a1, a2 [2]float64) { return l.a1, l.a2 }

// Families returns the site families in their canonical order.
func (l *Lattice) Families() []*Family { return l.families }

// Neighbors returns the nearest-neighbor hopping kinds of the lattice.
func (l *Lattice) Neighbors() []Hop { return l.neighbors }

// Square constructs a square lattice with lattice constant a. It has a
// single family named "square" and four nearest neighbors per site.
func Square(a float64) *Lattice {
	l := &Lattice{
		name: "square",
		a1:   [2]float64{a, 0},
		a2:   [2]float64{0, a},
	}
	f := &Family{lat: l, name: "square"}
	l.families = []*Family{f}
	l.neighbors = []Hop{
		{From: f, To: f, Delta: Tag{1, 0}},
		{From: f, To: f, Delta: Tag{0, 1}},
	}
	return l
}

// Honeycomb constructs a honeycomb lattice with lattice constant a (the
// distance between equivalent sites of one sublattice). It returns the
// lattice together with its two sublattice families "a" and "b"; every site
// has three nearest neighbors on the opposite sublattice.
func Honeycomb(a float64) (*Lattice, *Family, *Family) {
	l := &Lattice{
		name: "honeycomb",
		a1:   [2]float64{a, 0},
		a2:   [2]float64{a / 2, a * math.Sqrt(3) / 2},
	}
	fa := &Family{lat: l, name: "a"}
	fb := &Family{lat: l, name: "b", offset: [2]float64{0, a / math.Sqrt(3)}}
	l.families = []*Family{fa, fb}
	l.neighbors = []Hop{
		{From: fa, To: fb, Delta: Tag{0, 0}},
		{From: fa, To: fb, Delta: Tag{0, -1}},
		{From: fa, To: fb, Delta: Tag{1, -1}},
	}
	return l, fa, fb
}
