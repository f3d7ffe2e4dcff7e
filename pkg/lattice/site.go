package lattice

import (
	"cmp"
	"fmt"
)

// Family identifies a sublattice of a Lattice. Families are created by the
// lattice constructors; the pointer identity is stable for the lifetime of
// the lattice and the Name is unique within it.
type Family struct {
	lat    *Lattice
	name   string
	offset [2]float64
}

// Name returns the family name (e.g. "a" and "b" for honeycomb sublattices).
func (f *Family) Name() string { return f.name }

// Offset returns the real-space offset of the family within the unit cell.
func (f *Family) Offset() (x, y float64) { return f.offset[0], f.offset[1] }

// Site addresses the lattice point of this family at integer coordinates
// (i, j) in units of the primitive vectors.
func (f *Family) Site(i, j int) Site {
	return Site{Family: f, Tag: Tag{i, j}}
}

// Tag is the integer lattice coordinate of a site, in units of the two
// primitive vectors.
type Tag [2]int

// Site is a single lattice site: a family plus an integer tag. Sites are
// comparable values and can be used as map keys.
type Site struct {
	Family *Family
	Tag    Tag
}

// Pos returns the real-space position of the site.
func (s Site) Pos() (x, y float64) {
	l := s.Family.lat
	x = float64(s.Tag[0])*l.a1[0] + float64(s.Tag[1])*l.a2[0] + s.Family.offset[0]
	y = float64(s.Tag[0])*l.a1[1] + float64(s.Tag[1])*l.a2[1] + s.Family.offset[1]
	return x, y
}

// String formats the site as family(i, j).
func (s Site) String() string {
	return fmt.Sprintf("%s(%d, %d)", s.Family.name, s.Tag[0], s.Tag[1])
}

// Compare orders sites by family name first, then lexicographically by tag.
// This is the canonical site order: finalized systems enumerate their sites
// in exactly this order, so repeated finalizations of the same contents
// always produce the same sequence.
func Compare(a, b Site) int {
	if c := cmp.Compare(a.Family.name, b.Family.name); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Tag[0], b.Tag[0]); c != 0 {
		return c
	}
	return cmp.Compare(a.Tag[1], b.Tag[1])
}
