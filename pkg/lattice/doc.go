// Package lattice provides two-dimensional Bravais lattices with a basis for
// tight-binding models.
//
// A Lattice is defined by two primitive vectors and one or more site
// families (sublattices), each with a real-space offset. Sites are addressed
// by a family and an integer tag (the lattice coordinates in units of the
// primitive vectors), so a site is a pure value and can be used as a map key.
//
// Sites carry a total order: first by family name, then lexicographically by
// tag. Every finalized system enumerates its sites in this order, which makes
// site indices reproducible across runs.
//
// The package ships the two lattices used throughout the examples:
//
//	lat := lattice.Square(1.0)            // one family, four neighbors
//	lat, a, b := lattice.Honeycomb(1.0)   // two families, three neighbors
package lattice
