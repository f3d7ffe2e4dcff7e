// Package linalg provides the small set of complex dense-matrix operations
// that the transport solver needs on top of gonum/mat.
//
// gonum's mat package carries complex storage (CDense) but neither complex
// multiplication nor complex factorizations, so products are formed
// entrywise and linear solves and Hermitian eigenvalues are routed through
// the standard real embedding: a complex matrix X + iY maps to
// the real block matrix [[X, -Y], [Y, X]], which is symmetric whenever the
// complex matrix is Hermitian and preserves solvability in general. All
// systems handled here are small dense matrices (tens to a few hundred
// rows), so the doubled dimension is not a concern.
package linalg
