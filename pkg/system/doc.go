// Package system holds finalized tight-binding systems: the data structures
// produced by builder.Finalize and consumed by the physics solver and the
// plotter.
//
// A FiniteSystem is a scattering region with a fixed, canonical site order
// (by family, then tag) and any number of attached leads. An InfiniteSystem
// is one unit cell of a semi-infinite lead, with its intra-cell and
// inter-cell Hamiltonian blocks.
//
// Hamiltonian values are either constants or functions of runtime parameters
// (for example a magnetic flux), so a system is assembled once and evaluated
// at many parameter points during a sweep.
package system
