// Package physics computes transport quantities of finalized systems: lead
// self-energies, retarded Green functions and transmission probabilities
// between leads.
//
// Leads enter through their self-energy, obtained from the surface Green
// function of the semi-infinite lead by iterative decimation. Transmission
// follows the Fisher-Lee relation T = Tr[Γ_a G Γ_b G†], which for two-lead
// systems equals the conductance in units of e²/h.
//
// All matrices are small and dense; the solver targets the system sizes of
// the tutorial examples (tens to a few hundred sites).
package physics
