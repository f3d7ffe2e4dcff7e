// Package builder provides the mutable construction stage of a tight-binding
// system: sites and hoppings are accumulated freely, then Finalize produces
// an immutable system.FiniteSystem ready for the transport solver.
//
// A typical scattering region is built from a geometric shape and a
// nearest-neighbor hopping, with semi-infinite leads attached on both sides:
//
//	lat := lattice.Square(1.0)
//	syst := builder.New()
//	syst.Fill(lat, rectangle(30, 10), lat.Families()[0].Site(0, 0), system.Real(4*t))
//	syst.ConnectNeighbors(lat, system.Real(-t))
//
//	lead := builder.NewLead(lattice.TranslationalSymmetry{Period: lattice.Tag{-1, 0}})
//	lead.Fill(lat, crossSection(10), lat.Families()[0].Site(0, 0), system.Real(4*t))
//	lead.ConnectNeighbors(lat, system.Real(-t))
//	syst.AttachLead(lead)
//
//	fsys, err := syst.Finalize()
//
// Finalized systems enumerate their sites in a canonical order, sorted by
// site family and then by tag, so site indices are reproducible across runs
// regardless of the order in which sites were added.
package builder
