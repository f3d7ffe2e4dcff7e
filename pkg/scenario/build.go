package scenario

import (
	"math"
	"math/cmplx"

	"github.com/tbsim/tbsim/pkg/builder"
	"github.com/tbsim/tbsim/pkg/lattice"
	"github.com/tbsim/tbsim/pkg/sweep"
	"github.com/tbsim/tbsim/pkg/system"
)

// BuildSystem constructs and finalizes the scenario's scattering region with
// its two leads.
func (s *Scenario) BuildSystem() (*system.FiniteSystem, error) {
	g := s.Geometry
	switch g.Kind {
	case KindRing:
		return buildRing(g)
	default:
		return buildWire(g)
	}
}

// buildWire builds a straight conductor of the configured lattice with a
// lead on each end.
func buildWire(g *Geometry) (*system.FiniteSystem, error) {
	lat := latticeFor(g)
	seed := lat.Families()[0].Site(0, 0)
	onsite := system.Real(*g.Onsite)
	hopping := system.Real(*g.Hopping)

	b := builder.New()
	if _, err := b.Fill(lat, builder.Rectangle(float64(g.Length), float64(g.Width)), seed, onsite); err != nil {
		return nil, err
	}
	if _, err := b.ConnectNeighbors(lat, hopping); err != nil {
		return nil, err
	}

	// Lead cross-section: bound only transversely. Reduced honeycomb
	// positions spread in x, so an x bound would truncate the cell.
	width := float64(g.Width)
	cross := builder.Shape(func(x, y float64) bool { return y >= 0 && y < width })

	for _, period := range []lattice.Tag{{-1, 0}, {1, 0}} {
		lead := builder.NewLead(lattice.TranslationalSymmetry{Period: period})
		if _, err := lead.Fill(lat, cross, seed, onsite); err != nil {
			return nil, err
		}
		if _, err := lead.ConnectNeighbors(lat, hopping); err != nil {
			return nil, err
		}
		if _, err := b.AttachLead(lead); err != nil {
			return nil, err
		}
	}
	return b.Finalize()
}

// buildRing builds an Aharonov-Bohm ring: an annulus with horizontal leads
// on both sides. Hoppings crossing the x = 0 cut in the upper arm carry the
// flux phase exp(i*phi), so sweeping the "phi" parameter threads flux
// through the hole.
func buildRing(g *Geometry) (*system.FiniteSystem, error) {
	lat := lattice.Square(1.0)
	f := lat.Families()[0]
	onsite := system.Real(*g.Onsite)
	hopping := system.Real(*g.Hopping)

	mid := int(math.Round((g.InnerRadius + g.OuterRadius) / 2))
	b := builder.New()
	if _, err := b.Fill(lat, builder.Ring(g.InnerRadius, g.OuterRadius), f.Site(mid, 0), onsite); err != nil {
		return nil, err
	}
	if _, err := b.ConnectNeighbors(lat, hopping); err != nil {
		return nil, err
	}

	// Re-set the cut hoppings with the flux phase. Only the upper arm
	// carries the phase; the enclosed flux is then phi in units of the
	// flux quantum.
	t := *g.Hopping
	phased := system.Value(func(p system.Params) complex128 {
		return complex(t, 0) * cmplx.Exp(complex(0, p.Get("phi")))
	})
	for y := 1; float64(y) <= g.OuterRadius; y++ {
		a, c := f.Site(1, y), f.Site(0, y)
		if !b.HasSite(a) || !b.HasSite(c) {
			continue
		}
		if err := b.SetHopping(a, c, phased); err != nil {
			return nil, err
		}
	}

	for _, period := range []lattice.Tag{{-1, 0}, {1, 0}} {
		lead := builder.NewLead(lattice.TranslationalSymmetry{Period: period})
		if _, err := lead.Fill(lat, builder.Strip(float64(g.LeadWidth)), f.Site(0, 0), onsite); err != nil {
			return nil, err
		}
		if _, err := lead.ConnectNeighbors(lat, hopping); err != nil {
			return nil, err
		}
		if _, err := b.AttachLead(lead); err != nil {
			return nil, err
		}
	}
	return b.Finalize()
}

func latticeFor(g *Geometry) *lattice.Lattice {
	if g.Lattice == LatticeHoneycomb {
		lat, _, _ := lattice.Honeycomb(1.0)
		return lat
	}
	return lattice.Square(1.0)
}

// Run options derived from the scenario; fixed parameters default the flux
// to zero so energy sweeps over ring geometries are well defined.
func (s *Scenario) RunOptions() sweep.Options {
	opts := s.SweepOptions()
	if s.Geometry.Kind == KindRing && opts.Quantity != sweep.QuantityFlux {
		opts.Params = map[string]float64{sweep.DefaultFluxParam: 0}
	}
	return opts
}
