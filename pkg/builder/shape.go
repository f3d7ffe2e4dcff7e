package builder

import (
	"github.com/tbsim/tbsim/pkg/errors"
	"github.com/tbsim/tbsim/pkg/lattice"
	"github.com/tbsim/tbsim/pkg/system"
)

// Shape is a geometric site-selection predicate over real-space positions.
type Shape func(x, y float64) bool

// Rectangle returns a shape selecting 0 <= x < w and 0 <= y < h.
func Rectangle(w, h float64) Shape {
	return func(x, y float64) bool {
		return x >= 0 && x < w && y >= 0 && y < h
	}
}

// Ring returns an annulus shape centered at the origin with inner radius r1
// and outer radius r2.
func Ring(r1, r2 float64) Shape {
	return func(x, y float64) bool {
		r2xy := x*x + y*y
		return r2xy >= r1*r1 && r2xy <= r2*r2
	}
}

// Strip returns a shape selecting -h/2 <= y < h/2 at any x. With a lead
// builder it describes a transverse cross-section centered on the axis.
func Strip(h float64) Shape {
	return func(x, y float64) bool {
		return y >= -h/2 && y < h/2
	}
}

// Circle returns a disc shape of radius r centered at the origin.
func Circle(r float64) Shape {
	return func(x, y float64) bool {
		return x*x+y*y <= r*r
	}
}

// Fill flood-fills the builder with all lattice sites inside the shape that
// are connected to the seed through nearest-neighbor steps, assigning each
// the given onsite energy. It returns the number of sites added.
//
// For lead builders the shape is evaluated on positions reduced into the
// fundamental domain, so a cross-section predicate fills exactly one unit
// cell.
func (b *Builder) Fill(lat *lattice.Lattice, shape Shape, seed lattice.Site, onsite system.Value) (int, error) {
	start, err := b.reduce(seed)
	if err != nil {
		return 0, err
	}
	if !shape(start.Pos()) {
		return 0, errors.New(errors.ErrCodeEmptyShape, "seed site %v lies outside the shape", seed)
	}

	added := 0
	queue := []lattice.Site{start}
	seen := map[lattice.Site]bool{start: true}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]

		if _, present := b.onsite[s]; !present {
			added++
		}
		b.onsite[s] = onsite

		for _, cand := range neighborsOf(lat, s) {
			r, err := b.reduce(cand)
			if err != nil {
				return added, err
			}
			if seen[r] || !shape(r.Pos()) {
				continue
			}
			seen[r] = true
			queue = append(queue, r)
		}
	}
	return added, nil
}

// ConnectNeighbors sets the hopping v on every nearest-neighbor pair of
// present sites of the lattice, following the lattice's neighbor kinds. Each
// pair is set once; existing values for a pair are overwritten. It returns
// the number of hoppings set.
func (b *Builder) ConnectNeighbors(lat *lattice.Lattice, v system.Value) (int, error) {
	count := 0
	for s := range b.onsite {
		for _, hop := range lat.Neighbors() {
			if s.Family != hop.From {
				continue
			}
			cand := hop.To.Site(s.Tag[0]+hop.Delta[0], s.Tag[1]+hop.Delta[1])
			if !b.HasSite(cand) {
				continue
			}
			if err := b.SetHopping(s, cand, v); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

// neighborsOf lists the nearest-neighbor candidates of a site, following the
// lattice's neighbor kinds in both directions.
func neighborsOf(lat *lattice.Lattice, s lattice.Site) []lattice.Site {
	var out []lattice.Site
	for _, hop := range lat.Neighbors() {
		if s.Family == hop.From {
			out = append(out, hop.To.Site(s.Tag[0]+hop.Delta[0], s.Tag[1]+hop.Delta[1]))
		}
		if s.Family == hop.To {
			out = append(out, hop.From.Site(s.Tag[0]-hop.Delta[0], s.Tag[1]-hop.Delta[1]))
		}
	}
	return out
}
