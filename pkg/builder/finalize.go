package builder

import (
	"slices"

	"github.com/tbsim/tbsim/pkg/errors"
	"github.com/tbsim/tbsim/pkg/lattice"
	"github.com/tbsim/tbsim/pkg/system"
)

// Finalize freezes a scattering-region builder into a system.FiniteSystem.
//
// The site sequence of the result is sorted by (family, tag); two builders
// holding the same contents finalize to identical site sequences no matter
// the insertion order. Hopping entries are emitted sorted by site index, so
// the whole finalized structure is deterministic.
func (b *Builder) Finalize() (*system.FiniteSystem, error) {
	if b.sym != nil {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"builder has a translational symmetry; use FinalizeLead")
	}
	if len(b.onsite) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyShape, "builder has no sites")
	}

	sites := sortedSites(b.onsite)
	index := make(map[lattice.Site]int, len(sites))
	onsite := make([]system.Value, len(sites))
	for i, s := range sites {
		index[s] = i
		onsite[i] = b.onsite[s]
	}

	hops := make([]system.HopEntry, 0, len(b.hops))
	for key, v := range b.hops {
		hops = append(hops, system.HopEntry{I: index[key.a], J: index[key.b], V: v})
	}
	slices.SortFunc(hops, compareHopEntries)

	leads := make([]*system.Lead, 0, len(b.leads))
	for li, lb := range b.leads {
		cell, cellSites, err := lb.finalizeCell()
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "lead %d", li)
		}
		iface, err := findInterface(lb.sym, cellSites, index)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "lead %d", li)
		}
		leads = append(leads, &system.Lead{Cell: cell, Interface: iface})
	}

	return system.NewFiniteSystem(sites, onsite, hops, leads), nil
}

// FinalizeLead freezes a lead builder into a system.InfiniteSystem holding
// one unit cell. Cell sites follow the same canonical order as finite
// systems.
func (b *Builder) FinalizeLead() (*system.InfiniteSystem, error) {
	if b.sym == nil {
		return nil, errors.New(errors.ErrCodeLeadSymmetry,
			"builder has no translational symmetry; use Finalize")
	}
	cell, _, err := b.finalizeCell()
	return cell, err
}

// finalizeCell builds the InfiniteSystem of a lead builder and returns the
// canonical cell site order alongside.
func (b *Builder) finalizeCell() (*system.InfiniteSystem, []lattice.Site, error) {
	if len(b.onsite) == 0 {
		return nil, nil, errors.New(errors.ErrCodeEmptyShape, "lead builder has no sites")
	}
	if err := b.sym.Validate(); err != nil {
		return nil, nil, err
	}

	sites := sortedSites(b.onsite)
	index := make(map[lattice.Site]int, len(sites))
	onsite := make([]system.Value, len(sites))
	for i, s := range sites {
		index[s] = i
		onsite[i] = b.onsite[s]
	}

	var intra []system.HopEntry
	var inter []system.InterHopEntry
	for key, v := range b.hops {
		switch key.offset {
		case 0:
			intra = append(intra, system.HopEntry{I: index[key.a], J: index[key.b], V: v})
		case 1:
			inter = append(inter, system.InterHopEntry{I: index[key.a], J: index[key.b], V: v})
		}
	}
	slices.SortFunc(intra, compareHopEntries)
	slices.SortFunc(inter, compareInterHopEntries)

	return system.NewInfiniteSystem(sites, onsite, intra, inter), sites, nil
}

// findInterface locates the outermost copy of the lead cell inside the
// scattering region. Translating the cell by n periods moves it toward the
// lead for growing n; the largest n whose translated sites are all present
// is the interface cell. The returned indices are aligned with the cell site
// order.
func findInterface(sym *lattice.TranslationalSymmetry, cellSites []lattice.Site, index map[lattice.Site]int) ([]int, error) {
	span := tagSpan(index) + 1

	for n := span; n >= -span; n-- {
		iface := make([]int, len(cellSites))
		ok := true
		for i, cs := range cellSites {
			idx, present := index[sym.Translate(cs, n)]
			if !present {
				ok = false
				break
			}
			iface[i] = idx
		}
		if ok {
			return iface, nil
		}
	}
	return nil, errors.New(errors.ErrCodeLeadIncompatible,
		"no translate of the lead cell matches the scattering region boundary")
}

// tagSpan returns the largest tag-component spread of the site index, which
// bounds how many periods a lead cell can be translated while staying inside
// the region.
func tagSpan(index map[lattice.Site]int) int {
	first := true
	var min, max int
	for s := range index {
		for _, c := range s.Tag {
			if first || c < min {
				min = c
			}
			if first || c > max {
				max = c
			}
			first = false
		}
	}
	return max - min
}

// sortedSites returns the map keys in canonical (family, tag) order.
func sortedSites(m map[lattice.Site]system.Value) []lattice.Site {
	sites := make([]lattice.Site, 0, len(m))
	for s := range m {
		sites = append(sites, s)
	}
	slices.SortFunc(sites, lattice.Compare)
	return sites
}

func compareHopEntries(a, b system.HopEntry) int {
	if a.I != b.I {
		return a.I - b.I
	}
	return a.J - b.J
}

func compareInterHopEntries(a, b system.InterHopEntry) int {
	if a.I != b.I {
		return a.I - b.I
	}
	return a.J - b.J
}
