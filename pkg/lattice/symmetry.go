package lattice

import "github.com/tbsim/tbsim/pkg/errors"

// TranslationalSymmetry declares the period of a semi-infinite lead in units
// of the primitive lattice vectors. By convention the period points away
// from the scattering region, matching how leads are attached.
//
// Only axis-aligned periods (one component zero) are supported; this covers
// leads along either primitive direction.
type TranslationalSymmetry struct {
	Period Tag
}

// axis returns the index (0 or 1) of the nonzero period component.
func (s TranslationalSymmetry) axis() (int, error) {
	switch {
	case s.Period[0] != 0 && s.Period[1] == 0:
		return 0, nil
	case s.Period[0] == 0 && s.Period[1] != 0:
		return 1, nil
	default:
		return 0, errors.New(errors.ErrCodeLeadIncompatible,
			"lead period %v must be axis-aligned and nonzero", s.Period)
	}
}

// Validate reports whether the symmetry is usable for lead construction.
func (s TranslationalSymmetry) Validate() error {
	_, err := s.axis()
	return err
}

// Translate shifts a site by n periods.
func (s TranslationalSymmetry) Translate(site Site, n int) Site {
	site.Tag[0] += n * s.Period[0]
	site.Tag[1] += n * s.Period[1]
	return site
}

// ToFundamental reduces a site into the fundamental domain of the symmetry
// (cell 0) and returns the reduced site together with the cell index n such
// that Translate(reduced, n) recovers the original site.
func (s TranslationalSymmetry) ToFundamental(site Site) (Site, int, error) {
	ax, err := s.axis()
	if err != nil {
		return site, 0, err
	}
	p := s.Period[ax]
	n := floorDiv(site.Tag[ax], p)
	return s.Translate(site, -n), n, nil
}

// floorDiv divides a by b so that the remainder a-q*b lies in [0, |b|) for
// either sign of b.
func floorDiv(a, b int) int {
	q := a / b
	if r := a - q*b; r < 0 {
		if b > 0 {
			q--
		} else {
			q++
		}
	}
	return q
}
