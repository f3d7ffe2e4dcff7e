package physics

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// SquareSelfEnergy evaluates the lead self-energy of a semi-infinite
// square-lattice strip analytically: single orbital per site, onsite energy
// 4*hopping and nearest-neighbor hopping -hopping. It serves as the exact
// reference the decimation loop is validated against.
//
// The transverse modes of a strip of the given width are sine waves; each
// contributes a longitudinal factor f(q) that is complex inside the band
// (propagating) and real outside (evanescent).
func SquareSelfEnergy(width int, hopping, fermiEnergy float64) *mat.CDense {
	factor := math.Pi / float64(width+1)
	prefactor := math.Sqrt(2 / float64(width+1))

	// Transverse wave functions psi[p][i] of the strip.
	psi := make([][]float64, width)
	for p := range psi {
		psi[p] = make([]float64, width)
		for i := range psi[p] {
			psi[p][i] = prefactor * math.Sin(factor*float64(p+1)*float64(i+1))
		}
	}

	// Longitudinal factor per transverse mode.
	f := func(q float64) complex128 {
		if math.Abs(q) <= 2 {
			return complex(q/2, -math.Sqrt(1-q*q/4))
		}
		return complex(q/2-math.Copysign(math.Sqrt(q*q/4-1), q), 0)
	}
	fp := make([]complex128, width)
	for p := 0; p < width; p++ {
		e := 2 * hopping * (1 - math.Cos(factor*float64(p+1)))
		fp[p] = f((fermiEnergy-e)/hopping - 2)
	}

	sigma := mat.NewCDense(width, width, nil)
	for i := 0; i < width; i++ {
		for j := 0; j < width; j++ {
			var sum complex128
			for p := 0; p < width; p++ {
				sum += complex(psi[p][i]*psi[p][j], 0) * fp[p]
			}
			sigma.Set(i, j, complex(hopping, 0)*sum)
		}
	}
	return sigma
}
