package linalg

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/tbsim/tbsim/pkg/errors"
)

// Eye returns the n-by-n complex identity matrix.
func Eye(n int) *mat.CDense {
	m := mat.NewCDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// Clone returns an independent copy of a.
func Clone(a *mat.CDense) *mat.CDense {
	r, c := a.Dims()
	out := mat.NewCDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, a.At(i, j))
		}
	}
	return out
}

// Mul returns the matrix product a*b. gonum's mat carries no complex
// multiplication, so the product is accumulated entrywise.
func Mul(a, b *mat.CDense) *mat.CDense {
	ra, ca := a.Dims()
	_, cb := b.Dims()
	out := mat.NewCDense(ra, cb, nil)
	for i := 0; i < ra; i++ {
		for j := 0; j < cb; j++ {
			var sum complex128
			for k := 0; k < ca; k++ {
				sum += a.At(i, k) * b.At(k, j)
			}
			out.Set(i, j, sum)
		}
	}
	return out
}

// Add returns a+b.
func Add(a, b *mat.CDense) *mat.CDense {
	r, c := a.Dims()
	out := mat.NewCDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, a.At(i, j)+b.At(i, j))
		}
	}
	return out
}

// Sub returns a-b.
func Sub(a, b *mat.CDense) *mat.CDense {
	r, c := a.Dims()
	out := mat.NewCDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, a.At(i, j)-b.At(i, j))
		}
	}
	return out
}

// Scale returns s*a.
func Scale(s complex128, a *mat.CDense) *mat.CDense {
	r, c := a.Dims()
	out := mat.NewCDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, s*a.At(i, j))
		}
	}
	return out
}

// ConjTranspose returns the conjugate transpose of a.
func ConjTranspose(a *mat.CDense) *mat.CDense {
	r, c := a.Dims()
	out := mat.NewCDense(c, r, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(j, i, cmplx.Conj(a.At(i, j)))
		}
	}
	return out
}

// MaxAbs returns the largest absolute value of any entry of a. It is used as
// a cheap convergence norm by the decimation loop.
func MaxAbs(a *mat.CDense) float64 {
	r, c := a.Dims()
	var m float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := cmplx.Abs(a.At(i, j)); v > m {
				m = v
			}
		}
	}
	return m
}

// TraceReal returns the real part of the trace of a square matrix.
func TraceReal(a *mat.CDense) float64 {
	n, _ := a.Dims()
	var tr float64
	for i := 0; i < n; i++ {
		tr += real(a.At(i, i))
	}
	return tr
}

// realEmbed maps the complex matrix X+iY to the real block matrix
// [[X, -Y], [Y, X]].
func realEmbed(a *mat.CDense) *mat.Dense {
	r, c := a.Dims()
	out := mat.NewDense(2*r, 2*c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := a.At(i, j)
			out.Set(i, j, real(v))
			out.Set(i, j+c, -imag(v))
			out.Set(i+r, j, imag(v))
			out.Set(i+r, j+c, real(v))
		}
	}
	return out
}

// Solve solves a*x = b for x, with a square. It returns a structured error
// when a is singular to working precision.
func Solve(a, b *mat.CDense) (*mat.CDense, error) {
	ra, ca := a.Dims()
	rb, cb := b.Dims()
	if ra != ca || rb != ra {
		return nil, errors.New(errors.ErrCodeInternal,
			"solve dimension mismatch: a is %dx%d, b is %dx%d", ra, ca, rb, cb)
	}

	ae := realEmbed(a)
	be := realEmbed(b)

	var xe mat.Dense
	if err := xe.Solve(ae, be); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSingular, err, "%dx%d complex solve", ra, ca)
	}

	x := mat.NewCDense(ra, cb, nil)
	for i := 0; i < ra; i++ {
		for j := 0; j < cb; j++ {
			x.Set(i, j, complex(xe.At(i, j), xe.At(i+ra, j)))
		}
	}
	return x, nil
}

// Inverse returns the inverse of the square matrix a.
func Inverse(a *mat.CDense) (*mat.CDense, error) {
	n, _ := a.Dims()
	return Solve(a, Eye(n))
}

// EigenHermitian returns the eigenvalues of a Hermitian matrix in ascending
// order. The matrix is assumed Hermitian; only its realified symmetric
// embedding is inspected, where every eigenvalue appears exactly twice.
func EigenHermitian(a *mat.CDense) ([]float64, error) {
	n, c := a.Dims()
	if n != c {
		return nil, errors.New(errors.ErrCodeInternal, "eigen of non-square %dx%d matrix", n, c)
	}

	e := realEmbed(a)
	sym := mat.NewSymDense(2*n, nil)
	for i := 0; i < 2*n; i++ {
		for j := i; j < 2*n; j++ {
			sym.SetSym(i, j, (e.At(i, j)+e.At(j, i))/2)
		}
	}

	var es mat.EigenSym
	if !es.Factorize(sym, false) {
		return nil, errors.New(errors.ErrCodeSolver, "hermitian eigendecomposition failed")
	}
	all := es.Values(nil)

	// The embedding doubles every eigenvalue; collapse adjacent pairs.
	vals := make([]float64, n)
	for i := 0; i < n; i++ {
		vals[i] = (all[2*i] + all[2*i+1]) / 2
	}
	return vals, nil
}

// Hermitize returns (a + a†)/2. It is used by assembly code to guard against
// rounding drift before eigensolves.
func Hermitize(a *mat.CDense) *mat.CDense {
	n, _ := a.Dims()
	out := mat.NewCDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.Set(i, j, (a.At(i, j)+cmplx.Conj(a.At(j, i)))/2)
		}
	}
	return out
}

// IsHermitian reports whether a equals its conjugate transpose within tol.
func IsHermitian(a *mat.CDense, tol float64) bool {
	n, c := a.Dims()
	if n != c {
		return false
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if cmplx.Abs(a.At(i, j)-cmplx.Conj(a.At(j, i))) > tol {
				return false
			}
		}
	}
	return true
}

// NearlyEqual reports whether two matrices agree entrywise within tol.
func NearlyEqual(a, b *mat.CDense, tol float64) bool {
	ra, ca := a.Dims()
	rb, cb := b.Dims()
	if ra != rb || ca != cb {
		return false
	}
	for i := 0; i < ra; i++ {
		for j := 0; j < ca; j++ {
			if cmplx.Abs(a.At(i, j)-b.At(i, j)) > tol {
				return false
			}
		}
	}
	return true
}

// FrobeniusNorm returns the Frobenius norm of a.
func FrobeniusNorm(a *mat.CDense) float64 {
	r, c := a.Dims()
	var sum float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := cmplx.Abs(a.At(i, j))
			sum += v * v
		}
	}
	return math.Sqrt(sum)
}
