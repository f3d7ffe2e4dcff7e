package linalg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/tbsim/tbsim/pkg/errors"
)

func TestMul(t *testing.T) {
	// Rectangular product with complex entries, worked by hand.
	a := mat.NewCDense(2, 3, []complex128{1, 1i, 0, 2, 0, -1i})
	b := mat.NewCDense(3, 2, []complex128{1, 2, 3, 4i, 5i, 6})
	got := Mul(a, b)

	r, c := got.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 2, c)

	want := mat.NewCDense(2, 2, []complex128{1 + 3i, -2, 7, 4 - 6i})
	assert.True(t, NearlyEqual(got, want, 1e-14),
		"product mismatch:\n got %v\nwant %v", got.RawCMatrix().Data, want.RawCMatrix().Data)

	// Identity is neutral on both sides.
	sq := mat.NewCDense(2, 2, []complex128{1 + 1i, 2, -3i, 4})
	assert.True(t, NearlyEqual(Mul(Eye(2), sq), sq, 1e-14))
	assert.True(t, NearlyEqual(Mul(sq, Eye(2)), sq, 1e-14))
}

func TestSolveAgainstKnownInverse(t *testing.T) {
	// a = [[2, i], [-i, 3]] is Hermitian positive definite with det = 5.
	a := mat.NewCDense(2, 2, []complex128{2, 1i, -1i, 3})
	x, err := Solve(a, Eye(2))
	require.NoError(t, err)

	// inv(a) = 1/5 * [[3, -i], [i, 2]]
	want := mat.NewCDense(2, 2, []complex128{3.0 / 5, -1i / 5, 1i / 5, 2.0 / 5})
	assert.True(t, NearlyEqual(x, want, 1e-12), "inverse mismatch:\n got %v\nwant %v", x.RawCMatrix().Data, want.RawCMatrix().Data)

	// a * inv(a) must be the identity.
	assert.True(t, NearlyEqual(Mul(a, x), Eye(2), 1e-12))
}

func TestSolveSingular(t *testing.T) {
	a := mat.NewCDense(2, 2, []complex128{1, 1, 1, 1})
	_, err := Solve(a, Eye(2))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSingular, errors.GetCode(err))
}

func TestSolveDimensionMismatch(t *testing.T) {
	a := mat.NewCDense(2, 3, nil)
	_, err := Solve(a, Eye(2))
	require.Error(t, err)
}

func TestEigenHermitian(t *testing.T) {
	tests := []struct {
		name string
		m    *mat.CDense
		want []float64
	}{
		{
			name: "RealDiagonal",
			m:    mat.NewCDense(2, 2, []complex128{-1, 0, 0, 2}),
			want: []float64{-1, 2},
		},
		{
			name: "ComplexOffdiagonal",
			// [[1, i], [-i, 1]] has eigenvalues 0 and 2.
			m:    mat.NewCDense(2, 2, []complex128{1, 1i, -1i, 1}),
			want: []float64{0, 2},
		},
		{
			name: "TightBindingDimer",
			// [[0, -1], [-1, 0]]: bonding/antibonding pair at -1, +1.
			m:    mat.NewCDense(2, 2, []complex128{0, -1, -1, 0}),
			want: []float64{-1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EigenHermitian(tt.m)
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 1e-10)
			}
		})
	}
}

func TestConjTranspose(t *testing.T) {
	a := mat.NewCDense(2, 3, []complex128{1 + 2i, 3, 0, -1i, 5, 2 - 1i})
	h := ConjTranspose(a)

	r, c := h.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 2, c)
	assert.Equal(t, complex128(1-2i), h.At(0, 0))
	assert.Equal(t, complex128(1i), h.At(0, 1))
	assert.Equal(t, complex128(2+1i), h.At(2, 1))
}

func TestHermitizeAndIsHermitian(t *testing.T) {
	a := mat.NewCDense(2, 2, []complex128{1, 2 + 1i, 2 - 1i, 3})
	assert.True(t, IsHermitian(a, 1e-14))

	b := mat.NewCDense(2, 2, []complex128{1, 2 + 1i, 2 + 1i, 3})
	assert.False(t, IsHermitian(b, 1e-14))
	assert.True(t, IsHermitian(Hermitize(b), 1e-14))
}

func TestTraceRealAndNorms(t *testing.T) {
	a := mat.NewCDense(2, 2, []complex128{1 + 5i, 0, 0, 2 - 5i})
	assert.InDelta(t, 3.0, TraceReal(a), 1e-14)

	b := mat.NewCDense(1, 2, []complex128{3, 4i})
	assert.InDelta(t, 5.0, FrobeniusNorm(b), 1e-14)
	assert.InDelta(t, 4.0, MaxAbs(b), 1e-14)
}

func TestScaleAddSub(t *testing.T) {
	a := mat.NewCDense(1, 2, []complex128{1, 2})
	b := mat.NewCDense(1, 2, []complex128{10, 20})

	sum := Add(a, b)
	assert.Equal(t, complex128(11), sum.At(0, 0))
	diff := Sub(b, a)
	assert.Equal(t, complex128(18), diff.At(0, 1))
	sc := Scale(2i, a)
	assert.Equal(t, complex128(4i), sc.At(0, 1))
}
