package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cantus-lang/cantus/internal/bigdecimal"
	"github.com/cantus-lang/cantus/internal/matrix"
	"github.com/cantus-lang/cantus/internal/value"
)

func numMatrix(rows [][]float64) *value.Matrix {
	out := make([][]value.Value, len(rows))
	for i, row := range rows {
		out[i] = make([]value.Value, len(row))
		for j, f := range row {
			out[i][j] = value.NewNumber(bigdecimal.NewFromFloat64(f))
		}
	}
	return value.NewMatrix(out)
}

func TestMultiplyIdentity(t *testing.T) {
	a := numMatrix([][]float64{{1, 2}, {3, 4}})
	id := numMatrix([][]float64{{1, 0}, {0, 1}})

	got, err := matrix.Multiply(a, id)
	require.NoError(t, err)
	require.Equal(t, "[[1, 2], [3, 4]]", got.String())
}

func TestMultiplyDimensionMismatch(t *testing.T) {
	a := numMatrix([][]float64{{1, 2, 3}})
	b := numMatrix([][]float64{{1, 2}})

	_, err := matrix.Multiply(a, b)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestInverseRoundTrip(t *testing.T) {
	a := numMatrix([][]float64{{4, 7}, {2, 6}})

	inv, err := matrix.Inverse(a)
	require.NoError(t, err)

	product, err := matrix.Multiply(a, inv)
	require.NoError(t, err)
	require.True(t, matrix.IsIdentityMatrix(product))
}

func TestInverseSingular(t *testing.T) {
	a := numMatrix([][]float64{{1, 2}, {2, 4}})

	_, err := matrix.Inverse(a)
	require.ErrorIs(t, err, matrix.ErrSingular)
}

func TestDeterminant(t *testing.T) {
	a := numMatrix([][]float64{{1, 2}, {3, 4}})

	det, err := matrix.Determinant(a)
	require.NoError(t, err)
	require.Equal(t, 0, det.Compare(bigdecimal.NewFromFloat64(-2), value.Epsilon))
}

func TestDeterminantSingularIsZero(t *testing.T) {
	a := numMatrix([][]float64{{1, 2}, {2, 4}})

	det, err := matrix.Determinant(a)
	require.NoError(t, err)
	require.Equal(t, 0, det.Compare(bigdecimal.NewFromInt64(0), value.Epsilon))
}

func TestTranspose(t *testing.T) {
	a := numMatrix([][]float64{{1, 2, 3}, {4, 5, 6}})

	got, err := matrix.Transpose(a)
	require.NoError(t, err)
	require.Equal(t, "[[1, 4], [2, 5], [3, 6]]", got.String())
}

func TestCrossProduct(t *testing.T) {
	a := numMatrix([][]float64{{1, 0, 0}})
	b := numMatrix([][]float64{{0, 1, 0}})

	got, err := matrix.Cross(a, b)
	require.NoError(t, err)
	require.Equal(t, "[[0, 0, 1]]", got.String())
}

func TestCrossRequiresLength3(t *testing.T) {
	a := numMatrix([][]float64{{1, 0}})
	b := numMatrix([][]float64{{0, 1}})

	_, err := matrix.Cross(a, b)
	require.ErrorIs(t, err, matrix.ErrNotVector3)
}

func TestDotProduct(t *testing.T) {
	a := numMatrix([][]float64{{1, 2, 3}})
	b := numMatrix([][]float64{{4, 5, 6}})

	got, err := matrix.Dot(a, b)
	require.NoError(t, err)
	require.Equal(t, 0, got.Compare(bigdecimal.NewFromInt64(32), value.Epsilon))
}

func TestNullSpaceOfRankDeficientMatrix(t *testing.T) {
	a := numMatrix([][]float64{{1, 2}, {2, 4}})

	basis, err := matrix.NullSpace(a)
	require.NoError(t, err)
	require.Len(t, basis, 1)
}

func TestExpoSquares(t *testing.T) {
	a := numMatrix([][]float64{{1, 1}, {0, 1}})

	got, err := matrix.Expo(a, 3)
	require.NoError(t, err)
	require.Equal(t, "[[1, 3], [0, 1]]", got.String())
}
