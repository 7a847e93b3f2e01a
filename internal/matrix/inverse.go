package matrix

import (
	"github.com/cantus-lang/cantus/internal/bigdecimal"
	"github.com/cantus-lang/cantus/internal/value"
)

func isZero(d bigdecimal.Decimal) bool {
	return d.Compare(bigdecimal.NewFromInt64(0), value.Epsilon) == 0
}

// rref reduces g to reduced row-echelon form in place and returns the
// column index of each row's pivot (-1 for a row with no pivot).
//
// Stage 1: for each column, find the row with the largest-magnitude
// candidate pivot at or below the current row (partial pivoting keeps the
// Float64-based zero test numerically meaningful).
// Stage 2: swap that row into place and scale it so the pivot is 1.
// Stage 3: eliminate the pivot column from every other row.
func rref(g [][]bigdecimal.Decimal) (pivotCols []int) {
	rows, cols := dims(g)
	pivotCols = make([]int, rows)
	for i := range pivotCols {
		pivotCols[i] = -1
	}

	lead := 0
	for r := 0; r < rows && lead < cols; r++ {
		best := r
		bestMag := absFloat(g[r][lead].Float64())
		for i := r + 1; i < rows; i++ {
			if m := absFloat(g[i][lead].Float64()); m > bestMag {
				best, bestMag = i, m
			}
		}
		if isZero(g[best][lead]) {
			lead++
			r--
			continue
		}
		g[r], g[best] = g[best], g[r]

		pivot := g[r][lead]
		for j := 0; j < cols; j++ {
			g[r][j] = g[r][j].Div(pivot)
		}
		for i := 0; i < rows; i++ {
			if i == r {
				continue
			}
			factor := g[i][lead]
			if isZero(factor) {
				continue
			}
			for j := 0; j < cols; j++ {
				g[i][j] = g[i][j].Sub(factor.Mul(g[r][j]))
			}
		}
		pivotCols[r] = lead
		lead++
	}
	return pivotCols
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// RREF returns the reduced row-echelon form of m (spec.md §4.E).
func RREF(m *value.Matrix) (*value.Matrix, error) {
	g, err := toDecimals(m)
	if err != nil {
		return nil, wrapf(opRREF, err)
	}
	rref(g)
	return fromDecimals(g), nil
}

// Inverse computes the inverse of a square matrix by row-reducing [m | I]
// and reading the inverse off the right half (spec.md §4.E: "via RREF on
// an augmented identity"), grounded on the augmented-system approach of
// katalvlaran-lvlath/matrix/ops/inverse.go (there performed via LU
// substitution instead).
func Inverse(m *value.Matrix) (*value.Matrix, error) {
	if m.Height != m.Width {
		return nil, wrapf(opInverse, ErrNotSquare)
	}
	n := m.Height
	if n == 0 {
		return nil, wrapf(opInverse, ErrEmpty)
	}
	g, err := toDecimals(m)
	if err != nil {
		return nil, wrapf(opInverse, err)
	}

	aug := make([][]bigdecimal.Decimal, n)
	for i := 0; i < n; i++ {
		aug[i] = make([]bigdecimal.Decimal, 2*n)
		copy(aug[i], g[i])
		for j := 0; j < n; j++ {
			if i == j {
				aug[i][n+j] = bigdecimal.NewFromInt64(1)
			} else {
				aug[i][n+j] = bigdecimal.NewFromInt64(0)
			}
		}
	}

	pivots := rref(aug)
	for i := 0; i < n; i++ {
		if pivots[i] != i {
			return nil, wrapf(opInverse, ErrSingular)
		}
	}

	out := make([][]bigdecimal.Decimal, n)
	for i := 0; i < n; i++ {
		out[i] = aug[i][n:]
	}
	return fromDecimals(out), nil
}

// Determinant computes det(m) via Bareiss's fraction-free elimination,
// which stays exact over Decimal's rational arithmetic instead of
// accumulating rounding error the way floating-point Gaussian elimination
// would (spec.md §4.E: "via Bareiss or cofactor").
func Determinant(m *value.Matrix) (bigdecimal.Decimal, error) {
	if m.Height != m.Width {
		return bigdecimal.Undefined, wrapf(opDeterminant, ErrNotSquare)
	}
	n := m.Height
	if n == 0 {
		return bigdecimal.NewFromInt64(1), nil
	}
	g, err := toDecimals(m)
	if err != nil {
		return bigdecimal.Undefined, wrapf(opDeterminant, err)
	}

	sign := int64(1)
	prevPivot := bigdecimal.NewFromInt64(1)
	for k := 0; k < n-1; k++ {
		if isZero(g[k][k]) {
			swapped := false
			for i := k + 1; i < n; i++ {
				if !isZero(g[i][k]) {
					g[k], g[i] = g[i], g[k]
					sign = -sign
					swapped = true
					break
				}
			}
			if !swapped {
				return bigdecimal.NewFromInt64(0), nil
			}
		}
		for i := k + 1; i < n; i++ {
			for j := k + 1; j < n; j++ {
				num := g[i][j].Mul(g[k][k]).Sub(g[i][k].Mul(g[k][j]))
				g[i][j] = num.Div(prevPivot)
			}
		}
		prevPivot = g[k][k]
	}
	det := g[n-1][n-1]
	if sign < 0 {
		det = det.Neg()
	}
	return det, nil
}

// NullSpace returns a basis for the null space of m, computed from the
// RREF of m by back-solving the free variables (spec.md §4.E: "null-space
// basis via RREF of transpose" — Cantus computes it directly from m's own
// RREF, which is the standard construction and avoids an extra transpose).
func NullSpace(m *value.Matrix) ([]*value.Matrix, error) {
	g, err := toDecimals(m)
	if err != nil {
		return nil, wrapf(opNullSpace, err)
	}
	rows, cols := dims(g)
	pivots := rref(g)

	pivotCol := make(map[int]bool)
	for _, p := range pivots {
		if p >= 0 {
			pivotCol[p] = true
		}
	}

	var basis []*value.Matrix
	for free := 0; free < cols; free++ {
		if pivotCol[free] {
			continue
		}
		vec := make([]bigdecimal.Decimal, cols)
		for j := range vec {
			vec[j] = bigdecimal.NewFromInt64(0)
		}
		vec[free] = bigdecimal.NewFromInt64(1)
		for r := 0; r < rows; r++ {
			p := pivots[r]
			if p < 0 {
				continue
			}
			vec[p] = g[r][free].Neg()
		}
		basis = append(basis, fromDecimals([][]bigdecimal.Decimal{vec}))
	}
	return basis, nil
}
