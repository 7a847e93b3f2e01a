package matrix

import (
	"github.com/cantus-lang/cantus/internal/bigdecimal"
	"github.com/cantus-lang/cantus/internal/value"
)

// toDecimals materializes m's elements as a plain grid, failing if any
// cell is not a Number (spec.md §4.E operates on numeric matrices only).
func toDecimals(m *value.Matrix) ([][]bigdecimal.Decimal, error) {
	out := make([][]bigdecimal.Decimal, len(m.Rows))
	for i, row := range m.Rows {
		out[i] = make([]bigdecimal.Decimal, len(row))
		for j, r := range row {
			v, err := r.Resolve()
			if err != nil {
				return nil, err
			}
			n, ok := v.(value.Number)
			if !ok {
				return nil, ErrDimensionMismatch
			}
			out[i][j] = n.D
		}
	}
	return out, nil
}

func fromDecimals(g [][]bigdecimal.Decimal) *value.Matrix {
	rows := make([][]value.Value, len(g))
	for i, row := range g {
		rows[i] = make([]value.Value, len(row))
		for j, d := range row {
			rows[i][j] = value.NewNumber(d)
		}
	}
	return value.NewMatrix(rows)
}

func dims(g [][]bigdecimal.Decimal) (rows, cols int) {
	rows = len(g)
	if rows > 0 {
		cols = len(g[0])
	}
	return
}

// Add returns the element-wise sum of a and b.
func Add(a, b *value.Matrix) (*value.Matrix, error) { return elementwise(a, b, "Add", bigdecimal.Decimal.Add) }

// Sub returns the element-wise difference a - b.
func Sub(a, b *value.Matrix) (*value.Matrix, error) { return elementwise(a, b, "Sub", bigdecimal.Decimal.Sub) }

func elementwise(a, b *value.Matrix, op string, f func(bigdecimal.Decimal, bigdecimal.Decimal) bigdecimal.Decimal) (*value.Matrix, error) {
	ga, err := toDecimals(a)
	if err != nil {
		return nil, wrapf(op, err)
	}
	gb, err := toDecimals(b)
	if err != nil {
		return nil, wrapf(op, err)
	}
	ra, ca := dims(ga)
	rb, cb := dims(gb)
	if ra != rb || ca != cb {
		return nil, wrapf(op, ErrDimensionMismatch)
	}
	out := make([][]bigdecimal.Decimal, ra)
	for i := range ga {
		out[i] = make([]bigdecimal.Decimal, ca)
		for j := range ga[i] {
			out[i][j] = f(ga[i][j], gb[i][j])
		}
	}
	return fromDecimals(out), nil
}

// Multiply performs standard matrix multiplication a x b (spec.md §4.E).
func Multiply(a, b *value.Matrix) (*value.Matrix, error) {
	ga, err := toDecimals(a)
	if err != nil {
		return nil, wrapf(opMul, err)
	}
	gb, err := toDecimals(b)
	if err != nil {
		return nil, wrapf(opMul, err)
	}
	aRows, aCols := dims(ga)
	bRows, bCols := dims(gb)
	if aCols != bRows {
		return nil, wrapf(opMul, ErrDimensionMismatch)
	}

	out := make([][]bigdecimal.Decimal, aRows)
	for i := 0; i < aRows; i++ {
		out[i] = make([]bigdecimal.Decimal, bCols)
		for j := 0; j < bCols; j++ {
			sum := bigdecimal.NewFromInt64(0)
			for k := 0; k < aCols; k++ {
				sum = sum.Add(ga[i][k].Mul(gb[k][j]))
			}
			out[i][j] = sum
		}
	}
	return fromDecimals(out), nil
}

// Scale multiplies every element by a scalar.
func Scale(a *value.Matrix, s bigdecimal.Decimal) (*value.Matrix, error) {
	ga, err := toDecimals(a)
	if err != nil {
		return nil, wrapf(opScale, err)
	}
	for i := range ga {
		for j := range ga[i] {
			ga[i][j] = ga[i][j].Mul(s)
		}
	}
	return fromDecimals(ga), nil
}

// Transpose returns the transpose of m.
func Transpose(m *value.Matrix) (*value.Matrix, error) {
	g, err := toDecimals(m)
	if err != nil {
		return nil, wrapf(opTranspose, err)
	}
	rows, cols := dims(g)
	out := make([][]bigdecimal.Decimal, cols)
	for j := 0; j < cols; j++ {
		out[j] = make([]bigdecimal.Decimal, rows)
		for i := 0; i < rows; i++ {
			out[j][i] = g[i][j]
		}
	}
	return fromDecimals(out), nil
}

// Expo raises a square matrix to a non-negative integer power by repeated
// multiplication (spec.md §4.E: "expo").
func Expo(m *value.Matrix, n int) (*value.Matrix, error) {
	if m.Height != m.Width {
		return nil, wrapf(opExpo, ErrNotSquare)
	}
	if n < 0 {
		return nil, wrapf(opExpo, ErrDimensionMismatch)
	}
	result := identity(m.Height)
	base := m
	for n > 0 {
		if n&1 == 1 {
			var err error
			result, err = Multiply(result, base)
			if err != nil {
				return nil, wrapf(opExpo, err)
			}
		}
		var err error
		base, err = Multiply(base, base)
		if err != nil {
			return nil, wrapf(opExpo, err)
		}
		n >>= 1
	}
	return result, nil
}

func identity(n int) *value.Matrix {
	g := make([][]bigdecimal.Decimal, n)
	for i := range g {
		g[i] = make([]bigdecimal.Decimal, n)
		for j := range g[i] {
			if i == j {
				g[i][j] = bigdecimal.NewFromInt64(1)
			} else {
				g[i][j] = bigdecimal.NewFromInt64(0)
			}
		}
	}
	return fromDecimals(g)
}

// IsIdentityMatrix reports whether m is a square identity matrix.
func IsIdentityMatrix(m *value.Matrix) bool {
	g, err := toDecimals(m)
	if err != nil {
		return false
	}
	rows, cols := dims(g)
	if rows != cols {
		return false
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			want := int64(0)
			if i == j {
				want = 1
			}
			if g[i][j].Compare(bigdecimal.NewFromInt64(want), value.Epsilon) != 0 {
				return false
			}
		}
	}
	return true
}

func flattenVector(m *value.Matrix) ([]bigdecimal.Decimal, error) {
	g, err := toDecimals(m)
	if err != nil {
		return nil, err
	}
	var out []bigdecimal.Decimal
	for _, row := range g {
		out = append(out, row...)
	}
	return out, nil
}

// Dot returns the dot product of two equal-length vector matrices (spec.md
// §4.E).
func Dot(a, b *value.Matrix) (bigdecimal.Decimal, error) {
	va, err := flattenVector(a)
	if err != nil {
		return bigdecimal.Undefined, wrapf(opDot, err)
	}
	vb, err := flattenVector(b)
	if err != nil {
		return bigdecimal.Undefined, wrapf(opDot, err)
	}
	if len(va) != len(vb) {
		return bigdecimal.Undefined, wrapf(opDot, ErrDimensionMismatch)
	}
	sum := bigdecimal.NewFromInt64(0)
	for i := range va {
		sum = sum.Add(va[i].Mul(vb[i]))
	}
	return sum, nil
}

// Inner is an alias of Dot for row/column vectors (spec.md §4.E names both).
func Inner(a, b *value.Matrix) (bigdecimal.Decimal, error) {
	d, err := Dot(a, b)
	if err != nil {
		return d, wrapf(opInner, err)
	}
	return d, nil
}

// Cross returns the 3-dimensional cross product of two length-3 vectors.
func Cross(a, b *value.Matrix) (*value.Matrix, error) {
	va, err := flattenVector(a)
	if err != nil {
		return nil, wrapf(opCross, err)
	}
	vb, err := flattenVector(b)
	if err != nil {
		return nil, wrapf(opCross, err)
	}
	if len(va) != 3 || len(vb) != 3 {
		return nil, wrapf(opCross, ErrNotVector3)
	}
	cx := va[1].Mul(vb[2]).Sub(va[2].Mul(vb[1]))
	cy := va[2].Mul(vb[0]).Sub(va[0].Mul(vb[2]))
	cz := va[0].Mul(vb[1]).Sub(va[1].Mul(vb[0]))
	return fromDecimals([][]bigdecimal.Decimal{{cx, cy, cz}}), nil
}

// Norm returns the sum of squared magnitudes of m's entries (spec.md
// §4.E: "norm" and "magnitude" are two distinct operations, the latter
// being the former's square root).
func Norm(m *value.Matrix) (float64, error) {
	v, err := flattenVector(m)
	if err != nil {
		return 0, wrapf(opNorm, err)
	}
	sum := 0.0
	for _, d := range v {
		f := d.Float64()
		sum += f * f
	}
	return sum, nil
}

// Magnitude is Norm's square root.
func Magnitude(m *value.Matrix) (float64, error) {
	n, err := Norm(m)
	if err != nil {
		return 0, err
	}
	return mathSqrt(n), nil
}

func mathSqrt(f float64) float64 {
	if f <= 0 {
		return 0
	}
	x := f
	for i := 0; i < 64; i++ {
		x = 0.5 * (x + f/x)
	}
	return x
}

// SwapRows exchanges rows i and j in place.
func SwapRows(m *value.Matrix, i, j int) error {
	if i < 0 || j < 0 || i >= len(m.Rows) || j >= len(m.Rows) {
		return wrapf(opSwapRows, ErrDimensionMismatch)
	}
	m.Rows[i], m.Rows[j] = m.Rows[j], m.Rows[i]
	return nil
}

// SwapCols exchanges columns i and j in place.
func SwapCols(m *value.Matrix, i, j int) error {
	for _, row := range m.Rows {
		if i < 0 || j < 0 || i >= len(row) || j >= len(row) {
			return wrapf(opSwapCols, ErrDimensionMismatch)
		}
		row[i], row[j] = row[j], row[i]
	}
	return nil
}
