package builtins

import (
	"github.com/cantus-lang/cantus/internal/bigdecimal"
	"github.com/cantus-lang/cantus/internal/matrix"
	"github.com/cantus-lang/cantus/internal/value"
)

// This file wires component E (internal/matrix) into the component F
// catalog: the linear-algebra operations spec.md §4.E names, exposed as
// ordinary built-ins the same way Quadratic/ToFraction expose their own
// component's results.
func init() {
	register(&Builtin{Name: "Matrix", Arity: -1, Fn: builtinMatrixCtor})
	register(&Builtin{Name: "Multiply", Arity: 2, Fn: builtinMatMultiply})
	register(&Builtin{Name: "ScalarMultiply", Arity: 2, Fn: builtinScalarMultiply})
	register(&Builtin{Name: "Transpose", Arity: 1, Fn: builtinTranspose})
	register(&Builtin{Name: "Inverse", Arity: 1, Fn: builtinInverse})
	register(&Builtin{Name: "Determinant", Arity: 1, Fn: builtinDeterminant})
	register(&Builtin{Name: "Rref", Arity: 1, Fn: builtinRref})
	register(&Builtin{Name: "Dot", Arity: 2, Fn: builtinDot})
	register(&Builtin{Name: "Inner", Arity: 2, Fn: builtinInner})
	register(&Builtin{Name: "Cross", Arity: 2, Fn: builtinCross})
	register(&Builtin{Name: "Norm", Arity: 1, Fn: builtinNorm})
	register(&Builtin{Name: "Magnitude", Arity: 1, Fn: builtinMagnitude})
	register(&Builtin{Name: "SwapRows", Arity: 3, Fn: builtinSwapRows})
	register(&Builtin{Name: "SwapCols", Arity: 3, Fn: builtinSwapCols})
	register(&Builtin{Name: "Expo", Arity: 2, Fn: builtinExpo})
	register(&Builtin{Name: "IsIdentityMatrix", Arity: 1, Fn: builtinIsIdentity})
	register(&Builtin{Name: "NullSpace", Arity: 1, Fn: builtinNullSpace})
	register(&Builtin{Name: "Conjugate", Arity: 1, Fn: builtinConjugate})
}

func asMatrix(v value.Value) (*value.Matrix, bool) {
	m, ok := v.(*value.Matrix)
	return m, ok
}

// Matrix(rows...) builds a Matrix value from row arguments: each argument
// is itself expected to be a Matrix (a single-row literal produced by the
// parser's `[a, b, c]` form) contributing one row, so `Matrix([1,2],
// [3,4])` builds a 2x2 rectangle (spec.md §3: "rectangular on creation
// via Matrix()").
func builtinMatrixCtor(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	var rows [][]value.Value
	for _, a := range args {
		if row, ok := asMatrix(a); ok && len(row.Rows) == 1 {
			vals := make([]value.Value, len(row.Rows[0]))
			for i, r := range row.Rows[0] {
				vals[i], _ = r.Resolve()
			}
			rows = append(rows, vals)
		} else {
			rows = append(rows, []value.Value{a})
		}
	}
	m := value.NewMatrix(rows)
	m.Normalize()
	return m, nil
}

func builtinMatMultiply(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	a, ok1 := asMatrix(arg(args, 0))
	b, ok2 := asMatrix(arg(args, 1))
	if !ok1 || !ok2 {
		return value.Undef, nil
	}
	result, err := matrix.Multiply(a, b)
	if err != nil {
		return value.Undef, err
	}
	return result, nil
}

func builtinScalarMultiply(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	a, ok1 := asMatrix(arg(args, 0))
	s, ok2 := arg(args, 1).(value.Number)
	if !ok1 || !ok2 {
		return value.Undef, nil
	}
	result, err := matrix.Scale(a, s.D)
	if err != nil {
		return value.Undef, err
	}
	return result, nil
}

func builtinTranspose(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	a, ok := asMatrix(arg(args, 0))
	if !ok {
		return value.Undef, nil
	}
	result, err := matrix.Transpose(a)
	if err != nil {
		return value.Undef, err
	}
	return result, nil
}

func builtinInverse(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	a, ok := asMatrix(arg(args, 0))
	if !ok {
		return value.Undef, nil
	}
	result, err := matrix.Inverse(a)
	if err != nil {
		return value.Undef, err
	}
	return result, nil
}

func builtinDeterminant(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	a, ok := asMatrix(arg(args, 0))
	if !ok {
		return value.Undef, nil
	}
	d, err := matrix.Determinant(a)
	if err != nil {
		return value.Undef, err
	}
	return value.NewNumber(d), nil
}

func builtinRref(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	a, ok := asMatrix(arg(args, 0))
	if !ok {
		return value.Undef, nil
	}
	result, err := matrix.RREF(a)
	if err != nil {
		return value.Undef, err
	}
	return result, nil
}

func builtinDot(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	a, ok1 := asMatrix(arg(args, 0))
	b, ok2 := asMatrix(arg(args, 1))
	if !ok1 || !ok2 {
		return value.Undef, nil
	}
	d, err := matrix.Dot(a, b)
	if err != nil {
		return value.Undef, err
	}
	return value.NewNumber(d), nil
}

func builtinInner(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	a, ok1 := asMatrix(arg(args, 0))
	b, ok2 := asMatrix(arg(args, 1))
	if !ok1 || !ok2 {
		return value.Undef, nil
	}
	d, err := matrix.Inner(a, b)
	if err != nil {
		return value.Undef, err
	}
	return value.NewNumber(d), nil
}

func builtinCross(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	a, ok1 := asMatrix(arg(args, 0))
	b, ok2 := asMatrix(arg(args, 1))
	if !ok1 || !ok2 {
		return value.Undef, nil
	}
	result, err := matrix.Cross(a, b)
	if err != nil {
		return value.Undef, err
	}
	return result, nil
}

func builtinNorm(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	a, ok := asMatrix(arg(args, 0))
	if !ok {
		return value.Undef, nil
	}
	n, err := matrix.Norm(a)
	if err != nil {
		return value.Undef, err
	}
	return value.NewNumber(bigdecimal.NewFromFloat64(n)), nil
}

func builtinMagnitude(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	a, ok := asMatrix(arg(args, 0))
	if !ok {
		return value.Undef, nil
	}
	n, err := matrix.Magnitude(a)
	if err != nil {
		return value.Undef, err
	}
	return value.NewNumber(bigdecimal.NewFromFloat64(n)), nil
}

// Conjugate(m) negates the imaginary part of every Complex cell,
// leaving Number cells unchanged (SPEC_FULL.md §4.F.3: the distillation's
// source material had a conjugate bug limited to row/column matrices;
// Cantus's element-wise version is correct for any Matrix shape).
func builtinConjugate(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	m, ok := asMatrix(arg(args, 0))
	if !ok {
		return value.Undef, nil
	}
	rows := make([][]value.Value, len(m.Rows))
	for i, row := range m.Rows {
		out := make([]value.Value, len(row))
		for j, r := range row {
			cell, _ := r.Resolve()
			if c, ok := cell.(value.Complex); ok {
				out[j] = value.Complex{Re: c.Re, Im: -c.Im}
			} else {
				out[j] = cell
			}
		}
		rows[i] = out
	}
	return value.NewMatrix(rows), nil
}

func builtinSwapRows(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	a, ok := asMatrix(arg(args, 0))
	i, ok2 := asInt(arg(args, 1))
	j, ok3 := asInt(arg(args, 2))
	if !ok || !ok2 || !ok3 {
		return value.Undef, nil
	}
	if err := matrix.SwapRows(a, int(i), int(j)); err != nil {
		return value.Undef, err
	}
	return a, nil
}

func builtinSwapCols(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	a, ok := asMatrix(arg(args, 0))
	i, ok2 := asInt(arg(args, 1))
	j, ok3 := asInt(arg(args, 2))
	if !ok || !ok2 || !ok3 {
		return value.Undef, nil
	}
	if err := matrix.SwapCols(a, int(i), int(j)); err != nil {
		return value.Undef, err
	}
	return a, nil
}

func builtinExpo(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	a, ok := asMatrix(arg(args, 0))
	n, ok2 := asInt(arg(args, 1))
	if !ok || !ok2 {
		return value.Undef, nil
	}
	result, err := matrix.Expo(a, int(n))
	if err != nil {
		return value.Undef, err
	}
	return result, nil
}

func builtinIsIdentity(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	a, ok := asMatrix(arg(args, 0))
	if !ok {
		return value.Boolean{B: false}, nil
	}
	return value.Boolean{B: matrix.IsIdentityMatrix(a)}, nil
}

func builtinNullSpace(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	a, ok := asMatrix(arg(args, 0))
	if !ok {
		return value.Undef, nil
	}
	basis, err := matrix.NullSpace(a)
	if err != nil {
		return value.Undef, err
	}
	rows := make([][]value.Value, len(basis))
	for i, vec := range basis {
		rows[i] = make([]value.Value, vec.Width)
		for j := 0; j < vec.Width; j++ {
			rows[i][j] = vec.At(0, j)
		}
	}
	return value.NewMatrix(rows), nil
}
