package builtins_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cantus-lang/cantus/internal/bigdecimal"
	"github.com/cantus-lang/cantus/internal/builtins"
	"github.com/cantus-lang/cantus/internal/value"
)

func num(t *testing.T, v value.Value) float64 {
	t.Helper()
	n, ok := v.(value.Number)
	require.True(t, ok, "expected Number, got %T", v)
	return n.D.Float64()
}

func TestAbsAndSign(t *testing.T) {
	v, err := builtins.Call("Abs", []value.Value{value.NewNumberInt(-5)}, nil)
	require.NoError(t, err)
	require.Equal(t, "5", v.String())

	v, err = builtins.Call("sign", []value.Value{value.NewNumberInt(-5)}, nil) // case-insensitive
	require.NoError(t, err)
	require.Equal(t, "-1", v.String())
}

func TestMinMax(t *testing.T) {
	v, err := builtins.Call("Min", []value.Value{value.NewNumberInt(3), value.NewNumberInt(7)}, nil)
	require.NoError(t, err)
	require.Equal(t, "3", v.String())

	v, err = builtins.Call("Max", []value.Value{value.NewNumberInt(3), value.NewNumberInt(7)}, nil)
	require.NoError(t, err)
	require.Equal(t, "7", v.String())
}

func TestSqrtEscalatesToComplexForNegatives(t *testing.T) {
	v, err := builtins.Call("Sqrt", []value.Value{value.NewNumberInt(-4)}, nil)
	require.NoError(t, err)
	c, ok := v.(value.Complex)
	require.True(t, ok)
	require.InDelta(t, 2.0, c.Im, 1e-9)
}

func TestIsPrime(t *testing.T) {
	v, err := builtins.Call("IsPrime", []value.Value{value.NewNumberInt(97)}, nil)
	require.NoError(t, err)
	require.Equal(t, "true", v.String())

	v, err = builtins.Call("IsPrime", []value.Value{value.NewNumberInt(100)}, nil)
	require.NoError(t, err)
	require.Equal(t, "false", v.String())
}

func TestFactorialExact(t *testing.T) {
	v, err := builtins.Call("Factorial", []value.Value{value.NewNumberInt(10)}, nil)
	require.NoError(t, err)
	require.Equal(t, "3628800", v.String())
}

func TestQuadraticRealRoots(t *testing.T) {
	v, err := builtins.Call("Quadratic", []value.Value{
		value.NewNumberInt(1), value.NewNumberInt(-3), value.NewNumberInt(2),
	}, nil)
	require.NoError(t, err)
	m, ok := v.(*value.Matrix)
	require.True(t, ok)
	require.Equal(t, 2, m.Width)
	r1 := num(t, m.At(0, 0))
	r2 := num(t, m.At(0, 1))
	require.ElementsMatch(t, []float64{1, 2}, []float64{r1, r2})
}

func TestQuadraticComplexRoots(t *testing.T) {
	v, err := builtins.Call("Quadratic", []value.Value{
		value.NewNumberInt(1), value.NewNumberInt(0), value.NewNumberInt(1),
	}, nil)
	require.NoError(t, err)
	m, ok := v.(*value.Matrix)
	require.True(t, ok)
	_, ok = m.At(0, 0).(value.Complex)
	require.True(t, ok)
}

func TestToFractionSimpleRatio(t *testing.T) {
	v, err := builtins.Call("ToFraction", []value.Value{value.NewNumber(bigdecimal.NewFromFloat64(0.75))}, nil)
	require.NoError(t, err)
	require.Equal(t, "3/4", v.String())
}

func TestUnknownBuiltinErrors(t *testing.T) {
	_, err := builtins.Call("NoSuchBuiltin", nil, nil)
	require.Error(t, err)
}

func TestSortUsesCanonicalComparator(t *testing.T) {
	m := value.NewMatrix([][]value.Value{{
		value.NewNumberInt(3), value.NewNumberInt(1), value.NewNumberInt(2),
	}})
	v, err := builtins.Call("Sort", []value.Value{m}, nil)
	require.NoError(t, err)
	require.Equal(t, "[[1, 2, 3]]", v.String())
}
