package builtins

import (
	"math"

	"github.com/cantus-lang/cantus/internal/bigdecimal"
	"github.com/cantus-lang/cantus/internal/value"
)

func init() {
	register(&Builtin{Name: "Factorial", Arity: 1, Fn: builtinFactorial})
	register(&Builtin{Name: "Gamma", Arity: 1, Fn: builtinGamma})
}

// lanczosG and lanczosCoeffs are the eight-term Lanczos approximation
// coefficients (spec.md §4.F Factorial/Gamma: "the exact eight-term
// coefficient vector listed in the source"), the standard g=7, n=8 table
// used by most Lanczos Gamma implementations.
const lanczosG = 7

var lanczosCoeffs = [8]float64{
	0.99999999999980993,
	676.5203681218851,
	-1259.1392167224028,
	771.32342877765313,
	-176.61502916214059,
	12.507343278686905,
	-0.13857109526572012,
	9.9843695780195716e-6,
}

// gamma evaluates the Gamma function via the Lanczos approximation. For
// real part < 0.5, Euler's reflection formula is used instead (spec.md
// §4.F: "for arguments with real part < 0.5 use the reflection
// formula"), since the direct series converges poorly there.
func gamma(x float64) float64 {
	if x < 0.5 {
		return math.Pi / (math.Sin(math.Pi*x) * gamma(1-x))
	}
	x -= 1
	a := lanczosCoeffs[0]
	t := x + lanczosG + 0.5
	for i := 1; i < len(lanczosCoeffs); i++ {
		a += lanczosCoeffs[i] / (x + float64(i))
	}
	return math.Sqrt(2*math.Pi) * math.Pow(t, x+0.5) * math.Exp(-t) * a
}

// Gamma(x) is the analytic continuation of the factorial.
func builtinGamma(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	x, ok := asFloat(arg(args, 0))
	if !ok {
		return value.Undef, nil
	}
	return value.NewNumber(bigdecimal.NewFromFloat64(gamma(x))), nil
}

// Factorial(n) is Gamma(n+1); for small non-negative integers it takes
// the exact integer path instead, since the Lanczos series drifts beyond
// double precision for large n and the spec gives BigDecimal arbitrary
// precision to preserve.
func builtinFactorial(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	n, ok := arg(args, 0).(value.Number)
	if !ok {
		return value.Undef, nil
	}
	if i, ok := n.D.Truncate().Int64(); ok && i >= 0 && i <= 1000 && n.D.IsIntegerWithin(1e-9) {
		acc := bigdecimal.NewFromInt64(1)
		for k := int64(2); k <= i; k++ {
			acc = acc.Mul(bigdecimal.NewFromInt64(k))
		}
		return value.NewNumber(acc), nil
	}
	f, _ := asFloat(n)
	return value.NewNumber(bigdecimal.NewFromFloat64(gamma(f + 1))), nil
}
