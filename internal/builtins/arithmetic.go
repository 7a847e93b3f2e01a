package builtins

import (
	"math"

	"github.com/cantus-lang/cantus/internal/bigdecimal"
	"github.com/cantus-lang/cantus/internal/value"
)

func init() {
	register(&Builtin{Name: "Abs", Arity: 1, Fn: builtinAbs})
	register(&Builtin{Name: "Sign", Arity: 1, Fn: builtinSign})
	register(&Builtin{Name: "Min", Arity: 2, Fn: builtinMin})
	register(&Builtin{Name: "Max", Arity: 2, Fn: builtinMax})
	register(&Builtin{Name: "Floor", Arity: 1, Fn: builtinFloor})
	register(&Builtin{Name: "Ceil", Arity: 1, Fn: builtinCeil})
	register(&Builtin{Name: "Round", Arity: 2, Fn: builtinRound})
	register(&Builtin{Name: "Sqrt", Arity: 1, Fn: builtinSqrt})
	register(&Builtin{Name: "Pow", Arity: 2, Fn: builtinPow})
	register(&Builtin{Name: "Mod", Arity: 2, Fn: builtinMod})
	register(&Builtin{Name: "Ln", Arity: 1, Fn: builtinLn})
	register(&Builtin{Name: "Log10", Arity: 1, Fn: builtinLog10})
	register(&Builtin{Name: "Exp", Arity: 1, Fn: builtinExp})
}

// Abs(x) returns the magnitude of x; Undefined for a non-Number.
func builtinAbs(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	n, ok := arg(args, 0).(value.Number)
	if !ok {
		return value.Undef, nil
	}
	if n.D.Sign() < 0 {
		return value.NewNumber(n.D.Neg()), nil
	}
	return n, nil
}

// Sign(x) returns -1, 0, or 1.
func builtinSign(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	n, ok := arg(args, 0).(value.Number)
	if !ok {
		return value.Undef, nil
	}
	return value.NewNumberInt(int64(n.D.Sign())), nil
}

// Min(a, b) returns the lesser of two Numbers via the canonical comparator.
func builtinMin(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	a, b := arg(args, 0), arg(args, 1)
	if value.Less(a, b) {
		return a, nil
	}
	return b, nil
}

// Max(a, b) returns the greater of two Numbers via the canonical comparator.
func builtinMax(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	a, b := arg(args, 0), arg(args, 1)
	if value.Less(a, b) {
		return b, nil
	}
	return a, nil
}

// Floor(x) rounds toward negative infinity.
func builtinFloor(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	f, ok := asFloat(arg(args, 0))
	if !ok {
		return value.Undef, nil
	}
	return value.NewNumber(bigdecimal.NewFromFloat64(math.Floor(f))), nil
}

// Ceil(x) rounds toward positive infinity.
func builtinCeil(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	f, ok := asFloat(arg(args, 0))
	if !ok {
		return value.Undef, nil
	}
	return value.NewNumber(bigdecimal.NewFromFloat64(math.Ceil(f))), nil
}

// Round(x, digits) rounds to the given number of decimal digits
// (digits defaults to 0 when unbound).
func builtinRound(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	n, ok := arg(args, 0).(value.Number)
	if !ok {
		return value.Undef, nil
	}
	digits := int64(0)
	if d, ok := asInt(arg(args, 1)); ok {
		digits = d
	}
	return value.NewNumber(n.D.RoundDigits(int32(digits))), nil
}

// Sqrt(x) returns a Number for x >= 0, a Complex for x < 0 (spec.md §3
// Complex row: "roots of negatives ... escalate Number to Complex").
func builtinSqrt(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	n, ok := arg(args, 0).(value.Number)
	if !ok {
		return value.Undef, nil
	}
	r, needsComplex := n.D.Sqrt()
	if needsComplex {
		mag := math.Sqrt(-n.D.Float64())
		return value.Complex{Re: 0, Im: mag}, nil
	}
	return value.NewNumber(r), nil
}

// Pow(base, exp) escalates to Complex when a negative base is raised to
// a non-integer power, computing the principal value in polar form with
// float64 math.Pow/Cos/Sin.
func builtinPow(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	base, ok1 := arg(args, 0).(value.Number)
	exp, ok2 := arg(args, 1).(value.Number)
	if !ok1 || !ok2 {
		return value.Undef, nil
	}
	r, needsComplex := base.D.Pow(exp.D)
	if needsComplex {
		bf, ef := base.D.Float64(), exp.D.Float64()
		mag := math.Pow(-bf, ef)
		angle := math.Pi * ef
		return value.Complex{Re: mag * math.Cos(angle), Im: mag * math.Sin(angle)}, nil
	}
	return value.NewNumber(r), nil
}

// Mod(a, b) is the floating remainder of a/b.
func builtinMod(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	a, ok1 := asFloat(arg(args, 0))
	b, ok2 := asFloat(arg(args, 1))
	if !ok1 || !ok2 || b == 0 {
		return value.Undef, nil
	}
	return value.NewNumber(bigdecimal.NewFromFloat64(math.Mod(a, b))), nil
}

// Ln(x) is the natural logarithm; Undefined for x <= 0.
func builtinLn(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	f, ok := asFloat(arg(args, 0))
	if !ok || f <= 0 {
		return value.Undef, nil
	}
	return value.NewNumber(bigdecimal.NewFromFloat64(math.Log(f))), nil
}

// Log10(x) is the base-10 logarithm; Undefined for x <= 0.
func builtinLog10(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	f, ok := asFloat(arg(args, 0))
	if !ok || f <= 0 {
		return value.Undef, nil
	}
	return value.NewNumber(bigdecimal.NewFromFloat64(math.Log10(f))), nil
}

// Exp(x) is e^x.
func builtinExp(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	f, ok := asFloat(arg(args, 0))
	if !ok {
		return value.Undef, nil
	}
	return value.NewNumber(bigdecimal.NewFromFloat64(math.Exp(f))), nil
}
