package builtins

import (
	"math"

	"github.com/cantus-lang/cantus/internal/bigdecimal"
	"github.com/cantus-lang/cantus/internal/value"
)

// trigSigDigits is the significant-digit count every trig built-in rounds
// its result to, masking float64 drift (spec.md §4.F Trig: "round to 9-11
// significant digits"). Cantus picks 10, the midpoint of the documented
// range.
const trigSigDigits = 10

func init() {
	register(&Builtin{Name: "Sin", Arity: 1, Fn: trigFn(math.Sin)})
	register(&Builtin{Name: "Cos", Arity: 1, Fn: trigFn(math.Cos)})
	register(&Builtin{Name: "Tan", Arity: 1, Fn: trigFn(math.Tan)})
	register(&Builtin{Name: "Cot", Arity: 1, Fn: trigFn(func(x float64) float64 { return 1 / math.Tan(x) })})
	register(&Builtin{Name: "Sec", Arity: 1, Fn: trigFn(func(x float64) float64 { return 1 / math.Cos(x) })})
	register(&Builtin{Name: "Csc", Arity: 1, Fn: trigFn(func(x float64) float64 { return 1 / math.Sin(x) })})
	register(&Builtin{Name: "ASin", Arity: 1, Fn: inverseTrigFn(math.Asin)})
	register(&Builtin{Name: "ACos", Arity: 1, Fn: inverseTrigFn(math.Acos)})
	register(&Builtin{Name: "ATan", Arity: 1, Fn: inverseTrigFn(math.Atan)})
	register(&Builtin{Name: "ATan2", Arity: 2, Fn: builtinATan2})
}

// angleModeArg reads an optional trailing "mode" kwarg (Radian/Degree/
// Gradian by name), defaulting to Radian — the evaluator's live
// AngleMode is threaded in by internal/eval's callBuiltin, which adds a
// "mode" kwarg to every call; the bare catalog entries stay mode-agnostic so the
// package has no dependency on evaluator state.
func angleModeArg(kwargs map[string]value.Value) AngleMode {
	v, ok := kwargs["mode"]
	if !ok {
		return Radian
	}
	t, ok := v.(value.Text)
	if !ok {
		return Radian
	}
	switch t.S {
	case "Degree":
		return Degree
	case "Gradian":
		return Gradian
	default:
		return Radian
	}
}

// trigFn wraps a radian-domain math function as a built-in that dispatches
// on angle mode and rounds away float64 drift.
func trigFn(f func(float64) float64) Fn {
	return func(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
		x, ok := asFloat(arg(args, 0))
		if !ok {
			return value.Undef, nil
		}
		mode := angleModeArg(kwargs)
		result := roundSigDigits(f(toRadians(x, mode)), trigSigDigits)
		return value.NewNumber(bigdecimal.NewFromFloat64(result)), nil
	}
}

// inverseTrigFn wraps an inverse trig function, converting its radian
// result back to the caller's angle mode.
func inverseTrigFn(f func(float64) float64) Fn {
	return func(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
		x, ok := asFloat(arg(args, 0))
		if !ok {
			return value.Undef, nil
		}
		mode := angleModeArg(kwargs)
		result := roundSigDigits(fromRadians(f(x), mode), trigSigDigits)
		return value.NewNumber(bigdecimal.NewFromFloat64(result)), nil
	}
}

// ATan2(y, x) dispatches on angle mode like the single-argument inverse
// trig built-ins.
func builtinATan2(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	y, ok1 := asFloat(arg(args, 0))
	x, ok2 := asFloat(arg(args, 1))
	if !ok1 || !ok2 {
		return value.Undef, nil
	}
	mode := angleModeArg(kwargs)
	result := roundSigDigits(fromRadians(math.Atan2(y, x), mode), trigSigDigits)
	return value.NewNumber(bigdecimal.NewFromFloat64(result)), nil
}
