package builtins

import (
	"math"

	"github.com/cantus-lang/cantus/internal/bigdecimal"
	"github.com/cantus-lang/cantus/internal/value"
)

func init() {
	register(&Builtin{Name: "Quadratic", Arity: 3, Fn: builtinQuadratic})
}

// Quadratic(a, b, c) solves ax^2+bx+c=0, returning a two-element Matrix:
// two Number roots for a non-negative discriminant, two Complex roots for
// a negative one (spec.md §4.F Quadratic).
func builtinQuadratic(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	a, ok1 := asFloat(arg(args, 0))
	b, ok2 := asFloat(arg(args, 1))
	c, ok3 := asFloat(arg(args, 2))
	if !ok1 || !ok2 || !ok3 || a == 0 {
		return value.Undef, nil
	}

	disc := b*b - 4*a*c
	if disc >= 0 {
		sq := math.Sqrt(disc)
		r1 := (-b + sq) / (2 * a)
		r2 := (-b - sq) / (2 * a)
		return value.NewMatrix([][]value.Value{{
			value.NewNumber(bigdecimal.NewFromFloat64(r1)),
			value.NewNumber(bigdecimal.NewFromFloat64(r2)),
		}}), nil
	}

	sq := math.Sqrt(-disc)
	re := -b / (2 * a)
	im := sq / (2 * a)
	return value.NewMatrix([][]value.Value{{
		value.Complex{Re: re, Im: im},
		value.Complex{Re: re, Im: -im},
	}}), nil
}
