package builtins

import (
	"math"

	"github.com/cantus-lang/cantus/internal/value"
)

// AngleMode selects how trig built-ins interpret/produce angles (spec.md
// §4.F "Evaluator modes").
type AngleMode int

const (
	Radian AngleMode = iota
	Degree
	Gradian
)

// OutputMode selects the rendering family for Format/output built-ins
// (spec.md §4.F "Output rendering").
type OutputMode int

const (
	Raw OutputMode = iota
	Math
	Scientific
)

// toRadians converts an angle expressed in mode to radians.
func toRadians(x float64, mode AngleMode) float64 {
	switch mode {
	case Degree:
		return x * math.Pi / 180
	case Gradian:
		return x * math.Pi / 200
	default:
		return x
	}
}

// fromRadians converts a radian angle back to mode's unit.
func fromRadians(x float64, mode AngleMode) float64 {
	switch mode {
	case Degree:
		return x * 180 / math.Pi
	case Gradian:
		return x * 200 / math.Pi
	default:
		return x
	}
}

// roundSigDigits rounds x to n significant digits, masking the float64
// drift trig approximations accumulate (spec.md §4.F Trig: "round to 9-11
// significant digits to mask floating-point drift").
func roundSigDigits(x float64, n int) float64 {
	if x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	mag := math.Ceil(math.Log10(math.Abs(x)))
	power := float64(n) - mag
	shift := math.Pow(10, power)
	return math.Round(x*shift) / shift
}

// asFloat coerces a Value to a float64, reporting whether the coercion
// was possible (only Number has a numeric magnitude in this sense; every
// other Kind is a type mismatch for an arithmetic built-in).
func asFloat(v value.Value) (float64, bool) {
	n, ok := v.(value.Number)
	if !ok {
		return 0, false
	}
	return n.D.Float64(), true
}

// asInt coerces a Value to an int64 via truncation, reporting whether
// the coercion was possible.
func asInt(v value.Value) (int64, bool) {
	n, ok := v.(value.Number)
	if !ok {
		return 0, false
	}
	i, ok := n.D.Truncate().Int64()
	return i, ok
}
