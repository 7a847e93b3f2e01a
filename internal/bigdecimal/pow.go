package bigdecimal

import "math"

// Pow computes base^exp. Integer exponents are computed by repeated
// squaring on the big.Int mantissa (exact). Fractional exponents fall back
// to float64 math.Pow and lose arbitrary precision; they are not computed
// by exact root extraction.
//
// NeedsComplex is true when exp is non-integer and base is negative, per
// spec.md §4.A ("pow(x, y) with non-integer y and negative x escalates to
// Complex"); callers must use ComplexPow in that case instead of the
// returned Decimal.
func (base Decimal) Pow(exp Decimal) (result Decimal, needsComplex bool) {
	if base.isUndefined || exp.isUndefined {
		return Undefined, false
	}
	if n, ok := exp.Int64(); ok && exp.Truncate().Compare(exp, 1e-12) == 0 {
		return base.powInt(n), false
	}
	if base.Sign() < 0 {
		return Undefined, true
	}
	f := math.Pow(base.Float64(), exp.Float64())
	return NewFromFloat64(f), false
}

func (base Decimal) powInt(n int64) Decimal {
	if n == 0 {
		return NewFromInt64(1)
	}
	neg := n < 0
	if neg {
		n = -n
	}
	result := NewFromInt64(1)
	b := base
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(b)
		}
		b = b.Mul(b)
		n >>= 1
	}
	if neg {
		return NewFromInt64(1).Div(result)
	}
	return result
}

// Sqrt returns the square root, or signals that a Complex result is needed
// when d is negative.
func (d Decimal) Sqrt() (result Decimal, needsComplex bool) {
	if d.isUndefined {
		return Undefined, false
	}
	if d.Sign() < 0 {
		return Undefined, true
	}
	return NewFromFloat64(math.Sqrt(d.Float64())), false
}
