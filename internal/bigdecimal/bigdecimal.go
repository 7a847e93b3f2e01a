// Package bigdecimal implements component A of the Cantus value model: an
// arbitrary-precision signed decimal with explicit significant-figure
// tracking and a distinct Undefined state (spec.md §4.A).
//
// It plays the role the teacher's IntegerValue/FloatValue pair plays for
// DWScript (internal/interp/value.go), generalized to arbitrary precision
// because spec.md §3 requires exact decimal arithmetic rather than a
// machine float. The backing representation is math/big's Int mantissa
// plus a signed exponent, which is the standard idiomatic Go approach to
// arbitrary-precision decimals (there is no stdlib decimal type).
package bigdecimal

import (
	"math/big"
	"strconv"
	"strings"
)

// InfiniteSigFigs marks a Decimal as "infinitely precise" (spec.md §3: the
// sig_figs ∞ marker).
const InfiniteSigFigs = -1

// Decimal is mantissa * 10^exponent, with an explicit significant-figure
// count and an Undefined flag absorbing NaN / division-by-zero / missing
// lookups per spec.md §3 Value table.
type Decimal struct {
	mantissa    *big.Int
	exponent    int32
	sigFigs     int // InfiniteSigFigs or >= 1
	isUndefined bool
}

// Undefined is the canonical Undefined-state Decimal.
var Undefined = Decimal{isUndefined: true}

// IsUndefined reports whether d carries the Undefined state.
func (d Decimal) IsUndefined() bool { return d.isUndefined }

// NewFromInt64 builds an exact, infinitely-precise Decimal from an int64.
func NewFromInt64(v int64) Decimal {
	return Decimal{mantissa: big.NewInt(v), exponent: 0, sigFigs: InfiniteSigFigs}
}

// NewFromFloat64 builds a Decimal from a float64, tracking its shortest
// round-trip decimal representation as the significant-figure count.
func NewFromFloat64(v float64) Decimal {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	d, err := Parse(s)
	if err != nil {
		return Undefined
	}
	return d
}

// Parse converts exact decimal source text (as written by the user, e.g.
// "3.140") into a Decimal, counting its significant figures from the
// literal digits actually written.
func Parse(s string) (Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Undefined, strconv.ErrSyntax
	}
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}

	mantissaStr := s
	exp := int32(0)
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissaStr = s[:i]
		e, err := strconv.Atoi(s[i+1:])
		if err != nil {
			return Undefined, err
		}
		exp = int32(e)
	}

	intPart := mantissaStr
	fracPart := ""
	if i := strings.IndexByte(mantissaStr, '.'); i >= 0 {
		intPart = mantissaStr[:i]
		fracPart = mantissaStr[i+1:]
	}

	digits := strings.TrimLeft(intPart+fracPart, "0")
	sigFigs := len(digits)
	if sigFigs == 0 {
		sigFigs = 1 // the value zero still counts as one significant figure
	}

	combined := intPart + fracPart
	if combined == "" {
		combined = "0"
	}
	mant := new(big.Int)
	if _, ok := mant.SetString(combined, 10); !ok {
		return Undefined, strconv.ErrSyntax
	}
	if neg {
		mant.Neg(mant)
	}
	exp -= int32(len(fracPart))

	return Decimal{mantissa: mant, exponent: exp, sigFigs: sigFigs}, nil
}

// MustParse is Parse but panics on error; used for internal constant literals.
func MustParse(s string) Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func zero() *big.Int { return new(big.Int) }

// align returns both mantissas scaled to a common exponent (the lesser of
// the two), and that exponent.
func align(a, b Decimal) (*big.Int, *big.Int, int32) {
	if a.exponent == b.exponent {
		return a.mantissa, b.mantissa, a.exponent
	}
	exp := a.exponent
	if b.exponent < exp {
		exp = b.exponent
	}
	am := new(big.Int).Set(a.mantissa)
	bm := new(big.Int).Set(b.mantissa)
	if a.exponent > exp {
		scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(a.exponent-exp)), nil)
		am.Mul(am, scale)
	}
	if b.exponent > exp {
		scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(b.exponent-exp)), nil)
		bm.Mul(bm, scale)
	}
	return am, bm, exp
}

func minSigFigs(a, b Decimal) int {
	if a.sigFigs == InfiniteSigFigs {
		return b.sigFigs
	}
	if b.sigFigs == InfiniteSigFigs {
		return a.sigFigs
	}
	if a.sigFigs < b.sigFigs {
		return a.sigFigs
	}
	return b.sigFigs
}

// Add returns a+b. Undefined propagates if either operand is Undefined.
func (a Decimal) Add(b Decimal) Decimal {
	if a.isUndefined || b.isUndefined {
		return Undefined
	}
	am, bm, exp := align(a, b)
	return Decimal{mantissa: zero().Add(am, bm), exponent: exp, sigFigs: minSigFigs(a, b)}
}

// Sub returns a-b.
func (a Decimal) Sub(b Decimal) Decimal {
	if a.isUndefined || b.isUndefined {
		return Undefined
	}
	am, bm, exp := align(a, b)
	return Decimal{mantissa: zero().Sub(am, bm), exponent: exp, sigFigs: minSigFigs(a, b)}
}

// Mul returns a*b.
func (a Decimal) Mul(b Decimal) Decimal {
	if a.isUndefined || b.isUndefined {
		return Undefined
	}
	return Decimal{
		mantissa: zero().Mul(a.mantissa, b.mantissa),
		exponent: a.exponent + b.exponent,
		sigFigs:  minSigFigs(a, b),
	}
}

// divisionScale is the number of extra decimal digits of precision
// division carries beyond the operands' own scale, so repeated
// multiply-then-divide round trips (spec.md §8 property 6) come out exact
// once normalized.
const divisionScale = 40

// Div returns a/b, or Undefined if b is zero (spec.md §4.A: "Division by
// zero yields Undefined").
func (a Decimal) Div(b Decimal) Decimal {
	if a.isUndefined || b.isUndefined {
		return Undefined
	}
	if b.mantissa.Sign() == 0 {
		return Undefined
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(divisionScale), nil)
	num := new(big.Int).Mul(a.mantissa, scale)
	q := new(big.Int)
	r := new(big.Int)
	q.QuoRem(num, b.mantissa, r)
	// round half-away-from-zero on the remainder
	twiceR := new(big.Int).Mul(r, big.NewInt(2))
	twiceR.Abs(twiceR)
	if twiceR.Cmp(new(big.Int).Abs(b.mantissa)) >= 0 {
		if (num.Sign() < 0) != (b.mantissa.Sign() < 0) {
			q.Sub(q, big.NewInt(1))
		} else {
			q.Add(q, big.NewInt(1))
		}
	}
	result := Decimal{
		mantissa: q,
		exponent: a.exponent - b.exponent - divisionScale,
		sigFigs:  minSigFigs(a, b),
	}
	return result.normalizeExact()
}

// normalizeExact strips trailing zeros from the mantissa without touching
// sigFigs, preserving the exact numeric value (used internally after Div
// to keep the representation small).
func (d Decimal) normalizeExact() Decimal {
	if d.isUndefined || d.mantissa.Sign() == 0 {
		return d
	}
	m := new(big.Int).Set(d.mantissa)
	exp := d.exponent
	ten := big.NewInt(10)
	mod := new(big.Int)
	for {
		new(big.Int).QuoRem(m, ten, mod)
		if mod.Sign() != 0 {
			break
		}
		m.Quo(m, ten)
		exp++
	}
	return Decimal{mantissa: m, exponent: exp, sigFigs: d.sigFigs}
}

// Neg returns -d.
func (d Decimal) Neg() Decimal {
	if d.isUndefined {
		return Undefined
	}
	return Decimal{mantissa: new(big.Int).Neg(d.mantissa), exponent: d.exponent, sigFigs: d.sigFigs}
}

// Sign returns -1, 0, or 1.
func (d Decimal) Sign() int {
	if d.isUndefined {
		return 0
	}
	return d.mantissa.Sign()
}

// Float64 converts to the nearest float64, for use by transcendental
// built-ins (trig, log, etc.) that have no exact arbitrary-precision
// analogue.
func (d Decimal) Float64() float64 {
	if d.isUndefined {
		return 0
	}
	f := new(big.Float).SetInt(d.mantissa)
	scale := new(big.Float).SetFloat64(1)
	ten := big.NewFloat(10)
	exp := d.exponent
	if exp >= 0 {
		for i := int32(0); i < exp; i++ {
			scale.Mul(scale, ten)
		}
		f.Mul(f, scale)
	} else {
		for i := int32(0); i < -exp; i++ {
			scale.Mul(scale, ten)
		}
		f.Quo(f, scale)
	}
	v, _ := f.Float64()
	return v
}

// Int64 truncates toward zero and returns the result as an int64 along
// with whether the value fit without loss.
func (d Decimal) Int64() (int64, bool) {
	t := d.Truncate()
	if !t.mantissa.IsInt64() {
		return 0, false
	}
	return t.mantissa.Int64(), true
}

// Truncate drops the fractional part (toward zero).
func (d Decimal) Truncate() Decimal {
	if d.isUndefined {
		return Undefined
	}
	if d.exponent >= 0 {
		return d
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(-d.exponent)), nil)
	q := new(big.Int).Quo(d.mantissa, scale)
	return Decimal{mantissa: q, exponent: 0, sigFigs: d.sigFigs}
}

// RoundDigits rounds to n digits after the decimal point, half-away-from-zero.
func (d Decimal) RoundDigits(n int32) Decimal {
	if d.isUndefined {
		return Undefined
	}
	targetExp := -n
	if d.exponent >= targetExp {
		return d
	}
	diff := targetExp - d.exponent
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(diff)), nil)
	q := new(big.Int)
	r := new(big.Int)
	q.QuoRem(d.mantissa, scale, r)
	halfAwayFromZeroRound(q, r, scale)
	return Decimal{mantissa: q, exponent: targetExp, sigFigs: d.sigFigs}
}

func halfAwayFromZeroRound(q, r, scale *big.Int) {
	twiceR := new(big.Int).Mul(r, big.NewInt(2))
	twiceR.Abs(twiceR)
	if twiceR.Cmp(scale) >= 0 {
		if q.Sign() < 0 || (q.Sign() == 0 && r.Sign() < 0) {
			q.Sub(q, big.NewInt(1))
		} else {
			q.Add(q, big.NewInt(1))
		}
	}
}

// RoundSigFigs rounds to n significant figures using banker's rounding
// (round-half-to-even), the one place spec.md §4.A calls for it
// explicitly ("round_sf"); every other rounding path is half-away-from-zero.
func (d Decimal) RoundSigFigs(n int) Decimal {
	if d.isUndefined || d.mantissa.Sign() == 0 || n <= 0 {
		return d
	}
	digits := len(new(big.Int).Abs(d.mantissa).String())
	drop := digits - n
	if drop <= 0 {
		result := d
		result.sigFigs = n
		return result
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(drop)), nil)
	q := new(big.Int)
	r := new(big.Int)
	q.QuoRem(d.mantissa, scale, r)
	bankersRound(q, r, scale)
	return Decimal{mantissa: q, exponent: d.exponent + int32(drop), sigFigs: n}
}

func bankersRound(q, r, scale *big.Int) {
	twiceR := new(big.Int).Mul(r, big.NewInt(2))
	twiceR.Abs(twiceR)
	cmp := twiceR.Cmp(scale)
	if cmp < 0 {
		return
	}
	roundUp := cmp > 0
	if cmp == 0 {
		roundUp = q.Bit(0) == 1 // round to even
	}
	if roundUp {
		if r.Sign() < 0 {
			q.Sub(q, big.NewInt(1))
		} else {
			q.Add(q, big.NewInt(1))
		}
	}
}

// Normalize strips trailing zeros while preserving the exact numeric value
// (spec.md §4.A contract).
func (d Decimal) Normalize() Decimal {
	return d.normalizeExact()
}

// Compare returns -1/0/+1, treating values within epsilon as equal — the
// canonical equality for Number (spec.md §4.A, §4.B).
func (a Decimal) Compare(b Decimal, epsilon float64) int {
	if a.isUndefined && b.isUndefined {
		return 0
	}
	if a.isUndefined {
		return 1 // Undefined sorts to the end (spec.md §4.B)
	}
	if b.isUndefined {
		return -1
	}
	am, bm, _ := align(a, b)
	diff := new(big.Int).Sub(am, bm)
	if diff.Sign() == 0 {
		return 0
	}
	af := a.Float64()
	bf := b.Float64()
	mag := af
	if mag < 0 {
		mag = -mag
	}
	if bmag := bf; bmag < 0 {
		if -bmag > mag {
			mag = -bmag
		}
	} else if bmag > mag {
		mag = bmag
	}
	if mag < 1 {
		mag = 1
	}
	if abs(af-bf) <= epsilon*mag {
		return 0
	}
	if diff.Sign() < 0 {
		return -1
	}
	return 1
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// IsIntegerWithin reports whether d is within epsilon of an integer.
func (d Decimal) IsIntegerWithin(epsilon float64) bool {
	if d.isUndefined {
		return false
	}
	t := d.Truncate()
	diff := d.Sub(t)
	return diff.Compare(NewFromInt64(0), epsilon) == 0
}

// String renders the exact decimal value (no scientific notation); see
// internal/builtins/render.go for the Line/Math/Sci output-mode renderers.
func (d Decimal) String() string {
	if d.isUndefined {
		return "Undefined"
	}
	m := new(big.Int).Set(d.mantissa)
	neg := m.Sign() < 0
	m.Abs(m)
	digits := m.String()
	exp := d.exponent

	if exp >= 0 {
		s := digits + strings.Repeat("0", int(exp))
		if neg {
			s = "-" + s
		}
		return s
	}

	point := len(digits) + int(exp)
	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	if point <= 0 {
		sb.WriteString("0.")
		sb.WriteString(strings.Repeat("0", -point))
		sb.WriteString(digits)
	} else {
		sb.WriteString(digits[:point])
		sb.WriteByte('.')
		sb.WriteString(digits[point:])
	}
	return sb.String()
}

// ToScientificString renders "<mantissa> x 10^<exponent>" per spec.md §6
// Sci format, mantissa formatted with Go's default float formatting.
func (d Decimal) ToScientificString() string {
	if d.isUndefined {
		return "Undefined"
	}
	f := d.Float64()
	if f == 0 {
		return "0 x 10^0"
	}
	absf := f
	if absf < 0 {
		absf = -absf
	}
	exp := 0
	for absf >= 10 {
		absf /= 10
		exp++
	}
	for absf < 1 {
		absf *= 10
		exp--
	}
	if f < 0 {
		absf = -absf
	}
	return strconv.FormatFloat(absf, 'g', -1, 64) + " x 10^" + strconv.Itoa(exp)
}

// SigFigs returns the tracked significant-figure count (InfiniteSigFigs for
// exact values).
func (d Decimal) SigFigs() int { return d.sigFigs }

// Exponent exposes the internal base-10 exponent (used by pow/root helpers
// in internal/builtins).
func (d Decimal) Exponent() int32 { return d.exponent }

// Mantissa exposes a copy of the internal mantissa.
func (d Decimal) Mantissa() *big.Int {
	if d.mantissa == nil {
		return zero()
	}
	return new(big.Int).Set(d.mantissa)
}
