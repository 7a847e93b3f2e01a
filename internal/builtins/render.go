package builtins

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cantus-lang/cantus/internal/bigdecimal"
)

// FormatNumber renders d the way OutputMode selects (spec.md §4.F/§6,
// SPEC_FULL.md §4.F.3): Raw defers to the BigDecimal's own String(),
// Scientific renders through SciO, Math through MathO.
func FormatNumber(d bigdecimal.Decimal, mode OutputMode) string {
	switch mode {
	case Scientific:
		return SciO(d.Float64())
	case Math:
		return MathO(d.Float64())
	default:
		return d.String()
	}
}

// FormatFloat is FormatNumber's entry point for a bare float64, used to
// render Complex's real/imaginary parts under a non-Raw OutputMode.
func FormatFloat(x float64, mode OutputMode) string {
	switch mode {
	case Scientific:
		return SciO(x)
	case Math:
		return MathO(x)
	default:
		return trimTrailingZeros(x, 10)
	}
}

// formatEpsilon bounds how close a candidate closed form has to land to
// the value being rendered before MathO accepts it (SPEC_FULL.md §4.F.3).
const formatEpsilon = 1e-9

// SciO renders x as "<mantissa> x 10^<exponent>", exponent = floor(log10|x|)
// (SPEC_FULL.md §4.F.3, spec.md §6's Scientific format).
func SciO(x float64) string {
	if x == 0 {
		return "0 x 10^0"
	}
	sign := ""
	ax := x
	if ax < 0 {
		sign = "-"
		ax = -ax
	}
	exp := math.Floor(math.Log10(ax))
	mantissa := ax / math.Pow(10, exp)
	// Pow10 rounding can push the mantissa to exactly 10; renormalize.
	if mantissa >= 10 {
		mantissa /= 10
		exp++
	}
	return fmt.Sprintf("%s%s x 10^%d", sign, trimTrailingZeros(mantissa, 6), int(exp))
}

// LineO renders x as a 4-decimal fixed-point string, falling back to
// SciO outside the range spec.md §6's Line format covers.
func LineO(x float64) string {
	ax := math.Abs(x)
	if x != 0 && (ax < 1e-4 || ax >= 1e15) {
		return SciO(x)
	}
	return fmt.Sprintf("%.4f", x)
}

// MathO tries, in the order SPEC_FULL.md §4.F.3 names, to recognize x as
// a multiple of pi, a radical, a mixed rational with a small denominator,
// or a general rational via a Stern-Brocot/continued-fraction search —
// falling back to the raw decimal rendering (FormatFloat's Raw form) when
// nothing simplifies.
func MathO(x float64) string {
	if x == 0 {
		return "0"
	}
	if s, ok := matchPiMultiple(x); ok {
		return s
	}
	if s, ok := matchRadical(x); ok {
		return s
	}
	if s, ok := matchOffsetRadical(x); ok {
		return s
	}
	// "scaled rationals with denominator 2..40" and the Stern-Brocot
	// fraction search are both best-rational-approximation problems;
	// continued-fraction expansion (the Stern-Brocot tree's direct
	// arithmetic form) solves both, so one helper serves at two
	// denominator ceilings instead of two separate searches.
	if p, q, ok := rationalApprox(x, 40); ok {
		return formatRational(p, q)
	}
	if p, q, ok := rationalApprox(x, 50000); ok {
		return formatRational(p, q)
	}
	return trimTrailingZeros(x, 10)
}

func matchPiMultiple(x float64) (string, bool) {
	for k := 1; k <= 20; k++ {
		for j := -50; j <= 50; j++ {
			if j == 0 || gcdInt(absInt(j), k) != 1 {
				continue
			}
			candidate := float64(j) * math.Pi / float64(k)
			if closeEnough(x, candidate) {
				return formatPiTerm(j, k), true
			}
		}
	}
	return "", false
}

func formatPiTerm(j, k int) string {
	switch {
	case k == 1 && j == 1:
		return "π"
	case k == 1 && j == -1:
		return "-π"
	case k == 1:
		return fmt.Sprintf("%dπ", j)
	case j == 1:
		return fmt.Sprintf("π/%d", k)
	case j == -1:
		return fmt.Sprintf("-π/%d", k)
	default:
		return fmt.Sprintf("%dπ/%d", j, k)
	}
}

// matchRadical recognizes j*sqrt(n) or j*cbrt(n) for an integer radicand
// up to 10000 (SPEC_FULL.md §4.F.3: "radicals of index 2 or 3").
func matchRadical(x float64) (string, bool) {
	for idx := 2; idx <= 3; idx++ {
		for n := 2; n <= 10000; n++ {
			if isPerfectPower(n, idx) {
				continue
			}
			root := math.Pow(float64(n), 1/float64(idx))
			for j := -20; j <= 20; j++ {
				if j == 0 {
					continue
				}
				if closeEnough(x, float64(j)*root) {
					return formatRadicalTerm(j, n, idx), true
				}
			}
		}
	}
	return "", false
}

func formatRadicalTerm(j, n, idx int) string {
	sym := "√"
	if idx == 3 {
		sym = "∛"
	}
	switch j {
	case 1:
		return sym + strconv.Itoa(n)
	case -1:
		return "-" + sym + strconv.Itoa(n)
	default:
		return fmt.Sprintf("%d%s%d", j, sym, n)
	}
}

// matchOffsetRadical recognizes (j + sqrt(n))/k forms such as the golden
// ratio, (1 + √5)/2 (SPEC_FULL.md §4.F.3).
func matchOffsetRadical(x float64) (string, bool) {
	for k := 2; k <= 20; k++ {
		for n := 2; n <= 10000; n++ {
			if isPerfectPower(n, 2) {
				continue
			}
			root := math.Sqrt(float64(n))
			for j := -20; j <= 20; j++ {
				candidate := (float64(j) + root) / float64(k)
				if closeEnough(x, candidate) {
					return fmt.Sprintf("(%d + √%d)/%d", j, n, k), true
				}
			}
		}
	}
	return "", false
}

// rationalApprox finds integers p, q (q <= maxDenom) with p/q == x to
// within formatEpsilon, via the standard continued-fraction expansion
// (equivalent to descending the Stern-Brocot tree toward x).
func rationalApprox(x float64, maxDenom int64) (p, q int64, ok bool) {
	neg := x < 0
	ax := math.Abs(x)

	h0, h1 := int64(0), int64(1)
	k0, k1 := int64(1), int64(0)
	frac := ax
	for i := 0; i < 1_000_000; i++ {
		a := int64(math.Floor(frac))
		h2 := a*h1 + h0
		k2 := a*k1 + k0
		if k2 > maxDenom {
			break
		}
		h0, h1 = h1, h2
		k0, k1 = k1, k2
		rem := frac - float64(a)
		if rem < 1e-12 {
			break
		}
		frac = 1 / rem
	}
	if k1 == 0 {
		return 0, 0, false
	}
	approx := float64(h1) / float64(k1)
	if !closeEnough(ax, approx) {
		return 0, 0, false
	}
	if neg {
		h1 = -h1
	}
	return h1, k1, true
}

func formatRational(p, q int64) string {
	if q == 1 {
		return strconv.FormatInt(p, 10)
	}
	return fmt.Sprintf("%d/%d", p, q)
}

func closeEnough(a, b float64) bool {
	return math.Abs(a-b) < formatEpsilon*math.Max(1, math.Abs(a))
}

func isPerfectPower(n, idx int) bool {
	root := math.Round(math.Pow(float64(n), 1/float64(idx)))
	return int(math.Round(math.Pow(root, float64(idx)))) == n
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func gcdInt(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// trimTrailingZeros formats f with up to prec decimal digits, trimming
// trailing zeros (and a bare trailing '.') so SciO's mantissa reads
// "1.5" rather than "1.500000".
func trimTrailingZeros(f float64, prec int) string {
	s := strconv.FormatFloat(f, 'f', prec, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}
