package builtins

import (
	"math"
	"strconv"

	"github.com/cantus-lang/cantus/internal/value"
)

// fractionMaxIterations and fractionDenominatorThreshold implement
// spec.md §4.F Fraction conversion: "Stern-Brocot mediant search bounded
// by 10^6 iterations with epsilon adaptive to the magnitude; denominator
// threshold 50000 — beyond which the decimal string is emitted
// verbatim."
const (
	fractionMaxIterations     = 1_000_000
	fractionDenominatorThresh = 50000
)

func init() {
	register(&Builtin{Name: "ToFraction", Arity: 1, Fn: builtinToFraction})
}

// ToFraction(x) renders x as "p/q" when a Stern-Brocot mediant search
// finds a denominator at or below fractionDenominatorThresh, or the plain
// decimal string otherwise.
func builtinToFraction(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	n, ok := arg(args, 0).(value.Number)
	if !ok {
		return value.Undef, nil
	}
	x := n.D.Float64()
	p, q, ok := sternBrocot(x)
	if !ok {
		return value.Text{S: n.D.String()}, nil
	}
	return value.Text{S: sprintFraction(p, q)}, nil
}

// sternBrocot searches the Stern-Brocot tree by mediant bisection for the
// simplest fraction within an epsilon of x that scales with x's
// magnitude ("epsilon adaptive to the magnitude"). Returns ok=false when
// the search exhausts its iteration budget or the denominator threshold
// without converging.
func sternBrocot(x float64) (p, q int64, ok bool) {
	neg := x < 0
	if neg {
		x = -x
	}
	whole := int64(math.Floor(x))
	frac := x - float64(whole)

	epsilon := math.Max(1e-12, math.Abs(x)*1e-12)
	if frac < epsilon {
		return signed(whole, neg), 1, true
	}

	loP, loQ := int64(0), int64(1)
	hiP, hiQ := int64(1), int64(1)

	for i := 0; i < fractionMaxIterations; i++ {
		medP, medQ := loP+hiP, loQ+hiQ
		if medQ > fractionDenominatorThresh {
			return 0, 0, false
		}
		mediant := float64(medP) / float64(medQ)
		if math.Abs(mediant-frac) < epsilon {
			return signed(whole*medQ+medP, neg), medQ, true
		}
		if mediant < frac {
			loP, loQ = medP, medQ
		} else {
			hiP, hiQ = medP, medQ
		}
	}
	return 0, 0, false
}

func signed(v int64, neg bool) int64 {
	if neg {
		return -v
	}
	return v
}

func sprintFraction(p, q int64) string {
	if q == 1 {
		return strconv.FormatInt(p, 10)
	}
	return strconv.FormatInt(p, 10) + "/" + strconv.FormatInt(q, 10)
}
