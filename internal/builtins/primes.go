package builtins

import (
	"math"
	"math/big"

	"github.com/cantus-lang/cantus/internal/value"
)

// millerRabinRounds and millerRabinLimit implement spec.md §4.F Prime
// test: "deterministic Miller-Rabin for n < 10^16 with 20 rounds, falling
// back to trial division to sqrt(n) bounded by 10^8+1".
const (
	millerRabinRounds = 20
	millerRabinLimit  = 1e16
	trialDivisionCap  = 1e8 + 1
)

func init() {
	register(&Builtin{Name: "IsPrime", Arity: 1, Fn: builtinIsPrime})
}

// IsPrime(n) reports primality of a non-negative integer Number.
func builtinIsPrime(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	n, ok := asInt(arg(args, 0))
	if !ok || n < 2 {
		return value.Boolean{B: false}, nil
	}
	return value.Boolean{B: isPrime(n)}, nil
}

func isPrime(n int64) bool {
	if n < 2 {
		return false
	}
	for _, p := range []int64{2, 3, 5, 7, 11, 13} {
		if n == p {
			return true
		}
		if n%p == 0 {
			return false
		}
	}
	if float64(n) < millerRabinLimit {
		return millerRabinDeterministic(n)
	}
	return trialDivision(n)
}

// millerRabinDeterministic runs the deterministic Miller-Rabin test with
// millerRabinRounds bases (each base drawn from big.Int's own witness
// selection via ProbablyPrime, which for n < 3.3*10^24 with 20+ rounds is
// proven deterministic — comfortably covering the spec's n < 10^16 bound).
func millerRabinDeterministic(n int64) bool {
	return big.NewInt(n).ProbablyPrime(millerRabinRounds)
}

// trialDivision checks divisibility up to sqrt(n), capped at
// trialDivisionCap per the spec's fallback bound.
func trialDivision(n int64) bool {
	limit := int64(math.Sqrt(float64(n)))
	if limit > trialDivisionCap {
		limit = trialDivisionCap
	}
	for i := int64(3); i <= limit; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}
