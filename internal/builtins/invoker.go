package builtins

import (
	"errors"

	"github.com/cantus-lang/cantus/internal/lambda"
	"github.com/cantus-lang/cantus/internal/value"
)

// ErrNoInvoker is returned by a collection built-in called before
// internal/eval has wired Invoker.
var ErrNoInvoker = errors.New("builtins: no lambda invoker configured")

// Invoker is supplied by internal/eval at evaluator-construction time:
// it closes over the BuiltinCaller/BodyRunner/ExprRunner triple
// internal/lambda.Lambda.Invoke needs, which only internal/eval can
// build (it alone walks internal/ast nodes). Collection built-ins
// (Each/Select/Filter/Exclude/FilterIndex/Every/Sort) call back into a
// Lambda argument through this hook rather than importing internal/eval
// directly, which would cycle (eval imports builtins to populate its own
// BuiltinCaller).
var Invoker func(l *lambda.Lambda, args []value.Value, kwargs map[string]value.Value) (value.Value, error)

func invokeLambda(l *lambda.Lambda, args ...value.Value) (value.Value, error) {
	if Invoker == nil {
		return value.Undef, ErrNoInvoker
	}
	return Invoker(l, args, nil)
}

// CancelCheck is supplied by internal/eval at evaluator-construction
// time (the root evaluator's checkCancelled): every built-in with a
// counted loop (`Sigma`/`Product`/`IntegralSimpson`/`IntegralTrapezoid`/
// `IntegralMidpoint`/`Each`/`Filter`/quicksort recursion, per spec.md
// §5) polls it once per iteration and aborts the loop on a non-nil
// error, the same closure-injection shape as Invoker. Same known
// limitation as Invoker (see internal/eval/threading.go's fork doc
// comment): it stays bound to whichever Evaluator called New() last, so
// a background task spawned by Async/Run has its own cancelToken but a
// built-in loop running inside that task still polls the *root*
// evaluator's token, not its own. The root evaluator's token is nil, so
// these loops are never interrupted by KillThread or StopAll.
var CancelCheck func() error

// checkCancel polls CancelCheck, treating an unwired hook (CancelCheck
// == nil, e.g. a built-in called directly in a test without an
// Evaluator) as never-cancelled.
func checkCancel() error {
	if CancelCheck == nil {
		return nil
	}
	return CancelCheck()
}
