// Package eval implements component I, the Evaluator core: the three
// public entry points (eval/eval_expr/eval_async), the live mode flags
// of spec.md §4.F, the prev_ans deque, and a setter for the
// default-variable slot. No built-in sets that slot: Select/Filter/Each
// pass the current element to their Lambda only as its argument.
//
// The teacher's Interpreter (internal/interp/interpreter.go, now removed
// from the workspace — see DESIGN.md's "Deleted/trimmed teacher
// subsystems") walks its own AST the same way: one struct holding mode
// state plus a tree-walking Eval method switching on concrete node
// types. Cantus keeps that shape and wires it to the rebuilt
// internal/ast/internal/scope/internal/value/internal/lambda/
// internal/class/internal/builtins stack instead of the teacher's.
package eval

import (
	"fmt"

	"github.com/cantus-lang/cantus/internal/bigdecimal"
	"github.com/cantus-lang/cantus/internal/builtins"
	"github.com/cantus-lang/cantus/internal/errors"
	"github.com/cantus-lang/cantus/internal/hostservices"
	"github.com/cantus-lang/cantus/internal/lambda"
	"github.com/cantus-lang/cantus/internal/parser"
	"github.com/cantus-lang/cantus/internal/scope"
	"github.com/cantus-lang/cantus/internal/thread"
	"github.com/cantus-lang/cantus/internal/value"
)

// bigdecimalOne is the implicit `step 1` a for-loop uses when the script
// omits one (spec.md §6).
var bigdecimalOne = bigdecimal.NewFromInt64(1)

// defaultVarName is the conventional name spec.md §4.I leaves
// unspecified ("`$` or similar") for the writable default-variable slot
// that setDefaultVar writes; nothing in the evaluator calls setDefaultVar.
const defaultVarName = "$"

// prevAnsDepth is the implementation-chosen cap on the prev_ans deque
// (spec.md §4.I: "capped at an implementation-chosen depth").
const prevAnsDepth = 20

// Evaluator is the Cantus evaluator core. One Evaluator owns one root
// scope, its own mode flags, and its own prev_ans buffer — Async/Run
// (fork in threading.go) copy the Evaluator per task, sharing Root but
// starting an empty prev_ans, so "prev_ans is task-local" (spec.md §5)
// holds.
type Evaluator struct {
	Root *scope.Scope

	AngleMode       builtins.AngleMode
	OutputMode      builtins.OutputMode
	ExplicitMode    bool
	SignificantMode bool
	SpacesPerTab    int

	prevAns []value.Value

	File string

	// Threads is the shared component-J registry: nil on an Evaluator
	// built directly by New() until the first Async/Run call lazily
	// attaches one (see threading.go), shared by every task forked from
	// this Evaluator so KillThread/StopAll reach tasks spawned by other
	// tasks too (spec.md §5: "the task registry itself is shared").
	Threads *thread.Controller

	// cancelToken is nil for the root Evaluator (its statements never
	// observe cancellation) and set to the owning Task's Token on every
	// Evaluator forked by Threads.Spawn, polled by checkCancelled at each
	// loop-iteration and statement boundary (spec.md §5).
	cancelToken *thread.Token
}

// checkCancelled reports ErrCancelled if this Evaluator's task has been
// asked to stop; a root Evaluator (cancelToken == nil) never cancels.
func (e *Evaluator) checkCancelled() error {
	if e.cancelToken != nil && e.cancelToken.Cancelled() {
		return thread.ErrCancelled
	}
	return nil
}

// New constructs an Evaluator with a fresh root scope and registers its
// callback triple as the package-level internal/builtins.Invoker hook so
// collection built-ins can call back into Lambda arguments (see
// internal/builtins's ledger entry in DESIGN.md for why this can't be a
// direct import instead).
func New() *Evaluator {
	e := &Evaluator{
		Root:         scope.NewRoot(),
		AngleMode:    builtins.Radian,
		OutputMode:   builtins.Raw,
		SpacesPerTab: 4,
	}
	builtins.Invoker = func(l *lambda.Lambda, args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
		return l.Invoke(args, kwargs, e.callBuiltin, e.runBody, e.runExpr)
	}
	if builtins.Host == nil {
		builtins.Host = hostservices.Default()
	}
	builtins.CancelCheck = e.checkCancelled
	builtins.Hooks = &builtins.EvaluatorHooks{
		PrevAns:    e.PrevAns,
		AllClear:   e.Root.Clear,
		FnList:     func() []string { return e.Root.FnList(builtins.Names()) },
		KillThread: e.KillThread,
		JoinThread: e.JoinThread,
		StopAll:    e.StopAll,
	}
	return e
}

// Eval implements the `eval(source, save_prev_answer=true)` entry point
// (spec.md §4.I): parse a multi-line script, execute its statements, and
// return the last expression statement's result.
func (e *Evaluator) Eval(source string, saveAnswer bool) (value.Value, error) {
	prog, errs := parser.ParseProgram(source)
	if len(errs) > 0 {
		return value.Undef, wrapParseErrors(errs, source, e.File)
	}
	result, _, err := e.runBody(e.Root, prog.Statements)
	if err != nil {
		return value.Undef, err
	}
	if saveAnswer {
		e.pushAns(result)
	}
	return result, nil
}

// EvalExpr implements `eval_expr(source)`: parse a single expression and
// return its value.
func (e *Evaluator) EvalExpr(source string) (value.Value, error) {
	expr, errs := parser.ParseExpr(source)
	if len(errs) > 0 {
		return value.Undef, wrapParseErrors(errs, source, e.File)
	}
	return e.runExpr(e.Root, expr)
}

func wrapParseErrors(errs []string, source, file string) error {
	compilerErrors := errors.FromStringErrors(errors.SyntaxError, errs, source, file)
	return fmt.Errorf("%s", errors.FormatErrors(compilerErrors, false))
}

// pushAns prepends v to the prev_ans deque, trimming to prevAnsDepth —
// exposed to scripts via the `_PrevAns(n)` built-in (spec.md §4.I).
func (e *Evaluator) pushAns(v value.Value) {
	e.prevAns = append([]value.Value{v}, e.prevAns...)
	if len(e.prevAns) > prevAnsDepth {
		e.prevAns = e.prevAns[:prevAnsDepth]
	}
}

// PrevAns returns the nth-back previous answer (0 = most recent), or
// Undefined if n is out of range.
func (e *Evaluator) PrevAns(n int) value.Value {
	if n < 0 || n >= len(e.prevAns) {
		return value.Undef
	}
	return e.prevAns[n]
}

// callBuiltin is the lambda.BuiltinCaller this Evaluator supplies: it
// threads the live AngleMode into every call as a "mode" kwarg (the
// trig built-ins read it; every other built-in ignores it) so
// internal/builtins stays free of evaluator-mode state, matching the
// same reasoning the canonical comparator's fixed epsilon used to stay
// out of internal/eval (see internal/value's ledger entry).
func (e *Evaluator) callBuiltin(name string, args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	merged := make(map[string]value.Value, len(kwargs)+1)
	for k, v := range kwargs {
		merged[k] = v
	}
	if _, ok := merged["mode"]; !ok {
		merged["mode"] = value.Text{S: e.angleModeName()}
	}
	return builtins.Call(name, args, merged)
}

func (e *Evaluator) angleModeName() string {
	switch e.AngleMode {
	case builtins.Degree:
		return "Degree"
	case builtins.Gradian:
		return "Gradian"
	default:
		return "Radian"
	}
}

// setDefaultVar sets the default-variable slot and returns a restore
// function; callers defer the restore immediately (spec.md §4.I:
// "restoration of the prior slot value is mandatory on every exit
// path").
func (e *Evaluator) setDefaultVar(sc *scope.Scope, v value.Value) func() {
	prevRef, err := sc.ResolveVariable(defaultVarName)
	var prev value.Value
	hadPrev := err == nil
	if hadPrev {
		prev, _ = prevRef.Resolve()
	}
	sc.DeclareVariable(defaultVarName, v)
	return func() {
		if hadPrev {
			sc.DeclareVariable(defaultVarName, prev)
		}
	}
}
