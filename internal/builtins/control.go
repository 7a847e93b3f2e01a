package builtins

import "github.com/cantus-lang/cantus/internal/value"

// EvaluatorHooks is the evaluator-state callback surface
// `internal/eval.New` wires at construction time, the same
// closure-injection shape as Invoker: `_PrevAns`/`_AllClear`/`_FnList`
// and the thread-control built-ins all need to reach back into the live
// Evaluator (its prev_ans deque, its Root scope, its Threads
// controller) without internal/builtins importing internal/eval.
type EvaluatorHooks struct {
	PrevAns     func(n int) value.Value
	AllClear    func()
	FnList      func() []string
	KillThread  func(id string) error
	JoinThread  func(id string) (value.Value, error)
	StopAll     func(except string)
}

// Hooks is nil until an Evaluator is constructed; every built-in in this
// file treats a nil Hooks the same way Invoker's ErrNoInvoker does.
var Hooks *EvaluatorHooks

func init() {
	register(&Builtin{Name: "_PrevAns", Arity: 1, Fn: builtinPrevAns})
	register(&Builtin{Name: "_AllClear", Arity: 0, Fn: builtinAllClear})
	register(&Builtin{Name: "_FnList", Arity: 0, Fn: builtinFnList})
	register(&Builtin{Name: "KillThread", Arity: 1, Fn: builtinKillThread})
	register(&Builtin{Name: "JoinThread", Arity: 1, Fn: builtinJoinThread})
	register(&Builtin{Name: "StopAll", Arity: 1, Fn: builtinStopAll})
}

// _PrevAns(n) returns the nth-back previous top-level answer (spec.md
// §4.I), 0 = most recent.
func builtinPrevAns(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	if Hooks == nil {
		return value.Undef, nil
	}
	n, ok := asInt(arg(args, 0))
	if !ok {
		n = 0
	}
	return Hooks.PrevAns(int(n)), nil
}

// _AllClear() clears every variable/function/class declared in the root
// scope (spec.md §3: "variables live until their scope is cleared or
// `_AllClear` is invoked").
func builtinAllClear(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	if Hooks != nil {
		Hooks.AllClear()
	}
	return value.Undef, nil
}

// _FnList() enumerates every declared name plus the built-in catalog
// (spec.md §4.D).
func builtinFnList(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	if Hooks == nil {
		return value.NewLinkedList(nil), nil
	}
	names := Hooks.FnList()
	out := make([]value.Value, len(names))
	for i, n := range names {
		out[i] = value.Text{S: n}
	}
	return value.NewLinkedList(out), nil
}

func builtinKillThread(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	id, ok := arg(args, 0).(value.Text)
	if !ok || Hooks == nil {
		return value.Undef, nil
	}
	return value.Undef, Hooks.KillThread(id.S)
}

func builtinJoinThread(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	id, ok := arg(args, 0).(value.Text)
	if !ok || Hooks == nil {
		return value.Undef, nil
	}
	return Hooks.JoinThread(id.S)
}

func builtinStopAll(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	except := ""
	if t, ok := arg(args, 0).(value.Text); ok {
		except = t.S
	}
	if Hooks != nil {
		Hooks.StopAll(except)
	}
	return value.Undef, nil
}
