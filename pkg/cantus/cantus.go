// Package cantus is the public embeddable API (SPEC_FULL.md §4/table
// row M): a thin facade over internal/eval that an embedding Go program
// links directly, the same layering the teacher exposes through
// pkg/dwscript over internal/interp.
package cantus

import (
	"github.com/cantus-lang/cantus/internal/builtins"
	"github.com/cantus-lang/cantus/internal/eval"
	"github.com/cantus-lang/cantus/internal/hostio"
	"github.com/cantus-lang/cantus/internal/hostservices"
	"github.com/cantus-lang/cantus/internal/value"
)

// Value is the tagged-union result type every evaluation returns.
type Value = value.Value

// Interpreter wraps an Evaluator, exposing only the host-facing surface
// an embedder needs: evaluate source, render results under an output
// mode, set I/O and HostServices callbacks, manage background tasks.
type Interpreter struct {
	ev *eval.Evaluator
}

// New constructs an Interpreter with the library defaults (stdin/stdout
// I/O, OS-backed HostServices, radian angle mode).
func New() *Interpreter {
	return &Interpreter{ev: eval.New()}
}

// Eval runs a multi-statement script and returns its last expression
// statement's value, recording it in the prev_ans deque unless
// saveAnswer is false (spec.md §4.I).
func (i *Interpreter) Eval(source string, saveAnswer bool) (Value, error) {
	return i.ev.Eval(source, saveAnswer)
}

// EvalExpr evaluates a single expression without touching prev_ans.
func (i *Interpreter) EvalExpr(source string) (Value, error) {
	return i.ev.EvalExpr(source)
}

// Render formats v under this Interpreter's live output mode (Raw,
// Math, or Scientific — see SetOutputMode), instead of always using
// v.String()'s fixed rendering (spec.md §4.F/§6).
func (i *Interpreter) Render(v Value) string {
	return i.ev.Render(v)
}

// SetOutputMode switches this Interpreter's rendering mode: Raw is the
// BigDecimal's own decimal string, Math prefers closed forms (π
// multiples, radicals, rationals), Scientific always uses mantissa x
// 10^exponent notation (spec.md §4.F "Evaluator modes").
func (i *Interpreter) SetOutputMode(mode OutputMode) {
	i.ev.OutputMode = mode
}

// OutputMode mirrors internal/builtins.OutputMode for embedders that
// don't want to import internal packages directly.
type OutputMode = builtins.OutputMode

const (
	OutputRaw        = builtins.Raw
	OutputMath       = builtins.Math
	OutputScientific = builtins.Scientific
)

// Async runs source as a background task, invoking callback with its
// result once it completes, and returns the task id immediately.
func (i *Interpreter) Async(source string, callback func(Value, error)) string {
	return i.ev.Async(source, callback)
}

// Run reads path through readFile and runs it as a background task the
// same way Async does.
func (i *Interpreter) Run(path string, readFile func(string) (string, error), callback func(Value, error)) (string, error) {
	return i.ev.Run(path, readFile, callback)
}

// KillThread/JoinThread/StopAll expose the Thread controller (component J).
func (i *Interpreter) KillThread(id string) error { return i.ev.KillThread(id) }
func (i *Interpreter) JoinThread(id string) (Value, error) { return i.ev.JoinThread(id) }
func (i *Interpreter) StopAll(except string) { i.ev.StopAll(except) }

// PrevAns returns the nth-back previous top-level answer.
func (i *Interpreter) PrevAns(n int) Value { return i.ev.PrevAns(n) }

// SetIO replaces the component-K callback surface (spec.md §6) every
// Interpreter shares — IO is a package-level hook in internal/builtins,
// so this affects every Interpreter in the process, matching the
// single-process-wide nature of the built-in catalog itself.
func SetIO(cb *hostio.Callbacks) { builtins.IO = cb }

// SetHostServices replaces the filesystem/process/clipboard/HTTP
// collaborator (SPEC_FULL.md §4.F.2), process-wide for the same reason
// as SetIO.
func SetHostServices(hs hostservices.HostServices) { builtins.Host = hs }
