package builtins

import (
	"strings"

	"github.com/cantus-lang/cantus/internal/bigdecimal"
	"github.com/cantus-lang/cantus/internal/hostio"
	"github.com/cantus-lang/cantus/internal/value"
)

// IO is the live component-K callback surface, wired by internal/eval at
// construction time (hostio.Default() until a host attaches its own). The
// built-ins below route through it rather than touching os.Stdin/Stdout
// directly, so a REPL or GUI front end can intercept every print/read
// call (spec.md §6).
var IO = hostio.Default()

func init() {
	register(&Builtin{Name: "Write", Arity: 1, Fn: builtinWrite})
	register(&Builtin{Name: "WriteLine", Arity: 1, Fn: builtinWriteLine})
	register(&Builtin{Name: "PrintLn", Arity: 1, Fn: builtinWriteLine})
	register(&Builtin{Name: "ReadLine", Arity: 1, Fn: builtinReadLine})
	register(&Builtin{Name: "Read", Arity: 1, Fn: builtinRead})
	register(&Builtin{Name: "ReadChar", Arity: 1, Fn: builtinReadChar})
	register(&Builtin{Name: "Confirm", Arity: 1, Fn: builtinConfirm})
	register(&Builtin{Name: "ClearConsole", Arity: 0, Fn: builtinClearConsole})
}

func promptArg(args []value.Value) string {
	if t, ok := arg(args, 0).(value.Text); ok {
		return t.S
	}
	return ""
}

// Write/WriteLine/PrintLn emit to the component-K on_write callback
// (spec.md §6); Undefined arguments print as "Undefined" like every other
// Value's String().
func builtinWrite(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	IO.OnWrite(hostio.Text, arg(args, 0).String())
	return value.Undef, nil
}

func builtinWriteLine(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	IO.OnWrite(hostio.Text, arg(args, 0).String()+"\n")
	return value.Undef, nil
}

// ReadLine(prompt) blocks on the host's on_read(line, prompt) (spec.md §5).
func builtinReadLine(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	s, ok := IO.OnRead(hostio.Line, promptArg(args))
	if !ok {
		return value.Undef, nil
	}
	return value.Text{S: s}, nil
}

// Read(prompt) reads a word and parses it as a Number, Undefined if the
// host returns nothing or the word isn't numeric (Text never
// auto-numerifies per spec.md §4.B, so this built-in is the explicit
// conversion point for interactive numeric input).
func builtinRead(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	s, ok := IO.OnRead(hostio.Word, promptArg(args))
	if !ok {
		return value.Undef, nil
	}
	d, err := bigdecimal.Parse(strings.TrimSpace(s))
	if err != nil {
		return value.Undef, nil
	}
	return value.NewNumber(d), nil
}

func builtinReadChar(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	s, ok := IO.OnRead(hostio.Char, promptArg(args))
	if !ok {
		return value.Undef, nil
	}
	return value.Text{S: s}, nil
}

// Confirm(prompt) blocks on on_read(confirm, prompt), returning the
// host's yes/no Boolean (spec.md §6: "mode ∈ {..., confirm}").
func builtinConfirm(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	_, confirmed := IO.OnRead(hostio.Confirm, promptArg(args))
	return value.Boolean{B: confirmed}, nil
}

func builtinClearConsole(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	IO.OnClearConsole()
	return value.Undef, nil
}
