package builtins

import "github.com/cantus-lang/cantus/internal/value"

// hostServicesSurface is the slice of internal/hostservices.HostServices
// this package calls through — declared locally (rather than importing
// the package's interface type directly into every signature) so a host
// can still swap implementations via SetHostServices without this file
// depending on hostservices' Socket type for built-ins that never touch
// WebSocketConnect.
type hostServicesSurface interface {
	ReadFile(path string) (string, error)
	WriteFile(path, contents string) error
	StartProcess(name string, args []string) (string, int, error)
	ClipboardGet() (string, error)
	ClipboardSet(text string) error
	WebGet(url string) (string, int, error)
	WebPost(url, contentType, body string) (string, int, error)
}

// Host is nil until internal/eval.New() attaches an
// internal/hostservices.Default() (or an embedder-supplied
// implementation) — the same closure/interface-injection shape as
// `IO` and `Hooks`, for the same import-cycle reason.
var Host hostServicesSurface

func init() {
	register(&Builtin{Name: "ReadFile", Arity: 1, Fn: builtinReadFile})
	register(&Builtin{Name: "WriteFile", Arity: 2, Fn: builtinWriteFile})
	register(&Builtin{Name: "RunProcess", Arity: 2, Fn: builtinRunProcess})
	register(&Builtin{Name: "ClipboardGet", Arity: 0, Fn: builtinClipboardGet})
	register(&Builtin{Name: "ClipboardSet", Arity: 1, Fn: builtinClipboardSet})
	register(&Builtin{Name: "WebGet", Arity: 1, Fn: builtinWebGet})
	register(&Builtin{Name: "WebPost", Arity: 3, Fn: builtinWebPost})
}

func textArg(args []value.Value, i int) (string, bool) {
	t, ok := arg(args, i).(value.Text)
	if !ok {
		return "", false
	}
	return t.S, true
}

func builtinReadFile(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	path, ok := textArg(args, 0)
	if !ok || Host == nil {
		return value.Undef, nil
	}
	s, err := Host.ReadFile(path)
	if err != nil {
		return value.Undef, nil
	}
	return value.Text{S: s}, nil
}

func builtinWriteFile(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	path, ok := textArg(args, 0)
	contents, _ := textArg(args, 1)
	if !ok || Host == nil {
		return value.Boolean{B: false}, nil
	}
	return value.Boolean{B: Host.WriteFile(path, contents) == nil}, nil
}

// RunProcess(name, args) takes args as a Tuple of Text elements (spec.md
// §4.F's built-in parameter conventions: a fixed arity, with a container
// argument standing in for a variable-length list).
func builtinRunProcess(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	name, ok := textArg(args, 0)
	if !ok || Host == nil {
		return value.Undef, nil
	}
	var procArgs []string
	if tup, ok := arg(args, 1).(*value.Tuple); ok {
		for _, ref := range tup.Elements {
			v, err := ref.Resolve()
			if err != nil {
				continue
			}
			if t, ok := v.(value.Text); ok {
				procArgs = append(procArgs, t.S)
			}
		}
	}
	out, code, err := Host.StartProcess(name, procArgs)
	if err != nil {
		return value.Undef, nil
	}
	return value.NewTuple([]value.Value{value.Text{S: out}, value.NewNumberInt(int64(code))}), nil
}

func builtinClipboardGet(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	if Host == nil {
		return value.Undef, nil
	}
	s, err := Host.ClipboardGet()
	if err != nil {
		return value.Undef, nil
	}
	return value.Text{S: s}, nil
}

func builtinClipboardSet(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	s, ok := textArg(args, 0)
	if !ok || Host == nil {
		return value.Undef, nil
	}
	return value.Boolean{B: Host.ClipboardSet(s) == nil}, nil
}

func builtinWebGet(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	url, ok := textArg(args, 0)
	if !ok || Host == nil {
		return value.Undef, nil
	}
	body, status, err := Host.WebGet(url)
	if err != nil {
		return value.Undef, nil
	}
	return value.NewTuple([]value.Value{value.Text{S: body}, value.NewNumberInt(int64(status))}), nil
}

func builtinWebPost(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	url, ok := textArg(args, 0)
	contentType, _ := textArg(args, 1)
	body, _ := textArg(args, 2)
	if !ok || Host == nil {
		return value.Undef, nil
	}
	respBody, status, err := Host.WebPost(url, contentType, body)
	if err != nil {
		return value.Undef, nil
	}
	return value.NewTuple([]value.Value{value.Text{S: respBody}, value.NewNumberInt(int64(status))}), nil
}
