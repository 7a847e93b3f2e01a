// Package builtins implements component F: the Cantus built-in library.
// Each built-in has a unique case-insensitive name, a fixed arity (with
// some parameters defaulting to a sentinel "unbound" value), and may
// accept one trailing named-arguments map (spec.md §4.F). The teacher
// discovers built-ins as one method per name on its Interpreter
// (internal/interp/builtins_math.go et al.); Cantus instead builds one
// static catalog — a map from name to *Builtin — at package init, so the
// "present them as a statically built catalog mapping name → callable"
// instruction in spec.md §4.F is satisfied literally rather than by
// reflecting over method names at startup.
package builtins

import (
	"fmt"
	"strings"
	"sync"

	"github.com/cantus-lang/cantus/internal/value"
)

// Fn is the signature every built-in implements.
type Fn func(args []value.Value, kwargs map[string]value.Value) (value.Value, error)

// Builtin is one catalog entry: its case-insensitive name, declared
// arity (the number of positional parameters; -1 means variadic), and
// implementation.
type Builtin struct {
	Name  string
	Arity int
	Fn    Fn
}

var (
	mu      sync.RWMutex
	catalog = map[string]*Builtin{}
)

// register adds b to the catalog, keyed case-insensitively (spec.md
// §4.F: "a unique case-insensitive name"). Called only from each
// built-in group's init().
func register(b *Builtin) {
	mu.Lock()
	defer mu.Unlock()
	key := strings.ToLower(b.Name)
	if _, exists := catalog[key]; exists {
		panic("builtins: duplicate registration for " + b.Name)
	}
	catalog[key] = b
}

// Lookup returns the catalog entry for name, case-insensitively.
func Lookup(name string) (*Builtin, bool) {
	mu.RLock()
	defer mu.RUnlock()
	b, ok := catalog[strings.ToLower(name)]
	return b, ok
}

// Names returns every registered built-in name, in registration order
// relative to each other is not guaranteed (catalog is a map) — callers
// that need a stable FnList ordering should sort the result.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(catalog))
	for _, b := range catalog {
		out = append(out, b.Name)
	}
	return out
}

// Call dispatches to the named built-in (the BuiltinCaller internal/eval
// supplies to internal/lambda.Lambda.Invoke for FormBuiltin lambdas).
func Call(name string, args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	b, ok := Lookup(name)
	if !ok {
		return value.Undef, fmt.Errorf("builtins: unknown built-in %q", name)
	}
	return b.Fn(args, kwargs)
}

// arg returns args[i], or Undefined if the call didn't supply enough
// positional arguments — spec.md §4.F's "some parameters default to a
// sentinel indicating unbound" (Undefined already fills that role: every
// Cantus operator already treats it as the absorbing identity).
func arg(args []value.Value, i int) value.Value {
	if i < 0 || i >= len(args) {
		return value.Undef
	}
	return args[i]
}
