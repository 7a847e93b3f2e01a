// Package scope implements component D, the namespaced scope registry:
// three insertion-ordered maps (Variables, UserFunctions, UserClasses)
// keyed by full dotted name, and lexical-then-parent-then-root name
// resolution (spec.md §4.D).
package scope

import (
	"errors"
	"sync"

	"github.com/cantus-lang/cantus/internal/value"
)

// Separator joins scope-name components ("A.B.C", spec.md §3 Scope).
const Separator = "."

// RootName is the distinguished name of the root namespace (spec.md §3:
// "the root namespace has a distinguished name (e.g. cantus)").
const RootName = "cantus"

var (
	// ErrVariableUndefined is returned when no scope in the lexical chain
	// defines the requested variable name.
	ErrVariableUndefined = errors.New("VariableUndefined")
	// ErrFunctionUndefined is returned when no scope in the lexical chain
	// defines the requested function name.
	ErrFunctionUndefined = errors.New("FunctionUndefined")
	// ErrClassUndefined is returned when no scope in the lexical chain
	// defines the requested class name.
	ErrClassUndefined = errors.New("ClassUndefined")
)

// Registry is the shared backing store for every Scope in a program: one
// set of three maps, guarded by a single coarse lock (spec.md §5: "Scope
// registry is shared across tasks; guarded by a coarse lock (single mutex
// acceptable; contention is low in typical scripts). Lookup-then-modify
// patterns must hold the lock for both phases").
//
// UserFunctions and UserClasses are stored as `any`: this package sits
// below internal/lambda and internal/class in the import graph (they
// depend on Scope to create child scopes), so it cannot name their
// concrete types without an import cycle.
type Registry struct {
	mu        sync.RWMutex
	variables *orderedMap[value.Value]
	functions *orderedMap[any]
	classes   *orderedMap[any]
}

// NewRegistry creates an empty, shared Registry.
func NewRegistry() *Registry {
	return &Registry{
		variables: newOrderedMap[value.Value](),
		functions: newOrderedMap[any](),
		classes:   newOrderedMap[any](),
	}
}

func (r *Registry) getVariable(fullName string) (value.Value, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.variables.Get(fullName)
}

func (r *Registry) setVariable(fullName string, v value.Value) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.variables.Set(fullName, v)
	return nil
}

// Scope is one named node of the lexical scope tree: its own full dotted
// name, a parent pointer, and a pointer to the Registry shared by the
// whole program (spec.md §3 Scope / §4.D).
type Scope struct {
	Name     string
	Parent   *Scope
	Registry *Registry
}

// NewRoot creates the root scope and its backing Registry.
func NewRoot() *Scope {
	return &Scope{Name: RootName, Registry: NewRegistry()}
}

// Child creates a nested scope named "s.Name.name", sharing this scope's
// Registry.
func (s *Scope) Child(name string) *Scope {
	return &Scope{Name: s.Name + Separator + name, Parent: s, Registry: s.Registry}
}

// ancestors returns this scope and every ancestor, nearest first, ending
// at the root — the order spec.md §4.D's resolution walk uses: "lexical
// scope first, then lexical parent, then root".
func (s *Scope) ancestors() []*Scope {
	var out []*Scope
	for sc := s; sc != nil; sc = sc.Parent {
		out = append(out, sc)
	}
	return out
}

// DeclareVariable defines name in this scope's own namespace and returns
// a Reference to it.
func (s *Scope) DeclareVariable(name string, v value.Value) *value.Reference {
	full := s.Name + Separator + name
	s.Registry.setVariable(full, v)
	return value.NewNameReference(full, s.Registry.getVariable, s.Registry.setVariable)
}

// ResolveVariable implements spec.md §4.D's walk: the current scope, then
// each lexical parent, then the root. The first scope whose namespace
// defines name wins.
func (s *Scope) ResolveVariable(name string) (*value.Reference, error) {
	s.Registry.mu.RLock()
	for _, sc := range s.ancestors() {
		full := sc.Name + Separator + name
		if _, ok := s.Registry.variables.Get(full); ok {
			s.Registry.mu.RUnlock()
			return value.NewNameReference(full, s.Registry.getVariable, s.Registry.setVariable), nil
		}
	}
	s.Registry.mu.RUnlock()
	return nil, ErrVariableUndefined
}

// DeclareFunction defines a user function (an internal/lambda.UserFunction,
// stored opaquely) in this scope's namespace.
func (s *Scope) DeclareFunction(name string, fn any) {
	full := s.Name + Separator + name
	s.Registry.mu.Lock()
	defer s.Registry.mu.Unlock()
	s.Registry.functions.Set(full, fn)
}

// ResolveFunction walks the lexical chain for a user function.
func (s *Scope) ResolveFunction(name string) (any, error) {
	s.Registry.mu.RLock()
	defer s.Registry.mu.RUnlock()
	for _, sc := range s.ancestors() {
		full := sc.Name + Separator + name
		if fn, ok := s.Registry.functions.Get(full); ok {
			return fn, nil
		}
	}
	return nil, ErrFunctionUndefined
}

// DeclareClass defines a user class (an internal/class.UserClass, stored
// opaquely) in this scope's namespace.
func (s *Scope) DeclareClass(name string, cls any) {
	full := s.Name + Separator + name
	s.Registry.mu.Lock()
	defer s.Registry.mu.Unlock()
	s.Registry.classes.Set(full, cls)
}

// ResolveClass walks the lexical chain for a user class.
func (s *Scope) ResolveClass(name string) (any, error) {
	s.Registry.mu.RLock()
	defer s.Registry.mu.RUnlock()
	for _, sc := range s.ancestors() {
		full := sc.Name + Separator + name
		if cls, ok := s.Registry.classes.Get(full); ok {
			return cls, nil
		}
	}
	return nil, ErrClassUndefined
}

// FnList enumerates every name declared anywhere under this scope's own
// namespace (variables, functions, classes) and, when this scope is the
// root, appends builtinNames — the root-namespace built-in catalog
// (spec.md §4.D: "`_FnList(scope)` enumerates names with the prefix and,
// for the root namespace, appends every built-in").
func (s *Scope) FnList(builtinNames []string) []string {
	s.Registry.mu.RLock()
	defer s.Registry.mu.RUnlock()

	var out []string
	out = append(out, s.Registry.variables.KeysWithPrefix(s.Name)...)
	out = append(out, s.Registry.functions.KeysWithPrefix(s.Name)...)
	out = append(out, s.Registry.classes.KeysWithPrefix(s.Name)...)
	if s.Name == RootName {
		out = append(out, builtinNames...)
	}
	return out
}

// Clear removes every variable, function, and class declared in this
// scope's own namespace or any nested child namespace (spec.md §3:
// "variables live until their scope is cleared or `_AllClear` is
// invoked").
func (s *Scope) Clear() {
	s.Registry.mu.Lock()
	defer s.Registry.mu.Unlock()
	s.Registry.variables.DeleteByPrefix(s.Name)
	s.Registry.functions.DeleteByPrefix(s.Name)
	s.Registry.classes.DeleteByPrefix(s.Name)
}
