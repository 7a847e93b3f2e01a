// Package class implements component H: UserClass, the declaration of a
// Cantus class, and ClassInstance, the value a call to its constructor
// produces.
//
// ClassInstance implements value.Value directly, in the same package-split
// as internal/lambda.Lambda, and for the same reason: constructing one
// means invoking the constructor Lambda, which walks internal/ast nodes
// through an evaluator, and internal/value stays a dependency-free leaf
// package per its own package doc.
package class

import (
	"errors"

	"github.com/google/uuid"

	"github.com/cantus-lang/cantus/internal/ast"
	"github.com/cantus-lang/cantus/internal/lambda"
	"github.com/cantus-lang/cantus/internal/scope"
	"github.com/cantus-lang/cantus/internal/value"
)

// ErrNoSuchMember is returned when a name resolves to neither a field nor
// a method on a ClassInstance or its class.
var ErrNoSuchMember = errors.New("NoSuchMember")

// UserClass is a class declaration (spec.md §4.H): a full name, the
// constructor Lambda, an ordered field list (each an optional default
// expression, evaluated fresh per instance), and an ordered method table.
type UserClass struct {
	Name          string
	Constructor   *lambda.Lambda
	Fields        []ast.Param
	MethodNames   []string
	Methods       map[string]*lambda.Lambda
	DefiningScope *scope.Scope
}

// Method looks up a method by name, reporting whether it was found.
func (c *UserClass) Method(name string) (*lambda.Lambda, bool) {
	m, ok := c.Methods[name]
	return m, ok
}

// ClassInstance is the value a constructor call produces: a pointer to its
// class plus the fresh inner scope the constructor ran against. Field
// reads and writes resolve through that inner scope, so a Reference taken
// from an instance's field behaves exactly like any other variable
// reference. Go's GC collects an unreachable ClassInstance struct, but its
// field values stay in the shared Registry under the inner scope's name
// until that namespace is cleared (e.g. by `_AllClear`).
type ClassInstance struct {
	Class *UserClass
	Inner *scope.Scope
}

func (ci *ClassInstance) Kind() value.Kind { return value.KindClassInstance }

func (ci *ClassInstance) String() string { return ci.Class.Name + " instance" }

// Clone aliases rather than deep-copies: a ClassInstance is reference
// semantics throughout, matching internal/lambda.Lambda.Clone and
// internal/value.Reference.Clone.
func (ci *ClassInstance) Clone() value.Value { return ci }

// Field resolves a field name against the instance's inner scope.
func (ci *ClassInstance) Field(name string) (*value.Reference, error) {
	return ci.Inner.ResolveVariable(name)
}

// Init runs ClassInit (spec.md §4.H): it creates a fresh inner scope named
// after a freshly generated UUID, copies each declared field's default
// value into it (Undefined for fields with no default expression), runs
// the constructor Lambda against that scope, and wraps the result as a
// ClassInstance.
func Init(
	c *UserClass,
	args []value.Value,
	kwargs map[string]value.Value,
	callBuiltin lambda.BuiltinCaller,
	runBody lambda.BodyRunner,
	runExpr lambda.ExprRunner,
) (*ClassInstance, error) {
	inner := c.DefiningScope.Child(uuid.NewString())

	for _, f := range c.Fields {
		var v value.Value = value.Undef
		if f.Default != nil {
			dv, err := runExpr(inner, f.Default)
			if err != nil {
				return nil, err
			}
			v = dv
		}
		inner.DeclareVariable(f.Name, v)
	}

	instance := &ClassInstance{Class: c, Inner: inner}

	if c.Constructor == nil {
		return instance, nil
	}
	if _, err := c.Constructor.InvokeInScope(inner, args, kwargs, callBuiltin, runBody, runExpr); err != nil {
		return nil, err
	}
	return instance, nil
}
