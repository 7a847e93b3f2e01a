package lambda

import (
	"github.com/cantus-lang/cantus/internal/ast"
	"github.com/cantus-lang/cantus/internal/scope"
	"github.com/cantus-lang/cantus/internal/value"
)

// BuiltinCaller invokes a built-in by name (internal/builtins supplies
// this at evaluator construction time).
type BuiltinCaller func(name string, args []value.Value, kwargs map[string]value.Value) (value.Value, error)

// BodyRunner executes a statement block against a scope, returning the
// Return value (if any) and whether a Return was hit (spec.md §4.G step
// 4: "On Return, unwind to the child scope's frame"). internal/eval
// supplies this.
type BodyRunner func(sc *scope.Scope, stmts []ast.Statement) (result value.Value, returned bool, err error)

// ExprRunner evaluates a single expression against a scope. internal/eval
// supplies this; Lambda also uses it to evaluate a parameter's default
// expression in the callee's own child scope.
type ExprRunner func(sc *scope.Scope, expr ast.Expression) (value.Value, error)

// Invoke executes the lambda's body per spec.md §4.G's four-step path:
// bind positional args, bind keyword args, create a child scope and run
// the body, and return the collected value.
func (l *Lambda) Invoke(
	args []value.Value,
	kwargs map[string]value.Value,
	callBuiltin BuiltinCaller,
	runBody BodyRunner,
	runExpr ExprRunner,
) (value.Value, error) {
	switch l.form {
	case FormBuiltin:
		return callBuiltin(l.builtinName, args, kwargs)

	case FormUserFunction:
		fn := l.userFn
		child := fn.Closure.Child(fn.Name)
		paramNames := make([]string, len(fn.Params))
		defaults := make(map[string]ast.Expression, len(fn.Params))
		for i, p := range fn.Params {
			paramNames[i] = p.Name
			defaults[p.Name] = p.Default
		}
		if err := bind(paramNames, defaults, args, kwargs, child, runExpr); err != nil {
			return value.Undef, err
		}
		result, returned, err := runBody(child, fn.Body)
		if err != nil {
			return value.Undef, err
		}
		if !returned {
			return value.Undef, nil
		}
		return result, nil

	default: // FormInline
		closure := l.closure
		if closure == nil {
			closure = scope.NewRoot()
		}
		child := closure.Child("lambda")
		if err := bind(l.inlineParams, nil, args, kwargs, child, runExpr); err != nil {
			return value.Undef, err
		}
		body, err := l.body()
		if err != nil {
			return value.Undef, err
		}
		return runExpr(child, body)
	}
}

// InvokeInScope runs a FormUserFunction lambda's body directly against sc
// instead of a fresh child of its closure — used by internal/class to run
// a constructor against the ClassInstance's own inner scope (spec.md
// §4.H: "invokes the constructor Lambda against that scope").
func (l *Lambda) InvokeInScope(
	sc *scope.Scope,
	args []value.Value,
	kwargs map[string]value.Value,
	callBuiltin BuiltinCaller,
	runBody BodyRunner,
	runExpr ExprRunner,
) (value.Value, error) {
	fn := l.userFn
	paramNames := make([]string, len(fn.Params))
	defaults := make(map[string]ast.Expression, len(fn.Params))
	for i, p := range fn.Params {
		paramNames[i] = p.Name
		defaults[p.Name] = p.Default
	}
	if err := bind(paramNames, defaults, args, kwargs, sc, runExpr); err != nil {
		return value.Undef, err
	}
	result, returned, err := runBody(sc, fn.Body)
	if err != nil {
		return value.Undef, err
	}
	if !returned {
		return value.Undef, nil
	}
	return result, nil
}

// bind implements spec.md §4.G steps 1-2: positional args fill params
// left to right, a keyword arg fills its named param if not already
// filled positionally, and a missing param with no default is an
// ArgumentCount error; any kwarg matching no declared param is an
// UnknownKwarg error.
func bind(params []string, defaults map[string]ast.Expression, args []value.Value, kwargs map[string]value.Value, child *scope.Scope, runExpr ExprRunner) error {
	declared := make(map[string]bool, len(params))
	for _, p := range params {
		declared[p] = true
	}
	for name := range kwargs {
		if !declared[name] {
			return ErrUnknownKwarg
		}
	}

	for i, name := range params {
		var v value.Value
		switch {
		case i < len(args):
			v = args[i]
		case kwargs != nil && kwargs[name] != nil:
			v = kwargs[name]
		default:
			def := defaults[name]
			if def == nil {
				return ErrArgumentCount
			}
			dv, err := runExpr(child, def)
			if err != nil {
				return err
			}
			v = dv
		}
		child.DeclareVariable(name, v)
	}
	return nil
}
