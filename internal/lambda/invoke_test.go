package lambda_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cantus-lang/cantus/internal/ast"
	"github.com/cantus-lang/cantus/internal/lambda"
	"github.com/cantus-lang/cantus/internal/scope"
	"github.com/cantus-lang/cantus/internal/value"
)

func noExpr(sc *scope.Scope, expr ast.Expression) (value.Value, error) {
	return value.Undef, nil
}

func TestInvokeBuiltinDelegates(t *testing.T) {
	l := lambda.NewBuiltin("double", false)

	called := false
	_, err := l.Invoke(nil, nil, func(name string, args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
		called = true
		require.Equal(t, "double", name)
		return value.NewNumberInt(4), nil
	}, nil, noExpr)
	require.NoError(t, err)
	require.True(t, called)
}

func TestInvokeUserFunctionBindsArgsAndReturns(t *testing.T) {
	root := scope.NewRoot()
	fn := &lambda.UserFunction{
		Name:    "add",
		Params:  []ast.Param{{Name: "a"}, {Name: "b"}},
		Body:    nil,
		Closure: root,
	}
	l := lambda.NewUserFunction(fn)

	runBody := func(sc *scope.Scope, stmts []ast.Statement) (value.Value, bool, error) {
		aRef, err := sc.ResolveVariable("a")
		require.NoError(t, err)
		a, _ := aRef.Resolve()
		bRef, err := sc.ResolveVariable("b")
		require.NoError(t, err)
		b, _ := bRef.Resolve()
		an := a.(value.Number)
		bn := b.(value.Number)
		return value.NewNumber(an.D.Add(bn.D)), true, nil
	}

	result, err := l.Invoke([]value.Value{value.NewNumberInt(3), value.NewNumberInt(4)}, nil, nil, runBody, noExpr)
	require.NoError(t, err)
	require.Equal(t, "7", result.String())
}

func TestInvokeUserFunctionMissingArgIsArgumentCount(t *testing.T) {
	root := scope.NewRoot()
	fn := &lambda.UserFunction{
		Name:    "needsTwo",
		Params:  []ast.Param{{Name: "a"}, {Name: "b"}},
		Closure: root,
	}
	l := lambda.NewUserFunction(fn)

	_, err := l.Invoke([]value.Value{value.NewNumberInt(1)}, nil, nil, func(sc *scope.Scope, stmts []ast.Statement) (value.Value, bool, error) {
		return value.Undef, false, nil
	}, noExpr)
	require.ErrorIs(t, err, lambda.ErrArgumentCount)
}

func TestInvokeUnknownKwarg(t *testing.T) {
	root := scope.NewRoot()
	fn := &lambda.UserFunction{
		Name:    "f",
		Params:  []ast.Param{{Name: "a"}},
		Closure: root,
	}
	l := lambda.NewUserFunction(fn)

	_, err := l.Invoke(nil, map[string]value.Value{"z": value.NewNumberInt(1)}, nil, func(sc *scope.Scope, stmts []ast.Statement) (value.Value, bool, error) {
		return value.Undef, false, nil
	}, noExpr)
	require.ErrorIs(t, err, lambda.ErrUnknownKwarg)
}

func TestInvokeUserFunctionWithoutReturnYieldsUndefined(t *testing.T) {
	root := scope.NewRoot()
	fn := &lambda.UserFunction{Name: "noop", Closure: root}
	l := lambda.NewUserFunction(fn)

	result, err := l.Invoke(nil, nil, nil, func(sc *scope.Scope, stmts []ast.Statement) (value.Value, bool, error) {
		return value.Undef, false, nil
	}, noExpr)
	require.NoError(t, err)
	require.Equal(t, value.KindUndefined, result.Kind())
}
