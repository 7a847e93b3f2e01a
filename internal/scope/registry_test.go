package scope_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cantus-lang/cantus/internal/scope"
	"github.com/cantus-lang/cantus/internal/value"
)

func TestResolveVariableWalksToParent(t *testing.T) {
	root := scope.NewRoot()
	root.DeclareVariable("x", value.NewNumberInt(1))

	child := root.Child("fn")
	ref, err := child.ResolveVariable("x")
	require.NoError(t, err)

	v, err := ref.Resolve()
	require.NoError(t, err)
	require.Equal(t, "1", v.String())
}

func TestResolveVariablePrefersLexicalScope(t *testing.T) {
	root := scope.NewRoot()
	root.DeclareVariable("x", value.NewNumberInt(1))

	child := root.Child("fn")
	child.DeclareVariable("x", value.NewNumberInt(2))

	ref, err := child.ResolveVariable("x")
	require.NoError(t, err)
	v, _ := ref.Resolve()
	require.Equal(t, "2", v.String())
}

func TestResolveVariableUndefined(t *testing.T) {
	root := scope.NewRoot()
	_, err := root.ResolveVariable("missing")
	require.ErrorIs(t, err, scope.ErrVariableUndefined)
}

func TestSetThroughReferenceIsVisibleToSiblingScope(t *testing.T) {
	root := scope.NewRoot()
	root.DeclareVariable("x", value.NewNumberInt(1))

	a := root.Child("a")
	b := root.Child("b")

	refA, _ := a.ResolveVariable("x")
	require.NoError(t, refA.Set(value.NewNumberInt(42)))

	refB, _ := b.ResolveVariable("x")
	v, _ := refB.Resolve()
	require.Equal(t, "42", v.String())
}

func TestClearRemovesNestedScope(t *testing.T) {
	root := scope.NewRoot()
	child := root.Child("fn")
	child.DeclareVariable("x", value.NewNumberInt(1))

	root.Clear()

	_, err := child.ResolveVariable("x")
	require.ErrorIs(t, err, scope.ErrVariableUndefined)
}

func TestFnListListsDeclaredNamesAndBuiltins(t *testing.T) {
	root := scope.NewRoot()
	root.DeclareVariable("x", value.NewNumberInt(1))
	root.DeclareFunction("double", "placeholder")

	names := root.FnList([]string{"sin", "cos"})
	require.Contains(t, names, "cantus.x")
	require.Contains(t, names, "cantus.double")
	require.Contains(t, names, "sin")
}

func TestResolveFunctionUndefined(t *testing.T) {
	root := scope.NewRoot()
	_, err := root.ResolveFunction("missing")
	require.ErrorIs(t, err, scope.ErrFunctionUndefined)
}
