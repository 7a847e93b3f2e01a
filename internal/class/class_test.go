package class_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cantus-lang/cantus/internal/ast"
	"github.com/cantus-lang/cantus/internal/class"
	"github.com/cantus-lang/cantus/internal/lambda"
	"github.com/cantus-lang/cantus/internal/scope"
	"github.com/cantus-lang/cantus/internal/value"
)

func noExpr(sc *scope.Scope, expr ast.Expression) (value.Value, error) {
	return value.Undef, nil
}

func TestInitCopiesFieldDefaultsAndRunsConstructor(t *testing.T) {
	root := scope.NewRoot()

	ctor := lambda.NewUserFunction(&lambda.UserFunction{
		Name:    "Point",
		Params:  []ast.Param{{Name: "x"}},
		Closure: root,
	})

	c := &class.UserClass{
		Name:          "Point",
		Constructor:   ctor,
		Fields:        []ast.Param{{Name: "y"}},
		DefiningScope: root,
	}

	var sawX value.Value
	runBody := func(sc *scope.Scope, stmts []ast.Statement) (value.Value, bool, error) {
		xRef, err := sc.ResolveVariable("x")
		require.NoError(t, err)
		sawX, _ = xRef.Resolve()

		yRef, err := sc.ResolveVariable("y")
		require.NoError(t, err)
		require.NoError(t, yRef.Set(value.NewNumberInt(9)))
		return value.Undef, false, nil
	}

	instance, err := class.Init(c, []value.Value{value.NewNumberInt(5)}, nil, nil, runBody, noExpr)
	require.NoError(t, err)
	require.Equal(t, "5", sawX.String())

	yRef, err := instance.Field("y")
	require.NoError(t, err)
	y, err := yRef.Resolve()
	require.NoError(t, err)
	require.Equal(t, "9", y.String())

	require.Equal(t, value.KindClassInstance, instance.Kind())
}

func TestInitFieldWithoutDefaultIsUndefined(t *testing.T) {
	root := scope.NewRoot()
	c := &class.UserClass{
		Name:          "Empty",
		Fields:        []ast.Param{{Name: "z"}},
		DefiningScope: root,
	}

	instance, err := class.Init(c, nil, nil, nil, nil, noExpr)
	require.NoError(t, err)

	zRef, err := instance.Field("z")
	require.NoError(t, err)
	z, _ := zRef.Resolve()
	require.Equal(t, value.KindUndefined, z.Kind())
}

func TestMethodLookup(t *testing.T) {
	root := scope.NewRoot()
	m := lambda.NewBuiltin("noop", false)
	c := &class.UserClass{
		Name:          "WithMethod",
		DefiningScope: root,
		MethodNames:   []string{"Noop"},
		Methods:       map[string]*lambda.Lambda{"Noop": m},
	}

	found, ok := c.Method("Noop")
	require.True(t, ok)
	require.Equal(t, m, found)

	_, ok = c.Method("Missing")
	require.False(t, ok)
}

func TestInitTwoInstancesHaveIndependentInnerScopes(t *testing.T) {
	root := scope.NewRoot()
	c := &class.UserClass{
		Name:          "Counter",
		Fields:        []ast.Param{{Name: "n"}},
		DefiningScope: root,
	}

	a, err := class.Init(c, nil, nil, nil, nil, noExpr)
	require.NoError(t, err)
	b, err := class.Init(c, nil, nil, nil, nil, noExpr)
	require.NoError(t, err)

	aRef, _ := a.Field("n")
	require.NoError(t, aRef.Set(value.NewNumberInt(1)))

	bRef, _ := b.Field("n")
	bv, _ := bRef.Resolve()
	require.Equal(t, value.KindUndefined, bv.Kind())
}
