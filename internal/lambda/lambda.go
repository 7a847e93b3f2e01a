// Package lambda implements component G: Lambda, the callable value that
// wraps either a built-in selector, a user-defined function, or an inline
// body (arrow-form or backtick-quoted source text), plus UserFunction, the
// named-function declaration a Lambda of the second kind points at.
//
// Lambda implements value.Value directly (rather than living in
// internal/value) because invoking it requires walking internal/ast nodes
// through an evaluator — internal/value stays a dependency-free leaf
// package per its own package doc. Lambda similarly cannot import
// internal/eval (eval needs to call Lambda.Invoke for every user-function
// call), so the actual expression/statement evaluation is injected as
// plain function values at the call site, the same closure-injection
// pattern internal/value's Reference uses for named-scope resolution.
package lambda

import (
	"errors"

	"github.com/cantus-lang/cantus/internal/ast"
	"github.com/cantus-lang/cantus/internal/parser"
	"github.com/cantus-lang/cantus/internal/scope"
	"github.com/cantus-lang/cantus/internal/value"
)

var (
	// ErrArgumentCount is returned when fewer arguments are supplied than
	// the parameter list requires past its declared defaults.
	ErrArgumentCount = errors.New("ArgumentCount")
	// ErrUnknownKwarg is returned when a keyword argument name doesn't
	// match any declared parameter.
	ErrUnknownKwarg = errors.New("UnknownKwarg")
)

// Form distinguishes the three things a Lambda can wrap (spec.md §4.G).
type Form int

const (
	FormBuiltin Form = iota
	FormUserFunction
	FormInline
)

// UserFunction is a named function declaration: an ordered parameter list
// (with an optional default expression per parameter, i.e. the
// "default-argument table" of spec.md §3), a statement body, and the
// scope it closes over.
type UserFunction struct {
	Name    string
	Params  []ast.Param
	Body    []ast.Statement
	Closure *scope.Scope
}

// Lambda is the callable value of spec.md §3/§4.G.
type Lambda struct {
	form Form

	builtinName string
	isInternal  bool

	userFn *UserFunction

	inlineParams []string
	inlineBody   ast.Expression // set directly for arrow-form; parsed lazily for backtick-form
	backtick     string
	closure      *scope.Scope
}

// NewBuiltin wraps a built-in by name (spec.md §4.G case i).
func NewBuiltin(name string, isInternal bool) *Lambda {
	return &Lambda{form: FormBuiltin, builtinName: name, isInternal: isInternal}
}

// NewUserFunction wraps a declared function (spec.md §4.G case ii).
func NewUserFunction(fn *UserFunction) *Lambda {
	return &Lambda{form: FormUserFunction, userFn: fn}
}

// NewInline wraps an arrow-form inline body, `lambda(params) => expr`, already
// parsed by internal/parser (spec.md §4.G case iii, arrow variant).
func NewInline(params []string, body ast.Expression, closure *scope.Scope) *Lambda {
	return &Lambda{form: FormInline, inlineParams: params, inlineBody: body, closure: closure}
}

// NewInlineBacktick wraps a backtick-quoted body, parsed lazily on first
// invocation (spec.md §4.G case iii, backtick variant: "an inline body
// surrounded by backticks"). The grammar gives a backtick body no
// parameter list (ast.LambdaLiteral.BacktickSource carries only raw
// source text), so Cantus treats it as a niladic closure over its
// defining scope — the same role a zero-arg callback Lambda plays when
// Async "optionally invokes a callback Lambda with the result" (spec.md
// §4.G): any arguments passed at call time are simply unused.
func NewInlineBacktick(source string, closure *scope.Scope) *Lambda {
	return &Lambda{form: FormInline, backtick: source, closure: closure}
}

// Form reports which of the three shapes this Lambda wraps.
func (l *Lambda) Form() Form { return l.form }

// BuiltinName returns the wrapped built-in's name (FormBuiltin only).
func (l *Lambda) BuiltinName() string { return l.builtinName }

// IsInternal reports the built-in's internal-only flag (FormBuiltin only).
func (l *Lambda) IsInternal() bool { return l.isInternal }

// UserFunction returns the wrapped declaration (FormUserFunction only).
func (l *Lambda) UserFunction() *UserFunction { return l.userFn }

// body returns the inline expression to evaluate, lazily parsing the
// backtick source the first time it's needed.
func (l *Lambda) body() (ast.Expression, error) {
	if l.inlineBody != nil {
		return l.inlineBody, nil
	}
	expr, errs := parser.ParseExpr(l.backtick)
	if len(errs) > 0 {
		return nil, errors.New(errs[0])
	}
	l.inlineBody = expr
	return expr, nil
}

func (l *Lambda) Kind() value.Kind { return value.KindLambda }

func (l *Lambda) String() string {
	switch l.form {
	case FormBuiltin:
		return "builtin " + l.builtinName
	case FormUserFunction:
		return "function " + l.userFn.Name
	default:
		return "lambda"
	}
}

// Clone returns l itself: Lambdas are immutable callables, so aliasing
// (as internal/value.Reference.Clone already does) is correct here too.
func (l *Lambda) Clone() value.Value { return l }
