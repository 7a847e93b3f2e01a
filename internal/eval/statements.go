package eval

// Statement execution: runBody implements the lambda.BodyRunner contract
// (spec.md §4.G step 3-4: "invoke body through Evaluator... On Return,
// unwind to the child scope's frame") by walking ast.Statement nodes the
// way the teacher's Interpreter.Eval/evalProgram does
// (internal/interp/interpreter.go, now removed — see DESIGN.md), adapted
// from its Value-carries-its-own-error-or-return-signal shape to the
// explicit (value, returned, error) tuple internal/lambda.BodyRunner
// already commits this evaluator to.

import (
	"fmt"

	"github.com/cantus-lang/cantus/internal/ast"
	"github.com/cantus-lang/cantus/internal/class"
	"github.com/cantus-lang/cantus/internal/lambda"
	"github.com/cantus-lang/cantus/internal/scope"
	"github.com/cantus-lang/cantus/internal/value"
)

// runBody is the lambda.BodyRunner this Evaluator supplies: execute
// stmts against sc in order, polling cancellation before each one, and
// stopping and reporting true at the first Return (spec.md §4.G step 4).
func (e *Evaluator) runBody(sc *scope.Scope, stmts []ast.Statement) (value.Value, bool, error) {
	var last value.Value = value.Undef
	for _, stmt := range stmts {
		if err := e.checkCancelled(); err != nil {
			return value.Undef, false, err
		}
		v, returned, err := e.execStatement(sc, stmt)
		if err != nil {
			return value.Undef, false, err
		}
		if returned {
			return v, true, nil
		}
		last = v
	}
	return last, false, nil
}

func (e *Evaluator) execStatement(sc *scope.Scope, stmt ast.Statement) (value.Value, bool, error) {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		v, err := e.runExpr(sc, s.Value)
		if err != nil {
			return value.Undef, false, err
		}
		sc.DeclareVariable(s.Name, v)
		return value.Undef, false, nil

	case *ast.FunctionStatement:
		fn := &lambda.UserFunction{Name: s.Name, Params: s.Params, Body: s.Body, Closure: sc}
		sc.DeclareFunction(s.Name, fn)
		return value.Undef, false, nil

	case *ast.ClassStatement:
		cls, err := e.buildClass(sc, s)
		if err != nil {
			return value.Undef, false, err
		}
		sc.DeclareClass(s.Name, cls)
		return value.Undef, false, nil

	case *ast.IfStatement:
		return e.execIf(sc, s)

	case *ast.WhileStatement:
		return e.execWhile(sc, s)

	case *ast.ForStatement:
		return e.execFor(sc, s)

	case *ast.ReturnStatement:
		if s.Value == nil {
			return value.Undef, true, nil
		}
		v, err := e.runExpr(sc, s.Value)
		if err != nil {
			return value.Undef, false, err
		}
		return v, true, nil

	case *ast.ImportStatement:
		// Module resolution is a host concern (spec.md §6): the evaluator
		// ignores the statement, which evaluates to Undefined.
		return value.Undef, false, nil

	case *ast.ExpressionStatement:
		if s.Expression == nil {
			return value.Undef, false, nil
		}
		v, err := e.runExpr(sc, s.Expression)
		if err != nil {
			return value.Undef, false, err
		}
		return v, false, nil

	default:
		return value.Undef, false, fmt.Errorf("EvaluatorError: unhandled statement %T", stmt)
	}
}

func (e *Evaluator) execIf(sc *scope.Scope, s *ast.IfStatement) (value.Value, bool, error) {
	cond, err := e.runExpr(sc, s.Condition)
	if err != nil {
		return value.Undef, false, err
	}
	if truthy(cond) {
		return e.runBody(sc, s.Consequence)
	}
	for _, clause := range s.ElifClauses {
		cv, err := e.runExpr(sc, clause.Condition)
		if err != nil {
			return value.Undef, false, err
		}
		if truthy(cv) {
			return e.runBody(sc, clause.Body)
		}
	}
	if s.Alternative != nil {
		return e.runBody(sc, s.Alternative)
	}
	return value.Undef, false, nil
}

func (e *Evaluator) execWhile(sc *scope.Scope, s *ast.WhileStatement) (value.Value, bool, error) {
	var last value.Value = value.Undef
	for {
		if err := e.checkCancelled(); err != nil {
			return value.Undef, false, err
		}
		cond, err := e.runExpr(sc, s.Condition)
		if err != nil {
			return value.Undef, false, err
		}
		if !truthy(cond) {
			return last, false, nil
		}
		v, returned, err := e.runBody(sc, s.Body)
		if err != nil {
			return value.Undef, false, err
		}
		if returned {
			return v, true, nil
		}
		last = v
	}
}

// execFor implements `for i = a to b [step s] ... end` (spec.md §6). The
// loop variable is declared directly in sc, matching the teacher's
// unscoped for-loop variable (DWScript's for-loop counter lives in the
// enclosing routine, not a block of its own).
func (e *Evaluator) execFor(sc *scope.Scope, s *ast.ForStatement) (value.Value, bool, error) {
	startV, err := e.runExpr(sc, s.Start)
	if err != nil {
		return value.Undef, false, err
	}
	endV, err := e.runExpr(sc, s.End)
	if err != nil {
		return value.Undef, false, err
	}
	start, ok1 := startV.(value.Number)
	end, ok2 := endV.(value.Number)
	if !ok1 || !ok2 {
		return value.Undef, false, fmt.Errorf("EvaluatorError: for-loop bounds must be numbers")
	}
	step := bigdecimalOne
	if s.Step != nil {
		stepV, err := e.runExpr(sc, s.Step)
		if err != nil {
			return value.Undef, false, err
		}
		stepN, ok := stepV.(value.Number)
		if !ok {
			return value.Undef, false, fmt.Errorf("EvaluatorError: for-loop step must be a number")
		}
		step = stepN.D
	}

	var last value.Value = value.Undef
	cur := start.D
	descending := step.Sign() < 0
	for {
		if err := e.checkCancelled(); err != nil {
			return value.Undef, false, err
		}
		if descending {
			if cur.Compare(end.D, 1e-12) < 0 {
				break
			}
		} else {
			if cur.Compare(end.D, 1e-12) > 0 {
				break
			}
		}
		sc.DeclareVariable(s.Var, value.NewNumber(cur))
		v, returned, err := e.runBody(sc, s.Body)
		if err != nil {
			return value.Undef, false, err
		}
		if returned {
			return v, true, nil
		}
		last = v
		cur = cur.Add(step)
	}
	return last, false, nil
}

// buildClass constructs a class.UserClass from a parsed ClassStatement
// (spec.md §4.H): the constructor and every method become Lambdas closing
// over the class's defining scope, and methods are re-bound against each
// instance's own inner scope at call time (see evalCall's method-call
// branch in expressions.go).
func (e *Evaluator) buildClass(sc *scope.Scope, s *ast.ClassStatement) (*class.UserClass, error) {
	cls := &class.UserClass{
		Name:          s.Name,
		Fields:        s.Fields,
		Methods:       map[string]*lambda.Lambda{},
		DefiningScope: sc,
	}
	if s.Constructor != nil {
		cls.Constructor = lambda.NewUserFunction(&lambda.UserFunction{
			Name:    s.Constructor.Name,
			Params:  s.Constructor.Params,
			Body:    s.Constructor.Body,
			Closure: sc,
		})
	}
	for _, m := range s.Methods {
		cls.MethodNames = append(cls.MethodNames, m.Name)
		cls.Methods[m.Name] = lambda.NewUserFunction(&lambda.UserFunction{
			Name:    m.Name,
			Params:  m.Params,
			Body:    m.Body,
			Closure: sc,
		})
	}
	return cls, nil
}
