package eval

// Expression evaluation: runExpr implements the lambda.ExprRunner contract
// by walking ast.Expression nodes the way the teacher's
// evalIntegerBinaryOp/evalFloatBinaryOp/evalStringBinaryOp/
// evalBooleanBinaryOp family does (internal/interp/interpreter.go, now
// removed — see DESIGN.md): one operator switch per operand-type group,
// falling through to an "unknown operator" error for a combination no
// group claims.

import (
	"fmt"
	"math"

	"github.com/cantus-lang/cantus/internal/ast"
	"github.com/cantus-lang/cantus/internal/bigdecimal"
	"github.com/cantus-lang/cantus/internal/builtins"
	"github.com/cantus-lang/cantus/internal/class"
	"github.com/cantus-lang/cantus/internal/errors"
	"github.com/cantus-lang/cantus/internal/lambda"
	"github.com/cantus-lang/cantus/internal/matrix"
	"github.com/cantus-lang/cantus/internal/scope"
	"github.com/cantus-lang/cantus/internal/value"
)

// truthy matches internal/builtins/collections.go's convention exactly:
// only Boolean true is truthy (spec.md §3: "explicit conversion required
// elsewhere").
func truthy(v value.Value) bool {
	b, ok := v.(value.Boolean)
	return ok && b.B
}

func deref(v value.Value) value.Value {
	if r, ok := v.(*value.Reference); ok {
		if rv, err := r.Resolve(); err == nil {
			return rv
		}
	}
	return v
}

func (e *Evaluator) runExpr(sc *scope.Scope, expr ast.Expression) (value.Value, error) {
	switch n := expr.(type) {
	case *ast.Identifier:
		return e.evalIdentifier(sc, n)
	case *ast.NumberLiteral:
		d, err := bigdecimal.Parse(n.Raw)
		if err != nil {
			return value.Undef, fmt.Errorf("EvaluatorError: invalid number literal %q", n.Raw)
		}
		return value.NewNumber(d), nil
	case *ast.StringLiteral:
		return value.Text{S: n.Value}, nil
	case *ast.BoolLiteral:
		return value.Boolean{B: n.Value}, nil
	case *ast.NullLiteral:
		return value.Undef, nil
	case *ast.PrefixExpression:
		return e.evalPrefix(sc, n)
	case *ast.InfixExpression:
		return e.evalInfix(sc, n)
	case *ast.AssignExpression:
		return e.evalAssign(sc, n)
	case *ast.CallExpression:
		return e.evalCall(sc, n)
	case *ast.IndexExpression:
		ref, err := e.resolveIndex(sc, n, false)
		if err != nil {
			return value.Undef, err
		}
		return ref.Resolve()
	case *ast.MemberExpression:
		return e.evalMember(sc, n)
	case *ast.MatrixLiteral:
		return e.evalMatrixLiteral(sc, n)
	case *ast.TupleLiteral:
		return e.evalTupleLiteral(sc, n)
	case *ast.LambdaLiteral:
		return e.evalLambdaLiteral(sc, n)
	case *ast.TernaryExpression:
		cond, err := e.runExpr(sc, n.Condition)
		if err != nil {
			return value.Undef, err
		}
		if truthy(cond) {
			return e.runExpr(sc, n.Consequence)
		}
		return e.runExpr(sc, n.Alternative)
	case *ast.NewExpression:
		return e.evalNew(sc, n)
	default:
		return value.Undef, fmt.Errorf("EvaluatorError: unhandled expression %T", expr)
	}
}

func (e *Evaluator) evalIdentifier(sc *scope.Scope, n *ast.Identifier) (value.Value, error) {
	if ref, err := sc.ResolveVariable(n.Name); err == nil {
		return ref.Resolve()
	}
	if fn, err := sc.ResolveFunction(n.Name); err == nil {
		if uf, ok := fn.(*lambda.UserFunction); ok {
			return lambda.NewUserFunction(uf), nil
		}
	}
	if b, ok := builtins.Lookup(n.Name); ok {
		return lambda.NewBuiltin(b.Name, false), nil
	}
	return value.Undef, nil
}

func (e *Evaluator) evalPrefix(sc *scope.Scope, n *ast.PrefixExpression) (value.Value, error) {
	right, err := e.runExpr(sc, n.Right)
	if err != nil {
		return value.Undef, err
	}
	right = deref(right)

	switch n.Operator {
	case "-":
		switch r := right.(type) {
		case value.Number:
			return value.NewNumber(r.D.Neg()), nil
		case value.Complex:
			return value.Complex{Re: -r.Re, Im: -r.Im}, nil
		default:
			return value.Undef, nil
		}
	case "+":
		switch right.(type) {
		case value.Number, value.Complex:
			return right, nil
		default:
			return value.Undef, nil
		}
	case "!", "not":
		return value.Boolean{B: !truthy(right)}, nil
	case "~":
		iv, ok := asIntOperand(right)
		if !ok {
			return value.Undef, nil
		}
		return value.NewNumberInt(^iv), nil
	default:
		return value.Undef, fmt.Errorf("EvaluatorError: unknown prefix operator %q", n.Operator)
	}
}

func asIntOperand(v value.Value) (int64, bool) {
	n, ok := v.(value.Number)
	if !ok {
		return 0, false
	}
	i, exact := n.D.Int64()
	if !exact {
		i = int64(n.D.Float64())
	}
	return i, true
}

// evalInfix groups by operator family first (logical short-circuits
// before either operand beyond the left is evaluated; equality and
// comparison route through the canonical comparator so every tag
// orders consistently; arithmetic dispatches on the concrete operand
// types the same way the teacher's evalIntegerBinaryOp/
// evalFloatBinaryOp/evalStringBinaryOp split does).
func (e *Evaluator) evalInfix(sc *scope.Scope, n *ast.InfixExpression) (value.Value, error) {
	switch n.Operator {
	case "&&", "and":
		left, err := e.runExpr(sc, n.Left)
		if err != nil {
			return value.Undef, err
		}
		if !truthy(deref(left)) {
			return value.Boolean{B: false}, nil
		}
		right, err := e.runExpr(sc, n.Right)
		if err != nil {
			return value.Undef, err
		}
		return value.Boolean{B: truthy(deref(right))}, nil

	case "||", "or":
		left, err := e.runExpr(sc, n.Left)
		if err != nil {
			return value.Undef, err
		}
		if truthy(deref(left)) {
			return value.Boolean{B: true}, nil
		}
		right, err := e.runExpr(sc, n.Right)
		if err != nil {
			return value.Undef, err
		}
		return value.Boolean{B: truthy(deref(right))}, nil
	}

	left, err := e.runExpr(sc, n.Left)
	if err != nil {
		return value.Undef, err
	}
	right, err := e.runExpr(sc, n.Right)
	if err != nil {
		return value.Undef, err
	}
	left, right = deref(left), deref(right)

	switch n.Operator {
	case "==":
		return value.Boolean{B: value.Equal(left, right)}, nil
	case "!=":
		return value.Boolean{B: !value.Equal(left, right)}, nil
	case "<":
		return value.Boolean{B: value.Compare(left, right) < 0}, nil
	case "<=":
		return value.Boolean{B: value.Compare(left, right) <= 0}, nil
	case ">":
		return value.Boolean{B: value.Compare(left, right) > 0}, nil
	case ">=":
		return value.Boolean{B: value.Compare(left, right) >= 0}, nil
	case "&":
		l, lok := asIntOperand(left)
		r, rok := asIntOperand(right)
		if !lok || !rok {
			return value.Undef, nil
		}
		return value.NewNumberInt(l & r), nil
	case "|":
		l, lok := asIntOperand(left)
		r, rok := asIntOperand(right)
		if !lok || !rok {
			return value.Undef, nil
		}
		return value.NewNumberInt(l | r), nil
	}

	if left.Kind() == value.KindUndefined || right.Kind() == value.KindUndefined {
		return value.Undef, nil
	}

	switch l := left.(type) {
	case value.Number:
		return e.evalNumberInfix(n.Operator, l, right)
	case value.Complex:
		return evalComplexInfix(n.Operator, l, right)
	case value.Text:
		return evalTextInfix(n.Operator, l, right)
	case value.DateTime:
		return evalDateTimeInfix(n.Operator, l, right)
	case value.TimeSpan:
		return evalTimeSpanInfix(n.Operator, l, right)
	case *value.Matrix:
		return e.evalMatrixInfix(n.Operator, l, right)
	default:
		return value.Undef, nil
	}
}

// evalNumberInfix escalates to Complex for the two operations spec.md §3's
// Complex row names (even root of a negative, fractional power of a
// negative), matching internal/builtins/arithmetic.go's Sqrt/Pow
// built-ins' own escalation so `2 ^ 0.5` and `Pow(2, 0.5)` agree.
func (e *Evaluator) evalNumberInfix(op string, l value.Number, rightVal value.Value) (value.Value, error) {
	r, ok := rightVal.(value.Number)
	if !ok {
		return value.Undef, nil
	}
	switch op {
	case "+":
		return value.NewNumber(l.D.Add(r.D)), nil
	case "-":
		return value.NewNumber(l.D.Sub(r.D)), nil
	case "*":
		return value.NewNumber(l.D.Mul(r.D)), nil
	case "/":
		if r.D.Sign() == 0 {
			return value.Undef, nil
		}
		return value.NewNumber(l.D.Div(r.D)), nil
	case "%":
		lf, rf := l.D.Float64(), r.D.Float64()
		if rf == 0 {
			return value.Undef, nil
		}
		return value.NewNumber(bigdecimal.NewFromFloat64(math.Mod(lf, rf))), nil
	case "^":
		res, needsComplex := l.D.Pow(r.D)
		if needsComplex {
			bf, ef := l.D.Float64(), r.D.Float64()
			mag := math.Pow(-bf, ef)
			angle := math.Pi * ef
			return value.Complex{Re: mag * math.Cos(angle), Im: mag * math.Sin(angle)}, nil
		}
		return value.NewNumber(res), nil
	default:
		return value.Undef, fmt.Errorf("EvaluatorError: unknown operator Number %s Number", op)
	}
}

func evalComplexInfix(op string, l value.Complex, rightVal value.Value) (value.Value, error) {
	var r value.Complex
	switch rv := rightVal.(type) {
	case value.Complex:
		r = rv
	case value.Number:
		r = value.Complex{Re: rv.D.Float64(), Im: 0}
	default:
		return value.Undef, nil
	}
	switch op {
	case "+":
		return value.Complex{Re: l.Re + r.Re, Im: l.Im + r.Im}, nil
	case "-":
		return value.Complex{Re: l.Re - r.Re, Im: l.Im - r.Im}, nil
	case "*":
		return value.Complex{Re: l.Re*r.Re - l.Im*r.Im, Im: l.Re*r.Im + l.Im*r.Re}, nil
	case "/":
		denom := r.Re*r.Re + r.Im*r.Im
		if denom == 0 {
			return value.Undef, nil
		}
		return value.Complex{
			Re: (l.Re*r.Re + l.Im*r.Im) / denom,
			Im: (l.Im*r.Re - l.Re*r.Im) / denom,
		}, nil
	default:
		return value.Undef, fmt.Errorf("EvaluatorError: unknown operator Complex %s Complex", op)
	}
}

// evalTextInfix treats `+` as concatenation, matching the teacher's
// evalStringBinaryOp.
func evalTextInfix(op string, l value.Text, rightVal value.Value) (value.Value, error) {
	switch op {
	case "+":
		r, ok := rightVal.(value.Text)
		if !ok {
			return value.Text{S: l.S + rightVal.String()}, nil
		}
		return value.Text{S: l.S + r.S}, nil
	default:
		return value.Undef, fmt.Errorf("EvaluatorError: unknown operator Text %s Text", op)
	}
}

func evalDateTimeInfix(op string, l value.DateTime, rightVal value.Value) (value.Value, error) {
	switch op {
	case "+":
		switch r := rightVal.(type) {
		case value.TimeSpan:
			return value.DateTime{Ticks: l.Ticks + r.Ticks}, nil
		default:
			return value.Undef, nil
		}
	case "-":
		switch r := rightVal.(type) {
		case value.TimeSpan:
			return value.DateTime{Ticks: l.Ticks - r.Ticks}, nil
		case value.DateTime:
			return value.TimeSpan{Ticks: l.Ticks - r.Ticks}, nil
		default:
			return value.Undef, nil
		}
	default:
		return value.Undef, fmt.Errorf("EvaluatorError: unknown operator DateTime %s", op)
	}
}

func evalTimeSpanInfix(op string, l value.TimeSpan, rightVal value.Value) (value.Value, error) {
	r, ok := rightVal.(value.TimeSpan)
	if !ok {
		return value.Undef, nil
	}
	switch op {
	case "+":
		return value.TimeSpan{Ticks: l.Ticks + r.Ticks}, nil
	case "-":
		return value.TimeSpan{Ticks: l.Ticks - r.Ticks}, nil
	default:
		return value.Undef, fmt.Errorf("EvaluatorError: unknown operator TimeSpan %s TimeSpan", op)
	}
}

// evalMatrixInfix routes to internal/matrix, same as the Multiply/
// ScalarMultiply built-ins, so `a + b`/`a * b` agree with their named
// built-in equivalents.
func (e *Evaluator) evalMatrixInfix(op string, l *value.Matrix, rightVal value.Value) (value.Value, error) {
	switch op {
	case "+":
		r, ok := rightVal.(*value.Matrix)
		if !ok {
			return value.Undef, nil
		}
		return matrix.Add(l, r)
	case "-":
		r, ok := rightVal.(*value.Matrix)
		if !ok {
			return value.Undef, nil
		}
		return matrix.Sub(l, r)
	case "*":
		switch r := rightVal.(type) {
		case *value.Matrix:
			return matrix.Multiply(l, r)
		case value.Number:
			return matrix.Scale(l, r.D)
		default:
			return value.Undef, nil
		}
	default:
		return value.Undef, fmt.Errorf("EvaluatorError: unknown operator Matrix %s", op)
	}
}

func (e *Evaluator) evalAssign(sc *scope.Scope, n *ast.AssignExpression) (value.Value, error) {
	v, err := e.runExpr(sc, n.Value)
	if err != nil {
		return value.Undef, err
	}
	v = deref(v)

	switch target := n.Target.(type) {
	case *ast.Identifier:
		if ref, err := sc.ResolveVariable(target.Name); err == nil {
			if err := ref.Set(v); err != nil {
				return value.Undef, err
			}
			return v, nil
		}
		sc.DeclareVariable(target.Name, v)
		return v, nil

	case *ast.IndexExpression:
		ref, err := e.resolveIndex(sc, target, true)
		if err != nil {
			return value.Undef, err
		}
		if err := ref.Set(v); err != nil {
			return value.Undef, err
		}
		return v, nil

	case *ast.MemberExpression:
		ref, err := e.resolveMemberRef(sc, target)
		if err != nil {
			return value.Undef, err
		}
		if err := ref.Set(v); err != nil {
			return value.Undef, err
		}
		return v, nil

	default:
		return value.Undef, fmt.Errorf("EvaluatorError: invalid assignment target %T", n.Target)
	}
}

// resolveIndex returns a Reference aliasing container[index] so both
// reads and writes share one code path (spec.md §3: Matrix rows alias
// the same underlying cells their parent matrix owns). forWrite is
// unused today but kept for symmetry with resolveMemberRef, whose write
// path differs from its read path for class fields.
func (e *Evaluator) resolveIndex(sc *scope.Scope, n *ast.IndexExpression, forWrite bool) (*value.Reference, error) {
	left, err := e.runExpr(sc, n.Left)
	if err != nil {
		return nil, err
	}
	left = deref(left)
	idxVal, err := e.runExpr(sc, n.Index)
	if err != nil {
		return nil, err
	}
	idxVal = deref(idxVal)

	switch c := left.(type) {
	case *value.Matrix:
		i, ok := asIntOperand(idxVal)
		if !ok {
			return nil, fmt.Errorf("EvaluatorError: Matrix index must be a Number")
		}
		if c.Height == 1 {
			if i < 0 || int(i) >= len(c.Rows[0]) {
				return nil, fmt.Errorf("EvaluatorError: Matrix index out of range")
			}
			return c.Rows[0][i], nil
		}
		if i < 0 || int(i) >= len(c.Rows) {
			return nil, fmt.Errorf("EvaluatorError: Matrix index out of range")
		}
		// A multi-row index yields an aliased single-row submatrix: its
		// cells are the same *Reference pointers as the parent's row, so
		// `m[i][j] = x` mutates the original matrix (spec.md §3).
		row := &value.Matrix{
			Rows:   [][]*value.Reference{c.Rows[i]},
			Arena:  c.Arena,
			Height: 1,
			Width:  len(c.Rows[i]),
		}
		return c.Arena.Alloc(row), nil

	case *value.Tuple:
		i, ok := asIntOperand(idxVal)
		if !ok || i < 0 || int(i) >= len(c.Elements) {
			return nil, fmt.Errorf("EvaluatorError: Tuple index out of range")
		}
		return c.Elements[i], nil

	case *value.Set:
		return setLookupRef(c, idxVal)
	case *value.HashSet:
		return setLookupRef(&c.Set, idxVal)

	default:
		return nil, fmt.Errorf("EvaluatorError: %s is not indexable", left.Kind())
	}
}

// setLookupRef returns the value Reference keyed by key in a Set/HashSet,
// allocating an Undefined-valued cell on first write (spec.md §3: Set row
// "key -> optional value").
func setLookupRef(s *value.Set, key value.Value) (*value.Reference, error) {
	for _, entry := range s.Entries() {
		k, _ := entry.Key.Resolve()
		if value.Equal(k, key) && entry.Value != nil {
			return entry.Value, nil
		}
	}
	s.InsertKeyed(key, value.Undef)
	for _, entry := range s.Entries() {
		k, _ := entry.Key.Resolve()
		if value.Equal(k, key) {
			return entry.Value, nil
		}
	}
	return nil, fmt.Errorf("EvaluatorError: key lookup failed")
}

func (e *Evaluator) evalMember(sc *scope.Scope, n *ast.MemberExpression) (value.Value, error) {
	ci, err := e.classInstanceOf(sc, n)
	if err != nil {
		return value.Undef, err
	}
	if ref, err := ci.Field(n.Member); err == nil {
		return ref.Resolve()
	}
	if m, ok := ci.Class.Method(n.Member); ok {
		return bindMethod(m, ci), nil
	}
	return value.Undef, class.ErrNoSuchMember
}

func (e *Evaluator) classInstanceOf(sc *scope.Scope, n *ast.MemberExpression) (*class.ClassInstance, error) {
	obj, err := e.runExpr(sc, n.Object)
	if err != nil {
		return nil, err
	}
	ci, ok := deref(obj).(*class.ClassInstance)
	if !ok {
		return nil, class.ErrNoSuchMember
	}
	return ci, nil
}

// resolveMemberRef resolves an lvalue field assignment target; method
// names are never valid assignment targets.
func (e *Evaluator) resolveMemberRef(sc *scope.Scope, n *ast.MemberExpression) (*value.Reference, error) {
	ci, err := e.classInstanceOf(sc, n)
	if err != nil {
		return nil, err
	}
	return ci.Field(n.Member)
}

// bindMethod re-binds a method's closure to the calling instance's own
// inner scope (spec.md §4.H: methods are "re-bound to each instance's
// inner scope at call time, not baked in at class-declaration time") by
// constructing a fresh UserFunction copy rather than mutating the class's
// stored template, which is shared across every instance.
func bindMethod(m *lambda.Lambda, ci *class.ClassInstance) *lambda.Lambda {
	uf := m.UserFunction()
	bound := &lambda.UserFunction{Name: uf.Name, Params: uf.Params, Body: uf.Body, Closure: ci.Inner}
	return lambda.NewUserFunction(bound)
}

func (e *Evaluator) evalCall(sc *scope.Scope, n *ast.CallExpression) (value.Value, error) {
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := e.runExpr(sc, a)
		if err != nil {
			return value.Undef, err
		}
		args[i] = deref(v)
	}
	var kwargs map[string]value.Value
	if len(n.KwArgs) > 0 {
		kwargs = make(map[string]value.Value, len(n.KwArgs))
		for name, expr := range n.KwArgs {
			v, err := e.runExpr(sc, expr)
			if err != nil {
				return value.Undef, err
			}
			kwargs[name] = deref(v)
		}
	}

	// A method call `obj.Method(args)` dispatches directly against the
	// instance rather than evaluating Callee as a free-standing
	// expression, since bindMethod needs the instance to rebind the
	// method's closure.
	if member, ok := n.Callee.(*ast.MemberExpression); ok {
		if ci, err := e.classInstanceOf(sc, member); err == nil {
			if m, ok := ci.Class.Method(member.Member); ok {
				bound := bindMethod(m, ci)
				return e.invokeAndFrame(bound, n, args, kwargs)
			}
		}
	}

	callee, err := e.runExpr(sc, n.Callee)
	if err != nil {
		return value.Undef, err
	}
	l, ok := deref(callee).(*lambda.Lambda)
	if !ok {
		return value.Undef, fmt.Errorf("EvaluatorError: %s is not callable", callee.Kind())
	}
	return e.invokeAndFrame(l, n, args, kwargs)
}

// invokeAndFrame calls l and, on failure, records the call site as a
// stack frame (spec.md §4.J's task/function-call model) so a failure
// deep in nested calls reports every frame it unwound through, the same
// way a native stack trace would.
func (e *Evaluator) invokeAndFrame(l *lambda.Lambda, n *ast.CallExpression, args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	result, err := l.Invoke(args, kwargs, e.callBuiltin, e.runBody, e.runExpr)
	if err != nil {
		pos := n.Pos()
		return value.Undef, errors.WithFrame(err, errors.NewStackFrame(l.String(), e.File, &pos))
	}
	return result, nil
}

func (e *Evaluator) evalMatrixLiteral(sc *scope.Scope, n *ast.MatrixLiteral) (value.Value, error) {
	rows := make([][]value.Value, len(n.Rows))
	for i, row := range n.Rows {
		vals := make([]value.Value, len(row))
		for j, expr := range row {
			v, err := e.runExpr(sc, expr)
			if err != nil {
				return value.Undef, err
			}
			vals[j] = deref(v)
		}
		rows[i] = vals
	}
	m := value.NewMatrix(rows)
	m.Normalize()
	return m, nil
}

func (e *Evaluator) evalTupleLiteral(sc *scope.Scope, n *ast.TupleLiteral) (value.Value, error) {
	vals := make([]value.Value, len(n.Elements))
	for i, expr := range n.Elements {
		v, err := e.runExpr(sc, expr)
		if err != nil {
			return value.Undef, err
		}
		vals[i] = deref(v)
	}
	return value.NewTuple(vals), nil
}

func (e *Evaluator) evalLambdaLiteral(sc *scope.Scope, n *ast.LambdaLiteral) (value.Value, error) {
	if n.BacktickSource != "" {
		return lambda.NewInlineBacktick(n.BacktickSource, sc), nil
	}
	return lambda.NewInline(n.Params, n.Body, sc), nil
}

func (e *Evaluator) evalNew(sc *scope.Scope, n *ast.NewExpression) (value.Value, error) {
	clsAny, err := sc.ResolveClass(n.ClassName)
	if err != nil {
		return value.Undef, fmt.Errorf("EvaluatorError: unknown class %q", n.ClassName)
	}
	cls, ok := clsAny.(*class.UserClass)
	if !ok {
		return value.Undef, fmt.Errorf("EvaluatorError: %q is not a class", n.ClassName)
	}
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := e.runExpr(sc, a)
		if err != nil {
			return value.Undef, err
		}
		args[i] = deref(v)
	}
	return class.Init(cls, args, nil, e.callBuiltin, e.runBody, e.runExpr)
}
