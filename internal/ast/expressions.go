package ast

import (
	"strings"

	"github.com/cantus-lang/cantus/internal/lexer"
)

func (*Identifier) expressionNode()        {}
func (*NumberLiteral) expressionNode()     {}
func (*StringLiteral) expressionNode()     {}
func (*BoolLiteral) expressionNode()       {}
func (*NullLiteral) expressionNode()       {}
func (*PrefixExpression) expressionNode()  {}
func (*InfixExpression) expressionNode()   {}
func (*AssignExpression) expressionNode()  {}
func (*CallExpression) expressionNode()    {}
func (*IndexExpression) expressionNode()   {}
func (*MemberExpression) expressionNode()  {}
func (*MatrixLiteral) expressionNode()     {}
func (*TupleLiteral) expressionNode()      {}
func (*LambdaLiteral) expressionNode()     {}
func (*TernaryExpression) expressionNode() {}
func (*NewExpression) expressionNode()     {}

// Identifier references a variable, function, or class by name.
type Identifier struct {
	Token lexer.Token
	Name  string
}

func (i *Identifier) TokenLiteral() string   { return i.Token.Literal }
func (i *Identifier) Pos() lexer.Position    { return i.Token.Pos }
func (i *Identifier) String() string         { return i.Name }

// NumberLiteral is a decimal literal; the evaluator widens it to BigDecimal.
type NumberLiteral struct {
	Token lexer.Token
	Raw   string // exact source text, preserved for sig-fig tracking
}

func (n *NumberLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NumberLiteral) Pos() lexer.Position  { return n.Token.Pos }
func (n *NumberLiteral) String() string       { return n.Raw }

// StringLiteral is a quoted Text literal.
type StringLiteral struct {
	Token lexer.Token
	Value string
}

func (s *StringLiteral) TokenLiteral() string { return s.Token.Literal }
func (s *StringLiteral) Pos() lexer.Position  { return s.Token.Pos }
func (s *StringLiteral) String() string       { return "\"" + s.Value + "\"" }

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	Token lexer.Token
	Value bool
}

func (b *BoolLiteral) TokenLiteral() string { return b.Token.Literal }
func (b *BoolLiteral) Pos() lexer.Position  { return b.Token.Pos }
func (b *BoolLiteral) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// NullLiteral is `null`/`undefined`, evaluating to the Undefined value.
type NullLiteral struct{ Token lexer.Token }

func (n *NullLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NullLiteral) Pos() lexer.Position  { return n.Token.Pos }
func (n *NullLiteral) String() string       { return "undefined" }

// PrefixExpression is a unary operator applied to a single operand (-x, !x, not x, ~x).
type PrefixExpression struct {
	Token    lexer.Token
	Operator string
	Right    Expression
}

func (p *PrefixExpression) TokenLiteral() string { return p.Token.Literal }
func (p *PrefixExpression) Pos() lexer.Position  { return p.Token.Pos }
func (p *PrefixExpression) String() string       { return "(" + p.Operator + p.Right.String() + ")" }

// InfixExpression is a binary operator expression.
type InfixExpression struct {
	Token    lexer.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (e *InfixExpression) TokenLiteral() string { return e.Token.Literal }
func (e *InfixExpression) Pos() lexer.Position  { return e.Token.Pos }
func (e *InfixExpression) String() string {
	return "(" + e.Left.String() + " " + e.Operator + " " + e.Right.String() + ")"
}

// AssignExpression is `target = value`; target must be an lvalue
// (Identifier, IndexExpression, or MemberExpression).
type AssignExpression struct {
	Token  lexer.Token
	Target Expression
	Value  Expression
}

func (a *AssignExpression) TokenLiteral() string { return a.Token.Literal }
func (a *AssignExpression) Pos() lexer.Position  { return a.Token.Pos }
func (a *AssignExpression) String() string {
	return a.Target.String() + " = " + a.Value.String()
}

// CallExpression invokes a Lambda (built-in or user-defined) by name or by
// evaluating Callee to a Lambda value.
type CallExpression struct {
	Token     lexer.Token
	Callee    Expression
	Args      []Expression
	KwArgs    map[string]Expression // trailing named-arguments map, §4.F
}

func (c *CallExpression) TokenLiteral() string { return c.Token.Literal }
func (c *CallExpression) Pos() lexer.Position  { return c.Token.Pos }
func (c *CallExpression) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}

// IndexExpression is `container[index]`.
type IndexExpression struct {
	Token lexer.Token
	Left  Expression
	Index Expression
}

func (e *IndexExpression) TokenLiteral() string { return e.Token.Literal }
func (e *IndexExpression) Pos() lexer.Position  { return e.Token.Pos }
func (e *IndexExpression) String() string {
	return e.Left.String() + "[" + e.Index.String() + "]"
}

// MemberExpression is `object.member` (field or method access on a ClassInstance).
type MemberExpression struct {
	Token  lexer.Token
	Object Expression
	Member string
}

func (e *MemberExpression) TokenLiteral() string { return e.Token.Literal }
func (e *MemberExpression) Pos() lexer.Position  { return e.Token.Pos }
func (e *MemberExpression) String() string       { return e.Object.String() + "." + e.Member }

// MatrixLiteral is `[a, b, c]` or a nested `[[...],[...]]` row-major matrix.
type MatrixLiteral struct {
	Token lexer.Token
	Rows  [][]Expression // single-row literal produces Rows[0]
}

func (m *MatrixLiteral) TokenLiteral() string { return m.Token.Literal }
func (m *MatrixLiteral) Pos() lexer.Position  { return m.Token.Pos }
func (m *MatrixLiteral) String() string       { return "[matrix literal]" }

// TupleLiteral is `(a, b, c)` with more than one element.
type TupleLiteral struct {
	Token    lexer.Token
	Elements []Expression
}

func (t *TupleLiteral) TokenLiteral() string { return t.Token.Literal }
func (t *TupleLiteral) Pos() lexer.Position  { return t.Token.Pos }
func (t *TupleLiteral) String() string       { return "(tuple)" }

// LambdaLiteral constructs an inline Lambda value. Exactly one of Params+Body
// (arrow form `lambda(x, y) => expr`) or BacktickSource (raw `` `expr` `` form,
// parsed lazily by the evaluator on first call) is populated.
type LambdaLiteral struct {
	Token         lexer.Token
	Params        []string
	Body          Expression
	BacktickSource string
}

func (l *LambdaLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *LambdaLiteral) Pos() lexer.Position  { return l.Token.Pos }
func (l *LambdaLiteral) String() string       { return "lambda" }

// TernaryExpression is `cond ? a : b`.
type TernaryExpression struct {
	Token       lexer.Token
	Condition   Expression
	Consequence Expression
	Alternative Expression
}

func (t *TernaryExpression) TokenLiteral() string { return t.Token.Literal }
func (t *TernaryExpression) Pos() lexer.Position  { return t.Token.Pos }
func (t *TernaryExpression) String() string {
	return "(" + t.Condition.String() + " ? " + t.Consequence.String() + " : " + t.Alternative.String() + ")"
}

// NewExpression constructs a ClassInstance: `new ClassName(args...)`.
type NewExpression struct {
	Token     lexer.Token
	ClassName string
	Args      []Expression
}

func (n *NewExpression) TokenLiteral() string { return n.Token.Literal }
func (n *NewExpression) Pos() lexer.Position  { return n.Token.Pos }
func (n *NewExpression) String() string       { return "new " + n.ClassName + "(...)" }
