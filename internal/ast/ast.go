// Package ast defines the Cantus abstract syntax tree: the product of the
// Parser collaborator described in spec.md §6. The Evaluator core (internal/eval)
// walks these nodes; it never sees source text directly except for
// backtick-quoted inline lambda bodies, which it parses lazily itself.
package ast

import "github.com/cantus-lang/cantus/internal/lexer"

// Node is the base of every AST node.
type Node interface {
	TokenLiteral() string
	Pos() lexer.Position
	String() string
}

// Expression is a node that produces a Value when evaluated.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// Program is the root node produced by parse_script.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}
func (p *Program) Pos() lexer.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return lexer.Position{}
}
func (p *Program) String() string {
	out := ""
	for _, s := range p.Statements {
		out += s.String() + "\n"
	}
	return out
}
