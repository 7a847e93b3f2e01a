// Package parser implements the Cantus recursive-descent parser: the
// concrete Parser collaborator described in spec.md §6, generalized from
// the teacher's Pascal-grammar parser to Cantus's expression/script
// grammar (operator-precedence expression parsing plus `let`/`function`/
// `class`/`if`/`while`/`for`/`return`/`import` statements).
package parser

import (
	"fmt"

	"github.com/cantus-lang/cantus/internal/ast"
	"github.com/cantus-lang/cantus/internal/lexer"
)

const (
	_ int = iota
	LOWEST
	TERNARY
	LOGIC_OR
	LOGIC_AND
	EQUALITY
	COMPARISON
	BIT_OR
	BIT_AND
	ADDITIVE
	MULTIPLICATIVE
	UNARY
	POWER
	POSTFIX // call, index, member
)

var precedences = map[lexer.TokenType]int{
	lexer.QUESTION: TERNARY,
	lexer.OR:       LOGIC_OR,
	lexer.AND:      LOGIC_AND,
	lexer.EQ:       EQUALITY,
	lexer.NEQ:      EQUALITY,
	lexer.LT:       COMPARISON,
	lexer.LTE:      COMPARISON,
	lexer.GT:       COMPARISON,
	lexer.GTE:      COMPARISON,
	lexer.PIPE:     BIT_OR,
	lexer.AMP:      BIT_AND,
	lexer.PLUS:     ADDITIVE,
	lexer.MINUS:    ADDITIVE,
	lexer.STAR:     MULTIPLICATIVE,
	lexer.SLASH:    MULTIPLICATIVE,
	lexer.PERCENT:  MULTIPLICATIVE,
	lexer.CARET:    POWER,
	lexer.LPAREN:   POSTFIX,
	lexer.LBRACKET: POSTFIX,
	lexer.DOT:      POSTFIX,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser consumes a token stream from the Lexer and builds an ast.Program.
type Parser struct {
	l *lexer.Lexer

	cur  lexer.Token
	peek lexer.Token

	errors []string

	prefixFns map[lexer.TokenType]prefixParseFn
	infixFns  map[lexer.TokenType]infixParseFn
}

// New creates a Parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.prefixFns = map[lexer.TokenType]prefixParseFn{
		lexer.IDENT:           p.parseIdentifier,
		lexer.NUMBER:          p.parseNumberLiteral,
		lexer.STRING:          p.parseStringLiteral,
		lexer.BACKTICK_STRING: p.parseBacktickLambda,
		lexer.TRUE:            p.parseBoolLiteral,
		lexer.FALSE:           p.parseBoolLiteral,
		lexer.NULLLIT:         p.parseNullLiteral,
		lexer.MINUS:           p.parsePrefixExpression,
		lexer.NOT:             p.parsePrefixExpression,
		lexer.TILDE:           p.parsePrefixExpression,
		lexer.LPAREN:          p.parseGroupedOrTuple,
		lexer.LBRACKET:        p.parseMatrixLiteral,
		lexer.LAMBDA:          p.parseLambdaLiteral,
		lexer.NEW:             p.parseNewExpression,
	}
	p.infixFns = map[lexer.TokenType]infixParseFn{
		lexer.PLUS:     p.parseInfixExpression,
		lexer.MINUS:    p.parseInfixExpression,
		lexer.STAR:     p.parseInfixExpression,
		lexer.SLASH:    p.parseInfixExpression,
		lexer.PERCENT:  p.parseInfixExpression,
		lexer.CARET:    p.parsePowExpression,
		lexer.EQ:       p.parseInfixExpression,
		lexer.NEQ:      p.parseInfixExpression,
		lexer.LT:       p.parseInfixExpression,
		lexer.LTE:      p.parseInfixExpression,
		lexer.GT:       p.parseInfixExpression,
		lexer.GTE:      p.parseInfixExpression,
		lexer.AND:      p.parseInfixExpression,
		lexer.OR:       p.parseInfixExpression,
		lexer.AMP:      p.parseInfixExpression,
		lexer.PIPE:     p.parseInfixExpression,
		lexer.LPAREN:   p.parseCallExpression,
		lexer.LBRACKET: p.parseIndexExpression,
		lexer.DOT:      p.parseMemberExpression,
		lexer.QUESTION: p.parseTernaryExpression,
	}

	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns accumulated syntax errors.
func (p *Parser) Errors() []string { return p.errors }

func (p *Parser) nextToken() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) curIs(t lexer.TokenType) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t lexer.TokenType) bool { return p.peek.Type == t }

func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if p.peekIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t lexer.TokenType) {
	p.errors = append(p.errors, fmt.Sprintf("line %d: expected next token to be %d, got %d (%q)",
		p.peek.Pos.Line, t, p.peek.Type, p.peek.Literal))
}

func (p *Parser) skipNewlines() {
	for p.curIs(lexer.NEWLINE) || p.curIs(lexer.SEMI) {
		p.nextToken()
	}
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peek.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.cur.Type]; ok {
		return pr
	}
	return LOWEST
}

// ParseProgram implements parse_script(text) -> Vec<Statement> (§6).
func ParseProgram(source string) (*ast.Program, []string) {
	p := New(lexer.New(source))
	prog := p.parseProgram()
	return prog, p.Errors()
}

// ParseExpr implements parse_expr(text) -> Expr (§6).
func ParseExpr(source string) (ast.Expression, []string) {
	p := New(lexer.New(source))
	p.skipNewlines()
	expr := p.parseExpression(LOWEST)
	return expr, p.Errors()
}

func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	p.skipNewlines()
	for !p.curIs(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		p.skipNewlines()
	}
	return prog
}

func (p *Parser) parseBlockUntil(terminators ...lexer.TokenType) []ast.Statement {
	var stmts []ast.Statement
	p.skipNewlines()
	for !p.curIs(lexer.EOF) && !p.curIsAny(terminators...) {
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.skipNewlines()
	}
	return stmts
}

func (p *Parser) curIsAny(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.curIs(t) {
			return true
		}
	}
	return false
}
