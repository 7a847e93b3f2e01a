package parser

import (
	"github.com/cantus-lang/cantus/internal/ast"
	"github.com/cantus-lang/cantus/internal/lexer"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix, ok := p.prefixFns[p.cur.Type]
	if !ok {
		p.errors = append(p.errors, "no prefix parse function for token type "+p.cur.Literal)
		return nil
	}
	left := prefix()

	for !p.peekIs(lexer.NEWLINE) && precedence < p.peekPrecedence() {
		infix, ok := p.infixFns[p.peek.Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	ident := &ast.Identifier{Token: p.cur, Name: p.cur.Literal}
	if p.peekIs(lexer.ASSIGN) {
		p.nextToken()
		tok := p.cur
		p.nextToken()
		value := p.parseExpression(LOWEST)
		return &ast.AssignExpression{Token: tok, Target: ident, Value: value}
	}
	return ident
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	return &ast.NumberLiteral{Token: p.cur, Raw: p.cur.Literal}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.cur, Value: p.cur.Literal}
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	return &ast.BoolLiteral{Token: p.cur, Value: p.cur.Type == lexer.TRUE}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	return &ast.NullLiteral{Token: p.cur}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expr := &ast.PrefixExpression{Token: p.cur, Operator: p.cur.Literal}
	p.nextToken()
	expr.Right = p.parseExpression(UNARY)
	return expr
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expr := &ast.InfixExpression{Token: p.cur, Left: left, Operator: p.cur.Literal}
	precedence := p.curPrecedence()
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	return expr
}

// parsePowExpression makes `^` right-associative: 2^3^2 == 2^(3^2).
func (p *Parser) parsePowExpression(left ast.Expression) ast.Expression {
	expr := &ast.InfixExpression{Token: p.cur, Left: left, Operator: "^"}
	p.nextToken()
	expr.Right = p.parseExpression(POWER - 1)
	return expr
}

func (p *Parser) parseTernaryExpression(cond ast.Expression) ast.Expression {
	tok := p.cur
	p.nextToken()
	cons := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.COLON) {
		return nil
	}
	p.nextToken()
	alt := p.parseExpression(TERNARY)
	return &ast.TernaryExpression{Token: tok, Condition: cond, Consequence: cons, Alternative: alt}
}

// parseGroupedOrTuple handles `(expr)` and `(a, b, c)`.
func (p *Parser) parseGroupedOrTuple() ast.Expression {
	tok := p.cur
	p.nextToken()
	first := p.parseExpression(LOWEST)
	if !p.peekIs(lexer.COMMA) {
		if !p.expectPeek(lexer.RPAREN) {
			return nil
		}
		return first
	}
	elems := []ast.Expression{first}
	for p.peekIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		elems = append(elems, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return &ast.TupleLiteral{Token: tok, Elements: elems}
}

func (p *Parser) parseMatrixLiteral() ast.Expression {
	tok := p.cur
	var rows [][]ast.Expression
	p.nextToken()
	if p.curIs(lexer.RBRACKET) {
		return &ast.MatrixLiteral{Token: tok, Rows: rows}
	}
	if p.curIs(lexer.LBRACKET) {
		// nested rows: [[1,2],[3,4]]
		for {
			row := p.parseExpressionList(lexer.LBRACKET, lexer.RBRACKET)
			rows = append(rows, row)
			if !p.peekIs(lexer.COMMA) {
				break
			}
			p.nextToken()
			p.nextToken()
		}
		if !p.expectPeek(lexer.RBRACKET) {
			return nil
		}
		return &ast.MatrixLiteral{Token: tok, Rows: rows}
	}
	row := []ast.Expression{p.parseExpression(LOWEST)}
	for p.peekIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		row = append(row, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(lexer.RBRACKET) {
		return nil
	}
	return &ast.MatrixLiteral{Token: tok, Rows: [][]ast.Expression{row}}
}

// parseExpressionList parses `[e, e, e]` assuming p.cur is the opening bracket.
func (p *Parser) parseExpressionList(open, close lexer.TokenType) []ast.Expression {
	var list []ast.Expression
	if !p.curIs(open) {
		return list
	}
	p.nextToken()
	if p.curIs(close) {
		return list
	}
	list = append(list, p.parseExpression(LOWEST))
	for p.peekIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}
	p.expectPeek(close)
	return list
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	expr := &ast.CallExpression{Token: p.cur, Callee: callee}
	expr.Args, expr.KwArgs = p.parseCallArguments()
	return expr
}

func (p *Parser) parseCallArguments() ([]ast.Expression, map[string]ast.Expression) {
	var args []ast.Expression
	var kwargs map[string]ast.Expression
	if p.peekIs(lexer.RPAREN) {
		p.nextToken()
		return args, kwargs
	}
	p.nextToken()
	for {
		// named-argument form: `name: expr`
		if p.curIs(lexer.IDENT) && p.peekIs(lexer.COLON) {
			name := p.cur.Literal
			p.nextToken()
			p.nextToken()
			if kwargs == nil {
				kwargs = map[string]ast.Expression{}
			}
			kwargs[name] = p.parseExpression(LOWEST)
		} else {
			args = append(args, p.parseExpression(LOWEST))
		}
		if !p.peekIs(lexer.COMMA) {
			break
		}
		p.nextToken()
		p.nextToken()
	}
	if !p.expectPeek(lexer.RPAREN) {
		return args, kwargs
	}
	return args, kwargs
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	expr := &ast.IndexExpression{Token: p.cur, Left: left}
	p.nextToken()
	expr.Index = p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RBRACKET) {
		return nil
	}
	return expr
}

func (p *Parser) parseMemberExpression(left ast.Expression) ast.Expression {
	expr := &ast.MemberExpression{Token: p.cur, Object: left}
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	expr.Member = p.cur.Literal
	if p.peekIs(lexer.ASSIGN) {
		p.nextToken()
		tok := p.cur
		p.nextToken()
		value := p.parseExpression(LOWEST)
		return &ast.AssignExpression{Token: tok, Target: expr, Value: value}
	}
	return expr
}

// parseLambdaLiteral parses `lambda(params) => expr`, the explicit-keyword
// alternative to a backtick-quoted inline body (spec.md §4.G case iii).
func (p *Parser) parseLambdaLiteral() ast.Expression {
	lit := &ast.LambdaLiteral{Token: p.cur}
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	if !p.peekIs(lexer.RPAREN) {
		p.nextToken()
		lit.Params = append(lit.Params, p.cur.Literal)
		for p.peekIs(lexer.COMMA) {
			p.nextToken()
			p.nextToken()
			lit.Params = append(lit.Params, p.cur.Literal)
		}
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	if !p.expectPeek(lexer.ARROW) {
		return nil
	}
	p.nextToken()
	lit.Body = p.parseExpression(LOWEST)
	return lit
}

// parseNewExpression parses `new ClassName(args...)`.
func (p *Parser) parseNewExpression() ast.Expression {
	expr := &ast.NewExpression{Token: p.cur}
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	expr.ClassName = p.cur.Literal
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	expr.Args, _ = p.parseCallArguments()
	return expr
}

// parseBacktickLambda parses an inline lambda body surrounded by backticks
// (spec.md §4.G, §6): the evaluator caches the parsed AST on first
// invocation, so at parse time only the raw source text is captured.
func (p *Parser) parseBacktickLambda() ast.Expression {
	return &ast.LambdaLiteral{Token: p.cur, BacktickSource: p.cur.Literal}
}
