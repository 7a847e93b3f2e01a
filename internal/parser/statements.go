package parser

import (
	"github.com/cantus-lang/cantus/internal/ast"
	"github.com/cantus-lang/cantus/internal/lexer"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case lexer.LET:
		return p.parseLetStatement()
	case lexer.FUNCTION:
		return p.parseFunctionStatement()
	case lexer.CLASS:
		return p.parseClassStatement()
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.WHILE:
		return p.parseWhileStatement()
	case lexer.FOR:
		return p.parseForStatement()
	case lexer.RETURN:
		return p.parseReturnStatement()
	case lexer.IMPORT:
		return p.parseImportStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLetStatement() ast.Statement {
	stmt := &ast.LetStatement{Token: p.cur}
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	stmt.Name = p.cur.Literal
	if p.peekIs(lexer.COLON) {
		p.nextToken()
		if !p.expectPeek(lexer.IDENT) {
			return nil
		}
		stmt.ClassName = p.cur.Literal
	}
	if !p.expectPeek(lexer.ASSIGN) {
		return nil
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	p.nextToken()
	return stmt
}

func (p *Parser) parseParamList() []ast.Param {
	var params []ast.Param
	if !p.expectPeek(lexer.LPAREN) {
		return params
	}
	if p.peekIs(lexer.RPAREN) {
		p.nextToken()
		return params
	}
	p.nextToken()
	for {
		param := ast.Param{Name: p.cur.Literal}
		if p.peekIs(lexer.ASSIGN) {
			p.nextToken()
			p.nextToken()
			param.Default = p.parseExpression(LOWEST)
		}
		params = append(params, param)
		if !p.peekIs(lexer.COMMA) {
			break
		}
		p.nextToken()
		p.nextToken()
	}
	if !p.expectPeek(lexer.RPAREN) {
		return params
	}
	return params
}

func (p *Parser) parseFunctionStatement() ast.Statement {
	stmt := &ast.FunctionStatement{Token: p.cur}
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	stmt.Name = p.cur.Literal
	stmt.Params = p.parseParamList()
	stmt.Body = p.parseBlockUntil(lexer.END)
	if !p.curIs(lexer.END) {
		p.errors = append(p.errors, "unterminated function "+stmt.Name)
		return stmt
	}
	p.nextToken() // consume 'end'
	if p.curIs(lexer.FUNCTION) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseClassStatement() ast.Statement {
	stmt := &ast.ClassStatement{Token: p.cur}
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	stmt.Name = p.cur.Literal
	p.nextToken()
	p.skipNewlines()
	for !p.curIs(lexer.END) && !p.curIs(lexer.EOF) {
		switch p.cur.Type {
		case lexer.LET:
			field := ast.Param{}
			p.nextToken()
			field.Name = p.cur.Literal
			if p.peekIs(lexer.ASSIGN) {
				p.nextToken()
				p.nextToken()
				field.Default = p.parseExpression(LOWEST)
			}
			stmt.Fields = append(stmt.Fields, field)
			p.nextToken()
		case lexer.FUNCTION:
			fn := p.parseFunctionStatement().(*ast.FunctionStatement)
			if fn.Name == stmt.Name {
				stmt.Constructor = fn
			} else {
				stmt.Methods = append(stmt.Methods, fn)
			}
		default:
			p.nextToken()
		}
		p.skipNewlines()
	}
	if p.curIs(lexer.END) {
		p.nextToken()
		if p.curIs(lexer.CLASS) {
			p.nextToken()
		}
	}
	return stmt
}

func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.cur}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	p.nextToken()
	stmt.Consequence = p.parseBlockUntil(lexer.ELIF, lexer.ELSE, lexer.END)

	for p.curIs(lexer.ELIF) {
		clause := ast.ElifClause{}
		p.nextToken()
		clause.Condition = p.parseExpression(LOWEST)
		p.nextToken()
		clause.Body = p.parseBlockUntil(lexer.ELIF, lexer.ELSE, lexer.END)
		stmt.ElifClauses = append(stmt.ElifClauses, clause)
	}
	if p.curIs(lexer.ELSE) {
		p.nextToken()
		stmt.Alternative = p.parseBlockUntil(lexer.END)
	}
	if p.curIs(lexer.END) {
		p.nextToken()
		if p.curIs(lexer.IF) {
			p.nextToken()
		}
	}
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileStatement{Token: p.cur}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	p.nextToken()
	stmt.Body = p.parseBlockUntil(lexer.END)
	if p.curIs(lexer.END) {
		p.nextToken()
		if p.curIs(lexer.WHILE) {
			p.nextToken()
		}
	}
	return stmt
}

func (p *Parser) parseForStatement() ast.Statement {
	stmt := &ast.ForStatement{Token: p.cur}
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	stmt.Var = p.cur.Literal
	if !p.expectPeek(lexer.ASSIGN) {
		return nil
	}
	p.nextToken()
	stmt.Start = p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.TO) {
		return nil
	}
	p.nextToken()
	stmt.End = p.parseExpression(LOWEST)
	if p.peekIs(lexer.STEP) {
		p.nextToken()
		p.nextToken()
		stmt.Step = p.parseExpression(LOWEST)
	}
	p.nextToken()
	stmt.Body = p.parseBlockUntil(lexer.END)
	if p.curIs(lexer.END) {
		p.nextToken()
		if p.curIs(lexer.FOR) {
			p.nextToken()
		}
	}
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.cur}
	p.nextToken()
	if p.curIs(lexer.NEWLINE) || p.curIs(lexer.SEMI) || p.curIs(lexer.EOF) || p.curIs(lexer.END) {
		return stmt
	}
	stmt.Value = p.parseExpression(LOWEST)
	p.nextToken()
	return stmt
}

func (p *Parser) parseImportStatement() ast.Statement {
	stmt := &ast.ImportStatement{Token: p.cur}
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	stmt.Name = p.cur.Literal
	p.nextToken()
	return stmt
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Token: p.cur}
	stmt.Expression = p.parseExpression(LOWEST)
	p.nextToken()
	return stmt
}
