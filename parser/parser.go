package parser

import (
	"strconv"

	"github.com/ascentlang/ascentgo/ast"
	"github.com/ascentlang/ascentgo/errors"
	"github.com/ascentlang/ascentgo/lexer"
	"github.com/ascentlang/ascentgo/token"
)

// Precedence levels, low to high. A binary operator binds tighter than the
// one below it; the climbing loop makes every level left-associative.
type Precedence int

const (
	LOWEST Precedence = iota
	EQUALS
	LESSGREATER
	SUM
	PRODUCT
	EXPONENT
	PREFIX
	CALL
	INDEX
)

var precedences = map[token.Kind]Precedence{
	token.EQEQ:     EQUALS,
	token.NOTEQ:    EQUALS,
	token.LT:       LESSGREATER,
	token.GT:       LESSGREATER,
	token.LTEQ:     LESSGREATER,
	token.GTEQ:     LESSGREATER,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.SLASH:    PRODUCT,
	token.ASTERISK: PRODUCT,
	token.MODULUS:  PRODUCT,
	token.POW:      EXPONENT,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser consumes the token stream one token at a time with a single token
// of lookahead. It records diagnostics instead of aborting, recovering at
// the next statement boundary where it can.
type Parser struct {
	lex *lexer.Lexer

	errors []error

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.Kind]prefixParseFn
	infixParseFns  map[token.Kind]infixParseFn
}

func New(lex *lexer.Lexer) *Parser {
	p := &Parser{lex: lex}

	p.prefixParseFns = map[token.Kind]prefixParseFn{
		token.IDENT:  p.parseIdentifier,
		token.INT:    p.parseIntegerLiteral,
		token.FLOAT:  p.parseFloatLiteral,
		token.TRUE:   p.parseBooleanLiteral,
		token.FALSE:  p.parseBooleanLiteral,
		token.LPAREN: p.parseGroupedExpression,
	}
	p.infixParseFns = map[token.Kind]infixParseFn{
		token.PLUS:     p.parseInfixExpression,
		token.MINUS:    p.parseInfixExpression,
		token.SLASH:    p.parseInfixExpression,
		token.ASTERISK: p.parseInfixExpression,
		token.MODULUS:  p.parseInfixExpression,
		token.POW:      p.parseInfixExpression,
		token.LT:       p.parseInfixExpression,
		token.GT:       p.parseInfixExpression,
		token.LTEQ:     p.parseInfixExpression,
		token.GTEQ:     p.parseInfixExpression,
		token.EQEQ:     p.parseInfixExpression,
		token.NOTEQ:    p.parseInfixExpression,
	}

	// populate curToken and peekToken
	p.nextToken()
	p.nextToken()

	return p
}

func (p *Parser) Errors() []error {
	return p.errors
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.lex.NextToken()
}

func (p *Parser) curTokenIs(kind token.Kind) bool {
	return p.curToken.Kind == kind
}

func (p *Parser) peekTokenIs(kind token.Kind) bool {
	return p.peekToken.Kind == kind
}

// expectPeek advances over the next token when it matches, and records a
// diagnostic that fails the enclosing statement when it does not.
func (p *Parser) expectPeek(kind token.Kind) bool {
	if p.peekTokenIs(kind) {
		p.nextToken()
		return true
	}
	p.errors = append(p.errors, errors.ExpectedKindGotKind{
		Expected: kind,
		Got:      p.peekToken.Kind,
		Line:     p.peekToken.Line,
		Column:   p.peekToken.Column,
	})
	return false
}

func (p *Parser) curPrecedence() Precedence {
	if prec, ok := precedences[p.curToken.Kind]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) peekPrecedence() Precedence {
	if prec, ok := precedences[p.peekToken.Kind]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		} else {
			p.synchronize()
		}
		p.nextToken()
	}

	return program
}

// synchronize skips ahead to the next statement boundary after a failed
// statement, so one malformed construct yields one diagnostic instead of a
// cascade.
func (p *Parser) synchronize() {
	for !p.curTokenIs(token.SEMICOLON) && !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		p.nextToken()
	}
}

func (p *Parser) parseStatement() ast.Statement {
	if p.curTokenIs(token.IDENT) && p.peekTokenIs(token.ASSIGN) {
		return p.parseAssignStatement()
	}

	switch p.curToken.Kind {
	case token.VAR:
		return p.parseVarStatement()
	case token.FN:
		return p.parseFunctionStatement()
	case token.RET:
		return p.parseReturnStatement()
	case token.IF:
		return p.parseIfStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}

	return &ast.ExpressionStatement{Expression: expr}
}

// var a: int = 10;
func (p *Parser) parseVarStatement() ast.Statement {
	stmt := &ast.VarStatement{}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Value: p.curToken.Literal}

	if !p.expectPeek(token.COLON) {
		return nil
	}
	if !p.expectPeek(token.TYPE) {
		return nil
	}
	stmt.ValueType = p.curToken.Literal

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()

	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}

	for !p.curTokenIs(token.SEMICOLON) && !p.curTokenIs(token.EOF) {
		p.nextToken()
	}

	return stmt
}

// fn name() -> int { ... }
func (p *Parser) parseFunctionStatement() ast.Statement {
	stmt := &ast.FunctionStatement{}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Value: p.curToken.Literal}

	// parameter list is always empty
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	if !p.expectPeek(token.ARROW) {
		return nil
	}
	if !p.expectPeek(token.TYPE) {
		return nil
	}
	stmt.ReturnType = p.curToken.Literal

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()

	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{}

	p.nextToken()

	stmt.ReturnValue = p.parseExpression(LOWEST)
	if stmt.ReturnValue == nil {
		return nil
	}

	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}

	return stmt
}

// parseBlockStatement is called with the opening brace current; it leaves
// the closing brace current. Running into EOF instead is a diagnostic, not
// a crash.
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{}

	p.nextToken()

	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		} else {
			p.synchronize()
			if p.curTokenIs(token.RBRACE) {
				break
			}
		}
		p.nextToken()
	}

	if p.curTokenIs(token.EOF) {
		p.errors = append(p.errors, errors.UnterminatedBlock{
			Line:   p.curToken.Line,
			Column: p.curToken.Column,
		})
	}

	return block
}

func (p *Parser) parseAssignStatement() ast.Statement {
	stmt := &ast.AssignStatement{
		Ident: &ast.Identifier{Value: p.curToken.Literal},
	}

	p.nextToken()
	p.nextToken()

	stmt.RightValue = p.parseExpression(LOWEST)
	if stmt.RightValue == nil {
		return nil
	}

	p.nextToken()

	return stmt
}

// if (cond) { ... } else { ... }
func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()

	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil {
		return nil
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Consequence = p.parseBlockStatement()

	if p.peekTokenIs(token.ELSE) {
		p.nextToken()

		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		stmt.Alternative = p.parseBlockStatement()
	}

	return stmt
}

// parseExpression is the precedence climb: one prefix expression, then fold
// infix operators for as long as the next token binds tighter than the
// caller's level.
func (p *Parser) parseExpression(precedence Precedence) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Kind]
	if prefix == nil {
		p.errors = append(p.errors, errors.NoPrefixRule{
			Got:    p.curToken.Kind,
			Line:   p.curToken.Line,
			Column: p.curToken.Column,
		})
		return nil
	}

	left := prefix()
	if left == nil {
		return nil
	}

	for !p.peekTokenIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Kind]
		if infix == nil {
			return left
		}

		p.nextToken()

		left = infix(left)
		if left == nil {
			return nil
		}
	}

	return left
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expr := &ast.InfixExpression{
		Left:     left,
		Operator: p.curToken.Literal,
	}

	precedence := p.curPrecedence()
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	if expr.Right == nil {
		return nil
	}

	return expr
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()

	expr := p.parseExpression(LOWEST)

	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	return expr
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Value: p.curToken.Literal}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.errors = append(p.errors, errors.BadLiteral{
			Literal: p.curToken.Literal,
			Want:    "an integer",
			Line:    p.curToken.Line,
			Column:  p.curToken.Column,
		})
		return nil
	}
	return &ast.IntegerLiteral{Value: value}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.errors = append(p.errors, errors.BadLiteral{
			Literal: p.curToken.Literal,
			Want:    "a float",
			Line:    p.curToken.Line,
			Column:  p.curToken.Column,
		})
		return nil
	}
	return &ast.FloatLiteral{Value: value}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Value: p.curTokenIs(token.TRUE)}
}
