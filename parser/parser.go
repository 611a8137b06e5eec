// Package parser implements a recursive-descent parser for Lox, producing an
// [ast.Program] from a stream of [token.Token]s.
package parser

import (
	"github.com/loxproj/golox/ast"
	"github.com/loxproj/golox/loxerr"
	"github.com/loxproj/golox/token"
)

// maxArgs is the maximum number of arguments a call or parameters a function
// declaration may have. This matches the limit enforced by the reference jlox
// implementation's single-byte bytecode operand, kept here only as a diagnostic.
const maxArgs = 255

// Parser parses a fixed sequence of tokens produced by the scanner.
type Parser struct {
	tokens  []token.Token
	current int
	errs    loxerr.List
}

// New constructs a Parser over tokens, which must end with a single EOF token.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses the entire token stream as a program. It always returns a program,
// even in the presence of errors; callers must check the returned error before using
// the result, since ill-formed subtrees are omitted rather than left nil.
func (p *Parser) Parse() (*ast.Program, error) {
	var stmts []ast.Stmt
	for !p.atEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return &ast.Program{Stmts: stmts}, p.errs.Err()
}

// declaration parses a classDecl, funDecl, varDecl, or falls through to statement.
// On a parse error it reports the error, synchronizes to the next statement
// boundary, and returns nil so the caller skips the malformed declaration.
func (p *Parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); !ok {
				panic(r)
			}
			p.synchronize()
			stmt = nil
		}
	}()

	switch {
	case p.match(token.Class):
		return p.classDecl()
	case p.match(token.Fun):
		return p.function("function")
	case p.match(token.Var):
		return p.varDecl()
	default:
		return p.statement()
	}
}

func (p *Parser) classDecl() ast.Stmt {
	name := p.consume(token.Ident, "expect class name")

	var superclass *ast.VariableExpr
	if p.match(token.Less) {
		superName := p.consume(token.Ident, "expect superclass name")
		superclass = &ast.VariableExpr{Name: superName}
	}

	p.consume(token.LeftBrace, "expect '{' before class body")
	var methods []*ast.FunctionStmt
	for !p.check(token.RightBrace) && !p.atEnd() {
		methods = append(methods, p.function("method"))
	}
	p.consume(token.RightBrace, "expect '}' after class body")

	return &ast.ClassStmt{Name: name, Superclass: superclass, Methods: methods}
}

func (p *Parser) function(kind string) *ast.FunctionStmt {
	name := p.consume(token.Ident, "expect %s name", kind)
	p.consume(token.LeftParen, "expect '(' after %s name", kind)
	var params []token.Token
	if !p.check(token.RightParen) {
		for {
			if len(params) >= maxArgs {
				p.errAtCurrent("can't have more than %d parameters", maxArgs)
			}
			params = append(params, p.consume(token.Ident, "expect parameter name"))
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.consume(token.RightParen, "expect ')' after parameters")
	p.consume(token.LeftBrace, "expect '{' before %s body", kind)
	body := p.block()

	return &ast.FunctionStmt{FunDecl: ast.FunDecl{Name: name, Params: params, Body: body}}
}

func (p *Parser) varDecl() ast.Stmt {
	name := p.consume(token.Ident, "expect variable name")
	var init ast.Expr
	if p.match(token.Equal) {
		init = p.expression()
	}
	p.consume(token.Semicolon, "expect ';' after variable declaration")
	return &ast.VarStmt{Name: name, Initializer: init}
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.Print):
		return p.printStmt()
	case p.match(token.Return):
		return p.returnStmt()
	case p.match(token.While):
		return p.whileStmt()
	case p.match(token.For):
		return p.forStmt()
	case p.match(token.If):
		return p.ifStmt()
	case p.match(token.LeftBrace):
		return &ast.BlockStmt{Stmts: p.block()}
	default:
		return p.expressionStmt()
	}
}

func (p *Parser) printStmt() ast.Stmt {
	value := p.expression()
	p.consume(token.Semicolon, "expect ';' after value")
	return &ast.PrintStmt{Expr: value}
}

func (p *Parser) returnStmt() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.Semicolon) {
		value = p.expression()
	}
	p.consume(token.Semicolon, "expect ';' after return value")
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

func (p *Parser) whileStmt() ast.Stmt {
	p.consume(token.LeftParen, "expect '(' after 'while'")
	condition := p.expression()
	p.consume(token.RightParen, "expect ')' after condition")
	body := p.statement()
	return &ast.WhileStmt{Condition: condition, Body: body}
}

// forStmt desugars a for loop into the equivalent block containing an optional
// initializer followed by a while loop, matching the semantics described for the
// construct without needing a distinct AST node or interpreter case.
func (p *Parser) forStmt() ast.Stmt {
	p.consume(token.LeftParen, "expect '(' after 'for'")

	var init ast.Stmt
	switch {
	case p.match(token.Semicolon):
		// no initializer
	case p.match(token.Var):
		init = p.varDecl()
	default:
		init = p.expressionStmt()
	}

	var condition ast.Expr
	if !p.check(token.Semicolon) {
		condition = p.expression()
	}
	p.consume(token.Semicolon, "expect ';' after loop condition")

	var increment ast.Expr
	if !p.check(token.RightParen) {
		increment = p.expression()
	}
	p.consume(token.RightParen, "expect ')' after for clauses")

	body := p.statement()

	if increment != nil {
		body = &ast.BlockStmt{Stmts: []ast.Stmt{body, &ast.ExpressionStmt{Expr: increment}}}
	}
	if condition == nil {
		condition = &ast.LiteralExpr{Value: token.Token{Type: token.True, Lexeme: "true"}}
	}
	body = &ast.WhileStmt{Condition: condition, Body: body}

	if init != nil {
		body = &ast.BlockStmt{Stmts: []ast.Stmt{init, body}}
	}
	return body
}

func (p *Parser) ifStmt() ast.Stmt {
	p.consume(token.LeftParen, "expect '(' after 'if'")
	condition := p.expression()
	p.consume(token.RightParen, "expect ')' after if condition")
	then := p.statement()
	var els ast.Stmt
	if p.match(token.Else) {
		els = p.statement()
	}
	return &ast.IfStmt{Condition: condition, Then: then, Else: els}
}

func (p *Parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RightBrace) && !p.atEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.consume(token.RightBrace, "expect '}' after block")
	return stmts
}

func (p *Parser) expressionStmt() ast.Stmt {
	expr := p.expression()
	p.consume(token.Semicolon, "expect ';' after expression")
	return &ast.ExpressionStmt{Expr: expr}
}

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment parses a right-associative assignment. Since the parser has only one
// token of lookahead, it parses the left side as a normal expression, then checks
// whether the result is a valid assignment target once it sees the '='.
func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(token.Equal) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.VariableExpr:
			return &ast.AssignExpr{Name: target.Name, Value: value}
		case *ast.GetExpr:
			return &ast.SetExpr{Object: target.Object, Name: target.Name, Value: value}
		default:
			p.errAt(equals, "invalid assignment target")
			return expr
		}
	}

	return expr
}

func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.Or) {
		op := p.previous()
		right := p.and()
		expr = &ast.LogicalExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.match(token.And) {
		op := p.previous()
		right := p.equality()
		expr = &ast.LogicalExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BangEqual, token.EqualEqual) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.Greater, token.GreaterEqual, token.Less, token.LessEqual) {
		op := p.previous()
		right := p.term()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.Minus, token.Plus) {
		op := p.previous()
		right := p.factor()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.Slash, token.Star) {
		op := p.previous()
		right := p.unary()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.Bang, token.Minus) {
		op := p.previous()
		right := p.unary()
		return &ast.UnaryExpr{Op: op, Right: right}
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(token.LeftParen):
			expr = p.finishCall(expr)
		case p.match(token.Dot):
			name := p.consume(token.Ident, "expect property name after '.'")
			expr = &ast.GetExpr{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RightParen) {
		for {
			if len(args) >= maxArgs {
				p.errAtCurrent("can't have more than %d arguments", maxArgs)
			}
			args = append(args, p.expression())
			if !p.match(token.Comma) {
				break
			}
		}
	}
	paren := p.consume(token.RightParen, "expect ')' after arguments")
	return &ast.CallExpr{Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.False, token.True, token.Nil, token.Number, token.String):
		return &ast.LiteralExpr{Value: p.previous()}
	case p.match(token.This):
		return &ast.ThisExpr{Keyword: p.previous()}
	case p.match(token.Super):
		keyword := p.previous()
		p.consume(token.Dot, "expect '.' after 'super'")
		method := p.consume(token.Ident, "expect superclass method name")
		return &ast.SuperExpr{Keyword: keyword, Method: method}
	case p.match(token.Ident):
		return &ast.VariableExpr{Name: p.previous()}
	case p.match(token.LeftParen):
		expr := p.expression()
		p.consume(token.RightParen, "expect ')' after expression")
		return &ast.GroupingExpr{Expr: expr}
	default:
		panic(p.errAtCurrent("expect expression"))
	}
}

// parseError is the sentinel panic value used to unwind to the nearest
// declaration boundary once a parse error has been reported.
type parseError struct{}

func (parseError) Error() string { return "parse error" }

func (p *Parser) errAt(tok token.Token, format string, args ...any) parseError {
	p.errs.AddFromToken(tok, format, args...)
	return parseError{}
}

func (p *Parser) errAtCurrent(format string, args ...any) parseError {
	return p.errAt(p.peek(), format, args...)
}

// consume advances past the current token if it has the expected type, reporting an
// error and panicking with [parseError] otherwise.
func (p *Parser) consume(typ token.Type, format string, args ...any) token.Token {
	if p.check(typ) {
		return p.advance()
	}
	panic(p.errAtCurrent(format, args...))
}

func (p *Parser) match(types ...token.Type) bool {
	for _, typ := range types {
		if p.check(typ) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(typ token.Type) bool {
	if p.atEnd() {
		return false
	}
	return p.peek().Type == typ
}

func (p *Parser) advance() token.Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) atEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

// synchronize discards tokens until it reaches a point that's likely to be the start
// of a new statement, so that a single malformed statement doesn't cascade into
// spurious errors for the rest of the file.
func (p *Parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.previous().Type == token.Semicolon {
			return
		}
		switch p.peek().Type {
		case token.Class, token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}
