// Package parser implements the recursive-descent parser described in
// spec.md §4.2: token sequence -> list of statements.
//
// Adapted from pongo2's Parser (parser.go): the zero-based index cursor
// and the Peek/Match/Consume helper shape are kept, but rebuilt against
// Lox's expression-precedence grammar instead of a template tag grammar,
// and panic-mode error recovery (spec.md §4.2) replaces the teacher's
// single-error-and-stop behavior.
package parser

import (
	"fmt"

	"github.com/loxlang/lox/internal/ast"
	"github.com/loxlang/lox/internal/diag"
	"github.com/loxlang/lox/internal/loxerr"
	"github.com/loxlang/lox/internal/token"
)

const maxArgs = 255

// Parser consumes a token slice (always EOF-terminated) and produces a
// list of statements.
type Parser struct {
	filename string
	tokens   []token.Token
	idx      int
	sink     diag.Sink
	errors   []error
}

func New(filename string, tokens []token.Token, sink diag.Sink) *Parser {
	if sink == nil {
		sink = diag.Noop()
	}
	return &Parser{filename: filename, tokens: tokens, sink: sink}
}

// Parse returns the top-level statement list. If any parse error occurred,
// it returns all accumulated errors and a nil statement list (spec.md §7:
// "no AST is delivered if any parse error occurred in file mode").
func (p *Parser) Parse() ([]ast.Stmt, []error) {
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		stmt := p.declaration()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	if len(p.errors) > 0 {
		return nil, p.errors
	}
	return stmts, nil
}

func (p *Parser) declaration() ast.Stmt {
	defer func() {
		if r := recover(); r != nil {
			// errorAt already recorded the error in p.errors; this
			// recover only unwinds the partial declaration and resumes
			// parsing at the next statement boundary.
			if _, ok := r.(*parseError); ok {
				p.synchronize()
				return
			}
			panic(r)
		}
	}()

	switch {
	case p.matchType(token.Fun):
		return p.function("function")
	case p.matchType(token.Var):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

func (p *Parser) function(kind string) ast.Stmt {
	name := p.consume(token.Identifier, "expect "+kind+" name")
	p.consume(token.LeftParen, "expect '(' after "+kind+" name")
	var params []token.Token
	if !p.check(token.RightParen) {
		for {
			if len(params) >= maxArgs {
				p.errorAt(p.peek(), fmt.Sprintf("can't have more than %d parameters", maxArgs))
			}
			params = append(params, p.consume(token.Identifier, "expect parameter name"))
			if !p.matchType(token.Comma) {
				break
			}
		}
	}
	p.consume(token.RightParen, "expect ')' after parameters")
	p.consume(token.LeftBrace, "expect '{' before "+kind+" body")
	body := p.block()
	stmt := &ast.FunctionStmt{Name: name, Params: params, Body: body}
	p.sink.Parsed(fmt.Sprintf("fun %s/%d", name.Lexeme, len(params)))
	return stmt
}

func (p *Parser) varDeclaration() ast.Stmt {
	name := p.consume(token.Identifier, "expect variable name")
	var init ast.Expr
	if p.matchType(token.Equal) {
		init = p.expression()
	}
	p.consume(token.Semicolon, "expect ';' after variable declaration")
	return &ast.VarStmt{Name: name, Initializer: init}
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.matchType(token.Print):
		return p.printStatement()
	case p.matchType(token.Return):
		return p.returnStatement()
	case p.matchType(token.While):
		return p.whileStatement()
	case p.matchType(token.For):
		return p.forStatement()
	case p.matchType(token.If):
		return p.ifStatement()
	case p.matchType(token.LeftBrace):
		return &ast.BlockStmt{Statements: p.block()}
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) printStatement() ast.Stmt {
	value := p.expression()
	p.consume(token.Semicolon, "expect ';' after value")
	return &ast.PrintStmt{Expression: value}
}

func (p *Parser) returnStatement() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.Semicolon) {
		value = p.expression()
	}
	p.consume(token.Semicolon, "expect ';' after return value")
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

func (p *Parser) whileStatement() ast.Stmt {
	p.consume(token.LeftParen, "expect '(' after 'while'")
	cond := p.expression()
	p.consume(token.RightParen, "expect ')' after condition")
	body := p.statement()
	return &ast.WhileStmt{Condition: cond, Body: body}
}

// forStatement desugars `for (init; cond; update) body` into
// `{ init; while (cond) { body; update; } }` at parse time, per spec.md
// §4.2, so the evaluator needs no special case for `for`.
func (p *Parser) forStatement() ast.Stmt {
	p.consume(token.LeftParen, "expect '(' after 'for'")

	var init ast.Stmt
	switch {
	case p.matchType(token.Semicolon):
		init = nil
	case p.matchType(token.Var):
		init = p.varDeclaration()
	default:
		init = p.expressionStatement()
	}

	var cond ast.Expr
	if !p.check(token.Semicolon) {
		cond = p.expression()
	}
	p.consume(token.Semicolon, "expect ';' after loop condition")

	var update ast.Expr
	if !p.check(token.RightParen) {
		update = p.expression()
	}
	p.consume(token.RightParen, "expect ')' after for clauses")

	body := p.statement()

	if update != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{body, &ast.ExprStmt{Expression: update}}}
	}
	if cond == nil {
		cond = &ast.Literal{Value: true}
	}
	body = &ast.WhileStmt{Condition: cond, Body: body}
	if init != nil {
		return &ast.BlockStmt{Statements: []ast.Stmt{init, body}}
	}
	return &ast.BlockStmt{Statements: []ast.Stmt{body}}
}

func (p *Parser) ifStatement() ast.Stmt {
	p.consume(token.LeftParen, "expect '(' after 'if'")
	cond := p.expression()
	p.consume(token.RightParen, "expect ')' after if condition")
	thenBranch := p.statement()
	var elseBranch ast.Stmt
	if p.matchType(token.Else) {
		elseBranch = p.statement()
	}
	return &ast.IfStmt{Condition: cond, Then: thenBranch, Else: elseBranch}
}

func (p *Parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		if d := p.declaration(); d != nil {
			stmts = append(stmts, d)
		}
	}
	p.consume(token.RightBrace, "expect '}' after block")
	return stmts
}

func (p *Parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	p.consume(token.Semicolon, "expect ';' after expression")
	return &ast.ExprStmt{Expression: expr}
}

// --- Expressions, precedence low to high ---

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment parses the left-hand side as a general expression and, only
// on seeing '=', rewrites it into an Assign node — rejecting any target
// that isn't a bare variable (spec.md §4.2 "Assignment target check").
func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.matchType(token.Equal) {
		equals := p.previous()
		value := p.assignment()

		if v, ok := expr.(*ast.Variable); ok {
			return &ast.Assign{Name: v.Name, Value: value}
		}
		p.errorAt(equals, "invalid assignment target")
		return expr
	}
	return expr
}

func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.matchType(token.Or) {
		op := p.previous()
		right := p.and()
		expr = &ast.Logical{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.matchType(token.And) {
		op := p.previous()
		right := p.equality()
		expr = &ast.Logical{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.matchType(token.BangEqual, token.EqualEqual) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.matchType(token.Greater, token.GreaterEqual, token.Less, token.LessEqual) {
		op := p.previous()
		right := p.term()
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.matchType(token.Minus, token.Plus) {
		op := p.previous()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.matchType(token.Slash, token.Star) {
		op := p.previous()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.matchType(token.Bang, token.Minus) {
		op := p.previous()
		right := p.unary()
		return &ast.Unary{Operator: op, Right: right}
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()
	for {
		if p.matchType(token.LeftParen) {
			expr = p.finishCall(expr)
		} else {
			break
		}
	}
	return expr
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RightParen) {
		for {
			if len(args) >= maxArgs {
				p.errorAt(p.peek(), fmt.Sprintf("can't have more than %d arguments", maxArgs))
			}
			args = append(args, p.expression())
			if !p.matchType(token.Comma) {
				break
			}
		}
	}
	paren := p.consume(token.RightParen, "expect ')' after arguments")
	return &ast.Call{Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.matchType(token.False):
		return &ast.Literal{Value: false}
	case p.matchType(token.True):
		return &ast.Literal{Value: true}
	case p.matchType(token.Nil):
		return &ast.Literal{Value: nil}
	case p.matchType(token.Number, token.String):
		return &ast.Literal{Value: p.previous().Literal}
	case p.matchType(token.Identifier):
		return &ast.Variable{Name: p.previous()}
	case p.matchType(token.LeftParen):
		expr := p.expression()
		p.consume(token.RightParen, "expect ')' after expression")
		return &ast.Grouping{Inner: expr}
	default:
		panic(p.fatal(p.peek(), "expect expression"))
	}
}

// --- Cursor primitives ---

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.idx]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.idx-1]
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.idx++
	}
	return p.previous()
}

func (p *Parser) check(typ token.Type) bool {
	if p.isAtEnd() {
		return typ == token.EOF
	}
	return p.peek().Type == typ
}

func (p *Parser) matchType(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(typ token.Type, msg string) token.Token {
	if p.check(typ) {
		return p.advance()
	}
	panic(p.fatal(p.peek(), msg))
}

// parseError marks a panic value raised by fatal as originating from this
// parser, distinguishing deliberate unwinds (caught by declaration's
// recover, per spec.md §4.2 panic-mode recovery) from genuine bugs.
type parseError struct{ err error }

func (e *parseError) Error() string { return e.err.Error() }

// errorAt records a non-fatal parse error (e.g. too many arguments) and
// lets parsing continue in place.
func (p *Parser) errorAt(t token.Token, msg string) error {
	err := loxerr.New(loxerr.Parse, p.filename, t.Line, t.Lexeme, msg)
	p.errors = append(p.errors, err)
	return err
}

// fatal records a parse error and returns a *parseError suitable for
// panic(), unwinding to the nearest declaration() for synchronization.
func (p *Parser) fatal(t token.Token, msg string) *parseError {
	return &parseError{err: p.errorAt(t, msg)}
}

// synchronize discards tokens until it reaches a probable statement
// boundary, per spec.md §4.2's panic-mode recovery: a just-consumed
// semicolon, or the next token begins a new declaration/statement.
//
// The unconditional advance() before the loop always discards the token
// that caused the error, same as the original parser's synchronize. That
// keeps previous() safe to call (fatal() can be raised at idx 0, e.g. on a
// leading ';', but the loop is only entered after advance() has moved idx
// past 0) and guarantees forward progress: without
// it, an error raised on a token immediately following a just-consumed
// ';' makes the loop see that same ';' as "already synced" and return
// without consuming anything, so declaration() re-parses the same
// position and Parse() loops forever.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
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
