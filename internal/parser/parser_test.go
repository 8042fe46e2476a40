package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/loxlang/lox/internal/ast"
	"github.com/loxlang/lox/internal/lexer"
)

func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	toks, err := lexer.New("<test>", src+";", nil).Scan()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	stmts, errs := New("<test>", toks, nil).Parse()
	if errs != nil {
		t.Fatalf("parse error: %v", errs)
	}
	if len(stmts) != 1 {
		t.Fatalf("expected exactly one statement, got %d", len(stmts))
	}
	exprStmt, ok := stmts[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected an expression statement, got %T", stmts[0])
	}
	return exprStmt.Expression
}

func TestParsePrecedence(t *testing.T) {
	expr := parseExpr(t, "1 + 2 * 3")
	assert.Equal(t, "(+ 1 (* 2 3))", ast.Print(expr))
}

func TestParseComparisonAndEquality(t *testing.T) {
	expr := parseExpr(t, "1 < 2 == true")
	assert.Equal(t, "(== (< 1 2) true)", ast.Print(expr))
}

func TestParseLogicalShortCircuitGrammar(t *testing.T) {
	expr := parseExpr(t, "true or false and nil")
	// 'and' binds tighter than 'or'.
	assert.Equal(t, "(or true (and false nil))", ast.Print(expr))
}

func TestParseAssignmentIsRightAssociative(t *testing.T) {
	expr := parseExpr(t, "a = b = 1")
	assert.Equal(t, "(= a (= b 1))", ast.Print(expr))
}

func TestParseInvalidAssignmentTargetIsError(t *testing.T) {
	toks, err := lexer.New("<test>", "1 = 2;", nil).Scan()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	_, errs := New("<test>", toks, nil).Parse()
	assert.NotEmpty(t, errs)
}

func TestParseCall(t *testing.T) {
	expr := parseExpr(t, "f(1, 2)")
	assert.Equal(t, "(call f 1 2)", ast.Print(expr))
}

func TestParseForDesugarsToWhile(t *testing.T) {
	toks, err := lexer.New("<test>", "for (var i = 0; i < 3; i = i + 1) print i;", nil).Scan()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	stmts, errs := New("<test>", toks, nil).Parse()
	if errs != nil {
		t.Fatalf("parse error: %v", errs)
	}
	if len(stmts) != 1 {
		t.Fatalf("expected exactly one (desugared) statement, got %d", len(stmts))
	}

	outer, ok := stmts[0].(*ast.BlockStmt)
	if !ok {
		t.Fatalf("expected desugared for to be a block, got %T", stmts[0])
	}
	if len(outer.Statements) != 2 {
		t.Fatalf("expected { init; while }, got %d statements", len(outer.Statements))
	}
	if _, ok := outer.Statements[0].(*ast.VarStmt); !ok {
		t.Errorf("first statement should be the loop's var init, got %T", outer.Statements[0])
	}
	whileStmt, ok := outer.Statements[1].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("second statement should be the desugared while, got %T", outer.Statements[1])
	}
	body, ok := whileStmt.Body.(*ast.BlockStmt)
	if !ok {
		t.Fatalf("while body should be a block of { body; update }, got %T", whileStmt.Body)
	}
	assert.Len(t, body.Statements, 2)
}

func TestParseForWithoutConditionDefaultsTrue(t *testing.T) {
	toks, err := lexer.New("<test>", "for (;;) print 1;", nil).Scan()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	stmts, errs := New("<test>", toks, nil).Parse()
	if errs != nil {
		t.Fatalf("parse error: %v", errs)
	}
	outer := stmts[0].(*ast.BlockStmt)
	whileStmt := outer.Statements[0].(*ast.WhileStmt)
	lit, ok := whileStmt.Condition.(*ast.Literal)
	if assert.True(t, ok) {
		assert.Equal(t, true, lit.Value)
	}
}

// TestParseErrorRecoveryFindsLaterStatements exercises panic-mode
// recovery: a malformed first statement must not prevent later, valid
// statements' errors (if any) from being collected independently, and
// the parser must not double-record the same error.
func TestParseErrorRecoveryFindsLaterStatements(t *testing.T) {
	toks, err := lexer.New("<test>", "var ; var x = 1;", nil).Scan()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	_, errs := New("<test>", toks, nil).Parse()
	assert.Len(t, errs, 1, "a single malformed declaration should record exactly one error")
}

// TestParseErrorOnFirstTokenDoesNotPanic covers a line-leading token that
// cannot begin a declaration/statement/expression: the very first fatal()
// panic is raised before any token has been consumed (idx == 0), which
// previously made synchronize's unguarded previous() index tokens[-1].
func TestParseErrorOnFirstTokenDoesNotPanic(t *testing.T) {
	for _, src := range []string{";", ")", "}", "+", "*", "==", ","} {
		toks, err := lexer.New("<test>", src, nil).Scan()
		if err != nil {
			t.Fatalf("lex error for %q: %v", src, err)
		}
		assert.NotPanics(t, func() {
			_, errs := New("<test>", toks, nil).Parse()
			assert.NotEmpty(t, errs, "source %q should report a parse error", src)
		}, "source %q should not panic", src)
	}
}

// TestParseStraySemicolonAfterStatementDoesNotHang covers a stray token
// immediately following an already-consumed ';': synchronize must consume
// the offending token rather than see the prior ';' and return without
// making progress, which previously looped declaration() forever.
func TestParseStraySemicolonAfterStatementDoesNotHang(t *testing.T) {
	toks, err := lexer.New("<test>", "var x = 1; ;", nil).Scan()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	done := make(chan struct{})
	go func() {
		New("<test>", toks, nil).Parse()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Parse did not return: stray ';' caused synchronize to loop forever")
	}
}

func TestParseFunctionDeclaration(t *testing.T) {
	toks, err := lexer.New("<test>", "fun add(a, b) { return a + b; }", nil).Scan()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	stmts, errs := New("<test>", toks, nil).Parse()
	if errs != nil {
		t.Fatalf("parse error: %v", errs)
	}
	fn, ok := stmts[0].(*ast.FunctionStmt)
	if assert.True(t, ok) {
		assert.Equal(t, "add", fn.Name.Lexeme)
		assert.Len(t, fn.Params, 2)
	}
}
