// Package lox wires the lexer, parser and interpreter into the two entry
// points the CLI needs: running a whole file once, and running one REPL
// line against a persistent interpreter.
//
// Adapted from pongo2's Template/newTemplate pipeline (pongo2.go,
// template.go): lex -> parse -> execute against one long-lived structure.
// The difference is that a Template is re-executed many times against
// different contexts, whereas a Lox program (or REPL line) is executed
// once against an interpreter whose environment persists across calls.
package lox

import (
	"errors"
	"io"

	"github.com/loxlang/lox/internal/ast"
	"github.com/loxlang/lox/internal/diag"
	"github.com/loxlang/lox/internal/interpreter"
	"github.com/loxlang/lox/internal/lexer"
	"github.com/loxlang/lox/internal/parser"
)

// Runner holds one interpreter instance so that successive calls to RunLine
// share a global environment, the way a REPL session accumulates bindings
// across lines.
type Runner struct {
	interp *interpreter.Interpreter
	sink   diag.Sink
}

// NewRunner constructs a Runner writing `print` output to stdout.
func NewRunner(stdout io.Writer, sink diag.Sink) *Runner {
	if sink == nil {
		sink = diag.Noop()
	}
	return &Runner{interp: interpreter.New(stdout, sink), sink: sink}
}

// RunFile lexes, parses and executes an entire source string once. Per
// spec.md §7, no statement executes if any parse error occurred.
func (r *Runner) RunFile(filename, source string) error {
	stmts, err := r.compile(filename, source)
	if err != nil {
		return err
	}
	return r.interp.Interpret(stmts)
}

// RunLine lexes, parses and executes a single REPL line against the
// Runner's persistent interpreter and environment.
func (r *Runner) RunLine(source string) error {
	stmts, err := r.compile("<repl>", source)
	if err != nil {
		return err
	}
	return r.interp.Interpret(stmts)
}

func (r *Runner) compile(filename, source string) ([]ast.Stmt, error) {
	toks, err := lexer.New(filename, source, r.sink).Scan()
	if err != nil {
		return nil, err
	}
	stmts, errs := parser.New(filename, toks, r.sink).Parse()
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return stmts, nil
}
