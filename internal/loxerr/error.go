// Package loxerr implements the single error type shared by the lexer,
// parser and evaluator. Adapted from pongo2's Error type (Sender,
// Filename, Line, Column, Token, OrigError), closing over one phase tag
// and the underlying cause instead of a template-engine "Sender" string.
package loxerr

import (
	"fmt"

	"github.com/juju/errors"
)

// Phase identifies which pipeline stage raised the error.
type Phase string

const (
	Lex     Phase = "lex"
	Parse   Phase = "parse"
	Runtime Phase = "runtime"
)

// Error is the one error type produced anywhere in the interpreter.
type Error struct {
	Phase    Phase
	Filename string
	Line     int

	// Lexeme is the offending token text, when known. Empty otherwise.
	Lexeme string

	// Cause is the underlying error, usually created with errors.New or
	// annotated with errors.Annotate so the juju/errors call stack is
	// preserved for debugging builds.
	Cause error
}

func New(phase Phase, filename string, line int, lexeme string, msg string) *Error {
	return &Error{Phase: phase, Filename: filename, Line: line, Lexeme: lexeme, Cause: errors.New(msg)}
}

// Wrap annotates an existing error with phase/location context, preserving
// the original error in the juju/errors trace.
func Wrap(phase Phase, filename string, line int, lexeme string, err error) *Error {
	return &Error{Phase: phase, Filename: filename, Line: line, Lexeme: lexeme, Cause: errors.Annotatef(err, "%s error", phase)}
}

func (e *Error) Error() string {
	s := fmt.Sprintf("[%s error]", e.Phase)
	if e.Filename != "" {
		s += " " + e.Filename
	}
	if e.Line > 0 {
		s += fmt.Sprintf(" line %d", e.Line)
	}
	if e.Lexeme != "" {
		s += fmt.Sprintf(" near '%s'", e.Lexeme)
	}
	return s + ": " + errors.Cause(e.Cause).Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}
