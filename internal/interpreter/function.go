package interpreter

import (
	"github.com/loxlang/lox/internal/ast"
	"github.com/loxlang/lox/internal/environment"
	"github.com/loxlang/lox/internal/value"
)

// Function is a user-defined callable: an immutable record of parameters,
// body and the environment snapshot captured at definition time (spec.md
// §9 "Function value sharing" — shared ownership via a pointer, no
// mutation needed once constructed).
//
// Adapted from pongo2's tagMacroNode: a macro is exactly this — a name, a
// parameter list and a body closed over the defining context — except a
// Function returns a Value instead of rendered template text, and the
// closure environment shares scope frames by reference (environment.
// Snapshot) rather than copying a Context map, which is what lets a later
// assignment to an enclosing variable remain visible (spec.md §9).
type Function struct {
	decl    *ast.FunctionStmt
	closure *environment.Environment
	interp  *Interpreter
}

func newFunction(decl *ast.FunctionStmt, closure *environment.Environment, interp *Interpreter) *Function {
	return &Function{decl: decl, closure: closure, interp: interp}
}

func (f *Function) Name() string { return f.decl.Name.Lexeme }
func (f *Function) Arity() int   { return len(f.decl.Params) }

// Call binds args to parameters in a fresh scope over the captured
// closure and executes the body (spec.md §4.7). A bare or value return
// unwinds immediately via outcome; falling off the end yields nil.
func (f *Function) Call(args []value.Value) (value.Value, error) {
	callEnv := f.closure.Child()
	for i, param := range f.decl.Params {
		callEnv.Define(param.Lexeme, args[i])
	}

	f.interp.sink.Called(f.Name(), f.interp.callDepth)
	f.interp.callDepth++
	defer func() { f.interp.callDepth-- }()

	out, err := f.interp.execBlock(f.decl.Body, callEnv)
	if err != nil {
		return nil, err
	}
	return out.callResult(), nil
}
