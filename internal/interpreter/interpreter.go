// Package interpreter implements the tree-walking evaluator described in
// spec.md §4.5-§4.7: it walks the AST, mutates the environment, invokes
// callables and propagates return outcomes.
package interpreter

import (
	"fmt"
	"io"

	"github.com/loxlang/lox/internal/ast"
	"github.com/loxlang/lox/internal/diag"
	"github.com/loxlang/lox/internal/environment"
	"github.com/loxlang/lox/internal/loxerr"
	"github.com/loxlang/lox/internal/token"
	"github.com/loxlang/lox/internal/value"
)

// Interpreter owns the global environment and the current scope chain. A
// single Interpreter is reused across REPL lines the way pongo2 reuses one
// Template across renders: bindings made by one line's `var`/`fun`
// declarations persist into the next.
type Interpreter struct {
	globals *environment.Environment
	env     *environment.Environment
	stdout  io.Writer
	sink    diag.Sink

	callDepth int
}

// New constructs an Interpreter with the mandatory built-ins (clock, str,
// len, type) already defined in the global scope, per the "Global
// singleton built-ins" design note (spec.md §9).
func New(stdout io.Writer, sink diag.Sink) *Interpreter {
	if sink == nil {
		sink = diag.Noop()
	}
	globals := environment.New()
	for name, v := range value.Globals() {
		globals.Define(name, v)
	}
	return &Interpreter{globals: globals, env: globals, stdout: stdout, sink: sink}
}

// Interpret executes a top-level statement list. It stops at the first
// runtime error (spec.md §7: "halts the current top-level statement").
func (in *Interpreter) Interpret(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if _, err := in.execute(s); err != nil {
			return err
		}
	}
	return nil
}

// execute runs one statement for its effects and returns its return
// outcome (spec.md §4.5 table).
func (in *Interpreter) execute(s ast.Stmt) (outcome, error) {
	switch n := s.(type) {
	case *ast.ExprStmt:
		_, err := in.evaluate(n.Expression)
		return none, err

	case *ast.PrintStmt:
		v, err := in.evaluate(n.Expression)
		if err != nil {
			return none, err
		}
		fmt.Fprintln(in.stdout, value.Display(v))
		return none, nil

	case *ast.VarStmt:
		var v value.Value
		if n.Initializer != nil {
			var err error
			v, err = in.evaluate(n.Initializer)
			if err != nil {
				return none, err
			}
		}
		in.env.Define(n.Name.Lexeme, v)
		return none, nil

	case *ast.BlockStmt:
		return in.execBlockScoped(n.Statements)

	case *ast.IfStmt:
		cond, err := in.evaluate(n.Condition)
		if err != nil {
			return none, err
		}
		if value.IsTruthy(cond) {
			return in.execute(n.Then)
		}
		if n.Else != nil {
			return in.execute(n.Else)
		}
		return none, nil

	case *ast.WhileStmt:
		for {
			cond, err := in.evaluate(n.Condition)
			if err != nil {
				return none, err
			}
			if !value.IsTruthy(cond) {
				return none, nil
			}
			out, err := in.execute(n.Body)
			if err != nil {
				return none, err
			}
			if out.returning() {
				return out, nil
			}
		}

	case *ast.FunctionStmt:
		fn := newFunction(n, in.env.Snapshot(), in)
		in.env.Define(n.Name.Lexeme, fn)
		in.sink.Parsed("defined " + n.Name.Lexeme)
		return none, nil

	case *ast.ReturnStmt:
		if n.Value == nil {
			return bare, nil
		}
		v, err := in.evaluate(n.Value)
		if err != nil {
			return none, err
		}
		return withValue(v), nil

	default:
		return none, fmt.Errorf("interpreter: unhandled statement %T", s)
	}
}

// execBlockScoped pushes a new scope, executes the statements in order,
// and pops the scope on every exit path — success, runtime error, or an
// in-flight return outcome (spec.md §4.5: "Scope push/pop discipline must
// be exception-safe").
func (in *Interpreter) execBlockScoped(stmts []ast.Stmt) (outcome, error) {
	in.env.Push()
	defer in.env.Pop()
	return in.execStatements(stmts)
}

// execBlock runs stmts in env (already scoped by the caller, e.g. a fresh
// function-call environment) without an extra scope push of its own.
func (in *Interpreter) execBlock(stmts []ast.Stmt, env *environment.Environment) (outcome, error) {
	prev := in.env
	in.env = env
	defer func() { in.env = prev }()
	return in.execStatements(stmts)
}

func (in *Interpreter) execStatements(stmts []ast.Stmt) (outcome, error) {
	for _, s := range stmts {
		out, err := in.execute(s)
		if err != nil {
			return none, err
		}
		if out.returning() {
			return out, nil
		}
	}
	return none, nil
}

// evaluate computes an expression's value (spec.md §4.6).
func (in *Interpreter) evaluate(e ast.Expr) (value.Value, error) {
	switch n := e.(type) {
	case *ast.Literal:
		return n.Value, nil

	case *ast.Grouping:
		return in.evaluate(n.Inner)

	case *ast.Variable:
		return in.env.Get(n.Name.Lexeme, n.Name.Line)

	case *ast.Assign:
		v, err := in.evaluate(n.Value)
		if err != nil {
			return nil, err
		}
		if err := in.env.Assign(n.Name.Lexeme, v, n.Name.Line); err != nil {
			return nil, err
		}
		return v, nil

	case *ast.Unary:
		right, err := in.evaluate(n.Right)
		if err != nil {
			return nil, err
		}
		switch n.Operator.Type {
		case token.Minus:
			return value.Negate(n.Operator.Line, right)
		case token.Bang:
			return !value.IsTruthy(right), nil
		default:
			return nil, runtimeErr(n.Operator.Line, "unknown unary operator")
		}

	case *ast.Logical:
		// Short-circuit: evaluate left only; return it, un-coerced, if it
		// already decides the result (spec.md §4.6).
		left, err := in.evaluate(n.Left)
		if err != nil {
			return nil, err
		}
		if n.Operator.Type == token.Or {
			if value.IsTruthy(left) {
				return left, nil
			}
		} else { // And
			if !value.IsTruthy(left) {
				return left, nil
			}
		}
		return in.evaluate(n.Right)

	case *ast.Binary:
		return in.evalBinary(n)

	case *ast.Call:
		return in.evalCall(n)

	default:
		return nil, fmt.Errorf("interpreter: unhandled expression %T", e)
	}
}

func (in *Interpreter) evalBinary(n *ast.Binary) (value.Value, error) {
	// Strict left-to-right: all side effects of the left operand complete
	// before any of the right (spec.md §5).
	left, err := in.evaluate(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(n.Right)
	if err != nil {
		return nil, err
	}

	line := n.Operator.Line
	switch n.Operator.Type {
	case token.Plus, token.Minus, token.Star, token.Slash:
		return value.Arithmetic(line, n.Operator.Lexeme, left, right)
	case token.Greater, token.GreaterEqual, token.Less, token.LessEqual:
		return value.Compare(line, n.Operator.Lexeme, left, right)
	case token.EqualEqual:
		return value.Equal(left, right), nil
	case token.BangEqual:
		return !value.Equal(left, right), nil
	default:
		return nil, runtimeErr(line, "unknown binary operator")
	}
}

func (in *Interpreter) evalCall(n *ast.Call) (value.Value, error) {
	callee, err := in.evaluate(n.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]value.Value, 0, len(n.Args))
	for _, a := range n.Args {
		v, err := in.evaluate(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	fn, ok := callee.(value.Callable)
	if !ok {
		return nil, runtimeErr(n.Paren.Line, "attempting to call non-function")
	}
	if len(args) != fn.Arity() {
		return nil, runtimeErr(n.Paren.Line,
			fmt.Sprintf("expected %d arguments but got %d", fn.Arity(), len(args)))
	}
	return fn.Call(args)
}

func runtimeErr(line int, msg string) error {
	return loxerr.New(loxerr.Runtime, "", line, "", msg)
}
