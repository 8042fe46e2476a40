package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders expr as a fully-parenthesized prefix form, e.g.
// "(+ 1 (* 2 3))". The parser tests compare parsed trees against an
// expected string in this form. The output is not Lox source syntax and
// is not re-lexed or re-parsed anywhere.
//
// Adapted from the parenthesizing AST printer pattern (surroundBracket)
// found across the Lox-family reference implementations; rewritten here
// as a type switch per spec.md §9's preference for sum-type dispatch over
// a Visitor interface.
func Print(e Expr) string {
	switch n := e.(type) {
	case *Literal:
		return printLiteral(n.Value)
	case *Grouping:
		return parenthesize("group", n.Inner)
	case *Unary:
		return parenthesize(n.Operator.Lexeme, n.Right)
	case *Binary:
		return parenthesize(n.Operator.Lexeme, n.Left, n.Right)
	case *Logical:
		return parenthesize(n.Operator.Lexeme, n.Left, n.Right)
	case *Variable:
		return n.Name.Lexeme
	case *Assign:
		return parenthesize("= "+n.Name.Lexeme, n.Value)
	case *Call:
		args := make([]Expr, 0, len(n.Args)+1)
		args = append(args, n.Callee)
		args = append(args, n.Args...)
		return parenthesize("call", args...)
	default:
		return fmt.Sprintf("<unknown expr %T>", e)
	}
}

func printLiteral(v any) string {
	switch vv := v.(type) {
	case nil:
		return "nil"
	case bool:
		if vv {
			return "true"
		}
		return "false"
	case string:
		return vv
	case float64:
		return strconv.FormatFloat(vv, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", vv)
	}
}

func parenthesize(name string, exprs ...Expr) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(name)
	for _, e := range exprs {
		sb.WriteByte(' ')
		sb.WriteString(Print(e))
	}
	sb.WriteByte(')')
	return sb.String()
}
