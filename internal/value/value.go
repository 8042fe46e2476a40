// Package value implements the run-time value model: the closed
// nil/boolean/string/number/callable tagged union, arithmetic and
// comparison coercion rules, and truthiness.
//
// Adapted from pongo2's value.go. The teacher wraps arbitrary host Go
// values via reflect.Value because a template context can hold any Go
// type a caller puts into it. Lox's value set is fixed by the language
// grammar (spec.md §3), so Value here is a plain interface over four
// concrete Go types plus *Function/*Builtin — reflect buys nothing and
// would only hide the exhaustiveness the interpreter depends on (see
// DESIGN.md).
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/loxlang/lox/internal/loxerr"
)

// Value is any run-time Lox value: nil, bool, string, float64, or a
// Callable. The concrete representation is exactly these Go types — no
// wrapper struct — so type switches in the interpreter stay exhaustive
// and cheap.
type Value any

// Callable is a value that can appear as the callee of a call expression.
type Callable interface {
	Arity() int
	Name() string
	Call(args []Value) (Value, error)
}

// IsTruthy implements the language's truthiness rule: nil and false are
// falsey, everything else (including 0 and "") is truthy.
func IsTruthy(v Value) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// Equal implements structural equality. Values of different dynamic type
// are never equal (including number vs string); callables are compared by
// identity (pointer equality for *Function, identity for built-ins) and
// are only ever equal to themselves.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv // NaN != NaN follows naturally from ==
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	default:
		ac, aok := a.(Callable)
		bc, bok := b.(Callable)
		if aok && bok {
			// Callables (always *Function or *Builtin, both comparable
			// pointer types) compare equal only by identity.
			return ac == bc
		}
		return false
	}
}

// Display renders the canonical print form: numbers use the shortest
// round-trippable decimal (no trailing ".0" for exact integers), booleans
// as true/false, nil as "nil", strings raw (no quotes), callables as
// "<fn name>".
func Display(v Value) string {
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
		return formatNumber(vv)
	case Callable:
		return fmt.Sprintf("<fn %s>", vv.Name())
	default:
		return fmt.Sprintf("%v", vv)
	}
}

func formatNumber(f float64) string {
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	if math.IsNaN(f) {
		return "nan"
	}
	// 'f' with precision -1 gives the shortest digits that round-trip,
	// written in plain decimal without exponent notation.
	s := strconv.FormatFloat(f, 'f', -1, 64)
	return s
}

// TypeName names the dynamic type of v the way the built-in type()
// function reports it.
func TypeName(v Value) string {
	switch v.(type) {
	case nil:
		return "nil"
	case bool:
		return "boolean"
	case string:
		return "string"
	case float64:
		return "number"
	case Callable:
		return "function"
	default:
		return "unknown"
	}
}

func runtimeErr(line int, msg string) error {
	return loxerr.New(loxerr.Runtime, "", line, "", msg)
}

// Negate implements unary '-'; operand must be a number.
func Negate(line int, v Value) (Value, error) {
	n, ok := v.(float64)
	if !ok {
		return nil, runtimeErr(line, "operand must be a number")
	}
	return -n, nil
}

// Arithmetic implements '-', '*', '/' (numbers only) and the overloaded
// '+' (number+number or string+string). op is one of "+","-","*","/".
func Arithmetic(line int, op string, l, r Value) (Value, error) {
	if op == "+" {
		ln, lok := l.(float64)
		rn, rok := r.(float64)
		if lok && rok {
			return ln + rn, nil
		}
		ls, lsok := l.(string)
		rs, rsok := r.(string)
		if lsok && rsok {
			return ls + rs, nil
		}
		if lsok || rsok {
			return nil, runtimeErr(line, "cannot concatenate")
		}
		return nil, runtimeErr(line, "cannot add")
	}

	ln, lok := l.(float64)
	rn, rok := r.(float64)
	if !lok || !rok {
		return nil, runtimeErr(line, "operands must be numbers")
	}
	switch op {
	case "-":
		return ln - rn, nil
	case "*":
		return ln * rn, nil
	case "/":
		return ln / rn, nil // IEEE division: ±Inf/NaN on zero divisor, no error
	default:
		return nil, runtimeErr(line, "unknown operator "+op)
	}
}

// Compare implements '<','<=','>','>=', defined only for number/number and
// string/string.
func Compare(line int, op string, l, r Value) (Value, error) {
	if ln, ok := l.(float64); ok {
		rn, ok := r.(float64)
		if !ok {
			return nil, runtimeErr(line, "operands must be numbers (or strings)")
		}
		return compareOrdered(op, ln < rn, ln == rn, ln > rn), nil
	}
	if ls, ok := l.(string); ok {
		rs, ok := r.(string)
		if !ok {
			return nil, runtimeErr(line, "operands must be numbers (or strings)")
		}
		c := strings.Compare(ls, rs)
		return compareOrdered(op, c < 0, c == 0, c > 0), nil
	}
	return nil, runtimeErr(line, "operands must be numbers (or strings)")
}

func compareOrdered(op string, lt, eq, gt bool) bool {
	switch op {
	case "<":
		return lt
	case "<=":
		return lt || eq
	case ">":
		return gt
	case ">=":
		return gt || eq
	default:
		return false
	}
}
