package value

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// Builtin is a native Callable, the closed-set equivalent of pongo2's
// filters.go builtin-function registry: a name, an arity, and a plain Go
// function invoked by the evaluator instead of a template filter pipeline.
type Builtin struct {
	name  string
	arity int
	fn    func(args []Value) (Value, error)
}

func (b *Builtin) Name() string { return b.name }
func (b *Builtin) Arity() int   { return b.arity }
func (b *Builtin) Call(args []Value) (Value, error) {
	return b.fn(args)
}

// Globals returns the built-in functions defined at interpreter
// construction time: clock (mandatory per spec.md §4.3) plus str/len/type
// (SPEC_FULL.md §4.3 additions). Each is injected into the global scope
// the same way, per the "Global singleton built-ins" design note.
func Globals() map[string]Value {
	return map[string]Value{
		"clock": &Builtin{name: "clock", arity: 0, fn: builtinClock},
		"str":   &Builtin{name: "str", arity: 1, fn: builtinStr},
		"len":   &Builtin{name: "len", arity: 1, fn: builtinLen},
		"type":  &Builtin{name: "type", arity: 1, fn: builtinType},
	}
}

func builtinClock(args []Value) (Value, error) {
	return float64(time.Now().UnixMilli()), nil
}

func builtinStr(args []Value) (Value, error) {
	return Display(args[0]), nil
}

func builtinLen(args []Value) (Value, error) {
	s, ok := args[0].(string)
	if !ok {
		return nil, runtimeErr(0, fmt.Sprintf("len() requires a string, got %s", TypeName(args[0])))
	}
	return float64(utf8.RuneCountInString(s)), nil
}

func builtinType(args []Value) (Value, error) {
	return TypeName(args[0]), nil
}
