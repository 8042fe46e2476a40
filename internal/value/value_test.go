package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTruthy(t *testing.T) {
	assert.False(t, IsTruthy(nil))
	assert.False(t, IsTruthy(false))
	assert.True(t, IsTruthy(true))
	assert.True(t, IsTruthy(0.0))
	assert.True(t, IsTruthy(""))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(nil, false))
	assert.True(t, Equal(1.0, 1.0))
	assert.False(t, Equal(1.0, "1"))
	assert.True(t, Equal("a", "a"))
	assert.False(t, Equal(math.NaN(), math.NaN()))
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "nil", Display(nil))
	assert.Equal(t, "true", Display(true))
	assert.Equal(t, "hello", Display("hello"))
	assert.Equal(t, "3", Display(3.0))
	assert.Equal(t, "3.5", Display(3.5))
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "nil", TypeName(nil))
	assert.Equal(t, "boolean", TypeName(true))
	assert.Equal(t, "string", TypeName("s"))
	assert.Equal(t, "number", TypeName(1.0))
}

func TestArithmeticAddition(t *testing.T) {
	v, err := Arithmetic(1, "+", 1.0, 2.0)
	assert.NoError(t, err)
	assert.Equal(t, 3.0, v)

	v, err = Arithmetic(1, "+", "foo", "bar")
	assert.NoError(t, err)
	assert.Equal(t, "foobar", v)

	_, err = Arithmetic(1, "+", "foo", 1.0)
	assert.Error(t, err)
}

func TestArithmeticOnlyNumbersForMinusStarSlash(t *testing.T) {
	_, err := Arithmetic(1, "-", "foo", 1.0)
	assert.Error(t, err)

	v, err := Arithmetic(1, "/", 1.0, 0.0)
	assert.NoError(t, err)
	assert.True(t, math.IsInf(v.(float64), 1))
}

func TestNegateRequiresNumber(t *testing.T) {
	_, err := Negate(1, "x")
	assert.Error(t, err)

	v, err := Negate(1, 4.0)
	assert.NoError(t, err)
	assert.Equal(t, -4.0, v)
}

func TestCompareNumbersAndStrings(t *testing.T) {
	v, err := Compare(1, "<", 1.0, 2.0)
	assert.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = Compare(1, ">=", "b", "a")
	assert.NoError(t, err)
	assert.Equal(t, true, v)

	_, err = Compare(1, "<", 1.0, "a")
	assert.Error(t, err)
}

func TestGlobalsContainsMandatoryClock(t *testing.T) {
	g := Globals()
	clock, ok := g["clock"].(Callable)
	if assert.True(t, ok) {
		assert.Equal(t, 0, clock.Arity())
	}
}

func TestBuiltinLenRequiresString(t *testing.T) {
	g := Globals()
	lenFn := g["len"].(Callable)
	_, err := lenFn.Call([]Value{1.0})
	assert.Error(t, err)

	v, err := lenFn.Call([]Value{"héllo"})
	assert.NoError(t, err)
	assert.Equal(t, 5.0, v)
}

func TestBuiltinTypeAndStr(t *testing.T) {
	g := Globals()
	typeFn := g["type"].(Callable)
	v, _ := typeFn.Call([]Value{true})
	assert.Equal(t, "boolean", v)

	strFn := g["str"].(Callable)
	v, _ = strFn.Call([]Value{3.0})
	assert.Equal(t, "3", v)
}
