/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nowilltolife/SSVM/src/classloader"
	"github.com/Nowilltolife/SSVM/src/excNames"
	"github.com/Nowilltolife/SSVM/src/globals"
	"github.com/Nowilltolife/SSVM/src/memory"
	"github.com/Nowilltolife/SSVM/src/object"
)

// setupStringTestVM wires just enough of the jvm package's boot sequence
// (NewVM's Globals/NewUtf8/ReadUtf8 installation) directly in this test --
// gfunction cannot import jvm without an import cycle (jvm itself imports
// gfunction), so the handful of package vars jvm.NewVM normally binds are
// bound here by hand, the same indirection pattern object_test.go uses for
// classloader.Memory/object.Memory.
func setupStringTestVM(t *testing.T) *classloader.InstanceClass {
	t.Helper()
	mgr := memory.NewManager()
	classloader.Memory = mgr
	object.Memory = mgr

	loader := classloader.NewClassLoaderData("string-test-loader", nil)
	node := &classloader.ClassNode{
		Name:   "java/lang/String",
		Fields: []classloader.FieldNode{{Name: "value", Descriptor: "[C"}},
	}
	stringClass, err := classloader.DefineClass(loader, "java/lang/String", node, nil, "")
	require.NoError(t, err)

	Globals = globals.InitGlobals("string-test")
	Globals.Symbols.String = "java/lang/String"
	Globals.FuncThrowException = func(name, msg string) {
		panic(name + ": " + msg)
	}
	NewUtf8 = func(s string) (*object.Object, error) {
		return object.NewUtf8(stringClass, s)
	}
	ReadUtf8 = func(ref *object.Object) (string, error) {
		return object.ReadUtf8(ref), nil
	}
	return stringClass
}

func mustNewString(t *testing.T, s string) object.Value {
	t.Helper()
	obj, err := NewUtf8(s)
	require.NoError(t, err)
	return object.RefValue(obj.Handle)
}

func TestStringLengthAndCharAt(t *testing.T) {
	setupStringTestVM(t)
	v := mustNewString(t, "hello")

	result := stringLength([]interface{}{v})
	assert.Equal(t, int32(5), result.(object.Value).AsInt())

	ch := stringCharAt([]interface{}{v, object.IntValue(1)})
	assert.Equal(t, int32('e'), ch.(object.Value).AsInt())
}

func TestStringCharAtOutOfBoundsThrows(t *testing.T) {
	setupStringTestVM(t)
	v := mustNewString(t, "hi")

	assert.Panics(t, func() {
		stringCharAt([]interface{}{v, object.IntValue(5)})
	})
}

func TestStringConcat(t *testing.T) {
	setupStringTestVM(t)
	a := mustNewString(t, "foo")
	b := mustNewString(t, "bar")

	result := stringConcat([]interface{}{a, b})
	s, errv := stringFromValue(result.(object.Value))
	require.Nil(t, errv)
	assert.Equal(t, "foobar", s)
}

func TestStringEqualsAndEqualsIgnoreCase(t *testing.T) {
	setupStringTestVM(t)
	a := mustNewString(t, "Foo")
	b := mustNewString(t, "foo")

	assert.Equal(t, int32(0), stringEquals([]interface{}{a, b}).(object.Value).AsInt())
	assert.Equal(t, int32(1), stringEqualsIgnoreCase([]interface{}{a, b}).(object.Value).AsInt())
}

func TestSubstring(t *testing.T) {
	setupStringTestVM(t)
	v := mustNewString(t, "hello world")

	r := substringStartEnd([]interface{}{v, object.IntValue(0), object.IntValue(5)})
	s, errv := stringFromValue(r.(object.Value))
	require.Nil(t, errv)
	assert.Equal(t, "hello", s)

	r = substringToTheEnd([]interface{}{v, object.IntValue(6)})
	s, errv = stringFromValue(r.(object.Value))
	require.Nil(t, errv)
	assert.Equal(t, "world", s)
}

func TestSubstringOutOfBoundsThrows(t *testing.T) {
	setupStringTestVM(t)
	v := mustNewString(t, "hi")

	assert.Panics(t, func() {
		substringStartEnd([]interface{}{v, object.IntValue(0), object.IntValue(10)})
	})
}

func TestTrimString(t *testing.T) {
	setupStringTestVM(t)
	v := mustNewString(t, "  padded  ")

	r := trimString([]interface{}{v})
	s, errv := stringFromValue(r.(object.Value))
	require.Nil(t, errv)
	assert.Equal(t, "padded", s)
}

func TestStringSplit(t *testing.T) {
	setupStringTestVM(t)
	v := mustNewString(t, "a,b,,c")

	r := stringSplit([]interface{}{v, mustNewString(t, ",")})
	arr := object.ArrayFromHandle(r.(object.Value).AsRef())
	require.NotNil(t, arr)
	assert.Equal(t, 4, arr.Length())
	s0, _ := stringFromValue(arr.Get(0))
	assert.Equal(t, "a", s0)
}

func TestStringMatches(t *testing.T) {
	setupStringTestVM(t)
	v := mustNewString(t, "abc123")

	assert.Equal(t, int32(1), stringMatches([]interface{}{v, mustNewString(t, "[a-z]+[0-9]+")}).(object.Value).AsInt())
	assert.Equal(t, int32(0), stringMatches([]interface{}{v, mustNewString(t, "[0-9]+")}).(object.Value).AsInt())
}

func TestStringMatchesInvalidRegexThrows(t *testing.T) {
	setupStringTestVM(t)
	v := mustNewString(t, "abc")

	assert.PanicsWithValue(t, excNames.IllegalArgumentException+": invalid regular expression: [", func() {
		stringMatches([]interface{}{v, mustNewString(t, "[")})
	})
}

func TestValueOfPrimitives(t *testing.T) {
	setupStringTestVM(t)

	r := valueOfInt([]interface{}{object.IntValue(42)})
	s, _ := stringFromValue(r.(object.Value))
	assert.Equal(t, "42", s)

	r = valueOfLong([]interface{}{object.LongValue(9000000000)})
	s, _ = stringFromValue(r.(object.Value))
	assert.Equal(t, "9000000000", s)

	r = valueOfBoolean([]interface{}{object.IntValue(1)})
	s, _ = stringFromValue(r.(object.Value))
	assert.Equal(t, "true", s)

	r = valueOfChar([]interface{}{object.IntValue(int32('Q'))})
	s, _ = stringFromValue(r.(object.Value))
	assert.Equal(t, "Q", s)
}

func TestToCharArrayRoundTrip(t *testing.T) {
	setupStringTestVM(t)
	v := mustNewString(t, "hi")

	r := toCharArray([]interface{}{v})
	arr := object.ArrayFromHandle(r.(object.Value).AsRef())
	require.NotNil(t, arr)
	require.Equal(t, 2, arr.Length())
	assert.Equal(t, int32('h'), arr.Get(0).AsInt())
	assert.Equal(t, int32('i'), arr.Get(1).AsInt())
}

func TestStringHashCode(t *testing.T) {
	setupStringTestVM(t)
	v := mustNewString(t, "hi")

	// Java's documented value for "hi": 'h'*31 + 'i' = 104*31+105 = 3329.
	r := stringHashCode([]interface{}{v})
	assert.Equal(t, int32(3329), r.(object.Value).AsInt())
}
