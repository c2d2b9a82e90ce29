/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nowilltolife/SSVM/src/classloader"
	"github.com/Nowilltolife/SSVM/src/excNames"
	"github.com/Nowilltolife/SSVM/src/globals"
	"github.com/Nowilltolife/SSVM/src/memory"
)

// setupValueMismatchPanic installs a panicking Globals.FuncThrowException,
// the same indirection throwKindMismatch uses, so a Kind-mismatched As*
// call surfaces as a Go panic the test can assert on rather than silently
// no-opping (globals.InitGlobals's default handler is a no-op).
func setupValueMismatchPanic(t *testing.T) {
	t.Helper()
	g := globals.InitGlobals("value-mismatch-test")
	g.FuncThrowException = func(name, msg string) {
		panic(name + ": " + msg)
	}
}

func newTestClass(t *testing.T, name string, fields []classloader.FieldNode) *classloader.InstanceClass {
	t.Helper()
	loader := classloader.NewClassLoaderData(name+"-loader", nil)
	node := &classloader.ClassNode{Name: name, Fields: fields}
	c, err := classloader.DefineClass(loader, name, node, nil, "")
	require.NoError(t, err)
	return c
}

func TestObjectFieldRoundTrip(t *testing.T) {
	Memory = memory.NewManager()
	classloader.Memory = Memory

	fields := []classloader.FieldNode{
		{Name: "myFloat", Descriptor: "F"},
		{Name: "myDouble", Descriptor: "D"},
		{Name: "myInt", Descriptor: "I"},
		{Name: "myLong", Descriptor: "J"},
		{Name: "myShort", Descriptor: "S"},
		{Name: "myByte", Descriptor: "B"},
		{Name: "myBool", Descriptor: "Z"},
		{Name: "myChar", Descriptor: "C"},
		{Name: "myString", Descriptor: "Ljava/lang/String;"},
	}
	class := newTestClass(t, "java/lang/madeUpClass", fields)
	obj := NewObject(class)

	require.True(t, obj.SetField("myFloat", "F", FloatValue(1.0)))
	require.True(t, obj.SetField("myDouble", "D", DoubleValue(2.0)))
	require.True(t, obj.SetField("myInt", "I", IntValue(42)))
	require.True(t, obj.SetField("myLong", "J", LongValue(42)))
	require.True(t, obj.SetField("myShort", "S", IntValue(42)))
	require.True(t, obj.SetField("myByte", "B", IntValue(0x61)))
	require.True(t, obj.SetField("myBool", "Z", IntValue(1)))
	require.True(t, obj.SetField("myChar", "C", IntValue('C')))

	v, ok := obj.GetField("myFloat", "F")
	require.True(t, ok)
	require.Equal(t, float32(1.0), v.AsFloat())

	v, ok = obj.GetField("myDouble", "D")
	require.True(t, ok)
	require.Equal(t, 2.0, v.AsDouble())

	v, ok = obj.GetField("myInt", "I")
	require.True(t, ok)
	require.Equal(t, int32(42), v.AsInt())

	v, ok = obj.GetField("myLong", "J")
	require.True(t, ok)
	require.Equal(t, int64(42), v.AsLong())

	v, ok = obj.GetField("myBool", "Z")
	require.True(t, ok)
	require.True(t, v.AsBool())

	str := obj.ToString()
	require.Contains(t, str, "java/lang/madeUpClass")
	require.Contains(t, str, "myInt=42")
}

func TestValueAccessorsRaiseIllegalStateExceptionOnKindMismatch(t *testing.T) {
	setupValueMismatchPanic(t)

	ref := RefValue(0)
	assert.PanicsWithValue(t, excNames.IllegalStateException+": cannot read Value as int: holds Kind 4", func() {
		ref.AsInt()
	})

	i := IntValue(1)
	assert.Panics(t, func() { i.AsLong() })
	assert.Panics(t, func() { i.AsFloat() })
	assert.Panics(t, func() { i.AsDouble() })

	l := LongValue(1)
	assert.Panics(t, func() { l.AsBool() })
}

func TestArrayObjectLengthAndElements(t *testing.T) {
	Memory = memory.NewManager()
	classloader.Memory = Memory

	arrClass, err := classloader.NewArrayClass(classloader.BootstrapLoader, "[I")
	require.NoError(t, err)

	arr, err := NewArrayObject(arrClass, 5)
	require.NoError(t, err)
	require.Equal(t, 5, arr.Length())

	arr.Set(0, IntValue(10))
	arr.Set(4, IntValue(99))
	require.Equal(t, int32(10), arr.Get(0).AsInt())
	require.Equal(t, int32(99), arr.Get(4).AsInt())
	require.Equal(t, int32(0), arr.Get(1).AsInt())
}

func TestNewArrayObjectRejectsNegativeLength(t *testing.T) {
	Memory = memory.NewManager()
	classloader.Memory = Memory

	arrClass, err := classloader.NewArrayClass(classloader.BootstrapLoader, "[B")
	require.NoError(t, err)

	_, err = NewArrayObject(arrClass, -1)
	require.Error(t, err)
}

func TestNewUtf8ReadUtf8RoundTripByteArray(t *testing.T) {
	Memory = memory.NewManager()
	classloader.Memory = Memory

	loader := classloader.NewClassLoaderData("string-loader", nil)
	node := &classloader.ClassNode{
		Name:   "java/lang/String",
		Fields: []classloader.FieldNode{{Name: "value", Descriptor: "[B"}},
	}
	stringClass, err := classloader.DefineClass(loader, "java/lang/String", node, nil, "")
	require.NoError(t, err)

	strObj, err := NewUtf8(stringClass, "Hello, Unka Andoo !")
	require.NoError(t, err)
	require.Equal(t, "Hello, Unka Andoo !", ReadUtf8(strObj))
}

func TestNewUtf8ReadUtf8RoundTripCharArray(t *testing.T) {
	Memory = memory.NewManager()
	classloader.Memory = Memory

	loader := classloader.NewClassLoaderData("string-loader-jdk8", nil)
	node := &classloader.ClassNode{
		Name:   "java/lang/String",
		Fields: []classloader.FieldNode{{Name: "value", Descriptor: "[C"}},
	}
	stringClass, err := classloader.DefineClass(loader, "java/lang/String", node, nil, "")
	require.NoError(t, err)

	strObj, err := NewUtf8(stringClass, "compact strings off")
	require.NoError(t, err)
	require.Equal(t, "compact strings off", ReadUtf8(strObj))
}

func TestJavaByteArrayEquals(t *testing.T) {
	a := JavaByteArrayFromGoString("abc")
	b := JavaByteArrayFromGoString("abc")
	c := JavaByteArrayFromGoString("abd")

	require.True(t, JavaByteArrayEquals(a, b))
	require.False(t, JavaByteArrayEquals(a, c))
	require.True(t, JavaByteArrayEquals(nil, nil))
	require.False(t, JavaByteArrayEquals(a, nil))

	require.True(t, JavaByteArrayEqualsIgnoreCase(JavaByteArrayFromGoString("ABC"), a))
}

func TestMonitorReentrantAndNonOwnerExit(t *testing.T) {
	m := newMonitor()
	thread1 := "thread1"

	m.Enter(thread1)
	m.Enter(thread1) // reentrant
	require.True(t, m.IsHeldBy(thread1))
	require.True(t, m.Exit(thread1))
	require.True(t, m.IsHeldBy(thread1)) // depth was 2, still held after one exit
	require.True(t, m.Exit(thread1))
	require.False(t, m.IsHeldBy(thread1))

	require.False(t, m.Exit("someone-else"))
}
