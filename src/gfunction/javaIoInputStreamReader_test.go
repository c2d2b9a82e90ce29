/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nowilltolife/SSVM/src/classloader"
	"github.com/Nowilltolife/SSVM/src/excNames"
	"github.com/Nowilltolife/SSVM/src/globals"
	"github.com/Nowilltolife/SSVM/src/memory"
	"github.com/Nowilltolife/SSVM/src/object"
)

// setupIsrTestVM wires the same minimal subset of jvm.NewVM's boot sequence
// as setupStringTestVM does, for the pieces InputStreamReader's natives
// need: a Memory manager (array allocation) and a panicking
// Globals.FuncThrowException (throwException's only way to signal a fault
// from a GFunc).
func setupIsrTestVM(t *testing.T) {
	t.Helper()
	mgr := memory.NewManager()
	classloader.Memory = mgr
	object.Memory = mgr
	Globals = globals.InitGlobals("isr-test")
	Globals.FuncThrowException = func(name, msg string) {
		panic(name + ": " + msg)
	}
}

func newCharArrayObject(t *testing.T, length int) *object.ArrayObject {
	t.Helper()
	loader := classloader.NewClassLoaderData("isr-test-loader", nil)
	class, err := classloader.NewArrayClass(loader, "[C")
	require.NoError(t, err)
	arr, err := object.NewArrayObject(class, length)
	require.NoError(t, err)
	return arr
}

func TestInputStreamReaderInitBindsUnderlyingFile(t *testing.T) {
	setupIsrTestVM(t)
	f, err := os.CreateTemp(t.TempDir(), "isr")
	require.NoError(t, err)
	defer f.Close()

	inHandle := memory.Handle(1001)
	setFileFor(inHandle, f)
	defer clearFileFor(inHandle)

	thisHandle := memory.Handle(1002)
	this := object.RefValue(thisHandle)
	in := object.RefValue(inHandle)

	result := inputStreamReaderInit([]interface{}{this, in})
	assert.Nil(t, result)

	bound, ok := fileFor(thisHandle)
	assert.True(t, ok)
	assert.Same(t, f, bound)
	clearFileFor(thisHandle)
}

func TestInputStreamReaderInitWithoutUnderlyingFileThrows(t *testing.T) {
	setupIsrTestVM(t)
	thisHandle := memory.Handle(1003)
	in := object.RefValue(memory.Handle(9999))

	assert.Panics(t, func() {
		inputStreamReaderInit([]interface{}{object.RefValue(thisHandle), in})
	})
}

func TestInputStreamReaderReadOneCharAndEOF(t *testing.T) {
	setupIsrTestVM(t)
	f, err := os.CreateTemp(t.TempDir(), "isr")
	require.NoError(t, err)
	defer f.Close()
	_, err = f.WriteString("A")
	require.NoError(t, err)
	_, err = f.Seek(0, 0)
	require.NoError(t, err)

	thisHandle := memory.Handle(2001)
	setFileFor(thisHandle, f)
	defer clearFileFor(thisHandle)
	this := object.RefValue(thisHandle)

	result := isrReadOneChar([]interface{}{this})
	v, ok := result.(object.Value)
	require.True(t, ok)
	assert.Equal(t, int32('A'), v.AsInt())

	result = isrReadOneChar([]interface{}{this})
	v, ok = result.(object.Value)
	require.True(t, ok)
	assert.Equal(t, int32(-1), v.AsInt())
}

func TestInputStreamReaderReadWithoutFileThrows(t *testing.T) {
	setupIsrTestVM(t)
	this := object.RefValue(memory.Handle(2002))
	assert.Panics(t, func() {
		isrReadOneChar([]interface{}{this})
	})
}

func TestInputStreamReaderReadCharBufferSubset(t *testing.T) {
	setupIsrTestVM(t)
	f, err := os.CreateTemp(t.TempDir(), "isr")
	require.NoError(t, err)
	defer f.Close()
	_, err = f.WriteString("hello")
	require.NoError(t, err)
	_, err = f.Seek(0, 0)
	require.NoError(t, err)

	thisHandle := memory.Handle(3001)
	setFileFor(thisHandle, f)
	defer clearFileFor(thisHandle)
	this := object.RefValue(thisHandle)

	arr := newCharArrayObject(t, 10)
	arrVal := object.RefValue(arr.Handle)

	result := isrReadCharBufferSubset([]interface{}{this, arrVal, object.IntValue(0), object.IntValue(5)})
	v, ok := result.(object.Value)
	require.True(t, ok)
	assert.Equal(t, int32(5), v.AsInt())

	for i, want := range []byte("hello") {
		c := arr.Get(i)
		assert.Equal(t, int32(want), c.AsInt())
	}
}

func TestInputStreamReaderReadCharBufferSubsetOutOfBoundsThrows(t *testing.T) {
	setupIsrTestVM(t)
	f, err := os.CreateTemp(t.TempDir(), "isr")
	require.NoError(t, err)
	defer f.Close()

	thisHandle := memory.Handle(3002)
	setFileFor(thisHandle, f)
	defer clearFileFor(thisHandle)
	this := object.RefValue(thisHandle)

	arr := newCharArrayObject(t, 4)
	arrVal := object.RefValue(arr.Handle)

	assert.PanicsWithValue(t, excNames.ArrayIndexOutOfBoundsException+": InputStreamReader.read: offset/length out of bounds", func() {
		isrReadCharBufferSubset([]interface{}{this, arrVal, object.IntValue(2), object.IntValue(10)})
	})
}

func TestInputStreamReaderReadyReflectsFileState(t *testing.T) {
	setupIsrTestVM(t)
	f, err := os.CreateTemp(t.TempDir(), "isr")
	require.NoError(t, err)
	defer f.Close()

	thisHandle := memory.Handle(4001)
	setFileFor(thisHandle, f)
	defer clearFileFor(thisHandle)
	this := object.RefValue(thisHandle)

	result := isrReady([]interface{}{this})
	v, ok := result.(object.Value)
	require.True(t, ok)
	assert.Equal(t, int32(1), v.AsInt())
}

func TestInputStreamReaderReadyWithoutFileIsFalse(t *testing.T) {
	setupIsrTestVM(t)
	this := object.RefValue(memory.Handle(4002))
	result := isrReady([]interface{}{this})
	v, ok := result.(object.Value)
	require.True(t, ok)
	assert.Equal(t, int32(0), v.AsInt())
}

func TestInputStreamReaderCloseClearsFileTable(t *testing.T) {
	setupIsrTestVM(t)
	f, err := os.CreateTemp(t.TempDir(), "isr")
	require.NoError(t, err)

	thisHandle := memory.Handle(5001)
	setFileFor(thisHandle, f)
	this := object.RefValue(thisHandle)

	result := isrClose([]interface{}{this})
	assert.Nil(t, result)

	_, ok := fileFor(thisHandle)
	assert.False(t, ok)
}

func TestInputStreamReaderGetEncodingTraps(t *testing.T) {
	setupIsrTestVM(t)
	assert.Panics(t, func() {
		trapFunction([]interface{}{object.RefValue(memory.Handle(6001))})
	})
}
