/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nowilltolife/SSVM/src/classloader"
	"github.com/Nowilltolife/SSVM/src/excNames"
	"github.com/Nowilltolife/SSVM/src/memory"
	"github.com/Nowilltolife/SSVM/src/object"
	"github.com/Nowilltolife/SSVM/src/thread"
)

func newClinitTestVM(t *testing.T) *VM {
	t.Helper()
	vm := &VM{
		Memory:     memory.NewManager(),
		MainThread: thread.CreateThread(),
	}
	classloader.Memory = vm.Memory
	object.Memory = vm.Memory
	return vm
}

func TestInitializeStaticFieldsAppliesConstValue(t *testing.T) {
	vm := newClinitTestVM(t)
	loader := classloader.NewClassLoaderData("clinit-test-loader", nil)
	node := &classloader.ClassNode{
		Name: "test/WithConst",
		Fields: []classloader.FieldNode{
			{Name: "ANSWER", Descriptor: "I", AccessFlags: classloader.AccStatic, ConstValue: int32(42)},
		},
	}
	class, err := classloader.DefineClass(loader, "test/WithConst", node, nil, "")
	require.NoError(t, err)

	require.NoError(t, vm.initializeStaticFields(class))

	off, ok := class.StaticLayout.Offset("ANSWER", "I")
	require.True(t, ok)
	base := vm.Memory.GetStaticOffset(class)
	v := object.ReadTyped(class.StaticArea(), base+off, "I")
	assert.Equal(t, int32(42), v.AsInt())
}

func TestRunClinitInvokesNativeClinit(t *testing.T) {
	vm := newClinitTestVM(t)
	loader := classloader.NewClassLoaderData("clinit-native-loader", nil)
	node := &classloader.ClassNode{Name: "test/NativeClinit"}
	class, err := classloader.DefineClass(loader, "test/NativeClinit", node, nil, "")
	require.NoError(t, err)

	ran := false
	class.Methods["<clinit>()V"] = &classloader.Method{
		Owner:  class,
		GoFunc: func(params []interface{}) interface{} { ran = true; return nil },
	}

	require.NoError(t, vm.runClinit(class))
	assert.True(t, ran)
}

func TestRunClinitWithNoClinitIsANoop(t *testing.T) {
	vm := newClinitTestVM(t)
	loader := classloader.NewClassLoaderData("clinit-none-loader", nil)
	node := &classloader.ClassNode{Name: "test/NoClinit"}
	class, err := classloader.DefineClass(loader, "test/NoClinit", node, nil, "")
	require.NoError(t, err)

	assert.NoError(t, vm.runClinit(class))
}

func TestWrapInitErrorWrapsOrdinaryError(t *testing.T) {
	cause := errors.New("boom")
	wrapped := wrapInitError(cause)
	ve, ok := wrapped.(*VMException)
	require.True(t, ok)
	assert.Equal(t, excNames.ExceptionInInitializerError, ve.ExceptionClass)
	assert.Equal(t, cause, ve.Cause)
}

func TestWrapInitErrorDoesNotDoubleWrap(t *testing.T) {
	original := &VMException{ExceptionClass: excNames.ExceptionInInitializerError, Message: "already wrapped"}
	wrapped := wrapInitError(original)
	assert.Same(t, original, wrapped)
}
