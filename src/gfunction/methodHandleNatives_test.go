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

// setupMethodHandleNativesTestVM wires the same minimal boot subset as
// setupStringTestVM: a Memory manager, a panicking
// Globals.FuncThrowException, and java/lang/String defined under the real
// BootstrapLoader so NewUtf8/ReadUtf8 (used to encode/decode "class name
// descriptor" targets) have a class to resolve against.
func setupMethodHandleNativesTestVM(t *testing.T) {
	t.Helper()
	mgr := memory.NewManager()
	classloader.Memory = mgr
	object.Memory = mgr
	Globals = globals.InitGlobals("mhn-test")
	Globals.FuncThrowException = func(name, msg string) {
		panic(name + ": " + msg)
	}

	objNode := &classloader.ClassNode{Name: "java/lang/Object"}
	_, err := classloader.DefineClass(classloader.BootstrapLoader, "java/lang/Object", objNode, nil, "")
	require.NoError(t, err)

	node := &classloader.ClassNode{
		Name:   "java/lang/String",
		Fields: []classloader.FieldNode{{Name: "value", Descriptor: "[C"}},
	}
	stringClass, err := classloader.DefineClass(classloader.BootstrapLoader, "java/lang/String", node, nil, "")
	require.NoError(t, err)
	NewUtf8 = func(s string) (*object.Object, error) {
		return object.NewUtf8(stringClass, s)
	}
	ReadUtf8 = func(ref *object.Object) (string, error) {
		return object.ReadUtf8(ref), nil
	}
}

func encodedTarget(t *testing.T, s string) object.Value {
	t.Helper()
	obj, err := NewUtf8(s)
	require.NoError(t, err)
	return object.RefValue(obj.Handle)
}

func newObjectArray(t *testing.T, length int) *object.ArrayObject {
	t.Helper()
	loader := classloader.NewClassLoaderData("mhn-test-loader-array", classloader.BootstrapLoader)
	class, err := classloader.NewArrayClass(loader, "[Ljava/lang/Object;")
	require.NoError(t, err)
	arr, err := object.NewArrayObject(class, length)
	require.NoError(t, err)
	return arr
}

func defineBootstrapMethod(t *testing.T, name string) *classloader.InstanceClass {
	t.Helper()
	node := &classloader.ClassNode{Name: "test/Bootstrap"}
	class, err := classloader.DefineClass(classloader.BootstrapLoader, "test/Bootstrap", node, nil, "")
	require.NoError(t, err)
	class.Methods["bootstrap(Ljava/lang/Object;)Ljava/lang/Object;"] = &classloader.Method{
		Node: &classloader.MethodNode{
			Name:        "bootstrap",
			Descriptor:  "(Ljava/lang/Object;)Ljava/lang/Object;",
			AccessFlags: classloader.AccStatic,
		},
		Owner: class,
	}
	return class
}

func TestLinkCallSiteCoreResolvesTargetIntoAppendix(t *testing.T) {
	setupMethodHandleNativesTestVM(t)
	defineBootstrapMethod(t, "ok")

	target := encodedTarget(t, "test/Target doIt ()I")
	InvokeStatic = func(class *classloader.InstanceClass, name, desc string, locals []object.Value) (object.Value, error) {
		assert.Equal(t, "test/Bootstrap", class.Name())
		assert.Equal(t, "bootstrap", name)
		return target, nil
	}

	bsm := encodedTarget(t, "test/Bootstrap bootstrap (Ljava/lang/Object;)Ljava/lang/Object;")
	name := encodedTarget(t, "doIt")
	typ := encodedTarget(t, "()I")
	args := encodedTarget(t, "")
	appendixArr := newObjectArray(t, 1)
	appendixVal := object.RefValue(appendixArr.Handle)

	result := linkCallSiteCore(bsm, name, typ, args, appendixVal)
	assert.Nil(t, result)

	written := appendixArr.Get(0)
	assert.Equal(t, target.AsRef(), written.AsRef())
}

func TestLinkCallSiteWithCpIndexShufflesParams(t *testing.T) {
	setupMethodHandleNativesTestVM(t)
	defineBootstrapMethod(t, "cpidx")

	target := encodedTarget(t, "test/Target doIt ()I")
	InvokeStatic = func(class *classloader.InstanceClass, name, desc string, locals []object.Value) (object.Value, error) {
		return target, nil
	}

	caller := encodedTarget(t, "unused")
	cpIndex := object.IntValue(0)
	bsm := encodedTarget(t, "test/Bootstrap bootstrap (Ljava/lang/Object;)Ljava/lang/Object;")
	name := encodedTarget(t, "doIt")
	typ := encodedTarget(t, "()I")
	args := encodedTarget(t, "")
	appendixArr := newObjectArray(t, 1)
	appendixVal := object.RefValue(appendixArr.Handle)

	result := linkCallSiteWithCpIndex([]interface{}{caller, cpIndex, bsm, name, typ, args, appendixVal})
	assert.Nil(t, result)
	assert.Equal(t, target.AsRef(), appendixArr.Get(0).AsRef())
}

func TestLinkCallSiteCoreMalformedBootstrapThrows(t *testing.T) {
	setupMethodHandleNativesTestVM(t)
	bsm := encodedTarget(t, "not-enough-parts")
	name := encodedTarget(t, "doIt")
	typ := encodedTarget(t, "()I")
	args := encodedTarget(t, "")
	appendixArr := newObjectArray(t, 1)
	appendixVal := object.RefValue(appendixArr.Handle)

	assert.PanicsWithValue(t, excNames.IllegalArgumentException+": MethodHandleNatives.linkCallSite: malformed bootstrap method not-enough-parts", func() {
		linkCallSiteCore(bsm, name, typ, args, appendixVal)
	})
}

func TestLinkCallSiteCoreUnresolvableClassThrows(t *testing.T) {
	setupMethodHandleNativesTestVM(t)
	bsm := encodedTarget(t, "test/DoesNotExist bootstrap (Ljava/lang/Object;)Ljava/lang/Object;")
	name := encodedTarget(t, "doIt")
	typ := encodedTarget(t, "()I")
	args := encodedTarget(t, "")
	appendixArr := newObjectArray(t, 1)
	appendixVal := object.RefValue(appendixArr.Handle)

	assert.Panics(t, func() {
		linkCallSiteCore(bsm, name, typ, args, appendixVal)
	})
}

func TestLinkCallSiteCoreMissingMethodThrows(t *testing.T) {
	setupMethodHandleNativesTestVM(t)
	node := &classloader.ClassNode{Name: "test/Empty"}
	_, err := classloader.DefineClass(classloader.BootstrapLoader, "test/Empty", node, nil, "")
	require.NoError(t, err)

	bsm := encodedTarget(t, "test/Empty nope ()V")
	name := encodedTarget(t, "doIt")
	typ := encodedTarget(t, "()I")
	args := encodedTarget(t, "")
	appendixArr := newObjectArray(t, 1)
	appendixVal := object.RefValue(appendixArr.Handle)

	assert.Panics(t, func() {
		linkCallSiteCore(bsm, name, typ, args, appendixVal)
	})
}

func TestLinkCallSiteCoreNonStaticBootstrapThrows(t *testing.T) {
	setupMethodHandleNativesTestVM(t)
	node := &classloader.ClassNode{Name: "test/NonStatic"}
	class, err := classloader.DefineClass(classloader.BootstrapLoader, "test/NonStatic", node, nil, "")
	require.NoError(t, err)
	class.Methods["bootstrap(Ljava/lang/Object;)Ljava/lang/Object;"] = &classloader.Method{
		Node:  &classloader.MethodNode{Name: "bootstrap", Descriptor: "(Ljava/lang/Object;)Ljava/lang/Object;"},
		Owner: class,
	}

	bsm := encodedTarget(t, "test/NonStatic bootstrap (Ljava/lang/Object;)Ljava/lang/Object;")
	name := encodedTarget(t, "doIt")
	typ := encodedTarget(t, "()I")
	args := encodedTarget(t, "")
	appendixArr := newObjectArray(t, 1)
	appendixVal := object.RefValue(appendixArr.Handle)

	assert.PanicsWithValue(t, excNames.IllegalStateException+": MethodHandleNatives.linkCallSite: bootstrap method is not static", func() {
		linkCallSiteCore(bsm, name, typ, args, appendixVal)
	})
}

func TestLinkCallSiteCoreNullAppendixThrows(t *testing.T) {
	setupMethodHandleNativesTestVM(t)
	defineBootstrapMethod(t, "nullappendix")
	target := encodedTarget(t, "test/Target doIt ()I")
	InvokeStatic = func(class *classloader.InstanceClass, name, desc string, locals []object.Value) (object.Value, error) {
		return target, nil
	}

	bsm := encodedTarget(t, "test/Bootstrap bootstrap (Ljava/lang/Object;)Ljava/lang/Object;")
	name := encodedTarget(t, "doIt")
	typ := encodedTarget(t, "()I")
	args := encodedTarget(t, "")

	assert.PanicsWithValue(t, excNames.IllegalStateException+": MethodHandleNatives.linkCallSite: null appendix array", func() {
		linkCallSiteCore(bsm, name, typ, args, object.NullValue)
	})
}

func TestLoadLangInvokeMethodHandleNativesRegistersSignatures(t *testing.T) {
	Load_Lang_Invoke_MethodHandleNatives()
	_, ok := MethodSignatures["java/lang/invoke/MethodHandleNatives.linkCallSite(Ljava/lang/Object;ILjava/lang/Object;Ljava/lang/Object;Ljava/lang/Object;[Ljava/lang/Object;[Ljava/lang/Object;)Ljava/lang/Object;"]
	assert.True(t, ok)
	_, ok = MethodSignatures["java/lang/invoke/MethodHandleNatives.linkCallSite(Ljava/lang/Object;Ljava/lang/Object;Ljava/lang/Object;Ljava/lang/Object;[Ljava/lang/Object;[Ljava/lang/Object;)Ljava/lang/Object;"]
	assert.True(t, ok)
}
