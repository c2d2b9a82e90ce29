/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package gfunction is the native-method bridge (spec §4.4): Go
// implementations of the handful of JDK methods that cannot be expressed as
// interpretable bytecode (Thread.sleep, String's internal layout probing,
// method-handle linkage, ...), registered by fully-qualified (class, name,
// descriptor) key and wired onto a class's declared native methods once
// classloader.DefineClass links it.
//
// This mirrors the teacher's own MethodSignatures/GMeth table and per-class
// Load_X() registration functions (javaLangString.go, javaLangThread.go,
// ...); what changed is the method body signatures underneath, adapted from
// the teacher's old object.Object.FieldTable/unsafe-pointer model to this
// repo's Value/memory.Handle model.
package gfunction

import (
	"github.com/Nowilltolife/SSVM/src/classloader"
	"github.com/Nowilltolife/SSVM/src/globals"
	"github.com/Nowilltolife/SSVM/src/object"
)

// GMeth is one native-method registration: how many operand-stack slots the
// engine's invoke machinery already accounts for (informational -- the real
// slot count comes from the method's own descriptor via popArgs) and the Go
// function implementing it.
type GMeth struct {
	ParamSlots int
	GFunction  classloader.GFunc
}

// MethodSignatures is the fully-qualified-name-keyed native method table,
// exactly the teacher's own map shape and key convention
// ("class/name.name(desc)desc").
var MethodSignatures = make(map[string]GMeth)

// Globals, NewUtf8, and ReadUtf8 are installed by the jvm package at VM boot
// -- the same package-level-function-variable indirection
// classloader.RunClinit/InitErrorWrapper and globals.Globals.FuncThrowException
// use to let this package and jvm each import the other's concerns without
// importing each other's package (gfunction -> classloader/object/globals;
// jvm -> gfunction).
var Globals *globals.Globals
var NewUtf8 func(s string) (*object.Object, error)
var ReadUtf8 func(ref *object.Object) (string, error)

// InvokeStatic lets a native method (methodHandleNatives.go's bootstrap
// dispatch, chiefly) call back into the interpreter for an arbitrary
// static method -- the same package-level indirection as NewUtf8/ReadUtf8,
// since a GFunc has no *jvm.VM receiver to call jvm.VM.InvokeStatic on
// directly.
var InvokeStatic func(class *classloader.InstanceClass, name, desc string, locals []object.Value) (object.Value, error)

// throwException raises a VM exception from within a native method body.
// Globals.FuncThrowException panics (see jvm.VM.ThrowException); this
// never actually returns, but every GFunc site calling it needs some
// interface{} expression to return for the compiler's sake.
func throwException(name, msg string) interface{} {
	Globals.FuncThrowException(name, msg)
	return nil
}

var loaded = false

// LoadAll registers every natively-bridged class this package implements.
// Idempotent: the jvm package calls it once per VM, but nothing breaks if
// it is called again (map (re-)assignment, not append).
func LoadAll() {
	if loaded {
		return
	}
	loaded = true
	Load_Lang_Object()
	Load_Lang_String()
	Load_Lang_StringBuilder()
	Load_Lang_Thread()
	Load_Util_HashMap()
	Load_Io_InputStreamReader()
	Load_Io_FileSystem()
	Load_Jdk_Internal_Misc_ScopedMemoryAccess()
	Load_Lang_Invoke_MethodHandleNatives()
}

// Wire attaches every registered native method onto class's own declared
// methods (spec §4.4: a native method is declared in the class file like
// any other method; Wire is what actually attaches Go code to its
// Method.GoFunc once the class is defined). Installed as
// classloader.WireNatives by the jvm package at boot.
func Wire(class *classloader.InstanceClass) {
	if class.Node == nil {
		return
	}
	prefix := class.InternalName + "."
	for key, m := range class.Methods {
		if m.Node == nil || !m.Node.IsNative() {
			continue
		}
		if g, ok := MethodSignatures[prefix+key]; ok {
			m.GoFunc = g.GFunction
		}
	}
}

// justReturn is the GFunction for natives this VM treats as a no-op
// (registerNatives() and similar JDK bootstrapping hooks that exist only to
// let the real JVM wire its own intrinsics).
func justReturn(params []interface{}) interface{} { return nil }
