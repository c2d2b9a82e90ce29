/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"fmt"

	"github.com/Nowilltolife/SSVM/src/classloader"
	"github.com/Nowilltolife/SSVM/src/excNames"
	"github.com/Nowilltolife/SSVM/src/frames"
	"github.com/Nowilltolife/SSVM/src/memory"
	"github.com/Nowilltolife/SSVM/src/object"
	"github.com/Nowilltolife/SSVM/src/shutdown"
	"github.com/Nowilltolife/SSVM/src/thread"
	"github.com/Nowilltolife/SSVM/src/types"
)

// This file is the Helper / Operations component (spec §4.4): the canonical
// entry points every other part of the VM goes through rather than poking
// at classloader/object/memory directly -- method invocation, string
// round-tripping, array conversion, static/default field initialization,
// defineClass, exception construction, and the small bounds-checking family
// the engine's array/invoke opcodes call before touching memory.

// buildFrame constructs a fresh Frame for m, sized to its own max-stack/
// max-locals (spec §4.4's invokeStatic/Virtual/Exact contract: "builds a
// fresh frame with maxStack/maxLocals sized to the method; copies locals
// into the local table"). m must have bytecode (m.GoFunc == nil); gfunction
// natives are invoked directly by the caller instead.
func (vm *VM) buildFrame(m *classloader.Method, owner *classloader.InstanceClass, locals []object.Value) (*frames.Frame, error) {
	if m.Node == nil {
		return nil, fmt.Errorf("%s: %s has no bytecode to build a frame from", excNames.IllegalStateException, owner.InternalName)
	}
	code := m.Node.CodeAttr
	f := frames.CreateFrame(code.MaxStack)
	f.ClName = owner.InternalName
	f.MethName = m.Node.Name
	f.MethType = m.Node.Descriptor
	if owner.Node != nil {
		f.CP = &owner.Node.CP
	}
	f.Meth = code.Code
	f.Class = owner
	f.Method = m
	f.ExceptionTable = code.Exceptions
	f.Locals = make([]object.Value, code.MaxLocals)
	copy(f.Locals, locals)
	return f, nil
}

// invoke runs m (Java bytecode or a gfunction bridge) to completion and
// returns its result value: the bytecode method's return value, or the
// GoFunc's return value wrapped as a Value (native methods).
func (vm *VM) invoke(m *classloader.Method, owner *classloader.InstanceClass, locals []object.Value) (object.Value, error) {
	if m.GoFunc != nil {
		args := make([]interface{}, len(locals))
		for i, l := range locals {
			args[i] = l
		}
		ret := m.GoFunc(args)
		if v, ok := ret.(object.Value); ok {
			return v, nil
		}
		return object.Value{}, nil
	}
	if vm.Accelerator != nil && m.Node != nil && m.Node.CodeAttr.Code != nil {
		if vm.Accelerator.Offer(owner, m) {
			return vm.Accelerator.Invoke(owner, m, locals)
		}
	}
	f, err := vm.buildFrame(m, owner, locals)
	if err != nil {
		return object.Value{}, err
	}
	return vm.runFrame(&vm.MainThread, f)
}

// InvokeStatic is spec §4.4's invokeStatic: ensures class is initialized,
// resolves a static method by exact (name, desc), and runs it.
func (vm *VM) InvokeStatic(class *classloader.InstanceClass, name, desc string, locals []object.Value) (object.Value, error) {
	if err := class.Initialize(&vm.MainThread); err != nil {
		return object.Value{}, err
	}
	m, err := classloader.ResolveStaticMethod(class, name, desc)
	if err != nil {
		return object.Value{}, wrapAsVMException(err)
	}
	return vm.invoke(m, class, locals)
}

// InvokeVirtual is spec §4.4's invokeVirtual: locals[0] is the receiver;
// the search starts at the receiver's concrete class (java/lang/Object for
// arrays), per §4.3's virtual-dispatch algorithm.
func (vm *VM) InvokeVirtual(receiverClass classloader.JavaClass, name, desc string, locals []object.Value) (object.Value, error) {
	if len(locals) == 0 {
		return object.Value{}, wrapAsVMException(fmt.Errorf("%s: invokeVirtual requires a receiver in locals[0]", excNames.IllegalStateException))
	}
	dispatchClass, err := classloader.ReceiverClassForDispatch(receiverClass)
	if err != nil {
		return object.Value{}, wrapAsVMException(err)
	}
	m, err := classloader.ResolveVirtualMethod(dispatchClass, name, desc)
	if err != nil {
		return object.Value{}, wrapAsVMException(err)
	}
	return vm.invoke(m, m.Owner, locals)
}

// InvokeInterface implements full interface-method resolution rather than
// deferring to invokeVirtual (spec §9's flagged open question, resolved per
// DESIGN.md: classloader.ResolveInterfaceMethod does the real MRO walk).
func (vm *VM) InvokeInterface(receiver *classloader.InstanceClass, name, desc string, locals []object.Value) (object.Value, error) {
	m, err := classloader.ResolveInterfaceMethod(receiver, name, desc)
	if err != nil {
		return object.Value{}, wrapAsVMException(err)
	}
	return vm.invoke(m, m.Owner, locals)
}

// InvokeExact runs m directly with no resolution, per spec §4.4: used for
// invokespecial (constructors, private methods, super calls) where the
// callee is already known exactly.
func (vm *VM) InvokeExact(class *classloader.InstanceClass, m *classloader.Method, locals []object.Value) (object.Value, error) {
	if m.IsStatic() {
		return object.Value{}, wrapAsVMException(fmt.Errorf("%s: %s.%s%s is static", excNames.IllegalStateException, class.InternalName, m.Node.Name, m.Node.Descriptor))
	}
	return vm.invoke(m, class, locals)
}

// wrapAsVMException promotes a plain Go error (typically one of the
// classloader package's "ExceptionName: detail" errors) into a VMException
// the engine's exception-table walk can match by class name. An error
// already a *VMException passes through unchanged.
func wrapAsVMException(err error) error {
	if err == nil {
		return nil
	}
	if ve, ok := err.(*VMException); ok {
		return ve
	}
	msg := err.Error()
	for i := 0; i < len(msg)-1; i++ {
		if msg[i] == ':' && msg[i+1] == ' ' {
			cls := msg[:i]
			if isInternalClassName(cls) {
				return &VMException{ExceptionClass: cls, Message: msg[i+2:], Cause: err}
			}
			break
		}
	}
	return &VMException{ExceptionClass: excNames.RuntimeException, Message: msg, Cause: err}
}

func isInternalClassName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '/' {
			return true
		}
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '$' || c == '_') {
			return false
		}
	}
	return false
}

// raise materializes className as a live exception instance and returns it
// as a *VMException, for use by engine code that wants to return an error
// through the normal Go call chain (as opposed to ThrowException, which
// panics for callers with no error-return slot to use).
func (vm *VM) raise(className, msg string) error {
	ve, err := vm.NewException(className, msg, nil)
	if err != nil {
		return err
	}
	return ve
}

// ThrowException is the closure installed as globals.Globals.FuncThrowException
// (spec §4.4's throwException), for callers (classloader, gfunction natives)
// with no VMException-shaped return slot: it panics with the materialized
// exception, and runFrame's entry points recover it back into a normal error.
func (vm *VM) ThrowException(exceptionName, msg string) {
	panic(vm.raise(exceptionName, msg))
}

// NewException constructs an exception instance via <init>()V (spec §4.4)
// and writes detailMessage/cause directly into its fields rather than
// calling the (message, cause) constructor overloads -- the exception
// classes' own constructors ultimately do the same field writes, and
// calling <init>()V plus direct field writes avoids having to resolve which
// overload signature is present on an arbitrary throwable class.
func (vm *VM) NewException(className, message string, cause *object.Object) (*VMException, error) {
	class, resolveErr := classloader.ResolveClass(classloader.BootstrapLoader, className)
	if resolveErr != nil {
		// the exception class itself could not be loaded; still report
		// something usable rather than failing the original exception.
		return &VMException{ExceptionClass: className, Message: message}, nil
	}
	if err := class.Initialize(&vm.MainThread); err != nil {
		return nil, err
	}
	instance := object.NewObject(class)
	vm.initializeDefaultValues(instance, nil)

	if ctor, err := classloader.FindMethod(class, "<init>", "()V"); err == nil {
		if _, err := vm.invoke(ctor, ctor.Owner, []object.Value{object.RefValue(instance.Handle)}); err != nil {
			return nil, err
		}
	}
	if message != "" {
		if strObj, err := vm.NewUtf8(message); err == nil {
			instance.SetField("detailMessage", "Ljava/lang/String;", object.RefValue(strObj.Handle))
		}
	}
	if cause != nil {
		instance.SetField("cause", "Ljava/lang/Throwable;", object.RefValue(cause.Handle))
	}
	return &VMException{ExceptionClass: className, Message: message, Throwable: instance}, nil
}

func (vm *VM) stringClass() (*classloader.InstanceClass, error) {
	sc, err := classloader.ResolveClass(classloader.BootstrapLoader, vm.Globals.Symbols.String)
	if err != nil {
		return nil, err
	}
	if err := sc.Initialize(&vm.MainThread); err != nil {
		return nil, err
	}
	return sc, nil
}

// NewUtf8 allocates a java.lang.String from a host string (spec §4.4),
// laying out its value field as [B or [C per whichever shape the loaded
// java/lang/String class declares (object.NewUtf8 probes this at runtime).
func (vm *VM) NewUtf8(s string) (*object.Object, error) {
	sc, err := vm.stringClass()
	if err != nil {
		return nil, err
	}
	return object.NewUtf8(sc, s)
}

// ReadUtf8 is the inverse of NewUtf8: nil in, "" out; otherwise asserts ref
// is (a subclass of, though in practice always exactly) java.lang.String
// and copies its backing array out as a host string.
func (vm *VM) ReadUtf8(ref *object.Object) (string, error) {
	if ref == nil {
		return "", nil
	}
	sc, err := vm.stringClass()
	if err != nil {
		return "", err
	}
	if ref.Class != sc && !ref.Class.IsSubclassOf(sc) {
		return "", vm.raise(excNames.ClassCastException, ref.Class.InternalName+" cannot be cast to java/lang/String")
	}
	return object.ReadUtf8(ref), nil
}

// toVMArray is the shared core of the ToVM* family: allocate a "[desc"
// array of length n and fill it element-by-element via get.
func (vm *VM) toVMArray(loader *classloader.ClassLoaderData, desc string, n int, get func(i int) object.Value) (*object.ArrayObject, error) {
	ac, err := classloader.NewArrayClass(loader, "["+desc)
	if err != nil {
		return nil, err
	}
	arr, err := object.NewArrayObject(ac, n)
	if err != nil {
		return nil, wrapAsVMException(vm.negativeArraySize(n))
	}
	for i := 0; i < n; i++ {
		arr.Set(i, get(i))
	}
	return arr, nil
}

func (vm *VM) negativeArraySize(n int) error {
	if n >= 0 {
		return nil
	}
	return vm.raise(excNames.NegativeArraySizeException, fmt.Sprintf("%d", n))
}

func (vm *VM) ToVMInts(a []int32) (*object.ArrayObject, error) {
	return vm.toVMArray(classloader.BootstrapLoader, types.Int, len(a), func(i int) object.Value { return object.IntValue(a[i]) })
}
func (vm *VM) ToJavaInts(arr *object.ArrayObject) []int32 {
	out := make([]int32, arr.Length())
	for i := range out {
		out[i] = arr.Get(i).AsInt()
	}
	return out
}

func (vm *VM) ToVMLongs(a []int64) (*object.ArrayObject, error) {
	return vm.toVMArray(classloader.BootstrapLoader, types.Long, len(a), func(i int) object.Value { return object.LongValue(a[i]) })
}
func (vm *VM) ToJavaLongs(arr *object.ArrayObject) []int64 {
	out := make([]int64, arr.Length())
	for i := range out {
		out[i] = arr.Get(i).AsLong()
	}
	return out
}

func (vm *VM) ToVMFloats(a []float32) (*object.ArrayObject, error) {
	return vm.toVMArray(classloader.BootstrapLoader, types.Float, len(a), func(i int) object.Value { return object.FloatValue(a[i]) })
}
func (vm *VM) ToJavaFloats(arr *object.ArrayObject) []float32 {
	out := make([]float32, arr.Length())
	for i := range out {
		out[i] = arr.Get(i).AsFloat()
	}
	return out
}

func (vm *VM) ToVMDoubles(a []float64) (*object.ArrayObject, error) {
	return vm.toVMArray(classloader.BootstrapLoader, types.Double, len(a), func(i int) object.Value { return object.DoubleValue(a[i]) })
}
func (vm *VM) ToJavaDoubles(arr *object.ArrayObject) []float64 {
	out := make([]float64, arr.Length())
	for i := range out {
		out[i] = arr.Get(i).AsDouble()
	}
	return out
}

func (vm *VM) ToVMBytes(a []int8) (*object.ArrayObject, error) {
	return vm.toVMArray(classloader.BootstrapLoader, types.Byte, len(a), func(i int) object.Value { return object.IntValue(int32(a[i])) })
}
func (vm *VM) ToJavaBytes(arr *object.ArrayObject) []int8 {
	out := make([]int8, arr.Length())
	for i := range out {
		out[i] = int8(arr.Get(i).AsInt())
	}
	return out
}

func (vm *VM) ToVMShorts(a []int16) (*object.ArrayObject, error) {
	return vm.toVMArray(classloader.BootstrapLoader, types.Short, len(a), func(i int) object.Value { return object.IntValue(int32(a[i])) })
}
func (vm *VM) ToJavaShorts(arr *object.ArrayObject) []int16 {
	out := make([]int16, arr.Length())
	for i := range out {
		out[i] = int16(arr.Get(i).AsInt())
	}
	return out
}

func (vm *VM) ToVMChars(a []uint16) (*object.ArrayObject, error) {
	return vm.toVMArray(classloader.BootstrapLoader, types.Char, len(a), func(i int) object.Value { return object.IntValue(int32(a[i])) })
}
func (vm *VM) ToJavaChars(arr *object.ArrayObject) []uint16 {
	out := make([]uint16, arr.Length())
	for i := range out {
		out[i] = uint16(arr.Get(i).AsInt())
	}
	return out
}

func (vm *VM) ToVMBools(a []bool) (*object.ArrayObject, error) {
	return vm.toVMArray(classloader.BootstrapLoader, types.Bool, len(a), func(i int) object.Value {
		if a[i] {
			return object.IntValue(1)
		}
		return object.IntValue(0)
	})
}
func (vm *VM) ToJavaBools(arr *object.ArrayObject) []bool {
	out := make([]bool, arr.Length())
	for i := range out {
		out[i] = arr.Get(i).AsBool()
	}
	return out
}

// ToVMRefs and ToJavaRefs are the reference-kind member of the toVMX/
// toJavaX family: elementClass is the element ArrayClass the caller wants
// (object arrays are not fixed to one element type the way primitive
// arrays are).
func (vm *VM) ToVMRefs(elementClass *classloader.ArrayClass, refs []memory.Handle) (*object.ArrayObject, error) {
	arr, err := object.NewArrayObject(elementClass, len(refs))
	if err != nil {
		return nil, wrapAsVMException(vm.negativeArraySize(len(refs)))
	}
	for i, r := range refs {
		arr.Set(i, object.RefValue(r))
	}
	return arr, nil
}
func (vm *VM) ToJavaRefs(arr *object.ArrayObject) []memory.Handle {
	out := make([]memory.Handle, arr.Length())
	for i := range out {
		out[i] = arr.Get(i).AsRef()
	}
	return out
}

// resolveClassDescriptorOrName resolves either a bare internal class name
// ("java/lang/String") or a full array descriptor ("[[I") to its mirror,
// the shared leaf of valueFromLdc's class-descriptor branch (spec §4.1).
func (vm *VM) resolveClassDescriptorOrName(loader *classloader.ClassLoaderData, name string) (classloader.JavaClass, error) {
	if len(name) > 0 && name[0] == '[' {
		return classloader.NewArrayClass(loader, name)
	}
	if pc := classloader.GetPrimitiveClass(name); pc != nil {
		return pc, nil
	}
	return classloader.ResolveClass(loader, name)
}

// valueFromLdc converts the constant-pool entry at cpIndex to a Value, per
// spec §4.1: integral/character/boolean constants become int32, long/float/
// double keep their width, strings are interned VM strings, class constants
// resolve (recursively, for arrays) to the referenced class's mirror.
func (vm *VM) valueFromLdc(loader *classloader.ClassLoaderData, cp *classloader.CPool, cpIndex int) (object.Value, error) {
	entry := classloader.FetchCPentry(cp, cpIndex)
	switch entry.RetType {
	case classloader.IsInt64:
		if entry.EntryType == classloader.LongConst {
			return object.LongValue(entry.IntVal), nil
		}
		return object.IntValue(int32(entry.IntVal)), nil
	case classloader.IsFloat64:
		if entry.EntryType == classloader.DoubleConst {
			return object.DoubleValue(entry.FloatVal), nil
		}
		return object.FloatValue(float32(entry.FloatVal)), nil
	case classloader.IsStringAddr:
		switch entry.EntryType {
		case classloader.StringConst:
			strObj, err := vm.NewUtf8(*entry.StringVal)
			if err != nil {
				return object.Value{}, err
			}
			return object.RefValue(strObj.Handle), nil
		case classloader.ClassRef:
			jc, err := vm.resolveClassDescriptorOrName(loader, *entry.StringVal)
			if err != nil {
				return object.Value{}, wrapAsVMException(err)
			}
			return object.RefValue(jc.GetOop()), nil
		default:
			return object.Value{}, fmt.Errorf("%s: unsupported ldc constant kind %d", excNames.IllegalStateException, entry.EntryType)
		}
	default:
		return object.Value{}, fmt.Errorf("%s: unresolvable constant-pool entry at index %d", excNames.IllegalStateException, cpIndex)
	}
}

// valueFromFieldConst converts an already-parsed ConstantValue attribute
// (FieldNode.ConstValue, a host-typed Go value the external parser already
// extracted) into a Value of the field's declared descriptor, for
// initializeStaticFields.
func (vm *VM) valueFromFieldConst(desc string, raw interface{}) (object.Value, error) {
	switch desc {
	case types.Long:
		if v, ok := raw.(int64); ok {
			return object.LongValue(v), nil
		}
	case types.Double:
		switch v := raw.(type) {
		case float64:
			return object.DoubleValue(v), nil
		case float32:
			return object.DoubleValue(float64(v)), nil
		}
	case types.Float:
		switch v := raw.(type) {
		case float32:
			return object.FloatValue(v), nil
		case float64:
			return object.FloatValue(float32(v)), nil
		}
	case types.Int, types.Short, types.Byte, types.Char, types.Bool:
		switch v := raw.(type) {
		case int32:
			return object.IntValue(v), nil
		case int64:
			return object.IntValue(int32(v)), nil
		case int:
			return object.IntValue(int32(v)), nil
		}
	case "Ljava/lang/String;":
		if s, ok := raw.(string); ok {
			strObj, err := vm.NewUtf8(s)
			if err != nil {
				return object.Value{}, err
			}
			return object.RefValue(strObj.Handle), nil
		}
	}
	return object.Value{}, fmt.Errorf("%s: unrecognized constant value %v for descriptor %s", excNames.IllegalStateException, raw, desc)
}

// initializeStaticFields writes each static field's declared constant (or
// its default value, if none) into class's static storage, per spec §4.4.
// A layout inconsistency here is a host bug, not a VMException (spec §4.4:
// "On layout inconsistency, raise PanicException").
func (vm *VM) initializeStaticFields(class *classloader.InstanceClass) error {
	if class.Node == nil {
		return nil
	}
	base := vm.Memory.GetStaticOffset(class)
	for _, f := range class.Node.Fields {
		if !f.IsStatic() {
			continue
		}
		v := object.GetDefaultValue(f.Descriptor)
		if f.ConstValue != nil {
			cv, err := vm.valueFromFieldConst(f.Descriptor, f.ConstValue)
			if err != nil {
				return err
			}
			v = cv
		}
		off, ok := class.StaticLayout.Offset(f.Name, f.Descriptor)
		if !ok {
			shutdown.Panicf("layout inconsistency: static field %s%s not found in %s's static layout", f.Name, f.Descriptor, class.InternalName)
		}
		object.WriteTyped(class.StaticArea(), base+off, f.Descriptor, v)
	}
	return nil
}

// initializeDefaultValues zeroes every field in obj's virtual layout,
// optionally filtered to the fields declared by one ancestor
// (declaringClass), per spec §4.4. Passing a nil declaringClass zeroes the
// whole layout.
func (vm *VM) initializeDefaultValues(obj *object.Object, declaringClass *classloader.InstanceClass) {
	var declared map[classloader.FieldKey]bool
	if declaringClass != nil && declaringClass.Node != nil {
		declared = make(map[classloader.FieldKey]bool, len(declaringClass.Node.Fields))
		for _, f := range declaringClass.Node.Fields {
			if !f.IsStatic() {
				declared[classloader.FieldKey{Name: f.Name, Desc: f.Descriptor}] = true
			}
		}
	}
	for _, k := range obj.Class.VirtualLayout.Fields() {
		if declared != nil && !declared[k] {
			continue
		}
		obj.SetField(k.Name, k.Desc, object.GetDefaultValue(k.Desc))
	}
}

// DefineClass is spec §4.4's defineClass: bounds-check off/len against
// bytes, parse, verify the requested name agrees with the parsed internal
// name, and link via classloader.DefineClass.
func (vm *VM) DefineClass(loader *classloader.ClassLoaderData, name string, bytes []byte, off, length int, protectionDomain, source string) (*classloader.InstanceClass, error) {
	if off < 0 || length < 0 || off+length < 0 || len(bytes)-(off+length) < 0 {
		return nil, vm.raise(excNames.ArrayIndexOutOfBoundsException,
			fmt.Sprintf("off=%d len=%d bytes.length=%d", off, length, len(bytes)))
	}
	if classloader.ParseClass == nil {
		return nil, vm.raise(excNames.ClassNotFoundException, "no class-file parser installed")
	}
	node, err := classloader.ParseClass(bytes[off : off+length])
	if err != nil {
		return nil, vm.raise(excNames.ClassNotFoundException, err.Error())
	}
	requested := name
	if node.Name != requested {
		return nil, vm.raise(excNames.ClassNotFoundException,
			fmt.Sprintf("%s (wanted: %s)", dotted(node.Name), dotted(requested)))
	}
	if _, ok := loader.Lookup(requested); ok {
		return nil, vm.raise(excNames.ClassNotFoundException, requested+" already defined")
	}
	c, err := classloader.DefineClass(loader, requested, node, nil, protectionDomain)
	if err != nil {
		return nil, wrapAsVMException(err)
	}
	return c, nil
}

func dotted(internalName string) string {
	out := []byte(internalName)
	for i, c := range out {
		if c == '/' {
			out[i] = '.'
		}
	}
	return string(out)
}

func (vm *VM) rangeCheck(index, length int) error {
	if index < 0 || index >= length {
		return vm.raise(excNames.ArrayIndexOutOfBoundsException, fmt.Sprintf("Index %d out of bounds for length %d", index, length))
	}
	return nil
}

func (vm *VM) checkArrayLength(length int32) error {
	if length < 0 {
		return vm.raise(excNames.NegativeArraySizeException, fmt.Sprintf("%d", length))
	}
	return nil
}

func (vm *VM) checkNotNull(v object.Value) error {
	if v.IsNull() {
		return vm.raise(excNames.NullPointerException, "")
	}
	return nil
}

func (vm *VM) checkArray(class classloader.JavaClass) error {
	if _, ok := class.(*classloader.ArrayClass); !ok {
		return vm.raise(excNames.IllegalArgumentException, "not an array class: "+class.Name())
	}
	return nil
}

// threadRunnable is the JVMS java.lang.Thread.State-adjacent threadStatus
// value for "runnable" (spec §4.4's screenVmThread contract).
const threadRunnable = 0x0004

// ScreenVmThread copies a host thread's name/priority/daemon flag onto
// threadMirror (an instance of java.lang.Thread) and marks it runnable,
// per spec §4.4's screenVmThread.
func (vm *VM) ScreenVmThread(threadMirror *object.Object, th *thread.VMThread, priority int32, daemon bool) error {
	nameObj, err := vm.NewUtf8(th.Name)
	if err != nil {
		return err
	}
	threadMirror.SetField("name", "Ljava/lang/String;", object.RefValue(nameObj.Handle))
	threadMirror.SetField("priority", "I", object.IntValue(priority))
	boolVal := int32(0)
	if daemon {
		boolVal = 1
	}
	threadMirror.SetField("daemon", "Z", object.IntValue(boolVal))
	threadMirror.SetField("threadStatus", "I", object.IntValue(threadRunnable))
	return nil
}
