/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package object

import (
	"fmt"
	"strings"

	"github.com/Nowilltolife/SSVM/src/classloader"
	"github.com/Nowilltolife/SSVM/src/memory"
)

// Memory is the Manager backing every Object/ArrayObject this package hands
// out. Installed by the jvm package at boot, mirroring classloader.Memory's
// same indirection (this package and classloader must agree on one Manager
// instance per VM, spec §9).
var Memory *memory.Manager

// Object is a heap instance: its class mirror plus the memory.Handle to its
// instance-field storage (spec §4.2: "Object wraps a Handle and a class
// reference"). It never holds field values directly -- those live in the
// memory region, read and written through the class's VirtualLayout, the
// same separation of "what a field is" (classloader) from "where its bytes
// are" (memory) spec §3 draws for the whole engine.
type Object struct {
	Class  *classloader.InstanceClass
	Handle memory.Handle
}

// NewObject allocates zeroed instance storage for class and returns the
// Object wrapping it (spec §4.4's "allocate, zero-init, run <init>" object-
// creation sequence, minus the <init> call itself which the jvm package's
// invokeSpecial handling performs).
func NewObject(class *classloader.InstanceClass) *Object {
	h := Memory.NewInstance(class, class.VirtualLayout.Size())
	return &Object{Class: class, Handle: h}
}

// FromHandle reconstructs the Object wrapper for a heap handle obtained from
// the operand stack (a Value's Ref field only carries the handle, not the
// class pointer, so this is how engine code turns "a reference on the
// stack" back into something GetField/SetField/Monitor can be called on).
// Returns nil for the null handle or a handle whose region was not
// allocated as an instance (e.g. it names an array).
func FromHandle(h memory.Handle) *Object {
	if h == 0 {
		return nil
	}
	r := Memory.Region(h)
	if r == nil {
		return nil
	}
	class, ok := r.Class().(*classloader.InstanceClass)
	if !ok {
		return nil
	}
	return &Object{Class: class, Handle: h}
}

// ArrayFromHandle is FromHandle's array-object counterpart.
func ArrayFromHandle(h memory.Handle) *ArrayObject {
	if h == 0 {
		return nil
	}
	r := Memory.Region(h)
	if r == nil {
		return nil
	}
	class, ok := r.Class().(*classloader.ArrayClass)
	if !ok {
		return nil
	}
	return &ArrayObject{Class: class, Handle: h}
}

// Monitor returns o's persistent lock/wait-set object (spec §4.2), shared by
// every Object wrapper FromHandle constructs for the same heap handle -- see
// MonitorFor.
func (o *Object) Monitor() *Monitor {
	return MonitorFor(o.Handle)
}

// MonitorFor returns the Monitor associated with heap handle h, lazily
// creating and installing it on h's shared memory.Region so that a
// monitorenter on h and a later monitorexit on h -- each reconstructing a
// fresh Object/ArrayObject wrapper via FromHandle/ArrayFromHandle -- observe
// the same Monitor instance rather than two independent ones. Works for both
// instance and array handles. Returns nil if h has no live region.
func MonitorFor(h memory.Handle) *Monitor {
	r := Memory.Region(h)
	if r == nil {
		return nil
	}
	return r.Monitor(func() interface{} { return newMonitor() }).(*Monitor)
}

// GetField reads the named field as a Value, per its descriptor in the
// class's virtual layout. Returns the zero Value and false if no such field
// is laid out on this class's hierarchy.
func (o *Object) GetField(name, desc string) (Value, bool) {
	off, ok := o.Class.VirtualLayout.Offset(name, desc)
	if !ok {
		return Value{}, false
	}
	return readAt(o.Handle, off, desc), true
}

// SetField writes v into the named field's storage.
func (o *Object) SetField(name, desc string, v Value) bool {
	off, ok := o.Class.VirtualLayout.Offset(name, desc)
	if !ok {
		return false
	}
	writeAt(o.Handle, off, desc, v)
	return true
}

// ReadTyped and WriteTyped expose readAt/writeAt to callers outside this
// package that hold a raw memory.Handle and a layout offset directly --
// the jvm package's static-field accessors (a class's static storage is
// the same kind of byte region as an object's instance storage, just
// addressed via InstanceClass.StaticArea() rather than an Object).
func ReadTyped(h memory.Handle, offset int, desc string) Value { return readAt(h, offset, desc) }
func WriteTyped(h memory.Handle, offset int, desc string, v Value) { writeAt(h, offset, desc, v) }

func readAt(h memory.Handle, offset int, desc string) Value {
	base := Memory.ValueBaseOffset(h) + offset
	if len(desc) == 0 {
		return NullValue
	}
	switch desc[0] {
	case 'J':
		return LongValue(Memory.ReadLong(h, base))
	case 'D':
		return DoubleValue(Memory.ReadDouble(h, base))
	case 'F':
		return FloatValue(Memory.ReadFloat(h, base))
	case 'I':
		return IntValue(Memory.ReadInt(h, base))
	case 'S':
		return IntValue(int32(Memory.ReadShort(h, base)))
	case 'C':
		return IntValue(int32(Memory.ReadChar(h, base)))
	case 'B':
		return IntValue(int32(Memory.ReadByte(h, base)))
	case 'Z':
		if Memory.ReadBool(h, base) {
			return IntValue(1)
		}
		return IntValue(0)
	default:
		return RefValue(Memory.ReadReference(h, base))
	}
}

func writeAt(h memory.Handle, offset int, desc string, v Value) {
	base := Memory.ValueBaseOffset(h) + offset
	if len(desc) == 0 {
		return
	}
	switch desc[0] {
	case 'J':
		Memory.WriteLong(h, base, v.AsLong())
	case 'D':
		Memory.WriteDouble(h, base, v.AsDouble())
	case 'F':
		Memory.WriteFloat(h, base, v.AsFloat())
	case 'I':
		Memory.WriteInt(h, base, v.AsInt())
	case 'S':
		Memory.WriteShort(h, base, int16(v.AsInt()))
	case 'C':
		Memory.WriteChar(h, base, uint16(v.AsInt()))
	case 'B':
		Memory.WriteByte(h, base, int8(v.AsInt()))
	case 'Z':
		Memory.WriteBool(h, base, v.AsInt() != 0)
	default:
		Memory.WriteReference(h, base, v.AsRef())
	}
}

// ToString renders a debug dump of o's fields, in the same spirit as the
// teacher's Object.ToString() diagnostic (object_test.go exercises it field-
// by-field): class name, then each field's name=value in declaration
// order, superclass fields first.
func (o *Object) ToString() string {
	var sb strings.Builder
	sb.WriteString(o.Class.InternalName)
	sb.WriteString(" {")
	fields := o.Class.VirtualLayout.Fields()
	for i, k := range fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		v, _ := o.GetField(k.Name, k.Desc)
		fmt.Fprintf(&sb, "%s=%s", k.Name, v.String())
	}
	sb.WriteString("}")
	return sb.String()
}

// ArrayObject is a heap array instance: its element class (or primitive
// tag, carried on the ArrayClass mirror), its length, and the
// memory.Handle to its element storage.
type ArrayObject struct {
	Class  *classloader.ArrayClass
	Handle memory.Handle
}

// Monitor returns a's persistent lock/wait-set object -- see MonitorFor.
// Array references are legal monitorenter/monitorexit targets in Java just
// like instance references, so this exists alongside Object.Monitor rather
// than only on Object.
func (a *ArrayObject) Monitor() *Monitor {
	return MonitorFor(a.Handle)
}

// NewArrayObject allocates length elements of class's component width.
func NewArrayObject(class *classloader.ArrayClass, length int) (*ArrayObject, error) {
	if length < 0 {
		return nil, fmt.Errorf("negative array length: %d", length)
	}
	scale := elementScale(class)
	h := Memory.NewArray(class, length, scale)
	return &ArrayObject{Class: class, Handle: h}, nil
}

func elementScale(class *classloader.ArrayClass) int {
	if class.Dims > 1 {
		return Memory.ArrayIndexScale("L") // nested array: element is itself a reference
	}
	if pc, ok := class.Element.(*classloader.PrimitiveClass); ok {
		return Memory.ArrayIndexScale(pc.Tag)
	}
	return Memory.ArrayIndexScale("L")
}

// Length returns the array's element count.
func (a *ArrayObject) Length() int {
	r := Memory.Region(a.Handle)
	if r == nil {
		return 0
	}
	return r.Length()
}

func (a *ArrayObject) elementDesc() string {
	if a.Class.Dims > 1 {
		return "[" // any reference-kind descriptor resolves to the reference branch
	}
	if pc, ok := a.Class.Element.(*classloader.PrimitiveClass); ok {
		return pc.Tag
	}
	return "L" + a.Class.Element.Name() + ";"
}

// Get reads the element at index (spec §4.5's aaload/iaload/... family,
// minus the bounds check -- callers perform rangeCheck before calling, per
// spec §4.3's checkArray/rangeCheck helper contract).
func (a *ArrayObject) Get(index int) Value {
	scale := elementScale(a.Class)
	return readAt(a.Handle, index*scale, a.elementDesc())
}

// Set writes v into the element at index.
func (a *ArrayObject) Set(index int, v Value) {
	scale := elementScale(a.Class)
	writeAt(a.Handle, index*scale, a.elementDesc(), v)
}
