/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package frames is the Execution Frame component (spec §4.5): the operand
// stack and local-variable table a single method activation runs against,
// plus the frame stack a thread pushes/pops them on. Grounded on the
// teacher's frames.CreateFrame/PushFrame/PopFrame calls (jvm/
// initializerBlock.go), generalized from the teacher's untyped int64 stack
// slots to this repo's tagged object.Value.
package frames

import (
	"container/list"
	"errors"

	"github.com/Nowilltolife/SSVM/src/classloader"
	"github.com/Nowilltolife/SSVM/src/object"
)

// Frame is one method activation: its operand stack (sized maxStack per
// JVMS §4.7.3), its local-variable table, the instruction pointer into its
// method's bytecode, and enough back-references (owning class/method, its
// constant pool) for the engine to resolve symbolic references without
// threading extra parameters through every opcode handler.
type Frame struct {
	ClName   string // owning class's internal name, for diagnostics
	MethName string
	MethType string // method descriptor
	CP       *classloader.CPool
	Meth     []byte // the method's bytecode (teacher's field name, kept: "Meth")
	PC       int
	MaxStack int

	TOS     int // index of the top-of-stack operand (teacher's "TOS"; -1 means empty)
	OpStack []object.Value
	Locals  []object.Value

	Class  *classloader.InstanceClass
	Method *classloader.Method

	ExceptionTable []classloader.ExceptionEntry
}

// CreateFrame allocates a Frame whose operand stack holds up to maxStack
// entries (the teacher's CreateFrame(maxStack) signature).
func CreateFrame(maxStack int) *Frame {
	return &Frame{
		MaxStack: maxStack,
		OpStack:  make([]object.Value, maxStack),
		TOS:      -1,
	}
}

// Push pushes v onto the operand stack, returning an error if the stack is
// already full (a class-format/verifier invariant violation, since a
// correctly-verified method never overflows its declared maxStack).
func (f *Frame) Push(v object.Value) error {
	if f.TOS+1 >= len(f.OpStack) {
		return errors.New("operand stack overflow")
	}
	f.TOS++
	f.OpStack[f.TOS] = v
	return nil
}

// Pop removes and returns the top operand-stack value.
func (f *Frame) Pop() (object.Value, error) {
	if f.TOS < 0 {
		return object.Value{}, errors.New("operand stack underflow")
	}
	v := f.OpStack[f.TOS]
	f.TOS--
	return v, nil
}

// Peek returns the top operand-stack value without removing it.
func (f *Frame) Peek() (object.Value, error) {
	if f.TOS < 0 {
		return object.Value{}, errors.New("operand stack underflow")
	}
	return f.OpStack[f.TOS], nil
}

// CreateFrameStack returns an empty frame stack (the teacher's
// frames.CreateFrameStack() -> *list.List, used as a LIFO via PushFront/
// Remove at the front).
func CreateFrameStack() *list.List {
	return list.New()
}

// PushFrame pushes f onto the front of stack (the most-recently-pushed
// frame is always the one the engine is executing).
func PushFrame(stack *list.List, f *Frame) error {
	if stack == nil {
		return errors.New("nil frame stack")
	}
	stack.PushFront(f)
	return nil
}

// PopFrame removes and returns the frontmost (currently executing) frame.
func PopFrame(stack *list.List) *Frame {
	if stack == nil || stack.Len() == 0 {
		return nil
	}
	e := stack.Front()
	stack.Remove(e)
	return e.Value.(*Frame)
}

// PeekFrame returns the frontmost frame without removing it, or nil if the
// stack is empty.
func PeekFrame(stack *list.List) *Frame {
	if stack == nil || stack.Len() == 0 {
		return nil
	}
	return stack.Front().Value.(*Frame)
}
