/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package jit is the pluggable-accelerator façade named in spec §9's design
// note: "the JIT (a façade only), invoked through a helper façade" is
// explicitly out-of-scope internals, so this package specifies the
// interface the engine calls through and ships two implementations -- a
// NullAccelerator that always declines, and a narrow golang-asm-backed one
// -- without attempting a general-purpose native compiler.
package jit

import (
	"github.com/Nowilltolife/SSVM/src/classloader"
	"github.com/Nowilltolife/SSVM/src/object"
)

// Accelerator is the interface the interpreter's call path consults before
// falling back to bytecode interpretation (spec §9: "has this method been
// offered to the accelerator"). Offer is cheap to call repeatedly -- an
// implementation that can't help a given method should say so quickly
// rather than retry expensive analysis every call.
type Accelerator interface {
	// Offer inspects a method once (typically its first invocation) and
	// reports whether this accelerator can run it natively. A true result
	// means Invoke must be used for every future call to this method.
	Offer(owner *classloader.InstanceClass, m *classloader.Method) bool

	// Invoke runs a method this accelerator previously accepted via Offer.
	// Calling Invoke on a method Offer declined is a programming error.
	Invoke(owner *classloader.InstanceClass, m *classloader.Method, args []object.Value) (object.Value, error)
}

// NullAccelerator never accelerates anything; every method falls through to
// the plain interpreter. This is the default Accelerator wired into a VM,
// consistent with the JIT being a façade over an out-of-scope internal --
// the engine must be fully correct with no accelerator present at all.
type NullAccelerator struct{}

func (NullAccelerator) Offer(*classloader.InstanceClass, *classloader.Method) bool { return false }

func (NullAccelerator) Invoke(*classloader.InstanceClass, *classloader.Method, []object.Value) (object.Value, error) {
	panic("jit: Invoke called on a method NullAccelerator never accepted")
}
