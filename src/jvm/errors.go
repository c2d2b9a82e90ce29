/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"fmt"
	"os"

	"github.com/Nowilltolife/SSVM/src/frames"
	"github.com/Nowilltolife/SSVM/src/globals"
	"github.com/Nowilltolife/SSVM/src/object"
	"github.com/Nowilltolife/SSVM/src/thread"
)

// VMException is the in-VM throwable channel of spec §7: it carries a
// throwable instance, participates in bytecode exception tables, and
// propagates across frames via the engine's unwinder -- as opposed to a
// host PanicException (shutdown.PanicException), which is never caught by
// bytecode and always escalates to the embedder.
//
// Because classloader and gfunction natives raise exceptions through a
// fire-and-forget closure (globals.Globals.FuncThrowException, installed by
// NewVM) rather than a Go error return, a VMException crosses those
// boundaries as a typed panic; runFrame's top-level entry points recover it
// back into a normal error return. This is the Go-idiomatic rendering of
// spec §7's two-channel split: channel 1 needs to unwind through arbitrary
// intermediate call depth without every intermediate function threading an
// error return it has no slot for.
type VMException struct {
	ExceptionClass string
	Message        string
	Throwable      *object.Object
	Cause          error
}

func (e *VMException) Error() string {
	if e.Message == "" {
		return e.ExceptionClass
	}
	return e.ExceptionClass + ": " + e.Message
}

func (e *VMException) Unwrap() error { return e.Cause }

// recoverVMException turns a panic carrying a *VMException into a normal
// error return; any other panic value is re-panicked so it still reaches
// the embedder as a host failure.
func recoverVMException(errOut *error) {
	if r := recover(); r != nil {
		if ve, ok := r.(*VMException); ok {
			*errOut = ve
			return
		}
		panic(r)
	}
}

// showFrameStack prints th's current call stack to stderr, at most once
// per process -- globals.GetGlobalRef().JvmFrameStackShown guards repeats,
// matching the one-time fatal-diagnostic dump the teacher's own error
// path performs (errors_test.go's exercised contract).
func showFrameStack(th *thread.VMThread) {
	g := globals.GetGlobalRef()
	if g.JvmFrameStackShown {
		return
	}
	g.JvmFrameStackShown = true

	if th == nil || th.Stack == nil || th.Stack.Len() == 0 {
		fmt.Fprintln(os.Stderr, "no further data available")
		return
	}

	for e := th.Stack.Front(); e != nil; e = e.Next() {
		f := e.Value.(*frames.Frame)
		fmt.Fprintf(os.Stderr, "%-49sPC: %03d\n", "Method: "+f.ClName+"."+f.MethName, f.PC)
	}
}

// showGoStackTrace prints the previously-captured Go stack trace
// (globals.GetGlobalRef().ErrorGoStack, captured at the point a host panic
// was recovered) at most once per process. recovered is accepted for
// parity with the panic-recovery call site but is not otherwise inspected:
// the captured stack is the thing worth showing, not the recovered value
// itself.
func showGoStackTrace(recovered interface{}) {
	g := globals.GetGlobalRef()
	if g.GoStackShown {
		return
	}
	g.GoStackShown = true
	fmt.Fprintln(os.Stderr, g.ErrorGoStack)
}

// showPanicCause prints the Go error that caused a host panic, at most
// once per process; a nil cause (the panic value was not an error) is
// reported as "cause unknown".
func showPanicCause(cause error) {
	g := globals.GetGlobalRef()
	if g.PanicCauseShown {
		return
	}
	g.PanicCauseShown = true
	if cause == nil {
		fmt.Fprintln(os.Stderr, "error: go panic -- cause unknown")
		return
	}
	fmt.Fprintf(os.Stderr, "error: go panic -- cause: %v\n", cause)
}

// reportFatalPanic runs the full one-time diagnostic dump for an
// unrecoverable host panic (spec §7's PanicException channel): the VM
// thread's frame stack, the captured Go stack, and the panic's cause.
func reportFatalPanic(th *thread.VMThread, recovered interface{}) {
	showFrameStack(th)
	showGoStackTrace(recovered)
	if err, ok := recovered.(error); ok {
		showPanicCause(err)
	} else {
		showPanicCause(nil)
	}
}
