/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package shutdown is the host PanicException escalation channel (spec §7):
// used only for impossible states the bytecode exception mechanism must
// never see -- a corrupt layout, an unreachable switch arm reached anyway.
// Never caught by bytecode.
package shutdown

import (
	"fmt"
	"os"
)

// Exit codes, mirroring the teacher's shutdown.JVM_EXCEPTION convention.
const (
	OK = iota
	JVM_EXCEPTION
	APP_EXCEPTION
)

// PanicException is raised for host-internal invariant violations. It is
// distinct from jvm.VMException: nothing in the engine's exception-table
// walk ever matches against it.
type PanicException struct {
	Msg string
}

func (p PanicException) Error() string { return p.Msg }

// Exit terminates the process with the given code; it prints nothing
// itself. Embedders that want a softer failure mode should recover()
// around engine entry points instead -- this function is for situations the
// spec defines as unrecoverable.
func Exit(code int) {
	os.Exit(code)
}

// Panic raises a PanicException carrying msg. Call sites that want to keep
// running (e.g. under test) should recover() this; production embedders
// generally let it propagate to a top-level recover that calls Exit.
func Panic(msg string) {
	panic(PanicException{Msg: msg})
}

// Panicf is Panic with fmt.Sprintf-style formatting.
func Panicf(format string, args ...interface{}) {
	panic(PanicException{Msg: fmt.Sprintf(format, args...)})
}
