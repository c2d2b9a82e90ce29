/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package thread is the VM-thread abstraction the engine and error-
// reporting helpers (jvm's screenVmThread, showFrameStack) consume.
// Grounded on the teacher's thread.ExecThread/thread.CreateThread() usage
// (jvm/errors_test.go: "th := thread.CreateThread()", "th.Stack =
// frames.CreateFrameStack()").
package thread

import (
	"container/list"
	"strconv"
	"sync/atomic"
)

var idCounter int64

// VMThread is one VM-level thread of execution: an identity, its current
// frame stack, and the tracing/diagnostic flags the teacher's ExecThread
// carried directly on the thread rather than threading them through every
// call.
type VMThread struct {
	ID    int
	Name  string
	Stack *list.List // *frames.Frame elements; typed as interface{} here to avoid an import cycle (frames does not need to know about thread)

	Trace bool // per-thread bytecode tracing, mirroring the teacher's MainThread.Trace

	// No separate monitor-identity field is carried: a thread presents its
	// own pointer when entering an object.Monitor, which compares owners
	// with ==.
}

// ExecThread is kept as an alias of VMThread for teacher-idiom parity
// (thread.ExecThread{} was the zero-value construction the teacher's tests
// used directly); new code should prefer VMThread / CreateThread.
type ExecThread = VMThread

// CreateThread allocates a new VMThread with a fresh, process-unique ID and
// an empty frame stack.
func CreateThread() VMThread {
	id := int(atomic.AddInt64(&idCounter, 1))
	return VMThread{
		ID:    id,
		Name:  "thread-" + strconv.Itoa(id),
		Stack: list.New(),
	}
}
