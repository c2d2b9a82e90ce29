/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package object

import (
	"sync"
	"time"
)

// Monitor is the reentrant lock + wait-set every Object carries for
// monitorenter/monitorexit and Object.wait/notify/notifyAll (spec §4.2).
// Per the Open Question decision recorded in DESIGN.md, wait blocks on the
// VM's own condition variable rather than delegating to the host's
// Object.wait -- this engine owns its own thread scheduling and must not
// assume a 1:1 mapping between VM threads and host goroutines.
type Monitor struct {
	mu       sync.Mutex
	cond     *sync.Cond
	owner    interface{} // the *thread.VMThread currently holding the monitor, nil if free
	depth    int         // reentrancy count
	waitGen  uint64      // bumped on every notify/notifyAll, lets Wait detect spurious re-checks
}

func newMonitor() *Monitor {
	m := &Monitor{}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Enter acquires the monitor for thread, blocking if another thread holds
// it. Re-entrant: the same thread may Enter repeatedly without blocking.
func (m *Monitor) Enter(thread interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for m.owner != nil && m.owner != thread {
		m.cond.Wait()
	}
	m.owner = thread
	m.depth++
}

// Exit releases one level of ownership, fully releasing the monitor once
// depth reaches zero. Returns false if thread does not hold the monitor
// (the caller raises IllegalMonitorStateException on that result).
func (m *Monitor) Exit(thread interface{}) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.owner != thread {
		return false
	}
	m.depth--
	if m.depth == 0 {
		m.owner = nil
		m.cond.Broadcast()
	}
	return true
}

// IsHeldBy reports whether thread currently owns the monitor.
func (m *Monitor) IsHeldBy(thread interface{}) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.owner == thread
}

// Wait releases the monitor (remembering its full reentrancy depth),
// blocks until Notify/NotifyAll wakes it or timeoutMillis/timeoutNanos
// elapses (both zero meaning no timeout, Object.wait()'s contract; a
// nonzero timeout is Object.wait(long, int)'s), then reacquires the
// monitor at the same depth before returning. Returns false if thread does
// not currently hold the monitor.
func (m *Monitor) Wait(thread interface{}, timeoutMillis int64, timeoutNanos int32) bool {
	m.mu.Lock()
	if m.owner != thread {
		m.mu.Unlock()
		return false
	}
	savedDepth := m.depth
	m.depth = 0
	m.owner = nil
	m.cond.Broadcast() // let another waiter for ownership proceed while we wait
	gen := m.waitGen
	m.mu.Unlock()

	if timeoutMillis > 0 || timeoutNanos > 0 {
		d := time.Duration(timeoutMillis)*time.Millisecond + time.Duration(timeoutNanos)
		timer := time.AfterFunc(d, func() {
			m.mu.Lock()
			if m.waitGen == gen {
				m.waitGen++
				m.cond.Broadcast()
			}
			m.mu.Unlock()
		})
		defer timer.Stop()
	}

	m.mu.Lock()
	for m.waitGen == gen {
		m.cond.Wait()
	}
	for m.owner != nil {
		m.cond.Wait()
	}
	m.owner = thread
	m.depth = savedDepth
	m.mu.Unlock()
	return true
}

// Notify wakes one thread blocked in Wait (JVMS Object.notify's "an
// unspecified choice" -- sync.Cond.Broadcast plus per-waiter re-check of
// waitGen approximates single-wake closely enough for this engine's
// purposes, since every woken waiter still has to re-acquire the monitor
// serially).
func (m *Monitor) Notify() {
	m.mu.Lock()
	m.waitGen++
	m.mu.Unlock()
	m.cond.Broadcast()
}

// NotifyAll wakes every thread blocked in Wait.
func (m *Monitor) NotifyAll() {
	m.mu.Lock()
	m.waitGen++
	m.mu.Unlock()
	m.cond.Broadcast()
}
