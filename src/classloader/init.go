/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"fmt"

	"github.com/Nowilltolife/SSVM/src/excNames"
)

// RunClinit actually executes a class's <clinit> method, if it has one.
// classloader cannot depend on the jvm package (jvm already depends on
// classloader, for layouts and resolution), so running bytecode is
// injected as a hook the jvm package installs at boot -- the same
// indirection globals.FuncThrowException uses for the opposite direction.
var RunClinit func(c *InstanceClass) error

// InitErrorWrapper lets the jvm package supply how a <clinit> failure gets
// wrapped into an ExceptionInInitializerError-bearing VMException, without
// classloader needing to know the shape of object.Object/VMException.
var InitErrorWrapper func(cause error) error

// Initialize runs the class-initialization state machine of spec §3:
//
//	Loaded -> Initializing(initializer-thread) -> Initialized | Errored
//
// It is idempotent, re-entrant for the thread currently performing
// initialization (a <clinit> that, directly or transitively, triggers
// initialization of its own class again must not deadlock), and blocks
// every other caller until the class reaches Initialized or Errored.
func (c *InstanceClass) Initialize(threadID interface{}) error {
	c.mu.Lock()
	switch c.state {
	case Initialized:
		c.mu.Unlock()
		return nil
	case Errored:
		cause := c.initErr
		c.mu.Unlock()
		return wrapInitError(cause)
	case Initializing:
		if c.initializer == threadID {
			// re-entrant: the initializing thread called back into its own
			// <clinit> path (directly, or via a helper it invoked).
			c.mu.Unlock()
			return nil
		}
		for c.state == Initializing {
			c.cond.Wait()
		}
		// state changed while we waited; re-dispatch.
		c.mu.Unlock()
		return c.Initialize(threadID)
	}

	// c.state == Loaded: this goroutine is the one that gets to initialize.
	c.state = Initializing
	c.initializer = threadID
	c.mu.Unlock()

	// Superclass must be Initialized before this class's <clinit> runs.
	if c.Super != nil {
		if err := c.Super.Initialize(threadID); err != nil {
			return c.fail(err)
		}
	}

	if RunClinit != nil {
		if err := RunClinit(c); err != nil {
			return c.fail(err)
		}
	}

	c.mu.Lock()
	c.state = Initialized
	c.mu.Unlock()
	c.cond.Broadcast()
	return nil
}

func (c *InstanceClass) fail(cause error) error {
	c.mu.Lock()
	c.state = Errored
	c.initErr = cause
	c.mu.Unlock()
	c.cond.Broadcast()
	return wrapInitError(cause)
}

func wrapInitError(cause error) error {
	if InitErrorWrapper != nil {
		return InitErrorWrapper(cause)
	}
	return fmt.Errorf("%s: %w", excNames.ExceptionInInitializerError, cause)
}
