/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"github.com/Nowilltolife/SSVM/src/classloader"
	"github.com/Nowilltolife/SSVM/src/excNames"
	"github.com/Nowilltolife/SSVM/src/thread"
)

// runClinit is installed as classloader.RunClinit (see vm.go). The
// state-machine bookkeeping and the superclass-before-subclass ordering
// (spec §3) already live in InstanceClass.Initialize; by the time this is
// called, c.Super is already Initialized, so runClinit only has to run c's
// own <clinit>, if it declares one.
//
// This runs on its own frame stack, separate from any application thread's
// stack -- the same separation the teacher's runInitializationBlock notes
// ("this is computing that's in most ways apart from the bytecode of the
// app"). A class's <clinit> can itself trigger other classes' <clinit>s
// (field initializers referencing other classes), each getting its own
// nested init thread via this same function.
func (vm *VM) runClinit(c *classloader.InstanceClass) error {
	if err := vm.initializeStaticFields(c); err != nil {
		return err
	}

	m, ok := c.Methods["<clinit>()V"]
	if !ok {
		return nil
	}

	initThread := thread.CreateThread()
	initThread.Name = "clinit-" + c.InternalName

	if m.GoFunc != nil {
		m.GoFunc(nil)
		return nil
	}

	f, err := vm.buildFrame(m, c, nil)
	if err != nil {
		return err
	}
	_, err = vm.runFrame(&initThread, f)
	return err
}

// wrapInitError is installed as classloader.InitErrorWrapper: a <clinit>
// failure is reported to its caller as an ExceptionInInitializerError
// wrapping the original cause (spec §3), unless the cause is itself already
// a VMException for ExceptionInInitializerError (re-entrant failure
// propagation shouldn't double-wrap).
func wrapInitError(cause error) error {
	if ve, ok := cause.(*VMException); ok && ve.ExceptionClass == excNames.ExceptionInInitializerError {
		return ve
	}
	return &VMException{
		ExceptionClass: excNames.ExceptionInInitializerError,
		Message:        cause.Error(),
		Cause:          cause,
	}
}
