/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import (
	"github.com/Nowilltolife/SSVM/src/excNames"
	"github.com/Nowilltolife/SSVM/src/object"
)

// CurrentThread supplies the VMThread identity a native Object.wait/notify
// call acts as. Installed by the jvm package at boot, the same package-
// level-function-variable indirection as Globals/NewUtf8/ReadUtf8 above.
//
// Every nested invocation this VM makes -- bytecode or native -- already
// runs "as" vm.MainThread rather than whatever thread reached the call (see
// jvm.(*VM).invoke, which always builds frames against &vm.MainThread);
// CurrentThread simply exposes that same identity here so monitorenter's
// owner and wait/notify's owner agree. See DESIGN.md for the scope this
// implies for genuinely multi-threaded Java programs.
var CurrentThread func() interface{}

func Load_Lang_Object() {
	MethodSignatures["java/lang/Object.registerNatives()V"] =
		GMeth{ParamSlots: 0, GFunction: justReturn}

	MethodSignatures["java/lang/Object.wait()V"] =
		GMeth{ParamSlots: 0, GFunction: objectWait}
	MethodSignatures["java/lang/Object.wait(J)V"] =
		GMeth{ParamSlots: 1, GFunction: objectWaitMillis}
	MethodSignatures["java/lang/Object.wait(JI)V"] =
		GMeth{ParamSlots: 2, GFunction: objectWaitMillisNanos}
	MethodSignatures["java/lang/Object.notify()V"] =
		GMeth{ParamSlots: 0, GFunction: objectNotify}
	MethodSignatures["java/lang/Object.notifyAll()V"] =
		GMeth{ParamSlots: 0, GFunction: objectNotifyAll}
}

// receiverMonitor resolves params[0] (the receiver) to its persistent
// Monitor, raising IllegalMonitorStateException's IllegalStateException
// stand-in (spec §4.2 names no dedicated IllegalMonitorStateException
// class) if the receiver has no live heap region.
func receiverMonitor(params []interface{}) (*object.Monitor, interface{}) {
	this := params[0].(object.Value)
	mon := object.MonitorFor(this.AsRef())
	if mon == nil {
		return nil, throwException(excNames.IllegalStateException, "wait/notify on a reference with no live heap region")
	}
	return mon, nil
}

// "java/lang/Object.wait()V"
func objectWait(params []interface{}) interface{} {
	mon, errv := receiverMonitor(params)
	if mon == nil {
		return errv
	}
	if !mon.Wait(CurrentThread(), 0, 0) {
		return throwException(excNames.IllegalStateException, "current thread does not own this monitor")
	}
	return nil
}

// "java/lang/Object.wait(J)V"
func objectWaitMillis(params []interface{}) interface{} {
	mon, errv := receiverMonitor(params)
	if mon == nil {
		return errv
	}
	millis := params[1].(object.Value).AsLong()
	if !mon.Wait(CurrentThread(), millis, 0) {
		return throwException(excNames.IllegalStateException, "current thread does not own this monitor")
	}
	return nil
}

// "java/lang/Object.wait(JI)V"
func objectWaitMillisNanos(params []interface{}) interface{} {
	mon, errv := receiverMonitor(params)
	if mon == nil {
		return errv
	}
	millis := params[1].(object.Value).AsLong()
	nanos := params[2].(object.Value).AsInt()
	if !mon.Wait(CurrentThread(), millis, nanos) {
		return throwException(excNames.IllegalStateException, "current thread does not own this monitor")
	}
	return nil
}

// "java/lang/Object.notify()V"
func objectNotify(params []interface{}) interface{} {
	mon, errv := receiverMonitor(params)
	if mon == nil {
		return errv
	}
	mon.Notify()
	return nil
}

// "java/lang/Object.notifyAll()V"
func objectNotifyAll(params []interface{}) interface{} {
	mon, errv := receiverMonitor(params)
	if mon == nil {
		return errv
	}
	mon.NotifyAll()
	return nil
}
