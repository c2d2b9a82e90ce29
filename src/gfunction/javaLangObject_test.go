/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nowilltolife/SSVM/src/classloader"
	"github.com/Nowilltolife/SSVM/src/globals"
	"github.com/Nowilltolife/SSVM/src/memory"
	"github.com/Nowilltolife/SSVM/src/object"
)

func setupObjectTestVM(t *testing.T) *object.Object {
	t.Helper()
	mgr := memory.NewManager()
	classloader.Memory = mgr
	object.Memory = mgr
	Globals = globals.InitGlobals("object-test")
	Globals.FuncThrowException = func(name, msg string) {
		panic(name + ": " + msg)
	}
	CurrentThread = func() interface{} { return "the-thread" }

	loader := classloader.NewClassLoaderData("object-test-loader", nil)
	class, err := classloader.DefineClass(loader, "test/Monitored", &classloader.ClassNode{Name: "test/Monitored"}, nil, "")
	require.NoError(t, err)
	return object.NewObject(class)
}

func TestObjectWaitWithoutOwningMonitorRaisesIllegalStateException(t *testing.T) {
	obj := setupObjectTestVM(t)
	assert.PanicsWithValue(t, "java/lang/IllegalStateException: current thread does not own this monitor", func() {
		objectWait([]interface{}{object.RefValue(obj.Handle)})
	})
}

func TestObjectNotifyAllWakesWaitingThread(t *testing.T) {
	obj := setupObjectTestVM(t)
	mon := object.MonitorFor(obj.Handle)
	mon.Enter(CurrentThread())

	done := make(chan interface{}, 1)
	go func() {
		done <- objectWait([]interface{}{object.RefValue(obj.Handle)})
	}()

	time.Sleep(20 * time.Millisecond)
	objectNotifyAll([]interface{}{object.RefValue(obj.Handle)})

	select {
	case ret := <-done:
		assert.Nil(t, ret)
	case <-time.After(time.Second):
		t.Fatal("Object.wait did not return after Object.notifyAll")
	}
	assert.True(t, mon.IsHeldBy(CurrentThread())) // wait reacquires before returning
	mon.Exit(CurrentThread())
}

func TestLoadLangObjectRegistersSignatures(t *testing.T) {
	Load_Lang_Object()
	for _, key := range []string{
		"java/lang/Object.registerNatives()V",
		"java/lang/Object.wait()V",
		"java/lang/Object.wait(J)V",
		"java/lang/Object.wait(JI)V",
		"java/lang/Object.notify()V",
		"java/lang/Object.notifyAll()V",
	} {
		_, ok := MethodSignatures[key]
		assert.True(t, ok, key)
	}
}

func TestObjectWaitMillisNanosHonorsTimeout(t *testing.T) {
	obj := setupObjectTestVM(t)
	mon := object.MonitorFor(obj.Handle)
	mon.Enter(CurrentThread())

	start := time.Now()
	ret := objectWaitMillisNanos([]interface{}{object.RefValue(obj.Handle), object.LongValue(30), object.IntValue(0)})
	assert.Nil(t, ret)
	assert.True(t, time.Since(start) >= 25*time.Millisecond)
}
