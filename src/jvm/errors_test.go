/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"errors"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Nowilltolife/SSVM/src/frames"
	"github.com/Nowilltolife/SSVM/src/globals"
	"github.com/Nowilltolife/SSVM/src/thread"
)

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	normalStderr := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w

	fn()

	require.NoError(t, w.Close())
	os.Stderr = normalStderr
	msg, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(msg)
}

func TestShowFrameStackWhenPreviouslyShown(t *testing.T) {
	globals.InitGlobals("test")
	th := thread.ExecThread{}
	globals.GetGlobalRef().JvmFrameStackShown = true

	out := captureStderr(t, func() { showFrameStack(&th) })
	require.Empty(t, out)
}

func TestShowFrameStackWithEmptyStack(t *testing.T) {
	globals.InitGlobals("test")
	th := thread.CreateThread()
	globals.GetGlobalRef().JvmFrameStackShown = false

	out := captureStderr(t, func() { showFrameStack(&th) })
	require.Equal(t, "no further data available\n", out)
}

func TestShowFrameStackWithOneEntry(t *testing.T) {
	globals.InitGlobals("test")

	f := frames.CreateFrame(1)
	f.MethName = "main"
	f.ClName = "testClass"
	f.PC = 42

	th := thread.CreateThread()
	th.Stack = frames.CreateFrameStack()
	require.NoError(t, frames.PushFrame(th.Stack, f))

	globals.GetGlobalRef().JvmFrameStackShown = false
	out := captureStderr(t, func() { showFrameStack(&th) })
	require.Equal(t, "Method: testClass.main                           PC: 042\n", out)
}

func TestShowGoStackWhenPreviouslyCaptured(t *testing.T) {
	globals.InitGlobals("test")
	g := globals.GetGlobalRef()
	g.GoStackShown = false
	stackAsString := string(debug.Stack())
	g.ErrorGoStack = stackAsString
	firstEntry := strings.Split(stackAsString, "\n")[0]

	out := captureStderr(t, func() { showGoStackTrace(nil) })
	require.Contains(t, out, firstEntry)
}

func TestShowGoStackWhenPreviouslyShown(t *testing.T) {
	globals.InitGlobals("test")
	g := globals.GetGlobalRef()
	g.GoStackShown = true
	g.ErrorGoStack = string(debug.Stack())

	out := captureStderr(t, func() { showGoStackTrace(nil) })
	require.Empty(t, out)
}

func TestShowPanicCause(t *testing.T) {
	globals.InitGlobals("test")
	globals.GetGlobalRef().PanicCauseShown = false
	cause := errors.New("error causing panic")

	out := captureStderr(t, func() { showPanicCause(cause) })
	require.Contains(t, out, "error causing panic")
}

func TestShowPanicCauseAfterAlreadyShown(t *testing.T) {
	globals.InitGlobals("test")
	globals.GetGlobalRef().PanicCauseShown = true
	cause := errors.New("error causing panic")

	out := captureStderr(t, func() { showPanicCause(cause) })
	require.Empty(t, out)
}

func TestShowPanicCauseNil(t *testing.T) {
	globals.InitGlobals("test")
	globals.GetGlobalRef().PanicCauseShown = false

	out := captureStderr(t, func() { showPanicCause(nil) })
	require.Contains(t, out, "error: go panic -- cause unknown")
}

func TestRecoverVMExceptionCatchesVMException(t *testing.T) {
	run := func() (err error) {
		defer recoverVMException(&err)
		panic(&VMException{ExceptionClass: "java/lang/RuntimeException", Message: "boom"})
	}
	err := run()
	require.Error(t, err)
	var ve *VMException
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "java/lang/RuntimeException", ve.ExceptionClass)
}

func TestRecoverVMExceptionRepanicsOtherValues(t *testing.T) {
	run := func() (err error) {
		defer recoverVMException(&err)
		panic("not a VMException")
	}
	require.Panics(t, func() { _ = run() })
}
