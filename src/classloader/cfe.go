/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"errors"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/Nowilltolife/SSVM/src/trace"
)

// classFormatError mirrors the teacher's cfe() helper: it prefixes msg,
// appends the file/line of its caller for diagnostics, traces it, and
// returns it as a plain error (class-format errors raised while linking a
// class node are host errors, not VMExceptions -- they reflect a node an
// external parser should never have produced, not bytecode behavior).
func classFormatError(msg string) error {
	errMsg := "Class Format Error: " + msg
	if pc, _, _, ok := runtime.Caller(1); ok {
		fn := runtime.FuncForPC(pc)
		fileName, fileLine := fn.FileLine(pc)
		errMsg += "\n  detected by file: " + filepath.Base(fileName) + ", line: " + strconv.Itoa(fileLine)
	}
	trace.Error(errMsg)
	return errors.New(errMsg)
}

// CFE is classFormatError exported for callers outside this package (the
// jvm package's helper operations raise the same kind of error when a
// layout or CP entry turns out to be malformed).
func CFE(msg string) error { return classFormatError(msg) }
