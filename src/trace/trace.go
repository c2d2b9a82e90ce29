/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package trace is the classloader-level tracing facility: two plain
// functions, no levels, no configuration beyond a boolean switch on the
// global config. Kept deliberately thin -- this is what the teacher ships.
package trace

import (
	"fmt"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	enabled bool
)

// Enable turns tracing output on or off. Off by default.
func Enable(on bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = on
}

// Trace writes an informational trace line to stdout if tracing is enabled.
func Trace(msg string) {
	mu.Lock()
	on := enabled
	mu.Unlock()
	if on {
		fmt.Fprintln(os.Stdout, msg)
	}
}

// Error writes an error line to stderr unconditionally -- errors are always
// surfaced, unlike trace lines.
func Error(msg string) {
	fmt.Fprintln(os.Stderr, msg)
}
