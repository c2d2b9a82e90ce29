/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package log is the jvm-level leveled logging wrapper. It intentionally
// does not wrap a third-party logging library: none of the example repos in
// the retrieval pack (including the teacher) pull one in, so there is
// nothing in the corpus to ground an alternative to a small stdlib wrapper.
package log

import (
	"errors"
	"fmt"
	"os"
	"sync"
)

type Level int

const (
	SEVERE Level = iota
	WARNING
	INFO
	FINE
	TRACE_INST
)

var levelNames = map[Level]string{
	SEVERE:     "SEVERE",
	WARNING:    "WARNING",
	INFO:       "INFO",
	FINE:       "FINE",
	TRACE_INST: "TRACE_INST",
}

var (
	mu       sync.Mutex
	curLevel Level = INFO
	initDone bool
)

// Init prepares the logger for use. Idempotent.
func Init() {
	mu.Lock()
	defer mu.Unlock()
	initDone = true
}

// SetLogLevel changes the minimum level that will be emitted. Levels other
// than the five declared constants are rejected.
func SetLogLevel(l Level) error {
	if _, ok := levelNames[l]; !ok {
		return errors.New("invalid log level")
	}
	mu.Lock()
	curLevel = l
	mu.Unlock()
	return nil
}

// Log writes msg to stderr if level is at or more severe than the current
// threshold (lower Level value = more severe). Returns an error only if the
// write itself failed.
func Log(msg string, level Level) error {
	mu.Lock()
	threshold := curLevel
	mu.Unlock()
	if level > threshold {
		return nil
	}
	_, err := fmt.Fprintf(os.Stderr, "[%s] %s\n", levelNames[level], msg)
	return err
}
