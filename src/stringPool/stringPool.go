/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package stringPool interns Go strings (class names, UTF-8 constants used
// repeatedly across the constant pools of many classes) behind stable
// indices, so the rest of the VM can pass around a uint32 instead of
// repeatedly comparing strings. It backs the class-name interning the
// classloader relies on and the VM-string materialization newUtf8 performs.
package stringPool

import "sync"

var (
	mu      sync.RWMutex
	strings []string
	index   map[string]uint32
)

func init() {
	reset()
}

func reset() {
	// slot 0 is reserved (the empty string); slot 1 is
	// reserved for java/lang/Object per types.ObjectPoolStringIndex.
	strings = []string{"", "java/lang/Object"}
	index = map[string]uint32{"java/lang/Object": 1}
}

// Reset clears the pool back to its initial state. Exposed for tests that
// need isolation between VM instances.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	reset()
}

// Intern returns the stable index for s, creating an entry if s has not
// been seen before.
func Intern(s string) uint32 {
	mu.RLock()
	if i, ok := index[s]; ok {
		mu.RUnlock()
		return i
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	// re-check under write lock: another goroutine may have interned s
	// between the RUnlock above and this Lock.
	if i, ok := index[s]; ok {
		return i
	}
	i := uint32(len(strings))
	strings = append(strings, s)
	index[s] = i
	return i
}

// GetStringPointer returns a pointer to the interned string at index i, or
// nil if i is out of range. A pointer (rather than a copy) matches the
// teacher's GetStringPointer contract, which callers use to avoid
// re-allocating class names on every lookup.
func GetStringPointer(i uint32) *string {
	mu.RLock()
	defer mu.RUnlock()
	if int(i) >= len(strings) {
		return nil
	}
	return &strings[i]
}

// GetString is GetStringPointer dereferenced, returning "" for an
// out-of-range index.
func GetString(i uint32) string {
	if p := GetStringPointer(i); p != nil {
		return *p
	}
	return ""
}
