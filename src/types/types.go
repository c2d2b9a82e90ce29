/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package types holds the descriptor vocabulary and host-side aliases shared
// across the VM: JVM type-tag characters, the array/reference descriptor
// prefixes, and the JavaByte/JavaChar aliases used to round-trip JDK string
// and array layouts without losing the distinction between a Go byte and a
// Java byte (signed, one of the primitive element kinds an array can hold).
package types

// JavaByte is a VM-side signed byte, distinct from a raw Go byte so that
// byte-array element accessors can't be confused with general []byte buffers
// used for host interop (e.g. class file bytes).
type JavaByte int8

// JavaChar is a VM-side UTF-16 code unit.
type JavaChar uint16

// Primitive type-tag characters, per JVMS 4.3.2.
const (
	Int     = "I"
	Long    = "J"
	Float   = "F"
	Double  = "D"
	Char    = "C"
	Short   = "S"
	Byte    = "B"
	Bool    = "Z"
	Void    = "V"
	Ref     = "L"
	Array   = "["
	RefArray = "[L"
)

// ByteArray and CharArray are the two shapes java.lang.String.value can take,
// depending on JDK version (JDK 8: [C, JDK 9+: Compact Strings, [B).
const (
	ByteArray = "[B"
	CharArray = "[C"
)

// ObjectClassName and StringClassName are the two most frequently special-
// cased internal names in the VM.
const (
	ObjectClassName = "java/lang/Object"
	StringClassName = "java/lang/String"
)

// ObjectPoolStringIndex is the canonical string-pool index reserved for
// java/lang/Object, used by the classloader to short-circuit superclass
// walks once they reach the root of the hierarchy.
const ObjectPoolStringIndex uint32 = 1

// InvalidStringIndex marks "no index" in string-pool-indexed return values.
const InvalidStringIndex uint32 = 0xFFFFFFFF

// ClInit state tags for a class's <clinit> lifecycle, independent of the
// broader class Initializing/Initialized state machine (a class can be
// Initialized yet its <clinit> state recorded here for display/debugging).
type ClInitState int

const (
	NoClinit ClInitState = iota
	ClInitNotRun
	ClInitInProgress
	ClInitRun
)

// IsWideDescriptor reports whether a single-character descriptor tag denotes
// a 64-bit (two-slot) value: long or double.
func IsWideDescriptor(desc string) bool {
	if len(desc) == 0 {
		return false
	}
	return desc[0] == 'J' || desc[0] == 'D'
}

// IsReferenceDescriptor reports whether a descriptor denotes a reference
// type: an object (L...;) or an array ([...).
func IsReferenceDescriptor(desc string) bool {
	if len(desc) == 0 {
		return false
	}
	return desc[0] == 'L' || desc[0] == '['
}

// IsPrimitiveTag reports whether r is one of the eight single-character
// primitive descriptor tags (J D I F C S B Z).
func IsPrimitiveTag(r byte) bool {
	switch r {
	case 'J', 'D', 'I', 'F', 'C', 'S', 'B', 'Z':
		return true
	default:
		return false
	}
}

// ElementDescriptor strips one leading array dimension ('[') from desc and
// returns the remaining element descriptor. It is a no-op if desc does not
// start with '['.
func ElementDescriptor(desc string) string {
	if len(desc) > 0 && desc[0] == '[' {
		return desc[1:]
	}
	return desc
}

// ClassNameFromObjectDescriptor strips the leading 'L' and trailing ';' from
// an object descriptor (Ljava/lang/String; -> java/lang/String). Returns
// desc unchanged if it is not an object descriptor.
func ClassNameFromObjectDescriptor(desc string) string {
	if len(desc) >= 2 && desc[0] == 'L' && desc[len(desc)-1] == ';' {
		return desc[1 : len(desc)-1]
	}
	return desc
}
