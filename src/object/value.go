/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package object is the Value & Object Model component (spec §4.2): the
// tagged-union operand-stack Value, heap Object/ArrayObject wrappers over a
// memory.Handle, and the reentrant per-object Monitor. Grounded on the
// teacher's object package (javaByteArray.go, object_test.go) enriched with
// the thanhhungg97-jvm runtime.Object shape for the parts the retrieved
// slice of the teacher's own object.go did not include.
package object

import (
	"fmt"

	"github.com/Nowilltolife/SSVM/src/excNames"
	"github.com/Nowilltolife/SSVM/src/globals"
	"github.com/Nowilltolife/SSVM/src/memory"
)

// Kind discriminates which field of Value is live -- the tagged-union
// representation spec §4.2 requires for the operand stack and local-
// variable table, since Go has no native sum type.
type Kind int

const (
	KindInt Kind = iota
	KindLong
	KindFloat
	KindDouble
	KindRef
	KindUninitialized // the verifier-only "uninitializedThis"/new-object marker; never read
)

// Value is one operand-stack slot or local-variable-table entry (spec §4.2:
// "a tagged union of int32/int64/float32/float64/reference"). Long and
// double occupy one Value here (unlike the two-slot convention the JVM spec
// uses on the real stack), matching the teacher's own single-slot frame
// representation.
type Value struct {
	Kind Kind
	I    int32
	L    int64
	F    float32
	D    float64
	Ref  memory.Handle
}

func IntValue(i int32) Value      { return Value{Kind: KindInt, I: i} }
func LongValue(l int64) Value     { return Value{Kind: KindLong, L: l} }
func FloatValue(f float32) Value  { return Value{Kind: KindFloat, F: f} }
func DoubleValue(d float64) Value { return Value{Kind: KindDouble, D: d} }
func RefValue(h memory.Handle) Value { return Value{Kind: KindRef, Ref: h} }

// NullValue is the canonical null reference Value.
var NullValue = Value{Kind: KindRef, Ref: 0}

// Width reports how many JVM stack slots this value occupies per JVMS
// §2.6.1: 2 for long/double, 1 otherwise.
func (v Value) Width() int {
	if v.Kind == KindLong || v.Kind == KindDouble {
		return 2
	}
	return 1
}

// IsNull reports whether v is a reference Value holding the null handle.
func (v Value) IsNull() bool { return v.Kind == KindRef && v.Ref == 0 }

// throwKindMismatch raises the IllegalStateException spec §4.1 requires
// when a Value is cast to the wrong variant of the tagged union (want is the
// Kind the caller required, e.g. "int" for AsInt). Mirrors gfunction's own
// throwException(name, msg) -- panics via the installed handler and never
// actually returns, so the caller still supplies a zero value after calling
// this for the compiler's sake.
func throwKindMismatch(want string, got Kind) {
	globals.GetGlobalRef().FuncThrowException(excNames.IllegalStateException,
		fmt.Sprintf("cannot read Value as %s: holds Kind %d", want, got))
}

func (v Value) AsInt() int32 {
	if v.Kind != KindInt {
		throwKindMismatch("int", v.Kind)
		return 0
	}
	return v.I
}

func (v Value) AsLong() int64 {
	if v.Kind != KindLong {
		throwKindMismatch("long", v.Kind)
		return 0
	}
	return v.L
}

func (v Value) AsFloat() float32 {
	if v.Kind != KindFloat {
		throwKindMismatch("float", v.Kind)
		return 0
	}
	return v.F
}

func (v Value) AsDouble() float64 {
	if v.Kind != KindDouble {
		throwKindMismatch("double", v.Kind)
		return 0
	}
	return v.D
}

// AsBool reads an int-kind Value as a boolean -- booleans share KindInt with
// byte/short/char/int per GetDefaultValue, so the check here is the same
// KindInt check AsInt performs, not a distinct KindBool.
func (v Value) AsBool() bool {
	if v.Kind != KindInt {
		throwKindMismatch("bool", v.Kind)
		return false
	}
	return v.I != 0
}

func (v Value) AsRef() memory.Handle { return v.Ref }

// Equal implements the bitwise equality == uses for primitives (not NaN-
// aware; callers needing fcmpl/fcmpg/dcmpl/dcmpg semantics use the
// dedicated compare helpers in the jvm package instead).
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindInt:
		return v.I == other.I
	case KindLong:
		return v.L == other.L
	case KindFloat:
		return v.F == other.F
	case KindDouble:
		return v.D == other.D
	case KindRef:
		return v.Ref == other.Ref
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return fmt.Sprintf("%d", v.I)
	case KindLong:
		return fmt.Sprintf("%d", v.L)
	case KindFloat:
		return fmt.Sprintf("%v", v.F)
	case KindDouble:
		return fmt.Sprintf("%v", v.D)
	case KindRef:
		if v.Ref == 0 {
			return "null"
		}
		return fmt.Sprintf("ref@%d", v.Ref)
	default:
		return "<uninitialized>"
	}
}

// GetDefaultValue returns the zero-equivalent Value for a field descriptor,
// per JVMS §2.3/§2.4's "default value" table (spec §3's default-value
// initialization invariant): numeric zero for primitives, false for
// boolean, null for references.
func GetDefaultValue(desc string) Value {
	if len(desc) == 0 {
		return NullValue
	}
	switch desc[0] {
	case 'J':
		return LongValue(0)
	case 'D':
		return DoubleValue(0)
	case 'F':
		return FloatValue(0)
	case 'I', 'S', 'B', 'C':
		return IntValue(0)
	case 'Z':
		return IntValue(0) // false
	default: // L...; or [...
		return NullValue
	}
}
