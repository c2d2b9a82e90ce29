/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/Nowilltolife/SSVM/src/excNames"
	"github.com/Nowilltolife/SSVM/src/object"
)

func Load_Util_HashMap() {

	MethodSignatures["java/util/HashMap.hash(Ljava/lang/Object;)I"] =
		GMeth{
			ParamSlots: 1,
			GFunction:  hashMapHash,
		}

}

// hashMapHash computes an MD5-derived int hash of its argument, the same
// "hash the 8-byte representation" idiom as the teacher's hashMapHash --
// adapted from reaching into the teacher's FieldTable-based Object (which
// assumed every hashable object declared a single "value" field) to
// hashing the passed Value's own bit pattern directly: this engine's Object
// has no such universal field, so a reference hashes by heap identity
// (its memory.Handle) rather than by content.
func hashMapHash(params []interface{}) interface{} {
	v, ok := params[0].(object.Value)
	if !ok {
		return throwException(excNames.IllegalArgumentException, fmt.Sprintf("HashMap.hash: unrecognized parameter type: %T", params[0]))
	}
	if v.IsNull() {
		return object.IntValue(0)
	}

	buf := make([]byte, 8)
	switch v.Kind {
	case object.KindRef:
		binary.BigEndian.PutUint64(buf, uint64(v.AsRef()))
	case object.KindLong:
		binary.BigEndian.PutUint64(buf, uint64(v.AsLong()))
	case object.KindDouble:
		binary.BigEndian.PutUint64(buf, math.Float64bits(v.AsDouble()))
	case object.KindFloat:
		binary.BigEndian.PutUint64(buf, uint64(math.Float32bits(v.AsFloat())))
	default:
		binary.BigEndian.PutUint64(buf, uint64(v.AsInt()))
	}

	sum := md5.Sum(buf)
	h := binary.BigEndian.Uint64(sum[:])
	return object.IntValue(int32(h))
}
