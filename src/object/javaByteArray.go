/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package object

import (
	"strings"
	"unicode"

	"github.com/Nowilltolife/SSVM/src/classloader"
	"github.com/Nowilltolife/SSVM/src/types"
)

// This file bridges Go strings/byte slices to the VM's byte-array
// representation, adapted from the teacher's javaByteArray.go onto this
// repo's ArrayObject/Object types. It backs the JDK-8-vs-9 NewUtf8/ReadUtf8
// contract (spec §4.4): java.lang.String.value is a char array ([C) on a
// pre-Compact-Strings JDK, a byte array ([B) from JDK 9 onward, and
// gfunction's String natives must handle whichever shape the loaded
// java/lang/String class actually declares.

func GoStringFromJavaByteArray(jbarr []types.JavaByte) string {
	var sb strings.Builder
	for _, b := range jbarr {
		sb.WriteByte(byte(b))
	}
	return sb.String()
}

func JavaByteArrayFromGoString(str string) []types.JavaByte {
	jbarr := make([]types.JavaByte, len(str))
	for i := 0; i < len(str); i++ {
		jbarr[i] = types.JavaByte(str[i])
	}
	return jbarr
}

func JavaByteArrayFromGoByteArray(gbarr []byte) []types.JavaByte {
	jbarr := make([]types.JavaByte, len(gbarr))
	for i, b := range gbarr {
		jbarr[i] = types.JavaByte(b)
	}
	return jbarr
}

func GoByteArrayFromJavaByteArray(jbarr []types.JavaByte) []byte {
	gbarr := make([]byte, len(jbarr))
	for i, b := range jbarr {
		gbarr[i] = byte(b)
	}
	return gbarr
}

// JavaByteArrayEquals compares two byte arrays for content equality,
// treating two nils as equal and a nil/non-nil pair as unequal.
func JavaByteArrayEquals(jbarr1, jbarr2 []types.JavaByte) bool {
	if (jbarr1 == nil) != (jbarr2 == nil) {
		return false
	}
	if len(jbarr1) != len(jbarr2) {
		return false
	}
	for i, b := range jbarr1 {
		if b != jbarr2[i] {
			return false
		}
	}
	return true
}

// JavaByteArrayEqualsIgnoreCase is JavaByteArrayEquals with per-rune case
// folding, mirroring String.equalsIgnoreCase's byte-oriented teacher
// implementation.
func JavaByteArrayEqualsIgnoreCase(jbarr1, jbarr2 []types.JavaByte) bool {
	if (jbarr1 == nil) != (jbarr2 == nil) {
		return false
	}
	if len(jbarr1) != len(jbarr2) {
		return false
	}
	for i, b := range jbarr1 {
		if unicode.ToLower(rune(b)) != unicode.ToLower(rune(jbarr2[i])) {
			return false
		}
	}
	return true
}

func valueFieldDescriptor(c *classloader.InstanceClass) string {
	for _, k := range c.VirtualLayout.Fields() {
		if k.Name == "value" {
			return k.Desc
		}
	}
	return ""
}

// NewUtf8 builds a java/lang/String Object from a Go string, laying its
// bytes out as [B (JDK 9+ Compact Strings) or widening to [C (pre-9), per
// whichever shape stringClass's own declared "value" field uses.
func NewUtf8(stringClass *classloader.InstanceClass, s string) (*Object, error) {
	isByteArray := valueFieldDescriptor(stringClass) == types.ByteArray

	desc := types.CharArray
	if isByteArray {
		desc = types.ByteArray
	}
	arrClass, err := classloader.NewArrayClass(stringClass.Loader, desc)
	if err != nil {
		return nil, err
	}

	var arr *ArrayObject
	if isByteArray {
		arr, err = NewArrayObject(arrClass, len(s))
		if err != nil {
			return nil, err
		}
		for i := 0; i < len(s); i++ {
			arr.Set(i, IntValue(int32(s[i])))
		}
	} else {
		runes := []rune(s)
		arr, err = NewArrayObject(arrClass, len(runes))
		if err != nil {
			return nil, err
		}
		for i, r := range runes {
			arr.Set(i, IntValue(int32(uint16(r))))
		}
	}

	strObj := NewObject(stringClass)
	strObj.SetField("value", desc, RefValue(arr.Handle))
	return strObj, nil
}

// ReadUtf8 recovers the Go string a java/lang/String Object holds,
// regardless of whether its "value" field is laid out as [B or [C.
func ReadUtf8(strObj *Object) string {
	desc := valueFieldDescriptor(strObj.Class)
	v, ok := strObj.GetField("value", desc)
	if !ok || v.IsNull() {
		return ""
	}
	region := Memory.Region(v.Ref)
	if region == nil {
		return ""
	}
	arrClass, ok := region.Class().(*classloader.ArrayClass)
	if !ok {
		return ""
	}
	arr := &ArrayObject{Class: arrClass, Handle: v.Ref}
	n := arr.Length()

	if desc == types.ByteArray {
		buf := make([]byte, n)
		for i := 0; i < n; i++ {
			buf[i] = byte(arr.Get(i).AsInt())
		}
		return string(buf)
	}
	runes := make([]rune, n)
	for i := 0; i < n; i++ {
		runes[i] = rune(uint16(arr.Get(i).AsInt()))
	}
	return string(runes)
}
