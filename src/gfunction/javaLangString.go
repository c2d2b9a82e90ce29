/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Nowilltolife/SSVM/src/classloader"
	"github.com/Nowilltolife/SSVM/src/excNames"
	"github.com/Nowilltolife/SSVM/src/object"
	"github.com/Nowilltolife/SSVM/src/types"
)

// This file is the String natives registrar (spec §4.4/§8's newUtf8/readUtf8
// round-trip). Adapted from the teacher's javaLangString.go onto this
// engine's Value/object.Object model: every method below goes through the
// round-trip functions (NewUtf8/ReadUtf8) instead of reaching into a
// FieldTable-held Fvalue/Ftype pair, so charset/codepoint/deprecated
// overloads the teacher already routed to a trap function stay trapped
// here for the same reason -- this slice has no Charset/CharSequence/boxed-
// primitive class hierarchy to dispatch them against.
//
// Indexing departs from the teacher in one place: charAt/substring/indexOf/
// regionMatches here all index by rune, not by byte, since this package's
// only string representation is a Go string built from NewUtf8 -- a byte
// index would silently misbehave on non-ASCII content the teacher's own
// byte-oriented version (the JDK 9+ Latin1 fast path) never had to face.

func Load_Lang_String() {

	// === OBJECT INSTANTIATION ===

	MethodSignatures["java/lang/String.<clinit>()V"] =
		GMeth{ParamSlots: 0, GFunction: justReturn}

	MethodSignatures["java/lang/String.<init>()V"] =
		GMeth{ParamSlots: 0, GFunction: stringInitEmpty}

	MethodSignatures["java/lang/String.<init>([B)V"] =
		GMeth{ParamSlots: 1, GFunction: stringInitFromBytes}

	MethodSignatures["java/lang/String.<init>([BI)V"] = // deprecated (ascii, hibyte)
		GMeth{ParamSlots: 2, GFunction: trapFunction}

	MethodSignatures["java/lang/String.<init>([BII)V"] =
		GMeth{ParamSlots: 3, GFunction: stringInitFromBytesSubset}

	MethodSignatures["java/lang/String.<init>([BIII)V"] = // deprecated
		GMeth{ParamSlots: 4, GFunction: trapFunction}

	MethodSignatures["java/lang/String.<init>([BIILjava/lang/String;)V"] = // charset
		GMeth{ParamSlots: 4, GFunction: trapFunction}

	MethodSignatures["java/lang/String.<init>([BIILjava/nio/charset/Charset;)V"] =
		GMeth{ParamSlots: 4, GFunction: trapFunction}

	MethodSignatures["java/lang/String.<init>([BLjava/lang/String;)V"] =
		GMeth{ParamSlots: 2, GFunction: trapFunction}

	MethodSignatures["java/lang/String.<init>([BLjava/nio/charset/Charset;)V"] =
		GMeth{ParamSlots: 2, GFunction: trapFunction}

	MethodSignatures["java/lang/String.<init>([C)V"] =
		GMeth{ParamSlots: 1, GFunction: stringInitFromChars}

	MethodSignatures["java/lang/String.<init>([III)V"] = // codepoints
		GMeth{ParamSlots: 3, GFunction: trapFunction}

	MethodSignatures["java/lang/String.<init>(Ljava/lang/StringBuffer;)V"] =
		GMeth{ParamSlots: 1, GFunction: trapFunction}

	MethodSignatures["java/lang/String.<init>(Ljava/lang/StringBuilder;)V"] =
		GMeth{ParamSlots: 1, GFunction: trapFunction}

	// ==== METHOD FUNCTIONS (in alpha order by their Java names) ====

	MethodSignatures["java/lang/String.charAt(I)C"] =
		GMeth{ParamSlots: 1, GFunction: stringCharAt}

	MethodSignatures["java/lang/String.compareTo(Ljava/lang/String;)I"] =
		GMeth{ParamSlots: 1, GFunction: compareToCaseSensitive}

	MethodSignatures["java/lang/String.compareToIgnoreCase(Ljava/lang/String;)I"] =
		GMeth{ParamSlots: 1, GFunction: compareToIgnoreCase}

	MethodSignatures["java/lang/String.concat(Ljava/lang/String;)Ljava/lang/String;"] =
		GMeth{ParamSlots: 1, GFunction: stringConcat}

	MethodSignatures["java/lang/String.contains(Ljava/lang/CharSequence;)Z"] =
		GMeth{ParamSlots: 1, GFunction: stringContains}

	MethodSignatures["java/lang/String.contentEquals(Ljava/lang/CharSequence;)Z"] =
		GMeth{ParamSlots: 1, GFunction: stringContentEquals}

	MethodSignatures["java/lang/String.contentEquals(Ljava/lang/StringBuffer;)Z"] =
		GMeth{ParamSlots: 1, GFunction: stringContentEquals}

	MethodSignatures["java/lang/String.equals(Ljava/lang/Object;)Z"] =
		GMeth{ParamSlots: 1, GFunction: stringEquals}

	MethodSignatures["java/lang/String.equalsIgnoreCase(Ljava/lang/String;)Z"] =
		GMeth{ParamSlots: 1, GFunction: stringEqualsIgnoreCase}

	MethodSignatures["java/lang/String.format(Ljava/lang/String;[Ljava/lang/Object;)Ljava/lang/String;"] =
		GMeth{ParamSlots: 2, GFunction: sprintf}

	MethodSignatures["java/lang/String.formatted([Ljava/lang/Object;)Ljava/lang/String;"] =
		GMeth{ParamSlots: 1, GFunction: sprintf}

	MethodSignatures["java/lang/String.format(Ljava/util/Locale;Ljava/lang/String;[Ljava/lang/Object;)Ljava/lang/String;"] =
		GMeth{ParamSlots: 3, GFunction: trapFunction}

	MethodSignatures["java/lang/String.getBytes()[B"] =
		GMeth{ParamSlots: 0, GFunction: getBytesFromString}

	MethodSignatures["java/lang/String.getBytes(II[BI)V"] = // deprecated
		GMeth{ParamSlots: 4, GFunction: trapFunction}

	MethodSignatures["java/lang/String.getBytes([BIIBI)V"] =
		GMeth{ParamSlots: 5, GFunction: trapFunction}

	MethodSignatures["java/lang/String.getBytes(Ljava/lang/String;)[B"] = // charset
		GMeth{ParamSlots: 1, GFunction: trapFunction}

	MethodSignatures["java/lang/String.getBytes(Ljava/nio/charset/Charset;)[B"] =
		GMeth{ParamSlots: 1, GFunction: trapFunction}

	MethodSignatures["java/lang/String.isLatin1()Z"] =
		GMeth{ParamSlots: 0, GFunction: stringIsLatin1}

	MethodSignatures["java/lang/String.indexOf(Ljava/lang/String;)I"] =
		GMeth{ParamSlots: 1, GFunction: indexOfString}

	MethodSignatures["java/lang/String.lastIndexOf(Ljava/lang/String;)I"] =
		GMeth{ParamSlots: 1, GFunction: lastIndexOfString}

	MethodSignatures["java/lang/String.length()I"] =
		GMeth{ParamSlots: 0, GFunction: stringLength}

	MethodSignatures["java/lang/String.isEmpty()Z"] =
		GMeth{ParamSlots: 0, GFunction: stringIsEmpty}

	MethodSignatures["java/lang/String.matches(Ljava/lang/String;)Z"] =
		GMeth{ParamSlots: 1, GFunction: stringMatches}

	MethodSignatures["java/lang/String.regionMatches(ILjava/lang/String;II)Z"] =
		GMeth{ParamSlots: 4, GFunction: stringRegionMatchesILII}

	MethodSignatures["java/lang/String.repeat(I)Ljava/lang/String;"] =
		GMeth{ParamSlots: 1, GFunction: stringRepeat}

	MethodSignatures["java/lang/String.replace(CC)Ljava/lang/String;"] =
		GMeth{ParamSlots: 2, GFunction: stringReplaceCC}

	MethodSignatures["java/lang/String.split(Ljava/lang/String;)[Ljava/lang/String;"] =
		GMeth{ParamSlots: 1, GFunction: stringSplit}

	MethodSignatures["java/lang/String.substring(I)Ljava/lang/String;"] =
		GMeth{ParamSlots: 1, GFunction: substringToTheEnd}

	MethodSignatures["java/lang/String.substring(II)Ljava/lang/String;"] =
		GMeth{ParamSlots: 2, GFunction: substringStartEnd}

	MethodSignatures["java/lang/String.toCharArray()[C"] =
		GMeth{ParamSlots: 0, GFunction: toCharArray}

	MethodSignatures["java/lang/String.toLowerCase()Ljava/lang/String;"] =
		GMeth{ParamSlots: 0, GFunction: toLowerCase}

	MethodSignatures["java/lang/String.toUpperCase()Ljava/lang/String;"] =
		GMeth{ParamSlots: 0, GFunction: toUpperCase}

	MethodSignatures["java/lang/String.toString()Ljava/lang/String;"] =
		GMeth{ParamSlots: 0, GFunction: stringToString}

	MethodSignatures["java/lang/String.trim()Ljava/lang/String;"] =
		GMeth{ParamSlots: 0, GFunction: trimString}

	MethodSignatures["java/lang/String.hashCode()I"] =
		GMeth{ParamSlots: 0, GFunction: stringHashCode}

	MethodSignatures["java/lang/String.valueOf(Z)Ljava/lang/String;"] =
		GMeth{ParamSlots: 1, GFunction: valueOfBoolean}

	MethodSignatures["java/lang/String.valueOf(C)Ljava/lang/String;"] =
		GMeth{ParamSlots: 1, GFunction: valueOfChar}

	MethodSignatures["java/lang/String.valueOf([C)Ljava/lang/String;"] =
		GMeth{ParamSlots: 1, GFunction: valueOfCharArray}

	MethodSignatures["java/lang/String.valueOf([CII)Ljava/lang/String;"] =
		GMeth{ParamSlots: 3, GFunction: valueOfCharSubarray}

	MethodSignatures["java/lang/String.valueOf(D)Ljava/lang/String;"] =
		GMeth{ParamSlots: 1, GFunction: valueOfDouble}

	MethodSignatures["java/lang/String.valueOf(F)Ljava/lang/String;"] =
		GMeth{ParamSlots: 1, GFunction: valueOfFloat}

	MethodSignatures["java/lang/String.valueOf(I)Ljava/lang/String;"] =
		GMeth{ParamSlots: 1, GFunction: valueOfInt}

	MethodSignatures["java/lang/String.valueOf(J)Ljava/lang/String;"] =
		GMeth{ParamSlots: 1, GFunction: valueOfLong}

	MethodSignatures["java/lang/String.valueOf(Ljava/lang/Object;)Ljava/lang/String;"] =
		GMeth{ParamSlots: 1, GFunction: valueOfObject}

}

// ==== shared helpers ====

// valueFieldDesc mirrors object.valueFieldDescriptor's layout probe (that
// one is unexported) using only classloader's own exported Layout API, so
// this package can transplant a freshly built String's "value" field onto
// an already-allocated `this` without depending on object package internals.
func valueFieldDesc(c *classloader.InstanceClass) string {
	for _, k := range c.VirtualLayout.Fields() {
		if k.Name == "value" {
			return k.Desc
		}
	}
	return ""
}

// setStringContent overwrites this's own "value" field in place -- the
// <init> contract, which must mutate the receiver allocated by `new`
// rather than return a fresh object. Building through NewUtf8 and
// transplanting its value field reuses the same [B-vs-[C layout probing
// NewUtf8 already does, instead of duplicating it here.
func setStringContent(this *object.Object, s string) interface{} {
	desc := valueFieldDesc(this.Class)
	tmp, err := NewUtf8(s)
	if err != nil {
		return throwException(excNames.IllegalStateException, err.Error())
	}
	v, ok := tmp.GetField("value", desc)
	if !ok {
		return throwException(excNames.IllegalStateException, "java/lang/String: no value field")
	}
	this.SetField("value", desc, v)
	return nil
}

func stringFromValue(v object.Value) (string, interface{}) {
	obj := object.FromHandle(v.AsRef())
	if obj == nil {
		return "", throwException(excNames.NullPointerException, "expected a String")
	}
	s, err := ReadUtf8(obj)
	if err != nil {
		return "", throwException(excNames.ClassCastException, err.Error())
	}
	return s, nil
}

func newStringValue(s string) (object.Value, interface{}) {
	obj, err := NewUtf8(s)
	if err != nil {
		return object.Value{}, throwException(excNames.IllegalStateException, err.Error())
	}
	return object.RefValue(obj.Handle), nil
}

func newCharArrayValue(runes []rune) (object.Value, interface{}) {
	ac, err := classloader.NewArrayClass(classloader.BootstrapLoader, types.CharArray)
	if err != nil {
		return object.Value{}, throwException(excNames.IllegalStateException, err.Error())
	}
	arr, err := object.NewArrayObject(ac, len(runes))
	if err != nil {
		return object.Value{}, throwException(excNames.NegativeArraySizeException, err.Error())
	}
	for i, r := range runes {
		arr.Set(i, object.IntValue(int32(uint16(r))))
	}
	return object.RefValue(arr.Handle), nil
}

func newByteArrayValue(bs []byte) (object.Value, interface{}) {
	ac, err := classloader.NewArrayClass(classloader.BootstrapLoader, types.ByteArray)
	if err != nil {
		return object.Value{}, throwException(excNames.IllegalStateException, err.Error())
	}
	arr, err := object.NewArrayObject(ac, len(bs))
	if err != nil {
		return object.Value{}, throwException(excNames.NegativeArraySizeException, err.Error())
	}
	for i, b := range bs {
		arr.Set(i, object.IntValue(int32(int8(b))))
	}
	return object.RefValue(arr.Handle), nil
}

func newStringArrayValue(strs []string) (object.Value, interface{}) {
	ac, err := classloader.NewArrayClass(classloader.BootstrapLoader, "[Ljava/lang/String;")
	if err != nil {
		return object.Value{}, throwException(excNames.IllegalStateException, err.Error())
	}
	arr, err := object.NewArrayObject(ac, len(strs))
	if err != nil {
		return object.Value{}, throwException(excNames.NegativeArraySizeException, err.Error())
	}
	for i, s := range strs {
		obj, err := NewUtf8(s)
		if err != nil {
			return object.Value{}, throwException(excNames.IllegalStateException, err.Error())
		}
		arr.Set(i, object.RefValue(obj.Handle))
	}
	return object.RefValue(arr.Handle), nil
}

func charsFromArray(v object.Value) []rune {
	arr := object.ArrayFromHandle(v.AsRef())
	if arr == nil {
		return nil
	}
	n := arr.Length()
	out := make([]rune, n)
	for i := 0; i < n; i++ {
		out[i] = rune(uint16(arr.Get(i).AsInt()))
	}
	return out
}

func bytesFromArray(v object.Value) []byte {
	arr := object.ArrayFromHandle(v.AsRef())
	if arr == nil {
		return nil
	}
	n := arr.Length()
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = byte(arr.Get(i).AsInt())
	}
	return out
}

// ==== INSTANTIATION AND INITIALIZATION FUNCTIONS ====

// "java/lang/String.<init>()V"
func stringInitEmpty(params []interface{}) interface{} {
	this := params[0].(object.Value)
	return setStringContent(object.FromHandle(this.AsRef()), "")
}

// "java/lang/String.<init>([B)V"
func stringInitFromBytes(params []interface{}) interface{} {
	this := params[0].(object.Value)
	src := params[1].(object.Value)
	return setStringContent(object.FromHandle(this.AsRef()), string(bytesFromArray(src)))
}

// "java/lang/String.<init>([BII)V"
func stringInitFromBytesSubset(params []interface{}) interface{} {
	this := params[0].(object.Value)
	src := params[1].(object.Value)
	offset := int(params[2].(object.Value).AsInt())
	length := int(params[3].(object.Value).AsInt())
	bs := bytesFromArray(src)
	if offset < 0 || length < 0 || offset+length > len(bs) {
		return throwException(excNames.StringIndexOutOfBoundsException,
			fmt.Sprintf("offset=%d length=%d for byte[%d]", offset, length, len(bs)))
	}
	return setStringContent(object.FromHandle(this.AsRef()), string(bs[offset:offset+length]))
}

// "java/lang/String.<init>([C)V"
func stringInitFromChars(params []interface{}) interface{} {
	this := params[0].(object.Value)
	src := params[1].(object.Value)
	return setStringContent(object.FromHandle(this.AsRef()), string(charsFromArray(src)))
}

// ==== METHODS FOR STRING ACTIVITIES ====

// "java/lang/String.charAt(I)C"
func stringCharAt(params []interface{}) interface{} {
	str, errv := stringFromValue(params[0].(object.Value))
	if errv != nil {
		return errv
	}
	runes := []rune(str)
	index := int(params[1].(object.Value).AsInt())
	if index < 0 || index >= len(runes) {
		return throwException(excNames.StringIndexOutOfBoundsException, fmt.Sprintf("index %d, length %d", index, len(runes)))
	}
	return object.IntValue(int32(uint16(runes[index])))
}

// "java/lang/String.compareTo(Ljava/lang/String;)I"
func compareToCaseSensitive(params []interface{}) interface{} {
	str1, errv := stringFromValue(params[0].(object.Value))
	if errv != nil {
		return errv
	}
	str2, errv := stringFromValue(params[1].(object.Value))
	if errv != nil {
		return errv
	}
	return object.IntValue(int32(strings.Compare(str1, str2)))
}

// "java/lang/String.compareToIgnoreCase(Ljava/lang/String;)I"
func compareToIgnoreCase(params []interface{}) interface{} {
	str1, errv := stringFromValue(params[0].(object.Value))
	if errv != nil {
		return errv
	}
	str2, errv := stringFromValue(params[1].(object.Value))
	if errv != nil {
		return errv
	}
	return object.IntValue(int32(strings.Compare(strings.ToLower(str1), strings.ToLower(str2))))
}

// "java/lang/String.concat(Ljava/lang/String;)Ljava/lang/String;"
func stringConcat(params []interface{}) interface{} {
	str1, errv := stringFromValue(params[0].(object.Value))
	if errv != nil {
		return errv
	}
	str2, errv := stringFromValue(params[1].(object.Value))
	if errv != nil {
		return errv
	}
	v, errv := newStringValue(str1 + str2)
	if errv != nil {
		return errv
	}
	return v
}

// "java/lang/String.contains(Ljava/lang/CharSequence;)Z" -- only a String
// argument is supported; this slice has no other CharSequence implementor
// whose content this native could read.
func stringContains(params []interface{}) interface{} {
	target, errv := stringFromValue(params[0].(object.Value))
	if errv != nil {
		return errv
	}
	search, errv := stringFromValue(params[1].(object.Value))
	if errv != nil {
		return errv
	}
	return boolValue(strings.Contains(target, search))
}

// "java/lang/String.contentEquals(Ljava/lang/CharSequence;)Z"
// "java/lang/String.contentEquals(Ljava/lang/StringBuffer;)Z"
func stringContentEquals(params []interface{}) interface{} {
	str1, errv := stringFromValue(params[0].(object.Value))
	if errv != nil {
		return errv
	}
	str2, errv := stringFromValue(params[1].(object.Value))
	if errv != nil {
		return errv
	}
	return boolValue(str1 == str2)
}

// "java/lang/String.equals(Ljava/lang/Object;)Z"
func stringEquals(params []interface{}) interface{} {
	thisObj := object.FromHandle(params[0].(object.Value).AsRef())
	other := object.FromHandle(params[1].(object.Value).AsRef())
	if other == nil || other.Class != thisObj.Class {
		return boolValue(false)
	}
	s1, err := ReadUtf8(thisObj)
	if err != nil {
		return boolValue(false)
	}
	s2, err := ReadUtf8(other)
	if err != nil {
		return boolValue(false)
	}
	return boolValue(s1 == s2)
}

// "java/lang/String.equalsIgnoreCase(Ljava/lang/String;)Z"
func stringEqualsIgnoreCase(params []interface{}) interface{} {
	str1, errv := stringFromValue(params[0].(object.Value))
	if errv != nil {
		return errv
	}
	str2, errv := stringFromValue(params[1].(object.Value))
	if errv != nil {
		return errv
	}
	return boolValue(strings.EqualFold(str1, str2))
}

// "java/lang/String.format(Ljava/lang/String;[Ljava/lang/Object;)Ljava/lang/String;"
// "java/lang/String.formatted([Ljava/lang/Object;)Ljava/lang/String;"
func sprintf(params []interface{}) interface{} {
	return StringFormatter(params)
}

// StringFormatter implements String.format/formatted: each argument object
// is converted to a host Go value for fmt.Sprintf by probing its own
// "value" field descriptor the same way NewUtf8/ReadUtf8 probe a String's --
// a generalization of the teacher's Ftype switch to any class declaring a
// single primitive-shaped "value" field (Integer, Double, ... in a fuller
// JDK would qualify). Anything else formats as its class's internal name,
// since no virtual-dispatch bridge into an arbitrary toString() override is
// wired from native code in this slice.
func StringFormatter(params []interface{}) interface{} {
	if len(params) < 1 || len(params) > 2 {
		return throwException(excNames.IllegalArgumentException, fmt.Sprintf("StringFormatter: invalid parameter count: %d", len(params)))
	}
	formatString, errv := stringFromValue(params[0].(object.Value))
	if errv != nil {
		return errv
	}
	if len(params) == 1 {
		v, errv := newStringValue(formatString)
		if errv != nil {
			return errv
		}
		return v
	}

	argsArr := object.ArrayFromHandle(params[1].(object.Value).AsRef())
	var args []interface{}
	if argsArr != nil {
		for i := 0; i < argsArr.Length(); i++ {
			args = append(args, anyFromObjectRef(argsArr.Get(i)))
		}
	}

	str := fmt.Sprintf(formatString, args...)
	v, errv := newStringValue(str)
	if errv != nil {
		return errv
	}
	return v
}

// anyFromObjectRef converts a boxed argument to a plain Go value for
// fmt.Sprintf, per StringFormatter's doc comment.
func anyFromObjectRef(v object.Value) interface{} {
	if v.IsNull() {
		return "null"
	}
	obj := object.FromHandle(v.AsRef())
	if obj == nil {
		return "null"
	}
	if obj.Class.InternalName == types.StringClassName {
		s, err := ReadUtf8(obj)
		if err != nil {
			return "null"
		}
		return s
	}
	desc := valueFieldDesc(obj.Class)
	fv, ok := obj.GetField("value", desc)
	if !ok {
		return obj.Class.InternalName
	}
	switch desc {
	case types.Int, types.Short, types.Byte:
		return fv.AsInt()
	case types.Long:
		return fv.AsLong()
	case types.Float:
		return fv.AsFloat()
	case types.Double:
		return fv.AsDouble()
	case types.Bool:
		return fv.AsBool()
	case types.Char:
		return fmt.Sprintf("%c", rune(uint16(fv.AsInt())))
	default:
		return obj.Class.InternalName
	}
}

// "java/lang/String.getBytes()[B" -- this slice has no charset registry, so
// the bytes returned are this string's own UTF-8 encoding rather than the
// JDK's platform-default-charset encoding.
func getBytesFromString(params []interface{}) interface{} {
	str, errv := stringFromValue(params[0].(object.Value))
	if errv != nil {
		return errv
	}
	v, errv := newByteArrayValue([]byte(str))
	if errv != nil {
		return errv
	}
	return v
}

// "java/lang/String.isLatin1()Z"
func stringIsLatin1([]interface{}) interface{} {
	return object.IntValue(1)
}

// "java/lang/String.indexOf(Ljava/lang/String;)I"
func indexOfString(params []interface{}) interface{} {
	base, errv := stringFromValue(params[0].(object.Value))
	if errv != nil {
		return errv
	}
	search, errv := stringFromValue(params[1].(object.Value))
	if errv != nil {
		return errv
	}
	byteIdx := strings.Index(base, search)
	if byteIdx < 0 {
		return object.IntValue(-1)
	}
	return object.IntValue(int32(utf8.RuneCountInString(base[:byteIdx])))
}

// "java/lang/String.lastIndexOf(Ljava/lang/String;)I"
func lastIndexOfString(params []interface{}) interface{} {
	base, errv := stringFromValue(params[0].(object.Value))
	if errv != nil {
		return errv
	}
	search, errv := stringFromValue(params[1].(object.Value))
	if errv != nil {
		return errv
	}
	byteIdx := strings.LastIndex(base, search)
	if byteIdx < 0 {
		return object.IntValue(-1)
	}
	return object.IntValue(int32(utf8.RuneCountInString(base[:byteIdx])))
}

// "java/lang/String.length()I"
func stringLength(params []interface{}) interface{} {
	str, errv := stringFromValue(params[0].(object.Value))
	if errv != nil {
		return errv
	}
	return object.IntValue(int32(utf8.RuneCountInString(str)))
}

// "java/lang/String.isEmpty()Z"
func stringIsEmpty(params []interface{}) interface{} {
	str, errv := stringFromValue(params[0].(object.Value))
	if errv != nil {
		return errv
	}
	return boolValue(len(str) == 0)
}

// "java/lang/String.matches(Ljava/lang/String;)Z"
func stringMatches(params []interface{}) interface{} {
	base, errv := stringFromValue(params[0].(object.Value))
	if errv != nil {
		return errv
	}
	pattern, errv := stringFromValue(params[1].(object.Value))
	if errv != nil {
		return errv
	}
	regex, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return throwException(excNames.IllegalArgumentException, "invalid regular expression: "+pattern)
	}
	return boolValue(regex.MatchString(base))
}

// "java/lang/String.regionMatches(ILjava/lang/String;II)Z"
func stringRegionMatchesILII(params []interface{}) interface{} {
	base, errv := stringFromValue(params[0].(object.Value))
	if errv != nil {
		return errv
	}
	baseRunes := []rune(base)
	baseOffset := int(params[1].(object.Value).AsInt())

	other, errv := stringFromValue(params[2].(object.Value))
	if errv != nil {
		return errv
	}
	otherRunes := []rune(other)
	otherOffset := int(params[3].(object.Value).AsInt())

	length := int(params[4].(object.Value).AsInt())
	if baseOffset < 0 || otherOffset < 0 || length < 0 {
		return boolValue(false)
	}
	if baseOffset+length > len(baseRunes) || otherOffset+length > len(otherRunes) {
		return boolValue(false)
	}
	return boolValue(string(baseRunes[baseOffset:baseOffset+length]) == string(otherRunes[otherOffset:otherOffset+length]))
}

// "java/lang/String.repeat(I)Ljava/lang/String;"
func stringRepeat(params []interface{}) interface{} {
	str, errv := stringFromValue(params[0].(object.Value))
	if errv != nil {
		return errv
	}
	count := int(params[1].(object.Value).AsInt())
	if count < 0 {
		return throwException(excNames.IllegalArgumentException, fmt.Sprintf("count is negative: %d", count))
	}
	v, errv := newStringValue(strings.Repeat(str, count))
	if errv != nil {
		return errv
	}
	return v
}

// "java/lang/String.replace(CC)Ljava/lang/String;"
func stringReplaceCC(params []interface{}) interface{} {
	str, errv := stringFromValue(params[0].(object.Value))
	if errv != nil {
		return errv
	}
	oldChar := rune(uint16(params[1].(object.Value).AsInt()))
	newChar := rune(uint16(params[2].(object.Value).AsInt()))
	newStr := strings.Map(func(r rune) rune {
		if r == oldChar {
			return newChar
		}
		return r
	}, str)
	v, errv := newStringValue(newStr)
	if errv != nil {
		return errv
	}
	return v
}

// "java/lang/String.split(Ljava/lang/String;)[Ljava/lang/String;"
func stringSplit(params []interface{}) interface{} {
	str, errv := stringFromValue(params[0].(object.Value))
	if errv != nil {
		return errv
	}
	pattern, errv := stringFromValue(params[1].(object.Value))
	if errv != nil {
		return errv
	}
	regex, err := regexp.Compile(pattern)
	if err != nil {
		return throwException(excNames.IllegalArgumentException, "invalid regular expression: "+pattern)
	}
	v, errv := newStringArrayValue(regex.Split(str, -1))
	if errv != nil {
		return errv
	}
	return v
}

// "java/lang/String.substring(I)Ljava/lang/String;"
func substringToTheEnd(params []interface{}) interface{} {
	str, errv := stringFromValue(params[0].(object.Value))
	if errv != nil {
		return errv
	}
	runes := []rune(str)
	start := int(params[1].(object.Value).AsInt())
	if start < 0 || start > len(runes) {
		return throwException(excNames.StringIndexOutOfBoundsException, fmt.Sprintf("begin %d, length %d", start, len(runes)))
	}
	v, errv := newStringValue(string(runes[start:]))
	if errv != nil {
		return errv
	}
	return v
}

// "java/lang/String.substring(II)Ljava/lang/String;"
func substringStartEnd(params []interface{}) interface{} {
	str, errv := stringFromValue(params[0].(object.Value))
	if errv != nil {
		return errv
	}
	runes := []rune(str)
	start := int(params[1].(object.Value).AsInt())
	end := int(params[2].(object.Value).AsInt())
	if start < 0 || end < start || end > len(runes) {
		return throwException(excNames.StringIndexOutOfBoundsException, fmt.Sprintf("begin %d, end %d, length %d", start, end, len(runes)))
	}
	v, errv := newStringValue(string(runes[start:end]))
	if errv != nil {
		return errv
	}
	return v
}

// "java/lang/String.toCharArray()[C"
func toCharArray(params []interface{}) interface{} {
	str, errv := stringFromValue(params[0].(object.Value))
	if errv != nil {
		return errv
	}
	v, errv := newCharArrayValue([]rune(str))
	if errv != nil {
		return errv
	}
	return v
}

// "java/lang/String.toLowerCase()Ljava/lang/String;"
func toLowerCase(params []interface{}) interface{} {
	str, errv := stringFromValue(params[0].(object.Value))
	if errv != nil {
		return errv
	}
	v, errv := newStringValue(strings.ToLower(str))
	if errv != nil {
		return errv
	}
	return v
}

// "java/lang/String.toUpperCase()Ljava/lang/String;"
func toUpperCase(params []interface{}) interface{} {
	str, errv := stringFromValue(params[0].(object.Value))
	if errv != nil {
		return errv
	}
	v, errv := newStringValue(strings.ToUpper(str))
	if errv != nil {
		return errv
	}
	return v
}

// "java/lang/String.toString()Ljava/lang/String;" -- a String is its own
// toString(), per the JDK's own implementation.
func stringToString(params []interface{}) interface{} {
	return params[0].(object.Value)
}

// "java/lang/String.trim()Ljava/lang/String;"
func trimString(params []interface{}) interface{} {
	str, errv := stringFromValue(params[0].(object.Value))
	if errv != nil {
		return errv
	}
	v, errv := newStringValue(strings.TrimSpace(str))
	if errv != nil {
		return errv
	}
	return v
}

// "java/lang/String.hashCode()I" -- Java's documented polynomial string hash.
func stringHashCode(params []interface{}) interface{} {
	str, errv := stringFromValue(params[0].(object.Value))
	if errv != nil {
		return errv
	}
	var h int32
	for _, r := range str {
		h = 31*h + int32(uint16(r))
	}
	return object.IntValue(h)
}

// "java/lang/String.valueOf(Z)Ljava/lang/String;"
func valueOfBoolean(params []interface{}) interface{} {
	str := "false"
	if params[0].(object.Value).AsBool() {
		str = "true"
	}
	v, errv := newStringValue(str)
	if errv != nil {
		return errv
	}
	return v
}

// "java/lang/String.valueOf(C)Ljava/lang/String;"
func valueOfChar(params []interface{}) interface{} {
	r := rune(uint16(params[0].(object.Value).AsInt()))
	v, errv := newStringValue(string(r))
	if errv != nil {
		return errv
	}
	return v
}

// "java/lang/String.valueOf([C)Ljava/lang/String;"
func valueOfCharArray(params []interface{}) interface{} {
	v, errv := newStringValue(string(charsFromArray(params[0].(object.Value))))
	if errv != nil {
		return errv
	}
	return v
}

// "java/lang/String.valueOf([CII)Ljava/lang/String;"
func valueOfCharSubarray(params []interface{}) interface{} {
	runes := charsFromArray(params[0].(object.Value))
	offset := int(params[1].(object.Value).AsInt())
	count := int(params[2].(object.Value).AsInt())
	if offset < 0 || count < 0 || offset+count > len(runes) {
		return throwException(excNames.StringIndexOutOfBoundsException,
			fmt.Sprintf("offset=%d count=%d for char[%d]", offset, count, len(runes)))
	}
	v, errv := newStringValue(string(runes[offset : offset+count]))
	if errv != nil {
		return errv
	}
	return v
}

// "java/lang/String.valueOf(D)Ljava/lang/String;"
func valueOfDouble(params []interface{}) interface{} {
	str := strconv.FormatFloat(params[0].(object.Value).AsDouble(), 'g', -1, 64)
	if !strings.ContainsAny(str, ".eE") {
		str += ".0"
	}
	v, errv := newStringValue(str)
	if errv != nil {
		return errv
	}
	return v
}

// "java/lang/String.valueOf(F)Ljava/lang/String;"
func valueOfFloat(params []interface{}) interface{} {
	str := strconv.FormatFloat(float64(params[0].(object.Value).AsFloat()), 'g', -1, 32)
	if !strings.ContainsAny(str, ".eE") {
		str += ".0"
	}
	v, errv := newStringValue(str)
	if errv != nil {
		return errv
	}
	return v
}

// "java/lang/String.valueOf(I)Ljava/lang/String;"
func valueOfInt(params []interface{}) interface{} {
	v, errv := newStringValue(strconv.FormatInt(int64(params[0].(object.Value).AsInt()), 10))
	if errv != nil {
		return errv
	}
	return v
}

// "java/lang/String.valueOf(J)Ljava/lang/String;"
func valueOfLong(params []interface{}) interface{} {
	v, errv := newStringValue(strconv.FormatInt(params[0].(object.Value).AsLong(), 10))
	if errv != nil {
		return errv
	}
	return v
}

// "java/lang/String.valueOf(Ljava/lang/Object;)Ljava/lang/String;"
func valueOfObject(params []interface{}) interface{} {
	arg := params[0].(object.Value)
	if arg.IsNull() {
		v, errv := newStringValue("null")
		if errv != nil {
			return errv
		}
		return v
	}
	obj := object.FromHandle(arg.AsRef())
	var str string
	if obj != nil && obj.Class.InternalName == types.StringClassName {
		s, err := ReadUtf8(obj)
		if err != nil {
			return throwException(excNames.IllegalStateException, err.Error())
		}
		str = s
	} else if obj != nil {
		str = fmt.Sprintf("%s@%x", obj.Class.InternalName, uint64(obj.Handle))
	}
	v, errv := newStringValue(str)
	if errv != nil {
		return errv
	}
	return v
}

func boolValue(b bool) object.Value {
	if b {
		return object.IntValue(1)
	}
	return object.IntValue(0)
}
