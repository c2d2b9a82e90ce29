/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

// This file contains utility routines for runtime operations involving a
// class's constant pool (CP). Ported from the teacher's CPutils.go, which
// keeps exactly this split (CP helpers live in classloader, not jvm, to
// avoid a circular import) and the same discriminated-return-struct idiom
// for a language that has no tagged unions of its own.

import "unsafe"

// CpType is a substitute for a discriminated union: the caller inspects
// RetType to know which of the four value fields holds the answer.
type CpType struct {
	EntryType int
	RetType   int
	IntVal    int64
	FloatVal  float64
	AddrVal   uintptr
	StringVal *string
}

const (
	IsError     = 0
	IsStructAddr = 1
	IsFloat64   = 2
	IsInt64     = 3
	IsStringAddr = 4
)

// FetchUTF8stringFromCPEntryNumber returns the UTF-8 string the CP entry at
// index i denotes, or "" if i does not point at a UTF8 entry.
func FetchUTF8stringFromCPEntryNumber(cp *CPool, i uint16) string {
	if cp == nil || int(i) >= len(cp.CpIndex) {
		return ""
	}
	e := cp.CpIndex[i]
	if e.Type != UTF8 {
		return ""
	}
	if int(e.Slot) >= len(cp.Utf8Refs) {
		return ""
	}
	return cp.Utf8Refs[e.Slot]
}

// FetchCPentry looks up an entry in a CP and returns its type and value.
func FetchCPentry(cpp *CPool, index int) CpType {
	if cpp == nil {
		return CpType{EntryType: 0, RetType: IsError}
	}
	cp := *cpp
	if index < 1 || index >= len(cp.CpIndex) {
		return CpType{EntryType: 0, RetType: IsError}
	}

	entry := cp.CpIndex[index]

	switch entry.Type {
	case IntConst:
		return CpType{EntryType: int(entry.Type), RetType: IsInt64, IntVal: int64(cp.IntConsts[entry.Slot])}

	case LongConst:
		return CpType{EntryType: int(entry.Type), RetType: IsInt64, IntVal: cp.LongConsts[entry.Slot]}

	case MethodType:
		return CpType{EntryType: int(entry.Type), RetType: IsInt64, IntVal: int64(cp.MethodTypes[entry.Slot])}

	case FloatConst:
		return CpType{EntryType: int(entry.Type), RetType: IsFloat64, FloatVal: float64(cp.Floats[entry.Slot])}

	case DoubleConst:
		return CpType{EntryType: int(entry.Type), RetType: IsFloat64, FloatVal: cp.Doubles[entry.Slot]}

	case ClassRef:
		e := cp.ClassRefs[entry.Slot]
		className := FetchUTF8stringFromCPEntryNumber(&cp, uint16(e))
		return CpType{EntryType: int(entry.Type), RetType: IsStringAddr, StringVal: &className}

	case StringConst:
		e := cp.CpIndex[entry.Slot]
		if e.Type != UTF8 {
			return CpType{EntryType: 0, RetType: IsError}
		}
		str := cp.Utf8Refs[e.Slot]
		return CpType{EntryType: int(entry.Type), RetType: IsStringAddr, StringVal: &str}

	case UTF8:
		v := &cp.Utf8Refs[entry.Slot]
		return CpType{EntryType: int(entry.Type), RetType: IsStringAddr, StringVal: v}

	case Dynamic:
		v := unsafe.Pointer(&cp.Dynamics[entry.Slot])
		return CpType{EntryType: int(entry.Type), RetType: IsStructAddr, AddrVal: uintptr(v)}

	case Interface:
		v := unsafe.Pointer(&cp.InterfaceRefs[entry.Slot])
		return CpType{EntryType: int(entry.Type), RetType: IsStructAddr, AddrVal: uintptr(v)}

	case InvokeDynamic:
		v := unsafe.Pointer(&cp.InvokeDynamics[entry.Slot])
		return CpType{EntryType: int(entry.Type), RetType: IsStructAddr, AddrVal: uintptr(v)}

	case MethodHandle:
		v := unsafe.Pointer(&cp.MethodHandles[entry.Slot])
		return CpType{EntryType: int(entry.Type), RetType: IsStructAddr, AddrVal: uintptr(v)}

	case MethodRef:
		v := unsafe.Pointer(&cp.MethodRefs[entry.Slot])
		return CpType{EntryType: int(entry.Type), RetType: IsStructAddr, AddrVal: uintptr(v)}

	case NameAndType:
		v := unsafe.Pointer(&cp.NameAndTypes[entry.Slot])
		return CpType{EntryType: int(entry.Type), RetType: IsStructAddr, AddrVal: uintptr(v)}

	case Module, Package:
		return CpType{EntryType: 0, RetType: IsError}
	}

	return CpType{EntryType: 0, RetType: IsError}
}

// GetMethInfoFromCPmethref resolves a MethodRef CP index to
// (className, methodName, methodDescriptor).
func GetMethInfoFromCPmethref(cp *CPool, cpIndex int) (string, string, string) {
	if cp == nil || cpIndex < 1 || cpIndex >= len(cp.CpIndex) {
		return "", "", ""
	}
	if cp.CpIndex[cpIndex].Type != MethodRef {
		return "", "", ""
	}
	methodRef := cp.CpIndex[cpIndex].Slot
	classIndex := cp.MethodRefs[methodRef].ClassIndex

	className := GetClassNameFromCPclassref(cp, classIndex)

	natIndex := cp.MethodRefs[methodRef].NameAndType
	natSlot := cp.CpIndex[natIndex].Slot
	nat := cp.NameAndTypes[natSlot]

	methName := FetchUTF8stringFromCPEntryNumber(cp, cp.CpIndex[nat.NameIndex].Slot)
	methSig := FetchUTF8stringFromCPEntryNumber(cp, cp.CpIndex[nat.DescIndex].Slot)

	return className, methName, methSig
}

// GetClassNameFromCPclassref resolves a ClassRef CP index to a class's
// internal name, or "" on error.
func GetClassNameFromCPclassref(cp *CPool, cpIndex uint16) string {
	entry := FetchCPentry(cp, int(cpIndex))
	if entry.RetType != IsStringAddr {
		return ""
	}
	return *entry.StringVal
}

func nameAndTypeStrings(cp *CPool, natIndex uint16) (string, string) {
	natSlot := cp.CpIndex[natIndex].Slot
	nat := cp.NameAndTypes[natSlot]
	name := FetchUTF8stringFromCPEntryNumber(cp, cp.CpIndex[nat.NameIndex].Slot)
	desc := FetchUTF8stringFromCPEntryNumber(cp, cp.CpIndex[nat.DescIndex].Slot)
	return name, desc
}

// GetFieldInfoFromCPfieldref resolves a FieldRef CP index to
// (className, fieldName, fieldDescriptor), the getstatic/putstatic/getfield/
// putfield counterpart of GetMethInfoFromCPmethref.
func GetFieldInfoFromCPfieldref(cp *CPool, cpIndex int) (string, string, string) {
	if cp == nil || cpIndex < 1 || cpIndex >= len(cp.CpIndex) {
		return "", "", ""
	}
	if cp.CpIndex[cpIndex].Type != FieldRef {
		return "", "", ""
	}
	fieldRef := cp.CpIndex[cpIndex].Slot
	className := GetClassNameFromCPclassref(cp, cp.FieldRefs[fieldRef].ClassIndex)
	name, desc := nameAndTypeStrings(cp, cp.FieldRefs[fieldRef].NameAndType)
	return className, name, desc
}

// GetMethodHandleInfo resolves a MethodHandle CP index to its reference
// kind (JVMS table 5.4.3.5-A) and the (className, methodName, descriptor)
// of the method or field it refers to. Only method-shaped handles (every
// ref kind this VM's bootstrap linkage cares about) are supported; ok is
// false for anything else or a malformed index.
func GetMethodHandleInfo(cp *CPool, cpIndex int) (refKind uint16, className, name, desc string, ok bool) {
	if cp == nil || cpIndex < 1 || cpIndex >= len(cp.CpIndex) {
		return 0, "", "", "", false
	}
	if cp.CpIndex[cpIndex].Type != MethodHandle {
		return 0, "", "", "", false
	}
	mh := cp.MethodHandles[cp.CpIndex[cpIndex].Slot]
	className, name, desc = GetMethInfoFromCPmethref(cp, int(mh.RefIndex))
	if className == "" {
		return mh.RefKind, "", "", "", false
	}
	return mh.RefKind, className, name, desc, true
}

// GetInvokeDynamicInfo resolves an InvokeDynamic CP index to its bootstrap-
// method-table index and the (name, descriptor) of the dynamic call site.
func GetInvokeDynamicInfo(cp *CPool, cpIndex int) (bootstrapIndex uint16, name, desc string, ok bool) {
	if cp == nil || cpIndex < 1 || cpIndex >= len(cp.CpIndex) {
		return 0, "", "", false
	}
	if cp.CpIndex[cpIndex].Type != InvokeDynamic {
		return 0, "", "", false
	}
	e := cp.InvokeDynamics[cp.CpIndex[cpIndex].Slot]
	name, desc = nameAndTypeStrings(cp, e.NameAndType)
	return e.BootstrapIndex, name, desc, true
}

// GetInterfaceMethInfoFromCPInterfaceMethref resolves an Interface CP index
// (an InterfaceMethodref_info constant, used by invokeinterface) to
// (className, methodName, methodDescriptor).
func GetInterfaceMethInfoFromCPInterfaceMethref(cp *CPool, cpIndex int) (string, string, string) {
	if cp == nil || cpIndex < 1 || cpIndex >= len(cp.CpIndex) {
		return "", "", ""
	}
	if cp.CpIndex[cpIndex].Type != Interface {
		return "", "", ""
	}
	ifaceRef := cp.CpIndex[cpIndex].Slot
	className := GetClassNameFromCPclassref(cp, cp.InterfaceRefs[ifaceRef].ClassIndex)
	name, desc := nameAndTypeStrings(cp, cp.InterfaceRefs[ifaceRef].NameAndType)
	return className, name, desc
}
