/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import (
	"strings"

	"github.com/Nowilltolife/SSVM/src/classloader"
	"github.com/Nowilltolife/SSVM/src/excNames"
	"github.com/Nowilltolife/SSVM/src/object"
)

// Load_Lang_Invoke_MethodHandleNatives registers the native half of the
// invoke-dynamic linker (spec §4.6): jvm.VM.linkCallSite resolves and calls
// one of these two overloads once per call site, passing the bootstrap
// method handle, the dynamic call site's own name and descriptor, and its
// static arguments; this native resolves them to a concrete target and
// writes it into the caller-supplied one-element appendix array.
//
// A real JVM's linkCallSite builds a java.lang.invoke.MemberName or
// CallSite and hands it back through a MethodHandle. This engine has no
// such mirror hierarchy (see invokedynamic.go's doc comment), so the
// bootstrap method itself is held to a narrower contract here: instead of
// java.lang.invoke.MethodHandles.Lookup/MethodType/Object..., it receives
// (String name, String typeDescriptor, Object[] args) and must return a
// String of the same "class name descriptor" shape bsm is itself encoded
// as -- identifying the static method the call site should actually
// invoke. Any bootstrap written against the real JDK contract is out of
// scope; bootstraps in this VM are written against this simplified one.
func Load_Lang_Invoke_MethodHandleNatives() {

	MethodSignatures["java/lang/invoke/MethodHandleNatives.<clinit>()V"] =
		GMeth{ParamSlots: 0, GFunction: justReturn}

	MethodSignatures["java/lang/invoke/MethodHandleNatives.registerNatives()V"] =
		GMeth{ParamSlots: 0, GFunction: justReturn}

	MethodSignatures["java/lang/invoke/MethodHandleNatives.linkCallSite(Ljava/lang/Object;ILjava/lang/Object;Ljava/lang/Object;Ljava/lang/Object;[Ljava/lang/Object;[Ljava/lang/Object;)Ljava/lang/Object;"] =
		GMeth{ParamSlots: 7, GFunction: linkCallSiteWithCpIndex}

	MethodSignatures["java/lang/invoke/MethodHandleNatives.linkCallSite(Ljava/lang/Object;Ljava/lang/Object;Ljava/lang/Object;Ljava/lang/Object;[Ljava/lang/Object;[Ljava/lang/Object;)Ljava/lang/Object;"] =
		GMeth{ParamSlots: 6, GFunction: linkCallSiteNoCpIndex}

}

// "...linkCallSite(Ljava/lang/Object;ILjava/lang/Object;Ljava/lang/Object;Ljava/lang/Object;[Ljava/lang/Object;[Ljava/lang/Object;)Ljava/lang/Object;"
// params: caller, cpIndex, bsm, name, type, args[], appendix[]
func linkCallSiteWithCpIndex(params []interface{}) interface{} {
	return linkCallSiteCore(params[2], params[3], params[4], params[5], params[6])
}

// "...linkCallSite(Ljava/lang/Object;Ljava/lang/Object;Ljava/lang/Object;Ljava/lang/Object;[Ljava/lang/Object;[Ljava/lang/Object;)Ljava/lang/Object;"
// params: caller, bsm, name, type, args[], appendix[]
func linkCallSiteNoCpIndex(params []interface{}) interface{} {
	return linkCallSiteCore(params[1], params[2], params[3], params[4], params[5])
}

func linkCallSiteCore(bsmParam, nameParam, typeParam, argsParam, appendixParam interface{}) interface{} {
	bsmStr, ok := readEncodedTarget(bsmParam)
	if !ok {
		return throwException(excNames.IllegalArgumentException, "MethodHandleNatives.linkCallSite: bad bootstrap method handle")
	}
	parts := strings.SplitN(bsmStr, " ", 3)
	if len(parts) != 3 {
		return throwException(excNames.IllegalArgumentException, "MethodHandleNatives.linkCallSite: malformed bootstrap method "+bsmStr)
	}
	bsmClass, err := classloader.ResolveClass(classloader.BootstrapLoader, parts[0])
	if err != nil {
		return throwException(excNames.NoClassDefFoundError, err.Error())
	}
	if err := bsmClass.Initialize(nil); err != nil {
		return throwException(excNames.NoClassDefFoundError, err.Error())
	}
	bsm, err := classloader.FindMethod(bsmClass, parts[1], parts[2])
	if err != nil {
		return throwException(excNames.NoSuchMethodError, err.Error())
	}
	if !bsm.IsStatic() {
		return throwException(excNames.IllegalStateException, "MethodHandleNatives.linkCallSite: bootstrap method is not static")
	}

	nameVal, ok := nameParam.(object.Value)
	if !ok {
		return throwException(excNames.IllegalArgumentException, "MethodHandleNatives.linkCallSite: bad call site name")
	}
	typeVal, ok := typeParam.(object.Value)
	if !ok {
		return throwException(excNames.IllegalArgumentException, "MethodHandleNatives.linkCallSite: bad call site type")
	}
	argsVal, ok := argsParam.(object.Value)
	if !ok {
		return throwException(excNames.IllegalArgumentException, "MethodHandleNatives.linkCallSite: bad static argument array")
	}

	target, err := InvokeStatic(bsmClass, bsm.Node.Name, bsm.Node.Descriptor,
		[]object.Value{nameVal, typeVal, argsVal})
	if err != nil {
		return throwException(excNames.BootstrapMethodError, err.Error())
	}

	appendixVal, ok := appendixParam.(object.Value)
	if !ok {
		return throwException(excNames.IllegalArgumentException, "MethodHandleNatives.linkCallSite: bad appendix array")
	}
	appendixArr := object.ArrayFromHandle(appendixVal.AsRef())
	if appendixArr == nil {
		return throwException(excNames.IllegalStateException, "MethodHandleNatives.linkCallSite: null appendix array")
	}
	appendixArr.Set(0, target)
	return nil
}

// readEncodedTarget reads the UTF-8-encoded "class name descriptor" string
// a method handle/bootstrap constant was reduced to by
// jvm.VM.forInvokeDynamicCall.
func readEncodedTarget(param interface{}) (string, bool) {
	v, ok := param.(object.Value)
	if !ok || v.IsNull() {
		return "", false
	}
	s, err := ReadUtf8(object.FromHandle(v.AsRef()))
	if err != nil {
		return "", false
	}
	return s, true
}
