/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"fmt"
	"math"

	"github.com/Nowilltolife/SSVM/src/classloader"
	"github.com/Nowilltolife/SSVM/src/excNames"
	"github.com/Nowilltolife/SSVM/src/frames"
	"github.com/Nowilltolife/SSVM/src/memory"
	"github.com/Nowilltolife/SSVM/src/object"
	"github.com/Nowilltolife/SSVM/src/thread"
)

// runFrame is the engine's dispatch loop (spec §4.5): a plain switch over
// the current opcode, advancing f.PC past each instruction's operands
// inline, grounded on the teacher-adjacent runFrame loop retrieved from the
// pack's other Jacobin snapshot (other_examples' exec/run.go) and
// generalized from that snapshot's untyped int32 stack to this repo's
// tagged object.Value and richer opcode set.
//
// A *VMException raised anywhere underneath (either returned by an opcode
// handler or recovered from a panic crossing the classloader/gfunction
// boundary) is matched against f's exception table before propagating to
// the caller, per spec §4.5's exception-table walk.
func (vm *VM) runFrame(th *thread.VMThread, f *frames.Frame) (result object.Value, err error) {
	if err := frames.PushFrame(th.Stack, f); err != nil {
		return object.Value{}, err
	}
	defer frames.PopFrame(th.Stack)
	defer recoverVMException(&err)

	for {
		if f.PC >= len(f.Meth) {
			return object.Value{}, nil
		}
		startPC := f.PC
		ret, done, stepErr := func() (r object.Value, d bool, e error) {
			defer recoverVMException(&e)
			return vm.step(th, f)
		}()
		if stepErr != nil {
			handlerPC, matchErr := vm.findHandler(f, startPC, stepErr)
			if matchErr != nil {
				return object.Value{}, matchErr
			}
			if handlerPC < 0 {
				return object.Value{}, stepErr
			}
			f.TOS = -1
			ve, _ := stepErr.(*VMException)
			thrown := object.NullValue
			if ve != nil && ve.Throwable != nil {
				thrown = object.RefValue(ve.Throwable.Handle)
			}
			_ = f.Push(thrown)
			f.PC = handlerPC
			continue
		}
		if done {
			return ret, nil
		}
	}
}

// findHandler walks f's exception table looking for a handler covering
// startPC whose catch type (or "any", for finally blocks) matches the
// raised exception's class. Returns handlerPC == -1 if no entry matches
// (the caller should propagate); a non-nil error reports a host failure
// while resolving a catch-type class, distinct from "no handler found".
func (vm *VM) findHandler(f *frames.Frame, startPC int, raised error) (int, error) {
	ve, ok := raised.(*VMException)
	if !ok {
		return -1, nil
	}
	for _, ex := range f.ExceptionTable {
		if startPC < int(ex.StartPc) || startPC >= int(ex.EndPc) {
			continue
		}
		if ex.CatchType == 0 {
			return int(ex.HandlerPc), nil
		}
		if f.CP == nil {
			continue
		}
		catchName := classloader.GetClassNameFromCPclassref(f.CP, ex.CatchType)
		if catchName == ve.ExceptionClass {
			return int(ex.HandlerPc), nil
		}
		loader := classloader.BootstrapLoader
		if f.Class != nil {
			loader = f.Class.Loader
		}
		catchClass, err1 := classloader.ResolveClass(loader, catchName)
		excClass, err2 := classloader.ResolveClass(loader, ve.ExceptionClass)
		if err1 != nil || err2 != nil {
			continue
		}
		if catchClass.IsAssignableFrom(excClass) {
			return int(ex.HandlerPc), nil
		}
	}
	return -1, nil
}

// step executes exactly one instruction. It returns (result, true, nil) on
// a return opcode, (_, false, nil) to continue, or (_, false, err) on a
// raised exception.
func (vm *VM) step(th *thread.VMThread, f *frames.Frame) (object.Value, bool, error) {
	op := f.Meth[f.PC]
	loader := classloader.BootstrapLoader
	if f.Class != nil {
		loader = f.Class.Loader
	}

	switch op {
	case OpNop:
		f.PC++

	case OpAconstNull:
		f.Push(object.NullValue)
		f.PC++
	case OpIconstM1:
		f.Push(object.IntValue(-1))
		f.PC++
	case OpIconst0, OpIconst1, OpIconst2, OpIconst3, OpIconst4, OpIconst5:
		f.Push(object.IntValue(int32(op - OpIconst0)))
		f.PC++
	case OpLconst0, OpLconst1:
		f.Push(object.LongValue(int64(op - OpLconst0)))
		f.PC++
	case OpFconst0, OpFconst1, OpFconst2:
		f.Push(object.FloatValue(float32(op - OpFconst0)))
		f.PC++
	case OpDconst0, OpDconst1:
		f.Push(object.DoubleValue(float64(op - OpDconst0)))
		f.PC++

	case OpBipush:
		f.Push(object.IntValue(int32(int8(f.Meth[f.PC+1]))))
		f.PC += 2
	case OpSipush:
		v := int16(f.Meth[f.PC+1])<<8 | int16(f.Meth[f.PC+2])
		f.Push(object.IntValue(int32(v)))
		f.PC += 3

	case OpLdc:
		v, err := vm.valueFromLdc(loader, f.CP, int(f.Meth[f.PC+1]))
		if err != nil {
			return object.Value{}, false, err
		}
		f.Push(v)
		f.PC += 2
	case OpLdcW, OpLdc2W:
		idx := int(f.Meth[f.PC+1])<<8 | int(f.Meth[f.PC+2])
		v, err := vm.valueFromLdc(loader, f.CP, idx)
		if err != nil {
			return object.Value{}, false, err
		}
		f.Push(v)
		f.PC += 3

	case OpIload, OpLload, OpFload, OpDload, OpAload:
		idx := int(f.Meth[f.PC+1])
		f.Push(f.Locals[idx])
		f.PC += 2
	case OpIload0, OpLload0, OpFload0, OpDload0, OpAload0:
		f.Push(f.Locals[0])
		f.PC++
	case OpIload1, OpLload1, OpFload1, OpDload1, OpAload1:
		f.Push(f.Locals[1])
		f.PC++
	case OpIload2, OpLload2, OpFload2, OpDload2, OpAload2:
		f.Push(f.Locals[2])
		f.PC++
	case OpIload3, OpLload3, OpFload3, OpDload3, OpAload3:
		f.Push(f.Locals[3])
		f.PC++

	case OpIstore, OpLstore, OpFstore, OpDstore, OpAstore:
		idx := int(f.Meth[f.PC+1])
		v, err := f.Pop()
		if err != nil {
			return object.Value{}, false, err
		}
		f.Locals[idx] = v
		f.PC += 2
	case OpIstore0, OpLstore0, OpFstore0, OpDstore0, OpAstore0:
		v, _ := f.Pop()
		f.Locals[0] = v
		f.PC++
	case OpIstore1, OpLstore1, OpFstore1, OpDstore1, OpAstore1:
		v, _ := f.Pop()
		f.Locals[1] = v
		f.PC++
	case OpIstore2, OpLstore2, OpFstore2, OpDstore2, OpAstore2:
		v, _ := f.Pop()
		f.Locals[2] = v
		f.PC++
	case OpIstore3, OpLstore3, OpFstore3, OpDstore3, OpAstore3:
		v, _ := f.Pop()
		f.Locals[3] = v
		f.PC++

	case OpIaload, OpLaload, OpFaload, OpDaload, OpAaload, OpBaload, OpCaload, OpSaload:
		idxV, _ := f.Pop()
		refV, _ := f.Pop()
		if err := vm.checkNotNull(refV); err != nil {
			return object.Value{}, false, err
		}
		arr := object.ArrayFromHandle(refV.AsRef())
		if arr == nil {
			return object.Value{}, false, vm.raise(excNames.NullPointerException, "not an array")
		}
		if err := vm.rangeCheck(int(idxV.AsInt()), arr.Length()); err != nil {
			return object.Value{}, false, err
		}
		f.Push(arr.Get(int(idxV.AsInt())))
		f.PC++

	case OpIastore, OpLastore, OpFastore, OpDastore, OpAastore, OpBastore, OpCastore, OpSastore:
		val, _ := f.Pop()
		idxV, _ := f.Pop()
		refV, _ := f.Pop()
		if err := vm.checkNotNull(refV); err != nil {
			return object.Value{}, false, err
		}
		arr := object.ArrayFromHandle(refV.AsRef())
		if arr == nil {
			return object.Value{}, false, vm.raise(excNames.NullPointerException, "not an array")
		}
		if err := vm.rangeCheck(int(idxV.AsInt()), arr.Length()); err != nil {
			return object.Value{}, false, err
		}
		arr.Set(int(idxV.AsInt()), val)
		f.PC++

	case OpPop:
		f.Pop()
		f.PC++
	case OpPop2:
		v, _ := f.Pop()
		if v.Width() == 1 {
			f.Pop()
		}
		f.PC++
	case OpDup:
		v, _ := f.Peek()
		f.Push(v)
		f.PC++
	case OpDupX1:
		v1, _ := f.Pop()
		v2, _ := f.Pop()
		f.Push(v1)
		f.Push(v2)
		f.Push(v1)
		f.PC++
	case OpDupX2:
		v1, _ := f.Pop()
		v2, _ := f.Pop()
		if v2.Width() == 2 {
			f.Push(v1)
			f.Push(v2)
			f.Push(v1)
		} else {
			v3, _ := f.Pop()
			f.Push(v1)
			f.Push(v3)
			f.Push(v2)
			f.Push(v1)
		}
		f.PC++
	case OpDup2:
		v1, _ := f.Peek()
		if v1.Width() == 2 {
			f.Push(v1)
		} else {
			v1, _ = f.Pop()
			v2, _ := f.Peek()
			f.Push(v2)
			f.Push(v1)
			f.Push(v2)
			f.Push(v1)
		}
		f.PC++
	case OpDup2X1:
		v1, _ := f.Pop()
		if v1.Width() == 2 {
			v2, _ := f.Pop()
			f.Push(v1)
			f.Push(v2)
			f.Push(v1)
		} else {
			v2, _ := f.Pop()
			v3, _ := f.Pop()
			f.Push(v2)
			f.Push(v1)
			f.Push(v3)
			f.Push(v2)
			f.Push(v1)
		}
		f.PC++
	case OpDup2X2:
		v1, _ := f.Pop()
		v2, _ := f.Pop()
		if v1.Width() == 2 && v2.Width() == 2 {
			f.Push(v1)
			f.Push(v2)
			f.Push(v1)
		} else if v1.Width() == 1 && v2.Width() == 1 {
			v3, _ := f.Pop()
			if v3.Width() == 2 {
				f.Push(v2)
				f.Push(v1)
				f.Push(v3)
				f.Push(v2)
				f.Push(v1)
			} else {
				v4, _ := f.Pop()
				f.Push(v2)
				f.Push(v1)
				f.Push(v4)
				f.Push(v3)
				f.Push(v2)
				f.Push(v1)
			}
		} else {
			f.Push(v1)
			f.Push(v2)
			f.Push(v1)
		}
		f.PC++
	case OpSwap:
		v1, _ := f.Pop()
		v2, _ := f.Pop()
		f.Push(v1)
		f.Push(v2)
		f.PC++

	case OpIadd:
		b, a := pop2i(f)
		f.Push(object.IntValue(a + b))
		f.PC++
	case OpLadd:
		b, a := pop2l(f)
		f.Push(object.LongValue(a + b))
		f.PC++
	case OpFadd:
		b, a := pop2f(f)
		f.Push(object.FloatValue(a + b))
		f.PC++
	case OpDadd:
		b, a := pop2d(f)
		f.Push(object.DoubleValue(a + b))
		f.PC++
	case OpIsub:
		b, a := pop2i(f)
		f.Push(object.IntValue(a - b))
		f.PC++
	case OpLsub:
		b, a := pop2l(f)
		f.Push(object.LongValue(a - b))
		f.PC++
	case OpFsub:
		b, a := pop2f(f)
		f.Push(object.FloatValue(a - b))
		f.PC++
	case OpDsub:
		b, a := pop2d(f)
		f.Push(object.DoubleValue(a - b))
		f.PC++
	case OpImul:
		b, a := pop2i(f)
		f.Push(object.IntValue(a * b))
		f.PC++
	case OpLmul:
		b, a := pop2l(f)
		f.Push(object.LongValue(a * b))
		f.PC++
	case OpFmul:
		b, a := pop2f(f)
		f.Push(object.FloatValue(a * b))
		f.PC++
	case OpDmul:
		b, a := pop2d(f)
		f.Push(object.DoubleValue(a * b))
		f.PC++
	case OpIdiv:
		b, a := pop2i(f)
		if b == 0 {
			return object.Value{}, false, vm.raise(excNames.ArithmeticException, "/ by zero")
		}
		f.Push(object.IntValue(a / b))
		f.PC++
	case OpLdiv:
		b, a := pop2l(f)
		if b == 0 {
			return object.Value{}, false, vm.raise(excNames.ArithmeticException, "/ by zero")
		}
		f.Push(object.LongValue(a / b))
		f.PC++
	case OpFdiv:
		b, a := pop2f(f)
		f.Push(object.FloatValue(a / b))
		f.PC++
	case OpDdiv:
		b, a := pop2d(f)
		f.Push(object.DoubleValue(a / b))
		f.PC++
	case OpIrem:
		b, a := pop2i(f)
		if b == 0 {
			return object.Value{}, false, vm.raise(excNames.ArithmeticException, "/ by zero")
		}
		f.Push(object.IntValue(a % b))
		f.PC++
	case OpLrem:
		b, a := pop2l(f)
		if b == 0 {
			return object.Value{}, false, vm.raise(excNames.ArithmeticException, "/ by zero")
		}
		f.Push(object.LongValue(a % b))
		f.PC++
	case OpFrem:
		b, a := pop2f(f)
		f.Push(object.FloatValue(float32(math.Mod(float64(a), float64(b)))))
		f.PC++
	case OpDrem:
		b, a := pop2d(f)
		f.Push(object.DoubleValue(math.Mod(a, b)))
		f.PC++
	case OpIneg:
		v, _ := f.Pop()
		f.Push(object.IntValue(-v.AsInt()))
		f.PC++
	case OpLneg:
		v, _ := f.Pop()
		f.Push(object.LongValue(-v.AsLong()))
		f.PC++
	case OpFneg:
		v, _ := f.Pop()
		f.Push(object.FloatValue(-v.AsFloat()))
		f.PC++
	case OpDneg:
		v, _ := f.Pop()
		f.Push(object.DoubleValue(-v.AsDouble()))
		f.PC++

	case OpIshl:
		b, a := pop2i(f)
		f.Push(object.IntValue(a << (uint32(b) & 0x1f)))
		f.PC++
	case OpLshl:
		bV, _ := f.Pop()
		aV, _ := f.Pop()
		f.Push(object.LongValue(aV.AsLong() << (uint64(bV.AsInt()) & 0x3f)))
		f.PC++
	case OpIshr:
		b, a := pop2i(f)
		f.Push(object.IntValue(a >> (uint32(b) & 0x1f)))
		f.PC++
	case OpLshr:
		bV, _ := f.Pop()
		aV, _ := f.Pop()
		f.Push(object.LongValue(aV.AsLong() >> (uint64(bV.AsInt()) & 0x3f)))
		f.PC++
	case OpIushr:
		b, a := pop2i(f)
		f.Push(object.IntValue(int32(uint32(a) >> (uint32(b) & 0x1f))))
		f.PC++
	case OpLushr:
		bV, _ := f.Pop()
		aV, _ := f.Pop()
		f.Push(object.LongValue(int64(uint64(aV.AsLong()) >> (uint64(bV.AsInt()) & 0x3f))))
		f.PC++
	case OpIand:
		b, a := pop2i(f)
		f.Push(object.IntValue(a & b))
		f.PC++
	case OpLand:
		b, a := pop2l(f)
		f.Push(object.LongValue(a & b))
		f.PC++
	case OpIor:
		b, a := pop2i(f)
		f.Push(object.IntValue(a | b))
		f.PC++
	case OpLor:
		b, a := pop2l(f)
		f.Push(object.LongValue(a | b))
		f.PC++
	case OpIxor:
		b, a := pop2i(f)
		f.Push(object.IntValue(a ^ b))
		f.PC++
	case OpLxor:
		b, a := pop2l(f)
		f.Push(object.LongValue(a ^ b))
		f.PC++

	case OpIinc:
		idx := int(f.Meth[f.PC+1])
		delta := int8(f.Meth[f.PC+2])
		f.Locals[idx] = object.IntValue(f.Locals[idx].AsInt() + int32(delta))
		f.PC += 3

	case OpI2l:
		v, _ := f.Pop()
		f.Push(object.LongValue(int64(v.AsInt())))
		f.PC++
	case OpI2f:
		v, _ := f.Pop()
		f.Push(object.FloatValue(float32(v.AsInt())))
		f.PC++
	case OpI2d:
		v, _ := f.Pop()
		f.Push(object.DoubleValue(float64(v.AsInt())))
		f.PC++
	case OpL2i:
		v, _ := f.Pop()
		f.Push(object.IntValue(int32(v.AsLong())))
		f.PC++
	case OpL2f:
		v, _ := f.Pop()
		f.Push(object.FloatValue(float32(v.AsLong())))
		f.PC++
	case OpL2d:
		v, _ := f.Pop()
		f.Push(object.DoubleValue(float64(v.AsLong())))
		f.PC++
	case OpF2i:
		v, _ := f.Pop()
		f.Push(object.IntValue(int32(v.AsFloat())))
		f.PC++
	case OpF2l:
		v, _ := f.Pop()
		f.Push(object.LongValue(int64(v.AsFloat())))
		f.PC++
	case OpF2d:
		v, _ := f.Pop()
		f.Push(object.DoubleValue(float64(v.AsFloat())))
		f.PC++
	case OpD2i:
		v, _ := f.Pop()
		f.Push(object.IntValue(int32(v.AsDouble())))
		f.PC++
	case OpD2l:
		v, _ := f.Pop()
		f.Push(object.LongValue(int64(v.AsDouble())))
		f.PC++
	case OpD2f:
		v, _ := f.Pop()
		f.Push(object.FloatValue(float32(v.AsDouble())))
		f.PC++
	case OpI2b:
		v, _ := f.Pop()
		f.Push(object.IntValue(int32(int8(v.AsInt()))))
		f.PC++
	case OpI2c:
		v, _ := f.Pop()
		f.Push(object.IntValue(int32(uint16(v.AsInt()))))
		f.PC++
	case OpI2s:
		v, _ := f.Pop()
		f.Push(object.IntValue(int32(int16(v.AsInt()))))
		f.PC++

	case OpLcmp:
		b, a := pop2l(f)
		f.Push(object.IntValue(cmp64(a, b)))
		f.PC++
	case OpFcmpl:
		b, a := pop2f(f)
		f.Push(object.IntValue(fcmp(float64(a), float64(b), -1)))
		f.PC++
	case OpFcmpg:
		b, a := pop2f(f)
		f.Push(object.IntValue(fcmp(float64(a), float64(b), 1)))
		f.PC++
	case OpDcmpl:
		b, a := pop2d(f)
		f.Push(object.IntValue(fcmp(a, b, -1)))
		f.PC++
	case OpDcmpg:
		b, a := pop2d(f)
		f.Push(object.IntValue(fcmp(a, b, 1)))
		f.PC++

	case OpIfeq, OpIfne, OpIflt, OpIfge, OpIfgt, OpIfle:
		v, _ := f.Pop()
		if branchTaken(op, OpIfeq, int64(v.AsInt()), 0) {
			branch(f)
		} else {
			f.PC += 3
		}
	case OpIfIcmpeq, OpIfIcmpne, OpIfIcmplt, OpIfIcmpge, OpIfIcmpgt, OpIfIcmple:
		b, a := pop2i(f)
		if branchTaken(op, OpIfIcmpeq, int64(a), int64(b)) {
			branch(f)
		} else {
			f.PC += 3
		}
	case OpIfAcmpeq, OpIfAcmpne:
		bV, _ := f.Pop()
		aV, _ := f.Pop()
		eq := aV.AsRef() == bV.AsRef()
		if (op == OpIfAcmpeq) == eq {
			branch(f)
		} else {
			f.PC += 3
		}
	case OpIfnull, OpIfnonnull:
		v, _ := f.Pop()
		if (op == OpIfnull) == v.IsNull() {
			branch(f)
		} else {
			f.PC += 3
		}
	case OpGoto:
		branch(f)

	case OpTableswitch:
		return object.Value{}, false, vm.tableswitch(f)
	case OpLookupswitch:
		return object.Value{}, false, vm.lookupswitch(f)

	case OpIreturn, OpLreturn, OpFreturn, OpDreturn, OpAreturn:
		v, _ := f.Pop()
		return v, true, nil
	case OpReturn:
		return object.Value{}, true, nil

	case OpGetstatic:
		return vm.opGetstatic(f)
	case OpPutstatic:
		return vm.opPutstatic(f)
	case OpGetfield:
		return vm.opGetfield(f)
	case OpPutfield:
		return vm.opPutfield(f)

	case OpInvokestatic:
		return vm.opInvokestatic(f, loader)
	case OpInvokespecial:
		return vm.opInvokespecial(f, loader)
	case OpInvokevirtual:
		return vm.opInvokevirtual(f)
	case OpInvokeinterface:
		return vm.opInvokeinterface(f)
	case OpInvokedynamic:
		return vm.opInvokedynamic(f, loader)

	case OpNew:
		return vm.opNew(f, loader)
	case OpNewarray:
		return vm.opNewarray(f, loader)
	case OpAnewarray:
		return vm.opAnewarray(f, loader)
	case OpMultianewarray:
		return vm.opMultianewarray(f, loader)
	case OpArraylength:
		refV, _ := f.Pop()
		if err := vm.checkNotNull(refV); err != nil {
			return object.Value{}, false, err
		}
		arr := object.ArrayFromHandle(refV.AsRef())
		f.Push(object.IntValue(int32(arr.Length())))
		f.PC++

	case OpCheckcast:
		return vm.opCheckcast(f, loader)
	case OpInstanceof:
		return vm.opInstanceof(f, loader)

	case OpMonitorenter:
		v, _ := f.Pop()
		if err := vm.checkNotNull(v); err != nil {
			return object.Value{}, false, err
		}
		mon := object.MonitorFor(v.AsRef())
		if mon == nil {
			return object.Value{}, false, vm.raise(excNames.IllegalStateException, "monitorenter on a reference with no live heap region")
		}
		mon.Enter(th)
		f.PC++
	case OpMonitorexit:
		v, _ := f.Pop()
		if err := vm.checkNotNull(v); err != nil {
			return object.Value{}, false, err
		}
		mon := object.MonitorFor(v.AsRef())
		if mon == nil {
			return object.Value{}, false, vm.raise(excNames.IllegalStateException, "monitorexit on a reference with no live heap region")
		}
		if !mon.Exit(th) {
			return object.Value{}, false, vm.raise(excNames.IllegalStateException, "current thread does not own this monitor")
		}
		f.PC++

	case OpAthrow:
		v, _ := f.Pop()
		if v.IsNull() {
			return object.Value{}, false, vm.raise(excNames.NullPointerException, "")
		}
		obj := object.FromHandle(v.AsRef())
		className := "java/lang/Throwable"
		if obj != nil {
			className = obj.Class.InternalName
		}
		return object.Value{}, false, &VMException{ExceptionClass: className, Throwable: obj}

	default:
		return object.Value{}, false, fmt.Errorf("%s: unimplemented opcode 0x%02X at pc %d in %s.%s",
			excNames.IllegalStateException, op, f.PC, f.ClName, f.MethName)
	}
	return object.Value{}, false, nil
}

func pop2i(f *frames.Frame) (b, a int32) {
	bv, _ := f.Pop()
	av, _ := f.Pop()
	return bv.AsInt(), av.AsInt()
}
func pop2l(f *frames.Frame) (b, a int64) {
	bv, _ := f.Pop()
	av, _ := f.Pop()
	return bv.AsLong(), av.AsLong()
}
func pop2f(f *frames.Frame) (b, a float32) {
	bv, _ := f.Pop()
	av, _ := f.Pop()
	return bv.AsFloat(), av.AsFloat()
}
func pop2d(f *frames.Frame) (b, a float64) {
	bv, _ := f.Pop()
	av, _ := f.Pop()
	return bv.AsDouble(), av.AsDouble()
}

func cmp64(a, b int64) int32 {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

// fcmp implements fcmpl/fcmpg and dcmpl/dcmpg: identical except for which
// sentinel (-1 or 1) a NaN operand produces (JVMS §6.5.fcmpop).
func fcmp(a, b float64, nanResult int32) int32 {
	if math.IsNaN(a) || math.IsNaN(b) {
		return nanResult
	}
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

func branch(f *frames.Frame) {
	offset := int16(f.Meth[f.PC+1])<<8 | int16(f.Meth[f.PC+2])
	f.PC += int(offset)
}

func branchTaken(op, base byte, a, b int64) bool {
	switch op - base {
	case 0: // eq
		return a == b
	case 1: // ne
		return a != b
	case 2: // lt
		return a < b
	case 3: // ge
		return a >= b
	case 4: // gt
		return a > b
	case 5: // le
		return a <= b
	}
	return false
}

func (vm *VM) tableswitch(f *frames.Frame) error {
	startPC := f.PC
	pc := f.PC + 1
	pc += (4 - ((pc - 0) % 4)) % 4 // align to 4-byte boundary relative to method start
	readInt := func() int32 {
		v := int32(f.Meth[pc])<<24 | int32(f.Meth[pc+1])<<16 | int32(f.Meth[pc+2])<<8 | int32(f.Meth[pc+3])
		pc += 4
		return v
	}
	defaultOffset := readInt()
	low := readInt()
	high := readInt()

	v, _ := f.Pop()
	idx := v.AsInt()
	if idx < low || idx > high {
		f.PC = startPC + int(defaultOffset)
		return nil
	}
	pc += int(idx-low) * 4
	offset := readInt()
	f.PC = startPC + int(offset)
	return nil
}

func (vm *VM) lookupswitch(f *frames.Frame) error {
	startPC := f.PC
	pc := f.PC + 1
	pc += (4 - (pc % 4)) % 4
	readInt := func() int32 {
		v := int32(f.Meth[pc])<<24 | int32(f.Meth[pc+1])<<16 | int32(f.Meth[pc+2])<<8 | int32(f.Meth[pc+3])
		pc += 4
		return v
	}
	defaultOffset := readInt()
	npairs := readInt()

	v, _ := f.Pop()
	key := v.AsInt()
	for i := int32(0); i < npairs; i++ {
		match := readInt()
		offset := readInt()
		if match == key {
			f.PC = startPC + int(offset)
			return nil
		}
	}
	f.PC = startPC + int(defaultOffset)
	return nil
}

func (vm *VM) opGetstatic(f *frames.Frame) (object.Value, bool, error) {
	idx := int(f.Meth[f.PC+1])<<8 | int(f.Meth[f.PC+2])
	className, fieldName, desc := classloader.GetFieldInfoFromCPfieldref(f.CP, idx)
	class, err := classloader.ResolveClass(ownerLoader(f), className)
	if err != nil {
		return object.Value{}, false, wrapAsVMException(err)
	}
	if err := class.Initialize(&vm.MainThread); err != nil {
		return object.Value{}, false, err
	}
	off, ok := class.StaticLayout.Offset(fieldName, desc)
	if !ok {
		return object.Value{}, false, vm.raise(excNames.NoSuchFieldError, className+"."+fieldName)
	}
	base := vm.Memory.GetStaticOffset(class)
	f.Push(object.ReadTyped(class.StaticArea(), base+off, desc))
	f.PC += 3
	return object.Value{}, false, nil
}

func (vm *VM) opPutstatic(f *frames.Frame) (object.Value, bool, error) {
	idx := int(f.Meth[f.PC+1])<<8 | int(f.Meth[f.PC+2])
	className, fieldName, desc := classloader.GetFieldInfoFromCPfieldref(f.CP, idx)
	class, err := classloader.ResolveClass(ownerLoader(f), className)
	if err != nil {
		return object.Value{}, false, wrapAsVMException(err)
	}
	if err := class.Initialize(&vm.MainThread); err != nil {
		return object.Value{}, false, err
	}
	off, ok := class.StaticLayout.Offset(fieldName, desc)
	if !ok {
		return object.Value{}, false, vm.raise(excNames.NoSuchFieldError, className+"."+fieldName)
	}
	v, _ := f.Pop()
	base := vm.Memory.GetStaticOffset(class)
	object.WriteTyped(class.StaticArea(), base+off, desc, v)
	f.PC += 3
	return object.Value{}, false, nil
}

func (vm *VM) opGetfield(f *frames.Frame) (object.Value, bool, error) {
	idx := int(f.Meth[f.PC+1])<<8 | int(f.Meth[f.PC+2])
	_, fieldName, desc := classloader.GetFieldInfoFromCPfieldref(f.CP, idx)
	refV, _ := f.Pop()
	if err := vm.checkNotNull(refV); err != nil {
		return object.Value{}, false, err
	}
	obj := object.FromHandle(refV.AsRef())
	v, ok := obj.GetField(fieldName, desc)
	if !ok {
		return object.Value{}, false, vm.raise(excNames.NoSuchFieldError, fieldName)
	}
	f.Push(v)
	f.PC += 3
	return object.Value{}, false, nil
}

func (vm *VM) opPutfield(f *frames.Frame) (object.Value, bool, error) {
	idx := int(f.Meth[f.PC+1])<<8 | int(f.Meth[f.PC+2])
	_, fieldName, desc := classloader.GetFieldInfoFromCPfieldref(f.CP, idx)
	val, _ := f.Pop()
	refV, _ := f.Pop()
	if err := vm.checkNotNull(refV); err != nil {
		return object.Value{}, false, err
	}
	obj := object.FromHandle(refV.AsRef())
	if !obj.SetField(fieldName, desc, val) {
		return object.Value{}, false, vm.raise(excNames.NoSuchFieldError, fieldName)
	}
	f.PC += 3
	return object.Value{}, false, nil
}

func ownerLoader(f *frames.Frame) *classloader.ClassLoaderData {
	if f.Class != nil {
		return f.Class.Loader
	}
	return classloader.BootstrapLoader
}

func (vm *VM) popArgs(f *frames.Frame, desc string, withReceiver bool) []object.Value {
	params := parseParamDescriptors(desc)
	n := len(params)
	if withReceiver {
		n++
	}
	locals := make([]object.Value, n)
	for i := len(params) - 1; i >= 0; i-- {
		v, _ := f.Pop()
		idx := i
		if withReceiver {
			idx++
		}
		locals[idx] = v
	}
	if withReceiver {
		v, _ := f.Pop()
		locals[0] = v
	}
	return locals
}

func (vm *VM) opInvokestatic(f *frames.Frame, loader *classloader.ClassLoaderData) (object.Value, bool, error) {
	idx := int(f.Meth[f.PC+1])<<8 | int(f.Meth[f.PC+2])
	className, name, desc := classloader.GetMethInfoFromCPmethref(f.CP, idx)
	class, err := classloader.ResolveClass(loader, className)
	if err != nil {
		return object.Value{}, false, wrapAsVMException(err)
	}
	locals := vm.popArgs(f, desc, false)
	ret, err := vm.InvokeStatic(class, name, desc, locals)
	if err != nil {
		return object.Value{}, false, err
	}
	if desc[len(desc)-1] != 'V' {
		f.Push(ret)
	}
	f.PC += 3
	return object.Value{}, false, nil
}

func (vm *VM) opInvokespecial(f *frames.Frame, loader *classloader.ClassLoaderData) (object.Value, bool, error) {
	idx := int(f.Meth[f.PC+1])<<8 | int(f.Meth[f.PC+2])
	className, name, desc := classloader.GetMethInfoFromCPmethref(f.CP, idx)
	class, err := classloader.ResolveClass(loader, className)
	if err != nil {
		return object.Value{}, false, wrapAsVMException(err)
	}
	m, err := classloader.FindMethod(class, name, desc)
	if err != nil {
		return object.Value{}, false, wrapAsVMException(err)
	}
	locals := vm.popArgs(f, desc, true)
	ret, err := vm.InvokeExact(m.Owner, m, locals)
	if err != nil {
		return object.Value{}, false, err
	}
	if desc[len(desc)-1] != 'V' {
		f.Push(ret)
	}
	f.PC += 3
	return object.Value{}, false, nil
}

func (vm *VM) opInvokevirtual(f *frames.Frame) (object.Value, bool, error) {
	idx := int(f.Meth[f.PC+1])<<8 | int(f.Meth[f.PC+2])
	_, name, desc := classloader.GetMethInfoFromCPmethref(f.CP, idx)
	locals := vm.popArgs(f, desc, true)
	if err := vm.checkNotNull(locals[0]); err != nil {
		return object.Value{}, false, err
	}
	receiverClass, err := classOfHandle(locals[0].AsRef())
	if err != nil {
		return object.Value{}, false, wrapAsVMException(err)
	}
	ret, err := vm.InvokeVirtual(receiverClass, name, desc, locals)
	if err != nil {
		return object.Value{}, false, err
	}
	if desc[len(desc)-1] != 'V' {
		f.Push(ret)
	}
	f.PC += 3
	return object.Value{}, false, nil
}

func (vm *VM) opInvokeinterface(f *frames.Frame) (object.Value, bool, error) {
	idx := int(f.Meth[f.PC+1])<<8 | int(f.Meth[f.PC+2])
	_, name, desc := classloader.GetInterfaceMethInfoFromCPInterfaceMethref(f.CP, idx)
	// count and a reserved zero byte follow the 2-byte CP index (JVMS §6.5.invokeinterface).
	locals := vm.popArgs(f, desc, true)
	if err := vm.checkNotNull(locals[0]); err != nil {
		return object.Value{}, false, err
	}
	receiverClass, err := classOfHandle(locals[0].AsRef())
	if err != nil {
		return object.Value{}, false, wrapAsVMException(err)
	}
	dispatchClass, err := classloader.ReceiverClassForDispatch(receiverClass)
	if err != nil {
		return object.Value{}, false, wrapAsVMException(err)
	}
	ret, err := vm.InvokeInterface(dispatchClass, name, desc, locals)
	if err != nil {
		return object.Value{}, false, err
	}
	if desc[len(desc)-1] != 'V' {
		f.Push(ret)
	}
	f.PC += 5
	return object.Value{}, false, nil
}

func classOfHandle(h memory.Handle) (classloader.JavaClass, error) {
	if h == 0 {
		return nil, fmt.Errorf("%s: null reference", excNames.NullPointerException)
	}
	r := object.Memory.Region(h)
	if r == nil {
		return nil, fmt.Errorf("%s: invalid reference", excNames.NullPointerException)
	}
	switch c := r.Class().(type) {
	case *classloader.InstanceClass:
		return c, nil
	case *classloader.ArrayClass:
		return c, nil
	default:
		return nil, fmt.Errorf("%s: unresolvable reference class", excNames.IllegalStateException)
	}
}

func (vm *VM) opNew(f *frames.Frame, loader *classloader.ClassLoaderData) (object.Value, bool, error) {
	idx := int(f.Meth[f.PC+1])<<8 | int(f.Meth[f.PC+2])
	className := classloader.GetClassNameFromCPclassref(f.CP, uint16(idx))
	obj, err := vm.InstantiateClass(loader, className)
	if err != nil {
		return object.Value{}, false, err
	}
	f.Push(object.RefValue(obj.Handle))
	f.PC += 3
	return object.Value{}, false, nil
}

func (vm *VM) opNewarray(f *frames.Frame, loader *classloader.ClassLoaderData) (object.Value, bool, error) {
	atype := f.Meth[f.PC+1]
	tag := newarrayTag(atype)
	if tag == "" {
		return object.Value{}, false, vm.raise(excNames.IllegalArgumentException, "invalid newarray type")
	}
	lenV, _ := f.Pop()
	if err := vm.checkArrayLength(lenV.AsInt()); err != nil {
		return object.Value{}, false, err
	}
	ac, err := classloader.NewArrayClass(loader, "["+tag)
	if err != nil {
		return object.Value{}, false, wrapAsVMException(err)
	}
	arr, err := object.NewArrayObject(ac, int(lenV.AsInt()))
	if err != nil {
		return object.Value{}, false, wrapAsVMException(err)
	}
	f.Push(object.RefValue(arr.Handle))
	f.PC += 2
	return object.Value{}, false, nil
}

func (vm *VM) opAnewarray(f *frames.Frame, loader *classloader.ClassLoaderData) (object.Value, bool, error) {
	idx := int(f.Meth[f.PC+1])<<8 | int(f.Meth[f.PC+2])
	componentName := classloader.GetClassNameFromCPclassref(f.CP, uint16(idx))
	lenV, _ := f.Pop()
	if err := vm.checkArrayLength(lenV.AsInt()); err != nil {
		return object.Value{}, false, err
	}
	desc := "L" + componentName + ";"
	if len(componentName) > 0 && componentName[0] == '[' {
		desc = componentName
	}
	ac, err := classloader.NewArrayClass(loader, "["+desc)
	if err != nil {
		return object.Value{}, false, wrapAsVMException(err)
	}
	arr, err := object.NewArrayObject(ac, int(lenV.AsInt()))
	if err != nil {
		return object.Value{}, false, wrapAsVMException(err)
	}
	f.Push(object.RefValue(arr.Handle))
	f.PC += 3
	return object.Value{}, false, nil
}

func (vm *VM) opMultianewarray(f *frames.Frame, loader *classloader.ClassLoaderData) (object.Value, bool, error) {
	idx := int(f.Meth[f.PC+1])<<8 | int(f.Meth[f.PC+2])
	dims := int(f.Meth[f.PC+3])
	arrayDesc := classloader.GetClassNameFromCPclassref(f.CP, uint16(idx))

	counts := make([]int32, dims)
	for i := dims - 1; i >= 0; i-- {
		v, _ := f.Pop()
		if err := vm.checkArrayLength(v.AsInt()); err != nil {
			return object.Value{}, false, err
		}
		counts[i] = v.AsInt()
	}
	h, err := vm.buildMultiArray(loader, arrayDesc, counts)
	if err != nil {
		return object.Value{}, false, err
	}
	f.Push(object.RefValue(h))
	f.PC += 4
	return object.Value{}, false, nil
}

func (vm *VM) buildMultiArray(loader *classloader.ClassLoaderData, desc string, counts []int32) (memory.Handle, error) {
	ac, err := classloader.NewArrayClass(loader, desc)
	if err != nil {
		return 0, wrapAsVMException(err)
	}
	arr, err := object.NewArrayObject(ac, int(counts[0]))
	if err != nil {
		return 0, wrapAsVMException(err)
	}
	if len(counts) > 1 {
		elementDesc := desc[1:]
		for i := 0; i < int(counts[0]); i++ {
			h, err := vm.buildMultiArray(loader, elementDesc, counts[1:])
			if err != nil {
				return 0, err
			}
			arr.Set(i, object.RefValue(h))
		}
	}
	return arr.Handle, nil
}

func (vm *VM) opCheckcast(f *frames.Frame, loader *classloader.ClassLoaderData) (object.Value, bool, error) {
	idx := int(f.Meth[f.PC+1])<<8 | int(f.Meth[f.PC+2])
	targetName := classloader.GetClassNameFromCPclassref(f.CP, uint16(idx))
	v, _ := f.Peek()
	if !v.IsNull() {
		ok, err := vm.isInstanceOf(loader, v, targetName)
		if err != nil {
			return object.Value{}, false, err
		}
		if !ok {
			return object.Value{}, false, vm.raise(excNames.ClassCastException, "cannot be cast to "+targetName)
		}
	}
	f.PC += 3
	return object.Value{}, false, nil
}

func (vm *VM) opInstanceof(f *frames.Frame, loader *classloader.ClassLoaderData) (object.Value, bool, error) {
	idx := int(f.Meth[f.PC+1])<<8 | int(f.Meth[f.PC+2])
	targetName := classloader.GetClassNameFromCPclassref(f.CP, uint16(idx))
	v, _ := f.Pop()
	if v.IsNull() {
		f.Push(object.IntValue(0))
		f.PC += 3
		return object.Value{}, false, nil
	}
	ok, err := vm.isInstanceOf(loader, v, targetName)
	if err != nil {
		return object.Value{}, false, err
	}
	if ok {
		f.Push(object.IntValue(1))
	} else {
		f.Push(object.IntValue(0))
	}
	f.PC += 3
	return object.Value{}, false, nil
}

// isInstanceOf checks v (a reference Value) against targetName, a class or
// array-descriptor name from a checkcast/instanceof CP entry.
func (vm *VM) isInstanceOf(loader *classloader.ClassLoaderData, v object.Value, targetName string) (bool, error) {
	actual, err := classOfHandle(v.AsRef())
	if err != nil {
		return false, wrapAsVMException(err)
	}
	target, err := vm.resolveClassDescriptorOrName(loader, targetName)
	if err != nil {
		return false, wrapAsVMException(err)
	}
	switch a := actual.(type) {
	case *classloader.InstanceClass:
		t, ok := target.(*classloader.InstanceClass)
		if !ok {
			return false, nil
		}
		return t.IsAssignableFrom(a), nil
	case *classloader.ArrayClass:
		t, ok := target.(*classloader.ArrayClass)
		if ok {
			return a.Name() == t.Name(), nil
		}
		// every array is assignable to java/lang/Object.
		return target.Name() == "java/lang/Object", nil
	default:
		return false, nil
	}
}
