/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nowilltolife/SSVM/src/classloader"
	"github.com/Nowilltolife/SSVM/src/object"
)

func TestNullAcceleratorAlwaysDeclines(t *testing.T) {
	var a Accelerator = NullAccelerator{}
	owner := &classloader.InstanceClass{}
	m := &classloader.Method{Node: &classloader.MethodNode{AccessFlags: classloader.AccStatic, Descriptor: "(II)I"}}
	assert.False(t, a.Offer(owner, m))
}

func intAddMethod() *classloader.Method {
	return &classloader.Method{
		Node: &classloader.MethodNode{
			AccessFlags: classloader.AccStatic,
			Descriptor:  "(II)I",
			CodeAttr:    classloader.CodeAttrib{Code: []byte{opIload0, opIload1, opIadd, opIreturn}},
		},
	}
}

func TestGolangAsmAcceleratorAcceptsNarrowPattern(t *testing.T) {
	a := NewGolangAsmAccelerator()
	owner := &classloader.InstanceClass{}
	m := intAddMethod()

	require.True(t, a.Offer(owner, m))

	result, err := a.Invoke(owner, m, []object.Value{object.IntValue(2), object.IntValue(3)})
	require.NoError(t, err)
	assert.Equal(t, int32(5), result.AsInt())
}

func TestGolangAsmAcceleratorRejectsOtherShapes(t *testing.T) {
	a := NewGolangAsmAccelerator()
	owner := &classloader.InstanceClass{}

	notStatic := &classloader.Method{Node: &classloader.MethodNode{
		Descriptor: "(II)I",
		CodeAttr:   classloader.CodeAttrib{Code: []byte{opIload0, opIload1, opIadd, opIreturn}},
	}}
	assert.False(t, a.Offer(owner, notStatic))

	wrongDesc := &classloader.Method{Node: &classloader.MethodNode{
		AccessFlags: classloader.AccStatic,
		Descriptor:  "(JJ)J",
		CodeAttr:    classloader.CodeAttrib{Code: []byte{opIload0, opIload1, opIadd, opIreturn}},
	}}
	assert.False(t, a.Offer(owner, wrongDesc))

	wrongBody := &classloader.Method{Node: &classloader.MethodNode{
		AccessFlags: classloader.AccStatic,
		Descriptor:  "(II)I",
		CodeAttr:    classloader.CodeAttrib{Code: []byte{opIload0, opIload1, opIreturn}},
	}}
	assert.False(t, a.Offer(owner, wrongBody))
}

func TestGolangAsmAcceleratorCachesAcrossOffers(t *testing.T) {
	a := NewGolangAsmAccelerator()
	owner := &classloader.InstanceClass{}
	m := intAddMethod()

	require.True(t, a.Offer(owner, m))
	require.True(t, a.Offer(owner, m))
	assert.Len(t, a.compiled, 1)
}
