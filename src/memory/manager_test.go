/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package memory

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewInstanceIsZeroed(t *testing.T) {
	m := NewManager()
	h := m.NewInstance("fakeClass", 16)
	require.NotEqual(t, m.NullValue(), h)
	require.EqualValues(t, 0, m.ReadInt(h, m.ValueBaseOffset(h)))
}

func TestIntRoundTrip(t *testing.T) {
	m := NewManager()
	h := m.NewInstance("fakeClass", 8)
	off := m.ValueBaseOffset(h)
	m.WriteInt(h, off, -42)
	require.EqualValues(t, -42, m.ReadInt(h, off))
}

func TestLongFloatDoubleRoundTrip(t *testing.T) {
	m := NewManager()
	h := m.NewInstance("fakeClass", 8)
	off := m.ValueBaseOffset(h)

	m.WriteLong(h, off, 1<<40)
	require.EqualValues(t, int64(1<<40), m.ReadLong(h, off))

	m.WriteFloat(h, off, 3.5)
	require.InDelta(t, 3.5, m.ReadFloat(h, off), 0.0001)

	m.WriteDouble(h, off, 2.718281828)
	require.InDelta(t, 2.718281828, m.ReadDouble(h, off), 1e-9)
}

func TestArrayLengthAndIndexScale(t *testing.T) {
	m := NewManager()
	h := m.NewArray("intArrayClass", 5, m.ArrayIndexScale("I"))
	r := m.Region(h)
	require.Equal(t, 5, r.Length())

	base := m.ValueBaseOffset(h)
	scale := m.ArrayIndexScale("I")
	for i := 0; i < 5; i++ {
		m.WriteInt(h, base+i*scale, int32(i*i))
	}
	for i := 0; i < 5; i++ {
		require.EqualValues(t, i*i, m.ReadInt(h, base+i*scale))
	}
}

func TestReferenceRoundTripAndNull(t *testing.T) {
	m := NewManager()
	require.EqualValues(t, 0, m.NullValue())

	a := m.NewInstance("classA", 8)
	b := m.NewInstance("classA", 8)
	m.WriteReference(b, m.ValueBaseOffset(b), a)
	require.Equal(t, a, m.ReadReference(b, m.ValueBaseOffset(b)))
}

func TestCompareAndSwapInt(t *testing.T) {
	m := NewManager()
	h := m.NewInstance("classA", 8)
	off := m.ValueBaseOffset(h)
	m.WriteIntVolatile(h, off, 10)

	require.False(t, m.CompareAndSwapInt(h, off, 99, 20))
	require.True(t, m.CompareAndSwapInt(h, off, 10, 20))
	require.EqualValues(t, 20, m.ReadIntVolatile(h, off))
}

func TestIdentityHashIsStablePerRegion(t *testing.T) {
	m := NewManager()
	h1 := m.NewInstance("classA", 8)
	h2 := m.NewInstance("classA", 8)
	require.NotEqual(t, m.Region(h1).IdentityHash(), m.Region(h2).IdentityHash())
	require.Equal(t, m.Region(h1).IdentityHash(), m.Region(h1).IdentityHash())
}
