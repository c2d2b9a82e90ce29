/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package memory

import "encoding/binary"

// The typed read/write family below is the core of spec §4.2's public
// contract: writeX(object, offset, value) / readX(object, offset) for
// X in {byte, bool, short, char, int, long, float, double, reference}.
//
// Out-of-range offsets are undefined behavior per spec -- "the engine (not
// the manager) is responsible for using layout offsets correctly" -- so
// these methods are written for speed, not defensiveness: an out-of-range
// offset panics via a slice-bounds-out-of-range (only a null or unknown
// handle is a silent no-op, with reads returning the zero value); a host
// bug here never surfaces as a VMException.

func (r *Region) bytesAt(offset, width int) []byte {
	return r.bytes[offset : offset+width]
}

func (m *Manager) WriteByte(h Handle, offset int, v int8) {
	r := m.region(h)
	if r == nil {
		return
	}
	r.mu.Lock()
	r.bytes[offset] = byte(v)
	r.mu.Unlock()
}

func (m *Manager) ReadByte(h Handle, offset int) int8 {
	r := m.region(h)
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int8(r.bytes[offset])
}

func (m *Manager) WriteBool(h Handle, offset int, v bool) {
	var b int8
	if v {
		b = 1
	}
	m.WriteByte(h, offset, b)
}

func (m *Manager) ReadBool(h Handle, offset int) bool {
	return m.ReadByte(h, offset) != 0
}

func (m *Manager) WriteShort(h Handle, offset int, v int16) {
	r := m.region(h)
	if r == nil {
		return
	}
	r.mu.Lock()
	binary.BigEndian.PutUint16(r.bytesAt(offset, 2), uint16(v))
	r.mu.Unlock()
}

func (m *Manager) ReadShort(h Handle, offset int) int16 {
	r := m.region(h)
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int16(binary.BigEndian.Uint16(r.bytesAt(offset, 2)))
}

func (m *Manager) WriteChar(h Handle, offset int, v uint16) {
	r := m.region(h)
	if r == nil {
		return
	}
	r.mu.Lock()
	binary.BigEndian.PutUint16(r.bytesAt(offset, 2), v)
	r.mu.Unlock()
}

func (m *Manager) ReadChar(h Handle, offset int) uint16 {
	r := m.region(h)
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return binary.BigEndian.Uint16(r.bytesAt(offset, 2))
}

func (m *Manager) WriteInt(h Handle, offset int, v int32) {
	r := m.region(h)
	if r == nil {
		return
	}
	r.mu.Lock()
	binary.BigEndian.PutUint32(r.bytesAt(offset, 4), uint32(v))
	r.mu.Unlock()
}

func (m *Manager) ReadInt(h Handle, offset int) int32 {
	r := m.region(h)
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int32(binary.BigEndian.Uint32(r.bytesAt(offset, 4)))
}

func (m *Manager) WriteLong(h Handle, offset int, v int64) {
	r := m.region(h)
	if r == nil {
		return
	}
	r.mu.Lock()
	binary.BigEndian.PutUint64(r.bytesAt(offset, 8), uint64(v))
	r.mu.Unlock()
}

func (m *Manager) ReadLong(h Handle, offset int) int64 {
	r := m.region(h)
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(binary.BigEndian.Uint64(r.bytesAt(offset, 8)))
}

func (m *Manager) WriteFloat(h Handle, offset int, v float32) {
	m.WriteInt(h, offset, int32(f32bits(v)))
}

func (m *Manager) ReadFloat(h Handle, offset int) float32 {
	return f32frombits(uint32(m.ReadInt(h, offset)))
}

func (m *Manager) WriteDouble(h Handle, offset int, v float64) {
	m.WriteLong(h, offset, int64(f64bits(v)))
}

func (m *Manager) ReadDouble(h Handle, offset int) float64 {
	return f64frombits(uint64(m.ReadLong(h, offset)))
}

func (m *Manager) WriteReference(h Handle, offset int, v Handle) {
	m.WriteLong(h, offset, int64(v))
}

func (m *Manager) ReadReference(h Handle, offset int) Handle {
	return Handle(m.ReadLong(h, offset))
}
