/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package memory is the Memory Manager (spec §4.2): it owns the raw byte
// storage backing every object, array, and class's static-field area, and
// hands callers typed read/write access at byte offsets the caller (the
// classloader's layout tables) computes. The manager itself knows nothing
// about field names or descriptors -- only bytes, lengths, and an opaque
// "class" tag each region is labelled with, exactly as spec §3 describes
// ("Object memory is a flat byte region... labelled with its class").
//
// References are Handles (an index into the manager's region table) rather
// than raw Go pointers, per the design note in spec §9: this lets a future
// reimplementation relocate regions (e.g. for compaction) without
// invalidating values already on an operand stack.
package memory

import (
	"sync"
)

// Handle is an opaque reference to a Region. The zero Handle is the
// canonical null reference (spec §4.2's nullValue()).
type Handle uint64

// HeaderSize is the fixed number of bytes reserved at the front of every
// region before the first field/element begins; the manager never writes
// these bytes (the identity hash is kept on the Region itself). This is
// the "baseOffset" both GetStaticOffset and ValueBaseOffset return: in this
// design the header shape is uniform across every class, so there is
// nothing class-specific to compute.
const HeaderSize = 8

// Region is one allocated block: an object's instance-field area, a class's
// static-field area, or an array's element storage.
type Region struct {
	mu      sync.RWMutex
	bytes   []byte
	class   interface{} // opaque class-mirror pointer; interpreted by object/classloader
	length  int         // element count for arrays; 0 for scalar objects/statics
	hash    uint32
	monitor interface{} // opaque *object.Monitor, lazily installed by Monitor
}

// Class returns the opaque class tag the region was allocated with.
func (r *Region) Class() interface{} { return r.class }

// Monitor returns the region's persistent monitor object, calling newMonitor
// to lazily create and install one on first use. The result is opaque to
// memory (newMonitor and its caller both live in package object) but, unlike
// an Object/ArrayObject wrapper, the Region itself is the same instance
// across every FromHandle/ArrayFromHandle call for handle h, so the monitor
// this returns is shared across an entire monitorenter/monitorexit pair.
func (r *Region) Monitor(newMonitor func() interface{}) interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.monitor == nil {
		r.monitor = newMonitor()
	}
	return r.monitor
}

// Length returns the array element count (0 for non-array regions).
func (r *Region) Length() int { return r.length }

// IdentityHash returns the region's identity hash code (analogous to
// Object.hashCode's default implementation).
func (r *Region) IdentityHash() uint32 { return r.hash }

// Manager owns the table of live regions. Each VM instance constructs its
// own Manager (spec §9: no true process-wide globals) via NewManager.
type Manager struct {
	mu    sync.Mutex
	table []*Region // index 0 is reserved and always nil (the null handle)
	next  uint32
}

// NewManager returns a Manager with an empty region table.
func NewManager() *Manager {
	return &Manager{table: []*Region{nil}}
}

// NullValue returns the canonical null reference.
func (m *Manager) NullValue() Handle { return 0 }

func (m *Manager) alloc(class interface{}, size, length int) Handle {
	r := &Region{
		bytes:  make([]byte, HeaderSize+size),
		class:  class,
		length: length,
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	r.hash = m.next
	m.table = append(m.table, r)
	return Handle(len(m.table) - 1)
}

// NewInstance allocates zeroed storage for an object of the given class,
// sized per instanceSize (the byte width of the class's virtual layout).
func (m *Manager) NewInstance(class interface{}, instanceSize int) Handle {
	return m.alloc(class, instanceSize, 0)
}

// NewStaticArea allocates zeroed storage for a class's static-field area,
// sized per staticSize. Returns the same kind of Handle as NewInstance --
// the memory manager does not distinguish a static area from an object; the
// classloader is the one that knows the difference.
func (m *Manager) NewStaticArea(class interface{}, staticSize int) Handle {
	return m.alloc(class, staticSize, 0)
}

// NewArray allocates length*indexScale bytes of element storage plus the
// uniform header, and records length on the region.
func (m *Manager) NewArray(class interface{}, length, indexScale int) Handle {
	if length < 0 {
		length = 0
	}
	return m.alloc(class, length*indexScale, length)
}

// region looks up h, returning nil for the null handle or an out-of-range
// handle. Callers in the engine are expected to null-check before calling;
// an out-of-range handle here indicates a host bug, not a VM exception, so
// it is simply reported as "not found" rather than panicking.
func (m *Manager) region(h Handle) *Region {
	if h == 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if int(h) >= len(m.table) {
		return nil
	}
	return m.table[h]
}

// Region exposes the backing Region for h, for packages (object,
// classloader) that need the class tag or array length. Returns nil for a
// null or invalid handle.
func (m *Manager) Region(h Handle) *Region { return m.region(h) }

// GetStaticOffset returns the base byte offset within a class's static
// storage region at which static fields begin. Per spec §4.2 this is a
// property of the region layout convention, not of any particular class.
func (m *Manager) GetStaticOffset(class interface{}) int { return HeaderSize }

// ValueBaseOffset returns the base byte offset within an object's storage
// region at which instance fields begin.
func (m *Manager) ValueBaseOffset(h Handle) int { return HeaderSize }

// ArrayIndexScale returns the number of bytes occupied by one element of
// the given primitive descriptor tag (J D I F C S B Z), or a reference
// ("L"/"[").
func (m *Manager) ArrayIndexScale(tag string) int {
	switch tag {
	case "J", "D":
		return 8
	case "I", "F":
		return 4
	case "C", "S":
		return 2
	case "B", "Z":
		return 1
	default: // reference element (object/array of object)
		return 8
	}
}
