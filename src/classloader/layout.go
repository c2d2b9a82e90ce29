/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

// FieldKey identifies a field by (name, descriptor) -- two fields with the
// same name but different types are distinct slots, per JVMS.
type FieldKey struct {
	Name string
	Desc string
}

// LayoutEntry records where one field lives: its byte offset from the
// region's value-base offset, and its descriptor (needed by the memory
// manager's typed accessors and by default-value initialization).
type LayoutEntry struct {
	Offset int
	Desc   string
}

// Layout is an ordered (name,desc) -> offset mapping (spec §3: "Layout
// table"). Two exist per InstanceClass: the virtual layout (inherited +
// declared instance fields) and the static layout (declared statics only).
type Layout struct {
	order   []FieldKey
	entries map[FieldKey]LayoutEntry
	size    int // total bytes occupied by this layout
}

func newLayout() *Layout {
	return &Layout{entries: make(map[FieldKey]LayoutEntry)}
}

// Offset looks up the byte offset of (name, desc), and whether it exists.
func (l *Layout) Offset(name, desc string) (int, bool) {
	e, ok := l.entries[FieldKey{name, desc}]
	return e.Offset, ok
}

// Entry returns the full LayoutEntry for (name, desc).
func (l *Layout) Entry(name, desc string) (LayoutEntry, bool) {
	e, ok := l.entries[FieldKey{name, desc}]
	return e, ok
}

// Size returns the total number of bytes this layout occupies.
func (l *Layout) Size() int { return l.size }

// Fields returns the (name,desc) keys in declaration order (superclass
// fields first, for a virtual layout).
func (l *Layout) Fields() []FieldKey {
	out := make([]FieldKey, len(l.order))
	copy(out, l.order)
	return out
}

func (l *Layout) add(name, desc string) int {
	key := FieldKey{name, desc}
	if e, ok := l.entries[key]; ok {
		return e.Offset // (name,desc) must be unique per spec §3's invariant
	}
	offset := l.size
	width := fieldWidth(desc)
	l.entries[key] = LayoutEntry{Offset: offset, Desc: desc}
	l.order = append(l.order, key)
	l.size += width
	return offset
}

func fieldWidth(desc string) int {
	switch {
	case len(desc) == 0:
		return 8
	case desc[0] == 'J' || desc[0] == 'D':
		return 8
	case desc[0] == 'I' || desc[0] == 'F':
		return 4
	case desc[0] == 'C' || desc[0] == 'S':
		return 2
	case desc[0] == 'B' || desc[0] == 'Z':
		return 1
	default: // reference (L...; or [...)
		return 8
	}
}

// buildVirtualLayout constructs the instance-field layout for a class given
// its (already-built) superclass layout and its own declared instance
// fields, per spec §3: "virtual layout (inherited + declared instance
// fields)". Inherited fields keep the exact offsets they had in the
// superclass; declared fields are appended after them.
func buildVirtualLayout(super *Layout, declared []FieldNode) *Layout {
	l := newLayout()
	if super != nil {
		for _, k := range super.order {
			e := super.entries[k]
			l.entries[k] = e
			l.order = append(l.order, k)
		}
		l.size = super.size
	}
	for _, f := range declared {
		if f.IsStatic() {
			continue
		}
		l.add(f.Name, f.Descriptor)
	}
	return l
}

// buildStaticLayout constructs the static-field layout: declared statics
// only, no inheritance (spec §3: "static layout (declared static fields)").
func buildStaticLayout(declared []FieldNode) *Layout {
	l := newLayout()
	for _, f := range declared {
		if f.IsStatic() {
			l.add(f.Name, f.Descriptor)
		}
	}
	return l
}
