/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package classloader is the Class Mirrors & Link Resolver component
// (spec §4.3): InstanceClass/ArrayClass/PrimitiveClass, their layout
// tables, the class-initialization state machine, and virtual/static/
// interface method resolution.
//
// Class-file parsing is explicitly out of scope (spec §1): this package
// never reads a .class file itself. It instead defines the shape of "a
// parsed class node" (ClassNode and its constant pool, below) that an
// external parser hands to defineClass -- exactly the teacher's own
// ParsedClass/ClData split (classloader.go), trimmed to what the engine
// actually needs to execute bytecode and resolve symbols, carried over
// renamed rather than copied verbatim.
package classloader

// Constant-pool entry type tags, mirroring the teacher's CPEntry.Type enum
// (classloader.go / CPutils.go) and JVMS §4.4's tag set.
const (
	UTF8 = iota + 1
	IntConst
	FloatConst
	LongConst
	DoubleConst
	ClassRef
	StringConst
	FieldRef
	MethodRef
	Interface
	NameAndType
	MethodHandle
	MethodType
	Dynamic
	InvokeDynamic
	Module
	Package
)

// CpEntry is one constant-pool slot: a type tag plus an index ("slot") into
// the type-specific table below (IntConsts, Utf8Refs, etc.) -- the same
// two-level indirection the teacher's CPEntry/cpIndex pair uses.
type CpEntry struct {
	Type uint16
	Slot uint16
}

type FieldRefEntry struct {
	ClassIndex  uint16
	NameAndType uint16
}

type MethodRefEntry struct {
	ClassIndex  uint16
	NameAndType uint16
}

type InterfaceRefEntry struct {
	ClassIndex  uint16
	NameAndType uint16
}

type NameAndTypeEntry struct {
	NameIndex uint16
	DescIndex uint16
}

type MethodHandleEntry struct {
	RefKind  uint16 // reference_kind, 1..9 per JVMS table 5.4.3.5-A
	RefIndex uint16
}

type DynamicEntry struct {
	BootstrapIndex uint16
	NameAndType    uint16
}

type InvokeDynamicEntry struct {
	BootstrapIndex uint16
	NameAndType    uint16
}

// CPool is the per-class constant pool, laid out the way the teacher's
// postable ClData.CP is: one CpIndex slice of (type, slot) pairs, and one
// slice per concrete entry kind.
type CPool struct {
	CpIndex        []CpEntry
	ClassRefs      []uint32 // -> Utf8Refs index (class internal name)
	Doubles        []float64
	Dynamics       []DynamicEntry
	FieldRefs      []FieldRefEntry
	Floats         []float32
	IntConsts      []int32
	InterfaceRefs  []InterfaceRefEntry
	InvokeDynamics []InvokeDynamicEntry
	LongConsts     []int64
	MethodHandles  []MethodHandleEntry
	MethodRefs     []MethodRefEntry
	MethodTypes    []uint16 // -> Utf8Refs index (descriptor string)
	NameAndTypes   []NameAndTypeEntry
	Utf8Refs       []string
}

// BootstrapMethod is one entry of the BootstrapMethods class attribute.
type BootstrapMethod struct {
	MethodRef uint16 // CP index of a MethodHandle
	Args      []uint16
}

// Attr is a raw (name, bytes) attribute, exactly the teacher's Attr shape --
// we never need to interpret most attributes, so we keep them opaque.
type Attr struct {
	AttrName    uint16
	AttrSize    int
	AttrContent []byte
}

// ExceptionEntry is one row of a method's exception table (spec §4.5's
// exception-table walk).
type ExceptionEntry struct {
	StartPc   int
	EndPc     int
	HandlerPc int
	CatchType uint16 // CP index of a ClassRef, 0 means "catches everything" (finally)
}

// ParamAttrib is one MethodParameters entry.
type ParamAttrib struct {
	Name        string
	AccessFlags int
}

// CodeAttrib is a method's Code attribute: the part the engine actually
// executes.
type CodeAttrib struct {
	MaxStack   int
	MaxLocals  int
	Code       []byte
	Exceptions []ExceptionEntry
	Attributes []Attr
}

// MethodNode is one parsed method, as an external parser would hand it to
// defineClass: access flags, name/descriptor (already resolved to strings,
// unlike the teacher's CP-index-based MethodNode, since the class node is
// the boundary past which we no longer care where the parser got its
// strings from), its Code attribute, declared checked exceptions, and
// MethodParameters.
type MethodNode struct {
	AccessFlags int
	Name        string
	Descriptor  string
	CodeAttr    CodeAttrib
	Exceptions  []string // declared checked-exception class names
	Parameters  []ParamAttrib
	Deprecated  bool
}

func (m *MethodNode) IsStatic() bool     { return m.AccessFlags&AccStatic != 0 }
func (m *MethodNode) IsPrivate() bool    { return m.AccessFlags&AccPrivate != 0 }
func (m *MethodNode) IsAbstract() bool   { return m.AccessFlags&AccAbstract != 0 }
func (m *MethodNode) IsNative() bool     { return m.AccessFlags&AccNative != 0 }
func (m *MethodNode) IsPublic() bool     { return m.AccessFlags&AccPublic != 0 }

// FieldNode is one parsed field.
type FieldNode struct {
	AccessFlags int
	Name        string
	Descriptor  string
	ConstValue  interface{} // the ConstantValue attribute's value, if any
	Attributes  []Attr
}

func (f *FieldNode) IsStatic() bool  { return f.AccessFlags&AccStatic != 0 }
func (f *FieldNode) IsFinal() bool   { return f.AccessFlags&AccFinal != 0 }
func (f *FieldNode) IsVolatile() bool { return f.AccessFlags&AccVolatile != 0 }

// Access-flag bits (JVMS §4.1/4.5/4.6, only the ones this VM inspects).
const (
	AccPublic    = 0x0001
	AccPrivate   = 0x0002
	AccProtected = 0x0004
	AccStatic    = 0x0008
	AccFinal     = 0x0010
	AccSuper     = 0x0020
	AccVolatile  = 0x0040
	AccInterface = 0x0200
	AccAbstract  = 0x0400
	AccSynthetic = 0x1000
	AccAnnotation = 0x2000
	AccEnum      = 0x4000
	AccModule    = 0x8000
	AccNative    = 0x0100
)

// ClassNode is the parsed-class boundary object: everything defineClass
// needs from an external parser to link a class into the VM.
type ClassNode struct {
	Name            string // internal form, e.g. "pkg/Sub"
	Superclass      string // "" for java/lang/Object
	Interfaces      []string
	Fields          []FieldNode
	Methods         []MethodNode
	Attributes      []Attr
	Bootstraps      []BootstrapMethod
	SourceFile      string
	AccessFlags     int
	CP              CPool
}

func (c *ClassNode) IsInterface() bool { return c.AccessFlags&AccInterface != 0 }
func (c *ClassNode) IsAbstract() bool  { return c.AccessFlags&AccAbstract != 0 }
