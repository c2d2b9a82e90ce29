/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"sync"

	"github.com/Nowilltolife/SSVM/src/memory"
)

// InitState is the per-class initialization state machine of spec §3:
// Loaded -> Initializing(initializer-thread) -> Initialized | Errored.
type InitState int32

const (
	Loaded InitState = iota
	Initializing
	Initialized
	Errored
)

// JavaClass is the common interface over InstanceClass, ArrayClass, and
// PrimitiveClass (spec §3's three class-mirror kinds).
type JavaClass interface {
	Name() string
	GetOop() memory.Handle // the mirror object (instance of java.lang.Class)
	SetOop(memory.Handle)
}

// Method is a resolved, loaded method: a MethodNode plus the class that
// declared it (needed once resolution walks a superclass chain, so callers
// can tell where a method was actually found).
type Method struct {
	Node    *MethodNode
	Owner   *InstanceClass
	GoFunc  GFunc // non-nil for a golang-implemented ("native-bridge") method
}

// GFunc is the signature every gfunction-package native method has,
// regardless of its Java signature (spec §4.4's gfunction bridge). Declared
// here, not in package gfunction, so classloader's Method can hold one
// without importing gfunction (gfunction imports classloader, not the other
// way around).
type GFunc func(params []interface{}) interface{}

func (m *Method) IsStatic() bool { return m.Node != nil && m.Node.IsStatic() }

// InstanceClass is the mirror for an ordinary (non-array, non-primitive)
// class (spec §3).
type InstanceClass struct {
	InternalName string
	Loader       *ClassLoaderData
	Super        *InstanceClass // nil for java/lang/Object
	Interfaces   []*InstanceClass
	Node         *ClassNode

	Methods map[string]*Method // key: name+descriptor, matching the teacher's MethodTable key

	VirtualLayout *Layout
	StaticLayout  *Layout

	oop        memory.Handle // the class's own mirror object
	staticArea memory.Handle // the class's static-field storage region

	mu          sync.Mutex
	cond        *sync.Cond
	state       InitState
	initializer interface{} // the *thread.VMThread performing initialization; re-entrant check
	initErr     error
}

func newInstanceClass(name string) *InstanceClass {
	c := &InstanceClass{InternalName: name, Methods: make(map[string]*Method)}
	c.cond = sync.NewCond(&c.mu)
	return c
}

func (c *InstanceClass) Name() string          { return c.InternalName }
func (c *InstanceClass) GetOop() memory.Handle { return c.oop }
func (c *InstanceClass) SetOop(h memory.Handle) { c.oop = h }

func (c *InstanceClass) State() InitState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// StaticArea returns the handle to this class's static-field storage.
func (c *InstanceClass) StaticArea() memory.Handle { return c.staticArea }

func (c *InstanceClass) SetStaticArea(h memory.Handle) { c.staticArea = h }

// IsSubclassOf reports whether c is other or a (transitive) subclass of
// other.
func (c *InstanceClass) IsSubclassOf(other *InstanceClass) bool {
	for k := c; k != nil; k = k.Super {
		if k == other || k.InternalName == other.InternalName {
			return true
		}
	}
	return false
}

// ImplementsInterface reports whether c (or a superclass) directly or
// transitively implements iface.
func (c *InstanceClass) ImplementsInterface(iface *InstanceClass) bool {
	for k := c; k != nil; k = k.Super {
		for _, i := range k.Interfaces {
			if interfaceExtends(i, iface) {
				return true
			}
		}
	}
	return false
}

func interfaceExtends(i, target *InstanceClass) bool {
	if i == target || i.InternalName == target.InternalName {
		return true
	}
	for _, super := range i.Interfaces {
		if interfaceExtends(super, target) {
			return true
		}
	}
	return false
}

// IsAssignableFrom reports whether a value of class other can be assigned
// to a variable of class c (spec §4.5's checkcast/instanceof primitive).
func (c *InstanceClass) IsAssignableFrom(other *InstanceClass) bool {
	if other == nil {
		return false
	}
	if c.Node != nil && c.Node.IsInterface() {
		return other.ImplementsInterface(c) || other.IsSubclassOf(c)
	}
	return other.IsSubclassOf(c)
}

// ArrayClass is the mirror for an array type (spec §3).
type ArrayClass struct {
	Element JavaClass
	Dims    int
	oop     memory.Handle
}

func (a *ArrayClass) Name() string {
	// a multi-dimensional array's Element is itself an ArrayClass one
	// dimension down (spec §4.1); its own Name() already carries the
	// remaining "[" prefixes and leaf tag, so just add this dimension's "[".
	if inner, ok := a.Element.(*ArrayClass); ok {
		return "[" + inner.Name()
	}
	name := ""
	for i := 0; i < a.Dims; i++ {
		name += "["
	}
	switch e := a.Element.(type) {
	case *PrimitiveClass:
		name += e.Tag
	default:
		name += "L" + a.Element.Name() + ";"
	}
	return name
}
func (a *ArrayClass) GetOop() memory.Handle  { return a.oop }
func (a *ArrayClass) SetOop(h memory.Handle) { a.oop = h }

// PrimitiveClass is the mirror for one of the eight primitive tags (spec
// §3): used as an array-component anchor and as an ldc type result.
type PrimitiveClass struct {
	Tag string // one of J D I F C S B Z
	oop memory.Handle
}

func (p *PrimitiveClass) Name() string          { return p.Tag }
func (p *PrimitiveClass) GetOop() memory.Handle { return p.oop }
func (p *PrimitiveClass) SetOop(h memory.Handle) { p.oop = h }
