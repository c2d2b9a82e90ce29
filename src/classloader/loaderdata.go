/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import "sync"

// ClassLoaderData is the per-class-loader structure holding that loader's
// defined classes and the synchronization primitives for its defining
// transactions (spec's GLOSSARY: "Loader data"). It plays the role the
// teacher's Classloader struct + the global ClassesLock play together, but
// scoped per loader rather than one shared lock, per spec §5: "every
// mutation of a loader's name->class map and classes vector is performed
// under a per-loader lock."
type ClassLoaderData struct {
	Name   string
	Parent *ClassLoaderData

	mu      sync.RWMutex
	classes map[string]*InstanceClass
	vector  []*InstanceClass // classes in definition order, mirroring java.lang.ClassLoader.classes
}

// NewClassLoaderData constructs an empty, named loader whose defining
// transactions are independent of every other loader's.
func NewClassLoaderData(name string, parent *ClassLoaderData) *ClassLoaderData {
	return &ClassLoaderData{Name: name, Parent: parent, classes: make(map[string]*InstanceClass)}
}

// Lookup performs a lock-free-friendly read: classes are immutable once
// inserted, so a shared RLock while copying the pointer out is sufficient
// (spec §5: "Lookups may be lock-free reads provided the map supports safe
// concurrent reads; otherwise readers take a shared lock").
func (d *ClassLoaderData) Lookup(name string) (*InstanceClass, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, ok := d.classes[name]
	return c, ok
}

// Insert adds a newly-defined class under this loader. Returns false
// without inserting if name is already present (defineClass's "already
// loaded" check, spec §4.4).
func (d *ClassLoaderData) Insert(c *InstanceClass) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.classes[c.InternalName]; exists {
		return false
	}
	d.classes[c.InternalName] = c
	d.vector = append(d.vector, c)
	return true
}

// Classes returns a snapshot of the classes defined by this loader, in
// definition order (the loader's "classes" vector, per spec §4.4's
// defineClass contract: "for non-null loaders, appends the mirror to the
// loader's classes vector via Vector.add").
func (d *ClassLoaderData) Classes() []*InstanceClass {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*InstanceClass, len(d.vector))
	copy(out, d.vector)
	return out
}

func (d *ClassLoaderData) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.vector)
}

// The three well-known loaders, mirroring the teacher's AppCL/BootstrapCL/
// ExtensionCL globals (classloader.go) -- kept as package-level instances
// rather than process-wide mutable classloader state, since unlike Classes
// they are identity markers, not data: BootstrapLoader.Insert(...) below
// still goes through the per-loader lock like any other loader.
var (
	BootstrapLoader = NewClassLoaderData("bootstrap", nil)
	ExtensionLoader = NewClassLoaderData("extension", BootstrapLoader)
	AppLoader       = NewClassLoaderData("app", ExtensionLoader)
)

// FindLoaded searches loader and its ancestry for name, mirroring the
// parent-delegation a real ClassLoader performs before defining a class
// itself.
func FindLoaded(loader *ClassLoaderData, name string) (*InstanceClass, bool) {
	for d := loader; d != nil; d = d.Parent {
		if c, ok := d.Lookup(name); ok {
			return c, true
		}
	}
	return nil, false
}
