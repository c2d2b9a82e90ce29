/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"fmt"

	"github.com/Nowilltolife/SSVM/src/excNames"
)

// ClassSource supplies the raw bytes of a class given its internal name --
// the file-system/jar/jmod bridge spec §1 keeps external. An embedder
// installs this hook; without one, ResolveClass can only find classes
// already defined via DefineClass.
var ClassSource func(loader *ClassLoaderData, name string) ([]byte, error)

// ParseClass turns raw class-file bytes into a ClassNode -- the class-file
// parser spec §1 keeps external. Without one installed, DefineClass cannot
// accept raw bytes and ResolveClass cannot lazily load anything.
var ParseClass func(raw []byte) (*ClassNode, error)

// ResolveClass finds name in loader's delegation chain, lazily defining it
// via ClassSource/ParseClass if it is not yet loaded.
func ResolveClass(loader *ClassLoaderData, name string) (*InstanceClass, error) {
	if loader == nil {
		loader = BootstrapLoader
	}
	if c, ok := FindLoaded(loader, name); ok {
		return c, nil
	}
	if ClassSource == nil || ParseClass == nil {
		return nil, fmt.Errorf("%s: %s", excNames.NoClassDefFoundError, name)
	}
	raw, err := ClassSource(loader, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %s (%w)", excNames.ClassNotFoundException, name, err)
	}
	node, err := ParseClass(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %s (%w)", excNames.ClassNotFoundException, name, err)
	}
	return DefineClass(loader, name, node, nil, "")
}

// findMethodUp walks the superclass chain of start looking for an exact
// (name, desc) match among each class's declared methods -- spec §4.3's
// virtual-resolution algorithm, steps 2-4.
func findMethodUp(start *InstanceClass, name, desc string) (*Method, *InstanceClass) {
	key := name + desc
	for c := start; c != nil; c = c.Super {
		if m, ok := c.Methods[key]; ok {
			return m, c
		}
	}
	return nil, nil
}

// FindMethod is the virtual-dispatch search of spec §4.3: start at the
// receiver's concrete class (java/lang/Object for array receivers), probe
// declared methods for an exact match, walk up the superclass chain, raise
// NoSuchMethodError("owner.name+desc") against the *original* receiver
// class if the chain is exhausted.
func FindMethod(receiver *InstanceClass, name, desc string) (*Method, error) {
	m, _ := findMethodUp(receiver, name, desc)
	if m == nil {
		return nil, fmt.Errorf("%s: %s.%s%s", excNames.NoSuchMethodError, receiver.InternalName, name, desc)
	}
	return m, nil
}

// ReceiverClassForDispatch returns the class virtual/interface dispatch
// should search from: java/lang/Object as defined under BootstrapLoader
// for array (or primitive) receivers (spec §4.3), or class itself
// otherwise.
func ReceiverClassForDispatch(class JavaClass) (*InstanceClass, error) {
	if ic, ok := class.(*InstanceClass); ok {
		return ic, nil
	}
	// array or primitive receiver: every array type's method table is
	// java/lang/Object's.
	obj, ok := FindLoaded(BootstrapLoader, "java/lang/Object")
	if !ok {
		return nil, fmt.Errorf("%s: java/lang/Object", excNames.NoClassDefFoundError)
	}
	return obj, nil
}

// ResolveStaticMethod is findMethodUp with the additional requirement that
// the resolved method carry the static access bit (spec §4.3).
func ResolveStaticMethod(class *InstanceClass, name, desc string) (*Method, error) {
	m, owner := findMethodUp(class, name, desc)
	if m == nil {
		return nil, fmt.Errorf("%s: %s.%s%s", excNames.NoSuchMethodError, class.InternalName, name, desc)
	}
	if !m.IsStatic() {
		return nil, fmt.Errorf("%s: %s.%s%s is not static", excNames.IllegalStateException, owner.InternalName, name, desc)
	}
	return m, nil
}

// ResolveVirtualMethod is findMethodUp with the complementary requirement:
// the resolved method must NOT be static.
func ResolveVirtualMethod(class *InstanceClass, name, desc string) (*Method, error) {
	m, owner := findMethodUp(class, name, desc)
	if m == nil {
		return nil, fmt.Errorf("%s: %s.%s%s", excNames.NoSuchMethodError, class.InternalName, name, desc)
	}
	if m.IsStatic() {
		return nil, fmt.Errorf("%s: %s.%s%s is static", excNames.IllegalStateException, owner.InternalName, name, desc)
	}
	return m, nil
}

// ResolveInterfaceMethod implements full JVMS interface resolution rather
// than the teacher's "defer to invokeVirtual" (spec §9's flagged open
// question; DESIGN.md records this as a deliberate divergence): search the
// receiver's class hierarchy first (a class implementing the interface may
// itself declare the method, including via an inherited default method one
// of its superclasses picked up), then breadth-first over the receiver's
// declared interfaces and their super-interfaces.
func ResolveInterfaceMethod(receiver *InstanceClass, name, desc string) (*Method, error) {
	if m, _ := findMethodUp(receiver, name, desc); m != nil {
		return m, nil
	}

	visited := make(map[string]bool)
	queue := make([]*InstanceClass, 0, 8)
	for c := receiver; c != nil; c = c.Super {
		queue = append(queue, c.Interfaces...)
	}
	for len(queue) > 0 {
		iface := queue[0]
		queue = queue[1:]
		if iface == nil || visited[iface.InternalName] {
			continue
		}
		visited[iface.InternalName] = true
		if m, ok := iface.Methods[name+desc]; ok && !m.Node.IsAbstract() {
			return m, nil
		}
		queue = append(queue, iface.Interfaces...)
	}
	return nil, fmt.Errorf("%s: %s.%s%s", excNames.NoSuchMethodError, receiver.InternalName, name, desc)
}
