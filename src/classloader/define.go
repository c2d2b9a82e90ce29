/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"github.com/Nowilltolife/SSVM/src/excNames"
	"github.com/Nowilltolife/SSVM/src/memory"
)

// Memory is the Manager backing every class mirror's own oop and static
// area. classloader cannot construct its own Manager (spec §9: one Manager
// per VM instance, owned by the jvm package that boots it), so the jvm
// package installs its instance here at startup -- the same
// install-a-package-var-at-boot indirection RunClinit and
// globals.FuncThrowException use.
var Memory *memory.Manager

// WireNatives attaches Go implementations onto a freshly defined class's
// declared native methods (spec §4.4's gfunction bridge). classloader has
// no native-method table of its own -- gfunction owns that -- so the jvm
// package installs gfunction.Wire here at boot, the same
// install-a-package-var-at-boot indirection Memory/RunClinit use.
var WireNatives func(c *InstanceClass)

// DefineClass links a parsed ClassNode into loader, following spec §4.4's
// defineClass contract: look up the superclass (resolving it if needed),
// build the virtual and static layouts, allocate the class's own mirror
// object and static-storage region, populate the method table, and append
// the new mirror to the loader's classes vector. A name already defined
// under this loader is not rejected here: DefineClass returns the existing
// mirror and ignores node (jvm's VM.DefineClass is the entry point that
// rejects a duplicate name).
//
// protectionDomain is accepted for interface parity with the
// java.lang.ClassLoader.defineClass family; this VM does not implement a
// security manager (spec's Non-goals) and the value is not interpreted.
func DefineClass(loader *ClassLoaderData, name string, node *ClassNode, super *InstanceClass, protectionDomain string) (*InstanceClass, error) {
	if loader == nil {
		loader = BootstrapLoader
	}
	if existing, ok := loader.Lookup(name); ok {
		return existing, nil
	}
	if node != nil && node.Name != "" && node.Name != name {
		return nil, classFormatError("class node name " + node.Name + " does not match requested name " + name)
	}

	c := newInstanceClass(name)
	c.Loader = loader
	c.Node = node

	if super == nil && node != nil && node.Superclass != "" {
		s, err := ResolveClass(loader, node.Superclass)
		if err != nil {
			return nil, err
		}
		super = s
	}
	c.Super = super

	if node != nil {
		for _, ifaceName := range node.Interfaces {
			iface, err := ResolveClass(loader, ifaceName)
			if err != nil {
				return nil, err
			}
			c.Interfaces = append(c.Interfaces, iface)
		}
	}

	var superVirtual *Layout
	if super != nil {
		superVirtual = super.VirtualLayout
	}
	var fields []FieldNode
	var methods []MethodNode
	if node != nil {
		fields = node.Fields
		methods = node.Methods
	}
	c.VirtualLayout = buildVirtualLayout(superVirtual, fields)
	c.StaticLayout = buildStaticLayout(fields)

	for i := range methods {
		m := &methods[i]
		c.Methods[m.Name+m.Descriptor] = &Method{Node: m, Owner: c}
	}

	if Memory != nil {
		c.SetOop(Memory.NewInstance(c, 0))
		c.SetStaticArea(Memory.NewStaticArea(c, c.StaticLayout.Size()))
	}

	if !loader.Insert(c) {
		// lost a defining race against another goroutine; prefer whichever
		// mirror actually won, per spec §4.4's idempotence requirement.
		if existing, ok := loader.Lookup(name); ok {
			return existing, nil
		}
		return nil, classFormatError("concurrent define/insert race left no class installed for " + name)
	}
	if WireNatives != nil {
		WireNatives(c)
	}
	return c, nil
}

// MustHaveMethod is a small convenience used by gfunction registration: look
// up a method by exact (name, descriptor) on c only (no superclass walk),
// raising NoSuchMethodError's internal name if absent -- this is how a
// native-bridge registrar wires a GFunc onto a class's own declared method,
// as opposed to FindMethod's dispatch-time superclass search.
func (c *InstanceClass) MustHaveMethod(name, desc string) (*Method, error) {
	if m, ok := c.Methods[name+desc]; ok {
		return m, nil
	}
	return nil, classFormatError(excNames.NoSuchMethodError + ": " + c.InternalName + "." + name + desc)
}
