/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefineClassBuildsVirtualAndStaticLayouts(t *testing.T) {
	loader := NewClassLoaderData("define-test-loader", nil)
	superNode := &ClassNode{
		Name:   "test/Base",
		Fields: []FieldNode{{Name: "id", Descriptor: "I"}},
	}
	super, err := DefineClass(loader, "test/Base", superNode, nil, "")
	require.NoError(t, err)

	node := &ClassNode{
		Name:       "test/Sub",
		Superclass: "test/Base",
		Fields: []FieldNode{
			{Name: "name", Descriptor: "Ljava/lang/String;"},
			{Name: "COUNT", Descriptor: "I", AccessFlags: AccStatic},
		},
	}
	class, err := DefineClass(loader, "test/Sub", node, nil, "")
	require.NoError(t, err)
	assert.Same(t, super, class.Super)

	idOff, ok := class.VirtualLayout.Offset("id", "I")
	require.True(t, ok)
	assert.Equal(t, 0, idOff)

	nameOff, ok := class.VirtualLayout.Offset("name", "Ljava/lang/String;")
	require.True(t, ok)
	assert.Equal(t, 4, nameOff) // id (int, width 4) comes first

	_, ok = class.StaticLayout.Offset("id", "I")
	assert.False(t, ok) // inherited field is not part of the static layout

	countOff, ok := class.StaticLayout.Offset("COUNT", "I")
	require.True(t, ok)
	assert.Equal(t, 0, countOff)
}

func TestDefineClassIsIdempotentForAnAlreadyLoadedName(t *testing.T) {
	loader := NewClassLoaderData("idempotent-test-loader", nil)
	node := &ClassNode{Name: "test/Once"}
	first, err := DefineClass(loader, "test/Once", node, nil, "")
	require.NoError(t, err)

	again, err := DefineClass(loader, "test/Once", &ClassNode{Name: "test/Once", Fields: []FieldNode{{Name: "x", Descriptor: "I"}}}, nil, "")
	require.NoError(t, err)
	assert.Same(t, first, again)
	// the second ClassNode's extra field must never have been processed.
	_, ok := again.VirtualLayout.Offset("x", "I")
	assert.False(t, ok)
}

func TestDefineClassRejectsMismatchedNodeName(t *testing.T) {
	loader := NewClassLoaderData("mismatch-test-loader", nil)
	node := &ClassNode{Name: "test/Actual"}
	_, err := DefineClass(loader, "test/Requested", node, nil, "")
	require.Error(t, err)
}

func TestResolveClassFindsAlreadyLoadedClassUpTheParentChain(t *testing.T) {
	parent := NewClassLoaderData("resolve-parent", nil)
	child := NewClassLoaderData("resolve-child", parent)
	node := &ClassNode{Name: "test/InParent"}
	_, err := DefineClass(parent, "test/InParent", node, nil, "")
	require.NoError(t, err)

	found, err := ResolveClass(child, "test/InParent")
	require.NoError(t, err)
	assert.Equal(t, "test/InParent", found.Name())
}

func TestResolveClassWithoutSourceHooksReturnsError(t *testing.T) {
	loader := NewClassLoaderData("resolve-missing-loader", nil)
	_, err := ResolveClass(loader, "test/NeverDefined")
	require.Error(t, err)
}

func TestFindMethodWalksSuperclassChain(t *testing.T) {
	loader := NewClassLoaderData("findmethod-loader", nil)
	baseNode := &ClassNode{
		Name: "test/Animal",
		Methods: []MethodNode{
			{Name: "speak", Descriptor: "()V"},
		},
	}
	base, err := DefineClass(loader, "test/Animal", baseNode, nil, "")
	require.NoError(t, err)

	subNode := &ClassNode{Name: "test/Dog", Superclass: "test/Animal"}
	sub, err := DefineClass(loader, "test/Dog", subNode, base, "")
	require.NoError(t, err)

	m, err := FindMethod(sub, "speak", "()V")
	require.NoError(t, err)
	assert.Same(t, base, m.Owner)
}

func TestFindMethodMissingReturnsNoSuchMethodError(t *testing.T) {
	loader := NewClassLoaderData("findmethod-missing-loader", nil)
	node := &ClassNode{Name: "test/Empty"}
	class, err := DefineClass(loader, "test/Empty", node, nil, "")
	require.NoError(t, err)

	_, err = FindMethod(class, "nope", "()V")
	require.Error(t, err)
}

func TestResolveStaticMethodRejectsNonStaticMethod(t *testing.T) {
	loader := NewClassLoaderData("resolve-static-loader", nil)
	node := &ClassNode{
		Name: "test/HasInstanceMethod",
		Methods: []MethodNode{
			{Name: "run", Descriptor: "()V"},
		},
	}
	class, err := DefineClass(loader, "test/HasInstanceMethod", node, nil, "")
	require.NoError(t, err)

	_, err = ResolveStaticMethod(class, "run", "()V")
	require.Error(t, err)
}

func TestResolveVirtualMethodRejectsStaticMethod(t *testing.T) {
	loader := NewClassLoaderData("resolve-virtual-loader", nil)
	node := &ClassNode{
		Name: "test/HasStaticMethod",
		Methods: []MethodNode{
			{Name: "run", Descriptor: "()V", AccessFlags: AccStatic},
		},
	}
	class, err := DefineClass(loader, "test/HasStaticMethod", node, nil, "")
	require.NoError(t, err)

	_, err = ResolveVirtualMethod(class, "run", "()V")
	require.Error(t, err)
}

func TestResolveInterfaceMethodFindsDeclaredDefaultMethod(t *testing.T) {
	loader := NewClassLoaderData("resolve-iface-loader", nil)
	ifaceNode := &ClassNode{
		Name:        "test/Greeter",
		AccessFlags: AccInterface,
		Methods: []MethodNode{
			{Name: "greet", Descriptor: "()V"}, // default method: not abstract
		},
	}
	iface, err := DefineClass(loader, "test/Greeter", ifaceNode, nil, "")
	require.NoError(t, err)

	implNode := &ClassNode{Name: "test/Impl", Interfaces: []string{"test/Greeter"}}
	impl := newInstanceClass("test/Impl")
	impl.Loader = loader
	impl.Node = implNode
	impl.Interfaces = append(impl.Interfaces, iface)
	impl.VirtualLayout = buildVirtualLayout(nil, nil)
	impl.StaticLayout = buildStaticLayout(nil)

	m, err := ResolveInterfaceMethod(impl, "greet", "()V")
	require.NoError(t, err)
	assert.Same(t, iface, m.Owner)
}

func TestResolveInterfaceMethodRejectsAbstractOnlyMethod(t *testing.T) {
	loader := NewClassLoaderData("resolve-iface-abstract-loader", nil)
	ifaceNode := &ClassNode{
		Name:        "test/AbstractGreeter",
		AccessFlags: AccInterface,
		Methods: []MethodNode{
			{Name: "greet", Descriptor: "()V", AccessFlags: AccAbstract},
		},
	}
	iface, err := DefineClass(loader, "test/AbstractGreeter", ifaceNode, nil, "")
	require.NoError(t, err)

	impl := newInstanceClass("test/AbstractImpl")
	impl.Loader = loader
	impl.Interfaces = append(impl.Interfaces, iface)
	impl.VirtualLayout = buildVirtualLayout(nil, nil)
	impl.StaticLayout = buildStaticLayout(nil)

	_, err = ResolveInterfaceMethod(impl, "greet", "()V")
	require.Error(t, err)
}

func TestInstanceClassIsSubclassOfAndImplementsInterface(t *testing.T) {
	loader := NewClassLoaderData("subclass-loader", nil)
	ifaceNode := &ClassNode{Name: "test/Flyable", AccessFlags: AccInterface}
	iface, err := DefineClass(loader, "test/Flyable", ifaceNode, nil, "")
	require.NoError(t, err)

	baseNode := &ClassNode{Name: "test/Bird", Interfaces: []string{"test/Flyable"}}
	base, err := DefineClass(loader, "test/Bird", baseNode, nil, "")
	require.NoError(t, err)

	subNode := &ClassNode{Name: "test/Eagle", Superclass: "test/Bird"}
	sub, err := DefineClass(loader, "test/Eagle", subNode, base, "")
	require.NoError(t, err)

	assert.True(t, sub.IsSubclassOf(base))
	assert.True(t, sub.ImplementsInterface(iface))
	assert.False(t, base.IsSubclassOf(sub))
}

func TestInstanceClassIsAssignableFrom(t *testing.T) {
	loader := NewClassLoaderData("assignable-loader", nil)
	baseNode := &ClassNode{Name: "test/Shape"}
	base, err := DefineClass(loader, "test/Shape", baseNode, nil, "")
	require.NoError(t, err)

	subNode := &ClassNode{Name: "test/Circle", Superclass: "test/Shape"}
	sub, err := DefineClass(loader, "test/Circle", subNode, base, "")
	require.NoError(t, err)

	assert.True(t, base.IsAssignableFrom(sub))
	assert.False(t, sub.IsAssignableFrom(base))
}

func TestNewArrayClassResolvesPrimitiveElementAndCaches(t *testing.T) {
	loader := NewClassLoaderData("array-class-loader", nil)
	c1, err := NewArrayClass(loader, "[I")
	require.NoError(t, err)
	assert.Equal(t, 1, c1.Dims)
	assert.Equal(t, "[I", c1.Name())

	c2, err := NewArrayClass(loader, "[I")
	require.NoError(t, err)
	assert.Same(t, c1, c2)
}

func TestNewArrayClassNestsMultiDimensionalElementRecursively(t *testing.T) {
	loader := NewClassLoaderData("array-class-nested-loader", nil)
	outer, err := NewArrayClass(loader, "[[I")
	require.NoError(t, err)
	assert.Equal(t, 2, outer.Dims)
	assert.Equal(t, "[[I", outer.Name())

	inner, ok := outer.Element.(*ArrayClass)
	require.True(t, ok, "outer array's Element must be the one-dimension-down ArrayClass mirror, not the bare leaf class")
	assert.Equal(t, 1, inner.Dims)
	assert.Equal(t, "[I", inner.Name())

	leaf, ok := inner.Element.(*PrimitiveClass)
	require.True(t, ok)
	assert.Equal(t, "I", leaf.Tag)

	// the same descriptor always resolves to the same cached mirror, and its
	// one-dimension-down element matches whatever "[I" resolves to on its own.
	again, err := NewArrayClass(loader, "[[I")
	require.NoError(t, err)
	assert.Same(t, outer, again)

	solo, err := NewArrayClass(loader, "[I")
	require.NoError(t, err)
	assert.Same(t, solo, inner)
}

func TestNewArrayClassRejectsMalformedDescriptor(t *testing.T) {
	loader := NewClassLoaderData("array-class-bad-loader", nil)
	_, err := NewArrayClass(loader, "I")
	require.Error(t, err)
}

func TestMustHaveMethodFindsOwnDeclaredMethodOnly(t *testing.T) {
	loader := NewClassLoaderData("must-have-loader", nil)
	node := &ClassNode{
		Name:    "test/Declares",
		Methods: []MethodNode{{Name: "own", Descriptor: "()V"}},
	}
	class, err := DefineClass(loader, "test/Declares", node, nil, "")
	require.NoError(t, err)

	m, err := class.MustHaveMethod("own", "()V")
	require.NoError(t, err)
	assert.Equal(t, "own", m.Node.Name)

	_, err = class.MustHaveMethod("missing", "()V")
	require.Error(t, err)
}
