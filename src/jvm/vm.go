/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package jvm is the Instruction Dispatch + Invoke-Dynamic Linker +
// Helper/Operations component (spec §4.3's class-initialization driver,
// §4.4, §4.5, §4.6): the piece that actually runs bytecode, on top of the
// classloader/object/memory/frames/thread packages below it.
package jvm

import (
	"sync"

	"github.com/Nowilltolife/SSVM/src/classloader"
	"github.com/Nowilltolife/SSVM/src/gfunction"
	"github.com/Nowilltolife/SSVM/src/globals"
	"github.com/Nowilltolife/SSVM/src/jit"
	"github.com/Nowilltolife/SSVM/src/memory"
	"github.com/Nowilltolife/SSVM/src/object"
	"github.com/Nowilltolife/SSVM/src/thread"
)

// VM is one virtual machine instance: its memory manager, its global
// configuration, and the main thread used for diagnostics before any
// bytecode-originated thread exists (spec §9: "no true process-wide
// globals" -- every VM constructs its own state via NewVM).
type VM struct {
	Memory  *memory.Manager
	Globals *globals.Globals

	MainThread thread.VMThread

	// Accelerator is spec §9's pluggable-accelerator façade, consulted by
	// invoke before it builds an interpreter frame. Defaults to
	// jit.NullAccelerator so the engine's correctness never depends on one
	// being present.
	Accelerator jit.Accelerator

	dynamicSitesMu sync.Mutex
	dynamicSites   map[dynamicSiteKey]*dynamicSite
}

// dynamicSiteKey identifies one invokedynamic instruction site: the class
// whose bytecode contains it plus the instruction's constant-pool index
// (spec §4.6's "model as a once-cell per instruction site").
type dynamicSiteKey struct {
	owner *classloader.InstanceClass
	index int
}

// dynamicSite is that once-cell: sync.Once guarantees linkCallSite runs
// exactly once per site even under concurrent first-execution from
// multiple threads, matching spec §4.6's "initialized under a lock".
type dynamicSite struct {
	once  sync.Once
	value object.Value
	err   error
}

// dynamicSiteFor returns (creating if necessary) the once-cell for one
// invokedynamic site.
func (vm *VM) dynamicSiteFor(owner *classloader.InstanceClass, index int) *dynamicSite {
	key := dynamicSiteKey{owner: owner, index: index}
	vm.dynamicSitesMu.Lock()
	defer vm.dynamicSitesMu.Unlock()
	s, ok := vm.dynamicSites[key]
	if !ok {
		s = &dynamicSite{}
		vm.dynamicSites[key] = s
	}
	return s
}

// NewVM constructs a VM, installs its Memory manager into the classloader
// and object packages (breaking their import-cycle constraint the same way
// RunClinit/FuncThrowException do), and wires <clinit> execution and
// initialization-error wrapping into the classloader package.
func NewVM(name string) *VM {
	vm := &VM{
		Memory:       memory.NewManager(),
		Globals:      globals.InitGlobals(name),
		MainThread:   thread.CreateThread(),
		Accelerator:  jit.NullAccelerator{},
		dynamicSites: make(map[dynamicSiteKey]*dynamicSite),
	}
	vm.MainThread.Name = "main"

	classloader.Memory = vm.Memory
	object.Memory = vm.Memory

	classloader.RunClinit = func(c *classloader.InstanceClass) error {
		return vm.runClinit(c)
	}
	classloader.InitErrorWrapper = func(cause error) error {
		return wrapInitError(cause)
	}
	vm.Globals.FuncThrowException = func(exceptionName, msg string) {
		vm.ThrowException(exceptionName, msg)
	}

	gfunction.Globals = vm.Globals
	gfunction.NewUtf8 = vm.NewUtf8
	gfunction.ReadUtf8 = vm.ReadUtf8
	gfunction.InvokeStatic = vm.InvokeStatic
	gfunction.CurrentThread = func() interface{} { return &vm.MainThread }
	classloader.WireNatives = gfunction.Wire
	gfunction.LoadAll()

	return vm
}
