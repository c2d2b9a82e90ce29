/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package globals holds the single VM-wide configuration struct (spec §6:
// "configuration is a plain struct") and the eagerly-resolved bootstrap
// symbol table (spec §4.3's Symbol table component, §9's design note that
// VMSymbols must be a field of the VM instance rather than a process-wide
// global -- we keep one package-level instance for convenience the way the
// teacher does with its own globals.GetGlobalRef(), but nothing prevents an
// embedder from constructing additional Globals values for isolated VMs).
package globals

import "sync"

// Symbols are the eagerly-resolved handles to well-known bootstrap classes
// (spec §4.3's Symbol table), resolved once at VM boot and treated as
// immutable thereafter.
type Symbols struct {
	Object              string
	Class               string
	String              string
	Throwable            string
	MethodHandle        string
	MethodType          string
	CallSite            string
	MethodHandleNatives string
}

// DefaultSymbols returns the standard bootstrap class names. An embedder
// that rehosts against a different bootstrap class library can override
// individual fields in place.
func DefaultSymbols() Symbols {
	return Symbols{
		Object:              "java/lang/Object",
		Class:               "java/lang/Class",
		String:              "java/lang/String",
		Throwable:           "java/lang/Throwable",
		MethodHandle:        "java/lang/invoke/MethodHandle",
		MethodType:          "java/lang/invoke/MethodType",
		CallSite:            "java/lang/invoke/CallSite",
		MethodHandleNatives: "java/lang/invoke/MethodHandleNatives",
	}
}

// Globals is the plain configuration struct handed to the engine at boot.
// Exit codes and logging policy are left to the embedder, per spec §6.
type Globals struct {
	JacobinName string // the embedder's display name for this VM instance
	ClassPath   []string
	JavaHome    string
	StartingJar string
	StrictJDK   bool

	TraceClass         bool
	TraceCloadi        bool
	JvmFrameStackShown bool

	// GoStackShown/ErrorGoStack/PanicCauseShown back the one-time fatal-
	// diagnostic dump the jvm package's showGoStackTrace/showPanicCause
	// perform on an unrecoverable host panic: each kind of diagnostic is
	// printed at most once per process, mirroring the teacher's own
	// once-only frame-stack/Go-stack dump guards.
	GoStackShown    bool
	ErrorGoStack    string
	PanicCauseShown bool

	Symbols Symbols

	// FuncThrowException lets packages deep in the dependency graph (e.g.
	// classloader) raise a VM exception without importing the jvm package
	// and creating an import cycle -- the same indirection the teacher uses
	// via globals.GetGlobalRef().FuncThrowException.
	FuncThrowException func(exceptionName string, msg string)
}

var (
	mu  sync.Mutex
	ref *Globals
)

// InitGlobals (re)initializes the singleton Globals instance for name and
// returns it. Safe to call repeatedly, e.g. once per test.
func InitGlobals(name string) *Globals {
	mu.Lock()
	defer mu.Unlock()
	g := &Globals{
		JacobinName: name,
		Symbols:     DefaultSymbols(),
		FuncThrowException: func(string, string) {
			// no-op until the jvm package installs a real handler
		},
	}
	ref = g
	return g
}

// GetGlobalRef returns the current singleton, initializing it with a
// default name on first use.
func GetGlobalRef() *Globals {
	mu.Lock()
	if ref == nil {
		mu.Unlock()
		return InitGlobals("ssvm")
	}
	defer mu.Unlock()
	return ref
}
