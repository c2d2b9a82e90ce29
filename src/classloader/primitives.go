/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import "sync"

// The eight primitive-type mirrors (spec §3: "one per primitive tag").
var primitiveClasses = map[string]*PrimitiveClass{
	"J": {Tag: "J"},
	"D": {Tag: "D"},
	"I": {Tag: "I"},
	"F": {Tag: "F"},
	"C": {Tag: "C"},
	"S": {Tag: "S"},
	"B": {Tag: "B"},
	"Z": {Tag: "Z"},
}

// GetPrimitiveClass returns the singleton mirror for a primitive tag (J D I
// F C S B Z), or nil if tag is not one of the eight.
func GetPrimitiveClass(tag string) *PrimitiveClass {
	return primitiveClasses[tag]
}

var (
	arrayMu    sync.Mutex
	arrayCache = make(map[string]*ArrayClass)
)

// NewArrayClass resolves an array descriptor ("[I", "[[Ljava/lang/String;",
// ...) to its ArrayClass mirror, per spec §4.1's valueFromLdc contract:
// "resolving arrays by stripping leading '[' brackets and the trailing ';'
// to yield the element descriptor, recursively calling newArrayClass per
// dimension; primitive descriptors resolve to the primitive mirror; object
// descriptors resolve via the loader." loader is used only for the
// non-array, non-primitive leaf element.
func NewArrayClass(loader *ClassLoaderData, desc string) (*ArrayClass, error) {
	arrayMu.Lock()
	if c, ok := arrayCache[desc]; ok {
		arrayMu.Unlock()
		return c, nil
	}
	arrayMu.Unlock()

	if len(desc) == 0 || desc[0] != '[' {
		return nil, classFormatError("not an array descriptor: " + desc)
	}
	rest := desc[1:]
	if len(rest) == 0 {
		return nil, classFormatError("malformed array descriptor: " + desc)
	}

	dims := 1
	for i := 0; i < len(rest) && rest[i] == '['; i++ {
		dims++
	}

	var element JavaClass
	if rest[0] == '[' {
		// multi-dimensional: resolve the one-less-dimension array mirror and
		// use it as this array's element, per spec §4.1's "recursively
		// calling newArrayClass per dimension" construction rule.
		inner, err := NewArrayClass(loader, rest)
		if err != nil {
			return nil, err
		}
		element = inner
	} else if len(rest) == 1 {
		pc := GetPrimitiveClass(rest)
		if pc == nil {
			return nil, classFormatError("unknown primitive tag in array descriptor: " + desc)
		}
		element = pc
	} else if len(rest) >= 2 && rest[0] == 'L' && rest[len(rest)-1] == ';' {
		className := rest[1 : len(rest)-1]
		ic, err := ResolveClass(loader, className)
		if err != nil {
			return nil, err
		}
		element = ic
	} else {
		return nil, classFormatError("malformed array element descriptor: " + desc)
	}

	ac := &ArrayClass{Element: element, Dims: dims}

	arrayMu.Lock()
	// another goroutine may have raced us; prefer the first one installed.
	if existing, ok := arrayCache[desc]; ok {
		arrayMu.Unlock()
		return existing, nil
	}
	arrayCache[desc] = ac
	arrayMu.Unlock()
	return ac, nil
}
