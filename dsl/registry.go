// Package dsl declares the pattern language's vocabulary and exposes it to
// an embedding interpreter. One declaration yields three call shapes: a
// free function ("note(..)"), a method on a pattern, and a method on a raw
// mini-notation string. The registry only stores handlers; declaring an
// operation never evaluates a pattern.
package dsl

import (
	"sync"

	"github.com/loomlang/loom/mini"
	"github.com/loomlang/loom/pattern"
)

// Func is the free-function call shape.
type Func func(args Args) (pattern.Pattern, error)

// Method is the call shape with a pattern receiver.
type Method func(recv pattern.Pattern, args Args) (pattern.Pattern, error)

// StringMethod is the call shape with a raw mini-notation receiver. The
// receiver is parsed as a note pattern before the method logic runs.
type StringMethod func(recv string, args Args) (pattern.Pattern, error)

var (
	initOnce sync.Once

	functions      = make(map[string]Func)
	patternMethods = make(map[string]Method)
	stringMethods  = make(map[string]StringMethod)
)

// Initialize populates the registry with the full vocabulary. It is
// idempotent and invoked by every Resolve entry point, so callers never
// need to sequence startup themselves. All writes happen here, before any
// read, which is why the tables need no locking.
func Initialize() {
	initOnce.Do(func() {
		declareControls()
		declareCombinators()
	})
}

// RegisterFunc stores a free-function handler. A later registration under
// the same name silently replaces the earlier one; aliases are exactly
// that.
func RegisterFunc(name string, f Func) {
	functions[name] = f
}

func RegisterMethod(name string, m Method) {
	patternMethods[name] = m
}

func RegisterStringMethod(name string, m StringMethod) {
	stringMethods[name] = m
}

// ResolveFunction looks up a free function. A miss is reported as absence,
// never an error: what to tell the user is the interpreter's business.
func ResolveFunction(name string) (Func, bool) {
	Initialize()
	f, ok := functions[name]
	return f, ok
}

func ResolveMethod(name string) (Method, bool) {
	Initialize()
	m, ok := patternMethods[name]
	return m, ok
}

func ResolveStringMethod(name string) (StringMethod, bool) {
	Initialize()
	m, ok := stringMethods[name]
	return m, ok
}

// declare registers one operation under all three call shapes. The free
// function builds a standalone control pattern from the first argument; the
// string method parses its receiver as notes and delegates to the pattern
// method.
func declare(name string, fn Func, method Method) {
	RegisterFunc(name, fn)
	RegisterMethod(name, method)
	RegisterStringMethod(name, func(recv string, args Args) (pattern.Pattern, error) {
		pat, err := mini.Parse(recv, NoteFactory)
		if err != nil {
			return nil, err
		}
		return method(pat, args)
	})
}

// alias registers name as another spelling of an existing operation by
// re-registering the same handlers.
func alias(name, existing string) {
	if f, ok := functions[existing]; ok {
		RegisterFunc(name, f)
	}
	if m, ok := patternMethods[existing]; ok {
		RegisterMethod(name, m)
	}
	if m, ok := stringMethods[existing]; ok {
		RegisterStringMethod(name, m)
	}
}
