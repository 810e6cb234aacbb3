// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package function implements the four function kinds behind one
// handle (spec.md §3 "Function"): Builtin, SpecialForm, Interpreted,
// and Macro.
package function

import (
	"github.com/chordkit/chordkit/internal/arena"
	"github.com/chordkit/chordkit/internal/value"
)

// Host is the minimal surface a Builtin or SpecialForm needs from the
// evaluator, kept as an interface here so this package never imports
// internal/eval (eval imports function, not the reverse).
type Host interface {
	// Evaluate evaluates v in the environment envID.
	Evaluate(envID arena.ID, v value.Value) (value.Value, error)
	// NewChildEnv allocates a child environment of envID.
	NewChildEnv(envID arena.ID) arena.ID
}

// Kind tags which of the four shapes a Function holds.
type Kind uint8

const (
	Builtin Kind = iota
	SpecialForm
	Interpreted
	Macro
)

// BuiltinFunc is a native function: it receives the host, the caller's
// environment, and already-evaluated arguments.
type BuiltinFunc func(h Host, env arena.ID, args []value.Value) (value.Value, error)

// SpecialFormFunc is a native function whose arguments arrive
// unevaluated (raw Values straight from the argument list).
type SpecialFormFunc func(h Host, env arena.ID, rawArgs []value.Value) (value.Value, error)

// OptionalParam is one entry in an argument list's #opt or #keys
// section: a binding name, an optional default-form (evaluated in the
// new env if the caller omitted the argument), and an optional
// "was-supplied?" predicate symbol.
type OptionalParam struct {
	Name      arena.ID // symbol id
	Default   value.Value
	HasDefault bool
	Predicate arena.ID // symbol id; zero means none declared
}

// ArgList is the parsed form of a function's parameter list (spec.md
// §3 "Argument list").
type ArgList struct {
	Positional []arena.ID // symbol ids, in order
	Optional   []OptionalParam
	Rest       arena.ID // symbol id; zero means no #rest section
	HasRest    bool
	Keys       []OptionalParam
}

// Function is one value of any of the four kinds, behind a single
// struct so the rest of the interpreter can hold one handle type.
type Function struct {
	Kind Kind
	Name arena.ID // symbol id the function was defined with, or zero for anonymous

	// Builtin / SpecialForm
	Native          BuiltinFunc
	NativeSpecial   SpecialFormFunc

	// Interpreted / Macro
	Closure arena.ID // lexical environment handle
	Args    ArgList
	Body    []value.Value // code vector
}

// Arena stores functions.
type Arena struct {
	funcs *arena.Arena[*Function]
}

// New returns an empty function arena.
func New() *Arena {
	return &Arena{funcs: arena.New[*Function]()}
}

// AllocBuiltin registers a native builtin and returns its Value handle.
func (a *Arena) AllocBuiltin(name arena.ID, fn BuiltinFunc) value.Value {
	id := a.funcs.Alloc(&Function{Kind: Builtin, Name: name, Native: fn})
	return value.Fn(id)
}

// AllocSpecialForm registers a native special form.
func (a *Arena) AllocSpecialForm(name arena.ID, fn SpecialFormFunc) value.Value {
	id := a.funcs.Alloc(&Function{Kind: SpecialForm, Name: name, NativeSpecial: fn})
	return value.Fn(id)
}

// AllocInterpreted registers a user-defined function closure.
func (a *Arena) AllocInterpreted(name arena.ID, closure arena.ID, args ArgList, body []value.Value) value.Value {
	id := a.funcs.Alloc(&Function{
		Kind: Interpreted, Name: name, Closure: closure, Args: args, Body: body,
	})
	return value.Fn(id)
}

// AllocMacro registers a macro, same shape as Interpreted.
func (a *Arena) AllocMacro(name arena.ID, closure arena.ID, args ArgList, body []value.Value) value.Value {
	id := a.funcs.Alloc(&Function{
		Kind: Macro, Name: name, Closure: closure, Args: args, Body: body,
	})
	return value.Fn(id)
}

// Get returns the Function stored at id.
func (a *Arena) Get(id arena.ID) (*Function, bool) {
	return a.funcs.Get(id)
}

// Free releases the function at id.
func (a *Arena) Free(id arena.ID) {
	a.funcs.Free(id)
}

// Each visits every live function.
func (a *Arena) Each(f func(id arena.ID, fn *Function)) {
	a.funcs.Each(f)
}
