// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package env implements lexically scoped environments: a bind-table
// with a parent link, mapping symbols to value wrappers in two
// independent namespaces (variable and function, Lisp-2 style), per
// spec.md §3 "Environment".
package env

import (
	"errors"

	"github.com/chordkit/chordkit/internal/arena"
	"github.com/chordkit/chordkit/internal/value"
)

// Flags is a bitmask of per-binding permissions.
type Flags uint8

const (
	Internable Flags = 1 << iota // read
	Writable                     // overwrite
	Configurable                 // change flags
)

// Constant is the flag set for a binding that may only ever be read
// (spec.md §3: "A wrapper with only internable set is a constant
// binding").
const Constant = Internable

// Default is the flag set assigned to ordinary define-variable /
// define-function bindings.
const Default = Internable | Writable | Configurable

// Wrapper pairs a bound Value with its permission flags.
type Wrapper struct {
	Value value.Value
	Flags Flags
}

type table map[arena.ID]Wrapper

// Env is one lexical scope: two independent bind-tables (variable and
// function namespaces) plus a parent link.
type Env struct {
	vars   table
	funcs  table
	parent arena.ID
	isRoot bool
}

// Arena stores environments, each addressed by an arena.ID so closures
// and modules can hold a stable handle into the environment graph
// (spec.md §9 "cyclic value graphs").
type Arena struct {
	envs *arena.Arena[*Env]
}

// New returns an empty environment arena.
func New() *Arena {
	return &Arena{envs: arena.New[*Env]()}
}

// NewRoot allocates the root environment (no parent).
func (a *Arena) NewRoot() arena.ID {
	return a.envs.Alloc(&Env{vars: table{}, funcs: table{}, isRoot: true})
}

// NewChild allocates an environment parented on parent.
func (a *Arena) NewChild(parent arena.ID) arena.ID {
	return a.envs.Alloc(&Env{vars: table{}, funcs: table{}, parent: parent})
}

func (a *Arena) get(id arena.ID) (*Env, bool) {
	return a.envs.Get(id)
}

var (
	// ErrUndefined is returned when a lookup finds no binding on any
	// enclosing environment.
	ErrUndefined = errors.New("env: undefined binding")
	// ErrNotReadable is a recoverable execution error (spec.md §3).
	ErrNotReadable = errors.New("env: binding is not internable")
	// ErrNotWritable is a recoverable execution error (spec.md §3).
	ErrNotWritable = errors.New("env: binding is not writable")
	// ErrNotConfigurable is a recoverable execution error (spec.md §3).
	ErrNotConfigurable = errors.New("env: binding is not configurable")
	// ErrAlreadyDefined reports a name already bound in a local table.
	// DefineVariable and DefineFunction do not return it: they overwrite
	// an existing local binding.
	ErrAlreadyDefined = errors.New("env: already defined in local scope")
)

func lookup(a *Arena, id arena.ID, t func(*Env) table, sym arena.ID) (Wrapper, arena.ID, bool) {
	for {
		e, ok := a.get(id)
		if !ok {
			return Wrapper{}, 0, false
		}
		if w, ok := t(e)[sym]; ok {
			return w, id, true
		}
		if e.isRoot {
			return Wrapper{}, 0, false
		}
		id = e.parent
	}
}

// LookupVariable walks parent links for sym in the variable namespace.
func (a *Arena) LookupVariable(id arena.ID, sym arena.ID) (value.Value, error) {
	w, _, ok := lookup(a, id, func(e *Env) table { return e.vars }, sym)
	if !ok {
		return value.Value{}, ErrUndefined
	}
	if w.Flags&Internable == 0 {
		return value.Value{}, ErrNotReadable
	}
	return w.Value, nil
}

// LookupFunction walks parent links for sym in the function namespace.
func (a *Arena) LookupFunction(id arena.ID, sym arena.ID) (value.Value, error) {
	w, _, ok := lookup(a, id, func(e *Env) table { return e.funcs }, sym)
	if !ok {
		return value.Value{}, ErrUndefined
	}
	if w.Flags&Internable == 0 {
		return value.Value{}, ErrNotReadable
	}
	return w.Value, nil
}

// DefineVariable creates a binding in id's own local table. Overwrites
// a prior local binding of the same name (re-running a toplevel
// (defv) form is idiomatic and expected).
func (a *Arena) DefineVariable(id arena.ID, sym arena.ID, v value.Value, flags Flags) error {
	e, ok := a.get(id)
	if !ok {
		return ErrUndefined
	}
	e.vars[sym] = Wrapper{Value: v, Flags: flags}
	return nil
}

// DefineFunction creates a binding in id's own local function table.
func (a *Arena) DefineFunction(id arena.ID, sym arena.ID, v value.Value, flags Flags) error {
	e, ok := a.get(id)
	if !ok {
		return ErrUndefined
	}
	e.funcs[sym] = Wrapper{Value: v, Flags: flags}
	return nil
}

// SetVariable mutates the nearest enclosing variable binding named
// sym. Fails if no such binding exists or it is not writable.
func (a *Arena) SetVariable(id arena.ID, sym arena.ID, v value.Value) error {
	w, ownerID, ok := lookup(a, id, func(e *Env) table { return e.vars }, sym)
	if !ok {
		return ErrUndefined
	}
	if w.Flags&Writable == 0 {
		return ErrNotWritable
	}
	owner, _ := a.get(ownerID)
	w.Value = v
	owner.vars[sym] = w
	return nil
}

// SetFunction mutates the nearest enclosing function binding named sym.
func (a *Arena) SetFunction(id arena.ID, sym arena.ID, v value.Value) error {
	w, ownerID, ok := lookup(a, id, func(e *Env) table { return e.funcs }, sym)
	if !ok {
		return ErrUndefined
	}
	if w.Flags&Writable == 0 {
		return ErrNotWritable
	}
	owner, _ := a.get(ownerID)
	w.Value = v
	owner.funcs[sym] = w
	return nil
}

// Parent returns id's parent and whether id is not the root.
func (a *Arena) Parent(id arena.ID) (arena.ID, bool) {
	e, ok := a.get(id)
	if !ok || e.isRoot {
		return 0, false
	}
	return e.parent, true
}

// OwnVariables and OwnFunctions expose the local tables for the
// garbage collector's mark phase.
func (a *Arena) OwnVariables(id arena.ID) map[arena.ID]Wrapper {
	e, ok := a.get(id)
	if !ok {
		return nil
	}
	return e.vars
}

func (a *Arena) OwnFunctions(id arena.ID) map[arena.ID]Wrapper {
	e, ok := a.get(id)
	if !ok {
		return nil
	}
	return e.funcs
}

// Free releases the environment at id.
func (a *Arena) Free(id arena.ID) {
	a.envs.Free(id)
}

// Each visits every live environment.
func (a *Arena) Each(f func(id arena.ID, e *Env)) {
	a.envs.Each(f)
}
