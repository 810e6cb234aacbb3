// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package object implements prototype-chained property maps (spec.md
// §3 "Object"). Each object is a symbol->wrapper map plus an optional
// prototype handle; property wrappers carry the same permission flags
// as environment value wrappers, plus enumerable (the richer variant
// named in spec.md §9's Open Question).
package object

import (
	"errors"

	"github.com/chordkit/chordkit/internal/arena"
	"github.com/chordkit/chordkit/internal/value"
)

// Flags is a bitmask of per-property permissions.
type Flags uint8

const (
	Internable Flags = 1 << iota // readable
	Writable                     // overwritable
	Configurable                 // flags may be changed via Configure
	Enumerable                   // visible to enumeration builtins
)

// Default is the flag set assigned to properties created by ordinary
// assignment: readable, writable, configurable, enumerable.
const Default = Internable | Writable | Configurable | Enumerable

// Wrapper pairs a property Value with its permission flags.
type Wrapper struct {
	Value value.Value
	Flags Flags
}

// Object is a property map plus an optional prototype.
type Object struct {
	props     map[arena.ID]Wrapper // symbol id -> wrapper
	prototype arena.ID             // 0 means no prototype
	hasProto  bool
}

// Arena stores objects.
type Arena struct {
	objects *arena.Arena[*Object]
}

// New returns an empty object arena.
func New() *Arena {
	return &Arena{objects: arena.New[*Object]()}
}

// Alloc allocates a fresh, empty object and returns its Value.
func (a *Arena) Alloc() value.Value {
	id := a.objects.Alloc(&Object{props: make(map[arena.ID]Wrapper)})
	return value.Obj(id)
}

func (a *Arena) get(id arena.ID) (*Object, bool) {
	return a.objects.Get(id)
}

var (
	// ErrNotFound is returned when a property is absent anywhere on
	// the prototype chain.
	ErrNotFound = errors.New("object: property not found")
	// ErrNotReadable is a recoverable execution error (spec.md §3).
	ErrNotReadable = errors.New("object: property is not internable")
	// ErrNotWritable is a recoverable execution error (spec.md §3).
	ErrNotWritable = errors.New("object: property is not writable")
	// ErrNotConfigurable is a recoverable execution error (spec.md §3).
	ErrNotConfigurable = errors.New("object: property is not configurable")
	// ErrPrototypeCycle is returned by SetPrototype when the requested
	// prototype would introduce a cycle (spec.md §3).
	ErrPrototypeCycle = errors.New("object: prototype cycle rejected")
)

// Get walks the prototype chain from id looking for propSym, honoring
// the Internable flag on the wrapper where found.
func (a *Arena) Get(id arena.ID, propSym arena.ID) (value.Value, error) {
	cur := id
	for {
		obj, ok := a.get(cur)
		if !ok {
			return value.Value{}, ErrNotFound
		}
		if w, ok := obj.props[propSym]; ok {
			if w.Flags&Internable == 0 {
				return value.Value{}, ErrNotReadable
			}
			return w.Value, nil
		}
		if !obj.hasProto {
			return value.Value{}, ErrNotFound
		}
		cur = obj.prototype
	}
}

// Set creates or overwrites propSym directly on the receiver id
// (shadowing any prototype property of the same name). If the
// receiver already has propSym with Writable unset, the write fails.
func (a *Arena) Set(id arena.ID, propSym arena.ID, v value.Value) error {
	obj, ok := a.get(id)
	if !ok {
		return ErrNotFound
	}
	if w, ok := obj.props[propSym]; ok {
		if w.Flags&Writable == 0 {
			return ErrNotWritable
		}
		w.Value = v
		obj.props[propSym] = w
		return nil
	}
	obj.props[propSym] = Wrapper{Value: v, Flags: Default}
	return nil
}

// Define creates propSym on the receiver with explicit flags,
// overwriting any existing property of that name (used for object
// literals and defprop-style builtins, which set flags explicitly).
func (a *Arena) Define(id arena.ID, propSym arena.ID, v value.Value, flags Flags) error {
	obj, ok := a.get(id)
	if !ok {
		return ErrNotFound
	}
	obj.props[propSym] = Wrapper{Value: v, Flags: flags}
	return nil
}

// Configure changes the flags of an existing own property. Fails if
// the property is absent on the receiver (not inherited) or not
// Configurable.
func (a *Arena) Configure(id arena.ID, propSym arena.ID, flags Flags) error {
	obj, ok := a.get(id)
	if !ok {
		return ErrNotFound
	}
	w, ok := obj.props[propSym]
	if !ok {
		return ErrNotFound
	}
	if w.Flags&Configurable == 0 {
		return ErrNotConfigurable
	}
	w.Flags = flags
	obj.props[propSym] = w
	return nil
}

// Prototype returns the object's prototype id and whether it has one.
func (a *Arena) Prototype(id arena.ID) (arena.ID, bool) {
	obj, ok := a.get(id)
	if !ok {
		return 0, false
	}
	return obj.prototype, obj.hasProto
}

// SetPrototype sets id's prototype to protoID, rejecting the change if
// it would introduce a cycle (protoID's own chain reaches id).
func (a *Arena) SetPrototype(id arena.ID, protoID arena.ID) error {
	cur := protoID
	for {
		if cur == id {
			return ErrPrototypeCycle
		}
		obj, ok := a.get(cur)
		if !ok || !obj.hasProto {
			break
		}
		cur = obj.prototype
	}
	obj, ok := a.get(id)
	if !ok {
		return ErrNotFound
	}
	obj.prototype = protoID
	obj.hasProto = true
	return nil
}

// OwnProperties returns the symbol ids of every own property, for the
// garbage collector's mark phase and enumeration builtins.
func (a *Arena) OwnProperties(id arena.ID) map[arena.ID]Wrapper {
	obj, ok := a.get(id)
	if !ok {
		return nil
	}
	return obj.props
}

// Free releases the object at id.
func (a *Arena) Free(id arena.ID) {
	a.objects.Free(id)
}

// Each visits every live object.
func (a *Arena) Each(f func(id arena.ID, o *Object)) {
	a.objects.Each(f)
}
