// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cons implements the cons-cell arena and list<->vector
// conversions (spec.md §3 "Cons cell").
package cons

import (
	"github.com/chordkit/chordkit/internal/arena"
	"github.com/chordkit/chordkit/internal/value"
)

// Cell is an ordered pair (car, cdr), both Values.
type Cell struct {
	Car, Cdr value.Value
}

// Arena stores cons cells.
type Arena struct {
	cells *arena.Arena[Cell]
}

// New returns an empty cons arena.
func New() *Arena {
	return &Arena{cells: arena.New[Cell]()}
}

// Alloc allocates a new cons cell and returns it as a Value.
func (a *Arena) Alloc(car, cdr value.Value) value.Value {
	return value.ConsV(a.cells.Alloc(Cell{Car: car, Cdr: cdr}))
}

// Get returns the cell at id.
func (a *Arena) Get(id arena.ID) (Cell, bool) {
	return a.cells.Get(id)
}

// SetCar overwrites the car of the cell at id.
func (a *Arena) SetCar(id arena.ID, v value.Value) bool {
	c, ok := a.cells.Get(id)
	if !ok {
		return false
	}
	c.Car = v
	return a.cells.Set(id, c)
}

// SetCdr overwrites the cdr of the cell at id.
func (a *Arena) SetCdr(id arena.ID, v value.Value) bool {
	c, ok := a.cells.Get(id)
	if !ok {
		return false
	}
	c.Cdr = v
	return a.cells.Set(id, c)
}

// Free releases the cell at id, used by the garbage collector's sweep.
func (a *Arena) Free(id arena.ID) {
	a.cells.Free(id)
}

// Each visits every live cons cell.
func (a *Arena) Each(f func(id arena.ID, c Cell)) {
	a.cells.Each(f)
}

// IsNil reports whether v is the interned nil symbol, given its id.
func IsNil(v value.Value, nilSymbolID arena.ID) bool {
	return v.Kind() == value.Symbol && v.ID() == nilSymbolID
}

// List builds a proper list from elems, terminated by nilValue (the
// interned nil symbol as a Value).
func (a *Arena) List(nilValue value.Value, elems ...value.Value) value.Value {
	result := nilValue
	for i := len(elems) - 1; i >= 0; i-- {
		result = a.Alloc(elems[i], result)
	}
	return result
}

// ToSlice converts a proper list to a Go slice, stripping the trailing
// nil terminator. Reports false if v is not a proper list (a Cons
// chain ending in the nil symbol).
func (a *Arena) ToSlice(v value.Value, nilSymbolID arena.ID) ([]value.Value, bool) {
	var out []value.Value
	for {
		if v.Kind() == value.Symbol && v.ID() == nilSymbolID {
			return out, true
		}
		if v.Kind() != value.Cons {
			return nil, false
		}
		cell, ok := a.cells.Get(v.ID())
		if !ok {
			return nil, false
		}
		out = append(out, cell.Car)
		v = cell.Cdr
	}
}

// FromSlice is an alias for List kept for symmetry with ToSlice.
func (a *Arena) FromSlice(elems []value.Value, nilValue value.Value) value.Value {
	return a.List(nilValue, elems...)
}

// Len returns the number of elements in a proper list, or -1 if v is
// not a proper list.
func (a *Arena) Len(v value.Value, nilSymbolID arena.ID) int {
	elems, ok := a.ToSlice(v, nilSymbolID)
	if !ok {
		return -1
	}
	return len(elems)
}
