// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package value implements the tagged-union Value type shared by every
// other interpreter package: a small fixed set of primitive variants
// plus opaque arena handles for every compound (heap-allocated)
// category.
package value

import (
	"fmt"

	"github.com/chordkit/chordkit/internal/arena"
)

// Kind tags the variant a Value currently holds.
type Kind uint8

const (
	Integer Kind = iota
	Float
	Boolean
	String
	Keyword
	Symbol
	Cons
	Object
	Function
)

func (k Kind) String() string {
	switch k {
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Boolean:
		return "boolean"
	case String:
		return "string"
	case Keyword:
		return "keyword"
	case Symbol:
		return "symbol"
	case Cons:
		return "cons"
	case Object:
		return "object"
	case Function:
		return "function"
	default:
		return "unknown"
	}
}

// Value is a tagged union over primitives and arena-id handles into
// the string, keyword, symbol, cons, object, and function arenas. The
// zero Value is the integer 0 — callers that need "no value" use a
// *Value or a separate ok bool, matching the rest of the interpreter's
// (Value, error) / (Value, bool) return shapes.
type Value struct {
	kind Kind
	i    int64
	f    float64
	b    bool
	id   arena.ID
}

// Int constructs an Integer value.
func Int(i int64) Value { return Value{kind: Integer, i: i} }

// Flt constructs a Float value.
func Flt(f float64) Value { return Value{kind: Float, f: f} }

// Bool constructs a Boolean value.
func Bool(b bool) Value { return Value{kind: Boolean, b: b} }

// Str constructs a String value from an id in the string arena.
func Str(id arena.ID) Value { return Value{kind: String, id: id} }

// Kw constructs a Keyword value from an id in the keyword arena.
func Kw(id arena.ID) Value { return Value{kind: Keyword, id: id} }

// Sym constructs a Symbol value from an id in the symbol arena.
func Sym(id arena.ID) Value { return Value{kind: Symbol, id: id} }

// ConsV constructs a Cons value from an id in the cons arena.
func ConsV(id arena.ID) Value { return Value{kind: Cons, id: id} }

// Obj constructs an Object value from an id in the object arena.
func Obj(id arena.ID) Value { return Value{kind: Object, id: id} }

// Fn constructs a Function value from an id in the function arena.
func Fn(id arena.ID) Value { return Value{kind: Function, id: id} }

// Kind reports the variant held.
func (v Value) Kind() Kind { return v.kind }

// AsInt returns the Integer payload. Callers must check Kind first.
func (v Value) AsInt() int64 { return v.i }

// AsFloat returns the Float payload.
func (v Value) AsFloat() float64 { return v.f }

// AsBool returns the Boolean payload.
func (v Value) AsBool() bool { return v.b }

// ID returns the arena handle for any compound variant
// (String/Keyword/Symbol/Cons/Object/Function).
func (v Value) ID() arena.ID { return v.id }

// IsCompound reports whether v's variant carries an arena handle.
func (v Value) IsCompound() bool {
	switch v.kind {
	case String, Keyword, Symbol, Cons, Object, Function:
		return true
	default:
		return false
	}
}

// Equal is shallow structural/handle equality: primitives compare by
// value, compound variants compare by arena id (same category, same
// id). It does not walk cons cells or objects — see
// internal/stdlib's deepEqual, backing the `equal?` builtin, for that.
func (a Value) Equal(b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Integer:
		return a.i == b.i
	case Float:
		return a.f == b.f
	case Boolean:
		return a.b == b.b
	default:
		return a.id == b.id
	}
}

// String renders v for diagnostics. Compound variants print their
// kind and id only — rendering cons/object contents requires heap
// access, which this package does not have.
func (v Value) String() string {
	switch v.kind {
	case Integer:
		return fmt.Sprintf("%d", v.i)
	case Float:
		return fmt.Sprintf("%g", v.f)
	case Boolean:
		if v.b {
			return "#t"
		}
		return "#f"
	default:
		return fmt.Sprintf("#<%s %d>", v.kind, v.id)
	}
}
