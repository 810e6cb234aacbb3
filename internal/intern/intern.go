// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package intern implements deduplicated storage for strings, keywords,
// and symbols, plus gensym for fresh symbol identity.
package intern

import "github.com/chordkit/chordkit/internal/arena"

// Reserved symbol names (spec.md §3): constants that may never be
// assigned, and arglist section markers.
const (
	NameNil   = "nil"
	NameThis  = "this"
	NameSuper = "super"
	MarkerOpt  = "#opt"
	MarkerRest = "#rest"
	MarkerKeys = "#keys"
)

// Reserved reports whether name is a reserved constant (nil/this/super)
// or an arglist section marker (#opt/#rest/#keys).
func Reserved(name string) bool {
	switch name {
	case NameNil, NameThis, NameSuper, MarkerOpt, MarkerRest, MarkerKeys:
		return true
	default:
		return false
	}
}

// Marker reports whether name is an arglist section marker.
func Marker(name string) bool {
	switch name {
	case MarkerOpt, MarkerRest, MarkerKeys:
		return true
	default:
		return false
	}
}

// Assignable reports whether name may be used as a variable or
// function binding target: not reserved and not a marker (spec.md §3,
// "Assignability = not-reserved-and-not-marker").
func Assignable(name string) bool {
	return !Reserved(name)
}

// Table deduplicates plain strings (used for both String and Keyword
// values — keywords and strings occupy distinct arena categories but
// share the same dedup strategy).
type Table struct {
	arena *arena.Arena[string]
	index map[string]arena.ID
}

// NewTable returns an empty interning table.
func NewTable() *Table {
	return &Table{arena: arena.New[string](), index: make(map[string]arena.ID)}
}

// Intern returns the id for s, allocating a new arena slot on first
// use and reusing it on every subsequent call with the same s.
func (t *Table) Intern(s string) arena.ID {
	if id, ok := t.index[s]; ok {
		return id
	}
	id := t.arena.Alloc(s)
	t.index[s] = id
	return id
}

// Lookup returns the string stored at id.
func (t *Table) Lookup(id arena.ID) (string, bool) {
	return t.arena.Get(id)
}

// Each visits every live interned string, for the garbage collector's
// sweep phase.
func (t *Table) Each(f func(id arena.ID, s string)) {
	t.arena.Each(f)
}

// Drop removes s from the table and frees its arena slot, used by the
// garbage collector's sweep phase (spec.md §4.2: "Interned strings,
// keywords, and symbols must be dropped from the interner's index when
// their id is freed").
func (t *Table) Drop(id arena.ID) {
	s, ok := t.arena.Get(id)
	if !ok {
		return
	}
	delete(t.index, s)
	t.arena.Free(id)
}

// Symbol is a name plus a gensym counter. Two symbols are equal iff
// both name and counter match (spec.md §3).
type Symbol struct {
	Name    string
	Counter uint64
}

// Symbols interns symbols at counter 0 and mints fresh gensym symbols
// at increasing counters.
type Symbols struct {
	arena   *arena.Arena[Symbol]
	index   map[string]arena.ID // name -> id of the counter-0 symbol
	nextGen map[string]uint64
}

// NewSymbols returns an empty symbol table.
func NewSymbols() *Symbols {
	return &Symbols{
		arena:   arena.New[Symbol](),
		index:   make(map[string]arena.ID),
		nextGen: make(map[string]uint64),
	}
}

// Intern returns the unique symbol with the given name and counter 0,
// allocating it on first use.
func (s *Symbols) Intern(name string) arena.ID {
	if id, ok := s.index[name]; ok {
		return id
	}
	id := s.arena.Alloc(Symbol{Name: name})
	s.index[name] = id
	return id
}

// Gensym returns a fresh symbol with the given base name and a counter
// that has never been issued for that name before, and never equals
// any interned (counter-0) symbol.
func (s *Symbols) Gensym(name string) arena.ID {
	s.nextGen[name]++
	return s.arena.Alloc(Symbol{Name: name, Counter: s.nextGen[name]})
}

// Lookup returns the Symbol stored at id.
func (s *Symbols) Lookup(id arena.ID) (Symbol, bool) {
	return s.arena.Get(id)
}

// Equal reports whether the symbols at a and b have matching name and
// counter.
func (s *Symbols) Equal(a, b arena.ID) bool {
	if a == b {
		return true
	}
	sa, ok1 := s.arena.Get(a)
	sb, ok2 := s.arena.Get(b)
	return ok1 && ok2 && sa.Name == sb.Name && sa.Counter == sb.Counter
}

// Drop removes the symbol at id from the interner's index (if it is an
// interned, counter-0 symbol) and frees its arena slot.
func (s *Symbols) Drop(id arena.ID) {
	sym, ok := s.arena.Get(id)
	if !ok {
		return
	}
	if sym.Counter == 0 {
		if cur, ok := s.index[sym.Name]; ok && cur == id {
			delete(s.index, sym.Name)
		}
	}
	s.arena.Free(id)
}

// Each visits every live symbol, for the garbage collector's sweep
// phase.
func (s *Symbols) Each(f func(id arena.ID, sym Symbol)) {
	s.arena.Each(f)
}
