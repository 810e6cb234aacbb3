// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package gc implements the mark-sweep garbage collector (spec.md
// §4.2): mark from roots, sweep each arena.
package gc

import (
	"github.com/chordkit/chordkit/internal/arena"
	"github.com/chordkit/chordkit/internal/cons"
	"github.com/chordkit/chordkit/internal/env"
	"github.com/chordkit/chordkit/internal/eval"
	"github.com/chordkit/chordkit/internal/function"
	"github.com/chordkit/chordkit/internal/intern"
	"github.com/chordkit/chordkit/internal/module"
	"github.com/chordkit/chordkit/internal/object"
	"github.com/chordkit/chordkit/internal/value"
)

// Roots pins interpreter-reserved function ids exempt from collection
// (spec.md §4.2), restored from the original's add_value_to_root_list
// helper (SPEC_FULL.md §12).
type Roots struct {
	pinnedFuncs map[arena.ID]bool
}

// NewRoots returns an empty pin set.
func NewRoots() *Roots { return &Roots{pinnedFuncs: make(map[arena.ID]bool)} }

// Pin marks a function id as exempt from collection.
func (r *Roots) Pin(id arena.ID) { r.pinnedFuncs[id] = true }

// Unpin removes the exemption.
func (r *Roots) Unpin(id arena.ID) { delete(r.pinnedFuncs, id) }

// Pinned reports whether id is exempt.
func (r *Roots) Pinned(id arena.ID) bool { return r.pinnedFuncs[id] }

type marks struct {
	envs    map[arena.ID]bool
	cons    map[arena.ID]bool
	objects map[arena.ID]bool
	funcs   map[arena.ID]bool
	strs    map[arena.ID]bool
	kws     map[arena.ID]bool
	syms    map[arena.ID]bool
}

func newMarks() *marks {
	return &marks{
		envs: map[arena.ID]bool{}, cons: map[arena.ID]bool{},
		objects: map[arena.ID]bool{}, funcs: map[arena.ID]bool{},
		strs: map[arena.ID]bool{}, kws: map[arena.ID]bool{}, syms: map[arena.ID]bool{},
	}
}

// Stats reports how many ids of each category were freed by a
// Collect call, surfaced for the event loop's diagnostics.
type Stats struct {
	FreedEnvs, FreedCons, FreedObjects, FreedFuncs, FreedStrings, FreedKeywords, FreedSymbols int
}

// Collect runs one mark-sweep cycle over it's heap, guarded by roots.
// The caller (the event loop, spec.md §4.2) must not call Collect
// while the evaluator is mid-expression — the cooperative scheduler's
// single-threaded ownership of the interpreter already guarantees
// this, so Collect itself does no locking.
func Collect(it *eval.Interp, roots *Roots) Stats {
	m := newMarks()

	markEnv(it, m, it.Modules.Root().Env)
	it.Modules.Each(func(mod *module.Module) {
		markEnv(it, m, mod.Env)
	})
	for _, f := range it.Stack.Frames() {
		markEnv(it, m, f.Env)
	}
	if recv, ok := it.Receiver(); ok {
		markValue(it, m, recv)
	}
	it.Funcs.Each(func(id arena.ID, _ *function.Function) {
		if roots.Pinned(id) {
			markFunc(it, m, id)
		}
	})
	// Interpreter-reserved symbols are always exempt (spec.md §4.2).
	m.syms[it.NilSym] = true
	m.syms[it.ThisSym] = true
	m.syms[it.SuperSym] = true
	m.syms[it.ActionsSym] = true

	return sweep(it, m)
}

func markValue(it *eval.Interp, m *marks, v value.Value) {
	switch v.Kind() {
	case value.String:
		m.strs[v.ID()] = true
	case value.Keyword:
		m.kws[v.ID()] = true
	case value.Symbol:
		m.syms[v.ID()] = true
	case value.Cons:
		markCons(it, m, v.ID())
	case value.Object:
		markObject(it, m, v.ID())
	case value.Function:
		markFunc(it, m, v.ID())
	}
}

func markCons(it *eval.Interp, m *marks, id arena.ID) {
	if m.cons[id] {
		return
	}
	m.cons[id] = true
	cell, ok := it.Cons.Get(id)
	if !ok {
		return
	}
	markValue(it, m, cell.Car)
	markValue(it, m, cell.Cdr)
}

func markObject(it *eval.Interp, m *marks, id arena.ID) {
	if m.objects[id] {
		return
	}
	m.objects[id] = true
	for propSym, w := range it.Objects.OwnProperties(id) {
		m.syms[propSym] = true
		markValue(it, m, w.Value)
	}
	if proto, ok := it.Objects.Prototype(id); ok {
		markObject(it, m, proto)
	}
}

func markFunc(it *eval.Interp, m *marks, id arena.ID) {
	if m.funcs[id] {
		return
	}
	m.funcs[id] = true
	fn, ok := it.Funcs.Get(id)
	if !ok {
		return
	}
	if fn.Name != 0 {
		m.syms[fn.Name] = true
	}
	if fn.Kind == function.Interpreted || fn.Kind == function.Macro {
		markEnv(it, m, fn.Closure)
		for _, code := range fn.Body {
			markValue(it, m, code)
		}
		markArgList(m, fn.Args)
	}
}

func markArgList(m *marks, args function.ArgList) {
	for _, s := range args.Positional {
		m.syms[s] = true
	}
	for _, o := range args.Optional {
		m.syms[o.Name] = true
		if o.Predicate != 0 {
			m.syms[o.Predicate] = true
		}
	}
	if args.HasRest {
		m.syms[args.Rest] = true
	}
	for _, k := range args.Keys {
		m.syms[k.Name] = true
		if k.Predicate != 0 {
			m.syms[k.Predicate] = true
		}
	}
}

func markEnv(it *eval.Interp, m *marks, id arena.ID) {
	if id == 0 || m.envs[id] {
		return
	}
	m.envs[id] = true
	for sym, w := range it.Envs.OwnVariables(id) {
		m.syms[sym] = true
		markValue(it, m, w.Value)
	}
	for sym, w := range it.Envs.OwnFunctions(id) {
		m.syms[sym] = true
		markValue(it, m, w.Value)
	}
	if parent, ok := it.Envs.Parent(id); ok {
		markEnv(it, m, parent)
	}
}

func sweep(it *eval.Interp, m *marks) Stats {
	var s Stats

	var ids []arena.ID
	it.Envs.Each(func(id arena.ID, _ *env.Env) {
		if !m.envs[id] {
			ids = append(ids, id)
		}
	})
	for _, id := range ids {
		it.Envs.Free(id)
		s.FreedEnvs++
	}

	ids = ids[:0]
	it.Cons.Each(func(id arena.ID, _ cons.Cell) {
		if !m.cons[id] {
			ids = append(ids, id)
		}
	})
	for _, id := range ids {
		it.Cons.Free(id)
		s.FreedCons++
	}

	ids = ids[:0]
	it.Objects.Each(func(id arena.ID, _ *object.Object) {
		if !m.objects[id] {
			ids = append(ids, id)
		}
	})
	for _, id := range ids {
		it.Objects.Free(id)
		s.FreedObjects++
	}

	ids = ids[:0]
	it.Funcs.Each(func(id arena.ID, _ *function.Function) {
		if !m.funcs[id] {
			ids = append(ids, id)
		}
	})
	for _, id := range ids {
		it.Funcs.Free(id)
		s.FreedFuncs++
	}

	ids = ids[:0]
	it.Strings.Each(func(id arena.ID, _ string) {
		if !m.strs[id] {
			ids = append(ids, id)
		}
	})
	for _, id := range ids {
		it.Strings.Drop(id)
		s.FreedStrings++
	}

	ids = ids[:0]
	it.Keywords.Each(func(id arena.ID, _ string) {
		if !m.kws[id] {
			ids = append(ids, id)
		}
	})
	for _, id := range ids {
		it.Keywords.Drop(id)
		s.FreedKeywords++
	}

	ids = ids[:0]
	it.Symbols.Each(func(id arena.ID, _ intern.Symbol) {
		if !m.syms[id] {
			ids = append(ids, id)
		}
	})
	for _, id := range ids {
		it.Symbols.Drop(id)
		s.FreedSymbols++
	}

	return s
}
