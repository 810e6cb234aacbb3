// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package module implements the path->module cache (spec.md §3
// "Module"): the root module's environment is the global scope, the
// main module is its first child, and loaded modules are cached by
// canonicalized path.
package module

import (
	"path"

	"github.com/chordkit/chordkit/internal/arena"
	"github.com/chordkit/chordkit/internal/env"
)

// Module is a canonicalized path plus its environment handle. The root
// module has an empty Path.
type Module struct {
	Path string
	Env  arena.ID
}

// Registry caches loaded modules by canonicalized path.
type Registry struct {
	envs    *env.Arena
	byPath  map[string]*Module
	root    *Module
	main    *Module
}

// NewRegistry creates the root module (global scope) and its first
// child, the main module, and returns the registry.
func NewRegistry(envs *env.Arena) *Registry {
	rootEnv := envs.NewRoot()
	root := &Module{Path: "", Env: rootEnv}

	mainEnv := envs.NewChild(rootEnv)
	main := &Module{Path: "main", Env: mainEnv}

	return &Registry{
		envs:   envs,
		byPath: map[string]*Module{"": root, "main": main},
		root:   root,
		main:   main,
	}
}

// Root returns the root module.
func (r *Registry) Root() *Module { return r.root }

// Main returns the main module.
func (r *Registry) Main() *Module { return r.main }

// Canonicalize normalizes a module path the way the filesystem would:
// cleaned, slash-separated.
func Canonicalize(p string) string {
	if p == "" {
		return ""
	}
	return path.Clean(p)
}

// Lookup returns the cached module at the canonicalized path, if any.
func (r *Registry) Lookup(p string) (*Module, bool) {
	m, ok := r.byPath[Canonicalize(p)]
	return m, ok
}

// LoadOrCreate returns the cached module at p, or creates a fresh one
// (as a child of the main module's environment) and caches it —
// "load-and-evaluate once" (spec.md §3): the caller is responsible for
// actually evaluating the module's source the first time this returns
// created=true.
func (r *Registry) LoadOrCreate(p string) (m *Module, created bool) {
	cp := Canonicalize(p)
	if m, ok := r.byPath[cp]; ok {
		return m, false
	}
	childEnv := r.envs.NewChild(r.main.Env)
	m = &Module{Path: cp, Env: childEnv}
	r.byPath[cp] = m
	return m, true
}

// Each visits every cached module.
func (r *Registry) Each(f func(*Module)) {
	for _, m := range r.byPath {
		f(m)
	}
}
