// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package module

import (
	"testing"

	"github.com/chordkit/chordkit/internal/env"
)

func TestNewRegistrySeedsRootAndMain(t *testing.T) {
	r := NewRegistry(env.New())
	if r.Root().Path != "" {
		t.Errorf("root Path = %q; want empty", r.Root().Path)
	}
	if r.Main().Path != "main" {
		t.Errorf("main Path = %q; want \"main\"", r.Main().Path)
	}
	if r.Main().Env == r.Root().Env {
		t.Error("main module must have its own child environment")
	}
}

func TestLoadOrCreateCachesByCanonicalPath(t *testing.T) {
	r := NewRegistry(env.New())
	m1, created1 := r.LoadOrCreate("foo/bar.chord")
	if !created1 {
		t.Fatal("first LoadOrCreate should report created=true")
	}
	m2, created2 := r.LoadOrCreate("foo/./bar.chord")
	if created2 {
		t.Fatal("second LoadOrCreate of an equivalent path should report created=false")
	}
	if m1 != m2 {
		t.Fatal("LoadOrCreate with an equivalent path should return the cached module")
	}
}

func TestLookupFindsOnlyRegisteredPaths(t *testing.T) {
	r := NewRegistry(env.New())
	if _, ok := r.Lookup("never-loaded.chord"); ok {
		t.Fatal("Lookup found a path that was never created")
	}
	r.LoadOrCreate("present.chord")
	if _, ok := r.Lookup("present.chord"); !ok {
		t.Fatal("Lookup did not find a previously created module")
	}
}

func TestEachVisitsRootMainAndLoaded(t *testing.T) {
	r := NewRegistry(env.New())
	r.LoadOrCreate("a.chord")
	r.LoadOrCreate("b.chord")
	seen := map[string]bool{}
	r.Each(func(m *Module) { seen[m.Path] = true })
	for _, want := range []string{"", "main", "a.chord", "b.chord"} {
		if !seen[want] {
			t.Errorf("Each did not visit module %q", want)
		}
	}
}
