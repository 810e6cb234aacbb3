// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package object

import (
	"errors"
	"testing"

	"github.com/chordkit/chordkit/internal/arena"
	"github.com/chordkit/chordkit/internal/value"
)

func TestSetThenGetRoundTrips(t *testing.T) {
	a := New()
	obj := a.Alloc()
	name := arena.ID(1)

	if err := a.Set(obj.ID(), name, value.Int(5)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := a.Get(obj.ID(), name)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.AsInt() != 5 {
		t.Errorf("Get = %v; want 5", got)
	}
}

func TestGetMissingPropertyReturnsNotFound(t *testing.T) {
	a := New()
	obj := a.Alloc()
	if _, err := a.Get(obj.ID(), arena.ID(99)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on missing property = %v; want ErrNotFound", err)
	}
}

func TestNotWritableRejectsOverwrite(t *testing.T) {
	a := New()
	obj := a.Alloc()
	name := arena.ID(1)
	if err := a.Define(obj.ID(), name, value.Int(1), Internable); err != nil {
		t.Fatalf("Define: %v", err)
	}
	if err := a.Set(obj.ID(), name, value.Int(2)); !errors.Is(err, ErrNotWritable) {
		t.Fatalf("Set over non-writable = %v; want ErrNotWritable", err)
	}
}

func TestNotInternableRejectsRead(t *testing.T) {
	a := New()
	obj := a.Alloc()
	name := arena.ID(1)
	if err := a.Define(obj.ID(), name, value.Int(1), Writable); err != nil {
		t.Fatalf("Define: %v", err)
	}
	if _, err := a.Get(obj.ID(), name); !errors.Is(err, ErrNotReadable) {
		t.Fatalf("Get on non-internable = %v; want ErrNotReadable", err)
	}
}

func TestPrototypeChainIsWalkedByGet(t *testing.T) {
	a := New()
	base := a.Alloc()
	child := a.Alloc()
	name := arena.ID(1)

	if err := a.Set(base.ID(), name, value.Int(42)); err != nil {
		t.Fatalf("Set on base: %v", err)
	}
	if err := a.SetPrototype(child.ID(), base.ID()); err != nil {
		t.Fatalf("SetPrototype: %v", err)
	}
	got, err := a.Get(child.ID(), name)
	if err != nil {
		t.Fatalf("Get via prototype: %v", err)
	}
	if got.AsInt() != 42 {
		t.Errorf("Get via prototype = %v; want 42", got)
	}
}

func TestSetPrototypeRejectsCycle(t *testing.T) {
	a := New()
	x := a.Alloc()
	y := a.Alloc()
	if err := a.SetPrototype(y.ID(), x.ID()); err != nil {
		t.Fatalf("SetPrototype(y, x): %v", err)
	}
	if err := a.SetPrototype(x.ID(), y.ID()); !errors.Is(err, ErrPrototypeCycle) {
		t.Fatalf("SetPrototype(x, y) = %v; want ErrPrototypeCycle", err)
	}
}

func TestConfigureRejectsNonConfigurable(t *testing.T) {
	a := New()
	obj := a.Alloc()
	name := arena.ID(1)
	if err := a.Define(obj.ID(), name, value.Int(1), Internable|Writable); err != nil {
		t.Fatalf("Define: %v", err)
	}
	if err := a.Configure(obj.ID(), name, Internable); !errors.Is(err, ErrNotConfigurable) {
		t.Fatalf("Configure on non-configurable = %v; want ErrNotConfigurable", err)
	}
}
