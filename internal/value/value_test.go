// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package value

import (
	"testing"

	"github.com/chordkit/chordkit/internal/arena"
)

func TestConstructorsRoundTripKindAndPayload(t *testing.T) {
	if v := Int(42); v.Kind() != Integer || v.AsInt() != 42 {
		t.Fatalf("Int(42) = %+v", v)
	}
	if v := Flt(1.5); v.Kind() != Float || v.AsFloat() != 1.5 {
		t.Fatalf("Flt(1.5) = %+v", v)
	}
	if v := Bool(true); v.Kind() != Boolean || !v.AsBool() {
		t.Fatalf("Bool(true) = %+v", v)
	}
	if v := Str(arena.ID(7)); v.Kind() != String || v.ID() != arena.ID(7) {
		t.Fatalf("Str(7) = %+v", v)
	}
	if v := ConsV(arena.ID(3)); v.Kind() != Cons || v.ID() != arena.ID(3) {
		t.Fatalf("ConsV(3) = %+v", v)
	}
}

func TestIsCompound(t *testing.T) {
	compound := []Value{Str(0), Kw(0), Sym(0), ConsV(0), Obj(0), Fn(0)}
	for _, v := range compound {
		if !v.IsCompound() {
			t.Errorf("%v.IsCompound() = false; want true", v)
		}
	}
	primitive := []Value{Int(0), Flt(0), Bool(false)}
	for _, v := range primitive {
		if v.IsCompound() {
			t.Errorf("%v.IsCompound() = true; want false", v)
		}
	}
}

func TestEqualIsShallowAndKindDiscriminated(t *testing.T) {
	if !Int(5).Equal(Int(5)) {
		t.Error("Int(5) should equal Int(5)")
	}
	if Int(5).Equal(Flt(5)) {
		t.Error("Int(5) should not equal Flt(5): different Kind")
	}
	if !Str(arena.ID(1)).Equal(Str(arena.ID(1))) {
		t.Error("same-id strings should be Equal")
	}
	if Str(arena.ID(1)).Equal(Str(arena.ID(2))) {
		t.Error("different-id strings should not be Equal")
	}
}

func TestStringRendersPrimitivesAndCompoundHandles(t *testing.T) {
	if got := Int(7).String(); got != "7" {
		t.Errorf("Int(7).String() = %q", got)
	}
	if got := Bool(true).String(); got != "#t" {
		t.Errorf("Bool(true).String() = %q", got)
	}
	if got := Bool(false).String(); got != "#f" {
		t.Errorf("Bool(false).String() = %q", got)
	}
	if got := ConsV(arena.ID(4)).String(); got == "" {
		t.Error("compound String() must not be empty")
	}
}
