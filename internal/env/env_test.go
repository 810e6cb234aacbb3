// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package env

import (
	"errors"
	"testing"

	"github.com/chordkit/chordkit/internal/arena"
	"github.com/chordkit/chordkit/internal/value"
)

func TestDefineAndLookup(t *testing.T) {
	a := New()
	root := a.NewRoot()
	sym := arena.ID(1)
	if err := a.DefineVariable(root, sym, value.Int(42), Default); err != nil {
		t.Fatal(err)
	}
	v, err := a.LookupVariable(root, sym)
	if err != nil {
		t.Fatal(err)
	}
	if v.AsInt() != 42 {
		t.Fatalf("v = %v; want 42", v)
	}
}

func TestLookupWalksParent(t *testing.T) {
	a := New()
	root := a.NewRoot()
	child := a.NewChild(root)
	sym := arena.ID(1)
	if err := a.DefineVariable(root, sym, value.Int(7), Default); err != nil {
		t.Fatal(err)
	}
	v, err := a.LookupVariable(child, sym)
	if err != nil {
		t.Fatal(err)
	}
	if v.AsInt() != 7 {
		t.Fatalf("v = %v; want 7", v)
	}
}

func TestUndefinedLookupFails(t *testing.T) {
	a := New()
	root := a.NewRoot()
	if _, err := a.LookupVariable(root, arena.ID(99)); !errors.Is(err, ErrUndefined) {
		t.Fatalf("err = %v; want ErrUndefined", err)
	}
}

func TestConstantBindingRejectsWrite(t *testing.T) {
	a := New()
	root := a.NewRoot()
	sym := arena.ID(1)
	if err := a.DefineVariable(root, sym, value.Int(1), Constant); err != nil {
		t.Fatal(err)
	}
	if err := a.SetVariable(root, sym, value.Int(2)); !errors.Is(err, ErrNotWritable) {
		t.Fatalf("err = %v; want ErrNotWritable", err)
	}
}

func TestSetMutatesNearestEnclosing(t *testing.T) {
	a := New()
	root := a.NewRoot()
	child := a.NewChild(root)
	sym := arena.ID(1)
	if err := a.DefineVariable(root, sym, value.Int(1), Default); err != nil {
		t.Fatal(err)
	}
	if err := a.SetVariable(child, sym, value.Int(2)); err != nil {
		t.Fatal(err)
	}
	v, err := a.LookupVariable(root, sym)
	if err != nil {
		t.Fatal(err)
	}
	if v.AsInt() != 2 {
		t.Fatalf("v = %v; want 2 (set through child should mutate root's binding)", v)
	}
}

func TestVariableAndFunctionNamespacesAreIndependent(t *testing.T) {
	a := New()
	root := a.NewRoot()
	sym := arena.ID(1)
	if err := a.DefineVariable(root, sym, value.Int(1), Default); err != nil {
		t.Fatal(err)
	}
	if _, err := a.LookupFunction(root, sym); !errors.Is(err, ErrUndefined) {
		t.Fatalf("function lookup found a variable binding: %v", err)
	}
}
