// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package arena

import "testing"

func TestAllocGet(t *testing.T) {
	a := New[string]()
	id := a.Alloc("hello")
	v, ok := a.Get(id)
	if !ok || v != "hello" {
		t.Fatalf("Get(%v) = %q, %v; want hello, true", id, v, ok)
	}
}

func TestZeroIDNeverLive(t *testing.T) {
	a := New[int]()
	if a.Live(0) {
		t.Fatal("zero ID reported live")
	}
	if _, ok := a.Get(0); ok {
		t.Fatal("Get(0) reported ok")
	}
}

func TestFreeThenReuse(t *testing.T) {
	a := New[int]()
	id1 := a.Alloc(1)
	id2 := a.Alloc(2)
	a.Free(id1)
	if a.Live(id1) {
		t.Fatal("freed id still live")
	}
	id3 := a.Alloc(3)
	if id3 != id1 {
		t.Fatalf("Alloc after Free = %v; want reused id %v", id3, id1)
	}
	v, ok := a.Get(id3)
	if !ok || v != 3 {
		t.Fatalf("Get(id3) = %v, %v; want 3, true", v, ok)
	}
	if v, ok := a.Get(id2); !ok || v != 2 {
		t.Fatalf("unrelated id2 disturbed: %v, %v", v, ok)
	}
}

func TestFreeIsIdempotent(t *testing.T) {
	a := New[int]()
	id := a.Alloc(1)
	a.Free(id)
	a.Free(id) // must not panic or double-push the free list
	if got := a.Alloc(2); got != id {
		t.Fatalf("Alloc = %v; want %v", got, id)
	}
	if got := a.Alloc(3); got == id {
		t.Fatal("double free produced duplicate id from Alloc")
	}
}

func TestEachVisitsOnlyLive(t *testing.T) {
	a := New[int]()
	id1 := a.Alloc(10)
	_ = a.Alloc(20)
	a.Free(id1)
	seen := map[ID]int{}
	a.Each(func(id ID, v int) { seen[id] = v })
	if _, ok := seen[id1]; ok {
		t.Fatal("Each visited freed id")
	}
	if len(seen) != 1 {
		t.Fatalf("Each visited %d ids; want 1", len(seen))
	}
}

func TestLen(t *testing.T) {
	a := New[int]()
	id1 := a.Alloc(1)
	a.Alloc(2)
	if a.Len() != 2 {
		t.Fatalf("Len() = %d; want 2", a.Len())
	}
	a.Free(id1)
	if a.Len() != 1 {
		t.Fatalf("Len() after free = %d; want 1", a.Len())
	}
}
