// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package callstack

import (
	"errors"
	"testing"
)

func TestPushPopTracksDepth(t *testing.T) {
	s := New(4)
	for i := 0; i < 3; i++ {
		if err := s.Push(Frame{}); err != nil {
			t.Fatalf("Push %d: %v", i, err)
		}
	}
	if s.Depth() != 3 {
		t.Fatalf("Depth = %d; want 3", s.Depth())
	}
	s.Pop()
	if s.Depth() != 2 {
		t.Fatalf("Depth after Pop = %d; want 2", s.Depth())
	}
}

func TestPushAtLimitOverflowsWithoutPushing(t *testing.T) {
	s := New(2)
	if err := s.Push(Frame{}); err != nil {
		t.Fatalf("first Push: %v", err)
	}
	if err := s.Push(Frame{}); err != nil {
		t.Fatalf("second Push: %v", err)
	}
	if err := s.Push(Frame{}); !errors.Is(err, ErrOverflow) {
		t.Fatalf("third Push = %v; want ErrOverflow", err)
	}
	if s.Depth() != 2 {
		t.Fatalf("Depth after rejected Push = %d; want 2", s.Depth())
	}
}

func TestZeroLimitUsesDefault(t *testing.T) {
	s := New(0)
	if s.limit != DefaultDepthLimit {
		t.Fatalf("limit = %d; want %d", s.limit, DefaultDepthLimit)
	}
}

func TestClearEmptiesStack(t *testing.T) {
	s := New(4)
	_ = s.Push(Frame{})
	_ = s.Push(Frame{})
	s.Clear()
	if s.Depth() != 0 {
		t.Fatalf("Depth after Clear = %d; want 0", s.Depth())
	}
}

func TestPopOnEmptyStackIsNoOp(t *testing.T) {
	s := New(4)
	s.Pop()
	if s.Depth() != 0 {
		t.Fatalf("Depth = %d; want 0", s.Depth())
	}
}
