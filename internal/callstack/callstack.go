// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package callstack implements the call stack's dynamic per-invocation
// state and overflow detection (spec.md §3 "Call stack").
package callstack

import (
	"errors"

	"github.com/chordkit/chordkit/internal/arena"
	"github.com/chordkit/chordkit/internal/value"
)

// DefaultDepthLimit is the spec's suggested depth limit (spec.md §3:
// "a fixed depth limit (e.g. 100)").
const DefaultDepthLimit = 100

// Frame records one invocation: the invocation's environment, an
// optional name symbol (zero means anonymous), and the argument values
// it received. FunctionID holds the function's arena id when the pusher
// sets it; the evaluator's pushFrame does not, so it is zero there.
type Frame struct {
	FunctionID arena.ID
	Env        arena.ID // the invocation's environment, a GC root (spec.md §4.2)
	Name       arena.ID
	HasName    bool
	Args       []value.Value
}

// ErrOverflow is the recoverable stack-overflow error (spec.md §3:
// "triggers a stack overflow error that the evaluator surfaces as a
// recoverable error, not a native abort").
var ErrOverflow = errors.New("callstack: stack overflow")

// Stack is the interpreter's call stack.
type Stack struct {
	frames []Frame
	limit  int
}

// New returns an empty stack with the given depth limit. A limit of 0
// uses DefaultDepthLimit.
func New(limit int) *Stack {
	if limit <= 0 {
		limit = DefaultDepthLimit
	}
	return &Stack{limit: limit}
}

// Push attempts to push a new frame. If the stack is already at its
// depth limit, it returns ErrOverflow and does not push (spec.md §4.1.1:
// "if current depth exceeds the limit, fail... without pushing").
func (s *Stack) Push(f Frame) error {
	if len(s.frames) >= s.limit {
		return ErrOverflow
	}
	s.frames = append(s.frames, f)
	return nil
}

// Pop removes the top frame. It is a no-op on an empty stack — callers
// pop exactly once per successful Push, including on error returns
// from the invocation (spec.md §4.1.1: "Pop on return (including error
// return)"), so Pop is only ever called after a successful Push.
func (s *Stack) Pop() {
	if n := len(s.frames); n > 0 {
		s.frames = s.frames[:n-1]
	}
}

// Depth reports the current stack depth.
func (s *Stack) Depth() int { return len(s.frames) }

// Clear empties the stack. Called on any toplevel error return so
// subsequent invocations see a clean frame (spec.md §3 "Lifecycles",
// §7 "Propagation").
func (s *Stack) Clear() { s.frames = s.frames[:0] }

// Frames returns the live frames, root-first, for the garbage
// collector's mark phase (spec.md §4.2: "every environment on the call
// stack" is a root — callers mark each frame's Env, whose parent chain
// reaches the called function's closure).
func (s *Stack) Frames() []Frame {
	return s.frames
}
