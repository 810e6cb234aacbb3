// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package action

import (
	"github.com/chordkit/chordkit/internal/arena"
	"github.com/chordkit/chordkit/internal/eval"
	"github.com/chordkit/chordkit/internal/value"
)

// tag names for the `--actions` queue's encoding (spec.md §4.4: "Action
// descriptors encoded as tagged lists"), grounded on the same keyword-
// head tagged-list shape internal/stdlib's key-chord->list uses for its
// wire format.
const (
	tagKeyPress          = "key-press"
	tagKeyClick          = "key-click"
	tagKeyRelease        = "key-release"
	tagMouseButtonPress  = "mouse-button-press"
	tagMouseButtonClick  = "mouse-button-click"
	tagMouseButtonRelease = "mouse-button-release"
	tagMouseMoveTo       = "mouse-move-to"
	tagMouseMoveBy       = "mouse-move-by"
	tagTextType          = "type-text"
	tagWait              = "wait"
	tagExecOSCommand     = "exec-os-command"
	tagExecCode          = "exec-code"
	tagExecFunction      = "exec-function"
)

// Encode renders a Descriptor as the tagged-list Value a builtin
// appends to the `--actions` queue: a keyword tag followed by the
// descriptor's positional fields. ExecuteFunctionValue is internal-only
// and has no guest-visible encoding.
func Encode(it *eval.Interp, d Descriptor) (value.Value, bool) {
	kw := func(s string) value.Value { return value.Kw(it.Keywords.Intern(s)) }
	str := func(s string) value.Value { return value.Str(it.Strings.Intern(s)) }
	list := func(elems ...value.Value) value.Value { return it.Cons.List(it.NilValue(), elems...) }

	switch d.Kind {
	case KeyPress:
		return list(kw(tagKeyPress), value.Int(int64(d.Code))), true
	case KeyClick:
		return list(kw(tagKeyClick), value.Int(int64(d.Code))), true
	case KeyRelease:
		return list(kw(tagKeyRelease), value.Int(int64(d.Code))), true
	case MouseButtonPress:
		return list(kw(tagMouseButtonPress), value.Int(int64(d.Code))), true
	case MouseButtonClick:
		return list(kw(tagMouseButtonClick), value.Int(int64(d.Code))), true
	case MouseButtonRelease:
		return list(kw(tagMouseButtonRelease), value.Int(int64(d.Code))), true
	case MouseAbsoluteMove:
		return list(kw(tagMouseMoveTo), value.Int(int64(d.X)), value.Int(int64(d.Y))), true
	case MouseRelativeMove:
		return list(kw(tagMouseMoveBy), value.Int(int64(d.DX)), value.Int(int64(d.DY))), true
	case TextType:
		return list(kw(tagTextType), str(d.Text)), true
	case Wait:
		return list(kw(tagWait), value.Int(d.Millis)), true
	case ExecuteOSCommand:
		return list(kw(tagExecOSCommand), str(d.Text)), true
	case ExecuteCode:
		return list(kw(tagExecCode), str(d.Text)), true
	case ExecuteFunction:
		return list(kw(tagExecFunction), str(d.FunctionName)), true
	default:
		return value.Value{}, false
	}
}

// Decode parses one tagged-list Value back into a Descriptor, the
// inverse of Encode, used by the event loop draining `--actions`.
func Decode(it *eval.Interp, v value.Value) (Descriptor, bool) {
	elems, ok := it.Cons.ToSlice(v, it.NilSym)
	if !ok || len(elems) == 0 || elems[0].Kind() != value.Keyword {
		return Descriptor{}, false
	}
	tag, ok := it.Keywords.Lookup(elems[0].ID())
	if !ok {
		return Descriptor{}, false
	}
	args := elems[1:]

	asInt := func(i int) (int32, bool) {
		if i >= len(args) || args[i].Kind() != value.Integer {
			return 0, false
		}
		return int32(args[i].AsInt()), true
	}
	asInt64 := func(i int) (int64, bool) {
		if i >= len(args) || args[i].Kind() != value.Integer {
			return 0, false
		}
		return args[i].AsInt(), true
	}
	asStr := func(i int) (string, bool) {
		if i >= len(args) || args[i].Kind() != value.String {
			return "", false
		}
		s, ok := it.Strings.Lookup(args[i].ID())
		return s, ok
	}

	switch tag {
	case tagKeyPress:
		if c, ok := asInt(0); ok {
			return KeyPressAction(c), true
		}
	case tagKeyClick:
		if c, ok := asInt(0); ok {
			return KeyClickAction(c), true
		}
	case tagKeyRelease:
		if c, ok := asInt(0); ok {
			return KeyReleaseAction(c), true
		}
	case tagMouseButtonPress:
		if c, ok := asInt(0); ok {
			return MouseButtonPressAction(c), true
		}
	case tagMouseButtonClick:
		if c, ok := asInt(0); ok {
			return MouseButtonClickAction(c), true
		}
	case tagMouseButtonRelease:
		if c, ok := asInt(0); ok {
			return MouseButtonReleaseAction(c), true
		}
	case tagMouseMoveTo:
		x, okX := asInt(0)
		y, okY := asInt(1)
		if okX && okY {
			return MouseAbsoluteMoveAction(x, y), true
		}
	case tagMouseMoveBy:
		dx, okX := asInt(0)
		dy, okY := asInt(1)
		if okX && okY {
			return MouseRelativeMoveAction(dx, dy), true
		}
	case tagTextType:
		if s, ok := asStr(0); ok {
			return TextTypeAction(s), true
		}
	case tagWait:
		if m, ok := asInt64(0); ok {
			return WaitAction(m), true
		}
	case tagExecOSCommand:
		if s, ok := asStr(0); ok {
			return ExecuteOSCommandAction(s), true
		}
	case tagExecCode:
		if s, ok := asStr(0); ok {
			return ExecuteCodeAction(s), true
		}
	case tagExecFunction:
		if s, ok := asStr(0); ok {
			return ExecuteFunctionAction(s), true
		}
	}
	return Descriptor{}, false
}

// Enqueue appends an encoded Descriptor to the interpreter's
// process-wide `--actions` variable (spec.md §4.4), used by both the
// standard library's action-queueing builtins and the chord-sequence
// machine's Excited outcome. Entries accumulate in reverse-chronological
// order (each call prepends); DrainQueue restores FIFO order.
func Enqueue(it *eval.Interp, mainEnv arena.ID, d Descriptor) error {
	encoded, ok := Encode(it, d)
	if !ok {
		return nil
	}
	cur, err := it.Envs.LookupVariable(mainEnv, it.ActionsSym)
	if err != nil {
		return err
	}
	updated := it.Cons.Alloc(encoded, cur)
	return it.Envs.SetVariable(mainEnv, it.ActionsSym, updated)
}

// DrainQueue reads every pending entry from `--actions`, decodes it,
// resets the variable to nil, and returns the entries in the FIFO order
// they were enqueued (spec.md §4.5 step 4).
func DrainQueue(it *eval.Interp, mainEnv arena.ID) ([]Descriptor, error) {
	cur, err := it.Envs.LookupVariable(mainEnv, it.ActionsSym)
	if err != nil {
		return nil, err
	}
	if err := it.Envs.SetVariable(mainEnv, it.ActionsSym, it.NilValue()); err != nil {
		return nil, err
	}
	elems, ok := it.Cons.ToSlice(cur, it.NilSym)
	if !ok {
		return nil, nil
	}
	out := make([]Descriptor, 0, len(elems))
	for i := len(elems) - 1; i >= 0; i-- {
		if d, ok := Decode(it, elems[i]); ok {
			out = append(out, d)
		}
	}
	return out, nil
}
