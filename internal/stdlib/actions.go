// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stdlib

import (
	"github.com/chordkit/chordkit/internal/action"
	"github.com/chordkit/chordkit/internal/eval"
	"github.com/chordkit/chordkit/internal/value"
)

// queueAction appends d to the `--actions` variable in the calling
// interpreter's main environment (spec.md §4.4: built-ins append Action
// descriptors to the process-wide actions queue).
func queueAction(it *eval.Interp, d action.Descriptor) (value.Value, error) {
	if err := action.Enqueue(it, it.MainEnv(), d); err != nil {
		return value.Value{}, &eval.EvalError{Kind: eval.KindGenericExecution, Message: err.Error()}
	}
	return value.Bool(true), nil
}

func intArg(args []value.Value, i int) (int32, bool) {
	if i >= len(args) || args[i].Kind() != value.Integer {
		return 0, false
	}
	return int32(args[i].AsInt()), true
}

func strArg(it *eval.Interp, args []value.Value, i int) (string, bool) {
	if i >= len(args) || args[i].Kind() != value.String {
		return "", false
	}
	s, ok := it.Strings.Lookup(args[i].ID())
	return s, ok
}

func biKeyPress(it *eval.Interp, args []value.Value) (value.Value, error) {
	c, ok := intArg(args, 0)
	if len(args) != 1 || !ok {
		return invalidArgError("key-press expects a single integer key code")
	}
	return queueAction(it, action.KeyPressAction(c))
}

func biKeyClick(it *eval.Interp, args []value.Value) (value.Value, error) {
	c, ok := intArg(args, 0)
	if len(args) != 1 || !ok {
		return invalidArgError("key-click expects a single integer key code")
	}
	return queueAction(it, action.KeyClickAction(c))
}

func biKeyRelease(it *eval.Interp, args []value.Value) (value.Value, error) {
	c, ok := intArg(args, 0)
	if len(args) != 1 || !ok {
		return invalidArgError("key-release expects a single integer key code")
	}
	return queueAction(it, action.KeyReleaseAction(c))
}

func biMouseButtonPress(it *eval.Interp, args []value.Value) (value.Value, error) {
	c, ok := intArg(args, 0)
	if len(args) != 1 || !ok {
		return invalidArgError("mouse-button-press expects a single integer button code")
	}
	return queueAction(it, action.MouseButtonPressAction(c))
}

func biMouseButtonClick(it *eval.Interp, args []value.Value) (value.Value, error) {
	c, ok := intArg(args, 0)
	if len(args) != 1 || !ok {
		return invalidArgError("mouse-button-click expects a single integer button code")
	}
	return queueAction(it, action.MouseButtonClickAction(c))
}

func biMouseButtonRelease(it *eval.Interp, args []value.Value) (value.Value, error) {
	c, ok := intArg(args, 0)
	if len(args) != 1 || !ok {
		return invalidArgError("mouse-button-release expects a single integer button code")
	}
	return queueAction(it, action.MouseButtonReleaseAction(c))
}

func biMouseMoveTo(it *eval.Interp, args []value.Value) (value.Value, error) {
	x, okX := intArg(args, 0)
	y, okY := intArg(args, 1)
	if len(args) != 2 || !okX || !okY {
		return invalidArgError("mouse-move-to expects two integer coordinates")
	}
	return queueAction(it, action.MouseAbsoluteMoveAction(x, y))
}

func biMouseMoveBy(it *eval.Interp, args []value.Value) (value.Value, error) {
	dx, okX := intArg(args, 0)
	dy, okY := intArg(args, 1)
	if len(args) != 2 || !okX || !okY {
		return invalidArgError("mouse-move-by expects two integer deltas")
	}
	return queueAction(it, action.MouseRelativeMoveAction(dx, dy))
}

func biTypeText(it *eval.Interp, args []value.Value) (value.Value, error) {
	s, ok := strArg(it, args, 0)
	if len(args) != 1 || !ok {
		return invalidArgError("type-text expects a single string argument")
	}
	return queueAction(it, action.TextTypeAction(s))
}

func biWait(it *eval.Interp, args []value.Value) (value.Value, error) {
	if len(args) != 1 || args[0].Kind() != value.Integer {
		return invalidArgError("wait expects a single integer millisecond count")
	}
	return queueAction(it, action.WaitAction(args[0].AsInt()))
}

func biExecOSCommand(it *eval.Interp, args []value.Value) (value.Value, error) {
	s, ok := strArg(it, args, 0)
	if len(args) != 1 || !ok {
		return invalidArgError("exec-os-command expects a single string command line")
	}
	return queueAction(it, action.ExecuteOSCommandAction(s))
}

func biExecCode(it *eval.Interp, args []value.Value) (value.Value, error) {
	s, ok := strArg(it, args, 0)
	if len(args) != 1 || !ok {
		return invalidArgError("exec-code expects a single string source argument")
	}
	return queueAction(it, action.ExecuteCodeAction(s))
}

func biExecFunction(it *eval.Interp, args []value.Value) (value.Value, error) {
	s, ok := strArg(it, args, 0)
	if len(args) != 1 || !ok {
		return invalidArgError("exec-function expects a single string function name")
	}
	return queueAction(it, action.ExecuteFunctionAction(s))
}
