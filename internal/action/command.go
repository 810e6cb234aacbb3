// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package action

import "github.com/kballard/go-shellquote"

// CommandKind tags which of the Worker contract's variants a Command
// holds (spec.md §6 "Worker contract (consumed)": `UInput(KeyDown/
// KeyUp/KeyPress/MouseButton…/ForwardKeyChord)`, `Xorg(MouseMoveTo/
// MouseMoveBy/TextType)`, `Spawn(cmdline)`).
type CommandKind uint8

const (
	KeyDown CommandKind = iota
	KeyUp
	KeyPress
	MouseButtonDown
	MouseButtonUp
	MouseButtonPress
	ForwardKeyChord
	MouseMoveTo
	MouseMoveBy
	TextType
	Spawn
)

// ChordKey mirrors internal/chord's Key shape without importing that
// package (internal/chord already imports internal/action for
// Mapping's Action field, so the reverse import would cycle).
type ChordKey struct {
	DeviceID  int32
	HasDevice bool
	KeyID     int32
}

// Command is one outgoing device command the Worker contract accepts.
type Command struct {
	Kind CommandKind

	Code int32 // KeyDown/Up/Press, MouseButtonDown/Up/Press

	X, Y   int32 // MouseMoveTo
	DX, DY int32 // MouseMoveBy

	Text string   // TextType
	Argv []string // Spawn, split shell-style from ExecuteOSCommand's cmdline

	Modifiers []ChordKey // ForwardKeyChord
	Trigger   ChordKey   // ForwardKeyChord
}

// Translate maps a queued Action Descriptor to its outgoing device
// Command (spec.md §4.4). Wait, ExecuteCode, ExecuteFunction and
// ExecuteFunctionValue have no device-command form — the event loop
// handles them inline (spec.md §4.4: "Wait is intentionally a no-op at
// this layer... ExecuteCode is evaluated inline... ExecuteFunction[Value]
// invokes a nullary function") — so Translate reports false for them.
func Translate(d Descriptor) (Command, bool) {
	switch d.Kind {
	case KeyPress:
		return Command{Kind: KeyDown, Code: d.Code}, true
	case KeyClick:
		return Command{Kind: KeyPress, Code: d.Code}, true
	case KeyRelease:
		return Command{Kind: KeyUp, Code: d.Code}, true
	case MouseButtonPress:
		return Command{Kind: MouseButtonDown, Code: d.Code}, true
	case MouseButtonClick:
		return Command{Kind: MouseButtonPress, Code: d.Code}, true
	case MouseButtonRelease:
		return Command{Kind: MouseButtonUp, Code: d.Code}, true
	case MouseAbsoluteMove:
		return Command{Kind: MouseMoveTo, X: d.X, Y: d.Y}, true
	case MouseRelativeMove:
		return Command{Kind: MouseMoveBy, DX: d.DX, DY: d.DY}, true
	case TextType:
		return Command{Kind: TextType, Text: d.Text}, true
	case ExecuteOSCommand:
		argv, err := shellquote.Split(d.Text)
		if err != nil {
			return Command{}, false
		}
		return Command{Kind: Spawn, Argv: argv}, true
	default:
		return Command{}, false
	}
}
