// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package action implements the Action algebra (spec.md §3 "Action",
// §4.4): the outgoing device commands a chord binding or a builtin can
// queue, grounded on original_source's
// src/interpreter/stdlib/builtin_objects/action/*.rs and
// src/interpreter/event_loop/action.rs.
package action

// Kind tags which of the Action variants a Descriptor holds.
type Kind uint8

const (
	KeyPress Kind = iota
	KeyClick
	KeyRelease
	MouseButtonPress
	MouseButtonClick
	MouseButtonRelease
	MouseAbsoluteMove
	MouseRelativeMove
	TextType
	Wait
	ExecuteOSCommand
	ExecuteCode
	ExecuteFunction
	// ExecuteFunctionValue is internal-only: the chord-sequence state
	// machine queues it directly with an already-resolved function
	// handle, bypassing by-name lookup (spec.md §3: "the last is
	// internal-only, not user-definable").
	ExecuteFunctionValue
)

// Descriptor is one queued Action: the payload fields used depend on
// Kind, mirroring the tagged-list encoding builtins append to the
// `--actions` variable (spec.md §4.4).
type Descriptor struct {
	Kind Kind

	Code int32 // KeyPress/Click/Release, MouseButtonPress/Click/Release

	X, Y   int32 // MouseAbsoluteMove
	DX, DY int32 // MouseRelativeMove

	Text string // TextType, ExecuteOSCommand (command line), ExecuteCode (source)

	Millis int64 // Wait

	FunctionName string      // ExecuteFunction
	FunctionID   uint32      // ExecuteFunctionValue: arena.ID of the function, pre-resolved
}

// KeyPressAction builds a KeyPress descriptor.
func KeyPressAction(code int32) Descriptor { return Descriptor{Kind: KeyPress, Code: code} }

// KeyClickAction builds a KeyClick descriptor.
func KeyClickAction(code int32) Descriptor { return Descriptor{Kind: KeyClick, Code: code} }

// KeyReleaseAction builds a KeyRelease descriptor.
func KeyReleaseAction(code int32) Descriptor { return Descriptor{Kind: KeyRelease, Code: code} }

// MouseButtonPressAction builds a MouseButtonPress descriptor.
func MouseButtonPressAction(code int32) Descriptor {
	return Descriptor{Kind: MouseButtonPress, Code: code}
}

// MouseButtonClickAction builds a MouseButtonClick descriptor.
func MouseButtonClickAction(code int32) Descriptor {
	return Descriptor{Kind: MouseButtonClick, Code: code}
}

// MouseButtonReleaseAction builds a MouseButtonRelease descriptor.
func MouseButtonReleaseAction(code int32) Descriptor {
	return Descriptor{Kind: MouseButtonRelease, Code: code}
}

// MouseAbsoluteMoveAction builds a MouseAbsoluteMove descriptor.
func MouseAbsoluteMoveAction(x, y int32) Descriptor {
	return Descriptor{Kind: MouseAbsoluteMove, X: x, Y: y}
}

// MouseRelativeMoveAction builds a MouseRelativeMove descriptor.
func MouseRelativeMoveAction(dx, dy int32) Descriptor {
	return Descriptor{Kind: MouseRelativeMove, DX: dx, DY: dy}
}

// TextTypeAction builds a TextType descriptor.
func TextTypeAction(text string) Descriptor { return Descriptor{Kind: TextType, Text: text} }

// WaitAction builds a Wait descriptor; the event loop treats it as a
// no-op (spec.md §4.4: "the worker handles timing").
func WaitAction(millis int64) Descriptor { return Descriptor{Kind: Wait, Millis: millis} }

// ExecuteOSCommandAction builds an ExecuteOSCommand descriptor from a
// raw command line, split into argv by the worker using shell-style
// quoting rules (SPEC_FULL.md §11).
func ExecuteOSCommandAction(cmdline string) Descriptor {
	return Descriptor{Kind: ExecuteOSCommand, Text: cmdline}
}

// ExecuteCodeAction builds an ExecuteCode descriptor; the event loop
// evaluates source inline in the main environment (spec.md §4.4).
func ExecuteCodeAction(source string) Descriptor { return Descriptor{Kind: ExecuteCode, Text: source} }

// ExecuteFunctionAction builds an ExecuteFunction descriptor naming a
// function to look up and invoke with no arguments.
func ExecuteFunctionAction(name string) Descriptor {
	return Descriptor{Kind: ExecuteFunction, FunctionName: name}
}

// ExecuteFunctionValueAction builds the internal-only variant the state
// machine uses: a pre-resolved function handle, skipping by-name lookup.
func ExecuteFunctionValueAction(functionID uint32) Descriptor {
	return Descriptor{Kind: ExecuteFunctionValue, FunctionID: functionID}
}
