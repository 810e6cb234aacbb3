// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package command implements the front-end command taxonomy and
// handlers (spec.md §4.6): the administrative surface a remote
// front-end drives over the pair of MPSC channels spec.md §6
// describes, independent of their wire encoding (out of scope per
// spec.md §1's Non-goals).
package command

import (
	"github.com/chordkit/chordkit/internal/action"
	"github.com/chordkit/chordkit/internal/chord"
	"github.com/chordkit/chordkit/internal/device"
)

// Kind tags which administrative operation a Request carries.
type Kind uint8

const (
	DefineDevice Kind = iota
	RemoveDeviceByID
	RemoveDeviceByName
	DefineModifier
	RemoveModifier
	DefineMapping
	RemoveMapping
	ChangeMapping
	DefineAction
	RemoveAction
	GetModifiers
	GetActions
	GetMappings
	ExecuteCode
	IsListening
	StartListening
	StopListening
)

// Request is one command's typed payload (spec.md §4.6: "each command
// carries a typed payload"). Which fields are meaningful depends on
// Kind.
type Request struct {
	Kind Kind

	DevicePath string
	DeviceName string
	DeviceID   device.ID

	ModifierKey chord.Key

	MappingName    string
	MappingChords  []chord.KeyChord
	MappingAction  action.Descriptor

	ActionName       string
	ActionDescriptor action.Descriptor

	Code string
}

// ResultKind tags which of the three result variants spec.md §4.6
// describes a Result holds.
type ResultKind uint8

const (
	// Success carries a payload: spec.md §4.6 "success (with a string
	// or a list-value rendered as a tree of payloads)".
	Success ResultKind = iota
	// Err is a recoverable error: a message, nothing more.
	Err
	// Failure is unrecoverable; the event loop should consider
	// teardown (spec.md §4.6, §7).
	Failure
)

// Result is the typed response to a Request.
type Result struct {
	Kind    ResultKind
	Message string
	Payload Payload
}

// PayloadKind tags the shape of a Payload node.
type PayloadKind uint8

const (
	PayloadNone PayloadKind = iota
	PayloadString
	PayloadInt
	PayloadList
)

// Payload is the "tree of payloads" spec.md §4.6 describes success
// results as, rendered independent of the transport's wire encoding.
type Payload struct {
	Kind PayloadKind
	Str  string
	Int  int64
	List []Payload
}

// StringPayload builds a leaf string Payload.
func StringPayload(s string) Payload { return Payload{Kind: PayloadString, Str: s} }

// IntPayload builds a leaf integer Payload.
func IntPayload(i int64) Payload { return Payload{Kind: PayloadInt, Int: i} }

// ListPayload builds a composite Payload from its children.
func ListPayload(items ...Payload) Payload { return Payload{Kind: PayloadList, List: items} }

// SuccessResult builds a Success Result carrying payload.
func SuccessResult(payload Payload) Result { return Result{Kind: Success, Payload: payload} }

// ErrResult builds a recoverable-error Result.
func ErrResult(message string) Result { return Result{Kind: Err, Message: message} }

// FailureResult builds an unrecoverable-error Result.
func FailureResult(message string) Result { return Result{Kind: Failure, Message: message} }
