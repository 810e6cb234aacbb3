// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package command

import (
	"testing"

	"github.com/chordkit/chordkit/internal/action"
	"github.com/chordkit/chordkit/internal/chord"
	"github.com/chordkit/chordkit/internal/device"
	"github.com/chordkit/chordkit/internal/eval"
	"github.com/chordkit/chordkit/internal/stdlib"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *bool) {
	t.Helper()
	it := eval.New(100)
	stdlib.Register(it)
	devices := device.NewRegistry()
	listening := false
	d := NewDispatcher(it, devices,
		func(snapshot []chord.Mapping) error { listening = true; return nil },
		func() error { listening = false; return nil },
	)
	return d, &listening
}

func TestDefineDeviceThenGetModifiers(t *testing.T) {
	d, _ := newTestDispatcher(t)
	res := d.Handle(Request{Kind: DefineDevice, DevicePath: "/dev/input/event0", DeviceName: "kbd"})
	if res.Kind != Success {
		t.Fatalf("DefineDevice failed: %+v", res)
	}
	devID := device.ID(res.Payload.Int)

	res = d.Handle(Request{Kind: DefineModifier, DeviceID: devID, ModifierKey: chord.NewLoneKey(42)})
	if res.Kind != Success {
		t.Fatalf("DefineModifier failed: %+v", res)
	}

	res = d.Handle(Request{Kind: GetModifiers})
	if res.Kind != Success || len(res.Payload.List) != 1 {
		t.Fatalf("GetModifiers = %+v", res)
	}
}

func TestDefineMappingRejectsShadowing(t *testing.T) {
	d, _ := newTestDispatcher(t)
	ctrlC := chord.New([]chord.Key{chord.NewLoneKey(1)}, chord.NewLoneKey(2))
	ctrlCB := chord.New([]chord.Key{chord.NewLoneKey(1)}, chord.NewLoneKey(3))

	res := d.Handle(Request{
		Kind: DefineMapping, MappingName: "m1",
		MappingChords: []chord.KeyChord{ctrlC},
		MappingAction: action.TextTypeAction("hello"),
	})
	if res.Kind != Success {
		t.Fatalf("first DefineMapping failed: %+v", res)
	}

	res = d.Handle(Request{
		Kind: DefineMapping, MappingName: "m2",
		MappingChords: []chord.KeyChord{ctrlC, ctrlCB},
		MappingAction: action.TextTypeAction("world"),
	})
	if res.Kind != Err {
		t.Fatalf("expected shadowing rejection, got %+v", res)
	}
}

func TestStartStopListening(t *testing.T) {
	d, listening := newTestDispatcher(t)
	res := d.Handle(Request{Kind: IsListening})
	if res.Payload.Int != 0 {
		t.Fatalf("expected not listening initially")
	}
	res = d.Handle(Request{Kind: StartListening})
	if res.Kind != Success || !*listening {
		t.Fatalf("StartListening failed: %+v", res)
	}
	res = d.Handle(Request{Kind: StopListening})
	if res.Kind != Success || *listening {
		t.Fatalf("StopListening failed: %+v", res)
	}
}

func TestExecuteCodeReturnsPrintedValue(t *testing.T) {
	d, _ := newTestDispatcher(t)
	res := d.Handle(Request{Kind: ExecuteCode, Code: "(+ 1 2)"})
	if res.Kind != Success || res.Payload.Kind != PayloadInt || res.Payload.Int != 3 {
		t.Fatalf("ExecuteCode result = %+v", res)
	}
}
