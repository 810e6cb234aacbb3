// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package command

import (
	"fmt"

	"github.com/chordkit/chordkit/internal/action"
	"github.com/chordkit/chordkit/internal/chord"
	"github.com/chordkit/chordkit/internal/device"
	"github.com/chordkit/chordkit/internal/eval"
	"github.com/chordkit/chordkit/internal/reader"
	"github.com/chordkit/chordkit/internal/value"
)

type namedMapping struct {
	name    string
	mapping chord.Mapping
}

type namedAction struct {
	name       string
	descriptor action.Descriptor
}

// Dispatcher holds the administrative state a remote front-end's
// commands read and mutate: the device registry, the named mapping
// and action sets, and the listening flag. It does not itself start
// or stop the listener thread — StartListening/StopListening are
// injected hooks the event loop supplies (spec.md §4.6, §5: only the
// event-loop thread may touch the interpreter or trigger the listener
// lifecycle).
type Dispatcher struct {
	it       *eval.Interp
	devices  *device.Registry
	mappings []namedMapping
	actions  []namedAction

	listening      bool
	startListening func([]chord.Mapping) error
	stopListening  func() error
}

// NewDispatcher builds a Dispatcher. startListening receives the
// current mapping snapshot (chord.BuildMachine's input) each time
// listening is (re)enabled.
func NewDispatcher(it *eval.Interp, devices *device.Registry, startListening func([]chord.Mapping) error, stopListening func() error) *Dispatcher {
	return &Dispatcher{it: it, devices: devices, startListening: startListening, stopListening: stopListening}
}

// SetListening reports the event loop's observed listener state back
// to the dispatcher (e.g. after a listener dies unexpectedly).
func (d *Dispatcher) SetListening(listening bool) { d.listening = listening }

// Handle dispatches one Request to its handler (spec.md §4.6).
func (d *Dispatcher) Handle(req Request) Result {
	switch req.Kind {
	case DefineDevice:
		return d.defineDevice(req)
	case RemoveDeviceByID:
		return d.removeDeviceByID(req)
	case RemoveDeviceByName:
		return d.removeDeviceByName(req)
	case DefineModifier:
		return d.defineModifier(req)
	case RemoveModifier:
		return d.removeModifier(req)
	case DefineMapping:
		return d.defineMapping(req)
	case RemoveMapping:
		return d.removeMapping(req)
	case ChangeMapping:
		return d.changeMapping(req)
	case DefineAction:
		return d.defineAction(req)
	case RemoveAction:
		return d.removeAction(req)
	case GetModifiers:
		return d.getModifiers()
	case GetActions:
		return d.getActions()
	case GetMappings:
		return d.getMappings()
	case ExecuteCode:
		return d.executeCode(req)
	case IsListening:
		return SuccessResult(IntPayload(boolToInt(d.listening)))
	case StartListening:
		return d.startListeningCmd()
	case StopListening:
		return d.stopListeningCmd()
	default:
		return ErrResult("command: unknown request kind")
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func (d *Dispatcher) defineDevice(req Request) Result {
	id, err := d.devices.Define(req.DevicePath, req.DeviceName)
	if err != nil {
		return ErrResult(err.Error())
	}
	return SuccessResult(IntPayload(int64(id)))
}

func (d *Dispatcher) removeDeviceByID(req Request) Result {
	if err := d.devices.RemoveByID(req.DeviceID); err != nil {
		return ErrResult(err.Error())
	}
	return SuccessResult(Payload{})
}

func (d *Dispatcher) removeDeviceByName(req Request) Result {
	if err := d.devices.RemoveByName(req.DeviceName); err != nil {
		return ErrResult(err.Error())
	}
	return SuccessResult(Payload{})
}

func (d *Dispatcher) defineModifier(req Request) Result {
	if err := d.devices.DefineModifier(req.DeviceID, req.ModifierKey); err != nil {
		return ErrResult(err.Error())
	}
	return SuccessResult(Payload{})
}

func (d *Dispatcher) removeModifier(req Request) Result {
	if err := d.devices.RemoveModifier(req.DeviceID, req.ModifierKey); err != nil {
		return ErrResult(err.Error())
	}
	return SuccessResult(Payload{})
}

func (d *Dispatcher) mappingNameTaken(name string) bool {
	for _, m := range d.mappings {
		if m.name == name {
			return true
		}
	}
	return false
}

func (d *Dispatcher) candidateMappings(excludeName string, extra *namedMapping) []chord.Mapping {
	out := make([]chord.Mapping, 0, len(d.mappings)+1)
	for _, m := range d.mappings {
		if m.name == excludeName {
			continue
		}
		out = append(out, m.mapping)
	}
	if extra != nil {
		out = append(out, extra.mapping)
	}
	return out
}

func (d *Dispatcher) defineMapping(req Request) Result {
	if d.mappingNameTaken(req.MappingName) {
		return ErrResult(fmt.Sprintf("command: mapping %q already defined", req.MappingName))
	}
	candidate := namedMapping{name: req.MappingName, mapping: chord.Mapping{Chords: req.MappingChords, Action: req.MappingAction}}
	if _, err := chord.BuildMachine(d.candidateMappings("", &candidate)); err != nil {
		return ErrResult(err.Error())
	}
	d.mappings = append(d.mappings, candidate)
	return SuccessResult(Payload{})
}

func (d *Dispatcher) removeMapping(req Request) Result {
	for i, m := range d.mappings {
		if m.name == req.MappingName {
			d.mappings = append(d.mappings[:i], d.mappings[i+1:]...)
			return SuccessResult(Payload{})
		}
	}
	return ErrResult(fmt.Sprintf("command: no mapping named %q", req.MappingName))
}

func (d *Dispatcher) changeMapping(req Request) Result {
	if !d.mappingNameTaken(req.MappingName) {
		return ErrResult(fmt.Sprintf("command: no mapping named %q", req.MappingName))
	}
	candidate := namedMapping{name: req.MappingName, mapping: chord.Mapping{Chords: req.MappingChords, Action: req.MappingAction}}
	if _, err := chord.BuildMachine(d.candidateMappings(req.MappingName, &candidate)); err != nil {
		return ErrResult(err.Error())
	}
	for i, m := range d.mappings {
		if m.name == req.MappingName {
			d.mappings[i] = candidate
			break
		}
	}
	return SuccessResult(Payload{})
}

func (d *Dispatcher) defineAction(req Request) Result {
	for _, a := range d.actions {
		if a.name == req.ActionName {
			return ErrResult(fmt.Sprintf("command: action %q already defined", req.ActionName))
		}
	}
	d.actions = append(d.actions, namedAction{name: req.ActionName, descriptor: req.ActionDescriptor})
	return SuccessResult(Payload{})
}

func (d *Dispatcher) removeAction(req Request) Result {
	for i, a := range d.actions {
		if a.name == req.ActionName {
			d.actions = append(d.actions[:i], d.actions[i+1:]...)
			return SuccessResult(Payload{})
		}
	}
	return ErrResult(fmt.Sprintf("command: no action named %q", req.ActionName))
}

func (d *Dispatcher) getModifiers() Result {
	var entries []Payload
	for _, dev := range d.devices.All() {
		var keys []Payload
		for _, k := range d.devices.Modifiers(dev.ID) {
			keys = append(keys, renderKey(k))
		}
		entries = append(entries, ListPayload(IntPayload(int64(dev.ID)), ListPayload(keys...)))
	}
	return SuccessResult(ListPayload(entries...))
}

func (d *Dispatcher) getActions() Result {
	var entries []Payload
	for _, a := range d.actions {
		entries = append(entries, StringPayload(a.name))
	}
	return SuccessResult(ListPayload(entries...))
}

func (d *Dispatcher) getMappings() Result {
	var entries []Payload
	for _, m := range d.mappings {
		var chords []Payload
		for _, c := range m.mapping.Chords {
			chords = append(chords, renderKeyChord(c))
		}
		entries = append(entries, ListPayload(StringPayload(m.name), ListPayload(chords...)))
	}
	return SuccessResult(ListPayload(entries...))
}

func (d *Dispatcher) executeCode(req Request) Result {
	forms, err := reader.Read(d.it, req.Code)
	if err != nil {
		return ErrResult(err.Error())
	}
	result, err := d.it.EvalBody(d.it.MainEnv(), forms)
	if err != nil {
		return ErrResult(err.Error())
	}
	return SuccessResult(renderValue(d.it, result))
}

func (d *Dispatcher) startListeningCmd() Result {
	if d.listening {
		return SuccessResult(Payload{})
	}
	snapshot := make([]chord.Mapping, len(d.mappings))
	for i, m := range d.mappings {
		snapshot[i] = m.mapping
	}
	if err := d.startListening(snapshot); err != nil {
		return ErrResult(err.Error())
	}
	d.listening = true
	return SuccessResult(Payload{})
}

func (d *Dispatcher) stopListeningCmd() Result {
	if !d.listening {
		return SuccessResult(Payload{})
	}
	if err := d.stopListening(); err != nil {
		return ErrResult(err.Error())
	}
	d.listening = false
	return SuccessResult(Payload{})
}

func renderKey(k chord.Key) Payload {
	if !k.HasDevice {
		return IntPayload(int64(k.KeyID))
	}
	return ListPayload(IntPayload(int64(k.DeviceID)), IntPayload(int64(k.KeyID)))
}

func renderKeyChord(c chord.KeyChord) Payload {
	entries := make([]Payload, 0, len(c.Modifiers)+1)
	for _, m := range c.Modifiers {
		entries = append(entries, renderKey(m))
	}
	entries = append(entries, renderKey(c.Key))
	return ListPayload(entries...)
}

// renderValue renders an evaluated Value as a Payload tree: proper
// lists render as PayloadList, strings/symbols as PayloadString,
// integers as PayloadInt, everything else falls back to its printed
// form (spec.md §4.6: "execute code (returns the value printed)").
func renderValue(it *eval.Interp, v value.Value) Payload {
	switch v.Kind() {
	case value.Integer:
		return IntPayload(v.AsInt())
	case value.String:
		s, _ := it.Strings.Lookup(v.ID())
		return StringPayload(s)
	case value.Cons:
		elems, ok := it.Cons.ToSlice(v, it.NilSym)
		if !ok {
			return StringPayload(v.String())
		}
		rendered := make([]Payload, len(elems))
		for i, e := range elems {
			rendered[i] = renderValue(it, e)
		}
		return ListPayload(rendered...)
	default:
		return StringPayload(v.String())
	}
}
