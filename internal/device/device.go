// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package device implements the device/modifier registry (SPEC_FULL.md
// §12): each registered input device is a three-element record — id,
// filesystem path, and a human-readable name — plus its own set of
// declared modifier keys, grounded on original_source's
// src/interpreter/library/keys/device/*.rs and
// src/interpreter/library/keys/define_keyboard_with_values.rs.
package device

import (
	"fmt"

	"github.com/chordkit/chordkit/internal/chord"
)

// ID identifies a registered device.
type ID int32

// Info is one device's three-element record.
type Info struct {
	ID   ID
	Path string
	Name string
}

// Registry tracks every registered device and its declared modifiers.
// Devices are never mutated in place: Define/Remove always produce the
// effect of rebuilding the list, mirroring the original's
// read-check-rewrite pattern over a single root-bound list variable.
type Registry struct {
	devices   []Info
	modifiers map[ID][]chord.Key
}

// NewRegistry returns an empty device registry.
func NewRegistry() *Registry {
	return &Registry{modifiers: make(map[ID][]chord.Key)}
}

// Define registers a new device, failing if a device with the same
// path or name is already registered (define_keyboard_with_values.rs's
// check_keyboard_can_be_registered, restricted to path/name since id
// allocation here is registry-owned rather than caller-supplied).
func (r *Registry) Define(path, name string) (ID, error) {
	id := ID(0)
	for _, d := range r.devices {
		if d.Path == path {
			return 0, fmt.Errorf("device: path %q is already registered", path)
		}
		if d.Name == name {
			return 0, fmt.Errorf("device: name %q is already registered", name)
		}
		if d.ID >= id {
			id = d.ID + 1
		}
	}
	r.devices = append(r.devices, Info{ID: id, Path: path, Name: name})
	return id, nil
}

// RemoveByID removes the device with the given id
// (remove_device_by_id_with_value.rs).
func (r *Registry) RemoveByID(id ID) error {
	for i, d := range r.devices {
		if d.ID == id {
			r.devices = append(r.devices[:i], r.devices[i+1:]...)
			delete(r.modifiers, id)
			return nil
		}
	}
	return fmt.Errorf("device: no device registered with id %d", id)
}

// RemoveByName removes the device with the given name
// (remove_device_by_name_with_value.rs).
func (r *Registry) RemoveByName(name string) error {
	for i, d := range r.devices {
		if d.Name == name {
			r.devices = append(r.devices[:i], r.devices[i+1:]...)
			delete(r.modifiers, d.ID)
			return nil
		}
	}
	return fmt.Errorf("device: no device registered with name %q", name)
}

// Lookup returns the Info for id, if registered.
func (r *Registry) Lookup(id ID) (Info, bool) {
	for _, d := range r.devices {
		if d.ID == id {
			return d, true
		}
	}
	return Info{}, false
}

// All returns every registered device, in registration order.
func (r *Registry) All() []Info {
	return append([]Info(nil), r.devices...)
}

// DefineModifier declares key as a modifier on the device at id
// (keys/modifier/*.rs).
func (r *Registry) DefineModifier(id ID, key chord.Key) error {
	if _, ok := r.Lookup(id); !ok {
		return fmt.Errorf("device: no device registered with id %d", id)
	}
	for _, k := range r.modifiers[id] {
		if k.Same(key) {
			return fmt.Errorf("device: modifier already declared on device %d", id)
		}
	}
	r.modifiers[id] = append(r.modifiers[id], key)
	return nil
}

// RemoveModifier un-declares key as a modifier on the device at id
// (keys/remove_modifier_with_values.rs, keys/modifier/remove_modifier_with_values.rs).
func (r *Registry) RemoveModifier(id ID, key chord.Key) error {
	mods := r.modifiers[id]
	for i, k := range mods {
		if k.Same(key) {
			r.modifiers[id] = append(mods[:i], mods[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("device: modifier not declared on device %d", id)
}

// Modifiers returns the modifier keys declared on the device at id.
func (r *Registry) Modifiers(id ID) []chord.Key {
	return append([]chord.Key(nil), r.modifiers[id]...)
}
