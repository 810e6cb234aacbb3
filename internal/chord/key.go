// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package chord implements the domain types fed to the chord-sequence
// state machine (spec.md §3 "Key"/"KeyChord", §4.3): a Key identifies a
// physical key, optionally scoped to a device; a KeyChord is a set of
// modifier Keys plus one trigger Key; the trie matches chord sequences
// against bound Mappings, grounded on original_source's
// src/interpreter/domain/key.rs and key_chord.rs.
package chord

// Key is either scoped to a specific input device or "lone" — bound
// without regard to which device produced it.
type Key struct {
	DeviceID   int32
	HasDevice  bool
	KeyID      int32
}

// NewDeviceKey returns a Key scoped to deviceID.
func NewDeviceKey(deviceID, keyID int32) Key {
	return Key{DeviceID: deviceID, HasDevice: true, KeyID: keyID}
}

// NewLoneKey returns a Key unscoped to any device.
func NewLoneKey(keyID int32) Key {
	return Key{KeyID: keyID}
}

// Equal is the permissive equality form (spec.md §3): a LoneKey equals
// any DeviceKey sharing the same KeyID; two DeviceKeys must also share
// DeviceID.
func (k Key) Equal(other Key) bool {
	if !k.HasDevice || !other.HasDevice {
		return k.KeyID == other.KeyID
	}
	return k.DeviceID == other.DeviceID && k.KeyID == other.KeyID
}

// Same is the strict equality form (spec.md §3 "keys_are_same"):
// requires matching constructor (both lone, or both device-scoped with
// matching DeviceID), in addition to matching KeyID.
func (k Key) Same(other Key) bool {
	if k.HasDevice != other.HasDevice {
		return false
	}
	if k.HasDevice {
		return k.DeviceID == other.DeviceID && k.KeyID == other.KeyID
	}
	return k.KeyID == other.KeyID
}
