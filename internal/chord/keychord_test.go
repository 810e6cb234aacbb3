// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package chord

import "testing"

func TestKeyChordEqualIgnoresModifierOrder(t *testing.T) {
	a := New([]Key{NewLoneKey(3), NewLoneKey(4)}, NewLoneKey(2))
	b := New([]Key{NewLoneKey(4), NewLoneKey(3)}, NewLoneKey(2))
	if !a.Equal(b) {
		t.Error("chords with reordered modifiers should be equal")
	}
}

func TestKeyChordEqualRejectsMismatchedModifierSets(t *testing.T) {
	a := New([]Key{NewLoneKey(3), NewLoneKey(4)}, NewLoneKey(2))
	b := New([]Key{NewLoneKey(3)}, NewLoneKey(2))
	if a.Equal(b) {
		t.Error("chords with differing modifier cardinality should not be equal")
	}
}

func TestKeyChordEqualUsesPermissiveKeyEquality(t *testing.T) {
	a := New([]Key{NewLoneKey(3)}, NewLoneKey(1))
	b := New([]Key{NewLoneKey(3)}, NewDeviceKey(1, 1))
	if !a.Equal(b) {
		t.Error("trigger keys should compare permissively")
	}
}

func TestKeyChordSameRejectsCrossDeviceKey(t *testing.T) {
	a := New([]Key{NewLoneKey(3)}, NewLoneKey(1))
	b := New([]Key{NewLoneKey(3)}, NewDeviceKey(1, 1))
	if a.Same(b) {
		t.Error("Same should not permit lone/device crossover")
	}
}

func TestSequencesSame(t *testing.T) {
	a := []KeyChord{New(nil, NewLoneKey(1)), New(nil, NewLoneKey(2))}
	b := []KeyChord{New(nil, NewLoneKey(1)), New(nil, NewLoneKey(2))}
	if !SequencesSame(a, b) {
		t.Error("identical sequences should be Same")
	}
	c := []KeyChord{New(nil, NewLoneKey(1))}
	if SequencesSame(a, c) {
		t.Error("sequences of differing length should not be Same")
	}
}
