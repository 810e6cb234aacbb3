// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package chord

// KeyChord is a set of modifier Keys plus one trigger Key (spec.md §3).
type KeyChord struct {
	Modifiers []Key
	Key       Key
}

// New builds a KeyChord from its modifiers and trigger key.
func New(modifiers []Key, key Key) KeyChord {
	return KeyChord{Modifiers: modifiers, Key: key}
}

// Equal is the permissive set-equality form used by the trie's edge
// matching (spec.md §4.3: "using permissive KeyChord equality: Key sets
// equal under permissive Key equality, same cardinality"), grounded on
// key_chord.rs's PartialEq impl (which defers to Key's permissive
// PartialEq, not the strict keys_are_same).
func (c KeyChord) Equal(other KeyChord) bool {
	if !c.Key.Equal(other.Key) {
		return false
	}
	return modifierSetsEqual(c.Modifiers, other.Modifiers, Key.Equal)
}

// Same is the strict form (key_chord.rs's key_chords_are_same): every
// Key comparison, including the trigger key, uses Key.Same instead of
// Key.Equal.
func (c KeyChord) Same(other KeyChord) bool {
	if !c.Key.Same(other.Key) {
		return false
	}
	return modifierSetsEqual(c.Modifiers, other.Modifiers, Key.Same)
}

func modifierSetsEqual(a, b []Key, eq func(Key, Key) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for _, ka := range a {
		found := false
		for _, kb := range b {
			if eq(ka, kb) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, kb := range b {
		found := false
		for _, ka := range a {
			if eq(ka, kb) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// SequencesSame reports whether two chord sequences are pairwise Same,
// in order (key_chord.rs's key_chord_vectors_are_same).
func SequencesSame(a, b []KeyChord) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Same(b[i]) {
			return false
		}
	}
	return true
}
