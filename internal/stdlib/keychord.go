// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stdlib

import (
	"github.com/chordkit/chordkit/internal/chord"
	"github.com/chordkit/chordkit/internal/eval"
	"github.com/chordkit/chordkit/internal/object"
	"github.com/chordkit/chordkit/internal/value"
)

// keyToListValue encodes a Key the way original_source's
// key_chord_to_list.rs does: a lone key is a bare integer, a
// device-scoped key is the two-element list (device-id key-id).
func keyToListValue(it *eval.Interp, k chord.Key) value.Value {
	if !k.HasDevice {
		return value.Int(int64(k.KeyID))
	}
	return it.Cons.List(it.NilValue(), value.Int(int64(k.DeviceID)), value.Int(int64(k.KeyID)))
}

// listValueAsKey decodes one key-chord-list element: a bare integer is a
// lone key, a two-element list is (device-id key-id).
func listValueAsKey(it *eval.Interp, v value.Value) (chord.Key, bool) {
	switch v.Kind() {
	case value.Integer:
		return chord.NewLoneKey(int32(v.AsInt())), true
	case value.Cons:
		parts, ok := it.Cons.ToSlice(v, it.NilSym)
		if !ok || len(parts) != 2 {
			return chord.Key{}, false
		}
		if parts[0].Kind() != value.Integer || parts[1].Kind() != value.Integer {
			return chord.Key{}, false
		}
		return chord.NewDeviceKey(int32(parts[0].AsInt()), int32(parts[1].AsInt())), true
	default:
		return chord.Key{}, false
	}
}

// biKeyChordToList implements `key-chord->list`: given a key chord
// object (as produced by list->key-chord, or hand-built with :modifiers
// and :key properties), flattens it into a list of modifier encodings
// followed by the trigger key's encoding, trigger last
// (original_source's key_chord_to_list.rs / key_chord_part_to_list.rs).
func biKeyChordToList(it *eval.Interp, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return arityError(1, len(args), "key-chord->list")
	}
	kc, ok := valueAsKeyChord(it, args[0])
	if !ok {
		return invalidArgError("key-chord->list expects a key chord object")
	}
	elems := make([]value.Value, 0, len(kc.Modifiers)+1)
	for _, m := range kc.Modifiers {
		elems = append(elems, keyToListValue(it, m))
	}
	elems = append(elems, keyToListValue(it, kc.Key))
	return it.Cons.List(it.NilValue(), elems...), nil
}

// biListToKeyChord is the inverse of biKeyChordToList: the last element
// of the list is the trigger key, every earlier element is a modifier
// (original_source's read_as_key_chord.rs). The result is a plain
// object carrying :modifiers (a list of key encodings) and :key (the
// trigger's encoding), the same shape biKeyChordToList reads back.
func biListToKeyChord(it *eval.Interp, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return arityError(1, len(args), "list->key-chord")
	}
	elems, ok := it.Cons.ToSlice(args[0], it.NilSym)
	if !ok || len(elems) == 0 {
		return invalidArgError("list->key-chord expects a non-empty proper list")
	}
	for _, e := range elems {
		if _, ok := listValueAsKey(it, e); !ok {
			return invalidArgError("list->key-chord: each element must be an integer or a (device-id key-id) pair")
		}
	}
	modifiers := it.Cons.List(it.NilValue(), elems[:len(elems)-1]...)
	trigger := elems[len(elems)-1]

	objVal := it.Objects.Alloc()
	modSym := it.Symbols.Intern("modifiers")
	keySym := it.Symbols.Intern("key")
	if err := it.Objects.Define(objVal.ID(), modSym, modifiers, object.Default); err != nil {
		return invalidArgError("list->key-chord: failed to build result object")
	}
	if err := it.Objects.Define(objVal.ID(), keySym, trigger, object.Default); err != nil {
		return invalidArgError("list->key-chord: failed to build result object")
	}
	return objVal, nil
}

// valueAsKeyChord reads the :modifiers/:key properties off a key chord
// object (as produced by biListToKeyChord) into a chord.KeyChord.
func valueAsKeyChord(it *eval.Interp, v value.Value) (chord.KeyChord, bool) {
	if v.Kind() != value.Object {
		return chord.KeyChord{}, false
	}
	modSym := it.Symbols.Intern("modifiers")
	keySym := it.Symbols.Intern("key")

	modVal, err := it.Objects.Get(v.ID(), modSym)
	if err != nil {
		return chord.KeyChord{}, false
	}
	keyVal, err := it.Objects.Get(v.ID(), keySym)
	if err != nil {
		return chord.KeyChord{}, false
	}
	modElems, ok := it.Cons.ToSlice(modVal, it.NilSym)
	if !ok {
		return chord.KeyChord{}, false
	}
	modifiers := make([]chord.Key, 0, len(modElems))
	for _, e := range modElems {
		k, ok := listValueAsKey(it, e)
		if !ok {
			return chord.KeyChord{}, false
		}
		modifiers = append(modifiers, k)
	}
	trigger, ok := listValueAsKey(it, keyVal)
	if !ok {
		return chord.KeyChord{}, false
	}
	return chord.New(modifiers, trigger), true
}
