// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package chord

import (
	"testing"

	"github.com/chordkit/chordkit/internal/action"
)

func chord(mods []int32, key int32) KeyChord {
	ks := make([]Key, len(mods))
	for i, m := range mods {
		ks[i] = NewLoneKey(m)
	}
	return New(ks, NewLoneKey(key))
}

func TestSingleChordExcitesImmediately(t *testing.T) {
	m := NewMachine()
	act := action.KeyPressAction(7)
	if err := m.Add([]KeyChord{chord(nil, 1)}, act); err != nil {
		t.Fatal(err)
	}
	r := m.Feed(chord(nil, 1))
	if r.Outcome != Excited || r.Action != act {
		t.Fatalf("got %+v; want Excited(%+v)", r, act)
	}
}

func TestPrefixTransitionsThenExcites(t *testing.T) {
	m := NewMachine()
	act := action.KeyPressAction(7)
	seq := []KeyChord{chord(nil, 1), chord(nil, 2)}
	if err := m.Add(seq, act); err != nil {
		t.Fatal(err)
	}
	r1 := m.Feed(seq[0])
	if r1.Outcome != Transition {
		t.Fatalf("first chord = %+v; want Transition", r1)
	}
	r2 := m.Feed(seq[1])
	if r2.Outcome != Excited || r2.Action != act {
		t.Fatalf("second chord = %+v; want Excited", r2)
	}
}

func TestBrokenPrefixFallsBackWithAccumulated(t *testing.T) {
	m := NewMachine()
	seq := []KeyChord{chord(nil, 1), chord(nil, 2)}
	if err := m.Add(seq, action.KeyPressAction(7)); err != nil {
		t.Fatal(err)
	}
	if r := m.Feed(seq[0]); r.Outcome != Transition {
		t.Fatalf("got %+v; want Transition", r)
	}
	r := m.Feed(chord(nil, 99))
	if r.Outcome != Fallback {
		t.Fatalf("got %+v; want Fallback", r)
	}
	if len(r.Chords) != 2 || !r.Chords[0].Equal(seq[0]) || !r.Chords[1].Equal(chord(nil, 99)) {
		t.Fatalf("fallback chords = %+v; want [seq[0], mismatching chord]", r.Chords)
	}
}

func TestUnmatchedChordAtRootFallsBackAlone(t *testing.T) {
	m := NewMachine()
	r := m.Feed(chord(nil, 42))
	if r.Outcome != Fallback || len(r.Chords) != 1 {
		t.Fatalf("got %+v; want Fallback([chord])", r)
	}
}

func TestMachineResetsAfterExcitedOrFallback(t *testing.T) {
	m := NewMachine()
	act := action.KeyPressAction(7)
	seq := []KeyChord{chord(nil, 1), chord(nil, 2)}
	if err := m.Add(seq, act); err != nil {
		t.Fatal(err)
	}
	m.Feed(seq[0])
	m.Feed(chord(nil, 99)) // fallback, resets to root

	// Feeding the sequence again from scratch must excite, proving the
	// state machine returned to root rather than staying mid-prefix.
	m.Feed(seq[0])
	r := m.Feed(seq[1])
	if r.Outcome != Excited {
		t.Fatalf("got %+v; want Excited after reset", r)
	}
}

func TestAddRejectsShadowingTerminal(t *testing.T) {
	m := NewMachine()
	short := []KeyChord{chord(nil, 1)}
	long := []KeyChord{chord(nil, 1), chord(nil, 2)}
	if err := m.Add(short, action.KeyPressAction(1)); err != nil {
		t.Fatal(err)
	}
	if err := m.Add(long, action.KeyPressAction(2)); err != ErrShadowed {
		t.Fatalf("err = %v; want ErrShadowed", err)
	}
}

func TestAddRejectsBeingShadowedByExistingLongerBinding(t *testing.T) {
	m := NewMachine()
	long := []KeyChord{chord(nil, 1), chord(nil, 2)}
	short := []KeyChord{chord(nil, 1)}
	if err := m.Add(long, action.KeyPressAction(1)); err != nil {
		t.Fatal(err)
	}
	if err := m.Add(short, action.KeyPressAction(2)); err != ErrShadowed {
		t.Fatalf("err = %v; want ErrShadowed", err)
	}
}

func TestAddRejectsEmptySequence(t *testing.T) {
	m := NewMachine()
	if err := m.Add(nil, action.KeyPressAction(1)); err != ErrEmptySequence {
		t.Fatalf("err = %v; want ErrEmptySequence", err)
	}
}
