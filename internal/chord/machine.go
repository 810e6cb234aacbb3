// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package chord

import (
	"errors"

	"github.com/chordkit/chordkit/internal/action"
)

// Mapping is an ordered sequence of KeyChords plus the Action it
// triggers (spec.md §3), grounded on Rust's Mapping domain type fed to
// nia_state_machine::StateMachine::add in nia_action_listener.rs.
type Mapping struct {
	Chords []KeyChord
	Action action.Descriptor
}

// ErrShadowed is returned by Add when inserting a binding would shadow
// an existing terminal, or an existing terminal lies along the path
// (spec.md §4.3: "fail if a terminal would be shadowed or an existing
// terminal is in the way").
var ErrShadowed = errors.New("chord: binding shadows or is shadowed by an existing terminal")

// ErrEmptySequence is returned by Add when given zero chords.
var ErrEmptySequence = errors.New("chord: mapping must bind at least one chord")

// Outcome tags which of the three results Feed produced (spec.md §4.3).
type Outcome uint8

const (
	// Transition means the input chord advanced a pending prefix; no
	// action fires yet.
	Transition Outcome = iota
	// Excited means the input chord completed a bound sequence; Action
	// carries the triggered descriptor.
	Excited
	// Fallback means the input chord broke (or never started) a
	// prefix; Chords carries every chord that must now be forwarded as
	// raw synthetic key events, in order.
	Fallback
)

// Result is what Feed returns for one input chord.
type Result struct {
	Outcome Outcome
	Action  action.Descriptor // valid iff Outcome == Excited
	Chords  []KeyChord         // valid iff Outcome == Fallback
}

type node struct {
	edges    []edge
	terminal bool
	action   action.Descriptor
}

type edge struct {
	chord KeyChord
	child *node
}

func (n *node) find(c KeyChord) *node {
	for _, e := range n.edges {
		if e.chord.Equal(c) {
			return e.child
		}
	}
	return nil
}

// Machine is the chord-sequence trie plus the in-progress match state
// (spec.md §4.3): a pointer into the trie and the FIFO of chords
// consumed on the current branch.
type Machine struct {
	root *node
	cur  *node
	fifo []KeyChord
}

// NewMachine returns an empty trie, state parked at the root.
func NewMachine() *Machine {
	r := &node{}
	return &Machine{root: r, cur: r}
}

// Add inserts a binding along seq, creating intermediate nodes as
// needed. It fails if a terminal already exists along the path short
// of seq's end (that terminal would be shadowed), or if seq's
// terminal node already has further children (an existing longer
// binding is in the way).
func (m *Machine) Add(seq []KeyChord, act action.Descriptor) error {
	if len(seq) == 0 {
		return ErrEmptySequence
	}
	n := m.root
	for i, c := range seq {
		if n.terminal {
			return ErrShadowed
		}
		child := n.find(c)
		if child == nil {
			child = &node{}
			n.edges = append(n.edges, edge{chord: c, child: child})
		}
		n = child
		if i == len(seq)-1 {
			if n.terminal || len(n.edges) > 0 {
				return ErrShadowed
			}
			n.terminal = true
			n.action = act
		}
	}
	return nil
}

// Feed advances the machine by one input chord (spec.md §4.3).
func (m *Machine) Feed(c KeyChord) Result {
	child := m.cur.find(c)
	if child == nil {
		var fallback []KeyChord
		if m.cur == m.root {
			fallback = []KeyChord{c}
		} else {
			fallback = append(append([]KeyChord(nil), m.fifo...), c)
		}
		m.reset()
		return Result{Outcome: Fallback, Chords: fallback}
	}

	if child.terminal {
		act := child.action
		m.reset()
		return Result{Outcome: Excited, Action: act}
	}

	m.cur = child
	m.fifo = append(m.fifo, c)
	return Result{Outcome: Transition}
}

func (m *Machine) reset() {
	m.cur = m.root
	m.fifo = nil
}

// BuildMachine constructs a fresh Machine from a snapshot of Mappings,
// used both to validate a candidate mapping set before accepting it
// (internal/command) and to build the trie a newly (re)started
// listener runs against (internal/eventloop).
func BuildMachine(mappings []Mapping) (*Machine, error) {
	m := NewMachine()
	for _, mp := range mappings {
		if err := m.Add(mp.Chords, mp.Action); err != nil {
			return nil, err
		}
	}
	return m, nil
}
