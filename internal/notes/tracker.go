// Package notes tracks which keys are held down on a MIDI input connection.
package notes

import (
	"sort"

	"github.com/leandrodaf/chordie/sdk/contracts"
)

// MIDI channel voice message types, with the channel nibble masked off.
const (
	statusNoteOff byte = 0x80
	statusNoteOn  byte = 0x90
	statusMask    byte = 0xF0
)

// Kind is the classification of a raw MIDI message.
type Kind int

const (
	// KindShort is any message shorter than three bytes.
	KindShort Kind = iota
	// KindNoteOn is a Note On with non-zero velocity.
	KindNoteOn
	// KindNoteOff is a Note Off, or a Note On with zero velocity.
	KindNoteOff
	// KindOther is every other status; it leaves the held set untouched.
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindShort:
		return "short"
	case KindNoteOn:
		return "note_on"
	case KindNoteOff:
		return "note_off"
	default:
		return "other"
	}
}

// Classify inspects the status and velocity bytes of raw.
func Classify(raw []byte) Kind {
	if len(raw) < 3 {
		return KindShort
	}
	kind, velocity := raw[0]&statusMask, raw[2]
	switch {
	case kind == statusNoteOn && velocity > 0:
		return KindNoteOn
	case kind == statusNoteOff, kind == statusNoteOn && velocity == 0:
		return KindNoteOff
	default:
		return KindOther
	}
}

// Tracker holds the set of currently pressed keys for one connection.
// It is not safe for concurrent use; transports deliver messages serially.
type Tracker struct {
	held map[uint8]struct{}
}

// NewTracker returns a tracker with nothing held.
func NewTracker() *Tracker {
	return &Tracker{held: make(map[uint8]struct{})}
}

// OnMessage applies raw to the held set. It reports a snapshot and true when
// raw is a Note On or Note Off, even if the set did not change. Every other
// input leaves the set untouched and reports false.
func (t *Tracker) OnMessage(raw []byte) (contracts.HeldNotes, bool) {
	_, snapshot, ok := t.Apply(raw)
	return snapshot, ok
}

// Apply is OnMessage that also returns the classification of raw.
func (t *Tracker) Apply(raw []byte) (Kind, contracts.HeldNotes, bool) {
	kind := Classify(raw)
	switch kind {
	case KindNoteOn:
		t.held[raw[1]] = struct{}{}
	case KindNoteOff:
		delete(t.held, raw[1])
	default:
		return kind, nil, false
	}
	return kind, t.Held(), true
}

// Held returns the held keys in ascending order.
func (t *Tracker) Held() contracts.HeldNotes {
	snapshot := make(contracts.HeldNotes, 0, len(t.held))
	for key := range t.held {
		snapshot = append(snapshot, int(key))
	}
	sort.Ints(snapshot)
	return snapshot
}

// Len returns the number of held keys.
func (t *Tracker) Len() int {
	return len(t.held)
}
