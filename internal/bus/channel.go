// Package bus delivers held-note snapshots to UI listeners.
package bus

import (
	"errors"

	"github.com/leandrodaf/chordie/sdk/contracts"
)

var (
	// ErrBufferFull is returned when a Channel has no room for another event.
	ErrBufferFull = errors.New("event buffer full; snapshot dropped")
	// ErrNoListeners is returned when a Hub has no attached clients.
	ErrNoListeners = errors.New("no listeners attached")
)

// Event is one emitted snapshot.
type Event struct {
	Name  string              `json:"event"`
	Notes contracts.HeldNotes `json:"payload"`
}

// Channel is an in-process emitter backed by a buffered Go channel.
type Channel struct {
	events chan Event
}

// NewChannel creates a Channel buffering up to size events.
func NewChannel(size int) *Channel {
	return &Channel{events: make(chan Event, size)}
}

// Events returns the receive side of the channel.
func (c *Channel) Events() <-chan Event {
	return c.events
}

// Emit queues the snapshot without blocking.
func (c *Channel) Emit(event string, notes contracts.HeldNotes) error {
	select {
	case c.events <- Event{Name: event, Notes: notes}:
		return nil
	default:
		return ErrBufferFull
	}
}

// Discard drops every snapshot.
type Discard struct{}

// Emit does nothing.
func (Discard) Emit(string, contracts.HeldNotes) error { return nil }
