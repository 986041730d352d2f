// Package slot holds the single active MIDI input connection.
package slot

import (
	"sync"

	"github.com/leandrodaf/chordie/sdk/contracts"
)

// Slot is a mutex-guarded register for at most one connection.
// The zero value is empty and ready to use.
type Slot struct {
	mu   sync.Mutex
	conn contracts.Connection
}

// Replace stores conn and returns the connection it displaced, if any.
// The caller owns the returned connection and must close it.
func (s *Slot) Replace(conn contracts.Connection) contracts.Connection {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.conn
	s.conn = conn
	return old
}

// Take empties the slot and returns what it held.
func (s *Slot) Take() contracts.Connection {
	return s.Replace(nil)
}

// Active reports whether the slot holds a connection.
func (s *Slot) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.conn != nil
}
