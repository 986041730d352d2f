package contracts

import (
	"errors"
	"fmt"
)

// Errors surfaced by ClientMIDI operations.
var (
	ErrTransportInit = errors.New("failed to initialize MIDI transport")
	ErrPortRange     = errors.New("MIDI port index out of range")
	ErrConnect       = errors.New("failed to connect to MIDI port")
)

// PortRangeError reports a port index that does not exist among the
// currently enumerated ports. It matches ErrPortRange with errors.Is.
type PortRangeError struct {
	Index     int // Requested port index.
	Available int // Number of ports at the time of the request.
}

func (e *PortRangeError) Error() string {
	return fmt.Sprintf("port index %d out of range (%d ports available)", e.Index, e.Available)
}

// Is makes errors.Is(err, ErrPortRange) hold for any *PortRangeError.
func (e *PortRangeError) Is(target error) bool {
	return target == ErrPortRange
}
