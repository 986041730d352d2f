package midi

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/leandrodaf/chordie/internal/transport/mididarwin"
	"github.com/leandrodaf/chordie/internal/transport/midirtmidi"
	"github.com/leandrodaf/chordie/internal/transport/midiwindows"
	"github.com/leandrodaf/chordie/sdk/contracts"
)

// ErrUnsupportedOS is returned when the operating system has no MIDI transport.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// transportInitializers maps OS names to their native MIDI transports.
// The BSDs and Linux go through rtmidi; anything else is unsupported.
var transportInitializers = map[string]contracts.TransportFactory{
	"darwin":  mididarwin.NewTransport,  // macOS CoreMIDI.
	"windows": midiwindows.NewTransport, // Windows winmm.
	"linux":   midirtmidi.NewTransport,  // ALSA through rtmidi.
	"freebsd": midirtmidi.NewTransport,
	"openbsd": midirtmidi.NewTransport,
	"netbsd":  midirtmidi.NewTransport,
}

// platformTransport picks the transport for the current operating system.
func platformTransport() (contracts.TransportFactory, error) {
	return transportFor(runtime.GOOS)
}

func transportFor(goos string) (contracts.TransportFactory, error) {
	if factory, exists := transportInitializers[goos]; exists {
		return factory, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, goos)
}
