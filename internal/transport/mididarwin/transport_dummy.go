//go:build !darwin
// +build !darwin

package mididarwin

import (
	"fmt"

	"github.com/leandrodaf/chordie/sdk/contracts"
)

// NewTransport fails on systems without CoreMIDI.
func NewTransport(options *contracts.ClientOptions) (contracts.Transport, error) {
	options.Logger.Warn("CoreMIDI transport requested on non-macOS system")
	return nil, fmt.Errorf("CoreMIDI is not available on this platform")
}
