//go:build !windows
// +build !windows

package midiwindows

import (
	"fmt"

	"github.com/leandrodaf/chordie/sdk/contracts"
)

// NewTransport fails on systems without winmm.
func NewTransport(options *contracts.ClientOptions) (contracts.Transport, error) {
	options.Logger.Warn("winmm transport requested on non-Windows system")
	return nil, fmt.Errorf("winmm is not available on this platform")
}
