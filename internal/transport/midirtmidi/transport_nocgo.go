//go:build !cgo

package midirtmidi

import (
	"errors"

	"github.com/leandrodaf/chordie/sdk/contracts"
)

// NewTransport fails: rtmidi is a C++ library and needs cgo.
func NewTransport(options *contracts.ClientOptions) (contracts.Transport, error) {
	options.Logger.Warn("rtmidi transport requires a cgo build")
	return nil, errors.New("rtmidi transport unavailable: built without cgo")
}
