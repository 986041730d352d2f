package midi

import (
	"github.com/leandrodaf/chordie/internal/bus"
	"github.com/leandrodaf/chordie/internal/logger"
	"github.com/leandrodaf/chordie/sdk/contracts"
)

// applyDefaultOptions sets default values for ClientOptions if not explicitly provided.
//
// opts ...contracts.Option: A variadic list of option functions that can modify ClientOptions.
//
// Returns:
//   - contracts.ClientOptions: A structure containing the finalized client options with defaults applied.
//   - error: An error if there was an issue applying the options.
func applyDefaultOptions(opts ...contracts.Option) (contracts.ClientOptions, error) {
	options := &contracts.ClientOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.LogLevel == 0 {
		options.LogLevel = contracts.InfoLevel
	}
	if options.ClientName == "" {
		options.ClientName = contracts.DefaultClientName
	}
	if options.EventName == "" {
		options.EventName = contracts.DefaultEventName
	}
	if options.Emitter == nil {
		options.Emitter = bus.Discard{}
	}
	if options.Transport == nil {
		transport, err := platformTransport()
		if err != nil {
			return contracts.ClientOptions{}, err
		}
		options.Transport = transport
	}

	options.Logger.SetLevel(options.LogLevel)
	if options.LogFilePath != "" {
		options.Logger.SetDestination(contracts.FileLog, options.LogFilePath)
	}
	return *options, nil
}
