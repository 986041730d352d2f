//go:build darwin
// +build darwin

package mididarwin

import (
	"errors"
	"fmt"
	"sync"

	"github.com/leandrodaf/chordie/internal/notes"
	"github.com/leandrodaf/chordie/sdk/contracts"
	"github.com/youpy/go-coremidi"
)

// Error definitions for CoreMIDI port handling.
var (
	ErrUnnamedSource   = errors.New("MIDI source has no name")
	ErrForeignPort     = errors.New("port was not listed by the CoreMIDI transport")
	ErrCreateInputPort = errors.New("error creating input port")
)

// internalPortConnection is the disconnect handle go-coremidi returns from Connect.
type internalPortConnection interface {
	Disconnect()
}

// Transport lists and connects CoreMIDI sources.
type Transport struct {
	logger contracts.Logger
	client coremidi.Client
	name   string
}

// NewTransport registers a CoreMIDI client under the configured client name.
func NewTransport(options *contracts.ClientOptions) (contracts.Transport, error) {
	client, err := coremidi.NewClient(options.ClientName)
	if err != nil {
		return nil, err
	}
	options.Logger.Debug("CoreMIDI client created", options.Logger.Field().String("clientName", options.ClientName))

	return &Transport{
		logger: options.Logger,
		client: client,
		name:   options.ClientName,
	}, nil
}

type sourcePort struct {
	source coremidi.Source
}

func (p sourcePort) Name() (string, error) {
	name := p.source.Name()
	if name == "" {
		return "", ErrUnnamedSource
	}
	return name, nil
}

// Ports lists every CoreMIDI source.
func (t *Transport) Ports() ([]contracts.Port, error) {
	sources, err := coremidi.AllSources()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI sources: %w", err)
	}

	ports := make([]contracts.Port, len(sources))
	for i, source := range sources {
		ports[i] = sourcePort{source: source}
	}
	return ports, nil
}

// Connect creates an input port and connects it to the source. A CoreMIDI
// packet may carry several messages; each is handed to handler on its own.
func (t *Transport) Connect(port contracts.Port, handler contracts.MessageHandler) (contracts.Connection, error) {
	p, ok := port.(sourcePort)
	if !ok {
		return nil, ErrForeignPort
	}

	inputPort, err := coremidi.NewInputPort(t.client, t.name+" input", func(_ coremidi.Source, packet coremidi.Packet) {
		notes.Split(packet.Data, handler)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateInputPort, err)
	}

	portConn, err := inputPort.Connect(p.source)
	if err != nil {
		return nil, err
	}
	return &connection{portConn: portConn}, nil
}

// Close is a no-op; go-coremidi does not expose client disposal.
func (t *Transport) Close() error {
	return nil
}

type connection struct {
	once     sync.Once
	portConn internalPortConnection
}

func (c *connection) Close() error {
	c.once.Do(c.portConn.Disconnect)
	return nil
}
