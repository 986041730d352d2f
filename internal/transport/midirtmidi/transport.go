//go:build cgo

// Package midirtmidi connects to MIDI inputs through rtmidi, via gomidi.
package midirtmidi

import (
	"errors"
	"fmt"
	"sync"

	"github.com/leandrodaf/chordie/sdk/contracts"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

var (
	ErrUnnamedPort = errors.New("MIDI input has no name")
	ErrForeignPort = errors.New("port was not listed by the rtmidi transport")
)

// Transport owns one rtmidi driver instance.
type Transport struct {
	logger contracts.Logger
	drv    *rtmididrv.Driver
}

// NewTransport initializes the rtmidi driver.
func NewTransport(options *contracts.ClientOptions) (contracts.Transport, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("rtmididrv: %w", err)
	}
	return &Transport{logger: options.Logger, drv: drv}, nil
}

type inPort struct {
	in drivers.In
}

func (p inPort) Name() (string, error) {
	name := p.in.String()
	if name == "" {
		return "", ErrUnnamedPort
	}
	return name, nil
}

// Ports lists the driver's inputs.
func (t *Transport) Ports() ([]contracts.Port, error) {
	ins, err := t.drv.Ins()
	if err != nil {
		return nil, err
	}
	ports := make([]contracts.Port, len(ins))
	for i, in := range ins {
		ports[i] = inPort{in: in}
	}
	return ports, nil
}

// Connect opens the input and listens with system exclusive messages enabled,
// so every message the port produces reaches handler.
func (t *Transport) Connect(port contracts.Port, handler contracts.MessageHandler) (contracts.Connection, error) {
	p, ok := port.(inPort)
	if !ok {
		return nil, ErrForeignPort
	}
	if err := p.in.Open(); err != nil {
		return nil, fmt.Errorf("open %q: %w", p.in.String(), err)
	}

	stop, err := midi.ListenTo(p.in, func(msg midi.Message, _ int32) {
		handler(msg)
	}, midi.UseSysEx(), midi.HandleError(func(listenErr error) {
		t.logger.Debug("MIDI listener error",
			t.logger.Field().String("port", p.in.String()),
			t.logger.Field().Error("error", listenErr))
	}))
	if err != nil {
		_ = p.in.Close()
		return nil, fmt.Errorf("listen %q: %w", p.in.String(), err)
	}
	return &connection{in: p.in, stop: stop}, nil
}

// Close shuts the driver down, closing any port still open on it.
func (t *Transport) Close() error {
	return t.drv.Close()
}

type connection struct {
	once sync.Once
	in   drivers.In
	stop func()
}

func (c *connection) Close() error {
	var err error
	c.once.Do(func() {
		c.stop()
		err = c.in.Close()
	})
	return err
}
