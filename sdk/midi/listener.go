package midi

import (
	"fmt"
	"sync"

	"github.com/leandrodaf/chordie/internal/notes"
	"github.com/leandrodaf/chordie/internal/slot"
	"github.com/leandrodaf/chordie/sdk/contracts"
	"go.uber.org/multierr"
)

// Client lists MIDI inputs and forwards held notes from the selected one.
// At most one input is connected at a time.
type Client struct {
	logger    contracts.Logger
	options   *contracts.ClientOptions
	transport contracts.TransportFactory
	emitter   contracts.Emitter
	eventName string
	observer  contracts.MessageObserver
	active    slot.Slot
}

// NewClient builds a Client from fully populated options. Most callers want
// NewMIDIClient, which fills in defaults first.
func NewClient(options *contracts.ClientOptions) *Client {
	return &Client{
		logger:    options.Logger,
		options:   options,
		transport: options.Transport,
		emitter:   options.Emitter,
		eventName: options.EventName,
		observer:  options.Observer,
	}
}

// ListDevices returns every MIDI input port in transport order. A port whose
// name cannot be resolved is reported as contracts.UnknownDeviceName.
func (c *Client) ListDevices() ([]contracts.DeviceInfo, error) {
	transport, err := c.openTransport()
	if err != nil {
		return nil, err
	}
	defer c.closeTransport(transport)

	ports, err := transport.Ports()
	if err != nil {
		c.logger.Error("Failed to list MIDI ports", c.logger.Field().Error("error", err))
		return nil, fmt.Errorf("%w: %v", contracts.ErrTransportInit, err)
	}

	devices := make([]contracts.DeviceInfo, len(ports))
	for i, port := range ports {
		devices[i] = contracts.DeviceInfo{Index: i, Name: c.portName(i, port)}
	}
	return devices, nil
}

// Listen connects to the input at portIndex and starts emitting held-note
// snapshots. A successful Listen replaces and closes the previous connection;
// a failed one leaves it untouched.
func (c *Client) Listen(portIndex int) error {
	transport, err := c.openTransport()
	if err != nil {
		return err
	}

	ports, err := transport.Ports()
	if err != nil {
		c.closeTransport(transport)
		c.logger.Error("Failed to list MIDI ports", c.logger.Field().Error("error", err))
		return fmt.Errorf("%w: %v", contracts.ErrTransportInit, err)
	}
	if portIndex < 0 || portIndex >= len(ports) {
		c.closeTransport(transport)
		rangeErr := &contracts.PortRangeError{Index: portIndex, Available: len(ports)}
		c.logger.Error(rangeErr.Error())
		return rangeErr
	}

	port := ports[portIndex]
	name := c.portName(portIndex, port)

	conn, err := transport.Connect(port, c.handler(notes.NewTracker()))
	if err != nil {
		c.closeTransport(transport)
		c.logger.Error("Failed to connect to MIDI port",
			c.logger.Field().Int("portIndex", portIndex),
			c.logger.Field().String("portName", name),
			c.logger.Field().Error("error", err))
		return fmt.Errorf("%w: %v", contracts.ErrConnect, err)
	}

	handle := &listenConnection{conn: conn, transport: transport}
	if old := c.active.Replace(handle); old != nil {
		if err := old.Close(); err != nil {
			c.logger.Warn("Failed to close previous MIDI connection", c.logger.Field().Error("error", err))
		}
	}

	c.logger.Info("Listening to MIDI port",
		c.logger.Field().Int("portIndex", portIndex),
		c.logger.Field().String("portName", name))
	return nil
}

// Stop closes the active connection. It is a no-op when nothing is connected.
func (c *Client) Stop() error {
	conn := c.active.Take()
	if conn == nil {
		c.logger.Debug("Stop called with no active MIDI connection")
		return nil
	}
	if err := conn.Close(); err != nil {
		c.logger.Error("Failed to close MIDI connection", c.logger.Field().Error("error", err))
		return fmt.Errorf("failed to close MIDI connection: %w", err)
	}
	c.logger.Info("MIDI connection closed")
	return nil
}

// Listening reports whether a connection is active.
func (c *Client) Listening() bool {
	return c.active.Active()
}

// handler runs on the transport's thread. It must not block, so emit errors
// are only logged at debug level and counted.
func (c *Client) handler(tracker *notes.Tracker) contracts.MessageHandler {
	return func(raw []byte) {
		kind, snapshot, ok := tracker.Apply(raw)
		if c.observer != nil {
			c.observer.ObserveMessage(kind.String(), tracker.Len())
		}
		if !ok {
			return
		}

		debug := c.logger.Enabled(contracts.DebugLevel)
		if debug {
			c.logger.Debug("Held notes changed",
				c.logger.Field().String("kind", kind.String()),
				c.logger.Field().Ints("held", snapshot))
		}

		if err := c.emitter.Emit(c.eventName, snapshot); err != nil {
			if c.observer != nil {
				c.observer.ObserveEmitFailure()
			}
			if debug {
				c.logger.Debug("Held-note snapshot not delivered", c.logger.Field().Error("error", err))
			}
		}
	}
}

func (c *Client) openTransport() (contracts.Transport, error) {
	transport, err := c.transport(c.options)
	if err != nil {
		c.logger.Error("Failed to initialize MIDI transport", c.logger.Field().Error("error", err))
		return nil, fmt.Errorf("%w: %v", contracts.ErrTransportInit, err)
	}
	return transport, nil
}

func (c *Client) closeTransport(transport contracts.Transport) {
	if err := transport.Close(); err != nil {
		c.logger.Warn("Failed to close MIDI transport", c.logger.Field().Error("error", err))
	}
}

func (c *Client) portName(index int, port contracts.Port) string {
	name, err := port.Name()
	if err != nil || name == "" {
		c.logger.Warn("Could not resolve MIDI port name",
			c.logger.Field().Int("portIndex", index),
			c.logger.Field().Error("error", err))
		return contracts.UnknownDeviceName
	}
	return name
}

// listenConnection owns a transport connection together with the transport
// instance it was opened on.
type listenConnection struct {
	once      sync.Once
	conn      contracts.Connection
	transport contracts.Transport
	err       error
}

func (l *listenConnection) Close() error {
	l.once.Do(func() {
		l.err = multierr.Append(l.conn.Close(), l.transport.Close())
	})
	return l.err
}
