package contracts

// MessageHandler receives one raw MIDI message. Transports invoke it serially
// for a given connection, from a goroutine or thread they own.
type MessageHandler func(raw []byte)

// Port is an input port as listed by a Transport.
type Port interface {
	// Name returns the port's human-readable name.
	Name() (string, error)
}

// Connection is an open MIDI input stream.
type Connection interface {
	Close() error
}

// Transport wraps a platform MIDI library.
type Transport interface {
	Ports() ([]Port, error)
	Connect(port Port, handler MessageHandler) (Connection, error)
	Close() error
}

// TransportFactory initializes a Transport. Each call returns a fresh instance.
type TransportFactory func(opts *ClientOptions) (Transport, error)
