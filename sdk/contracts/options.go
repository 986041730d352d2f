package contracts

// Defaults applied when an option is not provided.
const (
	DefaultClientName = "chordie-input"
	DefaultEventName  = "midi_held_notes"
)

// MessageObserver is notified for every raw message a connection receives,
// after classification. Implementations must not block.
type MessageObserver interface {
	ObserveMessage(kind string, held int)
	ObserveEmitFailure()
}

// ClientOptions defines the configuration options for the MIDI client.
type ClientOptions struct {
	Logger      Logger           // Logger for logging events and errors.
	LogLevel    LogLevel         // Level of logging to use.
	LogFilePath string           // File path for logging if file logging is enabled.
	ClientName  string           // Name announced to the platform MIDI subsystem.
	Emitter     Emitter          // Destination for held-note snapshots.
	EventName   string           // Event name snapshots are emitted under.
	Transport   TransportFactory // Overrides the OS transport.
	Observer    MessageObserver  // Optional metrics sink for the message path.
}

// Option is a function that modifies ClientOptions.
type Option func(*ClientOptions)

// WithLogger sets the logger for the MIDI client.
func WithLogger(l Logger) Option {
	return func(opts *ClientOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the MIDI client.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ClientOptions) {
		opts.LogLevel = level
	}
}

// WithLogFilePath sends log output to the given file instead of the console.
func WithLogFilePath(path string) Option {
	return func(opts *ClientOptions) {
		opts.LogFilePath = path
	}
}

// WithClientName sets the client name registered with the MIDI subsystem.
func WithClientName(name string) Option {
	return func(opts *ClientOptions) {
		opts.ClientName = name
	}
}

// WithEmitter sets where held-note snapshots are delivered.
func WithEmitter(e Emitter) Option {
	return func(opts *ClientOptions) {
		opts.Emitter = e
	}
}

// WithEventName sets the event name snapshots are emitted under.
func WithEventName(name string) Option {
	return func(opts *ClientOptions) {
		opts.EventName = name
	}
}

// WithTransport replaces the platform transport.
func WithTransport(factory TransportFactory) Option {
	return func(opts *ClientOptions) {
		opts.Transport = factory
	}
}

// WithObserver attaches a metrics sink to the message path.
func WithObserver(o MessageObserver) Option {
	return func(opts *ClientOptions) {
		opts.Observer = o
	}
}
