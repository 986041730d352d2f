package contracts

// HeldNotes is a snapshot of the note keys currently pressed on a connection.
// It is an []int rather than []byte so that it serializes as a JSON list.
type HeldNotes []int

// ClientMIDI defines the operations exposed to the host application.
type ClientMIDI interface {
	ListDevices() ([]DeviceInfo, error) // Lists the available MIDI input ports.
	Listen(portIndex int) error         // Connects to a port, replacing any active connection.
	Stop() error                        // Closes the active connection, if any.
	Listening() bool                    // Reports whether a connection is active.
}

// Emitter delivers held-note snapshots to whatever UI layer is listening.
type Emitter interface {
	Emit(event string, notes HeldNotes) error
}
