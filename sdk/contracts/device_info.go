package contracts

// UnknownDeviceName is reported for ports whose name the transport cannot resolve.
const UnknownDeviceName = "Unknown Device"

// DeviceInfo describes one MIDI input port as presented to the UI.
type DeviceInfo struct {
	Index int    `json:"index"` // Zero-based position in the transport's port list.
	Name  string `json:"name"`  // Human-readable port name.
}
