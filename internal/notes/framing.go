package notes

const (
	sysExStart = 0xF0
	sysExEnd   = 0xF7
)

// MessageLength returns how many bytes a MIDI message starting with status
// occupies. SysEx is variable length and reports 0.
func MessageLength(status byte) int {
	switch {
	case status == sysExStart:
		return 0
	case status&0xF0 == 0xC0, status&0xF0 == 0xD0, status == 0xF1, status == 0xF3:
		return 2
	case status >= 0xF4:
		return 1
	default:
		return 3
	}
}

// Split walks a buffer that may hold several MIDI messages back to back, as
// CoreMIDI packets do, and calls fn once per message. SysEx is passed through
// up to and including its 0xF7. Running status is expanded for channel
// messages; data bytes with no status to attach to are dropped. A truncated
// trailing message is passed as is and left for the tracker to reject.
func Split(data []byte, fn func(msg []byte)) {
	var running byte
	for i := 0; i < len(data); {
		status := data[i]

		if status < 0x80 {
			if running == 0 {
				i++
				continue
			}
			n := MessageLength(running) - 1
			end := min(i+n, len(data))
			fn(append([]byte{running}, data[i:end]...))
			i = end
			continue
		}

		if status == sysExStart {
			end := i + 1
			for end < len(data) && data[end] != sysExEnd {
				end++
			}
			end = min(end+1, len(data))
			fn(data[i:end])
			running = 0
			i = end
			continue
		}

		switch {
		case status < 0xF0:
			running = status
		case status < 0xF8:
			// System common cancels running status; realtime does not.
			running = 0
		}

		end := min(i+MessageLength(status), len(data))
		fn(data[i:end])
		i = end
	}
}
