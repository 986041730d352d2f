package midiwindows

import "github.com/leandrodaf/chordie/internal/notes"

// unpackShortMessage extracts the meaningful bytes of a winmm short message,
// which packs status and data bytes into the low three bytes of a DWORD.
func unpackShortMessage(param uintptr) []byte {
	raw := []byte{byte(param), byte(param >> 8), byte(param >> 16)}
	return raw[:max(notes.MessageLength(raw[0]), 1)]
}
