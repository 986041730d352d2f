package notes

import (
	"reflect"
	"testing"
)

func TestMessageLength(t *testing.T) {
	tests := []struct {
		status byte
		want   int
	}{
		{0x80, 3},
		{0x9F, 3},
		{0xB0, 3},
		{0xC3, 2},
		{0xD0, 2},
		{0xE0, 3},
		{0xF0, 0},
		{0xF1, 2},
		{0xF2, 3},
		{0xF3, 2},
		{0xF6, 1},
		{0xF7, 1},
		{0xF8, 1},
		{0xFE, 1},
	}
	for _, tt := range tests {
		if got := MessageLength(tt.status); got != tt.want {
			t.Errorf("MessageLength(%#x) = %d, want %d", tt.status, got, tt.want)
		}
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want [][]byte
	}{
		{"empty", nil, nil},
		{"single note on", []byte{0x90, 60, 100}, [][]byte{{0x90, 60, 100}}},
		{
			"two note ons",
			[]byte{0x90, 60, 100, 0x90, 64, 100},
			[][]byte{{0x90, 60, 100}, {0x90, 64, 100}},
		},
		{
			"program change between notes",
			[]byte{0x90, 60, 100, 0xC0, 5, 0x80, 60, 0},
			[][]byte{{0x90, 60, 100}, {0xC0, 5}, {0x80, 60, 0}},
		},
		{
			"running status",
			[]byte{0x90, 60, 100, 64, 100, 67, 0},
			[][]byte{{0x90, 60, 100}, {0x90, 64, 100}, {0x90, 67, 0}},
		},
		{
			"realtime inside running status",
			[]byte{0x90, 60, 100, 0xF8, 64, 100},
			[][]byte{{0x90, 60, 100}, {0xF8}, {0x90, 64, 100}},
		},
		{
			"sysex then note",
			[]byte{0xF0, 0x7E, 0x7F, 0x06, 0x01, 0xF7, 0x90, 60, 100},
			[][]byte{{0xF0, 0x7E, 0x7F, 0x06, 0x01, 0xF7}, {0x90, 60, 100}},
		},
		{
			"unterminated sysex",
			[]byte{0xF0, 0x7E, 0x01},
			[][]byte{{0xF0, 0x7E, 0x01}},
		},
		{
			"sysex cancels running status",
			[]byte{0x90, 60, 100, 0xF0, 0x01, 0xF7, 64, 100},
			[][]byte{{0x90, 60, 100}, {0xF0, 0x01, 0xF7}},
		},
		{"stray data bytes", []byte{60, 100, 0x80, 60, 0}, [][]byte{{0x80, 60, 0}}},
		{"truncated tail", []byte{0x90, 60, 100, 0x80, 60}, [][]byte{{0x90, 60, 100}, {0x80, 60}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got [][]byte
			Split(tt.data, func(msg []byte) {
				got = append(got, append([]byte(nil), msg...))
			})
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split(%x) = %x, want %x", tt.data, got, tt.want)
			}
		})
	}
}

func TestSplitFeedsTrackerEveryNote(t *testing.T) {
	tr := NewTracker()
	Split([]byte{0x90, 60, 100, 0x90, 64, 100}, func(msg []byte) {
		tr.OnMessage(msg)
	})

	if got := tr.Held(); !reflect.DeepEqual(got, held(60, 64)) {
		t.Errorf("held = %v, want [60 64]", got)
	}
}
