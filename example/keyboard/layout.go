package main

import (
	"strings"

	"github.com/leandrodaf/chordie/internal/notes"
	"github.com/leandrodaf/chordie/sdk/contracts"
)

// Range of an 88-key piano.
const (
	lowKey  = 21
	highKey = 108
)

// Cell is one terminal column of the drawn keyboard.
type Cell struct {
	Key   int
	Black bool
}

// Layout returns one cell per key from low to high inclusive.
func Layout(low, high int) []Cell {
	if high < low {
		return nil
	}
	cells := make([]Cell, 0, high-low+1)
	for k := low; k <= high; k++ {
		cells = append(cells, Cell{Key: k, Black: isBlack(k)})
	}
	return cells
}

func isBlack(key int) bool {
	switch key % 12 {
	case 1, 3, 6, 8, 10:
		return true
	}
	return false
}

// Labels returns the text lines drawn under the keyboard.
func Labels(held contracts.HeldNotes) []string {
	return []string{
		"Chord: " + notes.DetectChord(held, false),
		"Held: " + strings.Join(notes.Names(held), " ") + "   (q to quit)",
	}
}
