package notes

import "strconv"

var pitchClasses = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Name renders a MIDI key in scientific pitch notation, where 60 is C4.
func Name(key int) string {
	if key < 0 || key > 127 {
		return "N" + strconv.Itoa(key)
	}
	return pitchClasses[key%12] + strconv.Itoa(key/12-1)
}

// Names renders every key in keys.
func Names(keys []int) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = Name(k)
	}
	return out
}
