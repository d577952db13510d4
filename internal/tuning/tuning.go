// Package tuning resolves MIDI note numbers to frequencies. The default is
// twelve-tone equal temperament; microtonal scales can be loaded from Scala
// .scl files.
package tuning

import "math"

// Resolver maps a note number to its frequency in Hz. Implementations must
// be cheap enough to call synchronously from the frame loop.
type Resolver interface {
	NoteFrequency(note uint8) float64
}

// EqualTemperament is standard 12-TET tuning around concert A.
type EqualTemperament struct {
	// A4 is the frequency of MIDI note 69. Zero means 440 Hz.
	A4 float64
}

func (et EqualTemperament) NoteFrequency(note uint8) float64 {
	a4 := et.A4
	if a4 <= 0 {
		a4 = 440
	}
	return a4 * math.Pow(2, (float64(note)-69)/12)
}
