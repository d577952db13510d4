// Package notetable holds the set of currently sounding notes and their
// angular positions on the pitch circle. The table is written only by the
// frame loop and read back within the same frame, so it needs no locking.
package notetable

import "math"

// Capacity is the maximum number of simultaneously displayed notes.
const Capacity = 16

// FrequencyFunc resolves a MIDI note number to its tuned frequency in Hz.
type FrequencyFunc func(note uint8) float64

// Table is a fixed-capacity mapping from note number to pitch-circle angle,
// iterated in ascending note order. Iteration order is part of the contract:
// downstream point and edge indices rely on it being stable within a frame.
//
// A note's angle is computed once at note-on and held until the note is
// removed. Angles of octave-related notes coincide modulo 2*pi; that is the
// intended octave-equivalence property of the pitch circle.
type Table struct {
	freq FrequencyFunc
	ref  float64

	n      int
	notes  [Capacity]uint8
	angles [Capacity]float64
}

// New returns an empty table. ref is the reference frequency placed at angle
// zero (concert A, typically 440 Hz).
func New(freq FrequencyFunc, ref float64) *Table {
	return &Table{freq: freq, ref: ref}
}

// NoteOn applies a note-on event.
//
// A velocity of zero is treated as a note-off; some controllers send those
// instead of real note-off messages. When the table is full a new note is
// silently ignored: notes already on screen keep their slot.
func (t *Table) NoteOn(note uint8, velocity uint8) {
	if velocity == 0 {
		t.NoteOff(note)
		return
	}
	i, ok := t.find(note)
	if !ok {
		if t.n == Capacity {
			return
		}
		copy(t.notes[i+1:t.n+1], t.notes[i:t.n])
		copy(t.angles[i+1:t.n+1], t.angles[i:t.n])
		t.notes[i] = note
		t.n++
	}
	t.angles[i] = t.angle(note)
}

// NoteOff removes note if present.
func (t *Table) NoteOff(note uint8) {
	i, ok := t.find(note)
	if !ok {
		return
	}
	copy(t.notes[i:t.n-1], t.notes[i+1:t.n])
	copy(t.angles[i:t.n-1], t.angles[i+1:t.n])
	t.n--
}

// Len returns the number of active notes. Always <= Capacity.
func (t *Table) Len() int { return t.n }

// Angles appends the active notes' angles to dst in ascending note order.
func (t *Table) Angles(dst []float64) []float64 {
	return append(dst, t.angles[:t.n]...)
}

// Notes appends the active note numbers to dst in ascending order.
func (t *Table) Notes(dst []uint8) []uint8 {
	return append(dst, t.notes[:t.n]...)
}

// angle maps a note to radians on the pitch circle: one full turn per
// octave, with the reference frequency at angle zero. The result is reduced
// into [0, 2pi) so octave-related notes get identical angles.
func (t *Table) angle(note uint8) float64 {
	a := math.Mod(2*math.Pi*math.Log2(t.freq(note)/t.ref), 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// find returns the index of note, or the index at which it would be
// inserted to keep ascending order.
func (t *Table) find(note uint8) (int, bool) {
	for i := 0; i < t.n; i++ {
		if t.notes[i] == note {
			return i, true
		}
		if t.notes[i] > note {
			return i, false
		}
	}
	return t.n, false
}
