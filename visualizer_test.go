package chordagon

import (
	"math"
	"testing"

	"github.com/cbegin/chordagon-go/internal/eventqueue"
	"github.com/cbegin/chordagon-go/internal/tuning"
)

func newTestVisualizer(t *testing.T) *Visualizer {
	t.Helper()
	v, err := New(WithoutMIDI(), WithTuning(tuning.EqualTemperament{A4: 440}))
	if err != nil {
		t.Fatalf("new visualizer: %v", err)
	}
	return v
}

func TestStepAppliesNoteEvents(t *testing.T) {
	v := newTestVisualizer(t)

	v.Queue().Push(eventqueue.Event{Kind: eventqueue.NoteOn, Note: 60, Velocity: 100})
	v.step(0)
	if v.ActiveNotes() != 1 {
		t.Fatalf("active notes = %d, want 1", v.ActiveNotes())
	}
	if len(v.frame.Points) != 1 || len(v.frame.Edges) != 0 {
		t.Fatalf("frame has %d points, %d edges; want 1, 0", len(v.frame.Points), len(v.frame.Edges))
	}

	v.Queue().Push(eventqueue.Event{Kind: eventqueue.NoteOn, Note: 64, Velocity: 100})
	v.Queue().Push(eventqueue.Event{Kind: eventqueue.NoteOn, Note: 67, Velocity: 100})
	v.step(0.016)
	if v.ActiveNotes() != 3 {
		t.Fatalf("active notes = %d, want 3", v.ActiveNotes())
	}
	if len(v.frame.Points) != 3 || len(v.frame.Edges) != 3 {
		t.Fatalf("frame has %d points, %d edges; want 3, 3", len(v.frame.Points), len(v.frame.Edges))
	}
}

func TestStepWithNoEventsLeavesStateUnchanged(t *testing.T) {
	v := newTestVisualizer(t)
	v.Queue().Push(eventqueue.Event{Kind: eventqueue.NoteOn, Note: 60, Velocity: 100})
	v.step(0)

	before := v.ActiveNotes()
	v.step(1)
	v.step(2)
	if v.ActiveNotes() != before {
		t.Fatalf("active notes changed from %d to %d with no events", before, v.ActiveNotes())
	}
}

func TestVelocityZeroThroughQueueRemovesNote(t *testing.T) {
	v := newTestVisualizer(t)
	v.Queue().Push(eventqueue.Event{Kind: eventqueue.NoteOn, Note: 60, Velocity: 100})
	v.Queue().Push(eventqueue.Event{Kind: eventqueue.NoteOn, Note: 60, Velocity: 0})
	v.step(0)
	if v.ActiveNotes() != 0 {
		t.Fatalf("active notes = %d after velocity-0 note-on, want 0", v.ActiveNotes())
	}
}

func TestOctavePairEdgeHasColorZero(t *testing.T) {
	v := newTestVisualizer(t)
	v.Queue().Push(eventqueue.Event{Kind: eventqueue.NoteOn, Note: 57, Velocity: 100}) // 220 Hz
	v.Queue().Push(eventqueue.Event{Kind: eventqueue.NoteOn, Note: 81, Velocity: 100}) // 880 Hz
	v.step(0)
	if len(v.frame.Edges) != 1 {
		t.Fatalf("edges = %d, want 1", len(v.frame.Edges))
	}
	if c := v.frame.Edges[0].Color; c > 1e-12 {
		t.Fatalf("octave interval color = %v, want 0", c)
	}
}

func TestBurstBeyondCapacityIsBounded(t *testing.T) {
	v := newTestVisualizer(t)
	for n := 0; n < 64; n++ {
		v.Queue().Push(eventqueue.Event{Kind: eventqueue.NoteOn, Note: uint8(n), Velocity: 100})
	}
	v.step(0)
	if v.ActiveNotes() != MaxNotes {
		t.Fatalf("active notes = %d, want %d", v.ActiveNotes(), MaxNotes)
	}
	if len(v.frame.Edges) != MaxNotes*(MaxNotes-1)/2 {
		t.Fatalf("edges = %d, want %d", len(v.frame.Edges), MaxNotes*(MaxNotes-1)/2)
	}
}

func TestRotationAdvancesWithTime(t *testing.T) {
	v := newTestVisualizer(t)
	v.step(0)
	r0 := v.frame.Rotation
	v.step(100)
	if v.frame.Rotation <= r0 {
		t.Fatalf("rotation did not advance: %v -> %v", r0, v.frame.Rotation)
	}
	if math.Abs(v.frame.Rotation-1.0) > 1e-9 {
		t.Fatalf("rotation at t=100 is %v, want 1.0", v.frame.Rotation)
	}
}
