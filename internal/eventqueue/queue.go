// Package eventqueue carries note events from MIDI driver callbacks to the
// frame loop. Any number of goroutines may push concurrently; exactly one
// consumer drains once per frame. Both sides are non-blocking: a full queue
// drops the incoming event rather than stalling the driver callback.
package eventqueue

// Kind of note event.
type Kind uint8

const (
	NoteOn Kind = iota
	NoteOff
)

// Event is a raw note event as received from a controller. It is produced by
// a driver callback, consumed exactly once by the frame loop, and discarded.
type Event struct {
	Kind     Kind
	Note     uint8
	Velocity uint8
}

const (
	// DefaultCapacity comfortably absorbs any burst of chord events that can
	// arrive between two display refreshes.
	DefaultCapacity = 4096

	minCapacity = 16
)

// Queue is a bounded FIFO of events. The zero value is not usable; use New.
//
// FIFO order is guaranteed per producer; events from different producers are
// interleaved in whatever order the channel accepts them.
type Queue struct {
	ch chan Event
}

func New(capacity int) *Queue {
	if capacity < minCapacity {
		capacity = minCapacity
	}
	return &Queue{ch: make(chan Event, capacity)}
}

// Push enqueues ev without blocking. It reports whether the event was
// accepted; false means the queue was full and the event was dropped.
func (q *Queue) Push(ev Event) bool {
	select {
	case q.ch <- ev:
		return true
	default:
		return false
	}
}

// DrainInto removes all currently buffered events and appends them to buf,
// returning the extended slice. Pass a fixed-capacity slice truncated to
// zero length to keep the frame loop allocation-free. DrainInto never
// blocks; with nothing pending it returns buf unchanged.
func (q *Queue) DrainInto(buf []Event) []Event {
	for {
		select {
		case ev := <-q.ch:
			buf = append(buf, ev)
		default:
			return buf
		}
	}
}

// Cap returns the queue capacity.
func (q *Queue) Cap() int { return cap(q.ch) }
