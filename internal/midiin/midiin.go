// Package midiin forwards note events from hardware MIDI controllers into
// the event queue. Each open port gets a driver callback that pushes
// note-on/note-off events and ignores everything else; callbacks never
// block, so a full queue drops events instead of stalling the driver.
package midiin

import (
	"log/slog"
	"strings"
	"sync"

	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // register MIDI driver

	"github.com/cbegin/chordagon-go/internal/eventqueue"
)

// Listener listens on all available MIDI input ports (optionally filtered
// by a case-insensitive substring of the port name) and feeds the queue.
type Listener struct {
	queue  *eventqueue.Queue
	filter string

	mu    sync.Mutex
	stops map[string]func()
}

// Open starts listening on every matching input port currently available.
// Having zero ports is not an error; Rescan picks up late arrivals.
func Open(queue *eventqueue.Queue, filter string) (*Listener, error) {
	l := &Listener{
		queue:  queue,
		filter: strings.ToLower(filter),
		stops:  make(map[string]func()),
	}
	l.Rescan()
	return l, nil
}

// Rescan re-enumerates input ports, opening newly appeared ones and
// pruning listeners whose port has vanished. Cheap enough to call
// periodically from the frame loop.
func (l *Listener) Rescan() {
	l.mu.Lock()
	defer l.mu.Unlock()

	seen := make(map[string]bool)
	for _, in := range midi.GetInPorts() {
		name := in.String()
		if l.filter != "" && !strings.Contains(strings.ToLower(name), l.filter) {
			continue
		}
		seen[name] = true
		if _, open := l.stops[name]; open {
			continue
		}
		stop, err := midi.ListenTo(in, l.receive)
		if err != nil {
			slog.Error("midi: open port failed", "port", name, "err", err)
			continue
		}
		slog.Info("midi: listening", "port", name)
		l.stops[name] = stop
	}

	for name, stop := range l.stops {
		if !seen[name] {
			slog.Warn("midi: port disappeared", "port", name)
			stop()
			delete(l.stops, name)
		}
	}
}

// receive runs on a driver callback goroutine. Queue only; no other state.
func (l *Listener) receive(msg midi.Message, _ int32) {
	var ch, note, vel uint8
	switch {
	case msg.GetNoteOn(&ch, &note, &vel):
		l.queue.Push(eventqueue.Event{Kind: eventqueue.NoteOn, Note: note, Velocity: vel})
	case msg.GetNoteOff(&ch, &note, &vel):
		l.queue.Push(eventqueue.Event{Kind: eventqueue.NoteOff, Note: note})
	}
}

// Ports returns the names of the ports currently being listened to.
func (l *Listener) Ports() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	names := make([]string, 0, len(l.stops))
	for name := range l.stops {
		names = append(names, name)
	}
	return names
}

// Close stops all port listeners.
func (l *Listener) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for name, stop := range l.stops {
		stop()
		delete(l.stops, name)
	}
}

// PortNames lists the available MIDI input ports without opening them.
func PortNames() []string {
	ins := midi.GetInPorts()
	names := make([]string, 0, len(ins))
	for _, in := range ins {
		names = append(names, in.String())
	}
	return names
}
