// Package chordagon renders live MIDI chords as points on a pitch circle
// joined by interval lines, each line colored by the folded size of its
// interval. Notes an octave apart land on the same angle.
package chordagon

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/cbegin/chordagon-go/internal/eventqueue"
	"github.com/cbegin/chordagon-go/internal/geometry"
	"github.com/cbegin/chordagon-go/internal/gradient"
	"github.com/cbegin/chordagon-go/internal/midiin"
	"github.com/cbegin/chordagon-go/internal/notetable"
	"github.com/cbegin/chordagon-go/internal/tuning"
)

// MaxNotes is the maximum number of simultaneously displayed notes.
const MaxNotes = notetable.Capacity

var (
	backgroundColor = color.RGBA{5, 1, 74, 255}
	ringColor       = color.RGBA{128, 128, 128, 255}
	noteColor       = color.RGBA{255, 255, 255, 255}
)

// rescanFrames is how often the MIDI port list is re-checked for hot-plugs.
const rescanFrames = 120

type Option func(*config)

type config struct {
	resolver   tuning.Resolver
	refFreq    float64
	queueCap   int
	portFilter string
	openMIDI   bool
}

func defaultConfig() config {
	return config{
		resolver: tuning.EqualTemperament{A4: 440},
		refFreq:  440,
		queueCap: eventqueue.DefaultCapacity,
		openMIDI: true,
	}
}

// WithTuning sets the frequency resolver used to place notes on the circle.
func WithTuning(r tuning.Resolver) Option {
	return func(cfg *config) {
		cfg.resolver = r
	}
}

// WithReferenceFrequency sets the frequency drawn at angle zero (default
// 440 Hz).
func WithReferenceFrequency(hz float64) Option {
	return func(cfg *config) {
		if hz > 0 {
			cfg.refFreq = hz
		}
	}
}

// WithQueueCapacity sets the event queue size.
func WithQueueCapacity(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.queueCap = n
		}
	}
}

// WithPortFilter restricts MIDI input to ports whose name contains the
// given substring (case-insensitive). Empty means all ports.
func WithPortFilter(substr string) Option {
	return func(cfg *config) {
		cfg.portFilter = substr
	}
}

// WithoutMIDI skips opening hardware inputs. Events can still be pushed
// through Queue(); used for tests and headless runs.
func WithoutMIDI() Option {
	return func(cfg *config) {
		cfg.openMIDI = false
	}
}

// Visualizer is the frame loop. It owns the note table and all derived
// geometry; MIDI callbacks reach it only through the event queue, so none
// of this state needs locking.
type Visualizer struct {
	queue    *eventqueue.Queue
	table    *notetable.Table
	frame    *geometry.Frame
	rainbow  gradient.Gradient
	listener *midiin.Listener

	ringOuter []geometry.Point
	ringInner []geometry.Point

	batch  []eventqueue.Event
	angles []float64

	start time.Time
	tick  int
}

// New builds a Visualizer. Run it with ebiten.RunGame.
func New(opts ...Option) (*Visualizer, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	outer, inner := geometry.Ring(geometry.RingSegments)
	v := &Visualizer{
		queue:     eventqueue.New(cfg.queueCap),
		table:     notetable.New(cfg.resolver.NoteFrequency, cfg.refFreq),
		frame:     geometry.NewFrame(MaxNotes),
		rainbow:   gradient.Rainbow(),
		ringOuter: outer,
		ringInner: inner,
		angles:    make([]float64, 0, MaxNotes),
		start:     time.Now(),
	}
	v.batch = make([]eventqueue.Event, 0, v.queue.Cap())

	if cfg.openMIDI {
		listener, err := midiin.Open(v.queue, cfg.portFilter)
		if err != nil {
			return nil, err
		}
		v.listener = listener
	}
	return v, nil
}

// Queue returns the event queue. Producers other than the built-in MIDI
// listener (tests, virtual keyboards) push note events here.
func (v *Visualizer) Queue() *eventqueue.Queue { return v.queue }

// ActiveNotes returns the current number of displayed notes.
func (v *Visualizer) ActiveNotes() int { return v.table.Len() }

// Close stops the MIDI listeners. Call after the game loop returns.
func (v *Visualizer) Close() {
	if v.listener != nil {
		v.listener.Close()
	}
}

// Update runs one frame cycle: drain events, apply them to the note table,
// derive this frame's geometry.
func (v *Visualizer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	v.tick++
	if v.listener != nil && v.tick%rescanFrames == 0 {
		v.listener.Rescan()
	}
	v.step(time.Since(v.start).Seconds())
	return nil
}

// step is Update without the ebiten input/window concerns; t is elapsed
// seconds. Allocation-free: the batch and angle buffers are reused.
func (v *Visualizer) step(t float64) {
	v.batch = v.queue.DrainInto(v.batch[:0])
	for _, ev := range v.batch {
		switch ev.Kind {
		case eventqueue.NoteOn:
			v.table.NoteOn(ev.Note, ev.Velocity)
		case eventqueue.NoteOff:
			v.table.NoteOff(ev.Note)
		}
	}
	v.angles = v.table.Angles(v.angles[:0])
	v.frame.Build(v.angles, t)
}

// Draw renders the rotating ring, the interval lines, and the note points.
func (v *Visualizer) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	b := screen.Bounds()
	cx := float64(b.Dx()) / 2
	cy := float64(b.Dy()) / 2
	// Uniform scale from the smaller dimension keeps the circle round in
	// non-square windows.
	scale := math.Min(float64(b.Dx()), float64(b.Dy())) / 2

	v.drawRing(screen, v.ringOuter, cx, cy, scale)
	v.drawRing(screen, v.ringInner, cx, cy, scale)

	for _, e := range v.frame.Edges {
		p1 := v.frame.Points[e.I]
		p2 := v.frame.Points[e.J]
		ebitenutil.DrawLine(screen,
			cx+p1.X*geometry.RingRadius*scale, cy-p1.Y*geometry.RingRadius*scale,
			cx+p2.X*geometry.RingRadius*scale, cy-p2.Y*geometry.RingRadius*scale,
			v.rainbow.Lookup(e.Color))
	}

	for _, p := range v.frame.Points {
		ebitenutil.DrawCircle(screen,
			cx+p.X*geometry.RingRadius*scale, cy-p.Y*geometry.RingRadius*scale,
			geometry.NoteRadius*scale, noteColor)
	}
}

func (v *Visualizer) drawRing(screen *ebiten.Image, ring []geometry.Point, cx, cy, scale float64) {
	rot := v.frame.Rotation
	prev := geometry.Rotate(ring[0], rot)
	for i := 1; i < len(ring); i++ {
		p := geometry.Rotate(ring[i], rot)
		ebitenutil.DrawLine(screen,
			cx+prev.X*scale, cy-prev.Y*scale,
			cx+p.X*scale, cy-p.Y*scale,
			ringColor)
		prev = p
	}
}

// Layout reports the drawing size; the window is freely resizable.
func (v *Visualizer) Layout(outsideW, outsideH int) (int, int) {
	return outsideW, outsideH
}
