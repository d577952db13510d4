// Package geometry derives drawable primitives from the current note
// angles: point positions on the pitch circle, interval edges with a folded
// color scalar, and the slowly rotating circle ring itself. Everything here
// is a pure function of its inputs; Frame exists only to reuse buffers.
package geometry

import "math"

const (
	// RingRadius is the pitch circle radius in normalized units, where 1 is
	// half the smaller viewport dimension.
	RingRadius = 0.8

	// NoteRadius is the drawn size of a note point, same units.
	NoteRadius = 0.02

	// ringWobble shapes the ring outline: radius varies by
	// +/- ringWobble*sin(60*theta) around RingRadius.
	ringWobble = 0.01

	// rotationRate is the cosmetic ring rotation in radians per second.
	rotationRate = 0.01

	// RingSegments is the default ring tessellation.
	RingSegments = 1024
)

// Point is a position in normalized viewport units, y up.
type Point struct {
	X, Y float64
}

// Edge connects two active notes, indexing into Frame.Points. Color is the
// folded interval size in [0, 1].
type Edge struct {
	I, J  int
	Color float64
}

// EdgeIndices returns the edge list of the complete graph on maxNotes
// vertices, ordered so that the first C(n,2) entries connect only the first
// n vertices: (0,1), (0,2), (1,2), (0,3), ...
func EdgeIndices(maxNotes int) [][2]int {
	edges := make([][2]int, 0, maxNotes*(maxNotes-1)/2)
	for j := 1; j < maxNotes; j++ {
		for i := 0; i < j; i++ {
			edges = append(edges, [2]int{i, j})
		}
	}
	return edges
}

// FoldInterval maps the angular difference between two notes to a color
// scalar in [0, 1]. The circular distance is folded so an interval and its
// octave complement get the same value; the result is symmetric in its
// arguments. A unison or octave folds to 0.
func FoldInterval(a1, a2 float64) float64 {
	d := math.Mod(math.Abs(a2-a1)/math.Pi, 2)
	if d < 1 {
		return d
	}
	return 2 - d
}

// Rotation returns the ring rotation angle after t seconds.
func Rotation(t float64) float64 { return rotationRate * t }

// Ring returns the outer and inner outlines of the pitch circle band,
// closed (first point repeated last), sampled at segments steps. The ring is
// static geometry; rotation is applied at draw time.
func Ring(segments int) (outer, inner []Point) {
	outer = make([]Point, segments+1)
	inner = make([]Point, segments+1)
	for i := 0; i <= segments; i++ {
		theta := float64(i) * 2 * math.Pi / float64(segments)
		c, s := math.Cos(theta), math.Sin(theta)
		d := math.Abs(ringWobble * math.Sin(60*theta))
		outer[i] = Point{X: (RingRadius + d) * c, Y: (RingRadius + d) * s}
		inner[i] = Point{X: (RingRadius - d) * c, Y: (RingRadius - d) * s}
	}
	return outer, inner
}

// Rotate returns p rotated by angle radians.
func Rotate(p Point, angle float64) Point {
	c, s := math.Cos(angle), math.Sin(angle)
	return Point{X: p.X*c + p.Y*s, Y: -p.X*s + p.Y*c}
}

// Frame holds one frame's derived geometry. Points and Edges alias fixed
// backing arrays sized for maxNotes, so Build never allocates.
type Frame struct {
	Points   []Point
	Edges    []Edge
	Rotation float64

	pointBuf []Point
	edgeBuf  []Edge
	indices  [][2]int
}

// NewFrame returns a Frame sized for up to maxNotes simultaneous notes.
func NewFrame(maxNotes int) *Frame {
	return &Frame{
		pointBuf: make([]Point, maxNotes),
		edgeBuf:  make([]Edge, maxNotes*(maxNotes-1)/2),
		indices:  EdgeIndices(maxNotes),
	}
}

// Build derives points and edges from the note angles, in table order, and
// the ring rotation from elapsed seconds. Output is deterministic for a
// given (angles, t). Angles beyond the frame's capacity are ignored.
func (f *Frame) Build(angles []float64, t float64) {
	n := len(angles)
	if n > len(f.pointBuf) {
		n = len(f.pointBuf)
	}
	for i := 0; i < n; i++ {
		f.pointBuf[i] = Point{X: math.Sin(angles[i]), Y: math.Cos(angles[i])}
	}
	nEdges := n * (n - 1) / 2
	for k := 0; k < nEdges; k++ {
		i, j := f.indices[k][0], f.indices[k][1]
		f.edgeBuf[k] = Edge{I: i, J: j, Color: FoldInterval(angles[i], angles[j])}
	}
	f.Points = f.pointBuf[:n]
	f.Edges = f.edgeBuf[:nEdges]
	f.Rotation = Rotation(t)
}
