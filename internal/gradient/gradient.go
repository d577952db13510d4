// Package gradient provides the rainbow lookup that colors interval edges.
package gradient

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

type stop struct {
	col colorful.Color
	pos float64
}

// Gradient interpolates between fixed color stops for a normalized value in
// [0, 1]. Blending happens in HCL space to keep intermediate hues clean.
type Gradient struct {
	stops []stop
}

// Rainbow is the interval coloring: unison/octave at red, sweeping through
// the spectrum to violet at the tritone-adjacent maximum fold.
func Rainbow() Gradient {
	return Gradient{stops: []stop{
		{colorful.Color{R: 1.00, G: 0.10, B: 0.10}, 0.0},
		{colorful.Color{R: 1.00, G: 0.60, B: 0.05}, 0.2},
		{colorful.Color{R: 0.95, G: 0.95, B: 0.10}, 0.4},
		{colorful.Color{R: 0.10, G: 0.85, B: 0.25}, 0.6},
		{colorful.Color{R: 0.10, G: 0.40, B: 0.95}, 0.8},
		{colorful.Color{R: 0.55, G: 0.15, B: 0.85}, 1.0},
	}}
}

// Lookup returns the gradient color for t, clamped to [0, 1].
func (g Gradient) Lookup(t float64) color.RGBA {
	if t <= g.stops[0].pos {
		return toRGBA(g.stops[0].col)
	}
	last := g.stops[len(g.stops)-1]
	if t >= last.pos {
		return toRGBA(last.col)
	}
	for i := 0; i < len(g.stops)-1; i++ {
		s0, s1 := g.stops[i], g.stops[i+1]
		if t <= s1.pos {
			frac := (t - s0.pos) / (s1.pos - s0.pos)
			return toRGBA(s0.col.BlendHcl(s1.col, frac).Clamped())
		}
	}
	return toRGBA(last.col)
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
