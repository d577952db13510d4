package tuning

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Scale is a tuning read from a Scala .scl file. Degrees repeat around the
// scale's own octave (the last degree), anchored at a base note/frequency.
type Scale struct {
	Description string

	// cents above the base pitch for scale steps 1..N; the last entry is
	// the repeat interval (usually 1200).
	degrees []float64

	// BaseNote sounds at BaseFreq. Defaults: middle C at 261.625565 Hz.
	BaseNote uint8
	BaseFreq float64
}

const (
	defaultBaseNote = 60
	defaultBaseFreq = 261.625565 // middle C in 12-TET at A440
)

// LoadScale reads a Scala .scl file from path.
func LoadScale(path string) (*Scale, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := ParseScale(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return s, nil
}

// ParseScale parses the .scl format: '!' lines are comments, then one
// description line, one note count line, then one pitch per line. A pitch
// containing '.' is in cents; otherwise it is a ratio like 3/2 or 2.
func ParseScale(r io.Reader) (*Scale, error) {
	s := &Scale{BaseNote: defaultBaseNote, BaseFreq: defaultBaseFreq}
	scanner := bufio.NewScanner(r)

	lines := make([]string, 0, 32)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "!") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf("truncated scale: %d lines", len(lines))
	}

	s.Description = lines[0]
	countField := strings.Fields(lines[1])
	if len(countField) == 0 {
		return nil, fmt.Errorf("missing note count")
	}
	count, err := strconv.Atoi(countField[0])
	if err != nil || count < 1 {
		return nil, fmt.Errorf("bad note count %q", lines[1])
	}
	if len(lines)-2 < count {
		return nil, fmt.Errorf("expected %d pitches, got %d", count, len(lines)-2)
	}

	for _, line := range lines[2 : 2+count] {
		// Anything after the pitch value is a free-form comment.
		field := strings.Fields(line)
		if len(field) == 0 {
			return nil, fmt.Errorf("empty pitch line")
		}
		cents, err := parsePitch(field[0])
		if err != nil {
			return nil, err
		}
		s.degrees = append(s.degrees, cents)
	}
	return s, nil
}

func parsePitch(tok string) (float64, error) {
	if strings.Contains(tok, ".") {
		cents, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return 0, fmt.Errorf("bad cents value %q", tok)
		}
		return cents, nil
	}
	num, den := tok, "1"
	if i := strings.IndexByte(tok, '/'); i >= 0 {
		num, den = tok[:i], tok[i+1:]
	}
	n, err1 := strconv.ParseInt(num, 10, 64)
	d, err2 := strconv.ParseInt(den, 10, 64)
	if err1 != nil || err2 != nil || n <= 0 || d <= 0 {
		return 0, fmt.Errorf("bad ratio %q", tok)
	}
	return 1200 * math.Log2(float64(n)/float64(d)), nil
}

// NoteFrequency resolves note relative to the base note by stepping through
// the scale degrees, repeating at the scale's octave interval.
func (s *Scale) NoteFrequency(note uint8) float64 {
	n := len(s.degrees)
	span := s.degrees[n-1]

	steps := int(note) - int(s.BaseNote)
	oct, deg := steps/n, steps%n
	if deg < 0 {
		oct--
		deg += n
	}
	cents := float64(oct) * span
	if deg > 0 {
		cents += s.degrees[deg-1]
	}
	return s.BaseFreq * math.Pow(2, cents/1200)
}
