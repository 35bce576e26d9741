package galaxy

import "math"

const (
	colorBase = 16
	colorMax  = 231
)

// State is the recurrence carried from particle to particle and frame to
// frame. Every Step reads and replaces X and Y; T moves once per frame.
type State struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	T float64 `yaml:"t"`
}

// Params are the fixed per-run inputs of Step.
type Params struct {
	N      int
	Width  int
	Height int

	Rounding Rounding
}

// Sample is one particle's screen position and color for one frame.
type Sample struct {
	I, J    int
	X, Y    int
	Color   uint8
	Visible bool
}

// Step computes particle (i, j) from s and returns the state the next
// particle must see. The position depends on i and the state only; j only
// selects the color.
func Step(s State, i, j int, p Params) (State, Sample) {
	n := float64(p.N)
	fi := float64(i)
	r := 2 * math.Pi / n

	u := math.Sin(fi+s.Y) + math.Sin(r*fi+s.X)
	v := math.Cos(fi+s.Y) + math.Cos(r*fi+s.X)

	next := State{X: u + s.T, Y: v, T: s.T}

	sx := round(u*n/2+float64(p.Width)/2, p.Rounding)
	syRaw := round(v*n/2, p.Rounding)
	sy := round(float64(p.Height)/2+float64(syRaw)*0.75, p.Rounding)

	return next, Sample{
		I:       i,
		J:       j,
		X:       sx,
		Y:       sy,
		Color:   ParticleColor(i, j),
		Visible: sx >= 0 && sx < p.Width && sy >= 0 && sy < p.Height,
	}
}

// ParticleColor returns the palette index for particle (i, j). Only the
// upper bound is clamped; the lower bound of 16 holds by construction.
func ParticleColor(i, j int) uint8 {
	c := colorBase + (i*11)%216 + j%20
	if c > colorMax {
		c = colorMax
	}
	return uint8(c)
}

func round(v float64, mode Rounding) int {
	if mode == RoundTruncate {
		return int(math.Trunc(v))
	}
	return int(math.Floor(v))
}
