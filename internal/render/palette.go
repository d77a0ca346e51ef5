package render

import (
	"image/color"
	"math"

	"gonum.org/v1/plot/palette"
)

// jetPalette is a fixed list of colours sampled from the jet ramp.
type jetPalette []color.Color

func (p jetPalette) Colors() []color.Color { return p }

// Jet returns n colours running blue, cyan, green, yellow, red.
func Jet(n int) palette.Palette {
	if n < 1 {
		n = 1
	}
	p := make(jetPalette, n)
	for i := range p {
		t := 0.5
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		p[i] = jetColor(t)
	}
	return p
}

// jetColor maps t in [0, 1] onto the four-segment jet ramp. Values outside
// the range are clamped.
func jetColor(t float64) color.RGBA {
	t = math.Min(math.Max(t, 0), 1-1e-9)

	const m = 0.25
	seg := math.Floor(t / m)
	s := (t - seg*m) / m

	var r, g, b float64
	switch seg {
	case 0:
		r, g, b = 0, s, 1
	case 1:
		r, g, b = 0, 1, 1-s
	case 2:
		r, g, b = s, 1, 0
	default:
		r, g, b = 1, 1-s, 0
	}
	return color.RGBA{
		R: uint8(math.Round(255 * r)),
		G: uint8(math.Round(255 * g)),
		B: uint8(math.Round(255 * b)),
		A: 0xff,
	}
}

// jetMap is a palette.ColorMap over the jet ramp.
type jetMap struct {
	min, max float64
	alpha    float64
}

// JetMap returns a jet colour map spanning [min, max].
func JetMap(lo, hi float64) palette.ColorMap {
	return &jetMap{min: lo, max: hi, alpha: 1}
}

func (m *jetMap) At(v float64) (color.Color, error) {
	switch {
	case math.IsNaN(v):
		return nil, palette.ErrNaN
	case v < m.min:
		return nil, palette.ErrUnderflow
	case v > m.max:
		return nil, palette.ErrOverflow
	}
	t := 0.5
	if m.max > m.min {
		t = (v - m.min) / (m.max - m.min)
	}
	c := jetColor(t)
	c.A = uint8(math.Round(255 * m.alpha))
	return color.NRGBA(c), nil
}

func (m *jetMap) Max() float64     { return m.max }
func (m *jetMap) SetMax(v float64) { m.max = v }
func (m *jetMap) Min() float64     { return m.min }
func (m *jetMap) SetMin(v float64) { m.min = v }
func (m *jetMap) Alpha() float64   { return m.alpha }

func (m *jetMap) SetAlpha(a float64) {
	if a < 0 || a > 1 {
		panic("render: alpha must be within [0, 1]")
	}
	m.alpha = a
}

func (m *jetMap) Palette(colors int) palette.Palette {
	return Jet(colors)
}
