package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette maps the stream's 8-bit color indices to RGBA.
type Palette [256]color.RGBA

var ansiColors = [16]string{
	"#000000", "#800000", "#008000", "#808000", "#000080", "#800080", "#008080", "#c0c0c0",
	"#808080", "#ff0000", "#00ff00", "#ffff00", "#0000ff", "#ff00ff", "#00ffff", "#ffffff",
}

var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

// XtermPalette returns the 256-color xterm palette. Indices 16..231 form the
// 6x6x6 color cube the particle colors are drawn from; index 0 is black and
// doubles as the cleared pixel.
func XtermPalette() Palette {
	var p Palette
	for i, hex := range ansiColors {
		c, err := colorful.Hex(hex)
		if err != nil {
			panic(err)
		}
		p[i] = toRGBA(c)
	}
	for i := 0; i < 216; i++ {
		c := colorful.Color{
			R: float64(cubeLevels[i/36]) / 255,
			G: float64(cubeLevels[(i/6)%6]) / 255,
			B: float64(cubeLevels[i%6]) / 255,
		}
		p[16+i] = toRGBA(c)
	}
	for i := 0; i < 24; i++ {
		v := float64(8+10*i) / 255
		p[232+i] = toRGBA(colorful.Color{R: v, G: v, B: v})
	}
	return p
}

// Dimmed returns a copy of p with every color blended toward black by amount
// in [0,1], used for faded previews.
func (p Palette) Dimmed(amount float64) Palette {
	black := colorful.Color{}
	var out Palette
	for i, c := range p {
		cf, _ := colorful.MakeColor(c)
		out[i] = toRGBA(cf.BlendRgb(black, amount).Clamped())
	}
	return out
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
