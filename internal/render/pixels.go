package render

import (
	"image"
	"image/color"

	"galaxy-fx/internal/core"
)

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:len(cells)*4])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// Image converts the framebuffer to an RGBA image, magnified by an integer
// scale factor.
func Image(fb *core.ByteGrid, palette *Palette, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, fb.W*scale, fb.H*scale))
	if scale == 1 {
		fillPaletteRGBA(img.Pix, fb.Cells(), palette[:])
		return img
	}
	for y := 0; y < fb.H; y++ {
		for x := 0; x < fb.W; x++ {
			col := palette[fb.At(x, y)]
			for dy := 0; dy < scale; dy++ {
				row := img.PixOffset(x*scale, y*scale+dy)
				for dx := 0; dx < scale; dx++ {
					o := row + dx*4
					img.Pix[o+0] = col.R
					img.Pix[o+1] = col.G
					img.Pix[o+2] = col.B
					img.Pix[o+3] = col.A
				}
			}
		}
	}
	return img
}
