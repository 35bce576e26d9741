//go:build ebiten

package render

import (
	"galaxy-fx/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads a palette framebuffer into a single ebiten image.
type GridPainter struct {
	w, h    int
	img     *ebiten.Image
	buf     []byte
	palette *Palette
}

// NewGridPainter allocates a painter for a framebuffer of size w*h.
func NewGridPainter(w, h int, palette *Palette) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h), palette: palette}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Blit uploads the framebuffer into the painter image and draws it scaled.
func (gp *GridPainter) Blit(dst *ebiten.Image, fb *core.ByteGrid, scale int) {
	if fb.W != gp.w || fb.H != gp.h {
		return
	}
	fillPaletteRGBA(gp.buf, fb.Cells(), gp.palette[:])
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// SetPalette switches the colors used by subsequent blits.
func (gp *GridPainter) SetPalette(palette *Palette) { gp.palette = palette }
