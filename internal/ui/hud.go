//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"galaxy-fx/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	panelPadding   = 10
	headerBaseline = 14
	lineSpacing    = 16
)

var (
	titleColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	textColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor   = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	panelColor = color.RGBA{R: 18, G: 18, B: 24, A: 255}
)

// Status is the playback state shown on the HUD.
type Status struct {
	Frame   int
	Changes int
	Loops   int
	Paused  bool
}

// HUD renders the playback panel to the right of the framebuffer view.
type HUD struct {
	width      int
	title      string
	params     []string
	panel      *ebiten.Image
	lastHeight int
}

// NewHUD constructs a HUD listing the run parameters. A non-positive width
// disables the panel.
func NewHUD(title string, params core.ParameterSnapshot, width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{width: width, title: title, params: params.Lines()}
}

// Width returns the panel width in screen pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Draw renders the panel at x offset on screen.
func (h *HUD) Draw(screen *ebiten.Image, x, height int, st Status) {
	if h == nil || h.width == 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(panelColor)

	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, y, titleColor)

	y += lineSpacing * 2
	state := "playing"
	if st.Paused {
		state = "paused"
	}
	for _, line := range []string{
		fmt.Sprintf("Frame: %d", st.Frame),
		fmt.Sprintf("Changes: %d", st.Changes),
		fmt.Sprintf("Loops: %d", st.Loops),
		"State: " + state,
	} {
		text.Draw(h.panel, line, face, panelPadding, y, textColor)
		y += lineSpacing
	}

	y += lineSpacing
	for _, line := range h.params {
		text.Draw(h.panel, line, face, panelPadding, y, dimColor)
		y += lineSpacing
	}

	y += lineSpacing
	text.Draw(h.panel, "space pause  n step  r restart", face, panelPadding, y, dimColor)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), 0)
	screen.DrawImage(h.panel, op)
}
