//go:build ebiten

package app

import (
	"errors"
	"io"

	"galaxy-fx/internal/core"
	"galaxy-fx/internal/playback"
	"galaxy-fx/internal/render"
	"galaxy-fx/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a stream player to the ebiten.Game interface.
type Game struct {
	player  *playback.Player
	painter *render.GridPainter
	hud     *ui.HUD
	size    core.Size
	pacer   *core.FixedStep

	palette render.Palette
	dimmed  render.Palette

	scale    int
	paused   bool
	tickOnce bool
}

// New constructs a Game for the provided player.
func New(player *playback.Player, hud *ui.HUD, scale, fps int) *Game {
	fb := player.Framebuffer()
	g := &Game{
		player:  player,
		hud:     hud,
		size:    fb.Size(),
		pacer:   core.NewFixedStep(fps),
		scale:   scale,
		palette: render.XtermPalette(),
	}
	g.dimmed = g.palette.Dimmed(0.5)
	g.painter = render.NewGridPainter(fb.W, fb.H, &g.palette)
	return g
}

// Update handles input and advances playback at the configured frame rate.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.player.Seek(0); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
	}

	if (!g.paused && g.pacer.ShouldStep()) || g.tickOnce {
		g.tickOnce = false
		if err := g.player.Advance(); err != nil {
			if !errors.Is(err, io.EOF) {
				return err
			}
			g.paused = true
		}
	}
	return nil
}

// Draw renders the framebuffer and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.paused {
		g.painter.SetPalette(&g.dimmed)
	} else {
		g.painter.SetPalette(&g.palette)
	}
	g.painter.Blit(screen, g.player.Framebuffer(), g.scale)
	g.hud.Draw(screen, g.size.W*g.scale, g.size.H*g.scale, ui.Status{
		Frame:   g.player.Frame(),
		Changes: len(g.player.LastChanges()),
		Loops:   g.player.Loops(),
		Paused:  g.paused,
	})
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.size.W*g.scale + g.hud.Width(), g.size.H * g.scale
}
