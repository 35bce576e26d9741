// Package term plays a delta stream in a terminal using half-block cells and
// the terminal's 256-color palette, which the stream's color indices already
// address.
package term

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"galaxy-fx/internal/core"
	"galaxy-fx/internal/playback"

	"github.com/gdamore/tcell/v2"
)

const upperHalf = '▀'

// View renders a player into a tcell screen.
type View struct {
	screen tcell.Screen
	player *playback.Player
	pacer  *core.FixedStep

	paused   bool
	stepOnce bool
	done     bool
	status   string
}

// NewView creates a view advancing the player at fps frames per second.
func NewView(screen tcell.Screen, player *playback.Player, fps int) *View {
	return &View{screen: screen, player: player, pacer: core.NewFixedStep(fps)}
}

// Done reports whether the stream ended or the user quit.
func (v *View) Done() bool { return v.done }

// HandleEvent processes one input event and reports whether the view should
// keep running.
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		v.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return !v.done
}

func (v *View) handleKey(key tcell.Key, r rune) {
	switch {
	case key == tcell.KeyEscape || key == tcell.KeyCtrlC:
		v.done = true
	case key == tcell.KeyRune && r == 'q':
		v.done = true
	case key == tcell.KeyRune && r == ' ':
		v.paused = !v.paused
	case key == tcell.KeyRune && r == 'n':
		v.stepOnce = true
	}
}

// Tick advances playback when due and redraws.
func (v *View) Tick() error {
	if (!v.paused && v.pacer.ShouldStep()) || v.stepOnce {
		v.stepOnce = false
		if err := v.player.Advance(); err != nil {
			if errors.Is(err, io.EOF) {
				v.paused = true
				v.status = "end of stream"
			} else {
				return err
			}
		}
	}
	v.Draw()
	return nil
}

// Draw paints the framebuffer scaled to the screen, two pixel rows per cell,
// with a status line at the bottom.
func (v *View) Draw() {
	sw, sh := v.screen.Size()
	if sw <= 0 || sh <= 1 {
		return
	}
	fb := v.player.Framebuffer()
	rows := sh - 1
	tw, th := sw, rows*2

	v.screen.Clear()
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < sw; cx++ {
			top := sample(fb, cx, cy*2, tw, th)
			bottom := sample(fb, cx, cy*2+1, tw, th)
			style := tcell.StyleDefault.Foreground(paletteColor(top)).Background(paletteColor(bottom))
			v.screen.SetContent(cx, cy, upperHalf, nil, style)
		}
	}

	status := fmt.Sprintf(" frame %d  changes %d  loops %d ", v.player.Frame(), len(v.player.LastChanges()), v.player.Loops())
	if v.paused {
		status += " [paused]"
	}
	if v.status != "" {
		status += " " + v.status
	}
	statusStyle := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	for x := 0; x < sw; x++ {
		r := ' '
		if x < len(status) {
			r = rune(status[x])
		}
		v.screen.SetContent(x, sh-1, r, nil, statusStyle)
	}
	v.screen.Show()
}

// sample returns the first lit pixel of the framebuffer area covered by
// target pixel (tx, ty) of a tw*th target.
func sample(fb *core.ByteGrid, tx, ty, tw, th int) uint8 {
	x0, x1 := tx*fb.W/tw, (tx+1)*fb.W/tw
	y0, y1 := ty*fb.H/th, (ty+1)*fb.H/th
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if c := fb.At(x, y); c != 0 {
				return c
			}
		}
	}
	return 0
}

func paletteColor(c uint8) tcell.Color {
	if c == 0 {
		return tcell.ColorBlack
	}
	return tcell.PaletteColor(int(c))
}

// Run polls input and ticks until the user quits or ctx ends.
func (v *View) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(v.pacer.Interval() / 2)
	defer ticker.Stop()

	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !v.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			if err := v.Tick(); err != nil {
				return err
			}
		}
	}
}
