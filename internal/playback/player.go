// Package playback applies a delta stream to a persistent framebuffer, the
// way the target renderer does.
package playback

import (
	"errors"
	"fmt"
	"io"

	"galaxy-fx/internal/core"
	"galaxy-fx/internal/delta"
	"galaxy-fx/internal/stream"
)

// Player decodes frames from a stream and draws them into a framebuffer.
type Player struct {
	src     io.Reader
	reader  *stream.Reader
	fb      *core.ByteGrid
	loop    bool
	changes []delta.Change
	frame   int
	loops   int
}

// Option configures a Player.
type Option func(*Player)

// WithLoop rewinds to the first frame at end of stream. The source must be
// an io.Seeker.
func WithLoop() Option {
	return func(p *Player) { p.loop = true }
}

// New creates a player drawing into a w*h framebuffer.
func New(src io.Reader, size core.Size, opts ...Option) *Player {
	p := &Player{src: src, reader: stream.NewReader(src), fb: core.NewByteGrid(size.W, size.H)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Framebuffer returns the persistent pixel buffer.
func (p *Player) Framebuffer() *core.ByteGrid { return p.fb }

// Frame returns the number of frames applied since the last rewind.
func (p *Player) Frame() int { return p.frame }

// Loops returns how many times playback wrapped around.
func (p *Player) Loops() int { return p.loops }

// LastChanges returns the changes applied by the last Advance.
func (p *Player) LastChanges() []delta.Change { return p.changes }

// Advance decodes the next frame and applies it. Without looping it returns
// io.EOF at the end of the stream.
func (p *Player) Advance() error {
	changes, err := p.reader.Next(p.changes[:0])
	if errors.Is(err, io.EOF) && p.loop && p.frame > 0 {
		if err := p.rewind(); err != nil {
			return err
		}
		p.loops++
		changes, err = p.reader.Next(p.changes[:0])
	}
	if err != nil {
		return err
	}
	p.changes = changes
	Apply(p.fb, changes)
	p.frame++
	return nil
}

// Seek plays forward until frame index target has been applied, rewinding
// first when target lies behind the current frame.
func (p *Player) Seek(target int) error {
	if target+1 < p.frame {
		if err := p.rewind(); err != nil {
			return err
		}
	}
	for p.frame <= target {
		if err := p.Advance(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Player) rewind() error {
	seeker, ok := p.src.(io.Seeker)
	if !ok {
		return fmt.Errorf("rewind: source %T is not seekable", p.src)
	}
	if _, err := seeker.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind: %w", err)
	}
	p.reader.Reset(p.src)
	p.fb.Clear()
	p.frame = 0
	return nil
}

// Apply erases each old position and draws each new one, in record order.
// Positions outside the framebuffer are ignored.
func Apply(fb *core.ByteGrid, changes []delta.Change) {
	for _, c := range changes {
		if c.Old.Present() {
			fb.Set(c.Old.X, c.Old.Y, 0)
		}
		if c.New.Present() {
			fb.Set(c.New.X, c.New.Y, c.Color)
		}
	}
}
