// Package export renders a delta stream into preview files.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"

	"galaxy-fx/internal/core"
	"galaxy-fx/internal/playback"
	"galaxy-fx/internal/render"

	"github.com/icza/mjpeg"
)

// Options control preview rendering.
type Options struct {
	Scale   int
	FPS     int
	Quality int
	// Frames limits the number of frames rendered; 0 renders the whole stream.
	Frames int
}

// DefaultOptions renders at 2x, 10 frames per second.
func DefaultOptions() Options {
	return Options{Scale: 2, FPS: 10, Quality: 90}
}

// AVI plays src into an MJPEG AVI file at path and returns the number of
// frames written.
func AVI(ctx context.Context, src io.Reader, size core.Size, path string, opts Options) (int, error) {
	if opts.Scale < 1 {
		opts.Scale = 1
	}
	if opts.FPS <= 0 {
		opts.FPS = 10
	}
	aw, err := mjpeg.New(path, int32(size.W*opts.Scale), int32(size.H*opts.Scale), int32(opts.FPS))
	if err != nil {
		return 0, fmt.Errorf("create avi: %w", err)
	}

	palette := render.XtermPalette()
	player := playback.New(src, size)
	var buf bytes.Buffer
	written := 0
	for opts.Frames == 0 || written < opts.Frames {
		if err := ctx.Err(); err != nil {
			aw.Close()
			return written, err
		}
		if err := player.Advance(); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			aw.Close()
			return written, err
		}
		buf.Reset()
		img := render.Image(player.Framebuffer(), &palette, opts.Scale)
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: opts.Quality}); err != nil {
			aw.Close()
			return written, fmt.Errorf("encode frame %d: %w", written, err)
		}
		if err := aw.AddFrame(buf.Bytes()); err != nil {
			aw.Close()
			return written, fmt.Errorf("add frame %d: %w", written, err)
		}
		written++
	}
	if err := aw.Close(); err != nil {
		return written, fmt.Errorf("close avi: %w", err)
	}
	return written, nil
}

// PNG writes the framebuffer as it looks after frame index frame.
func PNG(w io.Writer, src io.Reader, size core.Size, frame, scale int) error {
	player := playback.New(src, size)
	if err := player.Seek(frame); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("frame %d is past the end of the stream (%d frames)", frame, player.Frame())
		}
		return err
	}
	palette := render.XtermPalette()
	return png.Encode(w, render.Image(player.Framebuffer(), &palette, scale))
}
