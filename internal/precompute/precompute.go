// Package precompute drives the simulation frame by frame and streams the
// encoded deltas to an output sink.
package precompute

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"galaxy-fx/internal/delta"
	"galaxy-fx/internal/galaxy"
	"galaxy-fx/internal/stream"
)

// FrameStats describes one generated frame.
type FrameStats struct {
	Index       int
	Changes     int
	Appeared    int
	Moved       int
	Disappeared int
	Visible     int
	Bytes       int
}

// Summary describes a finished run.
type Summary struct {
	Frames      int
	Changes     int
	PeakChanges int
	PeakFrame   int
	Bytes       int64
	Digest      string
	PerFrame    []int
}

// Options tune reporting. The zero value is silent.
type Options struct {
	// Logger receives one line per frame when set.
	Logger *log.Logger
	// Progress is called after each frame is encoded.
	Progress func(FrameStats)
}

func (o Options) logf(format string, args ...any) {
	if o.Logger != nil {
		o.Logger.Printf(format, args...)
	}
}

// in-flight buffers: one being written, one queued, one being encoded.
const buffers = 3

// Run generates cfg.Frames frames in order and writes each one to w as soon
// as it is encoded. Encoding of the next frame overlaps the write of the
// previous one; the particle recurrence itself runs on the calling goroutine.
// The context is checked between frames only.
func Run(ctx context.Context, cfg galaxy.Config, w io.Writer, opts Options) (Summary, error) {
	if err := cfg.Validate(); err != nil {
		return Summary{}, err
	}

	digest := sha256.New()
	out := newSink(io.MultiWriter(w, digest))
	go out.run()

	sum, err := produce(ctx, cfg, out, opts)
	werr := out.close()
	if err == nil {
		err = werr
	}
	if err != nil {
		return sum, err
	}
	sum.Bytes = out.w.Bytes()
	sum.Digest = hex.EncodeToString(digest.Sum(nil))
	opts.logf("[precompute] %d frames, %d changes, %d bytes", sum.Frames, sum.Changes, sum.Bytes)
	return sum, nil
}

func produce(ctx context.Context, cfg galaxy.Config, out *sink, opts Options) (Summary, error) {
	field := galaxy.NewField(cfg)
	tracker := delta.NewTracker(cfg.N)
	samples := make([]galaxy.Sample, 0, cfg.Particles())
	var changes []delta.Change

	sum := Summary{PerFrame: make([]int, 0, cfg.Frames)}
	for frame := 0; frame < cfg.Frames; frame++ {
		select {
		case <-ctx.Done():
			return sum, ctx.Err()
		case <-out.failed:
			return sum, nil
		default:
		}

		samples = field.Frame(samples[:0])
		changes = tracker.Diff(samples, changes[:0])

		buf, err := stream.AppendFrame(<-out.free, changes)
		if err != nil {
			out.free <- buf
			return sum, fmt.Errorf("frame %d: %w", frame, err)
		}
		out.pending <- buf

		st := frameStats(frame, changes, tracker.Cache().Len(), len(buf))
		sum.Frames++
		sum.Changes += st.Changes
		sum.PerFrame = append(sum.PerFrame, st.Changes)
		if st.Changes > sum.PeakChanges {
			sum.PeakChanges, sum.PeakFrame = st.Changes, frame
		}
		opts.logf("[precompute] frame %d/%d: %d changes (%d visible)", frame+1, cfg.Frames, st.Changes, st.Visible)
		if opts.Progress != nil {
			opts.Progress(st)
		}
	}
	return sum, nil
}

func frameStats(index int, changes []delta.Change, visible, size int) FrameStats {
	st := FrameStats{Index: index, Changes: len(changes), Visible: visible, Bytes: size}
	for _, c := range changes {
		switch c.Kind() {
		case delta.Appeared:
			st.Appeared++
		case delta.Moved:
			st.Moved++
		case delta.Disappeared:
			st.Disappeared++
		}
	}
	return st
}

// sink owns the output writer on its own goroutine.
type sink struct {
	w       *stream.Writer
	pending chan []byte
	free    chan []byte
	failed  chan struct{}
	done    chan error
}

func newSink(w io.Writer) *sink {
	s := &sink{
		w:       stream.NewWriter(w),
		pending: make(chan []byte, 1),
		free:    make(chan []byte, buffers),
		failed:  make(chan struct{}),
		done:    make(chan error, 1),
	}
	for k := 0; k < buffers; k++ {
		s.free <- nil
	}
	return s
}

func (s *sink) run() {
	var err error
	for buf := range s.pending {
		if err == nil {
			if err = s.w.WriteEncoded(buf); err != nil {
				close(s.failed)
			}
		}
		s.free <- buf[:0]
	}
	s.done <- err
}

func (s *sink) close() error {
	close(s.pending)
	return <-s.done
}

// GenerateFile runs the precomputation into cfg.Output. Frames go to a
// temporary file in the same directory, which replaces cfg.Output only after
// every frame was written, so a failed run leaves no partial stream behind.
func GenerateFile(ctx context.Context, cfg galaxy.Config, opts Options) (Summary, error) {
	if err := cfg.Validate(); err != nil {
		return Summary{}, err
	}
	if cfg.Output == "" {
		return Summary{}, fmt.Errorf("%w: empty output path", galaxy.ErrInvalidConfig)
	}
	tmp, err := os.CreateTemp(filepath.Dir(cfg.Output), "."+filepath.Base(cfg.Output)+".*.tmp")
	if err != nil {
		return Summary{}, fmt.Errorf("open output: %w", err)
	}
	cleanup := func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}

	sum, err := Run(ctx, cfg, tmp, opts)
	if err != nil {
		cleanup()
		return sum, err
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return sum, fmt.Errorf("sync output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return sum, fmt.Errorf("close output: %w", err)
	}
	if err := os.Rename(tmp.Name(), cfg.Output); err != nil {
		os.Remove(tmp.Name())
		return sum, fmt.Errorf("rename output: %w", err)
	}
	return sum, nil
}
