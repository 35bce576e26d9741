package stream

import (
	"fmt"
	"io"

	"galaxy-fx/internal/delta"
)

// Writer encodes frames and streams them to an io.Writer, one Write call per
// frame so a frame is never split across calls.
type Writer struct {
	w      io.Writer
	buf    []byte
	frames int
	bytes  int64
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteFrame encodes and writes one frame. A capacity error is returned as
// is; nothing is written for the rejected frame.
func (w *Writer) WriteFrame(changes []delta.Change) error {
	buf, err := AppendFrame(w.buf[:0], changes)
	if err != nil {
		return err
	}
	w.buf = buf
	return w.WriteEncoded(buf)
}

// WriteEncoded writes an already encoded frame.
func (w *Writer) WriteEncoded(frame []byte) error {
	n, err := w.w.Write(frame)
	w.bytes += int64(n)
	if err != nil {
		return fmt.Errorf("write frame %d: %w", w.frames, err)
	}
	if n != len(frame) {
		return fmt.Errorf("write frame %d: %w", w.frames, io.ErrShortWrite)
	}
	w.frames++
	return nil
}

// Frames returns the number of frames written.
func (w *Writer) Frames() int { return w.frames }

// Bytes returns the number of bytes written.
func (w *Writer) Bytes() int64 { return w.bytes }
