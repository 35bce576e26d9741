package stream

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"galaxy-fx/internal/delta"
)

// Reader decodes frames sequentially.
type Reader struct {
	r     *bufio.Reader
	rec   [RecordSize]byte
	frame int
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Frame returns the index of the next frame Next will decode.
func (r *Reader) Frame() int { return r.frame }

// Next appends the changes of the next frame to dst. It returns io.EOF when
// the stream ends cleanly between frames and ErrTruncated when it ends inside
// one.
func (r *Reader) Next(dst []delta.Change) ([]delta.Change, error) {
	var hdr [HeaderSize]byte
	if _, err := io.ReadFull(r.r, hdr[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return dst, io.EOF
		}
		return dst, r.wrap(err)
	}
	count := int(binary.LittleEndian.Uint16(hdr[:]))
	for k := 0; k < count; k++ {
		if _, err := io.ReadFull(r.r, r.rec[:]); err != nil {
			return dst, r.wrap(err)
		}
		dst = append(dst, DecodeRecord(r.rec[:]))
	}
	r.frame++
	return dst, nil
}

// Reset switches to a new source, typically the same file rewound.
func (r *Reader) Reset(src io.Reader) {
	r.r.Reset(src)
	r.frame = 0
}

func (r *Reader) wrap(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("frame %d: %w", r.frame, ErrTruncated)
	}
	return fmt.Errorf("frame %d: %w", r.frame, err)
}
