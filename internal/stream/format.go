// Package stream implements the delta frame format: per frame a little-endian
// uint16 change count followed by that many 9-byte records
// (old_x, old_y, new_x, new_y as uint16, color as uint8). There is no file
// header; frames repeat until end of stream.
package stream

import (
	"errors"
	"fmt"
)

const (
	// HeaderSize is the size of the per-frame change count.
	HeaderSize = 2
	// RecordSize is the size of one encoded change.
	RecordSize = 9
	// MaxChanges is the largest change count a frame can carry.
	MaxChanges = 0xFFFF
	// Sentinel is the x value that marks an absent position on the wire.
	// The matching y is written as 0 and ignored when reading.
	Sentinel = 0xFFFF
)

var (
	// ErrCapacityExceeded is returned when a frame holds more changes than the
	// count field can represent.
	ErrCapacityExceeded = errors.New("frame change count exceeds uint16 capacity")
	// ErrTruncated is returned when the stream ends inside a frame.
	ErrTruncated = errors.New("stream truncated inside a frame")
	// ErrCoordinate is returned for positions the wire format cannot carry.
	ErrCoordinate = errors.New("coordinate out of wire range")
)

// CapacityError reports the change count that did not fit.
type CapacityError struct {
	Count int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%v: %d changes (max %d)", ErrCapacityExceeded, e.Count, MaxChanges)
}

// Is lets errors.Is match ErrCapacityExceeded.
func (e *CapacityError) Is(target error) bool { return target == ErrCapacityExceeded }

// FrameSize returns the encoded size of a frame with n changes.
func FrameSize(n int) int { return HeaderSize + n*RecordSize }
