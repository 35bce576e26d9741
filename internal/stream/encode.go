package stream

import (
	"encoding/binary"
	"fmt"

	"galaxy-fx/internal/delta"
)

// AppendFrame appends the encoded frame to dst. On error dst is returned
// unchanged.
func AppendFrame(dst []byte, changes []delta.Change) ([]byte, error) {
	if len(changes) > MaxChanges {
		return dst, &CapacityError{Count: len(changes)}
	}
	start := len(dst)
	dst = binary.LittleEndian.AppendUint16(dst, uint16(len(changes)))
	for _, c := range changes {
		var err error
		if dst, err = appendPosition(dst, c.Old); err != nil {
			return dst[:start], err
		}
		if dst, err = appendPosition(dst, c.New); err != nil {
			return dst[:start], err
		}
		dst = append(dst, c.Color)
	}
	return dst, nil
}

func appendPosition(dst []byte, p delta.Position) ([]byte, error) {
	if !p.Present() {
		dst = binary.LittleEndian.AppendUint16(dst, Sentinel)
		return binary.LittleEndian.AppendUint16(dst, 0), nil
	}
	if p.X < 0 || p.X >= Sentinel || p.Y < 0 || p.Y > 0xFFFF {
		return dst, fmt.Errorf("%w: %v", ErrCoordinate, p)
	}
	dst = binary.LittleEndian.AppendUint16(dst, uint16(p.X))
	return binary.LittleEndian.AppendUint16(dst, uint16(p.Y)), nil
}

// DecodeRecord parses one 9-byte record.
func DecodeRecord(b []byte) delta.Change {
	return delta.Change{
		Old:   decodePosition(b[0:4]),
		New:   decodePosition(b[4:8]),
		Color: b[8],
	}
}

func decodePosition(b []byte) delta.Position {
	x := binary.LittleEndian.Uint16(b[0:2])
	if x == Sentinel {
		return delta.Absent()
	}
	return delta.At(int(x), int(binary.LittleEndian.Uint16(b[2:4])))
}
