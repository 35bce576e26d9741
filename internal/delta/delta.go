// Package delta tracks particle positions across frames and reports only
// the pixels that changed.
package delta

import (
	"fmt"

	"galaxy-fx/internal/galaxy"
)

// Position is an optional screen coordinate. The zero value is absent.
type Position struct {
	X, Y int
	ok   bool
}

// At returns a present position.
func At(x, y int) Position { return Position{X: x, Y: y, ok: true} }

// Absent returns the missing position.
func Absent() Position { return Position{} }

// Present reports whether the position holds a coordinate.
func (p Position) Present() bool { return p.ok }

func (p Position) String() string {
	if !p.ok {
		return "-"
	}
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Kind classifies a change record.
type Kind uint8

const (
	// Appeared marks a particle that became visible.
	Appeared Kind = iota + 1
	// Moved marks a visible particle that changed pixel.
	Moved
	// Disappeared marks a particle that left the screen.
	Disappeared
)

func (k Kind) String() string {
	switch k {
	case Appeared:
		return "appeared"
	case Moved:
		return "moved"
	case Disappeared:
		return "disappeared"
	}
	return "unknown"
}

// Change erases Old (if present) and draws New (if present) in Color.
type Change struct {
	Old   Position
	New   Position
	Color uint8
}

// Kind reports how the particle changed.
func (c Change) Kind() Kind {
	switch {
	case !c.Old.ok:
		return Appeared
	case !c.New.ok:
		return Disappeared
	}
	return Moved
}

// Cache holds the last visible position of every particle, indexed i*N+j.
type Cache struct {
	n   int
	pos []Position
}

// NewCache allocates an empty cache for an n*n grid.
func NewCache(n int) *Cache {
	return &Cache{n: n, pos: make([]Position, n*n)}
}

// Get returns the cached position of particle (i, j).
func (c *Cache) Get(i, j int) Position { return c.pos[i*c.n+j] }

// Len returns the number of present entries.
func (c *Cache) Len() int {
	count := 0
	for _, p := range c.pos {
		if p.ok {
			count++
		}
	}
	return count
}

func (c *Cache) reset() {
	clear(c.pos)
}

// Tracker diffs consecutive frames against its retained cache.
type Tracker struct {
	prev *Cache
	next *Cache
}

// NewTracker returns a tracker with an empty cache, so every particle visible
// in the first frame is reported as Appeared.
func NewTracker(n int) *Tracker {
	return &Tracker{prev: NewCache(n), next: NewCache(n)}
}

// Cache returns the positions retained from the last diffed frame.
func (t *Tracker) Cache() *Cache { return t.prev }

// Diff appends the changes of frame to dst in the frame's order and replaces
// the cache with the positions visible in frame. frame must hold exactly one
// sample per particle in row-major order.
func (t *Tracker) Diff(frame []galaxy.Sample, dst []Change) []Change {
	if len(frame) != len(t.prev.pos) {
		panic(fmt.Sprintf("delta: frame has %d samples, cache holds %d", len(frame), len(t.prev.pos)))
	}
	t.next.reset()
	for k, s := range frame {
		old := t.prev.pos[k]
		if !s.Visible {
			if old.ok {
				dst = append(dst, Change{Old: old})
			}
			continue
		}
		cur := At(s.X, s.Y)
		t.next.pos[k] = cur
		switch {
		case !old.ok:
			dst = append(dst, Change{New: cur, Color: s.Color})
		case old != cur:
			dst = append(dst, Change{Old: old, New: cur, Color: s.Color})
		}
	}
	t.prev, t.next = t.next, t.prev
	return dst
}
