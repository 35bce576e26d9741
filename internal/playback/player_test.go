package playback

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"galaxy-fx/internal/core"
	"galaxy-fx/internal/delta"
	"galaxy-fx/internal/stream"
)

func encode(t *testing.T, frames ...[]delta.Change) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := stream.NewWriter(&buf)
	for _, f := range frames {
		if err := w.WriteFrame(f); err != nil {
			t.Fatal(err)
		}
	}
	return buf.Bytes()
}

func TestApplyErasesThenDraws(t *testing.T) {
	fb := core.NewByteGrid(4, 4)
	Apply(fb, []delta.Change{{New: delta.At(1, 1), Color: 20}})
	Apply(fb, []delta.Change{{Old: delta.At(1, 1), New: delta.At(2, 3), Color: 21}})
	if fb.At(1, 1) != 0 || fb.At(2, 3) != 21 {
		t.Fatalf("framebuffer (1,1)=%d (2,3)=%d", fb.At(1, 1), fb.At(2, 3))
	}
	Apply(fb, []delta.Change{{Old: delta.At(2, 3)}})
	if fb.At(2, 3) != 0 {
		t.Fatal("disappearance must clear the pixel")
	}
	Apply(fb, []delta.Change{{New: delta.At(10, 10), Color: 30}})
}

func TestPlayerStopsAtEOF(t *testing.T) {
	data := encode(t,
		[]delta.Change{{New: delta.At(0, 0), Color: 16}},
		[]delta.Change{{Old: delta.At(0, 0), New: delta.At(1, 0), Color: 16}},
	)
	p := New(bytes.NewReader(data), core.Size{W: 2, H: 1})
	for k := 0; k < 2; k++ {
		if err := p.Advance(); err != nil {
			t.Fatal(err)
		}
	}
	if got := p.Framebuffer().Cells(); got[0] != 0 || got[1] != 16 {
		t.Fatalf("framebuffer = %v, want [0 16]", got)
	}
	if err := p.Advance(); err != io.EOF {
		t.Fatalf("err = %v, want io.EOF", err)
	}
}

func TestPlayerLoopsAndClears(t *testing.T) {
	data := encode(t,
		[]delta.Change{{New: delta.At(0, 0), Color: 16}},
		[]delta.Change{{New: delta.At(1, 0), Color: 17}},
	)
	p := New(bytes.NewReader(data), core.Size{W: 2, H: 1}, WithLoop())
	for k := 0; k < 3; k++ {
		if err := p.Advance(); err != nil {
			t.Fatal(err)
		}
	}
	if p.Loops() != 1 || p.Frame() != 1 {
		t.Fatalf("loops=%d frame=%d, want 1 and 1", p.Loops(), p.Frame())
	}
	if got := p.Framebuffer().Cells(); got[0] != 16 || got[1] != 0 {
		t.Fatalf("framebuffer after wrap = %v, want [16 0]", got)
	}
}

func TestPlayerLoopNeedsSeeker(t *testing.T) {
	data := encode(t, []delta.Change{{New: delta.At(0, 0), Color: 16}})
	p := New(io.MultiReader(bytes.NewReader(data)), core.Size{W: 1, H: 1}, WithLoop())
	if err := p.Advance(); err != nil {
		t.Fatal(err)
	}
	if err := p.Advance(); err == nil || errors.Is(err, io.EOF) {
		t.Fatalf("err = %v, want a rewind failure", err)
	}
}

func TestPlayerSeek(t *testing.T) {
	data := encode(t,
		[]delta.Change{{New: delta.At(0, 0), Color: 16}},
		[]delta.Change{{Old: delta.At(0, 0), New: delta.At(1, 0), Color: 16}},
		[]delta.Change{{Old: delta.At(1, 0), New: delta.At(2, 0), Color: 16}},
	)
	p := New(bytes.NewReader(data), core.Size{W: 3, H: 1})
	if err := p.Seek(2); err != nil {
		t.Fatal(err)
	}
	if p.Framebuffer().At(2, 0) != 16 || p.Frame() != 3 {
		t.Fatalf("after Seek(2): frame=%d cells=%v", p.Frame(), p.Framebuffer().Cells())
	}
	if err := p.Seek(0); err != nil {
		t.Fatal(err)
	}
	if p.Framebuffer().At(0, 0) != 16 || p.Framebuffer().At(2, 0) != 0 || p.Frame() != 1 {
		t.Fatalf("after Seek(0): frame=%d cells=%v", p.Frame(), p.Framebuffer().Cells())
	}
}
