package export

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"galaxy-fx/internal/galaxy"
	"galaxy-fx/internal/precompute"
	"galaxy-fx/internal/render"
)

func generate(t *testing.T, frames int) (galaxy.Config, []byte) {
	t.Helper()
	cfg := galaxy.DefaultConfig()
	cfg.N = 20
	cfg.Frames = frames
	var buf bytes.Buffer
	if _, err := precompute.Run(context.Background(), cfg, &buf, precompute.Options{}); err != nil {
		t.Fatal(err)
	}
	return cfg, buf.Bytes()
}

func TestPNGSnapshot(t *testing.T) {
	cfg, data := generate(t, 3)
	var out bytes.Buffer
	if err := PNG(&out, bytes.NewReader(data), cfg.Size(), 0, 1); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&out)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != cfg.Width || b.Dy() != cfg.Height {
		t.Fatalf("bounds = %v", b)
	}
	palette := render.XtermPalette()
	lit := 0
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			bg := palette[0]
			if uint8(r>>8) != bg.R || uint8(g>>8) != bg.G || uint8(b>>8) != bg.B {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatal("first frame snapshot has no particles")
	}
}

func TestPNGPastEnd(t *testing.T) {
	cfg, data := generate(t, 2)
	if err := PNG(&bytes.Buffer{}, bytes.NewReader(data), cfg.Size(), 5, 1); err == nil {
		t.Fatal("expected an error for a frame past the end")
	}
}

func TestAVIWritesEveryFrame(t *testing.T) {
	cfg, data := generate(t, 4)
	path := filepath.Join(t.TempDir(), "preview.avi")
	n, err := AVI(context.Background(), bytes.NewReader(data), cfg.Size(), path, Options{Scale: 1, FPS: 10, Quality: 75})
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Fatalf("wrote %d frames, want 4", n)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Fatal("avi file is empty")
	}
}
