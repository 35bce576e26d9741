package delta

import (
	"testing"

	"galaxy-fx/internal/galaxy"
)

func visible(i, j, x, y int, color uint8) galaxy.Sample {
	return galaxy.Sample{I: i, J: j, X: x, Y: y, Color: color, Visible: true}
}

func hidden(i, j int) galaxy.Sample {
	return galaxy.Sample{I: i, J: j, X: -4, Y: 500}
}

func TestDiffClassifiesEveryTransition(t *testing.T) {
	tr := NewTracker(2)

	first := tr.Diff([]galaxy.Sample{
		visible(0, 0, 1, 1, 20),
		visible(0, 1, 2, 2, 21),
		visible(1, 0, 3, 3, 22),
		hidden(1, 1),
	}, nil)
	if len(first) != 3 {
		t.Fatalf("frame 0 produced %d changes, want 3", len(first))
	}
	for _, c := range first {
		if c.Kind() != Appeared || c.Old.Present() {
			t.Fatalf("frame 0 change %+v must be an appearance without old position", c)
		}
	}

	second := tr.Diff([]galaxy.Sample{
		visible(0, 0, 1, 1, 20), // unchanged
		visible(0, 1, 5, 2, 21), // moved
		hidden(1, 0),            // disappeared
		hidden(1, 1),            // still absent
	}, nil)
	if len(second) != 2 {
		t.Fatalf("frame 1 produced %d changes, want 2: %+v", len(second), second)
	}
	if second[0].Kind() != Moved || second[0].Old != At(2, 2) || second[0].New != At(5, 2) || second[0].Color != 21 {
		t.Fatalf("unexpected move %+v", second[0])
	}
	if second[1].Kind() != Disappeared || second[1].Old != At(3, 3) || second[1].New.Present() || second[1].Color != 0 {
		t.Fatalf("unexpected disappearance %+v", second[1])
	}

	cache := tr.Cache()
	if cache.Len() != 2 {
		t.Fatalf("cache holds %d entries, want 2", cache.Len())
	}
	if cache.Get(1, 0).Present() {
		t.Fatal("disappeared particle must leave the cache")
	}
	if cache.Get(0, 1) != At(5, 2) {
		t.Fatalf("cache(0,1) = %v, want (5,2)", cache.Get(0, 1))
	}
}

func TestDiffReappearanceIsAnAppearance(t *testing.T) {
	tr := NewTracker(1)
	tr.Diff([]galaxy.Sample{visible(0, 0, 4, 4, 30)}, nil)
	tr.Diff([]galaxy.Sample{hidden(0, 0)}, nil)
	out := tr.Diff([]galaxy.Sample{visible(0, 0, 4, 4, 30)}, nil)
	if len(out) != 1 || out[0].Kind() != Appeared {
		t.Fatalf("got %+v, want one appearance", out)
	}
}

func TestDiffFromSimulatedField(t *testing.T) {
	cfg := galaxy.DefaultConfig()
	cfg.N = 1
	cfg.Width, cfg.Height = 10, 10
	field := galaxy.NewField(cfg)
	tr := NewTracker(cfg.N)

	changes := tr.Diff(field.Frame(nil), nil)
	if len(changes) != 1 {
		t.Fatalf("got %d changes, want 1", len(changes))
	}
	c := changes[0]
	if c.Old.Present() || c.New != At(5, 5) || c.Color != 16 {
		t.Fatalf("first record = %+v, want absent -> (5,5) color 16", c)
	}
	if tr.Cache().Get(0, 0) != At(5, 5) {
		t.Fatalf("cache = %v, want (5,5)", tr.Cache().Get(0, 0))
	}
}

func TestDiffMatchesIndependentCount(t *testing.T) {
	cfg := galaxy.DefaultConfig()
	cfg.N = 30
	field := galaxy.NewField(cfg)
	tr := NewTracker(cfg.N)

	var samples, prev []galaxy.Sample
	for frame := 0; frame < 4; frame++ {
		samples = field.Frame(nil)
		changes := tr.Diff(samples, nil)

		want := 0
		for k, s := range samples {
			wasVisible := prev != nil && prev[k].Visible
			switch {
			case s.Visible && !wasVisible:
				want++
			case !s.Visible && wasVisible:
				want++
			case s.Visible && (prev[k].X != s.X || prev[k].Y != s.Y):
				want++
			}
		}
		if len(changes) != want {
			t.Fatalf("frame %d: %d changes, want %d", frame, len(changes), want)
		}
		for _, c := range changes {
			if c.Old == c.New {
				t.Fatalf("frame %d emitted a no-op record %+v", frame, c)
			}
		}
		prev = samples
	}
}
