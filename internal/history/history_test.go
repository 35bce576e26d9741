package history

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"galaxy-fx/internal/galaxy"
	"galaxy-fx/internal/precompute"

	"github.com/quasilyte/gdata/v2"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	appName := fmt.Sprintf("galaxy_fx_test_%d", time.Now().UnixNano())
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Skipf("gdata unavailable: %v", err)
	}
	t.Cleanup(func() {
		if home, err := os.UserHomeDir(); err == nil {
			os.RemoveAll(filepath.Join(home, ".local", "share", appName))
		}
	})
	return NewStore(m)
}

func TestNewRecordID(t *testing.T) {
	at := time.Date(2026, 10, 15, 12, 30, 5, 0, time.UTC)
	rec := NewRecord(galaxy.DefaultConfig(), precompute.Summary{Frames: 600, Digest: "0123456789abcdef"}, at)
	if rec.ID != "20261015-123005-01234567" {
		t.Fatalf("id = %q", rec.ID)
	}
	if rec.Frames != 600 || rec.Config.N != 125 {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestStoreDegradedMode(t *testing.T) {
	s := NewStore(nil)
	if s.Enabled() {
		t.Fatal("nil manager must disable the store")
	}
	if err := s.Save(Record{ID: "x"}); err != nil {
		t.Fatalf("degraded Save returned %v", err)
	}
	records, err := s.List()
	if err != nil || len(records) != 0 {
		t.Fatalf("degraded List = %v, %v", records, err)
	}
}

func TestStoreSaveAndList(t *testing.T) {
	s := testStore(t)
	cfg := galaxy.DefaultConfig()
	cfg.N = 40
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	for k := 0; k < 3; k++ {
		sum := precompute.Summary{Frames: 10 + k, Changes: 100 * k, Digest: fmt.Sprintf("%08dffff", k)}
		if err := s.Save(NewRecord(cfg, sum, base.Add(time.Duration(k)*time.Second))); err != nil {
			t.Fatal(err)
		}
	}

	records, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[2].Frames != 12 || records[2].Config.N != 40 {
		t.Fatalf("last record %+v", records[2])
	}
	if !records[0].CreatedAt.Equal(base) {
		t.Fatalf("created at %v, want %v", records[0].CreatedAt, base)
	}
}

func TestStoreSaveSameIDOnce(t *testing.T) {
	s := testStore(t)
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rec := NewRecord(galaxy.DefaultConfig(), precompute.Summary{Frames: 3, Digest: "abcdef0123456789"}, at)

	for k := 0; k < 2; k++ {
		if err := s.Save(rec); err != nil {
			t.Fatal(err)
		}
	}
	records, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records for one id, want 1", len(records))
	}
}

func TestStoreDeletesPrunedRecords(t *testing.T) {
	s := testStore(t)
	s.limit = 2
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	var ids []string
	for k := 0; k < 3; k++ {
		rec := NewRecord(galaxy.DefaultConfig(), precompute.Summary{Frames: k, Digest: fmt.Sprintf("%08dffff", k)}, base.Add(time.Duration(k)*time.Second))
		ids = append(ids, rec.ID)
		if err := s.Save(rec); err != nil {
			t.Fatal(err)
		}
	}

	if s.manager.ObjectPropExists(runsObject, ids[0]) {
		t.Fatalf("pruned run %s still stored", ids[0])
	}
	records, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 || records[0].ID != ids[1] || records[1].ID != ids[2] {
		t.Fatalf("records after pruning: %+v", records)
	}
}
