// Package history keeps a record of finished precomputation runs in the
// user's application data directory.
package history

import (
	"fmt"
	"log"
	"slices"
	"time"

	"galaxy-fx/internal/galaxy"
	"galaxy-fx/internal/precompute"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// AppName is the gdata application directory.
const AppName = "galaxy_fx"

const (
	runsObject    = "runs"
	indexProperty = "index"
	maxRecords    = 50
)

// Record describes one finished run.
type Record struct {
	ID          string        `yaml:"id"`
	CreatedAt   time.Time     `yaml:"createdAt"`
	Config      galaxy.Config `yaml:"config"`
	Frames      int           `yaml:"frames"`
	Changes     int           `yaml:"changes"`
	PeakChanges int           `yaml:"peakChanges"`
	Bytes       int64         `yaml:"bytes"`
	Digest      string        `yaml:"digest"`
}

// NewRecord builds a record from a run summary.
func NewRecord(cfg galaxy.Config, sum precompute.Summary, at time.Time) Record {
	id := at.UTC().Format("20060102-150405")
	if len(sum.Digest) >= 8 {
		id += "-" + sum.Digest[:8]
	}
	return Record{
		ID:          id,
		CreatedAt:   at.UTC(),
		Config:      cfg,
		Frames:      sum.Frames,
		Changes:     sum.Changes,
		PeakChanges: sum.PeakChanges,
		Bytes:       sum.Bytes,
		Digest:      sum.Digest,
	}
}

// Store persists records through gdata. A nil manager turns every operation
// into a no-op so generation never depends on writable app data.
type Store struct {
	manager *gdata.Manager
	limit   int
}

// Open creates a store under the given application name. On failure the
// returned store is usable in degraded mode alongside the error.
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return &Store{}, fmt.Errorf("open run history: %w", err)
	}
	return &Store{manager: m, limit: maxRecords}, nil
}

// NewStore wraps an existing manager, which may be nil.
func NewStore(m *gdata.Manager) *Store {
	return &Store{manager: m, limit: maxRecords}
}

// Enabled reports whether records are persisted.
func (s *Store) Enabled() bool { return s != nil && s.manager != nil }

// Save stores rec and adds it to the index, keeping the newest entries.
// Saving an ID that is already indexed replaces its record in place. Records
// pruned from the index are deleted.
func (s *Store) Save(rec Record) error {
	if !s.Enabled() {
		return nil
	}
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal run record: %w", err)
	}
	if err := s.manager.SaveObjectProp(runsObject, rec.ID, data); err != nil {
		return fmt.Errorf("failed to save run record: %w", err)
	}

	ids, err := s.index()
	if err != nil {
		return err
	}
	if slices.Contains(ids, rec.ID) {
		return nil
	}
	ids = append(ids, rec.ID)
	var pruned []string
	if len(ids) > s.limit {
		pruned = ids[:len(ids)-s.limit]
		ids = ids[len(ids)-s.limit:]
	}
	data, err = yaml.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to marshal run index: %w", err)
	}
	if err := s.manager.SaveObjectProp(runsObject, indexProperty, data); err != nil {
		return fmt.Errorf("failed to save run index: %w", err)
	}
	for _, id := range pruned {
		if err := s.manager.DeleteObjectProp(runsObject, id); err != nil {
			log.Printf("[history] failed to delete run %s: %v", id, err)
		}
	}
	log.Printf("[history] saved run %s", rec.ID)
	return nil
}

// List returns the indexed records, oldest first. Records whose data went
// missing are skipped.
func (s *Store) List() ([]Record, error) {
	if !s.Enabled() {
		return nil, nil
	}
	ids, err := s.index()
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(ids))
	for _, id := range ids {
		if !s.manager.ObjectPropExists(runsObject, id) {
			continue
		}
		data, err := s.manager.LoadObjectProp(runsObject, id)
		if err != nil {
			return records, fmt.Errorf("failed to load run %s: %w", id, err)
		}
		var rec Record
		if err := yaml.Unmarshal(data, &rec); err != nil {
			return records, fmt.Errorf("failed to unmarshal run %s: %w", id, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *Store) index() ([]string, error) {
	if !s.manager.ObjectPropExists(runsObject, indexProperty) {
		return nil, nil
	}
	data, err := s.manager.LoadObjectProp(runsObject, indexProperty)
	if err != nil {
		return nil, fmt.Errorf("failed to load run index: %w", err)
	}
	var ids []string
	if err := yaml.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run index: %w", err)
	}
	return ids, nil
}
