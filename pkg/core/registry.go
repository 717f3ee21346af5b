package core

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"studentdb/pkg/algo"
	"studentdb/pkg/bench"
	"studentdb/pkg/common"
	"studentdb/pkg/config"
	"studentdb/pkg/core/memory"
	"studentdb/pkg/monitor"
	"studentdb/pkg/storage"
)

var (
	ErrDuplicateID = errors.New("student id already registered")
	ErrNotFound    = errors.New("student not found")
	ErrInvalid     = errors.New("invalid student")
)

// SeedStudents is the sample data written to an empty store.
var SeedStudents = []common.Record{
	{ID: "10115001", Name: "Andi Pratama", Major: "Teknik Informatika", Score: 3.75},
	{ID: "10115023", Name: "Budi Santoso", Major: "Sistem Informasi", Score: 3.20},
	{ID: "10115045", Name: "Citra Dewi", Major: "Desain Komunikasi Visual", Score: 3.90},
}

// Registry owns the student collection: the in-memory roster, its backend
// and workload counters. Sort and Search hand the algorithm library a
// snapshot, never the roster itself.
type Registry struct {
	writeMu sync.Mutex
	roster  *memory.Roster
	backend storage.Backend
	stats   *monitor.WorkloadStats
	conf    *config.Config
}

// Open opens the configured backend and builds a Registry over it.
func Open(cfg *config.Config) (*Registry, error) {
	backend, err := storage.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		return nil, err
	}
	reg, err := NewRegistry(cfg, backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return reg, nil
}

func NewRegistry(cfg *config.Config, backend storage.Backend) (*Registry, error) {
	reg := &Registry{
		roster:  memory.NewRoster(32),
		backend: backend,
		stats:   monitor.NewWorkloadStats(),
		conf:    cfg,
	}
	if err := reg.recover(); err != nil {
		return nil, err
	}
	if reg.roster.Count() == 0 && cfg.Seed.Enabled {
		log.Printf("[Registry] Empty store, seeding %d sample students", len(SeedStudents))
		if err := reg.Replace(SeedStudents); err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
	}
	return reg, nil
}

func (r *Registry) recover() error {
	records, err := r.backend.LoadAll()
	if err != nil {
		return fmt.Errorf("load students: %w", err)
	}
	for _, rec := range records {
		r.roster.Put(rec)
	}
	log.Printf("[Registry] Loaded %d students from %s backend", len(records), r.conf.Storage.Driver)
	return nil
}

func normalize(rec common.Record) common.Record {
	rec.ID = rec.ID.Normalize()
	rec.Name = strings.TrimSpace(rec.Name)
	rec.Major = strings.TrimSpace(rec.Major)
	rec.Email = strings.TrimSpace(rec.Email)
	return rec
}

func (r *Registry) Add(rec common.Record) error {
	rec = normalize(rec)
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if r.roster.Has(rec.ID) {
		return fmt.Errorf("%w: %s", ErrDuplicateID, rec.ID)
	}
	if err := r.backend.Write(rec); err != nil {
		return err
	}
	r.roster.Put(rec)
	r.stats.RecordWrite()
	return nil
}

// Update replaces the student stored under id with rec. rec may carry a new
// id as long as no other student already uses it.
func (r *Registry) Update(id common.StudentID, rec common.Record) error {
	rec = normalize(rec)
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if !r.roster.Has(id) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	idChanged := !rec.ID.Equal(id)
	if idChanged && r.roster.Has(rec.ID) {
		return fmt.Errorf("%w: %s", ErrDuplicateID, rec.ID)
	}

	// New row first: a failed write leaves the old student untouched.
	if err := r.backend.Write(rec); err != nil {
		return err
	}
	if idChanged {
		if err := r.backend.Delete(id); err != nil {
			if undoErr := r.backend.Delete(rec.ID); undoErr != nil {
				log.Printf("[Registry] Update %s -> %s: rollback of new row failed: %v", id, rec.ID, undoErr)
			}
			return err
		}
		r.roster.Delete(id)
	}
	r.roster.Put(rec)
	r.stats.RecordWrite()
	return nil
}

func (r *Registry) Delete(id common.StudentID) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if !r.roster.Has(id) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := r.backend.Delete(id); err != nil {
		return err
	}
	r.roster.Delete(id)
	r.stats.RecordWrite()
	return nil
}

func (r *Registry) Get(id common.StudentID) (common.Record, bool) {
	return r.roster.Get(id)
}

// List returns a copy of every student ordered by id.
func (r *Registry) List() []common.Record {
	return r.roster.Snapshot()
}

func (r *Registry) Count() int {
	return r.roster.Count()
}

// Replace swaps the whole collection for records, as an import does. Every
// record is validated before anything is written.
func (r *Registry) Replace(records []common.Record) error {
	clean := make([]common.Record, 0, len(records))
	seen := make(map[common.StudentID]bool, len(records))
	for i, rec := range records {
		rec = normalize(rec)
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("record %d: %w: %w", i, ErrInvalid, err)
		}
		if seen[rec.ID] {
			return fmt.Errorf("record %d: %w: %s", i, ErrDuplicateID, rec.ID)
		}
		seen[rec.ID] = true
		clean = append(clean, rec)
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if err := r.backend.ReplaceAll(clean); err != nil {
		return err
	}
	r.roster.Clear()
	for _, rec := range clean {
		r.roster.Put(rec)
		r.stats.RecordWrite()
	}
	return nil
}

func (r *Registry) Reset() error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if err := r.backend.Truncate(); err != nil {
		return err
	}
	r.roster.Clear()
	return nil
}

// Iterations is the benchmark loop count applied to Sort and Search.
func (r *Registry) Iterations() int {
	return r.conf.Bench.Iterations
}

// Sort runs alg over a snapshot of the collection and benchmarks it.
func (r *Registry) Sort(alg algo.SortAlgorithm, key algo.Key, order algo.Order) (bench.Bundle, error) {
	b, err := bench.Sort(alg, r.List(), key, order, r.Iterations())
	if err != nil {
		return b, err
	}
	r.stats.RecordSort()
	return b, nil
}

func (r *Registry) Search(alg algo.SearchAlgorithm, key algo.Key, query string) (bench.Bundle, error) {
	b, err := bench.Search(alg, r.List(), key, query, r.Iterations())
	if err != nil {
		return b, err
	}
	r.stats.RecordSearch(b.Found)
	return b, nil
}

func (r *Registry) Stats() map[string]interface{} {
	return map[string]interface{}{
		"student_count":    r.roster.Count(),
		"storage_driver":   r.conf.Storage.Driver,
		"bench_iterations": r.Iterations(),
		"workload":         r.stats.Snapshot(),
	}
}

func (r *Registry) Close() {
	r.backend.Close()
}
