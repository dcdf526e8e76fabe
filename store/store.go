// Package store owns the canonical record collection. Every mutation runs
// through it and triggers a full-collection persist to the configured
// storage backend, so the backend always holds a complete snapshot.
//
// The store is deliberately dumb-durable: it does not validate email
// uniqueness or age ranges. Callers validate through the validate and
// session packages before committing.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/VictoriaMetrics/metrics"
	"github.com/bluele/gcache"
	"github.com/tevino/abool"

	"github.com/tabwork/gridbase/accessor"
	"github.com/tabwork/gridbase/log"
	"github.com/tabwork/gridbase/record"
	"github.com/tabwork/gridbase/storage"
)

const findCacheSize = 64

var (
	createsTotal  = metrics.GetOrCreateCounter("gridbase_store_creates_total")
	updatesTotal  = metrics.GetOrCreateCounter("gridbase_store_updates_total")
	deletesTotal  = metrics.GetOrCreateCounter("gridbase_store_deletes_total")
	persistsTotal = metrics.GetOrCreateCounter("gridbase_store_persists_total")
)

// Patch is a partial record update keyed by JSON field name. Keys present in
// the patch replace the corresponding record field; "children" replaces the
// whole children sequence. The "id" key is ignored, ids are immutable.
type Patch map[string]interface{}

// Store owns the canonical collection.
type Store struct {
	lock    sync.RWMutex
	records []record.Record
	backend storage.Interface
	loaded  *abool.AtomicBool

	// read cache for FindByID, purged on every mutation
	findCache gcache.Cache
}

// New creates a store on the given backend. It loads the persisted snapshot,
// or seeds from the given dataset (DefaultSeed when nil) and persists
// immediately.
func New(backend storage.Interface, seed []record.Record) (*Store, error) {
	s := &Store{
		backend:   backend,
		loaded:    abool.New(),
		findCache: gcache.New(findCacheSize).LRU().Build(),
	}

	snapshot, err := backend.Load()
	switch {
	case err == nil:
		s.records = snapshot
		log.Debugf("store: loaded %d records", len(snapshot))
	case errors.Is(err, storage.ErrNoSnapshot):
		if seed == nil {
			seed = DefaultSeed()
		}
		s.records = make([]record.Record, 0, len(seed))
		for _, r := range seed {
			s.records = append(s.records, r.Copy())
		}
		if err := s.persist(); err != nil {
			return nil, fmt.Errorf("failed to persist seed: %w", err)
		}
		log.Infof("store: seeded %d records", len(s.records))
	default:
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	s.loaded.Set()
	return s, nil
}

// Create assigns the next free id to the given record, appends it and
// persists. The assigned id is max(existing ids)+1, or 1 for an empty
// collection; deleted ids are never reused within a session. It returns the
// stored record.
func (s *Store) Create(r record.Record) (record.Record, error) {
	if s.loaded.IsNotSet() {
		return record.Record{}, ErrNotLoaded
	}
	s.lock.Lock()
	defer s.lock.Unlock()

	nextID := 1
	for i := range s.records {
		if s.records[i].ID >= nextID {
			nextID = s.records[i].ID + 1
		}
	}
	r.ID = nextID
	s.records = append(s.records, r.Copy())

	createsTotal.Inc()
	s.findCache.Purge()
	log.Debugf("store: created record %d", r.ID)
	return r, s.persist()
}

// Update merges the given fields into the record with the given id and
// persists. A missing id is a silent no-op, matching a best-effort
// persistence layer. An invalid patch (unknown type for an existing field)
// is an error and leaves the record untouched.
func (s *Store) Update(id int, fields Patch) error {
	if s.loaded.IsNotSet() {
		return ErrNotLoaded
	}
	s.lock.Lock()
	defer s.lock.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		log.Debugf("store: update of missing record %d ignored", id)
		return nil
	}

	updated, err := applyPatch(s.records[idx], fields)
	if err != nil {
		return err
	}
	s.records[idx] = updated

	updatesTotal.Inc()
	s.findCache.Purge()
	log.Debugf("store: updated record %d (%d fields)", id, len(fields))
	return s.persist()
}

// Delete removes the record with the given id and persists. A missing id is
// a silent no-op. Callers are responsible for any confirmation gate.
func (s *Store) Delete(id int) error {
	if s.loaded.IsNotSet() {
		return ErrNotLoaded
	}
	s.lock.Lock()
	defer s.lock.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		log.Debugf("store: delete of missing record %d ignored", id)
		return nil
	}
	s.records = append(s.records[:idx], s.records[idx+1:]...)

	deletesTotal.Inc()
	s.findCache.Purge()
	log.Debugf("store: deleted record %d", id)
	return s.persist()
}

// ToggleActive flips the active flag of the record with the given id and
// persists. A missing id is a silent no-op.
func (s *Store) ToggleActive(id int) error {
	if s.loaded.IsNotSet() {
		return ErrNotLoaded
	}
	s.lock.Lock()
	defer s.lock.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		log.Debugf("store: toggle of missing record %d ignored", id)
		return nil
	}
	s.records[idx].Active = !s.records[idx].Active

	updatesTotal.Inc()
	s.findCache.Purge()
	return s.persist()
}

// FindByID returns a copy of the record with the given id.
func (s *Store) FindByID(id int) (record.Record, error) {
	if s.loaded.IsNotSet() {
		return record.Record{}, ErrNotLoaded
	}
	if cached, err := s.findCache.Get(id); err == nil {
		return cached.(record.Record).Copy(), nil
	}

	s.lock.RLock()
	defer s.lock.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return record.Record{}, ErrNotFound
	}

	r := s.records[idx].Copy()
	_ = s.findCache.Set(id, r)
	return r.Copy(), nil
}

// All returns a copy of the full collection in storage order.
func (s *Store) All() []record.Record {
	s.lock.RLock()
	defer s.lock.RUnlock()

	all := make([]record.Record, 0, len(s.records))
	for i := range s.records {
		all = append(all, s.records[i].Copy())
	}
	return all
}

// AllEmails returns every stored email, as stored. Callers normalize.
func (s *Store) AllEmails() []string {
	s.lock.RLock()
	defer s.lock.RUnlock()

	emails := make([]string, 0, len(s.records))
	for i := range s.records {
		emails = append(emails, s.records[i].Email)
	}
	return emails
}

// Size returns the number of stored records.
func (s *Store) Size() int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return len(s.records)
}

// Shutdown shuts down the storage backend. Store operations after Shutdown
// fail with ErrNotLoaded.
func (s *Store) Shutdown() error {
	s.loaded.UnSet()
	return s.backend.Shutdown()
}

// persist writes the full collection to the backend. Callers must hold the
// write lock.
func (s *Store) persist() error {
	persistsTotal.Inc()
	if err := s.backend.Save(s.records); err != nil {
		log.Errorf("store: failed to persist %d records: %s", len(s.records), err)
		return err
	}
	return nil
}

// indexOf returns the slice index of the record with the given id, or -1.
// Callers must hold the lock.
func (s *Store) indexOf(id int) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

// applyPatch merges fields into a copy of r through the JSON accessor, so a
// patch needs no knowledge of the record struct beyond field names.
func applyPatch(r record.Record, fields Patch) (record.Record, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return r, err
	}
	doc := string(data)

	acc := accessor.NewJSONAccessor(&doc)
	for key, value := range fields {
		if key == "id" {
			continue
		}
		if err := acc.Set(key, value); err != nil {
			return r, fmt.Errorf("%w: %s", ErrInvalidPatch, err)
		}
	}

	var updated record.Record
	if err := json.Unmarshal([]byte(doc), &updated); err != nil {
		return r, fmt.Errorf("%w: %s", ErrInvalidPatch, err)
	}
	updated.ID = r.ID
	return updated, nil
}
