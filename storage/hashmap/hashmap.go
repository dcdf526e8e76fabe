// Package hashmap provides a volatile in-memory storage backend. It is the
// default for tests and for running without persistence.
package hashmap

import (
	"sync"

	"github.com/tabwork/gridbase/record"
	"github.com/tabwork/gridbase/storage"
)

// HashMap storage. Snapshots are copied in and out, so callers can never
// alias the stored slice.
type HashMap struct {
	lock     sync.RWMutex
	snapshot []record.Record
	saved    bool
}

func init() {
	_ = storage.Register("hashmap", func(location string, format uint8) (storage.Interface, error) {
		return New(), nil
	})
}

// New creates an empty in-memory backend.
func New() *HashMap {
	return &HashMap{}
}

// NewSeeded creates an in-memory backend that already holds a snapshot.
func NewSeeded(records []record.Record) *HashMap {
	hm := New()
	_ = hm.Save(records)
	return hm
}

// Load returns the current snapshot.
func (hm *HashMap) Load() ([]record.Record, error) {
	hm.lock.RLock()
	defer hm.lock.RUnlock()

	if !hm.saved {
		return nil, storage.ErrNoSnapshot
	}
	return copySnapshot(hm.snapshot), nil
}

// Save replaces the current snapshot.
func (hm *HashMap) Save(records []record.Record) error {
	hm.lock.Lock()
	defer hm.lock.Unlock()

	hm.snapshot = copySnapshot(records)
	hm.saved = true
	return nil
}

// SaveCount is only used by tests and returns how many records are held.
func (hm *HashMap) SaveCount() int {
	hm.lock.RLock()
	defer hm.lock.RUnlock()

	return len(hm.snapshot)
}

// Shutdown discards the snapshot.
func (hm *HashMap) Shutdown() error {
	hm.lock.Lock()
	defer hm.lock.Unlock()

	hm.snapshot = nil
	hm.saved = false
	return nil
}

func copySnapshot(records []record.Record) []record.Record {
	dup := make([]record.Record, 0, len(records))
	for _, r := range records {
		dup = append(dup, r.Copy())
	}
	return dup
}
