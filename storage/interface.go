// Package storage defines the persistence boundary of the record store and a
// registry for pluggable backends. A backend persists the full record
// collection as one snapshot; partial writes do not exist.
package storage

import (
	"github.com/tabwork/gridbase/record"
)

// Interface is the persistence API the record store writes through. Save
// always receives the complete collection.
type Interface interface {
	// Load returns the last persisted snapshot. It returns ErrNoSnapshot
	// when the backend holds no data yet.
	Load() ([]record.Record, error)

	// Save persists the complete collection, replacing any previous
	// snapshot.
	Save(records []record.Record) error

	// Shutdown releases backend resources.
	Shutdown() error
}
