// Package badger provides a badger-backed storage backend.
package badger

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger"

	"github.com/tabwork/gridbase/formats"
	"github.com/tabwork/gridbase/record"
	"github.com/tabwork/gridbase/storage"
)

// marker key written on first save, so an empty collection is
// distinguishable from a missing snapshot
var snapshotKey = []byte("!snapshot")

var recordPrefix = []byte("r/")

// Badger storage.
type Badger struct {
	db     *badger.DB
	format uint8
}

func init() {
	_ = storage.Register("badger", func(location string, format uint8) (storage.Interface, error) {
		return New(location, format)
	})
}

// New opens/creates a badger database in the given directory.
func New(location string, format uint8) (*Badger, error) {
	opts := badger.DefaultOptions(location)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Badger{
		db:     db,
		format: format,
	}, nil
}

// Load reads all records, ordered by id.
func (b *Badger) Load() ([]record.Record, error) {
	var records []record.Record

	err := b.db.View(func(txn *badger.Txn) error {
		if _, err := txn.Get(snapshotKey); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNoSnapshot
			}
			return err
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = recordPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				var r record.Record
				if err := formats.Load(value, &r); err != nil {
					return fmt.Errorf("%w: %s", storage.ErrCorrupt, err)
				}
				records = append(records, r)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

// Save replaces all stored records with the given collection.
func (b *Badger) Save(records []record.Record) error {
	return b.db.Update(func(txn *badger.Txn) error {
		// drop the previous snapshot
		opts := badger.DefaultIteratorOptions
		opts.Prefix = recordPrefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		var stale [][]byte
		for it.Rewind(); it.Valid(); it.Next() {
			stale = append(stale, it.Item().KeyCopy(nil))
		}
		it.Close()
		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}

		for _, r := range records {
			data, err := formats.Dump(r, b.format)
			if err != nil {
				return err
			}
			if err := txn.Set(idKey(r.ID), data); err != nil {
				return err
			}
		}
		return txn.Set(snapshotKey, []byte{1})
	})
}

// Shutdown closes the database.
func (b *Badger) Shutdown() error {
	return b.db.Close()
}

func idKey(id int) []byte {
	key := make([]byte, 0, len(recordPrefix)+8)
	key = append(key, recordPrefix...)
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(id))
	return append(key, buf[:]...)
}
