// Package bbolt provides a bbolt-backed storage backend. Each record is
// stored under its id; a snapshot save replaces the whole bucket in one
// transaction.
package bbolt

import (
	"encoding/binary"
	"fmt"
	"path/filepath"
	"sort"

	"go.etcd.io/bbolt"

	"github.com/tabwork/gridbase/formats"
	"github.com/tabwork/gridbase/record"
	"github.com/tabwork/gridbase/storage"
)

var bucketName = []byte("records")

// BBolt storage.
type BBolt struct {
	db     *bbolt.DB
	format uint8
}

func init() {
	_ = storage.Register("bbolt", func(location string, format uint8) (storage.Interface, error) {
		return New(location, format)
	})
}

// New opens/creates a bbolt database in the given directory.
func New(location string, format uint8) (*BBolt, error) {
	db, err := bbolt.Open(filepath.Join(location, "records.bbolt"), 0o600, nil)
	if err != nil {
		return nil, err
	}
	return &BBolt{
		db:     db,
		format: format,
	}, nil
}

// Load reads all records from the bucket, ordered by id.
func (b *BBolt) Load() ([]record.Record, error) {
	var records []record.Record

	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		if bucket == nil {
			return storage.ErrNoSnapshot
		}
		return bucket.ForEach(func(key, value []byte) error {
			var r record.Record
			if err := formats.Load(value, &r); err != nil {
				return fmt.Errorf("%w: record %x: %s", storage.ErrCorrupt, key, err)
			}
			records = append(records, r)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	// bucket iteration follows the binary key, which is id order
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

// Save replaces the bucket with the given collection.
func (b *BBolt) Save(records []record.Record) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketName) != nil {
			if err := tx.DeleteBucket(bucketName); err != nil {
				return err
			}
		}
		bucket, err := tx.CreateBucket(bucketName)
		if err != nil {
			return err
		}

		for _, r := range records {
			data, err := formats.Dump(r, b.format)
			if err != nil {
				return err
			}
			if err := bucket.Put(idKey(r.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// Shutdown closes the database.
func (b *BBolt) Shutdown() error {
	return b.db.Close()
}

func idKey(id int) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(id))
	return key
}
