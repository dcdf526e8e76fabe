// Package jsonfile provides a single-file storage backend. The snapshot is
// written to a temporary file first and then renamed over the old one, so a
// crash mid-write never leaves a torn snapshot behind.
package jsonfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tabwork/gridbase/formats"
	"github.com/tabwork/gridbase/record"
	"github.com/tabwork/gridbase/storage"
)

const snapshotFile = "records.db"

// JSONFile storage. Despite the package name the on-disk format follows the
// configured formats type; JSON is only the default.
type JSONFile struct {
	path   string
	format uint8
}

func init() {
	_ = storage.Register("jsonfile", func(location string, format uint8) (storage.Interface, error) {
		return New(location, format)
	})
}

// New creates a file backend in the given directory.
func New(location string, format uint8) (*JSONFile, error) {
	if err := os.MkdirAll(location, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &JSONFile{
		path:   filepath.Join(location, snapshotFile),
		format: format,
	}, nil
}

// Load reads the snapshot file.
func (jf *JSONFile) Load() ([]record.Record, error) {
	data, err := os.ReadFile(jf.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, storage.ErrNoSnapshot
		}
		return nil, err
	}

	var records []record.Record
	if err := formats.Load(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s", storage.ErrCorrupt, err)
	}
	return records, nil
}

// Save writes the snapshot file atomically.
func (jf *JSONFile) Save(records []record.Record) error {
	data, err := formats.Dump(records, jf.format)
	if err != nil {
		return err
	}

	tmp := jf.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, jf.path)
}

// Shutdown is a no-op, the file is closed after every write.
func (jf *JSONFile) Shutdown() error {
	return nil
}
