// Package config loads the library configuration from YAML.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ghodss/yaml"

	"github.com/tabwork/gridbase/formats"
	"github.com/tabwork/gridbase/query"
	"github.com/tabwork/gridbase/record"
	"github.com/tabwork/gridbase/storage"
)

// Config selects the storage backend and the session defaults.
type Config struct {
	// Storage is the registered backend type: hashmap, jsonfile, bbolt or
	// badger.
	Storage string `json:"storage"`
	// Location is the backend's data directory. Unused by hashmap.
	Location string `json:"location"`
	// Format is the snapshot serialization: json, cbor or msgpack.
	Format string `json:"format"`
	// PageSize is the default page size of new sessions.
	PageSize int `json:"pageSize"`
	// LogLevel is the log severity: trace, debug, info, warning, error.
	LogLevel string `json:"logLevel"`
	// SeedFile optionally points to a JSON array of records that seeds the
	// store instead of the built-in dataset when the backend is empty.
	SeedFile string `json:"seedFile"`
}

// Default returns the built-in configuration: a jsonfile backend in
// ./data with the standard page size.
func Default() Config {
	return Config{
		Storage:  "jsonfile",
		Location: "data",
		Format:   "json",
		PageSize: query.DefaultPageSize,
		LogLevel: "info",
	}
}

// LoadFile reads a YAML config file over the defaults. A missing file
// yields the defaults.
func LoadFile(path string) (Config, error) {
	c := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return c, err
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return c, nil
}

// OpenStorage creates the configured storage backend.
func (c Config) OpenStorage() (storage.Interface, error) {
	format, err := formats.Parse(c.Format)
	if err != nil {
		return nil, err
	}
	return storage.Create(c.Storage, c.Location, format)
}

// LoadSeed reads the configured seed file. Without one it returns nil,
// selecting the built-in dataset.
func (c Config) LoadSeed() ([]record.Record, error) {
	if c.SeedFile == "" {
		return nil, nil
	}
	data, err := os.ReadFile(c.SeedFile)
	if err != nil {
		return nil, err
	}
	var records []record.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", c.SeedFile, err)
	}
	return records, nil
}
