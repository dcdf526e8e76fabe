package storage

import (
	"fmt"
	"sync"
)

// A Factory creates a new backend of its type. The location is a directory
// or file path, depending on the backend. The format selects the snapshot
// serialization and may be formats.AUTO.
type Factory func(location string, format uint8) (Interface, error)

var (
	backends     = make(map[string]Factory)
	backendsLock sync.Mutex
)

// Register registers a new backend type. It is usually called from the
// backend package's init.
func Register(name string, factory Factory) error {
	backendsLock.Lock()
	defer backendsLock.Unlock()

	if _, ok := backends[name]; ok {
		return fmt.Errorf("backend %q already registered", name)
	}

	backends[name] = factory
	return nil
}

// Create starts a backend of the given registered type at location.
func Create(name, location string, format uint8) (Interface, error) {
	backendsLock.Lock()
	defer backendsLock.Unlock()

	factory, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotRegistered, name)
	}

	return factory(location, format)
}
