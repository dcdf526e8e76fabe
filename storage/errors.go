package storage

import (
	"errors"
)

// Errors.
var (
	ErrNoSnapshot    = errors.New("storage: no snapshot persisted yet")
	ErrNotRegistered = errors.New("storage: backend type not registered")
	ErrCorrupt       = errors.New("storage: snapshot is corrupt")
)
