package store

import (
	"errors"
)

// Errors.
var (
	ErrNotFound     = errors.New("store: record not found")
	ErrNotLoaded    = errors.New("store: not loaded")
	ErrInvalidPatch = errors.New("store: invalid patch")
)
