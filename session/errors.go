package session

import (
	"errors"
)

// Errors.
var (
	ErrBadRow       = errors.New("session: row index out of range")
	ErrBadState     = errors.New("session: operation not allowed in current state")
	ErrUnknownField = errors.New("session: unknown field")
	ErrBadValue     = errors.New("session: value has wrong type for field")
	ErrBlocked      = errors.New("session: commit blocked by validation")
	ErrNotConfirmed = errors.New("session: deletion not confirmed")
	ErrNoForm       = errors.New("session: no add-column form open")
)
