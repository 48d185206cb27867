package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrCorrupt       = errors.New("stored value is corrupt")
	ErrUnknownDriver = errors.New("unknown store driver")
	ErrClosed        = errors.New("store closed")
)
