package account

import "errors"

// Sentinel errors.
var (
	ErrNotArtist      = errors.New("only artists can edit a profile")
	ErrInvalidUser    = errors.New("invalid user")
	ErrInvalidProfile = errors.New("invalid profile")
	ErrPersist        = errors.New("persist account")
)
