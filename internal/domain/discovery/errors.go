package discovery

import "errors"

// Sentinel errors for criteria parsing.
var (
	ErrUnknownCriterion = errors.New("unknown criterion")
	ErrUnknownSort      = errors.New("unknown sort mode")
)
