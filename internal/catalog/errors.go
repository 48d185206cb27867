package catalog

import "errors"

// Sentinel errors.
var (
	ErrLoadCatalog    = errors.New("load catalog failed")
	ErrInvalidCatalog = errors.New("invalid catalog")
)
