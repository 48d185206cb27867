package share

import "errors"

// Sentinel errors for share capabilities.
var (
	ErrShareUnavailable     = errors.New("share unavailable")
	ErrClipboardUnavailable = errors.New("clipboard unavailable")
)
