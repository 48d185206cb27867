package queue

import "errors"

// Sentinel kinds for queue errors.
var (
	ErrQueueFull = errors.New("notification queue full")
)
