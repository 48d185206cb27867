// Package repository persists board and account state in a string key-value
// store. Several backends implement KV; the typed repositories encode values
// as JSON on top of it.
package repository

import "context"

// Storage keys.
const (
	RequirementsKey = "community_requirements"
	UserKey         = "auth:user"
	ProfileKey      = "artist:profile"
)

// KV is a string key-value store.
type KV interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	// Close releases the backend.
	Close() error
}
