package kv

import (
	"errors"
	"time"
)

// ErrNotFound is returned by Get and Del when the key is absent or its
// TTL has lapsed. Callers treat the two cases identically.
var ErrNotFound = errors.New("kv: key not found")

// KeyValueStore represents an interface for an expiring key-value storage
// system providing basic operations like Set, Get and Delete
type KeyValueStore interface {
	// Set stores a key-value pair with an expiration duration
	Set(key, value string, exp time.Duration) error
	// Get retrieves the value associated with the given key
	Get(key string) (string, error)
	// Del removes the key-value pair and returns the deleted key
	Del(key string) (string, error)
	// Close releases the underlying connection, if any
	Close() error
}
