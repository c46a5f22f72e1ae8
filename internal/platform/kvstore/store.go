// Package kvstore persists small string settings and counters.
// Memory, Redis and SQL (gorm) backends share the same method set.
package kvstore

import "errors"

var (
	// ErrEmptyKey is returned when a write is attempted with an empty key.
	ErrEmptyKey = errors.New("kvstore: empty key")
	// ErrUnavailable wraps backend failures (connection, query, transaction).
	ErrUnavailable = errors.New("kvstore: backend unavailable")
)
