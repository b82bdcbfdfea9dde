// Package store holds the persistence layer: domain row types, the store
// interfaces the core operates through, and Postgres plus in-memory
// implementations of each.
package store

import "errors"

// ErrConflict is returned when a write violates a uniqueness constraint,
// e.g. registering an already-taken email.
var ErrConflict = errors.New("conflict")
