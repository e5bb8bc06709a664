// Package cache stores rendered puzzle artifacts.
//
// # Overview
//
// Generating and rendering a large puzzle is cheap but not free, and the HTTP
// service tends to see the same configuration requested over and over. The
// [Cache] interface is a small byte store with per-entry TTLs; backends are:
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the service
//
// # Keys
//
// Keys are built by a [Keyer] so that every component agrees on the layout.
// [DefaultKeyer] hashes the canonical options of a puzzle; [ScopedKeyer]
// prepends a namespace.
//
// Only deterministic puzzles are cached: a puzzle requested with seed zero is
// different on every run, so callers must not store it.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl keeps the entry until deleted.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}
