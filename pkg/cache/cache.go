// Package cache provides pluggable result caching for expensive group
// computations.
//
// Constructing a stabilizer chain, enumerating block systems or searching
// for a decomposition can dominate a CLI invocation. Results are pure
// functions of the generator expression and the construction options, so
// they cache well: keys are derived by hashing both.
//
// # Backends
//
//   - [FileCache]: entries stored as JSON files under a directory
//   - [NullCache]: no-op backend for tests and --no-cache
//
// # Keys
//
// Keys are produced by a [Keyer] so that embedders (for example a
// multi-tenant server) can namespace them; see [ScopedKeyer].
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL. Zero means no expiry;
	// a negative TTL stores an entry that is already expired.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// GroupKeyOpts captures the construction options that change a cached
// chain. Two runs with equal expressions and equal opts may share an
// entry.
type GroupKeyOpts struct {
	Construction string `json:"construction"`
	Storage      string `json:"storage"`
	Seed         uint64 `json:"seed"`
}

// Keyer derives cache keys for the cacheable computation kinds.
type Keyer interface {
	// GroupKey keys a constructed stabilizer chain by canonical generator
	// expression and construction options.
	GroupKey(expr string, opts GroupKeyOpts) string

	// ResultKey keys a derived result ("order", "blocks", "disjoint",
	// "wreath") of an already keyed group.
	ResultKey(kind, groupKey string) string
}

// DefaultKeyer is the standard key derivation: SHA-256 over the canonical
// inputs, prefixed with the entry kind.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GroupKey generates a key for a constructed stabilizer chain.
func (k *DefaultKeyer) GroupKey(expr string, opts GroupKeyOpts) string {
	return hashKey("group", expr, opts)
}

// ResultKey generates a key for a derived result of a keyed group.
func (k *DefaultKeyer) ResultKey(kind, groupKey string) string {
	return hashKey(kind, groupKey)
}
