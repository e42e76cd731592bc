// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about group construction, decomposition runs, and cache
// operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetConstructionHooks(&myConstructionHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Construction().OnStart(degree, numGens)
//	// ... build the stabilizer chain ...
//	observability.Construction().OnComplete(degree, baseLen, numStrong, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Construction Hooks
// =============================================================================

// ConstructionHooks receives events from stabilizer chain construction.
type ConstructionHooks interface {
	// OnStart records the beginning of a chain construction.
	OnStart(degree, numGens int)

	// OnComplete records a finished chain with its base length and strong
	// generator count.
	OnComplete(degree, baseLen, numStrong int, duration time.Duration)
}

// =============================================================================
// Decomposition Hooks
// =============================================================================

// DecompositionHooks receives events from decomposition runs.
type DecompositionHooks interface {
	// OnStart records the beginning of a decomposition of the named kind
	// ("disjoint", "wreath").
	OnStart(kind string, degree int)

	// OnComplete records a finished decomposition and the number of
	// components it produced.
	OnComplete(kind string, degree, numComponents int, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopConstructionHooks is a no-op implementation of ConstructionHooks.
type NoopConstructionHooks struct{}

func (NoopConstructionHooks) OnStart(int, int)                        {}
func (NoopConstructionHooks) OnComplete(int, int, int, time.Duration) {}

// NoopDecompositionHooks is a no-op implementation of DecompositionHooks.
type NoopDecompositionHooks struct{}

func (NoopDecompositionHooks) OnStart(string, int)                        {}
func (NoopDecompositionHooks) OnComplete(string, int, int, time.Duration) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	constructionHooks  ConstructionHooks  = NoopConstructionHooks{}
	decompositionHooks DecompositionHooks = NoopDecompositionHooks{}
	cacheHooks         CacheHooks         = NoopCacheHooks{}
	hooksMu            sync.RWMutex
)

// SetConstructionHooks registers custom construction hooks.
// This should be called once at application startup before any group construction.
func SetConstructionHooks(h ConstructionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		constructionHooks = h
	}
}

// SetDecompositionHooks registers custom decomposition hooks.
// This should be called once at application startup before any decomposition runs.
func SetDecompositionHooks(h DecompositionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		decompositionHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Construction returns the registered construction hooks.
func Construction() ConstructionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return constructionHooks
}

// Decomposition returns the registered decomposition hooks.
func Decomposition() DecompositionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return decompositionHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	constructionHooks = NoopConstructionHooks{}
	decompositionHooks = NoopDecompositionHooks{}
	cacheHooks = NoopCacheHooks{}
}
