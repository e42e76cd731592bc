package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Construction hooks
	c := NoopConstructionHooks{}
	c.OnStart(12, 2)
	c.OnComplete(12, 3, 5, time.Second)

	// Decomposition hooks
	d := NoopDecompositionHooks{}
	d.OnStart("disjoint", 12)
	d.OnComplete("disjoint", 12, 3, time.Second)

	// Cache hooks
	ch := NoopCacheHooks{}
	ch.OnCacheHit(ctx, "chain")
	ch.OnCacheMiss(ctx, "chain")
	ch.OnCacheSet(ctx, "chain", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Construction().(NoopConstructionHooks); !ok {
		t.Error("Construction() should return NoopConstructionHooks by default")
	}
	if _, ok := Decomposition().(NoopDecompositionHooks); !ok {
		t.Error("Decomposition() should return NoopDecompositionHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	// Set custom hooks
	customConstruction := &testConstructionHooks{}
	SetConstructionHooks(customConstruction)
	if Construction() != customConstruction {
		t.Error("SetConstructionHooks should set custom hooks")
	}

	customDecomposition := &testDecompositionHooks{}
	SetDecompositionHooks(customDecomposition)
	if Decomposition() != customDecomposition {
		t.Error("SetDecompositionHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Construction().(NoopConstructionHooks); !ok {
		t.Error("Reset() should restore NoopConstructionHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testConstructionHooks{}
	SetConstructionHooks(custom)

	// Setting nil should be ignored
	SetConstructionHooks(nil)

	if Construction() != custom {
		t.Error("SetConstructionHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testConstructionHooks struct{ NoopConstructionHooks }
type testDecompositionHooks struct{ NoopDecompositionHooks }
type testCacheHooks struct{ NoopCacheHooks }
