package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// This is useful behind the HTTP API where different callers need
// separate cache namespaces.
//
// Example usage:
//
//	// Per-caller keys
//	callerKeyer := NewScopedKeyer(NewDefaultKeyer(), "caller:abc123:")
//
//	// Shared keys
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// GroupKey generates a prefixed key for a constructed stabilizer chain.
func (k *ScopedKeyer) GroupKey(expr string, opts GroupKeyOpts) string {
	return k.prefix + k.inner.GroupKey(expr, opts)
}

// ResultKey generates a prefixed key for a derived result.
func (k *ScopedKeyer) ResultKey(kind, groupKey string) string {
	return k.prefix + k.inner.ResultKey(kind, groupKey)
}
