package cache

// ScopedKeyer wraps a Keyer with a prefix so that keys from different
// sessions never collide.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "session:"+id+":")
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

// Prefix returns the prefix added to every key.
func (k *ScopedKeyer) Prefix() string { return k.prefix }

// ExportKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ExportKey(fingerprint string, opts ExportKeyOpts) string {
	return k.prefix + k.inner.ExportKey(fingerprint, opts)
}
