package cache

// ScopedKeyer wraps a Keyer with a prefix so that several users of one
// backend do not see each other's entries.
//
// Example usage:
//
//	// The service shares Redis with other deployments.
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "jigsaw:")
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

// OptionsHash delegates to the wrapped keyer; hashes are not prefixed.
func (k *ScopedKeyer) OptionsHash(opts any) string {
	return k.inner.OptionsHash(opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(optionsHash, format string) string {
	return k.prefix + k.inner.ArtifactKey(optionsHash, format)
}
