package cache

// ScopedKeyer wraps a Keyer with a prefix.
// The server uses it to keep its entries apart from CLI entries when both
// share one Redis instance.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "valvepath:server:")
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

// NetworkKey generates a prefixed key for network caching.
func (k *ScopedKeyer) NetworkKey(inputHash, entry string) string {
	return k.prefix + k.inner.NetworkKey(inputHash, entry)
}

// ResultKey generates a prefixed key for result caching.
func (k *ScopedKeyer) ResultKey(networkHash string, opts ResultKeyOpts) string {
	return k.prefix + k.inner.ResultKey(networkHash, opts)
}
