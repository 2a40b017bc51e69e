package cache

// ScopedKeyer wraps a Keyer with a prefix, so several deployments or API
// versions can share one backend without colliding.
//
//	v1 := NewScopedKeyer(NewDefaultKeyer(), "v1:")
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

// LayoutKey generates a prefixed layout key.
func (k *ScopedKeyer) LayoutKey(opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(opts)
}

// ViewportKey generates a prefixed viewport key.
func (k *ScopedKeyer) ViewportKey(opts ViewportKeyOpts) string {
	return k.prefix + k.inner.ViewportKey(opts)
}
