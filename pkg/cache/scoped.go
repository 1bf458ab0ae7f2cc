package cache

// ScopedKeyer wraps a Keyer with a prefix, giving callers a private key
// namespace inside a shared cache. The pipeline scopes its keys by schema
// version so a format change never resurrects stale entries.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every generated
// key. A nil inner keyer defaults to [NewDefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// DiagramKey generates a prefixed diagram key.
func (k *ScopedKeyer) DiagramKey(compositionKey string) string {
	return k.prefix + k.inner.DiagramKey(compositionKey)
}

// CircuitKey generates a prefixed circuit key.
func (k *ScopedKeyer) CircuitKey(diagramHash string, opts CircuitKeyOpts) string {
	return k.prefix + k.inner.CircuitKey(diagramHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sourceHash, opts)
}
