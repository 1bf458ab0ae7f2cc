package cache

// Keyer builds deterministic cache keys for pipeline artifacts. Equal
// inputs always produce equal keys, so cached results can be shared across
// processes and runs.
type Keyer interface {
	// DiagramKey keys a normalized diagram by the identity string of the
	// composition it came from.
	DiagramKey(compositionKey string) string

	// CircuitKey keys a bound circuit by the hash of its diagram and the
	// binding options.
	CircuitKey(diagramHash string, opts CircuitKeyOpts) string

	// ArtifactKey keys a rendered artifact by the hash of its source and
	// the output format.
	ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string
}

// CircuitKeyOpts carries everything that changes a bound circuit:
// the ansatz selection, its configuration, and the parameter vector.
type CircuitKeyOpts struct {
	Ansatz string    `json:"ansatz"`
	Axis   string    `json:"axis,omitempty"`
	Width  int       `json:"width,omitempty"`
	Depth  int       `json:"depth,omitempty"`
	Params []float64 `json:"params,omitempty"`
}

// ArtifactKeyOpts carries the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// DefaultKeyer hashes inputs into namespaced keys: diagram:…, circuit:…,
// artifact:….
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DiagramKey generates a key for a normalized diagram.
func (k *DefaultKeyer) DiagramKey(compositionKey string) string {
	return hashKey("diagram", compositionKey)
}

// CircuitKey generates a key for a bound circuit.
func (k *DefaultKeyer) CircuitKey(diagramHash string, opts CircuitKeyOpts) string {
	return hashKey("circuit", diagramHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sourceHash, opts)
}
