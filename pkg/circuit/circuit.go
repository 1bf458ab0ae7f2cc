package circuit

import (
	"slices"

	"github.com/toumix/tally/pkg/errors"
)

// LayerKind distinguishes the two layer variants.
type LayerKind int

const (
	// LayerGates is a layer of gates with identity wires in the gaps.
	LayerGates LayerKind = iota
	// LayerPermutation reorders wires without consuming them.
	LayerPermutation
)

// Gate is a named occupant of a contiguous wire run within a layer. The
// topology fields copy the box the gate was bound from; Params holds the
// parameter values the functor sliced out for it.
type Gate struct {
	Name   string    `json:"name"`
	Pos    int       `json:"pos"`
	In     int       `json:"in"`
	Out    int       `json:"out"`
	Params []float64 `json:"params,omitempty"`
}

// Equal reports whether two gates match, parameters included.
func (g Gate) Equal(other Gate) bool {
	return g.Name == other.Name && g.Pos == other.Pos &&
		g.In == other.In && g.Out == other.Out &&
		slices.Equal(g.Params, other.Params)
}

// Layer is one step of a circuit. Exactly one of Gates and Perm is
// meaningful, selected by Kind.
type Layer struct {
	Kind  LayerKind
	Width int // wires entering the layer
	Gates []Gate
	Perm  []int
}

// OutWidth returns the number of wires leaving the layer.
func (l Layer) OutWidth() int {
	if l.Kind == LayerPermutation {
		return l.Width
	}
	w := l.Width
	for _, g := range l.Gates {
		w += g.Out - g.In
	}
	return w
}

// Circuit is an immutable sequence of gate and permutation layers over
// numbered wires. Each wire represents qubitsPerWire adjacent qubits, so
// the full register holds Width()*QubitsPerWire() qubits.
//
// Circuits are produced by the functor or assembled with [New]; they never
// change afterwards.
type Circuit struct {
	width         int
	qubitsPerWire int
	layers        []Layer
}

// New assembles a circuit and validates it. The layer slice and its
// contents are cloned, so callers may keep mutating their copies.
// qubitsPerWire must be at least 1.
func New(width, qubitsPerWire int, layers []Layer) (*Circuit, error) {
	c := &Circuit{
		width:         width,
		qubitsPerWire: qubitsPerWire,
		layers:        make([]Layer, len(layers)),
	}
	for i, l := range layers {
		c.layers[i] = Layer{
			Kind:  l.Kind,
			Width: l.Width,
			Gates: slices.Clone(l.Gates),
			Perm:  slices.Clone(l.Perm),
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Width returns the number of wires entering the circuit.
func (c *Circuit) Width() int { return c.width }

// QubitsPerWire returns how many qubits each wire stands for.
func (c *Circuit) QubitsPerWire() int { return c.qubitsPerWire }

// Qubits returns the size of the qubit register the circuit acts on.
func (c *Circuit) Qubits() int { return c.width * c.qubitsPerWire }

// Depth returns the number of layers.
func (c *Circuit) Depth() int { return len(c.layers) }

// Layers returns a copy of the layer sequence. The Gates and Perm slices
// are shared; treat them as read-only.
func (c *Circuit) Layers() []Layer { return slices.Clone(c.layers) }

// GateCount returns the total number of gates across all layers.
func (c *Circuit) GateCount() int {
	n := 0
	for _, l := range c.layers {
		n += len(l.Gates)
	}
	return n
}

// Gates returns all gates in canonical order: layer order, then ascending
// wire position within each layer.
func (c *Circuit) Gates() []Gate {
	gates := make([]Gate, 0, c.GateCount())
	c.Walk(func(_ int, g Gate) {
		gates = append(gates, g)
	})
	return gates
}

// Walk visits every gate in canonical order: layer order, then ascending
// wire position within each layer. This matches the diagram traversal the
// functor binds parameters in, so the k-th visited gate holds the k-th
// parameter run.
func (c *Circuit) Walk(fn func(layer int, g Gate)) {
	for i, l := range c.layers {
		if l.Kind != LayerGates {
			continue
		}
		for _, g := range l.Gates {
			fn(i, g)
		}
	}
}

// Params returns the concatenation of every gate's parameters in canonical
// order. Applying a functor to a diagram and reading Params back yields the
// vector that was passed in.
func (c *Circuit) Params() []float64 {
	var params []float64
	c.Walk(func(_ int, g Gate) {
		params = append(params, g.Params...)
	})
	return params
}

// Equal reports whether two circuits have identical layer sequences,
// parameters included.
func (c *Circuit) Equal(other *Circuit) bool {
	if other == nil || c.width != other.width ||
		c.qubitsPerWire != other.qubitsPerWire ||
		len(c.layers) != len(other.layers) {
		return false
	}
	for i, l := range c.layers {
		o := other.layers[i]
		if l.Kind != o.Kind || l.Width != o.Width {
			return false
		}
		if !slices.EqualFunc(l.Gates, o.Gates, Gate.Equal) || !slices.Equal(l.Perm, o.Perm) {
			return false
		}
	}
	return true
}

// Validate re-checks every structural invariant and returns nil if the
// circuit is well formed. The rules are the diagram rules: the first
// layer's width matches the circuit width and adjacent layers agree on
// wire count (DIMENSION_MISMATCH otherwise), gate layers hold named gates
// with non-negative arities at disjoint ascending runs, and permutation
// layers hold a bijection (INVALID_CIRCUIT otherwise).
func (c *Circuit) Validate() error {
	if c.width < 0 {
		return errors.New(errors.ErrCodeInvalidCircuit, "negative width %d", c.width)
	}
	if c.qubitsPerWire < 1 {
		return errors.New(errors.ErrCodeInvalidCircuit,
			"qubits per wire must be at least 1, got %d", c.qubitsPerWire)
	}
	width := c.width
	for i, l := range c.layers {
		if l.Width != width {
			return errors.New(errors.ErrCodeDimensionMismatch,
				"layer %d expects %d wires, got %d", i, l.Width, width)
		}
		switch l.Kind {
		case LayerGates:
			if err := validateGates(i, l); err != nil {
				return err
			}
		case LayerPermutation:
			if err := validatePerm(i, l); err != nil {
				return err
			}
		default:
			return errors.New(errors.ErrCodeInvalidCircuit, "layer %d: unknown kind %d", i, l.Kind)
		}
		width = l.OutWidth()
	}
	return nil
}

func validateGates(layer int, l Layer) error {
	next := 0 // first wire the next gate may occupy
	for j, g := range l.Gates {
		if err := errors.ValidateGateName(g.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidCircuit, err, "layer %d gate %d", layer, j)
		}
		if g.In < 0 || g.Out < 0 {
			return errors.New(errors.ErrCodeInvalidCircuit,
				"layer %d gate %d: negative arity (%d→%d)", layer, j, g.In, g.Out)
		}
		if g.Pos < next {
			return errors.New(errors.ErrCodeInvalidCircuit,
				"layer %d gate %d: overlaps or out of order at wire %d", layer, j, g.Pos)
		}
		if g.Pos+g.In > l.Width {
			return errors.New(errors.ErrCodeInvalidCircuit,
				"layer %d gate %d: run [%d,%d) exceeds %d wires", layer, j, g.Pos, g.Pos+g.In, l.Width)
		}
		next = g.Pos + g.In
	}
	return nil
}

func validatePerm(layer int, l Layer) error {
	if len(l.Perm) != l.Width {
		return errors.New(errors.ErrCodeInvalidCircuit,
			"layer %d: permutation of %d entries over %d wires", layer, len(l.Perm), l.Width)
	}
	seen := make([]bool, len(l.Perm))
	for i, p := range l.Perm {
		if p < 0 || p >= len(l.Perm) {
			return errors.New(errors.ErrCodeInvalidCircuit,
				"layer %d: permutation entry %d out of range: %d", layer, i, p)
		}
		if seen[p] {
			return errors.New(errors.ErrCodeInvalidCircuit,
				"layer %d: permutation repeats position %d", layer, p)
		}
		seen[p] = true
	}
	return nil
}
