package functor

import (
	"slices"

	"github.com/toumix/tally/pkg/circuit"
	"github.com/toumix/tally/pkg/diagram"
	"github.com/toumix/tally/pkg/errors"
)

// DiagramFunc is a functor with its parameters already bound: a plain
// function from diagrams to circuits.
type DiagramFunc func(*diagram.Diagram) (*circuit.Circuit, error)

// Functor applies an ansatz to diagrams. The zero value is not usable;
// construct with [New].
type Functor struct {
	ansatz Ansatz
}

// New returns a functor applying the given ansatz.
func New(a Ansatz) (*Functor, error) {
	if a == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil ansatz")
	}
	return &Functor{ansatz: a}, nil
}

// Ansatz returns the box policy the functor applies.
func (f *Functor) Ansatz() Ansatz { return f.ansatz }

// NParams returns the number of parameters Apply wants for the diagram:
// the ansatz arity summed over every box in canonical order. The count is
// a pure function of the diagram; the functor keeps no running total.
func (f *Functor) NParams(d *diagram.Diagram) int {
	n := 0
	d.Walk(func(_ int, b diagram.Box) {
		n += f.ansatz.Arity(b)
	})
	return n
}

// ZeroParams returns the canonical baseline vector: length NParams(d),
// all zeros.
func (f *Functor) ZeroParams(d *diagram.Diagram) []float64 {
	return make([]float64, f.NParams(d))
}

// Apply maps the diagram to a circuit with identical layer and wire
// topology: box layers become gate layers gate for gate, permutation
// layers are copied unchanged.
//
// The parameter vector must have exactly NParams(d) entries; a wrong
// length is reported as PARAMETER_COUNT_MISMATCH naming both counts, and
// nothing is built. Binding walks the diagram in canonical order (layer
// order, then ascending wire position) and slices one consecutive run of
// Arity(box) parameters per box, so parameter k always lands on the k-th
// box of that order.
func (f *Functor) Apply(d *diagram.Diagram, params []float64) (*circuit.Circuit, error) {
	if d == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil diagram")
	}
	if want := f.NParams(d); len(params) != want {
		return nil, errors.New(errors.ErrCodeParameterCountMismatch,
			"functor wants %d parameters for this diagram, got %d", want, len(params))
	}

	src := d.Layers()
	layers := make([]circuit.Layer, len(src))
	for i, l := range src {
		if l.Kind == diagram.LayerPermutation {
			layers[i] = circuit.Layer{
				Kind:  circuit.LayerPermutation,
				Width: l.Width,
				Perm:  slices.Clone(l.Perm),
			}
			continue
		}
		layers[i] = circuit.Layer{Kind: circuit.LayerGates, Width: l.Width}
	}

	var bindErr error
	offset := 0
	d.Walk(func(layer int, b diagram.Box) {
		arity := f.ansatz.Arity(b)
		run := params[offset : offset+arity]
		offset += arity
		if bindErr != nil {
			return
		}
		gate, err := f.ansatz.Bind(b, run)
		if err != nil {
			bindErr = err
			return
		}
		layers[layer].Gates = append(layers[layer].Gates, gate)
	})
	if bindErr != nil {
		return nil, bindErr
	}

	return circuit.New(d.Width(), f.ansatz.QubitsPerWire(), layers)
}

// With captures a parameter vector and returns the configured callable
// form of the functor. The vector is cloned; later mutation of the
// caller's slice does not affect the returned function.
func (f *Functor) With(params []float64) DiagramFunc {
	p := slices.Clone(params)
	return func(d *diagram.Diagram) (*circuit.Circuit, error) {
		return f.Apply(d, p)
	}
}
