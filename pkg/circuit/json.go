package circuit

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/toumix/tally/pkg/errors"
)

var kindToString = map[LayerKind]string{
	LayerGates:       "gates",
	LayerPermutation: "permutation",
}

var kindFromString = map[string]LayerKind{
	"gates":       LayerGates,
	"permutation": LayerPermutation,
}

type circuitEncoded struct {
	Width         int            `json:"width"`
	QubitsPerWire int            `json:"qubits_per_wire"`
	Layers        []layerEncoded `json:"layers"`
}

type layerEncoded struct {
	Kind  string `json:"kind"`
	Width int    `json:"width"`
	Gates []Gate `json:"gates,omitempty"`
	Perm  []int  `json:"perm,omitempty"`
}

// MarshalJSON encodes the circuit with its full layer structure, the same
// shape the diagram package uses with gates in place of boxes plus the
// qubits_per_wire register mapping.
func (c *Circuit) MarshalJSON() ([]byte, error) {
	out := circuitEncoded{
		Width:         c.width,
		QubitsPerWire: c.qubitsPerWire,
		Layers:        make([]layerEncoded, len(c.layers)),
	}
	for i, l := range c.layers {
		out.Layers[i] = layerEncoded{
			Kind:  kindToString[l.Kind],
			Width: l.Width,
			Gates: l.Gates,
			Perm:  l.Perm,
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the wire shape written by [Circuit.MarshalJSON]
// and rejects anything [Circuit.Validate] would reject. Unknown layer
// kinds are INVALID_FORMAT errors.
func (c *Circuit) UnmarshalJSON(data []byte) error {
	var wire circuitEncoded
	if err := json.Unmarshal(data, &wire); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode circuit")
	}
	dec := Circuit{
		width:         wire.Width,
		qubitsPerWire: wire.QubitsPerWire,
		layers:        make([]Layer, len(wire.Layers)),
	}
	for i, l := range wire.Layers {
		kind, ok := kindFromString[l.Kind]
		if !ok {
			return errors.New(errors.ErrCodeInvalidFormat, "layer %d: unknown kind %q", i, l.Kind)
		}
		dec.layers[i] = Layer{
			Kind:  kind,
			Width: l.Width,
			Gates: slices.Clone(l.Gates),
			Perm:  slices.Clone(l.Perm),
		}
	}
	if err := dec.Validate(); err != nil {
		return err
	}
	*c = dec
	return nil
}

// ReadJSON decodes a circuit from r. It does not close r.
func ReadJSON(r io.Reader) (*Circuit, error) {
	var c Circuit
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &c, nil
}

// WriteJSON encodes a circuit as indented JSON and writes it to w.
// The output round-trips through [ReadJSON].
func WriteJSON(c *Circuit, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ImportJSON reads a circuit from a JSON file at path.
func ImportJSON(path string) (*Circuit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// ExportJSON writes a circuit to a JSON file at path.
func ExportJSON(c *Circuit, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(c, f)
}
