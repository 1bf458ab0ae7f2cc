package diagram

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/toumix/tally/pkg/errors"
)

var kindToString = map[LayerKind]string{
	LayerBoxes:       "boxes",
	LayerPermutation: "permutation",
}

var kindFromString = map[string]LayerKind{
	"boxes":       LayerBoxes,
	"permutation": LayerPermutation,
}

type diagramEncoded struct {
	Width  int            `json:"width"`
	Layers []layerEncoded `json:"layers"`
}

type layerEncoded struct {
	Kind  string `json:"kind"`
	Width int    `json:"width"`
	Boxes []Box  `json:"boxes,omitempty"`
	Perm  []int  `json:"perm,omitempty"`
}

// MarshalJSON encodes the diagram with its full layer structure:
//
//	{
//	  "width": 2,
//	  "layers": [
//	    {"kind": "boxes", "width": 2, "boxes": [
//	      {"name": "e", "pos": 0, "in": 1, "out": 1},
//	      {"name": "e", "pos": 1, "in": 1, "out": 1}
//	    ]}
//	  ]
//	}
func (d *Diagram) MarshalJSON() ([]byte, error) {
	out := diagramEncoded{Width: d.width, Layers: make([]layerEncoded, len(d.layers))}
	for i, l := range d.layers {
		out.Layers[i] = layerEncoded{
			Kind:  kindToString[l.Kind],
			Width: l.Width,
			Boxes: l.Boxes,
			Perm:  l.Perm,
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the wire shape written by [Diagram.MarshalJSON] and
// rejects anything [Diagram.Validate] would reject. Unknown layer kinds are
// INVALID_FORMAT errors.
func (d *Diagram) UnmarshalJSON(data []byte) error {
	var wire diagramEncoded
	if err := json.Unmarshal(data, &wire); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode diagram")
	}
	dec := Diagram{width: wire.Width, layers: make([]Layer, len(wire.Layers))}
	for i, l := range wire.Layers {
		kind, ok := kindFromString[l.Kind]
		if !ok {
			return errors.New(errors.ErrCodeInvalidFormat, "layer %d: unknown kind %q", i, l.Kind)
		}
		dec.layers[i] = Layer{
			Kind:  kind,
			Width: l.Width,
			Boxes: slices.Clone(l.Boxes),
			Perm:  slices.Clone(l.Perm),
		}
	}
	if err := dec.Validate(); err != nil {
		return err
	}
	*d = dec
	return nil
}

// ReadJSON decodes a diagram from r. It does not close r.
func ReadJSON(r io.Reader) (*Diagram, error) {
	var d Diagram
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &d, nil
}

// WriteJSON encodes a diagram as indented JSON and writes it to w.
// The output round-trips through [ReadJSON].
func WriteJSON(d *Diagram, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ImportJSON reads a diagram from a JSON file at path.
func ImportJSON(path string) (*Diagram, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// ExportJSON writes a diagram to a JSON file at path.
func ExportJSON(d *Diagram, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(d, f)
}
