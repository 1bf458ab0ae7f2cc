package composition

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/toumix/tally/pkg/errors"
)

// Wire labels. H marks beside nodes, V marks below nodes, matching the
// fold letters of the notation.
const (
	labelAtom       = "e"
	labelHorizontal = "H"
	labelVertical   = "V"
)

type cellEncoded struct {
	Label string  `json:"label"`
	Terms []*Cell `json:"terms,omitempty"`
}

// MarshalJSON encodes the cell recursively: atoms as {"label":"e"}, inner
// nodes as {"label":"H"|"V","terms":[left,right]}. Decoders that accept
// n-ary term lists read this output unchanged.
func (c *Cell) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case KindBeside:
		return json.Marshal(cellEncoded{Label: labelHorizontal, Terms: []*Cell{c.left, c.right}})
	case KindBelow:
		return json.Marshal(cellEncoded{Label: labelVertical, Terms: []*Cell{c.left, c.right}})
	default:
		return json.Marshal(cellEncoded{Label: labelAtom})
	}
}

// UnmarshalJSON decodes the wire shape written by [Cell.MarshalJSON].
// Term lists of more than two cells are accepted and left-folded, so files
// from n-ary encoders load as their fold. Extent checks apply during the
// fold; an ill-formed grid fails with DIMENSION_MISMATCH. Structural
// problems (unknown label, atom with terms, fewer than two terms) fail
// with INVALID_FORMAT.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var wire struct {
		Label string            `json:"label"`
		Terms []json.RawMessage `json:"terms"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode cell")
	}
	decoded, err := decodeWire(wire.Label, wire.Terms)
	if err != nil {
		return err
	}
	*c = *decoded
	return nil
}

func decodeWire(label string, terms []json.RawMessage) (*Cell, error) {
	switch label {
	case labelAtom:
		if len(terms) != 0 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "atom with %d terms", len(terms))
		}
		return Empty(), nil
	case labelHorizontal, labelVertical:
		if len(terms) < 2 {
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"label %q needs at least 2 terms, got %d", label, len(terms))
		}
		cells := make([]*Cell, len(terms))
		for i, t := range terms {
			child := new(Cell)
			if err := json.Unmarshal(t, child); err != nil {
				return nil, err
			}
			cells[i] = child
		}
		if label == labelHorizontal {
			return Horizontal(cells...)
		}
		return Vertical(cells...)
	case "":
		return nil, errors.New(errors.ErrCodeInvalidFormat, "missing label")
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown label %q", label)
	}
}

// ReadJSON decodes a cell from r. It does not close r.
func ReadJSON(r io.Reader) (*Cell, error) {
	var c Cell
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &c, nil
}

// WriteJSON encodes a cell as indented JSON and writes it to w.
// The output round-trips through [ReadJSON].
func WriteJSON(c *Cell, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ImportJSON reads a cell from a JSON file at path.
func ImportJSON(path string) (*Cell, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// ExportJSON writes a cell to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(c *Cell, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(c, f)
}
