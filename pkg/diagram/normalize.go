package diagram

import (
	"github.com/toumix/tally/pkg/composition"
	"github.com/toumix/tally/pkg/errors"
)

// FromComposition linearizes a composition tree into a diagram.
//
// The mapping is structural: an atom becomes a single box layer holding one
// 1→1 box named [AtomBoxName], beside becomes [Tensor], below becomes
// [Stack]. Wires are grid columns, so for a legal w×h grid the result has
// w wires, h layers, and w boxes in every layer.
//
// The algebra's constructors already guarantee that the Stack boundary
// widths agree; the check still runs on every below node and reports a
// DIMENSION_MISMATCH if a hand-crafted tree ever violates it.
//
// Normalization is pure. Calling it twice on the same or an Equal cell
// yields deeply [Diagram.Equal] results, so callers may cache diagrams
// against [composition.Cell.Key].
func FromComposition(c *composition.Cell) (*Diagram, error) {
	if c == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil cell")
	}
	switch c.Kind() {
	case composition.KindBeside:
		left, err := FromComposition(c.Left())
		if err != nil {
			return nil, err
		}
		right, err := FromComposition(c.Right())
		if err != nil {
			return nil, err
		}
		return Tensor(left, right), nil
	case composition.KindBelow:
		top, err := FromComposition(c.Left())
		if err != nil {
			return nil, err
		}
		bottom, err := FromComposition(c.Right())
		if err != nil {
			return nil, err
		}
		return Stack(top, bottom)
	default:
		return FromBox(AtomBoxName, 1, 1)
	}
}
