package composition

import (
	"strings"

	"github.com/toumix/tally/pkg/errors"
)

// Kind distinguishes the three cell variants.
type Kind int

const (
	// KindAtom is the unit cell, the only leaf. Extent 1×1, printed "e".
	KindAtom Kind = iota
	// KindBeside places its left child to the left of its right child.
	KindBeside
	// KindBelow places its left child above its right child.
	KindBelow
)

// Cell is a node in an immutable grid-composition tree.
//
// The zero value is not usable. Cells are created with [Empty], [Beside],
// [Below], [Horizontal], [Vertical], [Parse], or [Unmarshal], and never
// change afterwards. Children are shared, not copied, so a Cell may appear
// in any number of trees at once.
type Cell struct {
	kind          Kind
	left, right   *Cell // nil for atoms
	width, height int
}

// atom is the shared unit cell. Immutability makes one instance enough.
var atom = &Cell{kind: KindAtom, width: 1, height: 1}

// Empty returns the atom cell: the 1×1 unit every grid is built from.
func Empty() *Cell { return atom }

// besideNode builds a beside node without checking extents.
// Callers must guarantee a.height == b.height.
func besideNode(a, b *Cell) *Cell {
	return &Cell{kind: KindBeside, left: a, right: b, width: a.width + b.width, height: a.height}
}

// belowNode builds a below node without checking extents.
// Callers must guarantee a.width == b.width.
func belowNode(a, b *Cell) *Cell {
	return &Cell{kind: KindBelow, left: a, right: b, width: a.width, height: a.height + b.height}
}

// Beside places a to the left of b.
//
// Both cells must have the same height; otherwise a DIMENSION_MISMATCH
// error naming both heights is returned. The result has width
// a.Width()+b.Width() and the shared height. Neither operand is copied or
// modified.
func Beside(a, b *Cell) (*Cell, error) {
	if a == nil || b == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "beside: nil cell")
	}
	if a.height != b.height {
		return nil, errors.New(errors.ErrCodeDimensionMismatch,
			"beside: heights differ (%d vs %d)", a.height, b.height)
	}
	return besideNode(a, b), nil
}

// Below places a above b.
//
// Both cells must have the same width; otherwise a DIMENSION_MISMATCH error
// naming both widths is returned. The result has height
// a.Height()+b.Height() and the shared width. Neither operand is copied or
// modified.
func Below(a, b *Cell) (*Cell, error) {
	if a == nil || b == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "below: nil cell")
	}
	if a.width != b.width {
		return nil, errors.New(errors.ErrCodeDimensionMismatch,
			"below: widths differ (%d vs %d)", a.width, b.width)
	}
	return belowNode(a, b), nil
}

// Horizontal left-folds [Beside] over the given cells.
//
// A single cell is returned unchanged. Zero cells is an EMPTY_COMPOSITION
// error: the algebra has no zero-width grid. Any height mismatch along the
// fold is reported exactly as by [Beside].
func Horizontal(cells ...*Cell) (*Cell, error) {
	if len(cells) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyComposition, "horizontal: no cells given")
	}
	acc := cells[0]
	for _, c := range cells[1:] {
		next, err := Beside(acc, c)
		if err != nil {
			return nil, err
		}
		acc = next
	}
	return acc, nil
}

// Vertical left-folds [Below] over the given cells.
//
// A single cell is returned unchanged. Zero cells is an EMPTY_COMPOSITION
// error. Any width mismatch along the fold is reported exactly as by
// [Below].
func Vertical(cells ...*Cell) (*Cell, error) {
	if len(cells) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyComposition, "vertical: no cells given")
	}
	acc := cells[0]
	for _, c := range cells[1:] {
		next, err := Below(acc, c)
		if err != nil {
			return nil, err
		}
		acc = next
	}
	return acc, nil
}

// Kind returns the cell variant.
func (c *Cell) Kind() Kind { return c.kind }

// Left returns the first child (left for beside, top for below), or nil for
// atoms. The returned cell is shared; treat it as read-only.
func (c *Cell) Left() *Cell { return c.left }

// Right returns the second child (right for beside, bottom for below), or
// nil for atoms. The returned cell is shared; treat it as read-only.
func (c *Cell) Right() *Cell { return c.right }

// Width returns the horizontal extent in grid units.
func (c *Cell) Width() int { return c.width }

// Height returns the vertical extent in grid units.
func (c *Cell) Height() int { return c.height }

// IsAtom reports whether the cell is the unit cell.
func (c *Cell) IsAtom() bool { return c.kind == KindAtom }

// Depth returns the combinator nesting depth. Atoms have depth 0.
func (c *Cell) Depth() int {
	if c.kind == KindAtom {
		return 0
	}
	return 1 + max(c.left.Depth(), c.right.Depth())
}

// Size returns the number of atoms in the tree. For a legal grid this is
// always Width()*Height().
func (c *Cell) Size() int {
	if c.kind == KindAtom {
		return 1
	}
	return c.left.Size() + c.right.Size()
}

// Equal reports structural equality: same variants, same shape.
// All atoms are equal to each other.
func (c *Cell) Equal(other *Cell) bool {
	if c == other {
		return true
	}
	if other == nil || c.kind != other.kind {
		return false
	}
	if c.kind == KindAtom {
		return true
	}
	return c.left.Equal(other.left) && c.right.Equal(other.right)
}

// Transpose mirrors the grid along its main diagonal: atoms stay atoms,
// beside becomes below of the transposed children and vice versa. Width and
// height swap. The receiver is unchanged; transposing twice yields a cell
// Equal to the original.
func (c *Cell) Transpose() *Cell {
	switch c.kind {
	case KindBeside:
		return belowNode(c.left.Transpose(), c.right.Transpose())
	case KindBelow:
		return besideNode(c.left.Transpose(), c.right.Transpose())
	default:
		return c
	}
}

// String renders the canonical notation: "e" for atoms, "(a | b)" for
// beside, "(a & b)" for below. The notation determines the tree uniquely
// and is parsed back by [Parse].
func (c *Cell) String() string {
	var b strings.Builder
	c.writeNotation(&b)
	return b.String()
}

func (c *Cell) writeNotation(b *strings.Builder) {
	if c.kind == KindAtom {
		b.WriteByte('e')
		return
	}
	sym := byte('|')
	if c.kind == KindBelow {
		sym = '&'
	}
	b.WriteByte('(')
	c.left.writeNotation(b)
	b.WriteByte(' ')
	b.WriteByte(sym)
	b.WriteByte(' ')
	c.right.writeNotation(b)
	b.WriteByte(')')
}

// Key returns a stable identity for the cell: equal trees share a key and
// distinct trees never collide. Downstream stages use it to memoize work
// keyed by composition identity. The current form is the canonical
// notation; callers should treat it as opaque.
func (c *Cell) Key() string { return c.String() }
