package diagram

import (
	"slices"

	"github.com/toumix/tally/pkg/errors"
)

// AtomBoxName is the name the normalizer gives every box produced from an
// atom cell.
const AtomBoxName = "e"

// LayerKind distinguishes the two layer variants.
type LayerKind int

const (
	// LayerBoxes is a layer of boxes with identity wires in the gaps.
	// A box layer with no boxes is a pure identity layer.
	LayerBoxes LayerKind = iota
	// LayerPermutation reorders wires without consuming them.
	LayerPermutation
)

// Box is a named occupant of a contiguous wire run within a layer.
// It consumes In wires starting at Pos and produces Out wires in their
// place. Grid normalization emits only 1→1 boxes named [AtomBoxName].
type Box struct {
	Name string `json:"name"`
	Pos  int    `json:"pos"`
	In   int    `json:"in"`
	Out  int    `json:"out"`
}

// Layer is one step of a diagram. Exactly one of Boxes and Perm is
// meaningful, selected by Kind. Layers are value types; the slices they
// carry must not be mutated after the layer enters a diagram.
type Layer struct {
	Kind  LayerKind
	Width int // wires entering the layer
	Boxes []Box
	Perm  []int
}

// OutWidth returns the number of wires leaving the layer. Permutations and
// identity gaps preserve wires; boxes replace In wires with Out wires.
func (l Layer) OutWidth() int {
	if l.Kind == LayerPermutation {
		return l.Width
	}
	w := l.Width
	for _, b := range l.Boxes {
		w += b.Out - b.In
	}
	return w
}

// IsIdentity reports whether the layer passes every wire through untouched:
// a box layer with no boxes, or a permutation fixing every position.
func (l Layer) IsIdentity() bool {
	if l.Kind == LayerBoxes {
		return len(l.Boxes) == 0
	}
	for i, p := range l.Perm {
		if p != i {
			return false
		}
	}
	return true
}

// Diagram is an immutable sequence of layers over numbered wires.
//
// The zero value is not usable. Diagrams are created with [Identity],
// [FromBox], [NewPermutation], [FromComposition], or by combining diagrams
// with [Tensor] and [Stack], and never change afterwards.
type Diagram struct {
	width  int // wires entering the first layer
	layers []Layer
}

// Width returns the number of wires entering the diagram.
func (d *Diagram) Width() int { return d.width }

// OutWidth returns the number of wires leaving the diagram. Equal to
// Width() whenever every box preserves its wire count, which is always the
// case for normalized grid compositions.
func (d *Diagram) OutWidth() int {
	if len(d.layers) == 0 {
		return d.width
	}
	return d.layers[len(d.layers)-1].OutWidth()
}

// LayerCount returns the number of layers. For a normalized grid this is
// the grid height.
func (d *Diagram) LayerCount() int { return len(d.layers) }

// Layers returns a copy of the layer sequence. The Boxes and Perm slices
// are shared; treat them as read-only.
func (d *Diagram) Layers() []Layer { return slices.Clone(d.layers) }

// BoxCount returns the total number of boxes across all layers.
func (d *Diagram) BoxCount() int {
	n := 0
	for _, l := range d.layers {
		n += len(l.Boxes)
	}
	return n
}

// Boxes returns all boxes in canonical order: layer order, then ascending
// wire position within each layer.
func (d *Diagram) Boxes() []Box {
	boxes := make([]Box, 0, d.BoxCount())
	d.Walk(func(_ int, b Box) {
		boxes = append(boxes, b)
	})
	return boxes
}

// Walk visits every box in canonical order: layer order, then ascending
// wire position within each layer. Permutation and identity layers
// contribute no boxes. This ordering is the single source of truth for
// anything that assigns meaning to box positions, such as parameter
// binding.
func (d *Diagram) Walk(fn func(layer int, b Box)) {
	for i, l := range d.layers {
		if l.Kind != LayerBoxes {
			continue
		}
		for _, b := range l.Boxes {
			fn(i, b)
		}
	}
}

// Equal reports whether two diagrams have identical layer sequences.
func (d *Diagram) Equal(other *Diagram) bool {
	if other == nil || d.width != other.width || len(d.layers) != len(other.layers) {
		return false
	}
	for i, l := range d.layers {
		o := other.layers[i]
		if l.Kind != o.Kind || l.Width != o.Width {
			return false
		}
		if !slices.Equal(l.Boxes, o.Boxes) || !slices.Equal(l.Perm, o.Perm) {
			return false
		}
	}
	return true
}

// Validate re-checks every structural invariant and returns nil if the
// diagram is well formed:
//
//   - the first layer's width matches the diagram width, and each layer's
//     output arity equals the next layer's input arity
//   - box layers hold boxes with non-empty names and non-negative arities,
//     at disjoint runs in ascending position order, all within the layer
//   - permutation layers hold a bijection on [0, width)
//
// Arity chain violations are DIMENSION_MISMATCH errors; everything else is
// INVALID_DIAGRAM. Diagrams built through this package's constructors are
// valid by construction; Validate exists as a defensive check for decoded
// or hand-assembled data.
func (d *Diagram) Validate() error {
	width := d.width
	if width < 0 {
		return errors.New(errors.ErrCodeInvalidDiagram, "negative width %d", width)
	}
	for i, l := range d.layers {
		if l.Width != width {
			return errors.New(errors.ErrCodeDimensionMismatch,
				"layer %d expects %d wires, got %d", i, l.Width, width)
		}
		switch l.Kind {
		case LayerBoxes:
			if err := validateBoxes(i, l); err != nil {
				return err
			}
		case LayerPermutation:
			if err := validatePerm(i, l); err != nil {
				return err
			}
		default:
			return errors.New(errors.ErrCodeInvalidDiagram, "layer %d: unknown kind %d", i, l.Kind)
		}
		width = l.OutWidth()
	}
	return nil
}

func validateBoxes(layer int, l Layer) error {
	next := 0 // first wire the next box may occupy
	for j, b := range l.Boxes {
		if b.Name == "" {
			return errors.New(errors.ErrCodeInvalidDiagram, "layer %d box %d: empty name", layer, j)
		}
		if b.In < 0 || b.Out < 0 {
			return errors.New(errors.ErrCodeInvalidDiagram,
				"layer %d box %d: negative arity (%d→%d)", layer, j, b.In, b.Out)
		}
		if b.Pos < next {
			return errors.New(errors.ErrCodeInvalidDiagram,
				"layer %d box %d: overlaps or out of order at wire %d", layer, j, b.Pos)
		}
		if b.Pos+b.In > l.Width {
			return errors.New(errors.ErrCodeInvalidDiagram,
				"layer %d box %d: run [%d,%d) exceeds %d wires", layer, j, b.Pos, b.Pos+b.In, l.Width)
		}
		next = b.Pos + b.In
	}
	return nil
}

func validatePerm(layer int, l Layer) error {
	if len(l.Perm) != l.Width {
		return errors.New(errors.ErrCodeInvalidDiagram,
			"layer %d: permutation of %d entries over %d wires", layer, len(l.Perm), l.Width)
	}
	seen := make([]bool, len(l.Perm))
	for i, p := range l.Perm {
		if p < 0 || p >= len(l.Perm) {
			return errors.New(errors.ErrCodeInvalidDiagram,
				"layer %d: permutation entry %d out of range: %d", layer, i, p)
		}
		if seen[p] {
			return errors.New(errors.ErrCodeInvalidDiagram,
				"layer %d: permutation repeats position %d", layer, p)
		}
		seen[p] = true
	}
	return nil
}
