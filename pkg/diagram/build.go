package diagram

import (
	"slices"

	"github.com/toumix/tally/pkg/errors"
)

// Identity returns a diagram of the given width with no layers: every wire
// passes straight through. Negative widths are treated as zero.
func Identity(width int) *Diagram {
	return &Diagram{width: max(width, 0)}
}

// FromBox returns a single-layer diagram holding one box that consumes in
// wires and produces out wires, with no identity wires beside it.
func FromBox(name string, in, out int) (*Diagram, error) {
	if name == "" {
		return nil, errors.New(errors.ErrCodeInvalidDiagram, "empty box name")
	}
	if in < 0 || out < 0 {
		return nil, errors.New(errors.ErrCodeInvalidDiagram, "negative box arity (%d→%d)", in, out)
	}
	return &Diagram{
		width: in,
		layers: []Layer{{
			Kind:  LayerBoxes,
			Width: in,
			Boxes: []Box{{Name: name, Pos: 0, In: in, Out: out}},
		}},
	}, nil
}

// NewPermutation returns a single-layer diagram that moves input wire i to
// output position perm[i]. perm must be a bijection on [0, len(perm));
// anything else is an INVALID_DIAGRAM error.
func NewPermutation(perm []int) (*Diagram, error) {
	l := Layer{Kind: LayerPermutation, Width: len(perm), Perm: slices.Clone(perm)}
	if err := validatePerm(0, l); err != nil {
		return nil, err
	}
	return &Diagram{width: len(perm), layers: []Layer{l}}, nil
}

// Tensor places a and b side by side: a keeps its wire positions and b's
// wires follow. Layers are merged index by index. When one side runs out
// of layers first, the remaining layers of the other side are paired with
// identity, so the shorter side is effectively padded with identity layers
// after its own. When a box layer meets a permutation layer at the same
// index, a's layer is emitted first and b's waits, keeping the merge
// deterministic.
//
// Both arguments must be non-nil. Tensor cannot fail: any two diagrams
// compose in parallel.
func Tensor(a, b *Diagram) *Diagram {
	layers := make([]Layer, 0, max(len(a.layers), len(b.layers)))
	aw, bw := a.width, b.width // wire counts entering the current slot
	i, j := 0, 0
	for i < len(a.layers) || j < len(b.layers) {
		switch {
		case i >= len(a.layers):
			layers = append(layers, shiftLayer(b.layers[j], aw))
			bw = b.layers[j].OutWidth()
			j++
		case j >= len(b.layers) || a.layers[i].Kind != b.layers[j].Kind:
			layers = append(layers, widenLayer(a.layers[i], bw))
			aw = a.layers[i].OutWidth()
			i++
		default:
			layers = append(layers, mergeLayers(a.layers[i], b.layers[j]))
			aw, bw = a.layers[i].OutWidth(), b.layers[j].OutWidth()
			i++
			j++
		}
	}
	return &Diagram{width: a.width + b.width, layers: layers}
}

// Stack composes a and b in sequence: a's layers run first, then b's over
// the same wires. The wire counts must agree at the boundary; a mismatch
// is a DIMENSION_MISMATCH error and nothing is built. Boundary rewiring is
// expressed explicitly by stacking a [NewPermutation] diagram in between.
func Stack(a, b *Diagram) (*Diagram, error) {
	if a.OutWidth() != b.width {
		return nil, errors.New(errors.ErrCodeDimensionMismatch,
			"stack: %d wires leave the top, %d enter the bottom", a.OutWidth(), b.width)
	}
	layers := make([]Layer, 0, len(a.layers)+len(b.layers))
	layers = append(layers, a.layers...)
	layers = append(layers, b.layers...)
	return &Diagram{width: a.width, layers: layers}, nil
}

// widenLayer appends extra identity wires to the right of a layer.
func widenLayer(l Layer, extra int) Layer {
	if extra == 0 {
		return l
	}
	out := Layer{Kind: l.Kind, Width: l.Width + extra}
	if l.Kind == LayerPermutation {
		perm := make([]int, 0, out.Width)
		perm = append(perm, l.Perm...)
		for i := l.Width; i < out.Width; i++ {
			perm = append(perm, i)
		}
		out.Perm = perm
		return out
	}
	out.Boxes = l.Boxes
	return out
}

// shiftLayer places a layer to the right of offset identity wires.
func shiftLayer(l Layer, offset int) Layer {
	if offset == 0 {
		return l
	}
	out := Layer{Kind: l.Kind, Width: offset + l.Width}
	if l.Kind == LayerPermutation {
		perm := make([]int, 0, out.Width)
		for i := range offset {
			perm = append(perm, i)
		}
		for _, p := range l.Perm {
			perm = append(perm, p+offset)
		}
		out.Perm = perm
		return out
	}
	boxes := make([]Box, len(l.Boxes))
	for i, b := range l.Boxes {
		b.Pos += offset
		boxes[i] = b
	}
	out.Boxes = boxes
	return out
}

// mergeLayers joins two layers of the same kind side by side, with la's
// wires first.
func mergeLayers(la, lb Layer) Layer {
	out := Layer{Kind: la.Kind, Width: la.Width + lb.Width}
	if la.Kind == LayerPermutation {
		perm := make([]int, 0, out.Width)
		perm = append(perm, la.Perm...)
		for _, p := range lb.Perm {
			perm = append(perm, p+la.Width)
		}
		out.Perm = perm
		return out
	}
	boxes := make([]Box, 0, len(la.Boxes)+len(lb.Boxes))
	boxes = append(boxes, la.Boxes...)
	for _, b := range lb.Boxes {
		b.Pos += la.Width
		boxes = append(boxes, b)
	}
	out.Boxes = boxes
	return out
}
