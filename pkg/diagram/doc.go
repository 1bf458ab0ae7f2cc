// Package diagram provides the one-dimensional layer form of a grid
// composition and the normalizer that produces it.
//
// # Overview
//
// A [Diagram] is an ordered sequence of [Layer]s over numbered wires. Wires
// are the grid columns; each layer is one grid row's worth of progress.
// A layer is either:
//
//   - a box layer: zero or more [Box]es at disjoint, ascending wire offsets,
//     with identity wires everywhere a box is not (zero boxes is a pure
//     identity layer, used for padding), or
//   - a permutation layer: an explicit bijection on wire positions, where
//     perm[i] is the output position of input wire i.
//
// Boxes occupy a contiguous run of wires: In wires enter at Pos, Out wires
// leave. Grid normalization only ever emits 1→1 boxes, so those diagrams
// keep a constant width; hand-built diagrams may use boxes that grow or
// shrink the wire count, and every operation checks that consecutive layers
// still compose (the output arity of each layer must equal the input arity
// of the next). Violations are DIMENSION_MISMATCH errors.
//
// # Normalization
//
// [FromComposition] linearizes a composition tree:
//
//   - an atom becomes a single box layer holding one 1→1 box,
//   - beside becomes [Tensor]: the two sub-diagrams side by side on
//     disjoint wire ranges, the shorter side padded with identity layers
//     appended after its own layers,
//   - below becomes [Stack]: the two layer sequences concatenated, with a
//     defensive width check at the boundary.
//
// For a legal grid the layer count equals the grid height and every layer
// carries exactly width boxes. Normalization is pure: the same composition
// always yields a deeply equal diagram, so results can be memoized against
// [composition.Cell.Key].
//
// # Traversal
//
// [Diagram.Walk] visits boxes in the canonical order, layer by layer and by
// ascending wire position within a layer. Everything that assigns meaning
// to box positions (parameter binding, rendering, statistics) goes through
// this single ordering.
//
// # Basic Usage
//
//	cell, _ := composition.Parse("((e | e) & (e | e))")
//	d, _ := diagram.FromComposition(cell)
//	fmt.Println(d.Width(), d.LayerCount()) // 2 2
//
// Wire shuffles for hand-built diagrams are expressed by stacking a
// permutation:
//
//	swap, _ := diagram.NewPermutation([]int{1, 0})
//	d, err := diagram.Stack(top, swap)
package diagram
