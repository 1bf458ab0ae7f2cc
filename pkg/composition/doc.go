// Package composition provides the grid-composition algebra at the heart of
// tally: square atom cells combined into rectangular grids.
//
// # Overview
//
// A [Cell] is an immutable binary tree. The leaves are unit cells (the atom,
// printed "e") and the inner nodes place their two children side by side
// ([Beside]) or on top of each other ([Below]). Extents are measured in
// abstract grid units: an atom is 1×1, beside sums widths, below sums
// heights. Both combinators require compatible extents so that every tree
// denotes a gap-free rectangular grid:
//
//   - [Beside] requires equal heights and returns a cell of the summed width.
//   - [Below] requires equal widths and returns a cell of the summed height.
//
// Violations surface as DIMENSION_MISMATCH errors naming both extents. The
// n-ary [Horizontal] and [Vertical] constructors left-fold their binary
// counterparts and reject empty argument lists with EMPTY_COMPOSITION.
//
// # Immutability
//
// Cells are never modified after construction. Combinators share their
// operands structurally instead of copying, so building large grids from a
// few sub-grids is cheap, and derived data (extents, notation, identity
// keys) are pure functions of structure. This also makes every downstream
// computation memoizable: see [Cell.Key].
//
// # Notation
//
// [Cell.String] renders the canonical notation: "e" for atoms, "(a | b)"
// for beside, "(a & b)" for below. [Parse] reads the same notation and
// additionally accepts the n-ary forms "H(a, b, c)" and "V(a, b)", which
// left-fold exactly like [Horizontal] and [Vertical]:
//
//	c, _ := composition.Parse("(H(e, e, e) & H(V(e, e), V(e, e), V(e, e)))")
//
// # Basic Usage
//
// Build a 2×2 grid and inspect it:
//
//	row, _ := composition.Beside(composition.Empty(), composition.Empty())
//	grid, _ := composition.Below(row, row)
//	fmt.Println(grid.Width(), grid.Height()) // 2 2
//	fmt.Println(grid)                        // ((e | e) & (e | e))
//
// Random grids for generative work come from [Random], which is
// deterministic per seed. JSON round-tripping uses [WriteJSON] and
// [ReadJSON]; the wire shape also accepts n-ary term lists produced by
// older encoders.
package composition
