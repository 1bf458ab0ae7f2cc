package composition

import (
	"math/rand/v2"
)

// RandomOptions tunes [Random].
type RandomOptions struct {
	// MinDepth is the minimum combinator nesting depth of the result.
	// Shallower candidates are re-rolled.
	MinDepth int
	// MaxDepth is a soft cap on nesting depth: generation stops widening
	// once reached, but extent repair may still split a few levels deeper.
	MaxDepth int
	// ProbEmpty is the chance of stopping at an atom before MaxDepth.
	// Clamped to [0, 0.9] so deep grids stay reachable.
	ProbEmpty float64
}

var defaultRandomOpts = RandomOptions{
	MinDepth:  2,
	MaxDepth:  4,
	ProbEmpty: 0.25,
}

// randomAttempts bounds the re-roll loop for MinDepth. With ProbEmpty
// clamped the bound is effectively never hit; it exists so a pathological
// option set degrades to the deepest candidate instead of looping.
const randomAttempts = 1024

// Random generates a pseudo-random legal grid, deterministic for a given
// seed. Every cell it returns satisfies the algebra's extent invariants by
// construction, so no error path exists.
//
// opts may be nil for defaults.
func Random(seed uint64, opts *RandomOptions) *Cell {
	o := defaultRandomOpts
	if opts != nil {
		o = *opts
	}
	if o.MaxDepth < 1 {
		o.MaxDepth = defaultRandomOpts.MaxDepth
	}
	if o.MinDepth < 0 {
		o.MinDepth = 0
	}
	o.MinDepth = min(o.MinDepth, o.MaxDepth)
	o.ProbEmpty = max(0.0, min(o.ProbEmpty, 0.9))

	rng := rand.New(rand.NewPCG(seed, seed^0xcafef00d))

	best := Empty()
	for range randomAttempts {
		c := randomCell(rng, &o, 0)
		if c.Depth() >= o.MinDepth {
			return c
		}
		if c.Depth() > best.Depth() {
			best = c
		}
	}
	return best
}

// randomCell grows a cell with no extent constraint. The second operand of
// each combinator is generated with the matching extent pinned, so the
// unchecked node constructors are safe here.
func randomCell(rng *rand.Rand, o *RandomOptions, depth int) *Cell {
	if depth >= o.MaxDepth || rng.Float64() < o.ProbEmpty {
		return Empty()
	}
	if rng.IntN(2) == 0 {
		left := randomCell(rng, o, depth+1)
		right := randomWithHeight(rng, o, left.Height(), depth+1)
		return besideNode(left, right)
	}
	top := randomCell(rng, o, depth+1)
	bottom := randomWithHeight(rng, o, top.Width(), depth+1).Transpose()
	return belowNode(top, bottom)
}

// randomWithHeight grows a cell of exactly the given height. Cells of
// height 1 may stop at an atom or widen; taller cells must keep splitting
// until each part reaches height 1, which is what makes every result a
// legal grid.
func randomWithHeight(rng *rand.Rand, o *RandomOptions, height, depth int) *Cell {
	if height == 1 {
		if depth >= o.MaxDepth || rng.Float64() < o.ProbEmpty {
			return Empty()
		}
		return besideNode(
			randomWithHeight(rng, o, 1, depth+1),
			randomWithHeight(rng, o, 1, depth+1),
		)
	}
	if depth >= o.MaxDepth || rng.IntN(2) == 0 {
		cut := 1 + rng.IntN(height-1)
		return belowNode(
			randomWithHeight(rng, o, cut, depth+1),
			randomWithHeight(rng, o, height-cut, depth+1),
		)
	}
	return besideNode(
		randomWithHeight(rng, o, height, depth+1),
		randomWithHeight(rng, o, height, depth+1),
	)
}
