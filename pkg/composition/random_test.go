package composition

import (
	"testing"
)

func TestRandomDeterminism(t *testing.T) {
	for _, seed := range []uint64{0, 1, 7, 42, 1 << 40} {
		a := Random(seed, nil)
		b := Random(seed, nil)
		if !a.Equal(b) {
			t.Errorf("seed %d: two runs disagree: %s vs %s", seed, a, b)
		}
	}
}

func TestRandomVariety(t *testing.T) {
	keys := map[string]bool{}
	for seed := uint64(1); seed <= 10; seed++ {
		keys[Random(seed, nil).Key()] = true
	}
	if len(keys) < 2 {
		t.Errorf("10 seeds produced %d distinct grids, want several", len(keys))
	}
}

func TestRandomMinDepth(t *testing.T) {
	opts := &RandomOptions{MinDepth: 3, MaxDepth: 5}
	for seed := uint64(1); seed <= 20; seed++ {
		c := Random(seed, opts)
		if c.Depth() < opts.MinDepth {
			t.Errorf("seed %d: Depth() = %d, want >= %d", seed, c.Depth(), opts.MinDepth)
		}
	}
}

// TestRandomLegality relies on the grid invariant: a legal composition
// covers its bounding rectangle exactly, so the atom count must equal
// width times height.
func TestRandomLegality(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		c := Random(seed, &RandomOptions{MinDepth: 2, MaxDepth: 6, ProbEmpty: 0.3})
		if c.Size() != c.Width()*c.Height() {
			t.Errorf("seed %d: Size() = %d, want %d (%dx%d grid)",
				seed, c.Size(), c.Width()*c.Height(), c.Width(), c.Height())
		}
	}
}

func TestRandomClamping(t *testing.T) {
	// Degenerate options must not hang or panic: MinDepth above MaxDepth is
	// clamped, ProbEmpty 1.0 is capped below 1.
	c := Random(5, &RandomOptions{MinDepth: 10, MaxDepth: 3, ProbEmpty: 1.0})
	if c == nil {
		t.Fatal("Random returned nil")
	}
	if c.Size() != c.Width()*c.Height() {
		t.Errorf("clamped options produced an illegal grid %s", c)
	}
}
