package diagram

import (
	"testing"

	"github.com/toumix/tally/pkg/errors"
)

func TestLayerOutWidth(t *testing.T) {
	tests := []struct {
		name  string
		layer Layer
		want  int
	}{
		{"IdentityBoxes", Layer{Kind: LayerBoxes, Width: 3}, 3},
		{"OneToOne", Layer{Kind: LayerBoxes, Width: 2, Boxes: []Box{{Name: "e", Pos: 0, In: 1, Out: 1}}}, 2},
		{"Merge", Layer{Kind: LayerBoxes, Width: 3, Boxes: []Box{{Name: "m", Pos: 0, In: 2, Out: 1}}}, 2},
		{"Grow", Layer{Kind: LayerBoxes, Width: 1, Boxes: []Box{{Name: "g", Pos: 0, In: 1, Out: 3}}}, 3},
		{"Permutation", Layer{Kind: LayerPermutation, Width: 4, Perm: []int{3, 2, 1, 0}}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.layer.OutWidth(); got != tt.want {
				t.Errorf("OutWidth() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLayerIsIdentity(t *testing.T) {
	tests := []struct {
		name  string
		layer Layer
		want  bool
	}{
		{"EmptyBoxLayer", Layer{Kind: LayerBoxes, Width: 3}, true},
		{"BoxLayer", Layer{Kind: LayerBoxes, Width: 1, Boxes: []Box{{Name: "e", In: 1, Out: 1}}}, false},
		{"IdentityPerm", Layer{Kind: LayerPermutation, Width: 3, Perm: []int{0, 1, 2}}, true},
		{"Swap", Layer{Kind: LayerPermutation, Width: 2, Perm: []int{1, 0}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.layer.IsIdentity(); got != tt.want {
				t.Errorf("IsIdentity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	box := func(name string, pos, in, out int) Box {
		return Box{Name: name, Pos: pos, In: in, Out: out}
	}

	tests := []struct {
		name string
		d    Diagram
		code errors.Code // empty means valid
	}{
		{
			name: "Valid",
			d: Diagram{width: 2, layers: []Layer{
				{Kind: LayerBoxes, Width: 2, Boxes: []Box{box("e", 0, 1, 1), box("e", 1, 1, 1)}},
				{Kind: LayerPermutation, Width: 2, Perm: []int{1, 0}},
			}},
		},
		{
			name: "ValidArityChain",
			d: Diagram{width: 2, layers: []Layer{
				{Kind: LayerBoxes, Width: 2, Boxes: []Box{box("m", 0, 2, 1)}},
				{Kind: LayerBoxes, Width: 1, Boxes: []Box{box("e", 0, 1, 1)}},
			}},
		},
		{
			name: "NegativeWidth",
			d:    Diagram{width: -1},
			code: errors.ErrCodeInvalidDiagram,
		},
		{
			name: "FirstLayerWidthMismatch",
			d: Diagram{width: 2, layers: []Layer{
				{Kind: LayerBoxes, Width: 3},
			}},
			code: errors.ErrCodeDimensionMismatch,
		},
		{
			name: "BrokenArityChain",
			d: Diagram{width: 2, layers: []Layer{
				{Kind: LayerBoxes, Width: 2, Boxes: []Box{box("m", 0, 2, 1)}},
				{Kind: LayerBoxes, Width: 2, Boxes: []Box{box("e", 0, 1, 1)}},
			}},
			code: errors.ErrCodeDimensionMismatch,
		},
		{
			name: "OverlappingBoxes",
			d: Diagram{width: 3, layers: []Layer{
				{Kind: LayerBoxes, Width: 3, Boxes: []Box{box("a", 0, 2, 2), box("b", 1, 1, 1)}},
			}},
			code: errors.ErrCodeInvalidDiagram,
		},
		{
			name: "BoxOutOfRange",
			d: Diagram{width: 2, layers: []Layer{
				{Kind: LayerBoxes, Width: 2, Boxes: []Box{box("a", 1, 2, 2)}},
			}},
			code: errors.ErrCodeInvalidDiagram,
		},
		{
			name: "UnsortedBoxes",
			d: Diagram{width: 3, layers: []Layer{
				{Kind: LayerBoxes, Width: 3, Boxes: []Box{box("b", 2, 1, 1), box("a", 0, 1, 1)}},
			}},
			code: errors.ErrCodeInvalidDiagram,
		},
		{
			name: "EmptyBoxName",
			d: Diagram{width: 1, layers: []Layer{
				{Kind: LayerBoxes, Width: 1, Boxes: []Box{box("", 0, 1, 1)}},
			}},
			code: errors.ErrCodeInvalidDiagram,
		},
		{
			name: "PermWrongLength",
			d: Diagram{width: 3, layers: []Layer{
				{Kind: LayerPermutation, Width: 3, Perm: []int{0, 1}},
			}},
			code: errors.ErrCodeInvalidDiagram,
		},
		{
			name: "PermRepeats",
			d: Diagram{width: 2, layers: []Layer{
				{Kind: LayerPermutation, Width: 2, Perm: []int{0, 0}},
			}},
			code: errors.ErrCodeInvalidDiagram,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.d.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	a := Tensor(mustBox(t, "e", 1, 1), mustBox(t, "e", 1, 1))
	b := Tensor(mustBox(t, "e", 1, 1), mustBox(t, "e", 1, 1))

	if !a.Equal(b) {
		t.Error("identically built diagrams should be Equal")
	}
	if a.Equal(nil) {
		t.Error("Equal(nil) = true, want false")
	}
	if a.Equal(Identity(2)) {
		t.Error("a box layer and an empty diagram should differ")
	}
	if a.Equal(Tensor(mustBox(t, "e", 1, 1), mustBox(t, "f", 1, 1))) {
		t.Error("diagrams with different box names should differ")
	}

	swapA, _ := NewPermutation([]int{1, 0})
	swapB, _ := NewPermutation([]int{1, 0})
	if !swapA.Equal(swapB) {
		t.Error("equal permutations should be Equal")
	}
}

func TestBoxesReturnsCanonicalOrder(t *testing.T) {
	d := mustStack(t,
		Tensor(mustBox(t, "a", 1, 1), mustBox(t, "b", 1, 1)),
		Tensor(mustBox(t, "c", 1, 1), mustBox(t, "d", 1, 1)),
	)
	boxes := d.Boxes()
	if len(boxes) != 4 {
		t.Fatalf("len(Boxes()) = %d, want 4", len(boxes))
	}
	for i, want := range []string{"a", "b", "c", "d"} {
		if boxes[i].Name != want {
			t.Errorf("Boxes()[%d].Name = %q, want %q", i, boxes[i].Name, want)
		}
	}
}
