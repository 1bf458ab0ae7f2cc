package render

import (
	"strings"
	"testing"

	"github.com/toumix/tally/pkg/circuit"
	"github.com/toumix/tally/pkg/composition"
	"github.com/toumix/tally/pkg/diagram"
	"github.com/toumix/tally/pkg/plane"
)

func mustCell(t *testing.T, notation string) *composition.Cell {
	t.Helper()
	c, err := composition.Parse(notation)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", notation, err)
	}
	return c
}

func mustDiagram(t *testing.T, notation string) *diagram.Diagram {
	t.Helper()
	d, err := diagram.FromComposition(mustCell(t, notation))
	if err != nil {
		t.Fatalf("FromComposition(%q) error: %v", notation, err)
	}
	return d
}

func TestCompositionDOT(t *testing.T) {
	g, err := plane.FromComposition(composition.Empty())
	if err != nil {
		t.Fatalf("FromComposition() error: %v", err)
	}

	dot := CompositionDOT(g)

	if !strings.Contains(dot, "graph composition") {
		t.Error("CompositionDOT() missing graph declaration")
	}
	if !strings.Contains(dot, "layout=neato") {
		t.Error("CompositionDOT() missing neato layout")
	}
	if !strings.Contains(dot, `pos="0.0000,0.0000!"`) {
		t.Error("CompositionDOT() missing pinned origin corner")
	}
	if !strings.Contains(dot, `pos="4.0000,4.0000!"`) {
		t.Error("CompositionDOT() missing pinned far corner")
	}
	if got := strings.Count(dot, " -- "); got != 4 {
		t.Errorf("CompositionDOT() atom frame has %d edges, want 4", got)
	}
}

func TestDiagramDOTGrid(t *testing.T) {
	d := mustDiagram(t, "((e|e)&(e|e))")

	dot := DiagramDOT(d)

	if !strings.Contains(dot, "digraph diagram") {
		t.Error("DiagramDOT() missing digraph declaration")
	}
	if got := strings.Count(dot, `label="e"`); got != 4 {
		t.Errorf("DiagramDOT() has %d atom boxes, want 4", got)
	}
	// Wires flow ports -> first layer -> second layer -> ports.
	for _, edge := range []string{
		"in0 -> l0b0", "in1 -> l0b1",
		"l0b0 -> l1b0", "l0b1 -> l1b1",
		"l1b0 -> out0", "l1b1 -> out1",
	} {
		if !strings.Contains(dot, edge) {
			t.Errorf("DiagramDOT() missing edge %q", edge)
		}
	}
	// One rank group for the input ports plus one per box layer.
	if got := strings.Count(dot, "rank=same"); got != 3 {
		t.Errorf("DiagramDOT() has %d rank groups, want 3", got)
	}
}

func TestDiagramDOTPermutationCrossesWires(t *testing.T) {
	a, err := diagram.FromBox("a", 1, 1)
	if err != nil {
		t.Fatalf("FromBox() error: %v", err)
	}
	b, err := diagram.FromBox("b", 1, 1)
	if err != nil {
		t.Fatalf("FromBox() error: %v", err)
	}
	swap, err := diagram.NewPermutation([]int{1, 0})
	if err != nil {
		t.Fatalf("NewPermutation() error: %v", err)
	}
	d, err := diagram.Stack(diagram.Tensor(a, b), swap)
	if err != nil {
		t.Fatalf("Stack() error: %v", err)
	}

	dot := DiagramDOT(d)

	// The swap reroutes a's wire to output 1 and b's wire to output 0.
	if !strings.Contains(dot, "l0b0 -> out1") {
		t.Error("DiagramDOT() should route the first box to output 1")
	}
	if !strings.Contains(dot, "l0b1 -> out0") {
		t.Error("DiagramDOT() should route the second box to output 0")
	}
}

func TestCircuitDOT(t *testing.T) {
	c, err := circuit.New(2, 1, []circuit.Layer{
		{
			Kind:  circuit.LayerGates,
			Width: 2,
			Gates: []circuit.Gate{
				{Name: "rx", Pos: 0, In: 1, Out: 1, Params: []float64{0.5}},
				{Name: "iqp", Pos: 1, In: 1, Out: 1, Params: []float64{1, 2, 3, 4, 5, 6}},
			},
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	dot := CircuitDOT(c)

	if !strings.Contains(dot, "digraph circuit") {
		t.Error("CircuitDOT() missing digraph declaration")
	}
	if !strings.Contains(dot, `label="rx(0.5)"`) {
		t.Error("CircuitDOT() missing parameterized gate label")
	}
	if !strings.Contains(dot, `label="iqp[6 params]"`) {
		t.Error("CircuitDOT() should collapse long parameter lists")
	}
	if !strings.Contains(dot, "in0 -> l0g0") {
		t.Error("CircuitDOT() missing input wire edge")
	}
}

func TestGateLabel(t *testing.T) {
	tests := []struct {
		name string
		gate circuit.Gate
		want string
	}{
		{"NoParams", circuit.Gate{Name: "h"}, "h"},
		{"OneParam", circuit.Gate{Name: "rx", Params: []float64{0.5}}, "rx(0.5)"},
		{"TwoParams", circuit.Gate{Name: "u", Params: []float64{0.1, 0.2}}, "u(0.1, 0.2)"},
		{"ManyParams", circuit.Gate{Name: "iqp", Params: []float64{1, 2, 3, 4, 5}}, "iqp[5 params]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gateLabel(tt.gate); got != tt.want {
				t.Errorf("gateLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDOTIsDeterministic(t *testing.T) {
	d := mustDiagram(t, "((e&e)|(e&e))")

	if DiagramDOT(d) != DiagramDOT(d) {
		t.Error("DiagramDOT() should be deterministic")
	}

	g, err := plane.FromComposition(mustCell(t, "((e&e)|(e&e))"))
	if err != nil {
		t.Fatalf("FromComposition() error: %v", err)
	}
	if CompositionDOT(g) != CompositionDOT(g) {
		t.Error("CompositionDOT() should be deterministic")
	}
}
