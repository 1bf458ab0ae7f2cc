package circuit

import (
	"strings"
	"testing"

	"github.com/toumix/tally/pkg/errors"
)

func TestQASMRotationCircuit(t *testing.T) {
	c := mustNew(t, 2, 1, []Layer{
		gateLayer(2,
			Gate{Name: "rx", Pos: 0, In: 1, Out: 1, Params: []float64{0.5}},
			Gate{Name: "rx", Pos: 1, In: 1, Out: 1, Params: []float64{0.25}},
		),
	})

	got, err := c.QASM()
	if err != nil {
		t.Fatalf("QASM() error = %v", err)
	}
	want := "OPENQASM 2.0;\n" +
		"include \"qelib1.inc\";\n\n" +
		"qreg q[2];\n\n" +
		"rx(0.5) q[0];\n" +
		"rx(0.25) q[1];\n"
	if got != want {
		t.Errorf("QASM() = %q, want %q", got, want)
	}
}

func TestQASMPermutationLowersToSwaps(t *testing.T) {
	c := mustNew(t, 3, 1, []Layer{permLayer(2, 0, 1)})

	got, err := c.QASM()
	if err != nil {
		t.Fatalf("QASM() error = %v", err)
	}
	want := "swap q[0], q[1];\nswap q[1], q[2];\n"
	if !strings.HasSuffix(got, want) {
		t.Errorf("QASM() = %q, want suffix %q", got, want)
	}
	if !strings.Contains(got, "qreg q[3];") {
		t.Errorf("QASM() register = %q, want qreg q[3]", got)
	}
}

func TestQASMPermutationSwapsQubitBlocks(t *testing.T) {
	c := mustNew(t, 2, 2, []Layer{permLayer(1, 0)})

	got, err := c.QASM()
	if err != nil {
		t.Fatalf("QASM() error = %v", err)
	}
	want := "swap q[0], q[2];\nswap q[1], q[3];\n"
	if !strings.HasSuffix(got, want) {
		t.Errorf("QASM() = %q, want suffix %q", got, want)
	}
}

func TestQASMIQPDecomposition(t *testing.T) {
	c := mustNew(t, 2, 1, []Layer{
		gateLayer(2, Gate{Name: GateIQP, Pos: 0, In: 2, Out: 2, Params: []float64{0.1, 0.2}}),
	})

	got, err := c.QASM()
	if err != nil {
		t.Fatalf("QASM() error = %v", err)
	}
	want := "h q[0];\n" +
		"h q[1];\n" +
		"crz(0.1) q[0], q[1];\n" +
		"h q[0];\n" +
		"h q[1];\n" +
		"crz(0.2) q[0], q[1];\n"
	if !strings.HasSuffix(got, want) {
		t.Errorf("QASM() = %q, want suffix %q", got, want)
	}
}

func TestQASMIQPQubitBlocks(t *testing.T) {
	// One 1-wire iqp gate over two qubits per wire: a single round of
	// Hadamards plus one controlled RZ inside the block.
	c := mustNew(t, 1, 2, []Layer{
		gateLayer(1, Gate{Name: GateIQP, Pos: 0, In: 1, Out: 1, Params: []float64{0.3}}),
	})

	got, err := c.QASM()
	if err != nil {
		t.Fatalf("QASM() error = %v", err)
	}
	want := "h q[0];\nh q[1];\ncrz(0.3) q[0], q[1];\n"
	if !strings.HasSuffix(got, want) {
		t.Errorf("QASM() = %q, want suffix %q", got, want)
	}
}

func TestQASMErrors(t *testing.T) {
	merge := mustNew(t, 2, 1, []Layer{
		gateLayer(2, Gate{Name: "m", Pos: 0, In: 2, Out: 1}),
		gateLayer(1, Gate{Name: "e", Pos: 0, In: 1, Out: 1}),
	})
	if _, err := merge.QASM(); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("QASM() on a width-changing gate: error = %v, want UNSUPPORTED", err)
	}

	badIQP := mustNew(t, 3, 1, []Layer{
		gateLayer(3, Gate{Name: GateIQP, Pos: 0, In: 3, Out: 3, Params: []float64{1, 2, 3}}),
	})
	if _, err := badIQP.QASM(); !errors.Is(err, errors.ErrCodeInvalidCircuit) {
		t.Errorf("QASM() on a ragged iqp parameter block: error = %v, want INVALID_CIRCUIT", err)
	}
}
