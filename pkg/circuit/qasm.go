package circuit

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/toumix/tally/pkg/errors"
)

// GateIQP names the composite gate bound by the IQP ansatz. QASM export
// decomposes it into Hadamard moments and nearest-neighbour controlled-RZ
// rotations; every other gate name emits as a plain call line.
const GateIQP = "iqp"

// QASM renders the circuit as OPENQASM 2.0 text.
//
// Every wire expands to QubitsPerWire adjacent qubits. Gates named
// [GateIQP] decompose into rounds of Hadamards on their qubit run followed
// by controlled-RZ rotations between adjacent qubits, one round per
// parameter block of (qubits-1) values. Every other gate emits one call
// line over its qubit run, lowercased, parameters inline. Permutation
// layers lower to swap sequences realizing the permutation as adjacent
// wire transpositions.
//
// Only wire-preserving circuits export: a gate with In != Out has no fixed
// register mapping and yields an UNSUPPORTED error.
func (c *Circuit) QASM() (string, error) {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n\n", max(c.Qubits(), 1))

	for i, l := range c.layers {
		switch l.Kind {
		case LayerGates:
			for _, g := range l.Gates {
				if g.In != g.Out {
					return "", errors.New(errors.ErrCodeUnsupported,
						"layer %d: gate %q maps %d wires to %d, QASM export needs wire-preserving gates",
						i, g.Name, g.In, g.Out)
				}
				if g.In == 0 {
					continue
				}
				if err := writeGate(&sb, i, g, c.qubitsPerWire); err != nil {
					return "", err
				}
			}
		case LayerPermutation:
			writePermutation(&sb, l.Perm, c.qubitsPerWire)
		}
	}
	return sb.String(), nil
}

func writeGate(sb *strings.Builder, layer int, g Gate, m int) error {
	if strings.ToLower(g.Name) == GateIQP {
		return writeIQP(sb, layer, g, m)
	}
	fmt.Fprintf(sb, "%s%s %s;\n",
		strings.ToLower(g.Name), paramList(g.Params), qubitList(g.Pos*m, g.In*m))
	return nil
}

// writeIQP emits the fixed decomposition of an iqp gate over k = In*m
// qubits: per round, Hadamards on the whole run, then a controlled RZ
// between each adjacent pair. Each round consumes k-1 parameters.
func writeIQP(sb *strings.Builder, layer int, g Gate, m int) error {
	first, k := g.Pos*m, g.In*m
	if k < 2 {
		fmt.Fprintf(sb, "h q[%d];\n", first)
		return nil
	}
	if len(g.Params)%(k-1) != 0 {
		return errors.New(errors.ErrCodeInvalidCircuit,
			"layer %d: iqp gate at wire %d carries %d parameters, want a multiple of %d",
			layer, g.Pos, len(g.Params), k-1)
	}
	rounds := len(g.Params) / (k - 1)
	for r := range rounds {
		for q := first; q < first+k; q++ {
			fmt.Fprintf(sb, "h q[%d];\n", q)
		}
		base := r * (k - 1)
		for j := range k - 1 {
			fmt.Fprintf(sb, "crz(%s) q[%d], q[%d];\n",
				formatParam(g.Params[base+j]), first+j, first+j+1)
		}
	}
	return nil
}

// writePermutation lowers a permutation layer to swaps of adjacent wires.
// perm[i] is the output position of input wire i; bubble sorting the
// target positions realizes the permutation as adjacent transpositions,
// and each wire transposition swaps the two wires' qubit blocks pairwise.
func writePermutation(sb *strings.Builder, perm []int, m int) {
	dest := slices.Clone(perm)
	for {
		swapped := false
		for i := 0; i+1 < len(dest); i++ {
			if dest[i] > dest[i+1] {
				dest[i], dest[i+1] = dest[i+1], dest[i]
				for j := range m {
					fmt.Fprintf(sb, "swap q[%d], q[%d];\n", i*m+j, (i+1)*m+j)
				}
				swapped = true
			}
		}
		if !swapped {
			return
		}
	}
}

func paramList(params []float64) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = formatParam(p)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func formatParam(p float64) string {
	return strconv.FormatFloat(p, 'g', -1, 64)
}

func qubitList(first, count int) string {
	parts := make([]string, count)
	for i := range count {
		parts[i] = fmt.Sprintf("q[%d]", first+i)
	}
	return strings.Join(parts, ", ")
}
