// Package circuit defines the output artifact of the functor: a layered
// gate sequence with the same wire topology as the diagram it was built
// from.
//
// A [Circuit] mirrors a diagram layer for layer. Box layers become gate
// layers whose [Gate]s carry the bound parameter values; permutation layers
// are preserved unchanged. Wires keep their diagram meaning (grid columns),
// and each wire stands for a fixed number of qubits chosen by the ansatz
// that built the circuit.
//
// The package holds no gate mathematics. Gates are names, wire runs, and
// parameter vectors; anything numeric (simulation, optimization) lives
// outside this repository.
//
// # Exports
//
// [Circuit.QASM] renders OPENQASM 2.0 text. Rotation gates emit directly,
// iqp gates decompose into Hadamard and controlled-RZ moments, and
// permutation layers lower to swap sequences. [Circuit.MarshalJSON] and
// [ReadJSON]/[WriteJSON]/[ImportJSON]/[ExportJSON] mirror the diagram
// package's JSON surface.
package circuit
