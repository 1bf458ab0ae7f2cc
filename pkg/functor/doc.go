// Package functor turns diagrams into circuits by binding a parameter
// vector to the diagram's boxes.
//
// A [Functor] holds an [Ansatz], the policy deciding what each box costs
// and what gate it becomes. [Functor.NParams] reports how many parameters
// a given diagram wants; the count is a pure function of the diagram and
// the ansatz, never shared state. [Functor.Apply] checks the vector length
// up front, then walks the diagram in canonical order (layer by layer,
// ascending wire position) slicing one consecutive parameter run per box.
// Parameter k always lands on the k-th box of that order, so results are
// reproducible across processes.
//
// Two ansatze ship with the package. [RotationAnsatz] binds every box to a
// one-parameter single-axis rotation. [IQPAnsatz] binds every box to a
// composite iqp gate where each wire stands for Width qubits and a box
// over n wires consumes Depth*(n*Width-1) parameters.
//
// # Basic Usage
//
//	d, _ := diagram.FromComposition(cell)
//	f, _ := functor.New(functor.RotationAnsatz{Axis: "x"})
//	c, _ := f.Apply(d, f.ZeroParams(d))
//
// Ansatz selection is configurable through a TOML [Profile]; the CLI loads
// one with [LoadProfile].
package functor
