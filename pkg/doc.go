// Package pkg provides the core libraries for tally, a grid-composition
// algebra with a compilation pipeline down to quantum circuits.
//
// # Overview
//
// Tally models rectangular grids as an algebra of cells: a unit atom and two
// combinators that place cells side by side or on top of each other. Grids
// normalize into layered string diagrams, and diagrams map functorially onto
// parameterized quantum circuits. The pkg directory is organized into three
// main areas:
//
//  1. Domain algebra ([composition], [diagram], [functor], [circuit])
//  2. Orchestration ([pipeline], [cache], [observability])
//  3. Visualization ([plane], [render])
//
// # Architecture
//
// The typical data flow through tally:
//
//	Grid notation / JSON / random seed
//	         ↓
//	    [composition] package (grid algebra: atom, beside, below)
//	         ↓
//	    [diagram] package (normalization into box layers)
//	         ↓
//	    [functor] package (ansatz binds boxes to gates)
//	         ↓
//	    [circuit] package (gate layers, QASM export)
//	         ↓
//	    QASM/JSON/DOT/SVG/PNG output
//
// # Quick Start
//
// Build a grid, normalize it, and compile a circuit:
//
//	import (
//	    "github.com/toumix/tally/pkg/composition"
//	    "github.com/toumix/tally/pkg/diagram"
//	    "github.com/toumix/tally/pkg/functor"
//	)
//
//	// 1. Build a 2x2 grid
//	cell, _ := composition.Parse("((e | e) & (e | e))")
//
//	// 2. Normalize to a layered diagram
//	d, _ := diagram.FromComposition(cell)
//
//	// 3. Bind every box to a rotation gate
//	f, _ := functor.New(functor.RotationAnsatz{})
//	circ, _ := f.Apply(d, f.ZeroParams(d))
//
//	// 4. Export
//	qasm, _ := circ.QASM()
//
// # Main Packages
//
// ## Domain Algebra
//
// [composition] - Immutable cell trees with extent-checked combinators,
// canonical notation with a parser, seeded random generation, and a JSON
// wire format that also reads n-ary term lists.
//
// [diagram] - Layered string diagrams: rows of named boxes joined by wires,
// with permutation layers for wire routing. [diagram.FromComposition]
// normalizes a grid row by row; equal grids always normalize to equal
// diagrams.
//
// [functor] - The bridge from diagrams to circuits. A [functor.Ansatz]
// decides how many parameters each box consumes and which gate it becomes;
// [functor.RotationAnsatz] and [functor.IQPAnsatz] ship built in, and TOML
// profiles select and configure them at the CLI boundary.
//
// [circuit] - Wire-indexed gate layers with validation, OPENQASM 2.0 export
// (iqp gates decompose into Hadamard and controlled-RZ moments, permutations
// lower to swap chains), and a JSON wire format.
//
// ## Orchestration
//
// [pipeline] - The compose, normalize, bind, export pipeline shared by every
// entry point. [pipeline.Runner] memoizes normalization, binding, and export
// through a [cache.Cache] keyed by content hashes.
//
// [cache] - Cache interface with file, memory, and null implementations plus
// a versioned key scheme. The file cache shards entries by key hash and
// honors TTLs.
//
// [observability] - Hook registry for pipeline and cache events. Backends
// register at startup; libraries emit through no-op defaults.
//
// ## Visualization
//
// [plane] - Plane-graph layout of a composition: every cell becomes its
// rectangle in the unit square, scaled for rendering.
//
// [render] - DOT generation for compositions, diagrams, and circuits, and
// Graphviz-backed conversion to SVG and PNG.
//
// # Common Workflows
//
// Run the whole pipeline with caching:
//
//	runner := pipeline.NewRunner(fileCache, cache.NewDefaultKeyer(), logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    Expression: "((e|e)&(e|e))",
//	    Formats:    []string{"qasm", "json"},
//	})
//
// Bind with an IQP profile:
//
//	profile, _ := functor.LoadProfile("iqp.toml")
//	ansatz, _ := profile.Build()
//	f, _ := functor.New(ansatz)
//	circ, _ := f.Apply(d, params)
//
// Render a diagram to SVG:
//
//	svg, _ := render.SVG(ctx, render.DiagramDOT(d))
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/composition/...  # Specific package
//	go test -run Example           # Examples only
//
// [composition]: https://pkg.go.dev/github.com/toumix/tally/pkg/composition
// [diagram]: https://pkg.go.dev/github.com/toumix/tally/pkg/diagram
// [functor]: https://pkg.go.dev/github.com/toumix/tally/pkg/functor
// [circuit]: https://pkg.go.dev/github.com/toumix/tally/pkg/circuit
// [pipeline]: https://pkg.go.dev/github.com/toumix/tally/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/toumix/tally/pkg/cache
// [observability]: https://pkg.go.dev/github.com/toumix/tally/pkg/observability
// [plane]: https://pkg.go.dev/github.com/toumix/tally/pkg/plane
// [render]: https://pkg.go.dev/github.com/toumix/tally/pkg/render
package pkg
