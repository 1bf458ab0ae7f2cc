// Package render turns compositions, diagrams, and circuits into images.
//
// # Overview
//
// Every renderer goes through Graphviz DOT text:
//
//   - [CompositionDOT] draws the plane graph of a composition, a recursive
//     subdivision of the unit square with one four-corner frame per atom.
//     Node positions are pinned, so the neato engine reproduces the layout
//     exactly.
//   - [DiagramDOT] draws a diagram as ranked rows of boxes with the wires
//     traced between them.
//   - [CircuitDOT] does the same for a bound circuit, labelling gates with
//     their parameters.
//
// The DOT text can be fed to any Graphviz installation, or rasterized in
// process with [SVG] and [PNG].
//
// # Usage
//
//	g, _ := plane.FromComposition(cell)
//	dot := render.CompositionDOT(g)
//	svg, err := render.SVG(ctx, dot)
//
// The core packages never import render; render imports them.
package render
