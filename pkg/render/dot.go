package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/toumix/tally/pkg/circuit"
	"github.com/toumix/tally/pkg/diagram"
	"github.com/toumix/tally/pkg/plane"
)

// compositionScale maps the unit square onto a 4x4 inch canvas. Neato
// positions are in inches, and a 1x1 drawing is too small to read.
const compositionScale = 4.0

// CompositionDOT converts a plane graph to Graphviz DOT. Positions are
// pinned, so rendering with the neato engine reproduces the subdivision
// exactly instead of inventing a layout.
func CompositionDOT(g *plane.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("graph composition {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=point, width=0.08, color=\"#2e3440\"];\n")
	buf.WriteString("  edge [color=\"#4c566a\", penwidth=1.5];\n")
	buf.WriteString("\n")

	for i, p := range g.Nodes() {
		fmt.Fprintf(&buf, "  n%d [pos=\"%.4f,%.4f!\"];\n", i, p.X*compositionScale, p.Y*compositionScale)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  n%d -- n%d;\n", e.U, e.V)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// DiagramDOT converts a diagram to Graphviz DOT. Each box layer becomes a
// ranked row and every wire is traced from the node that produced it to the
// node that consumes it, so permutation layers show up as crossing edges.
func DiagramDOT(d *diagram.Diagram) string {
	var buf bytes.Buffer
	buf.WriteString("digraph diagram {\n")
	writeLayeredHeader(&buf)

	sources := writePorts(&buf, "in", d.Width())

	for i, l := range d.Layers() {
		switch l.Kind {
		case diagram.LayerBoxes:
			sources = writeBoxLayer(&buf, i, l, sources)
		case diagram.LayerPermutation:
			sources = routeWires(sources, l.Perm)
		}
	}

	writeOutputs(&buf, sources)
	buf.WriteString("}\n")
	return buf.String()
}

// CircuitDOT converts a circuit to Graphviz DOT, in the same layered shape
// as [DiagramDOT] but with gates labelled by name and parameters.
func CircuitDOT(c *circuit.Circuit) string {
	var buf bytes.Buffer
	buf.WriteString("digraph circuit {\n")
	writeLayeredHeader(&buf)

	sources := writePorts(&buf, "in", c.Width())

	for i, l := range c.Layers() {
		switch l.Kind {
		case circuit.LayerGates:
			sources = writeGateLayer(&buf, i, l, sources)
		case circuit.LayerPermutation:
			sources = routeWires(sources, l.Perm)
		}
	}

	writeOutputs(&buf, sources)
	buf.WriteString("}\n")
	return buf.String()
}

func writeLayeredHeader(buf *bytes.Buffer) {
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [arrowhead=none];\n\n")
}

// writePorts emits one plaintext node per boundary wire and returns their
// DOT identifiers in wire order.
func writePorts(buf *bytes.Buffer, prefix string, width int) []string {
	ids := make([]string, width)
	for w := range ids {
		ids[w] = fmt.Sprintf("%s%d", prefix, w)
		fmt.Fprintf(buf, "  %s [label=\"%d\", shape=plaintext];\n", ids[w], w)
	}
	if len(ids) > 0 {
		writeRank(buf, ids)
	}
	return ids
}

func writeOutputs(buf *bytes.Buffer, sources []string) {
	for w, src := range sources {
		id := fmt.Sprintf("out%d", w)
		fmt.Fprintf(buf, "  %s [label=\"%d\", shape=plaintext];\n", id, w)
		fmt.Fprintf(buf, "  %s -> %s;\n", src, id)
	}
}

// writeBoxLayer emits the boxes of one layer and connects their input
// wires. It returns the sources of the layer's output wires: identity wires
// keep their producer, box outputs point at the box.
func writeBoxLayer(buf *bytes.Buffer, layer int, l diagram.Layer, sources []string) []string {
	next := make([]string, 0, l.OutWidth())
	rank := make([]string, 0, len(l.Boxes))

	cursor := 0
	for _, b := range l.Boxes {
		for ; cursor < b.Pos; cursor++ {
			next = append(next, sources[cursor])
		}
		id := fmt.Sprintf("l%db%d", layer, b.Pos)
		fmt.Fprintf(buf, "  %s [label=%q];\n", id, b.Name)
		rank = append(rank, id)
		for w := b.Pos; w < b.Pos+b.In; w++ {
			fmt.Fprintf(buf, "  %s -> %s;\n", sources[w], id)
		}
		cursor = b.Pos + b.In
		for range b.Out {
			next = append(next, id)
		}
	}
	for ; cursor < len(sources); cursor++ {
		next = append(next, sources[cursor])
	}

	if len(rank) > 0 {
		writeRank(buf, rank)
	}
	return next
}

// writeGateLayer is the circuit counterpart of writeBoxLayer.
func writeGateLayer(buf *bytes.Buffer, layer int, l circuit.Layer, sources []string) []string {
	next := make([]string, 0, l.OutWidth())
	rank := make([]string, 0, len(l.Gates))

	cursor := 0
	for _, g := range l.Gates {
		for ; cursor < g.Pos; cursor++ {
			next = append(next, sources[cursor])
		}
		id := fmt.Sprintf("l%dg%d", layer, g.Pos)
		fmt.Fprintf(buf, "  %s [label=%q];\n", id, gateLabel(g))
		rank = append(rank, id)
		for w := g.Pos; w < g.Pos+g.In; w++ {
			fmt.Fprintf(buf, "  %s -> %s;\n", sources[w], id)
		}
		cursor = g.Pos + g.In
		for range g.Out {
			next = append(next, id)
		}
	}
	for ; cursor < len(sources); cursor++ {
		next = append(next, sources[cursor])
	}

	if len(rank) > 0 {
		writeRank(buf, rank)
	}
	return next
}

// routeWires applies a permutation layer to the wire sources. The crossing
// is drawn implicitly by the edges into the next consumers.
func routeWires(sources []string, perm []int) []string {
	next := make([]string, len(sources))
	for from, to := range perm {
		next[to] = sources[from]
	}
	return next
}

// gateLabel renders a gate name with its parameters. Long parameter lists
// (IQP gates can carry dozens) collapse to a count.
func gateLabel(g circuit.Gate) string {
	if len(g.Params) == 0 {
		return g.Name
	}
	if len(g.Params) > 4 {
		return fmt.Sprintf("%s[%d params]", g.Name, len(g.Params))
	}
	parts := make([]string, len(g.Params))
	for i, p := range g.Params {
		parts[i] = strconv.FormatFloat(p, 'g', 4, 64)
	}
	return fmt.Sprintf("%s(%s)", g.Name, strings.Join(parts, ", "))
}

func writeRank(buf *bytes.Buffer, ids []string) {
	buf.WriteString("  { rank=same; ")
	buf.WriteString(strings.Join(ids, "; "))
	buf.WriteString("; }\n")
}
