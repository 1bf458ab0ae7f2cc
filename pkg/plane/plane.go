// Package plane lays a composition out in the unit square: every atom
// becomes a four-corner frame, and beside/below nodes subdivide their
// rectangle proportionally to the children's extents. The result is a
// plain node/edge graph with pinned coordinates for the renderer; no
// drawing happens here.
package plane

import (
	"slices"

	"github.com/toumix/tally/pkg/composition"
	"github.com/toumix/tally/pkg/errors"
)

// Point is a planar coordinate in the unit square.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Edge joins two node ids.
type Edge struct {
	U int `json:"u"`
	V int `json:"v"`
}

// Graph is a plane graph: node positions indexed by id plus undirected
// edges. Node ids are dense, starting at 0 in atom discovery order.
type Graph struct {
	nodes []Point
	edges []Edge
}

// NodeCount returns the number of nodes; four per atom.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges; four per atom.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Position returns the coordinates of node id.
func (g *Graph) Position(id int) Point { return g.nodes[id] }

// Nodes returns a copy of all node positions, indexed by id.
func (g *Graph) Nodes() []Point { return slices.Clone(g.nodes) }

// Edges returns a copy of all edges.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// FromComposition lays the composition out in the unit square.
//
// An atom claims its whole rectangle as a frame of four corner nodes
// joined in a cycle. A beside node splits its rectangle on x, giving each
// child a share proportional to its width; a below node splits on y the
// same way, first child on top. Equal cells always produce equal layouts.
func FromComposition(c *composition.Cell) (*Graph, error) {
	if c == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil cell")
	}
	g := &Graph{}
	g.build(c, rect{0, 0, 1, 1})
	return g, nil
}

type rect struct {
	x0, y0, x1, y1 float64
}

func (g *Graph) build(c *composition.Cell, r rect) {
	switch c.Kind() {
	case composition.KindBeside:
		split := r.x0 + (r.x1-r.x0)*float64(c.Left().Width())/float64(c.Width())
		g.build(c.Left(), rect{r.x0, r.y0, split, r.y1})
		g.build(c.Right(), rect{split, r.y0, r.x1, r.y1})
	case composition.KindBelow:
		// First operand on top, both children keep their orientation.
		split := r.y1 - (r.y1-r.y0)*float64(c.Left().Height())/float64(c.Height())
		g.build(c.Left(), rect{r.x0, split, r.x1, r.y1})
		g.build(c.Right(), rect{r.x0, r.y0, r.x1, split})
	default:
		base := len(g.nodes)
		g.nodes = append(g.nodes,
			Point{r.x0, r.y0},
			Point{r.x0, r.y1},
			Point{r.x1, r.y1},
			Point{r.x1, r.y0},
		)
		g.edges = append(g.edges,
			Edge{base, base + 1},
			Edge{base + 1, base + 2},
			Edge{base + 2, base + 3},
			Edge{base + 3, base},
		)
	}
}
