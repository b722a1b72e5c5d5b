package tangle

import "github.com/softbranch/tangle/scene"

// Node is a graph vertex. Name doubles as the display label and the filter
// key. The simulation owns the authoritative values of the position fields
// (X, Y) and the pinned position (PX, PY); the widget owns identity,
// selection, and style fields.
type Node struct {
	Name  string
	Value float64 // size hint; non-positive values fall back to the default radius

	Color      scene.Color
	LabelColor *scene.Color // nil falls back to Config.DefaultLabelColor

	Selected bool
	Dragging bool

	X, Y   float64
	PX, PY float64

	// Positioned marks the coordinates as deliberate. The simulation scatters
	// only unpositioned nodes still at the origin, then sets the flag, so a
	// node placed or dragged to (0, 0) is never re-scattered. Callers seeding
	// a node at the exact origin should set it explicitly.
	Positioned bool

	// mid marks synthetic midpoint nodes injected per link. They are never
	// exposed to the caller and are excluded from selection and filtering.
	mid bool
}

// Link is a graph edge. Source and Target are indices into Graph.Nodes at
// input time. Value is the rendered stroke width; non-positive values fall
// back to the default. Links are directionless for layout, but the
// (Source, Target) order is preserved for identifier generation.
type Link struct {
	Source int
	Target int
	Value  float64
}

// Graph is the caller-supplied input: nodes plus links referencing them by
// index. Link indices are a caller contract and are not validated here;
// out-of-range indices panic at model-build time.
type Graph struct {
	Nodes []*Node
	Links []Link
}

// Spring is a working link fed to the simulation: one directed edge between
// two working nodes. Each input link yields two springs through its midpoint.
type Spring struct {
	Source *Node
	Target *Node
}

// Bilink is the synthetic per-link triple (source, midpoint, target) that
// enables two-segment edge rendering. Mid is a zero-size node injected into
// the simulation solely to host the edge's visual midpoint and label anchor.
type Bilink struct {
	Source *Node
	Mid    *Node
	Target *Node
	Value  float64
}

// buildModel transforms the input graph into the simulation's representation:
// the working node list (input nodes plus one midpoint per link), the spring
// list (two per link), and the bilink list (one per link). The node slice is
// shallow-copied before midpoints are appended; node objects themselves are
// shared with the caller.
func buildModel(g Graph) (nodes []*Node, springs []Spring, bilinks []Bilink) {
	nodes = make([]*Node, 0, len(g.Nodes)+len(g.Links))
	nodes = append(nodes, g.Nodes...)
	springs = make([]Spring, 0, len(g.Links)*2)
	bilinks = make([]Bilink, 0, len(g.Links))

	for _, l := range g.Links {
		src := g.Nodes[l.Source]
		dst := g.Nodes[l.Target]
		m := &Node{Name: src.Name + "-" + dst.Name, mid: true}
		nodes = append(nodes, m)
		springs = append(springs, Spring{Source: src, Target: m}, Spring{Source: m, Target: dst})
		bilinks = append(bilinks, Bilink{Source: src, Mid: m, Target: dst, Value: l.Value})
	}
	return nodes, springs, bilinks
}

// nodeRadius returns the node's rendered radius, substituting the default for
// missing or non-positive size hints.
func nodeRadius(n *Node) float64 {
	if n.Value <= 0 {
		return defaultNodeRadius
	}
	return n.Value
}

// linkWidth returns the link's rendered stroke width, substituting the
// default for missing or non-positive weights.
func linkWidth(value float64) float64 {
	if value <= 0 {
		return defaultLinkWidth
	}
	return value
}
