// Package layout computes mind map node positions with an iterative
// force simulation: spring links between parent and child, many-body
// repulsion, centering, weak axial gravity and box-aware collision
// resolution, integrated one tick per animation frame until the
// simulation energy decays to rest.
package layout

import "github.com/vanderheijden86/mindweave/pkg/model"

// SimNode is the per-render simulation wrapper around one visible tree
// node. It is rebuilt on every render; identity across renders is the
// tree node id, never the SimNode pointer.
type SimNode struct {
	ID     string
	Text   string
	Depth  int
	Parent *SimNode

	Pinned    bool
	Collapsed bool
	HasToggle bool

	X, Y   float64
	VX, VY float64
	// FX/FY, when set, hold the node at a fixed position: the integrator
	// rewrites X/Y from them each tick and zeroes velocity.
	FX, FY *float64

	seeded bool
}

// Fix pins the node's simulated position at (x, y).
func (n *SimNode) Fix(x, y float64) {
	n.X, n.Y = x, y
	fx, fy := x, y
	n.FX, n.FY = &fx, &fy
}

// Unfix releases a fixed position so forces move the node again.
func (n *SimNode) Unfix() {
	n.FX, n.FY = nil, nil
}

// Fixed reports whether the node is held at a fixed position.
func (n *SimNode) Fixed() bool {
	return n.FX != nil && n.FY != nil
}

// Seed places the node at (x, y) and marks it seeded so later seeding
// passes leave it alone.
func (n *SimNode) Seed(x, y float64) {
	n.X, n.Y = x, y
	n.seeded = true
}

// Seeded reports whether the node already received a starting position.
func (n *SimNode) Seeded() bool {
	return n.seeded
}

// SimLink is one parent→child edge between visible nodes.
type SimLink struct {
	Source *SimNode
	Target *SimNode
}

// Flatten walks the tree in pre-order and returns the visible nodes and
// the links connecting each visible node to its visible parent. A node
// is visible iff it is the root or its parent is visible and not
// collapsed; collapsing hides the entire subtree below the collapse
// point.
func Flatten(root *model.Node) ([]*SimNode, []SimLink) {
	if root == nil {
		return nil, nil
	}
	var nodes []*SimNode
	var links []SimLink

	var walk func(n *model.Node, parent *SimNode, depth int)
	walk = func(n *model.Node, parent *SimNode, depth int) {
		sn := &SimNode{
			ID:        n.ID,
			Text:      n.Text,
			Depth:     depth,
			Parent:    parent,
			Pinned:    n.Pinned,
			Collapsed: n.Collapsed(),
			HasToggle: n.HasToggle(),
		}
		nodes = append(nodes, sn)
		if parent != nil {
			links = append(links, SimLink{Source: parent, Target: sn})
		}
		for _, c := range n.Children() {
			walk(c, sn, depth+1)
		}
	}
	walk(root, nil, 0)
	return nodes, links
}
