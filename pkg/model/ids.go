package model

import "fmt"

// EnsureIDs assigns a deterministic synthetic id to every node that has
// none, derived from its pre-order position ("node-0", "node-1", ...).
// Nodes that already carry an id keep it. Synthetic ids are positional:
// if the source reorders siblings between loads without stable ids, the
// renderer will misattribute identity across renders. That is a
// documented limitation of positional fallback, not an error.
func EnsureIDs(root *Node) {
	idx := 0
	root.Walk(func(n *Node) bool {
		if n.ID == "" {
			n.ID = fmt.Sprintf("node-%d", idx)
		}
		idx++
		return true
	})
}

// MergeState copies the pinned flag and collapse state from old onto
// every node in next that shares an id, so interaction state survives a
// reload of the underlying document. Nodes without a counterpart keep
// their loaded state.
func MergeState(old, next *Node) {
	if old == nil || next == nil {
		return
	}
	prev := make(map[string]*Node)
	old.Walk(func(n *Node) bool {
		if n.ID != "" {
			prev[n.ID] = n
		}
		return true
	})
	next.Walk(func(n *Node) bool {
		p, ok := prev[n.ID]
		if !ok {
			return true
		}
		n.Pinned = p.Pinned
		if p.collapsed && len(n.children) > 0 {
			n.collapsed = true
		} else if !p.collapsed {
			n.collapsed = false
		}
		return true
	})
}
