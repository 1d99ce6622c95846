package render

import "github.com/vanderheijden86/mindweave/pkg/model"

// Interaction state machine. The host translates raw pointer events into
// these calls; all of them run on the host's event loop, between ticks.
//
// Dragging always ends in a pin: releasing the pointer fixes the node at
// the drop point and marks it pinned in the tree, so the state survives
// re-renders. Unpinning is a double-click (one node) or a double-click
// on empty background (every node).

// PointerDown begins a drag on the node with the given id: the node is
// fixed at its current position and the simulation is held at a
// sustained low energy so the layout stays live around the pointer.
//
// Toggle affordances intercept pointer-down in the host before drag
// handling, so a toggle click never reaches here.
func (e *Engine) PointerDown(id string) {
	n := e.byID[id]
	if n == nil {
		return
	}
	e.dragID = id
	n.Fix(n.X, n.Y)
	if e.sim != nil {
		e.sim.SetAlphaTarget(dragAlphaTarget)
	}
}

// PointerMove updates the dragged node's fixed position to follow the
// pointer. No-op when no drag is active.
func (e *Engine) PointerMove(x, y float64) {
	n := e.byID[e.dragID]
	if n == nil {
		return
	}
	n.Fix(x, y)
}

// PointerUp ends the drag: the sustained energy relaxes back to zero and
// the node is committed as pinned at the drop point. Drag always pins.
func (e *Engine) PointerUp(x, y float64) {
	n := e.byID[e.dragID]
	if n == nil {
		return
	}
	e.dragID = ""
	if e.sim != nil {
		e.sim.SetAlphaTarget(0)
	}
	n.Fix(x, y)
	n.Pinned = true
	if tn := e.root.Find(n.ID); tn != nil {
		tn.Pinned = true
	}
	e.refreshStates()
}

// Dragging reports whether a drag is in progress.
func (e *Engine) Dragging() bool { return e.dragID != "" }

// UnpinNode clears a single node's pin and reinjects energy so the freed
// node resettles. Bound to double-click on a node.
func (e *Engine) UnpinNode(id string) {
	n := e.byID[id]
	if n == nil {
		return
	}
	n.Unfix()
	n.Pinned = false
	if tn := e.root.Find(id); tn != nil {
		tn.Pinned = false
	}
	if e.sim != nil {
		e.sim.Reheat()
	}
	e.refreshStates()
}

// UnpinAll clears every pin and reinjects energy. Bound to double-click
// on empty background.
func (e *Engine) UnpinAll() {
	for _, n := range e.nodes {
		n.Unfix()
		n.Pinned = false
	}
	if e.root != nil {
		e.root.Walk(func(n *model.Node) bool {
			n.Pinned = false
			return true
		})
	}
	if e.sim != nil {
		e.sim.Reheat()
	}
	e.refreshStates()
}

// Toggle collapses the node if it currently shows children, otherwise
// expands one level, then re-renders the same tree with the same tuning
// so pins and options persist across the structural change.
func (e *Engine) Toggle(id string) {
	if e.root == nil {
		return
	}
	n := e.root.Find(id)
	if n == nil || !n.HasToggle() {
		return
	}
	if n.Collapsed() {
		n.ExpandOne()
	} else {
		n.Collapse()
	}
	e.Render(e.root)
}
