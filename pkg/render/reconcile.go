package render

import (
	"github.com/vanderheijden86/mindweave/pkg/layout"
	"github.com/vanderheijden86/mindweave/pkg/metrics"
)

// reconcile diffs the new visible node set against the element registry.
// Ids present in both are updated in place; new ids get a fresh element
// faded in at the node's seeded position; departed ids fade out and are
// destroyed once the fade completes. A re-render with an unchanged tree
// therefore touches no element lifecycle at all.
func (e *Engine) reconcile(nodes []*layout.SimNode) {
	defer metrics.Timer(metrics.Reconcile)()

	next := make(map[string]*layout.SimNode, len(nodes))
	for _, n := range nodes {
		next[n.ID] = n
	}

	// Exits first so the host can reuse the freed space. The completion
	// callback only removes the element while this exact exit is still
	// pending; an id that re-enters mid-fade reclaims its element below
	// and the stale callback becomes a no-op.
	for id, el := range e.elements {
		if _, ok := next[id]; ok {
			continue
		}
		delete(e.elements, id)
		e.exiting[id] = el
		id, el := id, el
		el.FadeOut(e.opts.FadeDuration, func() {
			if e.exiting[id] != el {
				return
			}
			delete(e.exiting, id)
			e.host.RemoveElement(id)
		})
	}

	for _, n := range nodes {
		el, ok := e.elements[n.ID]
		if !ok {
			if old, mid := e.exiting[n.ID]; mid {
				// Re-entered before the exit fade finished: reclaim the
				// element and fade it back in where it stands.
				delete(e.exiting, n.ID)
				e.elements[n.ID] = old
				old.SetText(n.Text)
				old.SetState(stateOf(n))
				old.FadeIn(e.opts.FadeDuration)
				continue
			}
			el = e.host.CreateElement(n.ID)
			e.elements[n.ID] = el
			el.SetText(n.Text)
			el.SetState(stateOf(n))
			el.MoveTo(n.X, n.Y)
			el.FadeIn(e.opts.FadeDuration)
			continue
		}
		el.SetText(n.Text)
		el.SetState(stateOf(n))
	}
}

// refreshStates re-applies tree-derived display state to surviving
// elements without touching positions, used after pin changes that do
// not alter topology.
func (e *Engine) refreshStates() {
	for _, n := range e.nodes {
		if el, ok := e.elements[n.ID]; ok {
			el.SetState(stateOf(n))
		}
	}
}
