package render

import (
	"math/rand"

	"github.com/vanderheijden86/mindweave/pkg/debug"
	"github.com/vanderheijden86/mindweave/pkg/layout"
	"github.com/vanderheijden86/mindweave/pkg/metrics"
	"github.com/vanderheijden86/mindweave/pkg/model"
)

// dragAlphaTarget is the sustained energy level while a drag is active:
// enough for the layout to follow the pointer, low enough that it does
// not resettle the whole map.
const dragAlphaTarget = 0.3

// Engine owns the render pipeline: flatten the tree, seed simulation
// positions from surviving visual elements, reconcile elements by id,
// and run a fresh simulation whose ticks reposition everything.
//
// Render is idempotent: calling it again with the same tree diffs
// against the current visual state and destroys nothing. Calling it
// while a previous simulation is still settling abandons that
// simulation; visual continuity is carried by the element registry.
type Engine struct {
	host Host
	opts layout.Options

	elements map[string]Element
	// exiting holds elements whose exit fade has started but not yet
	// completed. A re-entering id reclaims its element from here instead
	// of creating a new one.
	exiting map[string]Element

	root  *model.Node
	sim   *layout.Simulation
	nodes []*layout.SimNode
	links []layout.SimLink
	byID  map[string]*layout.SimNode

	dragID string
	rng    *rand.Rand
}

// NewEngine creates an engine rendering into host with the given tuning.
func NewEngine(host Host, opts layout.Options) *Engine {
	return &Engine{
		host:     host,
		opts:     opts,
		elements: make(map[string]Element),
		exiting:  make(map[string]Element),
		rng:      rand.New(rand.NewSource(1)),
	}
}

// Render (re)builds the visible node set from root and starts a new
// simulation over it. Safe to call repeatedly with the same or an
// evolved tree; element identity is the node id.
func (e *Engine) Render(root *model.Node) {
	if root == nil {
		return
	}
	defer debug.LogEnterExit("render")()

	model.EnsureIDs(root)
	e.root = root

	stop := metrics.Timer(metrics.Flatten)
	nodes, links := layout.Flatten(root)
	stop()

	e.nodes, e.links = nodes, links
	e.byID = make(map[string]*layout.SimNode, len(nodes))
	for _, n := range nodes {
		e.byID[n.ID] = n
	}
	if e.dragID != "" && e.byID[e.dragID] == nil {
		// The dragged node left the visible set; the drag is over.
		e.dragID = ""
	}

	e.seed(nodes)
	e.reconcile(nodes)

	w, h := e.host.Bounds()
	e.sim = layout.New(nodes, links, w, h, e.measurer(), e.opts)
	if e.dragID != "" {
		// A render arriving mid-drag (watch reload) keeps the new
		// simulation warm until the pointer is released.
		e.sim.SetAlphaTarget(dragAlphaTarget)
	}
	e.sim.OnTick(e.applyPositions)
	e.applyPositions()
}

// Tick advances the current simulation one step and reports whether it
// is still running. No-op (false) before the first Render.
func (e *Engine) Tick() bool {
	if e.sim == nil {
		return false
	}
	return e.sim.Tick()
}

// Running reports whether the current simulation is still ticking.
func (e *Engine) Running() bool {
	return e.sim != nil && e.sim.Running()
}

// Root returns the tree from the last Render.
func (e *Engine) Root() *model.Node { return e.root }

// Nodes returns the current visible SimNodes.
func (e *Engine) Nodes() []*layout.SimNode { return e.nodes }

// Node returns the visible SimNode for id, or nil.
func (e *Engine) Node(id string) *layout.SimNode { return e.byID[id] }

// Element returns the registered visual element for id, or nil.
func (e *Engine) Element(id string) Element { return e.elements[id] }

// seed assigns starting positions. A surviving element's current
// on-screen position wins, so a re-render never jumps; new nodes start
// at the container center plus bounded jitter. Pinned nodes and the
// node of an in-flight drag are fixed at their seed immediately.
func (e *Engine) seed(nodes []*layout.SimNode) {
	w, h := e.host.Bounds()
	for _, n := range nodes {
		if el, ok := e.elements[n.ID]; ok {
			x, y := el.Position()
			n.Seed(x, y)
		} else if el, ok := e.exiting[n.ID]; ok {
			x, y := el.Position()
			n.Seed(x, y)
		} else if !n.Seeded() {
			n.Seed(
				w/2+(e.rng.Float64()*2-1)*e.opts.Jitter,
				h/2+(e.rng.Float64()*2-1)*e.opts.Jitter,
			)
		}
		if n.Pinned || n.ID == e.dragID {
			n.Fix(n.X, n.Y)
		}
	}
}

// measurer exposes element sizes to the simulation. Unmeasurable or
// missing elements report false and are skipped for the tick.
func (e *Engine) measurer() layout.Measurer {
	return layout.MeasurerFunc(func(id string) (layout.Size, bool) {
		el, ok := e.elements[id]
		if !ok {
			return layout.Size{}, false
		}
		w, h, ok := el.Size()
		if !ok {
			return layout.Size{}, false
		}
		return layout.Size{Width: w, Height: h}, true
	})
}

// applyPositions pushes clamped simulation positions onto the elements
// and redraws every link as a straight segment between current centers.
func (e *Engine) applyPositions() {
	for _, n := range e.nodes {
		if el, ok := e.elements[n.ID]; ok {
			el.MoveTo(n.X, n.Y)
		}
	}
	segs := make([]Segment, len(e.links))
	for i, l := range e.links {
		segs[i] = Segment{
			FromID: l.Source.ID, ToID: l.Target.ID,
			X1: l.Source.X, Y1: l.Source.Y,
			X2: l.Target.X, Y2: l.Target.Y,
		}
	}
	e.host.SetLinks(segs)
}

func stateOf(n *layout.SimNode) ElementState {
	return ElementState{
		Depth:     n.Depth,
		Pinned:    n.Pinned,
		Collapsed: n.Collapsed,
		HasToggle: n.HasToggle,
	}
}
