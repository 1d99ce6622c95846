package layout

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vanderheijden86/mindweave/pkg/metrics"
)

// alphaMin is the energy threshold below which the simulation goes idle.
const alphaMin = 1e-3

// Simulation integrates the force set over a node slice, one tick per
// animation frame. It is idle→running→idle: energy ("alpha") is injected
// at creation and by Reheat, decays geometrically each tick, and the
// simulation stops ticking once it falls below alphaMin. A nonzero alpha
// target (used while dragging) keeps it alive at a bounded energy level.
//
// Not safe for concurrent use: the host event loop calls Tick between
// input events, and tree mutation only happens between ticks.
type Simulation struct {
	nodes  []*SimNode
	forces []Force
	opts   Options

	width, height float64
	sizes         map[string]Size
	measurer      Measurer

	alpha       float64
	alphaTarget float64
	running     bool

	onTick func()
}

// New assembles the standard force set (link, many-body, center, axial
// gravity, box collision) over the given nodes and starts with full
// energy. The measurer supplies box sizes for collision and bounds
// clamping; its results are cached for this simulation's lifetime only.
func New(nodes []*SimNode, links []SimLink, width, height float64, m Measurer, opts Options) *Simulation {
	s := &Simulation{
		nodes:    nodes,
		opts:     opts,
		width:    width,
		height:   height,
		sizes:    make(map[string]Size, len(nodes)),
		measurer: m,
		alpha:    1,
		running:  true,
	}
	s.forces = []Force{
		&LinkForce{Links: links, Distance: opts.LinkDistance, Strength: opts.LinkStrength},
		&ManyBodyForce{Strength: opts.Charge},
		&CenterForce{Center: r2.Vec{X: width / 2, Y: height / 2}, Strength: opts.CenterStrength},
		&AxisForce{Target: width / 2, Strength: opts.XStrength, Horizontal: true},
		&AxisForce{Target: height / 2, Strength: opts.YStrength},
		&BoxCollideForce{Measurer: m, Padding: opts.Margin},
	}
	for _, f := range s.forces {
		f.Init(nodes)
	}
	return s
}

// Nodes returns the simulation's node slice.
func (s *Simulation) Nodes() []*SimNode { return s.nodes }

// Alpha returns the current energy level.
func (s *Simulation) Alpha() float64 { return s.alpha }

// Running reports whether the simulation is still ticking.
func (s *Simulation) Running() bool { return s.running }

// OnTick registers a callback invoked after every completed tick, once
// positions are integrated and clamped.
func (s *Simulation) OnTick(fn func()) { s.onTick = fn }

// SetAlphaTarget sets the sustained energy floor. A positive target
// wakes an idle simulation; resetting it to zero lets energy decay to
// rest again.
func (s *Simulation) SetAlphaTarget(t float64) {
	s.alphaTarget = t
	if t > 0 && !s.running {
		s.running = true
	}
}

// AlphaTarget returns the sustained energy floor.
func (s *Simulation) AlphaTarget() float64 { return s.alphaTarget }

// Reheat injects full energy, restarting a settled layout.
func (s *Simulation) Reheat() {
	s.alpha = 1
	s.running = true
}

// Tick advances the simulation one step and reports whether it is still
// running. Fixed nodes are pinned back to FX/FY after the force pass;
// everything else integrates velocity with friction and is clamped into
// the container bounds.
func (s *Simulation) Tick() bool {
	if !s.running {
		return false
	}
	defer metrics.Timer(metrics.SimTick)()

	s.alpha += (s.alphaTarget - s.alpha) * s.opts.AlphaDecay

	for _, f := range s.forces {
		f.Apply(s.alpha)
	}

	for _, n := range s.nodes {
		if n.FX != nil {
			n.X = *n.FX
			n.VX = 0
		} else {
			n.VX *= 1 - s.opts.VelocityDecay
			n.X += n.VX
		}
		if n.FY != nil {
			n.Y = *n.FY
			n.VY = 0
		} else {
			n.VY *= 1 - s.opts.VelocityDecay
			n.Y += n.VY
		}
		s.clamp(n)
	}

	if s.onTick != nil {
		s.onTick()
	}

	if s.alpha < alphaMin {
		s.running = false
	}
	return true
}

// clamp keeps a node's box inside the container minus the bounds
// padding. Without a measurement the node is clamped as a point.
func (s *Simulation) clamp(n *SimNode) {
	halfW, halfH := 0.0, 0.0
	if sz, ok := s.size(n.ID); ok {
		halfW, halfH = sz.Width/2, sz.Height/2
	}
	n.X = clampRange(n.X, s.opts.BoundsPadding+halfW, s.width-s.opts.BoundsPadding-halfW)
	n.Y = clampRange(n.Y, s.opts.BoundsPadding+halfH, s.height-s.opts.BoundsPadding-halfH)
}

func (s *Simulation) size(id string) (Size, bool) {
	if sz, ok := s.sizes[id]; ok {
		return sz, true
	}
	if s.measurer == nil {
		return Size{}, false
	}
	sz, ok := s.measurer.Measure(id)
	if !ok {
		return Size{}, false
	}
	s.sizes[id] = sz
	return sz, true
}

func clampRange(v, lo, hi float64) float64 {
	if lo > hi {
		// Box larger than the container; settle for the midpoint.
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
