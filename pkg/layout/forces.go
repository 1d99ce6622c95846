package layout

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Force is one contribution to the per-tick integration. Init captures
// the node slice for the simulation's lifetime; Apply adds velocity (or
// position, for the centering force) adjustments scaled by the current
// energy.
type Force interface {
	Init(nodes []*SimNode)
	Apply(alpha float64)
}

// jiggleEpsilon replaces a zero coordinate delta so coincident nodes
// separate in a deterministic direction instead of dividing by zero.
const jiggleEpsilon = 1e-6

func jiggle(v float64) float64 {
	if v == 0 {
		return jiggleEpsilon
	}
	return v
}

// LinkForce pulls each linked pair toward Distance with spring strength
// Strength. Every edge acts independently; both endpoints move half the
// correction unless one of them is held fixed.
type LinkForce struct {
	Links    []SimLink
	Distance float64
	Strength float64
}

// Init implements Force. Links are supplied directly, so there is
// nothing to capture.
func (f *LinkForce) Init([]*SimNode) {}

// Apply implements Force.
func (f *LinkForce) Apply(alpha float64) {
	for _, l := range f.Links {
		s, t := l.Source, l.Target
		dx := jiggle(t.X + t.VX - s.X - s.VX)
		dy := jiggle(t.Y + t.VY - s.Y - s.VY)
		dist := math.Hypot(dx, dy)
		k := (dist - f.Distance) / dist * alpha * f.Strength
		t.VX -= dx * k / 2
		t.VY -= dy * k / 2
		s.VX += dx * k / 2
		s.VY += dy * k / 2
	}
}

// ManyBodyForce applies pairwise charge between every unordered node
// pair, inversely related to squared distance. Negative strength repels.
// O(n²) per tick, fine at mind map scale (tens of nodes).
type ManyBodyForce struct {
	Strength float64

	nodes []*SimNode
}

// Init implements Force.
func (f *ManyBodyForce) Init(nodes []*SimNode) { f.nodes = nodes }

// Apply implements Force.
func (f *ManyBodyForce) Apply(alpha float64) {
	for i := 0; i < len(f.nodes); i++ {
		for j := i + 1; j < len(f.nodes); j++ {
			a, b := f.nodes[i], f.nodes[j]
			dx := jiggle(b.X - a.X)
			dy := jiggle(b.Y - a.Y)
			d2 := dx*dx + dy*dy
			w := f.Strength * alpha / d2
			a.VX += dx * w
			a.VY += dy * w
			b.VX -= dx * w
			b.VY -= dy * w
		}
	}
}

// CenterForce translates the whole node set so its centroid moves toward
// the container center, scaled by Strength. It adjusts positions
// directly; fixed nodes are restored from FX/FY during integration.
type CenterForce struct {
	Center   r2.Vec
	Strength float64

	nodes []*SimNode
}

// Init implements Force.
func (f *CenterForce) Init(nodes []*SimNode) { f.nodes = nodes }

// Apply implements Force.
func (f *CenterForce) Apply(float64) {
	if len(f.nodes) == 0 {
		return
	}
	var centroid r2.Vec
	for _, n := range f.nodes {
		centroid = r2.Add(centroid, r2.Vec{X: n.X, Y: n.Y})
	}
	centroid = r2.Scale(1/float64(len(f.nodes)), centroid)
	shift := r2.Scale(f.Strength, r2.Sub(f.Center, centroid))
	for _, n := range f.nodes {
		n.X += shift.X
		n.Y += shift.Y
	}
}

// AxisForce pulls every node toward a fixed coordinate on one axis,
// preventing slow drift along the container's long axis. Horizontal
// pulls X toward Target; otherwise Y.
type AxisForce struct {
	Target     float64
	Strength   float64
	Horizontal bool

	nodes []*SimNode
}

// Init implements Force.
func (f *AxisForce) Init(nodes []*SimNode) { f.nodes = nodes }

// Apply implements Force.
func (f *AxisForce) Apply(alpha float64) {
	for _, n := range f.nodes {
		if f.Horizontal {
			n.VX += (f.Target - n.X) * f.Strength * alpha
		} else {
			n.VY += (f.Target - n.Y) * f.Strength * alpha
		}
	}
}
