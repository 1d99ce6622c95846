package layout

import (
	"testing"
)

func simNodes() ([]*SimNode, []SimLink) {
	a := &SimNode{ID: "a", X: 400, Y: 300}
	b := &SimNode{ID: "b", X: 420, Y: 300}
	c := &SimNode{ID: "c", X: 400, Y: 320}
	links := []SimLink{
		{Source: a, Target: b},
		{Source: a, Target: c},
	}
	return []*SimNode{a, b, c}, links
}

func unitMeasurer() Measurer {
	return MeasurerFunc(func(string) (Size, bool) {
		return Size{Width: 60, Height: 20}, true
	})
}

func TestSimulationSettles(t *testing.T) {
	nodes, links := simNodes()
	sim := New(nodes, links, 800, 600, unitMeasurer(), DefaultOptions())

	if !sim.Running() {
		t.Fatal("fresh simulation should be running")
	}
	ticks := 0
	for sim.Running() {
		sim.Tick()
		ticks++
		if ticks > 2000 {
			t.Fatal("simulation never settled")
		}
	}
	if sim.Tick() {
		t.Error("Tick on a settled simulation should report idle")
	}
}

func TestAlphaDecays(t *testing.T) {
	nodes, links := simNodes()
	sim := New(nodes, links, 800, 600, unitMeasurer(), DefaultOptions())

	before := sim.Alpha()
	sim.Tick()
	if sim.Alpha() >= before {
		t.Errorf("alpha did not decay: %f -> %f", before, sim.Alpha())
	}
}

func TestFixedNodeDoesNotMove(t *testing.T) {
	nodes, links := simNodes()
	nodes[1].Fix(500, 200)
	sim := New(nodes, links, 800, 600, unitMeasurer(), DefaultOptions())

	for i := 0; i < 50; i++ {
		sim.Tick()
	}
	if nodes[1].X != 500 || nodes[1].Y != 200 {
		t.Errorf("fixed node moved to (%f, %f)", nodes[1].X, nodes[1].Y)
	}
	if nodes[1].VX != 0 || nodes[1].VY != 0 {
		t.Errorf("fixed node kept velocity (%f, %f)", nodes[1].VX, nodes[1].VY)
	}
}

func TestNodesStayInBounds(t *testing.T) {
	nodes, links := simNodes()
	// Start everything outside the container.
	for _, n := range nodes {
		n.X, n.Y = -1000, 5000
	}
	opts := DefaultOptions()
	sim := New(nodes, links, 800, 600, unitMeasurer(), opts)

	for i := 0; i < 100 && sim.Running(); i++ {
		sim.Tick()
	}
	for _, n := range nodes {
		if n.X < opts.BoundsPadding+30 || n.X > 800-opts.BoundsPadding-30 {
			t.Errorf("node %s escaped horizontally: %f", n.ID, n.X)
		}
		if n.Y < opts.BoundsPadding+10 || n.Y > 600-opts.BoundsPadding-10 {
			t.Errorf("node %s escaped vertically: %f", n.ID, n.Y)
		}
	}
}

func TestAlphaTargetKeepsSimulationAlive(t *testing.T) {
	nodes, links := simNodes()
	sim := New(nodes, links, 800, 600, unitMeasurer(), DefaultOptions())
	sim.SetAlphaTarget(0.3)

	for i := 0; i < 1000; i++ {
		sim.Tick()
	}
	if !sim.Running() {
		t.Fatal("simulation went idle despite a positive alpha target")
	}
	if sim.Alpha() < 0.25 {
		t.Errorf("alpha fell well below target: %f", sim.Alpha())
	}

	sim.SetAlphaTarget(0)
	ticks := 0
	for sim.Running() {
		sim.Tick()
		ticks++
		if ticks > 2000 {
			t.Fatal("simulation never settled after target reset")
		}
	}
}

func TestSetAlphaTargetWakesIdleSimulation(t *testing.T) {
	nodes, links := simNodes()
	sim := New(nodes, links, 800, 600, unitMeasurer(), DefaultOptions())
	for sim.Running() {
		sim.Tick()
	}

	sim.SetAlphaTarget(0.3)
	if !sim.Running() {
		t.Fatal("positive target should wake an idle simulation")
	}
}

func TestReheatRestartsSettledLayout(t *testing.T) {
	nodes, links := simNodes()
	sim := New(nodes, links, 800, 600, unitMeasurer(), DefaultOptions())
	for sim.Running() {
		sim.Tick()
	}

	sim.Reheat()
	if !sim.Running() {
		t.Fatal("Reheat did not restart the simulation")
	}
	if sim.Alpha() != 1 {
		t.Errorf("Reheat alpha = %f, want 1", sim.Alpha())
	}
}

func TestOnTickFiresEveryTick(t *testing.T) {
	nodes, links := simNodes()
	sim := New(nodes, links, 800, 600, unitMeasurer(), DefaultOptions())

	count := 0
	sim.OnTick(func() { count++ })
	for i := 0; i < 10; i++ {
		sim.Tick()
	}
	if count != 10 {
		t.Errorf("onTick fired %d times, want 10", count)
	}
}

func TestMissingMeasurementClampsAsPoint(t *testing.T) {
	nodes, links := simNodes()
	nodes[0].X = -50
	m := MeasurerFunc(func(string) (Size, bool) { return Size{}, false })
	sim := New(nodes, links, 800, 600, m, DefaultOptions())
	sim.Tick()

	if nodes[0].X < DefaultOptions().BoundsPadding {
		t.Errorf("point clamp failed: %f", nodes[0].X)
	}
}
