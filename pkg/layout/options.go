package layout

import "time"

// Options holds every layout tuning knob. Values are accepted as given:
// nonsensical settings (negative distances, zero decay) produce
// degenerate but non-crashing layouts, which is the caller's problem.
type Options struct {
	// Margin is the collision padding added around each measured box.
	Margin float64
	// LinkDistance is the target separation of linked nodes.
	LinkDistance float64
	// LinkStrength scales the spring force on each edge.
	LinkStrength float64
	// Charge is the many-body strength; negative repels.
	Charge float64
	// CenterStrength pulls the centroid toward the container center.
	CenterStrength float64
	// XStrength and YStrength pull each node toward the container's
	// vertical and horizontal center lines.
	XStrength float64
	YStrength float64
	// AlphaDecay is the geometric energy decay per tick.
	AlphaDecay float64
	// VelocityDecay is the friction applied to velocities each tick.
	VelocityDecay float64
	// BoundsPadding keeps boxes this far inside the container edges.
	BoundsPadding float64
	// Jitter bounds the random offset applied to freshly seeded nodes.
	Jitter float64
	// FadeDuration is the enter/exit transition length.
	FadeDuration time.Duration
}

// DefaultOptions returns the standard tuning.
func DefaultOptions() Options {
	return Options{
		Margin:         40,
		LinkDistance:   120,
		LinkStrength:   0.2,
		Charge:         -500,
		CenterStrength: 0.1,
		XStrength:      0.01,
		YStrength:      0.01,
		AlphaDecay:     0.02,
		VelocityDecay:  0.4,
		BoundsPadding:  10,
		Jitter:         40,
		FadeDuration:   500 * time.Millisecond,
	}
}

// Size is a measured box extent.
type Size struct {
	Width  float64
	Height float64
}

// Measurer supplies measured box sizes by node id. A false return means
// the box cannot be measured right now; callers skip that node for the
// current tick instead of failing.
type Measurer interface {
	Measure(id string) (Size, bool)
}

// MeasurerFunc adapts a function to the Measurer interface.
type MeasurerFunc func(id string) (Size, bool)

// Measure implements Measurer.
func (f MeasurerFunc) Measure(id string) (Size, bool) { return f(id) }
