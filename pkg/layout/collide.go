package layout

// BoxCollideForce resolves overlaps between the measured rectangular
// extents of every unordered node pair. Sizes come from the Measurer and
// are cached per force instance, so a cache never outlives one
// simulation; a node whose box cannot be measured is skipped for the
// tick rather than guessed at.
type BoxCollideForce struct {
	Measurer Measurer
	// Padding is added to the required separation on both axes.
	Padding float64

	nodes []*SimNode
	sizes map[string]Size
}

// Init implements Force. It captures the live node slice and resets the
// size cache for the new simulation.
func (f *BoxCollideForce) Init(nodes []*SimNode) {
	f.nodes = nodes
	f.sizes = make(map[string]Size, len(nodes))
}

func (f *BoxCollideForce) size(id string) (Size, bool) {
	if s, ok := f.sizes[id]; ok {
		return s, true
	}
	if f.Measurer == nil {
		return Size{}, false
	}
	s, ok := f.Measurer.Measure(id)
	if !ok {
		return Size{}, false
	}
	f.sizes[id] = s
	return s, true
}

// Apply implements Force. For each overlapping pair the push happens
// along the axis with the smaller overlap (the cheaper separation),
// moving both nodes apart symmetrically by overlap*sign(delta)*alpha/2.
func (f *BoxCollideForce) Apply(alpha float64) {
	for i := 0; i < len(f.nodes); i++ {
		a := f.nodes[i]
		sa, ok := f.size(a.ID)
		if !ok {
			continue
		}
		for j := i + 1; j < len(f.nodes); j++ {
			b := f.nodes[j]
			sb, ok := f.size(b.ID)
			if !ok {
				continue
			}

			dx := jiggle(b.X - a.X)
			dy := jiggle(b.Y - a.Y)
			minX := (sa.Width+sb.Width)/2 + f.Padding
			minY := (sa.Height+sb.Height)/2 + f.Padding
			overlapX := minX - abs(dx)
			overlapY := minY - abs(dy)
			if overlapX <= 0 || overlapY <= 0 {
				continue
			}

			if overlapX < overlapY {
				push := overlapX * sign(dx) * alpha / 2
				a.X -= push
				b.X += push
			} else {
				push := overlapY * sign(dy) * alpha / 2
				a.Y -= push
				b.Y += push
			}
		}
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
