package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the adaptive color palette and pre-computed styles. Styles
// are created once at startup instead of per-frame.
type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary lipgloss.AdaptiveColor
	Subtext lipgloss.AdaptiveColor
	Link    lipgloss.AdaptiveColor
	Pinned  lipgloss.AdaptiveColor
	Border  lipgloss.AdaptiveColor

	// Depth tiers; nodes deeper than the last tier reuse it.
	Depths []lipgloss.AdaptiveColor

	// Styles
	Base      lipgloss.Style
	LinkLine  lipgloss.Style
	Fading    lipgloss.Style
	PinMark   lipgloss.Style
	Toggle    lipgloss.Style
	StatusBar lipgloss.Style
	NodeBox   []lipgloss.Style // indexed by clamped depth
	DragBox   lipgloss.Style
}

// DefaultTheme returns the standard adaptive theme.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary: lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"},
		Subtext: lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"},
		Link:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Pinned:  lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"},
		Border:  lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#6272A4"},

		Depths: []lipgloss.AdaptiveColor{
			{Light: "#0066CC", Dark: "#6699FF"}, // root
			{Light: "#007700", Dark: "#50FA7B"},
			{Light: "#B06800", Dark: "#FFB86C"},
			{Light: "#6B47D9", Dark: "#BD93F9"},
			{Light: "#555555", Dark: "#6272A4"}, // depth >= 4
		},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})
	t.LinkLine = r.NewStyle().Foreground(t.Link)
	t.Fading = r.NewStyle().Foreground(t.Link).Faint(true)
	t.PinMark = r.NewStyle().Foreground(t.Pinned).Bold(true)
	t.Toggle = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.StatusBar = r.NewStyle().Foreground(t.Subtext)

	// Reverse video stands in for a filled box; terminals have no
	// rectangles.
	t.NodeBox = make([]lipgloss.Style, len(t.Depths))
	for i, c := range t.Depths {
		s := r.NewStyle().Foreground(c).Reverse(true)
		if i == 0 {
			s = s.Bold(true)
		}
		t.NodeBox[i] = s
	}
	t.DragBox = r.NewStyle().Foreground(t.Primary).Reverse(true).Bold(true)

	return t
}

// DepthStyle returns the node style for a depth, clamping deep levels to
// the last tier.
func (t Theme) DepthStyle(depth int) lipgloss.Style {
	if depth < 0 {
		depth = 0
	}
	if depth >= len(t.NodeBox) {
		depth = len(t.NodeBox) - 1
	}
	return t.NodeBox[depth]
}

// TestTheme returns a theme suitable for use in tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
