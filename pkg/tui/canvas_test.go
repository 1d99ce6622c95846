package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/mindweave/pkg/render"
)

func TestCanvasRenderDimensions(t *testing.T) {
	c := newCanvas(10, 3)
	out := c.render()
	rows := strings.Split(out, "\n")
	if len(rows) != 3 {
		t.Fatalf("%d rows, want 3", len(rows))
	}
	for i, r := range rows {
		if lipgloss.Width(r) != 10 {
			t.Errorf("row %d width = %d, want 10", i, lipgloss.Width(r))
		}
	}
}

func TestCanvasSetIgnoresOutOfBounds(t *testing.T) {
	c := newCanvas(4, 2)
	c.set(-1, 0, 'x', nil)
	c.set(0, -1, 'x', nil)
	c.set(4, 0, 'x', nil)
	c.set(0, 2, 'x', nil)
	if strings.ContainsRune(c.render(), 'x') {
		t.Error("out-of-bounds write landed on the grid")
	}
}

func TestDrawLabelPlacesRunes(t *testing.T) {
	c := newCanvas(12, 2)
	c.drawLabel(2, 1, "ab−c", nil)
	rows := strings.Split(c.render(), "\n")
	if !strings.Contains(rows[1], "ab−c") {
		t.Errorf("label not drawn: %q", rows[1])
	}
	if strings.Contains(rows[0], "a") {
		t.Error("label leaked onto the wrong row")
	}
}

func TestDrawLabelWideRunesKeepRowWidth(t *testing.T) {
	style := TestTheme().LinkLine
	c := newCanvas(20, 1)
	label := " 日本語 "
	c.drawLabel(0, 0, label, &style)

	if got := lipgloss.Width(c.render()); got != 20 {
		t.Fatalf("row display width = %d, want 20", got)
	}
	// The label occupies exactly its measured width in cells, so hit
	// testing and drawing agree.
	w := runewidth.StringWidth(label)
	for i := 0; i < w; i++ {
		if c.styles[i] != &style {
			t.Errorf("cell %d not covered by the label", i)
		}
	}
	if c.styles[w] != nil {
		t.Errorf("cell %d written past the measured label width", w)
	}
}

func TestDrawLabelWideRuneClippedAtEdge(t *testing.T) {
	c := newCanvas(4, 1)
	c.drawLabel(3, 0, "日", nil)
	if got := lipgloss.Width(c.render()); got != 4 {
		t.Errorf("row display width = %d, want 4", got)
	}
}

func TestDrawSegmentConnectsEndpoints(t *testing.T) {
	c := newCanvas(20, 5)
	c.drawSegment(render.Segment{X1: 2, Y1: 2, X2: 15, Y2: 2}, nil)

	rows := strings.Split(c.render(), "\n")
	if got := strings.Count(rows[2], "─"); got < 13 {
		t.Errorf("horizontal segment drew %d cells", got)
	}
}

func TestDrawSegmentZeroLength(t *testing.T) {
	c := newCanvas(5, 5)
	c.drawSegment(render.Segment{X1: 2, Y1: 2, X2: 2, Y2: 2}, nil)
	if c.render() != newCanvas(5, 5).render() {
		t.Error("zero-length segment drew something")
	}
}

func TestLineRuneSlopes(t *testing.T) {
	cases := []struct {
		dx, dy float64
		want   rune
	}{
		{10, 0, '─'},
		{10, 1, '─'},
		{0, 10, '│'},
		{3, 10, '│'},
		{10, 5, '╲'},
		{-10, -5, '╲'},
		{10, -5, '╱'},
		{-10, 5, '╱'},
	}
	for _, tc := range cases {
		if got := lineRune(tc.dx, tc.dy); got != tc.want {
			t.Errorf("lineRune(%f, %f) = %c, want %c", tc.dx, tc.dy, got, tc.want)
		}
	}
}

func TestCanvasStyleRunsGroup(t *testing.T) {
	style := TestTheme().LinkLine
	c := newCanvas(6, 1)
	for i := 0; i < 3; i++ {
		c.set(i, 0, '─', &style)
	}
	out := c.render()
	if !strings.Contains(out, "───") {
		t.Errorf("styled run split apart: %q", out)
	}
}
