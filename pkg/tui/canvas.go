package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/mindweave/pkg/render"
)

// padCell marks the trailing grid cell behind a double-width rune. It
// occupies a cell for hit testing but renders to nothing, so a row's
// display width always equals the canvas width.
const padCell = '\x00'

// canvas is a rune grid with one style slot per cell. Links are drawn
// first, boxes overwrite them, and rendering groups consecutive cells
// with the same style into single Render calls.
type canvas struct {
	width, height int
	runes         []rune
	styles        []*lipgloss.Style
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: width, height: height}
	c.runes = make([]rune, width*height)
	c.styles = make([]*lipgloss.Style, width*height)
	c.clear()
	return c
}

func (c *canvas) clear() {
	for i := range c.runes {
		c.runes[i] = ' '
		c.styles[i] = nil
	}
}

func (c *canvas) set(col, row int, r rune, style *lipgloss.Style) {
	if col < 0 || col >= c.width || row < 0 || row >= c.height {
		return
	}
	i := row*c.width + col
	c.runes[i] = r
	c.styles[i] = style
}

// drawSegment plots a link as a run of line characters chosen by local
// slope. Steps along the longer axis so the line has no gaps.
func (c *canvas) drawSegment(seg render.Segment, style *lipgloss.Style) {
	dx := seg.X2 - seg.X1
	dy := seg.Y2 - seg.Y1
	steps := int(math.Max(math.Abs(dx), math.Abs(dy)))
	if steps == 0 {
		return
	}

	ch := lineRune(dx, dy)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		col := int(math.Round(seg.X1 + dx*t))
		row := int(math.Round(seg.Y1 + dy*t))
		c.set(col, row, ch, style)
	}
}

// lineRune picks a box-drawing character for a segment's overall slope.
// Terminal cells are roughly twice as tall as wide, so the horizontal
// band is widened to compensate.
func lineRune(dx, dy float64) rune {
	ax, ay := math.Abs(dx), math.Abs(dy)
	switch {
	case ax >= 4*ay:
		return '─'
	case ay >= ax:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

// drawLabel writes a string starting at (col, row) with a single style.
// Cells advance by display width so drawing agrees with the
// runewidth-based measurement used for hit testing.
func (c *canvas) drawLabel(col, row int, label string, style *lipgloss.Style) {
	i := 0
	for _, r := range label {
		switch runewidth.RuneWidth(r) {
		case 0:
			// Zero-width runes have no cell of their own.
		case 2:
			if col+i < 0 || col+i+1 >= c.width {
				// Half the rune would fall off the canvas; leave the
				// clipped cells blank rather than shift the row.
				i += 2
				continue
			}
			c.set(col+i, row, r, style)
			c.set(col+i+1, row, padCell, style)
			i += 2
		default:
			c.set(col+i, row, r, style)
			i++
		}
	}
}

// render flattens the grid into styled terminal rows.
func (c *canvas) render() string {
	var b strings.Builder
	b.Grow(c.width * c.height)
	for row := 0; row < c.height; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		start := row * c.width
		i := start
		for i < start+c.width {
			style := c.styles[i]
			j := i
			for j < start+c.width && c.styles[j] == style {
				j++
			}
			cells := c.runes[i:j]
			out := make([]rune, 0, len(cells))
			for _, r := range cells {
				if r != padCell {
					out = append(out, r)
				}
			}
			run := string(out)
			if style == nil {
				b.WriteString(run)
			} else {
				b.WriteString(style.Render(run))
			}
			i = j
		}
	}
	return b.String()
}
