// Package export renders static snapshots of a mind map. The simulation
// runs headlessly until it settles, then the final positions are drawn to
// SVG or PNG.
package export

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font/basicfont"

	"github.com/vanderheijden86/mindweave/pkg/layout"
	"github.com/vanderheijden86/mindweave/pkg/model"
)

// maxSettleTicks caps the headless simulation so a pathological tuning
// cannot hang the exporter. The default alpha decay settles in ~300 ticks.
const maxSettleTicks = 1000

// SnapshotOptions controls snapshot export behaviour.
type SnapshotOptions struct {
	Path   string         // Output path; format inferred from extension when Format empty
	Format string         // "svg" or "png" (case-insensitive). If empty, inferred from Path.
	Title  string         // Optional title rendered in the corner
	Width  int            // Canvas width in pixels (default 1200)
	Height int            // Canvas height in pixels (default 800)
	Layout layout.Options // Simulation tuning
}

// SaveSnapshot lays out the tree headlessly and writes a static image.
func SaveSnapshot(root *model.Node, opts SnapshotOptions) error {
	if root == nil {
		return fmt.Errorf("no map to export")
	}

	format := strings.ToLower(strings.TrimPrefix(opts.Format, "."))
	if format == "" {
		switch strings.ToLower(filepath.Ext(opts.Path)) {
		case ".svg":
			format = "svg"
		case ".png":
			format = "png"
		default:
			format = "svg" // safe default
			if opts.Path != "" && filepath.Ext(opts.Path) == "" {
				opts.Path = opts.Path + ".svg"
			}
		}
	}
	if format != "svg" && format != "png" {
		return fmt.Errorf("unsupported format %q (want svg or png)", format)
	}
	if opts.Path == "" {
		return fmt.Errorf("output path is required")
	}
	if opts.Width <= 0 {
		opts.Width = 1200
	}
	if opts.Height <= 0 {
		opts.Height = 800
	}

	if dir := filepath.Dir(opts.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create parent dir: %w", err)
		}
	}

	snap := settle(root, opts)

	switch format {
	case "svg":
		f, err := os.Create(opts.Path)
		if err != nil {
			return err
		}
		defer f.Close()
		return renderSVG(f, snap)
	case "png":
		return renderPNG(opts.Path, snap)
	default:
		return fmt.Errorf("unhandled format %q", format)
	}
}

// --- headless layout ---------------------------------------------------

type snapshot struct {
	Title  string
	Width  int
	Height int
	Nodes  []*layout.SimNode
	Links  []layout.SimLink
	Sizes  map[string]layout.Size
}

// boxSize estimates the rendered footprint of a node label in pixels.
// Matches the on-screen box proportions closely enough for collision
// purposes.
func boxSize(text string, depth int) layout.Size {
	const (
		charW = 8.0
		padX  = 20.0
		boxH  = 34.0
	)
	w := float64(runewidth.StringWidth(text))*charW + padX
	if depth == 0 {
		w += padX // root box gets wider padding
	}
	if w < 60 {
		w = 60
	}
	return layout.Size{Width: w, Height: boxH}
}

func settle(root *model.Node, opts SnapshotOptions) snapshot {
	model.EnsureIDs(root)
	nodes, links := layout.Flatten(root)

	sizes := make(map[string]layout.Size, len(nodes))
	for _, n := range nodes {
		sizes[n.ID] = boxSize(n.Text, n.Depth)
	}
	measurer := layout.MeasurerFunc(func(id string) (layout.Size, bool) {
		s, ok := sizes[id]
		return s, ok
	})

	// Deterministic radial seeding; no interactive positions to inherit.
	cx := float64(opts.Width) / 2
	cy := float64(opts.Height) / 2
	for i, n := range nodes {
		angle := 2 * math.Pi * float64(i) / float64(len(nodes))
		r := 20 + 30*float64(n.Depth)
		n.Seed(cx+r*math.Cos(angle), cy+r*math.Sin(angle))
		if n.Pinned {
			n.Fix(n.X, n.Y)
		}
	}

	sim := layout.New(nodes, links, float64(opts.Width), float64(opts.Height), measurer, opts.Layout)
	for i := 0; i < maxSettleTicks && sim.Running(); i++ {
		sim.Tick()
	}

	return snapshot{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Nodes:  nodes,
		Links:  links,
		Sizes:  sizes,
	}
}

// --- rendering ---------------------------------------------------------

var (
	colorBackdrop = color.RGBA{0xf9, 0xfa, 0xfb, 0xff}
	colorEdge     = color.RGBA{0x9a, 0xa5, 0xb1, 0xff}
	colorStroke   = color.RGBA{0x22, 0x22, 0x22, 0xff}
	colorText     = color.RGBA{0x11, 0x11, 0x11, 0xff}
	colorSubtle   = color.RGBA{0x66, 0x66, 0x66, 0xff}
	colorPinned   = color.RGBA{0xb4, 0x5b, 0x5b, 0xff}

	depthFills = []color.RGBA{
		{0xbb, 0xd6, 0xf2, 0xff}, // root
		{0xc8, 0xe6, 0xc9, 0xff},
		{0xff, 0xf3, 0xe0, 0xff},
		{0xe1, 0xd5, 0xf0, 0xff},
		{0xcf, 0xd8, 0xdc, 0xff}, // depth >= 4
	}
)

func depthFill(depth int) color.RGBA {
	if depth < 0 {
		depth = 0
	}
	if depth >= len(depthFills) {
		depth = len(depthFills) - 1
	}
	return depthFills[depth]
}

func renderSVG(w io.Writer, snap snapshot) error {
	canvas := svg.New(w)
	canvas.Start(snap.Width, snap.Height)
	canvas.Rect(0, 0, snap.Width, snap.Height, fmt.Sprintf("fill:%s", css(colorBackdrop)))

	for _, l := range snap.Links {
		from, to := l.Source, l.Target
		canvas.Line(int(from.X), int(from.Y), int(to.X), int(to.Y),
			fmt.Sprintf("stroke:%s;stroke-width:1.5", css(colorEdge)))
	}

	for _, n := range snap.Nodes {
		sz := snap.Sizes[n.ID]
		x := int(n.X - sz.Width/2)
		y := int(n.Y - sz.Height/2)
		stroke := colorStroke
		if n.Pinned {
			stroke = colorPinned
		}
		canvas.Roundrect(x, y, int(sz.Width), int(sz.Height), 6, 6,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1.2", css(depthFill(n.Depth)), css(stroke)))
		label := n.Text
		if n.HasToggle && n.Collapsed {
			label += " [+]"
		}
		canvas.Text(int(n.X), int(n.Y)+4, label,
			fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace;text-anchor:middle", css(colorText)))
	}

	if snap.Title != "" {
		canvas.Text(16, 24, snap.Title,
			fmt.Sprintf("fill:%s;font-size:14px;font-family:monospace;font-weight:bold", css(colorSubtle)))
	}

	canvas.End()
	return nil
}

func renderPNG(path string, snap snapshot) error {
	dc := gg.NewContext(snap.Width, snap.Height)
	dc.SetColor(colorBackdrop)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(colorEdge)
	dc.SetLineWidth(1.5)
	for _, l := range snap.Links {
		from, to := l.Source, l.Target
		dc.DrawLine(from.X, from.Y, to.X, to.Y)
		dc.Stroke()
	}

	for _, n := range snap.Nodes {
		sz := snap.Sizes[n.ID]
		x := n.X - sz.Width/2
		y := n.Y - sz.Height/2

		dc.SetColor(depthFill(n.Depth))
		dc.DrawRoundedRectangle(x, y, sz.Width, sz.Height, 6)
		dc.Fill()
		if n.Pinned {
			dc.SetColor(colorPinned)
		} else {
			dc.SetColor(colorStroke)
		}
		dc.SetLineWidth(1.2)
		dc.DrawRoundedRectangle(x, y, sz.Width, sz.Height, 6)
		dc.Stroke()

		label := n.Text
		if n.HasToggle && n.Collapsed {
			label += " [+]"
		}
		dc.SetColor(colorText)
		dc.DrawStringAnchored(label, n.X, n.Y, 0.5, 0.35)
	}

	if snap.Title != "" {
		dc.SetColor(colorSubtle)
		dc.DrawStringAnchored(snap.Title, 16, 20, 0, 0.5)
	}

	return dc.SavePNG(path)
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
