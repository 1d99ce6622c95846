// Package tui hosts the layout engine on a terminal canvas using
// bubbletea. The terminal is the rendering host: node boxes are one-row
// styled labels, links are box-drawing segments, and the mouse drives the
// drag/pin/toggle interactions.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/mindweave/pkg/config"
	"github.com/vanderheijden86/mindweave/pkg/debug"
	"github.com/vanderheijden86/mindweave/pkg/layout"
	"github.com/vanderheijden86/mindweave/pkg/loader"
	"github.com/vanderheijden86/mindweave/pkg/metrics"
	"github.com/vanderheijden86/mindweave/pkg/model"
	"github.com/vanderheijden86/mindweave/pkg/render"
	"github.com/vanderheijden86/mindweave/pkg/watcher"
)

// footerRows is the screen space reserved below the canvas.
const footerRows = 2

// doubleClickWindow is the maximum gap between two presses that still
// counts as a double click.
const doubleClickWindow = 400 * time.Millisecond

// TerminalOptions returns layout tuning scaled to character cells rather
// than pixels. Cells are roughly twice as tall as wide, so vertical
// gravity is stronger to keep the map from stretching sideways only.
func TerminalOptions() layout.Options {
	opts := layout.DefaultOptions()
	opts.Margin = 2
	opts.LinkDistance = 16
	opts.Charge = -60
	opts.XStrength = 0.03
	opts.YStrength = 0.06
	opts.BoundsPadding = 1
	opts.Jitter = 6
	return opts
}

// frameTickMsg drives one animation frame.
type frameTickMsg time.Time

// FileChangedMsg is sent when the watched map document changes on disk.
type FileChangedMsg struct{}

// WatchErrMsg is sent when the watcher reports an error.
type WatchErrMsg struct{ Err error }

func frameTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return frameTickMsg(t)
	})
}

// WatchFileCmd returns a command that waits for the next file change.
func WatchFileCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return FileChangedMsg{}
	}
}

// terminalHost implements render.Host on a character grid. It must be
// pointer-stable across bubbletea's model copies, so the Model holds it
// by pointer.
type terminalHost struct {
	width, height int
	elements      map[string]*boxElement
	links         []render.Segment
}

func newTerminalHost() *terminalHost {
	return &terminalHost{elements: make(map[string]*boxElement)}
}

func (h *terminalHost) CreateElement(id string) render.Element {
	el := &boxElement{id: id}
	h.elements[id] = el
	return el
}

func (h *terminalHost) RemoveElement(id string) {
	delete(h.elements, id)
}

func (h *terminalHost) Bounds() (float64, float64) {
	return float64(h.width), float64(h.height - footerRows)
}

func (h *terminalHost) SetLinks(segments []render.Segment) {
	h.links = segments
}

// hitTest returns the element under a canvas cell and the column offset
// into its box.
func (h *terminalHost) hitTest(col, row int) (*boxElement, int) {
	for _, el := range h.elements {
		if off, ok := el.hit(col, row); ok {
			return el, off
		}
	}
	return nil, 0
}

// Model is the top-level bubbletea model.
type Model struct {
	path    string
	host    *terminalHost
	engine  *render.Engine
	watcher *watcher.Watcher
	theme   Theme
	keys    KeyMap
	help    help.Model

	frameInterval time.Duration
	ready         bool
	status        string
	statusUntil   time.Time

	lastClickID string
	lastClickAt time.Time
}

// New builds the TUI around an already loaded tree. A nil watcher
// disables watch mode; ui carries the user's theme, help, and frame
// rate preferences.
func New(path string, root *model.Node, opts layout.Options, w *watcher.Watcher, ui config.UIConfig) *Model {
	frameRate := ui.FrameRate
	if frameRate <= 0 {
		frameRate = 30
	}
	r := lipgloss.DefaultRenderer()
	switch strings.ToLower(ui.Theme) {
	case "light":
		r.SetHasDarkBackground(false)
	case "dark":
		r.SetHasDarkBackground(true)
	}
	host := newTerminalHost()
	m := &Model{
		path:          path,
		host:          host,
		engine:        render.NewEngine(host, opts),
		watcher:       w,
		theme:         DefaultTheme(r),
		keys:          DefaultKeyMap(),
		help:          help.New(),
		frameInterval: time.Second / time.Duration(frameRate),
	}
	m.help.ShowAll = ui.ShowHelp
	// First Render happens on the initial WindowSizeMsg; until then the
	// canvas has no extent.
	m.engine.Render(root)
	return m
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{frameTickCmd(m.frameInterval)}
	if m.watcher != nil {
		cmds = append(cmds, WatchFileCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.host.width = msg.Width
		m.host.height = msg.Height
		m.help.Width = msg.Width
		m.ready = msg.Width > 0 && msg.Height > footerRows
		if m.ready {
			m.engine.Render(m.engine.Root())
		}
		return m, nil

	case frameTickMsg:
		m.engine.Tick()
		now := time.Time(msg)
		for _, el := range m.host.elements {
			el.sweep(now)
		}
		return m, frameTickCmd(m.frameInterval)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case FileChangedMsg:
		m.reload()
		return m, WatchFileCmd(m.watcher)

	case WatchErrMsg:
		m.setStatus(fmt.Sprintf("watch: %v", msg.Err))
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.watcher != nil {
			m.watcher.Stop()
		}
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Reload):
		m.reload()
	case key.Matches(msg, m.keys.UnpinAll):
		m.engine.UnpinAll()
		m.setStatus("unpinned all nodes")
	case key.Matches(msg, m.keys.Reheat):
		m.engine.Render(m.engine.Root())
		m.setStatus("layout reheated")
	case key.Matches(msg, m.keys.Yank):
		m.yank()
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		m.press(msg.X, msg.Y)
	case tea.MouseActionMotion:
		if m.engine.Dragging() {
			m.engine.PointerMove(float64(msg.X), float64(msg.Y))
		}
	case tea.MouseActionRelease:
		if m.engine.Dragging() {
			m.engine.PointerUp(float64(msg.X), float64(msg.Y))
		}
	}
	return nil
}

func (m *Model) press(x, y int) {
	now := time.Now()
	el, offset := m.host.hitTest(x, y)

	if el == nil {
		// Background double click releases every pin.
		if m.lastClickID == "" && now.Sub(m.lastClickAt) < doubleClickWindow {
			m.engine.UnpinAll()
			m.setStatus("unpinned all nodes")
			m.lastClickAt = time.Time{}
			return
		}
		m.lastClickID = ""
		m.lastClickAt = now
		return
	}

	if el.toggleHit(offset) {
		debug.Log("toggle %s", el.id)
		m.engine.Toggle(el.id)
		m.lastClickID = ""
		m.lastClickAt = time.Time{}
		return
	}

	if m.lastClickID == el.id && now.Sub(m.lastClickAt) < doubleClickWindow {
		m.engine.UnpinNode(el.id)
		m.setStatus("unpinned " + el.text)
		m.lastClickID = ""
		m.lastClickAt = time.Time{}
		return
	}

	m.lastClickID = el.id
	m.lastClickAt = now
	m.engine.PointerDown(el.id)
}

func (m *Model) reload() {
	root, err := loader.Load(m.path)
	if err != nil {
		m.setStatus(fmt.Sprintf("reload failed: %v", err))
		return
	}
	model.MergeState(m.engine.Root(), root)
	m.engine.Render(root)
	m.setStatus("reloaded " + filepath.Base(m.path))
}

func (m *Model) yank() {
	if m.lastClickID == "" {
		m.setStatus("click a node first")
		return
	}
	n := m.engine.Node(m.lastClickID)
	if n == nil {
		return
	}
	if err := clipboard.WriteAll(n.Text); err != nil {
		m.setStatus(fmt.Sprintf("clipboard: %v", err))
		return
	}
	m.setStatus("yanked " + n.Text)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusUntil = time.Now().Add(4 * time.Second)
}

func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	defer metrics.Timer(metrics.FrameRender)()

	cw, ch := m.host.width, m.host.height-footerRows
	c := newCanvas(cw, ch)

	fadingByID := make(map[string]bool, len(m.host.elements))
	for id, el := range m.host.elements {
		fadingByID[id] = el.fading()
	}

	for _, seg := range m.host.links {
		style := &m.theme.LinkLine
		if fadingByID[seg.FromID] || fadingByID[seg.ToID] {
			style = &m.theme.Fading
		}
		c.drawSegment(seg, style)
	}

	for id, el := range m.host.elements {
		if !el.placed {
			continue
		}
		w, _, _ := el.Size()
		col := int(el.x - w/2)
		row := int(el.y)

		var style lipgloss.Style
		switch {
		case el.fading():
			style = m.theme.Fading
		case m.engine.Dragging() && m.engine.Node(id) != nil && id == m.lastClickID:
			style = m.theme.DragBox
		default:
			style = m.theme.DepthStyle(el.state.Depth)
		}
		c.drawLabel(col, row, el.label(), &style)
	}

	return c.render() + "\n" + m.statusLine() + "\n" + m.help.View(m.keys)
}

func (m *Model) statusLine() string {
	left := filepath.Base(m.path)
	if m.watcher != nil {
		if m.watcher.IsPolling() {
			left += "  (watching, polling)"
		} else {
			left += "  (watching)"
		}
	}
	state := "idle"
	if m.engine.Running() {
		state = "settling"
	}
	line := fmt.Sprintf("%s  %d nodes  %s", left, len(m.engine.Nodes()), state)
	if m.status != "" && time.Now().Before(m.statusUntil) {
		line += "  │ " + m.status
	}
	return m.theme.StatusBar.Render(line)
}
