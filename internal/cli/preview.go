package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/brooklinpub/brooklin/pkg/curve"
	"github.com/brooklinpub/brooklin/pkg/placement"
)

// Terminal cells are mapped onto CSS pixels at this scale so that the
// mobile breakpoint and size presets behave as they do in a browser.
const (
	cellWidth  = 8.0
	cellHeight = 16.0

	previewChrome   = 4 // title, help, status and spacing lines
	previewMaxCount = 60
)

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		count int
		path  string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview hotspot placement interactively in the terminal",
		Long: `Draw the hotspot curve in the terminal and place hotspots along it.

The terminal is the viewport: resize the window to see the layout adapt.
Keys: +/- change the hotspot count, t toggles the placement table, q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.loadCurve(path, "")
			if err != nil {
				return err
			}
			m := newPreviewModel(cmd.Context(), p, count, c.Config.Placement.Options)
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 5, "initial number of hotspots")
	cmd.Flags().StringVar(&path, "path", "", "SVG path data for the curve (default from config)")

	return cmd
}

// =============================================================================
// previewModel - bubbletea model around a placement.Board
// =============================================================================

type previewModel struct {
	ctx       context.Context
	board     *placement.Board
	path      *curve.Polyline
	count     int
	cols      int
	rows      int
	mounted   bool
	showTable bool
	changes   int
}

func newPreviewModel(ctx context.Context, path *curve.Polyline, count int, opts placement.Options) previewModel {
	return previewModel{ctx: ctx, board: placement.NewBoard(opts), path: path, count: max(count, 1)}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "+", "=", "up", "k":
			if m.count < previewMaxCount {
				m.count++
				m.trigger(m.board.SetCount(m.ctx, m.count))
			}
		case "-", "_", "down", "j":
			if m.count > 1 {
				m.count--
				m.trigger(m.board.SetCount(m.ctx, m.count))
			}
		case "t":
			m.showTable = !m.showTable
		}
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		vp := m.viewport()
		if !m.mounted {
			m.mounted = true
			fitted := placement.Fitted(m.path, m.board.Options().Padding)
			m.trigger(m.board.Mount(m.ctx, fitted, m.count, vp))
		} else {
			m.trigger(m.board.Resize(m.ctx, vp))
		}
	}
	return m, nil
}

func (m *previewModel) trigger(changed bool) {
	if changed {
		m.changes++
	}
}

// viewport converts the canvas area into pixels.
func (m previewModel) viewport() placement.Viewport {
	return placement.Viewport{
		Width:  float64(m.cols) * cellWidth,
		Height: float64(max(m.rows-previewChrome, 0)) * cellHeight,
	}
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Hotspot preview"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("+/- count  t table  q quit"))
	b.WriteString("\n")

	layout, ok := m.board.Layout()
	if !ok {
		b.WriteString(StyleWarning.Render("Window too small to place hotspots"))
		return b.String()
	}

	if m.showTable {
		b.WriteString(renderTable([]string{"#", "X", "Y", "Size"}, placementRows(layout, nil)))
	} else {
		b.WriteString(m.canvas(layout))
	}
	b.WriteString("\n")
	b.WriteString(m.status(layout))
	return b.String()
}

func (m previewModel) status(l placement.Layout) string {
	s := fmt.Sprintf("%d hotspots · size %.1f · %s · %gx%g px",
		len(l.Placements), l.Size, l.Device, l.Viewport.Width, l.Viewport.Height)
	if m.count != len(l.Placements) {
		s += fmt.Sprintf(" · showing previous layout (wanted %d)", m.count)
	}
	if l.Collision {
		return StyleError.Render(s + " · overlapping")
	}
	return StyleDim.Render(s)
}

// canvas draws the curve and the hotspots onto a character grid.
func (m previewModel) canvas(l placement.Layout) string {
	w := m.cols
	h := int(l.Viewport.Height / cellHeight)
	if w <= 0 || h <= 0 {
		return ""
	}
	grid := make([][]rune, h)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", w))
	}
	put := func(px, py float64, r rune) (int, int, bool) {
		x, y := int(px/cellWidth), int(py/cellHeight)
		if x < 0 || y < 0 || x >= w || y >= h {
			return 0, 0, false
		}
		grid[y][x] = r
		return x, y, true
	}

	if c := m.board.Curve(); c != nil {
		step := cellWidth / 2
		for t := 0.0; t <= c.Length(); t += step {
			p := c.PointAt(t)
			put(p.X, p.Y, '·')
		}
	}

	colliding := make(map[[2]int]bool)
	gap := l.Clearance
	for i, p := range l.Placements {
		r := p.Size / 2
		for py := p.Y - r; py <= p.Y+r; py += cellHeight / 2 {
			for px := p.X - r; px <= p.X+r; px += cellWidth / 2 {
				if math.Hypot(px-p.X, py-p.Y) <= r {
					put(px, py, '░')
				}
			}
		}
		x, y, ok := put(p.X, p.Y, indexRune(p.Index))
		if !ok {
			continue
		}
		for _, q := range l.Placements[i+1:] {
			if math.Hypot(p.X-q.X, p.Y-q.Y) < (p.Size+q.Size)/2+gap {
				colliding[[2]int{x, y}] = true
			}
		}
	}

	var b strings.Builder
	for y, row := range grid {
		for x, r := range row {
			switch {
			case colliding[[2]int{x, y}]:
				b.WriteString(StyleError.Render(string(r)))
			case r == '░':
				b.WriteString(StyleNumber.Render(string(r)))
			case r == '·':
				b.WriteString(StyleDim.Render(string(r)))
			case r != ' ':
				b.WriteString(StyleTitle.Render(string(r)))
			default:
				b.WriteRune(r)
			}
		}
		if y < len(grid)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// indexRune labels hotspot i with 1-9, then a-z, then '*'.
func indexRune(i int) rune {
	switch {
	case i >= 1 && i <= 9:
		return rune('0' + i)
	case i >= 10 && i < 36:
		return rune('a' + i - 10)
	default:
		return '*'
	}
}
