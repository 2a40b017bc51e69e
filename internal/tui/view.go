package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/stackview/pkg/hierarchy"
)

var (
	colorCyan = lipgloss.Color("36")
	colorBlue = lipgloss.Color("75")
	colorGray = lipgloss.Color("245")
	colorDim  = lipgloss.Color("240")
)

var (
	styleTitle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim      = lipgloss.NewStyle().Foreground(colorDim)
	styleHeading  = lipgloss.NewStyle().Bold(true)
	styleRule     = lipgloss.NewStyle().Foreground(colorDim)
	styleDir      = lipgloss.NewStyle().Foreground(colorBlue)
	styleFile     = lipgloss.NewStyle().Foreground(colorGray)
	styleCursor   = lipgloss.NewStyle().Reverse(true).Foreground(colorCyan)
	styleTrail    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleAnimated = lipgloss.NewStyle().Foreground(colorCyan)
)

const helpText = "j/k move  enter open  h back  q quit"

// placed is a panel item positioned on screen in whole columns.
type placed struct {
	item        hierarchy.Item[*Panel]
	left, right int
	lines       []string
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	if !m.target.Measured {
		b.WriteString(styleDim.Render(" measuring…"))
		return b.String()
	}
	for _, row := range m.rows() {
		b.WriteString(row)
		b.WriteString("\n")
	}
	b.WriteString(m.footer())
	return b.String()
}

func (m *Model) header() string {
	title := styleTitle.Render("stackview")
	path := fit(m.Path(), max(0, m.width-lipgloss.Width(title)-1))
	return title + " " + styleDim.Render(strings.TrimRight(path, " "))
}

func (m *Model) footer() string {
	help := styleDim.Render(helpText)
	if m.target.Phase == hierarchy.Animating {
		help += "  " + styleAnimated.Render(m.target.Phase.String())
	}
	return help
}

// rows composes the panel area line by line. Panels are cut at the
// container edges and wherever a neighbor has already drawn.
func (m *Model) rows() []string {
	cols := int(m.target.ContainerSize.X)
	height := int(m.target.ContainerSize.Y)
	sc := m.scene(m.opts.Now())

	items := make([]placed, 0, len(m.target.Items))
	for _, it := range m.target.Items {
		sp, ok := sc.panels[it.Child]
		if !ok {
			continue
		}
		x := sp.X - sc.offset
		p := placed{item: it, left: int(math.Round(x)), right: int(math.Round(x + sp.W))}
		if p.right <= 0 || p.left >= cols || p.right <= p.left {
			continue
		}
		p.lines = it.Child.lines(height)
		items = append(items, p)
	}

	out := make([]string, height)
	for row := range out {
		var b strings.Builder
		col := 0
		for _, p := range items {
			x0, x1 := max(p.left, col, 0), min(p.right, cols)
			if x1 <= x0 {
				continue
			}
			b.WriteString(strings.Repeat(" ", x0-col))
			b.WriteString(m.cell(p, row, x0-p.left, x1-x0, height))
			col = x1
		}
		b.WriteString(strings.Repeat(" ", max(0, cols-col)))
		out[row] = b.String()
	}
	return out
}

// cell renders columns [from, from+width) of one panel row.
func (m *Model) cell(p placed, row, from, width, height int) string {
	pw := p.right - p.left
	var text string
	if row == 1 {
		text = strings.Repeat("─", max(0, pw-1)) + "┤"
	} else {
		text = fit(p.lines[row], pw-1) + "│"
	}
	return m.style(p, row, height).Render(cutColumns(text, from, width))
}

func (m *Model) style(p placed, row, height int) lipgloss.Style {
	panel := p.item.Child
	var s lipgloss.Style
	switch i := panel.entryRow(row, height); {
	case row == 0:
		s = styleHeading
	case row == 1:
		s = styleRule
	case i < 0:
		s = styleDim
	case i == panel.Cursor && panel == m.active():
		s = styleCursor
	case i == panel.Cursor:
		s = styleTrail
	case panel.Entries[i].IsDir:
		s = styleDir
	default:
		s = styleFile
	}
	if p.item.Hidden {
		s = s.Faint(true)
	}
	return s
}

// fit truncates or pads s to exactly w columns.
func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.FillRight(runewidth.Truncate(s, w, "…"), w)
}

// cutColumns returns exactly width columns of s starting at column from.
// A wide rune split by either edge becomes spaces.
func cutColumns(s string, from, width int) string {
	var b strings.Builder
	col, w := 0, 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if col < from {
			col += rw
			if col > from {
				pad := min(col-from, width)
				b.WriteString(strings.Repeat(" ", pad))
				w += pad
			}
			continue
		}
		if w+rw > width {
			break
		}
		b.WriteRune(r)
		w += rw
		col += rw
	}
	if w < width {
		b.WriteString(strings.Repeat(" ", width-w))
	}
	return b.String()
}
