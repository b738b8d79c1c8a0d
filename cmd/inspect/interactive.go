package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mortencombat/stretchable"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nodeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#90EE90")).
			Align(lipgloss.Center, lipgloss.Center)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type inspectModel struct {
	demo  *demo
	err   error
	avail stretchable.Size[float32]
	input textinput.Model
	rows  []nodeRow
	sel   int
	state modelState
}

type nodeRow struct {
	node  *demoNode
	depth int
}

type modelState int

const (
	stateBrowse modelState = iota
	stateEditAvail
)

func newInspectModel(d *demo, w, h float32) *inspectModel {
	ti := textinput.New()
	ti.Placeholder = "800x600"
	ti.Prompt = "available: "
	ti.Width = 20

	m := &inspectModel{
		demo:  d,
		avail: stretchable.Size[float32]{Width: w, Height: h},
		input: ti,
	}
	m.flatten(d.root, 0)
	return m
}

func (m *inspectModel) flatten(n *demoNode, depth int) {
	m.rows = append(m.rows, nodeRow{node: n, depth: depth})
	for _, c := range n.children {
		m.flatten(c, depth+1)
	}
}

func (m *inspectModel) Init() tea.Cmd {
	return m.recompute
}

type computedMsg struct {
	err error
}

func (m *inspectModel) recompute() tea.Msg {
	return computedMsg{err: m.demo.compute(m.avail.Width, m.avail.Height)}
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state == stateBrowse {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateBrowse && m.sel > 0 {
				m.sel--
			}

		case "down", "j":
			if m.state == stateBrowse && m.sel < len(m.rows)-1 {
				m.sel++
			}

		case "a":
			if m.state == stateBrowse {
				m.state = stateEditAvail
				m.input.SetValue(fmt.Sprintf("%gx%g", m.avail.Width, m.avail.Height))
				m.input.Focus()
				return m, textinput.Blink
			}

		case "enter":
			if m.state == stateEditAvail {
				if w, h, ok := parseAvail(m.input.Value()); ok {
					m.avail = stretchable.Size[float32]{Width: w, Height: h}
					m.state = stateBrowse
					m.input.Blur()
					return m, m.recompute
				}
			}

		case "esc":
			if m.state == stateEditAvail {
				m.state = stateBrowse
				m.input.Blur()
			}
		}

	case computedMsg:
		m.err = msg.err
	}

	if m.state == stateEditAvail {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func parseAvail(s string) (w, h float32, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	wv, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 32)
	hv, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 32)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return float32(wv), float32(hv), true
}

func (m *inspectModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Layout Inspector"))
	b.WriteString(" ")
	b.WriteString(m.demo.name)
	b.WriteString(valueStyle.Render(fmt.Sprintf("  %gx%g", m.avail.Width, m.avail.Height)))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("a available • q quit"))
		return b.String()
	}

	tree := m.renderTree()
	detail := m.renderDetail()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tree, "  ", detail))
	b.WriteString("\n")

	if m.state == stateEditAvail {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter apply • esc cancel"))
	} else {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • a available • q quit"))
	}
	return b.String()
}

func (m *inspectModel) renderTree() string {
	var b strings.Builder
	for i, r := range m.rows {
		line := strings.Repeat("  ", r.depth) + r.node.name
		if i == m.sel {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + nodeStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m *inspectModel) renderDetail() string {
	n := m.rows[m.sel].node
	l, err := m.demo.host.GetLayout(m.demo.tree, n.handle)
	if err != nil {
		return panelStyle.Render(errorStyle.Render(err.Error()))
	}

	var b strings.Builder
	b.WriteString(nodeStyle.Render(n.name))
	b.WriteString("\n\n")
	writeField(&b, "location", fmt.Sprintf("(%g, %g)", l.Location.X, l.Location.Y))
	writeField(&b, "size", fmt.Sprintf("%g x %g", l.Size.Width, l.Size.Height))
	writeField(&b, "content", fmt.Sprintf("%g x %g", l.ContentSize.Width, l.ContentSize.Height))
	writeField(&b, "padding", formatRect(l.Padding))
	writeField(&b, "border", formatRect(l.Border))
	writeField(&b, "margin", formatRect(l.Margin))
	writeField(&b, "order", strconv.Itoa(int(l.Order)))
	b.WriteString("\n")
	b.WriteString(m.renderPreview(l))
	return panelStyle.Render(b.String())
}

func writeField(b *strings.Builder, name, value string) {
	fmt.Fprintf(b, "%-9s %s\n", name, valueStyle.Render(value))
}

func formatRect(r stretchable.Rect[float32]) string {
	return fmt.Sprintf("t%g r%g b%g l%g", r.Top, r.Right, r.Bottom, r.Left)
}

// renderPreview draws the selected box to scale, one cell per 16x16
// points, capped to a sane terminal footprint.
func (m *inspectModel) renderPreview(l stretchable.Layout) string {
	const scale = 16
	w := int(l.Size.Width / scale)
	h := int(l.Size.Height / scale)
	if w < 2 {
		w = 2
	}
	if w > 40 {
		w = 40
	}
	if h < 1 {
		h = 1
	}
	if h > 10 {
		h = 10
	}
	label := fmt.Sprintf("%gx%g", l.Size.Width, l.Size.Height)
	return previewStyle.Width(w).Height(h).Render(label)
}

func runInteractive(d *demo, w, h float32) error {
	p := tea.NewProgram(newInspectModel(d, w, h), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
