package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/valvepath/pkg/network"
	"github.com/matzehuels/valvepath/pkg/pipeline"
	"github.com/matzehuels/valvepath/pkg/route"
	"github.com/matzehuels/valvepath/pkg/score"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// rankModel - interactive ranking browser
// =============================================================================

// rankModel is the bubbletea model behind `top --interactive`.
type rankModel struct {
	ranked []pipeline.Ranked
	net    *network.Network
	budget int

	cursor   int
	offset   int
	height   int
	expanded bool
}

func newRankModel(ranked []pipeline.Ranked, n *network.Network, budget int) rankModel {
	return rankModel{ranked: ranked, net: n, budget: budget, height: 15}
}

func (m rankModel) Init() tea.Cmd {
	return nil
}

func (m rankModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "home", "g":
			m.move(-len(m.ranked))
		case "end", "G":
			m.move(len(m.ranked))
		case "enter", " ":
			m.expanded = !m.expanded
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-12, 5)
		m.move(0)
	}
	return m, nil
}

// move shifts the cursor by delta, clamped to the list, and scrolls the
// window so the cursor stays visible.
func (m *rankModel) move(delta int) {
	if len(m.ranked) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.ranked)-1)
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m rankModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Candidate walks"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	if len(m.ranked) == 0 {
		b.WriteString(listDimStyle.Render("  no candidates"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.offset+m.height, len(m.ranked))
	for i := m.offset; i < end; i++ {
		r := m.ranked[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%3d. %s → %s  %6d", cursor, i+1, r.From, r.To, r.Score)
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.ranked))))
	b.WriteString("\n")

	if m.expanded {
		b.WriteString("\n")
		b.WriteString(m.details(m.ranked[m.cursor]))
	}
	return b.String()
}

// details replays the selected walk to show its openings.
func (m rankModel) details(r pipeline.Ranked) string {
	var b strings.Builder
	b.WriteString(listDimStyle.Render("  " + strings.Join(r.Path, " → ")))
	b.WriteString("\n")

	if m.net == nil {
		return b.String()
	}
	trace := score.TraceWalk(route.Path(m.net.Resolve(r.Path)), m.budget)
	for _, o := range trace.Openings {
		fmt.Fprintf(&b, "  %s minute %-3d %s\n",
			StyleHighlight.Render(fmt.Sprintf("%-4s", o.Valve.ID)),
			m.budget-o.Remaining,
			StyleNumber.Render(fmt.Sprintf("+%d", o.Released)))
	}
	if len(trace.Openings) == 0 {
		b.WriteString(listDimStyle.Render("  nothing opens within the budget"))
		b.WriteString("\n")
	}
	return b.String()
}
