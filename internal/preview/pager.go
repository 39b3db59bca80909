// Package preview holds the interactive dry-run views: a pager for
// inspecting the digest segments exactly as a channel would receive
// them, and a toggle list for enabling sources.
package preview

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vjdev/jobsdigest/internal/digest"
)

var (
	pagerBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("39"))

	pagerTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(0, 1)

	pagerStatusStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("236"))

	pagerContStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

type pagerModel struct {
	segments []digest.Segment
	index    int
	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

func (m pagerModel) Init() tea.Cmd {
	return nil
}

func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Title (1) + border (2) + status bar (1).
		w, h := msg.Width-2, max(msg.Height-4, 5)
		if !m.ready {
			m.viewport = viewport.New(w, h)
			m.ready = true
		} else {
			m.viewport.Width = w
			m.viewport.Height = h
		}
		m.viewport.SetContent(m.currentText())
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", "n":
			if m.index < len(m.segments)-1 {
				m.index++
				m.viewport.SetContent(m.currentText())
				m.viewport.SetYOffset(0)
			}
			return m, nil
		case "left", "h", "p":
			if m.index > 0 {
				m.index--
				m.viewport.SetContent(m.currentText())
				m.viewport.SetYOffset(0)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m pagerModel) currentText() string {
	return m.segments[m.index].Text
}

func (m pagerModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	seg := m.segments[m.index]
	title := pagerTitleStyle.Render(fmt.Sprintf("Digest Preview — segment %d/%d (%d chars)",
		m.index+1, len(m.segments), len(seg.Text)))
	if seg.Continuation {
		title += pagerContStyle.Render("  continuation")
	}

	content := pagerBorderStyle.Width(m.width - 2).Render(m.viewport.View())
	status := pagerStatusStyle.Width(m.width).Render(" ←/→ segment  ↑/↓ scroll  q quit")

	return title + "\n" + content + "\n" + status
}

// RunDigestPager shows the packed segments one screen at a time.
func RunDigestPager(segments []digest.Segment) error {
	if len(segments) == 0 {
		return nil
	}
	m := pagerModel{segments: segments}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
