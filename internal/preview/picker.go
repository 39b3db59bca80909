package preview

import (
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	pickerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Padding(1, 0, 1, 2)

	pickerItemStyle = lipgloss.NewStyle().
			Padding(0, 0, 0, 4)

	pickerSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 0, 0, 2)

	pickerEnabledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42"))

	pickerDisabledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	pickerHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(1, 0, 0, 2)
)

type sourcePickerModel struct {
	names   []string
	enabled map[string]bool
	cursor  int
	save    bool
}

func (m sourcePickerModel) Init() tea.Cmd {
	return nil
}

func (m sourcePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.save = false
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.names)-1 {
				m.cursor++
			}
		case " ", "enter":
			name := m.names[m.cursor]
			m.enabled[name] = !m.enabled[name]
		case "s":
			m.save = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m sourcePickerModel) View() string {
	s := pickerTitleStyle.Render("Job Sources — toggle what feeds the digest")
	s += "\n"

	for i, name := range m.names {
		marker := pickerDisabledStyle.Render("[ ]")
		if m.enabled[name] {
			marker = pickerEnabledStyle.Render("[x]")
		}
		label := marker + " " + name
		if i == m.cursor {
			s += pickerSelectedStyle.Render("> "+label) + "\n"
		} else {
			s += pickerItemStyle.Render(label) + "\n"
		}
	}

	s += pickerHintStyle.Render("↑/↓/j/k navigate  space toggle  s save  q cancel")
	return s
}

// RunSourcePicker shows an interactive toggle list for job sources.
// It returns the edited map and whether the user chose to save.
func RunSourcePicker(sources map[string]bool) (map[string]bool, bool, error) {
	names := make([]string, 0, len(sources))
	enabled := make(map[string]bool, len(sources))
	for name, on := range sources {
		names = append(names, name)
		enabled[name] = on
	}
	sort.Strings(names)

	m := sourcePickerModel{names: names, enabled: enabled}
	result, err := tea.NewProgram(m).Run()
	if err != nil {
		return nil, false, err
	}
	final := result.(sourcePickerModel)
	return final.enabled, final.save, nil
}
