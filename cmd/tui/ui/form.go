package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type authDoneMsg struct {
	from View
	err  error
}

// inputs is the editable text state shared by the login and signup forms.
type inputs struct {
	values  []string
	masked  []bool
	focused int
}

func newInputs(masked ...bool) inputs {
	return inputs{values: make([]string, len(masked)), masked: masked}
}

// handleKey applies an editing key and reports whether it consumed it.
func (in *inputs) handleKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "tab", "down":
		in.focused = (in.focused + 1) % len(in.values)
	case "shift+tab", "up":
		in.focused = (in.focused + len(in.values) - 1) % len(in.values)
	case "backspace":
		v := []rune(in.values[in.focused])
		if len(v) > 0 {
			in.values[in.focused] = string(v[:len(v)-1])
		}
	case "ctrl+l":
		for i := range in.values {
			in.values[i] = ""
		}
	default:
		switch msg.Type {
		case tea.KeyRunes, tea.KeySpace:
			in.values[in.focused] += string(msg.Runes)
		default:
			return false
		}
	}
	return true
}

func (in *inputs) render(label string, i int) string {
	style := InputStyle
	if in.focused == i {
		style = FocusedInputStyle
	}

	value := in.values[i]
	if in.masked[i] {
		value = strings.Repeat("•", len([]rune(value)))
	}

	field := lipgloss.JoinHorizontal(lipgloss.Left,
		LabelStyle.Width(15).Render(label),
		style.Width(50).Render(value))
	return centered(field)
}

func centered(s string) string {
	return lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(s)
}

func header(title, subtitle string) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).MarginTop(2).
		Render(TitleStyle.Render(title)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).MarginBottom(2).
		Render(InfoStyle.Render(subtitle)))
	b.WriteString("\n\n")
	return b.String()
}

func status(loading bool, busy string, err error) string {
	var b strings.Builder
	if loading {
		b.WriteString(centered(InfoStyle.Render(busy)))
		b.WriteString("\n")
	}
	if err != nil {
		b.WriteString(centered(ErrorStyle.Render("✗ " + err.Error())))
		b.WriteString("\n")
	}
	return b.String()
}

func panel(body string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(2, 4).
		Width(76).
		Render(body)
}
