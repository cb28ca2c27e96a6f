package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Varun5711/taskflow/internal/auth"
	"github.com/Varun5711/taskflow/internal/session"
)

const (
	itemDetails = iota
	itemLogout
)

type DashboardModel struct {
	session     *session.Manager
	cursor      int
	items       []string
	showDetails bool
	now         func() time.Time
}

func NewDashboardModel(sess *session.Manager) (*DashboardModel, error) {
	if sess == nil {
		return nil, ErrNoSession
	}
	return &DashboardModel{
		session: sess,
		items:   []string{"Session details", "Log out"},
		now:     time.Now,
	}, nil
}

func (m *DashboardModel) Init() tea.Cmd {
	return nil
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter":
			switch m.cursor {
			case itemDetails:
				m.showDetails = !m.showDetails
			case itemLogout:
				m.showDetails = false
				m.cursor = 0
				m.session.Logout(context.Background())
			}
		}
	}
	return m, nil
}

func (m *DashboardModel) details() string {
	state := m.session.State()
	if state.User == nil {
		return ""
	}

	rows := []string{
		LabelStyle.Render("User ID") + ValueStyle.Render(fmt.Sprintf("%d", state.User.ID)),
		LabelStyle.Render("Email") + ValueStyle.Render(state.User.Email),
	}
	if claims, err := auth.DecodeUnverified(state.Token); err == nil {
		left := claims.Expiry().Sub(m.now()).Round(time.Second)
		rows = append(rows, LabelStyle.Render("Token expires")+
			ValueStyle.Render(fmt.Sprintf("%s (in %s)", claims.Expiry().Local().Format(time.Kitchen), left)))
	}
	return BoxStyle.Width(60).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *DashboardModel) View() string {
	var b strings.Builder

	name := "there"
	if user := m.session.User(); user != nil {
		name = user.Name
	}

	title := TitleStyle.Render("TASKFLOW") + " " + SubtitleStyle.Render("Dashboard")
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).MarginTop(2).Render(title))
	b.WriteString("\n")
	b.WriteString(centered(SuccessStyle.Render("Welcome, " + name + "!")))
	b.WriteString("\n\n")

	var menuItems []string
	for i, item := range m.items {
		cursor := "  "
		style := ItemStyle
		if i == m.cursor {
			cursor = "> "
			style = SelectedItemStyle
		}
		menuItems = append(menuItems, style.Render(cursor+item))
	}
	b.WriteString(centered(BoxStyle.Width(60).Render(lipgloss.JoinVertical(lipgloss.Left, menuItems...))))
	b.WriteString("\n")

	if m.showDetails {
		b.WriteString(centered(m.details()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centered(InfoStyle.Render("↑/↓ navigate  •  enter select  •  q quit")))

	return lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		Render(b.String())
}
