package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Varun5711/taskflow/internal/session"
)

type View int

const (
	LoadingView View = iota
	LoginView
	SignupView
	DashboardView
)

type sessionReadyMsg struct {
	err error
}

type Model struct {
	currentView View
	session     *session.Manager
	router      *Router
	login       *LoginModel
	signup      *SignupModel
	dashboard   *DashboardModel
	width       int
	height      int
	err         error
}

// NewModel builds the root TUI model. router must be the Navigator the
// session was created with.
func NewModel(sess *session.Manager, router *Router) (Model, error) {
	if sess == nil {
		return Model{}, ErrNoSession
	}
	if router == nil {
		return Model{}, fmt.Errorf("ui: router is required")
	}

	login, err := NewLoginModel(sess)
	if err != nil {
		return Model{}, err
	}
	signup, err := NewSignupModel(sess)
	if err != nil {
		return Model{}, err
	}
	dashboard, err := NewDashboardModel(sess)
	if err != nil {
		return Model{}, err
	}

	return Model{
		currentView: LoadingView,
		session:     sess,
		router:      router,
		login:       login,
		signup:      signup,
		dashboard:   dashboard,
	}, nil
}

func initSessionCmd(sess *session.Manager) tea.Cmd {
	return func() tea.Msg {
		return sessionReadyMsg{err: sess.Init(context.Background())}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(initSessionCmd(m.session), m.router.listen())
}

func viewFor(route session.Route) View {
	if route == session.RouteDashboard {
		return DashboardView
	}
	return LoginView
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case sessionReadyMsg:
		m.err = msg.err
		if m.session.IsAuthenticated() {
			m.currentView = DashboardView
		} else {
			m.currentView = LoginView
		}
		return m, nil

	case authDoneMsg:
		if msg.from == SignupView {
			m.signup.Update(msg)
		} else {
			m.login.Update(msg)
		}
		return m, nil

	case navigateMsg:
		m.currentView = viewFor(msg.route)
		m.login.reset()
		m.signup.reset()
		return m, m.router.listen()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "q":
			if m.currentView == DashboardView || m.currentView == LoadingView {
				return m, tea.Quit
			}

		case "ctrl+s":
			switch m.currentView {
			case LoginView:
				m.currentView = SignupView
				return m, nil
			case SignupView:
				m.currentView = LoginView
				return m, nil
			}
		}
	}

	switch m.currentView {
	case LoginView:
		_, cmd := m.login.Update(msg)
		return m, cmd

	case SignupView:
		_, cmd := m.signup.Update(msg)
		return m, cmd

	case DashboardView:
		_, cmd := m.dashboard.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	var statusBar string
	if user := m.session.User(); user != nil && m.currentView == DashboardView {
		userInfo := lipgloss.NewStyle().Foreground(Success).Render("● " + user.Name)
		emailInfo := lipgloss.NewStyle().Foreground(Muted).Render(" (" + user.Email + ")")

		statusBar = lipgloss.NewStyle().
			Width(80).
			Align(lipgloss.Left).
			Background(BgDark).
			Padding(0, 2).
			Render(userInfo + emailInfo)
	}

	var mainContent string
	switch m.currentView {
	case LoadingView:
		mainContent = centered(InfoStyle.Render("Restoring session..."))
	case LoginView:
		mainContent = m.login.View()
	case SignupView:
		mainContent = m.signup.View()
	case DashboardView:
		mainContent = m.dashboard.View()
	}

	if m.err != nil {
		mainContent += "\n" + centered(ErrorStyle.Render("Session storage: "+m.err.Error()))
	}

	if statusBar != "" {
		return lipgloss.JoinVertical(lipgloss.Left, statusBar, "\n", mainContent)
	}
	return mainContent
}
