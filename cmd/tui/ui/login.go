package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Varun5711/taskflow/internal/session"
)

var ErrNoSession = errors.New("ui: session is required")

const requestTimeout = 15 * time.Second

type LoginModel struct {
	session *session.Manager
	fields  inputs
	loading bool
	err     error
}

func NewLoginModel(sess *session.Manager) (*LoginModel, error) {
	if sess == nil {
		return nil, ErrNoSession
	}
	return &LoginModel{
		session: sess,
		fields:  newInputs(false, true),
	}, nil
}

func (m *LoginModel) Init() tea.Cmd {
	return nil
}

func (m *LoginModel) reset() {
	m.fields = newInputs(false, true)
	m.loading = false
	m.err = nil
}

func loginCmd(sess *session.Manager, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return authDoneMsg{from: LoginView, err: sess.Login(ctx, email, password)}
	}
}

func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		if msg.String() == "enter" {
			email := strings.TrimSpace(m.fields.values[0])
			password := m.fields.values[1]
			if email == "" || password == "" {
				m.err = errors.New("Email and password are required")
				return m, nil
			}

			m.loading = true
			m.err = nil
			return m, loginCmd(m.session, email, password)
		}

		m.fields.handleKey(msg)
	}
	return m, nil
}

func (m *LoginModel) View() string {
	var b strings.Builder

	b.WriteString(header("LOGIN", "Welcome back! Please sign in to continue."))
	b.WriteString(m.fields.render("Email:", 0))
	b.WriteString("\n\n")
	b.WriteString(m.fields.render("Password:", 1))
	b.WriteString("\n\n")
	b.WriteString(status(m.loading, "Logging in...", m.err))

	b.WriteString("\n")
	b.WriteString(centered(InfoStyle.Render("tab switch  •  enter login  •  ctrl+l clear  •  ctrl+s signup  •  esc quit")))

	return panel(b.String())
}
