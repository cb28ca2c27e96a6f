package ui

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Varun5711/taskflow/internal/session"
)

type SignupModel struct {
	session *session.Manager
	fields  inputs
	loading bool
	err     error
}

func NewSignupModel(sess *session.Manager) (*SignupModel, error) {
	if sess == nil {
		return nil, ErrNoSession
	}
	return &SignupModel{
		session: sess,
		fields:  newInputs(false, false, true),
	}, nil
}

func (m *SignupModel) Init() tea.Cmd {
	return nil
}

func (m *SignupModel) reset() {
	m.fields = newInputs(false, false, true)
	m.loading = false
	m.err = nil
}

func signupCmd(sess *session.Manager, name, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return authDoneMsg{from: SignupView, err: sess.Register(ctx, name, email, password)}
	}
}

func (m *SignupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			// Last field submits; earlier ones advance.
			if m.fields.focused < len(m.fields.values)-1 {
				m.fields.focused++
				return m, nil
			}

			name := strings.TrimSpace(m.fields.values[0])
			email := strings.TrimSpace(m.fields.values[1])
			password := m.fields.values[2]
			if name == "" || email == "" || password == "" {
				m.err = errors.New("Name, email and password are required")
				return m, nil
			}

			m.loading = true
			m.err = nil
			return m, signupCmd(m.session, name, email, password)
		}

		m.fields.handleKey(msg)
	}
	return m, nil
}

func (m *SignupModel) View() string {
	var b strings.Builder

	b.WriteString(header("SIGN UP", "Create an account to get started."))
	b.WriteString(m.fields.render("Name:", 0))
	b.WriteString("\n\n")
	b.WriteString(m.fields.render("Email:", 1))
	b.WriteString("\n\n")
	b.WriteString(m.fields.render("Password:", 2))
	b.WriteString("\n\n")
	b.WriteString(centered(InfoStyle.Render("6-100 characters with an uppercase letter, a lowercase letter and a number")))
	b.WriteString("\n\n")
	b.WriteString(status(m.loading, "Creating account...", m.err))

	b.WriteString("\n")
	b.WriteString(centered(InfoStyle.Render("tab switch  •  enter next/submit  •  ctrl+l clear  •  ctrl+s login  •  esc quit")))

	return panel(b.String())
}
