package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Varun5711/taskflow/internal/session"
)

type navigateMsg struct {
	route session.Route
}

// Router is the session's Navigator inside the TUI. Routes requested by the
// session are delivered to the running program as messages.
type Router struct {
	routes chan session.Route
}

func NewRouter() *Router {
	return &Router{routes: make(chan session.Route, 8)}
}

func (r *Router) Navigate(route session.Route) {
	select {
	case r.routes <- route:
	default:
		// Drop the oldest pending route; only the latest matters.
		select {
		case <-r.routes:
		default:
		}
		r.routes <- route
	}
}

func (r *Router) listen() tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{route: <-r.routes}
	}
}

var _ session.Navigator = (*Router)(nil)
