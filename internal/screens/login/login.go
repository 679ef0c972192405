// Package login is the pre-authentication surface. It renders every
// session state that can occur before the home screen is reachable:
// validation in progress, token entry, the offline retry affordance,
// and the forced-update notice.
package login

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/auth"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/state"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
)

// StatusMsg delivers a session status change to the login screen. The
// root model forwards these from the validator's OnChange hook.
type StatusMsg struct {
	Status auth.Status
}

// LoginScreen collects a session token and reflects validation state.
type LoginScreen struct {
	app    *state.App
	status auth.Status
	input  components.TextInput
	notice string
}

var _ screen.Screen = (*LoginScreen)(nil)

// New creates the login screen seeded with the current session status.
func New(app *state.App) *LoginScreen {
	return &LoginScreen{
		app:    app,
		status: app.Session.Status(),
		input:  components.NewTextInput("paste session token", true, 128),
	}
}

func (l *LoginScreen) Init() tea.Cmd {
	return l.input.Init()
}

func (l *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case StatusMsg:
		l.status = msg.Status
		if msg.Status.State == auth.StateUnauthenticated {
			l.input.Reset()
		}
		return l, nil

	case tea.KeyMsg:
		switch l.status.State {
		case auth.StateOfflineRetry:
			return l.updateOffline(msg)
		case auth.StateValidating, auth.StateUnknown:
			// Nothing to do but wait; key input is ignored.
			return l, nil
		}

		if msg.String() == "enter" {
			return l.submit()
		}
	}

	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	return l, cmd
}

func (l *LoginScreen) submit() (screen.Screen, tea.Cmd) {
	token := strings.TrimSpace(l.input.Value())
	if token == "" {
		l.notice = "Token cannot be empty."
		return l, nil
	}
	l.notice = ""

	return l, func() tea.Msg {
		if l.app.Store != nil {
			if err := l.app.Store.SetAuthToken(token); err != nil {
				return StatusMsg{Status: auth.Status{State: auth.StateUnauthenticated}}
			}
		}
		l.app.Session.SetToken(context.Background(), token)
		return nil
	}
}

func (l *LoginScreen) updateOffline(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if l.status.UpdateRequired {
		// Only quitting makes sense until the client is updated.
		return l, nil
	}

	switch msg.String() {
	case "r":
		return l, func() tea.Msg {
			l.app.Session.Retry(context.Background())
			return nil
		}
	case "l":
		return l, func() tea.Msg {
			l.app.Session.Logout()
			return nil
		}
	}
	return l, nil
}

func (l *LoginScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("Lingua"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("learn a language, one place at a time"))
	b.WriteString("\n\n\n")

	switch {
	case l.status.UpdateRequired:
		b.WriteString(centered(width, theme.Incorrect.Render("This version of Lingua is too old.")))
		b.WriteString("\n")
		b.WriteString(centered(width, theme.Body.Render("Please update to keep your session.")))

	case l.status.State == auth.StateOfflineRetry:
		if l.status.Offline {
			b.WriteString(centered(width, theme.Offline.Render("⚠ Could not reach the server.")))
		} else {
			b.WriteString(centered(width, theme.Offline.Render("⚠ The server sent an unreadable response.")))
		}
		b.WriteString("\n\n")
		b.WriteString(centered(width, theme.Body.Render("Your session is kept. Press r to retry, l to log out.")))

	case l.status.State == auth.StateValidating, l.status.State == auth.StateUnknown:
		b.WriteString(centered(width, theme.Body.Render("Checking your session…")))

	default:
		b.WriteString(centered(width, theme.Body.Render("Enter your session token to sign in:")))
		b.WriteString("\n\n")
		b.WriteString(centered(width, l.input.View()))
		if l.notice != "" {
			b.WriteString("\n\n")
			b.WriteString(centered(width, theme.Hint.Render(l.notice)))
		}
	}

	return b.String()
}

func (l *LoginScreen) Title() string {
	return "Sign In"
}

// KeyHints implements screen.KeyHintProvider.
func (l *LoginScreen) KeyHints() []layout.KeyHint {
	if l.status.State == auth.StateOfflineRetry && !l.status.UpdateRequired {
		return []layout.KeyHint{
			{Key: "r", Description: "Retry"},
			{Key: "l", Description: "Log out"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Sign in"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func centered(width int, s string) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(s)
}
