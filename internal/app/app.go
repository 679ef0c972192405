// Package app assembles the client and runs the Bubble Tea program.
// It owns the routing decisions that follow session state: login until
// authenticated, a one-time profile form, then home.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/api"
	"github.com/abhisek/lingua/internal/auth"
	"github.com/abhisek/lingua/internal/config"
	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/screens/home"
	"github.com/abhisek/lingua/internal/screens/login"
	"github.com/abhisek/lingua/internal/screens/profilesetup"
	"github.com/abhisek/lingua/internal/state"
	"github.com/abhisek/lingua/internal/store"
	"github.com/abhisek/lingua/internal/ui/layout"
)

// authStatusMsg carries a validator status change into the UI loop.
type authStatusMsg struct {
	status auth.Status
}

// userDataLoadedMsg fires once a valid session's user data is ready.
type userDataLoadedMsg struct{}

// Model is the root Bubble Tea model.
type Model struct {
	app    *state.App
	cfg    config.Config
	router *router.Router
	status auth.Status
	width  int
	height int
}

// newModel creates the root model starting on the login screen; the
// validator moves it forward from there.
func newModel(app *state.App, cfg config.Config) Model {
	return Model{
		app:    app,
		cfg:    cfg,
		router: router.New(login.New(app)),
		status: app.Session.Status(),
	}
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		m.app.Session.Validate(context.Background())
		return nil
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case authStatusMsg:
		return m.routeStatus(msg.status)

	case userDataLoadedMsg:
		m.app.ReloadProfile()
		return m, nil

	case profilesetup.DoneMsg:
		return m, m.router.Replace(home.New(m.app, m.cfg))

	case home.LogoutMsg:
		return m, func() tea.Msg {
			m.app.Session.Logout()
			return nil
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// routeStatus maps a session state onto the screen stack.
func (m Model) routeStatus(st auth.Status) (tea.Model, tea.Cmd) {
	prev := m.status
	m.status = st

	switch st.State {
	case auth.StateAuthenticated:
		if prev.State == auth.StateAuthenticated {
			return m, nil
		}
		if !m.app.Profile().Complete() {
			return m, m.router.Replace(profilesetup.New(m.app))
		}
		return m, m.router.Replace(home.New(m.app, m.cfg))

	default:
		// Every pre-auth state renders on the login screen.
		if _, ok := m.router.Active().(*login.LoginScreen); !ok {
			cmd := m.router.Replace(login.New(m.app))
			return m, tea.Batch(cmd, forwardStatus(st))
		}
		return m, m.router.Update(login.StatusMsg{Status: st})
	}
}

func forwardStatus(st auth.Status) tea.Cmd {
	return func() tea.Msg { return login.StatusMsg{Status: st} }
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	info := layout.HeaderInfo{Offline: m.status.Offline}
	if m.status.State == auth.StateAuthenticated {
		info.LanguagePair = m.cfg.NativeLanguage + " → " + m.cfg.TargetLanguage
	}
	header := layout.RenderHeader(title, info, m.width)

	var footerHints []layout.KeyHint
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Options configures Run.
type Options struct {
	Config  config.Config
	DBPath  string
	Version string
}

// Run assembles the client and starts the Bubble Tea program.
func Run(opts Options) error {
	if err := store.EnsureDir(opts.DBPath); err != nil {
		return fmt.Errorf("prepare data dir: %w", err)
	}
	st, err := store.Open(opts.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	var client api.Client = api.NewHTTPClient(api.HTTPConfig{
		BaseURL: opts.Config.ServerURL,
		Timeout: opts.Config.RequestTimeout,
		Token: func() string {
			token, _ := st.AuthToken()
			return token
		},
	})
	client = api.WithRetry(client, api.DefaultRetryConfig())

	app, err := state.New(state.Options{
		Store:   st,
		Client:  client,
		Version: opts.Version,
		Auth:    auth.Config{Timeout: opts.Config.ValidateTimeout},
	})
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}

	p := tea.NewProgram(newModel(app, opts.Config))

	app.SetListeners(
		func(st auth.Status) { p.Send(authStatusMsg{status: st}) },
		func() { p.Send(userDataLoadedMsg{}) },
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
