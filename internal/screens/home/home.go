// Package home is the signed-in hub: pick a place to generate
// vocabulary for, or jump into the browser and practice flows for the
// current set.
package home

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/api"
	"github.com/abhisek/lingua/internal/config"
	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/screens/practice"
	"github.com/abhisek/lingua/internal/screens/vocabbrowser"
	"github.com/abhisek/lingua/internal/state"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
	"github.com/abhisek/lingua/internal/vocab"
)

// vocabGeneratedMsg carries a freshly generated set.
type vocabGeneratedMsg struct {
	set *vocab.Set
}

// vocabFailedMsg carries a generation failure.
type vocabFailedMsg struct {
	err error
}

// LogoutMsg asks the root model to log out.
type LogoutMsg struct{}

// HomeScreen is the main signed-in screen.
type HomeScreen struct {
	app *state.App
	cfg config.Config

	placeInput   components.TextInput
	inputFocused bool
	menu         components.Menu
	generating   bool
	notice       string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(app *state.App, cfg config.Config) *HomeScreen {
	h := &HomeScreen{
		app:          app,
		cfg:          cfg,
		placeInput:   components.NewTextInput("a place: airport, café, market…", false, 64),
		inputFocused: true,
	}

	hasSet := app.VocabularySet() != nil
	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "GENERATE VOCABULARY", Action: h.generate},
		{Label: "BROWSE WORDS", Disabled: !hasSet, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: vocabbrowser.New(h.app)}
			}
		}},
		{Label: "PRACTICE", Disabled: !hasSet, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: practice.New(h.app)}
			}
		}},
		{Label: "LOG OUT", Action: func() tea.Cmd {
			return func() tea.Msg { return LogoutMsg{} }
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	})

	if place := currentPlace(app); place != "" {
		h.placeInput.Model.SetValue(place)
	}

	return h
}

func currentPlace(app *state.App) string {
	if set := app.VocabularySet(); set != nil {
		return set.Place
	}
	return ""
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.placeInput.Init()
}

// generate requests a vocabulary set for the entered place.
func (h *HomeScreen) generate() tea.Cmd {
	place := strings.TrimSpace(h.placeInput.Value())
	if place == "" {
		h.notice = "Enter a place first."
		return nil
	}
	if h.generating {
		return nil
	}
	h.generating = true
	h.notice = ""

	req := api.GenerateVocabularyRequest{
		Place:          place,
		NativeLanguage: h.cfg.NativeLanguage,
		TargetLanguage: h.cfg.TargetLanguage,
	}
	return func() tea.Msg {
		set, err := h.app.Client.GenerateVocabulary(context.Background(), req)
		if err != nil {
			return vocabFailedMsg{err: err}
		}
		return vocabGeneratedMsg{set: set}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case vocabGeneratedMsg:
		h.generating = false
		h.app.SetVocabulary(msg.set)
		h.enableSetItems()
		return h, func() tea.Msg {
			return router.PushScreenMsg{Screen: vocabbrowser.New(h.app)}
		}

	case vocabFailedMsg:
		h.generating = false
		h.notice = describeFailure(msg.err)
		return h, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			h.inputFocused = !h.inputFocused
			if h.inputFocused {
				return h, h.placeInput.Model.Focus()
			}
			h.placeInput.Model.Blur()
			return h, nil
		case "enter":
			if h.inputFocused {
				return h, h.generate()
			}
		}
	}

	if h.inputFocused {
		var cmd tea.Cmd
		h.placeInput, cmd = h.placeInput.Update(msg)
		return h, cmd
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// enableSetItems lifts the disabled flag once a set exists.
func (h *HomeScreen) enableSetItems() {
	for i := range h.menu.Items {
		switch h.menu.Items[i].Label {
		case "BROWSE WORDS", "PRACTICE":
			h.menu.Items[i].Disabled = false
		}
	}
}

func describeFailure(err error) string {
	var connErr *api.ConnectivityError
	var appErr *api.ApplicationError
	switch {
	case errors.As(err, &connErr):
		return "Could not reach the server. Try again in a moment."
	case errors.As(err, &appErr):
		return "The server declined: " + appErr.Message
	default:
		return "Something went wrong generating vocabulary."
	}
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	greeting := "Welcome back"
	if p := h.app.Profile(); p.Username != "" {
		greeting = "Welcome back, " + p.Username
	}
	b.WriteString(theme.Title.Width(width).Render(greeting))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(
		fmt.Sprintf("%s → %s", h.cfg.NativeLanguage, h.cfg.TargetLanguage)))
	b.WriteString("\n\n")

	label := theme.Body.Render("Where are you headed?")
	if h.inputFocused {
		label = theme.Selected.Render("Where are you headed?")
	}
	inputBlock := label + "\n" + h.placeInput.View()
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(inputBlock))
	b.WriteString("\n\n")

	if h.generating {
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
			Render(theme.Hint.Render("Generating vocabulary…")))
		b.WriteString("\n\n")
	} else if h.notice != "" {
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
			Render(theme.Hint.Render(h.notice)))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(h.menu.View()))

	return b.String()
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// KeyHints implements screen.KeyHintProvider.
func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch focus"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
