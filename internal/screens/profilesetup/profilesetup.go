// Package profilesetup collects the minimal profile the rest of the app
// is gated on. Shown once after authentication when no username is
// stored yet.
package profilesetup

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/state"
	"github.com/abhisek/lingua/internal/store"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
)

// DoneMsg signals that the profile was saved; the root model replaces
// this screen with home.
type DoneMsg struct{}

const (
	fieldUsername = iota
	fieldPhone
	fieldProfession
	fieldCount
)

// Screen is the profile entry form.
type Screen struct {
	app     *state.App
	inputs  [fieldCount]components.TextInput
	focused int
	notice  string
}

var _ screen.Screen = (*Screen)(nil)

// New creates the profile form pre-filled from the stored profile.
func New(app *state.App) *Screen {
	s := &Screen{app: app}
	s.inputs[fieldUsername] = components.NewTextInput("username (required)", false, 48)
	s.inputs[fieldPhone] = components.NewTextInput("phone", false, 24)
	s.inputs[fieldProfession] = components.NewTextInput("profession", false, 48)

	p := app.Profile()
	s.inputs[fieldUsername].Model.SetValue(p.Username)
	s.inputs[fieldPhone].Model.SetValue(p.Phone)
	s.inputs[fieldProfession].Model.SetValue(p.Profession)

	s.inputs[fieldPhone].Model.Blur()
	s.inputs[fieldProfession].Model.Blur()
	return s
}

func (s *Screen) Init() tea.Cmd {
	return s.inputs[fieldUsername].Init()
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab", "down":
			return s, s.focus((s.focused + 1) % fieldCount)
		case "shift+tab", "up":
			return s, s.focus((s.focused + fieldCount - 1) % fieldCount)
		case "enter":
			if s.focused < fieldCount-1 {
				return s, s.focus(s.focused + 1)
			}
			return s.save()
		}
	}

	var cmd tea.Cmd
	s.inputs[s.focused], cmd = s.inputs[s.focused].Update(msg)
	return s, cmd
}

func (s *Screen) focus(i int) tea.Cmd {
	s.inputs[s.focused].Model.Blur()
	s.focused = i
	return s.inputs[i].Model.Focus()
}

func (s *Screen) save() (screen.Screen, tea.Cmd) {
	p := store.Profile{
		Username:   strings.TrimSpace(s.inputs[fieldUsername].Value()),
		Phone:      strings.TrimSpace(s.inputs[fieldPhone].Value()),
		Profession: strings.TrimSpace(s.inputs[fieldProfession].Value()),
	}
	if !p.Complete() {
		s.notice = "A username is required."
		return s, nil
	}

	return s, func() tea.Msg {
		if s.app.Store != nil {
			if err := s.app.Store.SetProfile(p); err != nil {
				return nil
			}
		}
		s.app.ReloadProfile()
		return DoneMsg{}
	}
}

func (s *Screen) View(width, height int) string {
	labels := [fieldCount]string{"Username", "Phone", "Profession"}

	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render("Tell us about yourself"))
	b.WriteString("\n\n")

	for i := range s.inputs {
		label := theme.Body.Render(labels[i])
		if i == s.focused {
			label = theme.Selected.Render(labels[i])
		}
		row := label + "\n" + s.inputs[i].View() + "\n"
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(row))
		b.WriteString("\n")
	}

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(theme.Hint.Render(s.notice)))
	}

	return b.String()
}

func (s *Screen) Title() string {
	return "Profile"
}

// KeyHints implements screen.KeyHintProvider.
func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Save"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
