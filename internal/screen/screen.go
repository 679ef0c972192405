package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingua/internal/ui/layout"
)

// Screen is one view in the router's stack: login, home, the word
// browser, and so on.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content. The frame (header, footer)
	// around it belongs to the app model, not the screen.
	View(width, height int) string

	// Title returns the screen name shown in the header.
	Title() string
}

// KeyHintProvider is an optional interface for screens that want their
// own footer key hints instead of the defaults.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
