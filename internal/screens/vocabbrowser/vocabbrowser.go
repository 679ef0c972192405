// Package vocabbrowser lists the current vocabulary set: categories on
// one level, words within a category on the next. Opening a category or
// a word reports the interaction to the backend through the mutator;
// the rendered state always comes from the shared snapshot, so a failed
// report simply leaves the word unmarked.
package vocabbrowser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/progress"
	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/screens/worddetail"
	"github.com/abhisek/lingua/internal/state"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
	"github.com/abhisek/lingua/internal/vocab"
)

// markFailedMsg reports a progress update that did not go through.
type markFailedMsg struct {
	err error
}

// Screen is the two-level vocabulary browser.
type Screen struct {
	app *state.App

	category string // empty while browsing categories
	cursor   int
	notice   string
}

var _ screen.Screen = (*Screen)(nil)

// New creates a browser over the app's current vocabulary set.
func New(app *state.App) *Screen {
	return &Screen{app: app}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) set() *vocab.Set {
	return s.app.VocabularySet()
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case markFailedMsg:
		s.notice = describeMarkFailure(msg.err)
		return s, nil

	case tea.KeyMsg:
		return s.updateKeys(msg)
	}
	return s, nil
}

func (s *Screen) updateKeys(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	set := s.set()
	if set == nil {
		return s, nil
	}

	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < s.listLen(set)-1 {
			s.cursor++
		}
	case "left", "h":
		if s.category != "" {
			s.leaveCategory(set)
		}
	case "enter", "right", "l":
		return s.open(set)
	}
	return s, nil
}

func (s *Screen) listLen(set *vocab.Set) int {
	if s.category == "" {
		return len(set.Categories)
	}
	if cat := set.FindCategory(s.category); cat != nil {
		return len(cat.Words)
	}
	return 0
}

func (s *Screen) leaveCategory(set *vocab.Set) {
	for i := range set.Categories {
		if set.Categories[i].Name == s.category {
			s.cursor = i
			break
		}
	}
	s.category = ""
	s.notice = ""
}

func (s *Screen) open(set *vocab.Set) (screen.Screen, tea.Cmd) {
	s.notice = ""

	if s.category == "" {
		if s.cursor >= len(set.Categories) {
			return s, nil
		}
		cat := set.Categories[s.cursor]
		s.category = cat.Name
		s.cursor = 0

		if cat.IsClicked() {
			return s, nil
		}
		return s, s.markCategory(cat.Name)
	}

	cat := set.FindCategory(s.category)
	if cat == nil || s.cursor >= len(cat.Words) {
		return s, nil
	}
	word := cat.Words[s.cursor]

	cmds := []tea.Cmd{
		func() tea.Msg {
			return router.PushScreenMsg{Screen: worddetail.New(s.app, s.category, word)}
		},
	}
	if !word.IsClicked() {
		cmds = append(cmds, s.markWord(s.category, word.NativeText))
	}
	return s, tea.Batch(cmds...)
}

func (s *Screen) markCategory(name string) tea.Cmd {
	return func() tea.Msg {
		if err := s.app.Mutator.MarkCategoryClicked(context.Background(), name); err != nil {
			return markFailedMsg{err: err}
		}
		return nil
	}
}

func (s *Screen) markWord(category, nativeText string) tea.Cmd {
	return func() tea.Msg {
		if err := s.app.Mutator.MarkClicked(context.Background(), category, nativeText); err != nil {
			return markFailedMsg{err: err}
		}
		return nil
	}
}

func describeMarkFailure(err error) string {
	if errors.Is(err, progress.ErrNoSession) {
		return "No active session for this set; progress is not being saved."
	}
	return "Could not save your progress just now."
}

func (s *Screen) View(width, height int) string {
	set := s.set()
	if set == nil {
		return theme.Subtitle.Width(width).Render("No vocabulary set loaded.")
	}

	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render("Vocabulary: " + set.Place))
	b.WriteString("\n\n")

	var rows []string
	if s.category == "" {
		for i, cat := range set.Categories {
			rows = append(rows, s.categoryRow(cat, i == s.cursor))
		}
	} else if cat := set.FindCategory(s.category); cat != nil {
		b.WriteString(theme.Subtitle.Width(width).Render(s.category))
		b.WriteString("\n\n")
		for i, word := range cat.Words {
			rows = append(rows, s.wordRow(word, i == s.cursor))
		}
	}

	list := strings.Join(rows, "\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(list))

	if s.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
			Render(theme.Hint.Render(s.notice)))
	}

	return b.String()
}

func (s *Screen) categoryRow(cat vocab.Category, selected bool) string {
	marker := "  "
	if cat.IsClicked() {
		marker = "· "
	}
	line := fmt.Sprintf("%s%s  (%d words)", marker, cat.Name, len(cat.Words))
	if selected {
		return theme.Selected.Render("▸ " + line)
	}
	return theme.Unselected.Render("  " + line)
}

func (s *Screen) wordRow(word vocab.Item, selected bool) string {
	line := word.NativeText + "  —  " + word.TargetText
	if word.Transliteration != "" {
		line += "  (" + word.Transliteration + ")"
	}

	style := theme.WordFresh
	if word.IsClicked() {
		style = theme.WordClicked
	}
	if selected {
		return theme.Selected.Render("▸ ") + style.Render(line)
	}
	return "  " + style.Render(line)
}

func (s *Screen) Title() string {
	if s.category != "" {
		return "Words"
	}
	return "Categories"
}

// KeyHints implements screen.KeyHintProvider.
func (s *Screen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
	}
	if s.category != "" {
		hints = append(hints, layout.KeyHint{Key: "←", Description: "Categories"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "Esc", Description: "Back"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)
	return hints
}
