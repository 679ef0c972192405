// Package practice runs a typed-answer session over the current
// vocabulary set. The backend quiz provides the question order when it
// is reachable; otherwise the session falls back to the local practice
// selection, which prioritizes words the user has already clicked.
package practice

import (
	"context"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/api"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/state"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
	"github.com/abhisek/lingua/internal/vocab"
)

// quizMsg delivers the backend quiz, or the failure that triggers the
// local fallback.
type quizMsg struct {
	quiz *api.Quiz
	err  error
}

// recordFailedMsg reports an outcome that could not be saved.
type recordFailedMsg struct {
	err error
}

// item is one question in the running session.
type item struct {
	prompt string
	answer string

	// Identity for outcome reporting; empty when the quiz question
	// could not be matched to a word in the set.
	category   string
	nativeText string
}

type phase int

const (
	phaseLoading phase = iota
	phaseAsking
	phaseRevealed
	phaseDone
)

// Screen runs one practice session.
type Screen struct {
	app *state.App

	phase    phase
	items    []item
	current  int
	attempts int
	correct  int
	wrong    bool

	input  components.TextInput
	notice string
}

var _ screen.Screen = (*Screen)(nil)

// New creates a practice session over the current set. The practice
// selection is computed here if no selection is active yet.
func New(app *state.App) *Screen {
	if len(app.PracticeSelection()) == 0 {
		if set := app.VocabularySet(); set != nil {
			app.SetPracticeSelection(vocab.SelectPractice(set.Flatten()))
		}
	}
	return &Screen{
		app:   app,
		input: components.NewTextInput("type the translation", false, 64),
	}
}

func (s *Screen) Init() tea.Cmd {
	set := s.app.VocabularySet()
	sessionID := s.app.Tracker.Resolve(set)
	if sessionID == "" {
		// No session to ask the backend about; practice locally.
		return func() tea.Msg { return quizMsg{err: nil, quiz: nil} }
	}
	return func() tea.Msg {
		quiz, err := s.app.Client.GenerateQuiz(context.Background(), sessionID)
		return quizMsg{quiz: quiz, err: err}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizMsg:
		s.startSession(msg)
		return s, s.input.Init()

	case recordFailedMsg:
		s.notice = "Could not save that result."
		return s, nil

	case tea.KeyMsg:
		return s.updateKeys(msg)
	}

	if s.phase == phaseAsking {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// startSession builds the question list, preferring the backend quiz.
func (s *Screen) startSession(msg quizMsg) {
	set := s.app.VocabularySet()

	if msg.quiz != nil && len(msg.quiz.Questions) > 0 {
		for _, q := range msg.quiz.Questions {
			it := item{prompt: q.Prompt, answer: q.Answer}
			if cat, word := findByNative(set, q.Prompt); word != nil {
				it.category = cat
				it.nativeText = word.NativeText
			}
			s.items = append(s.items, it)
		}
	} else {
		if msg.err != nil {
			s.notice = "Quiz unavailable; practicing from your words."
		}
		for _, word := range s.app.PracticeSelection() {
			if word.Category == "" {
				continue
			}
			s.items = append(s.items, item{
				prompt:     word.NativeText,
				answer:     word.TargetText,
				category:   word.Category,
				nativeText: word.NativeText,
			})
		}
	}

	if len(s.items) == 0 {
		s.phase = phaseDone
		return
	}
	s.phase = phaseAsking
}

// findByNative locates a word by its native text across categories.
func findByNative(set *vocab.Set, nativeText string) (string, *vocab.Item) {
	if set == nil {
		return "", nil
	}
	for ci := range set.Categories {
		for wi := range set.Categories[ci].Words {
			if set.Categories[ci].Words[wi].NativeText == nativeText {
				return set.Categories[ci].Name, &set.Categories[ci].Words[wi]
			}
		}
	}
	return "", nil
}

func (s *Screen) updateKeys(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.phase {
	case phaseAsking:
		switch msg.String() {
		case "enter":
			return s.grade()
		case "ctrl+r":
			return s.reveal()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	case phaseRevealed:
		if msg.String() == "enter" {
			return s, s.advance()
		}
	}
	return s, nil
}

// grade checks the typed answer. A wrong answer counts an attempt and
// lets the user try again; a correct one records and moves on.
func (s *Screen) grade() (screen.Screen, tea.Cmd) {
	got := normalize(s.input.Value())
	if got == "" {
		return s, nil
	}
	s.attempts++

	if got != normalize(s.items[s.current].answer) {
		s.wrong = true
		s.input.Submit(false)
		return s, nil
	}

	s.correct++
	s.input.Submit(true)
	s.phase = phaseRevealed
	return s, s.record(true)
}

// reveal gives up on the current question and records it incorrect.
func (s *Screen) reveal() (screen.Screen, tea.Cmd) {
	if s.attempts == 0 {
		s.attempts = 1
	}
	s.phase = phaseRevealed
	return s, s.record(false)
}

// record reports the outcome for the current item, when it maps to a
// word in the set.
func (s *Screen) record(correct bool) tea.Cmd {
	it := s.items[s.current]
	if it.nativeText == "" {
		return nil
	}
	attempts := s.attempts
	return func() tea.Msg {
		err := s.app.Mutator.RecordQuizOutcome(
			context.Background(), it.category, it.nativeText, correct, attempts)
		if err != nil {
			return recordFailedMsg{err: err}
		}
		return nil
	}
}

func (s *Screen) advance() tea.Cmd {
	s.current++
	s.attempts = 0
	s.wrong = false
	s.input.Reset()

	if s.current >= len(s.items) {
		s.phase = phaseDone
		return nil
	}
	s.phase = phaseAsking
	return s.input.Init()
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (s *Screen) View(width, height int) string {
	var b strings.Builder
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	switch s.phase {
	case phaseLoading:
		b.WriteString(center.Render(theme.Hint.Render("Preparing your practice session…")))

	case phaseDone:
		b.WriteString(theme.Title.Width(width).Render("Session complete"))
		b.WriteString("\n\n")
		if len(s.items) == 0 {
			b.WriteString(center.Render(theme.Body.Render("Nothing to practice yet — browse some words first.")))
		} else {
			summary := theme.Correct.Render(strconv.Itoa(s.correct)) +
				theme.Body.Render(" of "+strconv.Itoa(len(s.items))+" correct")
			b.WriteString(center.Render(summary))
		}
		b.WriteString("\n\n")
		b.WriteString(center.Render(theme.Hint.Render("Press Esc to go back.")))

	default:
		it := s.items[s.current]

		bar := components.NewProgressBar("", float64(s.current)/float64(len(s.items)), false, min(width-8, 48))
		b.WriteString(center.Render(bar.View()))
		b.WriteString("\n\n")

		b.WriteString(theme.Title.Width(width).Render(it.prompt))
		b.WriteString("\n\n")

		if s.phase == phaseRevealed {
			b.WriteString(center.Render(theme.Correct.Render(it.answer)))
			b.WriteString("\n\n")
			b.WriteString(center.Render(theme.Hint.Render("Enter for the next word")))
		} else {
			b.WriteString(center.Render(s.input.View()))
			if s.wrong {
				b.WriteString("\n\n")
				b.WriteString(center.Render(theme.Incorrect.Render("Not quite — try again, or Ctrl+R to reveal.")))
			}
		}
	}

	if s.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(center.Render(theme.Hint.Render(s.notice)))
	}

	return b.String()
}

func (s *Screen) Title() string {
	return "Practice"
}

// KeyHints implements screen.KeyHintProvider.
func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Check"},
		{Key: "Ctrl+R", Description: "Reveal"},
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
