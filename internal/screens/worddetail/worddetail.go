// Package worddetail shows the three detail lookups for one word:
// similar words, tense table, and decomposition. Lookups go through the
// app's caches, so revisiting a word within one scene costs nothing.
package worddetail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/api"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/state"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
	"github.com/abhisek/lingua/internal/vocab"
)

type tab int

const (
	tabSimilar tab = iota
	tabTenses
	tabDecomp
)

func (t tab) label() string {
	switch t {
	case tabSimilar:
		return "Similar"
	case tabTenses:
		return "Tenses"
	case tabDecomp:
		return "Parts"
	}
	return ""
}

// Per-tab fetch results.
type similarMsg struct {
	res *api.SimilarWords
	err error
}

type tensesMsg struct {
	res *api.TenseTable
	err error
}

type decompMsg struct {
	res *api.Decomposition
	err error
}

// Screen shows one word's detail lookups.
type Screen struct {
	app      *state.App
	category string
	word     vocab.Item

	active  tab
	loading [3]bool
	failed  [3]string

	similar *api.SimilarWords
	tenses  *api.TenseTable
	decomp  *api.Decomposition
}

var _ screen.Screen = (*Screen)(nil)

// New creates the detail screen for word.
func New(app *state.App, category string, word vocab.Item) *Screen {
	return &Screen{app: app, category: category, word: word}
}

func (s *Screen) Init() tea.Cmd {
	return s.fetch(tabSimilar)
}

// fetch starts the lookup behind t unless a result or request exists.
func (s *Screen) fetch(t tab) tea.Cmd {
	if s.loading[t] {
		return nil
	}

	switch t {
	case tabSimilar:
		if s.similar != nil {
			return nil
		}
		s.loading[t] = true
		return func() tea.Msg {
			res, err := s.app.SimilarWords(context.Background(), s.word.TargetText)
			return similarMsg{res: res, err: err}
		}
	case tabTenses:
		if s.tenses != nil {
			return nil
		}
		s.loading[t] = true
		return func() tea.Msg {
			res, err := s.app.TenseTable(context.Background(), s.word.TargetText)
			return tensesMsg{res: res, err: err}
		}
	case tabDecomp:
		if s.decomp != nil {
			return nil
		}
		s.loading[t] = true
		return func() tea.Msg {
			res, err := s.app.Decompose(context.Background(), s.word.TargetText, s.word.NativeText)
			return decompMsg{res: res, err: err}
		}
	}
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case similarMsg:
		s.loading[tabSimilar] = false
		if msg.err != nil {
			s.failed[tabSimilar] = describeLookupFailure(msg.err)
		} else {
			s.similar = msg.res
			s.failed[tabSimilar] = ""
		}
		return s, nil

	case tensesMsg:
		s.loading[tabTenses] = false
		if msg.err != nil {
			s.failed[tabTenses] = describeLookupFailure(msg.err)
		} else {
			s.tenses = msg.res
			s.failed[tabTenses] = ""
		}
		return s, nil

	case decompMsg:
		s.loading[tabDecomp] = false
		if msg.err != nil {
			s.failed[tabDecomp] = describeLookupFailure(msg.err)
		} else {
			s.decomp = msg.res
			s.failed[tabDecomp] = ""
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "s", "1":
			s.active = tabSimilar
			return s, s.fetch(tabSimilar)
		case "t", "2":
			s.active = tabTenses
			return s, s.fetch(tabTenses)
		case "d", "3":
			s.active = tabDecomp
			return s, s.fetch(tabDecomp)
		case "r":
			// Retry the active lookup after a failure.
			if s.failed[s.active] != "" {
				s.failed[s.active] = ""
				return s, s.fetch(s.active)
			}
		}
	}
	return s, nil
}

func describeLookupFailure(err error) string {
	var connErr *api.ConnectivityError
	if errors.As(err, &connErr) {
		return "Could not reach the server. Press r to retry."
	}
	return "Lookup failed. Press r to retry."
}

func (s *Screen) View(width, height int) string {
	var b strings.Builder

	title := s.word.NativeText + "  —  " + s.word.TargetText
	if s.word.Transliteration != "" {
		title += "  (" + s.word.Transliteration + ")"
	}
	b.WriteString(theme.Title.Width(width).Render(title))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(s.tabBar()))
	b.WriteString("\n\n")

	var body string
	switch {
	case s.loading[s.active]:
		body = theme.Hint.Render("Loading…")
	case s.failed[s.active] != "":
		body = theme.Hint.Render(s.failed[s.active])
	default:
		body = s.tabBody()
	}
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(body))

	return b.String()
}

func (s *Screen) tabBar() string {
	var parts []string
	for _, t := range []tab{tabSimilar, tabTenses, tabDecomp} {
		if t == s.active {
			parts = append(parts, theme.Selected.Render("[ "+t.label()+" ]"))
		} else {
			parts = append(parts, theme.Unselected.Render("  "+t.label()+"  "))
		}
	}
	return strings.Join(parts, "  ")
}

func (s *Screen) tabBody() string {
	switch s.active {
	case tabSimilar:
		if s.similar == nil || len(s.similar.Similar) == 0 {
			return theme.Hint.Render("No similar words.")
		}
		var rows []string
		for _, sw := range s.similar.Similar {
			rows = append(rows, fmt.Sprintf("%s  —  %s",
				theme.Body.Render(sw.Word), theme.Hint.Render(sw.Meaning)))
		}
		return strings.Join(rows, "\n")

	case tabTenses:
		if s.tenses == nil || len(s.tenses.Tenses) == 0 {
			return theme.Hint.Render("No tense forms.")
		}
		var rows []string
		for _, tr := range s.tenses.Tenses {
			rows = append(rows, fmt.Sprintf("%-14s %s",
				theme.Hint.Render(tr.Tense), theme.Body.Render(tr.Form)))
		}
		return strings.Join(rows, "\n")

	case tabDecomp:
		if s.decomp == nil || len(s.decomp.Parts) == 0 {
			return theme.Hint.Render("No decomposition.")
		}
		var rows []string
		for _, p := range s.decomp.Parts {
			rows = append(rows, fmt.Sprintf("%s  —  %s",
				theme.Body.Render(p.Part), theme.Hint.Render(p.Meaning)))
		}
		return strings.Join(rows, "\n")
	}
	return ""
}

func (s *Screen) Title() string {
	return "Word"
}

// KeyHints implements screen.KeyHintProvider.
func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "s/t/d", Description: "Switch tab"},
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
