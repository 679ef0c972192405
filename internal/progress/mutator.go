// Package progress applies word and category interaction mutations with
// a database-first protocol: the backend is updated first, and the
// local snapshot only after the backend acknowledged the change. The
// locally displayed state therefore never diverges from the server's
// record of truth.
package progress

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/lingua/internal/api"
	"github.com/abhisek/lingua/internal/vocab"
)

// ErrNoSession means no session identifier could be resolved for the
// mutation; the call is rejected before any network traffic.
var ErrNoSession = errors.New("no session identifier available")

// ErrUnknownTarget means the addressed word or category is not in the
// current snapshot.
var ErrUnknownTarget = errors.New("target not in vocabulary snapshot")

// Snapshot is the holder of the cached vocabulary state the mutator
// reads and, after acknowledged success only, replaces.
type Snapshot interface {
	VocabularySet() *vocab.Set
	ReplaceVocabularySet(*vocab.Set)
	PracticeSelection() []vocab.Item
	SetPracticeSelection([]vocab.Item)
}

// Mutator performs database-first mutations of tracked interaction
// state. On any failure the snapshot is left bit-for-bit as it was.
type Mutator struct {
	client  api.Client
	tracker *vocab.SessionTracker
	snap    Snapshot
}

// New creates a Mutator over the given snapshot holder.
func New(client api.Client, tracker *vocab.SessionTracker, snap Snapshot) *Mutator {
	return &Mutator{client: client, tracker: tracker, snap: snap}
}

// MarkClicked records that the user opened a word. A word already
// marked clicked is a no-op success with zero network calls.
func (m *Mutator) MarkClicked(ctx context.Context, category, nativeText string) error {
	set := m.snap.VocabularySet()
	item := set.Find(category, nativeText)
	if item == nil {
		return fmt.Errorf("%w: %s/%s", ErrUnknownTarget, category, nativeText)
	}
	if item.IsClicked() {
		return nil
	}

	sessionID := m.tracker.Resolve(set)
	if sessionID == "" {
		return ErrNoSession
	}

	upd := api.WordProgressUpdate{
		QuizSessionID: sessionID,
		Category:      category,
		NativeText:    nativeText,
		Clicked:       vocab.BoolPtr(true),
	}
	if err := m.client.UpdateWordProgress(ctx, upd); err != nil {
		return err
	}

	updated, _ := set.WithUpdatedItem(category, nativeText, func(it *vocab.Item) {
		it.Clicked = vocab.BoolPtr(true)
	})
	m.snap.ReplaceVocabularySet(updated)
	m.recomputeSelectionIfEmpty(updated)
	return nil
}

// RecordQuizOutcome reports a practice answer for a word. Only the
// fields that actually changed are sent; if nothing changed the call is
// a no-op success.
func (m *Mutator) RecordQuizOutcome(ctx context.Context, category, nativeText string, isCorrect bool, attempts int) error {
	set := m.snap.VocabularySet()
	item := set.Find(category, nativeText)
	if item == nil {
		return fmt.Errorf("%w: %s/%s", ErrUnknownTarget, category, nativeText)
	}

	correctChanged := item.IsCorrect == nil || *item.IsCorrect != isCorrect
	attemptsChanged := item.Attempts == nil || *item.Attempts != attempts
	if !correctChanged && !attemptsChanged {
		return nil
	}

	sessionID := m.tracker.Resolve(set)
	if sessionID == "" {
		return ErrNoSession
	}

	upd := api.WordProgressUpdate{
		QuizSessionID: sessionID,
		Category:      category,
		NativeText:    nativeText,
	}
	if correctChanged {
		upd.IsCorrect = vocab.BoolPtr(isCorrect)
	}
	if attemptsChanged {
		upd.Attempts = vocab.IntPtr(attempts)
	}
	if err := m.client.UpdateWordProgress(ctx, upd); err != nil {
		return err
	}

	updated, _ := set.WithUpdatedItem(category, nativeText, func(it *vocab.Item) {
		it.IsCorrect = vocab.BoolPtr(isCorrect)
		it.Attempts = vocab.IntPtr(attempts)
	})
	m.snap.ReplaceVocabularySet(updated)

	// A practice outcome updates the selected item in place, keeping
	// its position; an empty selection is recomputed wholesale.
	if sel := m.snap.PracticeSelection(); len(sel) > 0 {
		vocab.UpdateOutcome(sel, category, nativeText, isCorrect, attempts)
		m.snap.SetPracticeSelection(sel)
	} else {
		m.snap.SetPracticeSelection(vocab.SelectPractice(updated.Flatten()))
	}
	return nil
}

// MarkCategoryClicked records that the user opened a category.
func (m *Mutator) MarkCategoryClicked(ctx context.Context, category string) error {
	set := m.snap.VocabularySet()
	cat := set.FindCategory(category)
	if cat == nil {
		return fmt.Errorf("%w: %s", ErrUnknownTarget, category)
	}
	if cat.IsClicked() {
		return nil
	}

	sessionID := m.tracker.Resolve(set)
	if sessionID == "" {
		return ErrNoSession
	}

	upd := api.CategoryProgressUpdate{
		QuizSessionID: sessionID,
		Category:      category,
		Clicked:       vocab.BoolPtr(true),
	}
	if err := m.client.UpdateCategoryProgress(ctx, upd); err != nil {
		return err
	}

	updated, _ := set.WithUpdatedCategory(category, func(c *vocab.Category) {
		c.Clicked = vocab.BoolPtr(true)
	})
	m.snap.ReplaceVocabularySet(updated)
	return nil
}

// recomputeSelectionIfEmpty rebuilds the practice selection from the
// snapshot when none exists. A non-empty selection is left alone; a
// clicked-state change does not reshuffle what the user is looking at.
func (m *Mutator) recomputeSelectionIfEmpty(set *vocab.Set) {
	if len(m.snap.PracticeSelection()) > 0 {
		return
	}
	m.snap.SetPracticeSelection(vocab.SelectPractice(set.Flatten()))
}
