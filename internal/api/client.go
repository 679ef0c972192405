// Package api is the transport boundary to the Lingua backend. The core
// consumes a uniform {success, data, error, error_code} envelope and
// sees transport failures only through the typed error taxonomy defined
// in errors.go.
package api

import (
	"context"

	"github.com/abhisek/lingua/internal/vocab"
)

// Client is the backend surface the client core depends on. Every call
// is blocking with respect to its context; callers run them off the UI
// goroutine and deliver results back as immutable values.
type Client interface {
	// CheckSession asks the backend whether token still identifies a
	// valid session.
	CheckSession(ctx context.Context, token string) (*SessionCheck, error)

	// GenerateVocabulary requests a fresh vocabulary set.
	GenerateVocabulary(ctx context.Context, req GenerateVocabularyRequest) (*vocab.Set, error)

	// GenerateQuiz requests a quiz over the set identified by quizSessionID.
	GenerateQuiz(ctx context.Context, quizSessionID string) (*Quiz, error)

	// SimilarWords fetches the similar-words detail for word.
	SimilarWords(ctx context.Context, word string) (*SimilarWords, error)

	// TenseTable fetches the tense table for word.
	TenseTable(ctx context.Context, word string) (*TenseTable, error)

	// Decompose fetches the decomposition of word into target-language parts.
	Decompose(ctx context.Context, word, targetWord string) (*Decomposition, error)

	// UpdateWordProgress reports changed word-level interaction state.
	UpdateWordProgress(ctx context.Context, upd WordProgressUpdate) error

	// UpdateCategoryProgress reports changed category-level state.
	UpdateCategoryProgress(ctx context.Context, upd CategoryProgressUpdate) error
}
