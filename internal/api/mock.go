package api

import (
	"context"
	"sync"

	"github.com/abhisek/lingua/internal/vocab"
)

// MockClient is a scriptable Client for tests. Each method delegates to
// its Fn field when set; unset methods fail with a ConnectivityError so
// a test never silently succeeds on a call it did not script. Call
// counts are recorded per method.
type MockClient struct {
	mu    sync.Mutex
	calls map[string]int

	CheckSessionFn           func(ctx context.Context, token string) (*SessionCheck, error)
	GenerateVocabularyFn     func(ctx context.Context, req GenerateVocabularyRequest) (*vocab.Set, error)
	GenerateQuizFn           func(ctx context.Context, quizSessionID string) (*Quiz, error)
	SimilarWordsFn           func(ctx context.Context, word string) (*SimilarWords, error)
	TenseTableFn             func(ctx context.Context, word string) (*TenseTable, error)
	DecomposeFn              func(ctx context.Context, word, targetWord string) (*Decomposition, error)
	UpdateWordProgressFn     func(ctx context.Context, upd WordProgressUpdate) error
	UpdateCategoryProgressFn func(ctx context.Context, upd CategoryProgressUpdate) error
}

var _ Client = (*MockClient)(nil)

// NewMockClient creates an empty MockClient.
func NewMockClient() *MockClient {
	return &MockClient{calls: make(map[string]int)}
}

// Calls returns how many times the named method was invoked.
func (m *MockClient) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *MockClient) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
}

func (m *MockClient) CheckSession(ctx context.Context, token string) (*SessionCheck, error) {
	m.record("CheckSession")
	if m.CheckSessionFn == nil {
		return nil, &ConnectivityError{Err: errUnscripted}
	}
	return m.CheckSessionFn(ctx, token)
}

func (m *MockClient) GenerateVocabulary(ctx context.Context, req GenerateVocabularyRequest) (*vocab.Set, error) {
	m.record("GenerateVocabulary")
	if m.GenerateVocabularyFn == nil {
		return nil, &ConnectivityError{Err: errUnscripted}
	}
	return m.GenerateVocabularyFn(ctx, req)
}

func (m *MockClient) GenerateQuiz(ctx context.Context, quizSessionID string) (*Quiz, error) {
	m.record("GenerateQuiz")
	if m.GenerateQuizFn == nil {
		return nil, &ConnectivityError{Err: errUnscripted}
	}
	return m.GenerateQuizFn(ctx, quizSessionID)
}

func (m *MockClient) SimilarWords(ctx context.Context, word string) (*SimilarWords, error) {
	m.record("SimilarWords")
	if m.SimilarWordsFn == nil {
		return nil, &ConnectivityError{Err: errUnscripted}
	}
	return m.SimilarWordsFn(ctx, word)
}

func (m *MockClient) TenseTable(ctx context.Context, word string) (*TenseTable, error) {
	m.record("TenseTable")
	if m.TenseTableFn == nil {
		return nil, &ConnectivityError{Err: errUnscripted}
	}
	return m.TenseTableFn(ctx, word)
}

func (m *MockClient) Decompose(ctx context.Context, word, targetWord string) (*Decomposition, error) {
	m.record("Decompose")
	if m.DecomposeFn == nil {
		return nil, &ConnectivityError{Err: errUnscripted}
	}
	return m.DecomposeFn(ctx, word, targetWord)
}

func (m *MockClient) UpdateWordProgress(ctx context.Context, upd WordProgressUpdate) error {
	m.record("UpdateWordProgress")
	if m.UpdateWordProgressFn == nil {
		return &ConnectivityError{Err: errUnscripted}
	}
	return m.UpdateWordProgressFn(ctx, upd)
}

func (m *MockClient) UpdateCategoryProgress(ctx context.Context, upd CategoryProgressUpdate) error {
	m.record("UpdateCategoryProgress")
	if m.UpdateCategoryProgressFn == nil {
		return &ConnectivityError{Err: errUnscripted}
	}
	return m.UpdateCategoryProgressFn(ctx, upd)
}

type unscriptedError struct{}

func (unscriptedError) Error() string { return "mock: method not scripted" }

var errUnscripted = unscriptedError{}
