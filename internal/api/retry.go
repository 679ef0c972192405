package api

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/abhisek/lingua/internal/vocab"
)

// RetryConfig configures retry behavior for idempotent lookups.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetryConfig returns the retry defaults for detail lookups.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 500 * time.Millisecond,
		MaxWait:     5 * time.Second,
		Multiplier:  2.0,
	}
}

// RetryClient is a decorator that retries connectivity failures on the
// idempotent detail lookups only. Session checks are raced against the
// validator's own deadline and must stay single-shot, and progress
// mutations are single-shot by contract, so those pass straight through.
type RetryClient struct {
	inner  Client
	config RetryConfig
}

var _ Client = (*RetryClient)(nil)

// WithRetry wraps a Client with lookup retry logic.
func WithRetry(c Client, cfg RetryConfig) *RetryClient {
	return &RetryClient{inner: c, config: cfg}
}

// retryLookup runs fn up to MaxAttempts times, backing off between
// attempts. Only connectivity-class errors are retried.
func retryLookup[T any](ctx context.Context, cfg RetryConfig, fn func() (*T, error)) (*T, error) {
	var lastErr error
	for attempt := range cfg.MaxAttempts {
		out, err := fn()
		if err == nil {
			return out, nil
		}
		lastErr = err

		var conn *ConnectivityError
		if !errors.As(err, &conn) {
			return nil, err
		}
		if attempt == cfg.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff(cfg, attempt)):
		}
	}
	return nil, lastErr
}

// backoff computes the wait for the given attempt with ±20% jitter.
func backoff(cfg RetryConfig, attempt int) time.Duration {
	wait := float64(cfg.InitialWait) * math.Pow(cfg.Multiplier, float64(attempt))
	if wait > float64(cfg.MaxWait) {
		wait = float64(cfg.MaxWait)
	}
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}

func (r *RetryClient) SimilarWords(ctx context.Context, word string) (*SimilarWords, error) {
	return retryLookup(ctx, r.config, func() (*SimilarWords, error) {
		return r.inner.SimilarWords(ctx, word)
	})
}

func (r *RetryClient) TenseTable(ctx context.Context, word string) (*TenseTable, error) {
	return retryLookup(ctx, r.config, func() (*TenseTable, error) {
		return r.inner.TenseTable(ctx, word)
	})
}

func (r *RetryClient) Decompose(ctx context.Context, word, targetWord string) (*Decomposition, error) {
	return retryLookup(ctx, r.config, func() (*Decomposition, error) {
		return r.inner.Decompose(ctx, word, targetWord)
	})
}

func (r *RetryClient) CheckSession(ctx context.Context, token string) (*SessionCheck, error) {
	return r.inner.CheckSession(ctx, token)
}

func (r *RetryClient) GenerateVocabulary(ctx context.Context, req GenerateVocabularyRequest) (*vocab.Set, error) {
	return r.inner.GenerateVocabulary(ctx, req)
}

func (r *RetryClient) GenerateQuiz(ctx context.Context, quizSessionID string) (*Quiz, error) {
	return r.inner.GenerateQuiz(ctx, quizSessionID)
}

func (r *RetryClient) UpdateWordProgress(ctx context.Context, upd WordProgressUpdate) error {
	return r.inner.UpdateWordProgress(ctx, upd)
}

func (r *RetryClient) UpdateCategoryProgress(ctx context.Context, upd CategoryProgressUpdate) error {
	return r.inner.UpdateCategoryProgress(ctx, upd)
}
