package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/lingua/internal/vocab"
)

// DefaultTimeout bounds a single HTTP round trip. Deliberately longer
// than the session validator's own deadline; the validator races its
// timer against the call rather than shortening it.
const DefaultTimeout = 60 * time.Second

// HTTPConfig configures the HTTP client.
type HTTPConfig struct {
	// BaseURL is the backend root, e.g. "https://api.lingua.example".
	BaseURL string

	// Token supplies the current session token for the Authorization
	// header. May be nil for unauthenticated calls.
	Token func() string

	// Timeout per round trip. Zero means DefaultTimeout.
	Timeout time.Duration
}

// HTTPClient implements Client over net/http.
type HTTPClient struct {
	baseURL string
	token   func() string
	hc      *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a client for the backend at cfg.BaseURL.
func NewHTTPClient(cfg HTTPConfig) *HTTPClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		hc:      &http.Client{Timeout: timeout},
	}
}

// do executes one round trip and returns the raw data payload of a
// successful envelope. All failures come back as one of the typed
// errors in errors.go, except context cancellation which is passed
// through untouched.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// Everything the transport can produce here — refused, reset,
		// DNS failure, client timeout — is connectivity-class.
		return nil, &ConnectivityError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, &AuthorizationError{StatusCode: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &ConnectivityError{Err: fmt.Errorf("read body: %w", err)}
	}

	var env envelope[json.RawMessage]
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &DecodingError{Body: raw, Err: err}
	}

	if !env.Success {
		// Some deployments signal auth failure inside the payload
		// instead of the status line.
		switch env.ErrorCode {
		case "401", "403", "unauthorized", "forbidden":
			return nil, &AuthorizationError{
				StatusCode: resp.StatusCode,
				Err:        &ApplicationError{Message: env.Error, Code: env.ErrorCode},
			}
		}
		return nil, &ApplicationError{Message: env.Error, Code: env.ErrorCode}
	}

	if env.Data == nil {
		return json.RawMessage("null"), nil
	}
	return *env.Data, nil
}

// decodeData unmarshals a data payload into T, classifying failures as
// DecodingError.
func decodeData[T any](raw json.RawMessage) (*T, error) {
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &DecodingError{Body: raw, Err: err}
	}
	return &out, nil
}

func (c *HTTPClient) CheckSession(ctx context.Context, token string) (*SessionCheck, error) {
	raw, err := c.do(ctx, http.MethodPost, "/session/check", nil, sessionCheckRequest{SessionToken: token})
	if err != nil {
		return nil, err
	}
	return decodeData[SessionCheck](raw)
}

func (c *HTTPClient) GenerateVocabulary(ctx context.Context, req GenerateVocabularyRequest) (*vocab.Set, error) {
	raw, err := c.do(ctx, http.MethodPost, "/vocabulary/generate", nil, req)
	if err != nil {
		return nil, err
	}
	if err := validatePayload("vocabulary-set", vocabularySetSchema, raw); err != nil {
		return nil, err
	}
	return decodeData[vocab.Set](raw)
}

func (c *HTTPClient) GenerateQuiz(ctx context.Context, quizSessionID string) (*Quiz, error) {
	raw, err := c.do(ctx, http.MethodPost, "/quiz/generate", nil, quizRequest{QuizSessionID: quizSessionID})
	if err != nil {
		return nil, err
	}
	if err := validatePayload("quiz", quizSchema, raw); err != nil {
		return nil, err
	}
	return decodeData[Quiz](raw)
}

func (c *HTTPClient) SimilarWords(ctx context.Context, word string) (*SimilarWords, error) {
	q := url.Values{"word": {word}}
	raw, err := c.do(ctx, http.MethodGet, "/words/similar", q, nil)
	if err != nil {
		return nil, err
	}
	return decodeData[SimilarWords](raw)
}

func (c *HTTPClient) TenseTable(ctx context.Context, word string) (*TenseTable, error) {
	q := url.Values{"word": {word}}
	raw, err := c.do(ctx, http.MethodGet, "/words/tenses", q, nil)
	if err != nil {
		return nil, err
	}
	return decodeData[TenseTable](raw)
}

func (c *HTTPClient) Decompose(ctx context.Context, word, targetWord string) (*Decomposition, error) {
	q := url.Values{"word": {word}, "target_word": {targetWord}}
	raw, err := c.do(ctx, http.MethodGet, "/words/decompose", q, nil)
	if err != nil {
		return nil, err
	}
	return decodeData[Decomposition](raw)
}

func (c *HTTPClient) UpdateWordProgress(ctx context.Context, upd WordProgressUpdate) error {
	_, err := c.do(ctx, http.MethodPost, "/progress/word", nil, upd)
	return err
}

func (c *HTTPClient) UpdateCategoryProgress(ctx context.Context, upd CategoryProgressUpdate) error {
	_, err := c.do(ctx, http.MethodPost, "/progress/category", nil, upd)
	return err
}
