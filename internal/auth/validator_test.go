package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/lingua/internal/api"
)

type fakeTokenStore struct {
	mu          sync.Mutex
	tokenClears int
	userClears  int
}

func (f *fakeTokenStore) ClearAuthToken() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokenClears++
	return nil
}

func (f *fakeTokenStore) ClearUserData() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userClears++
	return nil
}

func (f *fakeTokenStore) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tokenClears, f.userClears
}

type harness struct {
	mock      *api.MockClient
	store     *fakeTokenStore
	statusCh  chan Status
	validator *Validator

	mu    sync.Mutex
	loads int
}

func newHarness(token string, timeout time.Duration) *harness {
	h := &harness{
		mock:     api.NewMockClient(),
		store:    &fakeTokenStore{},
		statusCh: make(chan Status, 32),
	}
	h.validator = NewValidator(h.mock, h.store, token, Config{Timeout: timeout}, Hooks{
		OnChange: func(st Status) { h.statusCh <- st },
		LoadUserData: func() {
			h.mu.Lock()
			h.loads++
			h.mu.Unlock()
		},
	})
	return h
}

func (h *harness) loadCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loads
}

// waitFor blocks until a status matching pred is observed.
func (h *harness) waitFor(t *testing.T, what string, pred func(Status) bool) Status {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case st := <-h.statusCh:
			if pred(st) {
				return st
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s; last status: %+v", what, h.validator.Status())
		}
	}
}

func TestValidator_EmptyTokenResolvesSynchronously(t *testing.T) {
	h := newHarness("", time.Second)
	h.validator.Validate(context.Background())

	st := h.validator.Status()
	if st.State != StateUnauthenticated {
		t.Errorf("state = %s, want unauthenticated", st.State)
	}
	if got := h.mock.Calls("CheckSession"); got != 0 {
		t.Errorf("network calls = %d, want 0", got)
	}
	if _, userClears := h.store.counts(); userClears != 1 {
		t.Errorf("user data clears = %d, want 1", userClears)
	}
}

func TestValidator_FastValidResponse(t *testing.T) {
	h := newHarness("T1", 10*time.Second)
	h.mock.CheckSessionFn = func(ctx context.Context, token string) (*api.SessionCheck, error) {
		return &api.SessionCheck{Valid: true}, nil
	}

	h.validator.Validate(context.Background())
	st := h.waitFor(t, "authenticated", func(s Status) bool { return s.State == StateAuthenticated })

	if st.Token != "T1" {
		t.Errorf("token = %q, want T1", st.Token)
	}
	if st.Offline || st.Loading {
		t.Errorf("offline=%v loading=%v, want both false", st.Offline, st.Loading)
	}
	if h.loadCount() != 1 {
		t.Errorf("loadUserData invocations = %d, want 1", h.loadCount())
	}
}

func TestValidator_OnTimeInvalidClearsEverything(t *testing.T) {
	h := newHarness("T1", 10*time.Second)
	h.mock.CheckSessionFn = func(ctx context.Context, token string) (*api.SessionCheck, error) {
		return &api.SessionCheck{Valid: false}, nil
	}

	h.validator.Validate(context.Background())
	st := h.waitFor(t, "unauthenticated", func(s Status) bool { return s.State == StateUnauthenticated })

	if st.Token != "" {
		t.Errorf("token = %q, want cleared", st.Token)
	}
	if _, userClears := h.store.counts(); userClears != 1 {
		t.Errorf("user data clears = %d, want 1", userClears)
	}
}

func TestValidator_LateValidResponseAccepted(t *testing.T) {
	h := newHarness("T1", 30*time.Millisecond)
	release := make(chan struct{})
	h.mock.CheckSessionFn = func(ctx context.Context, token string) (*api.SessionCheck, error) {
		<-release
		return &api.SessionCheck{Valid: true}, nil
	}

	h.validator.Validate(context.Background())

	st := h.waitFor(t, "offline-retry", func(s Status) bool { return s.State == StateOfflineRetry })
	if !st.Offline || !st.Loading {
		t.Errorf("timeout state: offline=%v loading=%v, want both true", st.Offline, st.Loading)
	}
	if st.Token != "T1" {
		t.Errorf("token cleared on timeout: %q", st.Token)
	}

	close(release)
	st = h.waitFor(t, "authenticated", func(s Status) bool { return s.State == StateAuthenticated })
	if st.Token != "T1" {
		t.Errorf("token = %q, want T1 preserved", st.Token)
	}
	if h.loadCount() != 1 {
		t.Errorf("loadUserData invocations = %d, want 1", h.loadCount())
	}
}

func TestValidator_LateInvalidResponseSuppressed(t *testing.T) {
	h := newHarness("T1", 30*time.Millisecond)
	release := make(chan struct{})
	h.mock.CheckSessionFn = func(ctx context.Context, token string) (*api.SessionCheck, error) {
		<-release
		return &api.SessionCheck{Valid: false}, nil
	}

	h.validator.Validate(context.Background())
	h.waitFor(t, "offline-retry", func(s Status) bool { return s.State == StateOfflineRetry })

	close(release)
	time.Sleep(100 * time.Millisecond)

	st := h.validator.Status()
	if st.State != StateOfflineRetry {
		t.Errorf("state = %s, want offline-retry untouched", st.State)
	}
	if st.Token != "T1" {
		t.Errorf("token = %q, want T1 untouched", st.Token)
	}
	if tokenClears, _ := h.store.counts(); tokenClears != 0 {
		t.Errorf("token clears = %d, want 0", tokenClears)
	}
}

func TestValidator_LateFailureSuppressed(t *testing.T) {
	h := newHarness("T1", 30*time.Millisecond)
	release := make(chan struct{})
	h.mock.CheckSessionFn = func(ctx context.Context, token string) (*api.SessionCheck, error) {
		<-release
		return nil, errors.New("totally unexpected")
	}

	h.validator.Validate(context.Background())
	h.waitFor(t, "offline-retry", func(s Status) bool { return s.State == StateOfflineRetry })

	close(release)
	time.Sleep(100 * time.Millisecond)

	st := h.validator.Status()
	if st.State != StateOfflineRetry || st.Token != "T1" {
		t.Errorf("late failure changed state: %+v", st)
	}
}

func TestValidator_ConnectivityErrorKeepsToken(t *testing.T) {
	h := newHarness("T1", 10*time.Second)
	h.mock.CheckSessionFn = func(ctx context.Context, token string) (*api.SessionCheck, error) {
		return nil, &api.ConnectivityError{Err: errors.New("connection lost")}
	}

	h.validator.Validate(context.Background())
	st := h.waitFor(t, "offline-retry", func(s Status) bool { return s.State == StateOfflineRetry })

	if !st.Offline || !st.Loading {
		t.Errorf("offline=%v loading=%v, want both true", st.Offline, st.Loading)
	}
	if st.Token != "T1" {
		t.Errorf("token = %q, want T1 kept for retry", st.Token)
	}
	if tokenClears, _ := h.store.counts(); tokenClears != 0 {
		t.Errorf("token clears = %d, want 0", tokenClears)
	}
}

func TestValidator_AuthorizationErrorClearsToken(t *testing.T) {
	h := newHarness("T1", 10*time.Second)
	h.mock.CheckSessionFn = func(ctx context.Context, token string) (*api.SessionCheck, error) {
		return nil, &api.AuthorizationError{StatusCode: 401}
	}

	h.validator.Validate(context.Background())
	st := h.waitFor(t, "unauthenticated", func(s Status) bool { return s.State == StateUnauthenticated })

	if st.Token != "" {
		t.Errorf("token = %q, want cleared", st.Token)
	}
	if tokenClears, _ := h.store.counts(); tokenClears != 1 {
		t.Errorf("token clears = %d, want 1", tokenClears)
	}
}

func TestValidator_DecodingErrorKeepsTokenStopsLoading(t *testing.T) {
	h := newHarness("T1", 10*time.Second)
	h.mock.CheckSessionFn = func(ctx context.Context, token string) (*api.SessionCheck, error) {
		return nil, &api.DecodingError{Err: errors.New("unexpected shape")}
	}

	h.validator.Validate(context.Background())
	st := h.waitFor(t, "offline-retry", func(s Status) bool { return s.State == StateOfflineRetry })

	if st.Offline || st.Loading {
		t.Errorf("offline=%v loading=%v, want both false", st.Offline, st.Loading)
	}
	if st.Token != "T1" {
		t.Errorf("token = %q, want T1 kept", st.Token)
	}
	if tokenClears, _ := h.store.counts(); tokenClears != 0 {
		t.Errorf("token clears = %d, want 0", tokenClears)
	}
}

func TestValidator_UnclassifiedErrorClearsToken(t *testing.T) {
	h := newHarness("T1", 10*time.Second)
	h.mock.CheckSessionFn = func(ctx context.Context, token string) (*api.SessionCheck, error) {
		return nil, errors.New("something else entirely")
	}

	h.validator.Validate(context.Background())
	st := h.waitFor(t, "unauthenticated", func(s Status) bool { return s.State == StateUnauthenticated })

	if st.Token != "" {
		t.Errorf("token = %q, want cleared", st.Token)
	}
	if tokenClears, _ := h.store.counts(); tokenClears != 1 {
		t.Errorf("token clears = %d, want 1", tokenClears)
	}
}

func TestValidator_RetryStartsFreshAttempt(t *testing.T) {
	h := newHarness("T1", 30*time.Millisecond)
	releaseFirst := make(chan struct{})
	call := 0
	var mu sync.Mutex
	h.mock.CheckSessionFn = func(ctx context.Context, token string) (*api.SessionCheck, error) {
		mu.Lock()
		call++
		mine := call
		mu.Unlock()
		if mine == 1 {
			<-releaseFirst
			return &api.SessionCheck{Valid: false}, nil
		}
		return &api.SessionCheck{Valid: true}, nil
	}

	h.validator.Validate(context.Background())
	h.waitFor(t, "offline-retry", func(s Status) bool { return s.State == StateOfflineRetry })

	h.validator.Retry(context.Background())
	h.waitFor(t, "authenticated", func(s Status) bool { return s.State == StateAuthenticated })

	// The superseded first attempt finally returns an invalid verdict;
	// it must not disturb the established session.
	close(releaseFirst)
	time.Sleep(100 * time.Millisecond)

	st := h.validator.Status()
	if st.State != StateAuthenticated || st.Token != "T1" {
		t.Errorf("superseded attempt corrupted state: %+v", st)
	}
	if tokenClears, _ := h.store.counts(); tokenClears != 0 {
		t.Errorf("token clears = %d, want 0", tokenClears)
	}
}

func TestValidator_MinClientVersionGate(t *testing.T) {
	h := newHarness("T1", 10*time.Second)
	h.validator.cfg.ClientVersion = "1.2.0"
	h.mock.CheckSessionFn = func(ctx context.Context, token string) (*api.SessionCheck, error) {
		return &api.SessionCheck{Valid: true, MinClientVersion: "2.0.0"}, nil
	}

	h.validator.Validate(context.Background())
	st := h.waitFor(t, "update-required", func(s Status) bool { return s.UpdateRequired })

	if st.State != StateOfflineRetry {
		t.Errorf("state = %s, want offline-retry (retry after update)", st.State)
	}
	if st.Token != "T1" {
		t.Errorf("token = %q, want kept", st.Token)
	}
	if h.loadCount() != 0 {
		t.Errorf("loadUserData ran for an unsupported client")
	}
}

func TestValidator_SetTokenValidatesNewToken(t *testing.T) {
	h := newHarness("", time.Second)
	h.mock.CheckSessionFn = func(ctx context.Context, token string) (*api.SessionCheck, error) {
		if token != "T-NEW" {
			t.Errorf("validated token = %q, want T-NEW", token)
		}
		return &api.SessionCheck{Valid: true}, nil
	}

	h.validator.SetToken(context.Background(), "T-NEW")
	st := h.waitFor(t, "authenticated", func(s Status) bool { return s.State == StateAuthenticated })

	if st.Token != "T-NEW" {
		t.Errorf("token = %q, want T-NEW", st.Token)
	}
}

func TestValidator_Logout(t *testing.T) {
	h := newHarness("T1", 10*time.Second)
	h.mock.CheckSessionFn = func(ctx context.Context, token string) (*api.SessionCheck, error) {
		return &api.SessionCheck{Valid: true}, nil
	}

	h.validator.Validate(context.Background())
	h.waitFor(t, "authenticated", func(s Status) bool { return s.State == StateAuthenticated })

	h.validator.Logout()
	st := h.validator.Status()
	if st.State != StateUnauthenticated || st.Token != "" {
		t.Errorf("after logout: %+v", st)
	}
	if _, userClears := h.store.counts(); userClears != 1 {
		t.Errorf("user data clears = %d, want 1", userClears)
	}
}
