// Package auth owns session-token validity. A validation attempt races
// a fixed wall-clock deadline against the backend's session check; a
// single-resolution latch per attempt keeps the two from producing
// contradictory state, and a late-but-valid response is still accepted
// so a slow network never strands a user with a real session.
package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/mod/semver"

	"github.com/abhisek/lingua/internal/api"
)

// DefaultTimeout is the per-attempt deadline. Shorter than the
// transport's own timeout on purpose: the UI needs an answer sooner
// than the transport is willing to give up.
const DefaultTimeout = 25 * time.Second

// TokenStore is the subset of the prefs store the validator needs.
type TokenStore interface {
	ClearAuthToken() error
	ClearUserData() error
}

// Config configures a Validator.
type Config struct {
	// Timeout per validation attempt. Zero means DefaultTimeout.
	Timeout time.Duration

	// ClientVersion is this build's semver, checked against the
	// backend's min_client_version. Empty disables the gate.
	ClientVersion string
}

// Hooks are the validator's outward effects, all invoked on completed
// transitions (never while an internal lock is held).
type Hooks struct {
	// OnChange receives every externally visible status change.
	OnChange func(Status)

	// LoadUserData is triggered once when a session is confirmed valid.
	LoadUserData func()

	// ClearUserData drops locally held user-scoped state (caches,
	// vocabulary snapshot). Invoked alongside the store-level clear.
	ClearUserData func()
}

// Validator decides whether the held token still represents a valid
// session. All state transitions go through it.
type Validator struct {
	client api.Client
	store  TokenStore
	cfg    Config
	hooks  Hooks

	mu      sync.Mutex
	status  Status
	current *attempt
}

// attempt is the latch for one validation attempt. Only the first of
// {timer fires, network completes} may change loading/offline state;
// whether the second still acts depends on the outcome (see handleResult).
type attempt struct {
	timer     *time.Timer
	timedOut  bool
	completed bool
}

// NewValidator creates a Validator. token is the persisted token loaded
// at process start; the initial state is Unknown.
func NewValidator(client api.Client, store TokenStore, token string, cfg Config, hooks Hooks) *Validator {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Validator{
		client: client,
		store:  store,
		cfg:    cfg,
		hooks:  hooks,
		status: Status{State: StateUnknown, Token: token},
	}
}

// Status returns the current session status snapshot.
func (v *Validator) Status() Status {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

// Validate starts a validation attempt for the currently held token.
// With an empty token it resolves Unauthenticated synchronously, issues
// no network call, and clears all user-scoped data.
func (v *Validator) Validate(ctx context.Context) {
	v.mu.Lock()
	token := v.status.Token

	if token == "" {
		v.current = nil
		v.status = Status{State: StateUnauthenticated}
		st := v.status
		v.mu.Unlock()

		v.clearUserData()
		v.notify(st)
		return
	}

	v.status = Status{State: StateValidating, Token: token, Loading: true}
	a := &attempt{}
	v.current = a
	a.timer = time.AfterFunc(v.cfg.Timeout, func() { v.handleTimeout(a) })
	st := v.status
	v.mu.Unlock()

	v.notify(st)

	go func() {
		res, err := v.client.CheckSession(ctx, token)
		v.handleResult(a, res, err)
	}()
}

// SetToken installs a freshly entered token and validates it. The
// caller persists the token; the validator only tracks it in memory.
func (v *Validator) SetToken(ctx context.Context, token string) {
	v.mu.Lock()
	v.status.Token = token
	v.mu.Unlock()
	v.Validate(ctx)
}

// Retry restarts validation after an offline outcome. Each retry is a
// fresh attempt with its own latch; a previous attempt still in flight
// becomes a no-op on completion.
func (v *Validator) Retry(ctx context.Context) {
	v.Validate(ctx)
}

// Logout clears the token and all user-scoped state and re-enters
// Unauthenticated. An in-flight attempt is abandoned.
func (v *Validator) Logout() {
	v.mu.Lock()
	v.current = nil
	v.status = Status{State: StateUnauthenticated}
	st := v.status
	v.mu.Unlock()

	v.clearUserData()
	v.notify(st)
}

// handleTimeout marks the attempt offline if the network has not
// answered yet. The token stays untouched: the call may still be in
// flight and later prove valid.
func (v *Validator) handleTimeout(a *attempt) {
	v.mu.Lock()
	if v.current != a || a.completed {
		v.mu.Unlock()
		return
	}
	a.timedOut = true
	v.status.State = StateOfflineRetry
	v.status.Offline = true
	// Loading stays true so the UI shows the retry affordance.
	st := v.status
	v.mu.Unlock()

	v.notify(st)
}

// handleResult applies the network outcome. Runs at most once per
// attempt; a superseded attempt's completion is discarded entirely.
func (v *Validator) handleResult(a *attempt, res *api.SessionCheck, err error) {
	v.mu.Lock()
	if v.current != a || a.completed {
		v.mu.Unlock()
		return
	}
	a.completed = true
	a.timer.Stop()

	if err == nil && res != nil {
		if res.Valid {
			v.resolveValid(a, res)
			return // resolveValid unlocks
		}
		v.resolveInvalid(a)
		return
	}

	if err == nil {
		// success with no payload: contract drift.
		err = &api.DecodingError{Err: errors.New("session check returned no data")}
	}
	v.resolveError(a, err)
}

// resolveValid accepts a valid session, even when the timer already
// fired — leaving a user with a provably valid session stuck on a retry
// screen would be strictly worse. Called with v.mu held; unlocks.
func (v *Validator) resolveValid(a *attempt, res *api.SessionCheck) {
	if v.outdated(res.MinClientVersion) {
		v.status.State = StateOfflineRetry
		v.status.Offline = false
		v.status.Loading = false
		v.status.UpdateRequired = true
		st := v.status
		v.mu.Unlock()
		v.notify(st)
		return
	}

	v.status = Status{State: StateAuthenticated, Token: v.status.Token}
	st := v.status
	v.mu.Unlock()

	v.notify(st)
	if v.hooks.LoadUserData != nil {
		v.hooks.LoadUserData()
	}
}

// resolveInvalid handles an explicit invalid-session verdict. A late
// verdict is suppressed: the user may already be retrying through a
// separate path, and clearing the token now could log out a session
// that has since been re-established. Called with v.mu held; unlocks.
func (v *Validator) resolveInvalid(a *attempt) {
	if a.timedOut {
		v.mu.Unlock()
		return
	}

	v.status = Status{State: StateUnauthenticated}
	st := v.status
	v.mu.Unlock()

	v.clearUserData()
	v.notify(st)
}

// resolveError classifies a failed session check. Called with v.mu
// held; unlocks.
func (v *Validator) resolveError(a *attempt, err error) {
	if a.timedOut {
		// Same rationale as a late invalid verdict: leave the retry
		// state exactly as the timer left it.
		v.mu.Unlock()
		return
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		// The caller tore down the attempt; nothing to conclude about
		// the session.
		v.mu.Unlock()
		return
	}

	var connErr *api.ConnectivityError
	var authErr *api.AuthorizationError
	var decErr *api.DecodingError

	switch {
	case errors.As(err, &connErr):
		// Retry is expected to succeed later without re-login.
		v.status.State = StateOfflineRetry
		v.status.Offline = true
		v.status.Loading = true
		st := v.status
		v.mu.Unlock()
		v.notify(st)

	case errors.As(err, &authErr):
		v.status = Status{State: StateUnauthenticated}
		st := v.status
		v.mu.Unlock()
		v.clearToken()
		v.notify(st)

	case errors.As(err, &decErr):
		// Ambiguous: could be a transient API contract issue, not proof
		// of an invalid session. Stop loading, keep the token.
		v.status.State = StateOfflineRetry
		v.status.Offline = false
		v.status.Loading = false
		st := v.status
		v.mu.Unlock()
		v.notify(st)

	default:
		// Unclassified failures are treated conservatively as an
		// invalid session.
		v.status = Status{State: StateUnauthenticated}
		st := v.status
		v.mu.Unlock()
		v.clearToken()
		v.notify(st)
	}
}

// outdated reports whether the backend's minimum client version is
// newer than this build.
func (v *Validator) outdated(minVersion string) bool {
	if v.cfg.ClientVersion == "" || minVersion == "" {
		return false
	}
	have := canonicalVersion(v.cfg.ClientVersion)
	want := canonicalVersion(minVersion)
	if !semver.IsValid(have) || !semver.IsValid(want) {
		return false
	}
	return semver.Compare(have, want) < 0
}

func canonicalVersion(s string) string {
	if !strings.HasPrefix(s, "v") {
		s = "v" + s
	}
	return s
}

// clearToken drops only the persisted token.
func (v *Validator) clearToken() {
	if v.store != nil {
		v.store.ClearAuthToken()
	}
}

// clearUserData clears the store-level and in-memory user-scoped state.
func (v *Validator) clearUserData() {
	if v.store != nil {
		v.store.ClearUserData()
	}
	if v.hooks.ClearUserData != nil {
		v.hooks.ClearUserData()
	}
}

func (v *Validator) notify(st Status) {
	if v.hooks.OnChange != nil {
		v.hooks.OnChange(st)
	}
}
