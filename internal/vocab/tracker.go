package vocab

import "sync"

// SessionStore is the subset of the prefs store the tracker needs.
type SessionStore interface {
	VocabSessionID() (string, error)
	SetVocabSessionID(id string) error
}

// SessionTracker resolves the session identifier that mutation calls
// must carry for one generated vocabulary set. Resolution falls through
// a priority chain: the set's primary id, then its fallback id, then the
// identifier persisted from an earlier generation, then empty.
//
// Mutation calls resolve identifiers from command goroutines while the
// UI loop observes freshly generated sets, so the persisted fallback is
// mutex-guarded.
type SessionTracker struct {
	store SessionStore

	mu        sync.Mutex
	persisted string
}

// NewSessionTracker creates a tracker seeded from the persisted
// identifier, if any. A store read failure just starts the tracker
// empty; the persisted fallback is an optimization, not a requirement.
func NewSessionTracker(store SessionStore) *SessionTracker {
	t := &SessionTracker{store: store}
	if store != nil {
		if id, err := store.VocabSessionID(); err == nil {
			t.persisted = id
		}
	}
	return t
}

// Observe records the identifiers carried by a freshly generated set.
// The first non-empty of (primary, fallback) overwrites the persisted
// identifier for all subsequent resolutions. The write-through error is
// returned but the in-memory fallback is updated regardless.
func (t *SessionTracker) Observe(set *Set) error {
	if set == nil {
		return nil
	}
	id := set.QuizSessionID
	if id == "" {
		id = set.SessionID
	}

	t.mu.Lock()
	if id == "" || id == t.persisted {
		t.mu.Unlock()
		return nil
	}
	t.persisted = id
	t.mu.Unlock()

	if t.store == nil {
		return nil
	}
	return t.store.SetVocabSessionID(id)
}

// Resolve returns the session identifier to attach to a mutation call
// for set. Empty means no identifier is available and the mutation's
// precondition fails.
func (t *SessionTracker) Resolve(set *Set) string {
	if set != nil {
		if set.QuizSessionID != "" {
			return set.QuizSessionID
		}
		if set.SessionID != "" {
			return set.SessionID
		}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.persisted
}

// Reset drops the in-memory fallback. Called on logout, after the store
// key has been cleared.
func (t *SessionTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.persisted = ""
}
