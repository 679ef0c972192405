// Package state owns the client's shared runtime state: session status,
// the cached vocabulary snapshot, the practice selection, and the three
// word-detail caches. One App is constructed at process start and
// passed to every component that needs session or cache access; its
// lifecycle (construction, logout teardown) is explicit.
package state

import (
	"context"
	"sync"

	"github.com/abhisek/lingua/internal/api"
	"github.com/abhisek/lingua/internal/auth"
	"github.com/abhisek/lingua/internal/cache"
	"github.com/abhisek/lingua/internal/progress"
	"github.com/abhisek/lingua/internal/store"
	"github.com/abhisek/lingua/internal/vocab"
)

// Options configures App construction.
type Options struct {
	Store  *store.Store
	Client api.Client

	// Version is this build's semver, for the backend's minimum
	// client version gate.
	Version string

	// Auth overrides validator settings (timeout). Zero values keep
	// the defaults.
	Auth auth.Config
}

// App is the single shared state holder. Detail lookups and mutations
// run on command goroutines concurrently with the UI loop's reads, and
// the validator's hooks fire from its network goroutine, so everything
// mutable behind App is guarded by one mutex. The caches themselves
// stay lock-free; all access to them goes through App methods.
type App struct {
	Store   *store.Store
	Client  api.Client
	Session *auth.Validator
	Tracker *vocab.SessionTracker
	Mutator *progress.Mutator

	// Guarded by mu. Exposed for single-goroutine test inspection;
	// concurrent access must go through the App methods.
	SimilarCache *cache.Cache[string, *api.SimilarWords]
	TenseCache   *cache.Cache[string, *api.TenseTable]
	DecompCache  *cache.Cache[string, *api.Decomposition]

	mu        sync.Mutex
	vocabSet  *vocab.Set
	selection []vocab.Item
	profile   store.Profile

	listenerMu sync.Mutex
	onStatus   func(auth.Status)
	onLoad     func()
}

var _ progress.Snapshot = (*App)(nil)

// New builds the app context from persisted state. The session starts
// in Unknown with the persisted token loaded; Validate drives it from
// there.
func New(opts Options) (*App, error) {
	a := &App{
		Store:        opts.Store,
		Client:       opts.Client,
		SimilarCache: cache.New[string, *api.SimilarWords](),
		TenseCache:   cache.New[string, *api.TenseTable](),
		DecompCache:  cache.New[string, *api.Decomposition](),
	}

	token := ""
	var sessionStore vocab.SessionStore
	var tokenStore auth.TokenStore
	if opts.Store != nil {
		var err error
		if token, err = opts.Store.AuthToken(); err != nil {
			return nil, err
		}
		if a.profile, err = opts.Store.Profile(); err != nil {
			return nil, err
		}
		sessionStore = opts.Store
		tokenStore = opts.Store
	}

	a.Tracker = vocab.NewSessionTracker(sessionStore)
	a.Mutator = progress.New(opts.Client, a.Tracker, a)

	cfg := opts.Auth
	cfg.ClientVersion = opts.Version
	a.Session = auth.NewValidator(opts.Client, tokenStore, token, cfg, auth.Hooks{
		OnChange:      a.notifyStatus,
		LoadUserData:  a.notifyLoad,
		ClearUserData: a.ClearUserData,
	})

	return a, nil
}

// SetListeners wires session callbacks to the UI layer. Called once
// before validation starts; the callbacks receive values only and may
// be invoked from network goroutines.
func (a *App) SetListeners(onStatus func(auth.Status), onLoad func()) {
	a.listenerMu.Lock()
	defer a.listenerMu.Unlock()
	a.onStatus = onStatus
	a.onLoad = onLoad
}

func (a *App) notifyStatus(st auth.Status) {
	a.listenerMu.Lock()
	fn := a.onStatus
	a.listenerMu.Unlock()
	if fn != nil {
		fn(st)
	}
}

func (a *App) notifyLoad() {
	a.listenerMu.Lock()
	fn := a.onLoad
	a.listenerMu.Unlock()
	if fn != nil {
		fn()
	}
}

// Profile returns the loaded profile fields.
func (a *App) Profile() store.Profile {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.profile
}

// ReloadProfile re-reads profile fields from the store. Called when
// user data loading proceeds after authentication.
func (a *App) ReloadProfile() error {
	if a.Store == nil {
		return nil
	}
	p, err := a.Store.Profile()
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.profile = p
	a.mu.Unlock()
	return nil
}

// VocabularySet returns the current cached vocabulary snapshot.
func (a *App) VocabularySet() *vocab.Set {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.vocabSet
}

// ReplaceVocabularySet swaps in a new snapshot wholesale. Used by the
// mutator after an acknowledged change.
func (a *App) ReplaceVocabularySet(set *vocab.Set) {
	a.mu.Lock()
	a.vocabSet = set
	a.mu.Unlock()
}

// SetVocabulary installs a freshly generated set. Changing scene
// (place) clears the word-detail caches so stale lookups from one
// context do not leak into another; the tracker observes the set's
// session identifiers either way.
func (a *App) SetVocabulary(set *vocab.Set) {
	a.mu.Lock()
	if a.vocabSet != nil && set != nil && a.vocabSet.Place != set.Place {
		a.clearWordCachesLocked()
	}
	a.vocabSet = set
	a.selection = nil
	a.mu.Unlock()

	a.Tracker.Observe(set)
}

// PracticeSelection returns the current practice ordering.
func (a *App) PracticeSelection() []vocab.Item {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.selection
}

// SetPracticeSelection replaces the practice ordering.
func (a *App) SetPracticeSelection(sel []vocab.Item) {
	a.mu.Lock()
	a.selection = sel
	a.mu.Unlock()
}

// SimilarWords resolves the similar-words detail for word, consulting
// the cache before the network. The lock is not held across the network
// call.
func (a *App) SimilarWords(ctx context.Context, word string) (*api.SimilarWords, error) {
	a.mu.Lock()
	cached, ok := a.SimilarCache.Get(word)
	a.mu.Unlock()
	if ok {
		return cached, nil
	}

	res, err := a.Client.SimilarWords(ctx, word)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.SimilarCache.Put(word, res)
	a.mu.Unlock()
	return res, nil
}

// TenseTable resolves the tense table for word, cache first.
func (a *App) TenseTable(ctx context.Context, word string) (*api.TenseTable, error) {
	a.mu.Lock()
	cached, ok := a.TenseCache.Get(word)
	a.mu.Unlock()
	if ok {
		return cached, nil
	}

	res, err := a.Client.TenseTable(ctx, word)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.TenseCache.Put(word, res)
	a.mu.Unlock()
	return res, nil
}

// Decompose resolves the decomposition for (word, targetWord), cache
// first. The cache key composes both strings.
func (a *App) Decompose(ctx context.Context, word, targetWord string) (*api.Decomposition, error) {
	key := cache.PairKey(word, targetWord)

	a.mu.Lock()
	cached, ok := a.DecompCache.Get(key)
	a.mu.Unlock()
	if ok {
		return cached, nil
	}

	res, err := a.Client.Decompose(ctx, word, targetWord)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.DecompCache.Put(key, res)
	a.mu.Unlock()
	return res, nil
}

// ClearWordCaches drops all three detail caches.
func (a *App) ClearWordCaches() {
	a.mu.Lock()
	a.clearWordCachesLocked()
	a.mu.Unlock()
}

// clearWordCachesLocked requires a.mu held.
func (a *App) clearWordCachesLocked() {
	a.SimilarCache.Clear()
	a.TenseCache.Clear()
	a.DecompCache.Clear()
}

// ClearUserData tears down everything user-scoped: caches, vocabulary
// snapshot, selection, profile, and the tracker's in-memory fallback.
// Store-level clearing is the caller's (validator's) concern.
func (a *App) ClearUserData() {
	a.mu.Lock()
	a.clearWordCachesLocked()
	a.vocabSet = nil
	a.selection = nil
	a.profile = store.Profile{}
	a.mu.Unlock()

	a.Tracker.Reset()
}
