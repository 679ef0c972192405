package state

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/abhisek/lingua/internal/api"
	"github.com/abhisek/lingua/internal/vocab"
)

func newTestApp(t *testing.T) (*App, *api.MockClient) {
	t.Helper()
	mock := api.NewMockClient()
	a, err := New(Options{Client: mock})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a, mock
}

func TestApp_SimilarWordsCacheHitSkipsNetwork(t *testing.T) {
	a, mock := newTestApp(t)
	mock.SimilarWordsFn = func(ctx context.Context, word string) (*api.SimilarWords, error) {
		return &api.SimilarWords{Word: word}, nil
	}

	ctx := context.Background()
	if _, err := a.SimilarWords(ctx, "haus"); err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	if _, err := a.SimilarWords(ctx, "haus"); err != nil {
		t.Fatalf("second lookup: %v", err)
	}

	if got := mock.Calls("SimilarWords"); got != 1 {
		t.Errorf("network calls = %d, want 1", got)
	}
}

func TestApp_FetchFailureNotCached(t *testing.T) {
	a, mock := newTestApp(t)
	fail := true
	mock.TenseTableFn = func(ctx context.Context, word string) (*api.TenseTable, error) {
		if fail {
			return nil, &api.ConnectivityError{Err: errors.New("down")}
		}
		return &api.TenseTable{Word: word}, nil
	}

	ctx := context.Background()
	if _, err := a.TenseTable(ctx, "gehen"); err == nil {
		t.Fatal("expected failure")
	}
	fail = false
	if _, err := a.TenseTable(ctx, "gehen"); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
	if got := mock.Calls("TenseTable"); got != 2 {
		t.Errorf("network calls = %d, want 2", got)
	}
}

func TestApp_DecomposeUsesCompositeKey(t *testing.T) {
	a, mock := newTestApp(t)
	mock.DecomposeFn = func(ctx context.Context, word, target string) (*api.Decomposition, error) {
		return &api.Decomposition{Word: word, TargetWord: target}, nil
	}

	ctx := context.Background()
	a.Decompose(ctx, "haus", "house")
	a.Decompose(ctx, "haus", "casa") // different target: separate entry

	if got := mock.Calls("Decompose"); got != 2 {
		t.Errorf("network calls = %d, want 2", got)
	}

	a.Decompose(ctx, "haus", "house")
	if got := mock.Calls("Decompose"); got != 2 {
		t.Errorf("cache miss on identical pair: calls = %d, want 2", got)
	}
}

func TestApp_SetVocabularySceneChangeClearsCaches(t *testing.T) {
	a, mock := newTestApp(t)
	mock.SimilarWordsFn = func(ctx context.Context, word string) (*api.SimilarWords, error) {
		return &api.SimilarWords{Word: word}, nil
	}

	a.SetVocabulary(&vocab.Set{Place: "airport", QuizSessionID: "Q1"})
	a.SimilarWords(context.Background(), "haus")

	// Same place: cache survives.
	a.SetVocabulary(&vocab.Set{Place: "airport", QuizSessionID: "Q2"})
	if a.SimilarCache.Len() != 1 {
		t.Error("cache cleared on same-place regeneration")
	}

	// New place: cache cleared.
	a.SetVocabulary(&vocab.Set{Place: "cafe", QuizSessionID: "Q3"})
	if a.SimilarCache.Len() != 0 {
		t.Error("cache survived a scene change")
	}
}

func TestApp_SetVocabularyObservesSessionID(t *testing.T) {
	a, _ := newTestApp(t)
	a.SetVocabulary(&vocab.Set{Place: "airport", QuizSessionID: "Q1"})
	a.SetVocabulary(&vocab.Set{Place: "airport"}) // no id on this one

	if got := a.Tracker.Resolve(a.VocabularySet()); got != "Q1" {
		t.Errorf("Resolve = %q, want fallback Q1", got)
	}
}

func TestApp_ClearUserData(t *testing.T) {
	a, mock := newTestApp(t)
	mock.SimilarWordsFn = func(ctx context.Context, word string) (*api.SimilarWords, error) {
		return &api.SimilarWords{Word: word}, nil
	}

	a.SetVocabulary(&vocab.Set{Place: "airport", QuizSessionID: "Q1"})
	a.SetPracticeSelection([]vocab.Item{{NativeText: "x"}})
	a.SimilarWords(context.Background(), "haus")

	a.ClearUserData()

	if a.VocabularySet() != nil || a.PracticeSelection() != nil {
		t.Error("vocabulary state survived teardown")
	}
	if a.SimilarCache.Len() != 0 {
		t.Error("caches survived teardown")
	}
	if got := a.Tracker.Resolve(nil); got != "" {
		t.Errorf("tracker fallback survived teardown: %q", got)
	}
}

// Detail lookups run on command goroutines while scene changes happen
// on the UI loop. Run under -race.
func TestApp_DetailLookupsDuringSceneChanges(t *testing.T) {
	a, mock := newTestApp(t)
	mock.SimilarWordsFn = func(ctx context.Context, word string) (*api.SimilarWords, error) {
		return &api.SimilarWords{Word: word}, nil
	}

	ctx := context.Background()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			if _, err := a.SimilarWords(ctx, "wort"+strconv.Itoa(i%5)); err != nil {
				t.Errorf("SimilarWords: %v", err)
				return
			}
		}
	}()

	places := []string{"airport", "cafe"}
	for i := 0; i < 200; i++ {
		a.SetVocabulary(&vocab.Set{Place: places[i%2], QuizSessionID: "Q1"})
	}
	wg.Wait()

	if _, err := a.SimilarWords(ctx, "wort0"); err != nil {
		t.Fatalf("lookup after churn: %v", err)
	}
}

// Mutations replace the snapshot from command goroutines while the UI
// loop keeps reading it. Run under -race.
func TestApp_MarkClickedDuringSnapshotReads(t *testing.T) {
	a, mock := newTestApp(t)
	mock.UpdateWordProgressFn = func(ctx context.Context, upd api.WordProgressUpdate) error {
		return nil
	}

	const words = 50
	set := &vocab.Set{Place: "market", QuizSessionID: "Q1"}
	cat := vocab.Category{Name: "nouns"}
	for i := 0; i < words; i++ {
		cat.Words = append(cat.Words, vocab.Item{
			NativeText: "word" + strconv.Itoa(i),
			TargetText: "Wort" + strconv.Itoa(i),
		})
	}
	set.Categories = []vocab.Category{cat}
	a.SetVocabulary(set)

	ctx := context.Background()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < words; i++ {
			if err := a.Mutator.MarkClicked(ctx, "nouns", "word"+strconv.Itoa(i)); err != nil {
				t.Errorf("MarkClicked: %v", err)
				return
			}
		}
	}()

	for i := 0; i < words*4; i++ {
		if s := a.VocabularySet(); s != nil {
			_ = s.Find("nouns", "word0")
		}
		_ = a.PracticeSelection()
	}
	wg.Wait()

	final := a.VocabularySet()
	for i := 0; i < words; i++ {
		if it := final.Find("nouns", "word"+strconv.Itoa(i)); it == nil || !it.IsClicked() {
			t.Fatalf("word%d not clicked in final snapshot", i)
		}
	}
}
