package store

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_AuthTokenLifecycle(t *testing.T) {
	s := openTestStore(t)

	tok, err := s.AuthToken()
	if err != nil || tok != "" {
		t.Fatalf("fresh store: AuthToken = (%q, %v), want empty", tok, err)
	}

	if err := s.SetAuthToken("T1"); err != nil {
		t.Fatalf("SetAuthToken: %v", err)
	}
	tok, _ = s.AuthToken()
	if tok != "T1" {
		t.Errorf("AuthToken = %q, want T1", tok)
	}

	if err := s.ClearAuthToken(); err != nil {
		t.Fatalf("ClearAuthToken: %v", err)
	}
	tok, _ = s.AuthToken()
	if tok != "" {
		t.Errorf("AuthToken after clear = %q, want empty", tok)
	}
}

func TestStore_SetOverwrites(t *testing.T) {
	s := openTestStore(t)
	s.SetVocabSessionID("S1")
	s.SetVocabSessionID("S2")

	id, err := s.VocabSessionID()
	if err != nil {
		t.Fatalf("VocabSessionID: %v", err)
	}
	if id != "S2" {
		t.Errorf("VocabSessionID = %q, want S2", id)
	}
}

func TestStore_ProfileRoundTrip(t *testing.T) {
	s := openTestStore(t)

	p, err := s.Profile()
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if p.Complete() {
		t.Error("empty profile reported complete")
	}

	want := Profile{Username: "ada", Phone: "555-0100", Profession: "engineer"}
	if err := s.SetProfile(want); err != nil {
		t.Fatalf("SetProfile: %v", err)
	}

	p, _ = s.Profile()
	if p != want {
		t.Errorf("Profile = %+v, want %+v", p, want)
	}
	if !p.Complete() {
		t.Error("stored profile reported incomplete")
	}
}

func TestStore_ClearUserData(t *testing.T) {
	s := openTestStore(t)
	s.SetAuthToken("T1")
	s.SetVocabSessionID("S1")
	s.SetProfile(Profile{Username: "ada"})

	if err := s.ClearUserData(); err != nil {
		t.Fatalf("ClearUserData: %v", err)
	}

	tok, _ := s.AuthToken()
	id, _ := s.VocabSessionID()
	p, _ := s.Profile()
	if tok != "" || id != "" || p.Complete() {
		t.Errorf("user data survived: token=%q id=%q profile=%+v", tok, id, p)
	}
}
