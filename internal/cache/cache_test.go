package cache

import "testing"

func TestCache_GetMissThenHit(t *testing.T) {
	c := New[string, int]()

	if _, ok := c.Get("haus"); ok {
		t.Fatal("Get on empty cache reported a hit")
	}

	c.Put("haus", 7)
	v, ok := c.Get("haus")
	if !ok || v != 7 {
		t.Errorf("Get = (%d, %v), want (7, true)", v, ok)
	}
}

func TestCache_PutReplacesWholesale(t *testing.T) {
	c := New[string, []string]()
	c.Put("gehen", []string{"ging"})
	c.Put("gehen", []string{"ging", "gegangen"})

	v, _ := c.Get("gehen")
	if len(v) != 2 {
		t.Errorf("entry not replaced: got %v", v)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestCache_Clear(t *testing.T) {
	c := New[string, string]()
	c.Put("a", "x")
	c.Put("b", "y")
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Error("entry survived Clear")
	}
}

func TestPairKey_DistinguishesBoundaries(t *testing.T) {
	// "ab"+"c" must not collide with "a"+"bc".
	if PairKey("ab", "c") == PairKey("a", "bc") {
		t.Error("composite keys collide across word boundaries")
	}
	if PairKey("haus", "house") != PairKey("haus", "house") {
		t.Error("composite key not deterministic")
	}
}
