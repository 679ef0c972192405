// Package vocab holds the client-side model of a generated vocabulary
// set, the practice selection ordering, and the quiz session tracker.
//
// Field names on the wire types are dictated by the backend and must not
// be changed.
package vocab

// Item is one word-level record inside a category. Clicked, IsCorrect
// and Attempts are pointers because the backend distinguishes "never
// reported" from an explicit false/zero.
type Item struct {
	NativeText      string `json:"native_text"`
	TargetText      string `json:"target_text"`
	Transliteration string `json:"transliteration,omitempty"`

	Clicked   *bool `json:"clicked,omitempty"`
	IsCorrect *bool `json:"is_correct,omitempty"`
	Attempts  *int  `json:"attempts,omitempty"`

	// Local cache-freshness flags. Never serialized.
	SimilarFetched bool `json:"-"`
	TenseFetched   bool `json:"-"`
	DecompFetched  bool `json:"-"`

	// Category is the owning category's name, stamped by Flatten so
	// detached items stay addressable by (category, native_text). The
	// same native text may appear in more than one category. Never
	// serialized; items inside Category.Words leave it empty.
	Category string `json:"-"`
}

// IsClicked reports whether the item has been explicitly marked clicked.
func (it Item) IsClicked() bool {
	return it.Clicked != nil && *it.Clicked
}

// Category groups the items generated for one topic within a set.
type Category struct {
	Name    string `json:"category"`
	Clicked *bool  `json:"clicked,omitempty"`
	Words   []Item `json:"words"`
}

// IsClicked reports whether the category was explicitly marked clicked.
func (c Category) IsClicked() bool {
	return c.Clicked != nil && *c.Clicked
}

// Set is one generated vocabulary set for a place/context, tagged with
// the quiz session identifiers the backend returned for it.
type Set struct {
	Place      string     `json:"place"`
	Categories []Category `json:"categories"`

	// QuizSessionID is the primary session identifier for this set.
	QuizSessionID string `json:"quiz_session_id"`
	// SessionID is the backend's fallback identifier field.
	SessionID string `json:"session_id"`
}

// Find returns a pointer into the set for the item identified by
// (category, nativeText), or nil if absent.
func (s *Set) Find(category, nativeText string) *Item {
	if s == nil {
		return nil
	}
	for ci := range s.Categories {
		if s.Categories[ci].Name != category {
			continue
		}
		for wi := range s.Categories[ci].Words {
			if s.Categories[ci].Words[wi].NativeText == nativeText {
				return &s.Categories[ci].Words[wi]
			}
		}
	}
	return nil
}

// FindCategory returns a pointer into the set for the named category,
// or nil if absent.
func (s *Set) FindCategory(name string) *Category {
	if s == nil {
		return nil
	}
	for ci := range s.Categories {
		if s.Categories[ci].Name == name {
			return &s.Categories[ci]
		}
	}
	return nil
}

// Clone returns a deep copy of the set. Pointer fields are duplicated so
// mutating the copy never aliases the original.
func (s *Set) Clone() *Set {
	if s == nil {
		return nil
	}
	out := &Set{
		Place:         s.Place,
		QuizSessionID: s.QuizSessionID,
		SessionID:     s.SessionID,
		Categories:    make([]Category, len(s.Categories)),
	}
	for ci, c := range s.Categories {
		words := make([]Item, len(c.Words))
		for wi, w := range c.Words {
			words[wi] = cloneItem(w)
		}
		clicked := c.Clicked
		if clicked != nil {
			v := *clicked
			clicked = &v
		}
		out.Categories[ci] = Category{Name: c.Name, Clicked: clicked, Words: words}
	}
	return out
}

func cloneItem(it Item) Item {
	if it.Clicked != nil {
		v := *it.Clicked
		it.Clicked = &v
	}
	if it.IsCorrect != nil {
		v := *it.IsCorrect
		it.IsCorrect = &v
	}
	if it.Attempts != nil {
		v := *it.Attempts
		it.Attempts = &v
	}
	return it
}

// WithUpdatedItem returns a deep copy of the set with mutate applied to
// the item identified by (category, nativeText). Returns (nil, false) if
// the item does not exist; the receiver is never modified.
func (s *Set) WithUpdatedItem(category, nativeText string, mutate func(*Item)) (*Set, bool) {
	if s.Find(category, nativeText) == nil {
		return nil, false
	}
	out := s.Clone()
	mutate(out.Find(category, nativeText))
	return out, true
}

// WithUpdatedCategory returns a deep copy of the set with mutate
// applied to the named category. Returns (nil, false) if the category
// does not exist; the receiver is never modified.
func (s *Set) WithUpdatedCategory(name string, mutate func(*Category)) (*Set, bool) {
	if s.FindCategory(name) == nil {
		return nil, false
	}
	out := s.Clone()
	mutate(out.FindCategory(name))
	return out, true
}

// Flatten returns all items across categories in their natural
// iteration order (category order, then word order within a category),
// each stamped with its owning category's name.
func (s *Set) Flatten() []Item {
	if s == nil {
		return nil
	}
	var out []Item
	for _, c := range s.Categories {
		for _, w := range c.Words {
			w.Category = c.Name
			out = append(out, w)
		}
	}
	return out
}

// BoolPtr returns a pointer to b. Convenience for building wire payloads.
func BoolPtr(b bool) *bool { return &b }

// IntPtr returns a pointer to n.
func IntPtr(n int) *int { return &n }
