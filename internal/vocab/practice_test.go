package vocab

import "testing"

func makeItems(clicked, unclicked int) []Item {
	var items []Item
	for i := 0; i < clicked; i++ {
		items = append(items, Item{
			NativeText: "c" + string(rune('A'+i)),
			Clicked:    BoolPtr(true),
		})
	}
	for i := 0; i < unclicked; i++ {
		items = append(items, Item{NativeText: "u" + string(rune('A'+i))})
	}
	return items
}

func TestSelectPractice_Composition(t *testing.T) {
	cases := []struct {
		clicked, unclicked int
	}{
		{0, 0},
		{0, 4},
		{3, 0},
		{3, 4},
		{5, 2},
		{7, 3},
		{12, 12},
	}

	for _, tc := range cases {
		items := makeItems(tc.clicked, tc.unclicked)
		sel := SelectPractice(items)

		if len(sel) != tc.clicked+tc.unclicked {
			t.Errorf("c=%d n=%d: len = %d, want %d", tc.clicked, tc.unclicked, len(sel), tc.clicked+tc.unclicked)
			continue
		}

		// All clicked items come first, in their original order.
		for i := 0; i < tc.clicked; i++ {
			if !sel[i].IsClicked() {
				t.Errorf("c=%d n=%d: sel[%d] not clicked", tc.clicked, tc.unclicked, i)
			}
			if sel[i].NativeText != items[i].NativeText {
				t.Errorf("c=%d n=%d: clicked order broken at %d: got %s", tc.clicked, tc.unclicked, i, sel[i].NativeText)
			}
		}
		// Then all non-clicked.
		for i := tc.clicked; i < len(sel); i++ {
			if sel[i].IsClicked() {
				t.Errorf("c=%d n=%d: sel[%d] clicked in unclicked tail", tc.clicked, tc.unclicked, i)
			}
		}
	}
}

func TestSelectPractice_InterleavedInputKeepsNaturalOrder(t *testing.T) {
	items := []Item{
		{NativeText: "one"},
		{NativeText: "two", Clicked: BoolPtr(true)},
		{NativeText: "three"},
		{NativeText: "four", Clicked: BoolPtr(true)},
		{NativeText: "five", Clicked: BoolPtr(false)},
	}

	sel := SelectPractice(items)
	want := []string{"two", "four", "one", "three", "five"}
	for i, w := range want {
		if sel[i].NativeText != w {
			t.Fatalf("sel[%d] = %s, want %s (full: %v)", i, sel[i].NativeText, w, names(sel))
		}
	}
}

func TestSelectPractice_DoesNotMutateInput(t *testing.T) {
	items := makeItems(7, 3)
	before := names(items)
	SelectPractice(items)
	after := names(items)
	for i := range before {
		if before[i] != after[i] {
			t.Fatal("input slice reordered")
		}
	}
}

func TestUpdateOutcome_PreservesPosition(t *testing.T) {
	sel := SelectPractice(makeItems(3, 3))
	target := sel[2].NativeText

	if !UpdateOutcome(sel, "", target, true, 2) {
		t.Fatal("UpdateOutcome did not find item")
	}
	if sel[2].NativeText != target {
		t.Error("item moved within selection")
	}
	if sel[2].IsCorrect == nil || !*sel[2].IsCorrect {
		t.Error("is_correct not recorded")
	}
	if sel[2].Attempts == nil || *sel[2].Attempts != 2 {
		t.Error("attempts not recorded")
	}
}

func TestUpdateOutcome_MissingItem(t *testing.T) {
	sel := SelectPractice(makeItems(1, 1))
	if UpdateOutcome(sel, "", "nope", false, 1) {
		t.Error("UpdateOutcome reported success for absent item")
	}
}

func TestUpdateOutcome_DuplicateNativeTextAcrossCategories(t *testing.T) {
	// "bank" appears in two categories; only the addressed entry may
	// take the outcome.
	set := &Set{
		Categories: []Category{
			{Name: "finance", Words: []Item{{NativeText: "bank", TargetText: "Bank"}}},
			{Name: "river", Words: []Item{{NativeText: "bank", TargetText: "Ufer"}}},
		},
	}
	sel := SelectPractice(set.Flatten())

	if !UpdateOutcome(sel, "river", "bank", true, 3) {
		t.Fatal("UpdateOutcome did not find river/bank")
	}

	for _, it := range sel {
		switch it.Category {
		case "river":
			if it.IsCorrect == nil || !*it.IsCorrect {
				t.Error("river/bank outcome not recorded")
			}
			if it.Attempts == nil || *it.Attempts != 3 {
				t.Error("river/bank attempts not recorded")
			}
		case "finance":
			if it.IsCorrect != nil || it.Attempts != nil {
				t.Error("finance/bank patched by a river outcome")
			}
		}
	}
}

func names(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.NativeText
	}
	return out
}
