package vocab

// clickedLead is how many clicked items are surfaced at the head of a
// practice selection before the remaining clicked items follow.
const clickedLead = 5

// SelectPractice orders items for a practice flow: the first
// min(clicked, 5) clicked items in their natural order, then any clicked
// items beyond the first five, then every non-clicked item. The result
// is pure — re-derivable at any time from the same input.
func SelectPractice(items []Item) []Item {
	var lead, restClicked, unclicked []Item
	for _, it := range items {
		switch {
		case it.IsClicked() && len(lead) < clickedLead:
			lead = append(lead, it)
		case it.IsClicked():
			restClicked = append(restClicked, it)
		default:
			unclicked = append(unclicked, it)
		}
	}

	out := make([]Item, 0, len(items))
	out = append(out, lead...)
	out = append(out, restClicked...)
	out = append(out, unclicked...)
	return out
}

// UpdateOutcome patches a single item's practice outcome in place,
// preserving its position in the selection. The item is addressed by
// (category, nativeText): the same native text may occur in more than
// one category, and only the addressed entry may change. Returns false
// if the item is not in the selection.
func UpdateOutcome(selection []Item, category, nativeText string, isCorrect bool, attempts int) bool {
	for i := range selection {
		if selection[i].Category == category && selection[i].NativeText == nativeText {
			selection[i].IsCorrect = BoolPtr(isCorrect)
			selection[i].Attempts = IntPtr(attempts)
			return true
		}
	}
	return false
}
