package api

import (
	"encoding/json"
	"testing"
)

func TestQuestionList_PreservesInsertionOrder(t *testing.T) {
	// Keys deliberately out of lexical order.
	raw := `{"zebra?":"Zebra","apple?":"Apfel","mouse?":"Maus"}`

	var qs QuestionList
	if err := json.Unmarshal([]byte(raw), &qs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := []QuizQuestion{
		{Prompt: "zebra?", Answer: "Zebra"},
		{Prompt: "apple?", Answer: "Apfel"},
		{Prompt: "mouse?", Answer: "Maus"},
	}
	if len(qs) != len(want) {
		t.Fatalf("len = %d, want %d", len(qs), len(want))
	}
	for i := range want {
		if qs[i] != want[i] {
			t.Errorf("qs[%d] = %+v, want %+v", i, qs[i], want[i])
		}
	}
}

func TestQuestionList_EmptyObject(t *testing.T) {
	var qs QuestionList
	if err := json.Unmarshal([]byte(`{}`), &qs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(qs) != 0 {
		t.Errorf("len = %d, want 0", len(qs))
	}
}

func TestQuestionList_RejectsNonObject(t *testing.T) {
	var qs QuestionList
	if err := json.Unmarshal([]byte(`["a","b"]`), &qs); err == nil {
		t.Error("array accepted as question object")
	}
}

func TestQuestionList_RoundTrip(t *testing.T) {
	in := QuestionList{
		{Prompt: "b?", Answer: "B"},
		{Prompt: "a?", Answer: "A"},
	}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out QuestionList
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 2 || out[0] != in[0] || out[1] != in[1] {
		t.Errorf("round trip lost order: %+v", out)
	}
}

func TestQuiz_DecodeWithinEnvelope(t *testing.T) {
	raw := `{"success":true,"data":{"quiz_session_id":"Q9","questions":{"dog?":"Hund","cat?":"Katze"}}}`

	var env envelope[Quiz]
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.Data == nil || env.Data.QuizSessionID != "Q9" {
		t.Fatalf("envelope data = %+v", env.Data)
	}
	if env.Data.Questions[0].Prompt != "dog?" || env.Data.Questions[1].Prompt != "cat?" {
		t.Errorf("question order lost: %+v", env.Data.Questions)
	}
}
