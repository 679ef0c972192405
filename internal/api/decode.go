package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// QuestionList decodes a JSON object of prompt→answer pairs into an
// ordered slice. The backend serializes quiz questions as object keys in
// presentation order; map-based decoding would lose that order, so the
// object is walked token by token instead.
type QuestionList []QuizQuestion

// UnmarshalJSON implements ordered object decoding.
func (q *QuestionList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("questions: expected object, got %v", tok)
	}

	var out []QuizQuestion
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		prompt, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("questions: non-string key %v", keyTok)
		}

		var answer string
		if err := dec.Decode(&answer); err != nil {
			return fmt.Errorf("questions: answer for %q: %w", prompt, err)
		}
		out = append(out, QuizQuestion{Prompt: prompt, Answer: answer})
	}

	if _, err := dec.Token(); err != nil { // closing brace
		return err
	}

	*q = out
	return nil
}

// MarshalJSON writes the questions back as an ordered object.
func (q QuestionList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, question := range q {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(question.Prompt)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(question.Answer)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
