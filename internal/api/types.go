package api

// envelope is the uniform response shape every endpoint returns. Field
// names are the backend's and must be preserved byte-for-byte.
type envelope[T any] struct {
	Success   bool   `json:"success"`
	Data      *T     `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
}

// SessionCheck is the payload of a session validation response.
type SessionCheck struct {
	Valid bool `json:"valid"`

	// MinClientVersion, when set, is the lowest client semver the
	// backend still serves. Compared with the running build before the
	// session is accepted.
	MinClientVersion string `json:"min_client_version,omitempty"`
}

// sessionCheckRequest carries the token under the backend's field name.
type sessionCheckRequest struct {
	SessionToken string `json:"session_token"`
}

// GenerateVocabularyRequest asks the backend for a vocabulary set for
// one place/context.
type GenerateVocabularyRequest struct {
	Place          string `json:"place"`
	NativeLanguage string `json:"native_language"`
	TargetLanguage string `json:"target_language"`
}

// SimilarWord is one entry in a similar-words lookup.
type SimilarWord struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
}

// SimilarWords is the detail payload for a similar-words lookup.
type SimilarWords struct {
	Word    string        `json:"word"`
	Similar []SimilarWord `json:"similar"`
}

// TenseRow is one conjugated form in a tense table.
type TenseRow struct {
	Tense string `json:"tense"`
	Form  string `json:"form"`
}

// TenseTable is the detail payload for a tense-table lookup.
type TenseTable struct {
	Word   string     `json:"word"`
	Tenses []TenseRow `json:"tenses"`
}

// DecompPart is one morphological part of a decomposed word.
type DecompPart struct {
	Part    string `json:"part"`
	Meaning string `json:"meaning"`
}

// Decomposition is the detail payload for a word decomposition lookup,
// identified by the source word and its target-language counterpart.
type Decomposition struct {
	Word       string       `json:"word"`
	TargetWord string       `json:"target_word"`
	Parts      []DecompPart `json:"parts"`
}

// WordProgressUpdate carries only the fields that changed for one word.
type WordProgressUpdate struct {
	QuizSessionID string `json:"quiz_session_id"`
	Category      string `json:"category"`
	NativeText    string `json:"native_text"`
	Clicked       *bool  `json:"clicked,omitempty"`
	IsCorrect     *bool  `json:"is_correct,omitempty"`
	Attempts      *int   `json:"attempts,omitempty"`
}

// CategoryProgressUpdate mutates category-level tracked state.
type CategoryProgressUpdate struct {
	QuizSessionID string `json:"quiz_session_id"`
	Category      string `json:"category"`
	Clicked       *bool  `json:"clicked,omitempty"`
}

// quizRequest asks for a quiz over the current vocabulary set.
type quizRequest struct {
	QuizSessionID string `json:"quiz_session_id"`
}

// Quiz is a generated quiz. Question order is the backend's insertion
// order, recovered at decode time (see QuestionList).
type Quiz struct {
	QuizSessionID string       `json:"quiz_session_id"`
	Questions     QuestionList `json:"questions"`
}

// QuizQuestion is a single prompt/answer pair.
type QuizQuestion struct {
	Prompt string
	Answer string
}
