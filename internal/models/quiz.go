package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

type QuestionType string

const (
	MultipleChoice QuestionType = "mcq"
	ShortAnswer    QuestionType = "short"
	Code           QuestionType = "code"
)

// Gradable reports whether the backend grades this question type
// automatically at submission. Code questions are always reviewed manually.
func (t QuestionType) Gradable() bool {
	return t != Code
}

// AnswerKey is a question's correct answer as stored by the backend. Two
// representations coexist on the wire with no migration path: a literal
// option/answer string, or a numeric index into the question's options.
// Neither form is legacy; both must round-trip unchanged.
type AnswerKey struct {
	Text  string
	Index *int
}

func AnswerText(text string) *AnswerKey {
	return &AnswerKey{Text: text}
}

func AnswerIndex(index int) *AnswerKey {
	return &AnswerKey{Index: &index}
}

// IsBlank reports whether the key carries no usable answer.
func (k *AnswerKey) IsBlank() bool {
	if k == nil {
		return true
	}
	return k.Index == nil && k.Text == ""
}

// String renders the key for display and validation messages. An index form
// renders as its decimal digits; resolution against options is the summary
// engine's job.
func (k *AnswerKey) String() string {
	if k == nil {
		return ""
	}
	if k.Index != nil {
		return strconv.Itoa(*k.Index)
	}
	return k.Text
}

func (k AnswerKey) MarshalJSON() ([]byte, error) {
	if k.Index != nil {
		return json.Marshal(*k.Index)
	}
	return json.Marshal(k.Text)
}

func (k *AnswerKey) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*k = AnswerKey{Text: text}
		return nil
	}

	var index int
	if err := json.Unmarshal(data, &index); err == nil {
		*k = AnswerKey{Index: &index}
		return nil
	}

	return fmt.Errorf("correct answer must be a string or an option index, got %s", string(data))
}

type Question struct {
	ID            string       `json:"id,omitempty"`
	QuizID        string       `json:"quizId,omitempty"`
	Type          QuestionType `json:"type" validate:"required,question_type"`
	Prompt        string       `json:"prompt"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer *AnswerKey   `json:"correctAnswer,omitempty"`
	Position      int          `json:"position"`
	CodeSnippet   string       `json:"codeSnippet,omitempty"`
}

// Key returns the question's identifier normalized for map lookups. Answer
// maps and submission details are keyed by this form; numeric and string
// identifiers upstream are interchangeable at this boundary.
func (q Question) Key() string {
	return q.ID
}

type Quiz struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	TimeLimitSeconds int        `json:"timeLimitSeconds,omitempty"`
	IsPublished      bool       `json:"isPublished,omitempty"`
	CreatedAt        *time.Time `json:"createdAt,omitempty"`
	Questions        []Question `json:"questions,omitempty"`
}

// QuizCreateData is the payload for creating quiz metadata; questions are
// added one by one afterwards.
type QuizCreateData struct {
	Title            string `json:"title" validate:"required"`
	Description      string `json:"description" validate:"required"`
	TimeLimitSeconds int    `json:"timeLimitSeconds,omitempty" validate:"omitempty,min=0"`
	IsPublished      bool   `json:"isPublished,omitempty"`
}

// QuestionCreateData is the payload for adding a question to a quiz. Prompt
// carries the codec-encoded value on the wire; CodeSnippet never travels as
// its own field.
type QuestionCreateData struct {
	Type          QuestionType `json:"type" validate:"required,question_type"`
	Prompt        string       `json:"prompt" validate:"required"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer *AnswerKey   `json:"correctAnswer,omitempty"`
	Position      int          `json:"position" validate:"min=0"`
}
