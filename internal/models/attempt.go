package models

import (
	"strconv"
	"time"
)

type Attempt struct {
	ID          string          `json:"id"`
	QuizID      string          `json:"quizId"`
	StartedAt   time.Time       `json:"startedAt"`
	SubmittedAt *time.Time      `json:"submittedAt,omitempty"`
	Score       *int            `json:"score,omitempty"`
	Quiz        *Quiz           `json:"quiz,omitempty"`
	Answers     []AttemptAnswer `json:"answers,omitempty"`
}

type AttemptAnswer struct {
	ID         string `json:"id"`
	AttemptID  string `json:"attemptId"`
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
	IsCorrect  *bool  `json:"isCorrect,omitempty"`
}

// SubmissionDetail is one backend-produced per-question grading outcome.
// The backend identifies questions numerically here even though question
// records carry string identifiers; QuestionKey normalizes the two.
type SubmissionDetail struct {
	QuestionID int64  `json:"questionId"`
	Correct    bool   `json:"correct"`
	Expected   string `json:"expected,omitempty"`
}

// QuestionKey returns the detail's question identifier in the normalized
// string form used by answer maps and detail lookups.
func (d SubmissionDetail) QuestionKey() string {
	return strconv.FormatInt(d.QuestionID, 10)
}

// SubmissionResult is the grading backend's response to a final submit.
// Score counts correct gradable answers and is trusted as-is; this client
// never re-grades locally.
type SubmissionResult struct {
	Score   int                `json:"score"`
	Details []SubmissionDetail `json:"details"`
}

// DetailByQuestion builds the per-question lookup keyed by normalized
// question identifier. Later duplicates win, matching backend upsert order.
func (r SubmissionResult) DetailByQuestion() map[string]SubmissionDetail {
	lookup := make(map[string]SubmissionDetail, len(r.Details))
	for _, detail := range r.Details {
		lookup[detail.QuestionKey()] = detail
	}
	return lookup
}
