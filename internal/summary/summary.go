// Package summary derives the displayable result of a graded attempt from
// three inputs: the quiz definition, the backend's submission result and the
// learner's raw answers. Build is pure and total; any structurally valid
// input yields a summary.
package summary

import (
	"strings"

	"github.com/quizforge/quiz-core/internal/models"
)

// Status classifies one question's outcome on a finished attempt.
type Status string

const (
	StatusCorrect    Status = "correct"
	StatusIncorrect  Status = "incorrect"
	StatusUnanswered Status = "unanswered"
	StatusPending    Status = "pending"
)

// AnswerPlaceholder is displayed in place of a blank or missing answer.
const AnswerPlaceholder = "—"

// FormattedQuestionResult is the per-question view of an attempt summary.
// CorrectAnswer is always present (empty string when unknown) so rendering
// never needs a nil check.
type FormattedQuestionResult struct {
	Question      models.Question `json:"question"`
	Status        Status          `json:"status"`
	UserAnswer    string          `json:"userAnswer"`
	CorrectAnswer string          `json:"correctAnswer"`
	Expected      string          `json:"expected,omitempty"`
}

// AttemptSummary is recomputed on every render and never persisted.
type AttemptSummary struct {
	TotalQuestions   int                       `json:"totalQuestions"`
	GradedQuestions  int                       `json:"gradedQuestions"`
	PendingReview    int                       `json:"pendingReview"`
	Score            int                       `json:"score"`
	IncorrectAnswers int                       `json:"incorrectAnswers"`
	Percentage       float64                   `json:"percentage"`
	Questions        []FormattedQuestionResult `json:"questions"`
}

// Build assembles the attempt summary. The score is trusted from the grading
// backend; nothing is re-graded locally. Answers are keyed by normalized
// (stringified) question identifier.
func Build(quiz models.Quiz, result models.SubmissionResult, answers map[string]string) AttemptSummary {
	totalQuestions := len(quiz.Questions)

	gradedQuestions := 0
	for _, question := range quiz.Questions {
		if question.Type.Gradable() {
			gradedQuestions++
		}
	}
	pendingReview := totalQuestions - gradedQuestions

	score := result.Score

	// Derived upper bound, not a per-question tally: a graded question left
	// unanswered still lands in this bucket.
	incorrectAnswers := gradedQuestions - score
	if incorrectAnswers < 0 {
		incorrectAnswers = 0
	}

	percentage := 0.0
	if gradedQuestions > 0 {
		percentage = float64(score) / float64(gradedQuestions) * 100
	}

	detailByQuestion := result.DetailByQuestion()

	questions := make([]FormattedQuestionResult, 0, totalQuestions)
	for _, question := range quiz.Questions {
		detail, found := detailByQuestion[question.Key()]
		answer := answers[question.Key()]

		expected := ""
		if found {
			expected = detail.Expected
		}

		questions = append(questions, FormattedQuestionResult{
			Question:      question,
			Status:        determineStatus(question, answer, detail, found),
			UserAnswer:    formatAnswer(answer),
			CorrectAnswer: deriveCorrectAnswer(question, expected),
			Expected:      expected,
		})
	}

	return AttemptSummary{
		TotalQuestions:   totalQuestions,
		GradedQuestions:  gradedQuestions,
		PendingReview:    pendingReview,
		Score:            score,
		IncorrectAnswers: incorrectAnswers,
		Percentage:       percentage,
		Questions:        questions,
	}
}

// determineStatus applies the status rule in order: blank answer, code type,
// missing detail, then the backend verdict. A gradable question whose detail
// is absent is pending, not incorrect — partial or delayed grading is normal.
func determineStatus(question models.Question, answer string, detail models.SubmissionDetail, found bool) Status {
	if strings.TrimSpace(answer) == "" {
		return StatusUnanswered
	}

	if question.Type == models.Code {
		return StatusPending
	}

	if !found {
		return StatusPending
	}

	if detail.Correct {
		return StatusCorrect
	}
	return StatusIncorrect
}

// deriveCorrectAnswer picks the displayed correct answer: the backend's
// expected value wins, then the question's own key, resolving a numeric key
// as an index into the options. An out-of-range index yields the empty
// string rather than a stray number.
func deriveCorrectAnswer(question models.Question, expected string) string {
	if expected != "" {
		return expected
	}

	key := question.CorrectAnswer
	if key.IsBlank() {
		return ""
	}

	if question.Type == models.MultipleChoice && question.Options != nil {
		if key.Index != nil {
			if *key.Index >= 0 && *key.Index < len(question.Options) {
				return question.Options[*key.Index]
			}
			return ""
		}
		return key.Text
	}

	return key.String()
}

func formatAnswer(answer string) string {
	if strings.TrimSpace(answer) == "" {
		return AnswerPlaceholder
	}
	return answer
}
