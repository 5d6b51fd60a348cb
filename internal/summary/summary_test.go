package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/quiz-core/internal/models"
)

func twoQuestionQuiz() models.Quiz {
	return models.Quiz{
		ID:    "quiz-1",
		Title: "Basics",
		Questions: []models.Question{
			{
				ID:            "1",
				Type:          models.MultipleChoice,
				Prompt:        "Pick B",
				Options:       []string{"A", "B", "C"},
				CorrectAnswer: models.AnswerText("B"),
				Position:      0,
			},
			{
				ID:       "2",
				Type:     models.Code,
				Prompt:   "Print one",
				Position: 1,
			},
		},
	}
}

func TestBuild_GradedAndPendingCounts(t *testing.T) {
	quiz := twoQuestionQuiz()
	result := models.SubmissionResult{
		Score:   1,
		Details: []models.SubmissionDetail{{QuestionID: 1, Correct: true}},
	}
	answers := map[string]string{"1": "B", "2": "print(1)"}

	s := Build(quiz, result, answers)

	assert.Equal(t, 2, s.TotalQuestions)
	assert.Equal(t, 1, s.GradedQuestions)
	assert.Equal(t, 1, s.PendingReview)
	assert.Equal(t, 1, s.Score)
	assert.Equal(t, 0, s.IncorrectAnswers)
	assert.Equal(t, 100.0, s.Percentage)

	require.Len(t, s.Questions, 2)
	assert.Equal(t, StatusCorrect, s.Questions[0].Status)
	// Code answers are never auto-graded.
	assert.Equal(t, StatusPending, s.Questions[1].Status)
	assert.Equal(t, "B", s.Questions[0].UserAnswer)
	assert.Equal(t, "B", s.Questions[0].CorrectAnswer)
}

func TestBuild_UnansweredQuiz(t *testing.T) {
	quiz := twoQuestionQuiz()
	result := models.SubmissionResult{Score: 0}

	s := Build(quiz, result, map[string]string{})

	require.Len(t, s.Questions, 2)
	assert.Equal(t, StatusUnanswered, s.Questions[0].Status)
	assert.Equal(t, StatusUnanswered, s.Questions[1].Status)
	assert.Equal(t, AnswerPlaceholder, s.Questions[0].UserAnswer)
	assert.Equal(t, AnswerPlaceholder, s.Questions[1].UserAnswer)
}

func TestBuild_BlankAnswerIsUnanswered(t *testing.T) {
	quiz := twoQuestionQuiz()
	result := models.SubmissionResult{Score: 0}

	s := Build(quiz, result, map[string]string{"1": "   "})

	assert.Equal(t, StatusUnanswered, s.Questions[0].Status)
	assert.Equal(t, AnswerPlaceholder, s.Questions[0].UserAnswer)
}

func TestBuild_MissingDetailIsPendingNotIncorrect(t *testing.T) {
	quiz := twoQuestionQuiz()
	// Q1 answered (wrongly) but the backend's details omit it entirely;
	// partial grading must read as pending.
	result := models.SubmissionResult{Score: 0}

	s := Build(quiz, result, map[string]string{"1": "A"})

	assert.Equal(t, StatusPending, s.Questions[0].Status)
}

func TestBuild_IncorrectVerdict(t *testing.T) {
	quiz := twoQuestionQuiz()
	result := models.SubmissionResult{
		Score:   0,
		Details: []models.SubmissionDetail{{QuestionID: 1, Correct: false}},
	}

	s := Build(quiz, result, map[string]string{"1": "A"})

	assert.Equal(t, StatusIncorrect, s.Questions[0].Status)
	assert.Equal(t, 1, s.IncorrectAnswers)
	assert.Equal(t, 0.0, s.Percentage)
}

func TestBuild_ZeroGradedQuestionsYieldsZeroPercentage(t *testing.T) {
	quiz := models.Quiz{
		Questions: []models.Question{
			{ID: "1", Type: models.Code, Prompt: "Write a loop"},
		},
	}
	// Score should not matter when nothing is gradable.
	result := models.SubmissionResult{Score: 3}

	s := Build(quiz, result, map[string]string{})

	assert.Equal(t, 0, s.GradedQuestions)
	assert.Equal(t, 1, s.PendingReview)
	assert.Equal(t, 0.0, s.Percentage)
	assert.Equal(t, 0, s.IncorrectAnswers)
}

func TestBuild_EmptyQuizIsNotAnError(t *testing.T) {
	s := Build(models.Quiz{}, models.SubmissionResult{}, nil)

	assert.Equal(t, 0, s.TotalQuestions)
	assert.Equal(t, 0, s.GradedQuestions)
	assert.Equal(t, 0, s.PendingReview)
	assert.Equal(t, 0.0, s.Percentage)
	assert.Empty(t, s.Questions)
}

func TestBuild_ScoreIsTrusted(t *testing.T) {
	quiz := twoQuestionQuiz()
	// Backend says 5 even though only one question is gradable; the engine
	// never re-grades, so incorrect clamps at zero.
	result := models.SubmissionResult{Score: 5}

	s := Build(quiz, result, map[string]string{})

	assert.Equal(t, 5, s.Score)
	assert.Equal(t, 0, s.IncorrectAnswers)
	assert.Equal(t, 500.0, s.Percentage)
}

func TestDeriveCorrectAnswer(t *testing.T) {
	mcq := models.Question{
		Type:          models.MultipleChoice,
		Options:       []string{"red", "green", "blue"},
		CorrectAnswer: models.AnswerText("green"),
	}

	tests := []struct {
		name     string
		question models.Question
		expected string
		want     string
	}{
		{name: "expected wins", question: mcq, expected: "teal", want: "teal"},
		{name: "literal option string", question: mcq, want: "green"},
		{
			name: "numeric index into options",
			question: models.Question{
				Type:          models.MultipleChoice,
				Options:       []string{"red", "green", "blue"},
				CorrectAnswer: models.AnswerIndex(2),
			},
			want: "blue",
		},
		{
			name: "index zero resolves",
			question: models.Question{
				Type:          models.MultipleChoice,
				Options:       []string{"red", "green"},
				CorrectAnswer: models.AnswerIndex(0),
			},
			want: "red",
		},
		{
			name: "out of range index falls back to empty",
			question: models.Question{
				Type:          models.MultipleChoice,
				Options:       []string{"red"},
				CorrectAnswer: models.AnswerIndex(7),
			},
			want: "",
		},
		{
			name: "short answer literal",
			question: models.Question{
				Type:          models.ShortAnswer,
				CorrectAnswer: models.AnswerText("42"),
			},
			want: "42",
		},
		{
			name:     "missing key is empty string, never absent",
			question: models.Question{Type: models.ShortAnswer},
			want:     "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, deriveCorrectAnswer(tc.question, tc.expected))
		})
	}
}

func TestBuild_DetailKeyedByStringifiedNumericID(t *testing.T) {
	quiz := models.Quiz{
		Questions: []models.Question{
			{ID: "42", Type: models.ShortAnswer, Prompt: "six times seven"},
		},
	}
	result := models.SubmissionResult{
		Score:   1,
		Details: []models.SubmissionDetail{{QuestionID: 42, Correct: true, Expected: "42"}},
	}

	s := Build(quiz, result, map[string]string{"42": "42"})

	require.Len(t, s.Questions, 1)
	assert.Equal(t, StatusCorrect, s.Questions[0].Status)
	assert.Equal(t, "42", s.Questions[0].Expected)
	assert.Equal(t, "42", s.Questions[0].CorrectAnswer)
}
