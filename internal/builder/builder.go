// Package builder holds the in-memory editable question list an author
// works on before a quiz is persisted. Positions always mirror slice
// indexes; every mutation renumbers.
package builder

import (
	"fmt"
	"strings"

	"github.com/quizforge/quiz-core/internal/models"
	"github.com/quizforge/quiz-core/internal/promptcodec"
)

const defaultOptionCount = 4

// Builder accumulates quiz metadata and questions for a single create flow.
type Builder struct {
	title       string
	description string
	questions   []models.Question
}

func New() *Builder {
	return &Builder{}
}

func (b *Builder) SetTitle(title string) {
	b.title = title
}

func (b *Builder) SetDescription(description string) {
	b.description = description
}

func (b *Builder) Title() string {
	return b.title
}

func (b *Builder) Description() string {
	return b.description
}

// Questions returns a copy of the working list; callers mutate through the
// builder only.
func (b *Builder) Questions() []models.Question {
	questions := make([]models.Question, len(b.questions))
	copy(questions, b.questions)
	return questions
}

func (b *Builder) Len() int {
	return len(b.questions)
}

// AddQuestion appends a blank multiple-choice question with four empty
// options at the end of the list.
func (b *Builder) AddQuestion() models.Question {
	question := models.Question{
		Type:          models.MultipleChoice,
		Options:       make([]string, defaultOptionCount),
		CorrectAnswer: models.AnswerText(""),
		Position:      len(b.questions),
	}
	b.questions = append(b.questions, question)
	return question
}

// UpdateQuestion replaces the entry at index, forcing its position back to
// the index. Out-of-range indexes are a no-op.
func (b *Builder) UpdateQuestion(index int, question models.Question) {
	if index < 0 || index >= len(b.questions) {
		return
	}
	question.Position = index
	b.questions[index] = question
}

// RemoveQuestion deletes the entry at index and renumbers the rest.
func (b *Builder) RemoveQuestion(index int) {
	if index < 0 || index >= len(b.questions) {
		return
	}
	b.questions = append(b.questions[:index], b.questions[index+1:]...)
	b.renumber()
}

// ReorderQuestions moves one entry from one index to another, renumbering so
// positions reflect the new order 0..n-1. Out-of-range indexes are a no-op.
func (b *Builder) ReorderQuestions(from, to int) {
	if from < 0 || from >= len(b.questions) || to < 0 || to >= len(b.questions) || from == to {
		return
	}

	moved := b.questions[from]
	rest := append(b.questions[:from], b.questions[from+1:]...)

	b.questions = append(rest[:to], append([]models.Question{moved}, rest[to:]...)...)
	b.renumber()
}

func (b *Builder) renumber() {
	for i := range b.questions {
		b.questions[i].Position = i
	}
}

// Validate collects every human-readable problem with the current state, in
// order: quiz metadata first, then the question list. Save is blocked while
// this list is non-empty.
func (b *Builder) Validate() []string {
	var errors []string

	if strings.TrimSpace(b.title) == "" {
		errors = append(errors, "Title is required.")
	}
	if strings.TrimSpace(b.description) == "" {
		errors = append(errors, "Description is required.")
	}

	return append(errors, validateQuestions(b.questions)...)
}

// validateQuestions applies the per-question rules. An empty list yields the
// single "add a question" error with no per-question noise; otherwise every
// violation across every question is collected so the author sees all
// problems at once.
func validateQuestions(questions []models.Question) []string {
	var errors []string

	if len(questions) == 0 {
		return append(errors, "Add at least one question.")
	}

	for index, question := range questions {
		number := index + 1

		if strings.TrimSpace(question.Prompt) == "" {
			errors = append(errors, fmt.Sprintf("Question %d is missing a prompt.", number))
		}

		if question.Type == models.MultipleChoice {
			if len(question.Options) < 2 || hasBlankOption(question.Options) {
				errors = append(errors, fmt.Sprintf("Complete the options for question %d.", number))
			}
		}

		if strings.TrimSpace(question.CorrectAnswer.String()) == "" {
			errors = append(errors, fmt.Sprintf("Provide a correct answer for question %d.", number))
		}
	}

	return errors
}

func hasBlankOption(options []string) bool {
	for _, option := range options {
		if strings.TrimSpace(option) == "" {
			return true
		}
	}
	return false
}

// CreateData returns the quiz metadata payload for the create call.
func (b *Builder) CreateData() models.QuizCreateData {
	return models.QuizCreateData{
		Title:       b.title,
		Description: b.description,
		IsPublished: true,
	}
}

// Payloads produces the question create payloads in order, with each code
// snippet folded into its prompt for transport.
func (b *Builder) Payloads() []models.QuestionCreateData {
	payloads := make([]models.QuestionCreateData, 0, len(b.questions))
	for _, question := range b.questions {
		payloads = append(payloads, models.QuestionCreateData{
			Type:          question.Type,
			Prompt:        promptcodec.Encode(question.Prompt, question.CodeSnippet),
			Options:       question.Options,
			CorrectAnswer: question.CorrectAnswer,
			Position:      question.Position,
		})
	}
	return payloads
}
