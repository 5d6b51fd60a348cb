package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/quizforge/quiz-core/internal/cache"
	"github.com/quizforge/quiz-core/internal/models"
	"github.com/quizforge/quiz-core/internal/promptcodec"
	"github.com/quizforge/quiz-core/internal/utils"
	"github.com/quizforge/quiz-core/internal/validator"
)

// QuizUpdateData is a partial quiz metadata update; nil fields are left
// untouched by the backend.
type QuizUpdateData struct {
	Title            *string `json:"title,omitempty"`
	Description      *string `json:"description,omitempty"`
	TimeLimitSeconds *int    `json:"timeLimitSeconds,omitempty"`
	IsPublished      *bool   `json:"isPublished,omitempty"`
}

// QuestionUpdateData is a partial question update. Prompt and CodeSnippet
// travel together: touching either re-encodes the stored prompt field.
type QuestionUpdateData struct {
	Type          *models.QuestionType `json:"type,omitempty"`
	Prompt        *string              `json:"prompt,omitempty"`
	CodeSnippet   *string              `json:"codeSnippet,omitempty"`
	Options       []string             `json:"options,omitempty"`
	CorrectAnswer *models.AnswerKey    `json:"correctAnswer,omitempty"`
	Position      *int                 `json:"position,omitempty"`
}

// QuizService covers the quiz and question CRUD endpoints. Reads decode the
// prompt field; writes encode it. An optional cache keeps decoded quizzes
// warm between plays.
type QuizService struct {
	client    *Client
	validator *validator.Validator
	cache     cache.QuizCache
	logger    utils.Logger
}

func NewQuizService(client *Client, v *validator.Validator, quizCache cache.QuizCache, logger utils.Logger) *QuizService {
	return &QuizService{
		client:    client,
		validator: v,
		cache:     quizCache,
		logger:    logger,
	}
}

// GetAll lists quizzes with decoded prompts.
func (s *QuizService) GetAll(ctx context.Context) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	if err := s.client.do(ctx, http.MethodGet, "/quizzes", nil, &quizzes); err != nil {
		return nil, err
	}
	for i := range quizzes {
		s.decodeQuiz(&quizzes[i])
	}
	return quizzes, nil
}

// GetByID fetches one quiz, preferring the cache when one is configured.
func (s *QuizService) GetByID(ctx context.Context, id string) (*models.Quiz, error) {
	if s.cache != nil {
		if quiz, ok := s.cache.Get(ctx, id); ok {
			return quiz, nil
		}
	}

	var quiz models.Quiz
	if err := s.client.do(ctx, http.MethodGet, "/quizzes/"+id, nil, &quiz); err != nil {
		return nil, err
	}
	s.decodeQuiz(&quiz)

	if s.cache != nil {
		if err := s.cache.Set(ctx, &quiz); err != nil {
			s.logger.Warn("failed to cache quiz", "quiz_id", id, "error", err)
		}
	}
	return &quiz, nil
}

// Create persists new quiz metadata.
func (s *QuizService) Create(ctx context.Context, data models.QuizCreateData) (*models.Quiz, error) {
	if err := s.validator.Validate(data); err != nil {
		return nil, fmt.Errorf("invalid quiz: %w", err)
	}

	var quiz models.Quiz
	if err := s.client.do(ctx, http.MethodPost, "/quizzes", data, &quiz); err != nil {
		return nil, err
	}
	s.decodeQuiz(&quiz)
	return &quiz, nil
}

// Update patches quiz metadata and invalidates the cached copy.
func (s *QuizService) Update(ctx context.Context, id string, updates QuizUpdateData) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := s.client.do(ctx, http.MethodPatch, "/quizzes/"+id, updates, &quiz); err != nil {
		return nil, err
	}
	s.decodeQuiz(&quiz)
	s.invalidate(ctx, id)
	return &quiz, nil
}

// AddQuestion appends one question to a quiz, folding its code snippet into
// the prompt for transport.
func (s *QuizService) AddQuestion(ctx context.Context, quizID string, question models.Question) (*models.Question, error) {
	payload := models.QuestionCreateData{
		Type:          question.Type,
		Prompt:        promptcodec.Encode(question.Prompt, question.CodeSnippet),
		Options:       question.Options,
		CorrectAnswer: question.CorrectAnswer,
		Position:      question.Position,
	}
	if err := s.validator.Validate(payload); err != nil {
		return nil, fmt.Errorf("invalid question: %w", err)
	}

	var created models.Question
	if err := s.client.do(ctx, http.MethodPost, "/quizzes/"+quizID+"/questions", payload, &created); err != nil {
		return nil, err
	}
	s.decodeQuestion(&created)
	s.invalidate(ctx, quizID)
	return &created, nil
}

// UpdateQuestion patches one question. When neither prompt nor snippet is
// being changed the stored prompt field stays untouched.
func (s *QuizService) UpdateQuestion(ctx context.Context, questionID string, updates QuestionUpdateData) (*models.Question, error) {
	payload := updates
	payload.CodeSnippet = nil
	if updates.Prompt != nil || updates.CodeSnippet != nil {
		prompt := ""
		if updates.Prompt != nil {
			prompt = *updates.Prompt
		}
		snippet := ""
		if updates.CodeSnippet != nil {
			snippet = *updates.CodeSnippet
		}
		encoded := promptcodec.Encode(prompt, snippet)
		payload.Prompt = &encoded
	}

	var updated models.Question
	if err := s.client.do(ctx, http.MethodPatch, "/questions/"+questionID, payload, &updated); err != nil {
		return nil, err
	}
	s.decodeQuestion(&updated)
	if updated.QuizID != "" {
		s.invalidate(ctx, updated.QuizID)
	}
	return &updated, nil
}

// DeleteQuestion removes one question.
func (s *QuizService) DeleteQuestion(ctx context.Context, questionID string) error {
	return s.client.do(ctx, http.MethodDelete, "/questions/"+questionID, nil, nil)
}

func (s *QuizService) decodeQuiz(quiz *models.Quiz) {
	for i := range quiz.Questions {
		s.decodeQuestion(&quiz.Questions[i])
	}
}

func (s *QuizService) decodeQuestion(question *models.Question) {
	decoded := promptcodec.Decode(question.Prompt, s.logger)
	question.Prompt = decoded.Prompt
	question.CodeSnippet = decoded.CodeSnippet
}

func (s *QuizService) invalidate(ctx context.Context, quizID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, quizID); err != nil {
		s.logger.Warn("failed to invalidate cached quiz", "quiz_id", quizID, "error", err)
	}
}
