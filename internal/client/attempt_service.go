package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/quizforge/quiz-core/internal/models"
	"github.com/quizforge/quiz-core/internal/promptcodec"
	"github.com/quizforge/quiz-core/internal/utils"
	"github.com/quizforge/quiz-core/internal/validator"
)

type startAttemptRequest struct {
	QuizID string `json:"quizId" validate:"required"`
}

type submitAnswerRequest struct {
	QuestionID string `json:"questionId" validate:"required"`
	Value      string `json:"value"`
}

type logEventRequest struct {
	// The backend stores the event as an opaque serialized blob.
	Event string `json:"event"`
}

// AttemptService covers the attempt lifecycle endpoints: start, per-question
// answer upserts, final submission and best-effort telemetry. It satisfies
// the session's AnswerSink and the forwarder's EventLogger.
type AttemptService struct {
	client    *Client
	validator *validator.Validator
	logger    utils.Logger
}

func NewAttemptService(client *Client, v *validator.Validator, logger utils.Logger) *AttemptService {
	return &AttemptService{
		client:    client,
		validator: v,
		logger:    logger,
	}
}

// Start begins a new attempt for a quiz. The returned attempt may embed a
// quiz snapshot; its prompts are decoded like any other read.
func (s *AttemptService) Start(ctx context.Context, quizID string) (*models.Attempt, error) {
	req := startAttemptRequest{QuizID: quizID}
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("invalid start request: %w", err)
	}

	var attempt models.Attempt
	if err := s.client.do(ctx, http.MethodPost, "/attempts", req, &attempt); err != nil {
		return nil, err
	}

	if attempt.Quiz != nil {
		for i := range attempt.Quiz.Questions {
			decoded := promptcodec.Decode(attempt.Quiz.Questions[i].Prompt, s.logger)
			attempt.Quiz.Questions[i].Prompt = decoded.Prompt
			attempt.Quiz.Questions[i].CodeSnippet = decoded.CodeSnippet
		}
	}
	return &attempt, nil
}

// SubmitAnswer upserts one answer. Called per keystroke or blur; the caller
// treats failures as best-effort.
func (s *AttemptService) SubmitAnswer(ctx context.Context, attemptID, questionID, value string) error {
	req := submitAnswerRequest{QuestionID: questionID, Value: value}
	if err := s.validator.Validate(req); err != nil {
		return fmt.Errorf("invalid answer: %w", err)
	}
	return s.client.do(ctx, http.MethodPost, "/attempts/"+attemptID+"/answer", req, nil)
}

// Submit finalizes the attempt and returns the grading outcome.
func (s *AttemptService) Submit(ctx context.Context, attemptID string) (*models.SubmissionResult, error) {
	var result models.SubmissionResult
	if err := s.client.do(ctx, http.MethodPost, "/attempts/"+attemptID+"/submit", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// LogEvent posts one telemetry event, serialized the way the backend expects
// it: a JSON string under the event key.
func (s *AttemptService) LogEvent(ctx context.Context, attemptID string, event models.AttemptEvent) error {
	if err := s.validator.Validate(event); err != nil {
		return fmt.Errorf("invalid attempt event: %w", err)
	}

	serialized, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to serialize attempt event: %w", err)
	}
	return s.client.do(ctx, http.MethodPost, "/attempts/"+attemptID+"/events", logEventRequest{Event: string(serialized)}, nil)
}
