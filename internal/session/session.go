// Package session tracks one learner's in-progress pass through a quiz:
// the current question pointer, the local answer map and the anti-cheat
// telemetry counters. Local state is authoritative for summary display;
// forwarding to the backend is best-effort.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/quizforge/quiz-core/internal/models"
	"github.com/quizforge/quiz-core/internal/utils"
)

// AnswerSink receives answer changes for persistence. Implementations are
// called on their own goroutine; failures never roll back local state.
type AnswerSink interface {
	SubmitAnswer(ctx context.Context, attemptID, questionID, value string) error
}

// EventSink receives anti-cheat telemetry. Delivery failures are swallowed.
type EventSink interface {
	PublishEvent(ctx context.Context, attemptID string, event models.AttemptEvent) error
}

// Session is the state of a single attempt. It is safe for use from the
// goroutines its sinks run on.
type Session struct {
	mu sync.RWMutex

	quiz    models.Quiz
	attempt models.Attempt

	answers      map[string]string
	currentIndex int
	result       *models.SubmissionResult

	// Last observed page visibility; visibility_change fires only on
	// transitions into hidden.
	hidden      bool
	eventCounts map[models.AttemptEventType]int

	answerSink AnswerSink
	eventSink  EventSink
	logger     utils.Logger
	now        func() time.Time
}

func New(quiz models.Quiz, attempt models.Attempt, answerSink AnswerSink, eventSink EventSink, logger utils.Logger) *Session {
	return newWithClock(quiz, attempt, answerSink, eventSink, logger, time.Now)
}

// NewWithClock is test-only for deterministic event timestamps.
func NewWithClock(quiz models.Quiz, attempt models.Attempt, answerSink AnswerSink, eventSink EventSink, logger utils.Logger, now func() time.Time) *Session {
	return newWithClock(quiz, attempt, answerSink, eventSink, logger, now)
}

func newWithClock(quiz models.Quiz, attempt models.Attempt, answerSink AnswerSink, eventSink EventSink, logger utils.Logger, now func() time.Time) *Session {
	if attempt.Quiz != nil && len(attempt.Quiz.Questions) > 0 {
		// Prefer the snapshot embedded in the attempt when the backend
		// returns one; it reflects the quiz as it was started.
		quiz = *attempt.Quiz
	}
	return &Session{
		quiz:        quiz,
		attempt:     attempt,
		answers:     make(map[string]string),
		eventCounts: make(map[models.AttemptEventType]int),
		answerSink:  answerSink,
		eventSink:   eventSink,
		logger:      logger,
		now:         now,
	}
}

func (s *Session) Quiz() models.Quiz {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.quiz
}

func (s *Session) Attempt() models.Attempt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.attempt
}

// Answers returns a copy of the local answer map, keyed by normalized
// question identifier.
func (s *Session) Answers() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	answers := make(map[string]string, len(s.answers))
	for key, value := range s.answers {
		answers[key] = value
	}
	return answers
}

func (s *Session) CurrentIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentIndex
}

// CurrentQuestion returns the question under the pointer; ok is false for an
// empty quiz.
func (s *Session) CurrentQuestion() (models.Question, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.quiz.Questions) == 0 {
		return models.Question{}, false
	}
	return s.quiz.Questions[s.currentIndex], true
}

// GoToNext advances the pointer; at the last question it is a no-op.
func (s *Session) GoToNext() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentIndex < len(s.quiz.Questions)-1 {
		s.currentIndex++
	}
}

// GoToPrevious moves the pointer back; at the first question it is a no-op.
func (s *Session) GoToPrevious() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentIndex > 0 {
		s.currentIndex--
	}
}

// GoToQuestion jumps to index, ignoring out-of-range targets.
func (s *Session) GoToQuestion(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.quiz.Questions) {
		return
	}
	s.currentIndex = index
}

// RecordAnswer updates the local answer map immediately and forwards the
// value to the backend on a separate goroutine. Last write wins locally; a
// forwarding failure is logged and otherwise ignored.
func (s *Session) RecordAnswer(ctx context.Context, questionID, value string) {
	s.mu.Lock()
	s.answers[questionID] = value
	attemptID := s.attempt.ID
	s.mu.Unlock()

	if s.answerSink == nil {
		return
	}

	go func() {
		if err := s.answerSink.SubmitAnswer(ctx, attemptID, questionID, value); err != nil {
			s.logger.Warn("failed to persist answer",
				"attempt_id", attemptID,
				"question_id", questionID,
				"error", err)
		}
	}()
}

// IsQuestionAnswered reports whether a non-blank answer is stored for the
// question.
func (s *Session) IsQuestionAnswered(question models.Question) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return strings.TrimSpace(s.answers[question.Key()]) != ""
}

// RecordResult stores the grading outcome. Event emission stops from here
// on; there is nothing left to proctor once the attempt is graded.
func (s *Session) RecordResult(result models.SubmissionResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.result = &result
	score := result.Score
	s.attempt.Score = &score
	submittedAt := s.now()
	s.attempt.SubmittedAt = &submittedAt
}

// Result returns the submission result, if the attempt has been graded.
func (s *Session) Result() (models.SubmissionResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.result == nil {
		return models.SubmissionResult{}, false
	}
	return *s.result, true
}

// HandlePaste emits a paste event; one fires per detected paste.
func (s *Session) HandlePaste(ctx context.Context, metadata map[string]interface{}) {
	s.emit(ctx, models.EventPaste, metadata)
}

// HandleBlur emits a blur event.
func (s *Session) HandleBlur(ctx context.Context) {
	s.emit(ctx, models.EventBlur, nil)
}

// HandleFocus emits a focus event.
func (s *Session) HandleFocus(ctx context.Context) {
	s.emit(ctx, models.EventFocus, nil)
}

// HandleVisibilityChange emits a visibility_change event exactly once per
// transition into the hidden state. Repeated hidden reports and transitions
// back to visible emit nothing.
func (s *Session) HandleVisibilityChange(ctx context.Context, hidden bool) {
	s.mu.Lock()
	wasHidden := s.hidden
	s.hidden = hidden
	s.mu.Unlock()

	if !hidden || wasHidden {
		return
	}
	s.emit(ctx, models.EventVisibilityChange, map[string]interface{}{"hidden": true})
}

// EventCounts returns a copy of the per-type telemetry counters.
func (s *Session) EventCounts() map[models.AttemptEventType]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[models.AttemptEventType]int, len(s.eventCounts))
	for eventType, count := range s.eventCounts {
		counts[eventType] = count
	}
	return counts
}

// Reset clears answers, navigation, counters and the result so the session
// can back a fresh attempt.
func (s *Session) Reset(attempt models.Attempt) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if attempt.Quiz != nil && len(attempt.Quiz.Questions) > 0 {
		s.quiz = *attempt.Quiz
	}
	s.attempt = attempt
	s.answers = make(map[string]string)
	s.eventCounts = make(map[models.AttemptEventType]int)
	s.currentIndex = 0
	s.result = nil
	s.hidden = false
}

func (s *Session) emit(ctx context.Context, eventType models.AttemptEventType, metadata map[string]interface{}) {
	s.mu.Lock()
	if s.result != nil {
		s.mu.Unlock()
		return
	}
	s.eventCounts[eventType]++
	attemptID := s.attempt.ID
	event := models.AttemptEvent{
		Type:      eventType,
		Timestamp: s.now(),
		Metadata:  metadata,
	}
	s.mu.Unlock()

	if s.eventSink == nil {
		return
	}

	if err := s.eventSink.PublishEvent(ctx, attemptID, event); err != nil {
		// Telemetry must never block or fail the user flow.
		s.logger.Debug("dropped attempt event",
			"attempt_id", attemptID,
			"event_type", eventType,
			"error", err)
	}
}
