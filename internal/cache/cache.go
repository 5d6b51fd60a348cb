// Package cache keeps decoded quizzes warm between plays so replaying a
// shared quiz identifier does not refetch the definition. It is a TTL cache
// over backend reads, not persistence; the backend stays authoritative.
package cache

import (
	"context"

	"github.com/quizforge/quiz-core/internal/models"
)

type QuizCache interface {
	// Get returns the cached quiz, or ok=false on a miss. Lookup failures
	// degrade to misses; the caller falls back to the backend.
	Get(ctx context.Context, quizID string) (*models.Quiz, bool)
	Set(ctx context.Context, quiz *models.Quiz) error
	Delete(ctx context.Context, quizID string) error
}
