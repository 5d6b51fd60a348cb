package cache

import (
	"context"
	"sync"
	"time"

	"github.com/quizforge/quiz-core/internal/models"
)

type memoryEntry struct {
	quiz      models.Quiz
	expiresAt time.Time
}

type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCache is the in-process fallback used when no redis is
// configured.
func NewMemoryCache(ttl time.Duration) QuizCache {
	return newMemoryCacheWithClock(ttl, time.Now)
}

// NewMemoryCacheWithClock is test-only for deterministic expiry.
func NewMemoryCacheWithClock(ttl time.Duration, now func() time.Time) QuizCache {
	return newMemoryCacheWithClock(ttl, now)
}

func newMemoryCacheWithClock(ttl time.Duration, now func() time.Time) *memoryCache {
	return &memoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     now,
	}
}

func (m *memoryCache) Get(_ context.Context, quizID string) (*models.Quiz, bool) {
	m.mu.RLock()
	entry, ok := m.entries[quizID]
	m.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if m.now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, quizID)
		m.mu.Unlock()
		return nil, false
	}

	quiz := entry.quiz
	return &quiz, true
}

func (m *memoryCache) Set(_ context.Context, quiz *models.Quiz) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[quiz.ID] = memoryEntry{
		quiz:      *quiz,
		expiresAt: m.now().Add(m.ttl),
	}
	return nil
}

func (m *memoryCache) Delete(_ context.Context, quizID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, quizID)
	return nil
}
