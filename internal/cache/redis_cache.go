package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quizforge/quiz-core/internal/models"
	"github.com/quizforge/quiz-core/internal/utils"
)

const quizKeyPrefix = "quiz:"

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger utils.Logger
}

// NewRedisCache caches quizzes in redis with the given TTL.
func NewRedisCache(client *redis.Client, ttl time.Duration, logger utils.Logger) QuizCache {
	return &redisCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *redisCache) Get(ctx context.Context, quizID string) (*models.Quiz, bool) {
	raw, err := r.client.Get(ctx, quizKeyPrefix+quizID).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("quiz cache lookup failed", "quiz_id", quizID, "error", err)
		}
		return nil, false
	}

	var quiz models.Quiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		// A corrupt entry behaves like a miss; the next Set repairs it.
		r.logger.Warn("discarding corrupt cached quiz", "quiz_id", quizID, "error", err)
		return nil, false
	}
	return &quiz, true
}

func (r *redisCache) Set(ctx context.Context, quiz *models.Quiz) error {
	raw, err := json.Marshal(quiz)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, quizKeyPrefix+quiz.ID, raw, r.ttl).Err()
}

func (r *redisCache) Delete(ctx context.Context, quizID string) error {
	return r.client.Del(ctx, quizKeyPrefix+quizID).Err()
}
