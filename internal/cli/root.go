// Package cli wires the quizctl commands: the terminal surface for taking
// quizzes against a running backend.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/quizforge/quiz-core/internal/cache"
	"github.com/quizforge/quiz-core/internal/client"
	"github.com/quizforge/quiz-core/internal/config"
	"github.com/quizforge/quiz-core/internal/utils"
	"github.com/quizforge/quiz-core/internal/validator"
	"github.com/quizforge/quiz-core/pkg"
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quizctl",
		Short: "Take quizzes from the terminal",
	}

	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewTakeCmd())
	return cmd
}

// deps holds the wired service stack shared by the commands.
type deps struct {
	cfg      *config.Config
	logger   utils.Logger
	quizzes  *client.QuizService
	attempts *client.AttemptService
}

func buildDeps() (*deps, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	var logger utils.Logger
	if cfg.Environment == "development" {
		logger = utils.NewDevelopmentLogger()
	} else {
		logger = utils.NewDefaultLogger()
	}

	// Redis is optional; without it quizzes are cached in process.
	var quizCache cache.QuizCache
	if redisClient, err := pkg.NewRedisClient(cfg); err == nil {
		quizCache = cache.NewRedisCache(redisClient, cfg.QuizCacheTTL, logger)
	} else {
		logger.Debug("redis unavailable, using in-memory quiz cache", "error", err)
		quizCache = cache.NewMemoryCache(cfg.QuizCacheTTL)
	}

	baseClient := client.New(cfg, logger)
	v := validator.New()

	return &deps{
		cfg:      cfg,
		logger:   logger,
		quizzes:  client.NewQuizService(baseClient, v, quizCache, logger),
		attempts: client.NewAttemptService(baseClient, v, logger),
	}, nil
}
