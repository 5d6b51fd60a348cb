package main

import (
	"os"

	"github.com/quizforge/quiz-core/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
