package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quizforge/quiz-core/internal/events"
	"github.com/quizforge/quiz-core/internal/export"
	"github.com/quizforge/quiz-core/internal/models"
	"github.com/quizforge/quiz-core/internal/session"
	"github.com/quizforge/quiz-core/internal/summary"
)

// NewTakeCmd builds the subcommand that runs one attempt interactively.
func NewTakeCmd() *cobra.Command {
	var exportPath string

	cmd := &cobra.Command{
		Use:   "take <quiz-id>",
		Short: "Take a quiz and print the graded summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps()
			if err != nil {
				return err
			}
			return runTake(cmd.Context(), d, args[0], exportPath, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&exportPath, "export", "", "write the summary to an XLSX file")
	return cmd
}

func runTake(ctx context.Context, d *deps, quizID, exportPath string, in io.Reader, out io.Writer) error {
	quiz, err := d.quizzes.GetByID(ctx, quizID)
	if err != nil {
		return fmt.Errorf("failed to load quiz: %w", err)
	}

	attempt, err := d.attempts.Start(ctx, quizID)
	if err != nil {
		return fmt.Errorf("failed to start attempt: %w", err)
	}

	publisher := events.NewChannelEventPublisher(slog.Default())
	defer publisher.Close()

	forwarder := events.NewForwarder(publisher, d.attempts, d.logger)
	forwarderCtx, stopForwarder := context.WithCancel(ctx)
	defer stopForwarder()
	go func() {
		if err := forwarder.Run(forwarderCtx); err != nil {
			d.logger.Debug("event forwarder stopped", "error", err)
		}
	}()

	sess := session.New(*quiz, *attempt, d.attempts, publisher, d.logger)

	fmt.Fprintf(out, "%s\n%s\n\n", quiz.Title, quiz.Description)

	scanner := bufio.NewScanner(in)
	total := len(sess.Quiz().Questions)
	for {
		question, ok := sess.CurrentQuestion()
		if !ok {
			break
		}

		printQuestion(out, sess.CurrentIndex()+1, total, question)
		if !scanner.Scan() {
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer != "" {
			sess.RecordAnswer(ctx, question.Key(), answer)
		}

		if sess.CurrentIndex() == total-1 {
			break
		}
		sess.GoToNext()
	}

	result, err := d.attempts.Submit(ctx, attempt.ID)
	if err != nil {
		return fmt.Errorf("failed to submit attempt: %w", err)
	}
	sess.RecordResult(*result)

	attemptSummary := summary.Build(sess.Quiz(), *result, sess.Answers())
	printSummary(out, attemptSummary)

	if exportPath != "" {
		report, err := export.SummaryToExcel(quiz.Title, attemptSummary)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		if err := os.WriteFile(exportPath, report, 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Fprintf(out, "\nReport written to %s\n", exportPath)
	}

	return nil
}

func printQuestion(out io.Writer, number, total int, question models.Question) {
	fmt.Fprintf(out, "Question %d/%d: %s\n", number, total, question.Prompt)
	if question.CodeSnippet != "" {
		fmt.Fprintf(out, "\n%s\n", question.CodeSnippet)
	}
	for _, option := range question.Options {
		fmt.Fprintf(out, "  - %s\n", option)
	}
	fmt.Fprint(out, "> ")
}

func printSummary(out io.Writer, s summary.AttemptSummary) {
	fmt.Fprintf(out, "\nScore: %d/%d (%.1f%%)\n", s.Score, s.GradedQuestions, s.Percentage)
	fmt.Fprintf(out, "Incorrect: %d, Pending review: %d\n\n", s.IncorrectAnswers, s.PendingReview)

	for i, question := range s.Questions {
		fmt.Fprintf(out, "%d. [%s] %s\n", i+1, question.Status, question.Question.Prompt)
		fmt.Fprintf(out, "   Your answer: %s\n", question.UserAnswer)
		if question.CorrectAnswer != "" {
			fmt.Fprintf(out, "   Correct answer: %s\n", question.CorrectAnswer)
		}
	}
}
