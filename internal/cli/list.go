package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewListCmd builds the subcommand that lists available quizzes.
func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available quizzes",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps()
			if err != nil {
				return err
			}

			quizzes, err := d.quizzes.GetAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load quizzes: %w", err)
			}

			if len(quizzes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No quizzes found.")
				return nil
			}

			for _, quiz := range quizzes {
				status := "draft"
				if quiz.IsPublished {
					status = "published"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t(%s, %d questions)\n",
					quiz.ID, quiz.Title, status, len(quiz.Questions))
			}
			return nil
		},
	}
}
