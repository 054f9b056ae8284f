package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"alfredoptarigan/interview-coach/internal/config"
	"alfredoptarigan/interview-coach/internal/repositories"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved interview summaries for a user",
	RunE:  runHistory,
}

var (
	historyUser  string
	historyLimit int
)

func init() {
	historyCmd.Flags().StringVar(&historyUser, "user", "", "Username (required)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum summaries to show, 0 for all")
	_ = historyCmd.MarkFlagRequired("user")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	db, err := config.InitDatabase(loadConfig())
	if err != nil {
		return err
	}

	user, err := repositories.NewUserRepository(db).FindByUsername(historyUser)
	if err != nil {
		return fmt.Errorf("user %q: %w", historyUser, err)
	}

	summaries, err := repositories.NewInterviewRepository(db).LoadSummaries(cmd.Context(), user.ID, historyLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(summaries) == 0 {
		fmt.Fprintln(out, "No interviews yet.")
		return nil
	}
	for i := range summaries {
		s := &summaries[i]
		fmt.Fprintf(out, "%d. %s - %s (%s)\n", i+1, s.Company, s.JobTitle, s.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Fprintf(out, "   Type: %s, Difficulty: %s, Score: %.1f\n", s.Kind, s.Difficulty, s.OverallScore)
	}
	return nil
}
