package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"alfredoptarigan/interview-coach/internal/config"
	"alfredoptarigan/interview-coach/internal/interview"
	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/repositories"
	"alfredoptarigan/interview-coach/internal/services"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Run an interview session on stdin/stdout",
	Long:  "Generate a question set and answer it line by line. Type your answer and press enter; for multiple choice, the option letter is enough.",
	RunE:  runPractice,
}

var (
	practiceCompany    string
	practiceJob        string
	practiceDifficulty string
	practiceKind       string
	practiceCount      int
	practiceUser       string
)

func init() {
	practiceCmd.Flags().StringVar(&practiceCompany, "company", "Google", "Target company")
	practiceCmd.Flags().StringVar(&practiceJob, "job", "Software Engineer", "Job title")
	practiceCmd.Flags().StringVar(&practiceDifficulty, "difficulty", "easy", "easy, medium or hard")
	practiceCmd.Flags().StringVar(&practiceKind, "kind", "MCQ", "MCQ, Theoretical or Practical")
	practiceCmd.Flags().IntVar(&practiceCount, "count", 5, "Number of questions")
	practiceCmd.Flags().StringVar(&practiceUser, "user", "", "Username to save the summary under (needs the database)")

	rootCmd.AddCommand(practiceCmd)
}

func runPractice(cmd *cobra.Command, _ []string) error {
	difficulty, err := models.ParseDifficulty(practiceDifficulty)
	if err != nil {
		return err
	}
	kind, err := models.ParseQuestionKind(practiceKind)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	gemini, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		return err
	}

	userID := uuid.Nil
	var recorder interview.SummaryRecorder
	if practiceUser != "" {
		db, err := config.InitDatabase(cfg)
		if err != nil {
			return err
		}
		user, err := repositories.NewUserRepository(db).FindByUsername(practiceUser)
		if err != nil {
			return fmt.Errorf("user %q: %w", practiceUser, err)
		}
		userID = user.ID
		recorder = repositories.NewInterviewRepository(db)
	}

	req := interview.GenerateRequest{
		Company:    practiceCompany,
		JobTitle:   practiceJob,
		Difficulty: difficulty,
		Kind:       kind,
		Count:      practiceCount,
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Generating %d %s questions for %s at %s...\n", req.Count, req.Kind, req.JobTitle, req.Company)

	set, err := interview.NewGenerator(gemini).Generate(ctx, req)
	if err != nil {
		return err
	}

	engine := interview.NewEngine(recorder)
	state := engine.Start(userID, req, set)
	summary, err := runSession(ctx, engine, state, cmd.InOrStdin(), out)
	if err != nil {
		return err
	}

	printSummary(out, summary)
	return nil
}

// runSession asks every question in state, reading one answer per line.
// Running out of input ends the session early with an error.
func runSession(ctx context.Context, engine *interview.Engine, state *models.SessionState, in io.Reader, out io.Writer) (*models.InterviewSummary, error) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for {
		q, ok := state.CurrentQuestion()
		if !ok {
			return nil, &interview.InvalidStateError{Position: state.Position, Total: len(state.Questions)}
		}

		printQuestion(out, state.Position, len(state.Questions), q)
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, err
			}
			return nil, io.ErrUnexpectedEOF
		}

		turn, err := engine.SubmitAnswer(ctx, state, scanner.Text())
		if err != nil {
			return nil, err
		}

		fmt.Fprintln(out, interview.SpeechText(turn.Answer))
		if turn.Answer.ModelAnswer != "" {
			fmt.Fprintf(out, "Model answer: %s\n", turn.Answer.ModelAnswer)
		}
		fmt.Fprintln(out)

		if turn.Complete {
			if turn.SaveErr != nil {
				fmt.Fprintf(out, "Warning: summary not saved: %v\n", turn.SaveErr)
			}
			return turn.Summary, nil
		}
	}
}

func printQuestion(out io.Writer, index, total int, q *models.QuestionRecord) {
	fmt.Fprintf(out, "Question %d/%d: %s\n", index+1, total, q.Question)
	if q.Kind.IsMultipleChoice() {
		for _, label := range q.OptionLabels() {
			fmt.Fprintf(out, "  %s) %s\n", label, q.Options[label])
		}
	}
}

func printSummary(out io.Writer, s *models.InterviewSummary) {
	fmt.Fprintln(out, strings.Repeat("=", 40))
	fmt.Fprintf(out, "%s, %s (%s, %s)\n", s.Company, s.JobTitle, s.Kind, s.Difficulty)
	if s.Kind.IsMultipleChoice() {
		fmt.Fprintf(out, "Score: %.0f%% (%d/%d correct)\n", s.OverallScore, s.CorrectCount, s.QuestionCount)
	} else {
		fmt.Fprintf(out, "Score: %.1f/10 over %d questions\n", s.OverallScore, s.QuestionCount)
	}
	fmt.Fprintf(out, "Duration: %s\n", s.Duration())
}
