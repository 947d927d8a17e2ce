package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Tharunnsai/AuntMay/internal/store"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <quiz-id>",
	Short: "Show a stored quiz",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().Bool("answers", false, "Reveal correct answers and explanations")
	showCmd.Flags().Bool("research", false, "Show the research record instead of the questions")
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid quiz id %q: %w", args[0], err)
	}
	showAnswers, _ := cmd.Flags().GetBool("answers")
	showResearch, _ := cmd.Flags().GetBool("research")

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	bundle, err := st.Quizzes().Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("quiz %s not found", id)
	}
	if err != nil {
		return fmt.Errorf("get quiz: %w", err)
	}

	if showResearch {
		tr, err := st.Research().Get(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no research stored for quiz %s", id)
		}
		if err != nil {
			return fmt.Errorf("get research: %w", err)
		}
		fmt.Println(titleStyle.Render(fmt.Sprintf("Research: %s", bundle.Topic)))
		fmt.Println()
		fmt.Print(renderResearch(tr))
		return nil
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Quiz: %s", bundle.Topic)))
	fmt.Println(dimStyle.Render(fmt.Sprintf("id %s · %s · created %s",
		bundle.ID, bundle.Difficulty, bundle.CreatedAt.Local().Format("2006-01-02 15:04"))))
	fmt.Println()
	fmt.Print(renderQuestions(bundle.Questions, showAnswers))
	return nil
}
