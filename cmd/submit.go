package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Tharunnsai/AuntMay/internal/evaluator"
	"github.com/Tharunnsai/AuntMay/internal/store"
	"github.com/spf13/cobra"
)

var submitCmd = &cobra.Command{
	Use:   "submit <quiz-id>",
	Short: "Submit answers for a quiz and get a score",
	Long: `Submit answers for a stored quiz.

Each --answer takes the form <question-number>=<option>, e.g. --answer 1=B.
Answers for question numbers the quiz does not have are skipped. The score
is computed over the answers that matched a question.`,
	Args: cobra.ExactArgs(1),
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().StringArray("answer", nil, "Answer as <question>=<option>, repeatable (e.g. --answer 1=B)")
	_ = submitCmd.MarkFlagRequired("answer")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid quiz id %q: %w", args[0], err)
	}
	raw, _ := cmd.Flags().GetStringArray("answer")

	answers, err := parseAnswers(raw)
	if err != nil {
		return err
	}

	log, err := newLogger(cmd)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

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

	ev, err := evaluator.New(log).Evaluate(bundle, answers)
	if err != nil {
		return err
	}

	if err := st.Attempts().Record(ctx, store.Attempt{
		QuizID:  bundle.ID,
		Topic:   bundle.Topic,
		TakenAt: time.Now().UTC(),
		Score:   ev.Score,
	}); err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}

	fmt.Print(renderEvaluation(bundle, ev))
	return nil
}

// parseAnswers converts "<question>=<option>" pairs into Answer values.
func parseAnswers(raw []string) ([]evaluator.Answer, error) {
	answers := make([]evaluator.Answer, 0, len(raw))
	for _, pair := range raw {
		num, opt, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid answer %q: expected <question>=<option>", pair)
		}
		qid, err := strconv.Atoi(strings.TrimSpace(num))
		if err != nil {
			return nil, fmt.Errorf("invalid question number in %q: %w", pair, err)
		}
		answers = append(answers, evaluator.Answer{
			QuestionID:     qid,
			SelectedOption: strings.TrimSpace(opt),
		})
	}
	return answers, nil
}
