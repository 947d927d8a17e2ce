package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/Tharunnsai/AuntMay/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored quizzes and past attempts",
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
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

	quizzes, err := st.Quizzes().List(ctx)
	if err != nil {
		return fmt.Errorf("list quizzes: %w", err)
	}
	if len(quizzes) == 0 {
		fmt.Println("No quizzes yet. Create one with: auntmay generate --topic <topic>")
		return nil
	}

	fmt.Println(titleStyle.Render("Quizzes"))
	fmt.Printf("%-36s  %-16s  %-10s  %-9s  %s\n", "ID", "Created", "Difficulty", "Questions", "Topic")
	fmt.Println(strings.Repeat("─", 100))
	for _, q := range quizzes {
		topic := q.Topic
		if len(topic) > 40 {
			topic = topic[:40]
		}
		fmt.Printf("%-36s  %-16s  %-10s  %-9d  %s\n",
			q.ID,
			q.CreatedAt.Local().Format("2006-01-02 15:04"),
			q.Difficulty,
			len(q.Questions),
			topic,
		)
	}

	attempts, err := st.Attempts().List(ctx)
	if err != nil {
		return fmt.Errorf("list attempts: %w", err)
	}
	if len(attempts) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println(titleStyle.Render("Attempts"))
	fmt.Printf("%-36s  %-16s  %-6s  %s\n", "Quiz", "Taken", "Score", "Topic")
	fmt.Println(strings.Repeat("─", 80))
	for _, a := range attempts {
		fmt.Printf("%-36s  %-16s  %-6s  %s\n",
			a.QuizID,
			a.TakenAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%d%%", a.Score),
			a.Topic,
		)
	}
	return nil
}
