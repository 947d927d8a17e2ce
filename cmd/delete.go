package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Tharunnsai/AuntMay/internal/store"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <quiz-id>",
	Short: "Delete a quiz and its research and attempts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid quiz id %q: %w", args[0], err)
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		if err := st.Quizzes().Delete(context.Background(), id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("quiz %s not found", id)
			}
			return fmt.Errorf("delete quiz: %w", err)
		}

		fmt.Println("Deleted quiz", id)
		return nil
	},
}
