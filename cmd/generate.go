package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Tharunnsai/AuntMay/internal/llm"
	"github.com/Tharunnsai/AuntMay/internal/orchestrator"
	"github.com/Tharunnsai/AuntMay/internal/quizgen"
	"github.com/Tharunnsai/AuntMay/internal/research"
	"github.com/Tharunnsai/AuntMay/internal/store"
	"github.com/Tharunnsai/AuntMay/internal/synthesis"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new quiz",
	Long: `Generate a multiple-choice quiz on a topic.

In agentic mode (the default) the topic is researched on the web first and
questions are grounded in what was found. Direct mode asks the model from
its own knowledge. If the agentic pipeline fails, generation falls back to
direct mode automatically.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("topic", "", "Quiz topic (required)")
	generateCmd.Flags().String("difficulty", "medium", "Difficulty: easy, medium, or hard")
	generateCmd.Flags().Int("questions", 5, "Number of questions (1-50)")
	generateCmd.Flags().String("mode", "agentic", "Generation mode: agentic or direct")
	generateCmd.Flags().String("depth", "comprehensive", "Research depth: basic, comprehensive, or expert")
	generateCmd.Flags().Duration("timeout", 3*time.Minute, "Overall generation timeout")
	_ = generateCmd.MarkFlagRequired("topic")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	difficulty, _ := cmd.Flags().GetString("difficulty")
	questions, _ := cmd.Flags().GetInt("questions")
	mode, _ := cmd.Flags().GetString("mode")
	depth, _ := cmd.Flags().GetString("depth")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	log, err := newLogger(cmd)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := llm.ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			return fmt.Errorf("no LLM provider configured: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Using %s provider discovered from environment.\n", discovered.Provider)
		cfg = discovered
	}

	provider, err := llm.NewProvider(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("create LLM provider: %w", err)
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

	orch := orchestrator.New(
		research.NewResearcher(research.NewDuckDuckGo(), research.NewExtractor(log), log),
		synthesis.NewSynthesizer(provider, synthesis.DefaultConfig(), log),
		quizgen.New(provider, quizgen.DefaultConfig()),
		st,
		log,
	)

	fmt.Printf("Generating a %d-question %s quiz on %q...\n\n", questions, difficulty, topic)

	result, err := orch.Generate(ctx, orchestrator.Request{
		Topic:        topic,
		Difficulty:   difficulty,
		NumQuestions: questions,
		Mode:         orchestrator.Mode(mode),
		Depth:        orchestrator.Depth(depth),
	})
	if err != nil {
		return err
	}

	fmt.Print(renderResult(result))
	fmt.Printf("\nAnswers are hidden. Reveal them with:\n  auntmay show %s --answers\n", result.QuizID)
	fmt.Printf("Submit answers with:\n  auntmay submit %s --answer 1=A --answer 2=C ...\n", result.QuizID)
	return nil
}
