package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a quiz author creating multiple-choice questions.

Rules:
- Generate exactly the requested number of questions on the given topic at the given difficulty.
- Every question has exactly 4 options keyed A-D, with exactly one correct option.
- Distractors must be plausible but clearly wrong to someone who knows the material, never trick wording.
- No two questions may test the same point.
- Each explanation states why the correct answer is correct in 1-3 sentences.
- When source material is provided, every question must be answerable from it. Without source material, draw on your own knowledge of the topic.`

// buildUserMessage constructs the user message for either prompt variant:
// research-grounded when usable research is attached, direct otherwise.
func buildUserMessage(in GenerateInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", in.Topic)
	fmt.Fprintf(&b, "Difficulty: %s\n", in.Difficulty)
	fmt.Fprintf(&b, "Number of questions: %d\n", in.NumQuestions)

	if in.grounded() {
		b.WriteString("\nResearch summary:\n")
		b.WriteString(in.Research.Summary)
		b.WriteString("\n\nKey concepts:\n")
		for _, c := range in.Research.KeyConcepts {
			fmt.Fprintf(&b, "- %s\n", c)
		}
		b.WriteString("\nFacts to draw questions from:\n")
		for _, f := range in.Research.DifficultyFacts {
			fmt.Fprintf(&b, "- %s\n", f)
		}
		b.WriteString("\nGround every question in the material above.")
	} else {
		b.WriteString("\nNo source material is available. Generate the questions from your own knowledge of the topic.")
	}

	return b.String()
}
