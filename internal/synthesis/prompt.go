package synthesis

import (
	"fmt"
	"strings"

	"github.com/Tharunnsai/AuntMay/internal/research"
)

const synthesisSystemPrompt = `You are a research analyst condensing web material into study notes for a quiz author.

Rules:
- Base everything strictly on the provided source material. Do not invent facts.
- Write for the requested difficulty level: easier levels get foundational points, harder levels get specifics and nuance.
- Respond in exactly three sections, each starting with its header on its own line: "SUMMARY:", "KEY CONCEPTS:", "DIFFICULTY FACTS:".
- SUMMARY is 3-5 sentences of prose.
- KEY CONCEPTS and DIFFICULTY FACTS are dashed lists, one item per line, at most 10 items each.`

// buildSynthesisUserMessage assembles the URL-tagged research blob and the
// instructions for one synthesis call.
func buildSynthesisUserMessage(topic, difficulty string, sources []research.Source, maxBlobChars int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", topic)
	fmt.Fprintf(&b, "Difficulty: %s\n", difficulty)

	b.WriteString("\nSource material:\n")
	b.WriteString(buildBlob(sources, maxBlobChars))

	b.WriteString("\nCondense the source material into the three sections described in your instructions.")

	return b.String()
}

// buildBlob concatenates the non-empty source texts, each tagged with its
// URL, bounded at maxChars.
func buildBlob(sources []research.Source, maxChars int) string {
	var b strings.Builder
	for _, src := range sources {
		if src.Content == "" {
			continue
		}
		entry := fmt.Sprintf("--- Source: %s ---\n%s\n", src.URL, src.Content)
		if maxChars > 0 && b.Len()+len(entry) > maxChars {
			break
		}
		b.WriteString(entry)
	}
	return b.String()
}
