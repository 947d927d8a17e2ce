package synthesis

import "github.com/Tharunnsai/AuntMay/internal/research"

// TopicResearch is the structured artifact a research pass condenses into.
// It is never nil after synthesis: total research failure degrades to the
// placeholder form rather than an absent record.
type TopicResearch struct {
	// Topic is the user-supplied research topic.
	Topic string `json:"topic"`

	// Summary is a prose summary of the gathered material.
	Summary string `json:"summary"`

	// KeyConcepts lists the concepts a quiz should cover, most important
	// first. At most MaxListItems entries.
	KeyConcepts []string `json:"keyConcepts"`

	// DifficultyFacts lists facts appropriate for the requested difficulty.
	// At most MaxListItems entries.
	DifficultyFacts []string `json:"difficultyFacts"`

	// Sources are the ranked sources the synthesis drew from. Empty in the
	// placeholder form.
	Sources []research.Source `json:"sources"`

	// Degraded marks the placeholder form produced when no sources were
	// found or the synthesis call failed. Quiz generation does not ground
	// its prompt on degraded research.
	Degraded bool `json:"degraded"`
}

// Placeholder returns the minimal TopicResearch used when research produced
// nothing usable.
func Placeholder(topic string) *TopicResearch {
	return &TopicResearch{
		Topic:           topic,
		Summary:         "Limited information available about " + topic + ".",
		KeyConcepts:     []string{topic},
		DifficultyFacts: []string{"General knowledge about " + topic},
		Sources:         []research.Source{},
		Degraded:        true,
	}
}
