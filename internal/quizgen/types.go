package quizgen

import "github.com/Tharunnsai/AuntMay/internal/synthesis"

// OptionKeys are the four answer option letters, in display order.
var OptionKeys = []string{"A", "B", "C", "D"}

// Limits on the requested question count.
const (
	MinQuestions = 1
	MaxQuestions = 50
)

// Question is one validated multiple-choice question.
type Question struct {
	// ID is a positive integer unique within the quiz, assigned
	// sequentially from 1.
	ID int `json:"questionId"`

	// Text is the question prompt.
	Text string `json:"questionText"`

	// Options maps each of the four letter keys A-D to its answer text.
	Options map[string]string `json:"options"`

	// CorrectOption is the letter key of the correct answer. Always one of
	// Options' keys.
	CorrectOption string `json:"correctOption"`

	// Explanation says why the correct answer is correct.
	Explanation string `json:"explanation"`
}

// CorrectAnswer returns the single-entry key→text form of the correct
// answer.
func (q Question) CorrectAnswer() map[string]string {
	return map[string]string{q.CorrectOption: q.Options[q.CorrectOption]}
}

// GenerateInput holds all context needed to generate one quiz.
type GenerateInput struct {
	// Topic is the quiz subject.
	Topic string

	// Difficulty is "easy", "medium", or "hard".
	Difficulty string

	// NumQuestions is the exact number of questions to produce (1-50).
	NumQuestions int

	// Research, when present and not degraded, grounds the prompt on the
	// synthesized material. Nil or degraded research selects the direct
	// prompt variant.
	Research *synthesis.TopicResearch
}

// grounded reports whether the research-grounded prompt variant applies.
func (in GenerateInput) grounded() bool {
	return in.Research != nil && !in.Research.Degraded
}
