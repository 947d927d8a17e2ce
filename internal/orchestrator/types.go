package orchestrator

import (
	"github.com/google/uuid"

	"github.com/Tharunnsai/AuntMay/internal/quizgen"
	"github.com/Tharunnsai/AuntMay/internal/synthesis"
)

// Mode selects the generation pipeline.
type Mode string

const (
	// ModeAgentic researches the topic on the web before generating.
	ModeAgentic Mode = "agentic"

	// ModeDirect generates from the model's own knowledge.
	ModeDirect Mode = "direct"
)

// Depth controls how many sources a research pass gathers.
type Depth string

const (
	DepthBasic         Depth = "basic"
	DepthComprehensive Depth = "comprehensive"
	DepthExpert        Depth = "expert"
)

// MaxSources maps the depth to a source count. Unknown depths get the
// comprehensive default.
func (d Depth) MaxSources() int {
	switch d {
	case DepthBasic:
		return 3
	case DepthExpert:
		return 8
	default:
		return 5
	}
}

// Request is one quiz generation request.
type Request struct {
	Topic        string
	Difficulty   string
	NumQuestions int
	Mode         Mode
	Depth        Depth
}

// Result is the outcome of a completed generation.
type Result struct {
	QuizID     uuid.UUID
	Topic      string
	Difficulty string
	Status     string
	Questions  []quizgen.Question
	Research   *synthesis.TopicResearch
}
