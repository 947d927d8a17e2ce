package synthesis

import (
	"context"

	"go.uber.org/zap"

	"github.com/Tharunnsai/AuntMay/internal/llm"
	"github.com/Tharunnsai/AuntMay/internal/research"
)

// Synthesizer condenses ranked sources into a TopicResearch via a free-text
// model call. It never fails: every error path degrades to the placeholder
// form.
type Synthesizer struct {
	provider llm.Provider
	cfg      Config
	log      *zap.Logger
}

// NewSynthesizer creates a Synthesizer. A nil logger is replaced with a
// no-op logger.
func NewSynthesizer(provider llm.Provider, cfg Config, log *zap.Logger) *Synthesizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Synthesizer{provider: provider, cfg: cfg, log: log}
}

// Synthesize returns a non-nil TopicResearch for the topic. With zero
// sources the model is not consulted at all and the placeholder form is
// returned; a failed model call or an unparseable response degrades the
// same way. A parse miss on a single field only substitutes that field.
func (s *Synthesizer) Synthesize(ctx context.Context, topic, difficulty string, sources []research.Source) *TopicResearch {
	if len(sources) == 0 {
		s.log.Info("synthesis: no sources, using placeholder research",
			zap.String("topic", topic))
		return Placeholder(topic)
	}

	ctx = llm.WithPurpose(ctx, "research-synthesis")

	req := llm.Request{
		System: synthesisSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildSynthesisUserMessage(topic, difficulty, sources, s.cfg.MaxBlobChars)},
		},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		s.log.Warn("synthesis: model call failed, falling back to placeholder",
			zap.String("topic", topic), zap.Error(err))
		return Placeholder(topic)
	}

	summary, concepts, facts := parseSections(resp.Text())

	// Per-field degradation: a miss on one section must not blank the rest.
	if summary == "" {
		s.log.Warn("synthesis: no summary section parsed", zap.String("topic", topic))
		summary = "Research summary for " + topic + "."
	}
	if len(concepts) == 0 {
		s.log.Warn("synthesis: no key concepts parsed", zap.String("topic", topic))
		concepts = []string{topic}
	}
	if len(facts) == 0 {
		s.log.Warn("synthesis: no difficulty facts parsed", zap.String("topic", topic))
		facts = []string{"General knowledge about " + topic}
	}

	return &TopicResearch{
		Topic:           topic,
		Summary:         summary,
		KeyConcepts:     concepts,
		DifficultyFacts: facts,
		Sources:         sources,
	}
}
