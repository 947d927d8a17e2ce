package quizgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Tharunnsai/AuntMay/internal/llm"
)

// Generator produces validated quiz question sets.
type Generator interface {
	// Generate produces exactly input.NumQuestions validated questions, or
	// fails with a generation error. It never partially succeeds.
	Generate(ctx context.Context, input GenerateInput) ([]Question, error)
}

// LLMGenerator implements Generator using structured model output.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates an LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// quizOutput is the raw structured response before validation.
type quizOutput struct {
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	QuestionText  string            `json:"question_text"`
	Options       map[string]string `json:"options"`
	CorrectOption string            `json:"correct_option"`
	Explanation   string            `json:"explanation"`
}

// Generate produces the requested question set. The prompt variant follows
// the input: research-grounded when usable research is attached, direct
// otherwise.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) ([]Question, error) {
	if input.NumQuestions < MinQuestions || input.NumQuestions > MaxQuestions {
		return nil, fmt.Errorf("question count %d out of range %d-%d",
			input.NumQuestions, MinQuestions, MaxQuestions)
	}

	purpose := "quiz-gen-direct"
	if input.grounded() {
		purpose = "quiz-gen-grounded"
	}
	ctx = llm.WithPurpose(ctx, purpose)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input)},
		},
		Schema:      QuizSchema,
		MaxTokens:   input.NumQuestions * g.config.MaxTokensPerQuestion,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("quiz generation failed: %w", err)
	}

	var raw quizOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse quiz response: %w", err)
	}

	questions := make([]Question, len(raw.Questions))
	for i, q := range raw.Questions {
		questions[i] = Question{
			ID:            i + 1,
			Text:          q.QuestionText,
			Options:       q.Options,
			CorrectOption: q.CorrectOption,
			Explanation:   q.Explanation,
		}
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(questions, input); verr != nil {
			return nil, verr
		}
	}

	return questions, nil
}
