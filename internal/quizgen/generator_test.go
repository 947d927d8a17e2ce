package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Tharunnsai/AuntMay/internal/llm"
	"github.com/Tharunnsai/AuntMay/internal/synthesis"
)

// validQuizJSON builds a schema-conformant response with n questions.
func validQuizJSON(n int) json.RawMessage {
	var qs []string
	for i := 0; i < n; i++ {
		qs = append(qs, fmt.Sprintf(`{
			"question_text": "Question %d?",
			"options": {"A": "a", "B": "b", "C": "c", "D": "d"},
			"correct_option": "B",
			"explanation": "Because."
		}`, i+1))
	}
	return json.RawMessage(`{"questions":[` + strings.Join(qs, ",") + `]}`)
}

func testInput(n int) GenerateInput {
	return GenerateInput{Topic: "quantum computing", Difficulty: "medium", NumQuestions: n}
}

func TestGenerate_Success(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validQuizJSON(3)})
	gen := New(mock, DefaultConfig())

	qs, err := gen.Generate(context.Background(), testInput(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(qs))
	}
	for i, q := range qs {
		if q.ID != i+1 {
			t.Errorf("question %d has ID %d, want %d", i, q.ID, i+1)
		}
		if q.CorrectOption != "B" {
			t.Errorf("question %d correct option = %q", i, q.CorrectOption)
		}
	}
}

func TestGenerate_CountOutOfRange(t *testing.T) {
	gen := New(llm.NewMockProvider(), DefaultConfig())

	for _, n := range []int{0, -1, MaxQuestions + 1} {
		if _, err := gen.Generate(context.Background(), testInput(n)); err == nil {
			t.Errorf("expected error for count %d", n)
		}
	}
}

func TestGenerate_RequestsStructuredOutput(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validQuizJSON(2)})
	gen := New(mock, DefaultConfig())

	if _, err := gen.Generate(context.Background(), testInput(2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req := mock.Calls[0]
	if req.Schema == nil || req.Schema.Name != QuizSchema.Name {
		t.Fatalf("expected quiz schema on request, got %+v", req.Schema)
	}
	if req.MaxTokens != 2*DefaultConfig().MaxTokensPerQuestion {
		t.Errorf("MaxTokens = %d", req.MaxTokens)
	}
}

func TestGenerate_GroundedPromptUsesResearch(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validQuizJSON(1)})
	gen := New(mock, DefaultConfig())

	input := testInput(1)
	input.Research = &synthesis.TopicResearch{
		Topic:           "quantum computing",
		Summary:         "Qubits hold superpositions.",
		KeyConcepts:     []string{"Superposition"},
		DifficultyFacts: []string{"Decoherence limits depth."},
	}

	if _, err := gen.Generate(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msg := mock.Calls[0].Messages[0].Content
	if !strings.Contains(msg, "Qubits hold superpositions.") {
		t.Error("grounded prompt missing research summary")
	}
}

func TestGenerate_DegradedResearchUsesDirectPrompt(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validQuizJSON(1)})
	gen := New(mock, DefaultConfig())

	input := testInput(1)
	input.Research = synthesis.Placeholder("quantum computing")

	if _, err := gen.Generate(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msg := mock.Calls[0].Messages[0].Content
	if strings.Contains(msg, "Limited information available") {
		t.Error("placeholder research leaked into the prompt")
	}
}

func TestGenerate_ProviderErrorPropagates(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
	)
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), testInput(2))
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestGenerate_WrongCountFailsValidation(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validQuizJSON(2)})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), testInput(5))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !verr.Retryable {
		t.Error("count mismatch should be retryable")
	}
}

func TestGenerate_MalformedJSONFails(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"questions":`)})
	gen := New(mock, DefaultConfig())

	if _, err := gen.Generate(context.Background(), testInput(1)); err == nil {
		t.Fatal("expected error")
	}
}
