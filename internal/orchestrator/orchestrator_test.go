package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Tharunnsai/AuntMay/internal/llm"
	"github.com/Tharunnsai/AuntMay/internal/quizgen"
	"github.com/Tharunnsai/AuntMay/internal/research"
	"github.com/Tharunnsai/AuntMay/internal/store"
	"github.com/Tharunnsai/AuntMay/internal/synthesis"
)

// stubGenerator returns canned question sets or errors in FIFO order and
// records the inputs it saw.
type stubGenerator struct {
	results []stubResult
	inputs  []quizgen.GenerateInput
}

type stubResult struct {
	questions []quizgen.Question
	err       error
}

func (g *stubGenerator) Generate(_ context.Context, input quizgen.GenerateInput) ([]quizgen.Question, error) {
	g.inputs = append(g.inputs, input)
	if len(g.results) == 0 {
		return nil, errors.New("stub exhausted")
	}
	res := g.results[0]
	g.results = g.results[1:]
	return res.questions, res.err
}

// emptySearch is a SearchProvider that finds nothing.
type emptySearch struct{}

func (emptySearch) Search(context.Context, string, int) ([]research.SearchHit, error) {
	return nil, nil
}

func questions(n int) []quizgen.Question {
	qs := make([]quizgen.Question, n)
	for i := range qs {
		qs[i] = quizgen.Question{
			ID:            i + 1,
			Text:          "Q?",
			Options:       map[string]string{"A": "a", "B": "b", "C": "c", "D": "d"},
			CorrectOption: "A",
			Explanation:   "Because.",
		}
	}
	return qs
}

// testOrchestrator wires an Orchestrator whose research pass finds nothing
// (so synthesis degrades to the placeholder without network access).
func testOrchestrator(t *testing.T, gen quizgen.Generator) (*Orchestrator, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	synth := synthesis.NewSynthesizer(llm.NewMockProvider(), synthesis.DefaultConfig(), nil)
	researcher := research.NewResearcher(emptySearch{}, research.NewExtractor(nil), nil)
	o := New(researcher, synth, gen, st, nil)
	o.now = func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) }
	return o, st
}

func TestGenerate_DirectMode(t *testing.T) {
	gen := &stubGenerator{results: []stubResult{{questions: questions(3)}}}
	o, st := testOrchestrator(t, gen)

	result, err := o.Generate(context.Background(), Request{
		Topic:        "the Roman Empire",
		NumQuestions: 3,
		Mode:         ModeDirect,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != "completed" {
		t.Errorf("status = %q", result.Status)
	}
	if len(result.Questions) != 3 {
		t.Errorf("questions = %d", len(result.Questions))
	}
	if !result.Research.Degraded {
		t.Error("direct mode should store placeholder research")
	}
	// Direct mode must not feed research into generation.
	if gen.inputs[0].Research != nil {
		t.Error("direct generation received research")
	}

	stored, err := st.Quizzes().Get(context.Background(), result.QuizID)
	if err != nil {
		t.Fatalf("stored quiz not found: %v", err)
	}
	if stored.Topic != "the Roman Empire" {
		t.Errorf("stored topic = %q", stored.Topic)
	}
	if _, err := st.Research().Get(context.Background(), result.QuizID); err != nil {
		t.Fatalf("stored research not found: %v", err)
	}
}

func TestGenerate_AgenticWithNoSourcesStillCompletes(t *testing.T) {
	gen := &stubGenerator{results: []stubResult{{questions: questions(2)}}}
	o, _ := testOrchestrator(t, gen)

	result, err := o.Generate(context.Background(), Request{
		Topic:        "quantum computing",
		NumQuestions: 2,
		Mode:         ModeAgentic,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Research.Degraded {
		t.Error("expected degraded research when search finds nothing")
	}
	// The generator still runs once, with the placeholder attached.
	if len(gen.inputs) != 1 {
		t.Fatalf("generator called %d times", len(gen.inputs))
	}
	if gen.inputs[0].Research == nil || !gen.inputs[0].Research.Degraded {
		t.Error("agentic generation should receive the placeholder research")
	}
}

func TestGenerate_FallbackAfterPrimaryFailure(t *testing.T) {
	gen := &stubGenerator{results: []stubResult{
		{err: errors.New("model refused")},
		{questions: questions(4)},
	}}
	o, _ := testOrchestrator(t, gen)

	result, err := o.Generate(context.Background(), Request{
		Topic:        "photosynthesis",
		NumQuestions: 4,
		Mode:         ModeAgentic,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != "completed" {
		t.Errorf("status = %q", result.Status)
	}
	if len(gen.inputs) != 2 {
		t.Fatalf("generator called %d times, want 2", len(gen.inputs))
	}
	// The fallback is the direct strategy: no research attached.
	if gen.inputs[1].Research != nil {
		t.Error("fallback generation received research")
	}
}

func TestGenerate_AllStrategiesFail(t *testing.T) {
	gen := &stubGenerator{results: []stubResult{
		{err: errors.New("primary down")},
		{err: errors.New("fallback down")},
	}}
	o, st := testOrchestrator(t, gen)

	_, err := o.Generate(context.Background(), Request{
		Topic:        "photosynthesis",
		NumQuestions: 4,
		Mode:         ModeAgentic,
	})
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
	// Nothing may be persisted on failure.
	quizzes, _ := st.Quizzes().List(context.Background())
	if len(quizzes) != 0 {
		t.Errorf("failed generation persisted %d quizzes", len(quizzes))
	}
}

func TestGenerate_InvalidRequests(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{"empty topic", Request{Topic: "   ", NumQuestions: 3}},
		{"zero questions", Request{Topic: "rome", NumQuestions: 0}},
		{"too many questions", Request{Topic: "rome", NumQuestions: quizgen.MaxQuestions + 1}},
	}
	o, _ := testOrchestrator(t, &stubGenerator{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := o.Generate(context.Background(), tt.req)
			var invalid *InvalidRequestError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidRequestError, got %v", err)
			}
		})
	}
}

func TestGenerate_NormalizesDifficulty(t *testing.T) {
	gen := &stubGenerator{results: []stubResult{{questions: questions(1)}}}
	o, _ := testOrchestrator(t, gen)

	result, err := o.Generate(context.Background(), Request{
		Topic:        "rome",
		Difficulty:   "  HARD ",
		NumQuestions: 1,
		Mode:         ModeDirect,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Difficulty != "hard" {
		t.Errorf("difficulty = %q", result.Difficulty)
	}
}

func TestGenerate_DefaultsApplied(t *testing.T) {
	gen := &stubGenerator{results: []stubResult{{questions: questions(1)}}}
	o, _ := testOrchestrator(t, gen)

	result, err := o.Generate(context.Background(), Request{
		Topic:        "rome",
		NumQuestions: 1,
		Mode:         ModeDirect,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Difficulty != "medium" {
		t.Errorf("default difficulty = %q", result.Difficulty)
	}
}

func TestGenerate_FreshIDPerCall(t *testing.T) {
	gen := &stubGenerator{results: []stubResult{
		{questions: questions(1)},
		{questions: questions(1)},
	}}
	o, _ := testOrchestrator(t, gen)

	req := Request{Topic: "rome", NumQuestions: 1, Mode: ModeDirect}
	a, err := o.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := o.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.QuizID == b.QuizID {
		t.Error("identical requests must mint distinct quiz ids")
	}
}

func TestGenerate_TrimsTopic(t *testing.T) {
	gen := &stubGenerator{results: []stubResult{{questions: questions(1)}}}
	o, _ := testOrchestrator(t, gen)

	result, err := o.Generate(context.Background(), Request{
		Topic:        "  rome  ",
		NumQuestions: 1,
		Mode:         ModeDirect,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Topic != "rome" {
		t.Errorf("topic = %q", result.Topic)
	}
}

func TestDepth_MaxSources(t *testing.T) {
	tests := []struct {
		depth Depth
		want  int
	}{
		{DepthBasic, 3},
		{DepthComprehensive, 5},
		{DepthExpert, 8},
		{Depth("unknown"), 5},
		{Depth(""), 5},
	}
	for _, tt := range tests {
		if got := tt.depth.MaxSources(); got != tt.want {
			t.Errorf("MaxSources(%q) = %d, want %d", tt.depth, got, tt.want)
		}
	}
}

func TestGenerate_InjectedClockUsedForCreatedAt(t *testing.T) {
	gen := &stubGenerator{results: []stubResult{{questions: questions(1)}}}
	o, st := testOrchestrator(t, gen)
	fixed := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	result, err := o.Generate(context.Background(), Request{
		Topic: "rome", NumQuestions: 1, Mode: ModeDirect,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored, err := st.Quizzes().Get(context.Background(), result.QuizID)
	if err != nil {
		t.Fatalf("stored quiz not found: %v", err)
	}
	if !stored.CreatedAt.Equal(fixed) {
		t.Errorf("created at = %s, want %s", stored.CreatedAt, fixed)
	}
}

func TestInvalidRequestError_Message(t *testing.T) {
	err := &InvalidRequestError{Reason: "topic must not be empty"}
	if !strings.Contains(err.Error(), "topic must not be empty") {
		t.Errorf("error = %q", err.Error())
	}
}
