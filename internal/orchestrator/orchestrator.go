package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Tharunnsai/AuntMay/internal/quizgen"
	"github.com/Tharunnsai/AuntMay/internal/research"
	"github.com/Tharunnsai/AuntMay/internal/store"
	"github.com/Tharunnsai/AuntMay/internal/synthesis"
)

// ErrGenerationFailed is returned when every generation strategy, including
// the direct fallback, has failed.
var ErrGenerationFailed = errors.New("quiz generation failed")

// InvalidRequestError reports a request rejected before any generation work
// began.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return "invalid request: " + e.Reason
}

// Orchestrator sequences research → synthesis → generation, applies the
// fallback policy, and assembles the final quiz record.
type Orchestrator struct {
	researcher  *research.Researcher
	synthesizer *synthesis.Synthesizer
	generator   quizgen.Generator
	store       store.Store
	log         *zap.Logger

	// Injection points for tests.
	now   func() time.Time
	newID func() uuid.UUID
}

// New creates an Orchestrator. A nil logger is replaced with a no-op
// logger.
func New(
	researcher *research.Researcher,
	synthesizer *synthesis.Synthesizer,
	generator quizgen.Generator,
	st store.Store,
	log *zap.Logger,
) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{
		researcher:  researcher,
		synthesizer: synthesizer,
		generator:   generator,
		store:       st,
		log:         log,
		now:         time.Now,
		newID:       uuid.New,
	}
}

// strategy is one way to produce a question set plus its research artifact.
// Strategies are tried in order, each inside its own failure boundary.
type strategy struct {
	name string
	run  func(ctx context.Context) ([]quizgen.Question, *synthesis.TopicResearch, error)
}

// Generate runs one generation request through the state machine. Each call
// mints a fresh quiz id; identical requests produce independent quizzes.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (*Result, error) {
	req, err := normalize(req)
	if err != nil {
		return nil, err
	}

	state := StateIdle
	strategies := o.plan(req, &state)

	var lastErr error
	for i, strat := range strategies {
		if i > 0 {
			state = o.transition(state, StateFallbackGenerating, req.Topic)
		}

		questions, tr, err := strat.run(ctx)
		if err != nil {
			o.log.Warn("generation strategy failed",
				zap.String("strategy", strat.name),
				zap.String("topic", req.Topic),
				zap.Error(err))
			lastErr = err
			continue
		}

		result, err := o.complete(ctx, req, questions, tr)
		if err != nil {
			lastErr = err
			continue
		}
		o.transition(state, StateCompleted, req.Topic)
		return result, nil
	}

	o.transition(state, StateFailed, req.Topic)
	return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, lastErr)
}

// plan builds the ordered strategy list for the request: the agentic chain
// first when requested, the direct prompt always last.
func (o *Orchestrator) plan(req Request, state *State) []strategy {
	var strategies []strategy

	if req.Mode == ModeAgentic {
		strategies = append(strategies, strategy{
			name: "agentic",
			run: func(ctx context.Context) ([]quizgen.Question, *synthesis.TopicResearch, error) {
				return o.runAgentic(ctx, req, state)
			},
		})
	}

	strategies = append(strategies, strategy{
		name: "direct",
		run: func(ctx context.Context) ([]quizgen.Question, *synthesis.TopicResearch, error) {
			// Direct-mode requests skip research entirely.
			if *state == StateIdle {
				*state = o.transition(*state, StateGeneratingQuiz, req.Topic)
			}
			questions, err := o.generator.Generate(ctx, quizgen.GenerateInput{
				Topic:        req.Topic,
				Difficulty:   req.Difficulty,
				NumQuestions: req.NumQuestions,
			})
			if err != nil {
				return nil, nil, err
			}
			// A placeholder research record keeps the stored shape
			// consistent across modes.
			return questions, synthesis.Placeholder(req.Topic), nil
		},
	})

	return strategies
}

// runAgentic walks the research → synthesis → generation chain. The first
// two stages degrade internally and never fail; only generation can error,
// which sends the caller to the next strategy.
func (o *Orchestrator) runAgentic(ctx context.Context, req Request, state *State) ([]quizgen.Question, *synthesis.TopicResearch, error) {
	*state = o.transition(*state, StateResearching, req.Topic)
	sources := o.researcher.Research(ctx, req.Topic, req.Depth.MaxSources())

	*state = o.transition(*state, StateSynthesizing, req.Topic)
	tr := o.synthesizer.Synthesize(ctx, req.Topic, req.Difficulty, sources)

	*state = o.transition(*state, StateGeneratingQuiz, req.Topic)
	questions, err := o.generator.Generate(ctx, quizgen.GenerateInput{
		Topic:        req.Topic,
		Difficulty:   req.Difficulty,
		NumQuestions: req.NumQuestions,
		Research:     tr,
	})
	if err != nil {
		return nil, nil, err
	}

	return questions, tr, nil
}

// complete assembles and persists the quiz record and its research under a
// freshly minted id.
func (o *Orchestrator) complete(ctx context.Context, req Request, questions []quizgen.Question, tr *synthesis.TopicResearch) (*Result, error) {
	bundle := &store.QuizBundle{
		ID:         o.newID(),
		Topic:      req.Topic,
		Difficulty: req.Difficulty,
		CreatedAt:  o.now().UTC(),
		Questions:  questions,
	}

	if err := o.store.Quizzes().Put(ctx, bundle); err != nil {
		return nil, fmt.Errorf("persist quiz: %w", err)
	}
	if err := o.store.Research().Put(ctx, bundle.ID, tr); err != nil {
		// Do not leave a quiz without its research record.
		if delErr := o.store.Quizzes().Delete(ctx, bundle.ID); delErr != nil {
			o.log.Warn("rollback quiz after research persist failure",
				zap.String("quiz_id", bundle.ID.String()), zap.Error(delErr))
		}
		return nil, fmt.Errorf("persist research: %w", err)
	}

	o.log.Info("quiz generated",
		zap.String("quiz_id", bundle.ID.String()),
		zap.String("topic", req.Topic),
		zap.Int("questions", len(questions)),
		zap.Bool("research_degraded", tr.Degraded))

	return &Result{
		QuizID:     bundle.ID,
		Topic:      bundle.Topic,
		Difficulty: bundle.Difficulty,
		Status:     "completed",
		Questions:  bundle.Questions,
		Research:   tr,
	}, nil
}

// transition logs a state change and returns the new state.
func (o *Orchestrator) transition(from, to State, topic string) State {
	if from != to {
		o.log.Debug("state transition",
			zap.String("from", string(from)),
			zap.String("to", string(to)),
			zap.String("topic", topic))
	}
	return to
}

// normalize validates the request and fills defaults.
func normalize(req Request) (Request, error) {
	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		return req, &InvalidRequestError{Reason: "topic must not be empty"}
	}
	if req.NumQuestions < quizgen.MinQuestions || req.NumQuestions > quizgen.MaxQuestions {
		return req, &InvalidRequestError{
			Reason: fmt.Sprintf("numQuestions must be between %d and %d",
				quizgen.MinQuestions, quizgen.MaxQuestions),
		}
	}

	req.Difficulty = strings.ToLower(strings.TrimSpace(req.Difficulty))
	if req.Difficulty == "" {
		req.Difficulty = "medium"
	}
	if req.Mode == "" {
		req.Mode = ModeAgentic
	}
	if req.Depth == "" {
		req.Depth = DepthComprehensive
	}

	return req, nil
}
