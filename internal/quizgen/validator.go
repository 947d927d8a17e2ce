package quizgen

import "fmt"

// Validator checks a generated question set for correctness.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for error messages, e.g. "structural".
	Name() string

	// Validate checks the question set and returns nil if it passes.
	Validate(qs []Question, input GenerateInput) *ValidationError
}

// ValidationError describes why a question set failed validation.
type ValidationError struct {
	Validator string // which validator failed
	Message   string // what was wrong
	Retryable bool   // whether regeneration is likely to fix it
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// StructuralValidator enforces the invariants the orchestrator relies on:
// the requested count, ids sequential from 1, four lettered options per
// question, a correct key present in its own options, and non-empty text. Structured decoding
// should already guarantee most of this; the check runs at the boundary
// where primary and fallback results merge.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(qs []Question, input GenerateInput) *ValidationError {
	if len(qs) == 0 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "question list is empty",
			Retryable: true,
		}
	}
	if len(qs) != input.NumQuestions {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("got %d questions, requested %d", len(qs), input.NumQuestions),
			Retryable: true,
		}
	}

	for i, q := range qs {
		if q.ID != i+1 {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question at position %d has id %d, want %d", i, q.ID, i+1),
				Retryable: true,
			}
		}
		if q.Text == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d has empty text", q.ID),
				Retryable: true,
			}
		}
		if q.Explanation == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d has empty explanation", q.ID),
				Retryable: true,
			}
		}
		if len(q.Options) != len(OptionKeys) {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d has %d options, want %d", q.ID, len(q.Options), len(OptionKeys)),
				Retryable: true,
			}
		}
		for _, key := range OptionKeys {
			if text, ok := q.Options[key]; !ok || text == "" {
				return &ValidationError{
					Validator: v.Name(),
					Message:   fmt.Sprintf("question %d is missing option %s", q.ID, key),
					Retryable: true,
				}
			}
		}
		if _, ok := q.Options[q.CorrectOption]; !ok {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d correct option %q is not among its options", q.ID, q.CorrectOption),
				Retryable: true,
			}
		}
	}

	return nil
}
