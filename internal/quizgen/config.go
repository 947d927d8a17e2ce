package quizgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every generated question set; the first
	// failure stops the pipeline.
	Validators []Validator

	// MaxTokensPerQuestion sizes the response token budget: the request
	// budget is NumQuestions times this value.
	MaxTokensPerQuestion int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns a Config with the standard validator chain and
// recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
		},
		MaxTokensPerQuestion: 300,
		Temperature:          0.7,
	}
}
