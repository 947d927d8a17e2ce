package synthesis

// MaxListItems caps the key concept and difficulty fact lists.
const MaxListItems = 10

// Config holds research synthesis settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	// MaxBlobChars bounds the concatenated source text sent to the model.
	MaxBlobChars int
}

// DefaultConfig returns sensible defaults for research synthesis.
func DefaultConfig() Config {
	return Config{
		MaxTokens:    1024,
		Temperature:  0.3,
		MaxBlobChars: 12000,
	}
}
