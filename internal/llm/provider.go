package llm

import (
	"context"
	"encoding/json"
)

// Provider is the single abstraction the pipeline uses to talk to a
// generative model. Research synthesis sends schema-less requests and reads
// the response as free text; quiz generation sets a Schema and receives
// validated JSON.
type Provider interface {
	// Generate sends one request to the model. When req.Schema is set the
	// provider uses its native structured output mechanism and the returned
	// Content is JSON validated against that schema. When req.Schema is nil
	// the Content is the raw text of the response.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured with.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. Every call in this system is
	// single-turn, so this holds one user message.
	Messages []Message

	// Schema, when set, constrains the response to the given JSON Schema.
	Schema *Schema

	// MaxTokens bounds the response length.
	MaxTokens int

	// Temperature in [0,1]. Zero value means deterministic.
	Temperature float64
}

// Message is a single conversation message.
type Message struct {
	Role    Role
	Content string
}

// Role identifies the message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema the model output must conform to.
type Schema struct {
	// Name identifies the schema, kebab-case, e.g. "quiz-questions".
	Name string

	// Description tells the model what the schema represents.
	Description string

	// Definition is the JSON Schema document as a map.
	Definition map[string]any
}

// Response holds the model output.
type Response struct {
	// Content is validated JSON when the request carried a Schema,
	// otherwise the raw response text.
	Content json.RawMessage

	// Usage reports token consumption.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Text returns the response content as plain text. Structured responses
// come back as their JSON encoding.
func (r *Response) Text() string {
	return string(r.Content)
}
