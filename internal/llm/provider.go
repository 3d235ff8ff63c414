// Package llm wraps the external model provider behind a narrow
// prompt-in, schema-constrained-JSON-out interface so the concrete
// provider stays swappable and mockable.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is the single entry point to the model provider.
type Provider interface {
	// Generate sends one prompt and returns structured JSON. When the
	// request carries a Schema the provider must return content
	// conforming to it; the reply is re-validated here regardless.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured
	// to use.
	ModelID() string
}

// Request describes one generation call.
type Request struct {
	// Prompt is the rendered user prompt. Single-turn only; this
	// service never holds a conversation.
	Prompt string

	// Schema constrains the response to a JSON structure. Required for
	// quiz generation; nil means free-form text.
	Schema *Schema

	// MaxTokens caps the response length. 0 means provider default.
	MaxTokens int

	// Temperature controls sampling randomness, 0.0-1.0.
	Temperature float64
}

// Schema names a JSON Schema the response must conform to.
type Schema struct {
	// Name identifies the schema to the provider, kebab-case.
	Name string

	// Definition is the JSON Schema document as a map.
	Definition map[string]any
}

// Response is the provider's answer plus its metering.
type Response struct {
	// Content is the generated JSON, already validated against the
	// request schema when one was set.
	Content json.RawMessage

	// Usage is the token accounting the provider reported for this call.
	Usage Usage

	// Model is the model that actually served the request.
	Model string
}

// Usage is per-call token metering as reported by the provider.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
