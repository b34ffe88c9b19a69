// Package llm abstracts the language-model collaborator behind a small
// Provider interface. All fragile parsing of model output lives here:
// callers receive schema-validated JSON or a typed error, never a raw
// completion string.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is the injected capability for talking to a language model.
type Provider interface {
	// Generate sends a prompt and returns structured output. When the
	// request carries a Schema, the returned Content is JSON validated
	// against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured with.
	ModelID() string
}

// Request describes a single generation call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// User is the user-turn prompt. All calls in this service are single-turn.
	User string

	// Schema is the JSON Schema the response must conform to. Required for
	// every production call in this service.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness, 0.0 - 1.0.
	Temperature float64
}

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies the schema, kebab-case. Used as the schema name for
	// the provider's structured-output mechanism and as the cache key.
	Name string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model's output.
type Response struct {
	// Content is the validated JSON object when a Schema was requested.
	Content json.RawMessage

	// Model is the model that actually served the request.
	Model string
}
