package llm

import (
	"context"
	"encoding/json"
)

// OfflineProvider fabricates schema-conforming responses so the whole
// service can run without a reachable model: arrays fill to their minItems,
// integers land midway between their bounds, strings get placeholder text.
// Tests that need exact canned content use MockProvider instead.
type OfflineProvider struct{}

// NewOfflineProvider creates a provider that synthesizes its responses.
func NewOfflineProvider() *OfflineProvider {
	return &OfflineProvider{}
}

// Generate builds a response from the request schema and validates it the
// same way a real provider response would be.
func (o *OfflineProvider) Generate(_ context.Context, req Request) (*Response, error) {
	if req.Schema == nil {
		return &Response{Content: json.RawMessage(`{}`), Model: o.ModelID()}, nil
	}
	content, err := json.Marshal(synthesize(req.Schema.Definition))
	if err != nil {
		return nil, &ErrInvalidResponse{Err: err}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	return &Response{Content: content, Model: o.ModelID()}, nil
}

// ModelID returns "offline".
func (o *OfflineProvider) ModelID() string {
	return "offline"
}

// synthesize builds a value conforming to a JSON Schema definition. It
// covers the object/array/string/integer subset this service's schemas use.
func synthesize(def map[string]any) any {
	typ, _ := def["type"].(string)
	switch typ {
	case "object":
		out := map[string]any{}
		props, _ := def["properties"].(map[string]any)
		for name, sub := range props {
			if subDef, ok := sub.(map[string]any); ok {
				out[name] = synthesize(subDef)
			}
		}
		return out
	case "array":
		n := intFrom(def["minItems"], 1)
		items, _ := def["items"].(map[string]any)
		out := make([]any, n)
		for i := range out {
			out[i] = synthesize(items)
		}
		return out
	case "integer", "number":
		minimum := intFrom(def["minimum"], 0)
		maximum := intFrom(def["maximum"], minimum)
		return (minimum + maximum) / 2
	case "boolean":
		return true
	default:
		return "offline placeholder response"
	}
}

// intFrom reads a numeric schema bound that may carry either a Go int (from
// definitions built in code) or a float64 (from decoded JSON).
func intFrom(v any, fallback int) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return fallback
	}
}
