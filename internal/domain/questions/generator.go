// Package questions defines the contract for generating interview questions
// from a job profile.
package questions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/CulturalProfessor/mettl-hack/internal/domain/model"
	"github.com/CulturalProfessor/mettl-hack/internal/llm"
	"github.com/CulturalProfessor/mettl-hack/pkg/metrics"
)

// ErrGeneration indicates the collaborator failed to produce a usable
// question set: malformed output, wrong arity, timeout, or provider outage.
var ErrGeneration = errors.New("question generation failed")

// Profile describes the job an interview session is generated for.
type Profile struct {
	JobDescription  string
	JobRequirements string
	Difficulty      string
}

// Generator produces exactly model.SlotCount question strings, in a stable
// order, for a job profile.
type Generator interface {
	Generate(ctx context.Context, p Profile) ([]string, error)
}

// Default generation parameters.
const (
	defaultMaxTokens   = 1000
	defaultTemperature = 0.5
)

// questionSetSchema is the strict shape the model must return.
var questionSetSchema = &llm.Schema{
	Name: "interview-question-set",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": model.SlotCount,
				"maxItems": model.SlotCount,
				"items": map[string]any{
					"type":      "string",
					"minLength": 1,
				},
			},
		},
		"required":             []string{"questions"},
		"additionalProperties": false,
	},
}

// LLMGenerator implements Generator on top of an injected llm.Provider.
type LLMGenerator struct {
	provider    llm.Provider
	maxTokens   int
	temperature float64
}

// Option applies a configuration option to the LLMGenerator.
type Option func(*LLMGenerator)

// WithMaxTokens caps the completion length.
func WithMaxTokens(n int) Option {
	return func(g *LLMGenerator) {
		if n > 0 {
			g.maxTokens = n
		}
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(g *LLMGenerator) {
		if t >= 0 {
			g.temperature = t
		}
	}
}

// NewLLMGenerator creates a question generator backed by the given provider.
func NewLLMGenerator(provider llm.Provider, opts ...Option) *LLMGenerator {
	g := &LLMGenerator{
		provider:    provider,
		maxTokens:   defaultMaxTokens,
		temperature: defaultTemperature,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate asks the model for the full question set and enforces the
// exactly-SlotCount contract. Any failure surfaces as ErrGeneration.
func (g *LLMGenerator) Generate(ctx context.Context, p Profile) ([]string, error) {
	start := time.Now()
	defer func() { metrics.RecordGenerationLatency(float64(time.Since(start).Milliseconds())) }()

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt(p),
		User:        "What are questions related to the job description and job requirements?",
		Schema:      questionSetSchema,
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	var payload struct {
		Questions []string `json:"questions"`
	}
	if err := json.Unmarshal(resp.Content, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrGeneration, err)
	}
	if len(payload.Questions) != model.SlotCount {
		return nil, fmt.Errorf("%w: got %d questions, want %d", ErrGeneration, len(payload.Questions), model.SlotCount)
	}
	for i, q := range payload.Questions {
		if strings.TrimSpace(q) == "" {
			return nil, fmt.Errorf("%w: blank question at index %d", ErrGeneration, i)
		}
	}
	return payload.Questions, nil
}

func systemPrompt(p Profile) string {
	var b strings.Builder
	b.WriteString("Generate exactly ")
	fmt.Fprintf(&b, "%d interview questions for a candidate.\n", model.SlotCount)
	fmt.Fprintf(&b, "Job description: %s\n", p.JobDescription)
	fmt.Fprintf(&b, "Job requirements: %s\n", p.JobRequirements)
	fmt.Fprintf(&b, "Difficulty: %s\n", p.Difficulty)
	fmt.Fprintf(&b, "The questions at index 0 and %d must be about the candidate's personal background; all other questions must test technical knowledge for the role.\n", model.SlotCount-1)
	b.WriteString("Return the questions in interview order.")
	return b.String()
}
