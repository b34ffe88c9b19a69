// Package scoring defines the contract for scoring a candidate's answer to
// a single interview question.
package scoring

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

// ErrScoring indicates the collaborator failed to produce a usable score:
// malformed output, out-of-range value, timeout, or provider outage.
var ErrScoring = errors.New("answer scoring failed")

// Input carries everything the scorer needs for one answer.
type Input struct {
	Question   string
	Answer     string
	Difficulty string
}

// Scorer computes an integer score in [model.MinScore, model.MaxScore].
type Scorer interface {
	Score(ctx context.Context, in Input) (int, error)
}

// Default scoring parameters. Scoring wants determinism, so the
// temperature stays at zero.
const (
	defaultMaxTokens = 50
)

// scoreSchema is the strict shape the model must return.
var scoreSchema = &llm.Schema{
	Name: "answer-score",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":    "integer",
				"minimum": model.MinScore,
				"maximum": model.MaxScore,
			},
		},
		"required":             []string{"score"},
		"additionalProperties": false,
	},
}

// LLMScorer implements Scorer on top of an injected llm.Provider.
type LLMScorer struct {
	provider  llm.Provider
	maxTokens int
}

// Option applies a configuration option to the LLMScorer.
type Option func(*LLMScorer)

// WithMaxTokens caps the completion length.
func WithMaxTokens(n int) Option {
	return func(s *LLMScorer) {
		if n > 0 {
			s.maxTokens = n
		}
	}
}

// NewLLMScorer creates an answer scorer backed by the given provider.
func NewLLMScorer(provider llm.Provider, opts ...Option) *LLMScorer {
	s := &LLMScorer{
		provider:  provider,
		maxTokens: defaultMaxTokens,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score asks the model to grade one answer. Any failure surfaces as
// ErrScoring; the caller leaves the slot untouched in that case.
func (s *LLMScorer) Score(ctx context.Context, in Input) (int, error) {
	start := time.Now()
	defer func() { metrics.RecordScoringLatency(float64(time.Since(start).Milliseconds())) }()

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:    gradingPrompt(in.Difficulty),
		User:      fmt.Sprintf("Question: %s\nAnswer: %s", in.Question, in.Answer),
		Schema:    scoreSchema,
		MaxTokens: s.maxTokens,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %v", ErrScoring, err)
	}

	var payload struct {
		Score int `json:"score"`
	}
	if err := json.Unmarshal(resp.Content, &payload); err != nil {
		return 0, fmt.Errorf("%w: decode response: %v", ErrScoring, err)
	}
	if payload.Score < model.MinScore || payload.Score > model.MaxScore {
		return 0, fmt.Errorf("%w: score %d outside [%d,%d]", ErrScoring, payload.Score, model.MinScore, model.MaxScore)
	}
	return payload.Score, nil
}

func gradingPrompt(difficulty string) string {
	var b strings.Builder
	b.WriteString("You are grading a candidate's answer to an interview question.\n")
	fmt.Fprintf(&b, "The interview difficulty is %q.\n", difficulty)
	fmt.Fprintf(&b, "Grade the answer's correctness and depth on an integer scale from %d to %d, where %d is an excellent answer.",
		model.MinScore, model.MaxScore, model.MaxScore)
	return b.String()
}
