package llm

import (
	"fmt"
	"time"
)

// Config holds provider selection and connection settings.
type Config struct {
	// Provider selects the implementation: "openai" or "mock".
	Provider string

	APIKey  string
	Model   string
	BaseURL string

	// Timeout bounds a single collaborator call, including retries.
	Timeout time.Duration

	Retry RetryConfig
}

// NewProvider creates a Provider from configuration, wrapped with retry.
func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "openai":
		base, err := NewOpenAIProvider(cfg)
		if err != nil {
			return nil, fmt.Errorf("initializing openai provider: %w", err)
		}
		return WithRetry(base, cfg.Retry), nil
	case "mock":
		// Self-replenishing offline mode; the queue-driven MockProvider
		// stays a test-only construction.
		return NewOfflineProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
}
