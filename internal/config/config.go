// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Layered loading lives in Load: defaults, optional YAML file, env vars.
// - External errors must be wrapped via this package's error helpers.
package config

import "time"

// Default tuning constants.
const (
	defaultLLMTimeout       = 30 * time.Second
	defaultGenerationTokens = 1000
	defaultCollaboratorMS   = 30_000
	defaultSubmitRetryLimit = 3
	defaultGenerationTemp   = 0.5
	defaultLLMRetryAttempts = 3
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// LLMProvider selects the model backend: openai or mock.
	LLMProvider string `koanf:"llm_provider"`

	// LLMAPIKey authenticates against the model backend.
	LLMAPIKey string `koanf:"llm_api_key"`

	// LLMModel overrides the default model identifier.
	LLMModel string `koanf:"llm_model"`

	// LLMBaseURL points at an OpenAI-compatible endpoint.
	LLMBaseURL string `koanf:"llm_base_url"`

	// LLMTimeoutMS bounds a single model call.
	LLMTimeoutMS int `koanf:"llm_timeout_ms"`

	// LLMRetryAttempts caps retries for transient model failures.
	LLMRetryAttempts int `koanf:"llm_retry_attempts"`

	// GenerationMaxTokens caps the question-generation completion size.
	GenerationMaxTokens int `koanf:"generation_max_tokens"`

	// GenerationTemperature controls question variety.
	GenerationTemperature float64 `koanf:"generation_temperature"`

	// CollaboratorTimeoutMS bounds a generation or scoring round trip as
	// seen by the service layer.
	CollaboratorTimeoutMS int `koanf:"collaborator_timeout_ms"`

	// SubmitRetryLimit caps optimistic-concurrency retries on answer commits.
	SubmitRetryLimit int `koanf:"submit_retry_limit"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		Addr:                  ":9080",
		LLMProvider:           "openai",
		LLMModel:              "",
		LLMTimeoutMS:          int(defaultLLMTimeout / time.Millisecond),
		LLMRetryAttempts:      defaultLLMRetryAttempts,
		GenerationMaxTokens:   defaultGenerationTokens,
		GenerationTemperature: defaultGenerationTemp,
		CollaboratorTimeoutMS: defaultCollaboratorMS,
		SubmitRetryLimit:      defaultSubmitRetryLimit,
	}
}

// LLMTimeout returns the model-call timeout as a duration.
func (c *Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLMTimeoutMS) * time.Millisecond
}

// CollaboratorTimeout returns the service-side collaborator timeout.
func (c *Config) CollaboratorTimeout() time.Duration {
	return time.Duration(c.CollaboratorTimeoutMS) * time.Millisecond
}
