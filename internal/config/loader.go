package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if METTL_CONFIG is set
//  3. env (prefix METTL_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("METTL_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: METTL_ADDR, METTL_LLM_API_KEY, ...
	// Map env keys like METTL_LLM_API_KEY -> llm_api_key (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("METTL_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "mettl_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.LLMProvider == "" {
		return fmt.Errorf("%w: llm_provider must not be empty", ErrInvalidConfig)
	}
	if c.SubmitRetryLimit < 1 {
		return fmt.Errorf("%w: submit_retry_limit must be at least 1", ErrInvalidConfig)
	}
	if c.CollaboratorTimeoutMS <= 0 {
		return fmt.Errorf("%w: collaborator_timeout_ms must be positive", ErrInvalidConfig)
	}
	return nil
}
