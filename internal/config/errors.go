package config

import "errors"

// Error kinds surfaced by Load: ErrLoadConfig wraps file and env provider
// failures, ErrInvalidConfig wraps validation failures. Callers branch with
// errors.Is.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
