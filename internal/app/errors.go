package service

import "errors"

// Sentinel kinds for service-level failures. Collaborator and store kinds
// (generation, scoring, not-found, already-exists, revision mismatch) are
// defined by their own packages and pass through wrapped.
var (
	ErrValidation   = errors.New("invalid input")
	ErrUnauthorized = errors.New("owner mismatch")
	ErrConflict     = errors.New("concurrent submission conflict")
	ErrNotStarted   = errors.New("service not started")
)
