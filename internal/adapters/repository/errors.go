package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound         = errors.New("document not found")
	ErrAlreadyExists    = errors.New("document already exists")
	ErrRevisionMismatch = errors.New("revision mismatch")
)
