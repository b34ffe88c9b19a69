package model

import "errors"

// Sentinel kinds for model-level invariant violations.
var (
	ErrQuestionCount = errors.New("invalid question count")
	ErrSlotIndex     = errors.New("slot index out of range")
	ErrScoreRange    = errors.New("score out of range")
)
