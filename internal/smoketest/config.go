// Package smoketest drives a running interview service through a full
// session lifecycle over HTTP: profile creation, session generation,
// answer submission, totals, and badge recomputation.
package smoketest

import "time"

// Config holds the smoke test configuration.
type Config struct {
	// BaseURL is the root of the running service, e.g. http://localhost:9080.
	BaseURL string

	// Email identifies the test candidate; a fresh address avoids
	// uniqueness collisions across runs.
	Email string

	// Answers is how many of the ten slots to answer.
	Answers int

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// Verbose enables per-request logging.
	Verbose bool
}

// Stats accumulates results across the run.
type Stats struct {
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
	AnswersSubmitted int
	AnswersFailed    int
	TotalScore       float64
	BadgeTier        string
	BadgeScore       float64
}
