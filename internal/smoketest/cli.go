package smoketest

import (
	"fmt"
	"os"

	"github.com/CulturalProfessor/mettl-hack/pkg/logger"
)

// SetupLogging initializes the shared logger for the tool.
func SetupLogging() error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// ShowHelp prints usage information for the smoke test tool.
func ShowHelp() {
	os.Stdout.WriteString(`Interview Smoke Test Tool
=========================

Drives a running interview service through a full session lifecycle:
profile creation, question generation, answer submission, session total,
and badge recomputation.

Usage:
  go run cmd/smoke/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -email string
        Candidate email to register and interview (default generated)
  -answers int
        Number of slots to answer, 0-10 (default 10)
  -timeout duration
        HTTP request timeout (default 60s)
  -verbose
        Log every scored answer
  -help
        Show this help message

Examples:
  # Full lifecycle against a local service
  go run cmd/smoke/main.go

  # Answer only three questions with verbose output
  go run cmd/smoke/main.go -answers 3 -verbose

  # Target a remote deployment
  go run cmd/smoke/main.go -url https://interviews.example.com
`)
}
