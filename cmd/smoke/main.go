package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/CulturalProfessor/mettl-hack/internal/smoketest"
)

// Default configuration constants.
const (
	defaultAnswers     = 10
	defaultTimeout     = 60 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:9080", "Base URL of the service")
		email   = flag.String("email", "", "Candidate email (default generated)")
		answers = flag.Int("answers", defaultAnswers, "Number of slots to answer")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose = flag.Bool("verbose", false, "Log every scored answer")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		smoketest.ShowHelp()
		return
	}

	if err := smoketest.SetupLogging(); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	candidate := *email
	if candidate == "" {
		candidate = fmt.Sprintf("smoke-%d@example.com", time.Now().Unix())
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	config := &smoketest.Config{
		BaseURL: *baseURL,
		Email:   candidate,
		Answers: *answers,
		Timeout: *timeout,
		Verbose: *verbose,
	}

	if err := smoketest.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Smoke test failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
