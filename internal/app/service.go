// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	repository "github.com/CulturalProfessor/mettl-hack/internal/adapters/repository"
	"github.com/CulturalProfessor/mettl-hack/internal/domain/badge"
	"github.com/CulturalProfessor/mettl-hack/internal/domain/model"
	"github.com/CulturalProfessor/mettl-hack/internal/domain/questions"
	"github.com/CulturalProfessor/mettl-hack/internal/domain/scoring"
	"github.com/CulturalProfessor/mettl-hack/pkg/logger"
	"github.com/CulturalProfessor/mettl-hack/pkg/metrics"
)

// Default service configuration.
const (
	defaultCollaboratorTimeout = 30 * time.Second
	defaultSubmitRetryLimit    = 3
)

var phonePattern = regexp.MustCompile(`^\d{10}$`)

// Service implements the interview session lifecycle: session generation,
// answer submission with optimistic concurrency, score aggregation, and
// badge recomputation.
type Service struct {
	mu sync.RWMutex

	// Core components
	sessions  repository.SessionStore
	users     repository.UserStore
	generator questions.Generator
	scorer    scoring.Scorer

	// Configuration
	collaboratorTimeout time.Duration
	submitRetryLimit    int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSessionStore sets the session store.
func WithSessionStore(store repository.SessionStore) Option {
	return func(s *Service) {
		if store != nil {
			s.sessions = store
		}
	}
}

// WithUserStore sets the user store.
func WithUserStore(store repository.UserStore) Option {
	return func(s *Service) {
		if store != nil {
			s.users = store
		}
	}
}

// WithGenerator sets the question generator collaborator.
func WithGenerator(g questions.Generator) Option {
	return func(s *Service) {
		if g != nil {
			s.generator = g
		}
	}
}

// WithScorer sets the answer scorer collaborator.
func WithScorer(sc scoring.Scorer) Option {
	return func(s *Service) {
		if sc != nil {
			s.scorer = sc
		}
	}
}

// WithCollaboratorTimeout bounds a single generator or scorer call.
func WithCollaboratorTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.collaboratorTimeout = d
		}
	}
}

// WithSubmitRetryLimit sets how many times a submission retries a
// revision-mismatch commit caused by writes to other slots.
func WithSubmitRetryLimit(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.submitRetryLimit = n
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		collaboratorTimeout: defaultCollaboratorTimeout,
		submitRetryLimit:    defaultSubmitRetryLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service. Stores default to in-memory
// implementations; the generator and scorer collaborators are required.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.sessions == nil {
		s.sessions = repository.NewMemorySessionStore()
		s.logger.Info(ctx, "using in-memory session store")
	}
	if s.users == nil {
		s.users = repository.NewMemoryUserStore()
		s.logger.Info(ctx, "using in-memory user store")
	}
	if s.generator == nil {
		return errors.New("question generator is required")
	}
	if s.scorer == nil {
		return errors.New("answer scorer is required")
	}

	s.started = true
	s.logger.Info(ctx, "interview service started",
		logger.Int("submitRetryLimit", s.submitRetryLimit),
	)
	return nil
}

// Stop shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "interview service stopped")
}

// running gates the request-path entry points on Start having completed,
// so a miswired caller gets ErrNotStarted instead of a nil-store panic.
func (s *Service) running() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

// GenerateSession creates and persists a new session for the owner.
// Creation is all-or-nothing: nothing is stored unless the generator
// returned a full, valid question set.
func (s *Service) GenerateSession(ctx context.Context, ownerID, jobDescription, jobRequirements, difficulty string) (model.Session, error) {
	if err := s.running(); err != nil {
		return model.Session{}, err
	}
	ownerID = strings.TrimSpace(ownerID)
	jobDescription = strings.TrimSpace(jobDescription)
	jobRequirements = strings.TrimSpace(jobRequirements)
	difficulty = strings.TrimSpace(difficulty)
	if ownerID == "" || jobDescription == "" || jobRequirements == "" || difficulty == "" {
		return model.Session{}, fmt.Errorf("%w: all fields are required", ErrValidation)
	}

	collabCtx, cancel := context.WithTimeout(ctx, s.collaboratorTimeout)
	defer cancel()

	qs, err := s.generator.Generate(collabCtx, questions.Profile{
		JobDescription:  jobDescription,
		JobRequirements: jobRequirements,
		Difficulty:      difficulty,
	})
	if err != nil {
		metrics.RecordGenerationError()
		s.logger.Error(ctx, "question generation failed",
			logger.String("owner", ownerID),
			logger.Error(err),
		)
		return model.Session{}, err
	}

	sess, err := model.NewSession(uuid.NewString(), ownerID, qs)
	if err != nil {
		metrics.RecordGenerationError()
		return model.Session{}, fmt.Errorf("%w: %v", questions.ErrGeneration, err)
	}

	created, err := s.sessions.Create(ctx, sess)
	if err != nil {
		return model.Session{}, err
	}

	metrics.RecordSessionCreated()
	s.logger.Info(ctx, "session created",
		logger.String("session", created.ID),
		logger.String("owner", ownerID),
	)
	return created, nil
}

// SubmitAnswer scores one answer and commits it into the session, then
// recomputes the session total and the owner's badge.
//
// Validation order: session must exist, the caller must own it, and the
// slot index must be in range, before the scorer is ever called. The
// commit is a compare-and-set on the session revision: a concurrent write
// to a different slot is absorbed by re-reading and retrying, while a
// concurrent write to the same slot fails with ErrConflict.
func (s *Service) SubmitAnswer(ctx context.Context, sessionID, ownerID string, slotIndex int, answer, difficulty string) (int, float64, error) {
	if err := s.running(); err != nil {
		return 0, 0, err
	}
	sessionID = strings.TrimSpace(sessionID)
	ownerID = strings.TrimSpace(ownerID)
	if sessionID == "" || ownerID == "" || strings.TrimSpace(answer) == "" {
		return 0, 0, fmt.Errorf("%w: all fields are required", ErrValidation)
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return 0, 0, err
	}
	if sess.OwnerID != ownerID {
		return 0, 0, fmt.Errorf("session %s: %w", sessionID, ErrUnauthorized)
	}
	if slotIndex < 0 || slotIndex >= len(sess.Slots) {
		return 0, 0, fmt.Errorf("%w: slot %d outside [0,%d)", model.ErrSlotIndex, slotIndex, len(sess.Slots))
	}

	// The slot content at read time is the baseline for conflict
	// detection below.
	slotBefore := sess.Slots[slotIndex]

	collabCtx, cancel := context.WithTimeout(ctx, s.collaboratorTimeout)
	defer cancel()

	score, err := s.scorer.Score(collabCtx, scoring.Input{
		Question:   slotBefore.Question,
		Answer:     answer,
		Difficulty: difficulty,
	})
	if err != nil {
		metrics.RecordScoringError()
		s.logger.Error(ctx, "answer scoring failed",
			logger.String("session", sessionID),
			logger.String("owner", ownerID),
			logger.Int("slot", slotIndex),
			logger.Error(err),
		)
		return 0, 0, err
	}

	committed, err := s.commitAnswer(ctx, sess, slotBefore, slotIndex, answer, score)
	if err != nil {
		return 0, 0, err
	}

	// Badge recomputation rides on the same request. The session commit
	// above is already durable; a failure here leaves the badge stale
	// until the owner's next submission.
	if err := s.recomputeBadge(ctx, ownerID); err != nil {
		s.logger.Warn(ctx, "badge recomputation failed; badge is stale",
			logger.String("owner", ownerID),
			logger.Error(err),
		)
	}

	metrics.RecordAnswerScored()
	s.logger.Info(ctx, "answer recorded",
		logger.String("session", sessionID),
		logger.Int("slot", slotIndex),
		logger.Int("score", score),
		logger.Float64("total", committed.TotalScore),
	)
	return score, committed.TotalScore, nil
}

// commitAnswer applies the scored answer to a versioned snapshot and
// commits it with a revision check, retrying around writes to other slots.
func (s *Service) commitAnswer(ctx context.Context, sess model.Session, slotBefore model.QuestionSlot, slotIndex int, answer string, score int) (model.Session, error) {
	for attempt := 0; attempt <= s.submitRetryLimit; attempt++ {
		next, err := sess.WithAnswer(slotIndex, answer, score)
		if err != nil {
			return model.Session{}, err
		}
		committed, err := s.sessions.Update(ctx, next, sess.Revision)
		if err == nil {
			return committed, nil
		}
		if !errors.Is(err, repository.ErrRevisionMismatch) {
			return model.Session{}, err
		}

		fresh, err := s.sessions.Get(ctx, sess.ID)
		if err != nil {
			return model.Session{}, err
		}
		if fresh.Slots[slotIndex] != slotBefore {
			// Someone else answered this slot since we read it.
			metrics.RecordSubmitConflict()
			return model.Session{}, fmt.Errorf("session %s slot %d: %w", sess.ID, slotIndex, ErrConflict)
		}
		sess = fresh
	}
	metrics.RecordSubmitConflict()
	return model.Session{}, fmt.Errorf("session %s slot %d: retries exhausted: %w", sess.ID, slotIndex, ErrConflict)
}

// recomputeBadge rereads all of the owner's sessions and commits the badge
// with a revision check. An owner without a user profile keeps no badge;
// that is not an error for the enclosing submission.
func (s *Service) recomputeBadge(ctx context.Context, ownerID string) error {
	for attempt := 0; attempt <= s.submitRetryLimit; attempt++ {
		user, err := s.users.Get(ctx, ownerID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				s.logger.Debug(ctx, "no user profile; skipping badge update",
					logger.String("owner", ownerID),
				)
				return nil
			}
			return err
		}

		sessions, err := s.sessions.ListByOwner(ctx, ownerID)
		if err != nil {
			return err
		}
		totals := make([]float64, len(sessions))
		for i, sess := range sessions {
			totals[i] = sess.TotalScore
		}

		user.BadgeTier, user.BadgeScore = badge.Recompute(totals)
		if _, err := s.users.Update(ctx, user, user.Revision); err != nil {
			if errors.Is(err, repository.ErrRevisionMismatch) {
				continue
			}
			return err
		}
		metrics.RecordBadgeUpdate()
		return nil
	}
	return fmt.Errorf("badge update for %s: retries exhausted: %w", ownerID, ErrConflict)
}

// SessionTotal returns a session's current total score for its owner.
func (s *Service) SessionTotal(ctx context.Context, sessionID, ownerID string) (float64, error) {
	if err := s.running(); err != nil {
		return 0, err
	}
	sessionID = strings.TrimSpace(sessionID)
	ownerID = strings.TrimSpace(ownerID)
	if sessionID == "" || ownerID == "" {
		return 0, fmt.Errorf("%w: session id and owner id are required", ErrValidation)
	}
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	if sess.OwnerID != ownerID {
		return 0, fmt.Errorf("session %s: %w", sessionID, ErrUnauthorized)
	}
	return sess.TotalScore, nil
}

// UserBadge recomputes and returns the user's badge. Recomputation is
// idempotent: with an unchanged session set the stored tier and score do
// not change.
func (s *Service) UserBadge(ctx context.Context, email string) (model.User, error) {
	if err := s.running(); err != nil {
		return model.User{}, err
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return model.User{}, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if _, err := s.users.Get(ctx, email); err != nil {
		return model.User{}, err
	}
	if err := s.recomputeBadge(ctx, email); err != nil {
		return model.User{}, err
	}
	return s.users.Get(ctx, email)
}

// ListSessions returns all sessions owned by the given email, oldest first.
func (s *Service) ListSessions(ctx context.Context, ownerID string) ([]model.Session, error) {
	if err := s.running(); err != nil {
		return nil, err
	}
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner id is required", ErrValidation)
	}
	return s.sessions.ListByOwner(ctx, ownerID)
}

// CreateUser validates and persists a new user profile.
func (s *Service) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	if err := s.running(); err != nil {
		return model.User{}, err
	}
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)
	if u.Name == "" || u.Email == "" || u.Phone == "" || u.ResumeImage == "" {
		return model.User{}, fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	if u.Age <= 0 {
		return model.User{}, fmt.Errorf("%w: age must be a positive number", ErrValidation)
	}
	if !phonePattern.MatchString(u.Phone) {
		return model.User{}, fmt.Errorf("%w: phone number must be a 10-digit string", ErrValidation)
	}

	u.BadgeTier = model.TierNewbie
	u.BadgeScore = 0
	u.CreatedAt = time.Now().UTC()

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return model.User{}, err
	}
	s.logger.Info(ctx, "user created", logger.String("email", created.Email))
	return created, nil
}

// ListUsers returns all users ordered by badge score descending.
func (s *Service) ListUsers(ctx context.Context) ([]model.User, error) {
	if err := s.running(); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started": s.started,
	}
	if s.started {
		sessionCount := s.sessions.Count(ctx)
		userCount := s.users.Count(ctx)
		stats["sessions"] = sessionCount
		stats["users"] = userCount

		metrics.UpdateSessionCount(sessionCount)
		metrics.UpdateUserCount(userCount)
	}
	return stats
}
