package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/CulturalProfessor/mettl-hack/internal/domain/model"
	"github.com/CulturalProfessor/mettl-hack/pkg/metrics"
)

// In-memory, mutex-guarded store implementations.
//
// Documents are deep-copied on the way in and out, so callers can never
// mutate stored state directly; the only way to change a stored document
// is a conditional Update, which bumps the revision. Revisions start at 1.

// MemorySessionStore implements SessionStore backed by a map.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]model.Session
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore(opts ...Option) *MemorySessionStore {
	cfg := newStoreConfig(opts...)
	return &MemorySessionStore{
		sessions: make(map[string]model.Session, cfg.initialCapacity),
	}
}

// Create persists a new session with revision 1.
func (s *MemorySessionStore) Create(ctx context.Context, sess model.Session) (model.Session, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds())) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sess.ID]; ok {
		return model.Session{}, fmt.Errorf("session %s: %w", sess.ID, ErrAlreadyExists)
	}
	stored := sess.Clone()
	stored.Revision = 1
	s.sessions[sess.ID] = stored
	metrics.UpdateSessionCount(len(s.sessions))
	return stored.Clone(), nil
}

// Get returns a copy of the session by id.
func (s *MemorySessionStore) Get(ctx context.Context, id string) (model.Session, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds())) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return model.Session{}, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return sess.Clone(), nil
}

// ListByOwner returns copies of all sessions owned by ownerID, oldest first.
func (s *MemorySessionStore) ListByOwner(ctx context.Context, ownerID string) ([]model.Session, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds())) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Session
	for _, sess := range s.sessions {
		if sess.OwnerID == ownerID {
			out = append(out, sess.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Update commits the snapshot when the stored revision still matches.
func (s *MemorySessionStore) Update(ctx context.Context, sess model.Session, expectedRevision int64) (model.Session, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds())) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.sessions[sess.ID]
	if !ok {
		return model.Session{}, fmt.Errorf("session %s: %w", sess.ID, ErrNotFound)
	}
	if current.Revision != expectedRevision {
		return model.Session{}, fmt.Errorf("session %s: have %d, expected %d: %w",
			sess.ID, current.Revision, expectedRevision, ErrRevisionMismatch)
	}
	stored := sess.Clone()
	stored.Revision = expectedRevision + 1
	s.sessions[sess.ID] = stored
	return stored.Clone(), nil
}

// Count returns the number of stored sessions.
func (s *MemorySessionStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// MemoryUserStore implements UserStore backed by a map keyed by email.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]model.User
}

// NewMemoryUserStore creates an empty in-memory user store.
func NewMemoryUserStore(opts ...Option) *MemoryUserStore {
	cfg := newStoreConfig(opts...)
	return &MemoryUserStore{
		users: make(map[string]model.User, cfg.initialCapacity),
	}
}

// Create persists a new user with revision 1. Email and phone are unique.
func (s *MemoryUserStore) Create(ctx context.Context, u model.User) (model.User, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds())) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.Email]; ok {
		return model.User{}, fmt.Errorf("email %s: %w", u.Email, ErrAlreadyExists)
	}
	for _, existing := range s.users {
		if existing.Phone == u.Phone {
			return model.User{}, fmt.Errorf("phone %s: %w", u.Phone, ErrAlreadyExists)
		}
	}
	u.Revision = 1
	s.users[u.Email] = u
	metrics.UpdateUserCount(len(s.users))
	return u, nil
}

// Get returns the user by email.
func (s *MemoryUserStore) Get(ctx context.Context, email string) (model.User, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds())) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[email]
	if !ok {
		return model.User{}, fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	return u, nil
}

// List returns all users ordered by badge score descending, email ascending.
func (s *MemoryUserStore) List(ctx context.Context) ([]model.User, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds())) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BadgeScore != out[j].BadgeScore {
			return out[i].BadgeScore > out[j].BadgeScore
		}
		return out[i].Email < out[j].Email
	})
	return out, nil
}

// Update commits the user when the stored revision still matches.
func (s *MemoryUserStore) Update(ctx context.Context, u model.User, expectedRevision int64) (model.User, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds())) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.users[u.Email]
	if !ok {
		return model.User{}, fmt.Errorf("user %s: %w", u.Email, ErrNotFound)
	}
	if current.Revision != expectedRevision {
		return model.User{}, fmt.Errorf("user %s: have %d, expected %d: %w",
			u.Email, current.Revision, expectedRevision, ErrRevisionMismatch)
	}
	u.Revision = expectedRevision + 1
	s.users[u.Email] = u
	return u, nil
}

// Count returns the number of stored users.
func (s *MemoryUserStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
