// Package repository defines the session and user stores and their errors.
package repository

import (
	"context"

	"github.com/CulturalProfessor/mettl-hack/internal/domain/model"
)

// SessionStore provides keyed access to interview sessions.
//
// Update is a compare-and-set: it commits the given snapshot only when the
// stored document still carries expectedRevision, and returns
// ErrRevisionMismatch otherwise. This is the only write path for existing
// sessions, so concurrent submissions resolve deterministically.
type SessionStore interface {
	// Create persists a new session. Returns ErrAlreadyExists when the id is taken.
	Create(ctx context.Context, s model.Session) (model.Session, error)

	// Get returns the session by id. Returns ErrNotFound if unknown.
	Get(ctx context.Context, id string) (model.Session, error)

	// ListByOwner returns all sessions owned by ownerID, oldest first.
	ListByOwner(ctx context.Context, ownerID string) ([]model.Session, error)

	// Update conditionally replaces the stored session.
	Update(ctx context.Context, s model.Session, expectedRevision int64) (model.Session, error)

	// Count returns the number of stored sessions.
	Count(ctx context.Context) int
}

// UserStore provides keyed access to user profiles. Email is the key.
type UserStore interface {
	// Create persists a new user. Returns ErrAlreadyExists when the email
	// or the phone number is already taken.
	Create(ctx context.Context, u model.User) (model.User, error)

	// Get returns the user by email. Returns ErrNotFound if unknown.
	Get(ctx context.Context, email string) (model.User, error)

	// List returns all users ordered by badge score descending,
	// ties broken by email ascending.
	List(ctx context.Context) ([]model.User, error)

	// Update conditionally replaces the stored user.
	Update(ctx context.Context, u model.User, expectedRevision int64) (model.User, error)

	// Count returns the number of stored users.
	Count(ctx context.Context) int
}
