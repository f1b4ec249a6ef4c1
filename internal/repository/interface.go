package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/usicttechiete/boli.ai/internal/model"
)

// SessionRepository defines the interface for session record data access
type SessionRepository interface {
	// Insert creates a new session record and returns the stored record
	// with its assigned id.
	Insert(ctx context.Context, session *model.Session) (*model.Session, error)

	// GetByID retrieves a session by ID
	GetByID(ctx context.Context, id uuid.UUID) (*model.Session, error)

	// ListByUser retrieves sessions for a user with pagination and an
	// optional kind filter. Returns the page plus the total match count.
	ListByUser(ctx context.Context, userID uuid.UUID, kind *model.SessionKind, limit, offset int) ([]model.Session, int, error)
}

// DialectProfileRepository defines the interface for dialect profile data access
type DialectProfileRepository interface {
	// Upsert creates or replaces the profile for profile.UserID
	Upsert(ctx context.Context, profile *model.DialectProfile) error

	// GetByUser retrieves the profile for a user
	GetByUser(ctx context.Context, userID uuid.UUID) (*model.DialectProfile, error)
}
