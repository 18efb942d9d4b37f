package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pruefungsplaner/core/internal/domain/entities"
)

// ExamRepository is the persistence adapter for exam records. All records are
// scoped to a single userID; an implementation must never return or mutate
// another user's records. Implementations may be synchronous (file store) or
// backed by a remote row store; either way a failed call surfaces as an error
// the store layer wraps into a PersistenceError.
type ExamRepository interface {
	// LoadAll fetches the full collection for the user.
	LoadAll(ctx context.Context, userID uuid.UUID) ([]entities.Exam, error)
	// Create persists a new record and returns the stored form. When the
	// backend does not assign ids itself, the draft's client-generated id is
	// echoed back.
	Create(ctx context.Context, userID uuid.UUID, exam entities.Exam) (entities.Exam, error)
	// Update replaces the record with the given id. Ownership is enforced at
	// this boundary: a record belonging to another user counts as not found.
	Update(ctx context.Context, userID uuid.UUID, exam entities.Exam) (entities.Exam, error)
	// Delete removes the record with the given id.
	Delete(ctx context.Context, userID uuid.UUID, id string) error
}

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AuthRepository defines the interface for refresh-token persistence.
type AuthRepository interface {
	CreateRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, tokenHash string) (*RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
	CleanupExpiredTokens(ctx context.Context) error
}

// RefreshToken represents a refresh token record
type RefreshToken struct {
	ID        int        `json:"id" db:"id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	TokenHash string     `json:"token_hash" db:"token_hash"`
	ExpiresAt time.Time  `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	RevokedAt *time.Time `json:"revoked_at" db:"revoked_at"`
}

// IsExpired checks if the refresh token is expired
func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// IsRevoked checks if the refresh token is revoked
func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

// IsValid checks if the refresh token is valid
func (rt *RefreshToken) IsValid() bool {
	return !rt.IsExpired() && !rt.IsRevoked()
}
