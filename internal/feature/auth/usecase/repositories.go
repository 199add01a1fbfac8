package usecase

import (
	"context"

	"media_backend/internal/feature/auth/domain/entity"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention, the interface is defined by the consumer (usecase),
// not the provider (adapters).
type UserRepository interface {
	// Create persists a new user to the storage. It returns
	// ErrUserAlreadyExists when the store's unique constraint on email or
	// username rejects the write.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmailOrUsername retrieves a user matching either field.
	// It returns ErrUserNotFound when no user matches.
	FindByEmailOrUsername(ctx context.Context, email, username string) (*entity.User, error)

	// FindByEmail retrieves a user matching the specified email address.
	// It returns ErrUserNotFound when the user does not exist.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a user matching the specified ID.
	// It returns ErrUserNotFound when the user does not exist.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// UpdateRefreshToken stores the user's current refresh token.
	// An empty token clears it.
	UpdateRefreshToken(ctx context.Context, id uint, token string) error
}

// SessionRepository abstracts the persistence layer for refresh sessions.
type SessionRepository interface {
	// Create persists a new session to the storage.
	Create(ctx context.Context, session *entity.Session) error

	// FindByID retrieves a session by its ID (refresh token value).
	// It returns ErrSessionNotFound when the session does not exist.
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// Revoke marks a session as revoked by setting RevokedAt.
	Revoke(ctx context.Context, id string) error

	// CountByUserID returns the number of active sessions for a user.
	CountByUserID(ctx context.Context, userID uint) (int64, error)

	// DeleteOldestByUserID deletes the oldest active session for a user.
	DeleteOldestByUserID(ctx context.Context, userID uint) error
}

// UploadResult is the transient outcome of a successful media upload.
type UploadResult struct {
	// URL addresses the stored asset on the media host.
	URL string
	// Key is the object key the asset was stored under.
	Key string
}

// MediaUploader abstracts the remote media host.
type MediaUploader interface {
	// Upload sends the locally staged file at localPath to the media host.
	// An empty path is a valid no-op and yields (nil, nil). A remote failure
	// yields an error wrapping ErrUploadFailed, after the local file has been
	// cleaned up.
	Upload(ctx context.Context, localPath string) (*UploadResult, error)
}

// TokenGenerator abstracts access-token signing.
type TokenGenerator interface {
	// GenerateToken creates a signed access token for the given user.
	GenerateToken(userID uint, email string) (string, error)
}
