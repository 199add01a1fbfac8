package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"media_backend/internal/feature/auth/domain/entity"
)

const (
	// defaultAccessTokenTTL bounds the lifetime of issued access tokens.
	defaultAccessTokenTTL = 15 * time.Minute
	// defaultRefreshTokenTTL bounds the lifetime of refresh sessions.
	defaultRefreshTokenTTL = 7 * 24 * time.Hour
	// defaultMaxSessionsPerUser caps concurrent refresh sessions per user.
	// The oldest session is evicted when the cap is exceeded.
	defaultMaxSessionsPerUser = 5
)

// Config holds the token lifetimes and session limits for the auth usecase.
// Zero values fall back to the defaults above.
type Config struct {
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	MaxSessionsPerUser int
}

// RegisterInput carries the validated-later registration fields plus the
// locally staged upload paths. Empty paths mean the file part was absent.
type RegisterInput struct {
	FullName       string
	Email          string
	Username       string
	Password       string
	AvatarPath     string
	CoverImagePath string
}

// LoginInput carries the login credentials plus client metadata recorded on
// the refresh session.
type LoginInput struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

// LoginResult is returned on successful login or refresh.
type LoginResult struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // access token lifetime in seconds
}

// authUsecase implements the authentication business logic.
type authUsecase struct {
	users    UserRepository
	sessions SessionRepository
	uploader MediaUploader
	tokens   TokenGenerator
	cfg      Config
}

// NewAuthUsecase creates a new instance of authUsecase.
func NewAuthUsecase(users UserRepository, sessions SessionRepository, uploader MediaUploader, tokens TokenGenerator, cfg Config) *authUsecase {
	if cfg.AccessTokenTTL <= 0 {
		cfg.AccessTokenTTL = defaultAccessTokenTTL
	}
	if cfg.RefreshTokenTTL <= 0 {
		cfg.RefreshTokenTTL = defaultRefreshTokenTTL
	}
	if cfg.MaxSessionsPerUser <= 0 {
		cfg.MaxSessionsPerUser = defaultMaxSessionsPerUser
	}
	return &authUsecase{
		users:    users,
		sessions: sessions,
		uploader: uploader,
		tokens:   tokens,
		cfg:      cfg,
	}
}

// Register runs the registration workflow: field validation, uniqueness
// check, avatar/cover upload, persistence and the read-back projection.
// Every step short-circuits with a sentinel error the transport layer maps to
// a status code.
func (u *authUsecase) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	for _, field := range []string{in.FullName, in.Email, in.Username, in.Password} {
		if strings.TrimSpace(field) == "" {
			return nil, ErrFieldsRequired
		}
	}

	username := strings.ToLower(in.Username)

	// Optimistic uniqueness check. The store's unique index is the
	// authoritative guard against concurrent registrations.
	if _, err := u.users.FindByEmailOrUsername(ctx, in.Email, username); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("uniqueness check: %w", err)
	}

	if in.AvatarPath == "" {
		return nil, ErrAvatarRequired
	}

	avatar, err := u.uploader.Upload(ctx, in.AvatarPath)
	if err != nil || avatar == nil {
		// An avatar that was present but failed to upload is surfaced the
		// same way as a missing avatar.
		slog.Warn("avatar upload failed", "error", err)
		return nil, ErrAvatarRequired
	}

	// The cover image is optional, so an upload failure is tolerated.
	coverURL := ""
	if in.CoverImagePath != "" {
		cover, err := u.uploader.Upload(ctx, in.CoverImagePath)
		switch {
		case err != nil:
			slog.Warn("cover image upload failed", "error", err)
		case cover != nil:
			coverURL = cover.URL
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		FullName:      in.FullName,
		Email:         in.Email,
		Username:      username,
		Password:      string(hashed),
		AvatarURL:     avatar.URL,
		CoverImageURL: coverURL,
	}
	if err := u.users.Create(ctx, user); err != nil {
		// A unique-constraint violation here means we lost a race with a
		// concurrent registration; it is a conflict, not an internal error.
		return nil, err
	}

	created, err := u.users.FindByID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrRegistrationIncomplete
		}
		return nil, fmt.Errorf("read back created user: %w", err)
	}
	return created, nil
}

// Login authenticates a user and issues an access token plus a refresh
// session. To mitigate timing attacks, a bcrypt comparison is performed even
// when the user does not exist.
func (u *authUsecase) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	user, err := u.users.FindByEmail(ctx, in.Email)

	// Dummy hash so bcrypt.CompareHashAndPassword always runs.
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(in.Password))
	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issueTokens(ctx, user, in.UserAgent, in.IPAddress)
}

// Refresh rotates a refresh session: the presented session is revoked and a
// new session plus access token are issued.
func (u *authUsecase) Refresh(ctx context.Context, refreshToken, userAgent, ipAddress string) (*LoginResult, error) {
	session, err := u.sessions.FindByID(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	if !session.IsValid() {
		return nil, ErrInvalidRefreshToken
	}

	user, err := u.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("find session user: %w", err)
	}

	if err := u.sessions.Revoke(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("revoke rotated session: %w", err)
	}

	return u.issueTokens(ctx, user, userAgent, ipAddress)
}

// Signout revokes the presented refresh session, when any, and clears the
// refresh token stored on the user record. An unknown session is not an
// error: signing out twice is harmless.
func (u *authUsecase) Signout(ctx context.Context, userID uint, refreshToken string) error {
	if refreshToken != "" {
		if err := u.sessions.Revoke(ctx, refreshToken); err != nil && !errors.Is(err, ErrSessionNotFound) {
			return fmt.Errorf("revoke session: %w", err)
		}
	}
	if err := u.users.UpdateRefreshToken(ctx, userID, ""); err != nil {
		return fmt.Errorf("clear refresh token: %w", err)
	}
	return nil
}

// issueTokens mints an access token and a refresh session for the user,
// evicting the oldest session when the per-user cap is reached.
func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User, userAgent, ipAddress string) (*LoginResult, error) {
	access, err := u.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	refresh, err := newRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if count, err := u.sessions.CountByUserID(ctx, user.ID); err == nil && count >= int64(u.cfg.MaxSessionsPerUser) {
		if err := u.sessions.DeleteOldestByUserID(ctx, user.ID); err != nil {
			slog.Warn("failed to evict oldest session", "error", err, "user_id", user.ID)
		}
	}

	now := time.Now()
	session := &entity.Session{
		ID:        refresh,
		UserID:    user.ID,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.cfg.RefreshTokenTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	if err := u.users.UpdateRefreshToken(ctx, user.ID, refresh); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &LoginResult{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(u.cfg.AccessTokenTTL.Seconds()),
	}, nil
}

// newRefreshToken returns a 64-character hex token from a CSPRNG.
func newRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
