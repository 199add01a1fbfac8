// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"media_backend/internal/feature/auth/domain/entity"
	"media_backend/internal/feature/auth/usecase"
)

// userMySQL is a MySQL implementation of the UserRepository interface.
type userMySQL struct {
	db *gorm.DB
}

// Compile-time check to ensure userMySQL implements UserRepository.
var _ usecase.UserRepository = (*userMySQL)(nil)

// NewUserMySQL creates a new instance of userMySQL with the given gorm.DB connection.
func NewUserMySQL(db *gorm.DB) *userMySQL {
	return &userMySQL{db: db}
}

// Create persists the user to the database. A unique-index violation on email
// or username is mapped to usecase.ErrUserAlreadyExists so that a concurrent
// registration losing the race surfaces as a conflict.
func (r *userMySQL) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicateKey(err) {
			return usecase.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmailOrUsername retrieves a user matching the email or the username.
// It returns usecase.ErrUserNotFound when no user matches.
func (r *userMySQL) FindByEmailOrUsername(ctx context.Context, email, username string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ? OR username = ?", email, username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByEmail retrieves a user by email address.
// It returns usecase.ErrUserNotFound when the user does not exist.
func (r *userMySQL) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID retrieves a user by ID.
// It returns usecase.ErrUserNotFound when the user does not exist.
func (r *userMySQL) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdateRefreshToken stores the user's current refresh token. An empty token
// clears the column. Updating an already-clear token is a no-op, so repeated
// signouts stay idempotent.
func (r *userMySQL) UpdateRefreshToken(ctx context.Context, id uint, token string) error {
	return r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Update("refresh_token", token).Error
}

// isDuplicateKey reports whether err is a unique-constraint violation.
// MySQL error 1062 covers the production driver; gorm.ErrDuplicatedKey covers
// drivers with error translation enabled (SQLite in tests).
func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
