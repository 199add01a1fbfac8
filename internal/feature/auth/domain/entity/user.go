// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
// Password and RefreshToken are excluded from JSON so that read projections
// can never leak credentials.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey" json:"id"`

	// FullName is the user's display name.
	FullName string `gorm:"size:255;not null" json:"fullName"`

	// Email is the user's email address. It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`

	// Username is the user's handle, stored lowercased.
	// It must be unique across all users.
	Username string `gorm:"uniqueIndex;size:255;not null" json:"username"`

	// Password is the bcrypt hash of the user's password.
	// This never stores plaintext passwords.
	Password string `gorm:"size:255;not null" json:"-"`

	// AvatarURL points at the user's avatar on the media host.
	AvatarURL string `gorm:"size:512;not null" json:"avatar"`

	// CoverImageURL points at the user's cover image on the media host.
	// Empty when no cover image was uploaded.
	CoverImageURL string `gorm:"size:512" json:"coverImage"`

	// RefreshToken is the opaque refresh credential issued at login.
	// Empty when the user is signed out.
	RefreshToken string `gorm:"size:128" json:"-"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the table name for GORM.
func (User) TableName() string {
	return "users"
}
