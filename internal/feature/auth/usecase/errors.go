// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrFieldsRequired is returned when a registration field is missing or
	// blank after trimming whitespace.
	ErrFieldsRequired = errors.New("all fields are required")

	// ErrUserAlreadyExists is returned when a user with the given email or
	// username already exists, whether detected by the pre-write lookup or by
	// the store's unique constraint at write time.
	ErrUserAlreadyExists = errors.New("user with this email or username already exists")

	// ErrUserNotFound is returned when a user cannot be found by email, username or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrAvatarRequired is returned when the avatar file is missing or its
	// upload produced no result.
	ErrAvatarRequired = errors.New("avatar file is required")

	// ErrUploadFailed is returned by media uploaders when the remote host
	// rejected or failed the upload.
	ErrUploadFailed = errors.New("media upload failed")

	// ErrRegistrationIncomplete is returned when the created user cannot be
	// read back after a successful write.
	ErrRegistrationIncomplete = errors.New("registered user could not be read back")

	// ErrInvalidCredentials is returned during login when email or password is invalid.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidRefreshToken is returned when a refresh token is unknown,
	// expired or revoked.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)
