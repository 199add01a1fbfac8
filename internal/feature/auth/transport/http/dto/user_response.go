package dto

import (
	"time"

	"media_backend/internal/feature/auth/domain/entity"
	"media_backend/internal/feature/auth/usecase"
)

// UserResponse is the read projection of a user. Password and refresh token
// are not part of this type at all, so they cannot leak into a response.
type UserResponse struct {
	ID            uint      `json:"id"`
	FullName      string    `json:"fullName"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	AvatarURL     string    `json:"avatar"`
	CoverImageURL string    `json:"coverImage"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewUserResponse projects a user entity into its response shape.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		FullName:      u.FullName,
		Email:         u.Email,
		Username:      u.Username,
		AvatarURL:     u.AvatarURL,
		CoverImageURL: u.CoverImageURL,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// LoginResponse is the payload returned on successful login or refresh.
type LoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresIn    int64        `json:"expiresIn"`
}

// NewLoginResponse projects a login result into its response shape.
func NewLoginResponse(res *usecase.LoginResult) LoginResponse {
	return LoginResponse{
		User:         NewUserResponse(res.User),
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		ExpiresIn:    res.ExpiresIn,
	}
}
