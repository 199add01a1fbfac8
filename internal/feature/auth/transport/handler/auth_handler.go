// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"media_backend/internal/api"
	"media_backend/internal/feature/auth/domain/entity"
	"media_backend/internal/feature/auth/transport/http/dto"
	"media_backend/internal/feature/auth/usecase"
	jwtmw "media_backend/internal/platform/jwt"
)

// CookieRefreshToken is the cookie slot the refresh token is issued into.
const CookieRefreshToken = "refreshToken"

// AuthUsecase defines the auth operations the handlers depend on.
// Following Go convention, the interface is defined by the consumer (handler),
// not the provider (usecase).
type AuthUsecase interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*entity.User, error)
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginResult, error)
	Refresh(ctx context.Context, refreshToken, userAgent, ipAddress string) (*usecase.LoginResult, error)
	Signout(ctx context.Context, userID uint, refreshToken string) error
}

// Options configures the transport-level behavior of the handlers.
type Options struct {
	// TempDir is where multipart uploads are staged before they are handed
	// to the media uploader.
	TempDir string
	// CookieSecure marks issued cookies Secure; enable behind TLS.
	CookieSecure bool
	// RefreshTokenTTL bounds the refresh cookie lifetime. It should match
	// the usecase configuration.
	RefreshTokenTTL time.Duration
}

// AuthHandler handles HTTP requests for registration, login, refresh and signout.
type AuthHandler struct {
	auth AuthUsecase
	opts Options
}

// NewAuthHandler creates a new instance of AuthHandler.
func NewAuthHandler(auth AuthUsecase, opts Options) *AuthHandler {
	if opts.TempDir == "" {
		opts.TempDir = "./tmp"
	}
	if opts.RefreshTokenTTL <= 0 {
		opts.RefreshTokenTTL = 7 * 24 * time.Hour
	}
	return &AuthHandler{auth: auth, opts: opts}
}

// Signup handles the user registration endpoint.
// The body is a multipart form with the profile fields plus an avatar file
// part (required) and a coverImage part (optional). On success it responds
// 201 with the created user projection.
func (h *AuthHandler) Signup(c *gin.Context) error {
	var form dto.SignupForm
	if err := c.ShouldBind(&form); err != nil {
		return api.NewError(http.StatusBadRequest, "All fields are required!", err.Error())
	}

	avatarPath, err := h.stageFile(c, "avatar")
	if err != nil {
		return err
	}
	coverPath, err := h.stageFile(c, "coverImage")
	if err != nil {
		return err
	}

	user, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		FullName:       form.FullName,
		Email:          form.Email,
		Username:       form.Username,
		Password:       form.Password,
		AvatarPath:     avatarPath,
		CoverImagePath: coverPath,
	})
	if err != nil {
		return mapAuthError(err)
	}

	slog.Info("user registered", "username", user.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.NewResponse(http.StatusCreated, dto.NewUserResponse(user), "user registered successfully"))
	return nil
}

// Login handles the credential-verification endpoint. On success it issues
// the token pair as HTTP-only cookies and in the response body.
func (h *AuthHandler) Login(c *gin.Context) error {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return api.NewError(http.StatusBadRequest, "Email and password are required", err.Error())
	}

	res, err := h.auth.Login(c.Request.Context(), usecase.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		// The generic message prevents user enumeration.
		slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
		return mapAuthError(err)
	}

	h.setAuthCookies(c, res)
	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.NewResponse(http.StatusOK, dto.NewLoginResponse(res), "user logged in successfully"))
	return nil
}

// Refresh rotates a refresh token into a new token pair. The token is taken
// from the refreshToken cookie or the JSON body.
func (h *AuthHandler) Refresh(c *gin.Context) error {
	token := h.refreshTokenFrom(c)
	if token == "" {
		return api.NewError(http.StatusUnauthorized, "Invalid refresh token")
	}

	res, err := h.auth.Refresh(c.Request.Context(), token, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		return mapAuthError(err)
	}

	h.setAuthCookies(c, res)
	c.JSON(http.StatusOK, api.NewResponse(http.StatusOK, dto.NewLoginResponse(res), "token refreshed successfully"))
	return nil
}

// Signout revokes the caller's refresh session and expires the auth cookies.
// It runs behind the verification middleware, which provides the user ID.
func (h *AuthHandler) Signout(c *gin.Context) error {
	userID := c.GetUint(jwtmw.ContextUserID)
	if userID == 0 {
		return api.NewError(http.StatusUnauthorized, "Unauthorized request")
	}

	if err := h.auth.Signout(c.Request.Context(), userID, h.refreshTokenFrom(c)); err != nil {
		return mapAuthError(err)
	}

	h.clearAuthCookies(c)
	slog.Info("user signed out", "user_id", userID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.NewResponse(http.StatusOK, nil, "user signed out"))
	return nil
}

// stageFile saves the named multipart file part into the temp dir and returns
// its local path. An absent part yields an empty path, never an error: the
// usecase decides which files are required.
func (h *AuthHandler) stageFile(c *gin.Context, field string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", nil
	}

	if err := os.MkdirAll(h.opts.TempDir, 0o750); err != nil {
		return "", api.NewError(http.StatusInternalServerError, "Something went wrong!", err.Error())
	}

	dst := filepath.Join(h.opts.TempDir, uuid.New().String()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", api.NewError(http.StatusInternalServerError, "Something went wrong!", err.Error())
	}
	return dst, nil
}

// refreshTokenFrom extracts the refresh token from the cookie or the
// optional JSON body.
func (h *AuthHandler) refreshTokenFrom(c *gin.Context) string {
	if cookie, err := c.Cookie(CookieRefreshToken); err == nil && cookie != "" {
		return cookie
	}
	var req dto.RefreshReq
	if err := c.ShouldBindJSON(&req); err == nil {
		return req.RefreshToken
	}
	return ""
}

// setAuthCookies issues the token pair as HTTP-only cookies.
func (h *AuthHandler) setAuthCookies(c *gin.Context, res *usecase.LoginResult) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(jwtmw.CookieAccessToken, res.AccessToken, int(res.ExpiresIn), "/", "", h.opts.CookieSecure, true)
	c.SetCookie(CookieRefreshToken, res.RefreshToken, int(h.opts.RefreshTokenTTL.Seconds()), "/", "", h.opts.CookieSecure, true)
}

// clearAuthCookies expires both auth cookies.
func (h *AuthHandler) clearAuthCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(jwtmw.CookieAccessToken, "", -1, "/", "", h.opts.CookieSecure, true)
	c.SetCookie(CookieRefreshToken, "", -1, "/", "", h.opts.CookieSecure, true)
}

// mapAuthError translates usecase sentinels into response envelopes.
// Unrecognized errors pass through and render as 500 envelopes.
func mapAuthError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrFieldsRequired):
		return api.NewError(http.StatusBadRequest, "All fields are required!")
	case errors.Is(err, usecase.ErrUserAlreadyExists):
		return api.NewError(http.StatusConflict, "User with this email or username already exists!")
	case errors.Is(err, usecase.ErrAvatarRequired):
		return api.NewError(http.StatusBadRequest, "Avatar files are required")
	case errors.Is(err, usecase.ErrRegistrationIncomplete):
		return api.NewError(http.StatusInternalServerError, "Something went wrong while registering the user")
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return api.NewError(http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, usecase.ErrInvalidRefreshToken):
		return api.NewError(http.StatusUnauthorized, "Invalid refresh token")
	}
	return err
}
