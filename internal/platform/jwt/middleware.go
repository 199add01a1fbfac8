package jwtmw

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"media_backend/internal/api"
	"media_backend/internal/feature/auth/domain/entity"
	"media_backend/internal/feature/auth/usecase"
)

const (
	// ContextUserID is the gin context key the verified user ID is stored under.
	ContextUserID = "userID"
	// ContextEmail is the gin context key the verified email claim is stored under.
	ContextEmail = "userEmail"

	// CookieAccessToken is the cookie slot checked for a bearer credential
	// before the Authorization header.
	CookieAccessToken = "accessToken"

	bearerPrefix = "Bearer "
)

// UserFinder looks up users for the identity-exists check.
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// MiddlewareConfig configures the verification middleware. The secret is
// injected at construction; the middleware never reads the environment per
// request.
type MiddlewareConfig struct {
	// Secret is the HMAC signing secret tokens are verified against.
	Secret string
	// VerifyIdentityExists, when true, additionally checks that the token's
	// subject still exists in the user store.
	VerifyIdentityExists bool
	// Users is the lookup used by the identity check. Required when
	// VerifyIdentityExists is true.
	Users UserFinder
}

// AuthRequired returns a gin middleware that validates bearer tokens and
// restricts access to authenticated requests. The credential is taken from
// the accessToken cookie or the Authorization header. Every rejection is an
// unauthorized failure envelope; claims are attached to the context on success.
func AuthRequired(cfg MiddlewareConfig) gin.HandlerFunc {
	secret := []byte(cfg.Secret)
	return func(c *gin.Context) {
		tokenStr := extractToken(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.NewError(http.StatusUnauthorized, "Unauthorized request"))
			return
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			// Only HMAC is accepted; anything else is a forgery attempt.
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.NewError(http.StatusUnauthorized, "Invalid access token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.NewError(http.StatusUnauthorized, "Invalid access token"))
			return
		}
		sub, ok := claims["sub"].(float64) // JWT numbers decode as float64
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.NewError(http.StatusUnauthorized, "Invalid access token"))
			return
		}
		userID := uint(sub)

		if cfg.VerifyIdentityExists {
			if _, err := cfg.Users.FindByID(c.Request.Context(), userID); err != nil {
				status := http.StatusUnauthorized
				msg := "Invalid access token"
				if !errors.Is(err, usecase.ErrUserNotFound) {
					status = http.StatusInternalServerError
					msg = "Something went wrong!"
				}
				c.AbortWithStatusJSON(status, api.NewError(status, msg))
				return
			}
		}

		c.Set(ContextUserID, userID)
		if email, ok := claims["email"].(string); ok {
			c.Set(ContextEmail, email)
		}
		c.Next()
	}
}

// extractToken pulls the bearer credential from the accessToken cookie or the
// Authorization header, stripping the "Bearer " prefix.
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(CookieAccessToken); err == nil && cookie != "" {
		return cookie
	}
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, bearerPrefix) {
		return strings.TrimPrefix(auth, bearerPrefix)
	}
	return ""
}
