package jwtmw

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"media_backend/internal/feature/auth/domain/entity"
	"media_backend/internal/feature/auth/usecase"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

const testSecret = "test-secret"

// signToken builds a token signed with the given secret and expiry offset.
func signToken(t *testing.T, secret string, userID uint, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   userID,
		"exp":   time.Now().Add(expiresIn).Unix(),
		"iat":   time.Now().Unix(),
		"email": "user@example.com",
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

func runMiddleware(cfg MiddlewareConfig, mutate func(req *http.Request)) (*httptest.ResponseRecorder, *gin.Context) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if mutate != nil {
		mutate(c.Request)
	}

	AuthRequired(cfg)(c)
	return w, c
}

func TestAuthRequired_MissingCredential(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
	}{
		{"no header", ""},
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"bearer lowercase", "bearer token123"},
		{"no space after Bearer", "Bearertoken123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, c := runMiddleware(MiddlewareConfig{Secret: testSecret}, func(req *http.Request) {
				if tt.authHeader != "" {
					req.Header.Set("Authorization", tt.authHeader)
				}
			})

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
			}
			if !c.IsAborted() {
				t.Error("expected request to be aborted")
			}
		})
	}
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"garbage token", "not-a-jwt"},
		{"wrong secret", signTokenHelper("other-secret", time.Hour)},
		{"expired token", signTokenHelper(testSecret, -time.Minute)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, c := runMiddleware(MiddlewareConfig{Secret: testSecret}, func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			})

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
			}
			if _, exists := c.Get(ContextUserID); exists {
				t.Error("claims must not be attached for an invalid token")
			}
		})
	}
}

// signTokenHelper signs outside a test helper context for table construction.
func signTokenHelper(secret string, expiresIn time.Duration) string {
	claims := jwt.MapClaims{
		"sub": uint(1),
		"exp": time.Now().Add(expiresIn).Unix(),
		"iat": time.Now().Unix(),
	}
	signed, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	return signed
}

func TestAuthRequired_ValidToken_Header(t *testing.T) {
	token := signToken(t, testSecret, 42, time.Hour)

	w, c := runMiddleware(MiddlewareConfig{Secret: testSecret}, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})

	if c.IsAborted() {
		t.Fatalf("expected request to proceed, got status %d", w.Code)
	}
	if got := c.GetUint(ContextUserID); got != 42 {
		t.Errorf("expected user ID 42 in context, got %d", got)
	}
	if got := c.GetString(ContextEmail); got != "user@example.com" {
		t.Errorf("expected email claim in context, got %q", got)
	}
}

func TestAuthRequired_ValidToken_Cookie(t *testing.T) {
	token := signToken(t, testSecret, 7, time.Hour)

	_, c := runMiddleware(MiddlewareConfig{Secret: testSecret}, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: CookieAccessToken, Value: token})
	})

	if c.IsAborted() {
		t.Fatal("expected request to proceed with cookie credential")
	}
	if got := c.GetUint(ContextUserID); got != 7 {
		t.Errorf("expected user ID 7 in context, got %d", got)
	}
}

// stubUserFinder returns a fixed result for the identity-exists check.
type stubUserFinder struct {
	user *entity.User
	err  error
}

func (s *stubUserFinder) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return s.user, s.err
}

func TestAuthRequired_VerifyIdentityExists(t *testing.T) {
	token := signToken(t, testSecret, 42, time.Hour)

	t.Run("existing user proceeds", func(t *testing.T) {
		cfg := MiddlewareConfig{
			Secret:               testSecret,
			VerifyIdentityExists: true,
			Users:                &stubUserFinder{user: &entity.User{ID: 42}},
		}
		_, c := runMiddleware(cfg, func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+token)
		})

		if c.IsAborted() {
			t.Fatal("expected request to proceed when the user exists")
		}
	})

	t.Run("deleted user is rejected", func(t *testing.T) {
		cfg := MiddlewareConfig{
			Secret:               testSecret,
			VerifyIdentityExists: true,
			Users:                &stubUserFinder{err: usecase.ErrUserNotFound},
		}
		w, _ := runMiddleware(cfg, func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+token)
		})

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
		}
	})

	t.Run("toggle off skips the lookup", func(t *testing.T) {
		cfg := MiddlewareConfig{Secret: testSecret, VerifyIdentityExists: false}
		_, c := runMiddleware(cfg, func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+token)
		})

		if c.IsAborted() {
			t.Fatal("expected request to proceed without a user lookup")
		}
	})
}
