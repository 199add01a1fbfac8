package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLimiter_Allow(t *testing.T) {
	l := NewLimiter(2, time.Minute)

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))

	// other keys have their own window
	assert.True(t, l.Allow("b"))
}

func TestLimiter_WindowReset(t *testing.T) {
	l := NewLimiter(1, 10*time.Millisecond)

	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))

	time.Sleep(15 * time.Millisecond)
	assert.True(t, l.Allow("a"))
}

func TestLimiter_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	l := NewLimiter(1, time.Minute)
	r := gin.New()
	r.POST("/login", l.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}
