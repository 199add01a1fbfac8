package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

// newTestRouter builds a router with the renderer installed, the way
// the application wires it.
func newTestRouter(fn HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(ErrorRenderer())
	r.GET("/", Wrap(fn))
	return r
}

func TestWrap_Success(t *testing.T) {
	r := newTestRouter(func(c *gin.Context) error {
		c.JSON(http.StatusOK, NewResponse(http.StatusOK, gin.H{"ok": true}, ""))
		return nil
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Success", body.Message, "empty message should default")
}

func TestWrap_StructuredError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "api error renders with its own status",
			err:            NewError(http.StatusConflict, "already exists", "duplicate email"),
			expectedStatus: http.StatusConflict,
			expectedMsg:    "already exists",
		},
		{
			name:           "wrapped api error is unwrapped",
			err:            wrapped(NewError(http.StatusBadRequest, "bad input")),
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "bad input",
		},
		{
			name:           "plain error renders as 500 envelope",
			err:            errors.New("db connection refused"),
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Something went wrong!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(func(c *gin.Context) error { return tt.err })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedMsg, body["message"])
			assert.Equal(t, false, body["success"])
			assert.Nil(t, body["data"])
			assert.NotNil(t, body["errors"], "errors list must always be present")
		})
	}
}

// wrapped nests an *Error one level deep to exercise errors.As in the renderer.
func wrapped(e *Error) error {
	return errors.Join(errors.New("context"), e)
}

func TestErrorRenderer_DoesNotOverwriteWrittenResponse(t *testing.T) {
	r := newTestRouter(func(c *gin.Context) error {
		c.JSON(http.StatusOK, gin.H{"partial": true})
		return errors.New("late failure")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code, "already-written response must not be replaced")
}

func TestNewError_Defaults(t *testing.T) {
	e := NewError(0, "")

	assert.Equal(t, http.StatusInternalServerError, e.StatusCode)
	assert.Equal(t, "Something went wrong!", e.Message)
	assert.NotNil(t, e.Errors)
	assert.Empty(t, e.Errors)
	assert.False(t, e.Success)
	assert.Nil(t, e.Data)
	assert.NotEmpty(t, e.Stack(), "stack should be captured at construction")
}

func TestNewErrorWithStack_PreservesSuppliedTrace(t *testing.T) {
	e := NewErrorWithStack(http.StatusBadRequest, "bad", []string{"field x"}, "trace-from-caller")

	assert.Equal(t, "trace-from-caller", e.Stack())
	assert.Equal(t, []string{"field x"}, e.Errors)
}
