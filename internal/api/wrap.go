package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandlerFunc is a gin handler that may fail. Failures are forwarded to the
// centralized error renderer instead of being written ad hoc by each handler.
type HandlerFunc func(c *gin.Context) error

// Wrap adapts a fallible handler into a plain gin.HandlerFunc. Any returned
// error is recorded on the context for the ErrorRenderer middleware; it never
// escapes as a panic or an unwritten response.
func Wrap(fn HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := fn(c); err != nil {
			_ = c.Error(err)
		}
	}
}

// ErrorRenderer is the terminal error stage of the handler chain. It runs the
// request, then renders the last recorded error as a JSON failure envelope.
// Errors that are not *Error values are treated as unexpected and rendered as
// a 500 envelope without leaking their message to the client.
func ErrorRenderer() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var apiErr *Error
		if !errors.As(err, &apiErr) {
			slog.Error("unhandled error", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
			apiErr = NewError(http.StatusInternalServerError, "Something went wrong!")
		} else if apiErr.StatusCode >= 500 {
			slog.Error("request failed", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
		} else {
			slog.Warn("request rejected", "error", err, "status", apiErr.StatusCode, "path", c.FullPath(), "remote_addr", c.ClientIP())
		}

		c.JSON(apiErr.StatusCode, apiErr)
	}
}
