package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ErrorRenderer writes the error page for a status.
type ErrorRenderer func(c *gin.Context, status int)

// ErrorHandler renders errors handlers attached with c.Error. Errors with a StatusCode
// method choose their status; everything else is a logged 500.
func ErrorHandler(render ErrorRenderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		lastErr := c.Errors.Last()
		status := http.StatusInternalServerError
		var coded interface{ StatusCode() int }
		if errors.As(lastErr.Err, &coded) {
			status = coded.StatusCode()
		}

		if status >= http.StatusInternalServerError {
			for _, e := range c.Errors {
				zerolog.Ctx(c.Request.Context()).Error().
					Err(e.Err).
					Str("request_id", c.GetString(ContextRequestID)).
					Str("path", c.Request.URL.Path).
					Str("method", c.Request.Method).
					Str("client_ip", c.ClientIP()).
					Msg("Request error")
			}
		}

		if !c.Writer.Written() {
			render(c, status)
		}
	}
}
