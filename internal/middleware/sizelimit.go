package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SizeLimitConfig represents size limit configuration
type SizeLimitConfig struct {
	MaxBodySize   int64 // in bytes
	MaxUploadSize int64 // in bytes, for UploadPrefix paths
	UploadPrefix  string
}

func DefaultSizeLimitConfig() SizeLimitConfig {
	return SizeLimitConfig{
		MaxBodySize:   1 << 20,  // 1MB
		MaxUploadSize: 10 << 20, // 10MB
		UploadPrefix:  "/admin/",
	}
}

// SizeLimit rejects oversized bodies up front and caps the rest while they are read.
func SizeLimit(config SizeLimitConfig, onTooLarge gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := config.MaxBodySize
		if config.UploadPrefix != "" && strings.HasPrefix(c.Request.URL.Path, config.UploadPrefix) {
			limit = config.MaxUploadSize
		}

		if c.Request.ContentLength > limit {
			c.Status(http.StatusRequestEntityTooLarge)
			c.Abort()
			onTooLarge(c)
			return
		}

		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
