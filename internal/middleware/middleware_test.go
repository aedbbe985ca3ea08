package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuaha311/aesthetics-clinic/internal/model"
	apperrors "github.com/tuaha311/aesthetics-clinic/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestID)) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(HeaderXRequestID))
	assert.Equal(t, w.Header().Get(HeaderXRequestID), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderXRequestID, "abc-123")
	w = serve(r, req)
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestErrorHandlerUsesStatusCode(t *testing.T) {
	var rendered []int
	r := gin.New()
	r.Use(ErrorHandler(func(c *gin.Context, status int) {
		rendered = append(rendered, status)
		c.String(status, "page %d", status)
	}))
	r.GET("/missing", func(c *gin.Context) { _ = c.Error(apperrors.NotFound("treatment", nil)) })
	r.GET("/boom", func(c *gin.Context) { _ = c.Error(errors.New("connection refused")) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, []int{404, 500}, rendered)
}

func TestRecoveryRendersPanicPage(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(func(c *gin.Context) { c.String(http.StatusInternalServerError, "server error") }))
	r.GET("/", func(c *gin.Context) { panic("nil map") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "server error", w.Body.String())
}

func TestRateLimitOnlyCountsPosts(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerMinute: 1, Burst: 2})
	r := gin.New()
	r.Use(rl.RateLimit(func(c *gin.Context) { c.String(http.StatusTooManyRequests, "slow down") }))
	r.Any("/contact/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/contact/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := serve(r, httptest.NewRequest(http.MethodPost, "/contact/", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)
}

func TestRateLimiterIsPerClient(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerMinute: 1, Burst: 1})
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestCacheHeaders(t *testing.T) {
	r := gin.New()
	r.GET("/static/x.css", Cache(StaticCacheConfig()), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/admin/", Cache(NoStoreConfig()), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/static/x.css", nil))
	assert.Equal(t, "public, max-age=86400", w.Header().Get("Cache-Control"))

	w = serve(r, httptest.NewRequest(http.MethodGet, "/admin/", nil))
	assert.Equal(t, "private, no-store", w.Header().Get("Cache-Control"))
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders(DefaultSecurityConfig()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'self'")
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}

func TestSizeLimitRejectsDeclaredLength(t *testing.T) {
	r := gin.New()
	r.Use(SizeLimit(SizeLimitConfig{MaxBodySize: 10, MaxUploadSize: 100, UploadPrefix: "/admin/"},
		func(c *gin.Context) { c.String(http.StatusRequestEntityTooLarge, "too large") }))
	r.POST("/contact/", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/admin/upload", func(c *gin.Context) { c.Status(http.StatusOK) })

	body := strings.Repeat("x", 50)
	w := serve(r, httptest.NewRequest(http.MethodPost, "/contact/", strings.NewReader(body)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodPost, "/admin/upload", strings.NewReader(body)))
	assert.Equal(t, http.StatusOK, w.Code)
}

type stubAuth struct{ token string }

func (s stubAuth) Authenticate(_ context.Context, token string) (*model.User, error) {
	if token != s.token {
		return nil, apperrors.Unauthorized(nil)
	}
	return &model.User{Username: "admin", IsActive: true, IsStaff: true}, nil
}

func TestRequireAdmin(t *testing.T) {
	m := NewAuthMiddleware(stubAuth{token: "good"}, "/admin/login/")
	r := gin.New()
	r.GET("/admin/", m.RequireAdmin(), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUser(c).Username)
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/admin/?o=1", nil))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login/?next=%2Fadmin%2F%3Fo%3D1", w.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "good"})
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", w.Body.String())
}
