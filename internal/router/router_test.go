package router

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuaha311/aesthetics-clinic/internal/admin"
	"github.com/tuaha311/aesthetics-clinic/internal/email"
	"github.com/tuaha311/aesthetics-clinic/internal/handler/health"
	"github.com/tuaha311/aesthetics-clinic/internal/handler/prometheus"
	"github.com/tuaha311/aesthetics-clinic/internal/handler/site"
	"github.com/tuaha311/aesthetics-clinic/internal/middleware"
	authService "github.com/tuaha311/aesthetics-clinic/internal/service/auth"
	contactService "github.com/tuaha311/aesthetics-clinic/internal/service/contact"
	"github.com/tuaha311/aesthetics-clinic/internal/service/notification"
	siteService "github.com/tuaha311/aesthetics-clinic/internal/service/site"
	"github.com/tuaha311/aesthetics-clinic/internal/testutil"
	"github.com/tuaha311/aesthetics-clinic/internal/web"
	"github.com/tuaha311/aesthetics-clinic/pkg/auth"
	"github.com/tuaha311/aesthetics-clinic/pkg/media"
	"github.com/tuaha311/aesthetics-clinic/pkg/messaging"
	"github.com/tuaha311/aesthetics-clinic/pkg/metrics"
	"github.com/tuaha311/aesthetics-clinic/pkg/security"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos, db := testutil.NewRepositories(t)
	mediaRoot := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(mediaRoot, media.DirTeam), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(mediaRoot, media.DirTeam, "ayesha.jpg"), []byte("jpeg"), 0o644))

	store := media.NewLocalStorage(mediaRoot, "/media")
	renderer, err := web.NewRenderer(web.Funcs(store))
	require.NoError(t, err)

	registry := prom.NewRegistry()
	m := metrics.NewMetrics("clinic", registry)

	notifier := notification.NewService(email.NopService{}, messaging.NopPublisher{}, notification.Config{}, m)
	authSvc := authService.NewService(repos.Users, security.NewBcryptHasher(4), auth.NewJWTService("test-secret", time.Hour, "clinic"), m)

	adminSite := admin.NewSite(admin.Config{Header: "Clinic administration"}, authSvc, store, m)
	admin.RegisterClinic(adminSite, repos)

	r, err := NewRouter(
		renderer,
		middleware.NewAuthMiddleware(authSvc, admin.Prefix+"/login/"),
		health.NewHandler(db),
		prometheus.New(registry),
		site.NewHandler(siteService.NewService(repos), contactService.NewService(repos.Contacts, notifier, nil, m)),
		adminSite,
		RouterConfig{
			Mode:      gin.TestMode,
			RateLimit: &middleware.RateLimiterConfig{RequestsPerMinute: 1, Burst: 1},
			MediaRoot: mediaRoot,
			MediaURL:  "/media",
		},
	)
	require.NoError(t, err)
	r.Setup()
	return r.Engine()
}

func get(e *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRoutes(t *testing.T) {
	e := newRouter(t)

	tests := []struct {
		path   string
		status int
	}{
		{"/", http.StatusOK},
		{"/treatments/", http.StatusOK},
		{"/health/live", http.StatusOK},
		{"/health/ready", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/static/css/style.css", http.StatusOK},
		{"/media/team/ayesha.jpg", http.StatusOK},
		{"/admin/", http.StatusFound},
		{"/admin/login/", http.StatusOK},
		{"/no-such-page/", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.status, get(e, tt.path).Code)
		})
	}
}

func TestCommonHeaders(t *testing.T) {
	e := newRouter(t)

	w := get(e, "/no-such-page/")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderXRequestID))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Contains(t, w.Body.String(), "Page Not Found")

	w = get(e, "/static/css/style.css")
	assert.Equal(t, "public, max-age=86400", w.Header().Get("Cache-Control"))

	w = get(e, "/admin/login/")
	assert.Equal(t, "private, no-store", w.Header().Get("Cache-Control"))
}

func TestFormsAreRateLimited(t *testing.T) {
	e := newRouter(t)

	post := func() int {
		form := url.Values{"email": {"jane@example.com"}}
		req := httptest.NewRequest(http.MethodPost, "/newsletter-signup/", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		e.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusFound, post())
	assert.Equal(t, http.StatusTooManyRequests, post())
	assert.Equal(t, http.StatusOK, get(e, "/").Code)
}

func TestMetricsExposeRequests(t *testing.T) {
	e := newRouter(t)
	get(e, "/treatments/")

	w := get(e, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{method="GET",path="/treatments/",status="200"} 1`)
}
