package prometheus

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareLabelsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := New(prometheus.NewRegistry())

	r := gin.New()
	r.Use(h.Middleware())
	r.GET("/treatments/:slug/", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", h.Handler())

	for _, p := range []string{"/treatments/botox/", "/treatments/hydrafacial/", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(h.requestTotal.WithLabelValues("GET", "/treatments/:slug/", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.errorTotal.WithLabelValues("GET", unmatchedPath, "404")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
