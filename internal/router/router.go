package router

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"github.com/tuaha311/aesthetics-clinic/internal/admin"
	"github.com/tuaha311/aesthetics-clinic/internal/handler"
	"github.com/tuaha311/aesthetics-clinic/internal/handler/health"
	"github.com/tuaha311/aesthetics-clinic/internal/handler/prometheus"
	"github.com/tuaha311/aesthetics-clinic/internal/handler/site"
	"github.com/tuaha311/aesthetics-clinic/internal/middleware"
	"github.com/tuaha311/aesthetics-clinic/internal/web"
)

type RouterConfig struct {
	Mode           string
	TrustedProxies []string
	// RateLimit throttles the contact, newsletter and login forms; nil disables it.
	RateLimit   *middleware.RateLimiterConfig
	MediaRoot   string
	MediaURL    string
	MaxUploadMB int
}

type Router struct {
	engine  *gin.Engine
	auth    *middleware.AuthMiddleware
	healthH *health.Handler
	metrics *prometheus.Handler
	siteH   *site.Handler
	admin   *admin.Site
	limited gin.HandlerFunc
	config  RouterConfig
}

func NewRouter(
	renderer render.HTMLRender,
	auth *middleware.AuthMiddleware,
	healthH *health.Handler,
	metrics *prometheus.Handler,
	siteH *site.Handler,
	adminSite *admin.Site,
	config RouterConfig,
) (*Router, error) {
	if config.Mode != "" {
		gin.SetMode(config.Mode)
	}

	engine := gin.New()
	engine.HTMLRender = renderer
	if err := engine.SetTrustedProxies(config.TrustedProxies); err != nil {
		return nil, err
	}

	sizeLimit := middleware.DefaultSizeLimitConfig()
	if config.MaxUploadMB > 0 {
		sizeLimit.MaxUploadSize = int64(config.MaxUploadMB) << 20
	}

	r := &Router{
		engine:  engine,
		auth:    auth,
		healthH: healthH,
		metrics: metrics,
		siteH:   siteH,
		admin:   adminSite,
		limited: func(c *gin.Context) { c.Next() },
		config:  config,
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(handler.ServerError),
		metrics.Middleware(),
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig()),
		middleware.SizeLimit(sizeLimit, handler.Abort),
		middleware.Timeout(middleware.DefaultTimeoutConfig()),
		middleware.ErrorHandler(handler.ErrorPage),
	)

	if config.RateLimit != nil {
		limiter := middleware.NewRateLimiter(*config.RateLimit)
		r.limited = limiter.RateLimit(handler.Abort)
	}

	return r, nil
}

func (r *Router) Setup() {
	r.setupAssets()

	r.healthH.RegisterRoutes(r.engine)
	r.engine.GET("/metrics", r.metrics.Handler())

	r.siteH.RegisterRoutes(r.engine, r.limited)
	r.admin.RegisterRoutes(r.engine, r.auth, r.limited)

	r.engine.NoRoute(handler.NotFound)
}

func (r *Router) setupAssets() {
	static := r.engine.Group("/static", middleware.Cache(middleware.StaticCacheConfig()))
	static.StaticFS("/", web.StaticFS())

	if r.config.MediaRoot != "" {
		url := r.config.MediaURL
		if url == "" {
			url = "/media"
		}
		media := r.engine.Group(url, middleware.Cache(middleware.StaticCacheConfig()))
		media.StaticFS("/", gin.Dir(r.config.MediaRoot, false))
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
