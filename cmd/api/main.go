package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/tuaha311/aesthetics-clinic/internal/admin"
	"github.com/tuaha311/aesthetics-clinic/internal/config"
	"github.com/tuaha311/aesthetics-clinic/internal/email"
	"github.com/tuaha311/aesthetics-clinic/internal/handler/health"
	"github.com/tuaha311/aesthetics-clinic/internal/handler/prometheus"
	"github.com/tuaha311/aesthetics-clinic/internal/handler/site"
	"github.com/tuaha311/aesthetics-clinic/internal/middleware"
	"github.com/tuaha311/aesthetics-clinic/internal/repository/postgres"
	"github.com/tuaha311/aesthetics-clinic/internal/router"
	authService "github.com/tuaha311/aesthetics-clinic/internal/service/auth"
	contactService "github.com/tuaha311/aesthetics-clinic/internal/service/contact"
	"github.com/tuaha311/aesthetics-clinic/internal/service/notification"
	siteService "github.com/tuaha311/aesthetics-clinic/internal/service/site"
	"github.com/tuaha311/aesthetics-clinic/internal/web"
	"github.com/tuaha311/aesthetics-clinic/pkg/auth"
	"github.com/tuaha311/aesthetics-clinic/pkg/logger"
	"github.com/tuaha311/aesthetics-clinic/pkg/media"
	"github.com/tuaha311/aesthetics-clinic/pkg/messaging"
	"github.com/tuaha311/aesthetics-clinic/pkg/messaging/redis"
	"github.com/tuaha311/aesthetics-clinic/pkg/metrics"
	"github.com/tuaha311/aesthetics-clinic/pkg/security"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	// Initialize database
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(context.Background(), db); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
	}

	repos := postgres.NewRepositories(db)

	if err := os.MkdirAll(cfg.Media.Root, 0o755); err != nil {
		log.Fatal().Err(err).Str("root", cfg.Media.Root).Msg("failed to create media root")
	}
	store := media.NewLocalStorage(cfg.Media.Root, cfg.Media.URL)

	registry := prom.NewRegistry()
	metricsHandler := prometheus.New(registry)
	m := metrics.NewMetrics("clinic", registry)

	// Initialize Redis message broker
	var publisher messaging.Publisher = messaging.NopPublisher{}
	if cfg.Redis.URL != "" {
		broker, err := redis.NewRedisBroker(context.Background(), redis.Config{URL: cfg.Redis.URL})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		publisher = broker
	}
	defer publisher.Close()

	var mailer email.Service = email.NopService{}
	if cfg.SMTP.Enabled() {
		mailer = email.NewSMTPService(cfg.SMTP)
	}

	// Initialize services
	notifier := notification.NewService(mailer, publisher, notification.Config{
		StaffRecipients: cfg.SMTP.StaffRecipients,
		EventChannel:    cfg.Redis.Channel,
	}, m)
	jwtSvc := auth.NewJWTService(cfg.Admin.JWTSecret, time.Duration(cfg.Admin.TokenTTLHours)*time.Hour, "clinic-admin")
	authSvc := authService.NewService(repos.Users, security.NewBcryptHasher(security.DefaultCost), jwtSvc, m)
	siteSvc := siteService.NewService(repos)
	contactSvc := contactService.NewService(repos.Contacts, notifier, nil, m)

	adminSite := admin.NewSite(admin.Config{
		Header:       cfg.Admin.SiteHeader,
		Title:        cfg.Admin.SiteTitle,
		IndexTitle:   cfg.Admin.IndexTitle,
		PerPage:      cfg.Admin.PerPage,
		CookieSecure: cfg.Admin.CookieSecure,
	}, authSvc, store, m)
	admin.RegisterClinic(adminSite, repos)

	renderer, err := web.NewRenderer(web.Funcs(store))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse templates")
	}

	routerCfg := router.RouterConfig{
		Mode:           cfg.Server.Mode,
		TrustedProxies: cfg.Server.TrustedProxies,
		MediaRoot:      cfg.Media.Root,
		MediaURL:       cfg.Media.URL,
		MaxUploadMB:    cfg.Media.MaxUploadMB,
	}
	if cfg.RateLimit.Enabled {
		routerCfg.RateLimit = &middleware.RateLimiterConfig{
			RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
			Burst:             cfg.RateLimit.Burst,
		}
	}

	// Setup router
	r, err := router.NewRouter(
		renderer,
		middleware.NewAuthMiddleware(authSvc, admin.Prefix+"/login/"),
		health.NewHandler(db),
		metricsHandler,
		site.NewHandler(siteSvc, contactSvc),
		adminSite,
		routerCfg,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}
	r.Setup()

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	// Start server
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
