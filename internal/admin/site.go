// Package admin is the staff console. Models are registered with a declarative
// configuration and get a changelist, add, change and delete pages generated from it.
package admin

import (
	"context"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/tuaha311/aesthetics-clinic/internal/middleware"
	"github.com/tuaha311/aesthetics-clinic/internal/repository"
	authService "github.com/tuaha311/aesthetics-clinic/internal/service/auth"
	"github.com/tuaha311/aesthetics-clinic/internal/web"
	"github.com/tuaha311/aesthetics-clinic/pkg/media"
	"github.com/tuaha311/aesthetics-clinic/pkg/metrics"
	pkgvalidator "github.com/tuaha311/aesthetics-clinic/pkg/validator"
)

// Prefix is where the console is mounted.
const Prefix = "/admin"

const defaultPerPage = 100

// Config holds the strings and settings fixed when the site is built.
type Config struct {
	Header       string
	Title        string
	IndexTitle   string
	PerPage      int
	CookieSecure bool
}

type Breadcrumb struct {
	URL   string
	Label string
}

type Site struct {
	cfg      Config
	models   []registered
	auth     *authService.Service
	media    media.Storage
	tx       repository.Transactor
	metrics  *metrics.Metrics
	validate *validator.Validate
}

func NewSite(cfg Config, auth *authService.Service, store media.Storage, m *metrics.Metrics) *Site {
	if cfg.PerPage <= 0 {
		cfg.PerPage = defaultPerPage
	}
	pkgvalidator.UseFormNames()
	return &Site{
		cfg:      cfg,
		auth:     auth,
		media:    store,
		metrics:  m,
		validate: pkgvalidator.New(),
	}
}

// UseTransactions makes every add and change save the row and its inline rows in one
// transaction. Without it each write commits on its own.
func (s *Site) UseTransactions(tx repository.Transactor) {
	s.tx = tx
}

func (s *Site) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.tx == nil {
		return fn(ctx)
	}
	return s.tx.RunInTx(ctx, fn)
}

// Register adds model admins to the site. It panics on a configuration that does not
// match the model, so mistakes surface at startup.
func (s *Site) Register(models ...registered) {
	for _, m := range models {
		for _, existing := range s.models {
			if existing.Info().Slug == m.Info().Slug {
				panic(fmt.Sprintf("admin: model %q registered twice", m.Info().Slug))
			}
		}
		m.attach(s)
		s.models = append(s.models, m)
	}
}

// Models lists the registered models in registration order.
func (s *Site) Models() []ModelInfo {
	out := make([]ModelInfo, 0, len(s.models))
	for _, m := range s.models {
		out = append(out, m.Info())
	}
	return out
}

// RegisterRoutes mounts the console on r. auth guards every page but login; limited
// throttles login attempts.
func (s *Site) RegisterRoutes(r gin.IRouter, auth *middleware.AuthMiddleware, limited gin.HandlerFunc) {
	g := r.Group(Prefix, middleware.Cache(middleware.NoStoreConfig()))
	g.GET("/login/", auth.LoadUser(), s.loginPage)
	g.POST("/login/", limited, s.login)
	g.POST("/logout/", s.logout)

	protected := g.Group("", auth.RequireAdmin())
	protected.GET("/", s.index)
	protected.GET("/password_change/", s.passwordChangePage)
	protected.POST("/password_change/", s.passwordChange)
	for _, m := range s.models {
		m.routes(protected)
	}
}

// page wraps data with what the admin layout reads: .Site, .User, .Title,
// .Breadcrumbs, .Flashes and .Data.
func (s *Site) page(c *gin.Context, title string, data any, crumbs ...Breadcrumb) gin.H {
	return gin.H{
		"Site":        s.cfg,
		"User":        middleware.CurrentUser(c),
		"Title":       title,
		"Breadcrumbs": crumbs,
		"Flashes":     web.Flashes(c),
		"Data":        data,
	}
}

func (s *Site) username(c *gin.Context) string {
	if user := middleware.CurrentUser(c); user != nil {
		return user.Username
	}
	return ""
}

func (s *Site) thumbnail(ref string) template.HTML {
	if ref == "" {
		return web.Thumbnail("", web.ThumbnailSize)
	}
	return web.Thumbnail(s.media.URL(ref), web.ThumbnailSize)
}

func (s *Site) index(c *gin.Context) {
	c.HTML(http.StatusOK, "admin/index.html", s.page(c, "Site administration", s.Models()))
}
