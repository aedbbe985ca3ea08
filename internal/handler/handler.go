// Package handler holds what every HTML handler shares: the page data envelope and the
// error pages.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tuaha311/aesthetics-clinic/internal/web"
)

// Page wraps a view's data with the current path and pending notices. Templates read
// them as .Path, .Flashes and .Data.
func Page(c *gin.Context, data any) gin.H {
	return gin.H{
		"Path":    c.Request.URL.Path,
		"Flashes": web.Flashes(c),
		"Data":    data,
	}
}

var errorPages = map[int]string{
	http.StatusForbidden:       "site/403.html",
	http.StatusNotFound:        "site/404.html",
	http.StatusTooManyRequests: "site/429.html",
}

// ErrorPage renders the site error page for status. Statuses without a page of their
// own use the server error page.
func ErrorPage(c *gin.Context, status int) {
	name, ok := errorPages[status]
	if !ok {
		name = "site/500.html"
	}
	c.HTML(status, name, Page(c, nil))
}

// NotFound is the fallback for unmatched routes.
func NotFound(c *gin.Context) {
	ErrorPage(c, http.StatusNotFound)
}

// ServerError renders the 500 page, for recovered panics.
func ServerError(c *gin.Context) {
	ErrorPage(c, http.StatusInternalServerError)
}

// Abort renders the error page for the current status, set by the middleware that
// rejected the request.
func Abort(c *gin.Context) {
	ErrorPage(c, c.Writer.Status())
}
