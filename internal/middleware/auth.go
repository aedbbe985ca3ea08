package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/tuaha311/aesthetics-clinic/internal/model"
)

const (
	// SessionCookie carries the signed admin session token.
	SessionCookie = "clinic_admin_session"
	ContextUser   = "admin_user"
)

// Authenticator resolves a session token to the signed-in staff user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

type AuthMiddleware struct {
	auth     Authenticator
	loginURL string
}

func NewAuthMiddleware(auth Authenticator, loginURL string) *AuthMiddleware {
	return &AuthMiddleware{auth: auth, loginURL: loginURL}
}

// RequireAdmin redirects visitors without a valid session to the login page, keeping the
// requested path in ?next= so they come back after signing in.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := m.sessionUser(c); user != nil {
			c.Set(ContextUser, user)
			c.Next()
			return
		}

		target := m.loginURL + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
		c.Redirect(http.StatusFound, target)
		c.Abort()
	}
}

// LoadUser attaches the session user when there is one, without requiring it.
func (m *AuthMiddleware) LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := m.sessionUser(c); user != nil {
			c.Set(ContextUser, user)
		}
		c.Next()
	}
}

func (m *AuthMiddleware) sessionUser(c *gin.Context) *model.User {
	token, err := c.Cookie(SessionCookie)
	if err != nil || token == "" {
		return nil
	}
	user, err := m.auth.Authenticate(c.Request.Context(), token)
	if err != nil {
		return nil
	}
	return user
}

// CurrentUser returns the user set by RequireAdmin or LoadUser.
func CurrentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(ContextUser); ok {
		user, _ := v.(*model.User)
		return user
	}
	return nil
}
