package admin

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tuaha311/aesthetics-clinic/internal/middleware"
	authService "github.com/tuaha311/aesthetics-clinic/internal/service/auth"
	"github.com/tuaha311/aesthetics-clinic/internal/web"
	apperrors "github.com/tuaha311/aesthetics-clinic/pkg/errors"
	pkgvalidator "github.com/tuaha311/aesthetics-clinic/pkg/validator"
)

const (
	msgInvalidLogin   = "Please enter the correct username and password for a staff account. Note that both fields may be case-sensitive."
	msgLocked         = "Too many failed login attempts. Please try again later."
	msgPasswordChange = "Your password was changed."
)

type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
	Next     string `form:"next"`
}

// LoginPage is the data of the login template.
type LoginPage struct {
	Username string
	Next     string
	Error    string
	Errors   pkgvalidator.FieldErrors
}

type passwordChangeForm struct {
	OldPassword  string `form:"old_password" binding:"required"`
	NewPassword1 string `form:"new_password1" binding:"required"`
	NewPassword2 string `form:"new_password2" binding:"required,eqfield=NewPassword1"`
}

// PasswordChangePage is the data of the password change template.
type PasswordChangePage struct {
	Error  string
	Errors pkgvalidator.FieldErrors
}

// safeNext keeps redirects after login inside the console.
func safeNext(next string) string {
	if strings.HasPrefix(next, Prefix+"/") && !strings.HasPrefix(next, "//") && !strings.Contains(next, "\\") {
		return next
	}
	return Prefix + "/"
}

func (s *Site) loginPage(c *gin.Context) {
	next := c.Query("next")
	if middleware.CurrentUser(c) != nil {
		c.Redirect(http.StatusFound, safeNext(next))
		return
	}
	s.renderLogin(c, http.StatusOK, &LoginPage{Next: next})
}

func (s *Site) renderLogin(c *gin.Context, status int, data *LoginPage) {
	c.HTML(status, "admin/login.html", s.page(c, "Log in", data))
}

func (s *Site) login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		s.renderLogin(c, http.StatusOK, &LoginPage{
			Username: form.Username,
			Next:     form.Next,
			Errors:   pkgvalidator.Translate(err),
		})
		return
	}

	session, err := s.auth.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		page := &LoginPage{Username: form.Username, Next: form.Next}
		switch {
		case errors.Is(err, authService.ErrAccountLocked):
			page.Error = msgLocked
		case errors.Is(err, authService.ErrInvalidCredentials):
			page.Error = msgInvalidLogin
		default:
			_ = c.Error(err)
			return
		}
		s.renderLogin(c, http.StatusOK, page)
		return
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.Token,
		Path:     Prefix + "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   s.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	c.Redirect(http.StatusFound, safeNext(form.Next))
}

func (s *Site) logout(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     Prefix + "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	c.HTML(http.StatusOK, "admin/logged_out.html", s.page(c, "Logged out", nil))
}

func (s *Site) passwordChangePage(c *gin.Context) {
	c.HTML(http.StatusOK, "admin/password_change.html", s.page(c, "Password change", &PasswordChangePage{},
		Breadcrumb{Label: "Password change"},
	))
}

func (s *Site) passwordChange(c *gin.Context) {
	render := func(data *PasswordChangePage) {
		c.HTML(http.StatusOK, "admin/password_change.html", s.page(c, "Password change", data,
			Breadcrumb{Label: "Password change"},
		))
	}

	var form passwordChangeForm
	if err := c.ShouldBind(&form); err != nil {
		render(&PasswordChangePage{Errors: pkgvalidator.Translate(err)})
		return
	}

	user := middleware.CurrentUser(c)
	if err := s.auth.ChangePassword(c.Request.Context(), user, form.OldPassword, form.NewPassword1); err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == apperrors.ErrValidation {
			render(&PasswordChangePage{Error: appErr.Message})
			return
		}
		_ = c.Error(err)
		return
	}

	web.AddFlash(c, web.LevelSuccess, msgPasswordChange)
	c.Redirect(http.StatusFound, Prefix+"/")
}
