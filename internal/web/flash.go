package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const flashCookie = "clinic_messages"

const (
	LevelSuccess = "success"
	LevelError   = "error"
	LevelInfo    = "info"
)

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Tag maps the level onto the alert class of the stylesheet.
func (f Flash) Tag() string {
	if f.Level == LevelError {
		return "danger"
	}
	return f.Level
}

// AddFlash queues a notice for the next page this client renders.
func AddFlash(c *gin.Context, level, message string) {
	flashes := append(pending(c), Flash{Level: level, Message: message})
	c.Set(flashCookie, flashes)

	raw, err := json.Marshal(flashes)
	if err != nil {
		return
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Flashes returns and clears the queued notices.
func Flashes(c *gin.Context) []Flash {
	flashes := pending(c)
	if len(flashes) == 0 {
		return nil
	}
	c.Set(flashCookie, []Flash(nil))
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return flashes
}

// pending merges notices set during this request with those carried in by the cookie.
func pending(c *gin.Context) []Flash {
	if v, ok := c.Get(flashCookie); ok {
		flashes, _ := v.([]Flash)
		return flashes
	}

	var flashes []Flash
	if cookie, err := c.Request.Cookie(flashCookie); err == nil && cookie.Value != "" {
		if raw, err := base64.RawURLEncoding.DecodeString(cookie.Value); err == nil {
			_ = json.Unmarshal(raw, &flashes)
		}
	}
	c.Set(flashCookie, flashes)
	return flashes
}
