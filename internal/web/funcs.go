package web

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/tuaha311/aesthetics-clinic/internal/model"
	"github.com/tuaha311/aesthetics-clinic/pkg/markdown"
	"github.com/tuaha311/aesthetics-clinic/pkg/media"
)

const (
	defaultHeroTitle    = "Our Gallery"
	defaultHeroSubtitle = "See the stunning results of our aesthetic treatments"

	ThumbnailSize = 80
)

// Hero is the data of the page banner partial.
type Hero struct {
	Title    string
	Subtitle string
}

// NewHero takes an optional title and subtitle.
func NewHero(args ...string) Hero {
	h := Hero{Title: defaultHeroTitle, Subtitle: defaultHeroSubtitle}
	if len(args) > 0 && args[0] != "" {
		h.Title = args[0]
	}
	if len(args) > 1 && args[1] != "" {
		h.Subtitle = args[1]
	}
	return h
}

// Thumbnail renders a fixed-size preview of a stored image, or "-" without one.
func Thumbnail(url string, size int) template.HTML {
	if url == "" {
		return "-"
	}
	return template.HTML(fmt.Sprintf(
		`<img src="%s" width="%d" height="%d" style="object-fit: cover;" alt="">`,
		template.HTMLEscapeString(url), size, size,
	))
}

// TruncateWords keeps the first n words of s.
func TruncateWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ") + " …"
}

// FormatDate renders a date the way the site prints it, e.g. "March 9, 2024".
func FormatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// FormatDateTime renders e.g. "March 9, 2024, 2:05 p.m.".
func FormatDateTime(t time.Time) string {
	meridiem := "a.m."
	if t.Hour() >= 12 {
		meridiem = "p.m."
	}
	return t.Format("January 2, 2006, 3:04 ") + meridiem
}

func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, fmt.Errorf("dict needs key/value pairs")
	}
	out := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %v is not a string", kv[i])
		}
		out[key] = kv[i+1]
	}
	return out, nil
}

// Funcs is the template function map. Stored image references resolve through store.
func Funcs(store media.Storage) template.FuncMap {
	return template.FuncMap{
		"media": func(ref string) string {
			if ref == "" {
				return ""
			}
			return store.URL(ref)
		},
		"thumbnail": func(ref string) template.HTML {
			if ref == "" {
				return Thumbnail("", ThumbnailSize)
			}
			return Thumbnail(store.URL(ref), ThumbnailSize)
		},
		"markdown":      markdown.ToHTML,
		"hero":          NewHero,
		"dict":          dict,
		"truncatewords": TruncateWords,
		"categoryLabel": func(c string) string { return model.Category(c).Label() },
		"date":          FormatDate,
		"datetime":      FormatDateTime,
		"isodate":       func(t time.Time) string { return t.Format("2006-01-02") },
		"year":          func() int { return time.Now().Year() },
		"add":           func(a, b int) int { return a + b },
		"lower":         strings.ToLower,
		"eqfold":        strings.EqualFold,
	}
}
