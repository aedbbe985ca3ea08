// Package web holds the embedded templates and static assets and renders them for gin.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// StaticFS serves the stylesheet, scripts and placeholder images.
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// layoutSets pairs each page directory with the layout its pages extend.
var layoutSets = []struct {
	layout string
	pages  string
}{
	{layout: "templates/layouts/site.html", pages: "templates/site/*.html"},
	{layout: "templates/layouts/admin.html", pages: "templates/admin/*.html"},
}

// Renderer is a gin HTMLRender with one template set per page, so every page can
// define its own "title" and "content" blocks over a shared layout.
type Renderer struct {
	templates map[string]*template.Template
}

var _ render.HTMLRender = (*Renderer)(nil)

func NewRenderer(funcs template.FuncMap) (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template)}

	for _, set := range layoutSets {
		base, err := template.New("").Funcs(funcs).ParseFS(templateFS, set.layout, "templates/partials/*.html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse layout %s: %w", set.layout, err)
		}

		pages, err := fs.Glob(templateFS, set.pages)
		if err != nil {
			return nil, err
		}
		for _, page := range pages {
			clone, err := base.Clone()
			if err != nil {
				return nil, err
			}
			t, err := clone.ParseFS(templateFS, page)
			if err != nil {
				return nil, fmt.Errorf("failed to parse page %s: %w", page, err)
			}
			r.templates[strings.TrimPrefix(page, "templates/")] = t
		}
	}
	return r, nil
}

// Has reports whether a page template exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.templates[name]
	if !ok {
		return render.Data{
			ContentType: "text/plain; charset=utf-8",
			Data:        []byte("template " + name + " not found"),
		}
	}
	return render.HTML{Template: t, Name: "layout", Data: data}
}
