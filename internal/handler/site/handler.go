package site

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/tuaha311/aesthetics-clinic/internal/forms"
	"github.com/tuaha311/aesthetics-clinic/internal/handler"
	contactService "github.com/tuaha311/aesthetics-clinic/internal/service/contact"
	siteService "github.com/tuaha311/aesthetics-clinic/internal/service/site"
	"github.com/tuaha311/aesthetics-clinic/internal/web"
	apperrors "github.com/tuaha311/aesthetics-clinic/pkg/errors"
)

const contactSuccessURL = "/contact/success/"

type Handler struct {
	site    *siteService.Service
	contact *contactService.Service
}

func NewHandler(site *siteService.Service, contact *contactService.Service) *Handler {
	return &Handler{site: site, contact: contact}
}

// RegisterRoutes mounts the public pages. limited guards the form posts.
func (h *Handler) RegisterRoutes(r gin.IRouter, limited gin.HandlerFunc) {
	r.GET("/", h.Home)
	r.GET("/defaultsite", h.Home)
	r.GET("/treatments/", h.TreatmentList)
	r.GET("/treatments/:slug/", h.TreatmentDetail)
	r.GET("/about/", h.About)
	r.GET("/gallery/", h.Gallery)
	r.GET("/testimonials/", h.Testimonials)
	r.GET("/blog/", h.BlogList)
	r.GET("/blog/search/", h.BlogSearch)
	r.GET("/blog/:slug/", h.BlogDetail)
	r.GET("/contact/", h.Contact)
	r.POST("/contact/", limited, h.SubmitContact)
	r.GET("/contact/success/", h.ContactSuccess)
	r.GET("/search/", h.Search)
	r.POST("/newsletter-signup/", limited, h.NewsletterSignup)
	r.GET("/newsletter-signup/", h.NewsletterRedirect)
}

// render writes a page, or hands a failed lookup to the error middleware.
func render[T any](c *gin.Context, name string, data T, err error) {
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.HTML(http.StatusOK, name, handler.Page(c, data))
}

func (h *Handler) Home(c *gin.Context) {
	data, err := h.site.Home(c.Request.Context())
	render(c, "site/home.html", data, err)
}

func (h *Handler) TreatmentList(c *gin.Context) {
	data, err := h.site.TreatmentList(c.Request.Context(), c.Query("category"))
	render(c, "site/treatment_list.html", data, err)
}

func (h *Handler) TreatmentDetail(c *gin.Context) {
	data, err := h.site.TreatmentDetail(c.Request.Context(), c.Param("slug"))
	render(c, "site/treatment_detail.html", data, err)
}

func (h *Handler) About(c *gin.Context) {
	data, err := h.site.About(c.Request.Context())
	render(c, "site/about.html", data, err)
}

func (h *Handler) Gallery(c *gin.Context) {
	data, err := h.site.Gallery(c.Request.Context(), c.Query("category"), c.Query("page"))
	render(c, "site/gallery.html", data, err)
}

func (h *Handler) Testimonials(c *gin.Context) {
	data, err := h.site.Testimonials(c.Request.Context())
	render(c, "site/testimonial_list.html", data, err)
}

func (h *Handler) BlogList(c *gin.Context) {
	data, err := h.site.BlogList(c.Request.Context(), c.Query("page"))
	render(c, "site/blog_list.html", data, err)
}

func (h *Handler) BlogSearch(c *gin.Context) {
	data, err := h.site.BlogSearch(c.Request.Context(), c.Query("q"))
	render(c, "site/blog_list.html", data, err)
}

func (h *Handler) BlogDetail(c *gin.Context) {
	data, err := h.site.BlogDetail(c.Request.Context(), c.Param("slug"))
	render(c, "site/blog_detail.html", data, err)
}

func (h *Handler) Search(c *gin.Context) {
	data, err := h.site.Search(c.Request.Context(), c.Query("q"))
	render(c, "site/search_results.html", data, err)
}

func (h *Handler) Contact(c *gin.Context) {
	h.renderContact(c, &forms.ContactForm{})
}

func (h *Handler) SubmitContact(c *gin.Context) {
	var form forms.ContactForm
	if err := c.ShouldBind(&form); err != nil {
		web.AddFlash(c, web.LevelError, contactService.MessageInvalid)
		h.renderContact(c, &form)
		return
	}

	if _, err := h.contact.Submit(c.Request.Context(), &form); err != nil {
		if apperrors.IsValidation(err) {
			web.AddFlash(c, web.LevelError, contactService.MessageInvalid)
			h.renderContact(c, &form)
			return
		}
		_ = c.Error(err)
		return
	}

	web.AddFlash(c, web.LevelSuccess, contactService.MessageSent)
	c.Redirect(http.StatusFound, contactSuccessURL)
}

func (h *Handler) renderContact(c *gin.Context, form *forms.ContactForm) {
	page := handler.Page(c, nil)
	page["Form"] = form
	c.HTML(http.StatusOK, "site/contact.html", page)
}

func (h *Handler) ContactSuccess(c *gin.Context) {
	c.HTML(http.StatusOK, "site/contact_success.html", handler.Page(c, nil))
}

func (h *Handler) NewsletterSignup(c *gin.Context) {
	if err := h.contact.Subscribe(c.Request.Context(), c.PostForm("email")); err != nil {
		_ = c.Error(err)
		return
	}
	web.AddFlash(c, web.LevelSuccess, contactService.MessageSubscribe)
	c.Redirect(http.StatusFound, sameSiteReferer(c))
}

// NewsletterRedirect sends anything but a POST home with no side effect.
func (h *Handler) NewsletterRedirect(c *gin.Context) {
	c.Redirect(http.StatusFound, "/")
}

// sameSiteReferer returns the Referer when it points at this host, otherwise "/".
func sameSiteReferer(c *gin.Context) string {
	ref := c.GetHeader("Referer")
	if ref == "" {
		return "/"
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "/"
	}
	if u.Host != "" && u.Host != c.Request.Host {
		return "/"
	}
	if u.Host == "" && (u.Scheme != "" || u.Path == "" || u.Path[0] != '/') {
		return "/"
	}
	return u.RequestURI()
}
