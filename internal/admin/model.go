package admin

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tuaha311/aesthetics-clinic/internal/model"
	"github.com/tuaha311/aesthetics-clinic/internal/repository"
	"github.com/tuaha311/aesthetics-clinic/internal/web"
	apperrors "github.com/tuaha311/aesthetics-clinic/pkg/errors"
)

// Entity is the pointer side of a model the console can list, edit and label.
type Entity[T any] interface {
	*T
	PrimaryKey() uuid.UUID
	String() string
}

// ModelInfo names a registered model and where its pages live.
type ModelInfo struct {
	Name   string
	Plural string
	Slug   string
	CanAdd bool
}

func (i ModelInfo) ListURL() string { return Prefix + "/" + i.Slug + "/" }
func (i ModelInfo) AddURL() string  { return i.ListURL() + "add/" }

func (i ModelInfo) ChangeURL(id uuid.UUID) string {
	return i.ListURL() + id.String() + "/change/"
}

func (i ModelInfo) DeleteURL(id uuid.UUID) string {
	return i.ListURL() + id.String() + "/delete/"
}

// registered is what the site needs from a model admin of any type.
type registered interface {
	Info() ModelInfo
	attach(site *Site)
	routes(r gin.IRouter)
}

// ModelAdmin generates the changelist, forms and delete pages of one model from its
// configuration. Configure it with the chained setters before registering it.
type ModelAdmin[T any, P Entity[T]] struct {
	info          ModelInfo
	store         repository.Store[T]
	fields        []Field
	listDisplay   []string
	listFilter    []string
	searchFields  []string
	listEditable  []string
	dateHierarchy string
	inlines       []Inline
	site          *Site
}

func NewModelAdmin[T any, P Entity[T]](store repository.Store[T], slug, name, plural string) *ModelAdmin[T, P] {
	return &ModelAdmin[T, P]{
		info:  ModelInfo{Name: name, Plural: plural, Slug: slug, CanAdd: true},
		store: store,
	}
}

func (m *ModelAdmin[T, P]) Fields(fields ...Field) *ModelAdmin[T, P] {
	m.fields = fields
	return m
}

func (m *ModelAdmin[T, P]) ListDisplay(columns ...string) *ModelAdmin[T, P] {
	m.listDisplay = columns
	return m
}

func (m *ModelAdmin[T, P]) ListFilter(columns ...string) *ModelAdmin[T, P] {
	m.listFilter = columns
	return m
}

func (m *ModelAdmin[T, P]) SearchFields(columns ...string) *ModelAdmin[T, P] {
	m.searchFields = columns
	return m
}

func (m *ModelAdmin[T, P]) ListEditable(columns ...string) *ModelAdmin[T, P] {
	m.listEditable = columns
	return m
}

func (m *ModelAdmin[T, P]) DateHierarchy(column string) *ModelAdmin[T, P] {
	m.dateHierarchy = column
	return m
}

func (m *ModelAdmin[T, P]) Inlines(inlines ...Inline) *ModelAdmin[T, P] {
	m.inlines = inlines
	return m
}

// DisableAdd hides the add page, for rows that only arrive from the public site.
func (m *ModelAdmin[T, P]) DisableAdd() *ModelAdmin[T, P] {
	m.info.CanAdd = false
	return m
}

func (m *ModelAdmin[T, P]) Info() ModelInfo { return m.info }

// attach binds the admin to its site and checks the configuration against T. A column
// missing from T or from the field list panics, like a duplicate route would.
func (m *ModelAdmin[T, P]) attach(site *Site) {
	m.site = site

	var zero T
	rv := reflect.ValueOf(&zero).Elem()
	for _, f := range m.fields {
		column(rv, f.Column)
	}
	for _, group := range [][]string{m.listDisplay, m.listFilter, m.listEditable, {m.dateHierarchy}} {
		for _, col := range group {
			if col == "" {
				continue
			}
			if _, ok := m.field(col); !ok {
				panic(fmt.Sprintf("admin: %s configures unknown field %q", m.info.Name, col))
			}
		}
	}
	for _, col := range m.searchFields {
		column(rv, col)
	}
	for _, inline := range m.inlines {
		inline.check()
	}
}

func (m *ModelAdmin[T, P]) routes(r gin.IRouter) {
	base := "/" + m.info.Slug
	r.GET(base+"/", m.changelist)
	r.POST(base+"/", m.bulkEdit)
	r.GET(base+"/add/", m.add)
	r.POST(base+"/add/", m.add)
	r.GET(base+"/:id/change/", m.change)
	r.POST(base+"/:id/change/", m.change)
	r.GET(base+"/:id/delete/", m.delete)
	r.POST(base+"/:id/delete/", m.delete)
}

func (m *ModelAdmin[T, P]) field(col string) (Field, bool) {
	for _, f := range m.fields {
		if f.Column == col {
			return f, true
		}
	}
	return Field{}, false
}

func (m *ModelAdmin[T, P]) editableFields() []Field {
	out := make([]Field, 0, len(m.listEditable))
	for _, col := range m.listEditable {
		f, _ := m.field(col)
		out = append(out, f)
	}
	return out
}

func (m *ModelAdmin[T, P]) lowerName() string { return strings.ToLower(m.info.Name) }

// object loads the row named by the :id route parameter.
func (m *ModelAdmin[T, P]) object(c *gin.Context) (*T, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, apperrors.NotFound(m.lowerName(), err)
	}
	return m.store.Get(c.Request.Context(), id)
}

// ChangeForm is the data of the add and change pages.
type ChangeForm struct {
	Model     ModelInfo
	Add       bool
	Object    string
	ObjectID  uuid.UUID
	Fields    []BoundField
	Inlines   []*InlineForm
	ErrorNote string
	Error     string
}

// Multipart reports whether the form has file inputs.
func (f *ChangeForm) Multipart() bool {
	for _, field := range f.Fields {
		if field.Kind == KindImage {
			return true
		}
	}
	for _, inline := range f.Inlines {
		if inline.Multipart() {
			return true
		}
	}
	return false
}

func (m *ModelAdmin[T, P]) add(c *gin.Context) {
	if !m.info.CanAdd {
		_ = c.Error(apperrors.Forbidden("adding " + m.info.Plural + " is not allowed"))
		return
	}
	var row T
	m.edit(c, &row, true)
}

func (m *ModelAdmin[T, P]) change(c *gin.Context) {
	row, err := m.object(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	m.edit(c, row, false)
}

func (m *ModelAdmin[T, P]) edit(c *gin.Context, row *T, add bool) {
	if c.Request.Method != http.MethodPost {
		m.renderForm(c, row, add, nil, nil, "")
		return
	}

	ctx := c.Request.Context()
	if err := parseForm(c); err != nil {
		_ = c.Error(apperrors.BadRequest("invalid form submission", err))
		return
	}

	before := *row
	b := newBinder(c, m.site.validate)
	rv := reflect.ValueOf(row).Elem()
	b.bind(ctx, rv, "", m.fields)

	parentID := uuid.Nil
	if !add {
		parentID = P(row).PrimaryKey()
	}
	changes := make([]*inlineChanges, len(m.inlines))
	for i, inline := range m.inlines {
		ch, err := inline.bind(ctx, b, parentID)
		if err != nil {
			_ = c.Error(err)
			return
		}
		changes[i] = ch
	}

	if err := m.checkUnique(ctx, b, rv, parentID); err != nil {
		_ = c.Error(err)
		return
	}
	if !b.valid() {
		m.renderForm(c, row, add, b, changes, "")
		return
	}
	if err := b.commit(ctx, m.site.media); err != nil {
		b.discard(ctx, m.site.media)
		_ = c.Error(err)
		return
	}

	err := m.site.inTx(ctx, func(ctx context.Context) error {
		var err error
		if add {
			err = m.store.Create(ctx, row)
		} else {
			err = m.store.Update(ctx, row)
		}
		if err != nil {
			return err
		}
		for i, inline := range m.inlines {
			if err := inline.apply(ctx, P(row).PrimaryKey(), changes[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		b.discard(ctx, m.site.media)
		if apperrors.IsNotFound(err) {
			_ = c.Error(err)
			return
		}
		m.renderForm(c, row, add, b, changes, err.Error())
		return
	}

	id := P(row).PrimaryKey()
	action, verb := "change", "changed"
	if add {
		action, verb = "add", "added"
	}
	m.site.metrics.AdminChanges.WithLabelValues(m.info.Slug, action).Inc()
	zerolog.Ctx(ctx).Info().
		Str("model", m.info.Slug).
		Str("id", id.String()).
		Str("action", action).
		Strs("changed", changedColumns(reflect.ValueOf(&before).Elem(), rv, m.fields)).
		Str("user", m.site.username(c)).
		Msg("admin change")

	msg := fmt.Sprintf("The %s “%s” was %s successfully.", m.lowerName(), P(row).String(), verb)
	target := m.info.ListURL()
	switch {
	case c.PostForm("_continue") != "":
		msg += " You may edit it again below."
		target = m.info.ChangeURL(id)
	case c.PostForm("_addanother") != "" && m.info.CanAdd:
		msg += fmt.Sprintf(" You may add another %s below.", m.lowerName())
		target = m.info.AddURL()
	}
	web.AddFlash(c, web.LevelSuccess, msg)
	c.Redirect(http.StatusFound, target)
}

// checkUnique flags unique fields whose bound value another row already holds.
func (m *ModelAdmin[T, P]) checkUnique(ctx context.Context, b *binder, rv reflect.Value, id uuid.UUID) error {
	for _, f := range m.fields {
		if !f.Unique || f.ReadOnly || b.errors[f.Column] != "" {
			continue
		}
		q := repository.Query{}.Filter(repository.Eq(f.Column, column(rv, f.Column).Interface()))
		if id != uuid.Nil {
			q = q.Filter(repository.Neq("id", id))
		}
		n, err := m.store.Count(ctx, q)
		if err != nil {
			return err
		}
		if n > 0 {
			b.errors[f.Column] = fmt.Sprintf("%s with this %s already exists.", m.info.Name, f.Label)
		}
	}
	return nil
}

func (m *ModelAdmin[T, P]) renderForm(c *gin.Context, row *T, add bool, b *binder, changes []*inlineChanges, storeErr string) {
	ctx := c.Request.Context()
	rv := reflect.ValueOf(row).Elem()

	fields, err := boundFields(ctx, rv, "", m.fields, b)
	if err != nil {
		_ = c.Error(err)
		return
	}

	form := &ChangeForm{Model: m.info, Add: add, Fields: fields, Error: storeErr}
	if !add {
		form.Object = P(row).String()
		form.ObjectID = P(row).PrimaryKey()
	}
	if b != nil && !b.valid() {
		form.ErrorNote = errorNote(len(b.errors))
	}

	for i, inline := range m.inlines {
		var ch *inlineChanges
		if changes != nil {
			ch = changes[i]
		}
		inlineForm, err := inline.form(ctx, form.ObjectID, b, ch)
		if err != nil {
			_ = c.Error(err)
			return
		}
		form.Inlines = append(form.Inlines, inlineForm)
	}

	title := "Add " + m.lowerName()
	crumb := title
	if !add {
		title = "Change " + m.lowerName()
		crumb = form.Object
	}
	c.HTML(http.StatusOK, "admin/change_form.html", m.site.page(c, title, form,
		Breadcrumb{URL: m.info.ListURL(), Label: m.info.Plural},
		Breadcrumb{Label: crumb},
	))
}

func errorNote(n int) string {
	if n == 1 {
		return "Please correct the error below."
	}
	return "Please correct the errors below."
}

// DeleteConfirmation is the data of the delete page.
type DeleteConfirmation struct {
	Model   ModelInfo
	Object  string
	ID      uuid.UUID
	Related []string
}

func (m *ModelAdmin[T, P]) delete(c *gin.Context) {
	ctx := c.Request.Context()
	row, err := m.object(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	id := P(row).PrimaryKey()
	label := P(row).String()

	if c.Request.Method == http.MethodPost {
		if err := m.store.Delete(ctx, id); err != nil {
			_ = c.Error(err)
			return
		}
		m.site.metrics.AdminChanges.WithLabelValues(m.info.Slug, "delete").Inc()
		zerolog.Ctx(ctx).Info().
			Str("model", m.info.Slug).
			Str("id", id.String()).
			Str("action", "delete").
			Str("user", m.site.username(c)).
			Msg("admin change")

		web.AddFlash(c, web.LevelSuccess, fmt.Sprintf("The %s “%s” was deleted successfully.", m.lowerName(), label))
		c.Redirect(http.StatusFound, m.info.ListURL())
		return
	}

	data := &DeleteConfirmation{Model: m.info, Object: label, ID: id}
	for _, inline := range m.inlines {
		summary, err := inline.summary(ctx, id)
		if err != nil {
			_ = c.Error(err)
			return
		}
		if summary != "" {
			data.Related = append(data.Related, summary)
		}
	}

	c.HTML(http.StatusOK, "admin/delete_confirmation.html", m.site.page(c, "Are you sure?", data,
		Breadcrumb{URL: m.info.ListURL(), Label: m.info.Plural},
		Breadcrumb{URL: m.info.ChangeURL(id), Label: label},
		Breadcrumb{Label: "Delete"},
	))
}

// touchColumns adds updated_at to a partial update of rows that keep timestamps.
func touchColumns(row any, rv reflect.Value, fields map[string]interface{}) {
	toucher, ok := row.(model.Toucher)
	if !ok {
		return
	}
	toucher.Touch(model.Now())
	if fi := mapper.TypeMap(rv.Type()).GetByPath("updated_at"); fi != nil {
		fields["updated_at"] = column(rv, "updated_at").Interface()
	}
}

// listURL keeps the changelist filters across a redirect.
func listURL(info ModelInfo, query url.Values) string {
	if enc := query.Encode(); enc != "" {
		return info.ListURL() + "?" + enc
	}
	return info.ListURL()
}
