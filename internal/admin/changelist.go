package admin

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tuaha311/aesthetics-clinic/internal/repository"
	"github.com/tuaha311/aesthetics-clinic/internal/web"
	apperrors "github.com/tuaha311/aesthetics-clinic/pkg/errors"
	"github.com/tuaha311/aesthetics-clinic/pkg/pagination"
)

const (
	paramSearch = "q"
	paramPage   = "p"

	suffixGte   = "__gte"
	suffixLt    = "__lt"
	suffixYear  = "__year"
	suffixMonth = "__month"
	suffixDay   = "__day"

	totalForms = "form-TOTAL_FORMS"
)

// Cell is one value of a changelist row. Exactly one of Text, HTML, Bool or Input is
// meaningful; Link makes the value a link to the change page.
type Cell struct {
	Text  string
	HTML  template.HTML
	Bool  *bool
	Input *BoundField
	Link  string
}

func (c Cell) True() bool { return c.Bool != nil && *c.Bool }

type ListRow struct {
	ID    uuid.UUID
	Index int
	Cells []Cell
}

type Link struct {
	Label    string
	URL      string
	Selected bool
}

type FilterView struct {
	Title   string
	Choices []Link
}

type DateHierarchyView struct {
	Back  *Link
	Links []Link
}

type PageLink struct {
	Number  int
	URL     string
	Current bool
}

// ChangeList is the data of the changelist page.
type ChangeList struct {
	Model         ModelInfo
	Headers       []string
	Rows          []ListRow
	Search        string
	Searchable    bool
	Filters       []FilterView
	DateHierarchy *DateHierarchyView
	Page          pagination.Page
	PageLinks     []PageLink
	ResultCount   int
	FullCount     int
	Editable      bool
	ClearURL      string
	Query         string
}

func (m *ModelAdmin[T, P]) changelist(c *gin.Context) {
	cl, err := m.buildChangeList(c.Request.Context(), c.Request.URL.Query(), time.Now().UTC())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.HTML(http.StatusOK, "admin/change_list.html", m.site.page(c, "Select "+m.lowerName()+" to change", cl,
		Breadcrumb{Label: m.info.Plural},
	))
}

func (m *ModelAdmin[T, P]) buildChangeList(ctx context.Context, params url.Values, now time.Time) (*ChangeList, error) {
	q := m.query(params)

	total, err := m.store.Count(ctx, q)
	if err != nil {
		return nil, err
	}
	full := total
	if len(q.Where) > 0 || q.Search != nil {
		if full, err = m.store.Count(ctx, repository.Query{}); err != nil {
			return nil, err
		}
	}

	page, err := pagination.New(params.Get(paramPage), m.site.cfg.PerPage, total)
	if err != nil {
		return nil, apperrors.NotFound("page", err)
	}
	rows, err := m.store.Find(ctx, q.Page(page.Limit(), page.Offset()))
	if err != nil {
		return nil, err
	}

	cl := &ChangeList{
		Model:       m.info,
		Search:      params.Get(paramSearch),
		Searchable:  len(m.searchFields) > 0,
		Page:        page,
		ResultCount: total,
		FullCount:   full,
		Editable:    len(m.listEditable) > 0,
		ClearURL:    m.info.ListURL(),
		Query:       params.Encode(),
	}
	if page.HasOtherPages() {
		for _, n := range page.Range() {
			cl.PageLinks = append(cl.PageLinks, PageLink{
				Number:  n,
				URL:     queryURL(params, map[string]string{paramPage: strconv.Itoa(n)}),
				Current: n == page.Number,
			})
		}
	}

	labels := make(map[string]map[string]string)
	for _, col := range m.listDisplay {
		f, _ := m.field(col)
		cl.Headers = append(cl.Headers, f.Label)
		if f.Choices != nil {
			if labels[col], err = choiceLabels(ctx, f); err != nil {
				return nil, err
			}
		}
	}

	for i := range rows {
		row, err := m.listRow(ctx, &rows[i], i, labels)
		if err != nil {
			return nil, err
		}
		cl.Rows = append(cl.Rows, row)
	}

	if cl.Filters, err = m.filters(ctx, params, now); err != nil {
		return nil, err
	}
	if m.dateHierarchy != "" {
		all, err := m.store.Find(ctx, q.Unpaged())
		if err != nil {
			return nil, err
		}
		cl.DateHierarchy = m.hierarchy(params, all)
	}
	return cl, nil
}

func (m *ModelAdmin[T, P]) listRow(ctx context.Context, row *T, index int, labels map[string]map[string]string) (ListRow, error) {
	rv := reflect.ValueOf(row).Elem()
	id := P(row).PrimaryKey()
	out := ListRow{ID: id, Index: index}

	for i, col := range m.listDisplay {
		f, _ := m.field(col)
		v := column(rv, col)
		var cell Cell

		switch {
		case m.isEditable(col):
			bound, err := boundField(ctx, rv, fmt.Sprintf("form-%d-", index), f, nil)
			if err != nil {
				return out, err
			}
			cell.Input = &bound
		case f.Kind == KindBool:
			b := v.Bool()
			cell.Bool = &b
		case f.Kind == KindImage:
			cell.HTML = m.site.thumbnail(v.String())
		default:
			cell.Text = display(v, f, labels[col])
		}
		if i == 0 {
			cell.Link = m.info.ChangeURL(id)
		}
		out.Cells = append(out.Cells, cell)
	}
	return out, nil
}

func (m *ModelAdmin[T, P]) isEditable(col string) bool {
	for _, c := range m.listEditable {
		if c == col {
			return true
		}
	}
	return false
}

// query turns the changelist parameters into a store query.
func (m *ModelAdmin[T, P]) query(params url.Values) repository.Query {
	q := repository.Query{}.Matching(params.Get(paramSearch), m.searchFields...)

	for _, col := range m.listFilter {
		f, _ := m.field(col)
		switch f.Kind {
		case KindBool:
			switch params.Get(col) {
			case "1":
				q = q.Filter(repository.Eq(col, true))
			case "0":
				q = q.Filter(repository.Eq(col, false))
			}
		case KindDate, KindDateTime:
			if t, err := time.Parse(dateLayout, params.Get(col+suffixGte)); err == nil {
				q = q.Filter(repository.Gte(col, t))
			}
			if t, err := time.Parse(dateLayout, params.Get(col+suffixLt)); err == nil {
				q = q.Filter(repository.Lt(col, t))
			}
		case KindForeignKey:
			if raw := params.Get(col); raw != "" {
				id, err := uuid.Parse(raw)
				if err != nil {
					q = q.Filter(repository.In(col))
					continue
				}
				q = q.Filter(repository.Eq(col, id))
			}
		default:
			if raw := params.Get(col); raw != "" {
				q = q.Filter(repository.Eq(col, raw))
			}
		}
	}

	if m.dateHierarchy != "" {
		if start, end, ok := hierarchyRange(params, m.dateHierarchy); ok {
			q = q.Filter(repository.Gte(m.dateHierarchy, start), repository.Lt(m.dateHierarchy, end))
		}
	}
	return q
}

func (m *ModelAdmin[T, P]) filters(ctx context.Context, params url.Values, now time.Time) ([]FilterView, error) {
	views := make([]FilterView, 0, len(m.listFilter))
	for _, col := range m.listFilter {
		f, _ := m.field(col)
		view := FilterView{Title: f.Label}

		switch f.Kind {
		case KindBool:
			current := params.Get(col)
			for _, opt := range []Choice{{"", "All"}, {"1", "Yes"}, {"0", "No"}} {
				view.Choices = append(view.Choices, Link{
					Label:    opt.Label,
					URL:      queryURL(params, map[string]string{col: opt.Value}),
					Selected: current == opt.Value,
				})
			}
		case KindDate, KindDateTime:
			gte, lt := params.Get(col+suffixGte), params.Get(col+suffixLt)
			for _, opt := range dateFilterChoices(now) {
				view.Choices = append(view.Choices, Link{
					Label:    opt.label,
					URL:      queryURL(params, map[string]string{col + suffixGte: opt.gte, col + suffixLt: opt.lt}),
					Selected: gte == opt.gte && lt == opt.lt,
				})
			}
		default:
			current := params.Get(col)
			view.Choices = append(view.Choices, Link{
				Label:    "All",
				URL:      queryURL(params, map[string]string{col: ""}),
				Selected: current == "",
			})
			if f.Choices != nil {
				choices, err := f.Choices(ctx)
				if err != nil {
					return nil, err
				}
				for _, choice := range choices {
					view.Choices = append(view.Choices, Link{
						Label:    choice.Label,
						URL:      queryURL(params, map[string]string{col: choice.Value}),
						Selected: current == choice.Value,
					})
				}
			}
		}
		views = append(views, view)
	}
	return views, nil
}

type dateFilterChoice struct {
	label   string
	gte, lt string
}

func dateFilterChoices(now time.Time) []dateFilterChoice {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	year := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	f := func(t time.Time) string { return t.Format(dateLayout) }

	return []dateFilterChoice{
		{label: "Any date"},
		{label: "Today", gte: f(today), lt: f(tomorrow)},
		{label: "Past 7 days", gte: f(today.AddDate(0, 0, -7)), lt: f(tomorrow)},
		{label: "This month", gte: f(month), lt: f(month.AddDate(0, 1, 0))},
		{label: "This year", gte: f(year), lt: f(year.AddDate(1, 0, 0))},
	}
}

// hierarchyRange resolves the year, month and day drill-down parameters of col.
func hierarchyRange(params url.Values, col string) (time.Time, time.Time, bool) {
	year, err := strconv.Atoi(params.Get(col + suffixYear))
	if err != nil || year < 1 {
		return time.Time{}, time.Time{}, false
	}
	month, _ := strconv.Atoi(params.Get(col + suffixMonth))
	day, _ := strconv.Atoi(params.Get(col + suffixDay))

	switch {
	case month >= 1 && month <= 12 && day >= 1 && day <= 31:
		start := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 0, 1), true
	case month >= 1 && month <= 12:
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0), true
	default:
		start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, 0), true
	}
}

// hierarchy builds the drill-down links one level below the current selection.
func (m *ModelAdmin[T, P]) hierarchy(params url.Values, rows []T) *DateHierarchyView {
	col := m.dateHierarchy
	yearKey, monthKey, dayKey := col+suffixYear, col+suffixMonth, col+suffixDay
	year, _ := strconv.Atoi(params.Get(yearKey))
	month, _ := strconv.Atoi(params.Get(monthKey))
	day, _ := strconv.Atoi(params.Get(dayKey))

	seen := make(map[int]bool)
	var values []int
	for i := range rows {
		t, ok := column(reflect.ValueOf(&rows[i]).Elem(), col).Interface().(time.Time)
		if !ok || t.IsZero() {
			continue
		}
		t = t.UTC()
		var v int
		switch {
		case year == 0:
			v = t.Year()
		case month == 0:
			v = int(t.Month())
		default:
			v = t.Day()
		}
		if !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	sort.Ints(values)

	view := &DateHierarchyView{}
	switch {
	case year == 0:
		for _, y := range values {
			view.Links = append(view.Links, Link{
				Label: strconv.Itoa(y),
				URL:   queryURL(params, map[string]string{yearKey: strconv.Itoa(y)}),
			})
		}
	case month == 0:
		view.Back = &Link{Label: "‹ All dates", URL: queryURL(params, map[string]string{yearKey: ""})}
		for _, mo := range values {
			view.Links = append(view.Links, Link{
				Label: time.Month(mo).String() + " " + strconv.Itoa(year),
				URL:   queryURL(params, map[string]string{monthKey: strconv.Itoa(mo)}),
			})
		}
	case day == 0:
		view.Back = &Link{Label: "‹ " + strconv.Itoa(year), URL: queryURL(params, map[string]string{monthKey: ""})}
		for _, d := range values {
			view.Links = append(view.Links, Link{
				Label: time.Month(month).String() + " " + strconv.Itoa(d),
				URL:   queryURL(params, map[string]string{dayKey: strconv.Itoa(d)}),
			})
		}
	default:
		view.Back = &Link{
			Label: "‹ " + time.Month(month).String() + " " + strconv.Itoa(year),
			URL:   queryURL(params, map[string]string{dayKey: ""}),
		}
		view.Links = []Link{{Label: time.Month(month).String() + " " + strconv.Itoa(day), Selected: true}}
	}
	return view
}

// queryURL copies params with the given keys replaced; blank values remove a key. The
// page number is dropped unless it is one of the replaced keys.
func queryURL(params url.Values, set map[string]string) string {
	v := make(url.Values, len(params))
	for k, vals := range params {
		v[k] = append([]string(nil), vals...)
	}
	if _, ok := set[paramPage]; !ok {
		v.Del(paramPage)
	}
	for k, val := range set {
		if val == "" {
			v.Del(k)
			continue
		}
		v.Set(k, val)
	}
	return "?" + v.Encode()
}

// bulkEdit saves the list-editable columns of the rows posted from the changelist.
func (m *ModelAdmin[T, P]) bulkEdit(c *gin.Context) {
	ctx := c.Request.Context()
	query := c.Request.URL.Query()
	if len(m.listEditable) == 0 {
		c.Redirect(http.StatusFound, listURL(m.info, query))
		return
	}
	if err := parseForm(c); err != nil {
		_ = c.Error(apperrors.BadRequest("invalid form submission", err))
		return
	}

	type pending struct {
		id     uuid.UUID
		before T
		row    *T
	}

	editable := m.editableFields()
	b := newBinder(c, m.site.validate)
	total, _ := strconv.Atoi(b.value(totalForms))
	if total > m.site.cfg.PerPage {
		total = m.site.cfg.PerPage
	}

	rows := make([]pending, 0, total)
	for i := 0; i < total; i++ {
		prefix := fmt.Sprintf("form-%d-", i)
		id, err := uuid.Parse(b.value(prefix + "id"))
		if err != nil {
			continue
		}
		row, err := m.store.Get(ctx, id)
		if err != nil {
			if apperrors.IsNotFound(err) {
				continue
			}
			_ = c.Error(err)
			return
		}
		p := pending{id: id, before: *row, row: row}
		b.bind(ctx, reflect.ValueOf(row).Elem(), prefix, editable)
		rows = append(rows, p)
	}

	if !b.valid() {
		web.AddFlash(c, web.LevelError, errorNote(len(b.errors)))
		c.Redirect(http.StatusFound, listURL(m.info, query))
		return
	}

	changed := 0
	for i := range rows {
		p := &rows[i]
		rv := reflect.ValueOf(p.row).Elem()
		cols := changedColumns(reflect.ValueOf(&p.before).Elem(), rv, editable)
		if len(cols) == 0 {
			continue
		}
		fields := make(map[string]interface{}, len(cols)+1)
		for _, col := range cols {
			fields[col] = column(rv, col).Interface()
		}
		touchColumns(any(P(p.row)), rv, fields)
		if err := m.store.UpdateFields(ctx, p.id, fields); err != nil {
			_ = c.Error(err)
			return
		}
		m.site.metrics.AdminChanges.WithLabelValues(m.info.Slug, "change").Inc()
		changed++
	}

	if changed > 0 {
		name := m.lowerName()
		verb := "was"
		if changed != 1 {
			name = strings.ToLower(m.info.Plural)
			verb = "were"
		}
		web.AddFlash(c, web.LevelSuccess, fmt.Sprintf("%d %s %s changed successfully.", changed, name, verb))
	}
	c.Redirect(http.StatusFound, listURL(m.info, query))
}
