package admin

import (
	"context"
	"fmt"
	"reflect"
	"strconv"

	"github.com/google/uuid"

	"github.com/tuaha311/aesthetics-clinic/internal/repository"
	apperrors "github.com/tuaha311/aesthetics-clinic/pkg/errors"
)

const maxInlineForms = 1000

// Inline edits the children of a parent row on the parent's change form.
type Inline interface {
	check()
	bind(ctx context.Context, b *binder, parentID uuid.UUID) (*inlineChanges, error)
	apply(ctx context.Context, parentID uuid.UUID, changes *inlineChanges) error
	form(ctx context.Context, parentID uuid.UUID, b *binder, changes *inlineChanges) (*InlineForm, error)
	summary(ctx context.Context, parentID uuid.UUID) (string, error)
}

// InlineEntity is the pointer side of a child model.
type InlineEntity[T any] interface {
	*T
	PrimaryKey() uuid.UUID
}

type inlineRow struct {
	index  int
	id     uuid.UUID
	row    any
	delete bool
	skip   bool
	err    string
}

type inlineChanges struct {
	rows []inlineRow
}

// InlineRow is one child form of an inline.
type InlineRow struct {
	Index      int
	ID         string
	IDName     string
	DeleteName string
	Delete     bool
	Fields     []BoundField
	Error      string
}

// InlineForm is the data of one inline table.
type InlineForm struct {
	Prefix    string
	Title     string
	Headers   []string
	Rows      []InlineRow
	TotalName string
	Total     int
}

func (f *InlineForm) Multipart() bool {
	for _, row := range f.Rows {
		for _, field := range row.Fields {
			if field.Kind == KindImage {
				return true
			}
		}
	}
	return false
}

// InlineAdmin edits rows of T whose foreign key column points at the parent. Forms are
// named prefix-N-column, with prefix-N-id and prefix-N-DELETE per existing row.
type InlineAdmin[T any, P InlineEntity[T]] struct {
	prefix string
	name   string
	plural string
	store  repository.Store[T]
	fk     string
	fields []Field
	extra  int
}

func NewInline[T any, P InlineEntity[T]](store repository.Store[T], prefix, name, plural, fk string, fields ...Field) *InlineAdmin[T, P] {
	return &InlineAdmin[T, P]{
		prefix: prefix,
		name:   name,
		plural: plural,
		store:  store,
		fk:     fk,
		fields: fields,
		extra:  1,
	}
}

// Extra sets the number of blank forms offered below the existing rows.
func (a *InlineAdmin[T, P]) Extra(n int) *InlineAdmin[T, P] {
	a.extra = n
	return a
}

func (a *InlineAdmin[T, P]) check() {
	var zero T
	rv := reflect.ValueOf(&zero).Elem()
	column(rv, a.fk)
	for _, f := range a.fields {
		column(rv, f.Column)
	}
}

func (a *InlineAdmin[T, P]) rowPrefix(i int) string {
	return a.prefix + "-" + strconv.Itoa(i) + "-"
}

func (a *InlineAdmin[T, P]) parentOf(row *T) uuid.UUID {
	id, _ := column(reflect.ValueOf(row).Elem(), a.fk).Interface().(uuid.UUID)
	return id
}

func (a *InlineAdmin[T, P]) bind(ctx context.Context, b *binder, parentID uuid.UUID) (*inlineChanges, error) {
	total, _ := strconv.Atoi(b.value(a.prefix + "-TOTAL_FORMS"))
	if total < 0 {
		total = 0
	}
	if total > maxInlineForms {
		total = maxInlineForms
	}

	changes := &inlineChanges{rows: make([]inlineRow, 0, total)}
	for i := 0; i < total; i++ {
		prefix := a.rowPrefix(i)
		r := inlineRow{index: i}

		if raw := b.value(prefix + "id"); raw != "" {
			existing, err := a.existing(ctx, raw, parentID)
			if err != nil {
				return nil, err
			}
			if existing == nil {
				r.row = new(T)
				r.err = fmt.Sprintf("The %s could not be found.", a.name)
				b.errors[prefix+"id"] = r.err
				changes.rows = append(changes.rows, r)
				continue
			}
			r.id = P(existing).PrimaryKey()
			r.row = existing
			if b.value(prefix+"DELETE") != "" {
				r.delete = true
				changes.rows = append(changes.rows, r)
				continue
			}
		} else {
			r.row = new(T)
			if !b.filled(prefix, a.fields) {
				r.skip = true
				changes.rows = append(changes.rows, r)
				continue
			}
		}

		b.bind(ctx, reflect.ValueOf(r.row).Elem(), prefix, a.fields)
		changes.rows = append(changes.rows, r)
	}
	return changes, nil
}

// existing loads the child named by raw, or nil when it does not belong to the parent.
func (a *InlineAdmin[T, P]) existing(ctx context.Context, raw string, parentID uuid.UUID) (*T, error) {
	id, err := uuid.Parse(raw)
	if err != nil || parentID == uuid.Nil {
		return nil, nil
	}
	row, err := a.store.Get(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if a.parentOf(row) != parentID {
		return nil, nil
	}
	return row, nil
}

func (a *InlineAdmin[T, P]) apply(ctx context.Context, parentID uuid.UUID, changes *inlineChanges) error {
	if changes == nil {
		return nil
	}
	for _, r := range changes.rows {
		if r.skip {
			continue
		}
		row := r.row.(*T)
		if r.delete {
			if err := a.store.Delete(ctx, r.id); err != nil && !apperrors.IsNotFound(err) {
				return err
			}
			continue
		}

		column(reflect.ValueOf(row).Elem(), a.fk).Set(reflect.ValueOf(parentID))
		var err error
		if r.id == uuid.Nil {
			err = a.store.Create(ctx, row)
		} else {
			err = a.store.Update(ctx, row)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (a *InlineAdmin[T, P]) form(ctx context.Context, parentID uuid.UUID, b *binder, changes *inlineChanges) (*InlineForm, error) {
	f := &InlineForm{
		Prefix:    a.prefix,
		Title:     a.plural,
		TotalName: a.prefix + "-TOTAL_FORMS",
	}
	for _, field := range a.fields {
		f.Headers = append(f.Headers, field.Label)
	}

	if changes != nil {
		for _, r := range changes.rows {
			row, err := a.row(ctx, r.index, r.id, r.row.(*T), b)
			if err != nil {
				return nil, err
			}
			row.Delete = r.delete
			row.Error = r.err
			f.Rows = append(f.Rows, row)
		}
		f.Total = len(f.Rows)
		return f, nil
	}

	var existing []T
	if parentID != uuid.Nil {
		var err error
		existing, err = a.store.Find(ctx, repository.Query{}.Filter(repository.Eq(a.fk, parentID)))
		if err != nil {
			return nil, err
		}
	}
	for i := range existing {
		row, err := a.row(ctx, i, P(&existing[i]).PrimaryKey(), &existing[i], nil)
		if err != nil {
			return nil, err
		}
		f.Rows = append(f.Rows, row)
	}
	for i := 0; i < a.extra; i++ {
		row, err := a.row(ctx, len(f.Rows), uuid.Nil, new(T), nil)
		if err != nil {
			return nil, err
		}
		f.Rows = append(f.Rows, row)
	}
	f.Total = len(f.Rows)
	return f, nil
}

func (a *InlineAdmin[T, P]) row(ctx context.Context, index int, id uuid.UUID, row *T, b *binder) (InlineRow, error) {
	prefix := a.rowPrefix(index)
	fields, err := boundFields(ctx, reflect.ValueOf(row).Elem(), prefix, a.fields, b)
	if err != nil {
		return InlineRow{}, err
	}
	out := InlineRow{
		Index:      index,
		IDName:     prefix + "id",
		DeleteName: prefix + "DELETE",
		Fields:     fields,
	}
	if id != uuid.Nil {
		out.ID = id.String()
	}
	return out, nil
}

// summary names the children a delete of the parent removes with it.
func (a *InlineAdmin[T, P]) summary(ctx context.Context, parentID uuid.UUID) (string, error) {
	n, err := a.store.Count(ctx, repository.Query{}.Filter(repository.Eq(a.fk, parentID)))
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	return fmt.Sprintf("%s: %d", a.plural, n), nil
}
