package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tuaha311/aesthetics-clinic/internal/model"
	"github.com/tuaha311/aesthetics-clinic/internal/repository"
	apperrors "github.com/tuaha311/aesthetics-clinic/pkg/errors"
)

// Entity is the pointer side of a model that generic tables can address by id.
type Entity[T any] interface {
	*T
	PrimaryKey() uuid.UUID
	SetPrimaryKey(uuid.UUID)
}

// Table implements repository.Store for one table whose columns match the db tags of T.
type Table[T any, P Entity[T]] struct {
	BaseRepository
	name         string
	resource     string
	defaultOrder []repository.Order
}

func NewTable[T any, P Entity[T]](base BaseRepository, name, resource string, defaultOrder ...repository.Order) *Table[T, P] {
	return &Table[T, P]{
		BaseRepository: base,
		name:           name,
		resource:       resource,
		defaultOrder:   defaultOrder,
	}
}

func (t *Table[T, P]) Name() string { return t.name }

func (t *Table[T, P]) selectDataset(q repository.Query) *goqu.SelectDataset {
	if len(q.OrderBy) == 0 {
		q.OrderBy = t.defaultOrder
	}
	return applyQuery(t.dialect.From(t.name).Prepared(true), q)
}

func (t *Table[T, P]) Create(ctx context.Context, row *T) error {
	p := P(row)
	if p.PrimaryKey() == uuid.Nil {
		p.SetPrimaryKey(uuid.New())
	}
	if toucher, ok := any(p).(model.Toucher); ok {
		toucher.Touch(model.Now())
	}

	query, args, err := t.dialect.Insert(t.name).Prepared(true).Rows(*row).ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build %s insert: %w", t.resource, err)
	}
	if _, err := t.ext(ctx).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create %s: %w", t.resource, err)
	}
	return nil
}

func (t *Table[T, P]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	return t.First(ctx, repository.Query{}.Filter(repository.Eq("id", id)))
}

func (t *Table[T, P]) First(ctx context.Context, q repository.Query) (*T, error) {
	query, args, err := t.selectDataset(q.Take(1)).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s query: %w", t.resource, err)
	}

	var row T
	if err := sqlx.GetContext(ctx, t.ext(ctx), &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound(t.resource, err)
		}
		return nil, fmt.Errorf("failed to get %s: %w", t.resource, err)
	}
	return &row, nil
}

func (t *Table[T, P]) Find(ctx context.Context, q repository.Query) ([]T, error) {
	query, args, err := t.selectDataset(q).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s query: %w", t.resource, err)
	}

	rows := []T{}
	if err := sqlx.SelectContext(ctx, t.ext(ctx), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", t.resource, err)
	}
	return rows, nil
}

func (t *Table[T, P]) Count(ctx context.Context, q repository.Query) (int, error) {
	q = q.Unpaged()
	q.OrderBy = nil
	ds := applyQuery(t.dialect.From(t.name).Prepared(true), q).Select(goqu.COUNT(goqu.Star()))

	query, args, err := ds.ToSQL()
	if err != nil {
		return 0, fmt.Errorf("failed to build %s count: %w", t.resource, err)
	}

	var n int
	if err := sqlx.GetContext(ctx, t.ext(ctx), &n, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", t.resource, err)
	}
	return n, nil
}

func (t *Table[T, P]) Update(ctx context.Context, row *T) error {
	p := P(row)
	if toucher, ok := any(p).(model.Toucher); ok {
		toucher.Touch(model.Now())
	}

	query, args, err := t.dialect.Update(t.name).Prepared(true).
		Set(*row).
		Where(goqu.C("id").Eq(p.PrimaryKey())).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build %s update: %w", t.resource, err)
	}
	return t.execOne(ctx, t.ext(ctx), "update", query, args)
}

// UpdateFields sets only the given columns, the way list-editable admin columns save.
func (t *Table[T, P]) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	query, args, err := t.dialect.Update(t.name).Prepared(true).
		Set(goqu.Record(fields)).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build %s update: %w", t.resource, err)
	}
	return t.execOne(ctx, t.ext(ctx), "update", query, args)
}

func (t *Table[T, P]) Delete(ctx context.Context, id uuid.UUID) error {
	return t.deleteWith(ctx, t.ext(ctx), id)
}

func (t *Table[T, P]) deleteWith(ctx context.Context, ext sqlx.ExecerContext, id uuid.UUID) error {
	query, args, err := t.dialect.Delete(t.name).Prepared(true).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build %s delete: %w", t.resource, err)
	}
	return t.execOne(ctx, ext, "delete", query, args)
}

func (t *Table[T, P]) execOne(ctx context.Context, ext sqlx.ExecerContext, action, query string, args []interface{}) error {
	result, err := ext.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to %s %s: %w", action, t.resource, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to %s %s: %w", action, t.resource, err)
	}
	if affected == 0 {
		return apperrors.NotFound(t.resource, sql.ErrNoRows)
	}
	return nil
}
