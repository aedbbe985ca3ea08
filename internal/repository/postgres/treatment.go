package postgres

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tuaha311/aesthetics-clinic/internal/model"
	"github.com/tuaha311/aesthetics-clinic/internal/repository"
)

type treatmentRepository struct {
	*Table[model.Treatment, *model.Treatment]
}

func NewTreatmentRepository(base BaseRepository) repository.TreatmentRepository {
	return &treatmentRepository{
		NewTable[model.Treatment](base, model.TableTreatments, "treatment", repository.Asc("name")),
	}
}

func (r *treatmentRepository) GetBySlug(ctx context.Context, slug string) (*model.Treatment, error) {
	return r.First(ctx, repository.Query{}.Filter(repository.Eq("slug", slug)))
}

func (r *treatmentRepository) Categories(ctx context.Context) ([]model.Category, error) {
	query, args, err := r.dialect.From(model.TableTreatments).Prepared(true).
		Select("category").
		Distinct().
		Order(goqu.C("category").Asc()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build category query: %w", err)
	}

	categories := []model.Category{}
	if err := sqlx.SelectContext(ctx, r.ext(ctx), &categories, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list treatment categories: %w", err)
	}
	return categories, nil
}

// Delete removes the treatment together with its FAQs and before/after images and
// detaches its testimonials, in one transaction.
func (r *treatmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		for _, table := range []string{model.TableTreatmentFAQs, model.TableBeforeAfterImage} {
			query, args, err := r.dialect.Delete(table).Prepared(true).
				Where(goqu.C("treatment_id").Eq(id)).
				ToSQL()
			if err != nil {
				return fmt.Errorf("failed to build %s delete: %w", table, err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("failed to delete %s of treatment: %w", table, err)
			}
		}

		query, args, err := r.dialect.Update(model.TableTestimonials).Prepared(true).
			Set(goqu.Record{"treatment_id": nil}).
			Where(goqu.C("treatment_id").Eq(id)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("failed to build testimonial update: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to detach testimonials: %w", err)
		}

		return r.deleteWith(ctx, tx, id)
	})
}

type treatmentFAQRepository struct {
	*Table[model.TreatmentFAQ, *model.TreatmentFAQ]
}

func NewTreatmentFAQRepository(base BaseRepository) repository.TreatmentFAQRepository {
	return &treatmentFAQRepository{
		NewTable[model.TreatmentFAQ](base, model.TableTreatmentFAQs, "treatment FAQ", repository.Asc("sort_order")),
	}
}

// treatmentsByID loads the treatments referenced by ids in a single query.
func treatmentsByID(ctx context.Context, base BaseRepository, ids []uuid.UUID) (map[uuid.UUID]*model.Treatment, error) {
	out := make(map[uuid.UUID]*model.Treatment, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	values := make([]interface{}, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			values = append(values, id)
		}
	}

	treatments, err := NewTable[model.Treatment](base, model.TableTreatments, "treatment").
		Find(ctx, repository.Query{}.Filter(repository.In("id", values...)))
	if err != nil {
		return nil, err
	}
	for i := range treatments {
		out[treatments[i].ID] = &treatments[i]
	}
	return out, nil
}
