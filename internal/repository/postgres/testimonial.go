package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/tuaha311/aesthetics-clinic/internal/model"
	"github.com/tuaha311/aesthetics-clinic/internal/repository"
)

type testimonialRepository struct {
	*Table[model.Testimonial, *model.Testimonial]
}

func NewTestimonialRepository(base BaseRepository) repository.TestimonialRepository {
	return &testimonialRepository{
		NewTable[model.Testimonial](base, model.TableTestimonials, "testimonial", repository.Desc("date")),
	}
}

// FindWithTreatment lists testimonials with their optional Treatment populated.
func (r *testimonialRepository) FindWithTreatment(ctx context.Context, q repository.Query) ([]model.Testimonial, error) {
	testimonials, err := r.Find(ctx, q)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(testimonials))
	for _, t := range testimonials {
		if t.TreatmentID.Valid {
			ids = append(ids, t.TreatmentID.UUID)
		}
	}
	treatments, err := treatmentsByID(ctx, r.BaseRepository, ids)
	if err != nil {
		return nil, err
	}
	for i := range testimonials {
		if testimonials[i].TreatmentID.Valid {
			testimonials[i].Treatment = treatments[testimonials[i].TreatmentID.UUID]
		}
	}
	return testimonials, nil
}
