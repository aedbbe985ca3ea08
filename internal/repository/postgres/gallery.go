package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/tuaha311/aesthetics-clinic/internal/model"
	"github.com/tuaha311/aesthetics-clinic/internal/repository"
)

type beforeAfterRepository struct {
	*Table[model.BeforeAfterImage, *model.BeforeAfterImage]
}

func NewBeforeAfterRepository(base BaseRepository) repository.BeforeAfterRepository {
	return &beforeAfterRepository{
		NewTable[model.BeforeAfterImage](base, model.TableBeforeAfterImage, "before/after image", repository.Desc("created_at")),
	}
}

// FindWithTreatment lists images with their Treatment populated.
func (r *beforeAfterRepository) FindWithTreatment(ctx context.Context, q repository.Query) ([]model.BeforeAfterImage, error) {
	images, err := r.Find(ctx, q)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(images))
	for _, img := range images {
		ids = append(ids, img.TreatmentID)
	}
	treatments, err := treatmentsByID(ctx, r.BaseRepository, ids)
	if err != nil {
		return nil, err
	}
	for i := range images {
		images[i].Treatment = treatments[images[i].TreatmentID]
	}
	return images, nil
}
