package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/tuaha311/aesthetics-clinic/internal/repository"
)

// NewRepositories wires every repository over db.
func NewRepositories(db *sqlx.DB) *repository.Repositories {
	base := NewBaseRepository(db)
	return &repository.Repositories{
		Treatments:   NewTreatmentRepository(base),
		FAQs:         NewTreatmentFAQRepository(base),
		BeforeAfter:  NewBeforeAfterRepository(base),
		Team:         NewTeamMemberRepository(base),
		Testimonials: NewTestimonialRepository(base),
		Posts:        NewBlogPostRepository(base),
		Contacts:     NewContactRepository(base),
		Users:        NewUserRepository(base),
		Tx:           &base,
	}
}
