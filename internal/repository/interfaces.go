package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/tuaha311/aesthetics-clinic/internal/model"
)

// Store is the generic CRUD contract every entity repository offers.
// Get and First fail with a NotFound application error when no row matches.
type Store[T any] interface {
	Create(ctx context.Context, row *T) error
	Get(ctx context.Context, id uuid.UUID) (*T, error)
	First(ctx context.Context, q Query) (*T, error)
	Find(ctx context.Context, q Query) ([]T, error)
	Count(ctx context.Context, q Query) (int, error)
	Update(ctx context.Context, row *T) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// All repository interfaces in one file
type (
	// TreatmentRepository deletes cascade to FAQs and before/after images and clear the
	// treatment on testimonials.
	TreatmentRepository interface {
		Store[model.Treatment]
		GetBySlug(ctx context.Context, slug string) (*model.Treatment, error)
		// Categories lists the distinct categories present on stored treatments.
		Categories(ctx context.Context) ([]model.Category, error)
	}

	TreatmentFAQRepository interface {
		Store[model.TreatmentFAQ]
	}

	BeforeAfterRepository interface {
		Store[model.BeforeAfterImage]
		FindWithTreatment(ctx context.Context, q Query) ([]model.BeforeAfterImage, error)
	}

	TeamMemberRepository interface {
		Store[model.TeamMember]
	}

	TestimonialRepository interface {
		Store[model.Testimonial]
		FindWithTreatment(ctx context.Context, q Query) ([]model.Testimonial, error)
	}

	BlogPostRepository interface {
		Store[model.BlogPost]
		GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error)
		FindWithAuthor(ctx context.Context, q Query) ([]model.BlogPost, error)
	}

	ContactRepository interface {
		Store[model.Contact]
	}

	// UserRepository deletes cascade to the user's blog posts.
	UserRepository interface {
		Store[model.User]
		GetByUsername(ctx context.Context, username string) (*model.User, error)
	}
)

// Repositories bundles every repository the application wires together.
type Repositories struct {
	Treatments   TreatmentRepository
	FAQs         TreatmentFAQRepository
	BeforeAfter  BeforeAfterRepository
	Team         TeamMemberRepository
	Testimonials TestimonialRepository
	Posts        BlogPostRepository
	Contacts     ContactRepository
	Users        UserRepository
	Tx           Transactor
}

// Transactor runs fn in a single transaction. Repository calls made with the ctx passed
// to fn take part in it.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
