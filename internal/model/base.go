package model

import (
	"time"

	"github.com/google/uuid"
)

// Table names.
const (
	TableTreatments       = "treatments"
	TableTreatmentFAQs    = "treatment_faqs"
	TableBeforeAfterImage = "before_after_images"
	TableTeamMembers      = "team_members"
	TableTestimonials     = "testimonials"
	TableBlogPosts        = "blog_posts"
	TableContacts         = "contacts"
	TableUsers            = "users"
)

// Base contains the primary key shared by every entity.
type Base struct {
	ID uuid.UUID `json:"id" db:"id" goqu:"skipupdate"`
}

// Timestamps are maintained by the repositories.
type Timestamps struct {
	CreatedAt time.Time `json:"created_at" db:"created_at" goqu:"skipupdate"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Now returns the current time in the precision and zone the store keeps.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Toucher is implemented by entities that stamp their own timestamps before a save.
type Toucher interface {
	Touch(now time.Time)
}

// Touch stamps UpdatedAt and, on first save, CreatedAt.
func (t *Timestamps) Touch(now time.Time) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}

// PrimaryKey and SetPrimaryKey let generic repositories address any entity.
func (b Base) PrimaryKey() uuid.UUID { return b.ID }

func (b *Base) SetPrimaryKey(id uuid.UUID) { b.ID = id }
