package model

import (
	"time"

	"github.com/google/uuid"
)

type Testimonial struct {
	Base
	Name        string        `json:"name" db:"name"`
	TreatmentID uuid.NullUUID `json:"treatment_id" db:"treatment_id"`
	Quote       string        `json:"quote" db:"quote"`
	Image       string        `json:"image" db:"image"`
	Date        time.Time     `json:"date" db:"date"`
	Featured    bool          `json:"featured" db:"featured"`

	Treatment *Treatment `json:"treatment,omitempty" db:"-"`
}

func (t Testimonial) String() string { return "Testimonial from " + t.Name }

// Touch defaults the testimonial date to now.
func (t *Testimonial) Touch(now time.Time) {
	if t.Date.IsZero() {
		t.Date = now
	}
}
