package model

import "time"

// Contact is a message left through the public contact form. Only Responded changes
// after creation.
type Contact struct {
	Base
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at" goqu:"skipupdate"`
	Responded bool      `json:"responded" db:"responded"`
}

func (c Contact) String() string {
	return "Message from " + c.Name + " (" + c.CreatedAt.Format("2006-01-02") + ")"
}

func (c *Contact) Touch(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
}
