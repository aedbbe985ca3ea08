package model

type TeamMember struct {
	Base
	Name  string `json:"name" db:"name"`
	Role  string `json:"role" db:"role"`
	Bio   string `json:"bio" db:"bio"`
	Image string `json:"image" db:"image"`
	Order int    `json:"order" db:"sort_order"`
}

func (m TeamMember) String() string { return m.Name + " - " + m.Role }
