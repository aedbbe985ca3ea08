package model

import (
	"database/sql"
	"strings"
	"time"
)

// User is a staff account of the admin console.
type User struct {
	Base
	Username     string       `json:"username" db:"username"`
	Email        string       `json:"email" db:"email"`
	PasswordHash string       `json:"-" db:"password_hash"`
	FirstName    string       `json:"first_name" db:"first_name"`
	LastName     string       `json:"last_name" db:"last_name"`
	IsStaff      bool         `json:"is_staff" db:"is_staff"`
	IsSuperuser  bool         `json:"is_superuser" db:"is_superuser"`
	IsActive     bool         `json:"is_active" db:"is_active"`
	DateJoined   time.Time    `json:"date_joined" db:"date_joined" goqu:"skipupdate"`
	LastLogin    sql.NullTime `json:"last_login" db:"last_login"`
}

// DisplayName is the full name when one is set, otherwise the username.
func (u User) DisplayName() string {
	if full := strings.TrimSpace(u.FirstName + " " + u.LastName); full != "" {
		return full
	}
	return u.Username
}

func (u User) String() string { return u.Username }

// CanUseAdmin reports whether the account may sign in to the admin console.
func (u User) CanUseAdmin() bool {
	return u.IsActive && (u.IsStaff || u.IsSuperuser)
}

func (u *User) Touch(now time.Time) {
	if u.DateJoined.IsZero() {
		u.DateJoined = now
	}
}
