package model

import (
	"time"
)

type User struct {
	ID           string    `db:"id"`
	Email        *string   `db:"email"` // Nullable for anonymous users
	PasswordHash *string   `db:"password_hash"`
	Anonymous    bool      `db:"anonymous"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

func (u *User) HasEmail() bool {
	return u.Email != nil && *u.Email != ""
}
