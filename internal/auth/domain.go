package auth

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account.
type User struct {
	ID           uuid.UUID
	Name         string
	Username     string
	Email        string
	PasswordHash string
	Avatar       *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the public projection of a User returned over HTTP.
type Profile struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Avatar *string   `json:"avatar"`
}

// Profile returns the wire representation of the user. The display name
// falls back to the username for accounts that never set one.
func (u *User) Profile() Profile {
	name := u.Name
	if name == "" {
		name = u.Username
	}
	return Profile{
		ID:     u.ID,
		Name:   name,
		Email:  u.Email,
		Avatar: u.Avatar,
	}
}
