package models

import "time"

// Role identifies what a user is allowed to do.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleClient Role = "CLIENT"
)

// User is a staff member (ADMIN) or a client of the firm (CLIENT).
// Clients authenticate with name + PIN and only read their own cases.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	PINHash   string    `json:"-"`
	Email     string    `json:"email,omitempty"`
	WhatsApp  string    `json:"whatsapp,omitempty"`
	Archived  bool      `json:"archived,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// IsActive reports whether the user may log in.
func (u *User) IsActive() bool {
	return !u.Archived
}
