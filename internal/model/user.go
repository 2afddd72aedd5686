package model

import "time"

const RoleProcessor = "Processor"

// User represents a warehouse staff account. Accounts are seeded
// administratively; PasswordHash is nil until the user sets a password.
type User struct {
	ID                 int       `json:"id"`
	OpsID              string    `json:"ops_id"`
	Name               string    `json:"name"`
	Role               string    `json:"role"`
	Email              *string   `json:"email"`
	Department         *string   `json:"department"`
	PasswordHash       *string   `json:"-"` // Do not expose password hash in JSON responses
	IsFirstTime        bool      `json:"is_first_time"`
	MustChangePassword bool      `json:"must_change_password"`
	CreatedAt          time.Time `json:"created_at"`
}

// HasPassword reports whether the account has a stored credential.
// Seeded accounts without one authenticate on ops_id alone until a
// password is set via change-password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
