package model

import "time"

// User is a stored credential record.
// The password is kept only as a bcrypt hash; the plaintext secret never
// leaves the login request.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Admin        bool      `json:"admin"`
	CreatedAt    time.Time `json:"created_at"`
}
