// Package auth handles authentication and authorization: password hashing,
// session token issuance and verification, login, password change, and the
// bearer-token middleware applied to protected routes.
package auth

import "time"

// User represents a user account as stored in the database.
type User struct {
	ID           int       `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never serialized
	BirthDate    time.Time `json:"birthDate"`
	Alias        string    `json:"alias"`
}
