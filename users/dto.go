package users

import "time"

// ProfileResponse is the profile of the authenticated user. The password
// hash is deliberately absent.
type ProfileResponse struct {
	ID        int       `json:"id" example:"1"`
	FirstName string    `json:"firstName" example:"Juan"`
	LastName  string    `json:"lastName" example:"Parez"`
	Alias     string    `json:"alias" example:"juanp"`
	BirthDate time.Time `json:"birthDate" example:"1990-01-01T00:00:00Z"`
	Email     string    `json:"email" example:"juan@example.com"`
}
