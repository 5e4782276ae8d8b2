// Package users provides the user profile service: fetching the
// authenticated user's own profile.
package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/periferia-go/apperror"
)

// UserService provides user profile operations.
type UserService struct {
	db *pgxpool.Pool
}

// NewUserService creates a new UserService.
func NewUserService(db *pgxpool.Pool) *UserService {
	return &UserService{db: db}
}

// GetProfile retrieves a user's profile by ID. The query selects every
// profile field and nothing credential-related.
func (s *UserService) GetProfile(ctx context.Context, userID int) (*ProfileResponse, error) {
	query := `
		SELECT id, first_name, last_name, alias, birth_date, email
		FROM users
		WHERE id = $1`

	var profile ProfileResponse
	err := s.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.FirstName,
		&profile.LastName,
		&profile.Alias,
		&profile.BirthDate,
		&profile.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("user not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user profile", err)
	}

	return &profile, nil
}
