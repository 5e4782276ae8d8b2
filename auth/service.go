package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/user/periferia-go/apperror"
)

// AuthService defines login and password change on top of the credential
// store (bcrypt) and the token service. Handlers depend on this interface
// rather than the concrete implementation.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	ChangePassword(ctx context.Context, userID int, req ChangePasswordRequest) error
}

type authServiceImpl struct {
	db     *pgxpool.Pool
	tokens *TokenService
	log    *logrus.Logger
}

// NewAuthService creates an AuthService backed by the given connection pool.
func NewAuthService(db *pgxpool.Pool, tokens *TokenService, log *logrus.Logger) AuthService {
	return &authServiceImpl{db: db, tokens: tokens, log: log}
}

// Login verifies the credentials and issues a session token. An unknown
// email and a wrong password produce the same status and message so callers
// cannot enumerate accounts.
func (s *authServiceImpl) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.getUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewAuthError("invalid email or password", nil)
		}
		s.log.WithError(err).Error("failed to look up user by email")
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}

	if !CheckPassword(req.Password, user.PasswordHash) {
		return nil, apperror.NewAuthError("invalid email or password", nil)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperror.NewInternalError("failed to issue token", err)
	}

	s.log.WithField("user_id", user.ID).Info("user logged in")
	return &TokenResponse{Token: token}, nil
}

// ChangePassword re-verifies the current password and replaces the stored
// hash with a hash of the new one. A wrong current password never mutates
// the stored credential.
func (s *authServiceImpl) ChangePassword(ctx context.Context, userID int, req ChangePasswordRequest) error {
	user, err := s.getUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.NewNotFoundError("user not found", nil)
		}
		return apperror.NewDatabaseError("failed to get user", err)
	}

	if !CheckPassword(req.CurrentPassword, user.PasswordHash) {
		return apperror.NewBadRequestError("current password is incorrect", nil)
	}

	newHash, err := HashPassword(req.NewPassword)
	if err != nil {
		return apperror.NewInternalError("failed to hash password", err)
	}

	tag, err := s.db.Exec(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, newHash, userID)
	if err != nil {
		return apperror.NewDatabaseError("failed to update password", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError("user not found", nil)
	}

	s.log.WithField("user_id", userID).Info("password changed")
	return nil
}

func (s *authServiceImpl) getUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	query := `SELECT id, first_name, last_name, email, password_hash, birth_date, alias
              FROM users WHERE LOWER(email) = $1`
	err := s.db.QueryRow(ctx, query, strings.ToLower(email)).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email,
		&user.PasswordHash, &user.BirthDate, &user.Alias,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *authServiceImpl) getUserByID(ctx context.Context, userID int) (*User, error) {
	var user User
	query := `SELECT id, first_name, last_name, email, password_hash, birth_date, alias
              FROM users WHERE id = $1`
	err := s.db.QueryRow(ctx, query, userID).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email,
		&user.PasswordHash, &user.BirthDate, &user.Alias,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
