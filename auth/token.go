package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/user/periferia-go/apperror"
	"github.com/user/periferia-go/config"
)

// Claims is the JWT payload: the user identifier plus the registered claims
// that carry issuance and expiry.
type Claims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, time-limited session tokens.
type TokenService struct {
	secret   []byte
	duration time.Duration
}

// NewTokenService creates a TokenService from the auth configuration.
func NewTokenService(cfg config.AuthConfig) *TokenService {
	return &TokenService{
		secret:   []byte(cfg.JWTSecret),
		duration: cfg.TokenDuration,
	}
}

// Issue produces a signed HS256 token embedding userID, expiring after the
// configured duration (one hour by default).
func (s *TokenService) Issue(userID int) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify parses tokenString and returns the embedded user ID. It fails with
// an AuthError if the signature is invalid, the token is malformed, signed
// with an unexpected method, or expired.
func (s *TokenService) Verify(tokenString string) (int, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, apperror.NewAuthError("token expired", err)
		}
		return 0, apperror.NewAuthError("invalid token", err)
	}
	if !token.Valid {
		return 0, apperror.NewAuthError("invalid token", nil)
	}
	if claims.UserID == 0 {
		return 0, apperror.NewAuthError("invalid token: user_id claim is missing", nil)
	}
	return claims.UserID, nil
}
