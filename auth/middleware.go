package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/user/periferia-go/apperror"
)

// ContextKey is the type used for context keys to avoid collisions.
type ContextKey string

// UserIDKey is the context key under which the authenticated user's ID is
// stored by Middleware.
const UserIDKey ContextKey = "userID"

// Middleware returns the bearer-token authentication middleware. It extracts
// the Authorization header, verifies the token, and stores the resulting
// userID in the request context before calling the next handler.
func Middleware(tokens *TokenService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteError(w, r, apperror.NewAuthError("authorization header is missing", nil))
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				WriteError(w, r, apperror.NewAuthError("authorization header format must be Bearer {token}", nil))
				return
			}

			userID, err := tokens.Verify(parts[1])
			if err != nil {
				WriteError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext retrieves the authenticated user's ID from the request
// context. The second return value is false if no user is attached.
func UserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDKey).(int)
	return userID, ok
}
