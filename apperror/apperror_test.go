package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  *AppError
		want int
	}{
		{"bad request", NewBadRequestError("bad", nil), http.StatusBadRequest},
		{"auth", NewAuthError("unauthorized", nil), http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("forbidden", nil), http.StatusForbidden},
		{"not found", NewNotFoundError("missing", nil), http.StatusNotFound},
		{"conflict", NewConflictError("exists", nil), http.StatusConflict},
		{"database", NewDatabaseError("db", nil), http.StatusInternalServerError},
		{"config", NewConfigError("cfg", nil), http.StatusInternalServerError},
		{"migration", NewMigrationError("mig", nil), http.StatusInternalServerError},
		{"internal", NewInternalError("boom", nil), http.StatusInternalServerError},
		{"unknown", NewAppError(UnknownError, "what", nil), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.StatusCode(); got != tc.want {
				t.Errorf("StatusCode() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	plain := NewNotFoundError("post not found", nil)
	if plain.Error() != "post not found" {
		t.Errorf("Error() = %q, want %q", plain.Error(), "post not found")
	}

	wrapped := NewDatabaseError("failed to get post", errors.New("connection refused"))
	want := "failed to get post: connection refused"
	if wrapped.Error() != want {
		t.Errorf("Error() = %q, want %q", wrapped.Error(), want)
	}
}

func TestToResponseExposesOnlyMessage(t *testing.T) {
	appErr := NewInternalError("internal server error", errors.New("secret database detail"))
	resp := appErr.ToResponse()
	if resp.Message != "internal server error" {
		t.Errorf("ToResponse().Message = %q, want %q", resp.Message, "internal server error")
	}
}

func TestFromError(t *testing.T) {
	appErr := NewBadRequestError("bad input", nil)

	got, ok := FromError(appErr)
	if !ok || got != appErr {
		t.Fatalf("FromError(appErr) = %v, %v; want the same error, true", got, ok)
	}

	wrapped := fmt.Errorf("handler: %w", appErr)
	got, ok = FromError(wrapped)
	if !ok || got != appErr {
		t.Fatalf("FromError(wrapped) = %v, %v; want the unwrapped AppError, true", got, ok)
	}

	if _, ok := FromError(errors.New("plain")); ok {
		t.Error("FromError(plain error) reported ok, want false")
	}
	if _, ok := FromError(nil); ok {
		t.Error("FromError(nil) reported ok, want false")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("no rows")
	appErr := NewNotFoundError("post not found", cause)
	if !errors.Is(appErr, cause) {
		t.Error("errors.Is did not find the underlying cause")
	}
}

func TestTypePredicates(t *testing.T) {
	if !IsNotFound(NewNotFoundError("x", nil)) {
		t.Error("IsNotFound returned false for a NotFoundError")
	}
	if IsNotFound(NewBadRequestError("x", nil)) {
		t.Error("IsNotFound returned true for a BadRequestError")
	}
	if !IsAuthError(NewAuthError("x", nil)) {
		t.Error("IsAuthError returned false for an AuthError")
	}
	if !IsForbidden(NewForbiddenError("x", nil)) {
		t.Error("IsForbidden returned false for a ForbiddenError")
	}
	if !IsBadRequest(fmt.Errorf("wrap: %w", NewBadRequestError("x", nil))) {
		t.Error("IsBadRequest returned false for a wrapped BadRequestError")
	}
}
