package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/user/periferia-go/apperror"
)

// stubAuthService implements AuthService with configurable behavior per
// operation. Unset operations fail the test if called.
type stubAuthService struct {
	t                *testing.T
	loginFn          func(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	changePasswordFn func(ctx context.Context, userID int, req ChangePasswordRequest) error
}

func (s *stubAuthService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	if s.loginFn == nil {
		s.t.Fatal("unexpected call to Login")
	}
	return s.loginFn(ctx, req)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, userID int, req ChangePasswordRequest) error {
	if s.changePasswordFn == nil {
		s.t.Fatal("unexpected call to ChangePassword")
	}
	return s.changePasswordFn(ctx, userID, req)
}

func postJSON(handler http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp apperror.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	return resp.Message
}

func TestLoginSuccess(t *testing.T) {
	svc := &stubAuthService{t: t, loginFn: func(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
		return &TokenResponse{Token: "issued-token"}, nil
	}}
	handlers := NewHandlers(svc)

	rec := postJSON(handlers.HandleLogin(), LoginRequest{Email: "juan@example.com", Password: "123456"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp TokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Token != "issued-token" {
		t.Errorf("token = %q, want %q", resp.Token, "issued-token")
	}
}

// TestLoginMalformedEmail checks that a present but malformed email is not
// rejected up front: it reaches the credential lookup and gets the same 401
// as any other unknown email, so the response never reveals which addresses
// are registered.
func TestLoginMalformedEmail(t *testing.T) {
	var lookedUp string
	svc := &stubAuthService{t: t, loginFn: func(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
		lookedUp = req.Email
		return nil, apperror.NewAuthError("invalid email or password", nil)
	}}
	handlers := NewHandlers(svc)

	rec := postJSON(handlers.HandleLogin(), LoginRequest{Email: "not-an-email", Password: "x"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if got := decodeMessage(t, rec); got != "invalid email or password" {
		t.Errorf("message = %q, want %q", got, "invalid email or password")
	}
	if lookedUp != "not-an-email" {
		t.Errorf("looked up email = %q, want %q", lookedUp, "not-an-email")
	}
}

func TestLoginMissingFields(t *testing.T) {
	// No loginFn: validation must stop the request before the service.
	handlers := NewHandlers(&stubAuthService{t: t})

	cases := []struct {
		name string
		req  LoginRequest
	}{
		{"missing email", LoginRequest{Password: "123456"}},
		{"missing password", LoginRequest{Email: "juan@example.com"}},
		{"empty body", LoginRequest{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(handlers.HandleLogin(), tc.req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestChangePasswordWithoutIdentity(t *testing.T) {
	handlers := NewHandlers(&stubAuthService{t: t})

	rec := postJSON(handlers.HandleChangePassword(), ChangePasswordRequest{
		CurrentPassword: "old", NewPassword: "new",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestChangePassword(t *testing.T) {
	svc := &stubAuthService{t: t, changePasswordFn: func(ctx context.Context, userID int, req ChangePasswordRequest) error {
		if userID != 7 {
			t.Errorf("ChangePassword called with userID = %d, want 7", userID)
		}
		if req.CurrentPassword != "old" || req.NewPassword != "new" {
			t.Errorf("unexpected request: %+v", req)
		}
		return nil
	}}
	handlers := NewHandlers(svc)

	payload, _ := json.Marshal(ChangePasswordRequest{CurrentPassword: "old", NewPassword: "new"})
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	req = req.WithContext(context.WithValue(req.Context(), UserIDKey, 7))
	rec := httptest.NewRecorder()
	handlers.HandleChangePassword().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp MessageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Message != "password updated" {
		t.Errorf("message = %q, want %q", resp.Message, "password updated")
	}
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	svc := &stubAuthService{t: t, changePasswordFn: func(ctx context.Context, userID int, req ChangePasswordRequest) error {
		return apperror.NewBadRequestError("current password is incorrect", nil)
	}}
	handlers := NewHandlers(svc)

	payload, _ := json.Marshal(ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "new"})
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	req = req.WithContext(context.WithValue(req.Context(), UserIDKey, 7))
	rec := httptest.NewRecorder()
	handlers.HandleChangePassword().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if got := decodeMessage(t, rec); got != "current password is incorrect" {
		t.Errorf("message = %q, want %q", got, "current password is incorrect")
	}
}
