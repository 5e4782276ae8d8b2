package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/user/periferia-go/apperror"
)

// validate is the shared request validator for auth DTOs.
var validate = validator.New()

// Handlers wraps the AuthService to provide HTTP handlers.
type Handlers struct {
	service AuthService
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service AuthService) *Handlers {
	return &Handlers{service: service}
}

// HandleLogin godoc
// @Summary User login
// @Description Verifies credentials and returns a session token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param loginBody body auth.LoginRequest true "User login credentials"
// @Success 200 {object} auth.TokenResponse "Login successful"
// @Failure 400 {object} apperror.ErrorResponse "Missing fields"
// @Failure 401 {object} apperror.ErrorResponse "Invalid credentials"
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /api/auth/login [post]
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		if err := validate.Struct(req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("email and password are required", err))
			return
		}

		resp, err := h.service.Login(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleChangePassword godoc
// @Summary Change password
// @Description Re-verifies the current password and stores a hash of the new one.
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param changePasswordBody body auth.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} auth.MessageResponse "Password updated"
// @Failure 400 {object} apperror.ErrorResponse "Missing fields or wrong current password"
// @Failure 401 {object} apperror.ErrorResponse "Invalid or missing token"
// @Failure 404 {object} apperror.ErrorResponse "User not found"
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /api/auth/change-password [post]
func (h *Handlers) HandleChangePassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			WriteError(w, r, apperror.NewAuthError("user not authenticated", nil))
			return
		}

		var req ChangePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		if err := validate.Struct(req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("current and new password are required", err))
			return
		}

		if err := h.service.ChangePassword(r.Context(), userID, req); err != nil {
			WriteError(w, r, err)
			return
		}

		WriteJSON(w, http.StatusOK, MessageResponse{Message: "password updated"})
	}
}

// WriteJSON serializes data to the response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"message":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}

// WriteError translates any error into the uniform JSON error envelope.
// Errors that are not AppError values become a generic 500 so internals are
// never leaked to the caller; the original error is logged server-side.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("internal server error", err)
	}
	if appErr.StatusCode() >= http.StatusInternalServerError {
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("request failed")
	}
	WriteJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
