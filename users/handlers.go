package users

import (
	"net/http"

	"github.com/user/periferia-go/apperror"
	"github.com/user/periferia-go/auth"
)

// UserHandlers provides HTTP handlers for user profiles.
type UserHandlers struct {
	service *UserService
}

// NewUserHandlers creates new UserHandlers.
func NewUserHandlers(service *UserService) *UserHandlers {
	return &UserHandlers{service: service}
}

// HandleGetProfile godoc
// @Summary Get the authenticated user's profile
// @Description Returns the profile of the user identified by the bearer token.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} users.ProfileResponse "User profile"
// @Failure 401 {object} apperror.ErrorResponse "Invalid or missing token"
// @Failure 404 {object} apperror.ErrorResponse "User not found"
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /api/users/me [get]
func (h *UserHandlers) HandleGetProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("user not authenticated", nil))
			return
		}

		profile, err := h.service.GetProfile(r.Context(), userID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, profile)
	}
}
