// Data transfer objects for the auth endpoints.
package auth

// LoginRequest is the login request payload. Only presence is validated;
// the shape of the email is never checked before the credential lookup, so
// any unknown value gets the same invalid-credentials answer.
type LoginRequest struct {
	Email    string `json:"email" validate:"required" example:"juan@example.com"`
	Password string `json:"password" validate:"required" example:"123456"`
}

// TokenResponse is returned on successful login.
type TokenResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// ChangePasswordRequest is the change-password request payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// MessageResponse is a generic success message payload.
type MessageResponse struct {
	Message string `json:"message" example:"password updated"`
}
