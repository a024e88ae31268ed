package dto

import (
	"github.com/google/uuid"
	"github.com/veinsight/portal-backend/internal/identity"
)

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	Specialty string `json:"specialty,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// RegisterResponse deliberately carries no tokens: sign-up does not sign the
// user in, matching the email-verification flow the SPA expects.
type RegisterResponse struct {
	User    UserResponse `json:"user"`
	Message string       `json:"message"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type DeleteAccountRequest struct {
	Password string `json:"password"`
}

// SessionResponse is the JSON shape of a resolved identity. Role is a pointer
// so an authenticated-but-unrolled user serializes as role:null, which the
// SPA treats differently from an absent user.
type SessionResponse struct {
	User    *identity.User    `json:"user"`
	Role    *string           `json:"role"`
	Profile *identity.Profile `json:"profile"`
	Loading bool              `json:"loading"`
}

func NewSessionResponse(id identity.Identity) SessionResponse {
	resp := SessionResponse{
		User:    id.User,
		Profile: id.Profile,
		Loading: id.Loading,
	}
	if id.Role.Valid() {
		role := id.Role.String()
		resp.Role = &role
	}
	return resp
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	// RedirectTo hints where the SPA should send the user: the sign-in
	// entry point on 401, the not-authorized page on 403.
	RedirectTo string `json:"redirect_to,omitempty"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
