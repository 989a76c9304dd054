package dto

import "time"

// RegisterRequest input for user creation (BEHEERDER only). Password is
// plaintext here and hashed in the use case.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Naam     string `json:"naam" validate:"omitempty,max=200"`
	Role     string `json:"role" validate:"required,oneof=BEHEERDER PLANNER SALES SCANNER GUEST"`
}

// UserResponse a user without credentials.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Naam      string    `json:"naam"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginRequest credentials for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse session token plus the authenticated user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// TokenResponse a derived bearer token for non-browser callers.
type TokenResponse struct {
	Token string `json:"token"`
}

// GuestSession describes the restricted guest identity handed out by the
// guest endpoint.
type GuestSession struct {
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// GuestResponse body of the guest-mode endpoint.
type GuestResponse struct {
	Success      bool         `json:"success"`
	GuestSession GuestSession `json:"guestSession"`
}
