package dto

import (
	"strings"
	"time"

	"github.com/nvtimofeev/ticketly/internal/domain"
)

// LoginRequest represents the request to log in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates the LoginRequest and returns per-field errors
func (r *LoginRequest) Validate() map[string]string {
	fieldErrors := make(map[string]string)
	if strings.TrimSpace(r.Email) == "" {
		fieldErrors["email"] = "Email is required"
	} else if !strings.Contains(r.Email, "@") {
		fieldErrors["email"] = "Email is invalid"
	}
	if r.Password == "" {
		fieldErrors["password"] = "Password is required"
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

// RegisterRequest represents the request to register a participant
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates the RegisterRequest and returns per-field errors
func (r *RegisterRequest) Validate() map[string]string {
	fieldErrors := make(map[string]string)
	if strings.TrimSpace(r.Name) == "" {
		fieldErrors["name"] = "Name is required"
	}
	if strings.TrimSpace(r.Email) == "" {
		fieldErrors["email"] = "Email is required"
	} else if !strings.Contains(r.Email, "@") {
		fieldErrors["email"] = "Email is invalid"
	}
	if len(r.Password) < 8 {
		fieldErrors["password"] = "Password must be at least 8 characters"
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

// AuthResponse represents the response after login or registration
type AuthResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      *UserResponse `json:"user"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromDomain converts a domain User to UserResponse
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}
