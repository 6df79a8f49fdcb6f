package dto

import "strings"

// CreateOrganizerRequest represents the request to register an organizer account
type CreateOrganizerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates the CreateOrganizerRequest and returns per-field errors
func (r *CreateOrganizerRequest) Validate() map[string]string {
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
