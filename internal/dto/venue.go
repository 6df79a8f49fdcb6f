package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nvtimofeev/ticketly/internal/domain"
)

// UpsertVenueRequest represents the request to create or update a venue.
// When VenueID is empty a new venue is created.
type UpsertVenueRequest struct {
	VenueID     string `json:"venueId"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	MaxCapacity int    `json:"maxCapacity"`
}

// Validate validates the UpsertVenueRequest and returns per-field errors
func (r *UpsertVenueRequest) Validate() map[string]string {
	fieldErrors := make(map[string]string)
	if r.VenueID != "" && uuid.Validate(r.VenueID) != nil {
		fieldErrors["venueId"] = "Venue id must be a valid UUID"
	}
	if strings.TrimSpace(r.Name) == "" {
		fieldErrors["name"] = "Name is required"
	}
	if strings.TrimSpace(r.Address) == "" {
		fieldErrors["address"] = "Address is required"
	}
	if r.MaxCapacity < 1 {
		fieldErrors["maxCapacity"] = "Max capacity must be at least 1"
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

// VenueResponse represents a venue in API responses
type VenueResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Address     string           `json:"address"`
	MaxCapacity int              `json:"max_capacity"`
	CreatedAt   time.Time        `json:"created_at"`
	Events      []*EventResponse `json:"events,omitempty"`
}

// VenueFromDomain converts a domain Venue to VenueResponse
func VenueFromDomain(v *domain.Venue) *VenueResponse {
	resp := &VenueResponse{
		ID:          v.ID,
		Name:        v.Name,
		Address:     v.Address,
		MaxCapacity: v.MaxCapacity,
		CreatedAt:   v.CreatedAt,
	}
	for _, e := range v.Events {
		resp.Events = append(resp.Events, EventFromDomain(e))
	}
	return resp
}
