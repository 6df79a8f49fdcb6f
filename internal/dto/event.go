package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nvtimofeev/ticketly/internal/domain"
)

// CreateEventRequest represents the request to create a new event
type CreateEventRequest struct {
	Name    string  `json:"name"`
	Start   string  `json:"start"`
	End     string  `json:"end"`
	Price   float64 `json:"price"`
	VenueID string  `json:"venueId"`
}

// Validate validates the CreateEventRequest and returns per-field errors
func (r *CreateEventRequest) Validate() map[string]string {
	fieldErrors := make(map[string]string)
	if strings.TrimSpace(r.Name) == "" {
		fieldErrors["name"] = "Name is required"
	}
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		fieldErrors["start"] = "Start must be a valid timestamp"
	}
	end, err := time.Parse(time.RFC3339, r.End)
	if err != nil {
		fieldErrors["end"] = "End must be a valid timestamp"
	} else if _, ok := fieldErrors["start"]; !ok && !end.After(start) {
		fieldErrors["end"] = "End must be after start"
	}
	if r.Price <= 0 {
		fieldErrors["price"] = "Price must be greater than 0"
	}
	if r.VenueID == "" {
		fieldErrors["venueId"] = "Venue is required"
	} else if uuid.Validate(r.VenueID) != nil {
		fieldErrors["venueId"] = "Venue id must be a valid UUID"
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

// StartTime parses the start timestamp. Call after Validate.
func (r *CreateEventRequest) StartTime() time.Time {
	t, _ := time.Parse(time.RFC3339, r.Start)
	return t
}

// EndTime parses the end timestamp. Call after Validate.
func (r *CreateEventRequest) EndTime() time.Time {
	t, _ := time.Parse(time.RFC3339, r.End)
	return t
}

// CancelEventRequest represents the request to cancel an event
type CancelEventRequest struct {
	EventID string `json:"eventId"`
}

// Validate validates the CancelEventRequest and returns per-field errors
func (r *CancelEventRequest) Validate() map[string]string {
	fieldErrors := make(map[string]string)
	if r.EventID == "" {
		fieldErrors["eventId"] = "Event is required"
	} else if uuid.Validate(r.EventID) != nil {
		fieldErrors["eventId"] = "Event id must be a valid UUID"
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

// EventResponse represents an event in API responses
type EventResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Start       time.Time        `json:"start"`
	End         time.Time        `json:"end"`
	Price       float64          `json:"price"`
	Status      string           `json:"status"`
	OrganizerID string           `json:"organizer_id"`
	VenueID     string           `json:"venue_id"`
	CreatedAt   time.Time        `json:"created_at"`
	Organizer   *UserResponse    `json:"organizer,omitempty"`
	Venue       *VenueResponse   `json:"venue,omitempty"`
	Orders      []*OrderResponse `json:"orders,omitempty"`
}

// EventFromDomain converts a domain Event to EventResponse
func EventFromDomain(e *domain.Event) *EventResponse {
	resp := &EventResponse{
		ID:          e.ID,
		Name:        e.Name,
		Start:       e.Start,
		End:         e.End,
		Price:       e.Price,
		Status:      string(e.Status),
		OrganizerID: e.OrganizerID,
		VenueID:     e.VenueID,
		CreatedAt:   e.CreatedAt,
	}
	if e.Organizer != nil {
		resp.Organizer = UserFromDomain(e.Organizer)
	}
	if e.Venue != nil {
		resp.Venue = VenueFromDomain(e.Venue)
	}
	for _, o := range e.Orders {
		resp.Orders = append(resp.Orders, OrderFromDomain(o))
	}
	return resp
}
