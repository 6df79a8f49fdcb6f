package domain

import "time"

// Venue represents a physical location with a declared capacity,
// reusable across events. Venues are created and updated through an
// upsert keyed by ID; there is no delete operation.
type Venue struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	MaxCapacity int       `json:"max_capacity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Events is populated on admin-scope reads
	Events []*Event `json:"events,omitempty"`
}
