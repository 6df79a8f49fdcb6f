package domain

import (
	"time"
)

// EventStatus represents the status of an event (matches DB ENUM)
type EventStatus string

const (
	EventStatusSuccess   EventStatus = "SUCCESS"
	EventStatusCancelled EventStatus = "CANCELLED"
)

// Event represents a scheduled occurrence at a venue, owned by an
// organizer.
type Event struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Start       time.Time   `json:"start"`
	End         time.Time   `json:"end"`
	Price       float64     `json:"price"`
	Status      EventStatus `json:"status"`
	OrganizerID string      `json:"organizer_id"`
	VenueID     string      `json:"venue_id"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	// Populated on aggregate reads
	Organizer *User    `json:"organizer,omitempty"`
	Venue     *Venue   `json:"venue,omitempty"`
	Orders    []*Order `json:"orders,omitempty"`
}

// Cancel transitions the event to CANCELLED. The transition is
// terminal, a cancelled event never returns to SUCCESS.
func (e *Event) Cancel() error {
	if e.Status == EventStatusCancelled {
		return ErrEventAlreadyCancelled
	}
	e.Status = EventStatusCancelled
	e.UpdatedAt = time.Now().UTC()
	return nil
}

// IsCancelled returns true if the event is cancelled
func (e *Event) IsCancelled() bool {
	return e.Status == EventStatusCancelled
}

// HasStarted returns true if the event start time has passed
func (e *Event) HasStarted(now time.Time) bool {
	return !e.Start.After(now)
}
