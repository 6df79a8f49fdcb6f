package domain

import (
	"fmt"
	"time"
)

// OrderStatus represents the status of an order (matches DB ENUM)
type OrderStatus string

const (
	OrderStatusSuccess                OrderStatus = "SUCCESS"
	OrderStatusCancelledByAdmin       OrderStatus = "CANCELLED_BY_ADMIN"
	OrderStatusCancelledByOrganizer   OrderStatus = "CANCELLED_BY_ORGANIZER"
	OrderStatusCancelledByParticipant OrderStatus = "CANCELLED_BY_PARTICIPANT"
)

// IsCancelled returns true for any of the terminal cancelled states
func (s OrderStatus) IsCancelled() bool {
	switch s {
	case OrderStatusCancelledByAdmin, OrderStatusCancelledByOrganizer, OrderStatusCancelledByParticipant:
		return true
	}
	return false
}

// Order represents a participant's ticket purchase against one event.
// Every order is paired 1:1 with a Payment created in the same
// transaction.
type Order struct {
	ID            string      `json:"id"`
	EventID       string      `json:"event_id"`
	ParticipantID string      `json:"participant_id"`
	NoOfTickets   int         `json:"no_of_tickets"`
	Status        OrderStatus `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`

	// Populated on aggregate reads
	Event       *Event   `json:"event,omitempty"`
	Participant *User    `json:"participant,omitempty"`
	Payment     *Payment `json:"payment,omitempty"`
}

// CancelBy transitions the order from SUCCESS to the cancelled state
// matching the acting role. All cancelled states are terminal, a
// second cancellation is rejected so a refund can never be issued
// twice.
func (o *Order) CancelBy(role Role) error {
	if o.Status.IsCancelled() {
		return ErrOrderAlreadyCancelled
	}

	switch role {
	case RoleAdmin:
		o.Status = OrderStatusCancelledByAdmin
	case RoleOrganizer:
		o.Status = OrderStatusCancelledByOrganizer
	case RoleParticipant:
		o.Status = OrderStatusCancelledByParticipant
	default:
		return fmt.Errorf("role %q cannot cancel orders", role)
	}

	o.UpdatedAt = time.Now().UTC()
	return nil
}
