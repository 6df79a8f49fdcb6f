package repository

import (
	"context"

	"github.com/nvtimofeev/ticketly/internal/domain"
)

// EventRepository defines the interface for event data access
type EventRepository interface {
	// Create creates a new event record
	Create(ctx context.Context, event *domain.Event) error

	// GetByID retrieves an event by its ID
	GetByID(ctx context.Context, id string) (*domain.Event, error)

	// ListActive retrieves all non-cancelled events with their venues
	ListActive(ctx context.Context) ([]*domain.Event, error)

	// ListByOrganizer retrieves an organizer's events with venues and orders
	ListByOrganizer(ctx context.Context, organizerID string) ([]*domain.Event, error)

	// ListAll retrieves every event with organizer and venue attached
	ListAll(ctx context.Context) ([]*domain.Event, error)

	// CountTicketsSold returns the total tickets across active orders of an event
	CountTicketsSold(ctx context.Context, eventID string) (int, error)

	// CancelWithOrders marks the event cancelled and cancels all of its
	// active orders with the given status, in a single transaction
	CancelWithOrders(ctx context.Context, eventID string, orderStatus domain.OrderStatus) error
}
