package repository

import (
	"context"

	"github.com/nvtimofeev/ticketly/internal/domain"
)

// VenueRepository defines the interface for venue data access
type VenueRepository interface {
	// Upsert inserts the venue or updates it in place when the ID exists
	Upsert(ctx context.Context, venue *domain.Venue) error

	// GetByID retrieves a venue by its ID
	GetByID(ctx context.Context, id string) (*domain.Venue, error)

	// List retrieves all venues ordered by creation time
	List(ctx context.Context) ([]*domain.Venue, error)

	// ListWithEvents retrieves all venues with their events attached
	ListWithEvents(ctx context.Context) ([]*domain.Venue, error)
}
