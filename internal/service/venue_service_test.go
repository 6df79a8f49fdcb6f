package service

import (
	"context"
	"testing"
	"time"

	"github.com/nvtimofeev/ticketly/internal/domain"
	"github.com/nvtimofeev/ticketly/internal/dto"
)

func TestVenueService_Upsert(t *testing.T) {
	t.Run("new venue gets an id", func(t *testing.T) {
		var saved *domain.Venue
		venueRepo := &mockVenueRepository{
			UpsertFunc: func(ctx context.Context, venue *domain.Venue) error {
				saved = venue
				return nil
			},
		}
		svc := NewVenueService(venueRepo)

		venue, err := svc.Upsert(context.Background(), &dto.UpsertVenueRequest{
			Name:        "Main Hall",
			Address:     "1 Main St",
			MaxCapacity: 200,
		})
		if err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
		if venue.ID == "" {
			t.Error("Upsert() did not assign an id")
		}
		if saved == nil || saved.ID != venue.ID {
			t.Error("Upsert() did not persist the venue")
		}
	})

	t.Run("existing venue keeps id and creation time", func(t *testing.T) {
		createdAt := time.Now().UTC().Add(-48 * time.Hour)
		existing := &domain.Venue{
			ID:          "venue-1",
			Name:        "Old Name",
			Address:     "1 Main St",
			MaxCapacity: 100,
			CreatedAt:   createdAt,
		}

		var saved *domain.Venue
		venueRepo := &mockVenueRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*domain.Venue, error) { return existing, nil },
			UpsertFunc: func(ctx context.Context, venue *domain.Venue) error {
				saved = venue
				return nil
			},
		}
		svc := NewVenueService(venueRepo)

		venue, err := svc.Upsert(context.Background(), &dto.UpsertVenueRequest{
			VenueID:     "venue-1",
			Name:        "New Name",
			Address:     "1 Main St",
			MaxCapacity: 250,
		})
		if err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
		if venue.ID != "venue-1" {
			t.Errorf("venue id = %v, want venue-1", venue.ID)
		}
		if !venue.CreatedAt.Equal(createdAt) {
			t.Errorf("created at = %v, want %v", venue.CreatedAt, createdAt)
		}
		if saved.Name != "New Name" || saved.MaxCapacity != 250 {
			t.Errorf("persisted venue = %+v, want updated fields", saved)
		}
	})

	t.Run("unknown id creates a venue under that id", func(t *testing.T) {
		var saved *domain.Venue
		venueRepo := &mockVenueRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*domain.Venue, error) {
				return nil, domain.ErrVenueNotFound
			},
			UpsertFunc: func(ctx context.Context, venue *domain.Venue) error {
				saved = venue
				return nil
			},
		}
		svc := NewVenueService(venueRepo)

		venue, err := svc.Upsert(context.Background(), &dto.UpsertVenueRequest{
			VenueID:     "fresh-id",
			Name:        "Annex",
			Address:     "2 Side St",
			MaxCapacity: 50,
		})
		if err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
		if venue.ID != "fresh-id" {
			t.Errorf("venue id = %v, want fresh-id", venue.ID)
		}
		if saved == nil {
			t.Fatal("Upsert() did not persist the venue")
		}
	})
}
