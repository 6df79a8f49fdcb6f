package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nvtimofeev/ticketly/internal/domain"
	"github.com/nvtimofeev/ticketly/internal/dto"
)

func TestEventService_Create(t *testing.T) {
	venue := &domain.Venue{ID: "venue-1", Name: "Main Hall", MaxCapacity: 100}

	t.Run("creates active event", func(t *testing.T) {
		var created *domain.Event
		repo := &createRecordingEventRepository{
			mockEventRepository: &mockEventRepository{},
			onCreate:            func(e *domain.Event) { created = e },
		}
		venueRepo := &mockVenueRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*domain.Venue, error) { return venue, nil },
		}
		svc := NewEventService(repo, venueRepo)

		start := time.Now().UTC().Add(48 * time.Hour)
		event, err := svc.Create(context.Background(), "organizer-1", &dto.CreateEventRequest{
			Name:    "Spring Concert",
			Start:   start.Format(time.RFC3339),
			End:     start.Add(3 * time.Hour).Format(time.RFC3339),
			Price:   25,
			VenueID: venue.ID,
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		if created == nil {
			t.Fatal("Create() did not persist the event")
		}
		if event.Status != domain.EventStatusSuccess {
			t.Errorf("event status = %v, want %v", event.Status, domain.EventStatusSuccess)
		}
		if event.OrganizerID != "organizer-1" {
			t.Errorf("organizer id = %v, want organizer-1", event.OrganizerID)
		}
	})

	t.Run("missing venue", func(t *testing.T) {
		venueRepo := &mockVenueRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*domain.Venue, error) {
				return nil, domain.ErrVenueNotFound
			},
		}
		svc := NewEventService(&mockEventRepository{}, venueRepo)

		start := time.Now().UTC().Add(48 * time.Hour)
		_, err := svc.Create(context.Background(), "organizer-1", &dto.CreateEventRequest{
			Name:    "Spring Concert",
			Start:   start.Format(time.RFC3339),
			End:     start.Add(3 * time.Hour).Format(time.RFC3339),
			Price:   25,
			VenueID: "missing",
		})
		if !errors.Is(err, domain.ErrVenueNotFound) {
			t.Errorf("Create() error = %v, want %v", err, domain.ErrVenueNotFound)
		}
	})
}

// createRecordingEventRepository wraps the mock to capture Create calls
type createRecordingEventRepository struct {
	*mockEventRepository
	onCreate func(*domain.Event)
}

func (r *createRecordingEventRepository) Create(ctx context.Context, event *domain.Event) error {
	r.onCreate(event)
	return nil
}

func TestEventService_Cancel(t *testing.T) {
	newEvent := func() *domain.Event {
		return &domain.Event{
			ID:          "event-1",
			Status:      domain.EventStatusSuccess,
			OrganizerID: "organizer-1",
		}
	}

	t.Run("organizer cancel cascades with organizer status", func(t *testing.T) {
		var gotStatus domain.OrderStatus
		eventRepo := &mockEventRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*domain.Event, error) { return newEvent(), nil },
			CancelWithOrdersFunc: func(ctx context.Context, eventID string, orderStatus domain.OrderStatus) error {
				gotStatus = orderStatus
				return nil
			},
		}
		svc := NewEventService(eventRepo, &mockVenueRepository{})

		err := svc.Cancel(context.Background(), "organizer-1", domain.RoleOrganizer, "event-1")
		if err != nil {
			t.Fatalf("Cancel() error = %v", err)
		}
		if gotStatus != domain.OrderStatusCancelledByOrganizer {
			t.Errorf("cascade status = %v, want %v", gotStatus, domain.OrderStatusCancelledByOrganizer)
		}
	})

	t.Run("admin cancel cascades with admin status", func(t *testing.T) {
		var gotStatus domain.OrderStatus
		eventRepo := &mockEventRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*domain.Event, error) { return newEvent(), nil },
			CancelWithOrdersFunc: func(ctx context.Context, eventID string, orderStatus domain.OrderStatus) error {
				gotStatus = orderStatus
				return nil
			},
		}
		svc := NewEventService(eventRepo, &mockVenueRepository{})

		err := svc.Cancel(context.Background(), "admin-1", domain.RoleAdmin, "event-1")
		if err != nil {
			t.Fatalf("Cancel() error = %v", err)
		}
		if gotStatus != domain.OrderStatusCancelledByAdmin {
			t.Errorf("cascade status = %v, want %v", gotStatus, domain.OrderStatusCancelledByAdmin)
		}
	})

	t.Run("organizer cannot cancel another organizer's event", func(t *testing.T) {
		eventRepo := &mockEventRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*domain.Event, error) { return newEvent(), nil },
		}
		svc := NewEventService(eventRepo, &mockVenueRepository{})

		err := svc.Cancel(context.Background(), "organizer-2", domain.RoleOrganizer, "event-1")
		if !errors.Is(err, domain.ErrEventNotFound) {
			t.Errorf("Cancel() error = %v, want %v", err, domain.ErrEventNotFound)
		}
	})

	t.Run("already cancelled", func(t *testing.T) {
		cancelled := newEvent()
		cancelled.Status = domain.EventStatusCancelled
		eventRepo := &mockEventRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*domain.Event, error) { return cancelled, nil },
		}
		svc := NewEventService(eventRepo, &mockVenueRepository{})

		err := svc.Cancel(context.Background(), "admin-1", domain.RoleAdmin, "event-1")
		if !errors.Is(err, domain.ErrEventAlreadyCancelled) {
			t.Errorf("Cancel() error = %v, want %v", err, domain.ErrEventAlreadyCancelled)
		}
	})
}
