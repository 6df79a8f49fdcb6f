package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/nvtimofeev/ticketly/internal/domain"
	"github.com/nvtimofeev/ticketly/internal/dto"
	"github.com/nvtimofeev/ticketly/internal/repository"
	"github.com/nvtimofeev/ticketly/pkg/telemetry"
)

// EventService defines the interface for event operations
type EventService interface {
	// Create creates a new event at an existing venue
	Create(ctx context.Context, organizerID string, req *dto.CreateEventRequest) (*domain.Event, error)
	// Cancel cancels an event and all of its active orders
	Cancel(ctx context.Context, actorID string, actorRole domain.Role, eventID string) error
	// ListActive retrieves all non-cancelled events
	ListActive(ctx context.Context) ([]*domain.Event, error)
	// ListByOrganizer retrieves an organizer's events with their orders
	ListByOrganizer(ctx context.Context, organizerID string) ([]*domain.Event, error)
	// ListAll retrieves every event
	ListAll(ctx context.Context) ([]*domain.Event, error)
}

// eventService implements EventService
type eventService struct {
	eventRepo repository.EventRepository
	venueRepo repository.VenueRepository
}

// NewEventService creates a new EventService
func NewEventService(eventRepo repository.EventRepository, venueRepo repository.VenueRepository) EventService {
	return &eventService{
		eventRepo: eventRepo,
		venueRepo: venueRepo,
	}
}

// Create creates a new event at an existing venue
func (s *eventService) Create(ctx context.Context, organizerID string, req *dto.CreateEventRequest) (*domain.Event, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.event.create")
	defer span.End()

	span.SetAttributes(
		attribute.String("organizer_id", organizerID),
		attribute.String("venue_id", req.VenueID),
	)

	venue, err := s.venueRepo.GetByID(ctx, req.VenueID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	now := time.Now().UTC()
	event := &domain.Event{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Start:       req.StartTime(),
		End:         req.EndTime(),
		Price:       req.Price,
		Status:      domain.EventStatusSuccess,
		OrganizerID: organizerID,
		VenueID:     venue.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("event_id", event.ID))
	event.Venue = venue
	return event, nil
}

// Cancel cancels an event and all of its active orders in a single
// transaction. Organizers can only cancel their own events. Cancelled
// orders keep their payments, cancelling an event does not refund.
func (s *eventService) Cancel(ctx context.Context, actorID string, actorRole domain.Role, eventID string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.event.cancel")
	defer span.End()

	span.SetAttributes(attribute.String("event_id", eventID))

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	var orderStatus domain.OrderStatus
	switch actorRole {
	case domain.RoleAdmin:
		orderStatus = domain.OrderStatusCancelledByAdmin
	case domain.RoleOrganizer:
		if event.OrganizerID != actorID {
			span.SetStatus(codes.Error, "event not found for organizer")
			return domain.ErrEventNotFound
		}
		orderStatus = domain.OrderStatusCancelledByOrganizer
	default:
		span.SetStatus(codes.Error, "role cannot cancel events")
		return domain.ErrEventNotFound
	}

	if event.IsCancelled() {
		span.SetStatus(codes.Error, "event already cancelled")
		return domain.ErrEventAlreadyCancelled
	}

	if err := s.eventRepo.CancelWithOrders(ctx, eventID, orderStatus); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

// ListActive retrieves all non-cancelled events
func (s *eventService) ListActive(ctx context.Context) ([]*domain.Event, error) {
	return s.eventRepo.ListActive(ctx)
}

// ListByOrganizer retrieves an organizer's events with their orders
func (s *eventService) ListByOrganizer(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	return s.eventRepo.ListByOrganizer(ctx, organizerID)
}

// ListAll retrieves every event
func (s *eventService) ListAll(ctx context.Context) ([]*domain.Event, error) {
	return s.eventRepo.ListAll(ctx)
}
