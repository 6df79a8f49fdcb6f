package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/nvtimofeev/ticketly/internal/domain"
	"github.com/nvtimofeev/ticketly/internal/dto"
	"github.com/nvtimofeev/ticketly/internal/repository"
	"github.com/nvtimofeev/ticketly/pkg/telemetry"
)

// VenueService defines the interface for venue operations
type VenueService interface {
	// Upsert creates a venue, or updates it when the ID already exists
	Upsert(ctx context.Context, req *dto.UpsertVenueRequest) (*domain.Venue, error)
	// List retrieves all venues
	List(ctx context.Context) ([]*domain.Venue, error)
	// ListWithEvents retrieves all venues with their events attached
	ListWithEvents(ctx context.Context) ([]*domain.Venue, error)
}

// venueService implements VenueService
type venueService struct {
	venueRepo repository.VenueRepository
}

// NewVenueService creates a new VenueService
func NewVenueService(venueRepo repository.VenueRepository) VenueService {
	return &venueService{venueRepo: venueRepo}
}

// Upsert creates a venue, or updates name, address and capacity when
// the ID already exists. Repeating the same request is a no-op.
func (s *venueService) Upsert(ctx context.Context, req *dto.UpsertVenueRequest) (*domain.Venue, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.venue.upsert")
	defer span.End()

	now := time.Now().UTC()
	venue := &domain.Venue{
		ID:          req.VenueID,
		Name:        req.Name,
		Address:     req.Address,
		MaxCapacity: req.MaxCapacity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if venue.ID == "" {
		venue.ID = uuid.New().String()
	} else if existing, err := s.venueRepo.GetByID(ctx, venue.ID); err == nil {
		venue.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, domain.ErrVenueNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := s.venueRepo.Upsert(ctx, venue); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("venue_id", venue.ID))
	return venue, nil
}

// List retrieves all venues
func (s *venueService) List(ctx context.Context) ([]*domain.Venue, error) {
	return s.venueRepo.List(ctx)
}

// ListWithEvents retrieves all venues with their events attached
func (s *venueService) ListWithEvents(ctx context.Context) ([]*domain.Venue, error) {
	return s.venueRepo.ListWithEvents(ctx)
}
