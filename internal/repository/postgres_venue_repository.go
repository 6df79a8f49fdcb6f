package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nvtimofeev/ticketly/internal/domain"
	"github.com/nvtimofeev/ticketly/pkg/database"
)

// PostgresVenueRepository implements VenueRepository using PostgreSQL
type PostgresVenueRepository struct {
	db *database.PostgresDB
}

// NewPostgresVenueRepository creates a new PostgreSQL venue repository
func NewPostgresVenueRepository(db *database.PostgresDB) *PostgresVenueRepository {
	return &PostgresVenueRepository{db: db}
}

const venueColumns = `id, name, address, max_capacity, created_at, updated_at`

// Upsert inserts the venue or updates name, address and capacity in
// place when a venue with the same ID already exists.
func (r *PostgresVenueRepository) Upsert(ctx context.Context, venue *domain.Venue) error {
	query := `
		INSERT INTO venues (` + venueColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    address = EXCLUDED.address,
		    max_capacity = EXCLUDED.max_capacity,
		    updated_at = EXCLUDED.updated_at`

	_, err := r.db.Pool().Exec(ctx, query,
		venue.ID,
		venue.Name,
		venue.Address,
		venue.MaxCapacity,
		venue.CreatedAt,
		venue.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert venue: %w", err)
	}

	return nil
}

// GetByID retrieves a venue by its ID
func (r *PostgresVenueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues WHERE id = $1`
	return r.scanVenue(r.db.Pool().QueryRow(ctx, query, id))
}

// List retrieves all venues ordered by creation time
func (r *PostgresVenueRepository) List(ctx context.Context) ([]*domain.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues ORDER BY created_at DESC`

	rows, err := r.db.Pool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query venues: %w", err)
	}
	defer rows.Close()

	var venues []*domain.Venue
	for rows.Next() {
		venue, err := r.scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, venue)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate venues: %w", err)
	}

	return venues, nil
}

// ListWithEvents retrieves all venues with their events attached
func (r *PostgresVenueRepository) ListWithEvents(ctx context.Context) ([]*domain.Venue, error) {
	venues, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(venues) == 0 {
		return venues, nil
	}

	byVenue := make(map[string]*domain.Venue, len(venues))
	ids := make([]string, 0, len(venues))
	for _, v := range venues {
		byVenue[v.ID] = v
		ids = append(ids, v.ID)
	}

	query := `
		SELECT id, name, start_at, end_at, price, status, organizer_id, venue_id, created_at, updated_at
		FROM events
		WHERE venue_id = ANY($1)
		ORDER BY start_at`

	rows, err := r.db.Pool().Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query venue events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var event domain.Event
		var status string
		err := rows.Scan(
			&event.ID,
			&event.Name,
			&event.Start,
			&event.End,
			&event.Price,
			&status,
			&event.OrganizerID,
			&event.VenueID,
			&event.CreatedAt,
			&event.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan venue event: %w", err)
		}
		event.Status = domain.EventStatus(status)
		if venue, ok := byVenue[event.VenueID]; ok {
			venue.Events = append(venue.Events, &event)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate venue events: %w", err)
	}

	return venues, nil
}

func (r *PostgresVenueRepository) scanVenue(row pgx.Row) (*domain.Venue, error) {
	var venue domain.Venue

	err := row.Scan(
		&venue.ID,
		&venue.Name,
		&venue.Address,
		&venue.MaxCapacity,
		&venue.CreatedAt,
		&venue.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrVenueNotFound
		}
		return nil, fmt.Errorf("failed to scan venue: %w", err)
	}

	return &venue, nil
}
