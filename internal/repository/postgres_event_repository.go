package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nvtimofeev/ticketly/internal/domain"
	"github.com/nvtimofeev/ticketly/pkg/database"
)

// PostgresEventRepository implements EventRepository using PostgreSQL
type PostgresEventRepository struct {
	db *database.PostgresDB
}

// NewPostgresEventRepository creates a new PostgreSQL event repository
func NewPostgresEventRepository(db *database.PostgresDB) *PostgresEventRepository {
	return &PostgresEventRepository{db: db}
}

const eventColumns = `id, name, start_at, end_at, price, status, organizer_id, venue_id, created_at, updated_at`

// Create creates a new event record
func (r *PostgresEventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Pool().Exec(ctx, query,
		event.ID,
		event.Name,
		event.Start,
		event.End,
		event.Price,
		string(event.Status),
		event.OrganizerID,
		event.VenueID,
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

// GetByID retrieves an event by its ID
func (r *PostgresEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return r.scanEvent(r.db.Pool().QueryRow(ctx, query, id))
}

// ListActive retrieves all non-cancelled events with their venues,
// soonest first.
func (r *PostgresEventRepository) ListActive(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT e.id, e.name, e.start_at, e.end_at, e.price, e.status, e.organizer_id, e.venue_id, e.created_at, e.updated_at,
		       v.id, v.name, v.address, v.max_capacity, v.created_at, v.updated_at
		FROM events e
		JOIN venues v ON v.id = e.venue_id
		WHERE e.status = $1
		ORDER BY e.start_at`

	rows, err := r.db.Pool().Query(ctx, query, string(domain.EventStatusSuccess))
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	return r.collectEventsWithVenue(rows)
}

// ListByOrganizer retrieves an organizer's events with venues and
// orders, newest first.
func (r *PostgresEventRepository) ListByOrganizer(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	query := `
		SELECT e.id, e.name, e.start_at, e.end_at, e.price, e.status, e.organizer_id, e.venue_id, e.created_at, e.updated_at,
		       v.id, v.name, v.address, v.max_capacity, v.created_at, v.updated_at
		FROM events e
		JOIN venues v ON v.id = e.venue_id
		WHERE e.organizer_id = $1
		ORDER BY e.created_at DESC`

	rows, err := r.db.Pool().Query(ctx, query, organizerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query organizer events: %w", err)
	}
	defer rows.Close()

	events, err := r.collectEventsWithVenue(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachOrders(ctx, events); err != nil {
		return nil, err
	}

	return events, nil
}

// ListAll retrieves every event with organizer and venue attached,
// newest first.
func (r *PostgresEventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT e.id, e.name, e.start_at, e.end_at, e.price, e.status, e.organizer_id, e.venue_id, e.created_at, e.updated_at,
		       v.id, v.name, v.address, v.max_capacity, v.created_at, v.updated_at,
		       u.id, u.name, u.email, u.role, u.created_at, u.updated_at
		FROM events e
		JOIN venues v ON v.id = e.venue_id
		JOIN users u ON u.id = e.organizer_id
		ORDER BY e.created_at DESC`

	rows, err := r.db.Pool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		var event domain.Event
		var venue domain.Venue
		var organizer domain.User
		var eventStatus, organizerRole string

		err := rows.Scan(
			&event.ID, &event.Name, &event.Start, &event.End, &event.Price,
			&eventStatus, &event.OrganizerID, &event.VenueID, &event.CreatedAt, &event.UpdatedAt,
			&venue.ID, &venue.Name, &venue.Address, &venue.MaxCapacity, &venue.CreatedAt, &venue.UpdatedAt,
			&organizer.ID, &organizer.Name, &organizer.Email, &organizerRole, &organizer.CreatedAt, &organizer.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		event.Status = domain.EventStatus(eventStatus)
		organizer.Role = domain.Role(organizerRole)
		event.Venue = &venue
		event.Organizer = &organizer
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

// CountTicketsSold returns the total tickets across active orders of an event
func (r *PostgresEventRepository) CountTicketsSold(ctx context.Context, eventID string) (int, error) {
	query := `
		SELECT COALESCE(SUM(no_of_tickets), 0)
		FROM orders
		WHERE event_id = $1 AND status = $2`

	var sold int
	err := r.db.Pool().QueryRow(ctx, query, eventID, string(domain.OrderStatusSuccess)).Scan(&sold)
	if err != nil {
		return 0, fmt.Errorf("failed to count tickets sold: %w", err)
	}

	return sold, nil
}

// CancelWithOrders marks the event cancelled and cancels all of its
// active orders with the given status, in a single transaction.
func (r *PostgresEventRepository) CancelWithOrders(ctx context.Context, eventID string, orderStatus domain.OrderStatus) error {
	tx, err := r.db.Pool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()

	ordersQuery := `
		UPDATE orders
		SET status = $2, updated_at = $3
		WHERE event_id = $1 AND status = $4`
	_, err = tx.Exec(ctx, ordersQuery, eventID, string(orderStatus), now, string(domain.OrderStatusSuccess))
	if err != nil {
		return fmt.Errorf("failed to cancel event orders: %w", err)
	}

	eventQuery := `
		UPDATE events
		SET status = $2, updated_at = $3
		WHERE id = $1 AND status = $4`
	result, err := tx.Exec(ctx, eventQuery, eventID, string(domain.EventStatusCancelled), now, string(domain.EventStatusSuccess))
	if err != nil {
		return fmt.Errorf("failed to cancel event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrEventAlreadyCancelled
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *PostgresEventRepository) collectEventsWithVenue(rows pgx.Rows) ([]*domain.Event, error) {
	var events []*domain.Event
	for rows.Next() {
		var event domain.Event
		var venue domain.Venue
		var status string

		err := rows.Scan(
			&event.ID, &event.Name, &event.Start, &event.End, &event.Price,
			&status, &event.OrganizerID, &event.VenueID, &event.CreatedAt, &event.UpdatedAt,
			&venue.ID, &venue.Name, &venue.Address, &venue.MaxCapacity, &venue.CreatedAt, &venue.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		event.Status = domain.EventStatus(status)
		event.Venue = &venue
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

func (r *PostgresEventRepository) attachOrders(ctx context.Context, events []*domain.Event) error {
	if len(events) == 0 {
		return nil
	}

	byEvent := make(map[string]*domain.Event, len(events))
	ids := make([]string, 0, len(events))
	for _, e := range events {
		byEvent[e.ID] = e
		ids = append(ids, e.ID)
	}

	query := `
		SELECT o.id, o.event_id, o.participant_id, o.no_of_tickets, o.status, o.created_at, o.updated_at,
		       p.id, p.order_id, p.participant_id, p.amount, p.method, p.status, p.transaction_id, p.refunded_at, p.created_at, p.updated_at
		FROM orders o
		JOIN payments p ON p.order_id = o.id
		WHERE o.event_id = ANY($1)
		ORDER BY o.created_at DESC`

	rows, err := r.db.Pool().Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to query event orders: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var order domain.Order
		var payment domain.Payment
		var orderStatus, paymentMethod, paymentStatus string
		var transactionID *string

		err := rows.Scan(
			&order.ID, &order.EventID, &order.ParticipantID, &order.NoOfTickets, &orderStatus, &order.CreatedAt, &order.UpdatedAt,
			&payment.ID, &payment.OrderID, &payment.ParticipantID, &payment.Amount, &paymentMethod, &paymentStatus, &transactionID, &payment.RefundedAt, &payment.CreatedAt, &payment.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to scan event order: %w", err)
		}

		order.Status = domain.OrderStatus(orderStatus)
		payment.Method = domain.PaymentMethod(paymentMethod)
		payment.Status = domain.PaymentStatus(paymentStatus)
		if transactionID != nil {
			payment.TransactionID = *transactionID
		}
		order.Payment = &payment

		if event, ok := byEvent[order.EventID]; ok {
			event.Orders = append(event.Orders, &order)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate event orders: %w", err)
	}

	return nil
}

func (r *PostgresEventRepository) scanEvent(row pgx.Row) (*domain.Event, error) {
	var event domain.Event
	var status string

	err := row.Scan(
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
		if err == pgx.ErrNoRows {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}

	event.Status = domain.EventStatus(status)
	return &event, nil
}
