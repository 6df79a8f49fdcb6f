package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nvtimofeev/ticketly/internal/domain"
	"github.com/nvtimofeev/ticketly/pkg/database"
)

// PostgresOrderRepository implements OrderRepository using PostgreSQL
type PostgresOrderRepository struct {
	db *database.PostgresDB
}

// NewPostgresOrderRepository creates a new PostgreSQL order repository
func NewPostgresOrderRepository(db *database.PostgresDB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

// CreateWithPayment creates the order and its payment in a single transaction
func (r *PostgresOrderRepository) CreateWithPayment(ctx context.Context, order *domain.Order, payment *domain.Payment) error {
	tx, err := r.db.Pool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	orderQuery := `
		INSERT INTO orders (id, event_id, participant_id, no_of_tickets, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = tx.Exec(ctx, orderQuery,
		order.ID,
		order.EventID,
		order.ParticipantID,
		order.NoOfTickets,
		string(order.Status),
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	paymentQuery := `
		INSERT INTO payments (id, order_id, participant_id, amount, method, status, transaction_id, refunded_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = tx.Exec(ctx, paymentQuery,
		payment.ID,
		payment.OrderID,
		payment.ParticipantID,
		payment.Amount,
		string(payment.Method),
		string(payment.Status),
		nullString(payment.TransactionID),
		payment.RefundedAt,
		payment.CreatedAt,
		payment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// nullString returns nil if string is empty, otherwise returns pointer to string
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

const orderWithPaymentColumns = `
	o.id, o.event_id, o.participant_id, o.no_of_tickets, o.status, o.created_at, o.updated_at,
	p.id, p.order_id, p.participant_id, p.amount, p.method, p.status, p.transaction_id, p.refunded_at, p.created_at, p.updated_at
`

// GetByID retrieves an order with its payment attached
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT ` + orderWithPaymentColumns + `
		FROM orders o
		JOIN payments p ON p.order_id = o.id
		WHERE o.id = $1`

	return r.scanOrderWithPayment(r.db.Pool().QueryRow(ctx, query, id))
}

// ListByParticipant retrieves a participant's orders with event, venue
// and payment attached, newest first.
func (r *PostgresOrderRepository) ListByParticipant(ctx context.Context, participantID string) ([]*domain.Order, error) {
	query := `
		SELECT ` + orderWithPaymentColumns + `,
		       e.id, e.name, e.start_at, e.end_at, e.price, e.status, e.organizer_id, e.venue_id, e.created_at, e.updated_at,
		       v.id, v.name, v.address, v.max_capacity, v.created_at, v.updated_at
		FROM orders o
		JOIN payments p ON p.order_id = o.id
		JOIN events e ON e.id = o.event_id
		JOIN venues v ON v.id = e.venue_id
		WHERE o.participant_id = $1
		ORDER BY o.created_at DESC`

	rows, err := r.db.Pool().Query(ctx, query, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		var order domain.Order
		var payment domain.Payment
		var event domain.Event
		var venue domain.Venue
		var orderStatus, paymentMethod, paymentStatus, eventStatus string
		var transactionID *string

		err := rows.Scan(
			&order.ID, &order.EventID, &order.ParticipantID, &order.NoOfTickets, &orderStatus, &order.CreatedAt, &order.UpdatedAt,
			&payment.ID, &payment.OrderID, &payment.ParticipantID, &payment.Amount, &paymentMethod, &paymentStatus, &transactionID, &payment.RefundedAt, &payment.CreatedAt, &payment.UpdatedAt,
			&event.ID, &event.Name, &event.Start, &event.End, &event.Price, &eventStatus, &event.OrganizerID, &event.VenueID, &event.CreatedAt, &event.UpdatedAt,
			&venue.ID, &venue.Name, &venue.Address, &venue.MaxCapacity, &venue.CreatedAt, &venue.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		order.Status = domain.OrderStatus(orderStatus)
		payment.Method = domain.PaymentMethod(paymentMethod)
		payment.Status = domain.PaymentStatus(paymentStatus)
		if transactionID != nil {
			payment.TransactionID = *transactionID
		}
		event.Status = domain.EventStatus(eventStatus)
		event.Venue = &venue
		order.Payment = &payment
		order.Event = &event
		orders = append(orders, &order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	return orders, nil
}

// UpdateStatus persists an order status change
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, order *domain.Order) error {
	query := `
		UPDATE orders
		SET status = $2, updated_at = $3
		WHERE id = $1`

	result, err := r.db.Pool().Exec(ctx, query, order.ID, string(order.Status), order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}

	return nil
}

// CancelWithRefund persists the order cancellation and the payment
// refund in a single transaction.
func (r *PostgresOrderRepository) CancelWithRefund(ctx context.Context, order *domain.Order, payment *domain.Payment) error {
	tx, err := r.db.Pool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	orderQuery := `
		UPDATE orders
		SET status = $2, updated_at = $3
		WHERE id = $1`
	result, err := tx.Exec(ctx, orderQuery, order.ID, string(order.Status), order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}

	paymentQuery := `
		UPDATE payments
		SET status = $2, refunded_at = $3, updated_at = $4
		WHERE id = $1`
	result, err = tx.Exec(ctx, paymentQuery, payment.ID, string(payment.Status), payment.RefundedAt, payment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrPaymentNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *PostgresOrderRepository) scanOrderWithPayment(row pgx.Row) (*domain.Order, error) {
	var order domain.Order
	var payment domain.Payment
	var orderStatus, paymentMethod, paymentStatus string
	var transactionID *string

	err := row.Scan(
		&order.ID, &order.EventID, &order.ParticipantID, &order.NoOfTickets, &orderStatus, &order.CreatedAt, &order.UpdatedAt,
		&payment.ID, &payment.OrderID, &payment.ParticipantID, &payment.Amount, &paymentMethod, &paymentStatus, &transactionID, &payment.RefundedAt, &payment.CreatedAt, &payment.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	order.Status = domain.OrderStatus(orderStatus)
	payment.Method = domain.PaymentMethod(paymentMethod)
	payment.Status = domain.PaymentStatus(paymentStatus)
	if transactionID != nil {
		payment.TransactionID = *transactionID
	}
	order.Payment = &payment

	return &order, nil
}
