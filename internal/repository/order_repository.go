package repository

import (
	"context"

	"github.com/nvtimofeev/ticketly/internal/domain"
)

// OrderRepository defines the interface for order and payment data access.
// Orders and their payments are written together, an order never exists
// without its payment row.
type OrderRepository interface {
	// CreateWithPayment creates the order and its payment in a single transaction
	CreateWithPayment(ctx context.Context, order *domain.Order, payment *domain.Payment) error

	// GetByID retrieves an order with its payment attached
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// ListByParticipant retrieves a participant's orders with event,
	// venue and payment attached
	ListByParticipant(ctx context.Context, participantID string) ([]*domain.Order, error)

	// UpdateStatus persists an order status change
	UpdateStatus(ctx context.Context, order *domain.Order) error

	// CancelWithRefund persists the order cancellation and the payment
	// refund in a single transaction
	CancelWithRefund(ctx context.Context, order *domain.Order, payment *domain.Payment) error
}
