package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// PaymentStatus represents the status of a payment (matches DB ENUM)
type PaymentStatus string

const (
	PaymentStatusSuccess  PaymentStatus = "SUCCESS"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// PaymentMethod represents the method of payment (matches DB ENUM)
type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "CREDIT_CARD"
)

// Payment is the monetary record attached 1:1 to an order. It is
// created in the same transaction as its order and starts out
// successful, the only further transition is a refund.
type Payment struct {
	ID            string        `json:"id"`
	OrderID       string        `json:"order_id"`
	ParticipantID string        `json:"participant_id"`
	Amount        float64       `json:"amount"`
	Method        PaymentMethod `json:"method"`
	Status        PaymentStatus `json:"status"`
	TransactionID string        `json:"transaction_id,omitempty"`
	RefundedAt    *time.Time    `json:"refunded_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	// Order is populated on participant-scope reads
	Order *Order `json:"order,omitempty"`
}

// NewPayment creates a payment for an order. Amount is the unit price
// multiplied by the ticket count, computed by the caller.
func NewPayment(orderID, participantID string, amount float64) (*Payment, error) {
	if orderID == "" {
		return nil, errors.New("order_id is required")
	}
	if participantID == "" {
		return nil, errors.New("participant_id is required")
	}
	if amount <= 0 {
		return nil, errors.New("amount must be positive")
	}

	now := time.Now().UTC()
	return &Payment{
		ID:            uuid.New().String(),
		OrderID:       orderID,
		ParticipantID: participantID,
		Amount:        amount,
		Method:        PaymentMethodCreditCard,
		Status:        PaymentStatusSuccess,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Refund transitions the payment to REFUNDED. Terminal, a refund can
// only happen once.
func (p *Payment) Refund() error {
	if p.Status == PaymentStatusRefunded {
		return ErrPaymentAlreadyRefunded
	}
	now := time.Now().UTC()
	p.Status = PaymentStatusRefunded
	p.RefundedAt = &now
	p.UpdatedAt = now
	return nil
}

// IsRefunded returns true if the payment has been refunded
func (p *Payment) IsRefunded() bool {
	return p.Status == PaymentStatusRefunded
}
