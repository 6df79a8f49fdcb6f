package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/nvtimofeev/ticketly/internal/domain"
)

// CreateOrderRequest represents the request to purchase tickets for an event
type CreateOrderRequest struct {
	EventID     string  `json:"eventId"`
	Amount      float64 `json:"amount"`
	NoOfTickets int     `json:"noOfTickets"`
}

// Validate validates the CreateOrderRequest and returns per-field errors
func (r *CreateOrderRequest) Validate() map[string]string {
	fieldErrors := make(map[string]string)
	if r.EventID == "" {
		fieldErrors["eventId"] = "Event is required"
	} else if uuid.Validate(r.EventID) != nil {
		fieldErrors["eventId"] = "Event id must be a valid UUID"
	}
	if r.Amount <= 0 {
		fieldErrors["amount"] = "Amount must be greater than 0"
	}
	if r.NoOfTickets < 1 {
		fieldErrors["noOfTickets"] = "Number of tickets must be at least 1"
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

// CancelOrderRequest represents the request to cancel an order
type CancelOrderRequest struct {
	OrderID string `json:"orderId"`
}

// Validate validates the CancelOrderRequest and returns per-field errors
func (r *CancelOrderRequest) Validate() map[string]string {
	fieldErrors := make(map[string]string)
	if r.OrderID == "" {
		fieldErrors["orderId"] = "Order is required"
	} else if uuid.Validate(r.OrderID) != nil {
		fieldErrors["orderId"] = "Order id must be a valid UUID"
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID            string     `json:"id"`
	OrderID       string     `json:"order_id"`
	Amount        float64    `json:"amount"`
	Method        string     `json:"method"`
	Status        string     `json:"status"`
	TransactionID string     `json:"transaction_id,omitempty"`
	RefundedAt    *time.Time `json:"refunded_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID            string           `json:"id"`
	EventID       string           `json:"event_id"`
	ParticipantID string           `json:"participant_id"`
	NoOfTickets   int              `json:"no_of_tickets"`
	Status        string           `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
	Event         *EventResponse   `json:"event,omitempty"`
	Payment       *PaymentResponse `json:"payment,omitempty"`
}

// PaymentFromDomain converts a domain Payment to PaymentResponse
func PaymentFromDomain(p *domain.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}
	return &PaymentResponse{
		ID:            p.ID,
		OrderID:       p.OrderID,
		Amount:        p.Amount,
		Method:        string(p.Method),
		Status:        string(p.Status),
		TransactionID: p.TransactionID,
		RefundedAt:    p.RefundedAt,
		CreatedAt:     p.CreatedAt,
	}
}

// OrderFromDomain converts a domain Order to OrderResponse
func OrderFromDomain(o *domain.Order) *OrderResponse {
	resp := &OrderResponse{
		ID:            o.ID,
		EventID:       o.EventID,
		ParticipantID: o.ParticipantID,
		NoOfTickets:   o.NoOfTickets,
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt,
		Payment:       PaymentFromDomain(o.Payment),
	}
	if o.Event != nil {
		resp.Event = EventFromDomain(o.Event)
	}
	return resp
}
