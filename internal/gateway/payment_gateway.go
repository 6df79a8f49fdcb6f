package gateway

import "context"

// ChargeRequest represents a charge to process
type ChargeRequest struct {
	PaymentID   string
	Amount      float64
	Currency    string
	Description string
	Metadata    map[string]string
}

// ChargeResponse represents the result of a charge
type ChargeResponse struct {
	Success       bool
	TransactionID string
	Status        string
	FailureReason string
}

// PaymentGateway defines the interface for charging and refunding payments
type PaymentGateway interface {
	// Charge processes a payment charge
	Charge(ctx context.Context, req *ChargeRequest) (*ChargeResponse, error)

	// Refund refunds a previously charged transaction
	Refund(ctx context.Context, transactionID string, amount float64) error

	// Name returns the gateway name
	Name() string
}
