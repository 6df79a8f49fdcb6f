package gateway

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockGateway implements PaymentGateway in-process, for development
// and testing. Every charge succeeds.
type MockGateway struct {
	transactions sync.Map
	delay        time.Duration
}

// NewMockGateway creates a new mock gateway
func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

// NewMockGatewayWithDelay creates a mock gateway that simulates
// processing latency on every call.
func NewMockGatewayWithDelay(delay time.Duration) *MockGateway {
	return &MockGateway{delay: delay}
}

// Charge processes a mock payment charge
func (g *MockGateway) Charge(ctx context.Context, req *ChargeRequest) (*ChargeResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("charge request is required")
	}

	if err := g.simulateDelay(ctx); err != nil {
		return nil, err
	}

	transactionID := fmt.Sprintf("mock_txn_%s", uuid.New().String()[:8])
	g.transactions.Store(transactionID, req.Amount)

	return &ChargeResponse{
		Success:       true,
		TransactionID: transactionID,
		Status:        "completed",
	}, nil
}

// Refund processes a mock refund
func (g *MockGateway) Refund(ctx context.Context, transactionID string, amount float64) error {
	if transactionID == "" {
		return fmt.Errorf("transaction ID is required")
	}

	if err := g.simulateDelay(ctx); err != nil {
		return err
	}

	if _, ok := g.transactions.Load(transactionID); !ok {
		return fmt.Errorf("transaction not found: %s", transactionID)
	}
	g.transactions.Delete(transactionID)

	return nil
}

// Name returns the gateway name
func (g *MockGateway) Name() string {
	return "mock"
}

func (g *MockGateway) simulateDelay(ctx context.Context) error {
	if g.delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(g.delay):
		return nil
	}
}
