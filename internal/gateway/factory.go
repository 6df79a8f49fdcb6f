package gateway

import (
	"fmt"
	"strings"
)

// GatewayType represents the type of payment gateway
type GatewayType string

const (
	GatewayTypeMock   GatewayType = "mock"
	GatewayTypeStripe GatewayType = "stripe"
)

// NewPaymentGateway creates a payment gateway based on the type
func NewPaymentGateway(gatewayType, stripeSecretKey string) (PaymentGateway, error) {
	switch GatewayType(strings.ToLower(gatewayType)) {
	case GatewayTypeMock, "":
		// Default to mock gateway
		return NewMockGateway(), nil

	case GatewayTypeStripe:
		return NewStripeGateway(stripeSecretKey)

	default:
		return nil, fmt.Errorf("unsupported gateway type: %s", gatewayType)
	}
}
