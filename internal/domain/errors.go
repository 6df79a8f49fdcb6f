package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrVenueNotFound = errors.New("venue not found")
	ErrEventNotFound = errors.New("event not found")
	ErrOrderNotFound = errors.New("order not found")

	ErrEventCancelled        = errors.New("event is cancelled")
	ErrEventAlreadyCancelled = errors.New("event is already cancelled")
	ErrEventAlreadyStarted   = errors.New("event has already started")
	ErrCapacityExceeded      = errors.New("venue capacity exceeded")

	ErrOrderAlreadyCancelled  = errors.New("order is already cancelled")
	ErrNotOrderOwner          = errors.New("order belongs to another participant")
	ErrPaymentDeclined        = errors.New("payment was declined")
	ErrPaymentAlreadyRefunded = errors.New("payment is already refunded")
	ErrPaymentNotFound        = errors.New("payment not found")
)
