package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/nvtimofeev/ticketly/internal/domain"
	"github.com/nvtimofeev/ticketly/internal/dto"
	"github.com/nvtimofeev/ticketly/internal/gateway"
	"github.com/nvtimofeev/ticketly/internal/repository"
	"github.com/nvtimofeev/ticketly/pkg/logger"
	"github.com/nvtimofeev/ticketly/pkg/telemetry"
)

// OrderService defines the interface for order operations
type OrderService interface {
	// Create purchases tickets for an event, charging the payment gateway
	Create(ctx context.Context, participantID string, req *dto.CreateOrderRequest) (*domain.Order, error)
	// Cancel cancels an order on behalf of the given actor
	Cancel(ctx context.Context, actorID string, actorRole domain.Role, orderID string) (*domain.Order, error)
	// ListByParticipant retrieves a participant's orders
	ListByParticipant(ctx context.Context, participantID string) ([]*domain.Order, error)
}

// orderService implements OrderService
type orderService struct {
	orderRepo repository.OrderRepository
	eventRepo repository.EventRepository
	venueRepo repository.VenueRepository
	gateway   gateway.PaymentGateway
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo repository.OrderRepository,
	eventRepo repository.EventRepository,
	venueRepo repository.VenueRepository,
	paymentGateway gateway.PaymentGateway,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		eventRepo: eventRepo,
		venueRepo: venueRepo,
		gateway:   paymentGateway,
	}
}

// Create purchases tickets for an event. The payment amount is always
// the event price multiplied by the ticket count, regardless of the
// amount sent by the client. The order and its payment are written in
// a single transaction after the gateway accepts the charge.
func (s *orderService) Create(ctx context.Context, participantID string, req *dto.CreateOrderRequest) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.order.create")
	defer span.End()

	span.SetAttributes(
		attribute.String("participant_id", participantID),
		attribute.String("event_id", req.EventID),
		attribute.Int("no_of_tickets", req.NoOfTickets),
	)

	event, err := s.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if event.IsCancelled() {
		span.SetStatus(codes.Error, "event cancelled")
		return nil, domain.ErrEventCancelled
	}
	if event.HasStarted(time.Now().UTC()) {
		span.SetStatus(codes.Error, "event already started")
		return nil, domain.ErrEventAlreadyStarted
	}

	venue, err := s.venueRepo.GetByID(ctx, event.VenueID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	sold, err := s.eventRepo.CountTicketsSold(ctx, event.ID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if sold+req.NoOfTickets > venue.MaxCapacity {
		span.SetStatus(codes.Error, "capacity exceeded")
		return nil, domain.ErrCapacityExceeded
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:            uuid.New().String(),
		EventID:       event.ID,
		ParticipantID: participantID,
		NoOfTickets:   req.NoOfTickets,
		Status:        domain.OrderStatusSuccess,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	amount := event.Price * float64(req.NoOfTickets)
	payment, err := domain.NewPayment(order.ID, participantID, amount)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	charge, err := s.gateway.Charge(ctx, &gateway.ChargeRequest{
		PaymentID:   payment.ID,
		Amount:      amount,
		Currency:    "usd",
		Description: fmt.Sprintf("%d ticket(s) for %s", req.NoOfTickets, event.Name),
		Metadata: map[string]string{
			"order_id": order.ID,
			"event_id": event.ID,
		},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if !charge.Success {
		span.SetStatus(codes.Error, charge.FailureReason)
		return nil, domain.ErrPaymentDeclined
	}
	payment.TransactionID = charge.TransactionID

	if err := s.orderRepo.CreateWithPayment(ctx, order, payment); err != nil {
		// The charge went through but the order did not, release the money
		if refundErr := s.gateway.Refund(ctx, payment.TransactionID, amount); refundErr != nil {
			logger.Get().Error("failed to refund orphaned charge",
				zap.String("transaction_id", payment.TransactionID),
				zap.Error(refundErr),
			)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("order_id", order.ID))
	order.Payment = payment
	order.Event = event
	return order, nil
}

// Cancel cancels an order on behalf of the given actor. Participants
// can only cancel their own orders and get their payment refunded.
// Organizer and admin cancellations leave the payment untouched.
func (s *orderService) Cancel(ctx context.Context, actorID string, actorRole domain.Role, orderID string) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.order.cancel")
	defer span.End()

	span.SetAttributes(
		attribute.String("order_id", orderID),
		attribute.String("actor_role", string(actorRole)),
	)

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	switch actorRole {
	case domain.RoleParticipant:
		if order.ParticipantID != actorID {
			span.SetStatus(codes.Error, "not order owner")
			return nil, domain.ErrNotOrderOwner
		}
	case domain.RoleOrganizer:
		event, err := s.eventRepo.GetByID(ctx, order.EventID)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		if event.OrganizerID != actorID {
			span.SetStatus(codes.Error, "order not found for organizer")
			return nil, domain.ErrOrderNotFound
		}
	}

	if err := order.CancelBy(actorRole); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if actorRole != domain.RoleParticipant {
		if err := s.orderRepo.UpdateStatus(ctx, order); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		return order, nil
	}

	payment := order.Payment
	if payment == nil {
		span.SetStatus(codes.Error, "payment missing")
		return nil, domain.ErrPaymentNotFound
	}
	if err := payment.Refund(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := s.orderRepo.CancelWithRefund(ctx, order, payment); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	// Gateway refund only after the cancellation is committed, so a DB
	// failure can never leave money refunded against a live order. A
	// failed gateway refund is reconciled out of band.
	if payment.TransactionID != "" {
		if err := s.gateway.Refund(ctx, payment.TransactionID, payment.Amount); err != nil {
			logger.Get().Error("gateway refund failed for cancelled order, needs reconciliation",
				zap.String("order_id", order.ID),
				zap.String("transaction_id", payment.TransactionID),
				zap.Error(err),
			)
			span.RecordError(err)
		}
	}

	return order, nil
}

// ListByParticipant retrieves a participant's orders
func (s *orderService) ListByParticipant(ctx context.Context, participantID string) ([]*domain.Order, error) {
	return s.orderRepo.ListByParticipant(ctx, participantID)
}
