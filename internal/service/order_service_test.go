package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nvtimofeev/ticketly/internal/domain"
	"github.com/nvtimofeev/ticketly/internal/dto"
	"github.com/nvtimofeev/ticketly/internal/gateway"
)

// mockOrderRepository is a mock implementation of repository.OrderRepository
type mockOrderRepository struct {
	CreateWithPaymentFunc func(ctx context.Context, order *domain.Order, payment *domain.Payment) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Order, error)
	ListByParticipantFunc func(ctx context.Context, participantID string) ([]*domain.Order, error)
	UpdateStatusFunc      func(ctx context.Context, order *domain.Order) error
	CancelWithRefundFunc  func(ctx context.Context, order *domain.Order, payment *domain.Payment) error
}

func (m *mockOrderRepository) CreateWithPayment(ctx context.Context, order *domain.Order, payment *domain.Payment) error {
	return m.CreateWithPaymentFunc(ctx, order, payment)
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockOrderRepository) ListByParticipant(ctx context.Context, participantID string) ([]*domain.Order, error) {
	return m.ListByParticipantFunc(ctx, participantID)
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, order *domain.Order) error {
	return m.UpdateStatusFunc(ctx, order)
}

func (m *mockOrderRepository) CancelWithRefund(ctx context.Context, order *domain.Order, payment *domain.Payment) error {
	return m.CancelWithRefundFunc(ctx, order, payment)
}

// mockEventRepository is a mock implementation of repository.EventRepository
type mockEventRepository struct {
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Event, error)
	CountTicketsSoldFunc func(ctx context.Context, eventID string) (int, error)
	CancelWithOrdersFunc func(ctx context.Context, eventID string, orderStatus domain.OrderStatus) error
}

func (m *mockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockEventRepository) ListActive(ctx context.Context) ([]*domain.Event, error) {
	return nil, nil
}

func (m *mockEventRepository) ListByOrganizer(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	return nil, nil
}

func (m *mockEventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	return nil, nil
}

func (m *mockEventRepository) CountTicketsSold(ctx context.Context, eventID string) (int, error) {
	return m.CountTicketsSoldFunc(ctx, eventID)
}

func (m *mockEventRepository) CancelWithOrders(ctx context.Context, eventID string, orderStatus domain.OrderStatus) error {
	return m.CancelWithOrdersFunc(ctx, eventID, orderStatus)
}

// mockVenueRepository is a mock implementation of repository.VenueRepository
type mockVenueRepository struct {
	UpsertFunc  func(ctx context.Context, venue *domain.Venue) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Venue, error)
}

func (m *mockVenueRepository) Upsert(ctx context.Context, venue *domain.Venue) error {
	return m.UpsertFunc(ctx, venue)
}

func (m *mockVenueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockVenueRepository) List(ctx context.Context) ([]*domain.Venue, error) {
	return nil, nil
}

func (m *mockVenueRepository) ListWithEvents(ctx context.Context) ([]*domain.Venue, error) {
	return nil, nil
}

// recordingGateway records charges and refunds for assertions
type recordingGateway struct {
	chargedAmount  float64
	chargeCalls    int
	refundedTxns   []string
	refundedAmount float64
}

func (g *recordingGateway) Charge(ctx context.Context, req *gateway.ChargeRequest) (*gateway.ChargeResponse, error) {
	g.chargeCalls++
	g.chargedAmount = req.Amount
	return &gateway.ChargeResponse{Success: true, TransactionID: "txn-1", Status: "completed"}, nil
}

func (g *recordingGateway) Refund(ctx context.Context, transactionID string, amount float64) error {
	g.refundedTxns = append(g.refundedTxns, transactionID)
	g.refundedAmount = amount
	return nil
}

func (g *recordingGateway) Name() string { return "recording" }

// orderedGateway invokes a callback on refund so tests can observe
// when the refund happens relative to repository calls
type orderedGateway struct {
	onRefund func()
	refunded bool
}

func (g *orderedGateway) Charge(ctx context.Context, req *gateway.ChargeRequest) (*gateway.ChargeResponse, error) {
	return &gateway.ChargeResponse{Success: true, TransactionID: "txn-1", Status: "completed"}, nil
}

func (g *orderedGateway) Refund(ctx context.Context, transactionID string, amount float64) error {
	g.refunded = true
	if g.onRefund != nil {
		g.onRefund()
	}
	return nil
}

func (g *orderedGateway) Name() string { return "ordered" }

func activeEvent() *domain.Event {
	now := time.Now().UTC()
	return &domain.Event{
		ID:          "event-1",
		Name:        "Spring Concert",
		Start:       now.Add(24 * time.Hour),
		End:         now.Add(27 * time.Hour),
		Price:       25,
		Status:      domain.EventStatusSuccess,
		OrganizerID: "organizer-1",
		VenueID:     "venue-1",
	}
}

func TestOrderService_Create(t *testing.T) {
	event := activeEvent()
	venue := &domain.Venue{ID: "venue-1", Name: "Main Hall", MaxCapacity: 100}

	t.Run("payment amount is price times tickets", func(t *testing.T) {
		var savedOrder *domain.Order
		var savedPayment *domain.Payment

		orderRepo := &mockOrderRepository{
			CreateWithPaymentFunc: func(ctx context.Context, order *domain.Order, payment *domain.Payment) error {
				savedOrder = order
				savedPayment = payment
				return nil
			},
		}
		eventRepo := &mockEventRepository{
			GetByIDFunc:          func(ctx context.Context, id string) (*domain.Event, error) { return event, nil },
			CountTicketsSoldFunc: func(ctx context.Context, eventID string) (int, error) { return 0, nil },
		}
		venueRepo := &mockVenueRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*domain.Venue, error) { return venue, nil },
		}
		gw := &recordingGateway{}
		svc := NewOrderService(orderRepo, eventRepo, venueRepo, gw)

		// Client sends a wrong amount on purpose, the server must ignore it
		order, err := svc.Create(context.Background(), "participant-1", &dto.CreateOrderRequest{
			EventID:     event.ID,
			Amount:      1,
			NoOfTickets: 3,
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		if savedOrder == nil || savedPayment == nil {
			t.Fatal("Create() did not persist the order and payment")
		}
		want := 75.0
		if savedPayment.Amount != want {
			t.Errorf("payment amount = %v, want %v", savedPayment.Amount, want)
		}
		if gw.chargedAmount != want {
			t.Errorf("charged amount = %v, want %v", gw.chargedAmount, want)
		}
		if savedPayment.Method != domain.PaymentMethodCreditCard {
			t.Errorf("payment method = %v, want %v", savedPayment.Method, domain.PaymentMethodCreditCard)
		}
		if savedPayment.TransactionID != "txn-1" {
			t.Errorf("transaction id = %v, want txn-1", savedPayment.TransactionID)
		}
		if order.Status != domain.OrderStatusSuccess {
			t.Errorf("order status = %v, want %v", order.Status, domain.OrderStatusSuccess)
		}
	})

	t.Run("capacity exceeded", func(t *testing.T) {
		eventRepo := &mockEventRepository{
			GetByIDFunc:          func(ctx context.Context, id string) (*domain.Event, error) { return event, nil },
			CountTicketsSoldFunc: func(ctx context.Context, eventID string) (int, error) { return 98, nil },
		}
		venueRepo := &mockVenueRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*domain.Venue, error) { return venue, nil },
		}
		gw := &recordingGateway{}
		svc := NewOrderService(&mockOrderRepository{}, eventRepo, venueRepo, gw)

		_, err := svc.Create(context.Background(), "participant-1", &dto.CreateOrderRequest{
			EventID:     event.ID,
			Amount:      75,
			NoOfTickets: 3,
		})
		if !errors.Is(err, domain.ErrCapacityExceeded) {
			t.Errorf("Create() error = %v, want %v", err, domain.ErrCapacityExceeded)
		}
		if gw.chargeCalls != 0 {
			t.Errorf("gateway charged %d times for a rejected order", gw.chargeCalls)
		}
	})

	t.Run("cancelled event", func(t *testing.T) {
		cancelled := activeEvent()
		cancelled.Status = domain.EventStatusCancelled

		eventRepo := &mockEventRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*domain.Event, error) { return cancelled, nil },
		}
		svc := NewOrderService(&mockOrderRepository{}, eventRepo, &mockVenueRepository{}, &recordingGateway{})

		_, err := svc.Create(context.Background(), "participant-1", &dto.CreateOrderRequest{
			EventID:     cancelled.ID,
			Amount:      25,
			NoOfTickets: 1,
		})
		if !errors.Is(err, domain.ErrEventCancelled) {
			t.Errorf("Create() error = %v, want %v", err, domain.ErrEventCancelled)
		}
	})

	t.Run("started event", func(t *testing.T) {
		started := activeEvent()
		started.Start = time.Now().UTC().Add(-time.Hour)

		eventRepo := &mockEventRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*domain.Event, error) { return started, nil },
		}
		svc := NewOrderService(&mockOrderRepository{}, eventRepo, &mockVenueRepository{}, &recordingGateway{})

		_, err := svc.Create(context.Background(), "participant-1", &dto.CreateOrderRequest{
			EventID:     started.ID,
			Amount:      25,
			NoOfTickets: 1,
		})
		if !errors.Is(err, domain.ErrEventAlreadyStarted) {
			t.Errorf("Create() error = %v, want %v", err, domain.ErrEventAlreadyStarted)
		}
	})
}

func successOrderWithPayment() *domain.Order {
	return &domain.Order{
		ID:            "order-1",
		EventID:       "event-1",
		ParticipantID: "participant-1",
		NoOfTickets:   2,
		Status:        domain.OrderStatusSuccess,
		Payment: &domain.Payment{
			ID:            "payment-1",
			OrderID:       "order-1",
			ParticipantID: "participant-1",
			Amount:        50,
			Method:        domain.PaymentMethodCreditCard,
			Status:        domain.PaymentStatusSuccess,
			TransactionID: "txn-1",
		},
	}
}

func TestOrderService_Cancel(t *testing.T) {
	t.Run("participant cancel refunds the payment", func(t *testing.T) {
		order := successOrderWithPayment()
		var refundedPayment *domain.Payment

		orderRepo := &mockOrderRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) { return order, nil },
			CancelWithRefundFunc: func(ctx context.Context, o *domain.Order, p *domain.Payment) error {
				refundedPayment = p
				return nil
			},
		}
		gw := &recordingGateway{}
		svc := NewOrderService(orderRepo, &mockEventRepository{}, &mockVenueRepository{}, gw)

		got, err := svc.Cancel(context.Background(), "participant-1", domain.RoleParticipant, order.ID)
		if err != nil {
			t.Fatalf("Cancel() error = %v", err)
		}

		if got.Status != domain.OrderStatusCancelledByParticipant {
			t.Errorf("order status = %v, want %v", got.Status, domain.OrderStatusCancelledByParticipant)
		}
		if refundedPayment == nil || refundedPayment.Status != domain.PaymentStatusRefunded {
			t.Error("payment was not refunded")
		}
		if len(gw.refundedTxns) != 1 || gw.refundedTxns[0] != "txn-1" {
			t.Errorf("gateway refunds = %v, want [txn-1]", gw.refundedTxns)
		}
		if gw.refundedAmount != 50 {
			t.Errorf("refunded amount = %v, want 50", gw.refundedAmount)
		}
	})

	t.Run("gateway refund only after the cancellation is persisted", func(t *testing.T) {
		order := successOrderWithPayment()
		cancelPersisted := false

		orderRepo := &mockOrderRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) { return order, nil },
			CancelWithRefundFunc: func(ctx context.Context, o *domain.Order, p *domain.Payment) error {
				cancelPersisted = true
				return nil
			},
		}
		var refundedAfterPersist bool
		gw := &orderedGateway{onRefund: func() { refundedAfterPersist = cancelPersisted }}
		svc := NewOrderService(orderRepo, &mockEventRepository{}, &mockVenueRepository{}, gw)

		if _, err := svc.Cancel(context.Background(), "participant-1", domain.RoleParticipant, order.ID); err != nil {
			t.Fatalf("Cancel() error = %v", err)
		}
		if !gw.refunded {
			t.Fatal("gateway refund was never issued")
		}
		if !refundedAfterPersist {
			t.Error("gateway refund was issued before the cancellation was persisted")
		}
	})

	t.Run("persist failure issues no gateway refund", func(t *testing.T) {
		order := successOrderWithPayment()
		dbErr := errors.New("connection reset")

		orderRepo := &mockOrderRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) { return order, nil },
			CancelWithRefundFunc: func(ctx context.Context, o *domain.Order, p *domain.Payment) error {
				return dbErr
			},
		}
		gw := &recordingGateway{}
		svc := NewOrderService(orderRepo, &mockEventRepository{}, &mockVenueRepository{}, gw)

		_, err := svc.Cancel(context.Background(), "participant-1", domain.RoleParticipant, order.ID)
		if !errors.Is(err, dbErr) {
			t.Errorf("Cancel() error = %v, want %v", err, dbErr)
		}
		if len(gw.refundedTxns) != 0 {
			t.Errorf("gateway refunds = %v, want none after a failed persist", gw.refundedTxns)
		}
	})

	t.Run("admin cancel keeps the payment", func(t *testing.T) {
		order := successOrderWithPayment()

		orderRepo := &mockOrderRepository{
			GetByIDFunc:      func(ctx context.Context, id string) (*domain.Order, error) { return order, nil },
			UpdateStatusFunc: func(ctx context.Context, o *domain.Order) error { return nil },
		}
		gw := &recordingGateway{}
		svc := NewOrderService(orderRepo, &mockEventRepository{}, &mockVenueRepository{}, gw)

		got, err := svc.Cancel(context.Background(), "admin-1", domain.RoleAdmin, order.ID)
		if err != nil {
			t.Fatalf("Cancel() error = %v", err)
		}

		if got.Status != domain.OrderStatusCancelledByAdmin {
			t.Errorf("order status = %v, want %v", got.Status, domain.OrderStatusCancelledByAdmin)
		}
		if got.Payment.Status != domain.PaymentStatusSuccess {
			t.Errorf("payment status = %v, want %v", got.Payment.Status, domain.PaymentStatusSuccess)
		}
		if len(gw.refundedTxns) != 0 {
			t.Errorf("gateway refunds = %v, want none", gw.refundedTxns)
		}
	})

	t.Run("participant cannot cancel another participant's order", func(t *testing.T) {
		order := successOrderWithPayment()

		orderRepo := &mockOrderRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) { return order, nil },
		}
		svc := NewOrderService(orderRepo, &mockEventRepository{}, &mockVenueRepository{}, &recordingGateway{})

		_, err := svc.Cancel(context.Background(), "participant-2", domain.RoleParticipant, order.ID)
		if !errors.Is(err, domain.ErrNotOrderOwner) {
			t.Errorf("Cancel() error = %v, want %v", err, domain.ErrNotOrderOwner)
		}
	})

	t.Run("cancelling twice is rejected", func(t *testing.T) {
		order := successOrderWithPayment()
		order.Status = domain.OrderStatusCancelledByParticipant

		orderRepo := &mockOrderRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) { return order, nil },
		}
		svc := NewOrderService(orderRepo, &mockEventRepository{}, &mockVenueRepository{}, &recordingGateway{})

		_, err := svc.Cancel(context.Background(), "participant-1", domain.RoleParticipant, order.ID)
		if !errors.Is(err, domain.ErrOrderAlreadyCancelled) {
			t.Errorf("Cancel() error = %v, want %v", err, domain.ErrOrderAlreadyCancelled)
		}
	})

	t.Run("organizer can only cancel orders of own events", func(t *testing.T) {
		order := successOrderWithPayment()

		orderRepo := &mockOrderRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) { return order, nil },
		}
		eventRepo := &mockEventRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*domain.Event, error) {
				return &domain.Event{ID: "event-1", OrganizerID: "organizer-1"}, nil
			},
		}
		svc := NewOrderService(orderRepo, eventRepo, &mockVenueRepository{}, &recordingGateway{})

		_, err := svc.Cancel(context.Background(), "organizer-2", domain.RoleOrganizer, order.ID)
		if !errors.Is(err, domain.ErrOrderNotFound) {
			t.Errorf("Cancel() error = %v, want %v", err, domain.ErrOrderNotFound)
		}
	})
}
