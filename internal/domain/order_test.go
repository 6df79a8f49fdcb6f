package domain

import (
	"errors"
	"testing"
	"time"
)

func TestOrderCancelBy(t *testing.T) {
	tests := []struct {
		name       string
		role       Role
		wantStatus OrderStatus
	}{
		{"admin cancel", RoleAdmin, OrderStatusCancelledByAdmin},
		{"organizer cancel", RoleOrganizer, OrderStatusCancelledByOrganizer},
		{"participant cancel", RoleParticipant, OrderStatusCancelledByParticipant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &Order{ID: "order-1", Status: OrderStatusSuccess}

			if err := order.CancelBy(tt.role); err != nil {
				t.Fatalf("CancelBy() error = %v", err)
			}
			if order.Status != tt.wantStatus {
				t.Errorf("CancelBy() status = %v, want %v", order.Status, tt.wantStatus)
			}
		})
	}
}

func TestOrderCancelByTwice(t *testing.T) {
	order := &Order{ID: "order-1", Status: OrderStatusSuccess}

	if err := order.CancelBy(RoleParticipant); err != nil {
		t.Fatalf("first CancelBy() error = %v", err)
	}

	err := order.CancelBy(RoleParticipant)
	if !errors.Is(err, ErrOrderAlreadyCancelled) {
		t.Errorf("second CancelBy() error = %v, want %v", err, ErrOrderAlreadyCancelled)
	}
	if order.Status != OrderStatusCancelledByParticipant {
		t.Errorf("status changed on second cancel: %v", order.Status)
	}
}

func TestOrderCancelByUnknownRole(t *testing.T) {
	order := &Order{ID: "order-1", Status: OrderStatusSuccess}

	if err := order.CancelBy(Role("INTRUDER")); err == nil {
		t.Error("CancelBy() with unknown role should fail")
	}
	if order.Status != OrderStatusSuccess {
		t.Errorf("status changed on failed cancel: %v", order.Status)
	}
}

func TestPaymentRefund(t *testing.T) {
	payment, err := NewPayment("order-1", "user-1", 50)
	if err != nil {
		t.Fatalf("NewPayment() error = %v", err)
	}
	if payment.Status != PaymentStatusSuccess {
		t.Fatalf("NewPayment() status = %v, want %v", payment.Status, PaymentStatusSuccess)
	}
	if payment.Method != PaymentMethodCreditCard {
		t.Fatalf("NewPayment() method = %v, want %v", payment.Method, PaymentMethodCreditCard)
	}

	if err := payment.Refund(); err != nil {
		t.Fatalf("Refund() error = %v", err)
	}
	if payment.Status != PaymentStatusRefunded {
		t.Errorf("Refund() status = %v, want %v", payment.Status, PaymentStatusRefunded)
	}
	if payment.RefundedAt == nil {
		t.Error("Refund() did not set RefundedAt")
	}

	if err := payment.Refund(); !errors.Is(err, ErrPaymentAlreadyRefunded) {
		t.Errorf("second Refund() error = %v, want %v", err, ErrPaymentAlreadyRefunded)
	}
}

func TestEventCancel(t *testing.T) {
	event := &Event{ID: "event-1", Status: EventStatusSuccess}

	if err := event.Cancel(); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if event.Status != EventStatusCancelled {
		t.Errorf("Cancel() status = %v, want %v", event.Status, EventStatusCancelled)
	}

	if err := event.Cancel(); !errors.Is(err, ErrEventAlreadyCancelled) {
		t.Errorf("second Cancel() error = %v, want %v", err, ErrEventAlreadyCancelled)
	}
}

func TestEventHasStarted(t *testing.T) {
	now := time.Now()
	event := &Event{Start: now.Add(time.Hour)}
	if event.HasStarted(now) {
		t.Error("HasStarted() = true for a future event")
	}

	event.Start = now.Add(-time.Minute)
	if !event.HasStarted(now) {
		t.Error("HasStarted() = false for a started event")
	}
}

func TestRoleHomePath(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleAdmin, "/admin"},
		{RoleOrganizer, "/organizer"},
		{RoleParticipant, "/participant"},
	}

	for _, tt := range tests {
		if got := tt.role.HomePath(); got != tt.want {
			t.Errorf("HomePath(%v) = %v, want %v", tt.role, got, tt.want)
		}
	}
}
