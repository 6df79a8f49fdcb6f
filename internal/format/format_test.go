package format

import (
	"testing"
	"time"

	"github.com/nvtimofeev/ticketly/internal/domain"
)

func TestRound(t *testing.T) {
	tests := []struct {
		number    float64
		precision int
		want      float64
	}{
		{1.005, 2, 1.01},
		{1.004, 2, 1.0},
		{123.456, 1, 123.5},
		{-2.5, 0, -2},
		{10, 2, 10},
	}

	for _, tt := range tests {
		if got := Round(tt.number, tt.precision); got != tt.want {
			t.Errorf("Round(%v, %d) = %v, want %v", tt.number, tt.precision, got, tt.want)
		}
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hello world", "Hello World"},
		{"HELLO WORLD", "Hello World"},
		{"mIxEd CaSe", "Mixed Case"},
		{"single", "Single"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := TitleCase(tt.in); got != tt.want {
			t.Errorf("TitleCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "$0.00"},
		{5, "$5.00"},
		{1234.56, "$1,234.56"},
		{1000000, "$1,000,000.00"},
		{-42.5, "-$42.50"},
		{0.995, "$1.00"},
	}

	for _, tt := range tests {
		if got := Currency(tt.amount); got != tt.want {
			t.Errorf("Currency(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestList(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"a"}, "a"},
		{[]string{"a", "b"}, "a and b"},
		{[]string{"a", "b", "c"}, "a, b, and c"},
	}

	for _, tt := range tests {
		if got := List(tt.in); got != tt.want {
			t.Errorf("List(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDateFormats(t *testing.T) {
	ts := time.Date(2024, time.March, 7, 18, 30, 0, 0, time.UTC)

	if got := Date(ts); got != "Mar 7, 2024" {
		t.Errorf("Date() = %q, want %q", got, "Mar 7, 2024")
	}
	if got := Time(ts); got != "06:30 PM" {
		t.Errorf("Time() = %q, want %q", got, "06:30 PM")
	}
	if got := DateTime(ts); got != "03/7/2024, 06:30 PM" {
		t.Errorf("DateTime() = %q, want %q", got, "03/7/2024, 06:30 PM")
	}
}

func TestCombineDateAndTime(t *testing.T) {
	got, err := CombineDateAndTime("2024-03-07", "18:30")
	if err != nil {
		t.Fatalf("CombineDateAndTime() error = %v", err)
	}
	want := time.Date(2024, time.March, 7, 18, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("CombineDateAndTime() = %v, want %v", got, want)
	}

	if _, err := CombineDateAndTime("07-03-2024", "18:30"); err == nil {
		t.Error("CombineDateAndTime() accepted a malformed date")
	}
}

func TestStatusLookups(t *testing.T) {
	if got := OrderStatusLabel(domain.OrderStatusCancelledByOrganizer); got != "Cancelled by Organizer" {
		t.Errorf("OrderStatusLabel() = %q", got)
	}
	if got := OrderStatusLabel(domain.OrderStatus("BOGUS")); got != "" {
		t.Errorf("OrderStatusLabel(bogus) = %q, want empty", got)
	}
	if got := UserRoleLabel(domain.RoleAdmin); got != "Admin" {
		t.Errorf("UserRoleLabel() = %q", got)
	}
	if got := EventStatusLabel(domain.EventStatusSuccess); got != "Success" {
		t.Errorf("EventStatusLabel() = %q", got)
	}
	if got := EventStatusColor(domain.EventStatusCancelled); got != "red" {
		t.Errorf("EventStatusColor() = %q", got)
	}
	if got := EventStatusColor(domain.EventStatusSuccess); got != "green" {
		t.Errorf("EventStatusColor() = %q", got)
	}
}
