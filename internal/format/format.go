// Package format provides display formatting helpers for dates,
// currency amounts and domain enums, en-US conventions throughout.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/nvtimofeev/ticketly/internal/domain"
)

// Round rounds a number to the given decimal precision. The epsilon
// nudges values sitting on a rounding boundary upward, so 1.005 at
// precision 2 becomes 1.01 rather than 1.0.
func Round(number float64, precision int) float64 {
	d := math.Pow(10, float64(precision))
	eps := math.Nextafter(1, 2) - 1
	return math.Round((number+eps)*d) / d
}

// TitleCase lowercases the string and uppercases the first letter of
// every space-separated word.
func TitleCase(s string) string {
	words := strings.Split(strings.ToLower(s), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Date formats a timestamp like "Jan 2, 2006"
func Date(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// Time formats a timestamp like "03:04 PM"
func Time(t time.Time) string {
	return t.Format("03:04 PM")
}

// DateTime formats a timestamp like "01/2/2006, 03:04 PM"
func DateTime(t time.Time) string {
	return t.Format("01/2/2006, 03:04 PM")
}

// List joins items the way English prose does: "a", "a and b",
// "a, b, and c".
func List(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}

// Currency formats an amount as US dollars with thousands separators,
// like "$1,234.56".
func Currency(amount float64) string {
	negative := amount < 0
	cents := int64(math.Round(math.Abs(amount) * 100))
	whole := cents / 100
	frac := cents % 100

	digits := fmt.Sprintf("%d", whole)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%s$%s.%02d", sign, b.String(), frac)
}

// CombineDateAndTime builds a timestamp from a "2006-01-02" date and a
// "15:04" time in the local timezone.
func CombineDateAndTime(date, clock string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04:05", date+" "+clock+":00", time.Local)
}

// OrderStatusLabel returns the display label for an order status
func OrderStatusLabel(status domain.OrderStatus) string {
	switch status {
	case domain.OrderStatusSuccess:
		return "Success"
	case domain.OrderStatusCancelledByAdmin:
		return "Cancelled by Admin"
	case domain.OrderStatusCancelledByOrganizer:
		return "Cancelled by Organizer"
	case domain.OrderStatusCancelledByParticipant:
		return "Cancelled by Participant"
	default:
		return ""
	}
}

// UserRoleLabel returns the display label for a user role
func UserRoleLabel(role domain.Role) string {
	switch role {
	case domain.RoleAdmin:
		return "Admin"
	case domain.RoleOrganizer:
		return "Organizer"
	case domain.RoleParticipant:
		return "Participant"
	default:
		return ""
	}
}

// EventStatusLabel returns the display label for an event status
func EventStatusLabel(status domain.EventStatus) string {
	switch status {
	case domain.EventStatusSuccess:
		return "Success"
	case domain.EventStatusCancelled:
		return "Cancelled"
	default:
		return ""
	}
}

// EventStatusColor returns the display color for an event status
func EventStatusColor(status domain.EventStatus) string {
	switch status {
	case domain.EventStatusSuccess:
		return "green"
	case domain.EventStatusCancelled:
		return "red"
	default:
		return ""
	}
}
