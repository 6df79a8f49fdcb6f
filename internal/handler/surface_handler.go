package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nvtimofeev/ticketly/internal/domain"
	"github.com/nvtimofeev/ticketly/internal/dto"
	"github.com/nvtimofeev/ticketly/internal/service"
	"github.com/nvtimofeev/ticketly/pkg/middleware"
	"github.com/nvtimofeev/ticketly/pkg/response"
)

// SurfaceHandler serves the per-role home surfaces. A user landing on
// another role's surface is redirected to their own with 307, the
// browser retries the same method there.
type SurfaceHandler struct {
	authService  service.AuthService
	eventService service.EventService
	venueService service.VenueService
	orderService service.OrderService
}

// NewSurfaceHandler creates a new SurfaceHandler
func NewSurfaceHandler(
	authService service.AuthService,
	eventService service.EventService,
	venueService service.VenueService,
	orderService service.OrderService,
) *SurfaceHandler {
	return &SurfaceHandler{
		authService:  authService,
		eventService: eventService,
		venueService: venueService,
		orderService: orderService,
	}
}

// redirectMismatch sends the user to their own surface when they are
// not allowed on this one. Returns false when the request may proceed.
func (h *SurfaceHandler) redirectMismatch(c *gin.Context, want domain.Role) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return "", false
	}

	roleValue, _ := middleware.GetUserRole(c)
	role := domain.Role(roleValue)
	if !role.Valid() {
		response.Unauthorized(c, "Authentication required")
		return "", false
	}

	if role != want {
		c.Redirect(http.StatusTemporaryRedirect, role.HomePath())
		c.Abort()
		return "", false
	}

	return userID, true
}

// Admin serves the admin surface: every event, every venue and the
// organizer accounts
// GET /admin
func (h *SurfaceHandler) Admin(c *gin.Context) {
	_, ok := h.redirectMismatch(c, domain.RoleAdmin)
	if !ok {
		return
	}

	events, err := h.eventService.ListAll(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	venues, err := h.venueService.ListWithEvents(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	organizers, err := h.authService.ListOrganizers(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	eventResponses := make([]*dto.EventResponse, 0, len(events))
	for _, e := range events {
		eventResponses = append(eventResponses, dto.EventFromDomain(e))
	}
	venueResponses := make([]*dto.VenueResponse, 0, len(venues))
	for _, v := range venues {
		venueResponses = append(venueResponses, dto.VenueFromDomain(v))
	}
	organizerResponses := make([]*dto.UserResponse, 0, len(organizers))
	for _, u := range organizers {
		organizerResponses = append(organizerResponses, dto.UserFromDomain(u))
	}

	response.Success(c, gin.H{
		"events":     eventResponses,
		"venues":     venueResponses,
		"organizers": organizerResponses,
	})
}

// Organizer serves the organizer surface: their events with orders,
// plus the venue list for creating new events
// GET /organizer
func (h *SurfaceHandler) Organizer(c *gin.Context) {
	userID, ok := h.redirectMismatch(c, domain.RoleOrganizer)
	if !ok {
		return
	}

	events, err := h.eventService.ListByOrganizer(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	venues, err := h.venueService.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	eventResponses := make([]*dto.EventResponse, 0, len(events))
	for _, e := range events {
		eventResponses = append(eventResponses, dto.EventFromDomain(e))
	}
	venueResponses := make([]*dto.VenueResponse, 0, len(venues))
	for _, v := range venues {
		venueResponses = append(venueResponses, dto.VenueFromDomain(v))
	}

	response.Success(c, gin.H{
		"events": eventResponses,
		"venues": venueResponses,
	})
}

// Participant serves the participant surface: upcoming events plus
// their own orders and payments
// GET /participant
func (h *SurfaceHandler) Participant(c *gin.Context) {
	userID, ok := h.redirectMismatch(c, domain.RoleParticipant)
	if !ok {
		return
	}

	events, err := h.eventService.ListActive(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	orders, err := h.orderService.ListByParticipant(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	eventResponses := make([]*dto.EventResponse, 0, len(events))
	for _, e := range events {
		eventResponses = append(eventResponses, dto.EventFromDomain(e))
	}
	orderResponses := make([]*dto.OrderResponse, 0, len(orders))
	paymentResponses := make([]*dto.PaymentResponse, 0, len(orders))
	for _, o := range orders {
		orderResponses = append(orderResponses, dto.OrderFromDomain(o))
		if o.Payment != nil {
			paymentResponses = append(paymentResponses, dto.PaymentFromDomain(o.Payment))
		}
	}

	response.Success(c, gin.H{
		"events":   eventResponses,
		"orders":   orderResponses,
		"payments": paymentResponses,
	})
}
