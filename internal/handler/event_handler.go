package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/nvtimofeev/ticketly/internal/domain"
	"github.com/nvtimofeev/ticketly/internal/dto"
	"github.com/nvtimofeev/ticketly/internal/service"
	"github.com/nvtimofeev/ticketly/pkg/middleware"
	"github.com/nvtimofeev/ticketly/pkg/response"
)

// EventHandler handles event HTTP requests
type EventHandler struct {
	eventService service.EventService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// Create handles event creation
// POST /api/v1/events
func (h *EventHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if fieldErrors := req.Validate(); fieldErrors != nil {
		response.FieldErrors(c, fieldErrors)
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrVenueNotFound) {
			response.FieldErrors(c, map[string]string{"venueId": "Venue does not exist"})
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, dto.EventFromDomain(event))
}

// Cancel handles event cancellation
// POST /api/v1/events/cancel
func (h *EventHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}
	roleValue, _ := middleware.GetUserRole(c)

	var req dto.CancelEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if fieldErrors := req.Validate(); fieldErrors != nil {
		response.FieldErrors(c, fieldErrors)
		return
	}

	err := h.eventService.Cancel(c.Request.Context(), userID, domain.Role(roleValue), req.EventID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEventNotFound):
			response.NotFound(c, "Event not found")
		case errors.Is(err, domain.ErrEventAlreadyCancelled):
			response.Conflict(c, "Event is already cancelled")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Success(c, gin.H{"eventId": req.EventID, "status": string(domain.EventStatusCancelled)})
}
