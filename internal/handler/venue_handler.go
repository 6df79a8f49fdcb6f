package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/nvtimofeev/ticketly/internal/dto"
	"github.com/nvtimofeev/ticketly/internal/service"
	"github.com/nvtimofeev/ticketly/pkg/response"
)

// VenueHandler handles venue HTTP requests
type VenueHandler struct {
	venueService service.VenueService
}

// NewVenueHandler creates a new VenueHandler
func NewVenueHandler(venueService service.VenueService) *VenueHandler {
	return &VenueHandler{venueService: venueService}
}

// Upsert handles venue creation and update
// POST /api/v1/venues
func (h *VenueHandler) Upsert(c *gin.Context) {
	var req dto.UpsertVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if fieldErrors := req.Validate(); fieldErrors != nil {
		response.FieldErrors(c, fieldErrors)
		return
	}

	venue, err := h.venueService.Upsert(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, dto.VenueFromDomain(venue))
}

// List handles the venue listing
// GET /api/v1/venues
func (h *VenueHandler) List(c *gin.Context) {
	venues, err := h.venueService.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	venueResponses := make([]*dto.VenueResponse, 0, len(venues))
	for _, v := range venues {
		venueResponses = append(venueResponses, dto.VenueFromDomain(v))
	}

	response.Success(c, venueResponses)
}
