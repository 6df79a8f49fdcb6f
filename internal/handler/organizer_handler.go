package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/nvtimofeev/ticketly/internal/domain"
	"github.com/nvtimofeev/ticketly/internal/dto"
	"github.com/nvtimofeev/ticketly/internal/service"
	"github.com/nvtimofeev/ticketly/pkg/response"
)

// OrganizerHandler handles organizer account HTTP requests
type OrganizerHandler struct {
	authService service.AuthService
}

// NewOrganizerHandler creates a new OrganizerHandler
func NewOrganizerHandler(authService service.AuthService) *OrganizerHandler {
	return &OrganizerHandler{authService: authService}
}

// Create handles organizer account creation
// POST /api/v1/organizers
func (h *OrganizerHandler) Create(c *gin.Context) {
	var req dto.CreateOrganizerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if fieldErrors := req.Validate(); fieldErrors != nil {
		response.FieldErrors(c, fieldErrors)
		return
	}

	user, err := h.authService.CreateOrganizer(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			response.FieldErrors(c, map[string]string{"email": "Email is already registered"})
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, dto.UserFromDomain(user))
}
