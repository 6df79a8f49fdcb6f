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

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles participant registration
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if fieldErrors := req.Validate(); fieldErrors != nil {
		response.FieldErrors(c, fieldErrors)
		return
	}

	result, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			response.FieldErrors(c, map[string]string{"email": "Email is already registered"})
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// Login handles user login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if fieldErrors := req.Validate(); fieldErrors != nil {
		response.FieldErrors(c, fieldErrors)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			response.Unauthorized(c, "Invalid email or password")
			return
		}
		response.InternalError(c)
		return
	}

	response.Success(c, result)
}

// Me returns the authenticated user
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			response.Unauthorized(c, "Authentication required")
			return
		}
		response.InternalError(c)
		return
	}

	response.Success(c, dto.UserFromDomain(user))
}
