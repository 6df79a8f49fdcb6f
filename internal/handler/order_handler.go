package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nvtimofeev/ticketly/internal/domain"
	"github.com/nvtimofeev/ticketly/internal/dto"
	"github.com/nvtimofeev/ticketly/internal/service"
	"github.com/nvtimofeev/ticketly/pkg/middleware"
	"github.com/nvtimofeev/ticketly/pkg/response"
)

// OrderHandler handles order HTTP requests
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create handles ticket purchase
// POST /api/v1/orders
func (h *OrderHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if fieldErrors := req.Validate(); fieldErrors != nil {
		response.FieldErrors(c, fieldErrors)
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEventNotFound):
			response.FieldErrors(c, map[string]string{"eventId": "Event does not exist"})
		case errors.Is(err, domain.ErrEventCancelled):
			response.Conflict(c, "Event is cancelled")
		case errors.Is(err, domain.ErrEventAlreadyStarted):
			response.Conflict(c, "Event has already started")
		case errors.Is(err, domain.ErrCapacityExceeded):
			response.Conflict(c, "Not enough tickets left for this event")
		case errors.Is(err, domain.ErrPaymentDeclined):
			response.Error(c, http.StatusPaymentRequired, "PAYMENT_DECLINED", "Payment was declined", "")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, dto.OrderFromDomain(order))
}

// Cancel handles order cancellation
// POST /api/v1/orders/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}
	roleValue, _ := middleware.GetUserRole(c)

	var req dto.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if fieldErrors := req.Validate(); fieldErrors != nil {
		response.FieldErrors(c, fieldErrors)
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), userID, domain.Role(roleValue), req.OrderID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			response.NotFound(c, "Order not found")
		case errors.Is(err, domain.ErrNotOrderOwner):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Order belongs to another participant", "")
		case errors.Is(err, domain.ErrOrderAlreadyCancelled):
			response.Conflict(c, "Order is already cancelled")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Success(c, dto.OrderFromDomain(order))
}

// List handles the participant's order listing
// GET /api/v1/orders
func (h *OrderHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	orders, err := h.orderService.ListByParticipant(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	orderResponses := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		orderResponses = append(orderResponses, dto.OrderFromDomain(o))
	}

	response.Success(c, orderResponses)
}
