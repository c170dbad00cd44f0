package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/vanir/internal/service"
	"github.com/labstack/echo/v4"
)

// OrderHandler handles the buyer's order routes.
type OrderHandler struct {
	checkoutService service.CheckoutService
	orderService    service.OrderService
	logger          *slog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(checkoutService service.CheckoutService, orderService service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		checkoutService: checkoutService,
		orderService:    orderService,
		logger:          logger,
	}
}

type checkoutRequest struct {
	Contact int64 `json:"contact" validate:"required,gt=0"`
}

// Create handles POST /api/v1/order, converting the basket into placed
// orders. Accepted checkouts answer 201; a stock rejection answers 206 with
// the annotated basket so the buyer sees every shortfall at once.
func (h *OrderHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return ErrorResponse(c, h.logger, err)
	}
	if err := c.Validate(&req); err != nil {
		return ErrorResponse(c, h.logger, err)
	}

	result, err := h.checkoutService.Checkout(c.Request().Context(), user.ID, req.Contact)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}

	if !result.Accepted {
		return c.JSON(http.StatusPartialContent, result.Order)
	}
	return c.JSON(http.StatusCreated, result.Order)
}

// List handles GET /api/v1/order.
func (h *OrderHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}

	orders, err := h.orderService.ListOrders(c.Request().Context(), user.ID)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// Get handles GET /api/v1/order/:id.
func (h *OrderHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}

	id, err := paramID(c, "id")
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}

	order, err := h.orderService.GetOrder(c.Request().Context(), user.ID, id)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, order)
}

// CancelSellerOrder handles DELETE /api/v1/order/seller_orders/:id.
func (h *OrderHandler) CancelSellerOrder(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}

	id, err := paramID(c, "id")
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}

	if err := h.orderService.CancelSellerOrder(c.Request().Context(), user.ID, id); err != nil {
		return ErrorResponse(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}
