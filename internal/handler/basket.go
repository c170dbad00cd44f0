package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/vanir/internal/service"
	"github.com/labstack/echo/v4"
)

// BasketHandler handles the buyer's basket routes.
type BasketHandler struct {
	basketService service.BasketService
	logger        *slog.Logger
}

// NewBasketHandler creates a new basket handler.
func NewBasketHandler(basketService service.BasketService, logger *slog.Logger) *BasketHandler {
	return &BasketHandler{basketService: basketService, logger: logger}
}

// Get handles GET /api/v1/basket.
func (h *BasketHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}

	basket, err := h.basketService.Get(c.Request().Context(), user.ID)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, basket)
}

type addItemsRequest struct {
	Items []service.BasketItem `json:"items" validate:"required,min=1,dive"`
}

// Add handles POST /api/v1/basket. Lines for an offer already in the basket
// are replaced, not accumulated.
func (h *BasketHandler) Add(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}

	var req addItemsRequest
	if err := c.Bind(&req); err != nil {
		return ErrorResponse(c, h.logger, err)
	}
	if err := c.Validate(&req); err != nil {
		return ErrorResponse(c, h.logger, err)
	}

	basket, err := h.basketService.AddItems(c.Request().Context(), user.ID, req.Items)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, basket)
}

type removeItemsRequest struct {
	Items []int64 `json:"items" validate:"required,min=1"`
}

// Remove handles DELETE /api/v1/basket. Items name the offer ids used to add
// the lines. The removal is atomic: one unknown id rejects the whole request.
func (h *BasketHandler) Remove(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}

	var req removeItemsRequest
	if err := c.Bind(&req); err != nil {
		return ErrorResponse(c, h.logger, err)
	}
	if err := c.Validate(&req); err != nil {
		return ErrorResponse(c, h.logger, err)
	}

	basket, err := h.basketService.RemoveItems(c.Request().Context(), user.ID, req.Items)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, basket)
}
