package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/vanir/internal/service"
	"github.com/labstack/echo/v4"
)

// PartnerHandler handles the shop-side routes.
type PartnerHandler struct {
	partnerService service.PartnerService
	logger         *slog.Logger
}

// NewPartnerHandler creates a new partner handler.
func NewPartnerHandler(partnerService service.PartnerService, logger *slog.Logger) *PartnerHandler {
	return &PartnerHandler{partnerService: partnerService, logger: logger}
}

// GetState handles GET /api/v1/partner/state.
func (h *PartnerHandler) GetState(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}

	shop, err := h.partnerService.GetShop(c.Request().Context(), user.ID)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, shop)
}

type setStateRequest struct {
	State *bool `json:"state" validate:"required"`
}

// SetState handles POST /api/v1/partner/state, opening or closing the shop.
func (h *PartnerHandler) SetState(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}

	var req setStateRequest
	if err := c.Bind(&req); err != nil {
		return ErrorResponse(c, h.logger, err)
	}
	if err := c.Validate(&req); err != nil {
		return ErrorResponse(c, h.logger, err)
	}

	shop, err := h.partnerService.SetShopOpen(c.Request().Context(), user.ID, *req.State)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, shop)
}

// ListOffers handles GET /api/v1/partner/offers.
func (h *PartnerHandler) ListOffers(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}

	offers, err := h.partnerService.ListShopOffers(c.Request().Context(), user.ID)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, offers)
}

// ListOrders handles GET /api/v1/partner/orders.
func (h *PartnerHandler) ListOrders(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}

	orders, err := h.partnerService.ListShopOrders(c.Request().Context(), user.ID)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /api/v1/partner/orders/:id.
func (h *PartnerHandler) GetOrder(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}

	id, err := paramID(c, "id")
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}

	order, err := h.partnerService.GetShopOrder(c.Request().Context(), user.ID, id)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, order)
}

// UpdateOrder handles PATCH /api/v1/partner/orders/:id. Accepts a state
// transition, a shipping price change, or both in one request.
func (h *PartnerHandler) UpdateOrder(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}

	id, err := paramID(c, "id")
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}

	var req service.UpdateShopOrderParams
	if err := c.Bind(&req); err != nil {
		return ErrorResponse(c, h.logger, err)
	}
	if err := c.Validate(&req); err != nil {
		return ErrorResponse(c, h.logger, err)
	}

	order, err := h.partnerService.UpdateShopOrder(c.Request().Context(), user.ID, id, req)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, order)
}
