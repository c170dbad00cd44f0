package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/vanir/internal/service"
	"github.com/labstack/echo/v4"
)

// ProductHandler handles the buyer-facing catalogue routes.
type ProductHandler struct {
	productService service.ProductService
	logger         *slog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(productService service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{productService: productService, logger: logger}
}

// List handles GET /api/v1/products: offers of open shops with stock.
func (h *ProductHandler) List(c echo.Context) error {
	offers, err := h.productService.ListOffers(c.Request().Context())
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, offers)
}

// Get handles GET /api/v1/products/:id.
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}

	offer, err := h.productService.GetOffer(c.Request().Context(), id)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, offer)
}
