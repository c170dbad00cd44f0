package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/vanir/internal/service"
	"github.com/labstack/echo/v4"
)

// ContactHandler handles the buyer's delivery contact routes.
type ContactHandler struct {
	contactService service.ContactService
	logger         *slog.Logger
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contactService service.ContactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{contactService: contactService, logger: logger}
}

// List handles GET /api/v1/user/contacts.
func (h *ContactHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}

	contacts, err := h.contactService.List(c.Request().Context(), user.ID)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, contacts)
}

// Create handles POST /api/v1/user/contacts.
func (h *ContactHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}

	var req service.ContactParams
	if err := c.Bind(&req); err != nil {
		return ErrorResponse(c, h.logger, err)
	}
	if err := c.Validate(&req); err != nil {
		return ErrorResponse(c, h.logger, err)
	}

	contact, err := h.contactService.Create(c.Request().Context(), user.ID, req)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, contact)
}

// Update handles PUT /api/v1/user/contacts/:id.
func (h *ContactHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}

	id, err := paramID(c, "id")
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}

	var req service.ContactParams
	if err := c.Bind(&req); err != nil {
		return ErrorResponse(c, h.logger, err)
	}
	if err := c.Validate(&req); err != nil {
		return ErrorResponse(c, h.logger, err)
	}

	contact, err := h.contactService.Update(c.Request().Context(), user.ID, id, req)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, contact)
}

// Delete handles DELETE /api/v1/user/contacts/:id.
func (h *ContactHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}

	id, err := paramID(c, "id")
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}

	if err := h.contactService.Delete(c.Request().Context(), user.ID, id); err != nil {
		return ErrorResponse(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}
