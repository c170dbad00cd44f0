package handler

import (
	"strconv"

	"github.com/dukerupert/vanir/internal/domain"
	"github.com/dukerupert/vanir/internal/middleware"
	"github.com/labstack/echo/v4"
)

func currentUser(c echo.Context) (domain.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return domain.User{}, domain.Unauthorized("", "Authentication required")
	}
	return user, nil
}

func paramID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid("", "Invalid "+name)
	}
	return id, nil
}
