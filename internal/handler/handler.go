package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/vanir/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator adapts go-playground/validator to echo's Validator
// interface. Binding errors surface as EINVALID domain errors so the error
// responder maps them to 400.
type CustomValidator struct {
	validate *validator.Validate
}

// NewValidator creates the request validator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate implements echo.Validator.
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validate.Struct(i); err != nil {
		var invalid validator.ValidationErrors
		if ok := asValidationErrors(err, &invalid); ok && len(invalid) > 0 {
			field := invalid[0]
			return domain.Errorf(domain.EINVALID, "",
				"Field %q failed validation rule %q", field.Field(), field.Tag())
		}
		return domain.Invalid("", "Request validation failed")
	}
	return nil
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	v, ok := err.(validator.ValidationErrors)
	if ok {
		*target = v
	}
	return ok
}

// ErrorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EFORBIDDEN:
		return http.StatusForbidden
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ErrorBody is the JSON error envelope every endpoint returns on failure.
type ErrorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ErrorResponse writes err as a JSON error response. Internal errors are
// logged with their underlying cause and answered with a generic message.
func ErrorResponse(c echo.Context, logger *slog.Logger, err error) error {
	code := domain.ErrorCode(err)
	if code == domain.EINTERNAL {
		logger.Error("request failed",
			slog.String("method", c.Request().Method),
			slog.String("path", c.Path()),
			slog.String("error", err.Error()))
	}

	var body ErrorBody
	body.Error.Code = code
	body.Error.Message = domain.ErrorMessage(err)
	return c.JSON(ErrorCodeToHTTPStatus(code), body)
}
