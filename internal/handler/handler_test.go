package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dukerupert/vanir/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodeToHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{domain.EINVALID, http.StatusBadRequest},
		{domain.EUNAUTHORIZED, http.StatusUnauthorized},
		{domain.EFORBIDDEN, http.StatusForbidden},
		{domain.ENOTFOUND, http.StatusNotFound},
		{domain.ECONFLICT, http.StatusConflict},
		{domain.EINTERNAL, http.StatusInternalServerError},
		{"unknown_code", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, ErrorCodeToHTTPStatus(tt.code))
		})
	}
}

func TestErrorResponse(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "not found",
			err:            domain.NotFound("order.get", "seller order", 42),
			expectedStatus: http.StatusNotFound,
			expectedCode:   domain.ENOTFOUND,
		},
		{
			name:           "validation",
			err:            domain.Invalid("basket.add", "No items provided"),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   domain.EINVALID,
		},
		{
			name:           "conflict",
			err:            domain.Conflict("partner.update", "Illegal order state transition"),
			expectedStatus: http.StatusConflict,
			expectedCode:   domain.ECONFLICT,
		},
		{
			name:           "internal hides details",
			err:            domain.Internal(assert.AnError, "checkout", "tx failed"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   domain.EINTERNAL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			require.NoError(t, ErrorResponse(c, logger, tt.err))
			assert.Equal(t, tt.expectedStatus, rec.Code)

			var body ErrorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedCode, body.Error.Code)
			if tt.expectedCode == domain.EINTERNAL {
				assert.NotContains(t, body.Error.Message, "tx failed")
			} else {
				assert.NotEmpty(t, body.Error.Message)
			}
		})
	}
}
