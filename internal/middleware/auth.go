package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dukerupert/vanir/internal/domain"
	"github.com/dukerupert/vanir/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// userContextKey is the echo context key the authenticated user is stored
// under.
const userContextKey = "auth.user"

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func authError(c echo.Context, status int, code, message string) error {
	var body errorBody
	body.Error.Code = code
	body.Error.Message = message
	return c.JSON(status, body)
}

// TokenAuth authenticates requests carrying an "Authorization: Token <key>"
// header against the auth_tokens table and stores the user on the context.
func TokenAuth(q repository.Querier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, key, found := strings.Cut(header, " ")
			if !found || scheme != "Token" || key == "" {
				return authError(c, http.StatusUnauthorized,
					domain.EUNAUTHORIZED, "Authentication required")
			}

			row, err := q.GetUserByToken(c.Request().Context(), key)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return authError(c, http.StatusUnauthorized,
						domain.EUNAUTHORIZED, "Invalid token")
				}
				return err
			}

			c.Set(userContextKey, domain.User{
				ID:        row.ID,
				Email:     row.Email,
				FirstName: row.FirstName,
				LastName:  row.LastName,
				Type:      domain.UserType(row.Type),
			})
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user, or false when the request
// never passed TokenAuth.
func CurrentUser(c echo.Context) (domain.User, bool) {
	user, ok := c.Get(userContextKey).(domain.User)
	return user, ok
}

// SetCurrentUser injects a user into the context. Exposed for handler tests.
func SetCurrentUser(c echo.Context, user domain.User) {
	c.Set(userContextKey, user)
}

// RequirePartner rejects users that do not own a shop-side account.
func RequirePartner() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return authError(c, http.StatusUnauthorized,
					domain.EUNAUTHORIZED, "Authentication required")
			}
			if user.Type != domain.UserTypeSeller {
				return authError(c, http.StatusForbidden,
					domain.EFORBIDDEN, "Only shops can do this")
			}
			return next(c)
		}
	}
}
