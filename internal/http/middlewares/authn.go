package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"task-market.com/task-market/internal/auth"
	apperrors "task-market.com/task-market/internal/errors"
)

const identityKey = "identity"

// Authn resolves the bearer token to an identity and stores it on the
// request context. Routes behind it can assume IdentityFrom succeeds.
func Authn(authenticator auth.Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found {
				return echo.NewHTTPError(apperrors.ErrAuthenticationFailed.StatusCode, apperrors.ErrAuthenticationFailed.Message)
			}

			identity, err := authenticator.Authenticate(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(apperrors.StatusCode(err), err.Error())
			}

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

func IdentityFrom(c echo.Context) *auth.Identity {
	identity, _ := c.Get(identityKey).(*auth.Identity)
	return identity
}
