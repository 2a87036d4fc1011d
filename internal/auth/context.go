package auth

import (
	"errors"

	"github.com/labstack/echo/v4"
)

// ErrNoClaims is returned when the request carries no verified token claims.
var ErrNoClaims = errors.New("no token claims in request context")

// ClaimsFromContext extracts the verified claims stored by the JWT middleware.
func ClaimsFromContext(c echo.Context) (*Claims, error) {
	claims, ok := c.Get("user").(*Claims)
	if !ok {
		return nil, ErrNoClaims
	}
	return claims, nil
}
