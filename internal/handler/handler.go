package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"carlisting/internal/auth"
	apperrors "carlisting/internal/errors"
)

// toHTTPError translates a domain error into an echo error with the standard
// JSON body.
func toHTTPError(err error) *echo.HTTPError {
	he := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}

// requesterClaims extracts the verified identity or fails with 401.
func requesterClaims(c echo.Context) (*auth.Claims, *echo.HTTPError) {
	claims, err := auth.ClaimsFromContext(c)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
			Error: "missing or invalid token",
			Code:  "UNAUTHENTICATED",
		})
	}
	return claims, nil
}
