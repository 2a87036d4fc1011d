package router

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"carlisting/internal/auth"
	apperrors "carlisting/internal/errors"
	"carlisting/internal/repository"
)

// BlockedUserMiddleware rejects authenticated requests from blocked accounts
// before they reach any handler. Runs after the JWT middleware.
func BlockedUserMiddleware(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := auth.ClaimsFromContext(c)
			if err != nil {
				return next(c)
			}

			user, err := userRepo.FindByEmail(c.Request().Context(), claims.Email)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// Token for an account that no longer exists.
					return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
						Error: "unknown account",
						Code:  "UNAUTHENTICATED",
					})
				}
				return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
					Error: "internal server error",
					Code:  "INTERNAL_ERROR",
				})
			}
			if user.IsBlocked {
				return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
					Error: apperrors.ErrUserBlocked.Error(),
					Code:  "USER_BLOCKED",
				})
			}
			return next(c)
		}
	}
}
