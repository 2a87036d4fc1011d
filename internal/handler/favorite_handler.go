package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"carlisting/internal/service"
)

// FavoriteHandler handles favorites endpoints.
type FavoriteHandler struct {
	favoriteService service.FavoriteService
}

// NewFavoriteHandler creates a new favorite handler.
func NewFavoriteHandler(favoriteService service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// AddFavoriteRequest represents a favorite creation request.
type AddFavoriteRequest struct {
	CarID             uint `json:"car_id" validate:"required"`
	PriceChangeNotify bool `json:"price_change_notify"`
}

// Add godoc
// @Summary Favorite a car
// @Tags favorites
// @Accept json
// @Security BearerAuth
// @Param request body AddFavoriteRequest true "Favorite payload"
// @Success 201
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /favorites [post]
func (h *FavoriteHandler) Add(c echo.Context) error {
	claims, httpErr := requesterClaims(c)
	if httpErr != nil {
		return httpErr
	}
	var req AddFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.favoriteService.Add(c.Request().Context(), req.CarID, claims.Email, req.PriceChangeNotify)
	if err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusCreated)
}

// Remove godoc
// @Summary Remove a car from favorites
// @Tags favorites
// @Security BearerAuth
// @Param carId path int true "Car ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /favorites/{carId} [delete]
func (h *FavoriteHandler) Remove(c echo.Context) error {
	claims, httpErr := requesterClaims(c)
	if httpErr != nil {
		return httpErr
	}
	carID, err := strconv.ParseUint(c.Param("carId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid car id")
	}

	if err := h.favoriteService.Remove(c.Request().Context(), uint(carID), claims.Email); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// List godoc
// @Summary List the caller's favorited cars
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.FavoriteCar
// @Failure 401 {object} errors.ErrorResponse
// @Router /favorites [get]
func (h *FavoriteHandler) List(c echo.Context) error {
	claims, httpErr := requesterClaims(c)
	if httpErr != nil {
		return httpErr
	}
	favorites, err := h.favoriteService.List(c.Request().Context(), claims.Email)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, favorites)
}
