package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"carlisting/internal/model"
	"carlisting/internal/service"
)

// CarHandler handles car listing endpoints.
type CarHandler struct {
	carService service.CarService
}

// NewCarHandler creates a new car handler.
func NewCarHandler(carService service.CarService) *CarHandler {
	return &CarHandler{carService: carService}
}

// CarRequest represents a car create or full-update payload.
type CarRequest struct {
	Price              decimal.Decimal `json:"price" validate:"required"`
	Brand              string          `json:"brand" validate:"required,max=100"`
	Model              string          `json:"model" validate:"required,max=100"`
	Color              *string         `json:"color" validate:"omitempty,max=50"`
	Year               int             `json:"year" validate:"required,gte=1886"`
	VIN                *string         `json:"vin" validate:"omitempty,len=17"`
	EngineDisplacement *float64        `json:"engine_displacement" validate:"omitempty,gt=0"`
	EnginePower        *float64        `json:"engine_power" validate:"omitempty,gt=0"`
	Mileage            *int            `json:"mileage" validate:"omitempty,gte=0"`
	Description        *string         `json:"description"`
	Status             string          `json:"status" validate:"omitempty,oneof=active sold reserved"`
}

func (r *CarRequest) toInput() service.CarInput {
	return service.CarInput{
		Price:              r.Price,
		Brand:              r.Brand,
		Model:              r.Model,
		Color:              r.Color,
		Year:               r.Year,
		VIN:                r.VIN,
		EngineDisplacement: r.EngineDisplacement,
		EnginePower:        r.EnginePower,
		Mileage:            r.Mileage,
		Description:        r.Description,
		Status:             model.CarStatus(r.Status),
	}
}

// List godoc
// @Summary List all car listings
// @Tags cars
// @Produce json
// @Success 200 {array} model.Car
// @Router /cars [get]
func (h *CarHandler) List(c echo.Context) error {
	cars, err := h.carService.List(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, cars)
}

// GetByID godoc
// @Summary Get a car listing by id
// @Tags cars
// @Produce json
// @Param id path int true "Car ID"
// @Success 200 {object} model.Car
// @Failure 404 {object} errors.ErrorResponse
// @Router /cars/{id} [get]
func (h *CarHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	car, svcErr := h.carService.GetByID(c.Request().Context(), uint(id))
	if svcErr != nil {
		return toHTTPError(svcErr)
	}
	return c.JSON(http.StatusOK, car)
}

// Create godoc
// @Summary Create a car listing
// @Tags cars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CarRequest true "Car payload"
// @Success 200 {object} model.Car
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /cars [post]
func (h *CarHandler) Create(c echo.Context) error {
	claims, httpErr := requesterClaims(c)
	if httpErr != nil {
		return httpErr
	}
	var req CarRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	car, err := h.carService.Create(c.Request().Context(), req.toInput(), claims.Email)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, car)
}

// Update godoc
// @Summary Replace a car listing (seller or admin)
// @Tags cars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Car ID"
// @Param request body CarRequest true "Car payload"
// @Success 200 {object} model.Car
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cars/{id} [put]
func (h *CarHandler) Update(c echo.Context) error {
	claims, httpErr := requesterClaims(c)
	if httpErr != nil {
		return httpErr
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req CarRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	car, svcErr := h.carService.Update(c.Request().Context(), req.toInput(), uint(id), claims.Email)
	if svcErr != nil {
		return toHTTPError(svcErr)
	}
	return c.JSON(http.StatusOK, car)
}

// Delete godoc
// @Summary Delete a car listing and its dependent rows (seller or admin)
// @Tags cars
// @Security BearerAuth
// @Param id path int true "Car ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cars/{id} [delete]
func (h *CarHandler) Delete(c echo.Context) error {
	claims, httpErr := requesterClaims(c)
	if httpErr != nil {
		return httpErr
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	isAdmin := claims.Role == model.RoleAdmin
	if err := h.carService.Delete(c.Request().Context(), uint(id), claims.Email, isAdmin); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
