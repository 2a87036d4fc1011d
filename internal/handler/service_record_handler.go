package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"carlisting/internal/model"
	"carlisting/internal/service"
)

const serviceDateLayout = "2006-01-02"

// ServiceRecordHandler handles service-record endpoints nested under a car.
type ServiceRecordHandler struct {
	recordService service.ServiceRecordService
}

// NewServiceRecordHandler creates a new service record handler.
func NewServiceRecordHandler(recordService service.ServiceRecordService) *ServiceRecordHandler {
	return &ServiceRecordHandler{recordService: recordService}
}

// ServiceRecordRequest represents a record create or full-update payload.
type ServiceRecordRequest struct {
	MileageAtService int     `json:"mileage_at_service" validate:"gte=0"`
	ServiceDate      string  `json:"service_date" validate:"required"`
	Grade            float64 `json:"grade" validate:"gte=1,lte=10"`
}

func (r *ServiceRecordRequest) toInput() (service.ServiceRecordInput, error) {
	date, err := time.Parse(serviceDateLayout, r.ServiceDate)
	if err != nil {
		return service.ServiceRecordInput{}, err
	}
	return service.ServiceRecordInput{
		MileageAtService: r.MileageAtService,
		ServiceDate:      date,
		Grade:            r.Grade,
	}, nil
}

func carIDParam(c echo.Context) (uint, *echo.HTTPError) {
	carID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid car id")
	}
	return uint(carID), nil
}

// List godoc
// @Summary List service records of a car
// @Tags service-records
// @Produce json
// @Param carId path int true "Car ID"
// @Success 200 {array} model.ServiceRecord
// @Failure 404 {object} errors.ErrorResponse
// @Router /cars/{carId}/service-records [get]
func (h *ServiceRecordHandler) List(c echo.Context) error {
	carID, httpErr := carIDParam(c)
	if httpErr != nil {
		return httpErr
	}
	records, err := h.recordService.List(c.Request().Context(), carID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, records)
}

// GetByID godoc
// @Summary Get a service record of a car
// @Tags service-records
// @Produce json
// @Param carId path int true "Car ID"
// @Param recordId path int true "Record ID"
// @Success 200 {object} model.ServiceRecord
// @Failure 404 {object} errors.ErrorResponse
// @Router /cars/{carId}/service-records/{recordId} [get]
func (h *ServiceRecordHandler) GetByID(c echo.Context) error {
	carID, httpErr := carIDParam(c)
	if httpErr != nil {
		return httpErr
	}
	recordID, err := strconv.ParseUint(c.Param("recordId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid record id")
	}
	record, svcErr := h.recordService.GetByID(c.Request().Context(), carID, uint(recordID))
	if svcErr != nil {
		return toHTTPError(svcErr)
	}
	return c.JSON(http.StatusOK, record)
}

// Create godoc
// @Summary Attach a service record to a car (seller or admin)
// @Tags service-records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param carId path int true "Car ID"
// @Param request body ServiceRecordRequest true "Record payload"
// @Success 200 {object} model.ServiceRecord
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cars/{carId}/service-records [post]
func (h *ServiceRecordHandler) Create(c echo.Context) error {
	claims, httpErr := requesterClaims(c)
	if httpErr != nil {
		return httpErr
	}
	carID, httpErr := carIDParam(c)
	if httpErr != nil {
		return httpErr
	}
	var req ServiceRecordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	input, err := req.toInput()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid service date, expected YYYY-MM-DD")
	}

	isAdmin := claims.Role == model.RoleAdmin
	record, svcErr := h.recordService.Create(c.Request().Context(), carID, input, claims.Email, isAdmin)
	if svcErr != nil {
		return toHTTPError(svcErr)
	}
	return c.JSON(http.StatusOK, record)
}

// Update godoc
// @Summary Replace a service record (seller or admin)
// @Tags service-records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param carId path int true "Car ID"
// @Param recordId path int true "Record ID"
// @Param request body ServiceRecordRequest true "Record payload"
// @Success 200 {object} model.ServiceRecord
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cars/{carId}/service-records/{recordId} [put]
func (h *ServiceRecordHandler) Update(c echo.Context) error {
	claims, httpErr := requesterClaims(c)
	if httpErr != nil {
		return httpErr
	}
	carID, httpErr := carIDParam(c)
	if httpErr != nil {
		return httpErr
	}
	recordID, err := strconv.ParseUint(c.Param("recordId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid record id")
	}
	var req ServiceRecordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	input, err := req.toInput()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid service date, expected YYYY-MM-DD")
	}

	isAdmin := claims.Role == model.RoleAdmin
	record, svcErr := h.recordService.Update(c.Request().Context(), carID, uint(recordID), input, claims.Email, isAdmin)
	if svcErr != nil {
		return toHTTPError(svcErr)
	}
	return c.JSON(http.StatusOK, record)
}

// Delete godoc
// @Summary Delete a service record (seller or admin)
// @Tags service-records
// @Security BearerAuth
// @Param carId path int true "Car ID"
// @Param recordId path int true "Record ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cars/{carId}/service-records/{recordId} [delete]
func (h *ServiceRecordHandler) Delete(c echo.Context) error {
	claims, httpErr := requesterClaims(c)
	if httpErr != nil {
		return httpErr
	}
	carID, httpErr := carIDParam(c)
	if httpErr != nil {
		return httpErr
	}
	recordID, err := strconv.ParseUint(c.Param("recordId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid record id")
	}

	isAdmin := claims.Role == model.RoleAdmin
	if err := h.recordService.Delete(c.Request().Context(), carID, uint(recordID), claims.Email, isAdmin); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
