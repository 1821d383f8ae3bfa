package controller

import (
	"meetsync/core/controller"
	"meetsync/core/errors"
	"meetsync/modules/availability/dto"
	"meetsync/modules/availability/service"

	"github.com/labstack/echo/v4"
)

// AvailabilityController handles availability HTTP requests
type AvailabilityController struct {
	controller.BaseController
	AvailabilityService service.AvailabilityServiceInterface
}

func NewAvailabilityController(svc service.AvailabilityServiceInterface) *AvailabilityController {
	return &AvailabilityController{
		BaseController:      controller.NewBaseController(),
		AvailabilityService: svc,
	}
}

// CalculateAvailability handles POST /availability/calculate
// @Summary Calculate group availability
// @Description Computes per-slot availability for a set of participants over a time window
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CalculateAvailabilityRequest true "Availability query"
// @Success 200 {object} dto.AvailabilityResponse
// @Failure 400 {object} errors.AppError
// @Failure 401 {object} errors.AppError
// @Router /private/availability/calculate [post]
func (c *AvailabilityController) CalculateAvailability(ctx echo.Context) error {
	var req dto.CalculateAvailabilityRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.AvailabilityService.CalculateAvailability(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Availability calculated")
}
