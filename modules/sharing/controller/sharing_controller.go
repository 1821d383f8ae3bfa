package controller

import (
	"meetsync/core/constants"
	"meetsync/core/controller"
	"meetsync/core/errors"
	"meetsync/core/utils"
	"meetsync/modules/sharing/dto"
	"meetsync/modules/sharing/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SharingController handles privacy settings HTTP requests
type SharingController struct {
	controller.BaseController
	SharingService service.SharingService
}

func NewSharingController(svc service.SharingService) *SharingController {
	return &SharingController{
		BaseController: controller.NewBaseController(),
		SharingService: svc,
	}
}

// getUserIDFromContext extracts user ID from JWT context
func (c *SharingController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}

	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid token data", nil)
	}

	return claims.UserID, nil
}

// GetSettings handles GET /sharing/settings
// @Summary Get sharing settings
// @Description Returns the caller's sharing settings, creating the busy_only default on first access
// @Tags Sharing
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.SharingSettingsResponse
// @Failure 401 {object} errors.AppError
// @Router /private/sharing/settings [get]
func (c *SharingController) GetSettings(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.SharingService.GetSettings(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// UpdateSettings handles PUT /sharing/settings
// @Summary Update sharing settings
// @Tags Sharing
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateSharingSettingsRequest true "New settings"
// @Success 200 {object} dto.SharingSettingsResponse
// @Failure 400 {object} errors.AppError
// @Router /private/sharing/settings [put]
func (c *SharingController) UpdateSettings(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.UpdateSharingSettingsRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.SharingService.UpdateSettings(ctx.Request().Context(), userID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Sharing settings updated")
}

// GetUserSchedule handles GET /sharing/schedule/:userId
// @Summary View another user's schedule
// @Description Returns the user's upcoming events filtered by their share level
// @Tags Sharing
// @Security BearerAuth
// @Produce json
// @Param userId path string true "Schedule owner ID"
// @Success 200 {object} dto.UserScheduleResponse
// @Failure 400 {object} errors.AppError
// @Router /private/sharing/schedule/{userId} [get]
func (c *SharingController) GetUserSchedule(ctx echo.Context) error {
	requesterID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	ownerID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid user ID")
	}

	result, appErr := c.SharingService.GetUserSchedule(ctx.Request().Context(), ownerID, requesterID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}
