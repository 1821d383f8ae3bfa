package controller

import (
	"time"

	"meetsync/core/constants"
	"meetsync/core/controller"
	"meetsync/core/errors"
	"meetsync/core/utils"
	"meetsync/modules/calendar/dto"
	"meetsync/modules/calendar/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CalendarController handles calendar HTTP requests
type CalendarController struct {
	controller.BaseController
	CalendarService service.CalendarService
}

func NewCalendarController(svc service.CalendarService) *CalendarController {
	return &CalendarController{
		BaseController:  controller.NewBaseController(),
		CalendarService: svc,
	}
}

// getUserIDFromContext extracts user ID from JWT context
func (c *CalendarController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
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

// GoogleAuthURL handles GET /calendar/connections/google/url
// @Summary Get the Google consent URL
// @Description Returns the OAuth consent URL used to start the connection flow
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.GoogleAuthURLResponse
// @Router /private/calendar/connections/google/url [get]
func (c *CalendarController) GoogleAuthURL(ctx echo.Context) error {
	if _, err := c.getUserIDFromContext(ctx); err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.CalendarService.GoogleAuthURL()
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// ConnectGoogle handles POST /calendar/connections/google
// @Summary Connect Google Calendar
// @Description Exchanges an OAuth authorization code and links the user's Google Calendar
// @Tags Calendar
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ConnectGoogleRequest true "OAuth code"
// @Success 200 {object} dto.CalendarConnectionResponse
// @Failure 400 {object} errors.AppError
// @Router /private/calendar/connections/google [post]
func (c *CalendarController) ConnectGoogle(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.ConnectGoogleRequest
	if err := ctx.Bind(&req); err != nil || req.Code == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.CalendarService.ConnectGoogle(ctx.Request().Context(), userID, req.Code)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Google Calendar connected")
}

// DisconnectGoogle handles DELETE /calendar/connections/google
// @Summary Disconnect Google Calendar
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Success 200 {object} controller.SuccessResponse
// @Failure 404 {object} errors.AppError
// @Router /private/calendar/connections/google [delete]
func (c *CalendarController) DisconnectGoogle(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	if appErr := c.CalendarService.DisconnectGoogle(ctx.Request().Context(), userID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Google Calendar disconnected")
}

// RequestSync handles POST /calendar/sync
// @Summary Request a calendar sync
// @Description Schedules a background sync of the user's connected calendar
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Success 200 {object} controller.SuccessResponse
// @Router /private/calendar/sync [post]
func (c *CalendarController) RequestSync(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	if appErr := c.CalendarService.RequestSync(userID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Calendar sync scheduled")
}

// GetEvents handles GET /calendar/events
// @Summary List own calendar events
// @Description Returns the user's events overlapping the given window
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Param start_date query string true "Window start (RFC3339)"
// @Param end_date query string true "Window end (RFC3339)"
// @Success 200 {array} dto.CalendarEventResponse
// @Failure 400 {object} errors.AppError
// @Router /private/calendar/events [get]
func (c *CalendarController) GetEvents(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	start, err := time.Parse(time.RFC3339, ctx.QueryParam("start_date"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid start_date format")
	}
	end, err := time.Parse(time.RFC3339, ctx.QueryParam("end_date"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid end_date format")
	}

	result, appErr := c.CalendarService.GetEvents(ctx.Request().Context(), userID, start, end)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetEvent handles GET /calendar/events/:id
// @Summary Get one calendar event
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.CalendarEventResponse
// @Failure 404 {object} errors.AppError
// @Router /private/calendar/events/{id} [get]
func (c *CalendarController) GetEvent(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	result, appErr := c.CalendarService.GetEvent(ctx.Request().Context(), userID, eventID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// DeleteEvent handles DELETE /calendar/events/:id
// @Summary Delete a calendar event
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} controller.SuccessResponse
// @Failure 404 {object} errors.AppError
// @Router /private/calendar/events/{id} [delete]
func (c *CalendarController) DeleteEvent(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	if appErr := c.CalendarService.DeleteEvent(ctx.Request().Context(), userID, eventID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Event deleted")
}

// CreateUnavailableTime handles POST /calendar/unavailable
// @Summary Create an unavailable block
// @Tags Calendar
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateUnavailableTimeRequest true "Block details"
// @Success 200 {object} dto.UnavailableTimeResponse
// @Failure 400 {object} errors.AppError
// @Router /private/calendar/unavailable [post]
func (c *CalendarController) CreateUnavailableTime(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateUnavailableTimeRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.CalendarService.CreateUnavailableTime(ctx.Request().Context(), userID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Unavailable time created")
}

// GetUnavailableTimes handles GET /calendar/unavailable
// @Summary List unavailable blocks
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.UnavailableTimeResponse
// @Router /private/calendar/unavailable [get]
func (c *CalendarController) GetUnavailableTimes(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.CalendarService.GetUnavailableTimes(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// DeleteUnavailableTime handles DELETE /calendar/unavailable/:id
// @Summary Delete an unavailable block
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Param id path string true "Block ID"
// @Success 200 {object} controller.SuccessResponse
// @Failure 404 {object} errors.AppError
// @Router /private/calendar/unavailable/{id} [delete]
func (c *CalendarController) DeleteUnavailableTime(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	blockID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid block ID")
	}

	if appErr := c.CalendarService.DeleteUnavailableTime(ctx.Request().Context(), userID, blockID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Unavailable time deleted")
}
