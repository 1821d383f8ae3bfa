package controller

import (
	"meetsync/core/constants"
	"meetsync/core/controller"
	"meetsync/core/errors"
	"meetsync/core/utils"
	"meetsync/modules/meeting/dto"
	"meetsync/modules/meeting/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// MeetingController handles meeting HTTP requests
type MeetingController struct {
	controller.BaseController
	MeetingService service.MeetingServiceInterface
}

// NewMeetingController creates a new controller
func NewMeetingController(svc service.MeetingServiceInterface) *MeetingController {
	return &MeetingController{
		BaseController: controller.NewBaseController(),
		MeetingService: svc,
	}
}

// getUserIDFromContext extracts user ID from JWT context
func (c *MeetingController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
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

// CreateMeeting handles POST /meetings
// @Summary Create a meeting
// @Description Creates a meeting with a shareable invite code; the creator joins automatically
// @Tags Meeting
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateMeetingRequest true "Meeting details"
// @Success 200 {object} dto.MeetingResponse
// @Failure 400 {object} errors.AppError
// @Router /private/meetings [post]
func (c *MeetingController) CreateMeeting(ctx echo.Context) error {
	creatorID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateMeetingRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.MeetingService.CreateMeeting(ctx.Request().Context(), creatorID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Meeting created")
}

// GetMeeting handles GET /meetings/:id
// @Summary Get meeting detail
// @Tags Meeting
// @Security BearerAuth
// @Produce json
// @Param id path string true "Meeting ID"
// @Success 200 {object} dto.MeetingDetailResponse
// @Failure 404 {object} errors.AppError
// @Router /private/meetings/{id} [get]
func (c *MeetingController) GetMeeting(ctx echo.Context) error {
	meetingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid meeting ID")
	}

	result, appErr := c.MeetingService.GetMeetingDetail(ctx.Request().Context(), meetingID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetMyMeetings handles GET /meetings
// @Summary List own meetings
// @Tags Meeting
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.MeetingResponse
// @Router /private/meetings [get]
func (c *MeetingController) GetMyMeetings(ctx echo.Context) error {
	creatorID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.MeetingService.GetMyMeetings(ctx.Request().Context(), creatorID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// JoinMeeting handles POST /meetings/join
// @Summary Join a meeting by invite code
// @Tags Meeting
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.JoinMeetingRequest true "Invite code"
// @Success 200 {object} dto.MeetingDetailResponse
// @Failure 404 {object} errors.AppError
// @Router /private/meetings/join [post]
func (c *MeetingController) JoinMeeting(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.JoinMeetingRequest
	if err := ctx.Bind(&req); err != nil || req.InviteCode == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.MeetingService.JoinMeetingByCode(ctx.Request().Context(), userID, req.InviteCode)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Meeting joined")
}

// GetMeetingByCode handles GET /meetings/code/:code
// @Summary Get meeting by invite code
// @Tags Meeting
// @Security BearerAuth
// @Produce json
// @Param code path string true "Invite code"
// @Success 200 {object} dto.MeetingDetailResponse
// @Failure 404 {object} errors.AppError
// @Router /private/meetings/code/{code} [get]
func (c *MeetingController) GetMeetingByCode(ctx echo.Context) error {
	result, appErr := c.MeetingService.GetMeetingByCode(ctx.Request().Context(), ctx.Param("code"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// UpdateParticipantStatus handles PUT /meetings/:id/status
// @Summary Update own RSVP status
// @Tags Meeting
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Meeting ID"
// @Param request body dto.UpdateParticipantStatusRequest true "New status"
// @Success 200 {object} controller.SuccessResponse
// @Failure 404 {object} errors.AppError
// @Router /private/meetings/{id}/status [put]
func (c *MeetingController) UpdateParticipantStatus(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	meetingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid meeting ID")
	}

	var req dto.UpdateParticipantStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	if appErr := c.MeetingService.UpdateParticipantStatus(ctx.Request().Context(), meetingID, userID, req.Status); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Participant status updated")
}

// GetMeetingParticipants handles GET /meetings/code/:code/participants
// @Summary List meeting participants
// @Tags Meeting
// @Security BearerAuth
// @Produce json
// @Param code path string true "Invite code"
// @Success 200 {array} dto.ParticipantResponse
// @Failure 404 {object} errors.AppError
// @Router /private/meetings/code/{code}/participants [get]
func (c *MeetingController) GetMeetingParticipants(ctx echo.Context) error {
	result, appErr := c.MeetingService.GetMeetingParticipants(ctx.Request().Context(), ctx.Param("code"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetMeetingAvailability handles GET /meetings/code/:code/availability
// @Summary Ranked meeting availability
// @Description Returns slots over the meeting window ranked by how many participants are free
// @Tags Meeting
// @Security BearerAuth
// @Produce json
// @Param code path string true "Invite code"
// @Success 200 {object} dto.MeetingAvailabilityResponse
// @Failure 404 {object} errors.AppError
// @Router /private/meetings/code/{code}/availability [get]
func (c *MeetingController) GetMeetingAvailability(ctx echo.Context) error {
	result, appErr := c.MeetingService.GetMeetingAvailability(ctx.Request().Context(), ctx.Param("code"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}
