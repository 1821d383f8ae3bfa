package router

import (
	"meetsync/core/middleware"
	"meetsync/modules/meeting/controller"

	"github.com/labstack/echo/v4"
)

// MeetingRouter handles meeting routes
type MeetingRouter struct {
	MeetingController *controller.MeetingController
}

func NewMeetingRouter(meetingController *controller.MeetingController) *MeetingRouter {
	return &MeetingRouter{
		MeetingController: meetingController,
	}
}

// Setup registers meeting routes
func (r *MeetingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	meetingRoutes := privateRoutes.Group("/meetings", mw.AuthMiddleware())
	meetingRoutes.POST("", r.MeetingController.CreateMeeting)
	meetingRoutes.GET("", r.MeetingController.GetMyMeetings)
	meetingRoutes.POST("/join", r.MeetingController.JoinMeeting)
	meetingRoutes.GET("/code/:code", r.MeetingController.GetMeetingByCode)
	meetingRoutes.GET("/code/:code/participants", r.MeetingController.GetMeetingParticipants)
	meetingRoutes.GET("/code/:code/availability", r.MeetingController.GetMeetingAvailability)
	meetingRoutes.GET("/:id", r.MeetingController.GetMeeting)
	meetingRoutes.PUT("/:id/status", r.MeetingController.UpdateParticipantStatus)
}
