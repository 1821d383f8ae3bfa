package router

import (
	"meetsync/core/middleware"
	"meetsync/modules/calendar/controller"

	"github.com/labstack/echo/v4"
)

// CalendarRouter handles calendar routes
type CalendarRouter struct {
	CalendarController *controller.CalendarController
}

func NewCalendarRouter(calendarController *controller.CalendarController) *CalendarRouter {
	return &CalendarRouter{
		CalendarController: calendarController,
	}
}

// Setup registers calendar routes
func (r *CalendarRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	calendarRoutes := privateRoutes.Group("/calendar", mw.AuthMiddleware())
	calendarRoutes.GET("/connections/google/url", r.CalendarController.GoogleAuthURL)
	calendarRoutes.POST("/connections/google", r.CalendarController.ConnectGoogle)
	calendarRoutes.DELETE("/connections/google", r.CalendarController.DisconnectGoogle)
	calendarRoutes.POST("/sync", r.CalendarController.RequestSync)
	calendarRoutes.GET("/events", r.CalendarController.GetEvents)
	calendarRoutes.GET("/events/:id", r.CalendarController.GetEvent)
	calendarRoutes.DELETE("/events/:id", r.CalendarController.DeleteEvent)
	calendarRoutes.POST("/unavailable", r.CalendarController.CreateUnavailableTime)
	calendarRoutes.GET("/unavailable", r.CalendarController.GetUnavailableTimes)
	calendarRoutes.DELETE("/unavailable/:id", r.CalendarController.DeleteUnavailableTime)
}
