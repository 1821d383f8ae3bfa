package sharing

import (
	"meetsync/core/database"
	"meetsync/core/middleware"
	calendarRepo "meetsync/modules/calendar/repository"
	"meetsync/modules/sharing/controller"
	"meetsync/modules/sharing/repository"
	"meetsync/modules/sharing/router"
	"meetsync/modules/sharing/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the sharing module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) {
	repo := repository.NewSharingRepository(db)
	svc := service.NewSharingService(repo, calendarRepo.NewCalendarRepository(db))
	ctrl := controller.NewSharingController(svc)
	rtr := router.NewSharingRouter(ctrl)

	rtr.Setup(e, mw)
}
