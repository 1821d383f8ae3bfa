package meeting

import (
	"meetsync/core/database"
	"meetsync/core/middleware"
	availabilityRepo "meetsync/modules/availability/repository"
	"meetsync/modules/meeting/controller"
	"meetsync/modules/meeting/repository"
	"meetsync/modules/meeting/router"
	"meetsync/modules/meeting/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the meeting module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) {
	repo := repository.NewMeetingRepository(db)
	svc := service.NewMeetingService(repo, availabilityRepo.NewAvailabilityRepository(db))
	ctrl := controller.NewMeetingController(svc)
	rtr := router.NewMeetingRouter(ctrl)

	rtr.Setup(e, mw)
}
