package availability

import (
	"meetsync/core/cache"
	"meetsync/core/database"
	"meetsync/core/middleware"
	"meetsync/modules/availability/controller"
	"meetsync/modules/availability/repository"
	"meetsync/modules/availability/router"
	"meetsync/modules/availability/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the availability module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) {
	repo := repository.NewAvailabilityRepository(db)
	svc := service.NewAvailabilityService(repo, cache.Get())
	ctrl := controller.NewAvailabilityController(svc)
	rtr := router.NewAvailabilityRouter(ctrl)

	rtr.Setup(e, mw)
}
