package calendar

import (
	"meetsync/core/database"
	"meetsync/core/middleware"
	"meetsync/modules/calendar/controller"
	"meetsync/modules/calendar/repository"
	"meetsync/modules/calendar/router"
	"meetsync/modules/calendar/service"
	"meetsync/modules/calendar/tasks"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
)

// Init initializes the calendar module, registers routes and returns the
// task mux for the background worker
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) *asynq.ServeMux {
	repo := repository.NewCalendarRepository(db)
	svc := service.NewCalendarService(repo)
	ctrl := controller.NewCalendarController(svc)
	rtr := router.NewCalendarRouter(ctrl)

	rtr.Setup(e, mw)

	return tasks.NewMux(svc)
}
