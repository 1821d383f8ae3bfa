package auth

import (
	"meetsync/core/database"
	"meetsync/core/middleware"
	"meetsync/modules/auth/controller"
	"meetsync/modules/auth/repository"
	"meetsync/modules/auth/router"
	"meetsync/modules/auth/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the auth module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) {
	repo := repository.NewAuthRepository(db)
	svc := service.NewAuthService(repo)
	ctrl := controller.NewAuthController(svc)
	rtr := router.NewAuthRouter(ctrl)

	rtr.Setup(e, mw)
}
