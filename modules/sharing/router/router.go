package router

import (
	"meetsync/core/middleware"
	"meetsync/modules/sharing/controller"

	"github.com/labstack/echo/v4"
)

// SharingRouter handles sharing routes
type SharingRouter struct {
	SharingController *controller.SharingController
}

func NewSharingRouter(sharingController *controller.SharingController) *SharingRouter {
	return &SharingRouter{
		SharingController: sharingController,
	}
}

// Setup registers sharing routes
func (r *SharingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	sharingRoutes := privateRoutes.Group("/sharing", mw.AuthMiddleware())
	sharingRoutes.GET("/settings", r.SharingController.GetSettings)
	sharingRoutes.PUT("/settings", r.SharingController.UpdateSettings)
	sharingRoutes.GET("/schedule/:userId", r.SharingController.GetUserSchedule)
}
