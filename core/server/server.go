package server

import (
	"fmt"
	"net/http"

	"meetsync/core/cache"
	"meetsync/core/config"
	"meetsync/core/database"
	"meetsync/core/logger"
	"meetsync/core/middleware"
	"meetsync/core/queue"
	"meetsync/modules/auth"
	"meetsync/modules/availability"
	"meetsync/modules/calendar"
	"meetsync/modules/meeting"
	"meetsync/modules/sharing"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Run boots the API server: config, database, redis, task queue, module
// routes and the background worker. Blocks until the listener stops.
func Run() error {
	cfg, err := config.GetSafe()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.InitDB(database.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.Name,
	})
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}

	if _, err := cache.Init(cfg.Redis); err != nil {
		// Caching is best effort; availability falls back to computing
		// every request.
		logger.Warn("Server:Run:CacheInit", "error", err)
	}

	queue.InitClient(cfg.Redis)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			logger.Info("Request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
			)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	mw := middleware.NewMiddleware()

	auth.Init(e, db, mw)
	taskMux := calendar.Init(e, db, mw)
	availability.Init(e, db, mw)
	meeting.Init(e, db, mw)
	sharing.Init(e, db, mw)

	go func() {
		if err := queue.RunWorker(cfg.Redis, taskMux); err != nil {
			logger.Error("Server:Run:Worker", "error", err)
		}
	}()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("Server:Run:Listening", "addr", addr, "env", cfg.Server.Env)
	return e.Start(addr)
}
