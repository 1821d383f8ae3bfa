package constants

import "time"

// Context keys
const (
	ContextTokenData = "token_data"
)

// Database connection pool settings
const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 10
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"
)

// Cache keys and TTLs
const (
	RedisKeyAvailability = "availability:"

	AvailabilityCacheTTL = 2 * time.Minute
)

// Asynq task types
const (
	TaskCalendarSync = "calendar:sync"
)
