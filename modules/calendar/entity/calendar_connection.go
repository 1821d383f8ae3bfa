package entity

import (
	"time"

	"meetsync/core/entity"

	"github.com/google/uuid"
)

// CalendarConnection stores the OAuth credentials linking a user to an
// external calendar provider
type CalendarConnection struct {
	entity.BaseEntity
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	Provider     string    `db:"provider" json:"provider"`
	AccessToken  string    `db:"access_token" json:"-"`
	RefreshToken string    `db:"refresh_token" json:"-"`
	TokenExpiry  time.Time `db:"token_expiry" json:"token_expiry"`
	CalendarID   string    `db:"calendar_id" json:"calendar_id"`
}

const ProviderGoogle = "google"
