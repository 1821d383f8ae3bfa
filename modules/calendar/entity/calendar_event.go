package entity

import (
	"time"

	"meetsync/core/entity"

	"github.com/google/uuid"
)

// CalendarEvent is one normalized interval on a user's calendar. Events
// synced from an external provider carry the provider's event ID so
// repeated syncs upsert instead of duplicating.
type CalendarEvent struct {
	entity.BaseEntity
	UserID        uuid.UUID  `db:"user_id" json:"user_id"`
	GoogleEventID *string    `db:"google_event_id" json:"google_event_id,omitempty"`
	Title         string     `db:"title" json:"title"`
	Description   *string    `db:"description" json:"description,omitempty"`
	StartTime     time.Time  `db:"start_time" json:"start_time"`
	EndTime       time.Time  `db:"end_time" json:"end_time"`
	IsAllDay      bool       `db:"is_all_day" json:"is_all_day"`
	IsBusy        bool       `db:"is_busy" json:"is_busy"`
	SyncedAt      *time.Time `db:"synced_at" json:"synced_at,omitempty"`
}
