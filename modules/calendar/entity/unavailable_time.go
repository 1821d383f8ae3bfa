package entity

import (
	"time"

	"github.com/google/uuid"
)

// UnavailableTime is a manual block a user places on their own schedule.
// Blocks always count as busy.
type UnavailableTime struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Title     string    `db:"title" json:"title"`
	StartTime time.Time `db:"start_time" json:"start_time"`
	EndTime   time.Time `db:"end_time" json:"end_time"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
