package entity

import (
	"time"

	"meetsync/core/entity"

	"github.com/google/uuid"
)

// Meeting is a group scheduling session. Participants join through the
// invite code; the window bounds the slots considered for the meeting.
type Meeting struct {
	entity.BaseEntity
	CreatorID   uuid.UUID `db:"creator_id" json:"creator_id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description,omitempty"`
	Slug        string    `db:"slug" json:"slug"`
	InviteCode  string    `db:"invite_code" json:"invite_code"`
	StartTime   time.Time `db:"start_time" json:"start_time"`
	EndTime     time.Time `db:"end_time" json:"end_time"`
	Timezone    string    `db:"timezone" json:"timezone"`
}
