package entity

import (
	"time"

	"github.com/google/uuid"
)

// ParticipantStatus represents the status of a participant
type ParticipantStatus string

const (
	ParticipantStatusPending  ParticipantStatus = "pending"
	ParticipantStatusAccepted ParticipantStatus = "accepted"
	ParticipantStatusDeclined ParticipantStatus = "declined"
)

// IsValid reports whether the status is one of the known values
func (s ParticipantStatus) IsValid() bool {
	switch s {
	case ParticipantStatusPending, ParticipantStatusAccepted, ParticipantStatusDeclined:
		return true
	}
	return false
}

// MeetingParticipant links a user to a meeting
type MeetingParticipant struct {
	MeetingID uuid.UUID         `db:"meeting_id" json:"meeting_id"`
	UserID    uuid.UUID         `db:"user_id" json:"user_id"`
	Status    ParticipantStatus `db:"status" json:"status"`
	CreatedAt time.Time         `db:"created_at" json:"created_at"`
}
