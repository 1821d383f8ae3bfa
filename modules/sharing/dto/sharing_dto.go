package dto

import (
	"time"

	"meetsync/modules/sharing/entity"
)

// ===================== Request DTOs =====================

type UpdateSharingSettingsRequest struct {
	ShareLevel   string   `json:"share_level" validate:"required,oneof=busy_only basic_info full_details"`
	AllowedUsers []string `json:"allowed_users"`
}

// ===================== Response DTOs =====================

type SharingSettingsResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ShareLevel   string    `json:"share_level"`
	AllowedUsers []string  `json:"allowed_users"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DisclosedEvent is the privacy-filtered projection of a calendar event.
// Fields beyond start, end and is_busy are only populated when the owner's
// share level permits them.
type DisclosedEvent struct {
	ID          string     `json:"id,omitempty"`
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     time.Time  `json:"end_time"`
	IsBusy      bool       `json:"is_busy"`
	IsAllDay    *bool      `json:"is_all_day,omitempty"`
	SyncedAt    *time.Time `json:"synced_at,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type UserScheduleResponse struct {
	UserID     string           `json:"user_id"`
	ShareLevel string           `json:"share_level"`
	Events     []DisclosedEvent `json:"events"`
}

// ===================== Mapper Functions =====================

func ToSharingSettingsResponse(s *entity.SharingSettings) *SharingSettingsResponse {
	allowed := make([]string, 0, len(s.AllowedUsers))
	for _, id := range s.AllowedUsers {
		allowed = append(allowed, id.String())
	}
	return &SharingSettingsResponse{
		ID:           s.ID.String(),
		UserID:       s.UserID.String(),
		ShareLevel:   string(s.ShareLevel),
		AllowedUsers: allowed,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
