package dto

import (
	"time"

	availabilityDto "meetsync/modules/availability/dto"
	"meetsync/modules/meeting/entity"
)

// ===================== Request DTOs =====================

type CreateMeetingRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	StartTime   string `json:"start_time" validate:"required"` // RFC3339
	EndTime     string `json:"end_time" validate:"required"`   // RFC3339
	Timezone    string `json:"timezone"`                       // default UTC
}

type JoinMeetingRequest struct {
	InviteCode string `json:"invite_code" validate:"required"`
}

type UpdateParticipantStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending accepted declined"`
}

// ===================== Response DTOs =====================

type MeetingResponse struct {
	ID          string    `json:"id"`
	CreatorID   string    `json:"creator_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Slug        string    `json:"slug"`
	InviteCode  string    `json:"invite_code"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Timezone    string    `json:"timezone"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ParticipantResponse struct {
	UserID   string    `json:"user_id"`
	Status   string    `json:"status"`
	JoinedAt time.Time `json:"joined_at"`
}

type MeetingDetailResponse struct {
	MeetingResponse
	Participants []ParticipantResponse `json:"participants"`
}

// BusySlotDTO is one raw busy interval attributed to a participant
type BusySlotDTO struct {
	UserID    string    `json:"user_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// MeetingAvailabilityResponse carries the ranked slots plus the raw busy
// intervals they were computed from
type MeetingAvailabilityResponse struct {
	MeetingID         string                        `json:"meeting_id"`
	ParticipantCount  int                           `json:"participant_count"`
	BusySlots         []BusySlotDTO                 `json:"busy_slots"`
	AvailabilitySlots []availabilityDto.TimeSlotDTO `json:"availability_slots"`
}

// ===================== Mapper Functions =====================

func ToMeetingResponse(m *entity.Meeting) *MeetingResponse {
	return &MeetingResponse{
		ID:          m.ID.String(),
		CreatorID:   m.CreatorID.String(),
		Title:       m.Title,
		Description: m.Description,
		Slug:        m.Slug,
		InviteCode:  m.InviteCode,
		StartTime:   m.StartTime,
		EndTime:     m.EndTime,
		Timezone:    m.Timezone,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToMeetingDetailResponse(m *entity.Meeting, participants []entity.MeetingParticipant) *MeetingDetailResponse {
	detail := &MeetingDetailResponse{
		MeetingResponse: *ToMeetingResponse(m),
		Participants:    make([]ParticipantResponse, 0, len(participants)),
	}
	for _, p := range participants {
		detail.Participants = append(detail.Participants, ParticipantResponse{
			UserID:   p.UserID.String(),
			Status:   string(p.Status),
			JoinedAt: p.CreatedAt,
		})
	}
	return detail
}
