package dto

import (
	"time"

	"meetsync/modules/availability/engine"
)

// ===================== Request DTOs =====================

// CalculateAvailabilityRequest asks for group availability over a window.
// Timezone is display metadata for the caller; overlap arithmetic always
// runs on the normalized instants.
type CalculateAvailabilityRequest struct {
	MeetingID          string   `json:"meeting_id"`
	ParticipantIDs     []string `json:"participant_ids" validate:"required"`
	StartDate          string   `json:"start_date" validate:"required"` // RFC3339
	EndDate            string   `json:"end_date" validate:"required"`   // RFC3339
	GranularityMinutes int      `json:"granularity_minutes"`            // default 30
	Timezone           string   `json:"timezone"`
}

// ===================== Response DTOs =====================

// TimeSlotDTO is one candidate slot with its aggregate availability
type TimeSlotDTO struct {
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	FreeCount        int       `json:"free_count"`
	TotalCount       int       `json:"total_count"`
	FreeParticipants []string  `json:"free_participants,omitempty"`
	Availability     float64   `json:"availability"`
	IsOptimal        bool      `json:"is_optimal"`
}

// AvailabilityResponse is the time-ordered availability for a participant set
type AvailabilityResponse struct {
	MeetingID        string        `json:"meeting_id,omitempty"`
	TimeSlots        []TimeSlotDTO `json:"time_slots"`
	ParticipantCount int           `json:"participant_count"`
	Timezone         string        `json:"timezone,omitempty"`
}

// ===================== Mapper Functions =====================

// ToTimeSlotDTO maps an engine slot to its transport shape
func ToTimeSlotDTO(s engine.Slot) TimeSlotDTO {
	dto := TimeSlotDTO{
		StartTime:    s.Interval.Start,
		EndTime:      s.Interval.End,
		FreeCount:    s.FreeCount,
		TotalCount:   s.TotalCount,
		Availability: s.Availability,
		IsOptimal:    s.IsOptimal,
	}
	for _, p := range s.FreeParticipants {
		dto.FreeParticipants = append(dto.FreeParticipants, p.String())
	}
	return dto
}

// ToTimeSlotDTOs maps a slot sequence preserving order
func ToTimeSlotDTOs(slots []engine.Slot) []TimeSlotDTO {
	result := make([]TimeSlotDTO, 0, len(slots))
	for _, s := range slots {
		result = append(result, ToTimeSlotDTO(s))
	}
	return result
}
