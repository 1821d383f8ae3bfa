package dto

import (
	"time"

	"meetsync/modules/calendar/entity"
)

// ===================== Request DTOs =====================

type ConnectGoogleRequest struct {
	Code string `json:"code" validate:"required"` // OAuth authorization code from the consent redirect
}

type CreateUnavailableTimeRequest struct {
	Title     string `json:"title"`
	StartTime string `json:"start_time" validate:"required"` // RFC3339
	EndTime   string `json:"end_time" validate:"required"`   // RFC3339
}

// ===================== Response DTOs =====================

type GoogleAuthURLResponse struct {
	URL string `json:"url"`
}

type CalendarConnectionResponse struct {
	ID          string `json:"id"`
	Provider    string `json:"provider"`
	CalendarID  string `json:"calendar_id"`
	ConnectedAt string `json:"connected_at"`
}

type CalendarEventResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     time.Time  `json:"end_time"`
	IsAllDay    bool       `json:"is_all_day"`
	IsBusy      bool       `json:"is_busy"`
	SyncedAt    *time.Time `json:"synced_at,omitempty"`
}

type UnavailableTimeResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
}

type SyncResponse struct {
	Provider     string    `json:"provider"`
	EventsSynced int       `json:"events_synced"`
	EventsPurged int64     `json:"events_purged"`
	SyncedAt     time.Time `json:"synced_at"`
}

// ===================== Mapper Functions =====================

func ToCalendarEventResponse(e *entity.CalendarEvent) CalendarEventResponse {
	return CalendarEventResponse{
		ID:          e.ID.String(),
		Title:       e.Title,
		Description: e.Description,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		IsAllDay:    e.IsAllDay,
		IsBusy:      e.IsBusy,
		SyncedAt:    e.SyncedAt,
	}
}

func ToUnavailableTimeResponse(b *entity.UnavailableTime) UnavailableTimeResponse {
	return UnavailableTimeResponse{
		ID:        b.ID.String(),
		Title:     b.Title,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		CreatedAt: b.CreatedAt,
	}
}
