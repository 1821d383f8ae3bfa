package service

import (
	"time"

	calendarEntity "meetsync/modules/calendar/entity"
	"meetsync/modules/sharing/dto"
	"meetsync/modules/sharing/entity"

	"github.com/google/uuid"
)

// EffectiveShareLevel resolves the level a requester actually sees. The
// owner always sees their own schedule in full; everyone else gets the
// owner's stored level, never the requester's.
func EffectiveShareLevel(ownerID, requesterID uuid.UUID, stored entity.ShareLevel) entity.ShareLevel {
	if ownerID == requesterID {
		return entity.ShareLevelFullDetails
	}
	if !stored.IsValid() {
		return entity.ShareLevelBusyOnly
	}
	return stored
}

// FilterEvent projects one event down to the fields the level permits.
// busy_only keeps start, end and is_busy; basic_info adds the title;
// full_details passes everything through.
func FilterEvent(event *calendarEntity.CalendarEvent, level entity.ShareLevel) dto.DisclosedEvent {
	disclosed := dto.DisclosedEvent{
		StartTime: event.StartTime,
		EndTime:   event.EndTime,
		IsBusy:    event.IsBusy,
	}

	switch level {
	case entity.ShareLevelFullDetails:
		title := event.Title
		isAllDay := event.IsAllDay
		createdAt := event.CreatedAt
		updatedAt := event.UpdatedAt
		disclosed.ID = event.ID.String()
		disclosed.Title = &title
		disclosed.Description = event.Description
		disclosed.IsAllDay = &isAllDay
		disclosed.SyncedAt = event.SyncedAt
		disclosed.CreatedAt = &createdAt
		disclosed.UpdatedAt = &updatedAt
	case entity.ShareLevelBasicInfo:
		title := event.Title
		disclosed.Title = &title
	}

	return disclosed
}

// FilterSchedule applies the privacy projection to a schedule view. Events
// already ended before now are dropped; past events are never disclosed
// through this path.
func FilterSchedule(ownerID, requesterID uuid.UUID, stored entity.ShareLevel, events []calendarEntity.CalendarEvent, now time.Time) []dto.DisclosedEvent {
	level := EffectiveShareLevel(ownerID, requesterID, stored)

	disclosed := make([]dto.DisclosedEvent, 0, len(events))
	for i := range events {
		if events[i].EndTime.Before(now) {
			continue
		}
		disclosed = append(disclosed, FilterEvent(&events[i], level))
	}
	return disclosed
}
