package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	calendarapi "google.golang.org/api/calendar/v3"
)

func timedEvent(id, summary, start, end string) *calendarapi.Event {
	return &calendarapi.Event{
		Id:      id,
		Summary: summary,
		Status:  "confirmed",
		Start:   &calendarapi.EventDateTime{DateTime: start},
		End:     &calendarapi.EventDateTime{DateTime: end},
	}
}

func TestToCalendarEventTimed(t *testing.T) {
	svc := &calendarService{}
	userID := uuid.New()
	syncedAt := time.Now().UTC()

	event, ok := svc.toCalendarEvent(userID, timedEvent("evt-1", "Standup", "2026-03-02T09:00:00Z", "2026-03-02T09:30:00Z"), syncedAt)
	require.True(t, ok)

	assert.Equal(t, userID, event.UserID)
	require.NotNil(t, event.GoogleEventID)
	assert.Equal(t, "evt-1", *event.GoogleEventID)
	assert.Equal(t, "Standup", event.Title)
	assert.Nil(t, event.Description)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), event.StartTime)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC), event.EndTime)
	assert.False(t, event.IsAllDay)
	assert.True(t, event.IsBusy)
	require.NotNil(t, event.SyncedAt)
	assert.Equal(t, syncedAt, *event.SyncedAt)
}

func TestToCalendarEventAllDay(t *testing.T) {
	svc := &calendarService{}

	item := &calendarapi.Event{
		Id:      "evt-2",
		Summary: "Offsite",
		Status:  "confirmed",
		Start:   &calendarapi.EventDateTime{Date: "2026-03-02"},
		End:     &calendarapi.EventDateTime{Date: "2026-03-03"},
	}

	event, ok := svc.toCalendarEvent(uuid.New(), item, time.Now())
	require.True(t, ok)
	assert.True(t, event.IsAllDay)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), event.StartTime)
	assert.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), event.EndTime)
}

func TestToCalendarEventTransparentIsNotBusy(t *testing.T) {
	svc := &calendarService{}

	item := timedEvent("evt-3", "Focus time", "2026-03-02T09:00:00Z", "2026-03-02T10:00:00Z")
	item.Transparency = "transparent"

	event, ok := svc.toCalendarEvent(uuid.New(), item, time.Now())
	require.True(t, ok)
	assert.False(t, event.IsBusy)
}

func TestToCalendarEventSkipsCancelledAndUndated(t *testing.T) {
	svc := &calendarService{}

	cancelled := timedEvent("evt-4", "Old", "2026-03-02T09:00:00Z", "2026-03-02T10:00:00Z")
	cancelled.Status = "cancelled"
	_, ok := svc.toCalendarEvent(uuid.New(), cancelled, time.Now())
	assert.False(t, ok)

	undated := &calendarapi.Event{Id: "evt-5", Status: "confirmed"}
	_, ok = svc.toCalendarEvent(uuid.New(), undated, time.Now())
	assert.False(t, ok)

	malformed := timedEvent("evt-6", "Bad", "not-a-time", "2026-03-02T10:00:00Z")
	_, ok = svc.toCalendarEvent(uuid.New(), malformed, time.Now())
	assert.False(t, ok)
}

func TestToCalendarEventKeepsDescription(t *testing.T) {
	svc := &calendarService{}

	item := timedEvent("evt-7", "1:1", "2026-03-02T09:00:00Z", "2026-03-02T09:30:00Z")
	item.Description = "quarterly goals"

	event, ok := svc.toCalendarEvent(uuid.New(), item, time.Now())
	require.True(t, ok)
	require.NotNil(t, event.Description)
	assert.Equal(t, "quarterly goals", *event.Description)
}
