package service

import (
	"testing"
	"time"

	coreEntity "meetsync/core/entity"
	calendarEntity "meetsync/modules/calendar/entity"
	"meetsync/modules/sharing/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	owner     = uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000001")
	requester = uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000002")
)

func sampleEvent(t *testing.T) *calendarEntity.CalendarEvent {
	t.Helper()
	description := "secret"
	syncedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &calendarEntity.CalendarEvent{
		BaseEntity: coreEntity.BaseEntity{
			ID:        uuid.MustParse("cccccccc-0000-0000-0000-000000000001"),
			CreatedAt: time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2026, 3, 1, 11, 30, 0, 0, time.UTC),
		},
		UserID:      owner,
		Title:       "1:1",
		Description: &description,
		StartTime:   time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		IsBusy:      true,
		SyncedAt:    &syncedAt,
	}
}

func TestFilterEventBusyOnly(t *testing.T) {
	disclosed := FilterEvent(sampleEvent(t), entity.ShareLevelBusyOnly)

	assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), disclosed.StartTime)
	assert.Equal(t, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), disclosed.EndTime)
	assert.True(t, disclosed.IsBusy)

	assert.Empty(t, disclosed.ID)
	assert.Nil(t, disclosed.Title)
	assert.Nil(t, disclosed.Description)
	assert.Nil(t, disclosed.SyncedAt)
	assert.Nil(t, disclosed.CreatedAt)
}

func TestFilterEventBasicInfo(t *testing.T) {
	disclosed := FilterEvent(sampleEvent(t), entity.ShareLevelBasicInfo)

	require.NotNil(t, disclosed.Title)
	assert.Equal(t, "1:1", *disclosed.Title)
	assert.True(t, disclosed.IsBusy)

	// title is the only addition over busy_only
	assert.Nil(t, disclosed.Description)
	assert.Nil(t, disclosed.SyncedAt)
	assert.Nil(t, disclosed.CreatedAt)
}

func TestFilterEventFullDetails(t *testing.T) {
	event := sampleEvent(t)
	disclosed := FilterEvent(event, entity.ShareLevelFullDetails)

	assert.Equal(t, event.ID.String(), disclosed.ID)
	require.NotNil(t, disclosed.Title)
	assert.Equal(t, "1:1", *disclosed.Title)
	require.NotNil(t, disclosed.Description)
	assert.Equal(t, "secret", *disclosed.Description)
	require.NotNil(t, disclosed.SyncedAt)
	require.NotNil(t, disclosed.CreatedAt)
	require.NotNil(t, disclosed.UpdatedAt)
}

func TestEffectiveShareLevelSelfBypass(t *testing.T) {
	level := EffectiveShareLevel(owner, owner, entity.ShareLevelBusyOnly)
	assert.Equal(t, entity.ShareLevelFullDetails, level)
}

func TestEffectiveShareLevelThirdParty(t *testing.T) {
	level := EffectiveShareLevel(owner, requester, entity.ShareLevelBasicInfo)
	assert.Equal(t, entity.ShareLevelBasicInfo, level)
}

func TestEffectiveShareLevelUnknownFallsBackToBusyOnly(t *testing.T) {
	level := EffectiveShareLevel(owner, requester, entity.ShareLevel("everything"))
	assert.Equal(t, entity.ShareLevelBusyOnly, level)
}

func TestFilterScheduleSelfSeesFullDetails(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	events := []calendarEntity.CalendarEvent{*sampleEvent(t)}

	disclosed := FilterSchedule(owner, owner, entity.ShareLevelBusyOnly, events, now)

	require.Len(t, disclosed, 1)
	require.NotNil(t, disclosed[0].Description)
	assert.Equal(t, "secret", *disclosed[0].Description)
}

func TestFilterScheduleDropsPastEvents(t *testing.T) {
	events := []calendarEntity.CalendarEvent{*sampleEvent(t)}

	// event ends 10:00; viewed at 11:00 it is gone, at exactly 10:00 it stays
	after := FilterSchedule(owner, requester, entity.ShareLevelBusyOnly, events, time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC))
	assert.Empty(t, after)

	atEnd := FilterSchedule(owner, requester, entity.ShareLevelBusyOnly, events, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))
	assert.Len(t, atEnd, 1)
}

func TestFilterScheduleBasicInfoHidesDescription(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	events := []calendarEntity.CalendarEvent{*sampleEvent(t)}

	disclosed := FilterSchedule(owner, requester, entity.ShareLevelBasicInfo, events, now)

	require.Len(t, disclosed, 1)
	require.NotNil(t, disclosed[0].Title)
	assert.Equal(t, "1:1", *disclosed[0].Title)
	assert.Nil(t, disclosed[0].Description)
	assert.True(t, disclosed[0].IsBusy)
}
