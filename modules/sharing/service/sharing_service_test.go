package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	calendarEntity "meetsync/modules/calendar/entity"
	"meetsync/modules/sharing/dto"
	"meetsync/modules/sharing/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSharingRepo struct {
	settings map[uuid.UUID]*entity.SharingSettings
	creates  int
}

func newFakeSharingRepo() *fakeSharingRepo {
	return &fakeSharingRepo{settings: make(map[uuid.UUID]*entity.SharingSettings)}
}

func (f *fakeSharingRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*entity.SharingSettings, error) {
	s, ok := f.settings[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return s, nil
}

func (f *fakeSharingRepo) Create(_ context.Context, s *entity.SharingSettings) (*entity.SharingSettings, error) {
	f.creates++
	s.ID = uuid.New()
	f.settings[s.UserID] = s
	return s, nil
}

func (f *fakeSharingRepo) Update(_ context.Context, s *entity.SharingSettings) error {
	f.settings[s.UserID] = s
	return nil
}

type fakeCalendarRepo struct {
	events []calendarEntity.CalendarEvent
}

func (f *fakeCalendarRepo) GetEventsInRange(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]calendarEntity.CalendarEvent, error) {
	return f.events, nil
}

func (f *fakeCalendarRepo) CreateConnection(_ context.Context, c *calendarEntity.CalendarConnection) (*calendarEntity.CalendarConnection, error) {
	return c, nil
}
func (f *fakeCalendarRepo) GetConnectionByUserAndProvider(_ context.Context, _ uuid.UUID, _ string) (*calendarEntity.CalendarConnection, error) {
	return nil, sql.ErrNoRows
}
func (f *fakeCalendarRepo) UpdateConnection(_ context.Context, _ *calendarEntity.CalendarConnection) error {
	return nil
}
func (f *fakeCalendarRepo) DeleteConnection(_ context.Context, _ uuid.UUID, _ string) error {
	return nil
}
func (f *fakeCalendarRepo) UpsertEvent(_ context.Context, _ *calendarEntity.CalendarEvent) error {
	return nil
}
func (f *fakeCalendarRepo) GetEventByID(_ context.Context, _, _ uuid.UUID) (*calendarEntity.CalendarEvent, error) {
	return nil, sql.ErrNoRows
}
func (f *fakeCalendarRepo) DeleteEvent(_ context.Context, _, _ uuid.UUID) error {
	return nil
}
func (f *fakeCalendarRepo) DeleteStaleEvents(_ context.Context, _ uuid.UUID, _ time.Time) (int64, error) {
	return 0, nil
}
func (f *fakeCalendarRepo) CreateUnavailableTime(_ context.Context, b *calendarEntity.UnavailableTime) (*calendarEntity.UnavailableTime, error) {
	return b, nil
}
func (f *fakeCalendarRepo) GetUnavailableTimes(_ context.Context, _ uuid.UUID) ([]calendarEntity.UnavailableTime, error) {
	return nil, nil
}
func (f *fakeCalendarRepo) DeleteUnavailableTime(_ context.Context, _, _ uuid.UUID) error {
	return nil
}

func dtoUpdate(level string) dto.UpdateSharingSettingsRequest {
	return dto.UpdateSharingSettingsRequest{ShareLevel: level}
}

func TestGetSettingsCreatesDefaultLazily(t *testing.T) {
	repo := newFakeSharingRepo()
	svc := NewSharingService(repo, &fakeCalendarRepo{})
	userID := uuid.New()

	settings, appErr := svc.GetSettings(context.Background(), userID)
	require.Nil(t, appErr)

	assert.Equal(t, string(entity.ShareLevelBusyOnly), settings.ShareLevel)
	assert.Empty(t, settings.AllowedUsers)
	assert.Equal(t, 1, repo.creates)

	// second read reuses the materialized row
	_, appErr = svc.GetSettings(context.Background(), userID)
	require.Nil(t, appErr)
	assert.Equal(t, 1, repo.creates)
}

func TestUpdateSettingsRejectsUnknownLevel(t *testing.T) {
	svc := NewSharingService(newFakeSharingRepo(), &fakeCalendarRepo{})

	req := dtoUpdate("everything")
	_, appErr := svc.UpdateSettings(context.Background(), uuid.New(), &req)
	require.NotNil(t, appErr)
}

func TestUpdateSettingsRoundTrip(t *testing.T) {
	repo := newFakeSharingRepo()
	svc := NewSharingService(repo, &fakeCalendarRepo{})
	userID := uuid.New()
	friend := uuid.New()

	req := dtoUpdate("basic_info")
	req.AllowedUsers = []string{friend.String()}

	updated, appErr := svc.UpdateSettings(context.Background(), userID, &req)
	require.Nil(t, appErr)
	assert.Equal(t, "basic_info", updated.ShareLevel)
	assert.Equal(t, []string{friend.String()}, updated.AllowedUsers)
}

func TestGetUserScheduleAppliesOwnerLevel(t *testing.T) {
	repo := newFakeSharingRepo()
	description := "secret"
	calRepo := &fakeCalendarRepo{events: []calendarEntity.CalendarEvent{{
		UserID:      owner,
		Title:       "standup",
		Description: &description,
		StartTime:   time.Now().Add(time.Hour),
		EndTime:     time.Now().Add(2 * time.Hour),
		IsBusy:      true,
	}}}
	svc := NewSharingService(repo, calRepo)

	schedule, appErr := svc.GetUserSchedule(context.Background(), owner, requester)
	require.Nil(t, appErr)

	// lazily created settings default to busy_only
	assert.Equal(t, string(entity.ShareLevelBusyOnly), schedule.ShareLevel)
	require.Len(t, schedule.Events, 1)
	assert.Nil(t, schedule.Events[0].Title)
	assert.Nil(t, schedule.Events[0].Description)
	assert.True(t, schedule.Events[0].IsBusy)
}
