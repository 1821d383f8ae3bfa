package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	apperrors "meetsync/core/errors"
	"meetsync/modules/availability/engine"
	"meetsync/modules/meeting/dto"
	"meetsync/modules/meeting/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMeetingRepo struct {
	meetings     map[uuid.UUID]*entity.Meeting
	byCode       map[string]*entity.Meeting
	participants map[uuid.UUID][]entity.MeetingParticipant
}

func newFakeMeetingRepo() *fakeMeetingRepo {
	return &fakeMeetingRepo{
		meetings:     make(map[uuid.UUID]*entity.Meeting),
		byCode:       make(map[string]*entity.Meeting),
		participants: make(map[uuid.UUID][]entity.MeetingParticipant),
	}
}

func (f *fakeMeetingRepo) CreateMeeting(_ context.Context, m *entity.Meeting) (*entity.Meeting, error) {
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	f.meetings[m.ID] = m
	f.byCode[m.InviteCode] = m
	return m, nil
}

func (f *fakeMeetingRepo) GetMeetingByID(_ context.Context, id uuid.UUID) (*entity.Meeting, error) {
	m, ok := f.meetings[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return m, nil
}

func (f *fakeMeetingRepo) GetMeetingByInviteCode(_ context.Context, code string) (*entity.Meeting, error) {
	m, ok := f.byCode[code]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return m, nil
}

func (f *fakeMeetingRepo) GetMeetingsByCreatorID(_ context.Context, creatorID uuid.UUID) ([]entity.Meeting, error) {
	var result []entity.Meeting
	for _, m := range f.meetings {
		if m.CreatorID == creatorID {
			result = append(result, *m)
		}
	}
	return result, nil
}

func (f *fakeMeetingRepo) AddParticipant(_ context.Context, p *entity.MeetingParticipant) error {
	for _, existing := range f.participants[p.MeetingID] {
		if existing.UserID == p.UserID {
			return nil
		}
	}
	p.CreatedAt = time.Now()
	f.participants[p.MeetingID] = append(f.participants[p.MeetingID], *p)
	return nil
}

func (f *fakeMeetingRepo) GetParticipantsByMeetingID(_ context.Context, meetingID uuid.UUID) ([]entity.MeetingParticipant, error) {
	return f.participants[meetingID], nil
}

func (f *fakeMeetingRepo) GetParticipant(_ context.Context, meetingID, userID uuid.UUID) (*entity.MeetingParticipant, error) {
	for _, p := range f.participants[meetingID] {
		if p.UserID == userID {
			return &p, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeMeetingRepo) UpdateParticipantStatus(_ context.Context, meetingID, userID uuid.UUID, status entity.ParticipantStatus) error {
	for i, p := range f.participants[meetingID] {
		if p.UserID == userID {
			f.participants[meetingID][i].Status = status
			return nil
		}
	}
	return sql.ErrNoRows
}

type fakeIntervalStore struct {
	intervals map[uuid.UUID][]engine.BusyInterval
}

func (f *fakeIntervalStore) GetBusyIntervals(_ context.Context, userID uuid.UUID, _ engine.TimeInterval) ([]engine.BusyInterval, error) {
	return f.intervals[userID], nil
}

func createRequest() *dto.CreateMeetingRequest {
	return &dto.CreateMeetingRequest{
		Title:     "Design Review",
		StartTime: "2026-03-02T09:00:00Z",
		EndTime:   "2026-03-02T10:00:00Z",
	}
}

func TestCreateMeeting(t *testing.T) {
	repo := newFakeMeetingRepo()
	svc := NewMeetingService(repo, &fakeIntervalStore{})
	creatorID := uuid.New()

	meeting, appErr := svc.CreateMeeting(context.Background(), creatorID, createRequest())
	require.Nil(t, appErr)

	assert.Equal(t, "Design Review", meeting.Title)
	assert.Equal(t, "design-review", meeting.Slug)
	assert.Len(t, meeting.InviteCode, 7)
	assert.Equal(t, "UTC", meeting.Timezone)

	// creator is auto-joined as accepted
	meetingID := uuid.MustParse(meeting.ID)
	participants := repo.participants[meetingID]
	require.Len(t, participants, 1)
	assert.Equal(t, creatorID, participants[0].UserID)
	assert.Equal(t, entity.ParticipantStatusAccepted, participants[0].Status)
}

func TestCreateMeetingInvalidWindow(t *testing.T) {
	svc := NewMeetingService(newFakeMeetingRepo(), &fakeIntervalStore{})

	req := createRequest()
	req.StartTime, req.EndTime = req.EndTime, req.StartTime

	_, appErr := svc.CreateMeeting(context.Background(), uuid.New(), req)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrInvalidInput, appErr.Code)
}

func TestJoinMeetingByCodeIsIdempotent(t *testing.T) {
	repo := newFakeMeetingRepo()
	svc := NewMeetingService(repo, &fakeIntervalStore{})

	meeting, appErr := svc.CreateMeeting(context.Background(), uuid.New(), createRequest())
	require.Nil(t, appErr)

	joiner := uuid.New()
	detail, appErr := svc.JoinMeetingByCode(context.Background(), joiner, meeting.InviteCode)
	require.Nil(t, appErr)
	assert.Len(t, detail.Participants, 2)

	detail, appErr = svc.JoinMeetingByCode(context.Background(), joiner, meeting.InviteCode)
	require.Nil(t, appErr)
	assert.Len(t, detail.Participants, 2)
}

func TestJoinMeetingUnknownCode(t *testing.T) {
	svc := NewMeetingService(newFakeMeetingRepo(), &fakeIntervalStore{})

	_, appErr := svc.JoinMeetingByCode(context.Background(), uuid.New(), "NOPE123")
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestUpdateParticipantStatus(t *testing.T) {
	repo := newFakeMeetingRepo()
	svc := NewMeetingService(repo, &fakeIntervalStore{})
	creatorID := uuid.New()

	meeting, appErr := svc.CreateMeeting(context.Background(), creatorID, createRequest())
	require.Nil(t, appErr)
	meetingID := uuid.MustParse(meeting.ID)

	appErr = svc.UpdateParticipantStatus(context.Background(), meetingID, creatorID, "declined")
	require.Nil(t, appErr)
	assert.Equal(t, entity.ParticipantStatusDeclined, repo.participants[meetingID][0].Status)

	appErr = svc.UpdateParticipantStatus(context.Background(), meetingID, creatorID, "maybe")
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrInvalidInput, appErr.Code)

	appErr = svc.UpdateParticipantStatus(context.Background(), meetingID, uuid.New(), "accepted")
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestGetMeetingAvailabilityRanked(t *testing.T) {
	repo := newFakeMeetingRepo()
	creatorID := uuid.New()
	store := &fakeIntervalStore{intervals: map[uuid.UUID][]engine.BusyInterval{
		creatorID: {{
			ParticipantID: creatorID,
			Interval: engine.TimeInterval{
				Start: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
				End:   time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
			},
			IsBusy: true,
		}},
	}}
	svc := NewMeetingService(repo, store)

	meeting, appErr := svc.CreateMeeting(context.Background(), creatorID, createRequest())
	require.Nil(t, appErr)

	joiner := uuid.New()
	_, appErr = svc.JoinMeetingByCode(context.Background(), joiner, meeting.InviteCode)
	require.Nil(t, appErr)

	result, appErr := svc.GetMeetingAvailability(context.Background(), meeting.InviteCode)
	require.Nil(t, appErr)

	assert.Equal(t, 2, result.ParticipantCount)
	require.Len(t, result.BusySlots, 1)
	assert.Equal(t, creatorID.String(), result.BusySlots[0].UserID)

	// ranked: the fully free slot comes first
	require.Len(t, result.AvailabilitySlots, 2)
	assert.InDelta(t, 1.0, result.AvailabilitySlots[0].Availability, 1e-9)
	assert.True(t, result.AvailabilitySlots[0].IsOptimal)
	assert.InDelta(t, 0.5, result.AvailabilitySlots[1].Availability, 1e-9)
	assert.False(t, result.AvailabilitySlots[1].IsOptimal)
}

func TestGetMeetingAvailabilityNoParticipants(t *testing.T) {
	repo := newFakeMeetingRepo()
	svc := NewMeetingService(repo, &fakeIntervalStore{})

	// meeting inserted without going through CreateMeeting, so nobody joined
	m := &entity.Meeting{CreatorID: uuid.New(), Title: "empty", InviteCode: "EMPTY01",
		StartTime: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)}
	_, err := repo.CreateMeeting(context.Background(), m)
	require.NoError(t, err)

	_, appErr := svc.GetMeetingAvailability(context.Background(), "EMPTY01")
	require.NotNil(t, appErr)
	assert.ErrorIs(t, appErr, engine.ErrEmptyParticipantSet)
}
