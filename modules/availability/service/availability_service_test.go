package service

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "meetsync/core/errors"
	"meetsync/modules/availability/dto"
	"meetsync/modules/availability/engine"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	intervals map[uuid.UUID][]engine.BusyInterval
	failFor   map[uuid.UUID]error
	calls     int
}

func (f *fakeStore) GetBusyIntervals(_ context.Context, userID uuid.UUID, _ engine.TimeInterval) ([]engine.BusyInterval, error) {
	f.calls++
	if err, ok := f.failFor[userID]; ok {
		return nil, err
	}
	return f.intervals[userID], nil
}

var (
	userA = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001")
	userB = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000002")
)

func validRequest() *dto.CalculateAvailabilityRequest {
	return &dto.CalculateAvailabilityRequest{
		MeetingID:      "meeting-1",
		ParticipantIDs: []string{userA.String(), userB.String()},
		StartDate:      "2026-03-02T09:00:00Z",
		EndDate:        "2026-03-02T10:00:00Z",
	}
}

func busyInterval(owner uuid.UUID, start, end time.Time) engine.BusyInterval {
	return engine.BusyInterval{
		ParticipantID: owner,
		Interval:      engine.TimeInterval{Start: start, End: end},
		IsBusy:        true,
	}
}

func TestCalculateAvailability(t *testing.T) {
	slotBoundary := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	store := &fakeStore{
		intervals: map[uuid.UUID][]engine.BusyInterval{
			userA: {busyInterval(userA, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), slotBoundary)},
		},
	}
	svc := NewAvailabilityService(store, nil)

	resp, appErr := svc.CalculateAvailability(context.Background(), validRequest())
	require.Nil(t, appErr)
	require.Len(t, resp.TimeSlots, 2)

	assert.Equal(t, 2, resp.ParticipantCount)
	assert.InDelta(t, 0.5, resp.TimeSlots[0].Availability, 1e-9)
	assert.Equal(t, []string{userB.String()}, resp.TimeSlots[0].FreeParticipants)
	assert.InDelta(t, 1.0, resp.TimeSlots[1].Availability, 1e-9)
	assert.True(t, resp.TimeSlots[1].IsOptimal)

	// one store read per distinct participant
	assert.Equal(t, 2, store.calls)
}

func TestCalculateAvailabilityFetchFailureAborts(t *testing.T) {
	store := &fakeStore{
		failFor: map[uuid.UUID]error{userB: errors.New("store unreachable")},
	}
	svc := NewAvailabilityService(store, nil)

	resp, appErr := svc.CalculateAvailability(context.Background(), validRequest())
	assert.Nil(t, resp)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrInternalServer, appErr.Code)
}

func TestCalculateAvailabilityEmptyParticipants(t *testing.T) {
	svc := NewAvailabilityService(&fakeStore{}, nil)

	req := validRequest()
	req.ParticipantIDs = nil

	_, appErr := svc.CalculateAvailability(context.Background(), req)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrInvalidInput, appErr.Code)
	assert.ErrorIs(t, appErr, engine.ErrEmptyParticipantSet)
}

func TestCalculateAvailabilityInvalidWindow(t *testing.T) {
	store := &fakeStore{}
	svc := NewAvailabilityService(store, nil)

	req := validRequest()
	req.StartDate, req.EndDate = req.EndDate, req.StartDate

	_, appErr := svc.CalculateAvailability(context.Background(), req)
	require.NotNil(t, appErr)
	assert.ErrorIs(t, appErr, engine.ErrInvalidWindow)
	// validation failures never reach the store
	assert.Equal(t, 0, store.calls)
}

func TestCalculateAvailabilityNegativeGranularity(t *testing.T) {
	svc := NewAvailabilityService(&fakeStore{}, nil)

	req := validRequest()
	req.GranularityMinutes = -30

	_, appErr := svc.CalculateAvailability(context.Background(), req)
	require.NotNil(t, appErr)
	assert.ErrorIs(t, appErr, engine.ErrInvalidGranularity)
}

func TestCalculateAvailabilityBadParticipantID(t *testing.T) {
	svc := NewAvailabilityService(&fakeStore{}, nil)

	req := validRequest()
	req.ParticipantIDs = []string{"not-a-uuid"}

	_, appErr := svc.CalculateAvailability(context.Background(), req)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrInvalidInput, appErr.Code)
}

func TestCalculateAvailabilityDuplicateParticipantsFetchedOnce(t *testing.T) {
	store := &fakeStore{}
	svc := NewAvailabilityService(store, nil)

	req := validRequest()
	req.ParticipantIDs = []string{userA.String(), userA.String()}

	resp, appErr := svc.CalculateAvailability(context.Background(), req)
	require.Nil(t, appErr)
	assert.Equal(t, 1, resp.ParticipantCount)
	assert.Equal(t, 1, store.calls)
}
