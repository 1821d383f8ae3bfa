package service

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"meetsync/core/errors"
	"meetsync/core/logger"
	"meetsync/core/utils"
	availabilityDto "meetsync/modules/availability/dto"
	"meetsync/modules/availability/engine"
	availabilityRepo "meetsync/modules/availability/repository"
	"meetsync/modules/meeting/dto"
	"meetsync/modules/meeting/entity"
	"meetsync/modules/meeting/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/sync/errgroup"
)

// MeetingService handles meeting business logic
type MeetingService struct {
	repo         repository.MeetingRepositoryInterface
	intervalRepo availabilityRepo.AvailabilityRepositoryInterface
}

// MeetingServiceInterface defines the service contract
type MeetingServiceInterface interface {
	CreateMeeting(ctx context.Context, creatorID uuid.UUID, req *dto.CreateMeetingRequest) (*dto.MeetingResponse, *errors.AppError)
	GetMeetingDetail(ctx context.Context, meetingID uuid.UUID) (*dto.MeetingDetailResponse, *errors.AppError)
	GetMeetingByCode(ctx context.Context, inviteCode string) (*dto.MeetingDetailResponse, *errors.AppError)
	GetMyMeetings(ctx context.Context, creatorID uuid.UUID) ([]dto.MeetingResponse, *errors.AppError)
	JoinMeetingByCode(ctx context.Context, userID uuid.UUID, inviteCode string) (*dto.MeetingDetailResponse, *errors.AppError)
	UpdateParticipantStatus(ctx context.Context, meetingID, userID uuid.UUID, status string) *errors.AppError
	GetMeetingParticipants(ctx context.Context, inviteCode string) ([]dto.ParticipantResponse, *errors.AppError)
	GetMeetingAvailability(ctx context.Context, inviteCode string) (*dto.MeetingAvailabilityResponse, *errors.AppError)
}

// NewMeetingService creates a new meeting service
func NewMeetingService(repo repository.MeetingRepositoryInterface, intervalRepo availabilityRepo.AvailabilityRepositoryInterface) MeetingServiceInterface {
	return &MeetingService{
		repo:         repo,
		intervalRepo: intervalRepo,
	}
}

// CreateMeeting creates a meeting and auto-joins the creator as accepted
func (s *MeetingService) CreateMeeting(ctx context.Context, creatorID uuid.UUID, req *dto.CreateMeetingRequest) (*dto.MeetingResponse, *errors.AppError) {
	if req.Title == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Title is required", nil)
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid start_time format", err)
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid end_time format", err)
	}
	if !startTime.Before(endTime) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Meeting start must be before end", engine.ErrInvalidWindow)
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	inviteCode := utils.GenerateInviteCode()
	if inviteCode == "" {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to generate invite code", nil)
	}

	meeting := &entity.Meeting{
		CreatorID:  creatorID,
		Title:      req.Title,
		Slug:       slug.Make(req.Title),
		InviteCode: inviteCode,
		StartTime:  startTime,
		EndTime:    endTime,
		Timezone:   timezone,
	}
	if req.Description != "" {
		meeting.Description = &req.Description
	}

	created, err := s.repo.CreateMeeting(ctx, meeting)
	if err != nil {
		logger.Error("MeetingService:CreateMeeting:Insert", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create meeting", err)
	}

	creator := &entity.MeetingParticipant{
		MeetingID: created.ID,
		UserID:    creatorID,
		Status:    entity.ParticipantStatusAccepted,
	}
	if err := s.repo.AddParticipant(ctx, creator); err != nil {
		logger.Error("MeetingService:CreateMeeting:AddCreator", "meeting_id", created.ID, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to add creator as participant", err)
	}

	return dto.ToMeetingResponse(created), nil
}

// GetMeetingDetail retrieves a meeting with its participants
func (s *MeetingService) GetMeetingDetail(ctx context.Context, meetingID uuid.UUID) (*dto.MeetingDetailResponse, *errors.AppError) {
	meeting, err := s.repo.GetMeetingByID(ctx, meetingID)
	if err != nil {
		return nil, s.meetingLoadError(err)
	}
	return s.toDetail(ctx, meeting)
}

// GetMeetingByCode retrieves a meeting by its invite code
func (s *MeetingService) GetMeetingByCode(ctx context.Context, inviteCode string) (*dto.MeetingDetailResponse, *errors.AppError) {
	meeting, err := s.repo.GetMeetingByInviteCode(ctx, inviteCode)
	if err != nil {
		return nil, s.meetingLoadError(err)
	}
	return s.toDetail(ctx, meeting)
}

// GetMyMeetings lists meetings created by the user
func (s *MeetingService) GetMyMeetings(ctx context.Context, creatorID uuid.UUID) ([]dto.MeetingResponse, *errors.AppError) {
	meetings, err := s.repo.GetMeetingsByCreatorID(ctx, creatorID)
	if err != nil {
		logger.Error("MeetingService:GetMyMeetings", "creator_id", creatorID, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load meetings", err)
	}

	result := make([]dto.MeetingResponse, 0, len(meetings))
	for i := range meetings {
		result = append(result, *dto.ToMeetingResponse(&meetings[i]))
	}
	return result, nil
}

// JoinMeetingByCode adds the user to the meeting behind the invite code.
// Joining a meeting the user already belongs to is a no-op.
func (s *MeetingService) JoinMeetingByCode(ctx context.Context, userID uuid.UUID, inviteCode string) (*dto.MeetingDetailResponse, *errors.AppError) {
	meeting, err := s.repo.GetMeetingByInviteCode(ctx, inviteCode)
	if err != nil {
		return nil, s.meetingLoadError(err)
	}

	participant := &entity.MeetingParticipant{
		MeetingID: meeting.ID,
		UserID:    userID,
		Status:    entity.ParticipantStatusAccepted,
	}
	if err := s.repo.AddParticipant(ctx, participant); err != nil {
		logger.Error("MeetingService:JoinMeetingByCode", "meeting_id", meeting.ID, "user_id", userID, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to join meeting", err)
	}

	return s.toDetail(ctx, meeting)
}

// UpdateParticipantStatus changes a participant's own RSVP status
func (s *MeetingService) UpdateParticipantStatus(ctx context.Context, meetingID, userID uuid.UUID, status string) *errors.AppError {
	participantStatus := entity.ParticipantStatus(status)
	if !participantStatus.IsValid() {
		return errors.NewAppError(errors.ErrInvalidInput, "Unknown participant status: "+status, nil)
	}

	if err := s.repo.UpdateParticipantStatus(ctx, meetingID, userID, participantStatus); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NewAppError(errors.ErrNotFound, "Participant not found", err)
		}
		logger.Error("MeetingService:UpdateParticipantStatus", "meeting_id", meetingID, "user_id", userID, "error", err)
		return errors.NewAppError(errors.ErrInternalServer, "Failed to update participant status", err)
	}
	return nil
}

// GetMeetingParticipants lists the participants of the meeting behind the
// invite code
func (s *MeetingService) GetMeetingParticipants(ctx context.Context, inviteCode string) ([]dto.ParticipantResponse, *errors.AppError) {
	meeting, err := s.repo.GetMeetingByInviteCode(ctx, inviteCode)
	if err != nil {
		return nil, s.meetingLoadError(err)
	}

	participants, err := s.repo.GetParticipantsByMeetingID(ctx, meeting.ID)
	if err != nil {
		logger.Error("MeetingService:GetMeetingParticipants", "meeting_id", meeting.ID, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load participants", err)
	}

	result := make([]dto.ParticipantResponse, 0, len(participants))
	for _, p := range participants {
		result = append(result, dto.ParticipantResponse{
			UserID:   p.UserID.String(),
			Status:   string(p.Status),
			JoinedAt: p.CreatedAt,
		})
	}
	return result, nil
}

// GetMeetingAvailability computes ranked availability over the meeting
// window for everyone who joined, returning both the ranked slots and the
// raw busy intervals they were derived from
func (s *MeetingService) GetMeetingAvailability(ctx context.Context, inviteCode string) (*dto.MeetingAvailabilityResponse, *errors.AppError) {
	meeting, err := s.repo.GetMeetingByInviteCode(ctx, inviteCode)
	if err != nil {
		return nil, s.meetingLoadError(err)
	}

	participants, err := s.repo.GetParticipantsByMeetingID(ctx, meeting.ID)
	if err != nil {
		logger.Error("MeetingService:GetMeetingAvailability:Participants", "meeting_id", meeting.ID, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load participants", err)
	}
	if len(participants) == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Meeting has no participants", engine.ErrEmptyParticipantSet)
	}

	window := engine.TimeInterval{Start: meeting.StartTime, End: meeting.EndTime}
	busy, err := s.fetchBusyIntervals(ctx, participants, window)
	if err != nil {
		logger.Error("MeetingService:GetMeetingAvailability:Fetch", "meeting_id", meeting.ID, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load participant calendars", err)
	}

	slots, err := engine.ComputeMeetingAvailability(window, busy, len(participants))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}

	busySlots := make([]dto.BusySlotDTO, 0, len(busy))
	for _, b := range busy {
		if !b.IsBusy {
			continue
		}
		busySlots = append(busySlots, dto.BusySlotDTO{
			UserID:    b.ParticipantID.String(),
			StartTime: b.Interval.Start,
			EndTime:   b.Interval.End,
		})
	}

	return &dto.MeetingAvailabilityResponse{
		MeetingID:         meeting.ID.String(),
		ParticipantCount:  len(participants),
		BusySlots:         busySlots,
		AvailabilitySlots: availabilityDto.ToTimeSlotDTOs(slots),
	}, nil
}

// fetchBusyIntervals reads every participant's intervals concurrently;
// any failure aborts the whole computation
func (s *MeetingService) fetchBusyIntervals(ctx context.Context, participants []entity.MeetingParticipant, window engine.TimeInterval) ([]engine.BusyInterval, error) {
	g, gctx := errgroup.WithContext(ctx)

	results := make([][]engine.BusyInterval, len(participants))
	for i, p := range participants {
		g.Go(func() error {
			intervals, err := s.intervalRepo.GetBusyIntervals(gctx, p.UserID, window)
			if err != nil {
				return err
			}
			results[i] = intervals
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []engine.BusyInterval
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}

func (s *MeetingService) toDetail(ctx context.Context, meeting *entity.Meeting) (*dto.MeetingDetailResponse, *errors.AppError) {
	participants, err := s.repo.GetParticipantsByMeetingID(ctx, meeting.ID)
	if err != nil {
		logger.Error("MeetingService:Detail:Participants", "meeting_id", meeting.ID, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load participants", err)
	}
	return dto.ToMeetingDetailResponse(meeting, participants), nil
}

func (s *MeetingService) meetingLoadError(err error) *errors.AppError {
	if stderrors.Is(err, sql.ErrNoRows) {
		return errors.NewAppError(errors.ErrNotFound, "Meeting not found", err)
	}
	logger.Error("MeetingService:LoadMeeting", "error", err)
	return errors.NewAppError(errors.ErrInternalServer, "Failed to load meeting", err)
}
