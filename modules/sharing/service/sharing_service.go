package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	apperrors "meetsync/core/errors"
	"meetsync/core/logger"
	calendarRepo "meetsync/modules/calendar/repository"
	"meetsync/modules/sharing/dto"
	"meetsync/modules/sharing/entity"
	"meetsync/modules/sharing/repository"

	"github.com/google/uuid"
)

// Schedule views disclose this far ahead; the window only bounds the
// store read, the temporal filter itself works off "now".
const scheduleHorizon = 90 * 24 * time.Hour

type SharingService interface {
	GetSettings(ctx context.Context, userID uuid.UUID) (*dto.SharingSettingsResponse, *apperrors.AppError)
	UpdateSettings(ctx context.Context, userID uuid.UUID, req *dto.UpdateSharingSettingsRequest) (*dto.SharingSettingsResponse, *apperrors.AppError)
	GetUserSchedule(ctx context.Context, ownerID, requesterID uuid.UUID) (*dto.UserScheduleResponse, *apperrors.AppError)
}

type sharingService struct {
	repo    repository.SharingRepository
	calRepo calendarRepo.CalendarRepository
	now     func() time.Time
}

func NewSharingService(repo repository.SharingRepository, calRepo calendarRepo.CalendarRepository) SharingService {
	return &sharingService{
		repo:    repo,
		calRepo: calRepo,
		now:     time.Now,
	}
}

// GetSettings returns the user's sharing settings, creating the busy_only
// default on first access
func (s *sharingService) GetSettings(ctx context.Context, userID uuid.UUID) (*dto.SharingSettingsResponse, *apperrors.AppError) {
	settings, appErr := s.loadOrCreate(ctx, userID)
	if appErr != nil {
		return nil, appErr
	}
	return dto.ToSharingSettingsResponse(settings), nil
}

// UpdateSettings replaces the user's share level and allowed user list
func (s *sharingService) UpdateSettings(ctx context.Context, userID uuid.UUID, req *dto.UpdateSharingSettingsRequest) (*dto.SharingSettingsResponse, *apperrors.AppError) {
	level := entity.ShareLevel(req.ShareLevel)
	if !level.IsValid() {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidInput, "Unknown share level: "+req.ShareLevel, nil)
	}

	allowed := make(entity.UUIDList, 0, len(req.AllowedUsers))
	for _, idStr := range req.AllowedUsers {
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrInvalidInput, "Invalid allowed user ID: "+idStr, err)
		}
		allowed = append(allowed, id)
	}

	settings, appErr := s.loadOrCreate(ctx, userID)
	if appErr != nil {
		return nil, appErr
	}

	settings.ShareLevel = level
	settings.AllowedUsers = allowed
	if err := s.repo.Update(ctx, settings); err != nil {
		logger.Error("SharingService:UpdateSettings", "user_id", userID, "error", err)
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to update sharing settings", err)
	}

	return dto.ToSharingSettingsResponse(settings), nil
}

// GetUserSchedule returns the owner's upcoming schedule as seen by the
// requester, with every event projected through the owner's share level
func (s *sharingService) GetUserSchedule(ctx context.Context, ownerID, requesterID uuid.UUID) (*dto.UserScheduleResponse, *apperrors.AppError) {
	settings, appErr := s.loadOrCreate(ctx, ownerID)
	if appErr != nil {
		return nil, appErr
	}

	now := s.now()
	events, err := s.calRepo.GetEventsInRange(ctx, ownerID, now, now.Add(scheduleHorizon))
	if err != nil {
		logger.Error("SharingService:GetUserSchedule:Events", "owner_id", ownerID, "error", err)
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to load schedule", err)
	}

	level := EffectiveShareLevel(ownerID, requesterID, settings.ShareLevel)
	return &dto.UserScheduleResponse{
		UserID:     ownerID.String(),
		ShareLevel: string(level),
		Events:     FilterSchedule(ownerID, requesterID, settings.ShareLevel, events, now),
	}, nil
}

// loadOrCreate materializes the default settings row on first access
func (s *sharingService) loadOrCreate(ctx context.Context, userID uuid.UUID) (*entity.SharingSettings, *apperrors.AppError) {
	settings, err := s.repo.GetByUserID(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		logger.Error("SharingService:LoadSettings", "user_id", userID, "error", err)
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to load sharing settings", err)
	}

	created, err := s.repo.Create(ctx, entity.DefaultSharingSettings(userID))
	if err != nil {
		logger.Error("SharingService:CreateDefaultSettings", "user_id", userID, "error", err)
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to create sharing settings", err)
	}
	return created, nil
}
