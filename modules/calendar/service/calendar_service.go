package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"meetsync/core/config"
	apperrors "meetsync/core/errors"
	"meetsync/core/logger"
	"meetsync/core/queue"
	"meetsync/modules/calendar/dto"
	"meetsync/modules/calendar/entity"
	"meetsync/modules/calendar/repository"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendarapi "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Sync pulls events inside a sliding window around now; anything further
// out is refetched by a later sync.
const (
	syncLookBehind = 7 * 24 * time.Hour
	syncLookAhead  = 90 * 24 * time.Hour
)

type CalendarService interface {
	// Connection management
	GoogleAuthURL() (*dto.GoogleAuthURLResponse, *apperrors.AppError)
	ConnectGoogle(ctx context.Context, userID uuid.UUID, code string) (*dto.CalendarConnectionResponse, *apperrors.AppError)
	DisconnectGoogle(ctx context.Context, userID uuid.UUID) *apperrors.AppError

	// Sync
	SyncGoogleCalendar(ctx context.Context, userID uuid.UUID) (*dto.SyncResponse, *apperrors.AppError)
	RequestSync(userID uuid.UUID) *apperrors.AppError

	// Events and manual blocks
	GetEvents(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]dto.CalendarEventResponse, *apperrors.AppError)
	GetEvent(ctx context.Context, userID, eventID uuid.UUID) (*dto.CalendarEventResponse, *apperrors.AppError)
	DeleteEvent(ctx context.Context, userID, eventID uuid.UUID) *apperrors.AppError
	CreateUnavailableTime(ctx context.Context, userID uuid.UUID, req *dto.CreateUnavailableTimeRequest) (*dto.UnavailableTimeResponse, *apperrors.AppError)
	GetUnavailableTimes(ctx context.Context, userID uuid.UUID) ([]dto.UnavailableTimeResponse, *apperrors.AppError)
	DeleteUnavailableTime(ctx context.Context, userID, blockID uuid.UUID) *apperrors.AppError
}

type calendarService struct {
	repo repository.CalendarRepository
}

func NewCalendarService(repo repository.CalendarRepository) CalendarService {
	return &calendarService{repo: repo}
}

func oauthConfig() (*oauth2.Config, error) {
	cfg, err := config.GetSafe()
	if err != nil {
		return nil, err
	}
	return &oauth2.Config{
		ClientID:     cfg.GoogleAPI.ClientID,
		ClientSecret: cfg.GoogleAPI.ClientSecret,
		RedirectURL:  cfg.GoogleAPI.RedirectURL,
		Scopes:       []string{calendarapi.CalendarReadonlyScope},
		Endpoint:     google.Endpoint,
	}, nil
}

// GoogleAuthURL returns the consent URL the client redirects to. Offline
// access is requested so the connection carries a refresh token.
func (s *calendarService) GoogleAuthURL() (*dto.GoogleAuthURLResponse, *apperrors.AppError) {
	oc, err := oauthConfig()
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "Google API is not configured", err)
	}

	url := oc.AuthCodeURL("state", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	return &dto.GoogleAuthURLResponse{URL: url}, nil
}

// ConnectGoogle exchanges the consent code for tokens, stores the
// connection and schedules the first sync in the background
func (s *calendarService) ConnectGoogle(ctx context.Context, userID uuid.UUID, code string) (*dto.CalendarConnectionResponse, *apperrors.AppError) {
	oc, err := oauthConfig()
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "Google API is not configured", err)
	}

	token, err := oc.Exchange(ctx, code)
	if err != nil {
		logger.Error("CalendarService:ConnectGoogle:Exchange", "user_id", userID, "error", err)
		return nil, apperrors.NewAppError(apperrors.ErrInvalidInput, "Invalid authorization code", err)
	}

	conn, appErr := s.saveConnection(ctx, userID, token)
	if appErr != nil {
		return nil, appErr
	}

	if err := queue.EnqueueCalendarSync(userID); err != nil {
		// The connection is saved; the user can still trigger a sync manually.
		logger.Warn("CalendarService:ConnectGoogle:Enqueue", "user_id", userID, "error", err)
	}

	return &dto.CalendarConnectionResponse{
		ID:          conn.ID.String(),
		Provider:    conn.Provider,
		CalendarID:  conn.CalendarID,
		ConnectedAt: conn.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *calendarService) saveConnection(ctx context.Context, userID uuid.UUID, token *oauth2.Token) (*entity.CalendarConnection, *apperrors.AppError) {
	existing, err := s.repo.GetConnectionByUserAndProvider(ctx, userID, entity.ProviderGoogle)
	if err == nil {
		existing.AccessToken = token.AccessToken
		if token.RefreshToken != "" {
			existing.RefreshToken = token.RefreshToken
		}
		existing.TokenExpiry = token.Expiry
		if err := s.repo.UpdateConnection(ctx, existing); err != nil {
			logger.Error("CalendarService:SaveConnection:Update", "user_id", userID, "error", err)
			return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to update calendar connection", err)
		}
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		logger.Error("CalendarService:SaveConnection:Get", "user_id", userID, "error", err)
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to load calendar connection", err)
	}

	conn := &entity.CalendarConnection{
		UserID:       userID,
		Provider:     entity.ProviderGoogle,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenExpiry:  token.Expiry,
		CalendarID:   "primary",
	}
	created, err := s.repo.CreateConnection(ctx, conn)
	if err != nil {
		logger.Error("CalendarService:SaveConnection:Create", "user_id", userID, "error", err)
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to save calendar connection", err)
	}
	return created, nil
}

// DisconnectGoogle removes the stored connection; synced events stay until
// the next cleanup
func (s *calendarService) DisconnectGoogle(ctx context.Context, userID uuid.UUID) *apperrors.AppError {
	if err := s.repo.DeleteConnection(ctx, userID, entity.ProviderGoogle); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NewAppError(apperrors.ErrNotFound, "No Google Calendar connected", err)
		}
		logger.Error("CalendarService:DisconnectGoogle", "user_id", userID, "error", err)
		return apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to disconnect calendar", err)
	}
	return nil
}

// RequestSync enqueues a background sync for the user
func (s *calendarService) RequestSync(userID uuid.UUID) *apperrors.AppError {
	if err := queue.EnqueueCalendarSync(userID); err != nil {
		logger.Error("CalendarService:RequestSync", "user_id", userID, "error", err)
		return apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to schedule calendar sync", err)
	}
	return nil
}

// SyncGoogleCalendar pulls the user's events from Google and mirrors them
// into calendar_events. An event only counts as busy when its transparency
// is not "transparent", matching how providers mark free-floating events.
func (s *calendarService) SyncGoogleCalendar(ctx context.Context, userID uuid.UUID) (*dto.SyncResponse, *apperrors.AppError) {
	conn, err := s.repo.GetConnectionByUserAndProvider(ctx, userID, entity.ProviderGoogle)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewAppError(apperrors.ErrNotFound, "No Google Calendar connected", err)
		}
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to load calendar connection", err)
	}

	oc, err := oauthConfig()
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "Google API is not configured", err)
	}

	base := &oauth2.Token{
		AccessToken:  conn.AccessToken,
		RefreshToken: conn.RefreshToken,
		Expiry:       conn.TokenExpiry,
	}
	ts := oc.TokenSource(ctx, base)

	svc, err := calendarapi.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		logger.Error("CalendarService:Sync:NewService", "user_id", userID, "error", err)
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to reach Google Calendar", err)
	}

	syncStart := time.Now().UTC()
	timeMin := syncStart.Add(-syncLookBehind)
	timeMax := syncStart.Add(syncLookAhead)

	calendarID := conn.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}

	synced := 0
	call := svc.Events.List(calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		ShowDeleted(false).
		OrderBy("startTime").
		MaxResults(250)

	err = call.Pages(ctx, func(page *calendarapi.Events) error {
		for _, item := range page.Items {
			event, ok := s.toCalendarEvent(userID, item, syncStart)
			if !ok {
				continue
			}
			if err := s.repo.UpsertEvent(ctx, event); err != nil {
				return err
			}
			synced++
		}
		return nil
	})
	if err != nil {
		logger.Error("CalendarService:Sync:List", "user_id", userID, "error", err)
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to sync Google Calendar", err)
	}

	// Token source may have refreshed the access token mid-sync.
	if fresh, terr := ts.Token(); terr == nil && fresh.AccessToken != conn.AccessToken {
		if _, appErr := s.saveConnection(ctx, userID, fresh); appErr != nil {
			logger.Warn("CalendarService:Sync:PersistToken", "user_id", userID, "error", appErr)
		}
	}

	purged, err := s.repo.DeleteStaleEvents(ctx, userID, syncStart)
	if err != nil {
		logger.Warn("CalendarService:Sync:Purge", "user_id", userID, "error", err)
		purged = 0
	}

	logger.Info("CalendarService:Sync:Complete", "user_id", userID, "synced", synced, "purged", purged)

	return &dto.SyncResponse{
		Provider:     entity.ProviderGoogle,
		EventsSynced: synced,
		EventsPurged: purged,
		SyncedAt:     syncStart,
	}, nil
}

// toCalendarEvent normalizes a provider event. All-day events carry a Date
// instead of a DateTime; cancelled or undated events are skipped.
func (s *calendarService) toCalendarEvent(userID uuid.UUID, item *calendarapi.Event, syncedAt time.Time) (*entity.CalendarEvent, bool) {
	if item.Status == "cancelled" || item.Start == nil || item.End == nil {
		return nil, false
	}

	var start, end time.Time
	var isAllDay bool
	var err error

	if item.Start.DateTime != "" {
		start, err = time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			return nil, false
		}
		end, err = time.Parse(time.RFC3339, item.End.DateTime)
		if err != nil {
			return nil, false
		}
	} else {
		isAllDay = true
		start, err = time.Parse("2006-01-02", item.Start.Date)
		if err != nil {
			return nil, false
		}
		end, err = time.Parse("2006-01-02", item.End.Date)
		if err != nil {
			return nil, false
		}
	}

	googleID := item.Id
	var description *string
	if item.Description != "" {
		description = &item.Description
	}

	return &entity.CalendarEvent{
		UserID:        userID,
		GoogleEventID: &googleID,
		Title:         item.Summary,
		Description:   description,
		StartTime:     start,
		EndTime:       end,
		IsAllDay:      isAllDay,
		IsBusy:        item.Transparency != "transparent",
		SyncedAt:      &syncedAt,
	}, true
}

// GetEvents returns the user's own events overlapping the window
func (s *calendarService) GetEvents(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]dto.CalendarEventResponse, *apperrors.AppError) {
	if !start.Before(end) {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidInput, "Window start must be before end", nil)
	}

	events, err := s.repo.GetEventsInRange(ctx, userID, start, end)
	if err != nil {
		logger.Error("CalendarService:GetEvents", "user_id", userID, "error", err)
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to load events", err)
	}

	result := make([]dto.CalendarEventResponse, 0, len(events))
	for i := range events {
		result = append(result, dto.ToCalendarEventResponse(&events[i]))
	}
	return result, nil
}

func (s *calendarService) GetEvent(ctx context.Context, userID, eventID uuid.UUID) (*dto.CalendarEventResponse, *apperrors.AppError) {
	event, err := s.repo.GetEventByID(ctx, userID, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewAppError(apperrors.ErrNotFound, "Event not found", err)
		}
		logger.Error("CalendarService:GetEvent", "user_id", userID, "event_id", eventID, "error", err)
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to load event", err)
	}

	result := dto.ToCalendarEventResponse(event)
	return &result, nil
}

func (s *calendarService) DeleteEvent(ctx context.Context, userID, eventID uuid.UUID) *apperrors.AppError {
	if err := s.repo.DeleteEvent(ctx, userID, eventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NewAppError(apperrors.ErrNotFound, "Event not found", err)
		}
		logger.Error("CalendarService:DeleteEvent", "user_id", userID, "event_id", eventID, "error", err)
		return apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to delete event", err)
	}
	return nil
}

// CreateUnavailableTime records a manual busy block on the user's schedule
func (s *calendarService) CreateUnavailableTime(ctx context.Context, userID uuid.UUID, req *dto.CreateUnavailableTimeRequest) (*dto.UnavailableTimeResponse, *apperrors.AppError) {
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidInput, "Invalid start_time format", err)
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidInput, "Invalid end_time format", err)
	}
	if !start.Before(end) {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidInput, "Block start must be before end", nil)
	}

	block := &entity.UnavailableTime{
		UserID:    userID,
		Title:     req.Title,
		StartTime: start,
		EndTime:   end,
	}
	created, err := s.repo.CreateUnavailableTime(ctx, block)
	if err != nil {
		logger.Error("CalendarService:CreateUnavailableTime", "user_id", userID, "error", err)
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to create unavailable time", err)
	}

	resp := dto.ToUnavailableTimeResponse(created)
	return &resp, nil
}

func (s *calendarService) GetUnavailableTimes(ctx context.Context, userID uuid.UUID) ([]dto.UnavailableTimeResponse, *apperrors.AppError) {
	blocks, err := s.repo.GetUnavailableTimes(ctx, userID)
	if err != nil {
		logger.Error("CalendarService:GetUnavailableTimes", "user_id", userID, "error", err)
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to load unavailable times", err)
	}

	result := make([]dto.UnavailableTimeResponse, 0, len(blocks))
	for i := range blocks {
		result = append(result, dto.ToUnavailableTimeResponse(&blocks[i]))
	}
	return result, nil
}

func (s *calendarService) DeleteUnavailableTime(ctx context.Context, userID, blockID uuid.UUID) *apperrors.AppError {
	if err := s.repo.DeleteUnavailableTime(ctx, userID, blockID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NewAppError(apperrors.ErrNotFound, "Unavailable time not found", err)
		}
		logger.Error("CalendarService:DeleteUnavailableTime", "user_id", userID, "error", err)
		return apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to delete unavailable time", err)
	}
	return nil
}
