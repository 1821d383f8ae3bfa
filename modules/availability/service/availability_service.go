package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"meetsync/core/cache"
	"meetsync/core/constants"
	"meetsync/core/errors"
	"meetsync/core/logger"
	"meetsync/modules/availability/dto"
	"meetsync/modules/availability/engine"
	"meetsync/modules/availability/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// AvailabilityService composes the engine with the Calendar Store: it
// fans out the per-participant busy-interval reads, feeds the complete
// set to the engine and caches the computed response.
type AvailabilityService struct {
	repo  repository.AvailabilityRepositoryInterface
	cache *cache.Cache
}

// AvailabilityServiceInterface defines the service contract
type AvailabilityServiceInterface interface {
	CalculateAvailability(ctx context.Context, req *dto.CalculateAvailabilityRequest) (*dto.AvailabilityResponse, *errors.AppError)
}

// NewAvailabilityService creates a new availability service. The cache is
// optional; a nil cache disables memoization.
func NewAvailabilityService(repo repository.AvailabilityRepositoryInterface, c *cache.Cache) AvailabilityServiceInterface {
	return &AvailabilityService{
		repo:  repo,
		cache: c,
	}
}

// CalculateAvailability computes time-ordered group availability for an
// arbitrary participant set over a window.
func (s *AvailabilityService) CalculateAvailability(ctx context.Context, req *dto.CalculateAvailabilityRequest) (*dto.AvailabilityResponse, *errors.AppError) {
	participantIDs, window, granularity, appErr := s.parseRequest(req)
	if appErr != nil {
		return nil, appErr
	}

	cacheKey := availabilityCacheKey(req.MeetingID, participantIDs, window, granularity)
	if s.cache != nil {
		var cached dto.AvailabilityResponse
		hit, err := s.cache.GetJSON(ctx, cacheKey, &cached)
		if err != nil {
			logger.Warn("AvailabilityService:CalculateAvailability:CacheGet", "error", err)
		} else if hit {
			return &cached, nil
		}
	}

	busy, err := s.fetchBusyIntervals(ctx, participantIDs, window)
	if err != nil {
		// A fetch failure prevents invocation; a partially populated
		// interval set must never reach the aggregator.
		logger.Error("AvailabilityService:CalculateAvailability:Fetch", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load participant calendars", err)
	}

	slots, err := engine.ComputeGroupAvailability(participantIDs, window, granularity, busy)
	if err != nil {
		return nil, mapEngineError(err)
	}

	response := &dto.AvailabilityResponse{
		MeetingID:        req.MeetingID,
		TimeSlots:        dto.ToTimeSlotDTOs(slots),
		ParticipantCount: len(dedupe(participantIDs)),
		Timezone:         req.Timezone,
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKey, response, constants.AvailabilityCacheTTL); err != nil {
			logger.Warn("AvailabilityService:CalculateAvailability:CacheSet", "error", err)
		}
	}

	return response, nil
}

// parseRequest validates and normalizes the request before any work begins
func (s *AvailabilityService) parseRequest(req *dto.CalculateAvailabilityRequest) ([]uuid.UUID, engine.TimeInterval, time.Duration, *errors.AppError) {
	var zero engine.TimeInterval

	if len(req.ParticipantIDs) == 0 {
		return nil, zero, 0, errors.NewAppError(errors.ErrInvalidInput, "Participant set must not be empty", engine.ErrEmptyParticipantSet)
	}

	participantIDs := make([]uuid.UUID, 0, len(req.ParticipantIDs))
	for _, idStr := range req.ParticipantIDs {
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, zero, 0, errors.NewAppError(errors.ErrInvalidInput, "Invalid participant ID: "+idStr, err)
		}
		participantIDs = append(participantIDs, id)
	}

	start, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return nil, zero, 0, errors.NewAppError(errors.ErrInvalidInput, "Invalid start_date format", err)
	}
	end, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		return nil, zero, 0, errors.NewAppError(errors.ErrInvalidInput, "Invalid end_date format", err)
	}

	window := engine.TimeInterval{Start: start, End: end}
	if !window.IsValid() {
		return nil, zero, 0, errors.NewAppError(errors.ErrInvalidInput, "Window start must be before end", engine.ErrInvalidWindow)
	}

	granularity := engine.DefaultGranularity
	if req.GranularityMinutes != 0 {
		if req.GranularityMinutes < 0 {
			return nil, zero, 0, errors.NewAppError(errors.ErrInvalidInput, "Granularity must be positive", engine.ErrInvalidGranularity)
		}
		granularity = time.Duration(req.GranularityMinutes) * time.Minute
	}

	return participantIDs, window, granularity, nil
}

// fetchBusyIntervals reads every participant's intervals concurrently and
// fails the whole call on the first error: the aggregator requires the
// complete set before producing correct counts.
func (s *AvailabilityService) fetchBusyIntervals(ctx context.Context, participantIDs []uuid.UUID, window engine.TimeInterval) ([]engine.BusyInterval, error) {
	g, gctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	var all []engine.BusyInterval

	for _, id := range dedupe(participantIDs) {
		g.Go(func() error {
			intervals, err := s.repo.GetBusyIntervals(gctx, id, window)
			if err != nil {
				return err
			}
			mu.Lock()
			all = append(all, intervals...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return all, nil
}

func mapEngineError(err error) *errors.AppError {
	switch err {
	case engine.ErrInvalidWindow, engine.ErrInvalidGranularity:
		return errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	case engine.ErrEmptyParticipantSet:
		return errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	default:
		return errors.NewAppError(errors.ErrInternalServer, "Availability computation failed", err)
	}
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	result := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

// availabilityCacheKey derives a stable key from the request parameters;
// participant order must not matter
func availabilityCacheKey(meetingID string, participantIDs []uuid.UUID, window engine.TimeInterval, granularity time.Duration) string {
	ids := make([]string, 0, len(participantIDs))
	for _, id := range dedupe(participantIDs) {
		ids = append(ids, id.String())
	}
	sort.Strings(ids)

	raw := strings.Join([]string{
		meetingID,
		strings.Join(ids, ","),
		window.Start.UTC().Format(time.RFC3339),
		window.End.UTC().Format(time.RFC3339),
		strconv.FormatInt(int64(granularity/time.Minute), 10),
	}, "|")

	sum := sha256.Sum256([]byte(raw))
	return constants.RedisKeyAvailability + hex.EncodeToString(sum[:16])
}
