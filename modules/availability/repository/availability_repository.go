package repository

import (
	"context"
	"time"

	"meetsync/core/database"
	"meetsync/core/logger"
	"meetsync/modules/availability/engine"

	"github.com/google/uuid"
)

// AvailabilityRepository is the Calendar Store boundary of the engine: it
// supplies busy intervals (synced events plus explicit unavailable blocks)
// already filtered to overlap the requested window.
type AvailabilityRepository struct {
	DB database.Database
}

func NewAvailabilityRepository(db database.Database) *AvailabilityRepository {
	return &AvailabilityRepository{DB: db}
}

// AvailabilityRepositoryInterface defines the repository contract
type AvailabilityRepositoryInterface interface {
	GetBusyIntervals(ctx context.Context, userID uuid.UUID, window engine.TimeInterval) ([]engine.BusyInterval, error)
}

type eventRow struct {
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
	IsBusy    bool      `db:"is_busy"`
}

type blockRow struct {
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
}

// GetBusyIntervals returns all intervals for one participant that overlap
// the window, from both interval sources. Both are normalized to
// engine.BusyInterval; unavailable blocks always disqualify.
func (r *AvailabilityRepository) GetBusyIntervals(ctx context.Context, userID uuid.UUID, window engine.TimeInterval) ([]engine.BusyInterval, error) {
	// Half-open overlap in SQL mirrors engine.TimeInterval.Overlaps
	eventsQuery := `
		SELECT start_time, end_time, is_busy
		FROM calendar_events
		WHERE user_id = $1 AND start_time < $3 AND end_time > $2
		ORDER BY start_time
	`

	var events []eventRow
	if err := r.DB.SelectContext(ctx, &events, eventsQuery, userID, window.Start, window.End); err != nil {
		logger.Error("AvailabilityRepository:GetBusyIntervals:Events", "user_id", userID, "error", err)
		return nil, err
	}

	unavailableQuery := `
		SELECT start_time, end_time
		FROM unavailable_times
		WHERE user_id = $1 AND start_time < $3 AND end_time > $2
		ORDER BY start_time
	`

	var blocks []blockRow
	if err := r.DB.SelectContext(ctx, &blocks, unavailableQuery, userID, window.Start, window.End); err != nil {
		logger.Error("AvailabilityRepository:GetBusyIntervals:Unavailable", "user_id", userID, "error", err)
		return nil, err
	}

	intervals := make([]engine.BusyInterval, 0, len(events)+len(blocks))
	for _, row := range events {
		intervals = append(intervals, engine.BusyInterval{
			ParticipantID: userID,
			Interval:      engine.TimeInterval{Start: row.StartTime, End: row.EndTime},
			IsBusy:        row.IsBusy,
		})
	}
	for _, row := range blocks {
		intervals = append(intervals, engine.BusyInterval{
			ParticipantID: userID,
			Interval:      engine.TimeInterval{Start: row.StartTime, End: row.EndTime},
			IsBusy:        true,
		})
	}

	return intervals, nil
}
