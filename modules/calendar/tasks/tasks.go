package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"meetsync/core/constants"
	"meetsync/core/logger"
	"meetsync/core/queue"
	"meetsync/modules/calendar/service"

	"github.com/hibiken/asynq"
)

// NewMux registers the calendar background task handlers
func NewMux(svc service.CalendarService) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(constants.TaskCalendarSync, handleCalendarSync(svc))
	return mux
}

func handleCalendarSync(svc service.CalendarService) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload queue.CalendarSyncPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			// Malformed payloads never become valid; do not retry.
			return fmt.Errorf("calendar sync payload: %v: %w", err, asynq.SkipRetry)
		}

		result, appErr := svc.SyncGoogleCalendar(ctx, payload.UserID)
		if appErr != nil {
			logger.Error("Tasks:CalendarSync", "user_id", payload.UserID, "error", appErr)
			return appErr
		}

		logger.Info("Tasks:CalendarSync:Done", "user_id", payload.UserID, "synced", result.EventsSynced)
		return nil
	}
}
