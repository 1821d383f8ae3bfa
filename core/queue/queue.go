package queue

import (
	"encoding/json"

	"meetsync/core/config"
	"meetsync/core/constants"
	"meetsync/core/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// CalendarSyncPayload is the payload of a calendar:sync task
type CalendarSyncPayload struct {
	UserID uuid.UUID `json:"user_id"`
}

var client *asynq.Client

// InitClient creates the asynq client used by services to enqueue tasks
func InitClient(cfg config.RedisConfig) *asynq.Client {
	client = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return client
}

func Client() *asynq.Client {
	return client
}

// EnqueueCalendarSync schedules a background calendar sync for a user
func EnqueueCalendarSync(userID uuid.UUID) error {
	if client == nil {
		return asynq.ErrServerClosed
	}
	payload, err := json.Marshal(CalendarSyncPayload{UserID: userID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(constants.TaskCalendarSync, payload, asynq.MaxRetry(3))
	info, err := client.Enqueue(task)
	if err != nil {
		return err
	}
	logger.Info("Queue:EnqueueCalendarSync", "task_id", info.ID, "user_id", userID)
	return nil
}

// RunWorker starts the asynq worker loop; blocks until the server stops
func RunWorker(cfg config.RedisConfig, mux *asynq.ServeMux) error {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		},
		asynq.Config{
			Concurrency: 5,
		},
	)
	return srv.Run(mux)
}
