package repository

import (
	"context"
	"database/sql"
	"time"

	"meetsync/core/database"
	"meetsync/modules/calendar/entity"

	"github.com/google/uuid"
)

type CalendarRepository interface {
	// Calendar connections
	CreateConnection(ctx context.Context, conn *entity.CalendarConnection) (*entity.CalendarConnection, error)
	GetConnectionByUserAndProvider(ctx context.Context, userID uuid.UUID, provider string) (*entity.CalendarConnection, error)
	UpdateConnection(ctx context.Context, conn *entity.CalendarConnection) error
	DeleteConnection(ctx context.Context, userID uuid.UUID, provider string) error

	// Synced events
	UpsertEvent(ctx context.Context, event *entity.CalendarEvent) error
	GetEventsInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]entity.CalendarEvent, error)
	GetEventByID(ctx context.Context, userID, eventID uuid.UUID) (*entity.CalendarEvent, error)
	DeleteEvent(ctx context.Context, userID, eventID uuid.UUID) error
	DeleteStaleEvents(ctx context.Context, userID uuid.UUID, syncedBefore time.Time) (int64, error)

	// Manual unavailable blocks
	CreateUnavailableTime(ctx context.Context, block *entity.UnavailableTime) (*entity.UnavailableTime, error)
	GetUnavailableTimes(ctx context.Context, userID uuid.UUID) ([]entity.UnavailableTime, error)
	DeleteUnavailableTime(ctx context.Context, userID, blockID uuid.UUID) error
}

type calendarRepository struct {
	db database.Database
}

func NewCalendarRepository(db database.Database) CalendarRepository {
	return &calendarRepository{db: db}
}

// CreateConnection creates a new calendar connection
func (r *calendarRepository) CreateConnection(ctx context.Context, conn *entity.CalendarConnection) (*entity.CalendarConnection, error) {
	query := `
		INSERT INTO calendar_connections (user_id, provider, access_token, refresh_token, token_expiry, calendar_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		conn.UserID, conn.Provider, conn.AccessToken, conn.RefreshToken,
		conn.TokenExpiry, conn.CalendarID,
	).Scan(&conn.ID, &conn.CreatedAt, &conn.UpdatedAt)

	if err != nil {
		return nil, err
	}
	return conn, nil
}

// GetConnectionByUserAndProvider gets a specific connection
func (r *calendarRepository) GetConnectionByUserAndProvider(ctx context.Context, userID uuid.UUID, provider string) (*entity.CalendarConnection, error) {
	query := `
		SELECT id, user_id, provider, access_token, refresh_token, token_expiry, calendar_id, created_at, updated_at
		FROM calendar_connections
		WHERE user_id = $1 AND provider = $2
	`
	var conn entity.CalendarConnection
	if err := r.db.GetContext(ctx, &conn, query, userID, provider); err != nil {
		return nil, err
	}
	return &conn, nil
}

// UpdateConnection updates tokens on an existing connection
func (r *calendarRepository) UpdateConnection(ctx context.Context, conn *entity.CalendarConnection) error {
	query := `
		UPDATE calendar_connections
		SET access_token = $1, refresh_token = $2, token_expiry = $3, calendar_id = $4, updated_at = NOW()
		WHERE id = $5
	`
	_, err := r.db.ExecContext(ctx, query,
		conn.AccessToken, conn.RefreshToken, conn.TokenExpiry, conn.CalendarID, conn.ID,
	)
	return err
}

// DeleteConnection removes a provider connection
func (r *calendarRepository) DeleteConnection(ctx context.Context, userID uuid.UUID, provider string) error {
	query := `DELETE FROM calendar_connections WHERE user_id = $1 AND provider = $2`
	result, err := r.db.ExecContext(ctx, query, userID, provider)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpsertEvent inserts or refreshes a synced event keyed by the provider's
// event ID, so re-syncing never duplicates rows
func (r *calendarRepository) UpsertEvent(ctx context.Context, event *entity.CalendarEvent) error {
	query := `
		INSERT INTO calendar_events (user_id, google_event_id, title, description, start_time, end_time, is_all_day, is_busy, synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, google_event_id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			is_all_day = EXCLUDED.is_all_day,
			is_busy = EXCLUDED.is_busy,
			synced_at = EXCLUDED.synced_at,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		event.UserID, event.GoogleEventID, event.Title, event.Description,
		event.StartTime, event.EndTime, event.IsAllDay, event.IsBusy, event.SyncedAt,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
}

// GetEventsInRange returns a user's events overlapping [start, end).
// The comparison is half-open: an event touching a boundary does not match.
func (r *calendarRepository) GetEventsInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]entity.CalendarEvent, error) {
	query := `
		SELECT id, user_id, google_event_id, title, description, start_time, end_time, is_all_day, is_busy, synced_at, created_at, updated_at
		FROM calendar_events
		WHERE user_id = $1 AND start_time < $3 AND end_time > $2
		ORDER BY start_time ASC
	`
	var events []entity.CalendarEvent
	if err := r.db.SelectContext(ctx, &events, query, userID, start, end); err != nil {
		return nil, err
	}
	return events, nil
}

// GetEventByID returns one of the user's events by its internal ID
func (r *calendarRepository) GetEventByID(ctx context.Context, userID, eventID uuid.UUID) (*entity.CalendarEvent, error) {
	query := `
		SELECT id, user_id, google_event_id, title, description, start_time, end_time, is_all_day, is_busy, synced_at, created_at, updated_at
		FROM calendar_events
		WHERE id = $1 AND user_id = $2
	`
	var event entity.CalendarEvent
	if err := r.db.GetContext(ctx, &event, query, eventID, userID); err != nil {
		return nil, err
	}
	return &event, nil
}

// DeleteEvent removes one of the user's events
func (r *calendarRepository) DeleteEvent(ctx context.Context, userID, eventID uuid.UUID) error {
	query := `DELETE FROM calendar_events WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteStaleEvents removes synced events the provider no longer reports.
// Events untouched by the latest sync pass keep their old synced_at.
func (r *calendarRepository) DeleteStaleEvents(ctx context.Context, userID uuid.UUID, syncedBefore time.Time) (int64, error) {
	query := `
		DELETE FROM calendar_events
		WHERE user_id = $1 AND google_event_id IS NOT NULL AND synced_at < $2
	`
	result, err := r.db.ExecContext(ctx, query, userID, syncedBefore)
	if err != nil {
		return 0, err
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}

// CreateUnavailableTime records a manual busy block
func (r *calendarRepository) CreateUnavailableTime(ctx context.Context, block *entity.UnavailableTime) (*entity.UnavailableTime, error) {
	query := `
		INSERT INTO unavailable_times (user_id, title, start_time, end_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		block.UserID, block.Title, block.StartTime, block.EndTime,
	).Scan(&block.ID, &block.CreatedAt)

	if err != nil {
		return nil, err
	}
	return block, nil
}

// GetUnavailableTimes lists a user's manual blocks, most recent first
func (r *calendarRepository) GetUnavailableTimes(ctx context.Context, userID uuid.UUID) ([]entity.UnavailableTime, error) {
	query := `
		SELECT id, user_id, title, start_time, end_time, created_at
		FROM unavailable_times
		WHERE user_id = $1
		ORDER BY start_time DESC
	`
	var blocks []entity.UnavailableTime
	if err := r.db.SelectContext(ctx, &blocks, query, userID); err != nil {
		return nil, err
	}
	return blocks, nil
}

// DeleteUnavailableTime removes a block; only the owner's rows match
func (r *calendarRepository) DeleteUnavailableTime(ctx context.Context, userID, blockID uuid.UUID) error {
	query := `DELETE FROM unavailable_times WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, blockID, userID)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
