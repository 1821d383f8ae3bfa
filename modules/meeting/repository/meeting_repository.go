package repository

import (
	"context"
	"database/sql"

	"meetsync/core/database"
	"meetsync/modules/meeting/entity"

	"github.com/google/uuid"
)

type MeetingRepositoryInterface interface {
	CreateMeeting(ctx context.Context, meeting *entity.Meeting) (*entity.Meeting, error)
	GetMeetingByID(ctx context.Context, id uuid.UUID) (*entity.Meeting, error)
	GetMeetingByInviteCode(ctx context.Context, inviteCode string) (*entity.Meeting, error)
	GetMeetingsByCreatorID(ctx context.Context, creatorID uuid.UUID) ([]entity.Meeting, error)

	AddParticipant(ctx context.Context, participant *entity.MeetingParticipant) error
	GetParticipantsByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]entity.MeetingParticipant, error)
	GetParticipant(ctx context.Context, meetingID, userID uuid.UUID) (*entity.MeetingParticipant, error)
	UpdateParticipantStatus(ctx context.Context, meetingID, userID uuid.UUID, status entity.ParticipantStatus) error
}

type MeetingRepository struct {
	db database.Database
}

func NewMeetingRepository(db database.Database) MeetingRepositoryInterface {
	return &MeetingRepository{db: db}
}

// CreateMeeting inserts a meeting
func (r *MeetingRepository) CreateMeeting(ctx context.Context, meeting *entity.Meeting) (*entity.Meeting, error) {
	query := `
		INSERT INTO meetings (creator_id, title, description, slug, invite_code, start_time, end_time, timezone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		meeting.CreatorID, meeting.Title, meeting.Description, meeting.Slug,
		meeting.InviteCode, meeting.StartTime, meeting.EndTime, meeting.Timezone,
	).Scan(&meeting.ID, &meeting.CreatedAt, &meeting.UpdatedAt)

	if err != nil {
		return nil, err
	}
	return meeting, nil
}

func (r *MeetingRepository) GetMeetingByID(ctx context.Context, id uuid.UUID) (*entity.Meeting, error) {
	query := `
		SELECT id, creator_id, title, description, slug, invite_code, start_time, end_time, timezone, created_at, updated_at
		FROM meetings
		WHERE id = $1
	`
	var meeting entity.Meeting
	if err := r.db.GetContext(ctx, &meeting, query, id); err != nil {
		return nil, err
	}
	return &meeting, nil
}

func (r *MeetingRepository) GetMeetingByInviteCode(ctx context.Context, inviteCode string) (*entity.Meeting, error) {
	query := `
		SELECT id, creator_id, title, description, slug, invite_code, start_time, end_time, timezone, created_at, updated_at
		FROM meetings
		WHERE invite_code = $1
	`
	var meeting entity.Meeting
	if err := r.db.GetContext(ctx, &meeting, query, inviteCode); err != nil {
		return nil, err
	}
	return &meeting, nil
}

func (r *MeetingRepository) GetMeetingsByCreatorID(ctx context.Context, creatorID uuid.UUID) ([]entity.Meeting, error) {
	query := `
		SELECT id, creator_id, title, description, slug, invite_code, start_time, end_time, timezone, created_at, updated_at
		FROM meetings
		WHERE creator_id = $1
		ORDER BY created_at DESC
	`
	var meetings []entity.Meeting
	if err := r.db.SelectContext(ctx, &meetings, query, creatorID); err != nil {
		return nil, err
	}
	return meetings, nil
}

// AddParticipant links a user to a meeting; joining twice is a no-op
func (r *MeetingRepository) AddParticipant(ctx context.Context, participant *entity.MeetingParticipant) error {
	query := `
		INSERT INTO meeting_participants (meeting_id, user_id, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (meeting_id, user_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query,
		participant.MeetingID, participant.UserID, participant.Status,
	)
	return err
}

func (r *MeetingRepository) GetParticipantsByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]entity.MeetingParticipant, error) {
	query := `
		SELECT meeting_id, user_id, status, created_at
		FROM meeting_participants
		WHERE meeting_id = $1
		ORDER BY created_at ASC
	`
	var participants []entity.MeetingParticipant
	if err := r.db.SelectContext(ctx, &participants, query, meetingID); err != nil {
		return nil, err
	}
	return participants, nil
}

func (r *MeetingRepository) GetParticipant(ctx context.Context, meetingID, userID uuid.UUID) (*entity.MeetingParticipant, error) {
	query := `
		SELECT meeting_id, user_id, status, created_at
		FROM meeting_participants
		WHERE meeting_id = $1 AND user_id = $2
	`
	var participant entity.MeetingParticipant
	if err := r.db.GetContext(ctx, &participant, query, meetingID, userID); err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *MeetingRepository) UpdateParticipantStatus(ctx context.Context, meetingID, userID uuid.UUID, status entity.ParticipantStatus) error {
	query := `
		UPDATE meeting_participants
		SET status = $1
		WHERE meeting_id = $2 AND user_id = $3
	`
	result, err := r.db.ExecContext(ctx, query, status, meetingID, userID)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
