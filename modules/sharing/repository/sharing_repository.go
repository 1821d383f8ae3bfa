package repository

import (
	"context"

	"meetsync/core/database"
	"meetsync/modules/sharing/entity"

	"github.com/google/uuid"
)

type SharingRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.SharingSettings, error)
	Create(ctx context.Context, settings *entity.SharingSettings) (*entity.SharingSettings, error)
	Update(ctx context.Context, settings *entity.SharingSettings) error
}

type sharingRepository struct {
	db database.Database
}

func NewSharingRepository(db database.Database) SharingRepository {
	return &sharingRepository{db: db}
}

// GetByUserID loads a user's sharing settings; sql.ErrNoRows when the user
// never configured sharing
func (r *sharingRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.SharingSettings, error) {
	query := `
		SELECT id, user_id, share_level, allowed_users, created_at, updated_at
		FROM sharing_settings
		WHERE user_id = $1
	`
	var settings entity.SharingSettings
	if err := r.db.GetContext(ctx, &settings, query, userID); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Create inserts a settings row for the user
func (r *sharingRepository) Create(ctx context.Context, settings *entity.SharingSettings) (*entity.SharingSettings, error) {
	query := `
		INSERT INTO sharing_settings (user_id, share_level, allowed_users)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		settings.UserID, settings.ShareLevel, settings.AllowedUsers,
	).Scan(&settings.ID, &settings.CreatedAt, &settings.UpdatedAt)

	if err != nil {
		return nil, err
	}
	return settings, nil
}

// Update replaces the share level and allowed user list
func (r *sharingRepository) Update(ctx context.Context, settings *entity.SharingSettings) error {
	query := `
		UPDATE sharing_settings
		SET share_level = $1, allowed_users = $2, updated_at = NOW()
		WHERE user_id = $3
		RETURNING updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		settings.ShareLevel, settings.AllowedUsers, settings.UserID,
	).Scan(&settings.UpdatedAt)
}
