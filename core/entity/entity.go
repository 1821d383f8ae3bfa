package entity

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity holds the columns shared by most tables
type BaseEntity struct {
	ID        uuid.UUID `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
