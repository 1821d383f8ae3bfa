package entity

import (
	"meetsync/core/entity"
)

// User is an account that owns calendars, meetings and sharing settings
type User struct {
	entity.BaseEntity
	Email        string  `db:"email" json:"email"`
	PasswordHash string  `db:"password_hash" json:"-"`
	Name         *string `db:"name" json:"name,omitempty"`
}
